package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/profilematch/backend/internal/domain"
)

// CategoryFilter narrows the category listing.
type CategoryFilter struct {
	ParentID        *uuid.UUID
	MaxLevel        *int
	IncludeInactive bool
}

// AttributeSearchFilter narrows the attribute search; nil fields are skipped.
type AttributeSearchFilter struct {
	Query           string
	CategoryID      *uuid.UUID
	DifficultyLevel *string
	TimeCommitment  *string
	CostLevel       *string
	Tag             *string
	Limit           int
}

// PopularAttributeFilter narrows the popularity ranking.
type PopularAttributeFilter struct {
	CategoryID *uuid.UUID
	Limit      int
}

// UserAttributeFilter narrows a user's attribute associations.
type UserAttributeFilter struct {
	Status     *string
	IsFeatured *bool
	IsPublic   *bool
}

// UserAttributeInput carries the writable association columns. On
// create, nil fields take their column defaults; on update, nil fields
// are untouched.
type UserAttributeInput struct {
	InterestLevel   *int
	SkillLevel      *string
	ExperienceYears *int
	Frequency       *string
	TimeSpentWeekly *int
	EnjoymentRating *int
	Status          *string
	IsPublic        *bool
	IsFeatured      *bool
	Notes           *string
}

// AttributeRepository persists the attribute taxonomy and the
// per-user associations over it.
type AttributeRepository interface {
	ListCategories(ctx context.Context, filter CategoryFilter) ([]*domain.AttributeCategory, error)
	ListSubcategories(ctx context.Context, parentID uuid.UUID, includeInactive bool) ([]*domain.AttributeCategory, error)
	CategoryExists(ctx context.Context, categoryID uuid.UUID) (bool, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID, includeInactive bool) ([]domain.Attribute, error)
	Search(ctx context.Context, filter AttributeSearchFilter) ([]domain.Attribute, error)
	ListPopular(ctx context.Context, filter PopularAttributeFilter) ([]domain.Attribute, error)
	AttributeExists(ctx context.Context, attributeID uuid.UUID) (bool, error)

	ListUserAttributes(ctx context.Context, userID uuid.UUID, filter UserAttributeFilter) ([]domain.UserAttribute, error)
	GetUserAttribute(ctx context.Context, userID, attributeID uuid.UUID) (*domain.UserAttribute, error)
	CreateUserAttribute(ctx context.Context, userID, attributeID uuid.UUID, input UserAttributeInput) (*domain.UserAttribute, error)
	UpdateUserAttribute(ctx context.Context, userID, attributeID uuid.UUID, input UserAttributeInput) (*domain.UserAttribute, error)
	DeleteUserAttribute(ctx context.Context, userID, attributeID uuid.UUID) error
}
