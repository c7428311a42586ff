package attributes

import (
	"context"

	"github.com/google/uuid"

	"github.com/profilematch/backend/internal/domain"
	"github.com/profilematch/backend/internal/pkg/logger"
	"github.com/profilematch/backend/internal/repository"
)

// TreeRequest bounds the category tree fetch.
type TreeRequest struct {
	MaxLevel        *int `form:"max_level" binding:"omitempty,min=1,max=10"`
	IncludeInactive bool `form:"include_inactive"`
}

// SearchRequest carries the attribute search filters.
type SearchRequest struct {
	Query           string     `form:"q" binding:"required,min=1,max=100"`
	CategoryID      *uuid.UUID `form:"category_id"`
	DifficultyLevel *string    `form:"difficulty_level" binding:"omitempty,oneof=easy medium hard expert"`
	TimeCommitment  *string    `form:"time_commitment" binding:"omitempty,oneof=low medium high"`
	CostLevel       *string    `form:"cost_level" binding:"omitempty,oneof=free low medium high"`
	Tag             *string    `form:"tag" binding:"omitempty,max=50"`
	Limit           int        `form:"limit,default=20" binding:"min=1,max=100"`
}

// PopularRequest carries the popularity ranking filters.
type PopularRequest struct {
	CategoryID *uuid.UUID `form:"category_id"`
	Limit      int        `form:"limit,default=20" binding:"min=1,max=100"`
}

// ListUserAttributesRequest filters a user's associations.
type ListUserAttributesRequest struct {
	Status     *string `form:"status" binding:"omitempty,oneof=active paused dropped completed"`
	IsFeatured *bool   `form:"is_featured"`
	IsPublic   *bool   `form:"is_public"`
}

// AssociateRequest attaches an attribute to the current user.
type AssociateRequest struct {
	AttributeID     uuid.UUID `json:"attribute_id" binding:"required"`
	InterestLevel   *int      `json:"interest_level" binding:"omitempty,min=1,max=10"`
	SkillLevel      *string   `json:"skill_level" binding:"omitempty,oneof=beginner intermediate advanced expert"`
	ExperienceYears *int      `json:"experience_years" binding:"omitempty,min=0,max=100"`
	Frequency       *string   `json:"frequency" binding:"omitempty,oneof=daily weekly monthly rarely"`
	TimeSpentWeekly *int      `json:"time_spent_weekly" binding:"omitempty,min=0,max=168"`
	EnjoymentRating *int      `json:"enjoyment_rating" binding:"omitempty,min=1,max=10"`
	Status          *string   `json:"status" binding:"omitempty,oneof=active paused dropped completed"`
	IsPublic        *bool     `json:"is_public"`
	IsFeatured      *bool     `json:"is_featured"`
	Notes           *string   `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateAssociationRequest is a partial update of an association.
type UpdateAssociationRequest struct {
	InterestLevel   *int    `json:"interest_level" binding:"omitempty,min=1,max=10"`
	SkillLevel      *string `json:"skill_level" binding:"omitempty,oneof=beginner intermediate advanced expert"`
	ExperienceYears *int    `json:"experience_years" binding:"omitempty,min=0,max=100"`
	Frequency       *string `json:"frequency" binding:"omitempty,oneof=daily weekly monthly rarely"`
	TimeSpentWeekly *int    `json:"time_spent_weekly" binding:"omitempty,min=0,max=168"`
	EnjoymentRating *int    `json:"enjoyment_rating" binding:"omitempty,min=1,max=10"`
	Status          *string `json:"status" binding:"omitempty,oneof=active paused dropped completed"`
	IsPublic        *bool   `json:"is_public"`
	IsFeatured      *bool   `json:"is_featured"`
	Notes           *string `json:"notes" binding:"omitempty,max=1000"`
}

type UseCase struct {
	attributes repository.AttributeRepository
	log        *logger.Logger
}

func NewUseCase(attributes repository.AttributeRepository, log *logger.Logger) *UseCase {
	return &UseCase{attributes: attributes, log: log}
}

func (uc *UseCase) CategoryTree(ctx context.Context, req TreeRequest) (*domain.CategoryTree, error) {
	categories, err := uc.attributes.ListCategories(ctx, repository.CategoryFilter{
		MaxLevel:        req.MaxLevel,
		IncludeInactive: req.IncludeInactive,
	})
	if err != nil {
		return nil, err
	}
	return buildTree(categories), nil
}

func (uc *UseCase) Subcategories(ctx context.Context, parentID uuid.UUID, includeInactive bool) ([]*domain.AttributeCategory, error) {
	exists, err := uc.attributes.CategoryExists(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrCategoryNotFound
	}
	return uc.attributes.ListSubcategories(ctx, parentID, includeInactive)
}

func (uc *UseCase) CategoryAttributes(ctx context.Context, categoryID uuid.UUID, includeInactive bool) ([]domain.Attribute, error) {
	exists, err := uc.attributes.CategoryExists(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrCategoryNotFound
	}
	return uc.attributes.ListByCategory(ctx, categoryID, includeInactive)
}

func (uc *UseCase) Search(ctx context.Context, req SearchRequest) ([]domain.Attribute, error) {
	limit := req.Limit
	if limit == 0 {
		limit = 20
	}

	return uc.attributes.Search(ctx, repository.AttributeSearchFilter{
		Query:           req.Query,
		CategoryID:      req.CategoryID,
		DifficultyLevel: req.DifficultyLevel,
		TimeCommitment:  req.TimeCommitment,
		CostLevel:       req.CostLevel,
		Tag:             req.Tag,
		Limit:           limit,
	})
}

func (uc *UseCase) Popular(ctx context.Context, req PopularRequest) ([]domain.Attribute, error) {
	limit := req.Limit
	if limit == 0 {
		limit = 20
	}

	return uc.attributes.ListPopular(ctx, repository.PopularAttributeFilter{
		CategoryID: req.CategoryID,
		Limit:      limit,
	})
}

func (uc *UseCase) ListUserAttributes(ctx context.Context, userID uuid.UUID, req ListUserAttributesRequest) ([]domain.UserAttribute, error) {
	return uc.attributes.ListUserAttributes(ctx, userID, repository.UserAttributeFilter{
		Status:     req.Status,
		IsFeatured: req.IsFeatured,
		IsPublic:   req.IsPublic,
	})
}

func (uc *UseCase) Associate(ctx context.Context, userID uuid.UUID, req AssociateRequest) (*domain.UserAttribute, error) {
	exists, err := uc.attributes.AttributeExists(ctx, req.AttributeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrAttributeNotFound
	}

	ua, err := uc.attributes.CreateUserAttribute(ctx, userID, req.AttributeID, repository.UserAttributeInput{
		InterestLevel:   req.InterestLevel,
		SkillLevel:      req.SkillLevel,
		ExperienceYears: req.ExperienceYears,
		Frequency:       req.Frequency,
		TimeSpentWeekly: req.TimeSpentWeekly,
		EnjoymentRating: req.EnjoymentRating,
		Status:          req.Status,
		IsPublic:        req.IsPublic,
		IsFeatured:      req.IsFeatured,
		Notes:           req.Notes,
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("attribute associated", "user_id", userID, "attribute_id", req.AttributeID)
	return ua, nil
}

func (uc *UseCase) UpdateAssociation(ctx context.Context, userID, attributeID uuid.UUID, req UpdateAssociationRequest) (*domain.UserAttribute, error) {
	return uc.attributes.UpdateUserAttribute(ctx, userID, attributeID, repository.UserAttributeInput{
		InterestLevel:   req.InterestLevel,
		SkillLevel:      req.SkillLevel,
		ExperienceYears: req.ExperienceYears,
		Frequency:       req.Frequency,
		TimeSpentWeekly: req.TimeSpentWeekly,
		EnjoymentRating: req.EnjoymentRating,
		Status:          req.Status,
		IsPublic:        req.IsPublic,
		IsFeatured:      req.IsFeatured,
		Notes:           req.Notes,
	})
}

func (uc *UseCase) RemoveAssociation(ctx context.Context, userID, attributeID uuid.UUID) error {
	if err := uc.attributes.DeleteUserAttribute(ctx, userID, attributeID); err != nil {
		return err
	}
	uc.log.Info("attribute association removed", "user_id", userID, "attribute_id", attributeID)
	return nil
}
