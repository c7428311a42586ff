package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/profilematch/backend/internal/domain"
)

// RegionFilter narrows the region dictionary; nil fields are skipped.
type RegionFilter struct {
	Level    *int
	ParentID *uuid.UUID
}

// DictionaryRepository reads the reference tables. Implementations must
// exclude is_active = false rows and order results deterministically.
type DictionaryRepository interface {
	ListGenders(ctx context.Context) ([]domain.Gender, error)
	ListRegions(ctx context.Context, filter RegionFilter) ([]domain.Region, error)
	ListOccupations(ctx context.Context, categoryID *uuid.UUID) ([]domain.Occupation, error)
	ListEducationLevels(ctx context.Context) ([]domain.EducationLevel, error)
	ListRelationshipStatuses(ctx context.Context) ([]domain.RelationshipStatus, error)
	ListHobbies(ctx context.Context) ([]domain.Hobby, error)
	ListHobbiesByCategory(ctx context.Context, category string) ([]domain.Hobby, error)
	ListSkills(ctx context.Context) ([]domain.Skill, error)
}
