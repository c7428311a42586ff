package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/profilematch/backend/internal/domain"
	"github.com/profilematch/backend/internal/pkg/logger"
	"github.com/profilematch/backend/internal/repository"
)

const birthDateLayout = "2006-01-02"

// CreateRequest carries the writable profile fields. Every field is
// optional; a profile may start empty and be filled in later.
type CreateRequest struct {
	DisplayName          *string    `json:"display_name" binding:"omitempty,max=100"`
	FirstName            *string    `json:"first_name" binding:"omitempty,max=100"`
	LastName             *string    `json:"last_name" binding:"omitempty,max=100"`
	Bio                  *string    `json:"bio" binding:"omitempty,max=2000"`
	AvatarURL            *string    `json:"avatar_url" binding:"omitempty,url"`
	BirthDate            *string    `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	GenderID             *uuid.UUID `json:"gender_id"`
	RegionID             *uuid.UUID `json:"region_id"`
	Timezone             *string    `json:"timezone" binding:"omitempty,max=50"`
	OccupationID         *uuid.UUID `json:"occupation_id"`
	EducationLevelID     *uuid.UUID `json:"education_level_id"`
	Company              *string    `json:"company" binding:"omitempty,max=200"`
	School               *string    `json:"school" binding:"omitempty,max=200"`
	RelationshipStatusID *uuid.UUID `json:"relationship_status_id"`
	Phone                *string    `json:"phone" binding:"omitempty,max=20"`
	WebsiteURL           *string    `json:"website_url" binding:"omitempty,url"`
	ProfileVisibility    *string    `json:"profile_visibility" binding:"omitempty,oneof=public friends private"`
}

// UpdateRequest is a partial update; nil fields are left untouched.
// At least one field must be set.
type UpdateRequest = CreateRequest

// SearchRequest carries the public profile search filters.
type SearchRequest struct {
	Query        *string    `form:"q" binding:"omitempty,max=100"`
	RegionID     *uuid.UUID `form:"region_id"`
	OccupationID *uuid.UUID `form:"occupation_id"`
	AgeMin       *int       `form:"age_min" binding:"omitempty,min=0,max=150"`
	AgeMax       *int       `form:"age_max" binding:"omitempty,min=0,max=150"`
	Limit        int        `form:"limit,default=20" binding:"min=1,max=100"`
}

type UseCase struct {
	profiles     repository.ProfileRepository
	dictionaries repository.DictionaryRepository
	log          *logger.Logger
}

func NewUseCase(profiles repository.ProfileRepository, dictionaries repository.DictionaryRepository, log *logger.Logger) *UseCase {
	return &UseCase{profiles: profiles, dictionaries: dictionaries, log: log}
}

func (uc *UseCase) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return uc.profiles.GetByID(ctx, userID)
}

func (uc *UseCase) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*domain.Profile, error) {
	input, err := toInput(req)
	if err != nil {
		return nil, err
	}

	if err := uc.profiles.Create(ctx, userID, input); err != nil {
		return nil, err
	}

	uc.log.Info("profile created", "user_id", userID)
	return uc.profiles.GetByID(ctx, userID)
}

func (uc *UseCase) Update(ctx context.Context, userID uuid.UUID, req UpdateRequest) (*domain.Profile, error) {
	input, err := toInput(req)
	if err != nil {
		return nil, err
	}
	if isEmpty(input) {
		return nil, domain.ErrEmptyUpdate
	}

	if err := uc.profiles.Update(ctx, userID, input); err != nil {
		return nil, err
	}
	return uc.profiles.GetByID(ctx, userID)
}

func (uc *UseCase) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := uc.profiles.SoftDelete(ctx, userID); err != nil {
		return err
	}
	uc.log.Info("profile deleted", "user_id", userID)
	return nil
}

func (uc *UseCase) Search(ctx context.Context, req SearchRequest) ([]*domain.Profile, error) {
	limit := req.Limit
	if limit == 0 {
		limit = 20
	}

	return uc.profiles.Search(ctx, repository.ProfileSearchFilter{
		Query:        req.Query,
		RegionID:     req.RegionID,
		OccupationID: req.OccupationID,
		AgeMin:       req.AgeMin,
		AgeMax:       req.AgeMax,
		Limit:        limit,
	})
}

func (uc *UseCase) Genders(ctx context.Context) ([]domain.Gender, error) {
	return uc.dictionaries.ListGenders(ctx)
}

func (uc *UseCase) Regions(ctx context.Context, level *int, parentID *uuid.UUID) ([]domain.Region, error) {
	return uc.dictionaries.ListRegions(ctx, repository.RegionFilter{Level: level, ParentID: parentID})
}

func (uc *UseCase) Occupations(ctx context.Context, categoryID *uuid.UUID) ([]domain.Occupation, error) {
	return uc.dictionaries.ListOccupations(ctx, categoryID)
}

func (uc *UseCase) EducationLevels(ctx context.Context) ([]domain.EducationLevel, error) {
	return uc.dictionaries.ListEducationLevels(ctx)
}

func (uc *UseCase) RelationshipStatuses(ctx context.Context) ([]domain.RelationshipStatus, error) {
	return uc.dictionaries.ListRelationshipStatuses(ctx)
}

func toInput(req CreateRequest) (repository.ProfileInput, error) {
	input := repository.ProfileInput{
		DisplayName:          req.DisplayName,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Bio:                  req.Bio,
		AvatarURL:            req.AvatarURL,
		GenderID:             req.GenderID,
		RegionID:             req.RegionID,
		Timezone:             req.Timezone,
		OccupationID:         req.OccupationID,
		EducationLevelID:     req.EducationLevelID,
		Company:              req.Company,
		School:               req.School,
		RelationshipStatusID: req.RelationshipStatusID,
		Phone:                req.Phone,
		WebsiteURL:           req.WebsiteURL,
		ProfileVisibility:    req.ProfileVisibility,
	}

	if req.BirthDate != nil {
		birthDate, err := time.Parse(birthDateLayout, *req.BirthDate)
		if err != nil {
			return input, fmt.Errorf("%w: invalid birth_date", domain.ErrInvalidInput)
		}
		input.BirthDate = &birthDate
	}
	return input, nil
}

func isEmpty(input repository.ProfileInput) bool {
	return input.DisplayName == nil && input.FirstName == nil &&
		input.LastName == nil && input.Bio == nil && input.AvatarURL == nil &&
		input.BirthDate == nil && input.GenderID == nil && input.RegionID == nil &&
		input.Timezone == nil && input.OccupationID == nil &&
		input.EducationLevelID == nil && input.Company == nil &&
		input.School == nil && input.RelationshipStatusID == nil &&
		input.Phone == nil && input.WebsiteURL == nil &&
		input.ProfileVisibility == nil
}
