package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/profilematch/backend/internal/domain"
)

// ProfileSearchFilter narrows the profile search; nil fields are skipped.
type ProfileSearchFilter struct {
	Query        *string
	RegionID     *uuid.UUID
	OccupationID *uuid.UUID
	AgeMin       *int
	AgeMax       *int
	Limit        int
}

// ProfileInput carries the writable profile columns. On create, nil
// fields insert as NULL; on update, nil fields are untouched.
type ProfileInput struct {
	DisplayName          *string
	FirstName            *string
	LastName             *string
	Bio                  *string
	AvatarURL            *string
	BirthDate            *time.Time
	GenderID             *uuid.UUID
	RegionID             *uuid.UUID
	Timezone             *string
	OccupationID         *uuid.UUID
	EducationLevelID     *uuid.UUID
	Company              *string
	School               *string
	RelationshipStatusID *uuid.UUID
	Phone                *string
	WebsiteURL           *string
	ProfileVisibility    *string
}

// ProfileRepository persists user profiles. Reads return the nested
// document shape with dictionary children resolved.
type ProfileRepository interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
	Create(ctx context.Context, userID uuid.UUID, input ProfileInput) error
	Update(ctx context.Context, userID uuid.UUID, input ProfileInput) error
	SoftDelete(ctx context.Context, userID uuid.UUID) error
	Search(ctx context.Context, filter ProfileSearchFilter) ([]*domain.Profile, error)
	ListActive(ctx context.Context) ([]*domain.Profile, error)
	GetHobbyIDs(ctx context.Context, userID uuid.UUID) ([]int, error)
	SetHobbyIDs(ctx context.Context, userID uuid.UUID, hobbyIDs []int) error
}
