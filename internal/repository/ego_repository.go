package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/profilematch/backend/internal/domain"
)

// CognitiveFunctionFilter narrows the function dictionary.
type CognitiveFunctionFilter struct {
	FunctionType *string
	Attitude     *string
}

// CreateUserCognitiveFunctionInput carries a new assessment score.
type CreateUserCognitiveFunctionInput struct {
	FunctionID       uuid.UUID
	RawScore         *int
	NormalizedScore  *float64
	FunctionRank     *int
	ConfidenceLevel  *float64
	AssessmentSource *string
	AssessedAt       *time.Time
}

// UpdateUserCognitiveFunctionInput carries a partial update; nil fields
// are untouched.
type UpdateUserCognitiveFunctionInput struct {
	RawScore         *int
	NormalizedScore  *float64
	FunctionRank     *int
	ConfidenceLevel  *float64
	AssessmentSource *string
	AssessedAt       *time.Time
}

// TraitFilter narrows the personality trait dictionary.
type TraitFilter struct {
	CategoryID *uuid.UUID
	Framework  *string
	Tag        *string
}

// CreateUserTraitInput carries a new trait value. Exactly one of the
// Value fields must be set, matching the trait's declared value type.
type CreateUserTraitInput struct {
	TraitID          uuid.UUID
	ValueNumeric     *float64
	ValueText        *string
	ValueBoolean     *bool
	ConfidenceLevel  *float64
	AssessmentSource *string
	AssessedAt       *time.Time
}

// UpdateUserTraitInput carries a partial trait value update.
type UpdateUserTraitInput struct {
	ValueNumeric     *float64
	ValueText        *string
	ValueBoolean     *bool
	ConfidenceLevel  *float64
	AssessmentSource *string
	AssessedAt       *time.Time
}

// EgoRepository persists cognitive function assessments and
// personality trait values.
type EgoRepository interface {
	ListCognitiveFunctions(ctx context.Context, filter CognitiveFunctionFilter) ([]domain.CognitiveFunction, error)
	GetCognitiveFunction(ctx context.Context, functionID uuid.UUID) (*domain.CognitiveFunction, error)

	ListUserCognitiveFunctions(ctx context.Context, userID uuid.UUID) ([]domain.UserCognitiveFunction, error)
	GetUserCognitiveFunction(ctx context.Context, userID, functionID uuid.UUID) (*domain.UserCognitiveFunction, error)
	CreateUserCognitiveFunction(ctx context.Context, userID uuid.UUID, input CreateUserCognitiveFunctionInput) (*domain.UserCognitiveFunction, error)
	UpdateUserCognitiveFunction(ctx context.Context, userID, functionID uuid.UUID, input UpdateUserCognitiveFunctionInput) (*domain.UserCognitiveFunction, error)
	DeleteUserCognitiveFunction(ctx context.Context, userID, functionID uuid.UUID) error
	GetDistribution(ctx context.Context, userID uuid.UUID) (*domain.CognitiveFunctionDistribution, error)

	ListTraitCategories(ctx context.Context) ([]domain.TraitCategory, error)
	ListTraitValueTypes(ctx context.Context) ([]domain.TraitValueType, error)
	ListTraits(ctx context.Context, filter TraitFilter) ([]domain.PersonalityTrait, error)
	GetTrait(ctx context.Context, traitID uuid.UUID) (*domain.PersonalityTrait, error)

	ListUserTraits(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) ([]domain.UserPersonalityTrait, error)
	GetUserTrait(ctx context.Context, userID, traitID uuid.UUID) (*domain.UserPersonalityTrait, error)
	CreateUserTrait(ctx context.Context, userID uuid.UUID, input CreateUserTraitInput) (*domain.UserPersonalityTrait, error)
	UpdateUserTrait(ctx context.Context, userID, traitID uuid.UUID, input UpdateUserTraitInput) (*domain.UserPersonalityTrait, error)
	DeleteUserTrait(ctx context.Context, userID, traitID uuid.UUID) error
}
