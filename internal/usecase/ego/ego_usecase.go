package ego

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/profilematch/backend/internal/domain"
	"github.com/profilematch/backend/internal/pkg/logger"
	"github.com/profilematch/backend/internal/repository"
)

// ListFunctionsRequest filters the cognitive function dictionary.
type ListFunctionsRequest struct {
	FunctionType *string `form:"function_type" binding:"omitempty,oneof=thinking feeling sensing intuition"`
	Attitude     *string `form:"attitude" binding:"omitempty,oneof=introverted extraverted"`
}

// ScoreRequest records an assessment score for one function.
type ScoreRequest struct {
	FunctionID       uuid.UUID  `json:"function_id" binding:"required"`
	RawScore         *int       `json:"raw_score" binding:"omitempty,min=0,max=100"`
	NormalizedScore  *float64   `json:"normalized_score" binding:"omitempty,min=0,max=1"`
	FunctionRank     *int       `json:"function_rank" binding:"omitempty,min=1,max=8"`
	ConfidenceLevel  *float64   `json:"confidence_level" binding:"omitempty,min=0,max=1"`
	AssessmentSource *string    `json:"assessment_source" binding:"omitempty,oneof=self_assessment formal_test peer_review imported"`
	AssessedAt       *time.Time `json:"assessed_at"`
}

// UpdateScoreRequest is a partial score update.
type UpdateScoreRequest struct {
	RawScore         *int       `json:"raw_score" binding:"omitempty,min=0,max=100"`
	NormalizedScore  *float64   `json:"normalized_score" binding:"omitempty,min=0,max=1"`
	FunctionRank     *int       `json:"function_rank" binding:"omitempty,min=1,max=8"`
	ConfidenceLevel  *float64   `json:"confidence_level" binding:"omitempty,min=0,max=1"`
	AssessmentSource *string    `json:"assessment_source" binding:"omitempty,oneof=self_assessment formal_test peer_review imported"`
	AssessedAt       *time.Time `json:"assessed_at"`
}

// ListTraitsRequest filters the trait dictionary.
type ListTraitsRequest struct {
	CategoryID *uuid.UUID `form:"category_id"`
	Framework  *string    `form:"framework" binding:"omitempty,max=50"`
	Tag        *string    `form:"tag" binding:"omitempty,max=50"`
}

// TraitValueRequest records a value for one trait. Exactly one value
// field must be set, and it must match the trait's declared value type.
type TraitValueRequest struct {
	TraitID          uuid.UUID  `json:"trait_id" binding:"required"`
	ValueNumeric     *float64   `json:"value_numeric"`
	ValueText        *string    `json:"value_text" binding:"omitempty,max=500"`
	ValueBoolean     *bool      `json:"value_boolean"`
	ConfidenceLevel  *float64   `json:"confidence_level" binding:"omitempty,min=0,max=1"`
	AssessmentSource *string    `json:"assessment_source" binding:"omitempty,oneof=self_assessment formal_test peer_review imported"`
	AssessedAt       *time.Time `json:"assessed_at"`
}

// UpdateTraitValueRequest is a partial trait value update.
type UpdateTraitValueRequest struct {
	ValueNumeric     *float64   `json:"value_numeric"`
	ValueText        *string    `json:"value_text" binding:"omitempty,max=500"`
	ValueBoolean     *bool      `json:"value_boolean"`
	ConfidenceLevel  *float64   `json:"confidence_level" binding:"omitempty,min=0,max=1"`
	AssessmentSource *string    `json:"assessment_source" binding:"omitempty,oneof=self_assessment formal_test peer_review imported"`
	AssessedAt       *time.Time `json:"assessed_at"`
}

type UseCase struct {
	ego repository.EgoRepository
	log *logger.Logger
}

func NewUseCase(ego repository.EgoRepository, log *logger.Logger) *UseCase {
	return &UseCase{ego: ego, log: log}
}

func (uc *UseCase) ListFunctions(ctx context.Context, req ListFunctionsRequest) ([]domain.CognitiveFunction, error) {
	return uc.ego.ListCognitiveFunctions(ctx, repository.CognitiveFunctionFilter{
		FunctionType: req.FunctionType,
		Attitude:     req.Attitude,
	})
}

func (uc *UseCase) ListScores(ctx context.Context, userID uuid.UUID) ([]domain.UserCognitiveFunction, error) {
	return uc.ego.ListUserCognitiveFunctions(ctx, userID)
}

func (uc *UseCase) RecordScore(ctx context.Context, userID uuid.UUID, req ScoreRequest) (*domain.UserCognitiveFunction, error) {
	if _, err := uc.ego.GetCognitiveFunction(ctx, req.FunctionID); err != nil {
		return nil, err
	}

	score, err := uc.ego.CreateUserCognitiveFunction(ctx, userID, repository.CreateUserCognitiveFunctionInput{
		FunctionID:       req.FunctionID,
		RawScore:         req.RawScore,
		NormalizedScore:  req.NormalizedScore,
		FunctionRank:     req.FunctionRank,
		ConfidenceLevel:  req.ConfidenceLevel,
		AssessmentSource: req.AssessmentSource,
		AssessedAt:       req.AssessedAt,
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("cognitive function score recorded", "user_id", userID, "function_id", req.FunctionID)
	return score, nil
}

func (uc *UseCase) UpdateScore(ctx context.Context, userID, functionID uuid.UUID, req UpdateScoreRequest) (*domain.UserCognitiveFunction, error) {
	return uc.ego.UpdateUserCognitiveFunction(ctx, userID, functionID, repository.UpdateUserCognitiveFunctionInput{
		RawScore:         req.RawScore,
		NormalizedScore:  req.NormalizedScore,
		FunctionRank:     req.FunctionRank,
		ConfidenceLevel:  req.ConfidenceLevel,
		AssessmentSource: req.AssessmentSource,
		AssessedAt:       req.AssessedAt,
	})
}

func (uc *UseCase) DeleteScore(ctx context.Context, userID, functionID uuid.UUID) error {
	return uc.ego.DeleteUserCognitiveFunction(ctx, userID, functionID)
}

func (uc *UseCase) Distribution(ctx context.Context, userID uuid.UUID) (*domain.CognitiveFunctionDistribution, error) {
	return uc.ego.GetDistribution(ctx, userID)
}

func (uc *UseCase) TraitCategories(ctx context.Context) ([]domain.TraitCategory, error) {
	return uc.ego.ListTraitCategories(ctx)
}

func (uc *UseCase) TraitValueTypes(ctx context.Context) ([]domain.TraitValueType, error) {
	return uc.ego.ListTraitValueTypes(ctx)
}

func (uc *UseCase) ListTraits(ctx context.Context, req ListTraitsRequest) ([]domain.PersonalityTrait, error) {
	return uc.ego.ListTraits(ctx, repository.TraitFilter{
		CategoryID: req.CategoryID,
		Framework:  req.Framework,
		Tag:        req.Tag,
	})
}

func (uc *UseCase) ListTraitValues(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) ([]domain.UserPersonalityTrait, error) {
	return uc.ego.ListUserTraits(ctx, userID, categoryID)
}

func (uc *UseCase) RecordTraitValue(ctx context.Context, userID uuid.UUID, req TraitValueRequest) (*domain.UserPersonalityTrait, error) {
	trait, err := uc.ego.GetTrait(ctx, req.TraitID)
	if err != nil {
		return nil, err
	}
	if err := validateTraitValue(trait.ValueType, req.ValueNumeric, req.ValueText, req.ValueBoolean); err != nil {
		return nil, err
	}

	value, err := uc.ego.CreateUserTrait(ctx, userID, repository.CreateUserTraitInput{
		TraitID:          req.TraitID,
		ValueNumeric:     req.ValueNumeric,
		ValueText:        req.ValueText,
		ValueBoolean:     req.ValueBoolean,
		ConfidenceLevel:  req.ConfidenceLevel,
		AssessmentSource: req.AssessmentSource,
		AssessedAt:       req.AssessedAt,
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("trait value recorded", "user_id", userID, "trait_id", req.TraitID)
	return value, nil
}

func (uc *UseCase) UpdateTraitValue(ctx context.Context, userID, traitID uuid.UUID, req UpdateTraitValueRequest) (*domain.UserPersonalityTrait, error) {
	if req.ValueNumeric != nil || req.ValueText != nil || req.ValueBoolean != nil {
		trait, err := uc.ego.GetTrait(ctx, traitID)
		if err != nil {
			return nil, err
		}
		if err := validateTraitValue(trait.ValueType, req.ValueNumeric, req.ValueText, req.ValueBoolean); err != nil {
			return nil, err
		}
	}

	return uc.ego.UpdateUserTrait(ctx, userID, traitID, repository.UpdateUserTraitInput{
		ValueNumeric:     req.ValueNumeric,
		ValueText:        req.ValueText,
		ValueBoolean:     req.ValueBoolean,
		ConfidenceLevel:  req.ConfidenceLevel,
		AssessmentSource: req.AssessmentSource,
		AssessedAt:       req.AssessedAt,
	})
}

func (uc *UseCase) DeleteTraitValue(ctx context.Context, userID, traitID uuid.UUID) error {
	return uc.ego.DeleteUserTrait(ctx, userID, traitID)
}

// validateTraitValue enforces that exactly one value field is set and
// that it matches the trait's declared value type, including numeric
// range and enum membership.
func validateTraitValue(vt domain.TraitValueType, numeric *float64, text *string, boolean *bool) error {
	set := 0
	if numeric != nil {
		set++
	}
	if text != nil {
		set++
	}
	if boolean != nil {
		set++
	}
	if set != 1 {
		return domain.ErrTraitValueMismatch
	}

	switch vt.DataType {
	case "numeric":
		if numeric == nil {
			return domain.ErrTraitValueMismatch
		}
		if vt.MinValue != nil && *numeric < *vt.MinValue {
			return domain.ErrTraitValueMismatch
		}
		if vt.MaxValue != nil && *numeric > *vt.MaxValue {
			return domain.ErrTraitValueMismatch
		}
	case "boolean":
		if boolean == nil {
			return domain.ErrTraitValueMismatch
		}
	case "enum":
		if text == nil {
			return domain.ErrTraitValueMismatch
		}
		found := false
		for _, allowed := range vt.EnumValues {
			if *text == allowed {
				found = true
				break
			}
		}
		if !found {
			return domain.ErrTraitValueMismatch
		}
	case "text":
		if text == nil {
			return domain.ErrTraitValueMismatch
		}
	default:
		return domain.ErrTraitValueMismatch
	}
	return nil
}
