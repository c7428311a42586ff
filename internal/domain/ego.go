package domain

import (
	"time"

	"github.com/google/uuid"
)

// CognitiveFunction is one of the fixed set of 8 Jungian functions.
type CognitiveFunction struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Code         string    `json:"code" db:"code"`
	Name         string    `json:"name" db:"name"`
	FullName     string    `json:"full_name" db:"full_name"`
	Description  string    `json:"description" db:"description"`
	FunctionType string    `json:"function_type" db:"function_type"`
	Attitude     string    `json:"attitude" db:"attitude"`
	IsActive     bool      `json:"is_active" db:"is_active"`
}

// UserCognitiveFunction holds a user's score for one function; at most one
// row per (user, function), rank constrained to 1-8.
type UserCognitiveFunction struct {
	ID                uuid.UUID         `json:"id"`
	UserID            uuid.UUID         `json:"user_id"`
	CognitiveFunction CognitiveFunction `json:"cognitive_function"`
	RawScore          *int              `json:"raw_score"`
	NormalizedScore   *float64          `json:"normalized_score"`
	FunctionRank      *int              `json:"function_rank"`
	ConfidenceLevel   float64           `json:"confidence_level"`
	AssessmentSource  string            `json:"assessment_source"`
	Notes             *string           `json:"notes"`
	AssessedAt        time.Time         `json:"assessed_at"`
}

// CognitiveFunctionDistribution aggregates a user's scores along the
// thinking/feeling, sensing/intuition and attitude axes.
type CognitiveFunctionDistribution struct {
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	ThinkingAvg    float64   `json:"thinking_avg" db:"thinking_avg"`
	FeelingAvg     float64   `json:"feeling_avg" db:"feeling_avg"`
	SensingAvg     float64   `json:"sensing_avg" db:"sensing_avg"`
	IntuitionAvg   float64   `json:"intuition_avg" db:"intuition_avg"`
	IntrovertedAvg float64   `json:"introverted_avg" db:"introverted_avg"`
	ExtravertedAvg float64   `json:"extraverted_avg" db:"extraverted_avg"`
}

type TraitCategory struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description *string   `json:"description" db:"description"`
	Framework   *string   `json:"framework" db:"framework"`
	Version     string    `json:"version" db:"version"`
	IsActive    bool      `json:"is_active" db:"is_active"`
}

// TraitValueType declares how a trait's value is stored: numeric range,
// enum, boolean or free text.
type TraitValueType struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	DataType    string    `json:"data_type" db:"data_type"`
	MinValue    *float64  `json:"min_value" db:"min_value"`
	MaxValue    *float64  `json:"max_value" db:"max_value"`
	EnumValues  []string  `json:"enum_values" db:"enum_values"`
	Description *string   `json:"description" db:"description"`
}

// PersonalityTrait belongs optionally to a category and to exactly one
// value type.
type PersonalityTrait struct {
	ID              uuid.UUID      `json:"id"`
	Name            string         `json:"name"`
	Slug            string         `json:"slug"`
	Description     *string        `json:"description"`
	Category        *TraitCategory `json:"category,omitempty"`
	ValueType       TraitValueType `json:"value_type"`
	IsReverseScored bool           `json:"is_reverse_scored"`
	DisplayOrder    int            `json:"display_order"`
	Tags            []string       `json:"tags"`
	IsActive        bool           `json:"is_active"`
}

// UserPersonalityTrait stores exactly one of the value columns, consistent
// with the trait's value type.
type UserPersonalityTrait struct {
	ID               uuid.UUID        `json:"id"`
	UserID           uuid.UUID        `json:"user_id"`
	Trait            PersonalityTrait `json:"trait"`
	ValueNumeric     *float64         `json:"value_numeric"`
	ValueText        *string          `json:"value_text"`
	ValueBoolean     *bool            `json:"value_boolean"`
	ConfidenceLevel  float64          `json:"confidence_level"`
	AssessmentSource string           `json:"assessment_source"`
	AssessmentDate   time.Time        `json:"assessment_date"`
	Notes            *string          `json:"notes"`
	IsPublic         bool             `json:"is_public"`
}
