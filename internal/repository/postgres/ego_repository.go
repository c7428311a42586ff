package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/profilematch/backend/internal/domain"
	"github.com/profilematch/backend/internal/repository"
)

const cognitiveFunctionColumns = `
	id, code, name, full_name, description, function_type, attitude, is_active`

const userCognitiveFunctionColumns = `
	ucf.id, ucf.user_id, ucf.raw_score, ucf.normalized_score,
	ucf.function_rank, ucf.confidence_level, ucf.assessment_source,
	ucf.notes, ucf.assessed_at,
	cf.id AS function_id, cf.code AS function_code, cf.name AS function_name,
	cf.full_name AS function_full_name, cf.description AS function_description,
	cf.function_type, cf.attitude, cf.is_active AS function_is_active`

type userCognitiveFunctionRow struct {
	ID               uuid.UUID `db:"id"`
	UserID           uuid.UUID `db:"user_id"`
	RawScore         *int      `db:"raw_score"`
	NormalizedScore  *float64  `db:"normalized_score"`
	FunctionRank     *int      `db:"function_rank"`
	ConfidenceLevel  float64   `db:"confidence_level"`
	AssessmentSource string    `db:"assessment_source"`
	Notes            *string   `db:"notes"`
	AssessedAt       time.Time `db:"assessed_at"`

	FunctionID          uuid.UUID `db:"function_id"`
	FunctionCode        string    `db:"function_code"`
	FunctionName        string    `db:"function_name"`
	FunctionFullName    string    `db:"function_full_name"`
	FunctionDescription string    `db:"function_description"`
	FunctionType        string    `db:"function_type"`
	Attitude            string    `db:"attitude"`
	FunctionIsActive    bool      `db:"function_is_active"`
}

func (row *userCognitiveFunctionRow) toDomain() domain.UserCognitiveFunction {
	return domain.UserCognitiveFunction{
		ID:     row.ID,
		UserID: row.UserID,
		CognitiveFunction: domain.CognitiveFunction{
			ID:           row.FunctionID,
			Code:         row.FunctionCode,
			Name:         row.FunctionName,
			FullName:     row.FunctionFullName,
			Description:  row.FunctionDescription,
			FunctionType: row.FunctionType,
			Attitude:     row.Attitude,
			IsActive:     row.FunctionIsActive,
		},
		RawScore:         row.RawScore,
		NormalizedScore:  row.NormalizedScore,
		FunctionRank:     row.FunctionRank,
		ConfidenceLevel:  row.ConfidenceLevel,
		AssessmentSource: row.AssessmentSource,
		Notes:            row.Notes,
		AssessedAt:       row.AssessedAt,
	}
}

const traitColumns = `
	t.id, t.name, t.slug, t.description, t.is_reverse_scored,
	t.display_order, t.tags, t.is_active,
	tc.id AS category_id, tc.name AS category_name, tc.slug AS category_slug,
	tc.description AS category_description, tc.framework AS category_framework,
	tc.version AS category_version, tc.is_active AS category_is_active,
	vt.id AS value_type_id, vt.name AS value_type_name, vt.data_type,
	vt.min_value, vt.max_value, vt.enum_values,
	vt.description AS value_type_description`

type traitRow struct {
	ID              uuid.UUID      `db:"id"`
	Name            string         `db:"name"`
	Slug            string         `db:"slug"`
	Description     *string        `db:"description"`
	IsReverseScored bool           `db:"is_reverse_scored"`
	DisplayOrder    int            `db:"display_order"`
	Tags            pq.StringArray `db:"tags"`
	IsActive        bool           `db:"is_active"`

	CategoryID          *uuid.UUID `db:"category_id"`
	CategoryName        *string    `db:"category_name"`
	CategorySlug        *string    `db:"category_slug"`
	CategoryDescription *string    `db:"category_description"`
	CategoryFramework   *string    `db:"category_framework"`
	CategoryVersion     *string    `db:"category_version"`
	CategoryIsActive    *bool      `db:"category_is_active"`

	ValueTypeID          uuid.UUID      `db:"value_type_id"`
	ValueTypeName        string         `db:"value_type_name"`
	DataType             string         `db:"data_type"`
	MinValue             *float64       `db:"min_value"`
	MaxValue             *float64       `db:"max_value"`
	EnumValues           pq.StringArray `db:"enum_values"`
	ValueTypeDescription *string        `db:"value_type_description"`
}

func (row *traitRow) toDomain() domain.PersonalityTrait {
	t := domain.PersonalityTrait{
		ID:          row.ID,
		Name:        row.Name,
		Slug:        row.Slug,
		Description: row.Description,
		ValueType: domain.TraitValueType{
			ID:          row.ValueTypeID,
			Name:        row.ValueTypeName,
			DataType:    row.DataType,
			MinValue:    row.MinValue,
			MaxValue:    row.MaxValue,
			EnumValues:  []string(row.EnumValues),
			Description: row.ValueTypeDescription,
		},
		IsReverseScored: row.IsReverseScored,
		DisplayOrder:    row.DisplayOrder,
		Tags:            []string(row.Tags),
		IsActive:        row.IsActive,
	}

	t.Category = nested(row.CategoryID, func() domain.TraitCategory {
		c := domain.TraitCategory{
			ID:          *row.CategoryID,
			Name:        deref(row.CategoryName),
			Slug:        deref(row.CategorySlug),
			Description: row.CategoryDescription,
			Framework:   row.CategoryFramework,
			Version:     deref(row.CategoryVersion),
		}
		if row.CategoryIsActive != nil {
			c.IsActive = *row.CategoryIsActive
		}
		return c
	})

	return t
}

const userTraitColumns = `
	upt.id AS user_trait_id, upt.user_id, upt.value_numeric, upt.value_text,
	upt.value_boolean, upt.confidence_level, upt.assessment_source,
	upt.assessment_date, upt.notes AS user_trait_notes, upt.is_public,` + traitColumns

type userTraitRow struct {
	UserTraitID      uuid.UUID `db:"user_trait_id"`
	UserID           uuid.UUID `db:"user_id"`
	ValueNumeric     *float64  `db:"value_numeric"`
	ValueText        *string   `db:"value_text"`
	ValueBoolean     *bool     `db:"value_boolean"`
	ConfidenceLevel  float64   `db:"confidence_level"`
	AssessmentSource string    `db:"assessment_source"`
	AssessmentDate   time.Time `db:"assessment_date"`
	UserTraitNotes   *string   `db:"user_trait_notes"`
	IsPublic         bool      `db:"is_public"`

	traitRow
}

func (row *userTraitRow) toDomain() domain.UserPersonalityTrait {
	return domain.UserPersonalityTrait{
		ID:               row.UserTraitID,
		UserID:           row.UserID,
		Trait:            row.traitRow.toDomain(),
		ValueNumeric:     row.ValueNumeric,
		ValueText:        row.ValueText,
		ValueBoolean:     row.ValueBoolean,
		ConfidenceLevel:  row.ConfidenceLevel,
		AssessmentSource: row.AssessmentSource,
		AssessmentDate:   row.AssessmentDate,
		Notes:            row.UserTraitNotes,
		IsPublic:         row.IsPublic,
	}
}

type egoRepository struct {
	db *sqlx.DB
}

func NewEgoRepository(db *sqlx.DB) repository.EgoRepository {
	return &egoRepository{db: db}
}

func (r *egoRepository) ListCognitiveFunctions(ctx context.Context, filter repository.CognitiveFunctionFilter) ([]domain.CognitiveFunction, error) {
	b := newCondBuilder()
	b.Raw("is_active = true").
		EqOpt("function_type", filter.FunctionType).
		EqOpt("attitude", filter.Attitude)

	query := `SELECT` + cognitiveFunctionColumns + `
		FROM cognitive_functions` + b.Where() + `
		ORDER BY code`

	functions := []domain.CognitiveFunction{}
	if err := r.db.SelectContext(ctx, &functions, query, b.Args()...); err != nil {
		return nil, err
	}
	return functions, nil
}

func (r *egoRepository) GetCognitiveFunction(ctx context.Context, functionID uuid.UUID) (*domain.CognitiveFunction, error) {
	query := `SELECT` + cognitiveFunctionColumns + `
		FROM cognitive_functions
		WHERE id = $1 AND is_active = true`

	var cf domain.CognitiveFunction
	if err := r.db.GetContext(ctx, &cf, query, functionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCognitiveFunctionNotFound
		}
		return nil, err
	}
	return &cf, nil
}

func (r *egoRepository) ListUserCognitiveFunctions(ctx context.Context, userID uuid.UUID) ([]domain.UserCognitiveFunction, error) {
	query := `SELECT` + userCognitiveFunctionColumns + `
		FROM user_cognitive_functions ucf
		JOIN cognitive_functions cf ON cf.id = ucf.function_id
		WHERE ucf.user_id = $1
		ORDER BY ucf.function_rank NULLS LAST, cf.code`

	rows := []userCognitiveFunctionRow{}
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}

	scores := make([]domain.UserCognitiveFunction, 0, len(rows))
	for i := range rows {
		scores = append(scores, rows[i].toDomain())
	}
	return scores, nil
}

func (r *egoRepository) GetUserCognitiveFunction(ctx context.Context, userID, functionID uuid.UUID) (*domain.UserCognitiveFunction, error) {
	query := `SELECT` + userCognitiveFunctionColumns + `
		FROM user_cognitive_functions ucf
		JOIN cognitive_functions cf ON cf.id = ucf.function_id
		WHERE ucf.user_id = $1 AND ucf.function_id = $2`

	var row userCognitiveFunctionRow
	if err := r.db.GetContext(ctx, &row, query, userID, functionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserCognitiveFunctionNotFound
		}
		return nil, err
	}
	score := row.toDomain()
	return &score, nil
}

func (r *egoRepository) CreateUserCognitiveFunction(ctx context.Context, userID uuid.UUID, input repository.CreateUserCognitiveFunctionInput) (*domain.UserCognitiveFunction, error) {
	query := `
		INSERT INTO user_cognitive_functions (
			user_id, function_id, raw_score, normalized_score, function_rank,
			confidence_level, assessment_source, assessed_at
		) VALUES (
			$1, $2, $3, $4, $5,
			COALESCE($6, 0.5), COALESCE($7, 'self_assessment'), COALESCE($8, NOW())
		)`

	_, err := r.db.ExecContext(ctx, query,
		userID, input.FunctionID, input.RawScore, input.NormalizedScore,
		input.FunctionRank, input.ConfidenceLevel, input.AssessmentSource,
		input.AssessedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserCognitiveFunctionExists
		}
		if isForeignKeyViolation(err) {
			return nil, domain.ErrCognitiveFunctionNotFound
		}
		return nil, err
	}

	return r.GetUserCognitiveFunction(ctx, userID, input.FunctionID)
}

func (r *egoRepository) UpdateUserCognitiveFunction(ctx context.Context, userID, functionID uuid.UUID, input repository.UpdateUserCognitiveFunctionInput) (*domain.UserCognitiveFunction, error) {
	b := newUpdateBuilder()
	b.SetOpt("raw_score", input.RawScore).
		SetOpt("normalized_score", input.NormalizedScore).
		SetOpt("function_rank", input.FunctionRank).
		SetOpt("confidence_level", input.ConfidenceLevel).
		SetOpt("assessment_source", input.AssessmentSource).
		SetOpt("assessed_at", input.AssessedAt)

	if b.Empty() {
		return nil, domain.ErrEmptyUpdate
	}

	clause, next := b.Clause()
	query := `UPDATE user_cognitive_functions ` + clause + `, updated_at = NOW()
		WHERE user_id = $` + itoa(next) + ` AND function_id = $` + itoa(next+1)

	result, err := r.db.ExecContext(ctx, query, b.Args(userID, functionID)...)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrUserCognitiveFunctionNotFound
	}

	return r.GetUserCognitiveFunction(ctx, userID, functionID)
}

func (r *egoRepository) DeleteUserCognitiveFunction(ctx context.Context, userID, functionID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM user_cognitive_functions WHERE user_id = $1 AND function_id = $2`,
		userID, functionID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrUserCognitiveFunctionNotFound
	}
	return nil
}

func (r *egoRepository) GetDistribution(ctx context.Context, userID uuid.UUID) (*domain.CognitiveFunctionDistribution, error) {
	query := `
		SELECT user_id, thinking_avg, feeling_avg, sensing_avg,
			intuition_avg, introverted_avg, extraverted_avg
		FROM cognitive_function_distribution
		WHERE user_id = $1`

	var dist domain.CognitiveFunctionDistribution
	if err := r.db.GetContext(ctx, &dist, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDistributionNotFound
		}
		return nil, err
	}
	return &dist, nil
}

func (r *egoRepository) ListTraitCategories(ctx context.Context) ([]domain.TraitCategory, error) {
	query := `
		SELECT id, name, slug, description, framework, version, is_active
		FROM trait_categories
		WHERE is_active = true
		ORDER BY name`

	categories := []domain.TraitCategory{}
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *egoRepository) ListTraitValueTypes(ctx context.Context) ([]domain.TraitValueType, error) {
	query := `
		SELECT id, name, data_type, min_value, max_value, enum_values, description
		FROM trait_value_types
		ORDER BY name`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := []domain.TraitValueType{}
	for rows.Next() {
		var vt domain.TraitValueType
		var enumValues pq.StringArray
		if err := rows.Scan(&vt.ID, &vt.Name, &vt.DataType, &vt.MinValue,
			&vt.MaxValue, &enumValues, &vt.Description); err != nil {
			return nil, err
		}
		vt.EnumValues = []string(enumValues)
		types = append(types, vt)
	}
	return types, rows.Err()
}

func (r *egoRepository) ListTraits(ctx context.Context, filter repository.TraitFilter) ([]domain.PersonalityTrait, error) {
	b := newCondBuilder()
	b.Raw("t.is_active = true").
		EqOpt("t.category_id", filter.CategoryID).
		EqOpt("tc.framework", filter.Framework)
	if filter.Tag != nil {
		b.AnyTag("t.tags", *filter.Tag)
	}

	query := `SELECT` + traitColumns + `
		FROM personality_traits t
		JOIN trait_value_types vt ON vt.id = t.value_type_id
		LEFT JOIN trait_categories tc ON tc.id = t.category_id` + b.Where() + `
		ORDER BY t.display_order, t.name`

	rows := []traitRow{}
	if err := r.db.SelectContext(ctx, &rows, query, b.Args()...); err != nil {
		return nil, err
	}

	traits := make([]domain.PersonalityTrait, 0, len(rows))
	for i := range rows {
		traits = append(traits, rows[i].toDomain())
	}
	return traits, nil
}

func (r *egoRepository) GetTrait(ctx context.Context, traitID uuid.UUID) (*domain.PersonalityTrait, error) {
	query := `SELECT` + traitColumns + `
		FROM personality_traits t
		JOIN trait_value_types vt ON vt.id = t.value_type_id
		LEFT JOIN trait_categories tc ON tc.id = t.category_id
		WHERE t.id = $1 AND t.is_active = true`

	var row traitRow
	if err := r.db.GetContext(ctx, &row, query, traitID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTraitNotFound
		}
		return nil, err
	}
	trait := row.toDomain()
	return &trait, nil
}

func (r *egoRepository) ListUserTraits(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) ([]domain.UserPersonalityTrait, error) {
	b := newCondBuilder()
	b.Eq("upt.user_id", userID).
		EqOpt("t.category_id", categoryID)

	query := `SELECT` + userTraitColumns + `
		FROM user_personality_traits upt
		JOIN personality_traits t ON t.id = upt.trait_id
		JOIN trait_value_types vt ON vt.id = t.value_type_id
		LEFT JOIN trait_categories tc ON tc.id = t.category_id` + b.Where() + `
		ORDER BY t.display_order, t.name`

	rows := []userTraitRow{}
	if err := r.db.SelectContext(ctx, &rows, query, b.Args()...); err != nil {
		return nil, err
	}

	values := make([]domain.UserPersonalityTrait, 0, len(rows))
	for i := range rows {
		values = append(values, rows[i].toDomain())
	}
	return values, nil
}

func (r *egoRepository) GetUserTrait(ctx context.Context, userID, traitID uuid.UUID) (*domain.UserPersonalityTrait, error) {
	query := `SELECT` + userTraitColumns + `
		FROM user_personality_traits upt
		JOIN personality_traits t ON t.id = upt.trait_id
		JOIN trait_value_types vt ON vt.id = t.value_type_id
		LEFT JOIN trait_categories tc ON tc.id = t.category_id
		WHERE upt.user_id = $1 AND upt.trait_id = $2`

	var row userTraitRow
	if err := r.db.GetContext(ctx, &row, query, userID, traitID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserTraitNotFound
		}
		return nil, err
	}
	value := row.toDomain()
	return &value, nil
}

func (r *egoRepository) CreateUserTrait(ctx context.Context, userID uuid.UUID, input repository.CreateUserTraitInput) (*domain.UserPersonalityTrait, error) {
	query := `
		INSERT INTO user_personality_traits (
			user_id, trait_id, value_numeric, value_text, value_boolean,
			confidence_level, assessment_source, assessment_date
		) VALUES (
			$1, $2, $3, $4, $5,
			COALESCE($6, 0.5), COALESCE($7, 'self_assessment'), COALESCE($8, NOW())
		)`

	_, err := r.db.ExecContext(ctx, query,
		userID, input.TraitID, input.ValueNumeric, input.ValueText,
		input.ValueBoolean, input.ConfidenceLevel, input.AssessmentSource,
		input.AssessedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserTraitExists
		}
		if isForeignKeyViolation(err) {
			return nil, domain.ErrTraitNotFound
		}
		return nil, err
	}

	return r.GetUserTrait(ctx, userID, input.TraitID)
}

func (r *egoRepository) UpdateUserTrait(ctx context.Context, userID, traitID uuid.UUID, input repository.UpdateUserTraitInput) (*domain.UserPersonalityTrait, error) {
	b := newUpdateBuilder()
	b.SetOpt("value_numeric", input.ValueNumeric).
		SetOpt("value_text", input.ValueText).
		SetOpt("value_boolean", input.ValueBoolean).
		SetOpt("confidence_level", input.ConfidenceLevel).
		SetOpt("assessment_source", input.AssessmentSource).
		SetOpt("assessment_date", input.AssessedAt)

	if b.Empty() {
		return nil, domain.ErrEmptyUpdate
	}

	clause, next := b.Clause()
	query := `UPDATE user_personality_traits ` + clause + `, updated_at = NOW()
		WHERE user_id = $` + itoa(next) + ` AND trait_id = $` + itoa(next+1)

	result, err := r.db.ExecContext(ctx, query, b.Args(userID, traitID)...)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrUserTraitNotFound
	}

	return r.GetUserTrait(ctx, userID, traitID)
}

func (r *egoRepository) DeleteUserTrait(ctx context.Context, userID, traitID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM user_personality_traits WHERE user_id = $1 AND trait_id = $2`,
		userID, traitID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrUserTraitNotFound
	}
	return nil
}
