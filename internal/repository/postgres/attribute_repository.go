package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/profilematch/backend/internal/domain"
	"github.com/profilematch/backend/internal/repository"
)

const categoryColumns = `
	id, code, name, name_en, description, parent_id, level, path,
	icon_name, color_code, sort_order, is_active, is_system`

const attributeColumns = `
	a.id, a.code, a.name, a.name_en, a.description, a.category_id,
	c.name AS category_name, c.path AS category_path,
	a.tags, a.difficulty_level, a.time_commitment, a.cost_level,
	a.physical_intensity, a.social_aspect, a.indoor_outdoor,
	a.popularity_score, a.is_active`

type attributeRow struct {
	ID                uuid.UUID      `db:"id"`
	Code              string         `db:"code"`
	Name              string         `db:"name"`
	NameEn            *string        `db:"name_en"`
	Description       *string        `db:"description"`
	CategoryID        uuid.UUID      `db:"category_id"`
	CategoryName      *string        `db:"category_name"`
	CategoryPath      *string        `db:"category_path"`
	Tags              pq.StringArray `db:"tags"`
	DifficultyLevel   string         `db:"difficulty_level"`
	TimeCommitment    string         `db:"time_commitment"`
	CostLevel         string         `db:"cost_level"`
	PhysicalIntensity string         `db:"physical_intensity"`
	SocialAspect      string         `db:"social_aspect"`
	IndoorOutdoor     string         `db:"indoor_outdoor"`
	PopularityScore   int            `db:"popularity_score"`
	IsActive          bool           `db:"is_active"`
}

func (row *attributeRow) toDomain() domain.Attribute {
	return domain.Attribute{
		ID:                row.ID,
		Code:              row.Code,
		Name:              row.Name,
		NameEn:            row.NameEn,
		Description:       row.Description,
		CategoryID:        row.CategoryID,
		CategoryName:      row.CategoryName,
		CategoryPath:      row.CategoryPath,
		Tags:              []string(row.Tags),
		DifficultyLevel:   row.DifficultyLevel,
		TimeCommitment:    row.TimeCommitment,
		CostLevel:         row.CostLevel,
		PhysicalIntensity: row.PhysicalIntensity,
		SocialAspect:      row.SocialAspect,
		IndoorOutdoor:     row.IndoorOutdoor,
		PopularityScore:   row.PopularityScore,
		IsActive:          row.IsActive,
	}
}

// userAttributeColumns aliases the joined attribute columns so the
// association row scans into one flat struct.
const userAttributeColumns = `
	ua.id, ua.user_id, ua.attribute_id, ua.interest_level, ua.skill_level,
	ua.experience_years, ua.frequency, ua.time_spent_weekly,
	ua.enjoyment_rating, ua.status, ua.is_public, ua.is_featured, ua.notes,
	a.code AS attr_code, a.name AS attr_name, a.name_en AS attr_name_en,
	a.description AS attr_description, a.category_id,
	c.name AS category_name, c.path AS category_path,
	a.tags AS attr_tags, a.difficulty_level, a.time_commitment,
	a.cost_level, a.physical_intensity, a.social_aspect,
	a.indoor_outdoor, a.popularity_score, a.is_active AS attr_is_active`

type userAttributeRow struct {
	ID              uuid.UUID `db:"id"`
	UserID          uuid.UUID `db:"user_id"`
	AttributeID     uuid.UUID `db:"attribute_id"`
	InterestLevel   int       `db:"interest_level"`
	SkillLevel      string    `db:"skill_level"`
	ExperienceYears *int      `db:"experience_years"`
	Frequency       *string   `db:"frequency"`
	TimeSpentWeekly *int      `db:"time_spent_weekly"`
	EnjoymentRating *int      `db:"enjoyment_rating"`
	Status          string    `db:"status"`
	IsPublic        bool      `db:"is_public"`
	IsFeatured      bool      `db:"is_featured"`
	Notes           *string   `db:"notes"`

	AttrCode          string         `db:"attr_code"`
	AttrName          string         `db:"attr_name"`
	AttrNameEn        *string        `db:"attr_name_en"`
	AttrDescription   *string        `db:"attr_description"`
	CategoryID        uuid.UUID      `db:"category_id"`
	CategoryName      *string        `db:"category_name"`
	CategoryPath      *string        `db:"category_path"`
	AttrTags          pq.StringArray `db:"attr_tags"`
	DifficultyLevel   string         `db:"difficulty_level"`
	TimeCommitment    string         `db:"time_commitment"`
	CostLevel         string         `db:"cost_level"`
	PhysicalIntensity string         `db:"physical_intensity"`
	SocialAspect      string         `db:"social_aspect"`
	IndoorOutdoor     string         `db:"indoor_outdoor"`
	PopularityScore   int            `db:"popularity_score"`
	AttrIsActive      bool           `db:"attr_is_active"`
}

func (row *userAttributeRow) toDomain() domain.UserAttribute {
	attr := &domain.Attribute{
		ID:                row.AttributeID,
		Code:              row.AttrCode,
		Name:              row.AttrName,
		NameEn:            row.AttrNameEn,
		Description:       row.AttrDescription,
		CategoryID:        row.CategoryID,
		CategoryName:      row.CategoryName,
		CategoryPath:      row.CategoryPath,
		Tags:              []string(row.AttrTags),
		DifficultyLevel:   row.DifficultyLevel,
		TimeCommitment:    row.TimeCommitment,
		CostLevel:         row.CostLevel,
		PhysicalIntensity: row.PhysicalIntensity,
		SocialAspect:      row.SocialAspect,
		IndoorOutdoor:     row.IndoorOutdoor,
		PopularityScore:   row.PopularityScore,
		IsActive:          row.AttrIsActive,
	}
	return domain.UserAttribute{
		ID:              row.ID,
		UserID:          row.UserID,
		AttributeID:     row.AttributeID,
		Attribute:       attr,
		InterestLevel:   row.InterestLevel,
		SkillLevel:      row.SkillLevel,
		ExperienceYears: row.ExperienceYears,
		Frequency:       row.Frequency,
		TimeSpentWeekly: row.TimeSpentWeekly,
		EnjoymentRating: row.EnjoymentRating,
		Status:          row.Status,
		IsPublic:        row.IsPublic,
		IsFeatured:      row.IsFeatured,
		Notes:           row.Notes,
	}
}

type attributeRepository struct {
	db *sqlx.DB
}

func NewAttributeRepository(db *sqlx.DB) repository.AttributeRepository {
	return &attributeRepository{db: db}
}

func (r *attributeRepository) ListCategories(ctx context.Context, filter repository.CategoryFilter) ([]*domain.AttributeCategory, error) {
	b := newCondBuilder()
	if !filter.IncludeInactive {
		b.Raw("is_active = true")
	}
	b.EqOpt("parent_id", filter.ParentID).
		LteOpt("level", filter.MaxLevel)

	query := `SELECT` + categoryColumns + `
		FROM attribute_categories` + b.Where() + `
		ORDER BY level, sort_order, name`

	categories := []*domain.AttributeCategory{}
	if err := r.db.SelectContext(ctx, &categories, query, b.Args()...); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *attributeRepository) ListSubcategories(ctx context.Context, parentID uuid.UUID, includeInactive bool) ([]*domain.AttributeCategory, error) {
	b := newCondBuilder()
	b.Eq("parent_id", parentID)
	if !includeInactive {
		b.Raw("is_active = true")
	}

	query := `SELECT` + categoryColumns + `
		FROM attribute_categories` + b.Where() + `
		ORDER BY sort_order, name`

	categories := []*domain.AttributeCategory{}
	if err := r.db.SelectContext(ctx, &categories, query, b.Args()...); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *attributeRepository) CategoryExists(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM attribute_categories WHERE id = $1 AND is_active = true)`
	if err := r.db.GetContext(ctx, &exists, query, categoryID); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *attributeRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID, includeInactive bool) ([]domain.Attribute, error) {
	b := newCondBuilder()
	b.Eq("a.category_id", categoryID)
	if !includeInactive {
		b.Raw("a.is_active = true")
	}

	query := `SELECT` + attributeColumns + `
		FROM attributes a
		LEFT JOIN attribute_categories c ON c.id = a.category_id` + b.Where() + `
		ORDER BY a.popularity_score DESC, a.name`

	return r.selectAttributes(ctx, query, b.Args()...)
}

func (r *attributeRepository) Search(ctx context.Context, filter repository.AttributeSearchFilter) ([]domain.Attribute, error) {
	b := newCondBuilder()
	b.Raw("a.is_active = true").
		SearchAnyTag(filter.Query, "a.tags", "a.name", "a.name_en", "a.description").
		EqOpt("a.category_id", filter.CategoryID).
		EqOpt("a.difficulty_level", filter.DifficultyLevel).
		EqOpt("a.time_commitment", filter.TimeCommitment).
		EqOpt("a.cost_level", filter.CostLevel)
	if filter.Tag != nil {
		b.AnyTag("a.tags", *filter.Tag)
	}

	query := `SELECT` + attributeColumns + `
		FROM attributes a
		LEFT JOIN attribute_categories c ON c.id = a.category_id` + b.Where() + `
		ORDER BY a.popularity_score DESC, a.name` + b.Limit(filter.Limit)

	return r.selectAttributes(ctx, query, b.Args()...)
}

func (r *attributeRepository) ListPopular(ctx context.Context, filter repository.PopularAttributeFilter) ([]domain.Attribute, error) {
	b := newCondBuilder()
	b.Raw("a.is_active = true").
		EqOpt("a.category_id", filter.CategoryID)

	query := `SELECT` + attributeColumns + `
		FROM attributes a
		LEFT JOIN attribute_categories c ON c.id = a.category_id` + b.Where() + `
		ORDER BY a.popularity_score DESC, a.name` + b.Limit(filter.Limit)

	return r.selectAttributes(ctx, query, b.Args()...)
}

func (r *attributeRepository) AttributeExists(ctx context.Context, attributeID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM attributes WHERE id = $1 AND is_active = true)`
	if err := r.db.GetContext(ctx, &exists, query, attributeID); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *attributeRepository) selectAttributes(ctx context.Context, query string, args ...interface{}) ([]domain.Attribute, error) {
	rows := []attributeRow{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	attributes := make([]domain.Attribute, 0, len(rows))
	for i := range rows {
		attributes = append(attributes, rows[i].toDomain())
	}
	return attributes, nil
}

func (r *attributeRepository) ListUserAttributes(ctx context.Context, userID uuid.UUID, filter repository.UserAttributeFilter) ([]domain.UserAttribute, error) {
	b := newCondBuilder()
	b.Eq("ua.user_id", userID).
		EqOpt("ua.status", filter.Status).
		EqOpt("ua.is_featured", filter.IsFeatured).
		EqOpt("ua.is_public", filter.IsPublic)

	query := `SELECT` + userAttributeColumns + `
		FROM user_attributes ua
		JOIN attributes a ON a.id = ua.attribute_id
		LEFT JOIN attribute_categories c ON c.id = a.category_id` + b.Where() + `
		ORDER BY ua.is_featured DESC, ua.interest_level DESC, a.name`

	rows := []userAttributeRow{}
	if err := r.db.SelectContext(ctx, &rows, query, b.Args()...); err != nil {
		return nil, err
	}

	associations := make([]domain.UserAttribute, 0, len(rows))
	for i := range rows {
		associations = append(associations, rows[i].toDomain())
	}
	return associations, nil
}

func (r *attributeRepository) GetUserAttribute(ctx context.Context, userID, attributeID uuid.UUID) (*domain.UserAttribute, error) {
	query := `SELECT` + userAttributeColumns + `
		FROM user_attributes ua
		JOIN attributes a ON a.id = ua.attribute_id
		LEFT JOIN attribute_categories c ON c.id = a.category_id
		WHERE ua.user_id = $1 AND ua.attribute_id = $2`

	var row userAttributeRow
	if err := r.db.GetContext(ctx, &row, query, userID, attributeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserAttributeNotFound
		}
		return nil, err
	}
	ua := row.toDomain()
	return &ua, nil
}

func (r *attributeRepository) CreateUserAttribute(ctx context.Context, userID, attributeID uuid.UUID, input repository.UserAttributeInput) (*domain.UserAttribute, error) {
	query := `
		INSERT INTO user_attributes (
			user_id, attribute_id, interest_level, skill_level,
			experience_years, frequency, time_spent_weekly,
			enjoyment_rating, status, is_public, is_featured, notes
		) VALUES (
			$1, $2, COALESCE($3, 5), COALESCE($4, 'beginner'),
			$5, $6, $7, $8, COALESCE($9, 'active'),
			COALESCE($10, true), COALESCE($11, false), $12
		)`

	_, err := r.db.ExecContext(ctx, query,
		userID, attributeID, input.InterestLevel, input.SkillLevel,
		input.ExperienceYears, input.Frequency, input.TimeSpentWeekly,
		input.EnjoymentRating, input.Status, input.IsPublic,
		input.IsFeatured, input.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserAttributeExists
		}
		if isForeignKeyViolation(err) {
			return nil, domain.ErrAttributeNotFound
		}
		return nil, err
	}

	return r.GetUserAttribute(ctx, userID, attributeID)
}

func (r *attributeRepository) UpdateUserAttribute(ctx context.Context, userID, attributeID uuid.UUID, input repository.UserAttributeInput) (*domain.UserAttribute, error) {
	b := newUpdateBuilder()
	b.SetOpt("interest_level", input.InterestLevel).
		SetOpt("skill_level", input.SkillLevel).
		SetOpt("experience_years", input.ExperienceYears).
		SetOpt("frequency", input.Frequency).
		SetOpt("time_spent_weekly", input.TimeSpentWeekly).
		SetOpt("enjoyment_rating", input.EnjoymentRating).
		SetOpt("status", input.Status).
		SetOpt("is_public", input.IsPublic).
		SetOpt("is_featured", input.IsFeatured).
		SetOpt("notes", input.Notes)

	if b.Empty() {
		return nil, domain.ErrEmptyUpdate
	}

	clause, next := b.Clause()
	query := `UPDATE user_attributes ` + clause + `, updated_at = NOW()
		WHERE user_id = $` + itoa(next) + ` AND attribute_id = $` + itoa(next+1)

	result, err := r.db.ExecContext(ctx, query, b.Args(userID, attributeID)...)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrUserAttributeNotFound
	}

	return r.GetUserAttribute(ctx, userID, attributeID)
}

func (r *attributeRepository) DeleteUserAttribute(ctx context.Context, userID, attributeID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM user_attributes WHERE user_id = $1 AND attribute_id = $2`,
		userID, attributeID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrUserAttributeNotFound
	}
	return nil
}
