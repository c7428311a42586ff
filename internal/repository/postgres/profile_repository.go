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
	"github.com/profilematch/backend/internal/pkg/logger"
	"github.com/profilematch/backend/internal/repository"
)

// profileColumns is the select list over the user_profile_summary view,
// which left-joins every dictionary with aliased columns.
const profileColumns = `
	user_id, display_name, first_name, last_name, bio, avatar_url,
	birth_date, age, timezone, company, school, phone, website_url,
	profile_visibility, profile_completion_percentage, last_active_at,
	is_active, is_verified, created_at,
	gender_id, gender_code, gender_name, gender_name_en,
	region_id, region_code, region_name, region_name_en, region_parent_id, region_level,
	occupation_id, occupation_code, occupation_name, occupation_name_en, occupation_category_id,
	education_level_id, education_code, education_name, education_name_en, education_level_order,
	relationship_status_id, relationship_code, relationship_name, relationship_name_en`

// profileRow is the flat scan target; nullable dictionary joins come
// back as nil pointers.
type profileRow struct {
	UserID                      uuid.UUID  `db:"user_id"`
	DisplayName                 *string    `db:"display_name"`
	FirstName                   *string    `db:"first_name"`
	LastName                    *string    `db:"last_name"`
	Bio                         *string    `db:"bio"`
	AvatarURL                   *string    `db:"avatar_url"`
	BirthDate                   *time.Time `db:"birth_date"`
	Age                         *int       `db:"age"`
	Timezone                    *string    `db:"timezone"`
	Company                     *string    `db:"company"`
	School                      *string    `db:"school"`
	Phone                       *string    `db:"phone"`
	WebsiteURL                  *string    `db:"website_url"`
	ProfileVisibility           string     `db:"profile_visibility"`
	ProfileCompletionPercentage int        `db:"profile_completion_percentage"`
	LastActiveAt                *time.Time `db:"last_active_at"`
	IsActive                    bool       `db:"is_active"`
	IsVerified                  bool       `db:"is_verified"`
	CreatedAt                   time.Time  `db:"created_at"`

	GenderID     *uuid.UUID `db:"gender_id"`
	GenderCode   *string    `db:"gender_code"`
	GenderName   *string    `db:"gender_name"`
	GenderNameEn *string    `db:"gender_name_en"`

	RegionID       *uuid.UUID `db:"region_id"`
	RegionCode     *string    `db:"region_code"`
	RegionName     *string    `db:"region_name"`
	RegionNameEn   *string    `db:"region_name_en"`
	RegionParentID *uuid.UUID `db:"region_parent_id"`
	RegionLevel    *int       `db:"region_level"`

	OccupationID         *uuid.UUID `db:"occupation_id"`
	OccupationCode       *string    `db:"occupation_code"`
	OccupationName       *string    `db:"occupation_name"`
	OccupationNameEn     *string    `db:"occupation_name_en"`
	OccupationCategoryID *uuid.UUID `db:"occupation_category_id"`

	EducationLevelID    *uuid.UUID `db:"education_level_id"`
	EducationCode       *string    `db:"education_code"`
	EducationName       *string    `db:"education_name"`
	EducationNameEn     *string    `db:"education_name_en"`
	EducationLevelOrder *int       `db:"education_level_order"`

	RelationshipStatusID *uuid.UUID `db:"relationship_status_id"`
	RelationshipCode     *string    `db:"relationship_code"`
	RelationshipName     *string    `db:"relationship_name"`
	RelationshipNameEn   *string    `db:"relationship_name_en"`
}

func (row *profileRow) toDomain() *domain.Profile {
	p := &domain.Profile{
		ID:                          row.UserID,
		DisplayName:                 row.DisplayName,
		FirstName:                   row.FirstName,
		LastName:                    row.LastName,
		Bio:                         row.Bio,
		AvatarURL:                   row.AvatarURL,
		BirthDate:                   row.BirthDate,
		Age:                         row.Age,
		Timezone:                    row.Timezone,
		Company:                     row.Company,
		School:                      row.School,
		Phone:                       row.Phone,
		WebsiteURL:                  row.WebsiteURL,
		ProfileVisibility:           row.ProfileVisibility,
		ProfileCompletionPercentage: row.ProfileCompletionPercentage,
		LastActiveAt:                row.LastActiveAt,
		IsActive:                    row.IsActive,
		IsVerified:                  row.IsVerified,
		CreatedAt:                   row.CreatedAt,
	}

	p.Gender = nested(row.GenderID, func() domain.Gender {
		return domain.Gender{
			ID:     *row.GenderID,
			Code:   deref(row.GenderCode),
			Name:   deref(row.GenderName),
			NameEn: row.GenderNameEn,
		}
	})
	p.Region = nested(row.RegionID, func() domain.Region {
		return domain.Region{
			ID:       *row.RegionID,
			Code:     deref(row.RegionCode),
			Name:     deref(row.RegionName),
			NameEn:   row.RegionNameEn,
			ParentID: row.RegionParentID,
			Level:    derefInt(row.RegionLevel),
		}
	})
	p.Occupation = nested(row.OccupationID, func() domain.Occupation {
		return domain.Occupation{
			ID:         *row.OccupationID,
			Code:       deref(row.OccupationCode),
			Name:       deref(row.OccupationName),
			NameEn:     row.OccupationNameEn,
			CategoryID: row.OccupationCategoryID,
		}
	})
	p.EducationLevel = nested(row.EducationLevelID, func() domain.EducationLevel {
		return domain.EducationLevel{
			ID:         *row.EducationLevelID,
			Code:       deref(row.EducationCode),
			Name:       deref(row.EducationName),
			NameEn:     row.EducationNameEn,
			LevelOrder: derefInt(row.EducationLevelOrder),
		}
	})
	p.RelationshipStatus = nested(row.RelationshipStatusID, func() domain.RelationshipStatus {
		return domain.RelationshipStatus{
			ID:     *row.RelationshipStatusID,
			Code:   deref(row.RelationshipCode),
			Name:   deref(row.RelationshipName),
			NameEn: row.RelationshipNameEn,
		}
	})

	return p
}

type profileRepository struct {
	db  *sqlx.DB
	log *logger.Logger
}

func NewProfileRepository(db *sqlx.DB, log *logger.Logger) repository.ProfileRepository {
	return &profileRepository{db: db, log: log}
}

func (r *profileRepository) GetByID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	query := `SELECT` + profileColumns + `
		FROM user_profile_summary
		WHERE user_id = $1`

	var row profileRow
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *profileRepository) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM user_profiles WHERE user_id = $1 AND deleted_at IS NULL)`
	if err := r.db.GetContext(ctx, &exists, query, userID); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *profileRepository) Create(ctx context.Context, userID uuid.UUID, input repository.ProfileInput) error {
	query := `
		INSERT INTO user_profiles (
			user_id, display_name, first_name, last_name, bio, avatar_url,
			birth_date, gender_id, region_id, timezone, occupation_id,
			education_level_id, company, school, relationship_status_id,
			phone, website_url, profile_visibility
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, COALESCE($18, 'public'))`

	_, err := r.db.ExecContext(ctx, query,
		userID, input.DisplayName, input.FirstName, input.LastName, input.Bio,
		input.AvatarURL, input.BirthDate, input.GenderID, input.RegionID,
		input.Timezone, input.OccupationID, input.EducationLevelID,
		input.Company, input.School, input.RelationshipStatusID,
		input.Phone, input.WebsiteURL, input.ProfileVisibility,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProfileAlreadyExists
		}
		return err
	}
	return nil
}

func (r *profileRepository) Update(ctx context.Context, userID uuid.UUID, input repository.ProfileInput) error {
	b := newUpdateBuilder()
	b.SetOpt("display_name", input.DisplayName).
		SetOpt("first_name", input.FirstName).
		SetOpt("last_name", input.LastName).
		SetOpt("bio", input.Bio).
		SetOpt("avatar_url", input.AvatarURL).
		SetOpt("birth_date", input.BirthDate).
		SetOpt("gender_id", input.GenderID).
		SetOpt("region_id", input.RegionID).
		SetOpt("timezone", input.Timezone).
		SetOpt("occupation_id", input.OccupationID).
		SetOpt("education_level_id", input.EducationLevelID).
		SetOpt("company", input.Company).
		SetOpt("school", input.School).
		SetOpt("relationship_status_id", input.RelationshipStatusID).
		SetOpt("phone", input.Phone).
		SetOpt("website_url", input.WebsiteURL).
		SetOpt("profile_visibility", input.ProfileVisibility)

	if b.Empty() {
		return domain.ErrEmptyUpdate
	}

	clause, next := b.Clause()
	query := `UPDATE user_profiles ` + clause + `, updated_at = NOW()
		WHERE user_id = $` + itoa(next) + ` AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, b.Args(userID)...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) SoftDelete(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE user_profiles
		SET deleted_at = NOW(), is_active = false, updated_at = NOW()
		WHERE user_id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) Search(ctx context.Context, filter repository.ProfileSearchFilter) ([]*domain.Profile, error) {
	b := newCondBuilder()
	b.Raw("is_active = true").
		Raw("profile_visibility = 'public'").
		EqOpt("region_id", filter.RegionID).
		EqOpt("occupation_id", filter.OccupationID).
		GteOpt("age", filter.AgeMin).
		LteOpt("age", filter.AgeMax)
	if filter.Query != nil {
		b.SearchAny(*filter.Query, "display_name", "first_name", "last_name", "bio")
	}

	query := `SELECT` + profileColumns + `
		FROM user_profile_summary` + b.Where() + `
		ORDER BY last_active_at DESC NULLS LAST` + b.Limit(filter.Limit)

	return r.selectProfiles(ctx, query, b.Args()...)
}

func (r *profileRepository) ListActive(ctx context.Context) ([]*domain.Profile, error) {
	query := `SELECT` + profileColumns + `
		FROM user_profile_summary
		WHERE is_active = true
		ORDER BY created_at`

	return r.selectProfiles(ctx, query)
}

// selectProfiles scans row by row so one malformed row degrades the
// result instead of failing the whole query.
func (r *profileRepository) selectProfiles(ctx context.Context, query string, args ...interface{}) ([]*domain.Profile, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []*domain.Profile{}
	for rows.Next() {
		var row profileRow
		if err := rows.StructScan(&row); err != nil {
			r.log.Warn("skipping malformed profile row", "error", err)
			continue
		}
		profiles = append(profiles, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) GetHobbyIDs(ctx context.Context, userID uuid.UUID) ([]int, error) {
	var ids pq.Int64Array
	query := `SELECT COALESCE(hobbies, '{}') FROM user_profiles WHERE user_id = $1 AND deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &ids, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}

	out := make([]int, 0, len(ids))
	for _, id := range ids {
		out = append(out, int(id))
	}
	return out, nil
}

func (r *profileRepository) SetHobbyIDs(ctx context.Context, userID uuid.UUID, hobbyIDs []int) error {
	query := `
		UPDATE user_profiles
		SET hobbies = $1, updated_at = NOW()
		WHERE user_id = $2 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, pq.Array(hobbyIDs), userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
