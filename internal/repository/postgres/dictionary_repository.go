package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/profilematch/backend/internal/domain"
	"github.com/profilematch/backend/internal/repository"
)

type dictionaryRepository struct {
	db *sqlx.DB
}

func NewDictionaryRepository(db *sqlx.DB) repository.DictionaryRepository {
	return &dictionaryRepository{db: db}
}

func (r *dictionaryRepository) ListGenders(ctx context.Context) ([]domain.Gender, error) {
	query := `
		SELECT id, code, name, name_en
		FROM genders
		WHERE is_active = true
		ORDER BY code`

	genders := []domain.Gender{}
	if err := r.db.SelectContext(ctx, &genders, query); err != nil {
		return nil, err
	}
	return genders, nil
}

func (r *dictionaryRepository) ListRegions(ctx context.Context, filter repository.RegionFilter) ([]domain.Region, error) {
	b := newCondBuilder()
	b.Raw("is_active = true").
		EqOpt("level", filter.Level).
		EqOpt("parent_id", filter.ParentID)

	query := `
		SELECT id, code, name, name_en, parent_id, level
		FROM regions` + b.Where() + `
		ORDER BY level, name`

	regions := []domain.Region{}
	if err := r.db.SelectContext(ctx, &regions, query, b.Args()...); err != nil {
		return nil, err
	}
	return regions, nil
}

func (r *dictionaryRepository) ListOccupations(ctx context.Context, categoryID *uuid.UUID) ([]domain.Occupation, error) {
	b := newCondBuilder()
	b.Raw("is_active = true").EqOpt("category_id", categoryID)

	query := `
		SELECT id, code, name, name_en, category_id
		FROM occupations` + b.Where() + `
		ORDER BY name`

	occupations := []domain.Occupation{}
	if err := r.db.SelectContext(ctx, &occupations, query, b.Args()...); err != nil {
		return nil, err
	}
	return occupations, nil
}

func (r *dictionaryRepository) ListEducationLevels(ctx context.Context) ([]domain.EducationLevel, error) {
	query := `
		SELECT id, code, name, name_en, level_order
		FROM education_levels
		WHERE is_active = true
		ORDER BY level_order`

	levels := []domain.EducationLevel{}
	if err := r.db.SelectContext(ctx, &levels, query); err != nil {
		return nil, err
	}
	return levels, nil
}

func (r *dictionaryRepository) ListRelationshipStatuses(ctx context.Context) ([]domain.RelationshipStatus, error) {
	query := `
		SELECT id, code, name, name_en
		FROM relationship_statuses
		WHERE is_active = true
		ORDER BY code`

	statuses := []domain.RelationshipStatus{}
	if err := r.db.SelectContext(ctx, &statuses, query); err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *dictionaryRepository) ListHobbies(ctx context.Context) ([]domain.Hobby, error) {
	query := `
		SELECT id, name, category
		FROM hobbies
		ORDER BY id`

	hobbies := []domain.Hobby{}
	if err := r.db.SelectContext(ctx, &hobbies, query); err != nil {
		return nil, err
	}
	return hobbies, nil
}

func (r *dictionaryRepository) ListHobbiesByCategory(ctx context.Context, category string) ([]domain.Hobby, error) {
	query := `
		SELECT id, name, category
		FROM hobbies
		WHERE category = $1
		ORDER BY id`

	hobbies := []domain.Hobby{}
	if err := r.db.SelectContext(ctx, &hobbies, query, category); err != nil {
		return nil, err
	}
	return hobbies, nil
}

func (r *dictionaryRepository) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	query := `
		SELECT id, name
		FROM skills
		ORDER BY id`

	skills := []domain.Skill{}
	if err := r.db.SelectContext(ctx, &skills, query); err != nil {
		return nil, err
	}
	return skills, nil
}
