package domain

import "github.com/google/uuid"

// Dictionary tables normalize enumerable profile fields. They are small,
// read-mostly reference sets; every query over them filters is_active and
// orders explicitly.

type Gender struct {
	ID     uuid.UUID `json:"id" db:"id"`
	Code   string    `json:"code" db:"code"`
	Name   string    `json:"name" db:"name"`
	NameEn *string   `json:"name_en" db:"name_en"`
}

type Region struct {
	ID       uuid.UUID  `json:"id" db:"id"`
	Code     string     `json:"code" db:"code"`
	Name     string     `json:"name" db:"name"`
	NameEn   *string    `json:"name_en" db:"name_en"`
	ParentID *uuid.UUID `json:"parent_id" db:"parent_id"`
	Level    int        `json:"level" db:"level"`
}

type Occupation struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Code       string     `json:"code" db:"code"`
	Name       string     `json:"name" db:"name"`
	NameEn     *string    `json:"name_en" db:"name_en"`
	CategoryID *uuid.UUID `json:"category_id" db:"category_id"`
}

type EducationLevel struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Code       string    `json:"code" db:"code"`
	Name       string    `json:"name" db:"name"`
	NameEn     *string   `json:"name_en" db:"name_en"`
	LevelOrder int       `json:"level_order" db:"level_order"`
}

type RelationshipStatus struct {
	ID     uuid.UUID `json:"id" db:"id"`
	Code   string    `json:"code" db:"code"`
	Name   string    `json:"name" db:"name"`
	NameEn *string   `json:"name_en" db:"name_en"`
}

// Hobby is the legacy flat interest reference used by the interests surface.
type Hobby struct {
	ID       int    `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Category string `json:"category" db:"category"`
}

// Skill is the team-role reference set.
type Skill struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
