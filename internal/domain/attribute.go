package domain

import "github.com/google/uuid"

// AttributeCategory is a node in the self-referential category tree.
// Children is filled during tree assembly; a node whose parent was filtered
// out of the result set is treated as a root.
type AttributeCategory struct {
	ID          uuid.UUID            `json:"id" db:"id"`
	Code        string               `json:"code" db:"code"`
	Name        string               `json:"name" db:"name"`
	NameEn      *string              `json:"name_en" db:"name_en"`
	Description *string              `json:"description" db:"description"`
	ParentID    *uuid.UUID           `json:"parent_id" db:"parent_id"`
	Level       int                  `json:"level" db:"level"`
	Path        string               `json:"path" db:"path"`
	IconName    *string              `json:"icon_name" db:"icon_name"`
	ColorCode   *string              `json:"color_code" db:"color_code"`
	SortOrder   int                  `json:"sort_order" db:"sort_order"`
	IsActive    bool                 `json:"is_active" db:"is_active"`
	IsSystem    bool                 `json:"is_system" db:"is_system"`
	Children    []*AttributeCategory `json:"children" db:"-"`
}

// CategoryTree is the tree response; TotalCount counts every fetched node,
// not just roots.
type CategoryTree struct {
	Categories []*AttributeCategory `json:"categories"`
	TotalCount int                  `json:"total_count"`
}

type Attribute struct {
	ID                uuid.UUID `json:"id"`
	Code              string    `json:"code"`
	Name              string    `json:"name"`
	NameEn            *string   `json:"name_en"`
	Description       *string   `json:"description"`
	CategoryID        uuid.UUID `json:"category_id"`
	CategoryName      *string   `json:"category_name"`
	CategoryPath      *string   `json:"category_path"`
	Tags              []string  `json:"tags"`
	DifficultyLevel   string    `json:"difficulty_level"`
	TimeCommitment    string    `json:"time_commitment"`
	CostLevel         string    `json:"cost_level"`
	PhysicalIntensity string    `json:"physical_intensity"`
	SocialAspect      string    `json:"social_aspect"`
	IndoorOutdoor     string    `json:"indoor_outdoor"`
	PopularityScore   int       `json:"popularity_score"`
	IsActive          bool      `json:"is_active"`
}

// UserAttribute is the association row between a user and an attribute,
// unique per (user, attribute).
type UserAttribute struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	AttributeID     uuid.UUID  `json:"attribute_id"`
	Attribute       *Attribute `json:"attribute,omitempty"`
	InterestLevel   int        `json:"interest_level"`
	SkillLevel      string     `json:"skill_level"`
	ExperienceYears *int       `json:"experience_years"`
	Frequency       *string    `json:"frequency"`
	TimeSpentWeekly *int       `json:"time_spent_weekly"`
	EnjoymentRating *int       `json:"enjoyment_rating"`
	Status          string     `json:"status"`
	IsPublic        bool       `json:"is_public"`
	IsFeatured      bool       `json:"is_featured"`
	Notes           *string    `json:"notes"`
}
