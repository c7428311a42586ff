package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the nested profile document returned by the API. Dictionary
// children (gender, region, ...) are present only when the corresponding
// foreign key is non-null on the row.
type Profile struct {
	ID                          uuid.UUID           `json:"id"`
	DisplayName                 *string             `json:"display_name"`
	FirstName                   *string             `json:"first_name"`
	LastName                    *string             `json:"last_name"`
	Bio                         *string             `json:"bio"`
	AvatarURL                   *string             `json:"avatar_url"`
	BirthDate                   *time.Time          `json:"birth_date"`
	Age                         *int                `json:"age"`
	Gender                      *Gender             `json:"gender,omitempty"`
	Region                      *Region             `json:"region,omitempty"`
	Timezone                    *string             `json:"timezone"`
	Occupation                  *Occupation         `json:"occupation,omitempty"`
	EducationLevel              *EducationLevel     `json:"education_level,omitempty"`
	Company                     *string             `json:"company"`
	School                      *string             `json:"school"`
	RelationshipStatus          *RelationshipStatus `json:"relationship_status,omitempty"`
	Phone                       *string             `json:"phone"`
	WebsiteURL                  *string             `json:"website_url"`
	ProfileVisibility           string              `json:"profile_visibility"`
	ProfileCompletionPercentage int                 `json:"profile_completion_percentage"`
	LastActiveAt                *time.Time          `json:"last_active_at"`
	IsActive                    bool                `json:"is_active"`
	IsVerified                  bool                `json:"is_verified"`
	CreatedAt                   time.Time           `json:"created_at"`
}
