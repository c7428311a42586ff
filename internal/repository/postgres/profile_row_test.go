package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRowNullForeignKeysYieldAbsentChildren(t *testing.T) {
	row := profileRow{
		UserID:            uuid.New(),
		ProfileVisibility: "public",
		IsActive:          true,
		CreatedAt:         time.Now(),
	}

	p := row.toDomain()

	assert.Nil(t, p.Gender)
	assert.Nil(t, p.Region)
	assert.Nil(t, p.Occupation)
	assert.Nil(t, p.EducationLevel)
	assert.Nil(t, p.RelationshipStatus)
}

func TestProfileRowResolvedJoinsYieldNestedChildren(t *testing.T) {
	genderID := uuid.New()
	regionID := uuid.New()
	parentID := uuid.New()
	level := 2

	row := profileRow{
		UserID:            uuid.New(),
		DisplayName:       strPtr("Ada"),
		ProfileVisibility: "public",
		GenderID:          &genderID,
		GenderCode:        strPtr("female"),
		GenderName:        strPtr("Female"),
		RegionID:          &regionID,
		RegionCode:        strPtr("cn-zj-hz"),
		RegionName:        strPtr("Hangzhou"),
		RegionParentID:    &parentID,
		RegionLevel:       &level,
	}

	p := row.toDomain()

	require.NotNil(t, p.Gender)
	assert.Equal(t, genderID, p.Gender.ID)
	assert.Equal(t, "female", p.Gender.Code)
	assert.Equal(t, "Female", p.Gender.Name)

	require.NotNil(t, p.Region)
	assert.Equal(t, "Hangzhou", p.Region.Name)
	assert.Equal(t, 2, p.Region.Level)
	require.NotNil(t, p.Region.ParentID)
	assert.Equal(t, parentID, *p.Region.ParentID)

	assert.Nil(t, p.Occupation)
}
