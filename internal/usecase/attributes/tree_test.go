package attributes

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profilematch/backend/internal/domain"
)

func category(name string, parentID *uuid.UUID, level int) *domain.AttributeCategory {
	return &domain.AttributeCategory{
		ID:       uuid.New(),
		Code:     name,
		Name:     name,
		ParentID: parentID,
		Level:    level,
	}
}

func TestBuildTreeNestsChildrenUnderParents(t *testing.T) {
	root := category("sports", nil, 1)
	ball := category("ball-sports", &root.ID, 2)
	water := category("water-sports", &root.ID, 2)
	football := category("football", &ball.ID, 3)

	tree := buildTree([]*domain.AttributeCategory{root, ball, water, football})

	require.Len(t, tree.Categories, 1)
	assert.Equal(t, 4, tree.TotalCount)

	gotRoot := tree.Categories[0]
	assert.Equal(t, root.ID, gotRoot.ID)
	require.Len(t, gotRoot.Children, 2)
	assert.Equal(t, ball.ID, gotRoot.Children[0].ID)
	assert.Equal(t, water.ID, gotRoot.Children[1].ID)
	require.Len(t, gotRoot.Children[0].Children, 1)
	assert.Equal(t, football.ID, gotRoot.Children[0].Children[0].ID)
}

func TestBuildTreePromotesOrphansToRoots(t *testing.T) {
	missingParent := uuid.New()
	orphan := category("hidden-child", &missingParent, 3)
	root := category("arts", nil, 1)

	tree := buildTree([]*domain.AttributeCategory{orphan, root})

	require.Len(t, tree.Categories, 2)
	assert.Equal(t, orphan.ID, tree.Categories[0].ID)
	assert.Equal(t, root.ID, tree.Categories[1].ID)
	assert.Equal(t, 2, tree.TotalCount)
}

func TestBuildTreeEmptyInput(t *testing.T) {
	tree := buildTree(nil)

	assert.Empty(t, tree.Categories)
	assert.Equal(t, 0, tree.TotalCount)
}

func TestBuildTreeTotalCountCountsEveryNode(t *testing.T) {
	root := category("music", nil, 1)
	child := category("instruments", &root.ID, 2)

	tree := buildTree([]*domain.AttributeCategory{root, child})

	require.Len(t, tree.Categories, 1)
	assert.Equal(t, 2, tree.TotalCount)
}
