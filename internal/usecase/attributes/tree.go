package attributes

import (
	"github.com/google/uuid"

	"github.com/profilematch/backend/internal/domain"
)

// buildTree nests a flat category list by parent id. Input order is
// preserved among siblings. A node whose parent is not in the input
// set is promoted to a root rather than dropped, so depth-limited
// fetches still return every fetched node.
func buildTree(categories []*domain.AttributeCategory) *domain.CategoryTree {
	byID := make(map[uuid.UUID]*domain.AttributeCategory, len(categories))
	for _, c := range categories {
		c.Children = []*domain.AttributeCategory{}
		byID[c.ID] = c
	}

	roots := []*domain.AttributeCategory{}
	for _, c := range categories {
		if c.ParentID != nil {
			if parent, ok := byID[*c.ParentID]; ok {
				parent.Children = append(parent.Children, c)
				continue
			}
		}
		roots = append(roots, c)
	}

	return &domain.CategoryTree{
		Categories: roots,
		TotalCount: len(categories),
	}
}
