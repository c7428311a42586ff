package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profilematch/backend/internal/repository"
)

func TestAttributeSearchQueryMatchesTagsAlongsideText(t *testing.T) {
	conn := &stubConn{}
	repo := NewAttributeRepository(newStubDB(conn))

	_, err := repo.Search(context.Background(), repository.AttributeSearchFilter{Query: "chess", Limit: 10})

	require.NoError(t, err)
	require.Len(t, conn.queries, 1)
	issued := conn.queries[0]
	assert.Contains(t, issued, "(a.name ILIKE $1 OR a.name_en ILIKE $1 OR a.description ILIKE $1 OR $2 = ANY(a.tags))")
}

func TestAttributeSearchKeepsSeparateTagFilter(t *testing.T) {
	conn := &stubConn{}
	repo := NewAttributeRepository(newStubDB(conn))

	tag := "strategy"
	_, err := repo.Search(context.Background(), repository.AttributeSearchFilter{Query: "chess", Tag: &tag, Limit: 10})

	require.NoError(t, err)
	require.Len(t, conn.queries, 1)
	assert.Contains(t, conn.queries[0], "$3 = ANY(a.tags)")
}
