package postgres

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profilematch/backend/internal/pkg/logger"
	"github.com/profilematch/backend/internal/repository"
)

// profileValueRow builds one canned row over the full select list;
// columns without an override come back NULL.
func profileValueRow(columns []string, overrides map[string]driver.Value) []driver.Value {
	vals := make([]driver.Value, len(columns))
	for i, col := range columns {
		if v, ok := overrides[col]; ok {
			vals[i] = v
		}
	}
	return vals
}

func TestSearchMatchesQueryAgainstNameFieldsAndBio(t *testing.T) {
	conn := &stubConn{}
	repo := NewProfileRepository(newStubDB(conn), logger.NewNop())

	q := "ada"
	_, err := repo.Search(context.Background(), repository.ProfileSearchFilter{Query: &q, Limit: 20})

	require.NoError(t, err)
	require.Len(t, conn.queries, 1)
	issued := conn.queries[0]
	assert.Contains(t, issued, "display_name ILIKE")
	assert.Contains(t, issued, "first_name ILIKE")
	assert.Contains(t, issued, "last_name ILIKE")
	assert.Contains(t, issued, "bio ILIKE")
	assert.NotContains(t, issued, "company ILIKE")
	assert.NotContains(t, issued, "school ILIKE")
}

func TestSelectProfilesSkipsMalformedRowAndWarns(t *testing.T) {
	columns := splitColumns(profileColumns)
	goodID := uuid.New()
	base := map[string]driver.Value{
		"profile_visibility":            "public",
		"profile_completion_percentage": int64(40),
		"is_active":                     true,
		"is_verified":                   false,
		"created_at":                    time.Now(),
	}

	good := map[string]driver.Value{"user_id": goodID.String(), "display_name": "Ada"}
	bad := map[string]driver.Value{"user_id": "not-a-uuid"}
	for k, v := range base {
		good[k] = v
		bad[k] = v
	}

	conn := &stubConn{rows: &stubRows{
		columns: columns,
		values: [][]driver.Value{
			profileValueRow(columns, good),
			profileValueRow(columns, bad),
		},
	}}
	log, logs := logger.NewObserved()
	repo := NewProfileRepository(newStubDB(conn), log)

	profiles, err := repo.ListActive(context.Background())

	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, goodID, profiles[0].ID)
	assert.Equal(t, 1, logs.FilterMessage("skipping malformed profile row").Len())
}
