package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestCondBuilderEmpty(t *testing.T) {
	b := newCondBuilder()

	assert.Equal(t, "", b.Where())
	assert.Empty(t, b.Args())
}

func TestCondBuilderPlaceholdersMatchArgs(t *testing.T) {
	b := newCondBuilder()
	b.Raw("deleted_at IS NULL").
		Eq("region_id", "r1").
		GteOpt("age", intPtr(18)).
		LteOpt("age", intPtr(30))

	assert.Equal(t, " WHERE deleted_at IS NULL AND region_id = $1 AND age >= $2 AND age <= $3", b.Where())
	assert.Equal(t, []interface{}{"r1", intPtr(18), intPtr(30)}, b.Args())
}

func TestCondBuilderSkipsNilOptionals(t *testing.T) {
	b := newCondBuilder()
	b.EqOpt("occupation_id", (*string)(nil)).
		GteOpt("age", nil).
		LteOpt("age", (*int)(nil))

	assert.Equal(t, "", b.Where())
	assert.Empty(t, b.Args())
}

func TestCondBuilderSearchAnySharesOneParam(t *testing.T) {
	b := newCondBuilder()
	b.SearchAny("hiking", "name", "description")

	assert.Equal(t, " WHERE (name ILIKE $1 OR description ILIKE $1)", b.Where())
	assert.Equal(t, []interface{}{"%hiking%"}, b.Args())
}

func TestCondBuilderSearchAnyIgnoresEmptyQuery(t *testing.T) {
	b := newCondBuilder()
	b.SearchAny("", "name")

	assert.Equal(t, "", b.Where())
}

func TestCondBuilderValueNeverEntersClause(t *testing.T) {
	hostile := "'; DROP TABLE user_profiles; --"

	b := newCondBuilder()
	b.Eq("display_name", hostile).SearchAny(hostile, "bio")

	assert.NotContains(t, b.Where(), "DROP TABLE")
	assert.Equal(t, []interface{}{hostile, "%" + hostile + "%"}, b.Args())
}

func TestCondBuilderSearchAnyTagIncludesTagMembership(t *testing.T) {
	b := newCondBuilder()
	b.SearchAnyTag("hiking", "a.tags", "a.name", "a.name_en", "a.description")

	assert.Equal(t,
		" WHERE (a.name ILIKE $1 OR a.name_en ILIKE $1 OR a.description ILIKE $1 OR $2 = ANY(a.tags))",
		b.Where())
	assert.Equal(t, []interface{}{"%hiking%", "hiking"}, b.Args())
}

func TestCondBuilderSearchAnyTagBindsExactTermUnwrapped(t *testing.T) {
	b := newCondBuilder()
	b.Eq("a.is_active", true).SearchAnyTag("chess", "a.tags", "a.name")

	assert.Equal(t, " WHERE a.is_active = $1 AND (a.name ILIKE $2 OR $3 = ANY(a.tags))", b.Where())
	assert.Equal(t, []interface{}{true, "%chess%", "chess"}, b.Args())
}

func TestCondBuilderSearchAnyTagIgnoresEmptyQuery(t *testing.T) {
	b := newCondBuilder()
	b.SearchAnyTag("", "a.tags", "a.name")

	assert.Equal(t, "", b.Where())
	assert.Empty(t, b.Args())
}

func TestCondBuilderAnyTag(t *testing.T) {
	b := newCondBuilder()
	b.AnyTag("tags", "outdoor")

	assert.Equal(t, " WHERE $1 = ANY(tags)", b.Where())
	assert.Equal(t, []interface{}{"outdoor"}, b.Args())
}

func TestCondBuilderInBindsOneArrayParam(t *testing.T) {
	b := newCondBuilder()
	b.In("id", []int{1, 2, 3})

	assert.Equal(t, " WHERE id = ANY($1)", b.Where())
	assert.Len(t, b.Args(), 1)
}

func TestCondBuilderLimitContinuesNumbering(t *testing.T) {
	b := newCondBuilder()
	b.Eq("is_active", true)
	frag := b.Limit(20)

	assert.Equal(t, " LIMIT $2", frag)
	assert.Equal(t, []interface{}{true, 20}, b.Args())
}

func TestUpdateBuilderEmpty(t *testing.T) {
	b := newUpdateBuilder()
	b.SetOpt("bio", (*string)(nil)).SetOpt("height_cm", (*int)(nil))

	assert.True(t, b.Empty())
}

func TestUpdateBuilderClauseAndTrailingArgs(t *testing.T) {
	b := newUpdateBuilder()
	b.SetOpt("display_name", strPtr("Ada")).
		SetOpt("bio", (*string)(nil)).
		SetOpt("height_cm", intPtr(170))

	clause, next := b.Clause()
	assert.Equal(t, "SET display_name = $1, height_cm = $2", clause)
	assert.Equal(t, 3, next)

	args := b.Args("user-1")
	assert.Len(t, args, 3)
	assert.Equal(t, "user-1", args[2])
}
