package postgres

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/lib/pq"
)

// condBuilder accumulates WHERE predicates as clause text plus a
// matching positional parameter vector. Values never enter the query
// text; each predicate appends a $n placeholder and the value.
type condBuilder struct {
	conds []string
	args  []interface{}
}

func newCondBuilder() *condBuilder {
	return &condBuilder{}
}

func (b *condBuilder) next() int {
	return len(b.args) + 1
}

// Raw appends a predicate with no parameters, e.g. "deleted_at IS NULL".
func (b *condBuilder) Raw(clause string) *condBuilder {
	b.conds = append(b.conds, clause)
	return b
}

// Eq appends column = $n.
func (b *condBuilder) Eq(column string, value interface{}) *condBuilder {
	b.conds = append(b.conds, fmt.Sprintf("%s = $%d", column, b.next()))
	b.args = append(b.args, value)
	return b
}

// EqOpt appends column = $n when value is non-nil.
func (b *condBuilder) EqOpt(column string, value interface{}) *condBuilder {
	if isNil(value) {
		return b
	}
	return b.Eq(column, value)
}

// GteOpt appends column >= $n when value is non-nil.
func (b *condBuilder) GteOpt(column string, value interface{}) *condBuilder {
	if isNil(value) {
		return b
	}
	b.conds = append(b.conds, fmt.Sprintf("%s >= $%d", column, b.next()))
	b.args = append(b.args, value)
	return b
}

// LteOpt appends column <= $n when value is non-nil.
func (b *condBuilder) LteOpt(column string, value interface{}) *condBuilder {
	if isNil(value) {
		return b
	}
	b.conds = append(b.conds, fmt.Sprintf("%s <= $%d", column, b.next()))
	b.args = append(b.args, value)
	return b
}

// SearchAny appends a case-insensitive substring match across the
// given columns, OR-joined, with one shared pattern parameter.
func (b *condBuilder) SearchAny(query string, columns ...string) *condBuilder {
	if query == "" || len(columns) == 0 {
		return b
	}
	n := b.next()
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, fmt.Sprintf("%s ILIKE $%d", col, n))
	}
	b.conds = append(b.conds, "("+strings.Join(parts, " OR ")+")")
	b.args = append(b.args, "%"+query+"%")
	return b
}

// SearchAnyTag appends the same OR-group as SearchAny plus an exact
// tag membership disjunct, e.g. (a ILIKE $1 OR b ILIKE $1 OR
// $2 = ANY(tags)). The pattern and the exact term bind separately.
func (b *condBuilder) SearchAnyTag(query, tagColumn string, columns ...string) *condBuilder {
	if query == "" || len(columns) == 0 {
		return b
	}
	n := b.next()
	parts := make([]string, 0, len(columns)+1)
	for _, col := range columns {
		parts = append(parts, fmt.Sprintf("%s ILIKE $%d", col, n))
	}
	b.args = append(b.args, "%"+query+"%")
	parts = append(parts, fmt.Sprintf("$%d = ANY(%s)", b.next(), tagColumn))
	b.args = append(b.args, query)
	b.conds = append(b.conds, "("+strings.Join(parts, " OR ")+")")
	return b
}

// AnyTag appends $n = ANY(column) for text array membership.
func (b *condBuilder) AnyTag(column string, tag string) *condBuilder {
	b.conds = append(b.conds, fmt.Sprintf("$%d = ANY(%s)", b.next(), column))
	b.args = append(b.args, tag)
	return b
}

// In appends column = ANY($n) with the values bound as a pq array.
func (b *condBuilder) In(column string, values interface{}) *condBuilder {
	b.conds = append(b.conds, fmt.Sprintf("%s = ANY($%d)", column, b.next()))
	b.args = append(b.args, pq.Array(values))
	return b
}

// Where renders the accumulated predicates as a WHERE clause, or an
// empty string when no predicate was added.
func (b *condBuilder) Where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// Args returns the parameter vector matching the rendered clause.
func (b *condBuilder) Args() []interface{} {
	return b.args
}

// Limit appends a LIMIT placeholder and returns the clause fragment.
func (b *condBuilder) Limit(n int) string {
	frag := fmt.Sprintf(" LIMIT $%d", b.next())
	b.args = append(b.args, n)
	return frag
}

// isNil reports whether v is nil or a typed nil pointer. Optional
// predicates take pointer fields straight from the filter structs.
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

// updateBuilder accumulates SET assignments for a partial UPDATE in
// the same clause-plus-parameters form as condBuilder.
type updateBuilder struct {
	sets []string
	args []interface{}
}

func newUpdateBuilder() *updateBuilder {
	return &updateBuilder{}
}

// Set appends column = $n.
func (b *updateBuilder) Set(column string, value interface{}) *updateBuilder {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
	return b
}

// SetOpt appends the assignment only when value is non-nil. Pointer
// values are bound as-is so database/sql dereferences them.
func (b *updateBuilder) SetOpt(column string, value interface{}) *updateBuilder {
	if isNil(value) {
		return b
	}
	return b.Set(column, value)
}

// Empty reports whether no assignment was added.
func (b *updateBuilder) Empty() bool {
	return len(b.sets) == 0
}

// Clause renders "SET a = $1, b = $2" and the next free placeholder
// index for the caller's own predicates.
func (b *updateBuilder) Clause() (string, int) {
	return "SET " + strings.Join(b.sets, ", "), len(b.args) + 1
}

// Args returns the parameter vector, appending any trailing values the
// caller binds after the SET clause.
func (b *updateBuilder) Args(extra ...interface{}) []interface{} {
	return append(b.args, extra...)
}
