package postgres

import (
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// nested builds a child document only when its foreign key resolved.
// Rows left-join their dictionaries, so an absent reference scans as a
// nil key and must yield an absent child, not a zero-valued one.
func nested[T any](fk *uuid.UUID, build func() T) *T {
	if fk == nil {
		return nil
	}
	v := build()
	return &v
}
