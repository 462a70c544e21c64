package persistence

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique constraint violation.
// GORM translates these to ErrDuplicatedKey; raw database/sql paths surface
// the driver error instead, so the Postgres SQLSTATE is checked as well.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "SQLSTATE "+pgUniqueViolation)
}
