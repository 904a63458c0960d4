package mysql

import (
	"errors"

	gomysql "github.com/go-sql-driver/mysql"
)

// Server error numbers the repositories and retry loop care about.
const (
	ErLockWaitTimeout = 1205
	ErLockDeadlock    = 1213
	ErDupEntry        = 1062
	ErRowIsReferenced = 1451
	ErNoReferencedRow = 1452
)

func errorNumber(err error) uint16 {
	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number
	}
	return 0
}

// IsDeadlock reports errors after which the whole transaction may be retried.
func IsDeadlock(err error) bool {
	n := errorNumber(err)
	return n == ErLockDeadlock || n == ErLockWaitTimeout
}

func IsDuplicateEntry(err error) bool {
	return errorNumber(err) == ErDupEntry
}

// IsMissingReference reports an insert or update whose foreign key points at
// a row that does not exist.
func IsMissingReference(err error) bool {
	return errorNumber(err) == ErNoReferencedRow
}

// IsReferenced reports a delete blocked by rows that still point at it.
func IsReferenced(err error) bool {
	return errorNumber(err) == ErRowIsReferenced
}
