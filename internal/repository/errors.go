// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. ErrNotFound
// marks a missing row (every per-entity not-found error wraps it), while
// ErrConflict signals that the store rejected a write because of existing
// state, such as a duplicate key or a row still referenced by children.
package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a row cannot be found. Handlers should
// translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write cannot be performed because of
// conflicting state. Handlers should translate this into an HTTP 409
// response.
var ErrConflict = errors.New("conflict")

// ErrForbidden is returned when the caller attempts an operation it is not
// allowed to perform. Handlers should translate this into an HTTP 403
// response.
var ErrForbidden = errors.New("forbidden")

var (
	ErrCinemaNotFound      = fmt.Errorf("cinema %w", ErrNotFound)
	ErrRoomNotFound        = fmt.Errorf("room %w", ErrNotFound)
	ErrEquipmentNotFound   = fmt.Errorf("equipment %w", ErrNotFound)
	ErrMaintenanceNotFound = fmt.Errorf("maintenance record %w", ErrNotFound)
	ErrImpactNotFound      = fmt.Errorf("session impact %w", ErrNotFound)
	ErrTaskNotFound        = fmt.Errorf("task %w", ErrNotFound)
	ErrEventNotFound       = fmt.Errorf("event %w", ErrNotFound)
)

// MySQL server error numbers translated by translate.
const (
	mysqlDuplicateEntry   = 1062
	mysqlRowReferenced    = 1451
	mysqlNoReferencedRow  = 1452
	mysqlRowReferencedOld = 1217
)

// translate maps driver errors onto the sentinels above. Unknown errors
// are returned unchanged.
func translate(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return err
	}
	switch me.Number {
	case mysqlDuplicateEntry, mysqlRowReferenced, mysqlRowReferencedOld:
		return fmt.Errorf("%w: %s", ErrConflict, me.Message)
	case mysqlNoReferencedRow:
		return fmt.Errorf("%w: referenced row: %s", ErrNotFound, me.Message)
	}
	return err
}
