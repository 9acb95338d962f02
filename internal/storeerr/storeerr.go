package storeerr

import (
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrUnavailable marks failures where the store could not be reached at all:
// connection-class SQLSTATEs, an exhausted pool, or a dead connection.
// Callers surface it as a 503 and do not retry.
var ErrUnavailable = errors.New("datastore unavailable")

// IsUnavailable reports whether err is a reachability failure rather than a
// statement-level one.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnavailable) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if strings.HasPrefix(pgErr.Code, "08") {
			return true
		}
		switch pgErr.Code {
		case "53300", "57P03": // too_many_connections, cannot_connect_now
			return true
		}
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// Code returns the SQLSTATE of a Postgres error, or "" when err carries none.
func Code(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
