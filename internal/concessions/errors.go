package concessions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MiningCadastre/MC-Backend/internal/storeerr"
)

var (
	// ErrNotFound: update/delete keyed by an id no record matches.
	ErrNotFound = errors.New("concession not found")
	// ErrDuplicateID: create with an id that already exists.
	ErrDuplicateID = errors.New("concession id already exists")
)

// InvalidGeometryError reports a coordinate ring the codec or the spatial
// store refused.
type InvalidGeometryError struct {
	Reason string
}

func (e *InvalidGeometryError) Error() string {
	return "invalid geometry: " + e.Reason
}

// classify maps store failures onto the service's error taxonomy. Anything
// unmatched passes through wrapped and surfaces as an unclassified failure.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if storeerr.IsUnavailable(err) {
		return fmt.Errorf("%w: %s: %v", storeerr.ErrUnavailable, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" { // unique_violation on the primary key
			return fmt.Errorf("%w: %v", ErrDuplicateID, err)
		}
		if isGeometryRejection(pgErr) {
			return &InvalidGeometryError{Reason: pgErr.Message}
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

// isGeometryRejection recognizes PostGIS refusing a malformed ring. PostGIS
// raises these as internal_error / invalid_parameter_value with a GEOS or
// lwgeom message, so the SQLSTATE alone is not enough.
func isGeometryRejection(pgErr *pgconn.PgError) bool {
	switch pgErr.Code {
	case "XX000", "22023":
	default:
		return false
	}
	msg := strings.ToLower(pgErr.Message)
	for _, kw := range []string{"geometry", "geojson", "ring", "polygon", "lwgeom"} {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}
