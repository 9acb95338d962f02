package concessions

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// SearchCriteria is the sparse filter payload for POST /concessions/search.
// Absent/empty fields contribute nothing to the composed clause.
type SearchCriteria struct {
	Name       string   `json:"name"`
	Owner      string   `json:"owner"`
	Region     string   `json:"region"`
	Status     string   `json:"status"`
	PermitType string   `json:"permitType"`
	Districts  []string `json:"districts"`
}

// BuildFilter composes a parameterized WHERE clause from the present
// criteria. Comparisons are appended in a fixed order — name, owner, region,
// status, permitType, districts — joined with AND, with positional $n
// placeholders matched 1:1 to the returned args. Criterion values are always
// bound, never interpolated into the statement text; only the set of column
// comparisons is shaped dynamically.
func BuildFilter(c SearchCriteria) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argIdx := 1

	if c.Name != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIdx))
		args = append(args, "%"+c.Name+"%")
		argIdx++
	}
	if c.Owner != "" {
		conditions = append(conditions, fmt.Sprintf("owner ILIKE $%d", argIdx))
		args = append(args, "%"+c.Owner+"%")
		argIdx++
	}
	if c.Region != "" {
		conditions = append(conditions, fmt.Sprintf("region = $%d", argIdx))
		args = append(args, c.Region)
		argIdx++
	}
	if c.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, c.Status)
		argIdx++
	}
	if c.PermitType != "" {
		conditions = append(conditions, fmt.Sprintf("permit_type = $%d", argIdx))
		args = append(args, c.PermitType)
		argIdx++
	}
	if len(c.Districts) > 0 {
		conditions = append(conditions, fmt.Sprintf("district = ANY($%d)", argIdx))
		args = append(args, pq.Array(c.Districts))
		argIdx++
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
