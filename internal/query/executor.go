package query

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/MiningCadastre/MC-Backend/internal/storeerr"
)

// returningClause matches RETURNING as its own word so identifiers like
// returning_flag don't route plain DML through the row-scan path.
var returningClause = regexp.MustCompile(`\bRETURNING\b`)

// Result is the gateway's uniform execution envelope.
type Result struct {
	Rows    []map[string]interface{} `json:"rows"`
	Count   int                      `json:"count"`
	Command string                   `json:"command"`
}

// Executor runs allow-listed statements with positionally bound parameters.
// Parameters are always driver-bound, never concatenated into the text.
type Executor struct {
	db     *gorm.DB
	policy Policy
}

func NewExecutor(db *gorm.DB, policy Policy) *Executor {
	return &Executor{db: db, policy: policy}
}

// Execute gates the statement through the policy, runs it, and returns the
// returned rows, a row count, and the detected command verb. Statements that
// produce a row set (SELECT, WITH, or anything carrying RETURNING) are read
// through a row scan; plain DML reports the affected-row count instead.
func (e *Executor) Execute(ctx context.Context, stmt string, params []interface{}) (*Result, error) {
	verb, err := e.policy.Check(stmt)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(stmt)

	if verb == "SELECT" || verb == "WITH" || returningClause.MatchString(strings.ToUpper(trimmed)) {
		return e.queryRows(ctx, trimmed, params, verb)
	}
	return e.exec(ctx, trimmed, params, verb)
}

func (e *Executor) queryRows(ctx context.Context, stmt string, params []interface{}, verb string) (*Result, error) {
	rows, err := e.db.WithContext(ctx).Raw(stmt, params...).Rows()
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	out := []map[string]interface{}{}
	for rows.Next() {
		vals := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rowMap := make(map[string]interface{}, len(cols))
		for i, c := range cols {
			v := vals[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			rowMap[c] = v
		}
		out = append(out, rowMap)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err)
	}

	return &Result{Rows: out, Count: len(out), Command: verb}, nil
}

func (e *Executor) exec(ctx context.Context, stmt string, params []interface{}, verb string) (*Result, error) {
	res := e.db.WithContext(ctx).Exec(stmt, params...)
	if res.Error != nil {
		return nil, wrap(res.Error)
	}
	return &Result{
		Rows:    []map[string]interface{}{},
		Count:   int(res.RowsAffected),
		Command: verb,
	}, nil
}

func wrap(err error) error {
	if storeerr.IsUnavailable(err) {
		return fmt.Errorf("%w: %v", storeerr.ErrUnavailable, err)
	}
	return err
}
