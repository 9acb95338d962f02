package query

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRejectedStatement: the statement's category is not on the allow-list.
// Raised before any execution attempt.
var ErrRejectedStatement = errors.New("statement category not permitted")

// Policy is the allow-list gate over the leading statement keyword. It
// constrains which statement category a caller can submit; it does NOT
// sandbox what an allowed statement touches — any table or column reachable
// by the connection's privileges is still reachable through an allowed verb.
// Treat it as a narrow capability gate, and swap the policy (not the
// executor) for a stricter authorization model.
type Policy struct {
	allowed []string
}

// DefaultPolicy permits the four DML verbs plus WITH for CTE-prefixed
// statements.
func DefaultPolicy() Policy {
	return Policy{allowed: []string{"SELECT", "INSERT", "UPDATE", "DELETE", "WITH"}}
}

// Check trims the statement, uppercases a copy for comparison only, and
// verifies the leading keyword. The original text is left untouched for
// execution. Returns the detected command verb.
func (p Policy) Check(stmt string) (string, error) {
	trimmed := strings.TrimSpace(stmt)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty statement", ErrRejectedStatement)
	}
	upper := strings.ToUpper(trimmed)
	for _, kw := range p.allowed {
		if strings.HasPrefix(upper, kw) {
			return kw, nil
		}
	}
	return "", fmt.Errorf("%w: statement must start with one of %s",
		ErrRejectedStatement, strings.Join(p.allowed, ", "))
}
