package query

import (
	"errors"
	"testing"
)

// TestPolicy_Check exercises the allow-list gate: exactly statements whose
// trimmed, case-normalized text begins with SELECT, INSERT, UPDATE, DELETE,
// or WITH pass; everything else is rejected before execution.
func TestPolicy_Check(t *testing.T) {
	p := DefaultPolicy()

	cases := []struct {
		stmt     string
		wantVerb string
		wantErr  bool
	}{
		{"SELECT * FROM concessions", "SELECT", false},
		{" select 1", "SELECT", false},
		{"\n\tSeLeCt name FROM concessions", "SELECT", false},
		{"INSERT INTO concessions (id) VALUES ($1)", "INSERT", false},
		{"update concessions set status = $1", "UPDATE", false},
		{"delete from concessions where id = $1", "DELETE", false},
		{"WITH recent AS (SELECT * FROM concessions) SELECT * FROM recent", "WITH", false},
		{"DROP TABLE concessions", "", true},
		{"  drop table concessions", "", true},
		{"TRUNCATE concessions", "", true},
		{"ALTER TABLE concessions ADD COLUMN x int", "", true},
		{"GRANT ALL ON concessions TO public", "", true},
		{"", "", true},
		{"   ", "", true},
	}

	for _, tc := range cases {
		verb, err := p.Check(tc.stmt)
		if tc.wantErr {
			if !errors.Is(err, ErrRejectedStatement) {
				t.Errorf("%q: expected ErrRejectedStatement, got %v", tc.stmt, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.stmt, err)
			continue
		}
		if verb != tc.wantVerb {
			t.Errorf("%q: expected verb %s, got %s", tc.stmt, tc.wantVerb, verb)
		}
	}
}
