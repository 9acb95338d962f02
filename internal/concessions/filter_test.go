package concessions

import (
	"testing"
)

// TestBuildFilter_Empty verifies that zero criteria compose an empty clause:
// no filtering, all records match.
func TestBuildFilter_Empty(t *testing.T) {
	where, args := BuildFilter(SearchCriteria{})
	if where != "" {
		t.Errorf("expected empty clause, got %q", where)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

// TestBuildFilter_SubstringFields verifies name and owner match
// case-insensitively on substrings (ILIKE with wrapped wildcards).
func TestBuildFilter_SubstringFields(t *testing.T) {
	where, args := BuildFilter(SearchCriteria{Name: "Ankobra"})
	if where != "WHERE name ILIKE $1" {
		t.Errorf("unexpected clause: %q", where)
	}
	if len(args) != 1 || args[0] != "%Ankobra%" {
		t.Errorf("expected wrapped substring arg, got %v", args)
	}

	where, args = BuildFilter(SearchCriteria{Owner: "Sankofa"})
	if where != "WHERE owner ILIKE $1" {
		t.Errorf("unexpected clause: %q", where)
	}
	if args[0] != "%Sankofa%" {
		t.Errorf("expected wrapped substring arg, got %v", args)
	}
}

// TestBuildFilter_ExactFields verifies region, status, and permitType use
// exact comparison with the raw value bound (no wildcards).
func TestBuildFilter_ExactFields(t *testing.T) {
	where, args := BuildFilter(SearchCriteria{Region: "Western"})
	if where != "WHERE region = $1" {
		t.Errorf("unexpected clause: %q", where)
	}
	if args[0] != "Western" {
		t.Errorf("expected exact value bound, got %v", args[0])
	}

	where, _ = BuildFilter(SearchCriteria{Status: "active"})
	if where != "WHERE status = $1" {
		t.Errorf("unexpected clause: %q", where)
	}

	where, _ = BuildFilter(SearchCriteria{PermitType: "Mining Lease"})
	if where != "WHERE permit_type = $1" {
		t.Errorf("unexpected clause: %q", where)
	}
}

// TestBuildFilter_FixedOrder verifies that all criteria compose in the fixed
// order with sequential placeholders matched 1:1 to the args.
func TestBuildFilter_FixedOrder(t *testing.T) {
	where, args := BuildFilter(SearchCriteria{
		Name:       "gold",
		Owner:      "ltd",
		Region:     "Western",
		Status:     "active",
		PermitType: "Mining Lease",
		Districts:  []string{"Nzema East", "Tarkwa"},
	})

	want := "WHERE name ILIKE $1 AND owner ILIKE $2 AND region = $3 AND status = $4 AND permit_type = $5 AND district = ANY($6)"
	if where != want {
		t.Errorf("clause mismatch:\n got %q\nwant %q", where, want)
	}
	if len(args) != 6 {
		t.Errorf("expected 6 args, got %d", len(args))
	}
}

// TestBuildFilter_CompositionIsAND verifies that a two-criterion filter is
// exactly the AND of the two single-criterion predicates, with placeholders
// renumbered.
func TestBuildFilter_CompositionIsAND(t *testing.T) {
	where, args := BuildFilter(SearchCriteria{Name: "gold", Region: "Western"})
	want := "WHERE name ILIKE $1 AND region = $2"
	if where != want {
		t.Errorf("clause mismatch:\n got %q\nwant %q", where, want)
	}
	if args[0] != "%gold%" || args[1] != "Western" {
		t.Errorf("args not parallel to placeholders: %v", args)
	}
}

// TestBuildFilter_SkipsAbsent verifies placeholders stay dense when earlier
// criteria are absent.
func TestBuildFilter_SkipsAbsent(t *testing.T) {
	where, args := BuildFilter(SearchCriteria{Status: "active", PermitType: "Prospecting License"})
	want := "WHERE status = $1 AND permit_type = $2"
	if where != want {
		t.Errorf("clause mismatch:\n got %q\nwant %q", where, want)
	}
	if len(args) != 2 {
		t.Errorf("expected 2 args, got %d", len(args))
	}
}
