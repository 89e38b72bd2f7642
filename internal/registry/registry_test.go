package registry

import (
	"errors"
	"testing"

	"github.com/starford/careergraph/internal/apperr"
	"github.com/starford/careergraph/internal/models"
)

func titles(t *testing.T) *Registry[models.TitleID] {
	t.Helper()
	r, err := New([]Entry[models.TitleID]{
		{Label: "Analyst", ID: 1},
		{Label: "Senior Analyst", ID: 2},
		{Label: "Staff Analyst", ID: 3},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestResolveAndLabel(t *testing.T) {
	r := titles(t)
	id, ok := r.Resolve("Senior Analyst")
	if !ok || id != 2 {
		t.Fatalf("Resolve = %v, %v, want 2, true", id, ok)
	}
	if got := r.Label(3); got != "Staff Analyst" {
		t.Errorf("Label(3) = %q, want %q", got, "Staff Analyst")
	}
}

func TestResolve_Unknown(t *testing.T) {
	r := titles(t)
	if _, ok := r.Resolve("Chief Analyst"); ok {
		t.Error("unknown label should not resolve")
	}
	if _, ok := r.Resolve(""); ok {
		t.Error("empty label should not resolve")
	}
}

func TestRoundTrip(t *testing.T) {
	r := titles(t)
	for _, id := range r.IDs() {
		got, ok := r.Resolve(r.Label(id))
		if !ok || got != id {
			t.Errorf("Resolve(Label(%d)) = %d, %v", id, got, ok)
		}
	}
}

func TestIDs_RegistrationOrder(t *testing.T) {
	r, err := New([]Entry[models.PersonID]{
		{Label: "Charlie", ID: 103},
		{Label: "Alice", ID: 101},
		{Label: "Bob", ID: 102},
	})
	if err != nil {
		t.Fatal(err)
	}
	ids := r.IDs()
	want := []models.PersonID{103, 101, 102}
	if len(ids) != len(want) {
		t.Fatalf("IDs = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("IDs = %v, want %v", ids, want)
		}
	}
	if r.Len() != 3 {
		t.Errorf("Len = %d, want 3", r.Len())
	}
}

func TestNew_DuplicateLabel(t *testing.T) {
	_, err := New([]Entry[models.TitleID]{
		{Label: "Analyst", ID: 1},
		{Label: "Analyst", ID: 2},
	})
	if !errors.Is(err, apperr.ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
}

func TestNew_DuplicateID(t *testing.T) {
	_, err := New([]Entry[models.TitleID]{
		{Label: "Analyst", ID: 1},
		{Label: "Senior Analyst", ID: 1},
	})
	if !errors.Is(err, apperr.ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
}

func TestNew_BlankLabel(t *testing.T) {
	_, err := New([]Entry[models.TitleID]{{Label: "  ", ID: 1}})
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestLabel_UnregisteredPanics(t *testing.T) {
	r := titles(t)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unregistered id")
		}
	}()
	_ = r.Label(99)
}

func TestLookup(t *testing.T) {
	r := titles(t)
	if _, ok := r.Lookup(99); ok {
		t.Error("Lookup(99) should report false")
	}
	if label, ok := r.Lookup(1); !ok || label != "Analyst" {
		t.Errorf("Lookup(1) = %q, %v", label, ok)
	}
	if !r.Has(1) || r.Has(99) {
		t.Error("Has mismatch")
	}
}
