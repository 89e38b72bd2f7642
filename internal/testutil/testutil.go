// Package testutil provides shared test helpers for engines and databases.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/careergraph/internal/careers"
	"github.com/starford/careergraph/internal/dataset"
	"github.com/starford/careergraph/internal/index"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "careergraph-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// DemoHolder builds the embedded demo dataset and wraps it in a holder.
func DemoHolder(t *testing.T) *careers.Holder {
	t.Helper()
	d := dataset.Demo()
	e, err := d.Build()
	if err != nil {
		t.Fatalf("build demo: %v", err)
	}
	return careers.NewHolder(e, d.Checksum)
}
