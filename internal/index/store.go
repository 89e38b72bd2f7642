package index

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/starford/careergraph/internal/apperr"
	"github.com/starford/careergraph/internal/dataset"
	"github.com/starford/careergraph/internal/models"
)

const metaChecksumKey = "source_checksum"

// Import replaces the stored dataset with d inside a single transaction.
// d must build cleanly; histories are stored in chronological order.
func (db *DB) Import(d *dataset.Dataset) error {
	if _, err := d.Build(); err != nil {
		return fmt.Errorf("index: import: %w", err)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	for _, table := range []string{"held", "next_title", "people", "titles", "meta"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("index: clear %s: %w", table, err)
		}
	}

	titleStmt, err := tx.Prepare(`INSERT INTO titles (id, name, position) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("index: prepare title insert: %w", err)
	}
	defer titleStmt.Close()
	for i, t := range d.Titles {
		if _, err := titleStmt.Exec(int(t.ID), t.Name, i); err != nil {
			return fmt.Errorf("index: insert title %q: %w", t.Name, err)
		}
	}

	edgeStmt, err := tx.Prepare(`INSERT INTO next_title (source, target, position) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("index: prepare edge insert: %w", err)
	}
	defer edgeStmt.Close()
	for _, t := range d.Titles {
		for i, nxt := range t.Next {
			if _, err := edgeStmt.Exec(int(t.ID), int(nxt), i); err != nil {
				return fmt.Errorf("index: insert edge %d -> %d: %w", t.ID, nxt, err)
			}
		}
	}

	personStmt, err := tx.Prepare(`INSERT INTO people (id, name, position) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("index: prepare person insert: %w", err)
	}
	defer personStmt.Close()
	heldStmt, err := tx.Prepare(`INSERT INTO held (person_id, title_id, seq) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("index: prepare held insert: %w", err)
	}
	defer heldStmt.Close()
	for i, p := range d.People {
		if _, err := personStmt.Exec(int(p.ID), p.Name, i); err != nil {
			return fmt.Errorf("index: insert person %q: %w", p.Name, err)
		}
		for seq, title := range p.Timeline() {
			if _, err := heldStmt.Exec(int(p.ID), int(title), seq); err != nil {
				return fmt.Errorf("index: insert held %d -> %d: %w", p.ID, title, err)
			}
		}
	}

	cs := d.Checksum
	if cs == "" {
		enc, err := d.Encode()
		if err != nil {
			return err
		}
		cs = dataset.Sum(enc)
	}
	if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)`, metaChecksumKey, cs); err != nil {
		return fmt.Errorf("index: write meta: %w", err)
	}

	return tx.Commit()
}

// Dataset reads the stored dataset back in its original order. It returns
// apperr.ErrNotFound when nothing has been imported.
func (db *DB) Dataset() (*dataset.Dataset, error) {
	d := &dataset.Dataset{}

	titleRows, err := db.conn.Query(`SELECT id, name FROM titles ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("index: titles: %w", err)
	}
	defer titleRows.Close()
	pos := make(map[models.TitleID]int)
	for titleRows.Next() {
		var t dataset.Title
		if err := titleRows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		pos[t.ID] = len(d.Titles)
		d.Titles = append(d.Titles, t)
	}
	if err := titleRows.Err(); err != nil {
		return nil, err
	}
	if len(d.Titles) == 0 {
		return nil, fmt.Errorf("index: %w: no dataset imported", apperr.ErrNotFound)
	}

	edgeRows, err := db.conn.Query(`SELECT source, target FROM next_title ORDER BY source, position`)
	if err != nil {
		return nil, fmt.Errorf("index: edges: %w", err)
	}
	defer edgeRows.Close()
	for edgeRows.Next() {
		var from, to models.TitleID
		if err := edgeRows.Scan(&from, &to); err != nil {
			return nil, err
		}
		i := pos[from]
		d.Titles[i].Next = append(d.Titles[i].Next, to)
	}
	if err := edgeRows.Err(); err != nil {
		return nil, err
	}

	personRows, err := db.conn.Query(`SELECT id, name FROM people ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("index: people: %w", err)
	}
	defer personRows.Close()
	people := make(map[models.PersonID]int)
	for personRows.Next() {
		var p dataset.Person
		if err := personRows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		people[p.ID] = len(d.People)
		d.People = append(d.People, p)
	}
	if err := personRows.Err(); err != nil {
		return nil, err
	}

	heldRows, err := db.conn.Query(`SELECT person_id, title_id, seq FROM held ORDER BY person_id, seq`)
	if err != nil {
		return nil, fmt.Errorf("index: held: %w", err)
	}
	defer heldRows.Close()
	for heldRows.Next() {
		var (
			person models.PersonID
			title  models.TitleID
			seq    int
		)
		if err := heldRows.Scan(&person, &title, &seq); err != nil {
			return nil, err
		}
		i := people[person]
		d.People[i].Held = append(d.People[i].Held, dataset.Held{Title: title, Seq: &seq})
	}
	if err := heldRows.Err(); err != nil {
		return nil, err
	}

	cs, err := db.sourceChecksum()
	if err != nil {
		return nil, err
	}
	d.Checksum = cs
	return d, nil
}

func (db *DB) sourceChecksum() (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT value FROM meta WHERE key = ?`, metaChecksumKey).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: meta: %w", err)
	}
	return cs, nil
}
