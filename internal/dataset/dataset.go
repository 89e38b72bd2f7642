// Package dataset loads, validates and builds the career data behind the
// query engine.
//
// A dataset is a YAML document listing titles (with their NEXT_TITLE
// successors) and people (with the titles they HELD, oldest first).
package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/starford/careergraph/internal/apperr"
	"github.com/starford/careergraph/internal/careers"
	"github.com/starford/careergraph/internal/graph"
	"github.com/starford/careergraph/internal/history"
	"github.com/starford/careergraph/internal/models"
	"github.com/starford/careergraph/internal/registry"
)

// Dataset is the raw, declarative form of the career data.
type Dataset struct {
	Titles []Title  `yaml:"titles"`
	People []Person `yaml:"people"`

	// Checksum identifies the source the dataset was read from.
	Checksum string `yaml:"-"`
}

// Title is a job title and the titles that may follow it.
type Title struct {
	ID   models.TitleID   `yaml:"id"`
	Name string           `yaml:"name"`
	Next []models.TitleID `yaml:"next,omitempty"`
}

// Validate implements validation.Validatable.
func (t Title) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.ID, validation.Required),
		validation.Field(&t.Name, validation.Required, validation.Length(1, 256)),
	)
}

// Person is someone and the titles they held.
type Person struct {
	ID   models.PersonID `yaml:"id"`
	Name string          `yaml:"name"`
	Held []Held          `yaml:"held,omitempty"`
}

// Validate implements validation.Validatable.
func (p Person) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 256)),
		validation.Field(&p.Held),
	)
}

// Timeline returns the held titles in chronological order. Entries without
// an explicit seq take their position in the list.
func (p Person) Timeline() []models.TitleID {
	type entry struct {
		seq   int
		title models.TitleID
	}
	entries := make([]entry, len(p.Held))
	for i, h := range p.Held {
		seq := i
		if h.Seq != nil {
			seq = *h.Seq
		}
		entries[i] = entry{seq: seq, title: h.Title}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	out := make([]models.TitleID, len(entries))
	for i, e := range entries {
		out[i] = e.title
	}
	return out
}

// Held is one HELD edge. In YAML it is either a bare title id or a mapping
// with title and an optional seq.
type Held struct {
	Title models.TitleID `yaml:"title"`
	Seq   *int           `yaml:"seq,omitempty"`
}

// Validate implements validation.Validatable.
func (h Held) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Title, validation.Required),
		validation.Field(&h.Seq, validation.Min(0)),
	)
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (h *Held) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var id int
		if err := node.Decode(&id); err != nil {
			return fmt.Errorf("held: %w", err)
		}
		*h = Held{Title: models.TitleID(id)}
		return nil
	}
	type plain Held
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*h = Held(p)
	return nil
}

// MarshalYAML writes the scalar form when no seq is set.
func (h Held) MarshalYAML() (interface{}, error) {
	if h.Seq == nil {
		return int(h.Title), nil
	}
	type plain Held
	return plain(h), nil
}

// Validate checks field-level constraints. Cross-references are checked by
// Build.
func (d *Dataset) Validate() error {
	err := validation.ValidateStruct(d,
		validation.Field(&d.Titles, validation.Required),
		validation.Field(&d.People),
	)
	if err != nil {
		return fmt.Errorf("dataset: %w: %v", apperr.ErrInvalid, err)
	}
	return nil
}

// Parse decodes a YAML dataset.
func Parse(data []byte) (*Dataset, error) {
	var d Dataset
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("dataset: parse: %w", err)
	}
	d.Checksum = Sum(data)
	return &d, nil
}

// Load reads and decodes the dataset file at path.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	return Parse(data)
}

// Encode renders d as YAML.
func (d *Dataset) Encode() ([]byte, error) {
	out, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("dataset: encode: %w", err)
	}
	return out, nil
}

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Build validates d and assembles an engine from it. It fails on duplicate
// names or ids, on references to undeclared titles or people, and on cycles
// in the progression graph.
func (d *Dataset) Build(opts ...careers.Option) (*careers.Engine, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	titleEntries := make([]registry.Entry[models.TitleID], len(d.Titles))
	for i, t := range d.Titles {
		titleEntries[i] = registry.Entry[models.TitleID]{Label: t.Name, ID: t.ID}
	}
	titles, err := registry.New(titleEntries)
	if err != nil {
		return nil, fmt.Errorf("dataset: titles: %w", err)
	}

	personEntries := make([]registry.Entry[models.PersonID], len(d.People))
	for i, p := range d.People {
		personEntries[i] = registry.Entry[models.PersonID]{Label: p.Name, ID: p.ID}
	}
	people, err := registry.New(personEntries)
	if err != nil {
		return nil, fmt.Errorf("dataset: people: %w", err)
	}

	edges := make(map[models.TitleID][]models.TitleID, len(d.Titles))
	for _, t := range d.Titles {
		seen := make(map[models.TitleID]struct{}, len(t.Next))
		for _, nxt := range t.Next {
			if _, dup := seen[nxt]; dup {
				return nil, fmt.Errorf("dataset: %w edge %q -> %d", apperr.ErrDuplicate, t.Name, nxt)
			}
			seen[nxt] = struct{}{}
		}
		edges[t.ID] = t.Next
	}
	g := graph.New(titles.IDs(), edges)
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	records := make([]history.Record, 0, len(d.People))
	for _, p := range d.People {
		timeline := p.Timeline()
		for _, id := range timeline {
			if !titles.Has(id) {
				return nil, fmt.Errorf("dataset: %w: %q held undeclared title %d", apperr.ErrUnknownReference, p.Name, id)
			}
		}
		records = append(records, history.Record{Person: p.ID, Titles: timeline})
	}
	store, err := history.New(records)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	return careers.New(titles, people, g, store, opts...), nil
}
