// Package history stores the chronological title record of each person.
package history

import (
	"fmt"

	"github.com/starford/careergraph/internal/apperr"
	"github.com/starford/careergraph/internal/models"
)

// Record is the ordered list of titles one person held.
type Record struct {
	Person models.PersonID
	Titles []models.TitleID
}

// Store is an immutable set of records. Iteration follows the order the
// records were given to New.
type Store struct {
	order   []models.PersonID
	records map[models.PersonID][]models.TitleID
}

// New builds a store. A person may appear at most once; records with no
// titles are dropped, so such people have no history at all.
func New(records []Record) (*Store, error) {
	s := &Store{
		order:   make([]models.PersonID, 0, len(records)),
		records: make(map[models.PersonID][]models.TitleID, len(records)),
	}
	for _, r := range records {
		if _, ok := s.records[r.Person]; ok {
			return nil, fmt.Errorf("history: %w record for person %d", apperr.ErrDuplicate, r.Person)
		}
		if len(r.Titles) == 0 {
			continue
		}
		titles := make([]models.TitleID, len(r.Titles))
		copy(titles, r.Titles)
		s.records[r.Person] = titles
		s.order = append(s.order, r.Person)
	}
	return s, nil
}

// Record returns the titles held by person, oldest first. Callers must not
// modify the returned slice.
func (s *Store) Record(person models.PersonID) ([]models.TitleID, bool) {
	titles, ok := s.records[person]
	return titles, ok
}

// Current returns the most recent title held by person.
func (s *Store) Current(person models.PersonID) (models.TitleID, bool) {
	titles, ok := s.records[person]
	if !ok {
		return 0, false
	}
	return titles[len(titles)-1], true
}

// Each calls fn for every record in store order.
func (s *Store) Each(fn func(person models.PersonID, titles []models.TitleID)) {
	for _, p := range s.order {
		fn(p, s.records[p])
	}
}

// People returns the ids of everyone with a record, in store order.
func (s *Store) People() []models.PersonID {
	out := make([]models.PersonID, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.order)
}
