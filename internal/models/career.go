// Package models defines the domain types for careergraph.
package models

// TitleID identifies a job title. It lives in its own namespace and is never
// compared with a PersonID.
type TitleID int

// PersonID identifies a person.
type PersonID int

// Path is an ordered sequence of titles connected by NEXT_TITLE edges,
// running from a start title to a leaf.
type Path []TitleID

// Clone returns an independent copy of p.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Start returns the first title of the path.
func (p Path) Start() TitleID {
	return p[0]
}

// End returns the last title of the path.
func (p Path) End() TitleID {
	return p[len(p)-1]
}

// PathResult is one enumerated path with the people whose history follows it.
type PathResult struct {
	Path      []string `json:"path"`
	Followers []string `json:"followers"`
}

// Stats summarises a loaded dataset.
type Stats struct {
	Titles  int `json:"titles"`
	People  int `json:"people"`
	Edges   int `json:"edges"`
	Records int `json:"records"`
	Leaves  int `json:"leaves"`
}
