// Package careers answers career-progression queries over a loaded dataset.
//
// An Engine is immutable once built and safe for concurrent use.
package careers

import (
	"github.com/starford/careergraph/internal/graph"
	"github.com/starford/careergraph/internal/history"
	"github.com/starford/careergraph/internal/match"
	"github.com/starford/careergraph/internal/models"
	"github.com/starford/careergraph/internal/registry"
)

// Option configures an Engine.
type Option func(*Engine)

// WithMaxPaths stops path enumeration after n paths. Zero means unbounded.
func WithMaxPaths(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxPaths = n
		}
	}
}

// Engine is the query facade over the title registry, person registry,
// progression graph and history store.
type Engine struct {
	titles   *registry.Registry[models.TitleID]
	people   *registry.Registry[models.PersonID]
	graph    *graph.Graph
	history  *history.Store
	maxPaths int
}

// New wires the engine. The inputs must be consistent: every title id in
// the graph and history is registered in titles, and every person in the
// history is registered in people.
func New(
	titles *registry.Registry[models.TitleID],
	people *registry.Registry[models.PersonID],
	g *graph.Graph,
	h *history.Store,
	opts ...Option,
) *Engine {
	e := &Engine{titles: titles, people: people, graph: g, history: h}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PathsWithFollowers enumerates every progression path from startTitle and,
// for each, lists the people whose history contains the path in order.
// An unknown title yields an empty result.
func (e *Engine) PathsWithFollowers(startTitle string) []models.PathResult {
	start, ok := e.titles.Resolve(startTitle)
	if !ok {
		return []models.PathResult{}
	}

	out := []models.PathResult{}
	e.graph.Walk(start, func(p models.Path) bool {
		out = append(out, models.PathResult{
			Path:      e.titleLabels(p),
			Followers: e.followers(p),
		})
		return e.maxPaths == 0 || len(out) < e.maxPaths
	})
	return out
}

// CurrentHolders returns the people whose most recent title is titleName.
// Only people with a history are considered.
func (e *Engine) CurrentHolders(titleName string) []string {
	id, ok := e.titles.Resolve(titleName)
	if !ok || id == 0 {
		return []string{}
	}
	out := []string{}
	e.history.Each(func(person models.PersonID, titles []models.TitleID) {
		if titles[len(titles)-1] == id {
			out = append(out, e.people.Label(person))
		}
	})
	return out
}

// TitlesHeldBy returns the titles person held, oldest first, repeats included.
func (e *Engine) TitlesHeldBy(person models.PersonID) []string {
	titles, ok := e.history.Record(person)
	if !ok {
		return []string{}
	}
	return e.titleLabels(titles)
}

// Titles returns every known title in registration order.
func (e *Engine) Titles() []string {
	return e.titleLabels(e.titles.IDs())
}

// Stats summarises the loaded data.
func (e *Engine) Stats() models.Stats {
	return models.Stats{
		Titles:  e.titles.Len(),
		People:  e.people.Len(),
		Edges:   e.graph.EdgeCount(),
		Records: e.history.Len(),
		Leaves:  e.graph.LeafCount(),
	}
}

func (e *Engine) followers(p models.Path) []string {
	out := []string{}
	e.history.Each(func(person models.PersonID, titles []models.TitleID) {
		if match.IsSubsequence(titles, p) {
			out = append(out, e.people.Label(person))
		}
	})
	return out
}

func (e *Engine) titleLabels(ids []models.TitleID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = e.titles.Label(id)
	}
	return out
}
