// Package graph holds the title progression graph and enumerates the
// progression paths through it.
//
// Edges are NEXT_TITLE relations: an edge a -> b means b is a valid next
// title after a. The graph is expected to be acyclic; Validate reports a
// cycle, and Paths does not terminate on one.
package graph

import (
	"fmt"
	"strings"

	"github.com/starford/careergraph/internal/apperr"
	"github.com/starford/careergraph/internal/models"
)

// Graph is an immutable adjacency list keyed by title.
type Graph struct {
	nodes []models.TitleID
	known map[models.TitleID]struct{}
	next  map[models.TitleID][]models.TitleID
}

// New builds a graph over nodes. edges maps a title to its successors in
// enumeration order; both arguments are copied.
func New(nodes []models.TitleID, edges map[models.TitleID][]models.TitleID) *Graph {
	g := &Graph{
		nodes: make([]models.TitleID, len(nodes)),
		known: make(map[models.TitleID]struct{}, len(nodes)),
		next:  make(map[models.TitleID][]models.TitleID, len(edges)),
	}
	copy(g.nodes, nodes)
	for _, n := range nodes {
		g.known[n] = struct{}{}
	}
	for from, to := range edges {
		if len(to) == 0 {
			continue
		}
		succ := make([]models.TitleID, len(to))
		copy(succ, to)
		g.next[from] = succ
	}
	return g
}

// Successors returns the NEXT_TITLE targets of id in stored order. Leaves
// and unknown ids both yield an empty slice. Callers must not modify it.
func (g *Graph) Successors(id models.TitleID) []models.TitleID {
	return g.next[id]
}

// IsLeaf reports whether id has no successors.
func (g *Graph) IsLeaf(id models.TitleID) bool {
	return len(g.next[id]) == 0
}

// Nodes returns the declared titles in declaration order.
func (g *Graph) Nodes() []models.TitleID {
	out := make([]models.TitleID, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// EdgeCount returns the number of NEXT_TITLE edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, succ := range g.next {
		n += len(succ)
	}
	return n
}

// LeafCount returns the number of declared titles without successors.
func (g *Graph) LeafCount() int {
	n := 0
	for _, id := range g.nodes {
		if g.IsLeaf(id) {
			n++
		}
	}
	return n
}

// Validate checks that every edge joins declared titles and that the graph
// has no cycle. It must pass before Paths is used on untrusted data.
func (g *Graph) Validate() error {
	for _, from := range g.nodes {
		for _, to := range g.next[from] {
			if _, ok := g.known[to]; !ok {
				return fmt.Errorf("graph: %w: edge %d -> %d targets an undeclared title", apperr.ErrUnknownReference, from, to)
			}
		}
	}
	for from := range g.next {
		if _, ok := g.known[from]; !ok {
			return fmt.Errorf("graph: %w: edge source %d is an undeclared title", apperr.ErrUnknownReference, from)
		}
	}

	const (
		white = iota
		grey
		black
	)
	color := make(map[models.TitleID]int, len(g.nodes))
	var stack []models.TitleID

	var visit func(id models.TitleID) error
	visit = func(id models.TitleID) error {
		color[id] = grey
		stack = append(stack, id)
		for _, nxt := range g.next[id] {
			switch color[nxt] {
			case grey:
				return fmt.Errorf("graph: %w: %s", apperr.ErrCycle, formatCycle(stack, nxt))
			case white:
				if err := visit(nxt); err != nil {
					return err
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return nil
	}

	for _, id := range g.nodes {
		if color[id] == white {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatCycle renders the part of stack that closes back on head.
func formatCycle(stack []models.TitleID, head models.TitleID) string {
	start := 0
	for i, id := range stack {
		if id == head {
			start = i
			break
		}
	}
	parts := make([]string, 0, len(stack)-start+1)
	for _, id := range stack[start:] {
		parts = append(parts, fmt.Sprint(id))
	}
	parts = append(parts, fmt.Sprint(head))
	return strings.Join(parts, " -> ")
}
