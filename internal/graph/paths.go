package graph

import "github.com/starford/careergraph/internal/models"

// Paths returns every maximal path that begins at start, in the order the
// leaves are reached by a depth-first walk that follows successors in stored
// order. A leaf start yields the single path [start]. The graph must be
// acyclic.
func (g *Graph) Paths(start models.TitleID) []models.Path {
	var out []models.Path
	g.Walk(start, func(p models.Path) bool {
		out = append(out, p)
		return true
	})
	return out
}

// Walk performs the same traversal as Paths and hands each path to visit.
// Every path is an independent copy. Returning false from visit stops the
// walk; Walk reports whether it ran to completion.
func (g *Graph) Walk(start models.TitleID, visit func(models.Path) bool) bool {
	acc := models.Path{start}
	return g.walk(acc, visit)
}

func (g *Graph) walk(acc models.Path, visit func(models.Path) bool) bool {
	succ := g.next[acc.End()]
	if len(succ) == 0 {
		return visit(acc.Clone())
	}
	for _, nxt := range succ {
		acc = append(acc, nxt)
		if !g.walk(acc, visit) {
			return false
		}
		acc = acc[:len(acc)-1]
	}
	return true
}
