package graph

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/starford/careergraph/internal/apperr"
	"github.com/starford/careergraph/internal/models"
)

type edge struct {
	from models.TitleID
	to   []models.TitleID
}

func buildGraph(t *testing.T, nodes []models.TitleID, edges ...edge) *Graph {
	t.Helper()
	m := make(map[models.TitleID][]models.TitleID, len(edges))
	for _, e := range edges {
		m[e.from] = e.to
	}
	return New(nodes, m)
}

func ids(v ...int) []models.TitleID {
	out := make([]models.TitleID, len(v))
	for i, x := range v {
		out[i] = models.TitleID(x)
	}
	return out
}

func TestPaths_Linear(t *testing.T) {
	g := buildGraph(t, ids(1, 2, 3), edge{1, ids(2)}, edge{2, ids(3)})
	got := g.Paths(1)
	want := []models.Path{{1, 2, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paths(1) = %v, want %v", got, want)
	}
}

func TestPaths_LeafStart(t *testing.T) {
	g := buildGraph(t, ids(1, 2), edge{1, ids(2)})
	got := g.Paths(2)
	if len(got) != 1 || len(got[0]) != 1 || got[0][0] != 2 {
		t.Errorf("Paths(leaf) = %v, want [[2]]", got)
	}
}

func TestPaths_UnknownStartIsSinglePath(t *testing.T) {
	g := buildGraph(t, ids(1))
	got := g.Paths(42)
	if len(got) != 1 || got[0][0] != 42 {
		t.Errorf("Paths(42) = %v, want [[42]]", got)
	}
}

func TestPaths_BranchOrder(t *testing.T) {
	//      1
	//    /   \
	//   3     2
	//  / \    |
	// 5   4   4
	g := buildGraph(t, ids(1, 2, 3, 4, 5),
		edge{1, ids(3, 2)},
		edge{3, ids(5, 4)},
		edge{2, ids(4)},
	)
	got := g.Paths(1)
	want := []models.Path{{1, 3, 5}, {1, 3, 4}, {1, 2, 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paths(1) = %v, want %v", got, want)
	}
}

func TestPaths_StartAndEndInvariants(t *testing.T) {
	g := buildGraph(t, ids(1, 2, 3, 4, 5, 6),
		edge{1, ids(2, 3)},
		edge{2, ids(4, 5)},
		edge{3, ids(5)},
		edge{5, ids(6)},
	)
	paths := g.Paths(1)
	if len(paths) != 3 {
		t.Fatalf("len(paths) = %d, want 3", len(paths))
	}
	for _, p := range paths {
		if p.Start() != 1 {
			t.Errorf("path %v does not start at 1", p)
		}
		if !g.IsLeaf(p.End()) {
			t.Errorf("path %v does not end at a leaf", p)
		}
	}
}

func TestPaths_IndependentCopies(t *testing.T) {
	g := buildGraph(t, ids(1, 2, 3), edge{1, ids(2, 3)})
	paths := g.Paths(1)
	if len(paths) != 2 {
		t.Fatalf("len(paths) = %d, want 2", len(paths))
	}
	paths[0][1] = 99
	if paths[1][1] != 3 {
		t.Errorf("mutating one path changed another: %v", paths)
	}
	again := g.Paths(1)
	if again[0][1] != 2 {
		t.Errorf("mutating a result changed the graph: %v", again)
	}
}

func TestWalk_StopsEarly(t *testing.T) {
	g := buildGraph(t, ids(1, 2, 3, 4), edge{1, ids(2, 3, 4)})
	var seen []models.Path
	done := g.Walk(1, func(p models.Path) bool {
		seen = append(seen, p)
		return len(seen) < 2
	})
	if done {
		t.Error("Walk should report an interrupted walk")
	}
	if len(seen) != 2 {
		t.Errorf("visited %d paths, want 2", len(seen))
	}
}

func TestSuccessors(t *testing.T) {
	g := buildGraph(t, ids(1, 2), edge{1, ids(2)})
	if s := g.Successors(1); len(s) != 1 || s[0] != 2 {
		t.Errorf("Successors(1) = %v", s)
	}
	if s := g.Successors(2); len(s) != 0 {
		t.Errorf("Successors(leaf) = %v, want empty", s)
	}
	if s := g.Successors(77); len(s) != 0 {
		t.Errorf("Successors(unknown) = %v, want empty", s)
	}
}

func TestCounts(t *testing.T) {
	g := buildGraph(t, ids(1, 2, 3, 4), edge{1, ids(2, 3)}, edge{2, ids(4)})
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount = %d, want 3", g.EdgeCount())
	}
	if g.LeafCount() != 2 {
		t.Errorf("LeafCount = %d, want 2", g.LeafCount())
	}
	if len(g.Nodes()) != 4 {
		t.Errorf("Nodes = %v", g.Nodes())
	}
}

func TestValidate_Acyclic(t *testing.T) {
	g := buildGraph(t, ids(1, 2, 3), edge{1, ids(2, 3)}, edge{2, ids(3)})
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate_Cycle(t *testing.T) {
	g := buildGraph(t, ids(1, 2, 3), edge{1, ids(2)}, edge{2, ids(3)}, edge{3, ids(2)})
	err := g.Validate()
	if !errors.Is(err, apperr.ErrCycle) {
		t.Fatalf("err = %v, want ErrCycle", err)
	}
	if !strings.Contains(err.Error(), "2 -> 3 -> 2") {
		t.Errorf("cycle not described: %v", err)
	}
}

func TestValidate_SelfLoop(t *testing.T) {
	g := buildGraph(t, ids(1), edge{1, ids(1)})
	if err := g.Validate(); !errors.Is(err, apperr.ErrCycle) {
		t.Fatalf("err = %v, want ErrCycle", err)
	}
}

func TestValidate_UnknownTarget(t *testing.T) {
	g := buildGraph(t, ids(1), edge{1, ids(9)})
	if err := g.Validate(); !errors.Is(err, apperr.ErrUnknownReference) {
		t.Fatalf("err = %v, want ErrUnknownReference", err)
	}
}

func TestValidate_UnknownSource(t *testing.T) {
	g := buildGraph(t, ids(1), edge{9, ids(1)})
	if err := g.Validate(); !errors.Is(err, apperr.ErrUnknownReference) {
		t.Fatalf("err = %v, want ErrUnknownReference", err)
	}
}
