package careers

import (
	"reflect"
	"sync"
	"testing"

	"github.com/starford/careergraph/internal/graph"
	"github.com/starford/careergraph/internal/history"
	"github.com/starford/careergraph/internal/models"
	"github.com/starford/careergraph/internal/registry"
)

var demoTitles = []registry.Entry[models.TitleID]{
	{Label: "Analyst", ID: 1},
	{Label: "Senior Analyst", ID: 2},
	{Label: "Staff Analyst", ID: 3},
	{Label: "Data Scientist", ID: 4},
	{Label: "Senior Data Scientist", ID: 5},
	{Label: "Staff Data Scientist", ID: 6},
}

var demoPeople = []registry.Entry[models.PersonID]{
	{Label: "Alice", ID: 101},
	{Label: "Bob", ID: 102},
	{Label: "Charlie", ID: 103},
}

func chain(n int) map[models.TitleID][]models.TitleID {
	edges := make(map[models.TitleID][]models.TitleID, n)
	for i := 1; i < n; i++ {
		edges[models.TitleID(i)] = []models.TitleID{models.TitleID(i + 1)}
	}
	return edges
}

func newEngine(t *testing.T, titles []registry.Entry[models.TitleID], people []registry.Entry[models.PersonID],
	edges map[models.TitleID][]models.TitleID, records []history.Record, opts ...Option) *Engine {
	t.Helper()
	tr, err := registry.New(titles)
	if err != nil {
		t.Fatalf("titles: %v", err)
	}
	pr, err := registry.New(people)
	if err != nil {
		t.Fatalf("people: %v", err)
	}
	g := graph.New(tr.IDs(), edges)
	if err := g.Validate(); err != nil {
		t.Fatalf("graph: %v", err)
	}
	h, err := history.New(records)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	return New(tr, pr, g, h, opts...)
}

func demoEngine(t *testing.T) *Engine {
	t.Helper()
	return newEngine(t, demoTitles, demoPeople, chain(6), []history.Record{
		{Person: 101, Titles: []models.TitleID{1, 2, 3, 4, 5, 6}},
		{Person: 102, Titles: []models.TitleID{4}},
		{Person: 103, Titles: []models.TitleID{1, 2, 4}},
	})
}

func TestPathsWithFollowers_FullChain(t *testing.T) {
	e := newEngine(t, demoTitles[:3], demoPeople[:1], chain(3), []history.Record{
		{Person: 101, Titles: []models.TitleID{1, 2, 3}},
	})
	got := e.PathsWithFollowers("Analyst")
	want := []models.PathResult{{
		Path:      []string{"Analyst", "Senior Analyst", "Staff Analyst"},
		Followers: []string{"Alice"},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PathsWithFollowers = %+v, want %+v", got, want)
	}
}

func TestPathsWithFollowers_SkippedTitleNotFollower(t *testing.T) {
	e := newEngine(t, demoTitles[:3], demoPeople[:1], chain(3), []history.Record{
		{Person: 101, Titles: []models.TitleID{1, 3}},
	})
	got := e.PathsWithFollowers("Analyst")
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if len(got[0].Followers) != 0 {
		t.Errorf("followers = %v, want none", got[0].Followers)
	}
	if got[0].Followers == nil {
		t.Error("followers should be an empty slice, not nil")
	}
}

func TestPathsWithFollowers_Demo(t *testing.T) {
	e := demoEngine(t)

	got := e.PathsWithFollowers("Data Scientist")
	want := []models.PathResult{{
		Path:      []string{"Data Scientist", "Senior Data Scientist", "Staff Data Scientist"},
		Followers: []string{"Alice"},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PathsWithFollowers = %+v, want %+v", got, want)
	}

	leaf := e.PathsWithFollowers("Staff Data Scientist")
	if len(leaf) != 1 || !reflect.DeepEqual(leaf[0].Path, []string{"Staff Data Scientist"}) {
		t.Errorf("leaf start = %+v", leaf)
	}
	if !reflect.DeepEqual(leaf[0].Followers, []string{"Alice"}) {
		t.Errorf("leaf followers = %v, want [Alice]", leaf[0].Followers)
	}
}

func TestPathsWithFollowers_Branching(t *testing.T) {
	edges := map[models.TitleID][]models.TitleID{
		1: {2, 4},
		2: {3},
		4: {5},
	}
	e := newEngine(t, demoTitles[:5], demoPeople, edges, []history.Record{
		{Person: 101, Titles: []models.TitleID{1, 2, 3}},
		{Person: 102, Titles: []models.TitleID{1, 4, 5}},
		{Person: 103, Titles: []models.TitleID{1, 2, 4, 5}},
	})
	got := e.PathsWithFollowers("Analyst")
	want := []models.PathResult{
		{Path: []string{"Analyst", "Senior Analyst", "Staff Analyst"}, Followers: []string{"Alice"}},
		{Path: []string{"Analyst", "Data Scientist", "Senior Data Scientist"}, Followers: []string{"Bob", "Charlie"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PathsWithFollowers = %+v, want %+v", got, want)
	}
}

func TestPathsWithFollowers_UnknownTitle(t *testing.T) {
	e := demoEngine(t)
	got := e.PathsWithFollowers("Astronaut")
	if got == nil || len(got) != 0 {
		t.Errorf("unknown title = %#v, want empty non-nil", got)
	}
}

func TestPathsWithFollowers_MaxPaths(t *testing.T) {
	edges := map[models.TitleID][]models.TitleID{1: {2, 3, 4}}
	e := newEngine(t, demoTitles[:4], demoPeople, edges, nil, WithMaxPaths(2))
	if got := e.PathsWithFollowers("Analyst"); len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
	unbounded := newEngine(t, demoTitles[:4], demoPeople, edges, nil, WithMaxPaths(0))
	if got := unbounded.PathsWithFollowers("Analyst"); len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
}

func TestCurrentHolders(t *testing.T) {
	e := demoEngine(t)
	if got := e.CurrentHolders("Staff Data Scientist"); !reflect.DeepEqual(got, []string{"Alice"}) {
		t.Errorf("CurrentHolders(Staff Data Scientist) = %v, want [Alice]", got)
	}
	if got := e.CurrentHolders("Data Scientist"); !reflect.DeepEqual(got, []string{"Bob", "Charlie"}) {
		t.Errorf("CurrentHolders(Data Scientist) = %v, want [Bob Charlie]", got)
	}
	if got := e.CurrentHolders("Analyst"); len(got) != 0 {
		t.Errorf("CurrentHolders(Analyst) = %v, want empty", got)
	}
	if got := e.CurrentHolders("Nope"); got == nil || len(got) != 0 {
		t.Errorf("CurrentHolders(Nope) = %#v, want empty non-nil", got)
	}
}

func TestCurrentHolders_PersonWithoutHistoryIgnored(t *testing.T) {
	e := newEngine(t, demoTitles[:1], demoPeople, nil, []history.Record{
		{Person: 102, Titles: []models.TitleID{1}},
	})
	if got := e.CurrentHolders("Analyst"); !reflect.DeepEqual(got, []string{"Bob"}) {
		t.Errorf("CurrentHolders = %v, want [Bob]", got)
	}
}

func TestCurrentHolders_ZeroIDNeverHeld(t *testing.T) {
	titles := []registry.Entry[models.TitleID]{{Label: "Intern", ID: 0}}
	e := newEngine(t, titles, demoPeople[:1], nil, []history.Record{
		{Person: 101, Titles: []models.TitleID{0}},
	})
	if got := e.CurrentHolders("Intern"); len(got) != 0 {
		t.Errorf("CurrentHolders(zero id) = %v, want empty", got)
	}
}

func TestTitlesHeldBy(t *testing.T) {
	e := demoEngine(t)
	got := e.TitlesHeldBy(103)
	want := []string{"Analyst", "Senior Analyst", "Data Scientist"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TitlesHeldBy(103) = %v, want %v", got, want)
	}
	if got := e.TitlesHeldBy(999); got == nil || len(got) != 0 {
		t.Errorf("TitlesHeldBy(999) = %#v, want empty non-nil", got)
	}
}

func TestTitlesHeldBy_RepeatsPreserved(t *testing.T) {
	e := newEngine(t, demoTitles[:2], demoPeople[:1], chain(2), []history.Record{
		{Person: 101, Titles: []models.TitleID{1, 2, 1}},
	})
	want := []string{"Analyst", "Senior Analyst", "Analyst"}
	if got := e.TitlesHeldBy(101); !reflect.DeepEqual(got, want) {
		t.Errorf("TitlesHeldBy = %v, want %v", got, want)
	}
}

func TestTitlesAndStats(t *testing.T) {
	e := demoEngine(t)
	if got := e.Titles(); len(got) != 6 || got[0] != "Analyst" {
		t.Errorf("Titles = %v", got)
	}
	want := models.Stats{Titles: 6, People: 3, Edges: 5, Records: 3, Leaves: 1}
	if got := e.Stats(); got != want {
		t.Errorf("Stats = %+v, want %+v", got, want)
	}
}

func TestEngine_ConcurrentReads(t *testing.T) {
	e := demoEngine(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if len(e.PathsWithFollowers("Analyst")) != 1 {
					t.Error("unexpected path count")
					return
				}
				_ = e.CurrentHolders("Data Scientist")
				_ = e.TitlesHeldBy(101)
			}
		}()
	}
	wg.Wait()
}

func TestHolder(t *testing.T) {
	first := demoEngine(t)
	h := NewHolder(first, "abc")
	if h.Engine() != first || h.Checksum() != "abc" {
		t.Fatal("holder did not keep initial engine")
	}
	second := demoEngine(t)
	h.Store(second, "def")
	if h.Engine() != second || h.Checksum() != "def" {
		t.Error("holder did not swap engine")
	}
}
