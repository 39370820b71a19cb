// Package digraph implements the named-vertex graph facade (spec
// supplement D1): a thread-safe adjacency-list graph over string vertex
// IDs and semiring.Scalar edge weights, with deterministic conversion to
// the dense and sparse matrix engines.
//
// Grounded on the teacher library's graph/types.go and
// graph/adjacency_list.go (mutex-guarded map[string]*Vertex plus
// map[string]map[string][]*Edge adjacency list, auto-vertex-creation on
// AddEdge, Clone, Neighbors/Vertices/Edges) and graph/conversions.go
// (ToMatrix's sorted-index build), retargeted from int64 weights with
// first-edge-wins combination to semiring.Scalar weights combined via
// semiring.Add so that parallel edges fold the way spec.md's constraint
// model expects (see scheduler.AddConstraint for the same discipline).
package digraph

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/tropicalmat/palma/densemat"
	"github.com/tropicalmat/palma/palmaerr"
	"github.com/tropicalmat/palma/semiring"
	"github.com/tropicalmat/palma/sparsemat"
)

const (
	opToDense  = "digraph.ToDense"
	opToSparse = "digraph.ToSparse"
	opAddEdge  = "digraph.AddEdge"
)

// Edge is a directed, weighted connection between two named vertices.
type Edge struct {
	From, To string
	Weight   semiring.Scalar
}

// Graph is a thread-safe directed graph with semiring.Scalar edge
// weights. Parallel edges between the same ordered pair combine via
// semiring.Add under Tag rather than overwriting, matching the monotone
// constraint-folding discipline spec.md uses elsewhere (§4.8).
type Graph struct {
	mu       sync.RWMutex
	tag      semiring.Tag
	vertices map[string]struct{}
	adj      map[string]map[string]semiring.Scalar
}

// New creates an empty graph over semiring s.
func New(s semiring.Tag) *Graph {
	return &Graph{
		tag:      s,
		vertices: make(map[string]struct{}),
		adj:      make(map[string]map[string]semiring.Scalar),
	}
}

// Tag returns the graph's semiring.
func (g *Graph) Tag() semiring.Tag { return g.tag }

// AddVertex adds v with no incident edges. A vertex already present is
// left untouched.
func (g *Graph) AddVertex(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addVertexLocked(id)
}

func (g *Graph) addVertexLocked(id string) {
	if _, ok := g.vertices[id]; ok {
		return
	}
	g.vertices[id] = struct{}{}
	g.adj[id] = make(map[string]semiring.Scalar)
}

// NewVertexID returns a fresh synthetic vertex identifier (via
// google/uuid) for callers that don't carry their own naming scheme.
func NewVertexID() string {
	return uuid.NewString()
}

// HasVertex reports whether id is present.
func (g *Graph) HasVertex(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.vertices[id]
	return ok
}

// AddEdge adds weight to the edge from→to (auto-creating either endpoint
// if missing), combining with any existing weight on that ordered pair
// via semiring.Add rather than overwriting.
func (g *Graph) AddEdge(from, to string, weight semiring.Scalar) error {
	if from == "" || to == "" {
		return palmaerr.New(opAddEdge, palmaerr.InvalidArgument, "vertex id must not be empty")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addVertexLocked(from)
	g.addVertexLocked(to)
	cur, ok := g.adj[from][to]
	if !ok {
		cur = semiring.Zero(g.tag)
	}
	g.adj[from][to] = semiring.Add(cur, weight, g.tag)
	palmaerr.ClearLastError()
	return nil
}

// RemoveEdge deletes the edge from→to, if any.
func (g *Graph) RemoveEdge(from, to string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if nbrs, ok := g.adj[from]; ok {
		delete(nbrs, to)
	}
}

// HasEdge reports whether an edge from→to exists.
func (g *Graph) HasEdge(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	nbrs, ok := g.adj[from]
	if !ok {
		return false
	}
	_, ok = nbrs[to]
	return ok
}

// Weight returns the combined weight of edge from→to, or ε(Tag), false
// if no such edge exists.
func (g *Graph) Weight(from, to string) (semiring.Scalar, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	nbrs, ok := g.adj[from]
	if !ok {
		return semiring.Zero(g.tag), false
	}
	w, ok := nbrs[to]
	if !ok {
		return semiring.Zero(g.tag), false
	}
	return w, true
}

// Neighbors returns the IDs reachable from id via a direct edge, sorted
// for deterministic iteration.
func (g *Graph) Neighbors(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	nbrs, ok := g.adj[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(nbrs))
	for n := range nbrs {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Vertices returns every vertex ID, sorted.
func (g *Graph) Vertices() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.verticesLocked()
}

// verticesLocked is Vertices' body without the lock, for callers that
// already hold g.mu (directly or via RLock) — sync.RWMutex forbids
// recursive RLock, so every internal caller must go through this instead
// of re-entering Vertices.
func (g *Graph) verticesLocked() []string {
	out := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Edges returns every edge, sorted by (From,To) for determinism.
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []Edge
	for from, nbrs := range g.adj {
		for to, w := range nbrs {
			out = append(out, Edge{From: from, To: to, Weight: w})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// Clone deep-copies the graph.
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := New(g.tag)
	for id := range g.vertices {
		out.vertices[id] = struct{}{}
		out.adj[id] = make(map[string]semiring.Scalar, len(g.adj[id]))
	}
	for from, nbrs := range g.adj {
		for to, w := range nbrs {
			out.adj[from][to] = w
		}
	}
	return out
}

// vertexIndex builds the sorted ID→row/column index used by both ToDense
// and ToSparse, so the two conversions agree on vertex ordering. Callers
// must already hold g.mu (at least for reading).
func (g *Graph) vertexIndex() ([]string, map[string]int) {
	ids := g.verticesLocked()
	idx := make(map[string]int, len(ids))
	for i, id := range ids {
		idx[id] = i
	}
	return ids, idx
}

// ToDense builds the n×n dense adjacency matrix under s: off-diagonal
// entries hold each edge's combined weight (ε where absent), the
// diagonal holds e(s) except where a self-loop edge exists, whose weight
// replaces e on that entry. Vertex i corresponds to the i-th ID in sorted
// order.
func (g *Graph) ToDense(s semiring.Tag) (*densemat.Dense, []string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids, idx := g.vertexIndex()
	n := len(ids)
	if n == 0 {
		return nil, nil, palmaerr.New(opToDense, palmaerr.InvalidDimensions, "graph has no vertices")
	}
	m, err := densemat.CreateZero(n, n, s)
	if err != nil {
		return nil, nil, err
	}
	one := semiring.One(s)
	for i := 0; i < n; i++ {
		m.Set(i, i, one)
	}
	for from, nbrs := range g.adj {
		i := idx[from]
		for to, w := range nbrs {
			j := idx[to]
			m.Set(i, j, w)
		}
	}
	palmaerr.ClearLastError()
	return m, ids, nil
}

// ToSparse builds the CSR equivalent of ToDense, useful when the graph is
// large and sparse.
func (g *Graph) ToSparse(s semiring.Tag) (*sparsemat.CSR, []string, error) {
	dense, ids, err := g.ToDense(s)
	if err != nil {
		return nil, nil, palmaerr.Wrap(err, opToSparse, palmaerr.InvalidDimensions)
	}
	csr, err := sparsemat.FromDense(dense, s)
	if err != nil {
		return nil, nil, err
	}
	return csr, ids, nil
}
