// SPDX-License-Identifier: MIT

package neighbor

import (
	"fmt"
	"sort"
	"sync"
)

// Graph is an undirected simple graph over non-negative integer vertices.
//
// Loops and parallel edges are rejected; re-adding an existing edge is a
// no-op. All methods are safe for concurrent use.
type Graph struct {
	mu  sync.RWMutex
	adj map[int]map[int]struct{} // vertex → neighbor set
	m   int                      // undirected edge count
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{adj: make(map[int]map[int]struct{})}
}

// AddVertex inserts v if missing (idempotent).
// Complexity: O(1) amortized.
func (g *Graph) AddVertex(v int) error {
	if v < 0 {
		return fmt.Errorf("AddVertex(%d): %w", v, ErrNegativeVertex)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensure(v)

	return nil
}

// AddEdge links u and v, creating both vertices on demand.
//
// Errors:
//   - ErrNegativeVertex if u or v is below zero.
//   - ErrLoopNotAllowed if u == v.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(u, v int) error {
	// 1. Validate endpoints before touching state.
	if u < 0 || v < 0 {
		return fmt.Errorf("AddEdge(%d,%d): %w", u, v, ErrNegativeVertex)
	}
	if u == v {
		return fmt.Errorf("AddEdge(%d,%d): %w", u, v, ErrLoopNotAllowed)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// 2. Existing edge: nothing to do.
	if _, ok := g.adj[u][v]; ok {
		return nil
	}

	// 3. Link both directions.
	g.ensure(u)
	g.ensure(v)
	g.adj[u][v] = struct{}{}
	g.adj[v][u] = struct{}{}
	g.m++

	return nil
}

// HasVertex reports whether v is present.
func (g *Graph) HasVertex(v int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.adj[v]

	return ok
}

// HasEdge reports whether u and v are linked.
func (g *Graph) HasEdge(u, v int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.adj[u][v]

	return ok
}

// Neighbors returns the ascending neighbor list of i; unknown vertices have
// none. Implements Query.
// Complexity: O(d log d).
func (g *Graph) Neighbors(i int) []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nbrs := g.adj[i]
	out := make([]int, 0, len(nbrs))
	for j := range nbrs {
		out = append(out, j)
	}
	sort.Ints(out)

	return out
}

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v int) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.adj[v])
}

// Vertices returns all vertex ids in ascending order.
func (g *Graph) Vertices() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]int, 0, len(g.adj))
	for v := range g.adj {
		out = append(out, v)
	}
	sort.Ints(out)

	return out
}

// Edges returns every edge once, with From < To, sorted by (From, To).
// Complexity: O(E log E).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, 0, g.m)
	for u, nbrs := range g.adj {
		for v := range nbrs {
			if u < v {
				out = append(out, Edge{From: u, To: v})
			}
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].From != out[b].From {
			return out[a].From < out[b].From
		}
		return out[a].To < out[b].To
	})

	return out
}

// VertexCount returns |V|.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.adj)
}

// EdgeCount returns |E|.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.m
}

// Clear removes every vertex and edge.
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.adj = make(map[int]map[int]struct{})
	g.m = 0
}

// ensure creates the adjacency bucket of v. Caller holds the write lock.
func (g *Graph) ensure(v int) {
	if _, ok := g.adj[v]; !ok {
		g.adj[v] = make(map[int]struct{})
	}
}
