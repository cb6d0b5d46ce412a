// SPDX-License-Identifier: MIT

package neighbor

import "sort"

// Components partitions the vertices of g into connected components by
// breadth-first search. Each component is ascending and components are
// ordered by their smallest vertex, so the result is deterministic.
//
// Vertices without edges form singleton components.
// Complexity: O(V log V + E).
func Components(g *Graph) [][]int {
	vertices := g.Vertices()
	visited := make(map[int]bool, len(vertices))
	var out [][]int

	for _, start := range vertices {
		if visited[start] {
			continue
		}
		// 1. Seed the queue with the smallest unvisited vertex.
		visited[start] = true
		queue := []int{start}
		comp := make([]int, 0, 1)

		// 2. Drain the queue, enqueueing unseen neighbors.
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			comp = append(comp, v)
			for _, w := range g.Neighbors(v) {
				if !visited[w] {
					visited[w] = true
					queue = append(queue, w)
				}
			}
		}
		sort.Ints(comp)
		out = append(out, comp)
	}

	return out
}
