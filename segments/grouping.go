// SPDX-License-Identifier: MIT

package segments

import (
	"math"
	"sort"

	"github.com/charmbracelet/log"
)

// parityDSU is a disjoint set over 0..n-1 where every element also carries
// a parity bit relative to its parent: 0 for "same class", 1 for "rotated
// by 90 degrees". Path halving plus union by rank.
type parityDSU struct {
	parent []int
	rank   []int
	parity []int
}

func newParityDSU(n int) *parityDSU {
	d := &parityDSU{parent: make([]int, n), rank: make([]int, n), parity: make([]int, n)}
	// Every element starts as its own root with parity 0.
	for i := range d.parent {
		d.parent[i] = i
	}

	return d
}

// find returns the root of u and the parity of u relative to it.
func (d *parityDSU) find(u int) (int, int) {
	acc := 0 // parity of the original u relative to the current u
	for d.parent[u] != u {
		p := d.parent[u]
		// Path halving: hop u over its parent, folding the parity along.
		d.parity[u] ^= d.parity[p]
		d.parent[u] = d.parent[p]
		// Step to the grandparent, accumulating the hop.
		acc ^= d.parity[u]
		u = d.parent[u]
	}

	return u, acc
}

// union records parity(u) xor parity(v) == rel. It reports false, changing
// nothing, when that contradicts what is already known.
func (d *parityDSU) union(u, v, rel int) bool {
	// 1. Resolve roots and parities.
	ru, pu := d.find(u)
	rv, pv := d.find(v)
	// 2. Same set: the relation is either implied or contradictory.
	if ru == rv {
		return pu^pv == rel
	}
	// 3. Union by rank; ru becomes the surviving root.
	if d.rank[ru] < d.rank[rv] {
		ru, rv = rv, ru
		pu, pv = pv, pu
	}
	d.parent[rv] = ru
	// parity(v) = pv ^ parity[rv] must equal pu ^ rel.
	d.parity[rv] = pu ^ pv ^ rel
	if d.rank[ru] == d.rank[rv] {
		d.rank[ru]++
	}

	return true
}

// class is one snapped output set: a shared value (angle or offset) and
// the members that end up on it, ascending.
type class struct {
	value   float64
	members []int
}

// snapper abstracts what a class value is for a regularization type.
type snapper struct {
	// value is the regularized value of segment i under the solution.
	value func(i int) float64
	// shift maps a reference value to the value of parity-1 members.
	shift func(v float64) float64
	// distance compares two class values.
	distance func(a, b float64) float64
}

// classify partitions members into classes.
//
// A local relation is enforced when its slack in the solution is below eps.
// Enforced relations are merged into connected components; inconsistent
// ones are skipped. Every component takes the value of its smallest member,
// parity-1 members take the shifted value, and classes whose values lie
// within eps of an earlier class join that class.
func classify(members []int, local []RelationInfo, solution []float64, n int, eps float64, s snapper, logger *log.Logger) []class {
	// 0) Dense positions so the DSU can be indexed by member rank.
	sorted := append([]int(nil), members...)
	sort.Ints(sorted)
	pos := make(map[int]int, len(sorted))
	for k, m := range sorted {
		pos[m] = k
	}

	// 1) Merge enforced relations.
	dsu := newParityDSU(len(sorted))
	for _, r := range local {
		// A slack at or above eps means the relation was given up.
		if math.Abs(solution[n+r.Discriminator]) >= eps {
			continue
		}
		if !dsu.union(pos[r.I], pos[r.J], r.Relation.parity()) {
			logger.Debug("skipping inconsistent relation", "i", r.I, "j", r.J, "relation", r.Relation)
		}
	}

	// 2) One or two classes per component, in ascending order of the
	//    component's smallest member.
	type classKey struct{ root, parity int }
	var (
		raw   []class
		index = make(map[classKey]int)
		ref   = make(map[int]float64) // root -> reference value
		refP  = make(map[int]int)     // root -> parity of the reference member
	)
	for k, m := range sorted {
		root, p := dsu.find(k)
		// The first (smallest) member seen in a component fixes its reference.
		if _, ok := ref[root]; !ok {
			ref[root] = s.value(m)
			refP[root] = p
		}
		// Parity relative to the reference member, not to the root.
		key := classKey{root: root, parity: p ^ refP[root]}
		ci, ok := index[key]
		if !ok {
			v := ref[root]
			if key.parity == 1 {
				v = s.shift(v)
			}
			ci = len(raw)
			index[key] = ci
			raw = append(raw, class{value: v})
		}
		raw[ci].members = append(raw[ci].members, m)
	}

	// 3) Merge classes that landed within eps of each other.
	var out []class
	for _, c := range raw {
		merged := false
		// First-seen class wins, so earlier components keep their value.
		for o := range out {
			if s.distance(out[o].value, c.value) < eps {
				out[o].members = append(out[o].members, c.members...)
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, class{value: c.value, members: c.members})
		}
	}
	for o := range out {
		sort.Ints(out[o].members)
	}

	return out
}
