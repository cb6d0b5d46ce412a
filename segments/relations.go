// SPDX-License-Identifier: MIT

package segments

import (
	"fmt"
	"sort"
)

// Relation classifies a recorded pair.
type Relation int

const (
	// Parallel pairs are snapped to the same orientation.
	Parallel Relation = iota
	// Orthogonal pairs are snapped 90 degrees apart.
	Orthogonal
)

// String implements fmt.Stringer.
func (r Relation) String() string {
	switch r {
	case Parallel:
		return "parallel"
	case Orthogonal:
		return "orthogonal"
	default:
		return fmt.Sprintf("Relation(%d)", int(r))
	}
}

// parity is the union-find label of a relation.
func (r Relation) parity() int {
	if r == Orthogonal {
		return 1
	}
	return 0
}

// RelationInfo is a read-only view of one recorded pair. Discriminator is
// the pair's position among all recorded pairs in ascending (I, J) order,
// which is also the offset of its slack in the solution vector.
type RelationInfo struct {
	I, J          int
	Target        float64
	Relation      Relation
	Discriminator int
}

type pairKey struct{ i, j int }

type record struct {
	target   float64
	relation Relation
}

// table holds target and relation for each pair in one record, so the two
// can never drift apart.
type table struct {
	recs map[pairKey]record
}

func newTable() *table { return &table{recs: make(map[pairKey]record)} }

func (t *table) put(i, j int, target float64, rel Relation) {
	t.recs[pairKey{i, j}] = record{target: target, relation: rel}
}

func (t *table) len() int { return len(t.recs) }

func (t *table) reset() { t.recs = make(map[pairKey]record) }

// ordered returns every pair in ascending (i, j) order with its discriminator.
func (t *table) ordered() []RelationInfo {
	keys := make([]pairKey, 0, len(t.recs))
	for k := range t.recs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].i != keys[b].i {
			return keys[a].i < keys[b].i
		}
		return keys[a].j < keys[b].j
	})

	out := make([]RelationInfo, len(keys))
	for d, k := range keys {
		rec := t.recs[k]
		out[d] = RelationInfo{I: k.i, J: k.j, Target: rec.target, Relation: rec.relation, Discriminator: d}
	}

	return out
}

// restrict keeps the pairs with both endpoints in members. Discriminators
// stay global.
func restrict(all []RelationInfo, members map[int]struct{}) []RelationInfo {
	var out []RelationInfo
	for _, r := range all {
		_, okI := members[r.I]
		_, okJ := members[r.J]
		if okI && okJ {
			out = append(out, r)
		}
	}

	return out
}

// checkDense verifies that discriminators are exactly 0..len-1.
func checkDense(all []RelationInfo) error {
	for d, r := range all {
		if r.Discriminator != d || r.I >= r.J {
			return fmt.Errorf("pair (%d,%d) at %d: %w", r.I, r.J, d, ErrTableMismatch)
		}
	}

	return nil
}
