// SPDX-License-Identifier: MIT

package neighbor

// Restrict wraps q so that i and j are neighbors only when q links them and
// some group holds both. Indices outside every group have no neighbors.
//
// Results keep the order of q, so a sorted q yields sorted lists.
// Complexity: O(d·g) per call, g being the number of groups containing i.
func Restrict(q Query, groups [][]int) Query {
	// 1. Index → ids of the groups that contain it.
	member := make(map[int][]int)
	for gid, grp := range groups {
		for _, i := range grp {
			ids := member[i]
			// Groups are scanned in order, so a repeat within grp is the last id.
			if len(ids) > 0 && ids[len(ids)-1] == gid {
				continue
			}
			member[i] = append(ids, gid)
		}
	}

	return &restricted{q: q, member: member}
}

type restricted struct {
	q      Query
	member map[int][]int // ascending group ids
}

// Neighbors implements Query.
func (r *restricted) Neighbors(i int) []int {
	own := r.member[i]
	if len(own) == 0 {
		return nil
	}
	var out []int
	for _, j := range r.q.Neighbors(i) {
		if sharesGroup(own, r.member[j]) {
			out = append(out, j)
		}
	}

	return out
}

// sharesGroup merges two ascending id lists looking for a common id.
func sharesGroup(a, b []int) bool {
	for x, y := 0, 0; x < len(a) && y < len(b); {
		switch {
		case a[x] == b[y]:
			return true
		case a[x] < b[y]:
			x++
		default:
			y++
		}
	}

	return false
}
