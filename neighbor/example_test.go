package neighbor_test

import (
	"fmt"

	"github.com/katalvlaran/shapereg/geom"
	"github.com/katalvlaran/shapereg/neighbor"
)

// ExampleProximity links each barycenter with its closest neighbor.
func ExampleProximity() {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(0, 1), geom.Pt(5, 5), geom.Pt(5, 6)}
	g, _ := neighbor.Proximity(pts, 1)
	fmt.Println(g.Edges())
	fmt.Println(g.Neighbors(2))

	// Output:
	// [{0 1} {2 3}]
	// [3]
}
