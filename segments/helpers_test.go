package segments_test

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/shapereg/geom"
	"github.com/katalvlaran/shapereg/qp"
	"github.com/katalvlaran/shapereg/segments"
)

const eps = 1e-9

func quiet() segments.Option { return segments.WithLogger(log.New(io.Discard)) }

// segAt returns a segment of the given length centered on (cx, cy) at deg.
func segAt(cx, cy, deg, length float64) geom.Segment {
	half := geom.UnitFromDegrees(deg).Scale(length / 2)
	c := geom.Pt(cx, cy)

	return geom.Segment{Source: c.Add(half.Neg()), Target: c.Add(half)}
}

// tiltedSquare is a square whose sides are about 2 degrees off 30/120.
func tiltedSquare() segments.Slice {
	return segments.Slice{
		segAt(0, 0, 32, 10),
		segAt(0, 10, 28, 10),
		segAt(-5, 5, 122, 10),
		segAt(5, 5, 118, 10),
	}
}

// squareSolution is the exact optimum for tiltedSquare: corrections
// (−2, 2, −2, 2) and six zero slacks.
func squareSolution() []float64 {
	return []float64{-2, 2, -2, 2, 0, 0, 0, 0, 0, 0}
}

func testSolver() *qp.ADMM {
	return qp.NewADMM(qp.WithLogger(log.New(io.Discard)), qp.WithMaxIterations(200000))
}
