package segments_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/katalvlaran/shapereg/neighbor"
	"github.com/katalvlaran/shapereg/segments"
)

func noisyGrid(n int, seed int64) segments.Slice {
	rng := rand.New(rand.NewSource(seed))
	out := make(segments.Slice, 0, n)
	for i := 0; i < n; i++ {
		base := 0.0
		if i%2 == 1 {
			base = 90
		}
		out = append(out, segAt(float64(i%8)*3, float64(i/8)*3, base+rng.Float64()*6-3, 2))
	}

	return out
}

// BenchmarkRegularizeAngles_Proximity runs a full pass over 32 segments with
// a 4-nearest-neighbor query.
func BenchmarkRegularizeAngles_Proximity(b *testing.B) {
	base := noisyGrid(32, 1)
	g, err := neighbor.Proximity(neighbor.Barycenters(base), 4)
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		segs := append(segments.Slice(nil), base...)
		if _, _, err = segments.RegularizeAngles(ctx, segs, g, nil, testSolver(), quiet()); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkTarget measures relation recording over a unique group.
func BenchmarkTarget(b *testing.B) {
	segs := noisyGrid(64, 2)
	ar, err := segments.NewAngleRegularization(segs, quiet())
	if err != nil {
		b.Fatal(err)
	}
	if err = ar.CreateUniqueGroup(); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ar.Target(i%64, (i+1)%64)
	}
}
