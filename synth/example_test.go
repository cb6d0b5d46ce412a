package synth_test

import (
	"fmt"

	"github.com/katalvlaran/shapereg/synth"
)

// ExampleBuild assembles a 1×2 grid and a square.
func ExampleBuild() {
	segs, err := synth.Build(nil, synth.Grid(1, 2, 1), synth.Square(4))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(segs))
	fmt.Println(segs[0].Source, segs[0].Target)
	// Output:
	// 11
	// {0 0} {1 0}
}
