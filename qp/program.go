// SPDX-License-Identifier: MIT

package qp

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// Term is one non-zero coefficient of a constraint row.
type Term struct {
	Var  int
	Coef float64
}

// Row is a two-sided linear constraint Lower ≤ Σ Coef·x[Var] ≤ Upper.
type Row struct {
	Terms []Term
	Lower float64
	Upper float64
}

// Entry is one stored element of the upper triangle of P (I ≤ J).
type Entry struct {
	I, J  int
	Value float64
}

// Program is a QP in the form documented at package level.
// The zero value is not usable; build one with NewProgram.
type Program struct {
	n      int
	p      map[[2]int]float64 // upper triangle, key (i, j) with i ≤ j
	q      []float64
	rows   []Row
	lo, hi []float64
}

// NewProgram returns a program over n variables with zero objective, no
// rows and unbounded variables.
func NewProgram(n int) (*Program, error) {
	if n <= 0 {
		return nil, fmt.Errorf("NewProgram(n=%d): %w", n, ErrBadShape)
	}
	p := &Program{
		n:  n,
		p:  make(map[[2]int]float64),
		q:  make([]float64, n),
		lo: make([]float64, n),
		hi: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		p.lo[i] = math.Inf(-1)
		p.hi[i] = math.Inf(1)
	}

	return p, nil
}

// N returns the number of variables.
func (p *Program) N() int { return p.n }

// SetP stores P[i][j] = P[j][i] = v, overwriting any previous value.
func (p *Program) SetP(i, j int, v float64) error {
	if err := p.checkVar(i); err != nil {
		return fmt.Errorf("SetP(%d,%d): %w", i, j, err)
	}
	if err := p.checkVar(j); err != nil {
		return fmt.Errorf("SetP(%d,%d): %w", i, j, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("SetP(%d,%d): %w", i, j, ErrNaN)
	}
	if i == j && v < 0 {
		return fmt.Errorf("SetP(%d,%d)=%g: %w", i, j, v, ErrNonConvex)
	}
	if i > j {
		i, j = j, i
	}
	if v == 0 {
		delete(p.p, [2]int{i, j})
		return nil
	}
	p.p[[2]int{i, j}] = v

	return nil
}

// P returns the stored upper-triangle entries sorted by (I, J).
func (p *Program) P() []Entry {
	out := make([]Entry, 0, len(p.p))
	for k, v := range p.p {
		out = append(out, Entry{I: k[0], J: k[1], Value: v})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].I != out[b].I {
			return out[a].I < out[b].I
		}
		return out[a].J < out[b].J
	})

	return out
}

// SetQ stores the linear objective coefficient of variable i.
func (p *Program) SetQ(i int, v float64) error {
	if err := p.checkVar(i); err != nil {
		return fmt.Errorf("SetQ(%d): %w", i, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("SetQ(%d): %w", i, ErrNaN)
	}
	p.q[i] = v

	return nil
}

// Q returns a copy of the linear objective vector.
func (p *Program) Q() []float64 { return append([]float64(nil), p.q...) }

// AddRow appends the constraint lower ≤ Σ terms ≤ upper and returns its
// row index. Terms on the same variable are summed.
func (p *Program) AddRow(terms []Term, lower, upper float64) (int, error) {
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return -1, fmt.Errorf("AddRow: %w", ErrNaN)
	}
	if lower > upper {
		return -1, fmt.Errorf("AddRow: [%g, %g]: %w", lower, upper, ErrInfeasibleBounds)
	}

	merged := make(map[int]float64, len(terms))
	for _, t := range terms {
		if err := p.checkVar(t.Var); err != nil {
			return -1, fmt.Errorf("AddRow: %w", err)
		}
		if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
			return -1, fmt.Errorf("AddRow: var %d: %w", t.Var, ErrNaN)
		}
		merged[t.Var] += t.Coef
	}
	row := Row{Lower: lower, Upper: upper, Terms: make([]Term, 0, len(merged))}
	for v, c := range merged {
		if c != 0 {
			row.Terms = append(row.Terms, Term{Var: v, Coef: c})
		}
	}
	sort.Slice(row.Terms, func(a, b int) bool { return row.Terms[a].Var < row.Terms[b].Var })
	p.rows = append(p.rows, row)

	return len(p.rows) - 1, nil
}

// Rows returns the constraint rows in insertion order.
func (p *Program) Rows() []Row { return p.rows }

// SetBounds sets the box lower ≤ x[i] ≤ upper. Infinite values disable a side.
func (p *Program) SetBounds(i int, lower, upper float64) error {
	if err := p.checkVar(i); err != nil {
		return fmt.Errorf("SetBounds(%d): %w", i, err)
	}
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return fmt.Errorf("SetBounds(%d): %w", i, ErrNaN)
	}
	if lower > upper {
		return fmt.Errorf("SetBounds(%d): [%g, %g]: %w", i, lower, upper, ErrInfeasibleBounds)
	}
	p.lo[i], p.hi[i] = lower, upper

	return nil
}

// Bounds returns the box of variable i.
func (p *Program) Bounds(i int) (lower, upper float64) { return p.lo[i], p.hi[i] }

// Objective evaluates ½·xᵀPx + qᵀx. x must have length N().
func (p *Program) Objective(x []float64) float64 {
	var f float64
	for k, v := range p.p {
		i, j := k[0], k[1]
		if i == j {
			f += 0.5 * v * x[i] * x[i]
		} else {
			f += v * x[i] * x[j]
		}
	}
	for i, qi := range p.q {
		f += qi * x[i]
	}

	return f
}

// checkVar validates a variable index.
func (p *Program) checkVar(i int) error {
	if i < 0 || i >= p.n {
		return fmt.Errorf("var %d not in [0,%d): %w", i, p.n, ErrOutOfRange)
	}
	return nil
}

// Status reports how a solve ended.
type Status int

const (
	// StatusUnsolved is the zero value: no solve was attempted or it failed early.
	StatusUnsolved Status = iota
	// StatusSolved means both residuals met the tolerance.
	StatusSolved
	// StatusMaxIterations means the budget ran out; the iterate is approximate.
	StatusMaxIterations
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusSolved:
		return "solved"
	case StatusMaxIterations:
		return "max-iterations"
	default:
		return "unsolved"
	}
}

// Solution is the outcome of a solve.
type Solution struct {
	// X is the primal solution, one entry per variable.
	X []float64

	// Y holds the dual multipliers of the rows, followed by those of the
	// finite variable boxes in variable order.
	Y []float64

	Status         Status
	Iterations     int
	PrimalResidual float64
	DualResidual   float64
}

// Solver is the pluggable QP capability.
type Solver interface {
	Solve(ctx context.Context, p *Program) (Solution, error)
}
