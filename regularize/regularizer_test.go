package regularize_test

import (
	"context"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/shapereg/neighbor"
	"github.com/katalvlaran/shapereg/qp"
	"github.com/katalvlaran/shapereg/regularize"
)

// levels pulls nearby scalar values onto shared levels: the target of
// (i, j) is v_j − v_i, so x_i − x_j = t makes v_i + x_i equal v_j + x_j.
type levels struct {
	values  []float64
	bound   float64
	bad     int // Target fails for this i when >= 0
	failUpd bool
	got     []float64
}

func newLevels(bound float64, values ...float64) *levels {
	return &levels{values: values, bound: bound, bad: -1}
}

func (l *levels) Bound(int) float64 { return l.bound }

func (l *levels) Target(i, j int) (float64, error) {
	if i == l.bad {
		return 0, errors.New("levels: rejected")
	}
	return l.values[j] - l.values[i], nil
}

func (l *levels) Update(solution []float64) error {
	if l.failUpd {
		return errors.New("levels: update rejected")
	}
	l.got = append([]float64(nil), solution...)
	return nil
}

// stubSolver returns a canned solution or error.
type stubSolver struct {
	sol   qp.Solution
	err   error
	calls int
}

func (s *stubSolver) Solve(context.Context, *qp.Program) (qp.Solution, error) {
	s.calls++
	return s.sol, s.err
}

// fixed answers neighbor queries from a literal table.
type fixed map[int][]int

func (f fixed) Neighbors(i int) []int { return f[i] }

func quiet() regularize.Option { return regularize.WithLogger(log.New(io.Discard)) }

func clique(t *testing.T, n int) *neighbor.Graph {
	t.Helper()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	g, err := neighbor.Complete(idx)
	require.NoError(t, err)

	return g
}

func TestNew_Errors(t *testing.T) {
	lv := newLevels(1, 0, 1)
	_, err := regularize.New(1, clique(t, 2), lv, &stubSolver{})
	assert.ErrorIs(t, err, regularize.ErrNoItems)

	_, err = regularize.New(2, nil, lv, &stubSolver{})
	assert.ErrorIs(t, err, regularize.ErrNilCollaborator)
	_, err = regularize.New(2, clique(t, 2), nil, &stubSolver{})
	assert.ErrorIs(t, err, regularize.ErrNilCollaborator)
	_, err = regularize.New(2, clique(t, 2), lv, nil)
	assert.ErrorIs(t, err, regularize.ErrNilCollaborator)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { regularize.WithWeight(0) })
	assert.Panics(t, func() { regularize.WithWeight(math.NaN()) })
	assert.Panics(t, func() { regularize.WithLambda(0) })
	assert.Panics(t, func() { regularize.WithLambda(1) })
	assert.Panics(t, func() { regularize.WithLogger(nil) })
	assert.NotPanics(t, func() { regularize.WithLambda(0.5) })
}

func TestEdges_DedupesAndFilters(t *testing.T) {
	// 0.1 and 0.3 are within 2·0.25 of each other; 2.0 is out of reach.
	lv := newLevels(0.25, 0.1, 0.3, 2.0)
	q := fixed{0: {1, 2}, 1: {0, 2}, 2: {0, 1}}
	r, err := regularize.New(3, q, lv, &stubSolver{}, quiet())
	require.NoError(t, err)

	edges, err := r.Edges()
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, 0, edges[0].I)
	assert.Equal(t, 1, edges[0].J)
	assert.InDelta(t, 0.2, edges[0].Target, 1e-12)
}

func TestEdges_InvalidNeighbor(t *testing.T) {
	lv := newLevels(1, 0, 1)
	for name, q := range map[string]fixed{
		"self":     {0: {0}},
		"negative": {0: {-1}},
		"too big":  {1: {2}},
	} {
		r, err := regularize.New(2, q, lv, &stubSolver{}, quiet())
		require.NoError(t, err)
		_, err = r.Edges()
		assert.ErrorIs(t, err, regularize.ErrInvalidNeighbor, name)
	}
}

func TestEdges_TargetError(t *testing.T) {
	lv := newLevels(1, 0, 1)
	lv.bad = 0
	r, err := regularize.New(2, clique(t, 2), lv, &stubSolver{}, quiet())
	require.NoError(t, err)

	_, err = r.Edges()
	assert.ErrorIs(t, err, regularize.ErrTarget)
}

func TestProgram_Shape(t *testing.T) {
	lv := newLevels(0.5, 0, 0.1, 0.2)
	r, err := regularize.New(3, clique(t, 3), lv, &stubSolver{}, quiet())
	require.NoError(t, err)
	edges, err := r.Edges()
	require.NoError(t, err)
	require.Len(t, edges, 3)

	p, err := r.Program(edges)
	require.NoError(t, err)
	assert.Equal(t, 6, p.N())
	assert.Len(t, p.Rows(), 6)

	// P_ii = 2·w·(1−λ)/(b²·n)
	wantP := 2 * regularize.DefaultWeight * (1 - regularize.DefaultLambda) / (0.25 * 3)
	for _, e := range p.P() {
		assert.InDelta(t, wantP, e.Value, 1e-9)
		assert.Equal(t, e.I, e.J)
	}
	// q_k = λ·w/(4·b_max·e)
	wantQ := regularize.DefaultLambda * regularize.DefaultWeight / (4 * 0.5 * 3)
	q := p.Q()
	for k := 0; k < 3; k++ {
		assert.Equal(t, 0.0, q[k])
		lo, hi := p.Bounds(k)
		assert.Equal(t, -0.5, lo)
		assert.Equal(t, 0.5, hi)
	}
	for k := 3; k < 6; k++ {
		assert.InDelta(t, wantQ, q[k], 1e-9)
		lo, hi := p.Bounds(k)
		assert.Equal(t, 0.0, lo)
		assert.True(t, math.IsInf(hi, 1))
	}

	// Row pair of edge (0,1): x0 − x1 − y ≤ t and −x0 + x1 − y ≤ −t.
	row := p.Rows()[0]
	assert.Equal(t, []qp.Term{{Var: 0, Coef: 1}, {Var: 1, Coef: -1}, {Var: 3, Coef: -1}}, row.Terms)
	assert.InDelta(t, 0.1, row.Upper, 1e-12)
	assert.True(t, math.IsInf(row.Lower, -1))
	assert.InDelta(t, -0.1, p.Rows()[1].Upper, 1e-12)
}

func TestProgram_ZeroBoundPinsItem(t *testing.T) {
	lv := newLevels(0, 0, 1)
	r, err := regularize.New(2, clique(t, 2), lv, &stubSolver{}, quiet())
	require.NoError(t, err)

	p, err := r.Program(nil)
	require.NoError(t, err)
	lo, hi := p.Bounds(0)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 0.0, hi)
}

func TestRegularize_NothingToDo(t *testing.T) {
	lv := newLevels(0.1, 0, 5)
	s := &stubSolver{}
	r, err := regularize.New(2, clique(t, 2), lv, s, quiet())
	require.NoError(t, err)

	res, err := r.Regularize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, regularize.Result{}, res)
	assert.Zero(t, s.calls)
	assert.Nil(t, lv.got)
}

func TestRegularize_SolverFailures(t *testing.T) {
	boom := errors.New("boom")
	for name, s := range map[string]*stubSolver{
		"error": {err: boom},
		"empty": {sol: qp.Solution{Status: qp.StatusSolved}},
	} {
		lv := newLevels(1, 0, 0.5)
		r, err := regularize.New(2, clique(t, 2), lv, s, quiet())
		require.NoError(t, err)

		_, err = r.Regularize(context.Background())
		assert.ErrorIs(t, err, regularize.ErrSolverFailed, name)
		assert.Nil(t, lv.got, "update must not run: %s", name)
	}

	lv := newLevels(1, 0, 0.5)
	r, err := regularize.New(2, clique(t, 2), lv, &stubSolver{err: boom}, quiet())
	require.NoError(t, err)
	_, err = r.Regularize(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestRegularize_UpdateFailure(t *testing.T) {
	lv := newLevels(1, 0, 0.5)
	lv.failUpd = true
	s := &stubSolver{sol: qp.Solution{X: []float64{0.25, -0.25, 0}, Status: qp.StatusSolved, Iterations: 3}}
	r, err := regularize.New(2, clique(t, 2), lv, s, quiet())
	require.NoError(t, err)

	res, err := r.Regularize(context.Background())
	assert.ErrorIs(t, err, regularize.ErrUpdate)
	assert.Equal(t, 1, res.Edges)
	assert.Equal(t, 3, res.Variables)
}

func TestRegularize_WithADMM(t *testing.T) {
	lv := newLevels(0.5, 1.0, 1.4, 3.0)
	solver := qp.NewADMM(qp.WithLogger(log.New(io.Discard)), qp.WithMaxIterations(100000))
	r, err := regularize.New(3, clique(t, 3), lv, solver, quiet())
	require.NoError(t, err)

	res, err := r.Regularize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Edges)
	assert.Equal(t, qp.StatusSolved, res.Status)
	require.Len(t, lv.got, 4)

	// Both near values meet halfway; the far one stays put.
	assert.InDelta(t, 0.2, lv.got[0], 1e-3)
	assert.InDelta(t, -0.2, lv.got[1], 1e-3)
	assert.InDelta(t, 0, lv.got[2], 1e-3)
	assert.InDelta(t, 0, lv.got[3], 1e-3)
}
