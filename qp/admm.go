// SPDX-License-Identifier: MIT

package qp

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const methodSolve = "ADMM.Solve"

// ADMM is an operator-splitting QP solver. It is stateless between calls and
// safe to share; each Solve allocates its own workspace.
type ADMM struct {
	opts Options
}

// NewADMM returns a solver configured by opts on top of DefaultOptions.
func NewADMM(opts ...Option) *ADMM {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &ADMM{opts: o}
}

// Options returns the resolved configuration.
func (s *ADMM) Options() Options { return s.opts }

// workspace holds the assembled constraint matrix and iterates of one solve.
type workspace struct {
	n, m  int
	pEnt  []Entry
	q     []float64
	rows  []Row // program rows followed by finite variable boxes
	l, u  []float64
	scale []float64 // per-row ρ multiplier
	rho   []float64
	chol  mat.Cholesky
}

// Solve runs ADMM on p.
//
// Steps:
//  1. Assemble A = [rows; finite boxes] with per-row ρ scaling.
//  2. Factor P + σI + AᵀRA (gonum Cholesky).
//  3. Iterate x̃-solve, relaxation, projection and dual update.
//  4. Check residuals every iteration; adapt ρ every adaptInterval steps.
//
// Errors:
//   - ErrBadShape for a nil program.
//   - ErrFactorization if the KKT matrix is not positive definite.
//   - ErrMaxIterations with the last iterate in the returned Solution.
//   - ctx.Err() on cancellation.
//
// Complexity: O(n³) per factorization, O(n² + nnz(A)) per iteration.
func (s *ADMM) Solve(ctx context.Context, p *Program) (Solution, error) {
	if p == nil {
		return Solution{}, fmt.Errorf("%s: nil program: %w", methodSolve, ErrBadShape)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	o := s.opts
	logger := o.Logger

	// 1. Assemble.
	w := assemble(p)
	w.setRho(o.Rho)

	// 2. Factor.
	if err := w.factor(o.Sigma); err != nil {
		return Solution{}, fmt.Errorf("%s: %w", methodSolve, err)
	}

	// x: primal iterate, z: projected Ax, y: row duals. All start at zero.
	x := make([]float64, w.n)
	z := make([]float64, w.m)
	y := make([]float64, w.m)
	rhs := make([]float64, w.n)
	zRelax := make([]float64, w.m)
	tmp := make([]float64, w.m)
	rhoBase := o.Rho

	var (
		rPrim, rDual float64
		xt           mat.VecDense
	)

	// 3. Iterate.
	for k := 1; k <= o.MaxIterations; k++ {
		if err := done(ctx); err != nil {
			return Solution{X: x, Y: y, Iterations: k - 1}, err
		}

		// rhs = σx − q + Aᵀ(ρ∘z − y)
		for r := range tmp {
			tmp[r] = w.rho[r]*z[r] - y[r]
		}
		aty := w.mulAT(tmp)
		for i := range rhs {
			rhs[i] = o.Sigma*x[i] - w.q[i] + aty[i]
		}
		if err := w.chol.SolveVecTo(&xt, mat.NewVecDense(w.n, rhs)); err != nil {
			return Solution{X: x, Y: y, Iterations: k}, fmt.Errorf("%s: %v: %w", methodSolve, err, ErrFactorization)
		}
		zt := w.mulA(xt.RawVector().Data)

		// Over-relaxed x update.
		for i := range x {
			x[i] = o.Alpha*xt.AtVec(i) + (1-o.Alpha)*x[i]
		}
		// z is the projection onto [l, u]; y collects the violation.
		for r := range z {
			zRelax[r] = o.Alpha*zt[r] + (1-o.Alpha)*z[r]
			zNew := clip(zRelax[r]+y[r]/w.rho[r], w.l[r], w.u[r])
			y[r] += w.rho[r] * (zRelax[r] - zNew)
			z[r] = zNew
		}

		// 4. Residuals.
		ax := w.mulA(x)
		px := w.mulP(x)
		aty = w.mulAT(y)
		rPrim, rDual = 0, 0
		// Primal: ‖Ax − z‖∞.
		for r := range ax {
			rPrim = math.Max(rPrim, math.Abs(ax[r]-z[r]))
		}
		// Dual: ‖Px + q + Aᵀy‖∞.
		for i := range px {
			rDual = math.Max(rDual, math.Abs(px[i]+w.q[i]+aty[i]))
		}
		// Tolerances scale with the magnitude of the terms they compare.
		primScale := math.Max(normInf(ax), normInf(z))
		dualScale := math.Max(normInf(px), math.Max(normInf(aty), normInf(w.q)))
		epsPrim := o.EpsAbs + o.EpsRel*primScale
		epsDual := o.EpsAbs + o.EpsRel*dualScale

		if rPrim <= epsPrim && rDual <= epsDual {
			logger.Debug("admm converged", "iterations", k, "primal", rPrim, "dual", rDual, "rho", rhoBase)
			return Solution{
				X: x, Y: y, Status: StatusSolved, Iterations: k,
				PrimalResidual: rPrim, DualResidual: rDual,
			}, nil
		}

		// 5. Rebalance ρ when one residual dominates the other.
		if o.AdaptiveRho && k%adaptInterval == 0 {
			num := rPrim / (primScale + 1e-10)
			den := rDual/(dualScale+1e-10) + 1e-10
			next := clip(rhoBase*math.Sqrt(num/den), rhoMin, rhoMax)
			// Refactor only on a significant change.
			if next > rhoBase*adaptTolerance || next < rhoBase/adaptTolerance {
				rhoBase = next
				w.setRho(rhoBase)
				if err := w.factor(o.Sigma); err != nil {
					return Solution{X: x, Y: y, Iterations: k}, fmt.Errorf("%s: %w", methodSolve, err)
				}
				logger.Debug("admm rho updated", "iteration", k, "rho", rhoBase)
			}
		}
	}

	logger.Warn("admm stopped before convergence", "iterations", o.MaxIterations, "primal", rPrim, "dual", rDual)

	return Solution{
		X: x, Y: y, Status: StatusMaxIterations, Iterations: o.MaxIterations,
		PrimalResidual: rPrim, DualResidual: rDual,
	}, fmt.Errorf("%s: %d iterations: %w", methodSolve, o.MaxIterations, ErrMaxIterations)
}

// assemble copies the program rows and appends one identity row per
// variable with at least one finite bound.
func assemble(p *Program) *workspace {
	w := &workspace{n: p.n, pEnt: p.P(), q: p.Q()}
	w.rows = append(w.rows, p.rows...)
	for i := 0; i < p.n; i++ {
		if math.IsInf(p.lo[i], -1) && math.IsInf(p.hi[i], 1) {
			continue
		}
		w.rows = append(w.rows, Row{Terms: []Term{{Var: i, Coef: 1}}, Lower: p.lo[i], Upper: p.hi[i]})
	}
	w.m = len(w.rows)
	w.l = make([]float64, w.m)
	w.u = make([]float64, w.m)
	w.scale = make([]float64, w.m)
	w.rho = make([]float64, w.m)
	for r, row := range w.rows {
		w.l[r], w.u[r] = row.Lower, row.Upper
		switch {
		case row.Lower == row.Upper:
			w.scale[r] = equalityRhoScale
		case math.IsInf(row.Lower, -1) && math.IsInf(row.Upper, 1):
			w.scale[r] = 0 // free row: use rhoMin
		default:
			w.scale[r] = 1
		}
	}

	return w
}

// setRho refreshes the per-row step sizes from the base ρ.
func (w *workspace) setRho(base float64) {
	for r, sc := range w.scale {
		if sc == 0 {
			w.rho[r] = rhoMin
			continue
		}
		w.rho[r] = base * sc
	}
}

// factor builds and factors P + σI + AᵀRA.
func (w *workspace) factor(sigma float64) error {
	kkt := mat.NewSymDense(w.n, nil)
	for _, e := range w.pEnt {
		kkt.SetSym(e.I, e.J, kkt.At(e.I, e.J)+e.Value)
	}
	for i := 0; i < w.n; i++ {
		kkt.SetSym(i, i, kkt.At(i, i)+sigma)
	}
	for r, row := range w.rows {
		rho := w.rho[r]
		for a, ta := range row.Terms {
			for _, tb := range row.Terms[a:] {
				kkt.SetSym(ta.Var, tb.Var, kkt.At(ta.Var, tb.Var)+rho*ta.Coef*tb.Coef)
			}
		}
	}
	if ok := w.chol.Factorize(kkt); !ok {
		return ErrFactorization
	}

	return nil
}

// mulA returns A·v.
func (w *workspace) mulA(v []float64) []float64 {
	out := make([]float64, w.m)
	for r, row := range w.rows {
		var acc float64
		for _, t := range row.Terms {
			acc += t.Coef * v[t.Var]
		}
		out[r] = acc
	}

	return out
}

// mulAT returns Aᵀ·v.
func (w *workspace) mulAT(v []float64) []float64 {
	out := make([]float64, w.n)
	for r, row := range w.rows {
		for _, t := range row.Terms {
			out[t.Var] += t.Coef * v[r]
		}
	}

	return out
}

// mulP returns P·v using the stored upper triangle.
func (w *workspace) mulP(v []float64) []float64 {
	out := make([]float64, w.n)
	for _, e := range w.pEnt {
		out[e.I] += e.Value * v[e.J]
		if e.I != e.J {
			out[e.J] += e.Value * v[e.I]
		}
	}

	return out
}

func clip(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) }

func normInf(v []float64) float64 {
	var m float64
	for _, x := range v {
		m = math.Max(m, math.Abs(x))
	}

	return m
}
