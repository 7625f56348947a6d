package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultQPIterations caps the number of active set changes.
	DefaultQPIterations = 100
	// DefaultQPTolerance is the feasibility and optimality tolerance.
	DefaultQPTolerance = 1e-10
)

// ActiveSetSolver solves equality constrained quadratic programs by a direct
// KKT solve, with an active set loop over the non-negativity bounds when
// requested. Problem sizes here are the number of candidate models, so the
// repeated dense solves stay cheap.
type ActiveSetSolver struct {
	Iterations int
	Tolerance  float64
}

// NewActiveSetSolver returns an active set QP solver with default iteration
// and tolerance settings.
func NewActiveSetSolver() *ActiveSetSolver {
	return &ActiveSetSolver{
		Iterations: DefaultQPIterations,
		Tolerance:  DefaultQPTolerance,
	}
}

// Solve computes the minimizer of the input quadratic program.
func (s *ActiveSetSolver) Solve(p *QuadProg) ([]float64, error) {
	if p == nil || p.Q == nil || p.Aeq == nil {
		return nil, ErrNoInput
	}
	n := len(p.C)
	qn, _ := p.Q.Dims()
	k, an := p.Aeq.Dims()
	if qn != n || an != n || len(p.Beq) != k {
		return nil, fmt.Errorf("quadratic program dimensions are inconsistent, %w", ErrLenMismatch)
	}

	active := make([]bool, n)
	var w []float64
	var lambda []float64

	for iter := 0; iter < s.Iterations; iter++ {
		var err error
		w, lambda, err = s.solveKKT(p, active)
		if err != nil {
			return nil, err
		}

		if !p.NonNegative {
			return w, nil
		}

		// activate the most violated bound
		minIdx := -1
		minVal := -s.Tolerance
		for i := 0; i < n; i++ {
			if !active[i] && w[i] < minVal {
				minVal = w[i]
				minIdx = i
			}
		}
		if minIdx >= 0 {
			active[minIdx] = true
			continue
		}

		// check multipliers on active bounds, releasing the most negative
		mu := s.boundMultipliers(p, w, lambda)
		relIdx := -1
		relVal := -s.Tolerance
		for i := 0; i < n; i++ {
			if active[i] && mu[i] < relVal {
				relVal = mu[i]
				relIdx = i
			}
		}
		if relIdx >= 0 {
			active[relIdx] = false
			continue
		}
		return w, nil
	}
	return nil, fmt.Errorf("active set did not settle after %d iterations, %w", s.Iterations, ErrNotConverged)
}

// solveKKT solves the equality constrained subproblem with the active bounds
// fixed at zero via the KKT system
//
//	[ Q_ff  A_f' ] [w_f]   [c_f]
//	[ A_f   0    ] [λ  ] = [b  ]
func (s *ActiveSetSolver) solveKKT(p *QuadProg, active []bool) ([]float64, []float64, error) {
	n := len(p.C)
	k := len(p.Beq)

	free := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !active[i] {
			free = append(free, i)
		}
	}
	f := len(free)
	if f == 0 {
		return nil, nil, fmt.Errorf("all weights pinned at zero, %w", ErrInfeasible)
	}

	kkt := mat.NewDense(f+k, f+k, nil)
	rhs := mat.NewDense(f+k, 1, nil)
	for i, fi := range free {
		for j, fj := range free {
			kkt.Set(i, j, p.Q.At(fi, fj))
		}
		for c := 0; c < k; c++ {
			kkt.Set(i, f+c, p.Aeq.At(c, fi))
			kkt.Set(f+c, i, p.Aeq.At(c, fi))
		}
		rhs.Set(i, 0, p.C[fi])
	}
	for c := 0; c < k; c++ {
		rhs.Set(f+c, 0, p.Beq[c])
	}

	var sol mat.Dense
	if err := sol.Solve(kkt, rhs); err != nil {
		return nil, nil, fmt.Errorf("unable to solve KKT system, %w", ErrSingular)
	}

	w := make([]float64, n)
	for i, fi := range free {
		w[fi] = sol.At(i, 0)
	}
	lambda := make([]float64, k)
	for c := 0; c < k; c++ {
		lambda[c] = sol.At(f+c, 0)
	}
	return w, lambda, nil
}

// boundMultipliers computes the Lagrange multipliers of the non-negativity
// bounds, mu = Q*w - c + Aeq'*λ. Optimality requires mu >= 0 on active
// bounds.
func (s *ActiveSetSolver) boundMultipliers(p *QuadProg, w, lambda []float64) []float64 {
	n := len(p.C)
	k := len(p.Beq)

	mu := make([]float64, n)
	for i := 0; i < n; i++ {
		v := -p.C[i]
		for j := 0; j < n; j++ {
			v += p.Q.At(i, j) * w[j]
		}
		for c := 0; c < k; c++ {
			v += p.Aeq.At(c, i) * lambda[c]
		}
		mu[i] = v
	}
	return mu
}
