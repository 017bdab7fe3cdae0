// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coeff lifts block parameters that are either a constant or a
// time series into a single evaluable type, matching the periodic
// cubic-spline policy described for 0D boundary conditions.
package coeff

import (
	"github.com/cpmech/gosl/chk"
)

// PeriodicSpline is a cubic spline through knots (times[i], values[i])
// with periodic boundary conditions: the first and last values must
// agree (or are forced to), and the spline's first and second
// derivatives also match across the seam. This is the Go equivalent of
// scipy.interpolate.CubicSpline(..., bc_type="periodic").
type PeriodicSpline struct {
	times  []float64
	values []float64
	// second derivatives at each knot, solved once at construction
	m []float64
}

// NewPeriodicSpline builds a periodic cubic spline through the given
// knots. times must be strictly increasing. If values[0] != values[n-1]
// the last value is forced equal to the first, matching the documented
// policy for knots whose endpoints disagree.
func NewPeriodicSpline(times, values []float64) (*PeriodicSpline, error) {
	n := len(times)
	if n < 3 {
		return nil, chk.Err("periodic spline requires at least 3 knots, got %d", n)
	}
	if len(values) != n {
		return nil, chk.Err("times and values must have the same length (%d != %d)", n, len(values))
	}
	for i := 1; i < n; i++ {
		if times[i] <= times[i-1] {
			return nil, chk.Err("spline knot times must be strictly increasing at index %d", i)
		}
	}

	t := append([]float64(nil), times...)
	v := append([]float64(nil), values...)
	v[n-1] = v[0] // force periodicity policy

	m, err := solvePeriodicSecondDerivatives(t, v)
	if err != nil {
		return nil, err
	}

	return &PeriodicSpline{times: t, values: v, m: m}, nil
}

// Period returns the knot span (times[last] - times[0]), i.e. the
// cardiac cycle period this spline was built over.
func (s *PeriodicSpline) Period() float64 {
	return s.times[len(s.times)-1] - s.times[0]
}

// Eval evaluates the spline at t, wrapping t into the periodic domain.
func (s *PeriodicSpline) Eval(t float64) float64 {
	n := len(s.times)
	period := s.Period()
	t0 := s.times[0]
	tw := wrapPeriodic(t, t0, period)

	// locate the segment [times[i], times[i+1]] containing tw
	i := locateSegment(s.times, tw)
	h := s.times[i+1] - s.times[i]
	a := (s.times[i+1] - tw) / h
	b := (tw - s.times[i]) / h

	y := a*s.values[i] + b*s.values[i+1] +
		((a*a*a-a)*s.m[i]+(b*b*b-b)*s.m[i+1])*(h*h)/6.0
	_ = n
	return y
}

func wrapPeriodic(t, t0, period float64) float64 {
	if period <= 0 {
		return t
	}
	x := t - t0
	x -= period * floorDiv(x, period)
	return x + t0
}

func floorDiv(x, period float64) float64 {
	q := x / period
	qi := float64(int64(q))
	if q < 0 && q != qi {
		qi--
	}
	return qi
}

func locateSegment(times []float64, t float64) int {
	lo, hi := 0, len(times)-2
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if times[mid] <= t {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// solvePeriodicSecondDerivatives solves the cyclic tridiagonal system
// for the spline's second derivatives at each knot. The system is
// solved with the Sherman-Morrison correction for the corner entries
// that make the matrix cyclic rather than plain tridiagonal.
func solvePeriodicSecondDerivatives(t, v []float64) ([]float64, error) {
	n := len(t) - 1 // number of distinct intervals; v[n] == v[0] by construction

	h := make([]float64, n)
	for i := 0; i < n; i++ {
		h[i] = t[i+1] - t[i]
	}

	// build the n x n cyclic system A*m = d for m[0..n-1] (m[n] = m[0])
	diag := make([]float64, n)
	lower := make([]float64, n) // lower[i] multiplies m[i-1 mod n]
	upper := make([]float64, n) // upper[i] multiplies m[i+1 mod n]
	rhs := make([]float64, n)

	for i := 0; i < n; i++ {
		hPrev := h[(i-1+n)%n]
		hCurr := h[i]
		diag[i] = 2.0 * (hPrev + hCurr)
		lower[i] = hPrev
		upper[i] = hCurr

		vPrev := v[(i-1+n)%n]
		vCurr := v[i]
		vNext := v[(i+1)%n]
		rhs[i] = 6.0 * ((vNext-vCurr)/hCurr - (vCurr-vPrev)/hPrev)
	}

	return solveCyclicTridiagonal(lower, diag, upper, rhs)
}

// solveCyclicTridiagonal solves a cyclic tridiagonal system using the
// Sherman-Morrison formula: the cyclic system A is split into a plain
// tridiagonal matrix T plus a rank-one correction u*v^T, then Ax=b is
// solved as two tridiagonal solves combined per Sherman-Morrison.
func solveCyclicTridiagonal(lower, diag, upper, rhs []float64) ([]float64, error) {
	n := len(diag)
	if n == 1 {
		return []float64{rhs[0] / diag[0]}, nil
	}
	if n == 2 {
		// 2x2 dense solve: [[diag0, lower0+upper0],[lower1+upper1, diag1]]
		a00, a01 := diag[0], lower[0]+upper[0]
		a10, a11 := lower[1]+upper[1], diag[1]
		det := a00*a11 - a01*a10
		if det == 0 {
			return nil, chk.Err("singular periodic spline system")
		}
		x0 := (rhs[0]*a11 - a01*rhs[1]) / det
		x1 := (a00*rhs[1] - rhs[0]*a10) / det
		return []float64{x0, x1}, nil
	}

	alpha := lower[0]
	beta := upper[n-1]
	gamma := -diag[0]

	td := append([]float64(nil), diag...)
	td[0] -= gamma
	td[n-1] -= alpha * beta / gamma

	y, err := solveTridiagonal(lower, td, upper, rhs)
	if err != nil {
		return nil, err
	}

	u := make([]float64, n)
	u[0] = gamma
	u[n-1] = beta
	z, err := solveTridiagonal(lower, td, upper, u)
	if err != nil {
		return nil, err
	}

	fact := (y[0] + alpha*y[n-1]/gamma) / (1.0 + z[0] + alpha*z[n-1]/gamma)

	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = y[i] - fact*z[i]
	}
	return x, nil
}

// solveTridiagonal solves a plain tridiagonal system via the Thomas
// algorithm. lower[0] and upper[n-1] are unused (no wraparound here).
func solveTridiagonal(lower, diag, upper, rhs []float64) ([]float64, error) {
	n := len(diag)
	cp := make([]float64, n)
	dp := make([]float64, n)

	if diag[0] == 0 {
		return nil, chk.Err("singular tridiagonal system at row 0")
	}
	cp[0] = upper[0] / diag[0]
	dp[0] = rhs[0] / diag[0]

	for i := 1; i < n; i++ {
		denom := diag[i] - lower[i]*cp[i-1]
		if denom == 0 {
			return nil, chk.Err("singular tridiagonal system at row %d", i)
		}
		if i < n-1 {
			cp[i] = upper[i] / denom
		}
		dp[i] = (rhs[i] - lower[i]*dp[i-1]) / denom
	}

	x := make([]float64, n)
	x[n-1] = dp[n-1]
	for i := n - 2; i >= 0; i-- {
		x[i] = dp[i] - cp[i]*x[i+1]
	}
	return x, nil
}
