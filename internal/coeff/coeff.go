// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coeff

import "github.com/cpmech/gosl/fun"

// Coefficient is a block parameter that is either a plain constant or
// driven by a periodic spline through a (time, value) series. This is
// the Go sum-type realization of the runtime isinstance(Sequence)
// check performed once at block construction in the source model. The
// constant case is the teacher's own fun.Cte constant function
// (inp/func.go's fun.New factory and fem/essenbcs.go's &fun.Cte{C: z}
// literal build the identical constant/time-function split this
// solver needs); the periodic-spline case has no gosl equivalent, so
// it is implemented directly in spline.go.
type Coefficient struct {
	cte    *fun.Cte
	spline *PeriodicSpline
}

// Constant returns a Coefficient that never varies with time.
func Constant(value float64) Coefficient {
	return Coefficient{cte: &fun.Cte{C: value}}
}

// FromSeries returns a Coefficient driven by a periodic cubic spline
// through the given knots.
func FromSeries(times, values []float64) (Coefficient, error) {
	spl, err := NewPeriodicSpline(times, values)
	if err != nil {
		return Coefficient{}, err
	}
	return Coefficient{spline: spl}, nil
}

// IsTimeVarying reports whether this coefficient requires evaluation on
// every call to a block's UpdateTime — i.e. whether it is spline-backed.
// A false result is what lets a block elide its UpdateTime entirely.
func (c Coefficient) IsTimeVarying() bool {
	return c.spline != nil
}

// At evaluates the coefficient at time t. For constant coefficients t
// is ignored.
func (c Coefficient) At(t float64) float64 {
	if c.spline == nil {
		return c.cte.F(t, nil)
	}
	return c.spline.Eval(t)
}
