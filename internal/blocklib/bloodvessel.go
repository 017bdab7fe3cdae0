// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blocklib

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// BloodVessel is a resistor-capacitor-inductor segment with an
// optional quadratic stenosis term, per §4.5. Unknowns are ordered
// (P_in, Q_in, P_out, Q_out, P_c), with P_c the internal capacitor
// pressure.
type BloodVessel struct {
	BaseBlock

	r, c, l, stenosis float64
	// stenotic is the literal reproduction of the "elide
	// update_solution when stenosis is zero" trick: a flag consulted
	// once per Newton iteration rather than a rebound method pointer.
	stenotic bool
}

// NewBloodVessel builds a BloodVessel with the given Poiseuille
// resistance, capacitance, inductance and stenosis coefficient.
func NewBloodVessel(name string, r, c, l, stenosisCoefficient float64) *BloodVessel {
	bv := &BloodVessel{r: r, c: c, l: l, stenosis: stenosisCoefficient}
	bv.name = name
	bv.stenotic = stenosisCoefficient != 0.0
	return bv
}

// SetupDOFs registers the block's 3 equations and 1 internal variable,
// then fills in the linear parts of E and F fixed at construction.
func (v *BloodVessel) SetupDOFs(dh DOFRegistrar, inflow, outflow []Wire) error {
	if len(inflow) != 1 || len(outflow) != 1 {
		return chk.Err("blood vessel %q must have exactly one inlet and one outlet, got %d/%d", v.name, len(inflow), len(outflow))
	}
	v.initDOFs(v.name, "blood_vessel", 3, 1, inflow, outflow, dh)

	// local columns: 0=P_in 1=Q_in 2=P_out 3=Q_out 4=P_c
	v.E[0][3] = -v.l
	v.E[1][4] = -v.c

	v.F[0][0] = 1.0
	v.F[0][1] = -v.r
	v.F[0][2] = -1.0
	v.F[1][1] = 1.0
	v.F[1][3] = -1.0
	v.F[2][0] = 1.0
	v.F[2][1] = -v.r
	v.F[2][4] = -1.0
	return nil
}

// UpdateSolution applies the quadratic stenosis term R -> R + K|Q_in|
// to rows 0 and 2, and its Jacobian contribution to dF. It is a true
// override only when stenotic; BaseBlock's no-op otherwise serves,
// matching the source's self.update_solution = super().update_solution
// rebind — here expressed as a branch on a stored bool rather than a
// method swap.
func (v *BloodVessel) UpdateSolution(y []float64) {
	if !v.stenotic {
		return
	}
	qIn := math.Abs(y[v.inflow[0].FlowDOF])
	fac1 := -v.stenosis * qIn
	fac2 := fac1 - v.r
	v.F[0][1] = fac2
	v.F[2][1] = fac2
	v.dF[0][1] = fac1
	v.dF[2][1] = fac1
}
