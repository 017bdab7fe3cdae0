// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blocklib

// Valve is the [ADDED] one-sided diode block supplementing the
// "optional heart-chamber/valve blocks" row of §2's element-library
// table. It enforces Q_in = Q_out at all times, plus a resistive
// pressure drop while flowing forward and a hard Q_in = 0 clamp once
// flow would reverse — the same "switch evaluated in UpdateSolution"
// pattern BloodVessel uses for its stenosis nonlinearity.
type Valve struct {
	BaseBlock

	r    float64
	open bool
}

// NewValve builds a valve with forward resistance r.
func NewValve(name string, r float64) *Valve {
	v := &Valve{r: r, open: true}
	v.name = name
	return v
}

// SetupDOFs registers the valve's 2 equations: flow continuity (always
// linear and constant) and the diode row (rewritten every Newton
// iteration by UpdateSolution).
func (v *Valve) SetupDOFs(dh DOFRegistrar, inflow, outflow []Wire) error {
	v.initDOFs(v.name, "valve", 2, 0, inflow, outflow, dh)

	// local columns: 0=P_in 1=Q_in 2=P_out 3=Q_out
	v.F[0][1] = 1.0
	v.F[0][3] = -1.0
	v.setDiodeRow()
	return nil
}

func (v *Valve) setDiodeRow() {
	v.F[1][0] = 0
	v.F[1][1] = 0
	v.F[1][2] = 0
	v.F[1][3] = 0
	if v.open {
		v.F[1][0] = 1.0
		v.F[1][1] = -v.r
		v.F[1][2] = -1.0
	} else {
		v.F[1][1] = 1.0
	}
}

// UpdateSolution switches the diode row open/closed based on the sign
// of the current inlet flow estimate.
func (v *Valve) UpdateSolution(y []float64) {
	open := y[v.inflow[0].FlowDOF] >= 0
	if open == v.open {
		return
	}
	v.open = open
	v.setDiodeRow()
}
