// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blocklib

import "github.com/SimVascular/svZeroDSolver/internal/coeff"

// OpenLoopCoronaryBC is the RCRCR open-loop coronary boundary of §4.8:
// unknowns (P_in, Q_in, V_im), driven by intramyocardial pressure
// Pim(t) and venous pressure Pv(t). Sign conventions resolved directly
// from openloopcoronarybc.py per Open Question #7.
type OpenLoopCoronaryBC struct {
	BaseBlock

	ra, ca, ram, cim, rv float64
	pim, pv              coeff.Coefficient
	steady               bool
	needsUpdateTime      bool
}

// NewOpenLoopCoronaryBC builds an open-loop coronary BC. When steady
// is true, the capacitor dynamics collapse to the steady-state 2×3
// pattern used by steady initialization (§4.12).
func NewOpenLoopCoronaryBC(name string, ra, ca, ram, cim, rv float64, pim, pv coeff.Coefficient, steady bool) *OpenLoopCoronaryBC {
	bc := &OpenLoopCoronaryBC{ra: ra, ca: ca, ram: ram, cim: cim, rv: rv, pim: pim, pv: pv, steady: steady}
	bc.name = name
	bc.needsUpdateTime = pim.IsTimeVarying() || pv.IsTimeVarying()
	return bc
}

// SetupDOFs registers the block's 2 equations and 1 internal variable
// (V_im, the volume of the distal capacitor), then fills E, F and C.
func (bc *OpenLoopCoronaryBC) SetupDOFs(dh DOFRegistrar, inflow, outflow []Wire) error {
	bc.initDOFs(bc.name, "open_loop_coronary_bc", 2, 1, inflow, outflow, dh)

	// local columns: 0=P_in 1=Q_in 2=V_im
	if bc.steady {
		bc.F[0][0] = -bc.cim
		bc.F[0][1] = bc.cim * (bc.ra + bc.ram)
		bc.F[0][2] = 1.0
		bc.F[1][0] = -1.0
		bc.F[1][1] = bc.ra + bc.ram + bc.rv
		bc.F[1][2] = 0.0
	} else {
		cimRv := bc.cim * bc.rv
		bc.E[0][0] = -bc.ca * cimRv
		bc.E[0][1] = bc.ra * bc.ca * cimRv
		bc.E[0][2] = -cimRv
		bc.E[1][2] = -cimRv * bc.ram
		bc.F[0][1] = cimRv
		bc.F[0][2] = -1.0
		bc.F[1][0] = cimRv
		bc.F[1][1] = -cimRv * bc.ra
		bc.F[1][2] = -(bc.rv + bc.ram)
	}
	bc.applyAt(0)
	return nil
}

// applyAt recomputes the constant vector, which is the only part of
// this block's contribution driven by time (Pa, the coronary arterial
// pressure, is assumed 0 throughout).
func (bc *OpenLoopCoronaryBC) applyAt(t float64) {
	pim := bc.pim.At(t)
	pv := bc.pv.At(t)
	if bc.steady {
		bc.C[0] = -bc.cim * pim
		bc.C[1] = pv
		return
	}
	bc.C[0] = -bc.cim*pim + bc.cim*pv
	bc.C[1] = -bc.cim*(bc.rv+bc.ram)*pim + bc.ram*bc.cim*pv
}

// UpdateTime refreshes C when either Pim or Pv is time-varying;
// otherwise it is a no-op, matching §4.8's elision rule.
func (bc *OpenLoopCoronaryBC) UpdateTime(t float64) {
	if !bc.needsUpdateTime {
		return
	}
	bc.applyAt(t)
}
