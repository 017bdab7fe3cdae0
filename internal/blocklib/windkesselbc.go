// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blocklib

import "github.com/SimVascular/svZeroDSolver/internal/coeff"

// WindkesselBC is the unsteady RCR boundary condition of §4.7: two
// equations coupling (P_in, Q_in, P_proximal), where P_proximal is the
// internal pressure proximal to the capacitance.
type WindkesselBC struct {
	BaseBlock

	rp, c, rd, pd   coeff.Coefficient
	needsUpdateTime bool
}

// NewWindkesselBC builds an RCR BC from its four (possibly
// time-varying) coefficients.
func NewWindkesselBC(name string, rp, c, rd, pd coeff.Coefficient) *WindkesselBC {
	bc := &WindkesselBC{rp: rp, c: c, rd: rd, pd: pd}
	bc.name = name
	bc.needsUpdateTime = rp.IsTimeVarying() || c.IsTimeVarying() || rd.IsTimeVarying() || pd.IsTimeVarying()
	return bc
}

// SetupDOFs registers the block's 2 equations and 1 internal variable
// (P_proximal), then fills the initial E, F, C values.
func (bc *WindkesselBC) SetupDOFs(dh DOFRegistrar, inflow, outflow []Wire) error {
	bc.initDOFs(bc.name, "windkessel_bc", 2, 1, inflow, outflow, dh)
	bc.F[0][2] = -1.0
	bc.F[1][2] = -1.0
	bc.applyAt(0)
	return nil
}

// local columns: 0=P_in 1=Q_in 2=P_proximal
func (bc *WindkesselBC) applyAt(t float64) {
	rp := bc.rp.At(t)
	c := bc.c.At(t)
	rd := bc.rd.At(t)
	pd := bc.pd.At(t)

	bc.F[0][0] = 1.0
	bc.F[0][1] = -rp
	bc.F[1][1] = rd
	bc.E[1][2] = -rd * c
	bc.C[1] = pd
}

// UpdateTime refreshes E, F and C when any coefficient is time-varying;
// otherwise it is a no-op, matching §4.7's elision rule.
func (bc *WindkesselBC) UpdateTime(t float64) {
	if !bc.needsUpdateTime {
		return
	}
	bc.applyAt(t)
}
