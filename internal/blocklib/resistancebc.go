// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blocklib

import "github.com/SimVascular/svZeroDSolver/internal/coeff"

// ResistanceBC contributes P_in - R(t)*Q_in - Pd(t) = 0, resolved
// directly from resistancebc.py per Open Question #7 of spec.md §9.
type ResistanceBC struct {
	BaseBlock

	r, pd            coeff.Coefficient
	needsUpdateTime  bool
}

// NewResistanceBC builds a resistance BC from its (possibly
// time-varying) resistance and distal pressure coefficients.
func NewResistanceBC(name string, r, pd coeff.Coefficient) *ResistanceBC {
	bc := &ResistanceBC{r: r, pd: pd}
	bc.name = name
	bc.needsUpdateTime = r.IsTimeVarying() || pd.IsTimeVarying()
	return bc
}

// SetupDOFs registers the single equation and its initial values.
func (bc *ResistanceBC) SetupDOFs(dh DOFRegistrar, inflow, outflow []Wire) error {
	bc.initDOFs(bc.name, "resistance_bc", 1, 0, inflow, outflow, dh)
	bc.applyAt(0)
	return nil
}

func (bc *ResistanceBC) applyAt(t float64) {
	bc.F[0][0] = 1.0
	bc.F[0][1] = -bc.r.At(t)
	bc.C[0] = -bc.pd.At(t)
}

// UpdateTime refreshes F and C when either coefficient is time-varying;
// otherwise it is a no-op, matching §4.6's elision rule.
func (bc *ResistanceBC) UpdateTime(t float64) {
	if !bc.needsUpdateTime {
		return
	}
	bc.applyAt(t)
}
