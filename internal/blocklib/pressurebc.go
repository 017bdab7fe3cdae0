// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blocklib

import "github.com/SimVascular/svZeroDSolver/internal/coeff"

// PressureBC contributes P_in - P(t) = 0, per §4.6.
type PressureBC struct {
	BaseBlock

	p               coeff.Coefficient
	needsUpdateTime bool
}

// NewPressureBC builds a pressure BC from its (possibly time-varying)
// pressure coefficient.
func NewPressureBC(name string, p coeff.Coefficient) *PressureBC {
	bc := &PressureBC{p: p}
	bc.name = name
	bc.needsUpdateTime = p.IsTimeVarying()
	return bc
}

// SetupDOFs registers the single equation and its initial value.
func (bc *PressureBC) SetupDOFs(dh DOFRegistrar, inflow, outflow []Wire) error {
	bc.initDOFs(bc.name, "pressure_bc", 1, 0, inflow, outflow, dh)
	bc.F[0][0] = 1.0
	bc.C[0] = -bc.p.At(0)
	return nil
}

// UpdateTime refreshes C when the pressure is time-varying; otherwise
// it is a no-op, matching §4.6's elision rule.
func (bc *PressureBC) UpdateTime(t float64) {
	if !bc.needsUpdateTime {
		return
	}
	bc.C[0] = -bc.p.At(t)
}
