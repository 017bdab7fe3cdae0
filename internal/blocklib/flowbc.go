// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blocklib

import "github.com/SimVascular/svZeroDSolver/internal/coeff"

// FlowBC contributes Q_in - Q(t) = 0, per §4.6.
type FlowBC struct {
	BaseBlock

	q               coeff.Coefficient
	needsUpdateTime bool
}

// NewFlowBC builds a flow BC from its (possibly time-varying) flow
// coefficient.
func NewFlowBC(name string, q coeff.Coefficient) *FlowBC {
	bc := &FlowBC{q: q}
	bc.name = name
	bc.needsUpdateTime = q.IsTimeVarying()
	return bc
}

// SetupDOFs registers the single equation and its initial value.
func (bc *FlowBC) SetupDOFs(dh DOFRegistrar, inflow, outflow []Wire) error {
	bc.initDOFs(bc.name, "flow_bc", 1, 0, inflow, outflow, dh)
	bc.F[0][1] = 1.0
	bc.C[0] = -bc.q.At(0)
	return nil
}

// UpdateTime refreshes C when the flow is time-varying; otherwise it
// is a no-op, matching §4.6's elision rule.
func (bc *FlowBC) UpdateTime(t float64) {
	if !bc.needsUpdateTime {
		return
	}
	bc.C[0] = -bc.q.At(t)
}
