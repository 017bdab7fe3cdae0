// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blocklib

import (
	"regexp"

	"github.com/cpmech/gosl/chk"
)

var junctionNamePattern = regexp.MustCompile(`^J[0-9]+$`)

// Junction conserves mass and continues pressure across an arbitrary
// number of inlets and outlets. It contributes n_in+n_out equations,
// fixed only once the wire counts are known at SetupDOFs — the one
// element kind whose _NUM_EQUATIONS is not static, per §4.4.
type Junction struct {
	BaseBlock
}

// NewJunction validates the junction name ("J" followed by digits, per
// §4.9's build-time check) and returns an unconfigured junction block.
func NewJunction(name string) (*Junction, error) {
	if !junctionNamePattern.MatchString(name) {
		return nil, chk.Err("invalid junction name %q: junction names must start with J followed by a number", name)
	}
	j := &Junction{}
	j.name = name
	return j, nil
}

// SetupDOFs fixes NUM_EQUATIONS to n_in+n_out, then builds the
// constant F matrix: n_in+n_out-1 pressure-continuity rows pairing the
// first inlet's pressure against every other node's pressure, and one
// mass-conservation row summing inflow minus outflow flows.
func (j *Junction) SetupDOFs(dh DOFRegistrar, inflow, outflow []Wire) error {
	numEq := len(inflow) + len(outflow)
	if numEq < 2 {
		return chk.Err("junction %q needs at least two connected wires, got %d", j.name, numEq)
	}
	j.initDOFs(j.name, "junction", numEq, 0, inflow, outflow, dh)

	for i := 0; i < numEq-1; i++ {
		j.F[i][0] = 1.0
		j.F[i][2*i+2] = -1.0
	}
	last := numEq - 1
	col := 1
	for range inflow {
		j.F[last][col] = 1.0
		col += 2
	}
	for range outflow {
		j.F[last][col] = -1.0
		col += 2
	}
	return nil
}
