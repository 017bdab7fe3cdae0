// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package steady implements the steady-initialization pre-pass: a pure
// config.Config -> config.Config transform that collapses unsteady
// boundary conditions to their time averages, a short coarse-step
// integration of the collapsed model, and the terminal state handoff
// to the pulsatile run. Grounded on
// original_source/svzerodsolver/runner.py's steady-initial branch and
// original_source/svzerodsolver/utils.py's
// convert_unsteady_bcs_to_steady.
package steady

import (
	"github.com/SimVascular/svZeroDSolver/internal/assembly"
	"github.com/SimVascular/svZeroDSolver/internal/config"
	"github.com/SimVascular/svZeroDSolver/internal/integrator"
	"github.com/SimVascular/svZeroDSolver/internal/network"
)

// numTimePtsPerCycle and numCycles are the fixed, coarse settings the
// steady pre-pass always uses regardless of the pulsatile
// configuration's own settings (§4.12 step 2).
const (
	numTimePtsPerCycle = 11
	numCycles          = 3
)

// bcMeanKey names the single bc_values entry each steady-eligible
// boundary-condition type collapses to its mean, mirroring utils.py's
// bc_identifiers map exactly (CORONARY only ever averages Pim, never
// Pv, matching the original's asymmetric behavior).
var bcMeanKey = map[string]string{
	"FLOW":     "Q",
	"PRESSURE": "P",
	"CORONARY": "Pim",
}

// CollapseToMean returns a deep copy of cfg with every unsteady
// boundary condition collapsed to its mean equivalent: FLOW, PRESSURE
// and CORONARY boundary conditions have their driving value replaced
// by its arithmetic mean and lose their time array; RCR boundary
// conditions have their capacitance zeroed. cfg itself is never
// mutated (§4.12's "pure config transform" design note).
func CollapseToMean(cfg *config.Config) *config.Config {
	out := cfg.Clone()
	out.SimulationParameters.NumberOfTimePtsPerCardiacCycle = numTimePtsPerCycle
	out.SimulationParameters.NumberOfCardiacCycles = numCycles

	for i := range out.BoundaryConditions {
		bc := &out.BoundaryConditions[i]
		if key, ok := bcMeanKey[bc.BCType]; ok {
			if mean, ok := bc.BCValues.Mean(key); ok {
				bc.BCValues.SetScalar(key, mean)
			}
			bc.BCValues.DropTime()
		}
		if bc.BCType == "RCR" {
			bc.BCValues.SetScalar("C", 0.0)
		}
	}
	return out
}

// Initialize runs the steady pre-pass described in §4.12: it collapses
// cfg to its steady equivalent, builds a model from the collapsed
// configuration with every coronary BC's steady flag set, integrates
// it with the fixed coarse time stepping, and returns the terminal
// (y, ydot) state to seed the pulsatile run built from the original,
// untouched cfg.
func Initialize(cfg *config.Config, rho, absTol float64, maxIter int) (y0, ydot0 []float64, err error) {
	steadyCfg := CollapseToMean(cfg)

	model, err := network.Build(steadyCfg, true)
	if err != nil {
		return nil, nil, err
	}

	footprints := make([]assembly.Footprint, len(model.Blocks))
	for i, b := range model.Blocks {
		footprints[i] = b.Footprint()
	}

	dt, numSteps := steadyCfg.SimulationParameters.TimeStepping()
	gen := integrator.New(model.DH.N(), dt, rho, absTol, maxIter, footprints)

	_, yTraj, ydotTraj, err := gen.Run(model.Blocks, numSteps, nil, nil)
	if err != nil {
		return nil, nil, err
	}
	last := len(yTraj) - 1
	return yTraj[last], ydotTraj[last], nil
}
