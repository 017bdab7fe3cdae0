// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blocklib

import "github.com/SimVascular/svZeroDSolver/internal/coeff"

// HeartChamber is the [ADDED] time-varying-elastance chamber block
// supplementing the "optional heart-chamber/valve blocks" row of the
// element-library table (§2), grounded on scenario 6 of §8 ("closed-
// loop heart, single vessel"). Chamber volume V is tracked as an
// internal variable; chamber pressure follows P = E(t)*(V - V0).
//
// Because E(t) enters only as a time-dependent coefficient (never
// multiplying another unknown nonlinearly), this block stays linear
// per Newton iteration and needs no UpdateSolution override — only
// UpdateTime, exactly like WindkesselBC's time-varying coefficients.
type HeartChamber struct {
	BaseBlock

	elastance       coeff.Coefficient
	v0              float64
	needsUpdateTime bool
}

// NewHeartChamber builds a chamber block from its (possibly
// time-varying) elastance function and unstressed volume V0.
func NewHeartChamber(name string, elastance coeff.Coefficient, v0 float64) *HeartChamber {
	hc := &HeartChamber{elastance: elastance, v0: v0}
	hc.name = name
	hc.needsUpdateTime = elastance.IsTimeVarying()
	return hc
}

// SetupDOFs registers the chamber's 2 equations (mass conservation,
// pressure-volume relation) and its 1 internal variable (volume).
func (hc *HeartChamber) SetupDOFs(dh DOFRegistrar, inflow, outflow []Wire) error {
	hc.initDOFs(hc.name, "heart_chamber", 2, 1, inflow, outflow, dh)

	// local columns: 0=P_in 1=Q_in 2=P_out 3=Q_out 4=V
	hc.F[0][1] = 1.0
	hc.F[0][3] = -1.0
	hc.E[0][4] = -1.0

	hc.F[1][2] = 1.0
	hc.applyAt(0)
	return nil
}

func (hc *HeartChamber) applyAt(t float64) {
	e := hc.elastance.At(t)
	hc.F[1][4] = -e
	hc.C[1] = e * hc.v0
}

// UpdateTime refreshes the pressure-volume row when the elastance is
// time-varying; otherwise it is a no-op.
func (hc *HeartChamber) UpdateTime(t float64) {
	if !hc.needsUpdateTime {
		return
	}
	hc.applyAt(t)
}
