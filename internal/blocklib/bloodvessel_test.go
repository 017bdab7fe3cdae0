// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blocklib

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"
	"github.com/cpmech/gosl/utl"
)

func wirePair(dh *fakeDH) (inflow, outflow []Wire) {
	in := Wire{Name: "in", PresDOF: dh.RegisterVariable("P_in"), FlowDOF: dh.RegisterVariable("Q_in")}
	out := Wire{Name: "out", PresDOF: dh.RegisterVariable("P_out"), FlowDOF: dh.RegisterVariable("Q_out")}
	return []Wire{in}, []Wire{out}
}

// fakeDH is a minimal DOFRegistrar for unit tests that do not need a
// full network.DOFHandler.
type fakeDH struct {
	nextVar, nextEq int
}

func (f *fakeDH) RegisterVariable(name string) int {
	id := f.nextVar
	f.nextVar++
	return id
}

func (f *fakeDH) RegisterEquation() int {
	id := f.nextEq
	f.nextEq++
	return id
}

func TestBloodVesselLinearNoStenosis(t *testing.T) {
	chk.PrintTitle("BloodVesselLinear")
	dh := &fakeDH{}
	inflow, outflow := wirePair(dh)
	bv := NewBloodVessel("V0", 2.0, 0.5, 1.5, 0.0)
	if err := bv.SetupDOFs(dh, inflow, outflow); err != nil {
		t.Fatalf("SetupDOFs failed: %v", err)
	}
	// columns: 0=P_in 1=Q_in 2=P_out 3=Q_out 4=P_c (internal)
	chk.Matrix(t, "F", 1e-15, bv.F, [][]float64{
		{1, -2.0, -1, 0, 0},
		{0, 1, 0, -1, 0},
		{1, -2.0, 0, 0, -1},
	})
	chk.Matrix(t, "E", 1e-15, bv.E, [][]float64{
		{0, 0, 0, -1.5, 0},
		{0, 0, 0, 0, -0.5},
		{0, 0, 0, 0, 0},
	})
	// stenosis coefficient is zero: UpdateSolution must be a no-op.
	y := []float64{0, 10, 0, 10, 0}
	bv.UpdateSolution(y)
	chk.Matrix(t, "F-after-update", 1e-15, bv.F, [][]float64{
		{1, -2.0, -1, 0, 0},
		{0, 1, 0, -1, 0},
		{1, -2.0, 0, 0, -1},
	})
}

func TestBloodVesselStenosisAddsNonlinearTerm(t *testing.T) {
	chk.PrintTitle("BloodVesselStenosis")
	dh := &fakeDH{}
	inflow, outflow := wirePair(dh)
	bv := NewBloodVessel("V0", 2.0, 0.5, 1.5, 4.0)
	if err := bv.SetupDOFs(dh, inflow, outflow); err != nil {
		t.Fatalf("SetupDOFs failed: %v", err)
	}
	base := bv.F[0][1]
	y := []float64{0, 10, 0, 10, 0}
	bv.UpdateSolution(y)
	if bv.F[0][1] == base {
		t.Fatalf("stenosis term did not update the flow-resistance coefficient")
	}
}

// TestBloodVesselStenosisJacobianMatchesFiniteDifference checks that
// F[0][1]+dF[0][1], the Jacobian entry the integrator assembles for
// the stenotic row's dependence on Q_in, agrees with a central finite
// difference of that row's residual contribution. Grounded on
// mreten/testing.go's Check helper (num.DerivCentral + utl.CheckAnaNum
// pattern for verifying an analytic derivative against its numerical
// counterpart).
func TestBloodVesselStenosisJacobianMatchesFiniteDifference(t *testing.T) {
	chk.PrintTitle("BloodVesselStenosisJacobian")
	dh := &fakeDH{}
	inflow, outflow := wirePair(dh)
	bv := NewBloodVessel("V0", 2.0, 0.5, 1.5, 4.0)
	if err := bv.SetupDOFs(dh, inflow, outflow); err != nil {
		t.Fatalf("SetupDOFs failed: %v", err)
	}

	qIn := 3.0
	y := []float64{0, qIn, 0, qIn, 0}
	bv.UpdateSolution(y)
	anaDeriv := bv.F[0][1] + bv.dF[0][1]

	numDeriv, err := num.DerivCentral(func(q float64, args ...interface{}) float64 {
		yy := []float64{0, q, 0, q, 0}
		bv.UpdateSolution(yy)
		row0 := bv.F[0][1] * q
		bv.UpdateSolution(y) // restore
		return row0
	}, qIn, 1e-6)
	if err != nil {
		t.Fatalf("DerivCentral failed: %v", err)
	}

	utl.CheckAnaNum(t, "d(row0)/dQ_in", 1e-6, anaDeriv, numDeriv, false)
}

func TestBloodVesselRejectsWrongWireCounts(t *testing.T) {
	dh := &fakeDH{}
	bv := NewBloodVessel("V0", 1, 0, 0, 0)
	if err := bv.SetupDOFs(dh, nil, nil); err == nil {
		t.Fatalf("expected error for a vessel with no inflow/outflow wires")
	}
}
