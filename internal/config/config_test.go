// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetDefaultFillsUnsetFields(t *testing.T) {
	var sp SimulationParameters
	sp.SetDefault()

	if sp.CardiacCyclePeriod != 1.0 {
		t.Fatalf("expected default CardiacCyclePeriod=1.0, got %v", sp.CardiacCyclePeriod)
	}
	if sp.AbsoluteTolerance != 1e-8 {
		t.Fatalf("expected default AbsoluteTolerance=1e-8, got %v", sp.AbsoluteTolerance)
	}
	if sp.MaximumNonlinearIterations != 30 {
		t.Fatalf("expected default MaximumNonlinearIterations=30, got %v", sp.MaximumNonlinearIterations)
	}
	if !sp.IsSteadyInitial() {
		t.Fatalf("expected SteadyInitial to default true")
	}
	if !sp.IsOutputAllCycles() {
		t.Fatalf("expected OutputAllCycles to default true")
	}
	if sp.HasExplicitCardiacCyclePeriod() {
		t.Fatalf("expected HasExplicitCardiacCyclePeriod false when left unset")
	}
}

func TestSetDefaultPreservesExplicitValues(t *testing.T) {
	sp := SimulationParameters{CardiacCyclePeriod: 2.5}
	sp.SetDefault()

	if sp.CardiacCyclePeriod != 2.5 {
		t.Fatalf("expected explicit CardiacCyclePeriod preserved, got %v", sp.CardiacCyclePeriod)
	}
	if !sp.HasExplicitCardiacCyclePeriod() {
		t.Fatalf("expected HasExplicitCardiacCyclePeriod true when explicitly set")
	}
}

func TestTimeSteppingDerivesDtAndStepCount(t *testing.T) {
	sp := SimulationParameters{
		CardiacCyclePeriod:             1.0,
		NumberOfTimePtsPerCardiacCycle: 5,
		NumberOfCardiacCycles:          3,
	}
	dt, numSteps := sp.TimeStepping()
	if diff := dt - 0.25; diff > 1e-12 || diff < -1e-12 {
		t.Fatalf("expected dt=0.25, got %v", dt)
	}
	if numSteps != 13 {
		t.Fatalf("expected 13 total steps ((5-1)*3+1), got %d", numSteps)
	}
}

func TestLoadParsesAndAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	doc := `{
		"simulation_parameters": {"number_of_time_pts_per_cardiac_cycle": 5, "number_of_cardiac_cycles": 1},
		"vessels": [{"vessel_id": 0, "zero_d_element_type": "BloodVessel", "zero_d_element_values": {"R_poiseuille": 10.0}, "boundary_conditions": {"inlet": "INFLOW", "outlet": "OUTFLOW"}}],
		"boundary_conditions": [
			{"bc_name": "INFLOW", "bc_type": "FLOW", "bc_values": {"Q": 5.0}},
			{"bc_name": "OUTFLOW", "bc_type": "RESISTANCE", "bc_values": {"R": 10.0, "Pd": 0.0}}
		]
	}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Vessels) != 1 || cfg.Vessels[0].VesselID != 0 {
		t.Fatalf("expected one parsed vessel, got %v", cfg.Vessels)
	}
	if cfg.SimulationParameters.AbsoluteTolerance != 1e-8 {
		t.Fatalf("expected Load to apply SetDefault, got AbsoluteTolerance=%v", cfg.SimulationParameters.AbsoluteTolerance)
	}
}

func TestLoadReturnsErrorForMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected an error for a missing configuration file")
	}
}

func TestCloneProducesIndependentDeepCopy(t *testing.T) {
	cfg := &Config{
		Vessels: []Vessel{{VesselID: 0, ZeroDElementValues: map[string]float64{"R_poiseuille": 10.0}}},
	}
	cfg.SimulationParameters.CardiacCyclePeriod = 2.0
	cfg.SimulationParameters.SetDefault()

	clone := cfg.Clone()
	clone.Vessels[0].ZeroDElementValues["R_poiseuille"] = 99.0

	if cfg.Vessels[0].ZeroDElementValues["R_poiseuille"] != 10.0 {
		t.Fatalf("expected original config untouched by mutating the clone, got %v", cfg.Vessels[0].ZeroDElementValues["R_poiseuille"])
	}
	if !clone.SimulationParameters.HasExplicitCardiacCyclePeriod() {
		t.Fatalf("expected Clone to preserve the explicit-period flag")
	}
}
