// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/SimVascular/svZeroDSolver/internal/blocklib"
	"github.com/SimVascular/svZeroDSolver/internal/config"
)

func inflowPressureConfig() *config.Config {
	cfg := &config.Config{
		Vessels: []config.Vessel{
			{
				VesselID:         0,
				ZeroDElementType: "BloodVessel",
				ZeroDElementValues: map[string]float64{
					"R_poiseuille": 100.0,
				},
				BoundaryConditions: &config.VesselBCRefs{Inlet: "INFLOW", Outlet: "OUTFLOW"},
			},
		},
		BoundaryConditions: []config.BoundaryCondition{
			{BCName: "INFLOW", BCType: "FLOW", BCValues: scalarBCValues(map[string]float64{"Q": 5.0})},
			{BCName: "OUTFLOW", BCType: "RESISTANCE", BCValues: scalarBCValues(map[string]float64{"R": 10.0, "Pd": 0.0})},
		},
	}
	cfg.SimulationParameters.SetDefault()
	return cfg
}

func scalarBCValues(values map[string]float64) config.BCValues {
	v := config.BCValues{Scalars: map[string]float64{}, Series: map[string][]float64{}}
	for k, val := range values {
		v.Scalars[k] = val
	}
	return v
}

func TestBuildSimpleRRNetwork(t *testing.T) {
	chk.PrintTitle("BuildSimpleRR")
	cfg := inflowPressureConfig()
	m, err := Build(cfg, false)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(m.Blocks) != 3 {
		t.Fatalf("expected 3 blocks (2 BCs + 1 vessel), got %d", len(m.Blocks))
	}
	if _, ok := m.BlockByName("V0"); !ok {
		t.Fatalf("expected to find vessel V0")
	}
	if _, ok := m.BlockByName("BC0_inlet"); !ok {
		t.Fatalf("expected to find inlet boundary condition BC0_inlet")
	}
	if _, ok := m.BlockByName("BC0_outlet"); !ok {
		t.Fatalf("expected to find outlet boundary condition BC0_outlet")
	}
	if m.DH.N() == 0 {
		t.Fatalf("expected a non-empty equation system")
	}
	if m.DH.N() != m.DH.NumVariables() {
		t.Fatalf("equation count %d must equal variable count %d", m.DH.N(), m.DH.NumVariables())
	}
}

func TestBuildResolvesNodeEndpointsToDistinctBlocks(t *testing.T) {
	chk.PrintTitle("BuildNodeEndpoints")
	cfg := inflowPressureConfig()
	m, err := Build(cfg, false)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(m.Nodes) != 2 {
		t.Fatalf("expected 2 nodes (inlet wire, outlet wire), got %d", len(m.Nodes))
	}
	for _, n := range m.Nodes {
		if n.From == n.To {
			t.Fatalf("node %q has identical From/To block ids %d; endpoints were not resolved", n.Name, n.From)
		}
	}
	inlet, _ := m.BlockByName("BC0_inlet")
	vessel, _ := m.BlockByName("V0")
	outlet, _ := m.BlockByName("BC0_outlet")
	idxOf := func(b blocklib.Block) BlockID {
		for idx, blk := range m.Blocks {
			if blk.Name() == b.Name() {
				return BlockID(idx)
			}
		}
		return -1
	}
	if m.Nodes[0].From != idxOf(inlet) || m.Nodes[0].To != idxOf(vessel) {
		t.Fatalf("expected first node to run BC0_inlet -> V0, got %d -> %d", m.Nodes[0].From, m.Nodes[0].To)
	}
	if m.Nodes[1].From != idxOf(vessel) || m.Nodes[1].To != idxOf(outlet) {
		t.Fatalf("expected second node to run V0 -> BC0_outlet, got %d -> %d", m.Nodes[1].From, m.Nodes[1].To)
	}
}

func TestBuildOrdersBlocksJunctionsVesselsThenBCs(t *testing.T) {
	chk.PrintTitle("BuildOrdering")
	cfg := &config.Config{
		Vessels: []config.Vessel{
			{VesselID: 1, ZeroDElementType: "BloodVessel", ZeroDElementValues: map[string]float64{"R_poiseuille": 1},
				BoundaryConditions: &config.VesselBCRefs{Inlet: "IN1"}},
			{VesselID: 0, ZeroDElementType: "BloodVessel", ZeroDElementValues: map[string]float64{"R_poiseuille": 1},
				BoundaryConditions: &config.VesselBCRefs{Inlet: "IN0"}},
		},
		Junctions: []config.Junction{
			{JunctionName: "J0", JunctionType: "NORMAL_JUNCTION", InletVessels: []int{0, 1}},
		},
		BoundaryConditions: []config.BoundaryCondition{
			{BCName: "IN0", BCType: "FLOW", BCValues: scalarBCValues(map[string]float64{"Q": 1})},
			{BCName: "IN1", BCType: "FLOW", BCValues: scalarBCValues(map[string]float64{"Q": 1})},
		},
	}
	cfg.SimulationParameters.SetDefault()
	m, err := Build(cfg, false)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	var kinds []string
	for _, b := range m.Blocks {
		kinds = append(kinds, b.Kind())
	}
	if kinds[0] != "junction" {
		t.Fatalf("expected junction block first, got order %v", kinds)
	}
	// vessels V0 then V1 (sorted by name), then boundary conditions.
	if m.Blocks[1].Name() != "V0" || m.Blocks[2].Name() != "V1" {
		t.Fatalf("expected vessels sorted by name, got %s, %s", m.Blocks[1].Name(), m.Blocks[2].Name())
	}
}

func TestBuildRejectsUnknownJunctionType(t *testing.T) {
	cfg := &config.Config{
		Junctions: []config.Junction{{JunctionName: "J0", JunctionType: "BOGUS"}},
	}
	cfg.SimulationParameters.SetDefault()
	if _, err := Build(cfg, false); err == nil {
		t.Fatalf("expected error for unknown junction type")
	}
}

func TestBuildRejectsDanglingBCReference(t *testing.T) {
	cfg := &config.Config{
		Vessels: []config.Vessel{
			{VesselID: 0, ZeroDElementType: "BloodVessel", ZeroDElementValues: map[string]float64{"R_poiseuille": 1},
				BoundaryConditions: &config.VesselBCRefs{Inlet: "MISSING"}},
		},
	}
	cfg.SimulationParameters.SetDefault()
	if _, err := Build(cfg, false); err == nil {
		t.Fatalf("expected error for a dangling boundary condition reference")
	}
}

func TestBuildRejectsInconsistentCardiacCyclePeriod(t *testing.T) {
	cfg := &config.Config{
		Vessels: []config.Vessel{
			{VesselID: 0, ZeroDElementType: "BloodVessel", ZeroDElementValues: map[string]float64{"R_poiseuille": 1},
				BoundaryConditions: &config.VesselBCRefs{Inlet: "IN0", Outlet: "OUT0"}},
		},
		BoundaryConditions: []config.BoundaryCondition{
			{BCName: "IN0", BCType: "FLOW", BCValues: config.BCValues{
				Time:   []float64{0, 0.5, 1.0},
				Series: map[string][]float64{"Q": {1, 1, 1}},
			}},
			{BCName: "OUT0", BCType: "RESISTANCE", BCValues: scalarBCValues(map[string]float64{"R": 1, "Pd": 0})},
		},
	}
	cfg.SimulationParameters.CardiacCyclePeriod = 2.0
	cfg.SimulationParameters.SetDefault()
	if _, err := Build(cfg, false); err == nil {
		t.Fatalf("expected error for a boundary condition whose period disagrees with simulation_parameters")
	}
}
