// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"fmt"
	"sort"

	"github.com/cpmech/gosl/chk"

	"github.com/SimVascular/svZeroDSolver/internal/blocklib"
	"github.com/SimVascular/svZeroDSolver/internal/config"
)

// connection is one (upstream, downstream) block-name pair awaiting a
// Node, in the order it was emitted by junction/vessel processing.
type connection struct {
	from, to string
}

// Build consumes a parsed configuration and assembles the blocks,
// nodes and DOFHandler of a ready-to-integrate model, per the 5-step
// procedure of §4.9. steady is propagated to any coronary boundary
// condition's "steady" flag (§4.12).
//
// Grounded on original_source/svzerodsolver/utils.py's create_blocks
// for the connection-emission and boundary-condition-instantiation
// logic, and on original_source/svzerodsolver/connections.py for the
// wires-before-blocks DOF ordering rule.
func Build(cfg *config.Config, steady bool) (*Model, error) {
	blocks := map[string]blocklib.Block{}
	var conns []connection

	if err := buildJunctions(cfg, blocks, &conns); err != nil {
		return nil, err
	}
	if err := buildVesselsAndBCs(cfg, blocks, &conns, steady); err != nil {
		return nil, err
	}
	if err := buildChambersAndValves(cfg, blocks, &conns); err != nil {
		return nil, err
	}

	dh := NewDOFHandler()
	var nodes []*Node
	inflowOf := map[string][]blocklib.Wire{}
	outflowOf := map[string][]blocklib.Wire{}

	for _, c := range conns {
		if _, ok := blocks[c.from]; !ok {
			return nil, chk.Err("connection references unknown block %q", c.from)
		}
		if _, ok := blocks[c.to]; !ok {
			return nil, chk.Err("connection references unknown block %q", c.to)
		}
		name := c.from + "_" + c.to
		node := newNode(dh, name, 0, 0)
		nodes = append(nodes, node)
		w := node.wire()
		outflowOf[c.from] = append(outflowOf[c.from], w)
		inflowOf[c.to] = append(inflowOf[c.to], w)
	}

	names := groupBlockNames(cfg, blocks)

	ordered := make([]blocklib.Block, 0, len(names))
	index := map[string]int{}
	for _, name := range names {
		b := blocks[name]
		if err := b.SetupDOFs(dh, inflowOf[name], outflowOf[name]); err != nil {
			return nil, chk.Err("setting up block %q: %v", name, err)
		}
		index[name] = len(ordered)
		ordered = append(ordered, b)
	}

	// Nodes only learned their endpoints' names at creation time, since
	// block indices aren't assigned until the deterministic ordering
	// above runs; resolve them to BlockID now that index is complete.
	for i, c := range conns {
		nodes[i].From = BlockID(index[c.from])
		nodes[i].To = BlockID(index[c.to])
	}

	return &Model{DH: dh, Blocks: ordered, Nodes: nodes, index: index}, nil
}

// groupBlockNames returns the deterministic build order: junction
// names, then vessel names, then boundary-condition names, then
// [ADDED] chamber/valve names, each group sorted alphabetically, per
// §3/§4.9.
func groupBlockNames(cfg *config.Config, blocks map[string]blocklib.Block) (flat []string) {
	junctionNames := map[string]struct{}{}
	for _, j := range cfg.Junctions {
		junctionNames[j.JunctionName] = struct{}{}
	}
	vesselNames := map[string]struct{}{}
	for _, v := range cfg.Vessels {
		vesselNames["V"+itoa(v.VesselID)] = struct{}{}
	}
	chamberValveNames := map[string]struct{}{}
	for _, c := range cfg.Chambers {
		chamberValveNames[c.Name] = struct{}{}
	}
	for _, v := range cfg.Valves {
		chamberValveNames[v.Name] = struct{}{}
	}

	var juncs, vessels, bcs, chambersValves []string
	for name := range blocks {
		switch {
		case has(junctionNames, name):
			juncs = append(juncs, name)
		case has(vesselNames, name):
			vessels = append(vessels, name)
		case has(chamberValveNames, name):
			chambersValves = append(chambersValves, name)
		default:
			bcs = append(bcs, name)
		}
	}
	sortStrings(juncs)
	sortStrings(vessels)
	sortStrings(bcs)
	sortStrings(chambersValves)

	flat = make([]string, 0, len(juncs)+len(vessels)+len(bcs)+len(chambersValves))
	flat = append(flat, juncs...)
	flat = append(flat, vessels...)
	flat = append(flat, bcs...)
	flat = append(flat, chambersValves...)
	return flat
}

func has(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}

func buildJunctions(cfg *config.Config, blocks map[string]blocklib.Block, conns *[]connection) error {
	for _, jc := range cfg.Junctions {
		switch jc.JunctionType {
		case "NORMAL_JUNCTION", "internal_junction":
		default:
			return chk.Err("unknown junction type %q for junction %q", jc.JunctionType, jc.JunctionName)
		}
		j, err := blocklib.NewJunction(jc.JunctionName)
		if err != nil {
			return err
		}
		if _, exists := blocks[j.Name()]; exists {
			return chk.Err("junction %q already exists", j.Name())
		}
		blocks[j.Name()] = j
		for _, vid := range jc.InletVessels {
			*conns = append(*conns, connection{from: "V" + itoa(vid), to: jc.JunctionName})
		}
		for _, vid := range jc.OutletVessels {
			*conns = append(*conns, connection{from: jc.JunctionName, to: "V" + itoa(vid)})
		}
	}
	return nil
}

func buildVesselsAndBCs(cfg *config.Config, blocks map[string]blocklib.Block, conns *[]connection, steady bool) error {
	for _, vc := range cfg.Vessels {
		if vc.ZeroDElementType != "BloodVessel" {
			return chk.Err("unknown vessel element type %q for vessel %d", vc.ZeroDElementType, vc.VesselID)
		}
		r, ok := vc.ZeroDElementValues["R_poiseuille"]
		if !ok {
			return chk.Err("vessel %d is missing required zero_d_element_values.R_poiseuille", vc.VesselID)
		}
		c := vc.ZeroDElementValues["C"]
		l := vc.ZeroDElementValues["L"]
		k := vc.ZeroDElementValues["stenosis_coefficient"]

		name := "V" + itoa(vc.VesselID)
		if _, exists := blocks[name]; exists {
			return chk.Err("vessel %q already exists", name)
		}
		blocks[name] = blocklib.NewBloodVessel(name, r, c, l, k)

		if vc.BoundaryConditions == nil {
			continue
		}
		if vc.BoundaryConditions.Inlet != "" {
			bcName := fmt.Sprintf("BC%d_inlet", vc.VesselID)
			*conns = append(*conns, connection{from: bcName, to: name})
			if err := instantiateBC(cfg, blocks, bcName, vc.BoundaryConditions.Inlet, vc.VesselID, steady); err != nil {
				return err
			}
		}
		if vc.BoundaryConditions.Outlet != "" {
			bcName := fmt.Sprintf("BC%d_outlet", vc.VesselID)
			*conns = append(*conns, connection{from: name, to: bcName})
			if err := instantiateBC(cfg, blocks, bcName, vc.BoundaryConditions.Outlet, vc.VesselID, steady); err != nil {
				return err
			}
		}
	}
	return nil
}

// instantiateBC resolves a vessel's boundary-condition reference by
// bc_name, checks its cardiac-cycle period against an explicit
// simulation_parameters period and against every other time-series
// boundary condition in cfg (erroring on disagreement per §4.9's
// failure conditions), and constructs the referenced block.
func instantiateBC(cfg *config.Config, blocks map[string]blocklib.Block, blockName, bcName string, vesselID int, steady bool) error {
	var bcCfg *config.BoundaryCondition
	for i := range cfg.BoundaryConditions {
		if cfg.BoundaryConditions[i].BCName == bcName {
			bcCfg = &cfg.BoundaryConditions[i]
			break
		}
	}
	if bcCfg == nil {
		return chk.Err("vessel %d references unknown boundary condition %q", vesselID, bcName)
	}

	if len(bcCfg.BCValues.Time) >= 2 {
		period := bcCfg.BCValues.Time[len(bcCfg.BCValues.Time)-1] - bcCfg.BCValues.Time[0]
		sp := &cfg.SimulationParameters
		if sp.HasExplicitCardiacCyclePeriod() && sp.CardiacCyclePeriod != period {
			return chk.Err("boundary condition %q has cardiac cycle period %g, inconsistent with simulation_parameters.cardiac_cycle_period %g", bcName, period, sp.CardiacCyclePeriod)
		}
		for _, other := range cfg.BoundaryConditions {
			ot := other.BCValues.Time
			if len(ot) >= 2 && ot[len(ot)-1]-ot[0] != period {
				return chk.Err("boundary condition %q has cardiac cycle period %g, inconsistent with %g from boundary condition %q", bcName, period, ot[len(ot)-1]-ot[0], other.BCName)
			}
		}
		sp.CardiacCyclePeriod = period
	}

	if _, exists := blocks[blockName]; exists {
		return chk.Err("boundary condition %q already exists", blockName)
	}

	block, err := newBCBlock(blockName, bcCfg, steady)
	if err != nil {
		return err
	}
	blocks[blockName] = block
	return nil
}

func newBCBlock(name string, bcCfg *config.BoundaryCondition, steady bool) (blocklib.Block, error) {
	v := bcCfg.BCValues
	switch bcCfg.BCType {
	case "RESISTANCE":
		r, err := v.Coefficient("R")
		if err != nil {
			return nil, err
		}
		pd, err := v.Coefficient("Pd")
		if err != nil {
			return nil, err
		}
		return blocklib.NewResistanceBC(name, r, pd), nil

	case "RCR":
		rp, err := v.Coefficient("Rp")
		if err != nil {
			return nil, err
		}
		c, err := v.Coefficient("C")
		if err != nil {
			return nil, err
		}
		rd, err := v.Coefficient("Rd")
		if err != nil {
			return nil, err
		}
		pd, err := v.Coefficient("Pd")
		if err != nil {
			return nil, err
		}
		return blocklib.NewWindkesselBC(name, rp, c, rd, pd), nil

	case "FLOW":
		q, err := v.Coefficient("Q")
		if err != nil {
			return nil, err
		}
		return blocklib.NewFlowBC(name, q), nil

	case "PRESSURE":
		p, err := v.Coefficient("P")
		if err != nil {
			return nil, err
		}
		return blocklib.NewPressureBC(name, p), nil

	case "CORONARY":
		ra, ok := v.Get("Ra1")
		if !ok {
			return nil, chk.Err("coronary boundary condition %q is missing bc_values.Ra1", name)
		}
		ca, ok := v.Get("Ca")
		if !ok {
			return nil, chk.Err("coronary boundary condition %q is missing bc_values.Ca", name)
		}
		ram, ok := v.Get("Ra2")
		if !ok {
			return nil, chk.Err("coronary boundary condition %q is missing bc_values.Ra2", name)
		}
		cim, ok := v.Get("Cc")
		if !ok {
			return nil, chk.Err("coronary boundary condition %q is missing bc_values.Cc", name)
		}
		rv, ok := v.Get("Rv1")
		if !ok {
			return nil, chk.Err("coronary boundary condition %q is missing bc_values.Rv1", name)
		}
		pim, err := v.Coefficient("Pim")
		if err != nil {
			return nil, err
		}
		pv, err := v.Coefficient("P_v")
		if err != nil {
			return nil, err
		}
		return blocklib.NewOpenLoopCoronaryBC(name, ra, ca, ram, cim, rv, pim, pv, steady), nil

	default:
		return nil, chk.Err("unknown boundary condition type %q for %q", bcCfg.BCType, name)
	}
}

// buildChambersAndValves instantiates the [ADDED] heart-chamber and
// valve blocks of §4.8a and emits their connections. Unlike vessels and
// boundary conditions, these are addressed directly by name and wired
// between two arbitrary named blocks, since a closed-loop topology
// (scenario 6 of §8) has no single vessel chain to hang them off of.
func buildChambersAndValves(cfg *config.Config, blocks map[string]blocklib.Block, conns *[]connection) error {
	for _, cc := range cfg.Chambers {
		if _, exists := blocks[cc.Name]; exists {
			return chk.Err("chamber %q already exists", cc.Name)
		}
		e, err := cc.Values.Coefficient("E")
		if err != nil {
			return err
		}
		v0, ok := cc.Values.Get("V0")
		if !ok {
			return chk.Err("chamber %q is missing values.V0", cc.Name)
		}
		blocks[cc.Name] = blocklib.NewHeartChamber(cc.Name, e, v0)
		*conns = append(*conns, connection{from: cc.InletBlock, to: cc.Name})
		*conns = append(*conns, connection{from: cc.Name, to: cc.OutletBlock})
	}
	for _, vc := range cfg.Valves {
		if _, exists := blocks[vc.Name]; exists {
			return chk.Err("valve %q already exists", vc.Name)
		}
		blocks[vc.Name] = blocklib.NewValve(vc.Name, vc.Resistance)
		*conns = append(*conns, connection{from: vc.InletBlock, to: vc.Name})
		*conns = append(*conns, connection{from: vc.Name, to: vc.OutletBlock})
	}
	return nil
}

func itoa(i int) string {
	return fmt.Sprintf("%d", i)
}

func sortStrings(s []string) {
	sort.Strings(s)
}
