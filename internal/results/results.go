// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package results reformats a DOF trajectory into the two output
// shapes of §4.13/§6: a per-vessel summary (pressure/flow at each
// vessel's inlet and outlet) and a variable-based long table covering
// every connection and block-internal quantity in the model. Grounded
// on original_source/svzerodsolver/utils.py's format_results_to_dict
// (summary shape) and the name convention original_source/tests/utils.py's
// run_test_case_by_name branches on for the variable-based shape.
package results

import (
	"sort"

	"github.com/SimVascular/svZeroDSolver/internal/config"
	"github.com/SimVascular/svZeroDSolver/internal/network"
)

// VesselSeries holds one blood vessel's four boundary traces across
// the reported time base, the summary output shape's unit of work.
type VesselSeries struct {
	Name                    string
	Time                    []float64
	PressureIn, PressureOut []float64
	FlowIn, FlowOut         []float64
}

// VariableSeries holds one scalar quantity's trace, named
// "<quantity>:<upstream>:<downstream>" for a connection variable or
// "<quantity>:<block>" for a block-internal variable, per §6.
type VariableSeries struct {
	Name string
	Time []float64
	Y    []float64
	Ydot []float64 // nil unless derivatives were requested
}

// Summary extracts the per-vessel inlet/outlet pressure and flow
// traces from a full trajectory, one VesselSeries per BloodVessel
// block, sorted by name.
func Summary(model *network.Model, times []float64, yTraj [][]float64) []VesselSeries {
	var out []VesselSeries
	for _, b := range model.Blocks {
		if b.Kind() != "blood_vessel" {
			continue
		}
		in := b.InflowWires()[0]
		o := b.OutflowWires()[0]
		n := len(yTraj)
		s := VesselSeries{
			Name:        b.Name(),
			Time:        append([]float64(nil), times...),
			PressureIn:  make([]float64, n),
			PressureOut: make([]float64, n),
			FlowIn:      make([]float64, n),
			FlowOut:     make([]float64, n),
		}
		for i, y := range yTraj {
			s.PressureIn[i] = y[in.PresDOF]
			s.FlowIn[i] = y[in.FlowDOF]
			s.PressureOut[i] = y[o.PresDOF]
			s.FlowOut[i] = y[o.FlowDOF]
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Variables builds the variable-based long table: one entry per node
// (flow and pressure quantities, named by the blocks it connects) plus
// one entry per block-internal variable (named by its owning block).
// ydotTraj may be nil, in which case no VariableSeries carries Ydot.
func Variables(model *network.Model, times []float64, yTraj, ydotTraj [][]float64) []VariableSeries {
	var out []VariableSeries

	extract := func(dof int) ([]float64, []float64) {
		n := len(yTraj)
		y := make([]float64, n)
		for i, row := range yTraj {
			y[i] = row[dof]
		}
		var ydot []float64
		if ydotTraj != nil {
			ydot = make([]float64, n)
			for i, row := range ydotTraj {
				ydot[i] = row[dof]
			}
		}
		return y, ydot
	}

	for _, node := range model.Nodes {
		fromName := model.Blocks[node.From].Name()
		toName := model.Blocks[node.To].Name()

		flowY, flowYdot := extract(node.FlowDOF)
		out = append(out, VariableSeries{
			Name: "flow:" + fromName + ":" + toName,
			Time: append([]float64(nil), times...),
			Y:    flowY, Ydot: flowYdot,
		})

		presY, presYdot := extract(node.PresDOF)
		out = append(out, VariableSeries{
			Name: "pressure:" + fromName + ":" + toName,
			Time: append([]float64(nil), times...),
			Y:    presY, Ydot: presYdot,
		})
	}

	for _, b := range model.Blocks {
		for i, dof := range b.InternalDOFs() {
			y, ydot := extract(dof)
			out = append(out, VariableSeries{
				Name: quantityName(i) + ":" + b.Name(),
				Time: append([]float64(nil), times...),
				Y:    y, Ydot: ydot,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// quantityName labels a block's i-th internal variable; blocks in this
// library register at most one internal variable each, so the ordinal
// form is enough to keep names distinct without inventing semantic
// names the element library itself never assigns.
func quantityName(i int) string {
	names := [...]string{"internal0", "internal1", "internal2"}
	if i < len(names) {
		return names[i]
	}
	return "internal"
}

// Reduce keeps only the samples belonging to the final simulated
// cardiac cycle when output_all_cycles is false, the last numbered
// step of §4.13. times/yTraj/ydotTraj must share the same length;
// ydotTraj may be nil.
func Reduce(sp *config.SimulationParameters, times []float64, yTraj, ydotTraj [][]float64) ([]float64, [][]float64, [][]float64) {
	if sp.IsOutputAllCycles() {
		return times, yTraj, ydotTraj
	}
	perCycle := sp.NumberOfTimePtsPerCardiacCycle - 1
	if perCycle <= 0 || len(times) <= perCycle {
		return times, yTraj, ydotTraj
	}
	start := len(times) - perCycle - 1
	redYdot := ydotTraj
	if redYdot != nil {
		redYdot = ydotTraj[start:]
	}
	return times[start:], yTraj[start:], redYdot
}
