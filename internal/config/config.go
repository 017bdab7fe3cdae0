// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the JSON configuration schema consumed by the
// model builder: simulation parameters, vessels, junctions and boundary
// conditions. It performs parsing and default substitution only;
// validation errors (unknown types, dangling references) surface from
// internal/network.Build, per the error-propagation policy.
package config

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
)

// Config is the top-level document, matching the schema in §4.9.
type Config struct {
	SimulationParameters SimulationParameters `json:"simulation_parameters"`
	Vessels              []Vessel             `json:"vessels"`
	Junctions            []Junction           `json:"junctions"`
	BoundaryConditions   []BoundaryCondition  `json:"boundary_conditions"`
	Chambers             []Chamber            `json:"chambers,omitempty"`
	Valves               []Valve              `json:"valves,omitempty"`
}

// SimulationParameters carries the integrator/output knobs and their
// documented defaults.
type SimulationParameters struct {
	CardiacCyclePeriod             float64 `json:"cardiac_cycle_period"`
	NumberOfTimePtsPerCardiacCycle int     `json:"number_of_time_pts_per_cardiac_cycle"`
	NumberOfCardiacCycles          int     `json:"number_of_cardiac_cycles"`
	AbsoluteTolerance              float64 `json:"absolute_tolerance"`
	MaximumNonlinearIterations     int     `json:"maximum_nonlinear_iterations"`
	SteadyInitial                  *bool   `json:"steady_initial,omitempty"`
	OutputVariableBased            bool    `json:"output_variable_based"`
	OutputAllCycles                *bool   `json:"output_all_cycles,omitempty"`

	// haveCardiacCyclePeriod distinguishes "explicitly set to 0" from
	// "left unset", since a boundary condition's time series may still
	// need to supply the period (see network.Build).
	haveCardiacCyclePeriod bool
}

// SetDefault fills in the documented defaults for fields the caller left
// unset, mirroring inp/sim.go's Data.SetDefault idiom.
func (p *SimulationParameters) SetDefault() {
	if p.CardiacCyclePeriod == 0 {
		p.CardiacCyclePeriod = 1.0
	} else {
		p.haveCardiacCyclePeriod = true
	}
	if p.AbsoluteTolerance == 0 {
		p.AbsoluteTolerance = 1e-8
	}
	if p.MaximumNonlinearIterations == 0 {
		p.MaximumNonlinearIterations = 30
	}
	if p.SteadyInitial == nil {
		p.SteadyInitial = boolPtr(true)
	}
	if p.OutputAllCycles == nil {
		p.OutputAllCycles = boolPtr(true)
	}
}

// HasExplicitCardiacCyclePeriod reports whether the period was given in
// the document rather than defaulted, used by network.Build to decide
// whether a boundary condition's inferred period may overwrite it.
func (p *SimulationParameters) HasExplicitCardiacCyclePeriod() bool {
	return p.haveCardiacCyclePeriod
}

func boolPtr(b bool) *bool { return &b }

// TimeStepping derives the integrator's time-step size and total
// number of time steps from the cardiac cycle period and the
// per-cycle/cycle-count knobs, mirroring utils.py's get_solver_params.
func (p *SimulationParameters) TimeStepping() (dt float64, numSteps int) {
	dt = p.CardiacCyclePeriod / float64(p.NumberOfTimePtsPerCardiacCycle-1)
	numSteps = (p.NumberOfTimePtsPerCardiacCycle-1)*p.NumberOfCardiacCycles + 1
	return dt, numSteps
}

// IsSteadyInitial reports whether the steady-initialization pre-pass
// should run, defaulting to true per §4.9.
func (p *SimulationParameters) IsSteadyInitial() bool {
	return p.SteadyInitial == nil || *p.SteadyInitial
}

// IsOutputAllCycles reports whether output reduction should keep every
// simulated cycle, defaulting to true per §4.9.
func (p *SimulationParameters) IsOutputAllCycles() bool {
	return p.OutputAllCycles == nil || *p.OutputAllCycles
}

// Vessel is one zero-D element of the network (currently always a
// BloodVessel in this port, per §4.9).
type Vessel struct {
	VesselID           int                `json:"vessel_id"`
	VesselName         string             `json:"vessel_name"`
	ZeroDElementType   string             `json:"zero_d_element_type"`
	ZeroDElementValues map[string]float64 `json:"zero_d_element_values"`
	BoundaryConditions *VesselBCRefs      `json:"boundary_conditions,omitempty"`
}

// VesselBCRefs names the boundary condition attached at either end of a
// vessel, by bc_name.
type VesselBCRefs struct {
	Inlet  string `json:"inlet,omitempty"`
	Outlet string `json:"outlet,omitempty"`
}

// Junction is a mass-conservation/pressure-continuity node joining one
// or more inlet vessels to one or more outlet vessels.
type Junction struct {
	JunctionName  string `json:"junction_name"`
	JunctionType  string `json:"junction_type"`
	InletVessels  []int  `json:"inlet_vessels"`
	OutletVessels []int  `json:"outlet_vessels"`
}

// BoundaryCondition carries a named bc_type and its parameter values,
// any of which may be constant or a (t, value) series.
type BoundaryCondition struct {
	BCName   string   `json:"bc_name"`
	BCType   string   `json:"bc_type"`
	BCValues BCValues `json:"bc_values"`
}

// Chamber is the [ADDED] time-varying-elastance heart chamber block
// (§4.8a), wired into the network like a vessel but addressed directly
// by name rather than by "V"+vessel_id, since a closed-loop topology
// has no single linear vessel chain to hang it off of.
type Chamber struct {
	Name        string   `json:"name"`
	Values      BCValues `json:"values"`
	InletBlock  string   `json:"inlet_block"`
	OutletBlock string   `json:"outlet_block"`
}

// Valve is the [ADDED] one-sided diode block (§4.8a), addressed by name
// and wired between two named blocks the same way Chamber is.
type Valve struct {
	Name        string  `json:"name"`
	Resistance  float64 `json:"resistance"`
	InletBlock  string  `json:"inlet_block"`
	OutletBlock string  `json:"outlet_block"`
}

// Load reads and parses a configuration document from path, applying
// defaults to simulation_parameters. It performs no model validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("cannot read configuration file %q: %v", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, chk.Err("cannot parse configuration file %q: %v", path, err)
	}
	cfg.SimulationParameters.SetDefault()
	return &cfg, nil
}

// Clone returns a deep copy of cfg, used by internal/steady.CollapseToMean
// so the pulsatile configuration is never mutated in place.
func (c *Config) Clone() *Config {
	data, err := json.Marshal(c)
	if err != nil {
		chk.Panic("configuration failed to round-trip through JSON during clone: %v", err)
	}
	clone := &Config{}
	if err := json.Unmarshal(data, clone); err != nil {
		chk.Panic("configuration failed to round-trip through JSON during clone: %v", err)
	}
	clone.SimulationParameters.haveCardiacCyclePeriod = c.SimulationParameters.haveCardiacCyclePeriod
	return clone
}
