// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"os"

	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/gosl/utl"

	"github.com/SimVascular/svZeroDSolver/internal/assembly"
	"github.com/SimVascular/svZeroDSolver/internal/config"
	"github.com/SimVascular/svZeroDSolver/internal/integrator"
	"github.com/SimVascular/svZeroDSolver/internal/network"
	"github.com/SimVascular/svZeroDSolver/internal/results"
	"github.com/SimVascular/svZeroDSolver/internal/steady"
)

func main() {
	exitCode := 0
	defer func() {
		if mpi.Rank() == 0 {
			if err := recover(); err != nil {
				utl.PfRed("ERROR: %v\n", err)
				exitCode = 1
			}
		}
		mpi.Stop(false)
		os.Exit(exitCode)
	}()
	mpi.Start(false)

	utl.PfWhite("\nsvZeroDSolver -- lumped-parameter hemodynamic network solver\n\n")
	utl.Pf("Use of this source code is governed by a BSD-style\n")
	utl.Pf("license that can be found in the LICENSE file.\n\n")

	flag.Parse()
	if len(flag.Args()) < 2 {
		utl.Panic("Please provide an input configuration path and an output CSV path. Ex.: zerod config.json result.csv\n")
	}
	inputPath := flag.Arg(0)
	outputPath := flag.Arg(1)

	if err := run(inputPath, outputPath); err != nil {
		utl.Panic("%v\n", err)
	}
}

// run wires the library packages together per the CLI contract of
// §6: load configuration, optionally run the steady-initialization
// pre-pass, build and integrate the pulsatile model, then format and
// write the result table, mirroring the teacher's flat main()-calls-
// into-library-packages structure.
func run(inputPath, outputPath string) error {
	cfg, err := config.Load(inputPath)
	if err != nil {
		return err
	}

	sp := &cfg.SimulationParameters

	var y0, ydot0 []float64
	if sp.IsSteadyInitial() {
		y0, ydot0, err = steady.Initialize(cfg, integrator.DefaultRho, sp.AbsoluteTolerance, sp.MaximumNonlinearIterations)
		if err != nil {
			return err
		}
	}

	model, err := network.Build(cfg, false)
	if err != nil {
		return err
	}

	footprints := make([]assembly.Footprint, len(model.Blocks))
	for i, b := range model.Blocks {
		footprints[i] = b.Footprint()
	}
	dt, numSteps := sp.TimeStepping()
	gen := integrator.New(model.DH.N(), dt, integrator.DefaultRho, sp.AbsoluteTolerance, sp.MaximumNonlinearIterations, footprints)

	times, yTraj, ydotTraj, err := gen.Run(model.Blocks, numSteps, y0, ydot0)
	if err != nil {
		return err
	}

	times, yTraj, ydotTraj = results.Reduce(sp, times, yTraj, ydotTraj)

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if sp.OutputVariableBased {
		series := results.Variables(model, times, yTraj, ydotTraj)
		return results.WriteVariableCSV(out, series)
	}
	series := results.Summary(model, times, yTraj)
	return results.WriteSummaryCSV(out, series)
}
