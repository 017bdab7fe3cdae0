// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package blocklib is the element library: the Block contract every
// hydraulic component satisfies, and one concrete type per element
// kind (junction, blood vessel, boundary conditions, heart chamber,
// valve). A Block owns its local contribution matrices E, F, dE, dF,
// dC and vector C, and the flat (row, col) indices it was assigned
// once at DOF setup time — generalized from fem/element.go's Elem
// interface (AddToRhs/AddToKb/Update) into a single Assemble call that
// fits this system's E·ydot + F·y + C = 0 formulation.
package blocklib

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/SimVascular/svZeroDSolver/internal/assembly"
)

// Wire is the pair of global DOF ids a node contributes: a flow
// variable and a pressure variable. It is the value a block needs from
// a network.Node after DOF registration; blocks never hold a live
// reference to the node itself, which is what keeps the element
// library free of any dependency on the model-builder package.
type Wire struct {
	Name            string
	PresDOF, FlowDOF int
}

// DOFRegistrar is the subset of network.DOFHandler a block needs
// during SetupDOFs. Defining it here (rather than importing the
// network package) lets every block depend on dofhandler behavior
// without blocklib depending on the package that in turn depends on
// Block — network.DOFHandler satisfies this interface structurally.
type DOFRegistrar interface {
	RegisterVariable(name string) int
	RegisterEquation() int
}

// Block is the contract every 0D element satisfies: register its DOFs,
// scatter its local contributions into the global system, and
// optionally react to the current time or solution estimate.
type Block interface {
	Name() string
	Kind() string
	SetupDOFs(dh DOFRegistrar, inflow, outflow []Wire) error
	Footprint() assembly.Footprint
	InternalDOFs() []int
	Assemble(g *assembly.Globals)
	UpdateTime(t float64)
	UpdateSolution(y []float64)
	InflowWires() []Wire
	OutflowWires() []Wire
}

// BaseBlock implements the shared bookkeeping every element kind
// needs: wire lists, local matrix storage, cached flat indices, and
// the default scatter Assemble, and the no-op UpdateTime/UpdateSolution
// every linear-constant block inherits untouched (§4.3's invariant iii).
type BaseBlock struct {
	name            string
	kind            string
	inflow, outflow []Wire

	numEquations int
	numInternal  int

	rowIDs                 []int
	internalIDs            []int
	flatRowIDs, flatColIDs []int

	E, F, dE, dF, dC [][]float64
	C                []float64
}

// initDOFs performs the four numbered steps of §4.3's setup_dofs:
// register internal vars, build the ordered column-id list (inflow
// then outflow wires, pressure before flow within each, then internal
// vars), register equations, and precompute the flat row/col index
// pairs used by Assemble's scatter.
func (b *BaseBlock) initDOFs(name, kind string, numEquations, numInternal int, inflow, outflow []Wire, dh DOFRegistrar) {
	b.name = name
	b.kind = kind
	b.inflow = inflow
	b.outflow = outflow
	b.numEquations = numEquations
	b.numInternal = numInternal

	internalIDs := make([]int, numInternal)
	for i := range internalIDs {
		internalIDs[i] = dh.RegisterVariable(io.Sf("var_%d_%s", i, name))
	}
	b.internalIDs = internalIDs

	colIDs := make([]int, 0, 2*(len(inflow)+len(outflow))+numInternal)
	for _, w := range inflow {
		colIDs = append(colIDs, w.PresDOF, w.FlowDOF)
	}
	for _, w := range outflow {
		colIDs = append(colIDs, w.PresDOF, w.FlowDOF)
	}
	colIDs = append(colIDs, internalIDs...)

	rowIDs := make([]int, numEquations)
	for i := range rowIDs {
		rowIDs[i] = dh.RegisterEquation()
	}
	b.rowIDs = rowIDs

	localCols := len(colIDs)
	b.flatRowIDs = make([]int, 0, numEquations*localCols)
	b.flatColIDs = make([]int, 0, numEquations*localCols)
	for _, r := range rowIDs {
		for _, c := range colIDs {
			b.flatRowIDs = append(b.flatRowIDs, r)
			b.flatColIDs = append(b.flatColIDs, c)
		}
	}

	b.E = la.MatAlloc(numEquations, localCols)
	b.F = la.MatAlloc(numEquations, localCols)
	b.dE = la.MatAlloc(numEquations, localCols)
	b.dF = la.MatAlloc(numEquations, localCols)
	b.dC = la.MatAlloc(numEquations, localCols)
	b.C = make([]float64, numEquations)
}

// Name returns the block's stable, model-unique name.
func (b *BaseBlock) Name() string { return b.name }

// Kind returns the element-kind tag used for output-shape dispatch.
func (b *BaseBlock) Kind() string { return b.kind }

// InflowWires returns the wires registered as this block's inlets.
func (b *BaseBlock) InflowWires() []Wire { return b.inflow }

// OutflowWires returns the wires registered as this block's outlets.
func (b *BaseBlock) OutflowWires() []Wire { return b.outflow }

// Footprint returns the cached flat (row, col) index pairs, used once
// to build the reusable sparse pattern in internal/assembly.
func (b *BaseBlock) Footprint() assembly.Footprint {
	return assembly.Footprint{RowIDs: b.flatRowIDs, ColIDs: b.flatColIDs}
}

// InternalDOFs returns the global variable ids registered for this
// block's internal variables, in registration order, used by
// internal/results to surface block-internal quantities (chamber
// volume, proximal pressure, ...) in the variable-based output shape.
func (b *BaseBlock) InternalDOFs() []int {
	return b.internalIDs
}

// Assemble scatters every local array into the global system at the
// cached flat indices. Unused local matrices stay zero-filled, which
// is indistinguishable from the source's "key not present" skip since
// the global arrays are reset to zero before every Newton iteration.
func (b *BaseBlock) Assemble(g *assembly.Globals) {
	assembly.Scatter(g.E, b.flatRowIDs, b.flatColIDs, b.E)
	assembly.Scatter(g.F, b.flatRowIDs, b.flatColIDs, b.F)
	assembly.Scatter(g.dE, b.flatRowIDs, b.flatColIDs, b.dE)
	assembly.Scatter(g.dF, b.flatRowIDs, b.flatColIDs, b.dF)
	assembly.Scatter(g.dC, b.flatRowIDs, b.flatColIDs, b.dC)
	assembly.ScatterVec(g.C, b.rowIDs, b.C)
}

// UpdateTime is the default no-op; linear-constant blocks never
// override it.
func (b *BaseBlock) UpdateTime(t float64) {}

// UpdateSolution is the default no-op; linear blocks never override
// it.
func (b *BaseBlock) UpdateSolution(y []float64) {}
