// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package network holds the DOF/equation numbering, the two-endpoint
// node that wires blocks together, the ordered block list, and the
// model builder that turns a parsed configuration into a ready-to-run
// model. Grounded on fem/node.go's Dof/AddDofAndEq counter idiom and
// on original_source/svzerodsolver/model/{dofhandler,node}.py for the
// exact counter and wiring semantics.
package network

// DOFHandler issues monotonically increasing, dense, zero-based ids
// for variables and equations, and records variable names for
// labeling output. It is append-only during model construction and
// never mutated during integration — §4.1.
type DOFHandler struct {
	varCounter int
	eqCounter  int
	names      []string
}

// NewDOFHandler returns an empty handler with no variables or equations
// registered, so the first id issued by either counter is zero.
func NewDOFHandler() *DOFHandler {
	return &DOFHandler{varCounter: -1, eqCounter: -1}
}

// RegisterVariable appends name (possibly empty) and returns its
// global id, satisfying blocklib.DOFRegistrar.
func (d *DOFHandler) RegisterVariable(name string) int {
	d.varCounter++
	d.names = append(d.names, name)
	return d.varCounter
}

// RegisterEquation returns the next global equation id, satisfying
// blocklib.DOFRegistrar.
func (d *DOFHandler) RegisterEquation() int {
	d.eqCounter++
	return d.eqCounter
}

// N is the current equation count, which must equal the variable count
// once model construction completes (§3's invariant).
func (d *DOFHandler) N() int {
	return d.eqCounter + 1
}

// NumVariables is the current variable count.
func (d *DOFHandler) NumVariables() int {
	return d.varCounter + 1
}

// VariableName returns the name registered for variable id, or "" if
// none was given.
func (d *DOFHandler) VariableName(id int) string {
	if id < 0 || id >= len(d.names) {
		return ""
	}
	return d.names[id]
}
