// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import "testing"

func TestDOFHandlerCountersAreDenseAndZeroBased(t *testing.T) {
	dh := NewDOFHandler()
	if dh.N() != 0 || dh.NumVariables() != 0 {
		t.Fatalf("a fresh handler must have zero equations and variables")
	}
	a := dh.RegisterVariable("a")
	b := dh.RegisterVariable("b")
	if a != 0 || b != 1 {
		t.Fatalf("expected dense zero-based variable ids, got %d, %d", a, b)
	}
	e0 := dh.RegisterEquation()
	if e0 != 0 {
		t.Fatalf("expected the first equation id to be 0, got %d", e0)
	}
	if dh.NumVariables() != 2 {
		t.Fatalf("expected 2 registered variables, got %d", dh.NumVariables())
	}
	if dh.VariableName(0) != "a" || dh.VariableName(1) != "b" {
		t.Fatalf("variable names were not recorded in registration order")
	}
	if dh.VariableName(99) != "" {
		t.Fatalf("out-of-range variable lookup must return empty string")
	}
}

func TestNewNodeRegistersFlowBeforePressure(t *testing.T) {
	dh := NewDOFHandler()
	n := newNode(dh, "n0", 0, 1)
	if n.FlowDOF != 0 || n.PresDOF != 1 {
		t.Fatalf("expected flow DOF registered before pressure DOF, got flow=%d pressure=%d", n.FlowDOF, n.PresDOF)
	}
	w := n.wire()
	if w.FlowDOF != n.FlowDOF || w.PresDOF != n.PresDOF || w.Name != n.Name {
		t.Fatalf("wire() did not carry over the node's identity")
	}
}
