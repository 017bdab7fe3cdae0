// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import "github.com/SimVascular/svZeroDSolver/internal/blocklib"

// BlockID is an arena-backed handle into Model.Blocks — the Go
// realization of the Design Note in spec.md §9 that replaces the
// source's mutual Block<->Node object references with lightweight
// index handles.
type BlockID int

// NodeID is an arena-backed handle into Model.Nodes.
type NodeID int

// Node connects exactly two blocks, carrying one pressure DOF and one
// flow DOF between them (§4.2). It is recorded as the outflow node of
// From and the inflow node of To.
type Node struct {
	Name             string
	FlowDOF, PresDOF int
	From, To         BlockID
}

// newNode registers the node's DOFs immediately (flow before pressure,
// per §4.2) and returns the constructed value; it does not mutate any
// block, since blocklib.Block never holds a live node reference —
// Build attaches the resulting blocklib.Wire to each endpoint block's
// inflow/outflow list instead.
func newNode(dh *DOFHandler, name string, from, to BlockID) *Node {
	n := &Node{Name: name, From: from, To: to}
	n.FlowDOF = dh.RegisterVariable("Q_" + name)
	n.PresDOF = dh.RegisterVariable("P_" + name)
	return n
}

// wire returns the blocklib.Wire value a block needs to reference this
// node's DOFs.
func (n *Node) wire() blocklib.Wire {
	return blocklib.Wire{Name: n.Name, PresDOF: n.PresDOF, FlowDOF: n.FlowDOF}
}
