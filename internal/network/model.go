// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"github.com/SimVascular/svZeroDSolver/internal/blocklib"
)

// Model is an ordered sequence of blocks plus the DOFHandler that
// numbered their variables and equations (§3). Blocks appear in
// deterministic order — junctions, then vessels, then boundary
// conditions, sorted by name within each group — so assembly is
// reproducible.
type Model struct {
	DH     *DOFHandler
	Blocks []blocklib.Block
	Nodes  []*Node

	// index maps each block name to its position in Blocks, cached for
	// quick name->index lookup by BlockByName.
	index map[string]int
}

// BlockByName looks up a block by its unique name.
func (m *Model) BlockByName(name string) (blocklib.Block, bool) {
	i, ok := m.index[name]
	if !ok {
		return nil, false
	}
	return m.Blocks[i], true
}
