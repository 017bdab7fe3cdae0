// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assembly holds the global system storage shared by every
// Newton iteration: dense E, F, dE, dF, dC matrices and the constant
// vector C, plus a reusable sparse footprint built once from every
// block's cached (row_ids × col_ids) pairs.
package assembly

import (
	"github.com/cpmech/gosl/la"
)

// Globals is the block-structured DAE's global system, dense as
// specified in §4.10. Every block scatters its local contributions
// into these arrays at the flat indices it cached during SetupDOFs.
type Globals struct {
	N                    int
	E, F, dE, dF, dC     [][]float64
	C                    []float64
}

// NewGlobals allocates the dense N×N arrays and the length-N vector.
func NewGlobals(n int) *Globals {
	return &Globals{
		N:  n,
		E:  la.MatAlloc(n, n),
		F:  la.MatAlloc(n, n),
		dE: la.MatAlloc(n, n),
		dF: la.MatAlloc(n, n),
		dC: la.MatAlloc(n, n),
		C:  make([]float64, n),
	}
}

// Reset zeroes every global array, run at the start of each Newton
// iteration before blocks re-assemble into it.
func (g *Globals) Reset() {
	la.MatFill(g.E, 0)
	la.MatFill(g.F, 0)
	la.MatFill(g.dE, 0)
	la.MatFill(g.dF, 0)
	la.MatFill(g.dC, 0)
	la.VecFill(g.C, 0)
}

// Scatter writes a block's local row-major matrix into the named
// global array at the given flat (row, col) index pairs.
func Scatter(global [][]float64, flatRowIDs, flatColIDs []int, local [][]float64) {
	idx := 0
	for _, row := range local {
		for _, v := range row {
			global[flatRowIDs[idx]][flatColIDs[idx]] = v
			idx++
		}
	}
}

// ScatterVec writes a block's local constant vector into the global
// vector at the given row ids.
func ScatterVec(global []float64, rowIDs []int, local []float64) {
	for i, r := range rowIDs {
		global[r] = local[i]
	}
}
