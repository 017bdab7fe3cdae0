// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assembly

// Footprint is the flat (row, col) index pairs one block contributes,
// cached once at SetupDOFs and handed to BuildPattern.
type Footprint struct {
	RowIDs []int
	ColIDs []int
}

// Pattern is the reusable sparse nonzero structure shared by E, F, dE,
// dF and dC (every block writes the same local shape into each of
// them), built once from the union of every block's footprint rather
// than rediscovered from the dense arrays on every step.
type Pattern struct {
	N      int
	RowIDs []int
	ColIDs []int
}

// BuildPattern concatenates every block's footprint into one pattern.
// Block row/col pairs never collide across blocks (each equation row
// belongs to exactly one block), so no deduplication is required.
func BuildPattern(n int, footprints []Footprint) *Pattern {
	total := 0
	for _, f := range footprints {
		total += len(f.RowIDs)
	}
	p := &Pattern{N: n, RowIDs: make([]int, 0, total), ColIDs: make([]int, 0, total)}
	for _, f := range footprints {
		p.RowIDs = append(p.RowIDs, f.RowIDs...)
		p.ColIDs = append(p.ColIDs, f.ColIDs...)
	}
	return p
}

// NNZ returns the number of nonzero slots the pattern reserves, the
// capacity a sparse triplet built from it should be initialized with.
func (p *Pattern) NNZ() int {
	return len(p.RowIDs)
}
