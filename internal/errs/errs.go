// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errs centralizes the error-propagation idiom shared by every
// stage of the solver: configuration errors are returned, numerical
// warnings are logged but never abort the run.
package errs

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/gosl/utl"
)

// Logger receives non-fatal numerical warnings, e.g. Newton non-convergence.
type Logger interface {
	Warnf(format string, args ...interface{})
}

// DefaultLogger prints warnings to the console using gosl's colored output.
type DefaultLogger struct{}

// Warnf implements Logger.
func (DefaultLogger) Warnf(format string, args ...interface{}) {
	utl.Pfmag(format, args...)
}

// NopLogger discards every warning.
type NopLogger struct{}

// Warnf implements Logger.
func (NopLogger) Warnf(format string, args ...interface{}) {}

// Stop reports whether execution must halt after err occurred while
// performing msg. This solver is always single-rank (§5: single-threaded
// cooperative), but the call shape mirrors the teacher's mpi-aware
// Stop so the idiom travels unchanged if this is ever embedded in a
// distributed caller.
func Stop(err error, msg string) bool {
	if err == nil {
		return false
	}
	if !mpi.IsOn() {
		utl.PfRed("solver failed on %s: %v\n", msg, err)
		return true
	}
	utl.PfRed("solver failed in rank %d on %s: %v\n", mpi.Rank(), msg, err)
	return true
}

// Wrap creates a formatted error, mirroring gosl/chk.Err's signature so
// call sites read identically to the teacher's error construction.
func Wrap(format string, args ...interface{}) error {
	return chk.Err(format, args...)
}
