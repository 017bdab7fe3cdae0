// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/cpmech/gosl/chk"
)

// WriteSummaryCSV writes the "name,time,pressure_in,pressure_out,
// flow_in,flow_out" long-format table of §6, one row per (vessel,
// time) pair, vessels already in name order from Summary.
func WriteSummaryCSV(w io.Writer, series []VesselSeries) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"name", "time", "pressure_in", "pressure_out", "flow_in", "flow_out"}); err != nil {
		return chk.Err("writing summary CSV header: %v", err)
	}
	for _, s := range series {
		for i := range s.Time {
			row := []string{
				s.Name,
				formatFloat(s.Time[i]),
				formatFloat(s.PressureIn[i]),
				formatFloat(s.PressureOut[i]),
				formatFloat(s.FlowIn[i]),
				formatFloat(s.FlowOut[i]),
			}
			if err := cw.Write(row); err != nil {
				return chk.Err("writing summary CSV row for %q: %v", s.Name, err)
			}
		}
	}
	if err := cw.Error(); err != nil {
		return chk.Err("flushing summary CSV: %v", err)
	}
	return nil
}

// WriteVariableCSV writes the "name,time,y[,ydot]" long-format table of
// §6. The ydot column is included only when at least one series
// carries derivatives.
func WriteVariableCSV(w io.Writer, series []VariableSeries) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	withDerivative := false
	for _, s := range series {
		if s.Ydot != nil {
			withDerivative = true
			break
		}
	}

	header := []string{"name", "time", "y"}
	if withDerivative {
		header = append(header, "ydot")
	}
	if err := cw.Write(header); err != nil {
		return chk.Err("writing variable CSV header: %v", err)
	}

	for _, s := range series {
		for i := range s.Time {
			row := []string{s.Name, formatFloat(s.Time[i]), formatFloat(s.Y[i])}
			if withDerivative {
				if s.Ydot != nil {
					row = append(row, formatFloat(s.Ydot[i]))
				} else {
					row = append(row, "")
				}
			}
			if err := cw.Write(row); err != nil {
				return chk.Err("writing variable CSV row for %q: %v", s.Name, err)
			}
		}
	}
	if err := cw.Error(); err != nil {
		return chk.Err("flushing variable CSV: %v", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
