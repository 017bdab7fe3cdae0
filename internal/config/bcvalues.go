// Copyright 2024 The svZeroDSolver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"encoding/json"
	"sort"

	"github.com/cpmech/gosl/chk"

	"github.com/SimVascular/svZeroDSolver/internal/coeff"
)

// BCValues holds a boundary condition's bc_values object. Every entry
// is either a scalar constant or a series sharing the "t" time array;
// this mirrors the isinstance(Sequence) branch performed once per
// attribute in the source model.
type BCValues struct {
	Time    []float64
	Scalars map[string]float64
	Series  map[string][]float64
}

// UnmarshalJSON accepts a flat JSON object whose values are either
// numbers or arrays of numbers, with "t" reserved for the shared time
// base of any series-valued entry.
func (v *BCValues) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v.Scalars = map[string]float64{}
	v.Series = map[string][]float64{}
	for key, msg := range raw {
		var scalar float64
		if err := json.Unmarshal(msg, &scalar); err == nil {
			if key == "t" {
				v.Time = []float64{scalar}
				continue
			}
			v.Scalars[key] = scalar
			continue
		}
		var series []float64
		if err := json.Unmarshal(msg, &series); err != nil {
			return chk.Err("bc_values[%q] is neither a number nor an array of numbers", key)
		}
		if key == "t" {
			v.Time = series
			continue
		}
		v.Series[key] = series
	}
	return nil
}

// MarshalJSON writes the value back out as a flat object, the inverse
// of UnmarshalJSON; needed so Config.Clone round-trips through JSON.
func (v BCValues) MarshalJSON() ([]byte, error) {
	raw := map[string]interface{}{}
	for k, val := range v.Scalars {
		raw[k] = val
	}
	for k, val := range v.Series {
		raw[k] = val
	}
	if len(v.Time) > 0 {
		raw["t"] = v.Time
	}
	return json.Marshal(raw)
}

// Get returns a scalar bc_value, ok is false if key is absent or
// series-valued.
func (v BCValues) Get(key string) (float64, bool) {
	val, ok := v.Scalars[key]
	return val, ok
}

// IsSeries reports whether key is a time series rather than a constant.
func (v BCValues) IsSeries(key string) bool {
	_, ok := v.Series[key]
	return ok
}

// Coefficient lifts bc_values[key] into a coeff.Coefficient, using the
// shared time base when the value is a series.
func (v BCValues) Coefficient(key string) (coeff.Coefficient, error) {
	if series, ok := v.Series[key]; ok {
		return coeff.FromSeries(v.Time, series)
	}
	if scalar, ok := v.Scalars[key]; ok {
		return coeff.Constant(scalar), nil
	}
	return coeff.Coefficient{}, chk.Err("missing required bc_values entry %q", key)
}

// Mean returns the arithmetic mean of bc_values[key], whether it is a
// scalar (returned unchanged) or a series (averaged over its samples).
// Used by internal/steady.CollapseToMean.
func (v BCValues) Mean(key string) (float64, bool) {
	if series, ok := v.Series[key]; ok {
		if len(series) == 0 {
			return 0, false
		}
		sum := 0.0
		for _, s := range series {
			sum += s
		}
		return sum / float64(len(series)), true
	}
	if scalar, ok := v.Scalars[key]; ok {
		return scalar, true
	}
	return 0, false
}

// SetScalar overwrites key with a plain constant and drops it from the
// series map, used when collapsing a BC to its steady equivalent. The
// shared time base is left as it is; DropTime clears it.
func (v *BCValues) SetScalar(key string, value float64) {
	delete(v.Series, key)
	if v.Scalars == nil {
		v.Scalars = map[string]float64{}
	}
	v.Scalars[key] = value
}

// DropTime clears the shared time base, once every series entry that
// used it has been collapsed to a scalar.
func (v *BCValues) DropTime() {
	v.Time = nil
}

// Keys returns the sorted union of scalar and series keys, useful for
// deterministic iteration in tests.
func (v BCValues) Keys() []string {
	keys := make([]string, 0, len(v.Scalars)+len(v.Series))
	for k := range v.Scalars {
		keys = append(keys, k)
	}
	for k := range v.Series {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
