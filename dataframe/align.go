// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataframe

import (
	"math"
	"sort"
	"time"
)

// Align merges per-symbol series into a single date-indexed dataframe.
// The row index is the exact union of all date keys seen across the
// input series, sorted ascending. Each cell is filled by exact
// date-key lookup; a date a symbol has no observation for stays NaN.
// There is no forward/backward fill and no interpolation - a missing
// date means "no data that day", not "value unchanged".
//
// Column order is sorted by symbol so output is deterministic.
func Align(seriesMap map[string]*Series) *DataFrame {
	df := &DataFrame{
		Dates:    []time.Time{},
		ColNames: make([]string, 0, len(seriesMap)),
		Vals:     make([][]float64, 0, len(seriesMap)),
	}

	if len(seriesMap) == 0 {
		return df
	}

	for symbol := range seriesMap {
		df.ColNames = append(df.ColNames, symbol)
	}
	sort.Strings(df.ColNames)

	dateSet := make(map[time.Time]bool)
	for _, series := range seriesMap {
		for _, dt := range series.Dates {
			dateSet[dt] = true
		}
	}

	df.Dates = make([]time.Time, 0, len(dateSet))
	for dt := range dateSet {
		df.Dates = append(df.Dates, dt)
	}
	sort.Slice(df.Dates, func(i, j int) bool {
		return df.Dates[i].Before(df.Dates[j])
	})

	for _, symbol := range df.ColNames {
		series := seriesMap[symbol]
		col := make([]float64, len(df.Dates))
		for rowIdx, dt := range df.Dates {
			if v, ok := series.Value(dt); ok {
				col[rowIdx] = v
			} else {
				col[rowIdx] = math.NaN()
			}
		}
		df.Vals = append(df.Vals, col)
	}

	return df
}
