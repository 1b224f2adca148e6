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
	"errors"
	"time"
)

// DataFrame stores a table of values organized by date. Vals is column
// major - e.g.,
//
// AAPL  MSFT
// 1     4
// 2     5
// 3     6
//
// Vals[0][0] = 1
// Vals[0][1] = 2
//
// Dates are day granularity, sorted ascending, and unique. A NaN cell
// means the column has no observation on that date.
type DataFrame struct {
	Dates    []time.Time
	ColNames []string
	Vals     [][]float64
}

// Series is a single date-indexed column of values. Dates are sorted
// ascending and unique; every date has a value.
type Series struct {
	Dates []time.Time
	Vals  []float64
}

var (
	ErrUnequalLength = errors.New("dates and vals must be the same length")
)

// Day truncates t to calendar-day granularity in UTC. All series keys
// pass through here so that bars from different markets compare equal
// on the same calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
