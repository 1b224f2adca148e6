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
	"sort"
	"time"
)

// NewSeries builds a Series from parallel date and value slices. Input
// is copied, normalized to day granularity, sorted ascending, and
// de-duplicated (last value wins for a repeated date).
func NewSeries(dates []time.Time, vals []float64) (*Series, error) {
	if len(dates) != len(vals) {
		return nil, ErrUnequalLength
	}

	byDate := make(map[time.Time]float64, len(dates))
	for idx, dt := range dates {
		byDate[Day(dt)] = vals[idx]
	}

	series := &Series{
		Dates: make([]time.Time, 0, len(byDate)),
		Vals:  make([]float64, 0, len(byDate)),
	}

	for dt := range byDate {
		series.Dates = append(series.Dates, dt)
	}
	sort.Slice(series.Dates, func(i, j int) bool {
		return series.Dates[i].Before(series.Dates[j])
	})

	for _, dt := range series.Dates {
		series.Vals = append(series.Vals, byDate[dt])
	}

	return series, nil
}

// Len returns the number of observations in the series
func (s *Series) Len() int {
	return len(s.Dates)
}

// Value looks up the observation for the given calendar date using an
// exact date-key match. The second return is false when the series has
// no data that day; a missing date is never interpolated or filled.
func (s *Series) Value(date time.Time) (float64, bool) {
	date = Day(date)
	idx := sort.Search(len(s.Dates), func(i int) bool {
		return !s.Dates[i].Before(date)
	})
	if idx < len(s.Dates) && s.Dates[idx].Equal(date) {
		return s.Vals[idx], true
	}
	return 0, false
}

// First returns the first date and value of the series
func (s *Series) First() (time.Time, float64) {
	if len(s.Dates) == 0 {
		return time.Time{}, 0
	}
	return s.Dates[0], s.Vals[0]
}

// Last returns the last date and value of the series
func (s *Series) Last() (time.Time, float64) {
	if len(s.Dates) == 0 {
		return time.Time{}, 0
	}
	return s.Dates[len(s.Dates)-1], s.Vals[len(s.Dates)-1]
}

// Copy creates a deep copy of the series
func (s *Series) Copy() *Series {
	s2 := &Series{
		Dates: make([]time.Time, len(s.Dates)),
		Vals:  make([]float64, len(s.Vals)),
	}
	copy(s2.Dates, s.Dates)
	copy(s2.Vals, s.Vals)
	return s2
}

// MulScalar multiplies every value in the series by the scalar and
// returns a new series
func (s *Series) MulScalar(scalar float64) *Series {
	s2 := s.Copy()
	for idx := range s2.Vals {
		s2.Vals[idx] *= scalar
	}
	return s2
}

// Returns computes simple period-over-period returns:
// r[i] = (v[i+1] - v[i]) / v[i]. The result has length Len()-1; a
// series with fewer than 2 observations yields an empty slice.
func (s *Series) Returns() []float64 {
	if len(s.Vals) < 2 {
		return []float64{}
	}

	rets := make([]float64, len(s.Vals)-1)
	for ii := 1; ii < len(s.Vals); ii++ {
		rets[ii-1] = (s.Vals[ii] - s.Vals[ii-1]) / s.Vals[ii-1]
	}
	return rets
}
