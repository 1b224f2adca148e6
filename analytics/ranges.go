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

package analytics

import "time"

// Range is a lookback window measured from "now"
type Range string

const (
	Range1M  Range = "1m"
	Range3M  Range = "3m"
	Range6M  Range = "6m"
	Range1Y  Range = "1y"
	Range3Y  Range = "3y"
	Range5Y  Range = "5y"
	RangeAll Range = "all"
)

// ParseRange maps a request string onto a Range. Unknown values fall
// back to 1y rather than failing the request.
func ParseRange(s string) Range {
	switch Range(s) {
	case Range1M, Range3M, Range6M, Range1Y, Range3Y, Range5Y, RangeAll:
		return Range(s)
	default:
		return Range1Y
	}
}

// Window converts the range into a concrete [begin, end] date pair
// anchored at now
func (r Range) Window(now time.Time) (time.Time, time.Time) {
	switch r {
	case Range1M:
		return now.AddDate(0, -1, 0), now
	case Range3M:
		return now.AddDate(0, -3, 0), now
	case Range6M:
		return now.AddDate(0, -6, 0), now
	case Range3Y:
		return now.AddDate(-3, 0, 0), now
	case Range5Y:
		return now.AddDate(-5, 0, 0), now
	case RangeAll:
		return time.Unix(0, 0).UTC(), now
	default:
		return now.AddDate(-1, 0, 0), now
	}
}
