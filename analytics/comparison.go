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

import (
	"sort"
	"time"

	"github.com/paperfolio/pf-api/dataframe"
)

// ComparisonPoint is one charted date of a rebased comparison. A nil
// field means that series has no observation on the date.
type ComparisonPoint struct {
	Date            time.Time `json:"date"`
	PortfolioValue  *float64  `json:"portfolioValue"`
	ComparisonValue *float64  `json:"comparisonValue"`
}

// Compare rebases the portfolio and benchmark series to 100 at the
// first date both have data (the anchor). Portfolio value and
// benchmark level live on unrelated scales, so absolute comparison is
// meaningless; indexing both to 100 puts them on one axis.
//
// Dates where only one series has data emit that side and nil for the
// other; dates where neither has data are dropped. Returns ErrNoOverlap
// when no anchor date exists.
func Compare(portfolio, benchmark *dataframe.Series) ([]*ComparisonPoint, error) {
	dateSet := make(map[time.Time]struct{}, portfolio.Len()+benchmark.Len())
	for _, dt := range portfolio.Dates {
		dateSet[dt] = struct{}{}
	}
	for _, dt := range benchmark.Dates {
		dateSet[dt] = struct{}{}
	}

	dates := make([]time.Time, 0, len(dateSet))
	for dt := range dateSet {
		dates = append(dates, dt)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	var anchorPortfolio, anchorBenchmark float64
	anchorFound := false
	for _, dt := range dates {
		pv, pOk := portfolio.Value(dt)
		bv, bOk := benchmark.Value(dt)
		if pOk && bOk {
			anchorPortfolio = pv
			anchorBenchmark = bv
			anchorFound = true
			break
		}
	}
	if !anchorFound {
		return nil, ErrNoOverlap
	}

	points := make([]*ComparisonPoint, 0, len(dates))
	for _, dt := range dates {
		pv, pOk := portfolio.Value(dt)
		bv, bOk := benchmark.Value(dt)
		if !pOk && !bOk {
			continue
		}

		point := &ComparisonPoint{Date: dt}
		if pOk {
			rebased := pv / anchorPortfolio * 100
			point.PortfolioValue = &rebased
		}
		if bOk {
			rebased := bv / anchorBenchmark * 100
			point.ComparisonValue = &rebased
		}
		points = append(points, point)
	}

	return points, nil
}
