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

// Package analytics turns aligned, currency-normalized price history
// into portfolio valuations, rebased comparison series, and risk
// reports. Everything here is a pure transform over immutable inputs;
// each request builds its own frames and never mutates shared state.
package analytics

import (
	"math"
	"time"

	"github.com/paperfolio/pf-api/dataframe"
)

// PortfolioValuation holds per-symbol position value series plus the
// portfolio total. Derived per request, never persisted.
type PortfolioValuation struct {
	PerSymbol map[string]*dataframe.Series
	Total     *dataframe.Series
}

// Valuate converts an aligned price frame into position values and a
// portfolio total. Per-symbol value at a date is price * quantity and
// exists only where the price does. The total is emitted for a date
// only when at least half of the holdings (rounded up) have data that
// day; dates failing the threshold are omitted, not zero-filled, so a
// single open market never reports a misleadingly low total.
func Valuate(prices *dataframe.DataFrame, quantities map[string]float64) *PortfolioValuation {
	valuation := &PortfolioValuation{
		PerSymbol: make(map[string]*dataframe.Series, len(quantities)),
	}

	threshold := (len(quantities) + 1) / 2

	for symbol, qty := range quantities {
		col, ok := prices.Col(symbol)
		if !ok {
			valuation.PerSymbol[symbol] = &dataframe.Series{}
			continue
		}
		valuation.PerSymbol[symbol] = col.MulScalar(qty)
	}

	total := &dataframe.Series{
		Dates: make([]time.Time, 0, prices.Len()),
		Vals:  make([]float64, 0, prices.Len()),
	}

	for rowIdx, dt := range prices.Dates {
		if prices.CountAt(rowIdx) < threshold {
			continue
		}

		sum := 0.0
		for colIdx, symbol := range prices.ColNames {
			v := prices.Vals[colIdx][rowIdx]
			if math.IsNaN(v) {
				continue
			}
			sum += v * quantities[symbol]
		}

		total.Dates = append(total.Dates, dt)
		total.Vals = append(total.Vals, sum)
	}

	valuation.Total = total
	return valuation
}
