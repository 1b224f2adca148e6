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

package analytics_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/paperfolio/pf-api/analytics"
	"github.com/paperfolio/pf-api/dataframe"
)

func day(year int, month time.Month, dom int) time.Time {
	return time.Date(year, month, dom, 0, 0, 0, 0, time.UTC)
}

func mustSeries(dates []time.Time, vals []float64) *dataframe.Series {
	series, err := dataframe.NewSeries(dates, vals)
	Expect(err).To(BeNil())
	return series
}

var _ = Describe("Valuate", func() {
	Context("with 4 holdings and uneven coverage", func() {
		var (
			prices     *dataframe.DataFrame
			quantities map[string]float64
		)

		BeforeEach(func() {
			// on Jan 2 only AAA has data (1 of 4); on Jan 3 AAA and BBB
			// have data (2 of 4); on Jan 4 all four have data
			full := []time.Time{day(2024, 1, 3), day(2024, 1, 4)}
			prices = dataframe.Align(map[string]*dataframe.Series{
				"AAA": mustSeries([]time.Time{day(2024, 1, 2), day(2024, 1, 3), day(2024, 1, 4)}, []float64{10, 11, 12}),
				"BBB": mustSeries(full, []float64{20, 21}),
				"CCC": mustSeries([]time.Time{day(2024, 1, 4)}, []float64{30}),
				"DDD": mustSeries([]time.Time{day(2024, 1, 4)}, []float64{40}),
			})
			quantities = map[string]float64{"AAA": 1, "BBB": 2, "CCC": 3, "DDD": 4}
		})

		It("omits dates below the coverage threshold", func() {
			valuation := analytics.Valuate(prices, quantities)
			_, ok := valuation.Total.Value(day(2024, 1, 2))
			Expect(ok).To(BeFalse())
		})

		It("includes dates meeting the coverage threshold", func() {
			valuation := analytics.Valuate(prices, quantities)
			total, ok := valuation.Total.Value(day(2024, 1, 3))
			Expect(ok).To(BeTrue())
			Expect(total).To(BeNumerically("==", 11+2*21))
		})

		It("sums every holding on fully covered dates", func() {
			valuation := analytics.Valuate(prices, quantities)
			total, ok := valuation.Total.Value(day(2024, 1, 4))
			Expect(ok).To(BeTrue())
			Expect(total).To(BeNumerically("==", 12+2*21+3*30+4*40))
		})

		It("scales per-symbol series by quantity", func() {
			valuation := analytics.Valuate(prices, quantities)
			v, ok := valuation.PerSymbol["DDD"].Value(day(2024, 1, 4))
			Expect(ok).To(BeTrue())
			Expect(v).To(BeNumerically("==", 160))
		})

		It("only defines per-symbol values where prices exist", func() {
			valuation := analytics.Valuate(prices, quantities)
			Expect(valuation.PerSymbol["CCC"].Len()).To(Equal(1))
		})
	})

	Context("with a single holding", func() {
		It("requires the holding itself to have data", func() {
			prices := dataframe.Align(map[string]*dataframe.Series{
				"AAA": mustSeries([]time.Time{day(2024, 1, 2)}, []float64{10}),
			})
			valuation := analytics.Valuate(prices, map[string]float64{"AAA": 5})
			Expect(valuation.Total.Len()).To(Equal(1))
			Expect(valuation.Total.Vals[0]).To(BeNumerically("==", 50))
		})
	})

	Context("with an empty price frame", func() {
		It("yields an empty total", func() {
			prices := dataframe.Align(map[string]*dataframe.Series{})
			valuation := analytics.Valuate(prices, map[string]float64{})
			Expect(valuation.Total.Len()).To(Equal(0))
		})
	})
})
