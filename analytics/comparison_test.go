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

var _ = Describe("Compare", func() {
	Context("with no overlapping dates", func() {
		It("fails with ErrNoOverlap", func() {
			pf := mustSeries(
				[]time.Time{day(2020, 1, 1), day(2020, 1, 2), day(2020, 1, 3)},
				[]float64{100, 101, 102})
			bench := mustSeries(
				[]time.Time{day(2021, 1, 1), day(2021, 1, 2), day(2021, 1, 3)},
				[]float64{3000, 3010, 3020})

			_, err := analytics.Compare(pf, bench)
			Expect(err).To(MatchError(analytics.ErrNoOverlap))
		})
	})

	Context("comparing a series to itself", func() {
		It("is idempotent under rebasing", func() {
			series := mustSeries(
				[]time.Time{day(2024, 1, 2), day(2024, 1, 3), day(2024, 1, 4)},
				[]float64{250, 275, 225})

			points, err := analytics.Compare(series, series)
			Expect(err).To(BeNil())
			Expect(points).To(HaveLen(3))
			for _, point := range points {
				Expect(point.PortfolioValue).NotTo(BeNil())
				Expect(point.ComparisonValue).NotTo(BeNil())
				Expect(*point.PortfolioValue).To(BeNumerically("==", *point.ComparisonValue))
			}
			Expect(*points[0].PortfolioValue).To(BeNumerically("==", 100))
		})
	})

	Context("with partially overlapping calendars", func() {
		var (
			points []*analytics.ComparisonPoint
			err    error
		)

		BeforeEach(func() {
			// portfolio starts a day before the benchmark; benchmark runs
			// a day longer
			pf := mustSeries(
				[]time.Time{day(2024, 1, 1), day(2024, 1, 2), day(2024, 1, 3)},
				[]float64{200, 220, 210})
			bench := mustSeries(
				[]time.Time{day(2024, 1, 2), day(2024, 1, 3), day(2024, 1, 4)},
				[]float64{50, 55, 60})
			points, err = analytics.Compare(pf, bench)
		})

		It("anchors at the first date both have data", func() {
			Expect(err).To(BeNil())
			// Jan 2 is the anchor so both sides read 100 there
			Expect(points[1].Date).To(Equal(day(2024, 1, 2)))
			Expect(*points[1].PortfolioValue).To(BeNumerically("==", 100))
			Expect(*points[1].ComparisonValue).To(BeNumerically("==", 100))
		})

		It("rebases both sides against their anchor values", func() {
			Expect(*points[2].PortfolioValue).To(BeNumerically("~", 210.0/220.0*100, 1e-9))
			Expect(*points[2].ComparisonValue).To(BeNumerically("~", 110, 1e-9))
		})

		It("emits one-sided dates with nil for the absent series", func() {
			Expect(points[0].Date).To(Equal(day(2024, 1, 1)))
			Expect(points[0].PortfolioValue).NotTo(BeNil())
			Expect(points[0].ComparisonValue).To(BeNil())

			Expect(points[3].Date).To(Equal(day(2024, 1, 4)))
			Expect(points[3].PortfolioValue).To(BeNil())
			Expect(points[3].ComparisonValue).NotTo(BeNil())
		})

		It("emits the union of observed dates", func() {
			Expect(points).To(HaveLen(4))
		})
	})

	Context("with two empty series", func() {
		It("fails with ErrNoOverlap", func() {
			_, err := analytics.Compare(&dataframe.Series{}, &dataframe.Series{})
			Expect(err).To(MatchError(analytics.ErrNoOverlap))
		})
	})
})
