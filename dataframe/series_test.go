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

package dataframe_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/paperfolio/pf-api/dataframe"
)

var _ = Describe("Series", func() {
	var (
		dates []time.Time
		vals  []float64
	)

	BeforeEach(func() {
		dates = []time.Time{
			time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
		}
		vals = []float64{100, 110, 121}
	})

	Context("when constructing", func() {
		It("errors on unequal input lengths", func() {
			_, err := dataframe.NewSeries(dates, []float64{1})
			Expect(err).To(MatchError(dataframe.ErrUnequalLength))
		})

		It("sorts unordered input ascending", func() {
			unordered := []time.Time{dates[2], dates[0], dates[1]}
			series, err := dataframe.NewSeries(unordered, []float64{121, 100, 110})
			Expect(err).To(BeNil())
			Expect(series.Dates[0]).To(Equal(dates[0]))
			Expect(series.Vals).To(Equal([]float64{100, 110, 121}))
		})

		It("normalizes timestamps to calendar dates", func() {
			withTime := []time.Time{
				time.Date(2024, 1, 2, 15, 30, 0, 0, time.UTC),
			}
			series, err := dataframe.NewSeries(withTime, []float64{100})
			Expect(err).To(BeNil())
			Expect(series.Dates[0]).To(Equal(dates[0]))
		})

		It("keeps the last value for a duplicate date", func() {
			dup := []time.Time{dates[0], dates[0]}
			series, err := dataframe.NewSeries(dup, []float64{5, 7})
			Expect(err).To(BeNil())
			Expect(series.Len()).To(Equal(1))
			Expect(series.Vals[0]).To(BeNumerically("==", 7))
		})
	})

	Context("when looking up values", func() {
		It("finds an exact date", func() {
			series, _ := dataframe.NewSeries(dates, vals)
			v, ok := series.Value(dates[1])
			Expect(ok).To(BeTrue())
			Expect(v).To(BeNumerically("==", 110))
		})

		It("does not fill a missing date", func() {
			series, _ := dataframe.NewSeries(dates, vals)
			_, ok := series.Value(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
			Expect(ok).To(BeFalse())
		})
	})

	Context("when computing returns", func() {
		It("has length one less than the series", func() {
			series, _ := dataframe.NewSeries(dates, vals)
			Expect(series.Returns()).To(HaveLen(2))
		})

		It("computes simple period returns", func() {
			series, _ := dataframe.NewSeries(dates, vals)
			rets := series.Returns()
			Expect(rets[0]).To(BeNumerically("~", 0.10, 1e-9))
			Expect(rets[1]).To(BeNumerically("~", 0.10, 1e-9))
		})

		It("is empty for a single observation", func() {
			series, _ := dataframe.NewSeries(dates[:1], vals[:1])
			Expect(series.Returns()).To(BeEmpty())
		})

		It("is empty for an empty series", func() {
			series := &dataframe.Series{}
			Expect(series.Returns()).To(BeEmpty())
		})
	})
})
