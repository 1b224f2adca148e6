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
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/paperfolio/pf-api/dataframe"
)

func day(year int, month time.Month, dom int) time.Time {
	return time.Date(year, month, dom, 0, 0, 0, 0, time.UTC)
}

var _ = Describe("Align", func() {
	Context("with an empty input map", func() {
		It("yields an empty frame", func() {
			df := dataframe.Align(map[string]*dataframe.Series{})
			Expect(df.Len()).To(Equal(0))
			Expect(df.ColCount()).To(Equal(0))
		})
	})

	Context("with series on different calendars", func() {
		var df *dataframe.DataFrame

		BeforeEach(func() {
			// AAA trades Mon/Tue/Wed; BBB trades Tue/Wed/Thu
			aaa, err := dataframe.NewSeries(
				[]time.Time{day(2024, 1, 1), day(2024, 1, 2), day(2024, 1, 3)},
				[]float64{10, 11, 12})
			Expect(err).To(BeNil())

			bbb, err := dataframe.NewSeries(
				[]time.Time{day(2024, 1, 2), day(2024, 1, 3), day(2024, 1, 4)},
				[]float64{20, 21, 22})
			Expect(err).To(BeNil())

			df = dataframe.Align(map[string]*dataframe.Series{
				"BBB": bbb,
				"AAA": aaa,
			})
		})

		It("indexes the exact union of dates", func() {
			Expect(df.Dates).To(Equal([]time.Time{
				day(2024, 1, 1), day(2024, 1, 2), day(2024, 1, 3), day(2024, 1, 4),
			}))
		})

		It("sorts columns by symbol", func() {
			Expect(df.ColNames).To(Equal([]string{"AAA", "BBB"}))
		})

		It("leaves missing dates NaN rather than filling", func() {
			bbbIdx := df.ColIndex("BBB")
			Expect(math.IsNaN(df.Vals[bbbIdx][0])).To(BeTrue())

			aaaIdx := df.ColIndex("AAA")
			Expect(math.IsNaN(df.Vals[aaaIdx][3])).To(BeTrue())
		})

		It("fills observed cells by exact date match", func() {
			aaaIdx := df.ColIndex("AAA")
			Expect(df.Vals[aaaIdx][1]).To(BeNumerically("==", 11))
		})

		It("counts observations per row", func() {
			Expect(df.CountAt(0)).To(Equal(1))
			Expect(df.CountAt(1)).To(Equal(2))
			Expect(df.CountAt(3)).To(Equal(1))
		})

		It("extracts columns without the NaN cells", func() {
			col, ok := df.Col("BBB")
			Expect(ok).To(BeTrue())
			Expect(col.Len()).To(Equal(3))
			Expect(col.Dates[0]).To(Equal(day(2024, 1, 2)))
		})
	})

	Context("when one series failed to fetch", func() {
		It("keeps the symbol as an all-NaN column", func() {
			aaa, _ := dataframe.NewSeries([]time.Time{day(2024, 1, 1)}, []float64{10})
			df := dataframe.Align(map[string]*dataframe.Series{
				"AAA": aaa,
				"BBB": {},
			})
			Expect(df.ColNames).To(Equal([]string{"AAA", "BBB"}))
			Expect(df.Len()).To(Equal(1))
			Expect(df.CountAt(0)).To(Equal(1))
		})
	})
})

var _ = Describe("DataFrame", func() {
	Context("when trimming by date range", func() {
		var df *dataframe.DataFrame

		BeforeEach(func() {
			dates := make([]time.Time, 10)
			vals := make([]float64, 10)
			for idx := range dates {
				dates[idx] = day(2024, 3, idx+1)
				vals[idx] = float64(idx)
			}
			df = &dataframe.DataFrame{
				ColNames: []string{"Col1"},
				Dates:    dates,
				Vals:     [][]float64{vals},
			}
		})

		It("keeps rows inside the range inclusive", func() {
			trimmed := df.Trim(day(2024, 3, 3), day(2024, 3, 6))
			Expect(trimmed.Len()).To(Equal(4))
			Expect(trimmed.Dates[0]).To(Equal(day(2024, 3, 3)))
			Expect(trimmed.Dates[3]).To(Equal(day(2024, 3, 6)))
		})

		It("is empty for an inverted range", func() {
			trimmed := df.Trim(day(2024, 3, 6), day(2024, 3, 3))
			Expect(trimmed.Len()).To(Equal(0))
		})

		It("is empty when the range misses the frame", func() {
			trimmed := df.Trim(day(2025, 1, 1), day(2025, 2, 1))
			Expect(trimmed.Len()).To(Equal(0))
		})
	})
})
