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
)

var _ = Describe("Range", func() {
	DescribeTable("parses request strings",
		func(input string, expected analytics.Range) {
			Expect(analytics.ParseRange(input)).To(Equal(expected))
		},
		Entry("one month", "1m", analytics.Range1M),
		Entry("six months", "6m", analytics.Range6M),
		Entry("five years", "5y", analytics.Range5Y),
		Entry("all history", "all", analytics.RangeAll),
		Entry("unknown falls back to a year", "2w", analytics.Range1Y),
		Entry("empty falls back to a year", "", analytics.Range1Y),
	)

	Context("computing lookback windows", func() {
		now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

		It("anchors the window end at now", func() {
			_, end := analytics.Range3M.Window(now)
			Expect(end).To(Equal(now))
		})

		It("subtracts calendar months", func() {
			begin, _ := analytics.Range3M.Window(now)
			Expect(begin).To(Equal(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)))
		})

		It("subtracts calendar years", func() {
			begin, _ := analytics.Range5Y.Window(now)
			Expect(begin).To(Equal(time.Date(2019, 6, 15, 12, 0, 0, 0, time.UTC)))
		})

		It("reaches back to the epoch for all", func() {
			begin, _ := analytics.RangeAll.Window(now)
			Expect(begin.Year()).To(Equal(1970))
		})
	})
})
