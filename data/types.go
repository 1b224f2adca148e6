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

package data

import (
	"context"
	"time"
)

// PriceBar is a single dated price observation for a symbol. Bars are
// immutable once returned by a provider; currency conversion produces
// new values downstream rather than mutating the bar.
type PriceBar struct {
	Date     time.Time `json:"date"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adjClose"`
	Currency string    `json:"currency"`
}

// Provider fetches historical price bars for a symbol over a date
// range. Implementations must return bars sorted ascending by date
// with day granularity.
type Provider interface {
	Name() string
	FetchHistoricalBars(ctx context.Context, symbol string, begin, end time.Time) ([]*PriceBar, error)
}

// RateProvider converts one unit of the source currency into the
// reporting currency. wasFallback reports that the returned rate did
// not come from the live provider but from the static table (or the
// final rate=1 degraded mode).
type RateProvider interface {
	Rate(ctx context.Context, currency string) (rate float64, wasFallback bool, err error)
}
