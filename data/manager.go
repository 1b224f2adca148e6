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
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/paperfolio/pf-api/common"
	"github.com/paperfolio/pf-api/dataframe"
	"github.com/rs/zerolog/log"
)

// Manager coordinates fetching price history for a set of symbols and
// normalizing every bar to the reporting currency before alignment.
type Manager struct {
	provider Provider
	rates    RateProvider
	useCache bool
}

func NewManager(provider Provider, rates RateProvider) *Manager {
	return &Manager{
		provider: provider,
		rates:    rates,
		useCache: true,
	}
}

// NewUncachedManager creates a manager that bypasses the process cache;
// used by tests that stub the HTTP layer directly.
func NewUncachedManager(provider Provider, rates RateProvider) *Manager {
	return &Manager{
		provider: provider,
		rates:    rates,
	}
}

type seriesResult struct {
	Symbol string
	Series *dataframe.Series
	Err    error
}

// FetchAligned fetches per-symbol history concurrently, converts each
// series to the reporting currency, and aligns the results into a
// single date-indexed frame.
//
// The join is structured: exactly one result is collected per symbol
// before alignment runs, so the aligner never observes a half-populated
// fetch set. A symbol whose fetch fails contributes an empty series -
// the failure is logged and the date simply has no data for that
// symbol, which the valuation coverage threshold accounts for.
func (m *Manager) FetchAligned(ctx context.Context, symbols []string, begin, end time.Time) (*dataframe.DataFrame, error) {
	if end.Before(begin) {
		return nil, ErrInvalidTimeRange
	}

	rateMemo := newRateMemo(m.rates)

	ch := make(chan seriesResult)
	for _, symbol := range symbols {
		go m.fetchWorker(ctx, ch, strings.ToUpper(symbol), begin, end, rateMemo)
	}

	seriesMap := make(map[string]*dataframe.Series, len(symbols))
	for range symbols {
		res := <-ch
		if res.Err != nil {
			log.Warn().Err(res.Err).Str("Symbol", res.Symbol).Msg("could not fetch symbol history; continuing with empty series")
			seriesMap[res.Symbol] = &dataframe.Series{}
			continue
		}
		seriesMap[res.Symbol] = res.Series
	}

	return dataframe.Align(seriesMap), nil
}

// FetchSeries fetches a single symbol's history as a reporting-currency
// series. Used for benchmark symbols where a fetch failure must surface
// to the caller rather than degrade to an empty series.
func (m *Manager) FetchSeries(ctx context.Context, symbol string, begin, end time.Time) (*dataframe.Series, error) {
	rateMemo := newRateMemo(m.rates)
	return m.fetchConverted(ctx, strings.ToUpper(symbol), begin, end, rateMemo)
}

func (m *Manager) fetchWorker(ctx context.Context, result chan<- seriesResult, symbol string, begin, end time.Time, rateMemo *rateMemo) {
	series, err := m.fetchConverted(ctx, symbol, begin, end, rateMemo)
	result <- seriesResult{
		Symbol: symbol,
		Series: series,
		Err:    err,
	}
}

func (m *Manager) fetchConverted(ctx context.Context, symbol string, begin, end time.Time, rateMemo *rateMemo) (*dataframe.Series, error) {
	bars, err := m.fetchBars(ctx, symbol, begin, end)
	if err != nil {
		return nil, err
	}

	// Every bar of a fetch carries the provider's quote currency; the
	// conversion rate is resolved once per currency, not once per bar.
	dates := make([]time.Time, 0, len(bars))
	vals := make([]float64, 0, len(bars))
	for _, bar := range bars {
		rate, wasFallback, err := rateMemo.rate(ctx, bar.Currency)
		if err != nil {
			return nil, err
		}
		if wasFallback {
			rateMemo.noteFallback(symbol, bar.Currency)
		}
		dates = append(dates, bar.Date)
		vals = append(vals, bar.Close*rate)
	}

	return dataframe.NewSeries(dates, vals)
}

func (m *Manager) fetchBars(ctx context.Context, symbol string, begin, end time.Time) ([]*PriceBar, error) {
	cacheKey := fmt.Sprintf("bars:%s:%s:%s:%s", m.provider.Name(), symbol, begin.Format("2006-01-02"), end.Format("2006-01-02"))

	if m.useCache {
		if raw, err := common.CacheGet(cacheKey); err == nil && len(raw) > 0 {
			bars := []*PriceBar{}
			if err := json.Unmarshal(raw, &bars); err == nil {
				return bars, nil
			}
			log.Warn().Str("CacheKey", cacheKey).Msg("discarding undecodable cache entry")
		}
	}

	bars, err := m.provider.FetchHistoricalBars(ctx, symbol, begin, end)
	if err != nil {
		return nil, err
	}

	if m.useCache {
		if raw, err := json.Marshal(bars); err == nil {
			if err := common.CacheSet(cacheKey, raw); err != nil {
				log.Warn().Err(err).Str("CacheKey", cacheKey).Msg("could not cache bars")
			}
		}
	}

	return bars, nil
}

// rateMemo memoizes rate lookups for the duration of one fetch so the
// conversion is computed once per (fetch, currency) unit even when
// symbol workers run concurrently.
type rateMemo struct {
	rates  RateProvider
	memo   map[string]memoEntry
	logged map[string]bool
	lock   sync.Mutex
}

type memoEntry struct {
	rate        float64
	wasFallback bool
}

func newRateMemo(rates RateProvider) *rateMemo {
	return &rateMemo{
		rates:  rates,
		memo:   make(map[string]memoEntry),
		logged: make(map[string]bool),
	}
}

func (rm *rateMemo) rate(ctx context.Context, currency string) (float64, bool, error) {
	rm.lock.Lock()
	defer rm.lock.Unlock()

	if entry, ok := rm.memo[currency]; ok {
		return entry.rate, entry.wasFallback, nil
	}

	rate, wasFallback, err := rm.rates.Rate(ctx, currency)
	if err != nil {
		return 0, false, err
	}

	rm.memo[currency] = memoEntry{rate: rate, wasFallback: wasFallback}
	return rate, wasFallback, nil
}

func (rm *rateMemo) noteFallback(symbol, currency string) {
	rm.lock.Lock()
	defer rm.lock.Unlock()

	if rm.logged[currency] {
		return
	}
	rm.logged[currency] = true
	log.Warn().Str("Symbol", symbol).Str("Currency", currency).Msg("using fallback exchange rate")
}
