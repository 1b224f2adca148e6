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
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

var exchangeRateAPI = "https://api.exchangerate-api.com"

// ReportingCurrency is the single currency every price series is
// normalized to before it reaches the aligner.
const ReportingCurrency = "INR"

// fallbackRates are approximate unit rates into the reporting currency,
// used when the live FX provider is unreachable or does not quote the
// requested currency.
var fallbackRates = map[string]float64{
	"USD": 83.5,
	"EUR": 90.2,
	"GBP": 105.3,
	"JPY": 0.56,
	"AUD": 55.8,
	"CAD": 61.2,
	"CHF": 93.8,
	"CNY": 11.5,
	"HKD": 10.7,
	"SGD": 61.8,
}

type exchangeRateResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// fxRate converts foreign currency amounts into the reporting currency
// using exchangerate-api.com. The full latest-rates snapshot is fetched
// once and reused until snapshotTTL expires, so a whole portfolio fetch
// costs at most one FX request regardless of how many bars it converts.
type fxRate struct {
	client      *http.Client
	snapshot    map[string]float64
	snapshotAge time.Time
	snapshotTTL time.Duration
	lock        sync.Mutex
}

func NewFxRate() *fxRate {
	return &fxRate{
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		snapshotTTL: 24 * time.Hour,
	}
}

// Rate returns the factor that converts one unit of currency into the
// reporting currency. Degraded modes never surface as errors: a dead
// provider falls back to the static table and an unknown currency
// falls back to rate 1, with wasFallback set so callers can tell.
func (fx *fxRate) Rate(ctx context.Context, currency string) (float64, bool, error) {
	if currency == ReportingCurrency {
		return 1, false, nil
	}

	rates, err := fx.latest(ctx)
	if err != nil {
		log.Warn().Err(err).Str("Currency", currency).Msg("fx provider unavailable; using fallback rate")
		return lookupFallback(currency), true, nil
	}

	// provider quotes reporting-currency base: rates[currency] is units
	// of currency per 1 unit of reporting currency
	if perReporting, ok := rates[currency]; ok && perReporting != 0 {
		return 1 / perReporting, false, nil
	}

	log.Warn().Str("Currency", currency).Msg("fx provider has no rate for currency; using fallback rate")
	return lookupFallback(currency), true, nil
}

func lookupFallback(currency string) float64 {
	if rate, ok := fallbackRates[currency]; ok {
		return rate
	}
	return 1
}

// RefreshSnapshot discards the cached FX snapshot so the next Rate call
// fetches fresh quotes. Called from the scheduled refresh job.
func (fx *fxRate) RefreshSnapshot() {
	fx.lock.Lock()
	fx.snapshot = nil
	fx.lock.Unlock()
}

func (fx *fxRate) latest(ctx context.Context) (map[string]float64, error) {
	fx.lock.Lock()
	defer fx.lock.Unlock()

	if fx.snapshot != nil && time.Since(fx.snapshotAge) < fx.snapshotTTL {
		return fx.snapshot, nil
	}

	reqURL := fmt.Sprintf("%s/v4/latest/%s", exchangeRateAPI, ReportingCurrency)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := fx.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRateUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: invalid status code %d", ErrRateUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRateUnavailable, err.Error())
	}

	rateResp := exchangeRateResponse{}
	if err := json.Unmarshal(body, &rateResp); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRateUnavailable, err.Error())
	}

	if len(rateResp.Rates) == 0 {
		return nil, ErrRateUnavailable
	}

	fx.snapshot = rateResp.Rates
	fx.snapshotAge = time.Now()

	return fx.snapshot, nil
}
