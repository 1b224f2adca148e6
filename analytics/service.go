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
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paperfolio/pf-api/data"
	"github.com/paperfolio/pf-api/dataframe"
	"github.com/paperfolio/pf-api/observability/opentelemetry"
	"github.com/paperfolio/pf-api/portfolio"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
)

// Service wires the portfolio store and the market-data manager into
// the exposed analytics operations. It is stateless; every call builds
// its own snapshot of fetched series, so parallel requests across
// portfolios need no coordination.
type Service struct {
	store   portfolio.Store
	manager *data.Manager
}

func NewService(store portfolio.Store, manager *data.Manager) *Service {
	return &Service{
		store:   store,
		manager: manager,
	}
}

// BenchmarkSymbol returns the configured comparison benchmark,
// defaulting to the S&P 500 index when unset
func BenchmarkSymbol() string {
	if symbol := viper.GetString("analytics.benchmark_symbol"); symbol != "" {
		return symbol
	}
	return "^GSPC"
}

// HistoricalValuation values the portfolio's holdings over the
// requested range. Returns ErrNoHoldings for an empty portfolio.
func (service *Service) HistoricalValuation(ctx context.Context, portfolioID uuid.UUID, lookback Range) (*PortfolioValuation, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "HistoricalValuation")
	defer span.End()

	valuation, _, err := service.valuate(ctx, portfolioID, lookback)
	return valuation, err
}

// Comparison rebases the portfolio total against the benchmark symbol
// to a common index of 100. Fails with ErrNoOverlap when the two series
// share no date, and with the benchmark's fetch error when the
// benchmark cannot be loaded at all.
func (service *Service) Comparison(ctx context.Context, portfolioID uuid.UUID, lookback Range, benchmarkSymbol string) ([]*ComparisonPoint, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "Comparison")
	defer span.End()

	if benchmarkSymbol == "" {
		benchmarkSymbol = BenchmarkSymbol()
	}

	valuation, window, err := service.valuate(ctx, portfolioID, lookback)
	if err != nil {
		return nil, err
	}

	benchmark, err := service.manager.FetchSeries(ctx, benchmarkSymbol, window.begin, window.end)
	if err != nil {
		log.Warn().Err(err).Str("Benchmark", benchmarkSymbol).Msg("could not fetch benchmark for comparison")
		return nil, err
	}

	return Compare(valuation.Total, benchmark)
}

// RiskReport computes the full risk statistics for the portfolio over
// the requested range. A benchmark fetch failure degrades to nil betas
// rather than failing the report.
func (service *Service) RiskReport(ctx context.Context, portfolioID uuid.UUID, lookback Range) (*RiskReport, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "RiskReport")
	defer span.End()

	valuation, window, err := service.valuate(ctx, portfolioID, lookback)
	if err != nil {
		return nil, err
	}

	var benchmark *dataframe.Series
	benchmarkSymbol := BenchmarkSymbol()
	benchmark, err = service.manager.FetchSeries(ctx, benchmarkSymbol, window.begin, window.end)
	if err != nil {
		log.Warn().Err(err).Str("Benchmark", benchmarkSymbol).Msg("could not fetch benchmark; betas will be null")
		benchmark = nil
	}

	return NewRiskReport(valuation.Total, valuation.PerSymbol, benchmark), nil
}

type dateWindow struct {
	begin time.Time
	end   time.Time
}

func (service *Service) valuate(ctx context.Context, portfolioID uuid.UUID, lookback Range) (*PortfolioValuation, dateWindow, error) {
	subLog := log.With().Str("PortfolioID", portfolioID.String()).Str("Range", string(lookback)).Logger()

	holdings, err := service.store.GetHoldings(ctx, portfolioID)
	if err != nil {
		return nil, dateWindow{}, err
	}
	if len(holdings) == 0 {
		subLog.Info().Msg("portfolio has no holdings")
		return nil, dateWindow{}, ErrNoHoldings
	}

	// symbols are uppercased here so the quantity map keys match the
	// column names the fetcher produces
	symbols := make([]string, 0, len(holdings))
	quantities := make(map[string]float64, len(holdings))
	for _, holding := range holdings {
		symbol := strings.ToUpper(holding.Symbol)
		symbols = append(symbols, symbol)
		quantities[symbol] = holding.Quantity
	}

	begin, end := lookback.Window(time.Now())
	prices, err := service.manager.FetchAligned(ctx, symbols, begin, end)
	if err != nil {
		subLog.Warn().Err(err).Msg("could not fetch aligned price history")
		return nil, dateWindow{}, err
	}

	return Valuate(prices, quantities), dateWindow{begin: begin, end: end}, nil
}
