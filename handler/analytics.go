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

package handler

import (
	"errors"
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/paperfolio/pf-api/analytics"
	"github.com/paperfolio/pf-api/data"
	"github.com/paperfolio/pf-api/dataframe"
	"github.com/paperfolio/pf-api/portfolio"
	"github.com/rs/zerolog/log"
)

// SeriesPoint is one dated value of a serialized series
type SeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// ValuationResponse is the wire form of a portfolio valuation with
// monetary values rounded to 2 decimal places
type ValuationResponse struct {
	PerSymbol map[string][]*SeriesPoint `json:"perSymbol"`
	Total     []*SeriesPoint            `json:"total"`
}

type comparisonPointResponse struct {
	Date            string   `json:"date"`
	PortfolioValue  *float64 `json:"portfolioValue"`
	ComparisonValue *float64 `json:"comparisonValue"`
}

// Valuation computes the portfolio's historical valuation over the
// range query parameter
func (h *Handler) Valuation(c *fiber.Ctx) error {
	portfolioID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}
	lookback := analytics.ParseRange(c.Query("range", "1y"))

	valuation, err := h.Service.HistoricalValuation(c.Context(), portfolioID, lookback)
	if err != nil {
		return analyticsError(c, portfolioID, err)
	}

	response := &ValuationResponse{
		PerSymbol: make(map[string][]*SeriesPoint, len(valuation.PerSymbol)),
		Total:     serializeSeries(valuation.Total),
	}
	for symbol, series := range valuation.PerSymbol {
		response.PerSymbol[symbol] = serializeSeries(series)
	}

	return c.JSON(response)
}

// Comparison rebases the portfolio against a benchmark symbol given by
// the benchmark query parameter
func (h *Handler) Comparison(c *fiber.Ctx) error {
	portfolioID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}
	lookback := analytics.ParseRange(c.Query("range", "1y"))
	benchmark := c.Query("benchmark")

	points, err := h.Service.Comparison(c.Context(), portfolioID, lookback, benchmark)
	if err != nil {
		return analyticsError(c, portfolioID, err)
	}

	response := make([]*comparisonPointResponse, 0, len(points))
	for _, point := range points {
		response = append(response, &comparisonPointResponse{
			Date:            point.Date.Format("2006-01-02"),
			PortfolioValue:  round2Ptr(point.PortfolioValue),
			ComparisonValue: round2Ptr(point.ComparisonValue),
		})
	}

	return c.JSON(response)
}

// RiskReport computes the portfolio's risk statistics
func (h *Handler) RiskReport(c *fiber.Ctx) error {
	portfolioID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}
	lookback := analytics.ParseRange(c.Query("range", "1y"))

	report, err := h.Service.RiskReport(c.Context(), portfolioID, lookback)
	if err != nil {
		return analyticsError(c, portfolioID, err)
	}

	return c.JSON(report)
}

// analyticsError maps domain errors onto HTTP statuses; pipeline errors
// carry a specific body so the caller can render a precise message
func analyticsError(c *fiber.Ctx, portfolioID uuid.UUID, err error) error {
	switch {
	case errors.Is(err, portfolio.ErrNotFound):
		return fiber.ErrNotFound
	case errors.Is(err, analytics.ErrNoHoldings):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"status":  "error",
			"message": "portfolio has no holdings",
		})
	case errors.Is(err, analytics.ErrNoOverlap):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"status":  "error",
			"message": "portfolio and benchmark share no overlapping dates",
		})
	case errors.Is(err, data.ErrInvalidTimeRange):
		return fiber.ErrBadRequest
	case errors.Is(err, data.ErrFetchFailed):
		return fiber.ErrBadGateway
	default:
		log.Error().Err(err).Str("PortfolioID", portfolioID.String()).Msg("analytics request failed")
		return fiber.ErrInternalServerError
	}
}

// serializeSeries converts a series to its wire form, rounding to 2
// decimal places. Rounding happens only here so internal computation
// never compounds rounding error.
func serializeSeries(series *dataframe.Series) []*SeriesPoint {
	points := make([]*SeriesPoint, 0, series.Len())
	for idx, dt := range series.Dates {
		points = append(points, &SeriesPoint{
			Date:  dt.Format("2006-01-02"),
			Value: round2(series.Vals[idx]),
		})
	}
	return points
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round2Ptr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	rounded := round2(*v)
	return &rounded
}
