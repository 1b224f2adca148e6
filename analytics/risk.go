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
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/paperfolio/pf-api/dataframe"
	"gonum.org/v1/gonum/stat"
)

const (
	tradingDays    = 252
	annualRiskFree = 0.05

	// one-tailed 95% quantile of the standard normal distribution
	varQuantile95 = 1.645

	rollingWindow = 30
)

// PortfolioName is the synthetic symbol used for the portfolio-level
// entry in the risk/return scatter
const PortfolioName = "PORTFOLIO"

// DatePoint is one observation of a dated metric series
type DatePoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// HistogramBucket is one bar of the return-distribution histogram
type HistogramBucket struct {
	RangeLabel       string  `json:"range"`
	FrequencyPercent float64 `json:"frequency"`
}

// RiskReturnPoint places one asset (or the portfolio itself) on the
// annualized risk/return scatter
type RiskReturnPoint struct {
	Symbol               string   `json:"symbol"`
	AnnualizedReturn     float64  `json:"annualizedReturn"`
	AnnualizedVolatility float64  `json:"annualizedVolatility"`
	Beta                 *float64 `json:"beta"`
}

// RiskReport is the full set of risk statistics for a portfolio over a
// date range. Scalar metrics are pointers: nil means undefined (fewer
// than 2 valuation points, zero volatility for Sharpe, or no usable
// benchmark for beta), never zero.
type RiskReport struct {
	Beta              *float64           `json:"beta"`
	StandardDeviation *float64           `json:"standardDeviation"`
	SharpeRatio       *float64           `json:"sharpeRatio"`
	ValueAtRisk       *float64           `json:"valueAtRisk"`
	MaxDrawdown       *float64           `json:"maxDrawdown"`
	RollingVolatility []*DatePoint       `json:"rollingVolatility"`
	DrawdownCurve     []*DatePoint       `json:"drawdownCurve"`
	ReturnHistogram   []*HistogramBucket `json:"returnHistogram"`
	RiskReturnPoints  []*RiskReturnPoint `json:"riskReturnPoints"`
}

// NewRiskReport computes every risk statistic from the portfolio total
// series, the per-symbol position-value series, and an optional
// benchmark series (nil or empty benchmark leaves every beta nil).
//
// All variance and standard deviation figures are population
// statistics, dividing by N, consistently throughout.
func NewRiskReport(total *dataframe.Series, assets map[string]*dataframe.Series, benchmark *dataframe.Series) *RiskReport {
	report := &RiskReport{
		RollingVolatility: []*DatePoint{},
		DrawdownCurve:     []*DatePoint{},
		ReturnHistogram:   []*HistogramBucket{},
		RiskReturnPoints:  []*RiskReturnPoint{},
	}

	returns := total.Returns()
	if len(returns) == 0 {
		return report
	}

	mean, variance := stat.PopMeanVariance(returns, nil)
	stdDev := math.Sqrt(variance)
	report.StandardDeviation = &stdDev

	if stdDev > 0 {
		sharpe := (mean - annualRiskFree/tradingDays) / stdDev
		report.SharpeRatio = &sharpe
	}

	valueAtRisk := stdDev * varQuantile95
	report.ValueAtRisk = &valueAtRisk

	maxDrawdown, curve := drawdowns(total)
	report.MaxDrawdown = &maxDrawdown
	report.DrawdownCurve = curve

	report.RollingVolatility = rollingVolatility(total, returns)
	report.ReturnHistogram = returnHistogram(returns)
	report.Beta = alignedBeta(total, benchmark)

	report.RiskReturnPoints = riskReturnPoints(total, assets, benchmark, report.Beta)

	return report
}

// drawdowns tracks a running peak over the valuation series and
// returns the maximum fractional drawdown along with the full curve.
// Curve values are in percent for charting.
func drawdowns(total *dataframe.Series) (float64, []*DatePoint) {
	curve := make([]*DatePoint, 0, total.Len())

	maxDrawdown := 0.0
	peak := math.Inf(-1)
	for idx, v := range total.Vals {
		if v > peak {
			peak = v
		}
		dd := (peak - v) / peak
		if dd > maxDrawdown {
			maxDrawdown = dd
		}
		curve = append(curve, &DatePoint{
			Date:  total.Dates[idx],
			Value: dd * 100,
		})
	}

	return maxDrawdown, curve
}

// rollingVolatility computes the population standard deviation over
// each window of 30 consecutive returns. Each point is keyed to the
// date the window ends on, so it reads as trailing volatility as of
// that date. Fewer than 30 returns yields an empty series.
func rollingVolatility(total *dataframe.Series, returns []float64) []*DatePoint {
	points := []*DatePoint{}
	if len(returns) < rollingWindow {
		return points
	}

	for k := rollingWindow - 1; k < len(returns); k++ {
		window := returns[k-rollingWindow+1 : k+1]
		points = append(points, &DatePoint{
			Date:  total.Dates[k+1],
			Value: stat.PopStdDev(window, nil),
		})
	}

	return points
}

var histogramBounds = []float64{-0.20, -0.15, -0.10, -0.05, 0, 0.05, 0.10, 0.15, 0.20}

// returnHistogram partitions returns into fixed 5% buckets from -20%
// to +20%, with the last bucket open-ended. Frequencies are percent of
// total returns rounded to one decimal.
func returnHistogram(returns []float64) []*HistogramBucket {
	counts := make([]int, len(histogramBounds))
	for _, r := range returns {
		for idx := range histogramBounds {
			lower := histogramBounds[idx]
			upper := math.Inf(1)
			if idx+1 < len(histogramBounds) {
				upper = histogramBounds[idx+1]
			}
			if r >= lower && r < upper {
				counts[idx]++
				break
			}
		}
	}

	buckets := make([]*HistogramBucket, 0, len(counts))
	for idx, cnt := range counts {
		label := fmt.Sprintf("%.0f%%+", histogramBounds[idx]*100)
		if idx+1 < len(histogramBounds) {
			label = fmt.Sprintf("%.0f%% to %.0f%%", histogramBounds[idx]*100, histogramBounds[idx+1]*100)
		}
		freq := float64(cnt) / float64(len(returns)) * 100
		buckets = append(buckets, &HistogramBucket{
			RangeLabel:       label,
			FrequencyPercent: math.Round(freq*10) / 10,
		})
	}

	return buckets
}

// alignedBeta computes covariance(asset, benchmark) / variance(benchmark)
// over the dates both series observe. Dates only one side has are
// dropped before returns are taken so both return series cover the same
// range at equal length. Returns nil when no usable benchmark exists;
// beta is never approximated from the asset's own volatility.
func alignedBeta(asset, benchmark *dataframe.Series) *float64 {
	if benchmark == nil || benchmark.Len() == 0 {
		return nil
	}

	common := make([]time.Time, 0, asset.Len())
	for _, dt := range asset.Dates {
		if _, ok := benchmark.Value(dt); ok {
			common = append(common, dt)
		}
	}
	sort.Slice(common, func(i, j int) bool {
		return common[i].Before(common[j])
	})

	if len(common) < 3 {
		return nil
	}

	assetVals := make([]float64, 0, len(common))
	benchVals := make([]float64, 0, len(common))
	for _, dt := range common {
		av, _ := asset.Value(dt)
		bv, _ := benchmark.Value(dt)
		assetVals = append(assetVals, av)
		benchVals = append(benchVals, bv)
	}

	assetSeries := &dataframe.Series{Dates: common, Vals: assetVals}
	benchSeries := &dataframe.Series{Dates: common, Vals: benchVals}

	assetRets := assetSeries.Returns()
	benchRets := benchSeries.Returns()

	// sample covariance over sample variance; the n-1 factors cancel so
	// this equals the population ratio
	variance := stat.Variance(benchRets, nil)
	if variance == 0 {
		return nil
	}

	beta := stat.Covariance(assetRets, benchRets, nil) / variance
	return &beta
}

// riskReturnPoints builds the annualized risk/return scatter: one point
// per asset with at least 2 observations, plus a synthetic point for
// the portfolio itself. Symbols are emitted in sorted order so output
// is deterministic.
func riskReturnPoints(total *dataframe.Series, assets map[string]*dataframe.Series, benchmark *dataframe.Series, portfolioBeta *float64) []*RiskReturnPoint {
	points := []*RiskReturnPoint{}

	symbols := make([]string, 0, len(assets))
	for symbol := range assets {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	for _, symbol := range symbols {
		series := assets[symbol]
		if point := annualizedPoint(symbol, series, alignedBeta(series, benchmark)); point != nil {
			points = append(points, point)
		}
	}

	if point := annualizedPoint(PortfolioName, total, portfolioBeta); point != nil {
		points = append(points, point)
	}

	return points
}

func annualizedPoint(symbol string, series *dataframe.Series, beta *float64) *RiskReturnPoint {
	returns := series.Returns()
	if len(returns) == 0 {
		return nil
	}

	_, firstVal := series.First()
	_, lastVal := series.Last()
	totalReturn := (lastVal - firstVal) / firstVal

	annualizedReturn := math.Pow(1+totalReturn, tradingDays/float64(len(returns))) - 1
	annualizedVolatility := stat.PopStdDev(returns, nil) * math.Sqrt(tradingDays)

	return &RiskReturnPoint{
		Symbol:               symbol,
		AnnualizedReturn:     annualizedReturn,
		AnnualizedVolatility: annualizedVolatility,
		Beta:                 beta,
	}
}
