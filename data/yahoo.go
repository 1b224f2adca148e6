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
	"net/url"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/paperfolio/pf-api/observability/opentelemetry"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var yahooAPI = "https://query2.finance.yahoo.com"

type yahoo struct {
	client      *http.Client
	credentials CredentialProvider
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency string `json:"currency"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// NewYahoo creates a new Yahoo Finance data provider. credentials
// supplies the User-Agent value for each request; yahoo throttles
// repeated requests with the same agent string so a rotating pool is
// injected here rather than managed by the provider.
func NewYahoo(credentials CredentialProvider) *yahoo {
	return &yahoo{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		credentials: credentials,
	}
}

func (y *yahoo) Name() string {
	return "yahoo"
}

// FetchHistoricalBars loads daily bars for symbol over the requested
// period. Bars with no close price (market holidays in the symbol's
// home market) are skipped, not zero-filled.
func (y *yahoo) FetchHistoricalBars(ctx context.Context, symbol string, begin, end time.Time) ([]*PriceBar, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "yahoo.FetchHistoricalBars")
	defer span.End()

	subLog := log.With().Str("Symbol", symbol).Time("Begin", begin).Time("End", end).Logger()

	if end.Before(begin) {
		return nil, ErrInvalidTimeRange
	}

	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		yahooAPI, url.PathEscape(symbol), begin.Unix(), end.Unix())

	span.SetAttributes(
		attribute.KeyValue{
			Key:   "Symbol",
			Value: attribute.StringValue(symbol),
		},
		attribute.KeyValue{
			Key:   "Url",
			Value: attribute.StringValue(reqURL),
		},
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", y.credentials.Next())
	req.Header.Set("Accept", "application/json")

	resp, err := y.client.Do(req)
	if err != nil {
		span.RecordError(err)
		msg := "yahoo http request failed"
		span.SetStatus(codes.Error, msg)
		subLog.Warn().Err(err).Msg(msg)
		return nil, fmt.Errorf("%w: %s", ErrFetchFailed, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		msg := "could not read yahoo response body"
		span.SetStatus(codes.Error, msg)
		subLog.Warn().Err(err).Msg(msg)
		return nil, fmt.Errorf("%w: %s", ErrFetchFailed, err.Error())
	}

	if resp.StatusCode >= 400 {
		span.SetAttributes(attribute.KeyValue{
			Key:   "StatusCode",
			Value: attribute.IntValue(resp.StatusCode),
		})
		msg := "yahoo returned invalid response code"
		span.SetStatus(codes.Error, msg)
		subLog.Warn().Int("HTTPResponseStatusCode", resp.StatusCode).Msg(msg)
		return nil, fmt.Errorf("%w: invalid status code %d", ErrFetchFailed, resp.StatusCode)
	}

	chart := yahooChartResponse{}
	if err := json.Unmarshal(body, &chart); err != nil {
		span.RecordError(err)
		msg := "could not unmarshal yahoo json"
		span.SetStatus(codes.Error, msg)
		subLog.Warn().Err(err).Bytes("Body", body).Msg(msg)
		return nil, fmt.Errorf("%w: %s", ErrFetchFailed, err.Error())
	}

	if chart.Chart.Error != nil {
		msg := "yahoo api returned an error"
		span.SetStatus(codes.Error, msg)
		subLog.Warn().Str("Code", chart.Chart.Error.Code).Str("Description", chart.Chart.Error.Description).Msg(msg)
		return nil, fmt.Errorf("%w: %s", ErrFetchFailed, chart.Chart.Error.Description)
	}

	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, ErrNoData
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, ErrNoData
	}

	currency := result.Meta.Currency
	if currency == "" {
		currency = "USD"
	}

	quote := result.Indicators.Quote[0]
	var adjClose []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adjClose = result.Indicators.AdjClose[0].AdjClose
	}

	bars := make([]*PriceBar, 0, len(result.Timestamp))
	for ii, ts := range result.Timestamp {
		if ii >= len(quote.Close) || quote.Close[ii] == nil {
			continue // no close that day
		}

		bar := &PriceBar{
			Date:     time.Unix(ts, 0).UTC(),
			Close:    *quote.Close[ii],
			AdjClose: *quote.Close[ii],
			Currency: currency,
		}
		if ii < len(adjClose) && adjClose[ii] != nil {
			bar.AdjClose = *adjClose[ii]
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Date.Before(bars[j].Date)
	})

	return bars, nil
}
