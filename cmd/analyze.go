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

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/paperfolio/pf-api/analytics"
	"github.com/paperfolio/pf-api/common"
	"github.com/paperfolio/pf-api/data"
	"github.com/paperfolio/pf-api/database"
	"github.com/paperfolio/pf-api/portfolio"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var analyzeRange string

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeRange, "range", "1y", "Lookback range: 1m, 3m, 6m, 1y, 3y, 5y, all")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <portfolioID>",
	Short: "Print a risk report for a portfolio",
	Long:  `Compute and print the risk statistics for the given portfolio over the requested lookback range.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		common.SetupCache()

		portfolioID, err := uuid.Parse(args[0])
		if err != nil {
			log.Fatal().Err(err).Str("Arg", args[0]).Msg("not a valid portfolio id")
		}

		ctx := context.Background()
		if err := database.Connect(ctx); err != nil {
			log.Fatal().Err(err).Msg("could not connect to database")
		}

		store := portfolio.NewPgStore()
		provider := data.NewYahoo(data.NewRotatingCredentials(userAgents()...))
		manager := data.NewManager(provider, data.NewFxRate())
		service := analytics.NewService(store, manager)

		report, err := service.RiskReport(ctx, portfolioID, analytics.ParseRange(analyzeRange))
		if err != nil {
			log.Fatal().Err(err).Msg("could not compute risk report")
		}

		// the API returns null metrics for thin histories; the terminal
		// report is useless without them so surface the error instead
		if report.StandardDeviation == nil {
			log.Fatal().Err(analytics.ErrInsufficientData).Str("Range", analyzeRange).Msg("cannot print risk report")
		}

		printRiskReport(report)
	},
}

func printRiskReport(report *analytics.RiskReport) {
	fmtMetric := func(v *float64) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprintf("%.4f", *v)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetBorder(false)
	table.Append([]string{"Std Deviation (daily)", fmtMetric(report.StandardDeviation)})
	table.Append([]string{"Sharpe Ratio", fmtMetric(report.SharpeRatio)})
	table.Append([]string{"Value at Risk (95%)", fmtMetric(report.ValueAtRisk)})
	table.Append([]string{"Max Drawdown", fmtMetric(report.MaxDrawdown)})
	table.Append([]string{fmt.Sprintf("Beta vs %s", viper.GetString("analytics.benchmark_symbol")), fmtMetric(report.Beta)})
	table.Render()

	if len(report.RiskReturnPoints) > 0 {
		fmt.Println()
		scatter := tablewriter.NewWriter(os.Stdout)
		scatter.SetHeader([]string{"Symbol", "Ann. Return", "Ann. Volatility", "Beta"})
		scatter.SetBorder(false)
		for _, point := range report.RiskReturnPoints {
			scatter.Append([]string{
				point.Symbol,
				fmt.Sprintf("%.2f%%", point.AnnualizedReturn*100),
				fmt.Sprintf("%.2f%%", point.AnnualizedVolatility*100),
				fmtMetric(point.Beta),
			})
		}
		scatter.Render()
	}
}
