// Copyright 2021-2023
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
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spg2143/QuantFinance/common"
	"github.com/spg2143/QuantFinance/data"
	"github.com/spg2143/QuantFinance/metrics"
	"github.com/spg2143/QuantFinance/returns"
)

var (
	riskFreeRate    float64
	confidenceLevel float64
	scoreWindow     int
	showDrawdown    bool
	showCumulative  bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().Float64Var(&riskFreeRate, "risk-free-rate", 0, "Per-period risk free rate used by Sharpe and Sortino ratios")
	analyzeCmd.Flags().Float64Var(&confidenceLevel, "confidence-level", 0.95, "Confidence level for Value-at-Risk; must be in (0, 1)")
	analyzeCmd.Flags().IntVar(&scoreWindow, "score-window", 0, "Rolling window for the asset score; 0 disables the score table")
	analyzeCmd.Flags().BoolVar(&showDrawdown, "drawdown", false, "Print the drawdown curve")
	analyzeCmd.Flags().BoolVar(&showCumulative, "cumulative", false, "Print the cumulative return curve")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <returns.csv>",
	Short: "compute performance and risk metrics for a return series",
	Long:  `Read a return series from a CSV file with date and return columns, validate it, and print the metric bundle.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()

		raw, err := data.ReadReturnsFile(args[0])
		if err != nil {
			log.Fatal().Err(err).Str("File", args[0]).Msg("could not read return series")
		}

		series, err := returns.Validate(raw)
		if err != nil {
			log.Fatal().Err(err).Str("File", args[0]).Msg("return series failed validation")
		}

		summary, err := metrics.Summarize(series, riskFreeRate)
		if err != nil {
			log.Fatal().Err(err).Msg("could not summarize return series")
		}

		valueAtRisk, err := metrics.ValueAtRisk(series, confidenceLevel)
		if err != nil {
			log.Fatal().Err(err).Float64("ConfidenceLevel", confidenceLevel).Msg("could not compute value at risk")
		}

		fmt.Println(summaryTable(summary, valueAtRisk))

		if showCumulative {
			fmt.Println(metrics.CumulativeReturn(series).Table())
		}

		if showDrawdown {
			fmt.Println(metrics.Drawdown(series).Table())
		}

		if scoreWindow > 0 {
			fmt.Println(metrics.AssetScore(series, scoreWindow).Table())
		}
	},
}

func summaryTable(summary *metrics.Summary, valueAtRisk float64) string {
	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetBorder(false)

	table.Append([]string{"Periods", fmt.Sprintf("%d", summary.Periods)})
	table.Append([]string{"Start", summary.Start.Format("2006-01-02")})
	table.Append([]string{"End", summary.End.Format("2006-01-02")})
	table.Append([]string{"Mean Return", fmt.Sprintf("%.4f", summary.MeanReturn)})
	table.Append([]string{"Median Return", fmt.Sprintf("%.4f", summary.MedianReturn)})
	table.Append([]string{"Min Return", fmt.Sprintf("%.4f", summary.MinReturn)})
	table.Append([]string{"Max Return", fmt.Sprintf("%.4f", summary.MaxReturn)})
	table.Append([]string{"Std Dev", formatRatio(summary.StdDev)})
	table.Append([]string{"Cumulative Return", fmt.Sprintf("%.4f", summary.CumulativeReturn)})
	table.Append([]string{"Max Drawdown", fmt.Sprintf("%.4f", summary.MaxDrawdown)})
	table.Append([]string{"Sharpe Ratio", formatRatio(summary.SharpeRatio)})
	table.Append([]string{"Sortino Ratio", formatRatio(summary.SortinoRatio)})
	table.Append([]string{fmt.Sprintf("VaR %.0f%%", confidenceLevel*100), fmt.Sprintf("%.4f", valueAtRisk)})

	table.Render()
	return s.String()
}

func formatRatio(x float64) string {
	if metrics.IsUndefined(x) {
		return "undefined"
	}
	return fmt.Sprintf("%.4f", x)
}
