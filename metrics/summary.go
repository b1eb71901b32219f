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

package metrics

import (
	"time"

	"github.com/montanaflynn/stats"
	"github.com/spg2143/QuantFinance/returns"
)

// Summary bundles the scalar metrics for a return series along with
// descriptive statistics of the raw per-period returns. Ratio fields may
// be NaN when the underlying statistic is degenerate; check with
// IsUndefined before using them.
type Summary struct {
	Periods          int       `json:"periods"`
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	MeanReturn       float64   `json:"meanReturn"`
	MedianReturn     float64   `json:"medianReturn"`
	MinReturn        float64   `json:"minReturn"`
	MaxReturn        float64   `json:"maxReturn"`
	StdDev           float64   `json:"stdDev"`
	CumulativeReturn float64   `json:"cumulativeReturn"`
	MaxDrawdown      float64   `json:"maxDrawdown"`
	SharpeRatio      float64   `json:"sharpeRatio"`
	SortinoRatio     float64   `json:"sortinoRatio"`
	ValueAtRisk95    float64   `json:"valueAtRisk95"`
}

// Summarize computes the full metric bundle for a validated series
func Summarize(rs *returns.ReturnSeries, riskFreeRate float64) (*Summary, error) {
	mean, err := stats.Mean(rs.Vals)
	if err != nil {
		return nil, err
	}

	median, err := stats.Median(rs.Vals)
	if err != nil {
		return nil, err
	}

	minRet, err := stats.Min(rs.Vals)
	if err != nil {
		return nil, err
	}

	maxRet, err := stats.Max(rs.Vals)
	if err != nil {
		return nil, err
	}

	stdev, err := stats.StandardDeviationSample(rs.Vals)
	if err != nil {
		return nil, err
	}

	valueAtRisk, err := ValueAtRisk(rs, 0.95)
	if err != nil {
		return nil, err
	}

	cum := CumulativeReturn(rs)

	return &Summary{
		Periods:          rs.Len(),
		Start:            rs.Start(),
		End:              rs.End(),
		MeanReturn:       mean,
		MedianReturn:     median,
		MinReturn:        minRet,
		MaxReturn:        maxRet,
		StdDev:           stdev,
		CumulativeReturn: cum.Vals[cum.Len()-1],
		MaxDrawdown:      MaxDrawdown(rs),
		SharpeRatio:      SharpeRatio(rs, riskFreeRate),
		SortinoRatio:     SortinoRatio(rs, riskFreeRate),
		ValueAtRisk95:    valueAtRisk,
	}, nil
}
