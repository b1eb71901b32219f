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
	"fmt"
	"math"
	"sort"

	"github.com/spg2143/QuantFinance/returns"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Metric Functions
//
// All functions operate on a series that has already passed
// returns.Validate. They are pure: no I/O and the input series is never
// modified. Degenerate statistics (zero variance, empty downside
// sample) yield math.NaN() rather than an error; use IsUndefined to
// detect them before acting on a result.

// IsUndefined reports whether a scalar metric is degenerate, i.e. the
// statistic it divides by vanished or was computed over an empty sample
func IsUndefined(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}

// CumulativeReturn computes the running growth of an investment
// compounded by each periodic return: C[ii] = Π (1 + r[kk]) for
// kk = 0..ii. C[0] = 1 + r[0].
func CumulativeReturn(rs *returns.ReturnSeries) *returns.ReturnSeries {
	cum := rs.Copy()
	cum.Name = "CUMULATIVE"

	running := 1.0
	for idx, ret := range rs.Vals {
		running *= 1.0 + ret
		cum.Vals[idx] = running
	}

	return cum
}

// Drawdown computes the decline from the running peak of cumulative
// value at each period: (C - max(C[0..ii])) / max(C[0..ii]). Every
// entry is <= 0; a new running maximum yields 0.
func Drawdown(rs *returns.ReturnSeries) *returns.ReturnSeries {
	dd := CumulativeReturn(rs)
	dd.Name = "DRAWDOWN"

	peak := math.Inf(-1)
	for idx, cum := range dd.Vals {
		peak = math.Max(peak, cum)
		dd.Vals[idx] = (cum - peak) / peak
	}

	return dd
}

// MaxDrawdown returns the deepest drawdown over the series as a
// negative fraction; 0 for a series whose cumulative value never
// declines
func MaxDrawdown(rs *returns.ReturnSeries) float64 {
	dd := Drawdown(rs)
	if dd.Len() == 0 {
		return math.NaN()
	}

	return floats.Min(dd.Vals)
}

// SharpeRatio is the mean per-period return earned in excess of the
// risk-free rate per unit of volatility. Returns are not annualized.
// A zero-variance series yields NaN.
//
// Sharpe = (mean(r) - riskFreeRate) / stddev(r)
func SharpeRatio(rs *returns.ReturnSeries, riskFreeRate float64) float64 {
	stdev := stat.StdDev(rs.Vals, nil)
	if stdev == 0 || math.IsNaN(stdev) {
		return math.NaN()
	}

	return (stat.Mean(rs.Vals, nil) - riskFreeRate) / stdev
}

// SortinoRatio a variation of the Sharpe ratio that differentiates
// harmful volatility from total overall volatility by using the
// standard deviation of negative returns only. If the series has no
// negative returns the downside sample is empty and the result is NaN.
func SortinoRatio(rs *returns.ReturnSeries, riskFreeRate float64) float64 {
	downside := make([]float64, 0, len(rs.Vals))
	for _, ret := range rs.Vals {
		if ret < 0 {
			downside = append(downside, ret)
		}
	}

	if len(downside) == 0 {
		return math.NaN()
	}

	stdev := stat.StdDev(downside, nil)
	if stdev == 0 || math.IsNaN(stdev) {
		return math.NaN()
	}

	return (stat.Mean(rs.Vals, nil) - riskFreeRate) / stdev
}

// ValueAtRisk estimates the loss threshold not expected to be exceeded
// with probability confidenceLevel, taken as the 100×(1-confidenceLevel)
// percentile of the return distribution. confidenceLevel must lie in
// (0, 1); anything else fails with ErrInvalidInput.
func ValueAtRisk(rs *returns.ReturnSeries, confidenceLevel float64) (float64, error) {
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		return math.NaN(), fmt.Errorf("%w: confidence level must be in (0, 1), got %f", returns.ErrInvalidInput, confidenceLevel)
	}

	vals := make([]float64, len(rs.Vals))
	copy(vals, rs.Vals)
	sort.Float64s(vals)

	return percentile(vals, 100*(1-confidenceLevel)), nil
}

// percentile computes the pct-th percentile of the sorted sample using
// linear interpolation between closest ranks
func percentile(sorted []float64, pct float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}

	rank := pct / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}

	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}
