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
	"errors"
	"math"

	"github.com/rs/zerolog/log"
	"github.com/spg2143/QuantFinance/returns"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrNotImplemented = errors.New("not implemented")
)

// AssetScore computes a rolling risk-adjusted score over a trailing
// window: score[ii] = mean(r[ii-window+1..ii]) / stddev(r[ii-window+1..ii]).
// The length of the result equals that of the input with NaNs during the
// warm-up period (the first window-1 entries). Invalid windows result in
// a series of all NaN.
// NOTE: window is in terms of date periods. if the series is sampled
// monthly then the score is monthly.
func AssetScore(rs *returns.ReturnSeries, window int) *returns.ReturnSeries {
	score := rs.Copy()
	score.Name = "SCORE"

	// check that window is a valid period
	if (window > rs.Len()) || (window <= 0) {
		log.Error().Stack().Int("Window", window).Int("NRows", rs.Len()).Msg("window must be: 0 < window <= NRows")
		for idx := range score.Vals {
			score.Vals[idx] = math.NaN()
		}
		return score
	}

	filterBank := make([]float64, window)
	warmup := true

	for rowIdx, val := range rs.Vals {
		// if we have seen at least window rows then we are out of the warmup period
		// NOTE: row is 0 based, window is 1 based; hence the test applied below
		if rowIdx == (window - 1) {
			warmup = false
		}

		filterBank[rowIdx%window] = val

		if warmup {
			score.Vals[rowIdx] = math.NaN()
			continue
		}

		stdev := stat.StdDev(filterBank, nil)
		if stdev == 0 || math.IsNaN(stdev) {
			score.Vals[rowIdx] = math.NaN()
		} else {
			score.Vals[rowIdx] = stat.Mean(filterBank, nil) / stdev
		}
	}

	return score
}

// RelativeAssetScore scores an asset against a benchmark return series.
// The comparative formula is not defined yet.
func RelativeAssetScore(_ *returns.ReturnSeries, _ *returns.ReturnSeries, _ int) (*returns.ReturnSeries, error) {
	return nil, ErrNotImplemented
}

// MomentumSignal is a placeholder for a trend-following entry signal
func MomentumSignal(_ *returns.ReturnSeries) (*returns.ReturnSeries, error) {
	return nil, ErrNotImplemented
}
