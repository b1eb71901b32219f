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

package returns

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/spg2143/QuantFinance/common"
)

// byDate sorts a return series by date ascending, keeping each value
// paired with its date
type byDate ReturnSeries

func (rs *byDate) Len() int { return len(rs.Dates) }
func (rs *byDate) Swap(i, j int) {
	rs.Dates[i], rs.Dates[j] = rs.Dates[j], rs.Dates[i]
	rs.Vals[i], rs.Vals[j] = rs.Vals[j], rs.Vals[i]
}
func (rs *byDate) Less(i, j int) bool { return rs.Dates[i].Before(rs.Dates[j]) }

// Validate checks a raw return series before any metric is computed.
// Missing (NaN) values and duplicate dates fail with ErrInvalidInput.
// Out-of-order dates are a recoverable condition: the returned series is
// sorted ascending and a notice is logged. On every success path a new
// series is returned with dates converted to the reference market
// timezone; the caller's series is never modified.
func Validate(rs *ReturnSeries) (*ReturnSeries, error) {
	if rs == nil || rs.Len() == 0 {
		return nil, fmt.Errorf("%w: series is empty", ErrInvalidInput)
	}

	if len(rs.Dates) != len(rs.Vals) {
		return nil, fmt.Errorf("%w: series has %d dates but %d values", ErrInvalidInput, len(rs.Dates), len(rs.Vals))
	}

	// Check for missing values
	for _, val := range rs.Vals {
		if math.IsNaN(val) {
			return nil, fmt.Errorf("%w: series contains missing values", ErrInvalidInput)
		}
	}

	// Check for duplicate dates; dates representing the same instant in
	// different locations count as duplicates
	seen := make(map[int64]bool, len(rs.Dates))
	for _, date := range rs.Dates {
		if seen[date.UnixNano()] {
			return nil, fmt.Errorf("%w: series contains duplicate date %s", ErrInvalidInput, date.Format("2006-01-02"))
		}
		seen[date.UnixNano()] = true
	}

	rs2 := rs.Copy()

	// convert dates to the reference timezone
	tz := common.GetTimezone()
	for idx, date := range rs2.Dates {
		rs2.Dates[idx] = date.In(tz)
	}

	if !sort.IsSorted((*byDate)(rs2)) {
		log.Info().Str("Name", rs2.Name).Msg("return series dates are not sorted; sorting ascending")
		sort.Sort((*byDate)(rs2))
	}

	return rs2, nil
}
