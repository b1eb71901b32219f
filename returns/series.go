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
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Copy creates a copy of the return series
func (rs *ReturnSeries) Copy() *ReturnSeries {
	rs2 := &ReturnSeries{
		Name:  rs.Name,
		Dates: make([]time.Time, len(rs.Dates)),
		Vals:  make([]float64, len(rs.Vals)),
	}

	copy(rs2.Dates, rs.Dates)
	copy(rs2.Vals, rs.Vals)

	return rs2
}

// Len returns the number of periods in the series
func (rs *ReturnSeries) Len() int {
	return len(rs.Dates)
}

// Start returns the first date of the series
func (rs *ReturnSeries) Start() time.Time {
	if len(rs.Dates) == 0 {
		return time.Time{}
	}

	return rs.Dates[0]
}

// End returns the last date of the series
func (rs *ReturnSeries) End() time.Time {
	if len(rs.Dates) == 0 {
		return time.Time{}
	}

	return rs.Dates[len(rs.Dates)-1]
}

// Table prints an ASCII formatted table to stdout
func (rs *ReturnSeries) Table() string {
	if len(rs.Dates) == 0 {
		return "<NO DATA>" // nothing to do as there is no data available in the series
	}

	colName := rs.Name
	if colName == "" {
		colName = "VALUE"
	}

	// initialize table
	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader([]string{"Date", colName})
	table.SetFooter([]string{"Num Rows", fmt.Sprintf("%d", rs.Len())})
	table.SetBorder(false) // Set Border to false

	for idx, date := range rs.Dates {
		table.Append([]string{date.Format("2006-01-02"), fmt.Sprintf("%.4f", rs.Vals[idx])})
	}

	table.Render()
	return s.String()
}

// Trim the series to the specified date range (inclusive); returns a new
// series and does not modify the receiver
func (rs *ReturnSeries) Trim(begin, end time.Time) *ReturnSeries {
	rs2 := &ReturnSeries{
		Name:  rs.Name,
		Dates: rs.Dates,
		Vals:  rs.Vals,
	}

	// special case 0: requested range is invalid
	if end.Before(begin) {
		rs2.Dates = []time.Time{}
		rs2.Vals = []float64{}
		return rs2
	}

	// special case 1: series is empty
	if rs.Len() == 0 {
		return rs2
	}

	// special case 2: end time is before series start
	if end.Before(rs.Dates[0]) {
		rs2.Dates = []time.Time{}
		rs2.Vals = []float64{}
		return rs2
	}

	// special case 3: start time is after series end
	if begin.After(rs.Dates[len(rs.Dates)-1]) {
		rs2.Dates = []time.Time{}
		rs2.Vals = []float64{}
		return rs2
	}

	// Use binary search to find the index corresponding to the start and end times
	beginIdx := sort.Search(len(rs.Dates), func(i int) bool {
		return rs.Dates[i].After(begin) || rs.Dates[i].Equal(begin)
	})

	endIdx := sort.Search(len(rs.Dates), func(i int) bool {
		return rs.Dates[i].After(end) || rs.Dates[i].Equal(end)
	})

	if endIdx != len(rs.Dates) && rs.Dates[endIdx].Equal(end) {
		endIdx++
	}

	rs2.Dates = rs.Dates[beginIdx:endIdx]
	rs2.Vals = rs.Vals[beginIdx:endIdx]

	return rs2
}
