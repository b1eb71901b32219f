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

package data

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spg2143/QuantFinance/common"
	"github.com/spg2143/QuantFinance/returns"
)

// returnRecord is one row of a return series CSV. The return column is
// read as a string so that blank cells survive parsing; they become NaN
// and are rejected by validation rather than silently dropped.
type returnRecord struct {
	Date   string `csv:"date"`
	Return string `csv:"return"`
}

// ReadReturns reads a raw return series from CSV data with `date` and
// `return` columns. Dates use the 2006-01-02 format and are interpreted
// in the reference market timezone. The result is unvalidated; callers
// must pass it through returns.Validate before computing metrics.
func ReadReturns(r io.Reader, name string) (*returns.ReturnSeries, error) {
	records := []*returnRecord{}
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("could not parse return series csv: %w", err)
	}

	tz := common.GetTimezone()
	rs := &returns.ReturnSeries{
		Name:  name,
		Dates: make([]time.Time, 0, len(records)),
		Vals:  make([]float64, 0, len(records)),
	}

	for _, record := range records {
		date, err := time.ParseInLocation("2006-01-02", record.Date, tz)
		if err != nil {
			return nil, fmt.Errorf("could not parse date %q: %w", record.Date, err)
		}

		val := math.NaN()
		if trimmed := strings.TrimSpace(record.Return); trimmed != "" {
			val, err = strconv.ParseFloat(trimmed, 64)
			if err != nil {
				return nil, fmt.Errorf("could not parse return %q: %w", record.Return, err)
			}
		}

		rs.Dates = append(rs.Dates, date)
		rs.Vals = append(rs.Vals, val)
	}

	return rs, nil
}

// ReadReturnsFile reads a raw return series from the CSV file at path.
// The series is named after the file.
func ReadReturnsFile(path string) (*returns.ReturnSeries, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open return series file: %w", err)
	}
	defer fh.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ReadReturns(fh, strings.ToUpper(name))
}
