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
	"errors"
	"time"
)

// ReturnSeries stores an ordered time series of periodic fractional
// returns, e.g. 0.01 = +1%. Vals[ii] is the return over the period
// ending at Dates[ii]. Derived series (cumulative value, drawdown,
// rolling scores) use the same shape; those may contain NaN entries
// during a warm-up period.
type ReturnSeries struct {
	Name  string
	Dates []time.Time
	Vals  []float64
}

var (
	ErrInvalidInput = errors.New("invalid return series")
)
