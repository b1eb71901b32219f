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

package metrics_test

import (
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spg2143/QuantFinance/common"
	"github.com/spg2143/QuantFinance/metrics"
	"github.com/spg2143/QuantFinance/returns"
)

// monthlySeries builds a validated series with one value per month
// starting January 2021
func monthlySeries(vals ...float64) *returns.ReturnSeries {
	tz := common.GetTimezone()
	rs := &returns.ReturnSeries{
		Name:  "TEST",
		Dates: make([]time.Time, 0, len(vals)),
		Vals:  vals,
	}

	date := time.Date(2021, time.January, 1, 0, 0, 0, 0, tz)
	for range vals {
		rs.Dates = append(rs.Dates, date)
		date = date.AddDate(0, 1, 0)
	}

	return rs
}

var _ = Describe("When computing metrics over a return series", func() {
	var rs *returns.ReturnSeries

	BeforeEach(func() {
		rs = monthlySeries(0.01, 0.02, -0.01, 0.03, 0.00)
	})

	Describe("cumulative return", func() {
		It("compounds each periodic return", func() {
			cum := metrics.CumulativeReturn(rs)
			Expect(cum.Len()).To(Equal(5))
			Expect(cum.Vals[0]).Should(BeNumerically("~", 1.01, 1e-9))
			Expect(cum.Vals[1]).Should(BeNumerically("~", 1.0302, 1e-9))
			Expect(cum.Vals[2]).Should(BeNumerically("~", 1.019898, 1e-9))
			Expect(cum.Vals[3]).Should(BeNumerically("~", 1.05049494, 1e-9))
			Expect(cum.Vals[4]).Should(BeNumerically("~", 1.05049494, 1e-9))
		})

		It("keeps the date index", func() {
			cum := metrics.CumulativeReturn(rs)
			Expect(cum.Dates).To(Equal(rs.Dates))
		})

		It("does not modify the input series", func() {
			_ = metrics.CumulativeReturn(rs)
			Expect(rs.Vals).To(Equal([]float64{0.01, 0.02, -0.01, 0.03, 0.00}))
		})

		It("equals 1 + r for a single period", func() {
			cum := metrics.CumulativeReturn(monthlySeries(0.05))
			Expect(cum.Vals[0]).Should(BeNumerically("~", 1.05, 1e-9))
		})
	})

	Describe("drawdown", func() {
		It("is never positive", func() {
			dd := metrics.Drawdown(rs)
			for _, val := range dd.Vals {
				Expect(val).Should(BeNumerically("<=", 0))
			}
		})

		It("is 0 at every new running maximum including index 0", func() {
			dd := metrics.Drawdown(rs)
			Expect(dd.Vals[0]).To(Equal(0.0))
			Expect(dd.Vals[1]).To(Equal(0.0))
			Expect(dd.Vals[3]).To(Equal(0.0))
		})

		It("measures the decline from the running peak", func() {
			dd := metrics.Drawdown(rs)
			// (1.019898 - 1.0302) / 1.0302
			Expect(dd.Vals[2]).Should(BeNumerically("~", -0.01, 1e-9))
			Expect(dd.Vals[4]).To(Equal(0.0))
		})

		It("is 0 everywhere for a monotonically rising series", func() {
			dd := metrics.Drawdown(monthlySeries(0.01, 0.02, 0.03))
			for _, val := range dd.Vals {
				Expect(val).To(Equal(0.0))
			}
		})
	})

	Describe("max drawdown", func() {
		It("equals the minimum of the drawdown curve", func() {
			dd := metrics.Drawdown(rs)
			minDD := dd.Vals[0]
			for _, val := range dd.Vals {
				minDD = math.Min(minDD, val)
			}
			Expect(metrics.MaxDrawdown(rs)).To(Equal(minDD))
		})

		It("is never positive", func() {
			Expect(metrics.MaxDrawdown(rs)).Should(BeNumerically("<=", 0))
		})

		It("is 0 for a monotonically rising series", func() {
			Expect(metrics.MaxDrawdown(monthlySeries(0.01, 0.02, 0.03))).To(Equal(0.0))
		})
	})

	Describe("sharpe ratio", func() {
		It("divides the mean excess return by the standard deviation", func() {
			// mean = 0.01; sample std = 0.015811388300841896
			Expect(metrics.SharpeRatio(rs, 0)).Should(BeNumerically("~", 0.6324555320336759, 1e-9))
		})

		It("subtracts the risk free rate", func() {
			Expect(metrics.SharpeRatio(rs, 0.01)).Should(BeNumerically("~", 0.0, 1e-9))
		})

		It("is undefined for a zero-variance series", func() {
			sharpe := metrics.SharpeRatio(monthlySeries(0.01, 0.01, 0.01), 0)
			Expect(math.IsNaN(sharpe)).Should(BeTrue())
			Expect(metrics.IsUndefined(sharpe)).Should(BeTrue())
		})

		It("is undefined for a single-period series", func() {
			Expect(math.IsNaN(metrics.SharpeRatio(monthlySeries(0.01), 0))).Should(BeTrue())
		})
	})

	Describe("sortino ratio", func() {
		It("divides the mean excess return by the downside deviation", func() {
			// mean = 0.006; downside sample std = 0.007071067811865475
			sortino := metrics.SortinoRatio(monthlySeries(0.01, -0.02, 0.03, -0.01, 0.02), 0)
			Expect(sortino).Should(BeNumerically("~", 0.8485281374238571, 1e-9))
		})

		It("returns NaN when no values are negative", func() {
			sortino := metrics.SortinoRatio(monthlySeries(0.01, 0.02, 0.03), 0)
			Expect(math.IsNaN(sortino)).Should(BeTrue())
			Expect(metrics.IsUndefined(sortino)).Should(BeTrue())
		})

		It("returns NaN when the downside sample has a single value", func() {
			// sample standard deviation of one observation is undefined
			Expect(math.IsNaN(metrics.SortinoRatio(rs, 0))).Should(BeTrue())
		})
	})

	Describe("value at risk", func() {
		It("interpolates the percentile of the return distribution", func() {
			// sorted returns: -0.01, 0.00, 0.01, 0.02, 0.03; 5th percentile
			valueAtRisk, err := metrics.ValueAtRisk(rs, 0.95)
			Expect(err).To(BeNil())
			Expect(valueAtRisk).Should(BeNumerically("~", -0.008, 1e-9))
		})

		It("returns the median at a confidence level of 0.5", func() {
			valueAtRisk, err := metrics.ValueAtRisk(rs, 0.5)
			Expect(err).To(BeNil())
			Expect(valueAtRisk).Should(BeNumerically("~", 0.01, 1e-9))
		})

		It("lands on an exact rank without interpolation", func() {
			valueAtRisk, err := metrics.ValueAtRisk(rs, 0.75)
			Expect(err).To(BeNil())
			Expect(valueAtRisk).Should(BeNumerically("~", 0.0, 1e-9))
		})

		It("fails when the confidence level is not in (0, 1)", func() {
			for _, confidenceLevel := range []float64{0.0, 1.0, -0.5, 1.5} {
				_, err := metrics.ValueAtRisk(rs, confidenceLevel)
				Expect(err).To(HaveOccurred())
				Expect(errors.Is(err, returns.ErrInvalidInput)).To(BeTrue())
			}
		})
	})

	Describe("summary", func() {
		It("bundles the scalar metrics", func() {
			summary, err := metrics.Summarize(rs, 0)
			Expect(err).To(BeNil())
			Expect(summary.Periods).To(Equal(5))
			Expect(summary.MeanReturn).Should(BeNumerically("~", 0.01, 1e-9))
			Expect(summary.MedianReturn).Should(BeNumerically("~", 0.01, 1e-9))
			Expect(summary.MinReturn).To(Equal(-0.01))
			Expect(summary.MaxReturn).To(Equal(0.03))
			Expect(summary.CumulativeReturn).Should(BeNumerically("~", 1.05049494, 1e-9))
			Expect(summary.SharpeRatio).Should(BeNumerically("~", 0.6324555320336759, 1e-9))
			Expect(summary.ValueAtRisk95).Should(BeNumerically("~", -0.008, 1e-9))
			Expect(math.IsNaN(summary.SortinoRatio)).Should(BeTrue())
		})

		It("reports the covered date range", func() {
			summary, err := metrics.Summarize(rs, 0)
			Expect(err).To(BeNil())
			Expect(summary.Start).To(Equal(rs.Start()))
			Expect(summary.End).To(Equal(rs.End()))
		})
	})
})
