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

package handler

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/spg2143/QuantFinance/common"
	"github.com/spg2143/QuantFinance/metrics"
	"github.com/spg2143/QuantFinance/returns"
)

// SeriesPayload is the wire form of a raw return series. Values are
// pointers so that JSON null marks a missing observation; missing
// observations fail validation rather than being dropped.
type SeriesPayload struct {
	Name   string     `json:"name"`
	Dates  []string   `json:"dates" example:"2021-01-29"`
	Values []*float64 `json:"values"`
}

// SeriesResponse is a derived series, e.g. a drawdown curve or a rolling
// score. Undefined entries (warm-up periods) are null.
type SeriesResponse struct {
	Name   string     `json:"name"`
	Dates  []string   `json:"dates"`
	Values []*float64 `json:"values"`
}

// SummaryResponse mirrors metrics.Summary with degenerate ratios mapped
// to null so the payload is valid JSON.
type SummaryResponse struct {
	Periods          int      `json:"periods"`
	Start            string   `json:"start" example:"2021-01-04"`
	End              string   `json:"end" example:"2021-12-31"`
	MeanReturn       float64  `json:"meanReturn"`
	MedianReturn     float64  `json:"medianReturn"`
	MinReturn        float64  `json:"minReturn"`
	MaxReturn        float64  `json:"maxReturn"`
	StdDev           *float64 `json:"stdDev"`
	CumulativeReturn float64  `json:"cumulativeReturn"`
	MaxDrawdown      float64  `json:"maxDrawdown"`
	SharpeRatio      *float64 `json:"sharpeRatio"`
	SortinoRatio     *float64 `json:"sortinoRatio"`
	ValueAtRisk95    float64  `json:"valueAtRisk95"`
}

// Summary validates the posted series and responds with the full scalar
// metric bundle. Invalid series get a 422; each request is a single
// validator+engine round trip with no server-side state.
func Summary(c *fiber.Ctx) error {
	series, err := parseSeries(c)
	if err != nil {
		return err
	}

	riskFreeRate, err := queryFloat(c, "riskFreeRate", 0)
	if err != nil {
		return fiber.ErrBadRequest
	}

	summary, err := metrics.Summarize(series, riskFreeRate)
	if err != nil {
		log.Error().Err(err).Msg("could not summarize return series")
		return fiber.ErrInternalServerError
	}

	return c.JSON(&SummaryResponse{
		Periods:          summary.Periods,
		Start:            summary.Start.Format("2006-01-02"),
		End:              summary.End.Format("2006-01-02"),
		MeanReturn:       summary.MeanReturn,
		MedianReturn:     summary.MedianReturn,
		MinReturn:        summary.MinReturn,
		MaxReturn:        summary.MaxReturn,
		StdDev:           finiteOrNull(summary.StdDev),
		CumulativeReturn: summary.CumulativeReturn,
		MaxDrawdown:      summary.MaxDrawdown,
		SharpeRatio:      finiteOrNull(summary.SharpeRatio),
		SortinoRatio:     finiteOrNull(summary.SortinoRatio),
		ValueAtRisk95:    summary.ValueAtRisk95,
	})
}

// CumulativeReturn responds with the cumulative growth curve of the
// posted series
func CumulativeReturn(c *fiber.Ctx) error {
	series, err := parseSeries(c)
	if err != nil {
		return err
	}

	return c.JSON(seriesResponse(metrics.CumulativeReturn(series)))
}

// Drawdown responds with the drawdown curve of the posted series
func Drawdown(c *fiber.Ctx) error {
	series, err := parseSeries(c)
	if err != nil {
		return err
	}

	return c.JSON(seriesResponse(metrics.Drawdown(series)))
}

// AssetScore responds with the rolling risk-adjusted score of the posted
// series; window defaults to 252 periods
func AssetScore(c *fiber.Ctx) error {
	series, err := parseSeries(c)
	if err != nil {
		return err
	}

	window, err := strconv.Atoi(c.Query("window", "252"))
	if err != nil {
		log.Warn().Err(err).Str("Window", c.Query("window")).Msg("asset score called with invalid window")
		return fiber.ErrBadRequest
	}

	return c.JSON(seriesResponse(metrics.AssetScore(series, window)))
}

// ValueAtRisk responds with the VaR of the posted series at the
// requested confidence level (default 0.95)
func ValueAtRisk(c *fiber.Ctx) error {
	series, err := parseSeries(c)
	if err != nil {
		return err
	}

	confidenceLevel, err := queryFloat(c, "confidenceLevel", 0.95)
	if err != nil {
		return fiber.ErrBadRequest
	}

	valueAtRisk, err := metrics.ValueAtRisk(series, confidenceLevel)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	return c.JSON(fiber.Map{
		"confidenceLevel": confidenceLevel,
		"valueAtRisk":     valueAtRisk,
	})
}

// parseSeries decodes and validates the request body; errors have
// already been converted to fiber errors when this returns
func parseSeries(c *fiber.Ctx) (*returns.ReturnSeries, error) {
	var payload SeriesPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Warn().Err(err).Str("Uri", c.OriginalURL()).Msg("could not parse request body")
		return nil, fiber.ErrBadRequest
	}

	if len(payload.Dates) != len(payload.Values) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "dates and values must be the same length")
	}

	tz := common.GetTimezone()
	raw := &returns.ReturnSeries{
		Name:  payload.Name,
		Dates: make([]time.Time, 0, len(payload.Dates)),
		Vals:  make([]float64, 0, len(payload.Values)),
	}

	for idx, dateStr := range payload.Dates {
		date, err := time.ParseInLocation("2006-01-02", dateStr, tz)
		if err != nil {
			log.Warn().Err(err).Str("Date", dateStr).Msg("could not parse date in request body")
			return nil, fiber.NewError(fiber.StatusBadRequest, "dates must use the format 2006-01-02")
		}

		val := math.NaN()
		if payload.Values[idx] != nil {
			val = *payload.Values[idx]
		}

		raw.Dates = append(raw.Dates, date)
		raw.Vals = append(raw.Vals, val)
	}

	series, err := returns.Validate(raw)
	if err != nil {
		if errors.Is(err, returns.ErrInvalidInput) {
			return nil, fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		log.Error().Err(err).Msg("could not validate return series")
		return nil, fiber.ErrInternalServerError
	}

	return series, nil
}

func seriesResponse(rs *returns.ReturnSeries) *SeriesResponse {
	resp := &SeriesResponse{
		Name:   rs.Name,
		Dates:  make([]string, 0, rs.Len()),
		Values: make([]*float64, 0, rs.Len()),
	}

	for idx, date := range rs.Dates {
		resp.Dates = append(resp.Dates, date.Format("2006-01-02"))
		resp.Values = append(resp.Values, finiteOrNull(rs.Vals[idx]))
	}

	return resp
}

func finiteOrNull(x float64) *float64 {
	if metrics.IsUndefined(x) {
		return nil
	}
	return &x
}

func queryFloat(c *fiber.Ctx, key string, def float64) (float64, error) {
	val, err := strconv.ParseFloat(c.Query(key, strconv.FormatFloat(def, 'f', -1, 64)), 64)
	if err != nil {
		log.Warn().Err(err).Str("Param", key).Str("Value", c.Query(key)).Str("Uri", c.OriginalURL()).Msg("invalid query parameter")
		return 0, err
	}
	return val, nil
}
