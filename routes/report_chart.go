/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/humaidq/labdesk/db"
	"github.com/humaidq/labdesk/labgen"
)

// rangePosition places v on its reference range: 0 is the low bound, 100 the
// high bound. Collapsed ranges have no meaningful position.
func rangePosition(v, low, high float64) (float64, bool) {
	if high == low {
		return 0, false
	}

	return math.Round((v-low)/(high-low)*1000) / 10, true
}

// renderReportChart draws every sampled value relative to its reference
// range, so fields with different units share one axis. It returns an empty
// string when the report has nothing to plot.
func renderReportChart(report *db.LabReport, catalog *labgen.Catalog) (string, error) {
	def, ok := catalog.Lookup(report.TestName)
	if !ok {
		return "", nil
	}

	bounds := make(map[string][2]float64, len(def.Fields))
	for _, f := range def.Fields {
		if low, high, ok := f.Bounds(); ok {
			bounds[f.Name] = [2]float64{low, high}
		}
	}

	xAxis := make([]string, 0, len(report.Results.Fields))
	yData := make([]opts.BarData, 0, len(report.Results.Fields))

	for _, field := range report.Results.Fields {
		v, numeric := field.Value.Float64()
		b, known := bounds[field.Name]

		if !numeric || !known {
			continue
		}

		pos, ok := rangePosition(v, b[0], b[1])
		if !ok {
			continue
		}

		xAxis = append(xAxis, field.Name)
		yData = append(yData, opts.BarData{Name: field.Name, Value: pos})
	}

	if len(yData) == 0 {
		return "", nil
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    report.DisplayName,
			Subtitle: "Position within reference range (%)",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "%",
		}),
	)

	bar.SetXAxis(xAxis).
		AddSeries("Position", yData).
		SetSeriesOptions(func(s *charts.SingleSeries) {
			s.MarkLines = &opts.MarkLines{
				Data: []interface{}{
					opts.MarkLineNameYAxisItem{Name: "Ref Low", YAxis: 0},
					opts.MarkLineNameYAxisItem{Name: "Ref High", YAxis: 100},
				},
				MarkLineStyle: opts.MarkLineStyle{
					Symbol: []string{"none", "none"},
					LineStyle: &opts.LineStyle{
						Color: "rgba(128, 128, 128, 0.6)",
						Type:  "dashed",
						Width: 1.5,
					},
				},
			}
		})

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return "", err
	}

	return buf.String(), nil
}
