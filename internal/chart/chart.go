// Package chart renders the time-of-day sales chart for a report.
package chart

import (
	"fmt"
	"io"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/tapsheet-dev/tapsheet/internal/model"
)

// Render draws one bar per half-hour bucket to w as PNG. Rendering with no
// buckets is an error; callers skip the chart instead.
func Render(w io.Writer, buckets []model.TimeBucket, currency string) error {
	if len(buckets) == 0 {
		return fmt.Errorf("no buckets to chart")
	}

	bars := make([]chart.Value, 0, len(buckets))
	for _, b := range buckets {
		bars = append(bars, chart.Value{
			Label: b.Start.Format("15:04"),
			Value: b.Total.InexactFloat64(),
		})
	}

	graph := chart.BarChart{
		Title: "Sales by half hour",
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:    800,
		Height:   400,
		BarWidth: 40,
		Bars:     bars,
	}
	graph.YAxis.ValueFormatter = func(v interface{}) string {
		if vf, isFloat := v.(float64); isFloat {
			return fmt.Sprintf("%.2f %s", vf, currency)
		}
		return ""
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

// RenderFile draws the bucket chart to a PNG file. A report with no buckets
// produces no file and no error.
func RenderFile(path string, buckets []model.TimeBucket, currency string) error {
	if len(buckets) == 0 {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}

	if err := Render(f, buckets, currency); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
