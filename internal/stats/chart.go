// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stats

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
)

// chartTopN is how many categories the trend chart shows.
const chartTopN = 10

// RenderChart draws the category distribution as a PNG bar chart for
// embedding in the report email. An empty sample returns nil without error;
// the report simply omits the chart.
func RenderChart(counts Counts) ([]byte, error) {
	entries := counts.Top(chartTopN)
	if len(entries) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, len(entries))
	for i, e := range entries {
		bars[i] = chart.Value{
			Value: float64(e.Count),
			Label: e.Name,
		}
	}

	bc := chart.BarChart{
		Title:    "arXiv Global Trend: Top Areas Today (Sampled)",
		Width:    1000,
		Height:   512,
		BarWidth: 70,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		XAxis: chart.Style{
			TextRotationDegrees: 30,
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering trend chart: %w", err)
	}
	return buf.Bytes(), nil
}
