package export

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/mmynk/pocketbook/internal/stats"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("no data to chart")

const (
	chartWidth  = 800
	chartHeight = 500
)

// WriteBreakdownChart renders a breakdown as a pie chart PNG, one slice per
// item in the item's colour.
func WriteBreakdownChart(w io.Writer, view stats.BreakdownView) error {
	if len(view.Items) == 0 {
		return ErrNoData
	}

	values := make([]chart.Value, 0, len(view.Items))
	for _, item := range view.Items {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %s%%", item.Name, item.Percent.StringFixed(1)),
			Value: item.Total.InexactFloat64(),
			Style: chart.Style{
				FillColor:   hexColor(item.Color),
				StrokeColor: chart.ColorWhite,
				FontSize:    11,
			},
		})
	}

	pie := chart.PieChart{
		Title:  "Total " + view.Total.StringFixed(2),
		Width:  chartWidth,
		Height: chartHeight,
		Values: values,
		Background: chart.Style{
			Padding:   chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
			FillColor: chart.ColorWhite,
		},
	}
	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render breakdown chart: %w", err)
	}
	return nil
}

// WriteBarChart renders monthly rows as a stacked bar chart PNG, oldest month
// on the left. Months without spending are left out.
func WriteBarChart(w io.Writer, rows []stats.BarRow) error {
	var bars []chart.StackedBar
	for _, row := range slices.Backward(rows) {
		if len(row.Segments) == 0 {
			continue
		}
		values := make([]chart.Value, 0, len(row.Segments))
		for _, seg := range row.Segments {
			values = append(values, chart.Value{
				Label: seg.Name,
				Value: seg.Total.InexactFloat64(),
				Style: chart.Style{
					FillColor:   hexColor(seg.Color),
					StrokeColor: hexColor(seg.Color),
				},
			})
		}
		bars = append(bars, chart.StackedBar{
			Name:   row.Month.ShortLabel(),
			Values: values,
		})
	}
	if len(bars) == 0 {
		return ErrNoData
	}

	graph := chart.StackedBarChart{
		Width:  chartWidth,
		Height: chartHeight,
		Bars:   bars,
		Background: chart.Style{
			Padding:   chart.Box{Top: 30, Left: 20, Right: 20, Bottom: 20},
			FillColor: chart.ColorWhite,
		},
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render bar chart: %w", err)
	}
	return nil
}

func hexColor(c string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(c, "#"))
}
