package report

import (
	"fmt"
	"os"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"rewindtrack/internal/history"
	"rewindtrack/internal/textutil"
)

const (
	chartWidth  = 1280
	chartHeight = 720
	// labelRunes bounds non-episode series labels so the legend stays legible.
	labelRunes = 45
)

// RenderEpisodeChart draws comment growth for episode-discussion threads.
// Returns false when no post has enough snapshots to plot.
func RenderEpisodeChart(path, showName string, series []history.Series) (bool, error) {
	var plottable []chart.Series
	for _, s := range series {
		if !s.IsEpisode || len(s.Points) < 2 {
			continue
		}
		label := s.EpisodeCode
		if label == "" {
			label = s.PostName
		}
		plottable = append(plottable, timeSeries(label, s.Points))
	}
	if len(plottable) == 0 {
		return false, nil
	}
	return true, renderChart(path, fmt.Sprintf("%s: Episode threads comment counts over time", showName), plottable)
}

// RenderNonEpisodeChart draws comment growth for every other tracked post.
// Returns false when no post has enough snapshots to plot.
func RenderNonEpisodeChart(path, showName string, series []history.Series) (bool, error) {
	var plottable []chart.Series
	for _, s := range series {
		if s.IsEpisode || len(s.Points) < 2 {
			continue
		}
		plottable = append(plottable, timeSeries(textutil.Truncate(s.Title, labelRunes), s.Points))
	}
	if len(plottable) == 0 {
		return false, nil
	}
	return true, renderChart(path, fmt.Sprintf("%s: Non-episode posts comment counts over time", showName), plottable)
}

func timeSeries(label string, points []history.Point) chart.Series {
	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, point := range points {
		xs[i] = point.At
		ys[i] = float64(point.NumComments)
	}
	return chart.TimeSeries{Name: label, XValues: xs, YValues: ys}
}

func renderChart(path, title string, series []chart.Series) error {
	graph := chart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 25, Right: 25, Bottom: 25},
		},
		XAxis: chart.XAxis{
			Name:           "Snapshot time (UTC)",
			ValueFormatter: chart.TimeValueFormatterWithFormat("01-02 15:04"),
		},
		YAxis: chart.YAxis{
			Name: "Comments",
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart %s: %w", path, err)
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("render chart %s: %w", path, err)
	}
	return file.Close()
}
