// Package chart renders indicator frames and comparison curves to PNG.
package chart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vicanso/go-charts/v2"

	"MarketCompass/internal/analyzer"
	"MarketCompass/internal/model"
)

// Downsample caps the number of x-axis points so long histories stay legible.
const maxPoints = 400

// RenderAnalysis draws the close series with the MA200 overlay. Undefined
// MA200 points render as gaps rather than zeros.
func RenderAnalysis(frame *model.IndicatorFrame) ([]byte, error) {
	if frame.Len() == 0 {
		return nil, fmt.Errorf("empty frame for %s", frame.Symbol)
	}

	step := 1
	if frame.Len() > maxPoints {
		step = frame.Len() / maxPoints
	}

	var labels []string
	var closes, ma []float64
	for i := 0; i < frame.Len(); i += step {
		labels = append(labels, frame.Dates[i].Format("2006-01-02"))
		closes = append(closes, frame.Close[i])
		if model.Defined(frame.MA200[i]) {
			ma = append(ma, frame.MA200[i])
		} else {
			ma = append(ma, charts.GetNullValue())
		}
	}

	p, err := charts.LineRender(
		[][]float64{closes, ma},
		charts.TitleTextOptionFunc(fmt.Sprintf("%s 价格与200日均线", frame.Symbol)),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        labels,
			BoundaryGap: charts.FalseFlag(),
			SplitNumber: 6,
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{
			DivideCount: 5,
		}),
		charts.LegendOptionFunc(charts.LegendOption{
			Data: []string{"Close", "MA200"},
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(1000),
		charts.HeightOptionFunc(500),
	)
	if err != nil {
		return nil, fmt.Errorf("render analysis chart: %w", err)
	}
	return p.Bytes()
}

// RenderComparison draws the normalized cumulative-return curves of a
// comparison on their shared calendar.
func RenderComparison(cmp *analyzer.Comparison) ([]byte, error) {
	if len(cmp.Dates) == 0 {
		return nil, fmt.Errorf("empty comparison")
	}

	step := 1
	if len(cmp.Dates) > maxPoints {
		step = len(cmp.Dates) / maxPoints
	}

	var labels []string
	for i := 0; i < len(cmp.Dates); i += step {
		labels = append(labels, cmp.Dates[i].Format("2006-01-02"))
	}

	values := make([][]float64, 0, len(cmp.Order))
	for _, sym := range cmp.Order {
		series := cmp.Series[sym]
		var pts []float64
		for i := 0; i < len(series); i += step {
			pts = append(pts, series[i]*100)
		}
		values = append(values, pts)
	}

	p, err := charts.LineRender(
		values,
		charts.TitleTextOptionFunc(fmt.Sprintf("累计收益对比 (%s)", cmp.Period)),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        labels,
			BoundaryGap: charts.FalseFlag(),
			SplitNumber: 6,
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{
			DivideCount: 5,
		}),
		charts.LegendOptionFunc(charts.LegendOption{
			Data: append([]string(nil), cmp.Order...),
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(1000),
		charts.HeightOptionFunc(500),
	)
	if err != nil {
		return nil, fmt.Errorf("render comparison chart: %w", err)
	}
	return p.Bytes()
}

// WriteFile saves PNG bytes under dir, creating it if needed, and returns
// the full path.
func WriteFile(dir, name string, png []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("write chart: %w", err)
	}
	return path, nil
}
