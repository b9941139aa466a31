package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/openhydro/watermap-cli/internal/domain"
)

// Chart renders the per-class area distribution as a bar chart PNG. The
// unknown bucket gets its own bar when present so the chart accounts for
// every valid pixel.
func Chart(s *domain.Summary, title, path string) error {
	var (
		values plotter.Values
		labels []string
	)
	for _, cs := range s.Stats {
		values = append(values, cs.AreaKm2())
		labels = append(labels, cs.Class.String())
	}
	if s.Unknown != nil {
		values = append(values, s.Unknown.AreaKm2())
		labels = append(labels, s.Unknown.Class.String())
	}

	bars, err := plotter.NewBarChart(values, vg.Points(36))
	if err != nil {
		return fmt.Errorf("building bar chart: %w", err)
	}
	bars.LineStyle.Width = 0
	bars.Color = ClassColor(domain.ClassOccasionalWater)

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Area (km2)"
	p.Add(bars)
	p.NominalX(labels...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving area chart: %w", err)
	}
	return nil
}
