package render

import (
	"fmt"
	"image"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/openhydro/watermap-cli/internal/domain"
	"github.com/openhydro/watermap-cli/internal/raster"
)

// boundaryColor matches the red outline of the source workflow's map.
var boundaryColor = color.NRGBA{R: 0xFF, A: 0xFF}

// Map renders the classified raster to a PNG with a legend entry per
// water class. Nodata pixels are transparent. When boundary rings are
// given they are drawn as an outline with their own legend entry.
func Map(g *raster.Grid, boundary []raster.Ring, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	if g.Projected() {
		p.X.Label.Text = "Easting (m)"
		p.Y.Label.Text = "Northing (m)"
	} else {
		p.X.Label.Text = "Longitude"
		p.Y.Label.Text = "Latitude"
	}

	minX, minY, maxX, maxY := g.Bounds()
	p.Add(plotter.NewImage(classImage(g), minX, minY, maxX, maxY))

	for i, ring := range boundary {
		line, err := plotter.NewLine(ringXYs(ring))
		if err != nil {
			return fmt.Errorf("building boundary outline: %w", err)
		}
		line.Color = boundaryColor
		line.Width = vg.Points(1.5)
		p.Add(line)
		if i == 0 {
			p.Legend.Add("Watershed boundary", line)
		}
	}

	for _, class := range domain.Legend() {
		p.Legend.Add(class.String(), swatch{ClassColor(class)})
	}
	p.Legend.Top = true
	p.Legend.Left = false

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("saving class map: %w", err)
	}
	return nil
}

// classImage maps each pixel to its class colour. Non-integral or
// out-of-legend codes render grey so they are visible rather than
// silently blended into a neighbouring class.
func classImage(g *raster.Grid) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			v := g.At(col, row)
			if g.IsNoData(v) {
				img.SetNRGBA(col, row, color.NRGBA{})
				continue
			}
			class, _ := domain.LegendClass(v)
			img.SetNRGBA(col, row, ClassColor(class))
		}
	}
	return img
}

func ringXYs(ring raster.Ring) plotter.XYs {
	xys := make(plotter.XYs, len(ring))
	for i, pt := range ring {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return xys
}

// swatch draws a filled colour square for a legend entry.
type swatch struct {
	c color.Color
}

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.c, c.ClipPolygonY(pts))
}
