package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/openhydro/watermap-cli/internal/domain"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	rightStyle  = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
)

// Table renders the per-class summary as a bordered terminal table. When
// styled is false the output carries no ANSI escapes, which keeps piped
// output clean.
func Table(s *domain.Summary, styled bool) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("CLASS", "PIXELS", "AREA (KM2)", "SHARE")

	if styled {
		t.StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col > 0 {
				return rightStyle
			}
			return cellStyle
		})
	} else {
		t.StyleFunc(func(row, col int) lipgloss.Style {
			return cellStyle
		})
	}

	for _, cs := range s.Stats {
		t.Row(tableRow(s, cs)...)
	}
	if s.Unknown != nil {
		t.Row(tableRow(s, *s.Unknown)...)
	}

	return t.String()
}

func tableRow(s *domain.Summary, cs domain.ClassStat) []string {
	return []string{
		cs.Class.String(),
		fmt.Sprintf("%d", cs.Pixels),
		fmt.Sprintf("%.3f", cs.AreaKm2()),
		fmt.Sprintf("%.1f%%", s.Share(cs)*100),
	}
}

// FormatStats renders the raster-wide statistics block printed below the
// table.
func FormatStats(s *domain.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pixels: %d total, %d valid, %d nodata\n",
		s.TotalPixels, s.ValidPixels, s.NoDataPixels)
	fmt.Fprintf(&b, "Total area: %.3f km2\n", s.TotalAreaM2()/1e6)
	if s.ValidPixels > 0 {
		fmt.Fprintf(&b, "Value stats: mean=%.4f stddev=%.4f min=%g max=%g\n",
			s.Mean, s.StdDev, s.Min, s.Max)
	}
	return b.String()
}
