package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/openhydro/watermap-cli/internal/analysis"
	"github.com/openhydro/watermap-cli/internal/config"
	"github.com/openhydro/watermap-cli/internal/logger"
	"github.com/openhydro/watermap-cli/internal/raster"
	"github.com/openhydro/watermap-cli/internal/render"
	"github.com/openhydro/watermap-cli/internal/watch"
)

var (
	analyzeOut      string
	analyzeScale    float64
	analyzeWatch    bool
	analyzePlain    bool
	analyzeBoundary string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [raster]",
	Short: "Tabulate and render a downloaded water class raster",
	Long: `Reads a classified GeoTIFF, counts pixels per water class, converts
counts to areas and prints the summary. A class map and an area chart
are written to the output directory.

Without an argument the raster is expected in the download directory
under the configured raster prefix.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "",
		"output directory for rendered files (overrides the config file)")
	analyzeCmd.Flags().Float64Var(&analyzeScale, "scale", 0,
		"pixel scale in metres for geographic rasters (overrides the config file)")
	analyzeCmd.Flags().BoolVar(&analyzeWatch, "watch", false,
		"wait for the raster file to appear before analysing")
	analyzeCmd.Flags().BoolVar(&analyzePlain, "plain", false,
		"disable table styling even on a terminal")
	analyzeCmd.Flags().StringVar(&analyzeBoundary, "boundary", "",
		"watershed boundary shapefile to outline on the map (overrides the default location)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigOrDefault()
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.Paths.DownloadDir, cfg.Export.RasterPrefix+".tif")
	if len(args) > 0 {
		path = args[0]
	}

	ctx := cmd.Context()

	if analyzeWatch {
		if err := watch.WaitForFile(ctx, path, 2*time.Second); err != nil {
			return err
		}
	}

	grid, err := raster.Read(path)
	if err != nil {
		return err
	}

	scale := cfg.Export.ScaleMeters
	if analyzeScale > 0 {
		scale = analyzeScale
	}

	summary := analysis.Tabulate(grid, grid.PixelArea(scale))

	styled := !analyzePlain && term.IsTerminal(int(os.Stdout.Fd()))
	cmd.Println(render.Table(summary, styled))
	cmd.Print(render.FormatStats(summary))

	outDir := cfg.Paths.OutputDir
	if analyzeOut != "" {
		outDir = analyzeOut
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	boundary, err := boundaryRings(cfg)
	if err != nil {
		return err
	}

	mapPath := filepath.Join(outDir, "water_class_map.png")
	if err := render.Map(grid, boundary, "Water class distribution", mapPath); err != nil {
		return err
	}
	chartPath := filepath.Join(outDir, "water_class_area.png")
	if err := render.Chart(summary, "Water class area", chartPath); err != nil {
		return err
	}

	cmd.Printf("Wrote %s and %s\n", mapPath, chartPath)
	return nil
}

// boundaryRings loads the watershed boundary for the map outline. The
// shapefile is optional when found at its default location; a path given
// with --boundary must exist.
func boundaryRings(cfg *config.Config) ([]raster.Ring, error) {
	path := analyzeBoundary
	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.Paths.DownloadDir, cfg.Export.BoundaryPrefix+".shp")
	}

	if _, err := os.Stat(path); err != nil {
		if explicit {
			return nil, fmt.Errorf("boundary %s: %w", path, err)
		}
		logger.Infof("no boundary shapefile at %s, rendering without outline", path)
		return nil, nil
	}

	return raster.ReadRings(path)
}
