package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openhydro/watermap-cli/internal/domain"
	"github.com/openhydro/watermap-cli/internal/ee"
	"github.com/openhydro/watermap-cli/internal/extract"
	"github.com/openhydro/watermap-cli/internal/store/sqlite"
)

var extractProject string

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Submit watershed boundary and water raster exports",
	Long: `Queries the watershed boundary dataset for the configured HUC10 code,
falling back to the configured bounding box when no watershed matches,
then submits two Drive export jobs: the boundary as a shapefile and the
clipped water classification as a GeoTIFF.

The exports complete on the service side; extract returns as soon as
both submissions are accepted. Follow them with "watermap status".`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractProject, "project", "",
		"Google Cloud project (overrides the config file)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	project := cfg.Project
	if extractProject != "" {
		project = extractProject
	}
	if project == "" {
		return fmt.Errorf("%w: set \"project\" in the config or pass --project",
			domain.ErrInvalidInput)
	}

	ctx := cmd.Context()

	client, err := ee.NewClient(ctx, project, ee.WithRateLimit(ee.RateLimitConfig{
		RequestsPerSecond: cfg.Limits.RequestsPerSecond,
		BurstSize:         cfg.Limits.Burst,
	}))
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(cfg.Paths.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := extract.NewService(client, store, cfg).Run(ctx)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if result.UsedFallback {
		cmd.Println("No watershed matched; exporting the fallback bounding box.")
	} else if result.Watershed.Name != "" {
		cmd.Printf("Watershed: %s (%s)\n", result.Watershed.HUC10, result.Watershed.Name)
	} else {
		cmd.Printf("Watershed: %s\n", result.Watershed.HUC10)
	}

	cmd.Printf("Boundary export: %s [%s]\n", result.BoundaryJob.Operation, result.BoundaryJob.State)
	cmd.Printf("Raster export:   %s [%s]\n", result.RasterJob.Operation, result.RasterJob.State)
	cmd.Println("Run \"watermap status\" to follow the jobs.")
	return nil
}
