package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openhydro/watermap-cli/internal/drive"
)

var fetchDir string

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download finished exports from Drive",
	Long: `Searches Drive for files matching the configured export prefixes and
downloads every shard into the download directory. Large rasters may be
split into several files; all of them are fetched.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchDir, "dir", "",
		"download directory (overrides the config file)")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	destDir := cfg.Paths.DownloadDir
	if fetchDir != "" {
		destDir = fetchDir
	}

	ctx := cmd.Context()

	fetcher, err := drive.NewFetcher(ctx)
	if err != nil {
		return err
	}

	var downloaded int
	for _, prefix := range []string{cfg.Export.BoundaryPrefix, cfg.Export.RasterPrefix} {
		files, err := fetcher.FindExports(ctx, prefix, cfg.Export.DriveFolder)
		if err != nil {
			return fmt.Errorf("searching for %q: %w", prefix, err)
		}
		if len(files) == 0 {
			cmd.Printf("No files matching %q yet.\n", prefix)
			continue
		}

		for _, file := range files {
			path, err := fetcher.Download(ctx, file, destDir)
			if err != nil {
				return err
			}
			cmd.Printf("Downloaded %s\n", path)
			downloaded++
		}
	}

	if downloaded == 0 {
		cmd.Println("Nothing downloaded. Check \"watermap status\" for unfinished exports.")
	}
	return nil
}
