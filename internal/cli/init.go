package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openhydro/watermap-cli/internal/config"
	"github.com/openhydro/watermap-cli/internal/domain"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Writes the default configuration to ~/.watermap/config.toml (or the
path given with --config). Edit the file afterwards to set your Google
Cloud project and adjust the region or datasets.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false,
		"overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%w: %s (use --force to overwrite)", domain.ErrAlreadyExists, path)
	}

	if err := config.Default().Save(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	cmd.Printf("Wrote %s\n", path)
	cmd.Println("Set \"project\" to your Google Cloud project before running extract.")
	return nil
}
