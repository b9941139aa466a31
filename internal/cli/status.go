package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/openhydro/watermap-cli/internal/config"
	"github.com/openhydro/watermap-cli/internal/domain"
	"github.com/openhydro/watermap-cli/internal/ee"
	"github.com/openhydro/watermap-cli/internal/logger"
	"github.com/openhydro/watermap-cli/internal/store/sqlite"
)

var statusProject string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show export job status",
	Long: `Lists recorded export jobs. Jobs that have not reached a terminal
state are polled once against the service and the stored state is
updated. Rerun the command to poll again.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusProject, "project", "",
		"Google Cloud project (overrides the config file)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfigOrDefault()
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(cfg.Paths.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()

	jobs, err := store.ListJobs(ctx)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		cmd.Println("No export jobs recorded. Run \"watermap extract\" first.")
		return nil
	}

	project := cfg.Project
	if statusProject != "" {
		project = statusProject
	}

	if client := statusClient(ctx, cfg, project); client != nil {
		for i := range jobs {
			refreshJob(ctx, client, store, &jobs[i])
		}
	} else {
		logger.Warnf("no project configured, showing stored state only")
	}

	cmd.Printf("%-9s %-10s %-20s %s\n", "KIND", "STATE", "UPDATED", "OPERATION")
	for _, job := range jobs {
		cmd.Printf("%-9s %-10s %-20s %s\n",
			job.Kind, job.State, job.UpdatedAt.Format("2006-01-02 15:04:05"), job.Operation)
		if job.Error != "" {
			cmd.Printf("          error: %s\n", job.Error)
		}
	}
	return nil
}

// statusClient builds an Earth Engine client for polling, or nil when no
// project or credentials are available. Status still works offline with
// the stored state.
func statusClient(ctx context.Context, cfg *config.Config, project string) *ee.Client {
	if project == "" {
		return nil
	}
	client, err := ee.NewClient(ctx, project, ee.WithRateLimit(ee.RateLimitConfig{
		RequestsPerSecond: cfg.Limits.RequestsPerSecond,
		BurstSize:         cfg.Limits.Burst,
	}))
	if err != nil {
		logger.Warnf("not polling the service: %v", err)
		return nil
	}
	return client
}

// refreshJob polls one non-terminal job and persists any state change.
// Poll failures keep the stored state.
func refreshJob(ctx context.Context, client *ee.Client, store *sqlite.Store, job *domain.ExportJob) {
	if job.State.Terminal() {
		return
	}

	op, err := client.GetOperation(ctx, job.Operation)
	if err != nil {
		logger.Warnf("polling %s: %v", job.Operation, err)
		return
	}

	state := op.JobState()
	if state == job.State && op.ErrorMessage() == job.Error {
		return
	}

	job.State = state
	job.Error = op.ErrorMessage()
	job.UpdatedAt = time.Now().UTC()
	if err := store.UpdateJobState(ctx, job.ID, job.State, job.Error); err != nil {
		logger.Warnf("recording state for %s: %v", job.ID, err)
	}
}
