package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"catalog-sync/core/schedule"
	"catalog-sync/feature/catalog"
	"catalog-sync/feature/inventory"
	"catalog-sync/feature/syncjobs"

	"github.com/spf13/cobra"
)

// statusCmd prints the persisted run state of both jobs.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the last run of each job",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		load := func(job string) (schedule.JobRunState, error) {
			st, err := a.states.Load(cmd.Context(), job)
			if err != nil {
				return schedule.JobRunState{}, fmt.Errorf("failed to load %s state: %w", job, err)
			}
			if st == nil {
				return schedule.JobRunState{Job: job, Status: schedule.StatusIdle}, nil
			}
			return *st, nil
		}

		var status syncjobs.Status
		if status.CatalogSync, err = load(catalog.JobName); err != nil {
			return err
		}
		if status.InventorySync, err = load(inventory.JobName); err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	},
}

func init() {
	RootCmd.AddCommand(statusCmd)
}
