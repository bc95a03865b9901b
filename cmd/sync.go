package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"catalog-sync/feature/catalog"
	"catalog-sync/feature/inventory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd runs one job to completion and prints its result.
var syncCmd = &cobra.Command{
	Use:       "sync <job>",
	Short:     "Run a sync job once",
	Long:      `Runs the catalog or inventory job immediately under the same guards as the scheduler and prints the result as JSON.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{catalog.JobName, inventory.JobName},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		if err := a.service.Initialize(cmd.Context()); err != nil {
			return err
		}
		defer a.service.Shutdown()

		result, err := a.service.Trigger(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
		if !result.Success {
			return fmt.Errorf("%s sync failed: %s", args[0], result.Message)
		}
		a.logger.Info("Sync finished", zap.String("job", args[0]), zap.Int("total", result.Stats.Total))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
