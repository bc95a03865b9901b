package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"catalog-sync/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// checkCmd verifies the tables and the snapshot bucket.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the database schema and snapshot storage",
	Long:  `Verifies that the sync tables carry the columns the stores use and that the snapshot bucket exists. Use --fix to create a missing bucket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		svc := integrity.NewService(a.storage, a.cfg.Storage.Bucket, a.cfg.Storage.Region, a.db, schemaModels(a.cfg.Snapshot.Backend), a.logger)
		report := map[string]any{}
		healthy := true

		schemaReport, err := svc.CheckSchema()
		if err != nil {
			return err
		}
		report["schema"] = schemaReport
		healthy = healthy && schemaReport.Matched

		storageReport, err := svc.CheckStorage(cmd.Context())
		switch {
		case errors.Is(err, integrity.ErrStorageDisabled):
			report["storage"] = map[string]string{"status": "skipped"}
		case err != nil:
			return err
		default:
			if !storageReport.Exists && fixFlag {
				if err := svc.FixStorage(cmd.Context()); err != nil {
					return err
				}
				storageReport.Exists = true
			}
			report["storage"] = storageReport
			healthy = healthy && storageReport.Exists
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
		if !healthy {
			a.logger.Warn("Integrity check found problems", zap.Any("schema_errors", schemaReport.Errors))
			return fmt.Errorf("integrity check failed")
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&fixFlag, "fix", false, "create the snapshot bucket when missing")
	RootCmd.AddCommand(checkCmd)
}
