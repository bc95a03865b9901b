package cmd

import (
	"fmt"
	"os"

	"catalog-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "catalog-sync",
	Short: "Catalog and inventory sync engine",
	Long: `catalog-sync pulls vendor catalog and inventory feeds over FTP, HTTP or S3,
applies only the changed lines and merges them into the shared catalog by source priority.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with ISO8601 timestamps for CLI errors
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory holding config.yaml and .env")
}
