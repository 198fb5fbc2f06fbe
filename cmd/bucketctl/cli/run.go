package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenstone-io/bucket-backup/internal/backup"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Perform one full backup run of the source bucket",
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, store, logger, err := newEnv(ctx)
	if err != nil {
		return err
	}

	cwClient, err := backup.NewCloudWatchClient(ctx, cfg.S3)
	if err != nil {
		return err
	}
	metrics := backup.NewCloudWatchReporter(cwClient, cfg.MetricsNamespace, logger)

	retention := backup.NewRetentionEnforcer(store, cfg.BackupBucket, cfg.RetentionDays, logger)
	service := backup.NewBackupService(store, retention, metrics, cfg.SourceBucket, cfg.BackupBucket, logger)

	summary, err := service.Run(ctx)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
