package cli

import (
	"github.com/spf13/cobra"

	"github.com/greenstone-io/bucket-backup/internal/backup"
)

func init() {
	rootCmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Apply retention and remove expired backups",
	RunE:  runPrune,
}

func runPrune(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, store, logger, err := newEnv(ctx)
	if err != nil {
		return err
	}

	retention := backup.NewRetentionEnforcer(store, cfg.BackupBucket, cfg.RetentionDays, logger)
	return retention.CleanupExpired(ctx)
}
