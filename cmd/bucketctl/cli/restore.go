package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenstone-io/bucket-backup/internal/backup"
)

var restoreBackupKey string

func init() {
	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().StringVar(&restoreBackupKey, "backup-key", "", "Backup object key to restore (required)")
	restoreCmd.MarkFlagRequired("backup-key")
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore a backup object to its original location",
	RunE:  runRestore,
}

func runRestore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, store, logger, err := newEnv(ctx)
	if err != nil {
		return err
	}

	restorer := backup.NewRestorer(store, logger)
	if !restorer.RestoreFromBackup(ctx, cfg.SourceBucket, cfg.BackupBucket, restoreBackupKey) {
		return fmt.Errorf("restore of %s failed", restoreBackupKey)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", restoreBackupKey)
	return nil
}
