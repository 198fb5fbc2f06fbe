package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenstone-io/bucket-backup/internal/backup"
)

var infoKey string

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVar(&infoKey, "key", "", "Backup object key to inspect (required)")
	infoCmd.MarkFlagRequired("key")
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show size, timestamps and provenance metadata for one backup",
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, store, logger, err := newEnv(ctx)
	if err != nil {
		return err
	}

	restorer := backup.NewRestorer(store, logger)
	info := restorer.GetBackupInfo(ctx, cfg.BackupBucket, infoKey)
	if info == nil {
		return fmt.Errorf("no backup info for %s", infoKey)
	}

	out, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
