package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/greenstone-io/bucket-backup/internal/backup"
)

var listPrefix string

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listPrefix, "prefix", backup.BackupPrefix, "Key prefix to list")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List backup objects in the backup bucket",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, store, logger, err := newEnv(ctx)
	if err != nil {
		return err
	}

	restorer := backup.NewRestorer(store, logger)
	backups, err := restorer.ListBackups(ctx, cfg.BackupBucket, listPrefix)
	if err != nil {
		return err
	}

	for _, b := range backups {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\t%s\n",
			b.Key, b.Size, b.LastModified.UTC().Format(time.RFC3339), b.StorageClass)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d backups\n", len(backups))
	return nil
}
