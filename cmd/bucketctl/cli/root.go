// Package cli implements the bucketctl command tree: ad-hoc backup runs,
// retention pruning, restore and backup inspection.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/greenstone-io/bucket-backup/internal/backup"
)

var rootCmd = &cobra.Command{
	Use:   "bucketctl",
	Short: "Backup, restore and inspect S3 bucket backups",
	Long:  "Bucketctl copies a source bucket into timestamped backup locations, prunes expired backups, and restores or inspects individual backup objects. Buckets and credentials are read from the environment (SOURCE_BUCKET, BACKUP_BUCKET, RETENTION_DAYS, AWS_*).",
}

func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// newEnv loads configuration and builds the S3-backed store shared by all
// subcommands.
func newEnv(ctx context.Context) (*backup.Config, *backup.S3Store, *slog.Logger, error) {
	logger := newLogger()

	cfg, err := backup.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	s3Client, err := backup.NewS3Client(ctx, cfg.S3)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, backup.NewS3Store(s3Client, logger), logger, nil
}
