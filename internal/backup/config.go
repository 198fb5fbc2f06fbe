package backup

import (
	"fmt"
	"strconv"

	"github.com/spf13/viper"
)

// S3Config holds connection settings for S3 or an S3-compatible service.
type S3Config struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// Config holds the full runtime configuration for a backup run. It is read
// from the process environment once at startup and passed into each
// component explicitly.
type Config struct {
	SourceBucket     string
	BackupBucket     string
	RetentionDays    int
	MetricsNamespace string
	S3               S3Config
}

// LoadConfig reads configuration from the process environment.
// SOURCE_BUCKET and BACKUP_BUCKET are required; everything else has a
// default or is optional.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("RETENTION_DAYS", 30)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("METRICS_NAMESPACE", "MapReduce/Backup")

	// A malformed retention value must fail the load, not default to 0:
	// a zero-day window would put the cutoff at "now" and expire every
	// backup on the next cleanup pass.
	retentionDays, err := strconv.Atoi(v.GetString("RETENTION_DAYS"))
	if err != nil {
		return nil, fmt.Errorf("invalid RETENTION_DAYS value %q: %v", v.GetString("RETENTION_DAYS"), err)
	}

	cfg := &Config{
		SourceBucket:     v.GetString("SOURCE_BUCKET"),
		BackupBucket:     v.GetString("BACKUP_BUCKET"),
		RetentionDays:    retentionDays,
		MetricsNamespace: v.GetString("METRICS_NAMESPACE"),
		S3: S3Config{
			Region:          v.GetString("AWS_REGION"),
			Endpoint:        v.GetString("AWS_ENDPOINT_URL"),
			AccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
		},
	}

	if cfg.SourceBucket == "" {
		return nil, fmt.Errorf("SOURCE_BUCKET environment variable is required")
	}
	if cfg.BackupBucket == "" {
		return nil, fmt.Errorf("BACKUP_BUCKET environment variable is required")
	}

	return cfg, nil
}
