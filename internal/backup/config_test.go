package backup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SOURCE_BUCKET", "src")
	t.Setenv("BACKUP_BUCKET", "dst")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "src", cfg.SourceBucket)
	assert.Equal(t, "dst", cfg.BackupBucket)
	assert.Equal(t, 30, cfg.RetentionDays)
	assert.Equal(t, "MapReduce/Backup", cfg.MetricsNamespace)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SOURCE_BUCKET", "src")
	t.Setenv("BACKUP_BUCKET", "dst")
	t.Setenv("RETENTION_DAYS", "7")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("AWS_ENDPOINT_URL", "http://localhost:9000")
	t.Setenv("METRICS_NAMESPACE", "Custom/Backup")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.RetentionDays)
	assert.Equal(t, "eu-west-1", cfg.S3.Region)
	assert.Equal(t, "http://localhost:9000", cfg.S3.Endpoint)
	assert.Equal(t, "Custom/Backup", cfg.MetricsNamespace)
}

func TestLoadConfigInvalidRetentionDays(t *testing.T) {
	t.Setenv("SOURCE_BUCKET", "src")
	t.Setenv("BACKUP_BUCKET", "dst")
	t.Setenv("RETENTION_DAYS", "abc")

	// A value that does not parse must abort the load. Coercing it to 0
	// would move the retention cutoff to "now" and the next cleanup pass
	// would delete every backup, fresh ones included.
	cfg, err := LoadConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "RETENTION_DAYS")
}

func TestLoadConfigRequiredBuckets(t *testing.T) {
	t.Setenv("SOURCE_BUCKET", "")
	t.Setenv("BACKUP_BUCKET", "dst")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SOURCE_BUCKET")

	t.Setenv("SOURCE_BUCKET", "src")
	t.Setenv("BACKUP_BUCKET", "")

	_, err = LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BACKUP_BUCKET")
}
