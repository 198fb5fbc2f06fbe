package backup

import (
	"context"
	"log/slog"
	"strconv"
	"time"
)

const (
	// BackupPrefix is the key prefix every backup object lives under.
	BackupPrefix = "backup/"

	// timestampLayout formats the capture timestamp embedded in backup
	// keys: YYYYMMDD_HHMMSS in UTC.
	timestampLayout = "20060102_150405"
)

// Provenance metadata keys attached to every backup object. The values
// must stay stable for interoperability with existing backups.
const (
	MetaOriginalBucket       = "original-bucket"
	MetaOriginalKey          = "original-key"
	MetaBackupTimestamp      = "backup-timestamp"
	MetaOriginalSize         = "original-size"
	MetaOriginalLastModified = "original-last-modified"
)

// RunSummary aggregates the outcome of one backup run. It is ephemeral;
// the buckets themselves are the only persistent state.
type RunSummary struct {
	Timestamp       string
	ObjectsBackedUp int64
	TotalSizeBytes  int64

	// Empty is set when the source bucket had nothing to back up. On that
	// path no copies, no retention pass and no metrics are performed.
	Empty bool
}

// BackupService orchestrates one full backup run: list the source bucket,
// copy every object into a timestamped location on the backup bucket,
// enforce retention, report metrics.
type BackupService struct {
	store     ObjectStore
	retention *RetentionEnforcer
	metrics   MetricsSink
	logger    *slog.Logger

	sourceBucket string
	backupBucket string

	now func() time.Time
}

// NewBackupService creates a backup orchestrator for one source/backup
// bucket pair.
func NewBackupService(store ObjectStore, retention *RetentionEnforcer, metrics MetricsSink, sourceBucket, backupBucket string, logger *slog.Logger) *BackupService {
	return &BackupService{
		store:        store,
		retention:    retention,
		metrics:      metrics,
		logger:       logger,
		sourceBucket: sourceBucket,
		backupBucket: backupBucket,
		now:          time.Now,
	}
}

// BackupKey derives the backup location for a source object captured at
// the given timestamp: backup/<timestamp>/<original-key>.
func BackupKey(timestamp, key string) string {
	return BackupPrefix + timestamp + "/" + key
}

// Run performs one complete backup pass. Per-object copy failures are
// logged and skipped; a listing failure aborts the run with a
// ListingError. Retention and metrics failures never fail the run.
func (s *BackupService) Run(ctx context.Context) (*RunSummary, error) {
	timestamp := s.now().UTC().Format(timestampLayout)

	s.logger.Info("Starting backup run",
		"source_bucket", s.sourceBucket,
		"backup_bucket", s.backupBucket,
		"timestamp", timestamp,
	)

	objects, err := s.store.ListObjects(ctx, s.sourceBucket, "")
	if err != nil {
		return nil, err
	}

	if len(objects) == 0 {
		// An empty source bucket ends the run here: no retention pass
		// and no metrics call on this path.
		s.logger.Info("No objects found in source bucket")
		return &RunSummary{Timestamp: timestamp, Empty: true}, nil
	}

	var backupCount, totalSize int64
	for _, obj := range objects {
		backupKey := BackupKey(timestamp, obj.Key)
		metadata := provenanceMetadata(s.sourceBucket, timestamp, obj)

		if err := s.store.CopyObject(ctx, s.sourceBucket, obj.Key, s.backupBucket, backupKey, metadata); err != nil {
			s.logger.Error("Error backing up object", "key", obj.Key, "error", err)
			continue
		}

		backupCount++
		totalSize += obj.Size

		s.logger.Info("Backed up object", "key", obj.Key, "backup_key", backupKey)
	}

	if err := s.retention.CleanupExpired(ctx); err != nil {
		s.logger.Error("Error cleaning up old backups", "error", err)
	}

	if err := s.metrics.PutBackupMetrics(ctx, backupCount, totalSize); err != nil {
		s.logger.Error("Error sending metrics", "error", err)
	}

	s.logger.Info("Backup completed",
		"objects_backed_up", backupCount,
		"total_size_bytes", totalSize,
	)

	return &RunSummary{
		Timestamp:       timestamp,
		ObjectsBackedUp: backupCount,
		TotalSizeBytes:  totalSize,
	}, nil
}

func provenanceMetadata(sourceBucket, timestamp string, obj Object) map[string]string {
	return map[string]string{
		MetaOriginalBucket:       sourceBucket,
		MetaOriginalKey:          obj.Key,
		MetaBackupTimestamp:      timestamp,
		MetaOriginalSize:         strconv.FormatInt(obj.Size, 10),
		MetaOriginalLastModified: obj.LastModified.Format(time.RFC3339),
	}
}
