package backup

import (
	"context"
	"log/slog"
	"time"
)

// RetentionEnforcer deletes backup objects older than the retention window.
type RetentionEnforcer struct {
	store         ObjectStore
	bucket        string
	retentionDays int
	logger        *slog.Logger

	now func() time.Time
}

// NewRetentionEnforcer creates a retention enforcer for the given backup
// bucket and window in days.
func NewRetentionEnforcer(store ObjectStore, bucket string, retentionDays int, logger *slog.Logger) *RetentionEnforcer {
	return &RetentionEnforcer{
		store:         store,
		bucket:        bucket,
		retentionDays: retentionDays,
		logger:        logger,
		now:           time.Now,
	}
}

// CleanupExpired deletes every object under the backup prefix whose
// last-modified time is strictly before now minus the retention window.
// An object exactly at the cutoff is retained. Per-object delete failures
// are logged and skipped; only a listing failure aborts the pass.
func (r *RetentionEnforcer) CleanupExpired(ctx context.Context) error {
	cutoff := r.now().UTC().Add(-time.Duration(r.retentionDays) * 24 * time.Hour)

	objects, err := r.store.ListObjects(ctx, r.bucket, BackupPrefix)
	if err != nil {
		return err
	}

	for _, obj := range objects {
		if !stripZone(obj.LastModified).Before(cutoff) {
			continue
		}

		if err := r.store.DeleteObject(ctx, r.bucket, obj.Key); err != nil {
			r.logger.Error("Error deleting old backup", "key", obj.Key, "error", err)
			continue
		}

		r.logger.Info("Deleted old backup", "key", obj.Key)
	}

	return nil
}

// stripZone drops any zone information and reinterprets the wall-clock
// reading as UTC. Correct only when the storage service reports UTC
// timestamps, which S3 does.
func stripZone(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
