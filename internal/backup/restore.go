package backup

import (
	"context"
	"log/slog"
)

// Restorer provides ad-hoc restore and inspection of backup objects.
// It is not part of the scheduled backup flow.
type Restorer struct {
	store  ObjectStore
	logger *slog.Logger
}

// NewRestorer creates a restore/inspection utility over the given store.
func NewRestorer(store ObjectStore, logger *slog.Logger) *Restorer {
	return &Restorer{
		store:  store,
		logger: logger,
	}
}

// RestoreFromBackup copies a backup object back to the source bucket at
// the original key recorded in its provenance metadata, overwriting
// whatever exists there. Any failure is logged and reported as false;
// errors never propagate to the caller.
func (r *Restorer) RestoreFromBackup(ctx context.Context, sourceBucket, backupBucket, backupKey string) bool {
	info, err := r.store.HeadObject(ctx, backupBucket, backupKey)
	if err != nil {
		r.logger.Error("Error restoring backup", "backup_key", backupKey,
			"error", &RestoreError{BackupKey: backupKey, Err: err})
		return false
	}

	originalKey, ok := info.Metadata[MetaOriginalKey]
	if !ok || originalKey == "" {
		r.logger.Error("Error restoring backup: missing original-key metadata", "backup_key", backupKey)
		return false
	}

	if err := r.store.CopyObject(ctx, backupBucket, backupKey, sourceBucket, originalKey, nil); err != nil {
		r.logger.Error("Error restoring backup", "backup_key", backupKey,
			"error", &RestoreError{BackupKey: backupKey, Err: err})
		return false
	}

	r.logger.Info("Restored backup", "backup_key", backupKey, "original_key", originalKey)
	return true
}

// ListBackups lists every backup object under the given prefix, which
// defaults to the standard backup prefix when empty. A ListingError is
// propagated on failure.
func (r *Restorer) ListBackups(ctx context.Context, bucket, prefix string) ([]Object, error) {
	if prefix == "" {
		prefix = BackupPrefix
	}
	return r.store.ListObjects(ctx, bucket, prefix)
}

// GetBackupInfo fetches the descriptor and provenance metadata for one
// backup object. Lookup failures are logged and reported as nil.
func (r *Restorer) GetBackupInfo(ctx context.Context, bucket, key string) *ObjectInfo {
	info, err := r.store.HeadObject(ctx, bucket, key)
	if err != nil {
		r.logger.Error("Error getting backup info", "key", key, "error", err)
		return nil
	}
	return info
}
