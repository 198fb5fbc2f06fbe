package backup

import (
	"context"
	"time"
)

// Object describes a single object discovered by a bucket listing.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
	StorageClass string
}

// ObjectInfo describes a single object as returned by a head lookup,
// including its user metadata.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
	Metadata     map[string]string
	StorageClass string
}

// ObjectStore defines the object-storage operations the backup flow needs.
type ObjectStore interface {
	// ListObjects lists every object under the given prefix, paginating
	// until the listing is exhausted. A failure on any page aborts the
	// whole listing; no partial result is returned.
	ListObjects(ctx context.Context, bucket, prefix string) ([]Object, error)

	// CopyObject performs a server-side copy. A non-nil metadata map
	// replaces the destination object's user metadata.
	CopyObject(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string, metadata map[string]string) error

	// DeleteObject removes a single object.
	DeleteObject(ctx context.Context, bucket, key string) error

	// HeadObject fetches size, timestamps and user metadata for one object.
	HeadObject(ctx context.Context, bucket, key string) (*ObjectInfo, error)
}

// MetricsSink receives the per-run backup counters.
type MetricsSink interface {
	// PutBackupMetrics emits the object count, byte count and success flag
	// for one completed backup run.
	PutBackupMetrics(ctx context.Context, objectCount, totalBytes int64) error
}
