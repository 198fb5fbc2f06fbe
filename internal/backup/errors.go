package backup

import "fmt"

// ListingError indicates that a paginated bucket listing failed. It aborts
// the step that requested the listing; no partial results survive it.
type ListingError struct {
	Bucket string
	Err    error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("failed to list objects in %s: %v", e.Bucket, e.Err)
}

func (e *ListingError) Unwrap() error { return e.Err }

// CopyError indicates that a single object copy failed. The backup run
// skips the object and continues.
type CopyError struct {
	Key string
	Err error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("failed to copy object %s: %v", e.Key, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// DeleteError indicates that a single object deletion failed. The retention
// pass skips the object and continues.
type DeleteError struct {
	Key string
	Err error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("failed to delete object %s: %v", e.Key, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }

// MetricsError indicates that metric emission failed. Callers log and
// swallow it; it never fails a backup run.
type MetricsError struct {
	Err error
}

func (e *MetricsError) Error() string {
	return fmt.Sprintf("failed to put metric data: %v", e.Err)
}

func (e *MetricsError) Unwrap() error { return e.Err }

// RestoreError indicates that a restore attempt failed. It is surfaced to
// callers only as a false success indicator.
type RestoreError struct {
	BackupKey string
	Err       error
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("failed to restore %s: %v", e.BackupKey, e.Err)
}

func (e *RestoreError) Unwrap() error { return e.Err }
