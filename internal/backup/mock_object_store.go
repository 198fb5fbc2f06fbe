package backup

import (
	"context"
	"errors"
	"strings"
)

// CopyCall records one CopyObject invocation against the mock store.
type CopyCall struct {
	SrcBucket string
	SrcKey    string
	DstBucket string
	DstKey    string
	Metadata  map[string]string
}

// MockObjectStore is an in-memory ObjectStore for unit tests. Listings are
// served per bucket; failures can be injected per operation or per key.
type MockObjectStore struct {
	objects map[string][]Object
	heads   map[string]*ObjectInfo

	listErr    error
	deleteErr  error
	headErr    error
	copyErrFor map[string]bool

	Copies         []CopyCall
	Deletes        []string
	DeleteAttempts []string
}

// NewMockObjectStore creates an empty mock store.
func NewMockObjectStore() *MockObjectStore {
	return &MockObjectStore{
		objects:    make(map[string][]Object),
		heads:      make(map[string]*ObjectInfo),
		copyErrFor: make(map[string]bool),
	}
}

// AddObject adds an object to a bucket's listing.
func (m *MockObjectStore) AddObject(bucket string, obj Object) {
	m.objects[bucket] = append(m.objects[bucket], obj)
}

// SetHead registers the head response for bucket/key.
func (m *MockObjectStore) SetHead(bucket, key string, info *ObjectInfo) {
	m.heads[bucket+"/"+key] = info
}

// FailListing makes every listing fail with the given message.
func (m *MockObjectStore) FailListing(message string) {
	m.listErr = errors.New(message)
}

// FailCopy makes copies of the given source key fail.
func (m *MockObjectStore) FailCopy(srcKey string) {
	m.copyErrFor[srcKey] = true
}

// FailDelete makes every delete fail with the given message.
func (m *MockObjectStore) FailDelete(message string) {
	m.deleteErr = errors.New(message)
}

// FailHead makes every head lookup fail with the given message.
func (m *MockObjectStore) FailHead(message string) {
	m.headErr = errors.New(message)
}

// ListObjects implements ObjectStore.ListObjects.
func (m *MockObjectStore) ListObjects(ctx context.Context, bucket, prefix string) ([]Object, error) {
	if m.listErr != nil {
		return nil, &ListingError{Bucket: bucket, Err: m.listErr}
	}

	var matching []Object
	for _, obj := range m.objects[bucket] {
		if prefix == "" || strings.HasPrefix(obj.Key, prefix) {
			matching = append(matching, obj)
		}
	}
	return matching, nil
}

// CopyObject implements ObjectStore.CopyObject.
func (m *MockObjectStore) CopyObject(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string, metadata map[string]string) error {
	if m.copyErrFor[srcKey] {
		return &CopyError{Key: srcKey, Err: errors.New("copy failed")}
	}

	m.Copies = append(m.Copies, CopyCall{
		SrcBucket: srcBucket,
		SrcKey:    srcKey,
		DstBucket: dstBucket,
		DstKey:    dstKey,
		Metadata:  metadata,
	})
	return nil
}

// DeleteObject implements ObjectStore.DeleteObject.
func (m *MockObjectStore) DeleteObject(ctx context.Context, bucket, key string) error {
	m.DeleteAttempts = append(m.DeleteAttempts, key)

	if m.deleteErr != nil {
		return &DeleteError{Key: key, Err: m.deleteErr}
	}

	m.Deletes = append(m.Deletes, key)
	return nil
}

// HeadObject implements ObjectStore.HeadObject.
func (m *MockObjectStore) HeadObject(ctx context.Context, bucket, key string) (*ObjectInfo, error) {
	if m.headErr != nil {
		return nil, m.headErr
	}

	info, ok := m.heads[bucket+"/"+key]
	if !ok {
		return nil, errors.New("not found: " + key)
	}
	return info, nil
}
