package backup_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashikota/minis3"

	"github.com/greenstone-io/bucket-backup/internal/backup"
)

const (
	storeSourceBucket = "store-source-bucket"
	storeBackupBucket = "store-backup-bucket"
)

func testStoreLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// setupStore starts an in-process S3 server and returns a store talking
// to it. The server is torn down when the test completes.
func setupStore(t *testing.T) (context.Context, *backup.S3Store, *s3.Client) {
	t.Helper()
	ctx := context.Background()

	server := minis3.New()
	require.NoError(t, server.Start())
	t.Cleanup(func() { server.Close() })

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(
			aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
				return aws.Credentials{AccessKeyID: "test", SecretAccessKey: "test"}, nil
			}),
		),
	)
	require.NoError(t, err)

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String("http://" + server.Addr())
		o.UsePathStyle = true
	})

	for _, bucket := range []string{storeSourceBucket, storeBackupBucket} {
		_, err = client.CreateBucket(ctx, &s3.CreateBucketInput{
			Bucket: aws.String(bucket),
		})
		require.NoError(t, err)
	}

	return ctx, backup.NewS3Store(client, testStoreLogger()), client
}

func putTestObject(ctx context.Context, t *testing.T, client *s3.Client, bucket, key, content string) {
	t.Helper()
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   strings.NewReader(content),
	})
	require.NoError(t, err)
}

func TestS3StoreListObjects(t *testing.T) {
	ctx, store, client := setupStore(t)

	putTestObject(ctx, t, client, storeSourceBucket, "data/file.csv", "a,b,c")
	putTestObject(ctx, t, client, storeSourceBucket, "reports/q1.pdf", "pdf content")

	objects, err := store.ListObjects(ctx, storeSourceBucket, "")
	require.NoError(t, err)
	require.Len(t, objects, 2)

	byKey := make(map[string]backup.Object)
	for _, obj := range objects {
		byKey[obj.Key] = obj
	}

	csv, ok := byKey["data/file.csv"]
	require.True(t, ok)
	assert.Equal(t, int64(len("a,b,c")), csv.Size)
	assert.False(t, csv.LastModified.IsZero())
	assert.NotEmpty(t, csv.StorageClass)
}

func TestS3StoreListObjectsWithPrefix(t *testing.T) {
	ctx, store, client := setupStore(t)

	putTestObject(ctx, t, client, storeBackupBucket, "backup/20240115_093000/a.txt", "a")
	putTestObject(ctx, t, client, storeBackupBucket, "other/b.txt", "b")

	objects, err := store.ListObjects(ctx, storeBackupBucket, backup.BackupPrefix)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "backup/20240115_093000/a.txt", objects[0].Key)
}

func TestS3StoreListObjectsMissingBucket(t *testing.T) {
	ctx, store, _ := setupStore(t)

	_, err := store.ListObjects(ctx, "no-such-bucket", "")

	var listErr *backup.ListingError
	require.True(t, errors.As(err, &listErr))
	assert.Equal(t, "no-such-bucket", listErr.Bucket)
}

func TestS3StoreCopyObjectWithMetadata(t *testing.T) {
	ctx, store, client := setupStore(t)

	putTestObject(ctx, t, client, storeSourceBucket, "data/file.csv", "a,b,c")

	metadata := map[string]string{
		backup.MetaOriginalBucket: storeSourceBucket,
		backup.MetaOriginalKey:    "data/file.csv",
	}
	err := store.CopyObject(ctx, storeSourceBucket, "data/file.csv", storeBackupBucket,
		"backup/20240115_093000/data/file.csv", metadata)
	require.NoError(t, err)

	info, err := store.HeadObject(ctx, storeBackupBucket, "backup/20240115_093000/data/file.csv")
	require.NoError(t, err)
	assert.Equal(t, int64(len("a,b,c")), info.Size)
	assert.Equal(t, "data/file.csv", info.Metadata[backup.MetaOriginalKey])
	assert.Equal(t, storeSourceBucket, info.Metadata[backup.MetaOriginalBucket])
}

func TestS3StoreCopyObjectSpecialCharacterKey(t *testing.T) {
	ctx, store, client := setupStore(t)

	// Keys with characters that need URL encoding in the copy source must
	// still back up, not silently drop out of the run.
	key := "reports/q1 100%#final.pdf"
	putTestObject(ctx, t, client, storeSourceBucket, key, "pdf content")

	dstKey := "backup/20240115_093000/" + key
	err := store.CopyObject(ctx, storeSourceBucket, key, storeBackupBucket, dstKey,
		map[string]string{backup.MetaOriginalKey: key})
	require.NoError(t, err)

	info, err := store.HeadObject(ctx, storeBackupBucket, dstKey)
	require.NoError(t, err)
	assert.Equal(t, int64(len("pdf content")), info.Size)
	assert.Equal(t, key, info.Metadata[backup.MetaOriginalKey])
}

func TestS3StoreCopyObjectMissingSource(t *testing.T) {
	ctx, store, _ := setupStore(t)

	err := store.CopyObject(ctx, storeSourceBucket, "missing.txt", storeBackupBucket, "backup/x/missing.txt", nil)

	var copyErr *backup.CopyError
	require.True(t, errors.As(err, &copyErr))
	assert.Equal(t, "missing.txt", copyErr.Key)
}

func TestS3StoreDeleteObject(t *testing.T) {
	ctx, store, client := setupStore(t)

	putTestObject(ctx, t, client, storeBackupBucket, "backup/20240115_093000/a.txt", "a")

	require.NoError(t, store.DeleteObject(ctx, storeBackupBucket, "backup/20240115_093000/a.txt"))

	objects, err := store.ListObjects(ctx, storeBackupBucket, backup.BackupPrefix)
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestS3StoreHeadObjectMissing(t *testing.T) {
	ctx, store, _ := setupStore(t)

	info, err := store.HeadObject(ctx, storeBackupBucket, "no-such-key")
	require.Error(t, err)
	assert.Nil(t, info)
}
