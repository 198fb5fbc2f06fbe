package backup

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// defaultStorageClass is reported when the storage service omits the
// storage class from a listing or head response.
const defaultStorageClass = "STANDARD"

// NewS3Client builds the S3 client both buckets are accessed through.
// Explicit credentials in the config take priority; otherwise the default
// chain (environment, IAM role) applies. Setting an endpoint switches to
// path-style addressing, which MinIO and most S3-compatibles require.
func NewS3Client(ctx context.Context, s3Config S3Config) (*s3.Client, error) {
	cfg, err := loadAWSConfig(ctx, s3Config)
	if err != nil {
		return nil, err
	}

	if s3Config.Endpoint == "" {
		return s3.NewFromConfig(cfg), nil
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s3Config.Endpoint)
		o.UsePathStyle = true
	}), nil
}

// loadAWSConfig resolves region and credentials shared by the S3 and
// CloudWatch clients. Explicit credentials win over the default chain.
func loadAWSConfig(ctx context.Context, s3Config S3Config) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(s3Config.Region),
	}
	if s3Config.AccessKeyID != "" && s3Config.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				s3Config.AccessKeyID,
				s3Config.SecretAccessKey,
				"", // no session token
			),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %v", err)
	}
	return cfg, nil
}

// S3Store implements ObjectStore on top of the AWS SDK S3 client.
type S3Store struct {
	client *s3.Client
	logger *slog.Logger
}

// NewS3Store creates an S3-backed object store.
func NewS3Store(client *s3.Client, logger *slog.Logger) *S3Store {
	return &S3Store{
		client: client,
		logger: logger,
	}
}

// ListObjects implements ObjectStore.ListObjects.
func (s *S3Store) ListObjects(ctx context.Context, bucket, prefix string) ([]Object, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	var objects []Object

	paginator := s3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, &ListingError{Bucket: bucket, Err: err}
		}

		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}

			size := int64(0)
			if obj.Size != nil {
				size = *obj.Size
			}

			storageClass := defaultStorageClass
			if obj.StorageClass != "" {
				storageClass = string(obj.StorageClass)
			}

			objects = append(objects, Object{
				Key:          *obj.Key,
				Size:         size,
				LastModified: aws.ToTime(obj.LastModified),
				StorageClass: storageClass,
			})
		}
	}

	return objects, nil
}

// CopyObject implements ObjectStore.CopyObject.
func (s *S3Store) CopyObject(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string, metadata map[string]string) error {
	input := &s3.CopyObjectInput{
		Bucket:     aws.String(dstBucket),
		Key:        aws.String(dstKey),
		CopySource: aws.String(copySourcePath(srcBucket, srcKey)),
	}
	if metadata != nil {
		input.Metadata = metadata
		input.MetadataDirective = types.MetadataDirectiveReplace
	}

	if _, err := s.client.CopyObject(ctx, input); err != nil {
		return &CopyError{Key: srcKey, Err: err}
	}

	return nil
}

// copySourcePath builds the x-amz-copy-source value. The service requires
// it URL-encoded, so each key segment is escaped while the separating
// slashes stay literal.
func copySourcePath(bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return bucket + "/" + strings.Join(segments, "/")
}

// DeleteObject implements ObjectStore.DeleteObject.
func (s *S3Store) DeleteObject(ctx context.Context, bucket, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return &DeleteError{Key: key, Err: err}
	}

	return nil
}

// HeadObject implements ObjectStore.HeadObject.
func (s *S3Store) HeadObject(ctx context.Context, bucket, key string) (*ObjectInfo, error) {
	output, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to head object %s: %v", key, err)
	}

	storageClass := defaultStorageClass
	if output.StorageClass != "" {
		storageClass = string(output.StorageClass)
	}

	return &ObjectInfo{
		Key:          key,
		Size:         aws.ToInt64(output.ContentLength),
		LastModified: aws.ToTime(output.LastModified),
		Metadata:     output.Metadata,
		StorageClass: storageClass,
	}, nil
}
