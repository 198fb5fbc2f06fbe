package backup

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metric names emitted per backup run.
const (
	metricObjectsCount = "BackupObjectsCount"
	metricSizeBytes    = "BackupSizeBytes"
	metricSuccess      = "BackupSuccess"
)

// cloudWatchAPI is the slice of the CloudWatch client the reporter uses.
type cloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// NewCloudWatchClient creates a CloudWatch client using the same
// credential settings as the S3 client.
func NewCloudWatchClient(ctx context.Context, s3Config S3Config) (*cloudwatch.Client, error) {
	cfg, err := loadAWSConfig(ctx, s3Config)
	if err != nil {
		return nil, err
	}

	return cloudwatch.NewFromConfig(cfg), nil
}

// CloudWatchReporter implements MetricsSink against CloudWatch.
type CloudWatchReporter struct {
	api       cloudWatchAPI
	namespace string
	logger    *slog.Logger

	now func() time.Time
}

// NewCloudWatchReporter creates a metrics reporter publishing under the
// given namespace.
func NewCloudWatchReporter(api cloudWatchAPI, namespace string, logger *slog.Logger) *CloudWatchReporter {
	return &CloudWatchReporter{
		api:       api,
		namespace: namespace,
		logger:    logger,
		now:       time.Now,
	}
}

// PutBackupMetrics implements MetricsSink.PutBackupMetrics. It emits the
// object count, the byte count and a constant success flag of 1 in a
// single PutMetricData call.
func (r *CloudWatchReporter) PutBackupMetrics(ctx context.Context, objectCount, totalBytes int64) error {
	timestamp := r.now().UTC()

	input := &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(r.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metricObjectsCount),
				Value:      aws.Float64(float64(objectCount)),
				Unit:       types.StandardUnitCount,
				Timestamp:  aws.Time(timestamp),
			},
			{
				MetricName: aws.String(metricSizeBytes),
				Value:      aws.Float64(float64(totalBytes)),
				Unit:       types.StandardUnitBytes,
				Timestamp:  aws.Time(timestamp),
			},
			{
				MetricName: aws.String(metricSuccess),
				Value:      aws.Float64(1),
				Unit:       types.StandardUnitCount,
				Timestamp:  aws.Time(timestamp),
			},
		},
	}

	if _, err := r.api.PutMetricData(ctx, input); err != nil {
		return &MetricsError{Err: err}
	}

	r.logger.Info("Backup metrics sent",
		"namespace", r.namespace,
		"objects", objectCount,
		"bytes", totalBytes,
	)

	return nil
}
