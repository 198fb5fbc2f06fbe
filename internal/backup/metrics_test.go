package backup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCloudWatch struct {
	inputs []*cloudwatch.PutMetricDataInput
	err    error
}

func (f *fakeCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func TestPutBackupMetrics(t *testing.T) {
	now := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	fake := &fakeCloudWatch{}
	reporter := NewCloudWatchReporter(fake, "MapReduce/Backup", testLogger())
	reporter.now = func() time.Time { return now }

	require.NoError(t, reporter.PutBackupMetrics(context.Background(), 42, 1<<20))

	require.Len(t, fake.inputs, 1)
	input := fake.inputs[0]
	assert.Equal(t, "MapReduce/Backup", aws.ToString(input.Namespace))

	require.Len(t, input.MetricData, 3)

	byName := make(map[string]types.MetricDatum)
	for _, datum := range input.MetricData {
		byName[aws.ToString(datum.MetricName)] = datum
	}

	count, ok := byName["BackupObjectsCount"]
	require.True(t, ok)
	assert.Equal(t, float64(42), aws.ToFloat64(count.Value))
	assert.Equal(t, types.StandardUnitCount, count.Unit)
	assert.Equal(t, now, aws.ToTime(count.Timestamp))

	size, ok := byName["BackupSizeBytes"]
	require.True(t, ok)
	assert.Equal(t, float64(1<<20), aws.ToFloat64(size.Value))
	assert.Equal(t, types.StandardUnitBytes, size.Unit)

	success, ok := byName["BackupSuccess"]
	require.True(t, ok)
	assert.Equal(t, float64(1), aws.ToFloat64(success.Value))
	assert.Equal(t, types.StandardUnitCount, success.Unit)
}

func TestPutBackupMetricsFailure(t *testing.T) {
	fake := &fakeCloudWatch{err: errors.New("throttled")}
	reporter := NewCloudWatchReporter(fake, "MapReduce/Backup", testLogger())

	err := reporter.PutBackupMetrics(context.Background(), 1, 1)

	var metricsErr *MetricsError
	require.True(t, errors.As(err, &metricsErr))
}
