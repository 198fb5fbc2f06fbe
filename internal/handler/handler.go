// Package handler exposes the scheduled backup flow as a Lambda-style
// entry point: configuration from the environment, a structured 200/500
// response, and no error propagation past this boundary.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/greenstone-io/bucket-backup/internal/backup"
)

// Response is the structured result returned to the invocation harness.
// Body carries a JSON document describing the run outcome.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type successBody struct {
	Message         string `json:"message"`
	Timestamp       string `json:"timestamp"`
	ObjectsBackedUp *int64 `json:"objects_backed_up,omitempty"`
	TotalSizeBytes  *int64 `json:"total_size_bytes,omitempty"`
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Handler wires configuration, the object store and the metrics sink into
// the backup orchestrator.
type Handler struct {
	cfg     *backup.Config
	store   backup.ObjectStore
	metrics backup.MetricsSink
	logger  *slog.Logger
}

// New builds a handler from explicit dependencies.
func New(cfg *backup.Config, store backup.ObjectStore, metrics backup.MetricsSink, logger *slog.Logger) *Handler {
	return &Handler{
		cfg:     cfg,
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// NewFromEnv builds a handler with real AWS clients, reading all
// configuration from the process environment.
func NewFromEnv(ctx context.Context, logger *slog.Logger) (*Handler, error) {
	cfg, err := backup.LoadConfig()
	if err != nil {
		return nil, err
	}

	s3Client, err := backup.NewS3Client(ctx, cfg.S3)
	if err != nil {
		return nil, err
	}

	cwClient, err := backup.NewCloudWatchClient(ctx, cfg.S3)
	if err != nil {
		return nil, err
	}

	store := backup.NewS3Store(s3Client, logger)
	metrics := backup.NewCloudWatchReporter(cwClient, cfg.MetricsNamespace, logger)

	return New(cfg, store, metrics, logger), nil
}

// Handle runs one backup pass. The event payload only triggers the run;
// its content is ignored. Expected failures are converted into a 500
// response, never returned as a Go error.
func (h *Handler) Handle(ctx context.Context, event events.CloudWatchEvent) (Response, error) {
	retention := backup.NewRetentionEnforcer(h.store, h.cfg.BackupBucket, h.cfg.RetentionDays, h.logger)
	service := backup.NewBackupService(h.store, retention, h.metrics, h.cfg.SourceBucket, h.cfg.BackupBucket, h.logger)

	summary, err := service.Run(ctx)
	if err != nil {
		h.logger.Error("Error in backup process", "error", err)
		return jsonResponse(500, errorBody{
			Message: "Backup failed",
			Error:   err.Error(),
		}), nil
	}

	if summary.Empty {
		return jsonResponse(200, successBody{
			Message:   "No objects to backup",
			Timestamp: summary.Timestamp,
		}), nil
	}

	return jsonResponse(200, successBody{
		Message:         "Backup completed successfully",
		Timestamp:       summary.Timestamp,
		ObjectsBackedUp: &summary.ObjectsBackedUp,
		TotalSizeBytes:  &summary.TotalSizeBytes,
	}), nil
}

func jsonResponse(statusCode int, body any) Response {
	data, err := json.Marshal(body)
	if err != nil {
		// Marshalling plain structs of strings and ints cannot fail.
		return Response{StatusCode: 500, Body: `{"message":"Backup failed","error":"internal encoding error"}`}
	}
	return Response{StatusCode: statusCode, Body: string(data)}
}
