package aws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/younsl/rightsizer/internal/models"
)

// LogsAPI is the subset of the CloudWatch Logs API used by LogsRecordWriter
type LogsAPI interface {
	CreateLogStream(ctx context.Context, params *cloudwatchlogs.CreateLogStreamInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error)
	PutLogEvents(ctx context.Context, params *cloudwatchlogs.PutLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error)
}

// LogsRecordWriter writes records as JSON log events. Each table maps to a
// log stream of the same name inside one log group.
type LogsRecordWriter struct {
	client   LogsAPI
	logGroup string
	now      func() time.Time

	mu      sync.Mutex
	streams map[string]bool
}

// NewLogsRecordWriter creates a new LogsRecordWriter
func NewLogsRecordWriter(client LogsAPI, logGroup string) *LogsRecordWriter {
	return &LogsRecordWriter{
		client:   client,
		logGroup: logGroup,
		now:      time.Now,
		streams:  make(map[string]bool),
	}
}

// NewLogsRecordWriterFromConfig creates a new LogsRecordWriter from a loaded AWS config
func NewLogsRecordWriterFromConfig(cfg aws.Config, logGroup string) *LogsRecordWriter {
	return NewLogsRecordWriter(cloudwatchlogs.NewFromConfig(cfg), logGroup)
}

// PutRecord appends record to the stream named table
func (w *LogsRecordWriter) PutRecord(ctx context.Context, table string, record models.Record) error {
	if err := w.ensureStream(ctx, table); err != nil {
		return err
	}

	message, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("error marshalling record: %w", err)
	}

	_, err = w.client.PutLogEvents(ctx, &cloudwatchlogs.PutLogEventsInput{
		LogGroupName:  aws.String(w.logGroup),
		LogStreamName: aws.String(table),
		LogEvents: []types.InputLogEvent{
			{
				Message:   aws.String(string(message)),
				Timestamp: aws.Int64(w.now().UnixMilli()),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("PutLogEvents failed for %s/%s: %w", w.logGroup, table, err)
	}
	return nil
}

// Name identifies the backend in notices
func (w *LogsRecordWriter) Name() string {
	return "cloudwatchlogs"
}

func (w *LogsRecordWriter) ensureStream(ctx context.Context, stream string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.streams[stream] {
		return nil
	}

	_, err := w.client.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  aws.String(w.logGroup),
		LogStreamName: aws.String(stream),
	})
	if err != nil {
		var alreadyExists *types.ResourceAlreadyExistsException
		if !errors.As(err, &alreadyExists) {
			return fmt.Errorf("CreateLogStream failed for %s/%s: %w", w.logGroup, stream, err)
		}
	}

	w.streams[stream] = true
	return nil
}
