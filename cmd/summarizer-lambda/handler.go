package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-logr/logr"

	"github.com/younsl/rightsizer/pkg/summarize"
)

// ObjectStore reads and writes objects in arbitrary buckets
type ObjectStore interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	PutObject(ctx context.Context, bucket, key string, body []byte) error
}

// Response is returned to the Lambda runtime
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type handler struct {
	store      ObjectStore
	summarizer summarize.Summarizer
	log        logr.Logger
}

func newHandler(store ObjectStore, summarizer summarize.Summarizer, log logr.Logger) *handler {
	return &handler{store: store, summarizer: summarizer, log: log}
}

// Handle summarizes the object of the first record and stores the summary
// next to it as <key without extension>_summary.txt
func (h *handler) Handle(ctx context.Context, event events.S3Event) (Response, error) {
	if len(event.Records) == 0 {
		return Response{StatusCode: http.StatusBadRequest, Body: "No records in event"}, nil
	}

	entity := event.Records[0].S3
	bucket := entity.Bucket.Name
	key := entity.Object.URLDecodedKey
	if key == "" {
		key = entity.Object.Key
	}

	kind, err := summarize.DetectKind(key)
	if err != nil {
		return Response{StatusCode: http.StatusBadRequest, Body: "Unsupported file type"}, nil
	}

	if h.summarizer == nil {
		return Response{StatusCode: http.StatusInternalServerError, Body: "No Together API key set"}, nil
	}

	data, err := h.store.GetObject(ctx, bucket, key)
	if err != nil {
		return Response{}, err
	}

	text, err := summarize.ExtractBytes(kind, data)
	if err != nil {
		return Response{}, fmt.Errorf("failed to extract text from s3://%s/%s: %w", bucket, key, err)
	}

	summary, err := h.summarizer.Summarize(ctx, text)
	if err != nil {
		h.log.Error(err, "summarization failed", "bucket", bucket, "key", key)
		return Response{StatusCode: http.StatusBadGateway, Body: "Summarization failed"}, nil
	}

	summaryKey := summarize.SummaryPath(key)
	if err := h.store.PutObject(ctx, bucket, summaryKey, []byte(summary)); err != nil {
		return Response{}, err
	}

	h.log.Info("summary saved", "bucket", bucket, "key", summaryKey, "chars", len(summary))
	return Response{StatusCode: http.StatusOK, Body: "Summary saved as " + strings.TrimPrefix(summaryKey, "/")}, nil
}
