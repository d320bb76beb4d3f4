package recordlog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younsl/rightsizer/internal/models"
)

type failingWriter struct{}

func (failingWriter) PutRecord(context.Context, string, models.Record) error {
	return errors.New("boom")
}

func (failingWriter) Name() string { return "dynamodb" }

func TestLog_NotConfigured(t *testing.T) {
	for name, log := range map[string]func(*bytes.Buffer) *Log{
		"nil writer":  func(b *bytes.Buffer) *Log { return New(nil, "table", b) },
		"empty table": func(b *bytes.Buffer) *Log { return New(failingWriter{}, "", b) },
	} {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			l := log(&out)

			assert.False(t, l.Enabled())
			assert.False(t, l.Put(context.Background(), models.Record{"a": 1}))
			assert.Equal(t, "⚠️ Record log not configured.\n", out.String())
		})
	}
}

func TestLog_FailureIsNotFatal(t *testing.T) {
	var out bytes.Buffer
	l := New(failingWriter{}, "smart_notes", &out)

	assert.True(t, l.Enabled())
	assert.False(t, l.Put(context.Background(), models.Record{"a": 1}))
	assert.Contains(t, out.String(), "❌ Failed to log record to dynamodb table smart_notes: boom")
}

func TestRedisWriter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	var out bytes.Buffer
	l := New(NewRedisWriter(client), "smart_notes", &out)

	require.True(t, l.Put(context.Background(), models.Record{"filename": "a.csv", "n": 1}))
	require.True(t, l.Put(context.Background(), models.Record{"filename": "b.csv", "n": 2}))
	assert.Equal(t, "redis", l.Backend())
	assert.Contains(t, out.String(), "✅ Record logged to redis table: smart_notes")

	items, err := mr.List("smart_notes")
	require.NoError(t, err)
	require.Len(t, items, 2)

	// LPUSH puts the newest record first
	var newest map[string]any
	require.NoError(t, json.Unmarshal([]byte(items[0]), &newest))
	assert.Equal(t, "b.csv", newest["filename"])
}

func TestRedisWriter_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	err := NewRedisWriter(client).PutRecord(context.Background(), "t", models.Record{"a": 1})
	assert.Error(t, err)
}
