// Package recordlog writes report and summary records to a durable log.
package recordlog

import (
	"context"
	"fmt"
	"io"

	"github.com/younsl/rightsizer/internal/models"
)

// Writer appends a record to a named table
type Writer interface {
	PutRecord(ctx context.Context, table string, record models.Record) error
	Name() string
}

// Log writes records to one table and reports the outcome on out.
// Failures are printed and never returned to the caller.
type Log struct {
	writer Writer
	table  string
	out    io.Writer
}

// New creates a Log for table. A nil writer or empty table yields a Log
// that only prints a notice.
func New(writer Writer, table string, out io.Writer) *Log {
	if writer == nil || table == "" {
		writer = Noop{}
	}
	return &Log{
		writer: writer,
		table:  table,
		out:    out,
	}
}

// Enabled reports whether records are actually stored
func (l *Log) Enabled() bool {
	_, noop := l.writer.(Noop)
	return !noop
}

// Backend returns the name of the writer in use
func (l *Log) Backend() string {
	return l.writer.Name()
}

// Put writes record and reports whether it was stored
func (l *Log) Put(ctx context.Context, record models.Record) bool {
	if !l.Enabled() {
		fmt.Fprintln(l.out, "⚠️ Record log not configured.")
		return false
	}

	if err := l.writer.PutRecord(ctx, l.table, record); err != nil {
		fmt.Fprintf(l.out, "❌ Failed to log record to %s table %s: %v\n", l.writer.Name(), l.table, err)
		return false
	}

	fmt.Fprintf(l.out, "✅ Record logged to %s table: %s\n", l.writer.Name(), l.table)
	return true
}

// Noop is the Writer used when no record log is configured
type Noop struct{}

// PutRecord discards the record
func (Noop) PutRecord(context.Context, string, models.Record) error {
	return nil
}

// Name identifies the backend in notices
func (Noop) Name() string {
	return "noop"
}
