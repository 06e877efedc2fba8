package assets

import (
	"log/slog"

	"github.com/google/uuid"
)

// Operation names the background step that failed.
type Operation string

const (
	OpWriteImage    Operation = "write_image"
	OpReplaceRecord Operation = "replace_record"
	OpDeleteImage   Operation = "delete_image"
	OpEnqueue       Operation = "enqueue"
)

// Reporter receives failures that are not returned to the HTTP caller.
type Reporter interface {
	Report(op Operation, id uuid.UUID, err error)
}

type logReporter struct {
	logger *slog.Logger
}

// NewLogReporter reports failures as structured warnings.
func NewLogReporter(logger *slog.Logger) Reporter {
	return &logReporter{logger: logger.With("system", "assets")}
}

func (r *logReporter) Report(op Operation, id uuid.UUID, err error) {
	r.logger.Warn("asset operation failed", "operation", string(op), "id", id, "error", err)
}
