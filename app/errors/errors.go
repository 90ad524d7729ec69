package errors

import (
	"errors"
	"log/slog"
	"maps"
	"slices"
)

// Log logs an error using the given logger, extracting metadata if it's a
// StructuredError. The cause is rendered first, followed by the metadata
// sorted by key. If logger is nil, the default slog logger is used.
func Log(logger *slog.Logger, err error) {
	if logger == nil {
		logger = slog.Default()
	}

	var serr *StructuredError
	if !errors.As(err, &serr) {
		logger.Error(err.Error())
		return
	}

	args := make([]any, 0, len(serr.metadata)*2+2)

	cause := serr.metadata["cause"]
	if serr.cause != nil {
		cause = serr.cause
	}
	if cause != nil {
		args = append(args, "cause", cause)
	}

	for _, k := range slices.Sorted(maps.Keys(serr.metadata)) {
		if k != "cause" {
			args = append(args, k, serr.metadata[k])
		}
	}

	logger.Error(serr.Error(), args...)
}
