// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"context"
	"log/slog"
	"time"
)

// Event is a single state-transition record in a pack's execution
// transcript.
type Event struct {
	Time      time.Time
	PackID    string
	KeyID     string
	State     string
	StepIndex int
	Detail    string
	Err       error
}

// Sink receives transcript events as they occur. Implementations must
// not block the caller for long; packexec emits one event per state
// transition and per step.
type Sink interface {
	Emit(ctx context.Context, event Event)
}

// SlogSink adapts Sink to log/slog, the default used whenever a more
// specific transcript sink has not been configured.
type SlogSink struct {
	Logger *slog.Logger
}

// NewSlogSink returns a SlogSink. A nil logger falls back to a
// discarding logger so callers never need a nil check.
func NewSlogSink(logger *slog.Logger) SlogSink {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return SlogSink{Logger: logger}
}

func (s SlogSink) Emit(ctx context.Context, event Event) {
	attrs := []slog.Attr{
		slog.String("pack_id", event.PackID),
		slog.String("key_id", event.KeyID),
		slog.String("state", event.State),
	}
	if event.StepIndex >= 0 {
		attrs = append(attrs, slog.Int("step_index", event.StepIndex))
	}
	if event.Detail != "" {
		attrs = append(attrs, slog.String("detail", event.Detail))
	}
	level := slog.LevelInfo
	if event.Err != nil {
		level = slog.LevelError
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	s.Logger.LogAttrs(ctx, level, "pack transition", attrs...)
}
