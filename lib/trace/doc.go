// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Package trace records the receiver's per-state-transition transcript
// line as a structured event, independent of how that event is rendered
// (appended to a transcript file, written to stderr as structured log
// lines, or both). Sink is the seam: SlogSink is the default, backed by
// log/slog.
package trace
