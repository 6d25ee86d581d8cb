// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Package runner executes a single ExecStep's argv as a child process
// under its own process group, enforcing a wall-clock timeout and a
// hard cap on captured stdout/stderr bytes. Reaping is non-blocking: a
// background goroutine calls Wait and reports the result over a
// buffered channel, while the caller polls every 50ms for completion,
// timeout, or an output-cap overflow that warrants an early kill.
package runner
