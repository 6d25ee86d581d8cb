// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Package server implements the receiver's TCP accept loop: peer
// admission before a connection slot is even acquired, a counting
// semaphore bounding concurrent pack executions, per-socket I/O
// deadlines, a hard cap on request size, and graceful shutdown that
// waits for in-flight handlers to finish. Each connection runs exactly
// one request-response cycle against a packexec.Executor.
package server
