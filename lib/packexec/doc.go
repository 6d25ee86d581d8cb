// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Package packexec drives a single connection's pack from raw request
// bytes to a transcript: envelope decode, payload decode, policy and
// key lookup, signature verification, time-bound and replay checks,
// then per-step execution (sandboxed file writes and spawned
// commands). Every transition is reported to a trace.Sink for
// operational observability; the transcript itself — the plain-text
// response returned to the sender — is built independently, since it
// is the wire-level contract rather than a log.
package packexec
