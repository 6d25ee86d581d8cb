// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Package dialer implements the sender's transport to a receiver: a
// short exponential-backoff TCP dial followed by one write-then-read
// exchange, per spec.md §4.L's "dial, write all envelope bytes,
// half-close the write side, read the entire response until EOF" rule.
package dialer
