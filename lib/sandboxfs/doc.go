// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Package sandboxfs implements the Action Pack receiver's sandboxed
// atomic file writer: every WriteFileStep destination is resolved
// against a realpath-canonicalized root before a byte is written, and
// the write itself lands via create-temp, write, fchmod, fsync, rename
// — never in place. Root is required; there is no "write anywhere"
// mode.
package sandboxfs
