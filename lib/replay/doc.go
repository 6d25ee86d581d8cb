// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Package replay implements the receiver's persistent replay cache: a
// append-only file of "hex(pack_id)\texpires_ms\n" lines backing an
// in-memory map. Lookup-then-insert is one critical section guarded by
// a single mutex, making the replay check linearizable across
// concurrently handled connections.
package replay
