// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire implements the two binary frames that make up an Action
// Pack delivery: the outer "SAP1" envelope (a signed payload plus its
// detached signature) and the inner "APK1" payload (the authenticated
// Pack itself — key id, time bounds, environment, and an ordered step
// list).
//
// Both frames use fixed little-endian integer widths and length-prefixed
// strings/blobs. Decoding is fully bounds-checked: every multi-byte read
// is validated against the remaining buffer before the bytes are
// consumed, and a payload with trailing bytes after the last declared
// step is rejected.
package wire
