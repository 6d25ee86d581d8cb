// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Package keystore loads the receiver's key_id -> public key table from
// a flat text file: one "key_id<whitespace>base64(pubkey)" entry per
// line, blank lines and #-prefixed comments skipped. A duplicate
// key_id is overwritten by the later entry in the file.
package keystore
