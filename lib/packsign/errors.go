// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package packsign

import "errors"

var (
	ErrKeygenFailed     = errors.New("packsign: keygen failed")
	ErrSignatureInvalid = errors.New("packsign: signature invalid")
	ErrUnknownKey       = errors.New("packsign: unknown key_id")
	ErrBadPublicKey     = errors.New("packsign: malformed public key")
)
