// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import "errors"

// Sentinel codec errors, returned wrapped with additional detail via
// fmt.Errorf("...: %w", ...). Callers should use errors.Is against these
// rather than matching on error strings.
var (
	ErrBadMagic           = errors.New("wire: bad magic")
	ErrTruncated          = errors.New("wire: truncated")
	ErrTrailingBytes      = errors.New("wire: trailing bytes")
	ErrUnsupportedVersion = errors.New("wire: unsupported version")
	ErrUnsupportedOpcode  = errors.New("wire: unsupported opcode")
	ErrTooManySteps       = errors.New("wire: too many steps")
	ErrWriteBytesTooLarge = errors.New("wire: total embedded write bytes too large")
	ErrEmptyField         = errors.New("wire: field must be nonempty")
	ErrFieldTooLarge      = errors.New("wire: field exceeds maximum size")
)
