// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package sandboxfs

import "errors"

var (
	ErrNotAbsolute         = errors.New("sandboxfs: path must be absolute")
	ErrBadPath             = errors.New("sandboxfs: bad path")
	ErrBadFilename         = errors.New("sandboxfs: bad filename")
	ErrBadParentDir        = errors.New("sandboxfs: bad parent dir")
	ErrOutsideRoot         = errors.New("sandboxfs: path outside root")
	ErrExecWritesForbidden = errors.New("sandboxfs: executable writes forbidden")
	ErrMkstempFailed       = errors.New("sandboxfs: mkstemp failed")
	ErrDestIsDirectory     = errors.New("sandboxfs: destination is a directory")
	ErrRenameFailed        = errors.New("sandboxfs: rename failed")
	ErrWriteFailed         = errors.New("sandboxfs: write failed")
)
