// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import "errors"

var (
	ErrEmptyArgv   = errors.New("runner: argv is empty")
	ErrStartFailed = errors.New("runner: failed to start process")
)
