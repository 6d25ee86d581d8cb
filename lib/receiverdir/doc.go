// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Package receiverdir manages the sender's on-disk receiver directory:
// one "name host:port" line per registered receiver.
package receiverdir
