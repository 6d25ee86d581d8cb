// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Package peeradmit implements the receiver's peer-address admission
// filter: an IPv4-only predicate accepting loopback and/or the
// 100.64.0.0/10 tailnet range. IPv6 is always rejected.
package peeradmit
