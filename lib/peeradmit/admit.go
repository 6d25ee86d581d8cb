// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package peeradmit

import (
	"net"
)

// Filter decides whether a peer IPv4 address may open a connection.
type Filter struct {
	AllowLocal     bool
	AllowTailscale bool
}

// Allow reports whether addr is admitted. IPv6 addresses are always
// rejected, regardless of the filter's settings.
func (f Filter) Allow(addr net.IP) bool {
	v4 := addr.To4()
	if v4 == nil {
		return false
	}
	if f.AllowLocal && v4[0] == 127 {
		return true
	}
	if f.AllowTailscale && v4[0] == 100 && v4[1] >= 64 && v4[1] <= 127 {
		return true
	}
	return false
}
