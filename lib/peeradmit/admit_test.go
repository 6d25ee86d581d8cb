// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package peeradmit

import (
	"net"
	"testing"
)

func TestAllowLoopback(t *testing.T) {
	f := Filter{AllowLocal: true}
	if !f.Allow(net.ParseIP("127.0.0.1")) {
		t.Fatalf("expected loopback to be admitted")
	}
	if f.Allow(net.ParseIP("10.0.0.1")) {
		t.Fatalf("expected non-loopback to be denied when only AllowLocal is set")
	}
}

func TestAllowTailnet(t *testing.T) {
	f := Filter{AllowTailscale: true}
	cases := map[string]bool{
		"100.64.0.1":  true,
		"100.127.0.1": true,
		"100.63.0.1":  false,
		"100.128.0.1": false,
	}
	for addr, want := range cases {
		if got := f.Allow(net.ParseIP(addr)); got != want {
			t.Errorf("Allow(%s) = %v, want %v", addr, got, want)
		}
	}
}

func TestIPv6AlwaysRejected(t *testing.T) {
	f := Filter{AllowLocal: true, AllowTailscale: true}
	if f.Allow(net.ParseIP("::1")) {
		t.Fatalf("expected IPv6 loopback to be rejected")
	}
}

func TestNeitherFlagSetDeniesEverything(t *testing.T) {
	f := Filter{}
	if f.Allow(net.ParseIP("127.0.0.1")) || f.Allow(net.ParseIP("100.64.0.1")) {
		t.Fatalf("expected all addresses denied with no flags set")
	}
}
