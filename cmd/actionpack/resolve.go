// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"net"

	"github.com/actionpack/actionpack/lib/fuzzyname"
	"github.com/actionpack/actionpack/lib/picker"
	"github.com/actionpack/actionpack/lib/receiverdir"
)

// ErrAmbiguousReceiver is returned when --to was omitted, more than one
// receiver is registered, and stdout is not a terminal to show a picker.
var ErrAmbiguousReceiver = errors.New("receiver ambiguous: use --to")

// resolveReceiverAddr turns a --to value (possibly empty) into a dial
// address, consulting the receiver directory for name lookups, fuzzy
// name matching, and — when to is empty and more than one receiver is
// registered — the interactive picker.
func resolveReceiverAddr(to, dirPath string) (string, error) {
	entries, err := receiverdir.Load(dirPath)
	if err != nil {
		return "", err
	}

	if to != "" {
		if _, _, err := net.SplitHostPort(to); err == nil {
			return to, nil
		}
		if entry, err := receiverdir.Lookup(entries, to); err == nil {
			return entry.Addr, nil
		}
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name
		}
		match, ok := fuzzyname.Best(names, to)
		if !ok {
			return "", fmt.Errorf("receiver resolve: no receiver matches %q", to)
		}
		entry, err := receiverdir.Lookup(entries, match.Name)
		if err != nil {
			return "", err
		}
		return entry.Addr, nil
	}

	switch len(entries) {
	case 0:
		return "", fmt.Errorf("receiver required: use --to")
	case 1:
		return entries[0].Addr, nil
	default:
		chosen, ok, err := picker.Pick(entries)
		if err != nil {
			if errors.Is(err, picker.ErrNotInteractive) {
				return "", ErrAmbiguousReceiver
			}
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("receiver selection cancelled")
		}
		return chosen.Addr, nil
	}
}
