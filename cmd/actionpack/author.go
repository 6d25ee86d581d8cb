// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"crypto/rand"
	"fmt"
	"os"
	"time"

	"github.com/actionpack/actionpack/lib/packsign"
	"github.com/actionpack/actionpack/lib/script"
	"github.com/actionpack/actionpack/lib/wire"
)

// defaultTTL is spec.md §4.L's default pack lifetime: 5 minutes.
const defaultTTL = 5 * time.Minute

// buildEnvelope compiles scriptPath, fills in the pack's identity and
// lifetime, signs it with keyID, and returns the signed "SAP1" envelope
// bytes ready to write to a file or send over the wire.
func buildEnvelope(store *packsign.Store, scriptPath, keyID string, ttl time.Duration) ([]byte, error) {
	f, err := os.Open(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("actionpack: opening script %s: %w", scriptPath, err)
	}
	defer f.Close()

	compiled, err := script.Compile(f)
	if err != nil {
		return nil, fmt.Errorf("actionpack: compiling %s: %w", scriptPath, err)
	}

	pack := compiled.Pack
	pack.KeyID = keyID
	if _, err := rand.Read(pack.PackID[:]); err != nil {
		return nil, fmt.Errorf("actionpack: generating pack_id: %w", err)
	}
	now := time.Now()
	pack.CreatedMs = uint64(now.UnixMilli())
	pack.ExpiresMs = uint64(now.Add(ttl).UnixMilli())

	payload, err := wire.EncodePayload(pack)
	if err != nil {
		return nil, fmt.Errorf("actionpack: encoding payload: %w", err)
	}

	signature, err := store.Sign(keyID, payload)
	if err != nil {
		return nil, fmt.Errorf("actionpack: signing: %w", err)
	}

	envelope, err := wire.EncodeEnvelope(wire.Envelope{Payload: payload, Signature: signature})
	if err != nil {
		return nil, fmt.Errorf("actionpack: encoding envelope: %w", err)
	}
	return envelope, nil
}

// readScriptSource returns the raw text of a script, for --dry-run
// preview rendering prior to compilation.
func readScriptSource(scriptPath string) (string, error) {
	data, err := os.ReadFile(scriptPath)
	if err != nil {
		return "", fmt.Errorf("actionpack: reading script %s: %w", scriptPath, err)
	}
	return string(data), nil
}
