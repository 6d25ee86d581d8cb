// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package keystore

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Keystore maps key_id to a base64-encoded pubkey_external value.
type Keystore struct {
	keys map[string]string
}

// Load parses the keystore file at path.
func Load(path string) (*Keystore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("keystore: opening %s: %w", path, err)
	}
	defer f.Close()

	ks := &Keystore{keys: make(map[string]string)}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("keystore: %s: malformed line %q", path, line)
		}
		ks.keys[fields[0]] = fields[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("keystore: reading %s: %w", path, err)
	}
	return ks, nil
}

// New returns an empty Keystore, for programmatic construction in tests
// and in the receiver-enable installer.
func New() *Keystore {
	return &Keystore{keys: make(map[string]string)}
}

// Put inserts or overwrites the public key for key_id.
func (ks *Keystore) Put(keyID, pubkeyB64 string) {
	ks.keys[keyID] = pubkeyB64
}

// Lookup returns the base64 public key registered for key_id.
func (ks *Keystore) Lookup(keyID string) (string, bool) {
	pub, ok := ks.keys[keyID]
	return pub, ok
}

// Save writes the keystore back out in the same "key_id<WS>pubkey"
// format it was loaded from, one line per entry.
func (ks *Keystore) Save(path string) error {
	var b strings.Builder
	for id, pub := range ks.keys {
		fmt.Fprintf(&b, "%s %s\n", id, pub)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("keystore: writing %s: %w", path, err)
	}
	return nil
}
