// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultStateDir returns $HOME/.action-pack, the sender's default
// directory for its signing keystore and receiver directory — the
// same base path convention the receiver side uses for its own state
// (lib/receiverconf.DefaultStateDir), kept separate in practice by the
// "keys" and "receivers" subpaths below.
func defaultStateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("actionpack: resolving home directory: %w", err)
	}
	return filepath.Join(home, ".action-pack"), nil
}

func keystoreDir(stateDir string) string {
	return filepath.Join(stateDir, "keys")
}

func receiverDirPath(stateDir string) string {
	return filepath.Join(stateDir, "receivers")
}
