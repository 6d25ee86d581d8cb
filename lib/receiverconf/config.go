// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package receiverconf

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/actionpack/actionpack/lib/policy"
)

// ErrUnknownKey is returned by Load when a line's key is not one of
// the ten recognized configuration keys.
var ErrUnknownKey = errors.New("receiverconf: unknown key")

// Default resource limits, applied when a key is absent.
const (
	DefaultMaxConns    = 8
	DefaultIOTimeoutMs = 5_000
	DefaultMaxRequest  = 4 * 1024 * 1024
	DefaultMaxOutput   = 1 * 1024 * 1024
)

// Config is the parsed form of action_pack_receiver.conf.
type Config struct {
	Listen         string
	Root           string
	Pubkeys        string
	Policy         string
	AllowLocal     bool
	AllowTailscale bool
	MaxConns       int
	IOTimeoutMs    int
	MaxRequest     int
	MaxOutput      int
}

// Default returns a Config with every resource limit at its default
// and every path/listen field empty.
func Default() Config {
	return Config{
		MaxConns:    DefaultMaxConns,
		IOTimeoutMs: DefaultIOTimeoutMs,
		MaxRequest:  DefaultMaxRequest,
		MaxOutput:   DefaultMaxOutput,
	}
}

// Load parses the configuration file at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("receiverconf: opening %s: %w", path, err)
	}
	defer f.Close()

	cfg := Default()
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, " ")
		if !ok {
			return Config{}, fmt.Errorf("receiverconf: %s:%d: missing value for key %q", path, lineNo, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if err := cfg.set(key, value); err != nil {
			return Config{}, fmt.Errorf("receiverconf: %s:%d: %w", path, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return Config{}, fmt.Errorf("receiverconf: reading %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) set(key, value string) error {
	switch key {
	case "listen":
		cfg.Listen = value
	case "root":
		cfg.Root = value
	case "pubkeys":
		cfg.Pubkeys = value
	case "policy":
		cfg.Policy = value
	case "allow_local":
		b, err := policy.ParseBool(value)
		if err != nil {
			return err
		}
		cfg.AllowLocal = b
	case "allow_tailscale":
		b, err := policy.ParseBool(value)
		if err != nil {
			return err
		}
		cfg.AllowTailscale = b
	case "max_conns":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("max_conns: %w", err)
		}
		cfg.MaxConns = n
	case "io_timeout_ms":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("io_timeout_ms: %w", err)
		}
		cfg.IOTimeoutMs = n
	case "max_request":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("max_request: %w", err)
		}
		cfg.MaxRequest = n
	case "max_output":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("max_output: %w", err)
		}
		cfg.MaxOutput = n
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

// Save writes cfg back out in the same "key value" format Load parses,
// one recognized key per line, for the receiver-enable installer.
func (cfg Config) Save(path string) error {
	var b strings.Builder
	writeLine := func(key, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s %s\n", key, value)
		}
	}
	writeLine("listen", cfg.Listen)
	writeLine("root", cfg.Root)
	writeLine("pubkeys", cfg.Pubkeys)
	writeLine("policy", cfg.Policy)
	fmt.Fprintf(&b, "allow_local %t\n", cfg.AllowLocal)
	fmt.Fprintf(&b, "allow_tailscale %t\n", cfg.AllowTailscale)
	fmt.Fprintf(&b, "max_conns %d\n", cfg.MaxConns)
	fmt.Fprintf(&b, "io_timeout_ms %d\n", cfg.IOTimeoutMs)
	fmt.Fprintf(&b, "max_request %d\n", cfg.MaxRequest)
	fmt.Fprintf(&b, "max_output %d\n", cfg.MaxOutput)

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("receiverconf: writing %s: %w", path, err)
	}
	return nil
}

// DefaultStateDir returns $HOME/.action-pack, the receiver's default
// directory for the keystore, policy, replay cache, and this
// configuration file when no explicit path is given.
func DefaultStateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("receiverconf: resolving home directory: %w", err)
	}
	return home + "/.action-pack", nil
}
