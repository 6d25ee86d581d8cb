// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package receiverdir

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ErrNotFound is returned by Lookup when no entry matches the given name.
var ErrNotFound = errors.New("receiverdir: no such receiver")

// Entry is one registered receiver: a human-chosen name and its
// "host:port" address.
type Entry struct {
	Name string
	Addr string
}

// Load parses the receiver directory at path. A missing file is not an
// error — it is treated the same as an empty directory, since
// `register` creates the file on first use.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("receiverdir: opening %s: %w", path, err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("receiverdir: %s: malformed line %q", path, line)
		}
		entries = append(entries, Entry{Name: fields[0], Addr: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("receiverdir: reading %s: %w", path, err)
	}
	return entries, nil
}

// Upsert inserts or overwrites the entry named name, then rewrites the
// directory at path in name-sorted order.
func Upsert(path, name, addr string) error {
	entries, err := Load(path)
	if err != nil {
		return err
	}

	replaced := false
	for i := range entries {
		if entries[i].Name == name {
			entries[i].Addr = addr
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, Entry{Name: name, Addr: addr})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s %s\n", e.Name, e.Addr)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("receiverdir: writing %s: %w", path, err)
	}
	return nil
}

// Lookup returns the entry registered under name.
func Lookup(entries []Entry, name string) (Entry, error) {
	for _, e := range entries {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}
