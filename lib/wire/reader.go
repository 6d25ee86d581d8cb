// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"fmt"
)

// reader is a cursor over an in-memory decode buffer. Every multi-byte
// read goes through need, which fails with a precise "truncated" error
// naming what was being read instead of a generic index-out-of-range
// panic recovery.
type reader struct {
	buf []byte
	pos int
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

// need returns the next n bytes and advances the cursor, or fails if
// fewer than n bytes remain.
func (r *reader) need(n int, what string) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, fmt.Errorf("%w: need %d bytes for %s, have %d", ErrTruncated, n, what, len(r.buf)-r.pos)
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) byte(what string) (byte, error) {
	b, err := r.need(1, what)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) u16(what string) (uint16, error) {
	b, err := r.need(2, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) u32(what string) (uint32, error) {
	b, err := r.need(4, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) u64(what string) (uint64, error) {
	b, err := r.need(8, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// string16 reads a u16 length prefix followed by that many bytes, and
// returns them as a string.
func (r *reader) string16(what string) (string, error) {
	n, err := r.u16(what + " length")
	if err != nil {
		return "", err
	}
	b, err := r.need(int(n), what)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// blob32 reads a u32 length prefix followed by that many bytes.
func (r *reader) blob32(what string) ([]byte, error) {
	n, err := r.u32(what + " length")
	if err != nil {
		return nil, err
	}
	b, err := r.need(int(n), what)
	if err != nil {
		return nil, err
	}
	// Copy out — the caller may retain this slice past the lifetime of
	// the decode buffer, and callers of blob32 (write-step data) hand
	// the bytes to the sandbox writer, which must own its own copy.
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// remaining reports how many bytes are left unread.
func (r *reader) remaining() int {
	return len(r.buf) - r.pos
}
