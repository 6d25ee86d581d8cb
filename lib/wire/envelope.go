// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"fmt"
)

// envelopeMagic is the four-byte magic at the start of every envelope.
var envelopeMagic = [4]byte{'S', 'A', 'P', '1'}

const maxFrameLen = 0xFFFFFFFF

// EncodeEnvelope serializes an Envelope as:
//
//	"SAP1" | u32 payload_len | payload | u32 sig_len | sig
//
// Both Payload and Signature must be nonempty and at most 2^32-1 bytes.
func EncodeEnvelope(e Envelope) ([]byte, error) {
	if len(e.Payload) == 0 {
		return nil, fmt.Errorf("envelope payload: %w", ErrEmptyField)
	}
	if len(e.Signature) == 0 {
		return nil, fmt.Errorf("envelope signature: %w", ErrEmptyField)
	}
	if uint64(len(e.Payload)) > maxFrameLen {
		return nil, fmt.Errorf("envelope payload: %w", ErrFieldTooLarge)
	}
	if uint64(len(e.Signature)) > maxFrameLen {
		return nil, fmt.Errorf("envelope signature: %w", ErrFieldTooLarge)
	}

	out := make([]byte, 0, 4+4+len(e.Payload)+4+len(e.Signature))
	out = append(out, envelopeMagic[:]...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(e.Payload)))
	out = append(out, e.Payload...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(e.Signature)))
	out = append(out, e.Signature...)
	return out, nil
}

// DecodeEnvelope parses the SAP1 frame produced by EncodeEnvelope.
// Fails if the magic mismatches, any length is truncated, or any bytes
// remain after the signature (invariant 7: payload.len() + sig.len() +
// 12 == total bytes on wire, exactly).
func DecodeEnvelope(data []byte) (Envelope, error) {
	r := newReader(data)

	magic, err := r.need(4, "magic")
	if err != nil {
		return Envelope{}, err
	}
	if string(magic) != string(envelopeMagic[:]) {
		return Envelope{}, fmt.Errorf("%w: got %q", ErrBadMagic, magic)
	}

	payload, err := r.blob32("payload")
	if err != nil {
		return Envelope{}, err
	}
	sig, err := r.blob32("signature")
	if err != nil {
		return Envelope{}, err
	}

	if r.remaining() != 0 {
		return Envelope{}, fmt.Errorf("%w: %d bytes after signature", ErrTrailingBytes, r.remaining())
	}

	return Envelope{Payload: payload, Signature: sig}, nil
}
