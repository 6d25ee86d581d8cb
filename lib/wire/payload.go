// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"fmt"
)

var payloadMagic = [4]byte{'A', 'P', 'K', '1'}

// minPayloadVersion/maxPayloadVersion bound the version byte accepted on
// decode. Version 1 never carries WriteFileStep (opcode 2); Encode always
// writes CurrentVersion (2). See the Open Question in SPEC_FULL.md §9 on
// why version 1 remains a decode target with no encode path.
const (
	minPayloadVersion = 1
	maxPayloadVersion = 2
)

// EncodePayload serializes a Pack as an "APK1" payload. The caller's
// Env order is preserved verbatim — EncodePayload performs no sorting or
// deduplication. Encode always writes CurrentVersion (2) and a zero
// reserved field, regardless of what p.Version/p.Reserved hold (those
// fields only matter for Packs obtained via Decode).
func EncodePayload(p Pack) ([]byte, error) {
	if len(p.KeyID) == 0 || len(p.KeyID) > MaxKeyIDLen {
		return nil, fmt.Errorf("payload key_id: %w", ErrEmptyField)
	}
	if len(p.Steps) > MaxSteps {
		return nil, fmt.Errorf("%w: %d steps", ErrTooManySteps, len(p.Steps))
	}
	var totalWriteBytes uint64
	for _, step := range p.Steps {
		if w, ok := step.(WriteFileStep); ok {
			totalWriteBytes += uint64(len(w.Data))
		}
	}
	if totalWriteBytes > MaxWriteBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrWriteBytesTooLarge, totalWriteBytes)
	}

	out := make([]byte, 0, 256)
	out = append(out, payloadMagic[:]...)
	out = append(out, CurrentVersion)
	out = append(out, byte(len(p.KeyID)))
	out = binary.LittleEndian.AppendUint16(out, 0) // reserved, always 0 on write
	out = binary.LittleEndian.AppendUint64(out, p.CreatedMs)
	out = binary.LittleEndian.AppendUint64(out, p.ExpiresMs)
	out = append(out, p.PackID[:]...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(p.Env)))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(p.Steps)))
	out = append(out, p.KeyID...)

	for _, entry := range p.Env {
		out = appendString16(out, entry.Key)
		out = appendString16(out, entry.Value)
	}

	for i, step := range p.Steps {
		var err error
		out, err = appendStep(out, step)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}

	return out, nil
}

func appendString16(out []byte, s string) []byte {
	out = binary.LittleEndian.AppendUint16(out, uint16(len(s)))
	return append(out, s...)
}

func appendStep(out []byte, step Step) ([]byte, error) {
	switch s := step.(type) {
	case ExecStep:
		out = append(out, byte(StepKindExec))
		out = append(out, 0) // flags, reserved
		out = binary.LittleEndian.AppendUint16(out, 0)
		out = binary.LittleEndian.AppendUint32(out, s.TimeoutMs)
		out = appendString16(out, s.Cwd)
		out = binary.LittleEndian.AppendUint16(out, uint16(len(s.Argv)))
		for _, arg := range s.Argv {
			out = appendString16(out, arg)
		}
		return out, nil
	case WriteFileStep:
		out = append(out, byte(StepKindWrite))
		out = append(out, 0)
		out = binary.LittleEndian.AppendUint16(out, 0)
		out = binary.LittleEndian.AppendUint32(out, s.Mode)
		out = appendString16(out, s.Path)
		out = binary.LittleEndian.AppendUint32(out, uint32(len(s.Data)))
		out = append(out, s.Data...)
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedOpcode, step)
	}
}

// DecodePayload parses an "APK1" payload produced by EncodePayload (or
// by a version-1 producer this implementation never emits but must
// still accept).
func DecodePayload(data []byte) (Pack, error) {
	r := newReader(data)

	magic, err := r.need(4, "magic")
	if err != nil {
		return Pack{}, err
	}
	if string(magic) != string(payloadMagic[:]) {
		return Pack{}, fmt.Errorf("%w: got %q", ErrBadMagic, magic)
	}

	version, err := r.byte("version")
	if err != nil {
		return Pack{}, err
	}
	if version < minPayloadVersion || version > maxPayloadVersion {
		return Pack{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	keyIDLen, err := r.byte("key_id_len")
	if err != nil {
		return Pack{}, err
	}

	reserved, err := r.u16("reserved")
	if err != nil {
		return Pack{}, err
	}

	createdMs, err := r.u64("created_ms")
	if err != nil {
		return Pack{}, err
	}
	expiresMs, err := r.u64("expires_ms")
	if err != nil {
		return Pack{}, err
	}

	packIDBytes, err := r.need(16, "pack_id")
	if err != nil {
		return Pack{}, err
	}

	envCount, err := r.u32("env_count")
	if err != nil {
		return Pack{}, err
	}
	stepCount, err := r.u32("step_count")
	if err != nil {
		return Pack{}, err
	}
	if stepCount > MaxSteps {
		return Pack{}, fmt.Errorf("%w: %d steps", ErrTooManySteps, stepCount)
	}

	keyIDBytes, err := r.need(int(keyIDLen), "key_id")
	if err != nil {
		return Pack{}, err
	}

	p := Pack{
		Version:   version,
		Reserved:  reserved,
		KeyID:     string(keyIDBytes),
		CreatedMs: createdMs,
		ExpiresMs: expiresMs,
	}
	copy(p.PackID[:], packIDBytes)

	p.Env = make([]EnvEntry, 0, envCount)
	for i := uint32(0); i < envCount; i++ {
		k, err := r.string16("env key")
		if err != nil {
			return Pack{}, fmt.Errorf("env entry %d: %w", i, err)
		}
		v, err := r.string16("env value")
		if err != nil {
			return Pack{}, fmt.Errorf("env entry %d: %w", i, err)
		}
		p.Env = append(p.Env, EnvEntry{Key: k, Value: v})
	}

	var totalWriteBytes uint64
	p.Steps = make([]Step, 0, stepCount)
	for i := uint32(0); i < stepCount; i++ {
		step, writeBytes, err := decodeStep(r, version)
		if err != nil {
			return Pack{}, fmt.Errorf("step %d: %w", i, err)
		}
		totalWriteBytes += writeBytes
		if totalWriteBytes > MaxWriteBytes {
			return Pack{}, fmt.Errorf("%w: %d bytes", ErrWriteBytesTooLarge, totalWriteBytes)
		}
		p.Steps = append(p.Steps, step)
	}

	if r.remaining() != 0 {
		return Pack{}, fmt.Errorf("%w: %d bytes after last step", ErrTrailingBytes, r.remaining())
	}

	return p, nil
}

// decodeStep reads one step header plus its opcode-specific body.
// Returns the decoded step and, for write steps, the number of embedded
// data bytes (used by the caller to track the running total against
// MaxWriteBytes without a second pass).
func decodeStep(r *reader, version byte) (Step, uint64, error) {
	opcode, err := r.byte("opcode")
	if err != nil {
		return nil, 0, err
	}
	if _, err := r.byte("flags"); err != nil {
		return nil, 0, err
	}
	if _, err := r.u16("step reserved"); err != nil {
		return nil, 0, err
	}
	fieldA, err := r.u32("field_a")
	if err != nil {
		return nil, 0, err
	}
	b, err := r.string16("b")
	if err != nil {
		return nil, 0, err
	}

	switch StepKind(opcode) {
	case StepKindExec:
		argc, err := r.u16("argc")
		if err != nil {
			return nil, 0, err
		}
		argv := make([]string, 0, argc)
		for i := uint16(0); i < argc; i++ {
			arg, err := r.string16("argv entry")
			if err != nil {
				return nil, 0, fmt.Errorf("argv[%d]: %w", i, err)
			}
			argv = append(argv, arg)
		}
		return ExecStep{Argv: argv, Cwd: b, TimeoutMs: fieldA}, 0, nil

	case StepKindWrite:
		if version < 2 {
			return nil, 0, fmt.Errorf("%w: write step requires version >= 2, got %d", ErrUnsupportedOpcode, version)
		}
		data, err := r.blob32("write data")
		if err != nil {
			return nil, 0, err
		}
		return WriteFileStep{Path: b, Data: data, Mode: fieldA}, uint64(len(data)), nil

	default:
		return nil, 0, fmt.Errorf("%w: %d", ErrUnsupportedOpcode, opcode)
	}
}
