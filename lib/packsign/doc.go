// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

// Package packsign implements the Action Pack signing capability: ECDSA
// P-256 key generation, public-key export, payload signing, and
// signature verification. Signatures are ASN.1/DER-encoded ECDSA over
// SHA-256; public keys are serialized as the 65-byte uncompressed point
// (0x04 || X || Y).
//
// Private keys live in a local directory keystore, one sealed file per
// key_id. Each file is age-encrypted to a machine-local identity that is
// itself generated on first use and stored plaintext at 0600, following
// the same plaintext-signing-key-at-0600 convention the surrounding
// tooling uses for its own Ed25519 token keys — the age seal here is
// defense-in-depth against a stolen disk, not a substitute for hardware
// key storage.
package packsign
