// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package packsign

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/actionpack/actionpack/lib/sealed"
	"github.com/actionpack/actionpack/lib/secret"
)

const (
	identityFile    = "identity.age"
	identityPerm    = 0600
	sealedKeySuffix = ".key.age"
	sealedKeyPerm   = 0600
)

// Store is a local directory keystore for ECDSA P-256 signing keys, one
// sealed file per key_id. Cross-process concurrency relies on the
// filesystem's own atomicity for the identity and key files — each is
// written whole at creation time and never modified in place.
type Store struct {
	dir string
}

// Open returns a Store rooted at dir, creating dir (mode 0700) if it
// does not exist.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("packsign: creating keystore dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) keyPath(keyID string) string {
	return filepath.Join(s.dir, sanitizeKeyID(keyID)+sealedKeySuffix)
}

// List returns the sanitized key_id of every key generated in this
// store, in directory order. Since sanitizeKeyID is lossy for key_ids
// containing "/" or NUL, this reports the on-disk (sanitized) form,
// which is what Sign/ExportPublic/Generate all key off of in practice.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("packsign: listing %s: %w", s.dir, err)
	}
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(entry.Name(), sealedKeySuffix); ok {
			ids = append(ids, name)
		}
	}
	return ids, nil
}

// sanitizeKeyID defangs a key_id for use as a filename component. key_id
// is an opaque 1..255-byte identifier per the wire format; it is not
// guaranteed to be filesystem-safe, so any path separator is replaced.
func sanitizeKeyID(keyID string) string {
	return strings.ReplaceAll(strings.ReplaceAll(keyID, "/", "_"), "\x00", "_")
}

// machineIdentity loads the store's age identity, generating one on
// first use. Unlike the per-key files, the identity itself is stored
// plaintext at 0600 — it is the root of trust for this store, so
// sealing it to itself would beg the question.
func (s *Store) machineIdentity() (*sealed.Keypair, error) {
	path := filepath.Join(s.dir, identityFile)

	raw, err := os.ReadFile(path)
	if err == nil {
		lines := strings.SplitN(strings.TrimSpace(string(raw)), "\n", 2)
		if len(lines) != 2 {
			return nil, fmt.Errorf("packsign: malformed identity file %s", path)
		}
		priv, err := secret.NewFromBytes([]byte(lines[0]))
		if err != nil {
			return nil, fmt.Errorf("packsign: loading identity: %w", err)
		}
		return &sealed.Keypair{PrivateKey: priv, PublicKey: lines[1]}, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("packsign: reading identity file: %w", err)
	}

	kp, err := sealed.GenerateKeypair()
	if err != nil {
		return nil, fmt.Errorf("packsign: generating identity: %w", err)
	}
	contents := kp.PrivateKey.String() + "\n" + kp.PublicKey + "\n"
	if err := os.WriteFile(path, []byte(contents), identityPerm); err != nil {
		return nil, fmt.Errorf("packsign: writing identity file: %w", err)
	}
	return kp, nil
}

// Generate ensures key_id has a signing key, returning its public key
// (base64 pubkey_external). Idempotent: if a sealed key file for key_id
// already exists, it is loaded and its public key returned rather than
// overwritten.
func (s *Store) Generate(keyID string) (string, error) {
	if existing, err := s.ExportPublic(keyID); err == nil {
		return existing, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	identity, err := s.machineIdentity()
	if err != nil {
		return "", err
	}
	defer identity.Close()

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeygenFailed, err)
	}

	scalar := priv.D.FillBytes(make([]byte, coordSize))
	ciphertext, err := sealed.Encrypt(scalar, []string{identity.PublicKey})
	if err != nil {
		return "", fmt.Errorf("%w: sealing key: %v", ErrKeygenFailed, err)
	}
	if err := os.WriteFile(s.keyPath(keyID), []byte(ciphertext), sealedKeyPerm); err != nil {
		return "", fmt.Errorf("%w: writing key file: %v", ErrKeygenFailed, err)
	}

	return EncodePublicKey(&priv.PublicKey), nil
}

// ExportPublic returns the base64 public key for an existing key_id, or
// an error wrapping os.ErrNotExist if no such key has been generated.
func (s *Store) ExportPublic(keyID string) (string, error) {
	priv, err := s.loadPrivate(keyID)
	if err != nil {
		return "", err
	}
	defer priv.Close()
	return EncodePublicKey(&priv.key.PublicKey), nil
}

// Sign produces an ASN.1/DER ECDSA-over-SHA-256 signature of payload
// using key_id's private key. The decrypted scalar is held only in a
// secret.Buffer for the duration of this call.
func (s *Store) Sign(keyID string, payload []byte) ([]byte, error) {
	priv, err := s.loadPrivate(keyID)
	if err != nil {
		return nil, err
	}
	defer priv.Close()

	digest := sha256.Sum256(payload)
	sig, err := ecdsa.SignASN1(rand.Reader, priv.key, digest[:])
	if err != nil {
		return nil, fmt.Errorf("packsign: signing: %w", err)
	}
	return sig, nil
}

// privateHandle pairs a reconstructed ecdsa.PrivateKey with the
// secret.Buffer its scalar was decrypted into, so callers can zero the
// plaintext as soon as they're done with it.
type privateHandle struct {
	buf *secret.Buffer
	key *ecdsa.PrivateKey
}

func (h *privateHandle) Close() error { return h.buf.Close() }

// loadPrivate decrypts key_id's sealed scalar and reconstructs the full
// ecdsa.PrivateKey.
func (s *Store) loadPrivate(keyID string) (*privateHandle, error) {
	ciphertext, err := os.ReadFile(s.keyPath(keyID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrUnknownKey, keyID, err)
		}
		return nil, fmt.Errorf("packsign: reading key file: %w", err)
	}

	identity, err := s.machineIdentity()
	if err != nil {
		return nil, err
	}
	defer identity.Close()

	plaintext, err := sealed.Decrypt(strings.TrimSpace(string(ciphertext)), identity.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("packsign: unsealing key: %w", err)
	}

	scalar := new(big.Int).SetBytes(plaintext.Bytes())
	curve := elliptic.P256()
	x, y := curve.ScalarBaseMult(scalar.Bytes())

	return &privateHandle{
		buf: plaintext,
		key: &ecdsa.PrivateKey{
			PublicKey: ecdsa.PublicKey{Curve: curve, X: x, Y: y},
			D:         scalar,
		},
	}, nil
}
