// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package dialer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// MaxResponseBytes caps the transcript read per spec.md §4.L: "read the
// entire response until EOF (capped at 8 MiB)".
const MaxResponseBytes = 8 * 1024 * 1024

// dialInitialInterval and dialMaxElapsed bound the retry window well
// under the pack's default 5-minute TTL — this absorbs a receiver
// daemon mid-restart, nothing longer.
const (
	dialInitialInterval = 100 * time.Millisecond
	dialMaxElapsed      = 2 * time.Second
)

// Dial connects to addr, retrying transient failures (connection
// refused aside) with a short exponential backoff. DNS failures and
// connection refusals are treated as permanent and returned
// immediately, matching netbirdio-netbird's grpc dialer's split between
// retryable and fatal dial errors.
func Dial(ctx context.Context, addr string) (net.Conn, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = dialInitialInterval
	b.MaxElapsedTime = dialMaxElapsed

	var conn net.Conn
	operation := func() error {
		var dialer net.Dialer
		c, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			if isPermanentDialErr(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		conn = c
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("dialer: dialing %s: %w", addr, err)
	}
	return conn, nil
}

func isPermanentDialErr(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED)
}

// Exchange dials addr, writes envelope in full, half-closes the write
// side, and reads the response until EOF or MaxResponseBytes, whichever
// comes first. Once any envelope bytes have been written the attempt is
// final: a write error after a partial write is returned as-is, never
// retried, so a pack's single-delivery semantics hold at the transport
// layer too.
func Exchange(ctx context.Context, addr string, envelope []byte) ([]byte, error) {
	conn, err := Dial(ctx, addr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if _, err := conn.Write(envelope); err != nil {
		return nil, fmt.Errorf("dialer: writing envelope: %w", err)
	}
	if halfCloser, ok := conn.(interface{ CloseWrite() error }); ok {
		if err := halfCloser.CloseWrite(); err != nil {
			return nil, fmt.Errorf("dialer: half-closing write side: %w", err)
		}
	}

	limited := io.LimitReader(conn, MaxResponseBytes)
	response, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("dialer: reading response: %w", err)
	}
	return response, nil
}
