// Copyright 2026 The Action Pack Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/actionpack/actionpack/lib/packexec"
	"github.com/actionpack/actionpack/lib/peeradmit"
)

// Config bundles the listen address, concurrency bound, and timeouts
// a Server needs — the subset of receiverconf.Config the connection
// layer cares about.
type Config struct {
	Listen      string
	MaxConns    int
	IOTimeout   time.Duration
	MaxRequest  int
	AdmitFilter peeradmit.Filter
}

// Server accepts TCP connections and hands each one's request bytes
// to an Executor, writing the resulting transcript back before
// closing.
type Server struct {
	cfg      Config
	executor *packexec.Executor
	logger   *slog.Logger

	permits chan struct{}
	active  sync.WaitGroup
}

// New returns a Server. Logger may be nil, in which case log output is
// discarded.
func New(cfg Config, executor *packexec.Executor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 8
	}
	return &Server{
		cfg:      cfg,
		executor: executor,
		logger:   logger,
		permits:  make(chan struct{}, maxConns),
	}
}

// Serve accepts connections until ctx is cancelled, then stops
// accepting and waits for in-flight handlers to finish.
func (s *Server) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("server: listening on %s: %w", s.cfg.Listen, err)
	}
	defer listener.Close()

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	s.logger.Info("action pack receiver listening", "addr", s.cfg.Listen)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			s.logger.Error("accept failed", "error", err)
			continue
		}

		if !s.admit(conn) {
			conn.Close()
			continue
		}

		s.permits <- struct{}{}
		s.active.Add(1)
		go func() {
			defer func() {
				<-s.permits
				s.active.Done()
			}()
			s.handleConnection(ctx, conn)
		}()
	}

	s.active.Wait()
	return nil
}

func (s *Server) admit(conn net.Conn) bool {
	addr, ok := conn.RemoteAddr().(*net.TCPAddr)
	if !ok {
		return false
	}
	return s.cfg.AdmitFilter.Allow(addr.IP)
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	timeout := s.cfg.IOTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	conn.SetDeadline(time.Now().Add(timeout))

	maxRequest := s.cfg.MaxRequest
	if maxRequest <= 0 {
		maxRequest = 4 * 1024 * 1024
	}

	limited := io.LimitReader(conn, int64(maxRequest)+1)
	request, err := io.ReadAll(limited)
	if err != nil {
		s.logger.Warn("read failed", "remote", conn.RemoteAddr(), "error", err)
		conn.Write([]byte("ERR read_failed\n"))
		return
	}
	if len(request) > maxRequest {
		conn.Write([]byte("ERR read_failed\n"))
		return
	}

	transcript := s.executor.Handle(ctx, request)
	conn.SetDeadline(time.Now().Add(timeout))
	if _, err := conn.Write(transcript); err != nil {
		s.logger.Warn("write failed", "remote", conn.RemoteAddr(), "error", err)
	}
}
