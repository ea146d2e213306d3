// Package server accepts client connections and hands them to the
// registry. Clients speak the line protocol over raw TCP, or over a
// websocket with one line per text frame.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokertable/internal/participant"
	"github.com/lox/pokertable/internal/registry"
)

// Server is the connection acceptor
type Server struct {
	reg      *registry.Registry
	addr     string
	httpAddr string
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// New returns a server that listens for TCP on addr and, when httpAddr is
// not empty, serves /ws and /health over HTTP on httpAddr.
func New(reg *registry.Registry, addr, httpAddr string, logger *log.Logger) *Server {
	return &Server{
		reg:      reg,
		addr:     addr,
		httpAddr: httpAddr,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.WithPrefix("server"),
	}
}

// Run listens until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Serve(ctx, ln)
	})

	if s.httpAddr != "" {
		hs := &http.Server{
			Addr:              s.httpAddr,
			Handler:           s.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			s.logger.Info("Starting WebSocket server", "addr", s.httpAddr)
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return hs.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

// Serve accepts TCP connections from ln until ctx is cancelled. It closes
// ln on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("Listening", "addr", ln.Addr().String())

	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()
	defer ln.Close()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		s.admit(participant.NewConnTransport(conn))
	}
}

// Handler serves the websocket endpoint and a health check
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.reg.Started() {
		http.Error(w, registry.ErrStarted.Error(), http.StatusServiceUnavailable)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}
	s.admit(participant.NewWebSocketTransport(conn))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// admit seats a new remote participant, or closes it when the registry
// will not take it
func (s *Server) admit(t participant.Transport) {
	remote := participant.NewRemote(t, s.logger)
	if err := s.reg.Add(remote); err != nil {
		s.logger.Warn("Rejecting connection", "addr", t.RemoteAddr(), "error", err)
		_ = remote.Close()
		return
	}
	s.logger.Info("Client connected", "addr", t.RemoteAddr())
}
