package mirror

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-drift/wheel/pkg/errors"
	"github.com/gorilla/websocket"
)

// DefaultPath is where the demo serves the mirror endpoint.
const DefaultPath = "/wheel"

// StateSource reports the state sent to clients on connect.
type StateSource interface {
	Latest() State
}

// Server upgrades HTTP requests to mirror clients.
type Server struct {
	hub      *Hub
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a server for hub and makes source the hub's greeting
// source. source may be nil, in which case clients are greeted with the
// zero state.
func NewServer(hub *Hub, source StateSource, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	hub.SetSource(source)
	return &Server{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			// Mirrors are read-only, so any origin may follow.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Hub returns the server's hub.
func (s *Server) Hub() *Hub { return s.hub }

// Register registers the handler on mux.
func (s *Server) Register(mux *http.ServeMux, path string) {
	if mux == nil {
		return
	}
	mux.Handle(path, s)
}

// ServeHTTP upgrades the request and hands the client to the hub, which
// greets it with the latest state.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("mirror upgrade failed", "error", err)
		errors.ReportOp("mirror.Upgrade", errors.KindTransport, err)
		return
	}
	client := NewClient(s.hub, conn, r.RemoteAddr, s.logger)
	s.hub.add(client)

	// The request context ends when this handler returns, so the pumps
	// run on their own and stop on connection errors or hub shutdown.
	go client.writePump(context.Background())
	go client.readPump(context.Background())
}
