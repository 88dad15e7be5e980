// Package server exposes the layout worker protocol over a websocket,
// so a browser-side renderer can drive the simulation exactly the way
// an in-process caller would: commands in, position snapshots out.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/leanviz/layout3d/internal/engine"
)

// Server upgrades /sim connections and runs one layout worker per
// connection. Workers are fully independent; two clients laying out
// two graphs never share state.
type Server struct {
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func New(log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1 << 16,
			WriteBufferSize: 1 << 16,
			// The layout protocol carries no credentials and is meant
			// to be served next to the visualization itself.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/sim", s.handleSim)
	return mux
}

// ListenAndServe blocks serving the layout endpoint on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("layout server listening", "addr", addr, "path", "/sim")
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleSim(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "err", err)
		return
	}

	worker := engine.NewWorker()
	log := s.log.With("remote", conn.RemoteAddr().String())
	log.Info("simulation connected")

	// Write pump: the single writer on this connection. It must keep
	// draining events until the worker dies, even after a write error,
	// or the worker would block on its next emit and miss the Kill.
	go func() {
		defer conn.Close()
		broken := false
		for e := range worker.Events() {
			if broken {
				continue
			}
			if err := conn.WriteJSON(encodeEvent(e)); err != nil {
				log.Warn("write failed", "err", err)
				broken = true
				conn.Close()
			}
		}
	}()

	// Read pump: connection close kills the worker and releases its
	// memory; a malformed frame is logged and skipped, matching the
	// engine's silent handling of transient bad input.
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Info("simulation disconnected", "err", err)
			worker.Send(engine.Kill{})
			return
		}
		cmd, err := decodeCommand(data)
		if err != nil {
			log.Warn("bad command", "err", err)
			continue
		}
		if !worker.Send(cmd) {
			return
		}
		if _, killed := cmd.(engine.Kill); killed {
			return
		}
	}
}
