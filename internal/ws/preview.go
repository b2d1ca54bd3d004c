// Package ws serves a live preview of the simulated cluster over a
// websocket: every LED frame and sync event goes out as one JSON message.
package ws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/lumenlabel/badgesync/internal/cluster"
)

type Server struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewServer() *Server {
	return &Server{clients: map[*websocket.Conn]bool{}}
}

// HandleWS upgrades the connection and keeps it subscribed until the peer
// goes away.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()
	log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("preview client connected")

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			_ = conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends one cluster event to every connected client. Dead
// connections are dropped on write failure.
func (s *Server) Broadcast(ev cluster.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteJSON(ev); err != nil {
			delete(s.clients, conn)
			_ = conn.Close()
		}
	}
}

// Pump forwards events from the cluster stream until it closes.
func (s *Server) Pump(events <-chan cluster.Event) {
	for ev := range events {
		s.Broadcast(ev)
	}
}

// ListenAndServe mounts the websocket at /ws and blocks.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWS)
	log.Info().Str("addr", addr).Msg("preview listening")
	return http.ListenAndServe(addr, mux)
}
