// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package harness

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// StatusUpdate is one broadcast frame: a running pass/fail tally as a
// fixture batch executes.
type StatusUpdate struct {
	Passed  int    `json:"passed"`
	Failed  int    `json:"failed"`
	Total   int    `json:"total"`
	Current string `json:"current"`
}

// StatusServer exposes a local websocket feed of StatusUpdate frames so a
// dashboard can watch a conformance run live. It carries no consensus
// state and is purely harness instrumentation — not the peer-to-peer
// gossip layer spec §1 excludes.
type StatusServer struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewStatusServer constructs a StatusServer. It does not listen on its own;
// it is an http.Handler that must be registered with an HTTP server.
func NewStatusServer() *StatusServer {
	return &StatusServer{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Dashboard instrumentation only; requests from every origin
			// are accepted.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades an incoming request to a websocket connection and
// registers it to receive future Broadcast calls.
func (s *StatusServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("harness: status server upgrade failed: %v", err)
		return
	}
	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	go func() {
		defer s.removeClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *StatusServer) removeClient(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

// Broadcast sends update to every currently connected client, dropping any
// connection that errors on write.
func (s *StatusServer) Broadcast(update StatusUpdate) {
	payload, err := json.Marshal(update)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			delete(s.clients, conn)
			conn.Close()
		}
	}
}
