// Package monitor streams gesture lifecycle events to inspector clients
// over websockets, for debugging recognition behavior on a device from a
// desktop browser.
package monitor

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/touchsync/touchsync/internal/core/events/bus"
	"github.com/touchsync/touchsync/internal/core/observability/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Server subscribes to the engine's event bus and fans every event out to
// connected websocket clients as JSON.
type Server struct {
	addr string
	bus  *bus.Bus
	log  log.Log

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}

	sub bus.Subscription
	srv *http.Server
}

// New creates a monitor server bound to addr.
func New(addr string, b *bus.Bus, lg log.Log) *Server {
	if lg == nil {
		lg = log.Nop()
	}
	return &Server{
		addr:    addr,
		bus:     b,
		log:     lg.With(log.String("component", "monitor")),
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Run serves until ctx is cancelled. The bus subscription is installed
// before listening starts, so no event published after Run is called is
// lost to a connected client.
func (s *Server) Run(ctx context.Context) error {
	s.sub = s.bus.Subscribe("", s.broadcast)
	defer s.sub.Cancel()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	s.srv = &http.Server{Addr: s.addr, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("monitor listening", log.String("addr", s.addr))
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade failed", log.Error(err))
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()
	s.log.Debug("client connected", log.String("remote", conn.RemoteAddr().String()))

	// Inbound messages are ignored; the read loop only notices the close.
	go func() {
		defer s.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	_ = conn.Close()
}

func (s *Server) broadcast(e bus.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		s.log.Error("marshal event", log.Error(err))
		return
	}

	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			s.drop(c)
		}
	}
}

// ClientCount returns the number of connected inspector clients.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}
