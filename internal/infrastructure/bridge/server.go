// Package bridge receives agent hook events over HTTP and streams villager
// snapshots to websocket subscribers.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/younwookim/villager/internal/domain/villager"
)

// Hook routes
const (
	PathPromptSubmit = "/hook/prompt-submit"
	PathStop         = "/hook/stop"
	PathToolFailure  = "/hook/tool-failure"
	PathHealth       = "/health"
	PathStream       = "/ws"
)

const (
	defaultQueueSize  = 32
	subscriberBacklog = 8
)

// Config configures the bridge server
type Config struct {
	Addr      string
	QueueSize int
	Logger    *log.Logger
}

// Server is the hook endpoint and snapshot stream. Triggers are only queued
// here; the frame loop drains them so the controller keeps a single writer.
type Server struct {
	addr     string
	logger   *log.Logger
	triggers chan villager.Trigger
	upgrader websocket.Upgrader
	handler  http.Handler

	mu   sync.Mutex
	subs map[*subscriber]struct{}
	last []byte

	httpSrv  *http.Server
	listener net.Listener

	// closed by Shutdown; hijacked stream connections are not tracked by
	// http.Server, so their handlers watch this instead
	done     chan struct{}
	stopOnce sync.Once
}

type subscriber struct {
	send chan []byte
}

type toolFailure struct {
	IsInterrupt bool `json:"is_interrupt"`
}

// New creates a server. Call Start to listen on cfg.Addr, or mount Handler.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	size := cfg.QueueSize
	if size <= 0 {
		size = defaultQueueSize
	}

	s := &Server{
		addr:     cfg.Addr,
		logger:   logger,
		triggers: make(chan villager.Trigger, size),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		subs: make(map[*subscriber]struct{}),
		done: make(chan struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(PathHealth, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/hook/", s.handleHook)
	mux.HandleFunc(PathStream, s.handleStream)
	s.handler = mux

	return s
}

// Handler returns the HTTP handler with every route mounted
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Triggers returns the queue the frame loop drains
func (s *Server) Triggers() <-chan villager.Trigger {
	return s.triggers
}

// handleHook maps a hook path to a trigger. Every hook request is answered
// with "ok" so the calling agent never waits on the game.
func (s *Server) handleHook(w http.ResponseWriter, r *http.Request) {
	var trigger villager.Trigger
	switch r.URL.Path {
	case PathPromptSubmit:
		trigger = villager.TriggerPromptSubmit
	case PathStop:
		trigger = villager.TriggerStop
	case PathToolFailure:
		if isInterrupt(r.Body) {
			trigger = villager.TriggerInterrupt
		}
	}

	if trigger != "" {
		s.logger.Printf("Received hook event: %s", trigger)
		s.enqueue(trigger)
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

func isInterrupt(body io.Reader) bool {
	if body == nil {
		return false
	}
	var payload toolFailure
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return false
	}
	return payload.IsInterrupt
}

func (s *Server) enqueue(t villager.Trigger) {
	select {
	case s.triggers <- t:
	default:
		s.logger.Printf("trigger queue full, dropping %s", t)
	}
}

// Publish sends snap to every stream subscriber. Slow subscribers miss
// snapshots instead of blocking the caller. Implements session.Publisher.
func (s *Server) Publish(snap villager.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Printf("failed to marshal snapshot: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = data
	for sub := range s.subs {
		select {
		case sub.send <- data:
		default:
		}
	}
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	sub := s.subscribe()
	defer s.unsubscribe(sub)

	// Reads only detect the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case data := <-sub.send:
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-done:
			return
		case <-s.done:
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (s *Server) subscribe() *subscriber {
	sub := &subscriber{send: make(chan []byte, subscriberBacklog)}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last != nil {
		sub.send <- s.last
	}
	s.subs[sub] = struct{}{}
	return sub
}

func (s *Server) unsubscribe(sub *subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, sub)
}

// Subscribers returns the number of connected stream clients
func (s *Server) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Start listens on the configured address and serves in the background
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = ln
	s.httpSrv = &http.Server{Handler: s.handler}

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Printf("bridge server stopped: %v", err)
		}
	}()
	s.logger.Printf("Hook server listening on %s", ln.Addr())
	return nil
}

// Addr returns the bound address once started, the configured one before
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Shutdown closes every open stream and stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.done) })
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
