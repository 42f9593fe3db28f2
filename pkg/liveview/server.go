package liveview

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Settings is the part of a settings manager the server exposes.
// *settings.Manager satisfies it.
type Settings interface {
	Names() []string
	Values() map[string]any
	Value(name string) (any, error)
	SetRaw(name string, raw any) error
	Save(ctx context.Context) error
	Load(ctx context.Context) error
	Subscribe(fn func(name string, value any)) func()
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithGatherer exposes g on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithSendBuffer sets how many messages may queue for one client before it
// is dropped as too slow.
func WithSendBuffer(n int) Option {
	return func(s *Server) {
		s.sendBuffer = n
	}
}

// Server exposes a settings manager over HTTP and WebSocket.
type Server struct {
	// mu serializes every access to settings.
	mu       sync.Mutex
	settings Settings

	logger     *slog.Logger
	gatherer   prometheus.Gatherer
	sendBuffer int
	upgrader   websocket.Upgrader
	router     chi.Router

	clientsMu sync.RWMutex
	clients   map[*client]struct{}

	unsubscribe func()
	closeOnce   sync.Once
}

// New creates a Server for settings. Call Close to stop receiving changes.
func New(settings Settings, opts ...Option) *Server {
	s := &Server{
		settings:   settings,
		sendBuffer: 64,
		clients:    make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default().With("component", "liveview")
	}

	s.mu.Lock()
	s.unsubscribe = settings.Subscribe(func(name string, value any) {
		s.broadcast(Message{Type: TypeChange, Key: name, Value: value})
	})
	s.mu.Unlock()

	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/save", s.handleSave)
		r.Post("/load", s.handleLoad)
		r.Get("/{key}", s.handleGet)
		r.Put("/{key}", s.handlePut)
	})
	r.Get("/ws", s.handleWebSocket)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Update runs fn while holding the settings lock. Changes fn makes are
// broadcast to clients before Update returns.
func (s *Server) Update(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// ClientCount returns the number of connected WebSocket clients.
func (s *Server) ClientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// Close unsubscribes from the manager and disconnects every client.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.unsubscribe()
		s.mu.Unlock()

		s.clientsMu.Lock()
		for c := range s.clients {
			c.close()
			delete(s.clients, c)
		}
		s.clientsMu.Unlock()
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
