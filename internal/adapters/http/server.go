// Package http exposes the turn router over HTTP: conversation creation,
// one endpoint per turn, health, and Prometheus metrics. Turns of one
// conversation are serialized through the session manager.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flightdesk/internal/logging"
	"flightdesk/pkg/domain"
	"flightdesk/pkg/session"
)

// TurnHandler processes one conversation turn. *bot.Router satisfies it.
type TurnHandler interface {
	OnTurn(ctx context.Context, turn domain.Turn) (domain.TurnOutput, error)
}

// metrics holds the Prometheus instruments of the turn endpoint.
type metrics struct {
	turnsTotal   *prometheus.CounterVec
	turnDuration prometheus.Histogram
}

func newMetrics(reg *prometheus.Registry) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		turnsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flightdesk_turns_total",
			Help: "Processed turns by outcome.",
		}, []string{"outcome"}),
		turnDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "flightdesk_turn_duration_seconds",
			Help:    "Wall time spent processing a turn, lock wait included.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Server is the HTTP transport adapter.
type Server struct {
	handler  TurnHandler
	sessions *session.Manager
	logger   *slog.Logger
	metrics  *metrics
	registry *prometheus.Registry
	mux      *chi.Mux
}

// Option configures the Server.
type Option func(*Server)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer builds the transport over a turn handler and a session manager.
func NewServer(handler TurnHandler, sessions *session.Manager, opts ...Option) *Server {
	registry := prometheus.NewRegistry()
	s := &Server{
		handler:  handler,
		sessions: sessions,
		logger:   logging.NewNop(),
		metrics:  newMetrics(registry),
		registry: registry,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	r.Post("/v1/conversations", s.handleCreateConversation)
	r.Post("/v1/conversations/{conversationID}/turns", s.handleTurn)
	s.mux = r
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createConversationResponse struct {
	ConversationID string            `json:"conversation_id"`
	Output         domain.TurnOutput `json:"output"`
}

// handleCreateConversation mints a conversation id and runs its
// conversationStarted turn, so the response already carries the greeting
// and the main menu.
func (s *Server) handleCreateConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := uuid.NewString()
	output, ok := s.runTurn(w, r, domain.Turn{
		ConversationID: conversationID,
		Type:           domain.EventConversationStarted,
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, createConversationResponse{
		ConversationID: conversationID,
		Output:         output,
	})
}

type turnRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	if conversationID == "" {
		http.Error(w, "missing conversation id", http.StatusBadRequest)
		return
	}

	var body turnRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.logger.Warn("turn: invalid request body", "err", err)
		return
	}

	output, ok := s.runTurn(w, r, domain.Turn{
		ConversationID: conversationID,
		Text:           body.Text,
		Type:           domain.EventMessage,
	})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, output)
}

// runTurn serializes the turn through the session manager and records the
// metrics. On failure it writes the error response itself and reports !ok.
func (s *Server) runTurn(w http.ResponseWriter, r *http.Request, turn domain.Turn) (domain.TurnOutput, bool) {
	start := time.Now()

	var output domain.TurnOutput
	err := s.sessions.WithLock(r.Context(), turn.ConversationID, func(ctx context.Context) error {
		var err error
		output, err = s.handler.OnTurn(ctx, turn)
		return err
	})
	s.metrics.turnDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.turnsTotal.WithLabelValues("error").Inc()
		s.logger.Error("turn failed", "conversation", turn.ConversationID, "err", err)
		http.Error(w, "turn processing failed", http.StatusInternalServerError)
		return domain.TurnOutput{}, false
	}

	outcome := "ok"
	if output.Ended {
		outcome = "ended"
	}
	s.metrics.turnsTotal.WithLabelValues(outcome).Inc()
	return output, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
