package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/uptimealert/internal/domain"
	apimw "github.com/hamed0406/uptimealert/internal/httpapi/middleware"
	"github.com/hamed0406/uptimealert/internal/metrics"
	"github.com/hamed0406/uptimealert/internal/notify"
	"github.com/hamed0406/uptimealert/internal/repo"
)

const TestTitle = "🔔 Test Notification"

// Dispatcher is the part of notify.Dispatcher the API needs.
type Dispatcher interface {
	Notify(ctx context.Context, ev domain.Event) notify.Report
	Channels() []string
}

type Server struct {
	Logger     *zap.Logger
	Target     string
	Dispatcher Dispatcher
	History    repo.TransitionStore // optional
	Keys       apimw.Keys
	TestRPM    int
	TestBurst  int
}

func NewServer(l *zap.Logger, target string, d Dispatcher, keys apimw.Keys, rpm, burst int) *Server {
	return &Server{Logger: l, Target: target, Dispatcher: d, Keys: keys, TestRPM: rpm, TestBurst: burst}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.PromHandler())

	r.Route("/api", func(r chi.Router) {
		r.With(apimw.RequireAdmin(s.Keys)).Get("/channels", s.handleListChannels)
		if s.History != nil {
			r.With(apimw.RequireAdmin(s.Keys)).Get("/transitions", s.handleListTransitions)
		}
		r.With(
			apimw.RateLimit(s.TestRPM, s.TestBurst),
			apimw.RequireAdmin(s.Keys),
		).Post("/notify/test", s.handleTestNotify)
	})

	return r
}

func (s *Server) handleListChannels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"channels": s.Dispatcher.Channels()})
}

func (s *Server) handleListTransitions(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	evs, err := s.History.Recent(r.Context(), limit)
	if err != nil {
		s.Logger.Error("history_read_failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transitions": evs})
}

// handleTestNotify dispatches a synthetic event synchronously so the
// operator sees each channel's outcome.
func (s *Server) handleTestNotify(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	ev := domain.Event{
		Title:     TestTitle,
		Body:      fmt.Sprintf("Test notification for %s\nTime: %s", s.Target, now.Format("2006-01-02 15:04:05 MST")),
		Up:        true,
		Target:    s.Target,
		Timestamp: now,
	}
	rep := s.Dispatcher.Notify(r.Context(), ev)

	s.Logger.Info("test_notification",
		zap.Int("channels", len(rep.Results)),
		zap.Int("failed", rep.Failed()),
	)

	code := http.StatusOK
	if rep.Failed() > 0 {
		code = http.StatusBadGateway
	}
	writeJSON(w, code, rep)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
