package httpapi

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/pingstatus/internal/domain"
	apimw "github.com/hamed0406/pingstatus/internal/httpapi/middleware"
	"github.com/hamed0406/pingstatus/internal/prober"
)

type Server struct {
	Logger  *zap.Logger
	Prober  *prober.Prober
	Targets []domain.Target
}

// NewServer serves status passes of p over targets. p.Out is ignored; each
// request gets its own buffer.
func NewServer(l *zap.Logger, p *prober.Prober, targets []domain.Target) *Server {
	return &Server{Logger: l, Prober: p, Targets: targets}
}

func (s *Server) Router(keys []string, rpm, burst int) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
		AllowedHeaders: []string{"Authorization", "X-API-Key"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(apimw.RateLimit(rpm, burst))
		r.Use(apimw.RequireKey(keys))
		r.Get("/api/status", s.handleStatus)
	})

	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	p := *s.Prober
	p.Out = &buf

	statuses, err := p.Run(r.Context(), s.Targets)
	if err != nil {
		s.Logger.Warn("status_run_error", zap.Int("completed", len(statuses)), zap.Error(err))
		code := http.StatusInternalServerError
		if r.Context().Err() != nil {
			code = http.StatusServiceUnavailable
		}
		http.Error(w, "status run failed", code)
		return
	}

	up := 0
	for _, st := range statuses {
		if st.State == domain.Up {
			up++
		}
	}
	s.Logger.Info("status_served", zap.Int("targets", len(statuses)), zap.Int("up", up))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
