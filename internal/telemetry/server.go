package telemetry

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rileyhilliard/sentinel/internal/errors"
	"github.com/rileyhilliard/sentinel/internal/logger"
)

// Status reports liveness for /healthz.
type Status func() HealthReport

// HealthReport is the /healthz body.
type HealthReport struct {
	Connected  bool      `json:"connected"`
	LastCommit time.Time `json:"last_commit,omitempty"`
	Seq        uint64    `json:"seq"`
}

// Server serves /metrics and /healthz.
type Server struct {
	router *chi.Mux
	gather prometheus.Gatherer
	status Status
	log    logger.Logger
	srv    *http.Server
}

// NewServer builds the router. status may be nil.
func NewServer(gather prometheus.Gatherer, status Status, log logger.Logger) *Server {
	if log == nil {
		log = logger.Noop()
	}
	s := &Server{
		router: chi.NewRouter(),
		gather: gather,
		status: status,
		log:    log,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.HandlerFor(s.gather, promhttp.HandlerOpts{}))
	r.Get("/healthz", s.healthz)
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	report := HealthReport{Connected: true}
	if s.status != nil {
		report = s.status()
	}
	w.Header().Set("Content-Type", "application/json")
	if !report.Connected {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(report)
}

// Start listens on addr and serves until ctx is done. It returns once the
// listener is bound so a bad address fails fast.
func (s *Server) Start(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't start the metrics listener on "+addr,
			"Pick a free address with metrics.addr, or leave it empty to disable")
	}

	s.srv = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("metrics server stopped: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("metrics listening on %s", ln.Addr())
	return nil
}
