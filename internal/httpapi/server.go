// Package httpapi serves skyclock calculations as a small JSON HTTP API
// with health and Prometheus endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/thurmanmarka/skyclock"
	"github.com/thurmanmarka/skyclock/internal/metrics"
)

// Options configures a Server. Zero values get sensible defaults.
type Options struct {
	Logger     *zap.Logger
	Calculator *skyclock.Calculator
	Registry   *prometheus.Registry

	// Location is used for "date" parameters without a tz.
	Location *time.Location

	// RateLimit is requests per second across all clients; 0 disables.
	RateLimit float64
	Burst     int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Now is the clock used when a request omits "time" or "date".
	Now func() time.Time
}

// Server is the HTTP front end. It holds no per-request state.
type Server struct {
	log     *zap.Logger
	calc    *skyclock.Calculator
	reg     *prometheus.Registry
	metrics *metrics.Metrics
	limiter *rate.Limiter
	loc     *time.Location
	now     func() time.Time

	readTimeout  time.Duration
	writeTimeout time.Duration
}

// New builds a Server and registers its collectors on opts.Registry.
func New(opts Options) (*Server, error) {
	s := &Server{
		log:          opts.Logger,
		calc:         opts.Calculator,
		reg:          opts.Registry,
		loc:          opts.Location,
		now:          opts.Now,
		readTimeout:  opts.ReadTimeout,
		writeTimeout: opts.WriteTimeout,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.calc == nil {
		calc, err := skyclock.NewCalculator()
		if err != nil {
			return nil, err
		}
		s.calc = calc
	}
	if s.reg == nil {
		s.reg = prometheus.NewRegistry()
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.readTimeout == 0 {
		s.readTimeout = 5 * time.Second
	}
	if s.writeTimeout == 0 {
		s.writeTimeout = 10 * time.Second
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	s.metrics = metrics.NewMetrics(s.reg)
	return s, nil
}

// Handler returns the routed, instrumented handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	routes := []struct {
		pattern string
		handler apiFunc
	}{
		{"/v1/sun/position", s.sunPosition},
		{"/v1/sun/times", s.sunTimes},
		{"/v1/moon/position", s.moonPosition},
		{"/v1/moon/illumination", s.moonIllumination},
		{"/v1/moon/times", s.moonTimes},
	}
	for _, r := range routes {
		mux.Handle("GET "+r.pattern, s.instrument(r.pattern, s.limit(s.api(r.handler))))
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			s.log.Error("failed to write reply", zap.Error(err))
		}
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))

	return mux
}

// Serve runs the API on ln until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting API server", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutdown signal received, stopping API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// apiFunc handles one request and returns the JSON body or an error.
type apiFunc func(r *http.Request, q query) (any, error)

func (s *Server) api(fn apiFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := query{values: r.URL.Query(), loc: s.loc, now: s.now()}

		body, err := fn(r, q)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, errBadRequest) || errors.Is(err, skyclock.ErrInvalidCoordinates) {
				status = http.StatusBadRequest
			}
			s.log.Debug("Request rejected", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
			s.writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}
		s.writeJSON(w, http.StatusOK, body)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("failed to write reply", zap.Error(err))
	}
}

func (s *Server) limit(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			s.metrics.RateLimited.Inc()
			w.Header().Set("Retry-After", "1")
			s.writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.metrics.InFlight.Inc()
		defer s.metrics.InFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		s.metrics.RequestSeconds.WithLabelValues(route).Observe(elapsed.Seconds())
		s.metrics.Requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		s.log.Debug("Request served",
			zap.String("route", route),
			zap.String("query", r.URL.RawQuery),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", elapsed))
	})
}
