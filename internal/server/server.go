package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rojgari/candidate-intake/internal/location"
	"github.com/rojgari/candidate-intake/internal/logging"
	"github.com/rojgari/candidate-intake/internal/metrics"
	"github.com/rojgari/candidate-intake/internal/otp"
	"github.com/rojgari/candidate-intake/internal/server/ratelimit"
	"github.com/rojgari/candidate-intake/internal/submit"
	"github.com/rojgari/candidate-intake/internal/validation"
)

// Server is the intake HTTP server: location option queries, the OTP
// verification flow, and the submission/upload endpoints.
type Server struct {
	httpServer  *http.Server
	log         logging.Logger
	rateLimiter *ratelimit.Limiter
	locations   location.Source
	otpService  *otp.Service
	tokens      *otp.TokenService
	submitter   *submit.Submitter
	dispatcher  *submit.Dispatcher
	engine      *validation.Engine
}

// Options holds the server's dependencies and listen settings.
type Options struct {
	Port        int
	Log         logging.Logger
	RateLimiter *ratelimit.Limiter
	Locations   location.Source
	OTPService  *otp.Service
	Tokens      *otp.TokenService
	Submitter   *submit.Submitter
	Dispatcher  *submit.Dispatcher
	Engine      *validation.Engine
}

// New creates a server instance. The rate limiter defaults to the
// environment-driven configuration when none is supplied.
func New(opts Options) *Server {
	s := &Server{
		log:         opts.Log,
		rateLimiter: opts.RateLimiter,
		locations:   opts.Locations,
		otpService:  opts.OTPService,
		tokens:      opts.Tokens,
		submitter:   opts.Submitter,
		dispatcher:  opts.Dispatcher,
		engine:      opts.Engine,
	}
	if s.log == nil {
		s.log = logging.NewNop()
	}
	if s.rateLimiter == nil {
		s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/location/states", s.handleStates)
	mux.HandleFunc("GET /api/location/districts", s.handleDistricts)
	mux.HandleFunc("GET /api/location/talukas", s.handleTalukas)
	mux.HandleFunc("GET /api/location/villages", s.handleVillages)

	mux.HandleFunc("POST /api/send-otp", s.handleSendOTP)
	mux.HandleFunc("POST /api/verify-otp", s.handleVerifyOTP)

	mux.HandleFunc("POST /api/resume", s.handleResume)
	mux.HandleFunc("POST /api/upload-photo", s.handleUploadPhoto)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the fully wrapped handler chain for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening and blocks until SIGINT/SIGTERM, then shuts
// down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	<-stop
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.log.Info("server stopped")
	return nil
}

// statusWriter captures the response status for logging and metrics.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Verification-Token")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging and request metrics.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(sw, r)

		elapsed := time.Since(start)
		s.log.Info("request handled",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", sw.status),
			zap.Duration("duration", elapsed),
		)
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(sw.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(elapsed.Seconds())
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is only
// meaningful behind a trusted proxy and is not consulted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", strconv.Itoa(int(info.RetryAfter.Seconds())))
	}

	s.log.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Int("remaining", info.Remaining),
		zap.Time("reset_at", info.ResetTime),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
