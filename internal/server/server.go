// Package server provides the HTTP REST API for the job board.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonathan/job-board/internal/blob"
	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/logger"
	"github.com/jonathan/job-board/internal/matching"
	"github.com/jonathan/job-board/internal/server/middleware"
	"github.com/jonathan/job-board/internal/server/ratelimit"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// Deps are the collaborators a Server is built from. The caller owns Store and
// closes it after Run returns.
type Deps struct {
	Store     DBClient
	Blobs     blob.Store
	Engine    *matching.Engine        // defaults to an engine bounded by Config.MaxCandidates
	Logger    *zap.Logger             // defaults to a no-op logger
	JWT       *config.JWTConfig       // required
	Password  *config.PasswordConfig  // required
	RateLimit *ratelimit.Config       // defaults to ratelimit.LoadConfig()
	Clock     func() time.Time        // defaults to time.Now
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	cfg         *config.Config
	store       DBClient
	blobs       blob.Store
	engine      *matching.Engine
	log         *zap.Logger
	respond     *responder
	now         func() time.Time
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// New wires the routes and middleware. It does not start listening.
func New(cfg *config.Config, deps Deps) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server config is required")
	}
	if deps.Store == nil {
		return nil, errors.New("store is required")
	}
	if deps.Blobs == nil {
		return nil, errors.New("blob store is required")
	}
	if deps.JWT == nil || deps.Password == nil {
		return nil, errors.New("jwt and password configuration are required")
	}

	log := logger.Component(deps.Logger, "http")
	s := &Server{
		cfg:     cfg,
		store:   deps.Store,
		blobs:   deps.Blobs,
		engine:  deps.Engine,
		log:     log,
		respond: newResponder(log, cfg.Debug),
		now:     deps.Clock,
	}
	if s.engine == nil {
		s.engine = matching.NewEngine(matching.WithMaxCandidates(cfg.MaxCandidates))
	}
	if s.now == nil {
		s.now = time.Now
	}

	rl := deps.RateLimit
	if rl == nil {
		rl = ratelimit.LoadConfig()
	}
	s.rateLimiter = ratelimit.NewLimiter(rl)

	s.userService = NewUserService(deps.Store, deps.Password)
	s.jwtService = NewJWTService(deps.JWT)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService, log, cfg.Debug)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(s.routes())))
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() *http.ServeMux {
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	seekerOnly := middleware.RequireUserType("job_seeker")
	recruiterOnly := middleware.RequireUserType("recruiter")

	authed := func(h http.HandlerFunc) http.Handler { return auth(h) }
	seeker := func(h http.HandlerFunc) http.Handler { return auth(seekerOnly(h)) }
	recruiter := func(h http.HandlerFunc) http.Handler { return auth(recruiterOnly(h)) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /health/db", s.handleHealthDB)

	// Auth endpoints
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("PUT /auth/password", authed(s.authHandler.UpdatePassword))
	mux.Handle("GET /users/me", authed(s.authHandler.Me))

	// Profiles
	mux.Handle("POST /profile/job-seeker", seeker(s.handleUpsertJobSeekerProfile))
	mux.Handle("GET /profile/job-seeker", authed(s.handleGetJobSeekerProfile))
	mux.Handle("POST /profile/recruiter", recruiter(s.handleCreateRecruiterProfile))
	mux.Handle("GET /profile/recruiter", authed(s.handleGetRecruiterProfile))

	// Job postings
	mux.HandleFunc("GET /jobs", s.handleListJobPostings)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJobPosting)
	mux.Handle("POST /jobs", recruiter(s.handleCreateJobPosting))
	mux.Handle("PATCH /jobs/{id}/status", recruiter(s.handleUpdateJobPostingStatus))

	// Applications
	mux.Handle("GET /applications", authed(s.handleListApplications))
	mux.Handle("POST /applications", seeker(s.handleCreateApplication))
	mux.Handle("PATCH /applications/{id}/status", recruiter(s.handleUpdateApplicationStatus))

	mux.Handle("GET /recommendations", authed(s.handleRecommendations))
	mux.Handle("POST /uploads/resume", authed(s.handleUploadResume))

	// Locally stored uploads are served by this process when their public URL is a path.
	if local, ok := s.blobs.(*blob.LocalStore); ok && strings.HasPrefix(s.cfg.Upload.PublicBaseURL, "/") {
		prefix := strings.TrimRight(s.cfg.Upload.PublicBaseURL, "/") + "/"
		mux.Handle("GET "+prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(local.Dir()))))
	}
	return mux
}

// Handler returns the fully wrapped handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully. The store is
// left open for the caller to close.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", s.httpServer.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Wrap(err, "server error")
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server shutdown failed")
	}
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.CORSOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging logs one line per request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.log.Info("request",
			zap.String(logger.FieldMethod, r.Method),
			zap.String(logger.FieldPath, r.URL.Path),
			zap.Int(logger.FieldStatus, rec.status),
			zap.Int64(logger.FieldDurationMS, time.Since(start).Milliseconds()),
			zap.String(logger.FieldRemoteAddr, r.RemoteAddr),
		)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID extracts the client identifier from the request.
// Only RemoteAddr is trusted; forwarding headers are ignored.
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
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		retry := int(info.RetryAfter.Seconds())
		response["retry_after"] = retry
		w.Header().Set("Retry-After", strconv.Itoa(retry))
	}

	s.log.Warn("rate limit exceeded",
		zap.String(logger.FieldPath, r.URL.Path),
		zap.String(logger.FieldRemoteAddr, r.RemoteAddr),
		zap.Int("limit", info.Limit),
	)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	s.respond.writeJSON(w, status, data)
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.respond.writeError(w, status, message)
}
