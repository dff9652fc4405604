package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/custodia-labs/sharepoint-reader/internal/core/domain"
	"github.com/custodia-labs/sharepoint-reader/internal/core/ports/driving"
	"github.com/custodia-labs/sharepoint-reader/internal/logger"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// RequestID stores a fresh UUID in the request context under chi's request
// ID key and echoes it in the X-Request-Id response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(middleware.RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Recoverer turns a panic in next into a JSON 500 carrying the usual
// response headers. http.ErrAbortHandler is re-raised so the server can
// abort the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}
			logger.Error("[%s] panic: %v\n%s", middleware.GetReqID(r.Context()), rec, debug.Stack())
			writeJSON(w, http.StatusInternalServerError, ErrorBody{Error: MsgInternal, Details: fmt.Sprint(rec)})
		}()
		next.ServeHTTP(w, r)
	})
}

// NewRouter mounts the handler on route for every method.
func NewRouter(route string, service driving.DocumentService) chi.Router {
	if route == "" {
		route = domain.DefaultRoute
	}
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Recoverer)
	r.Handle(route, NewHandler(service))
	return r
}

// Server hosts the router.
type Server struct {
	srv *http.Server
}

// NewServer creates a Server listening on cfg.Address.
func NewServer(cfg *domain.Config, service driving.DocumentService) *Server {
	addr := cfg.Address
	if addr == "" {
		addr = domain.DefaultAddress
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(cfg.Route, service),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	// A zero outbound timeout means no limit, so responses are not bounded
	// either. Otherwise downloads and extraction may take up to the
	// outbound timeout.
	if cfg.Timeout > 0 {
		srv.WriteTimeout = cfg.Timeout + 30*time.Second
	}
	return &Server{srv: srv}
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
