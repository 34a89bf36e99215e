// package server contains the router, middleware and handlers for the mixtape web service
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mixtapehq/mixtape/internal/services"
	"github.com/mixtapehq/mixtape/internal/shared"
	"github.com/mixtapehq/mixtape/internal/store"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, CORS, and panic recovery.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the mixtape service.
// Implementations handle a related group of endpoints (auth, playlists, uploads, proxy).
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the mux patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// Server wires the flat-file store, the search proxy and the static client
// behind one router.
type Server struct {
	config *shared.Config
	router Router
	logger *log.Logger
}

// New builds the server and registers all routes.
func New(config *shared.Config, userStore *store.FileStore, search services.SearchService, logger *log.Logger) *Server {
	if logger == nil {
		logger = shared.NewLogger(os.Stderr)
	}
	logger = logger.With("component", "server")

	router := NewBasicRouter()
	router.Use(Recovery(logger), Logging(logger), CORS())

	router.Handler(NewAuthHandler(userStore, logger))
	router.Handler(NewPlaylistHandler(userStore, logger))
	router.Handler(NewUploadHandler(config.Store.UploadsDir, logger))
	if search != nil {
		router.Handler(NewProxyHandler(search, logger))
	}

	// Uploaded assets and the static client. The client mount goes last so
	// the catch-all pattern sits under every API route.
	router.Handle(http.MethodGet, "/uploads/",
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(config.Store.UploadsDir))))
	if config.Server.ClientDir != "" {
		router.Handle(http.MethodGet, "/", http.FileServer(http.Dir(config.Server.ClientDir)))
	}

	return &Server{
		config: config,
		router: router,
		logger: logger,
	}
}

// Handler returns the root http.Handler, exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.config.Server.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", httpServer.Addr)
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
