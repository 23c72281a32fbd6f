// Package server assembles the HTTP surface: middleware stack, routes and
// graceful lifecycle.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/takeyourtrade/collection-service/internal/auth"
	"github.com/takeyourtrade/collection-service/internal/collection"
	"github.com/takeyourtrade/collection-service/internal/database"
	"github.com/takeyourtrade/collection-service/internal/handler"
	"github.com/takeyourtrade/collection-service/internal/logger"
	"github.com/takeyourtrade/collection-service/internal/metrics"
)

// Config carries the server-level settings.
type Config struct {
	Port        int
	CORSOrigins []string
	ServiceName string
	Version     string
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer wires the middleware stack and routes. The collection routes
// sit behind the token verifier; health, root and metrics stay open.
func NewServer(cfg Config, dbPool database.Pool, verifier *auth.Verifier, collectionService collection.Service) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	info := handler.ServiceInfo{Name: cfg.ServiceName, Version: cfg.Version}

	// Public routes
	r.Get("/", handler.HandleRoot(info))
	r.Get("/health", handler.HandleHealth(info, dbPool))
	r.Handle("/metrics", promhttp.Handler())

	// Collection routes, all behind the auth gate
	itemHandler := handler.NewItemHandler(collectionService)
	r.Route("/api/v1/collections/items", func(r chi.Router) {
		r.Use(auth.Middleware(verifier))
		r.Post("/", itemHandler.HandleCreateItem)
		r.Get("/", itemHandler.HandleListItems)
		r.Get("/{itemID}", itemHandler.HandleGetItem)
		r.Patch("/{itemID}", itemHandler.HandleUpdateItem)
		r.Delete("/{itemID}", itemHandler.HandleDeleteItem)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// Handler exposes the assembled router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health and metrics probes would drown the log
		if strings.HasPrefix(r.URL.Path, "/health") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
