package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/LootLoop_Go/internal/handler"
	"github.com/osse101/LootLoop_Go/internal/logger"
	"github.com/osse101/LootLoop_Go/internal/metrics"
	"github.com/osse101/LootLoop_Go/internal/roll"
	"github.com/osse101/LootLoop_Go/internal/sse"
	"github.com/osse101/LootLoop_Go/internal/subgame"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// Deps are the services the routes dispatch to
type Deps struct {
	Version  string
	DB       handler.Pinger
	Progress interface {
		handler.StateReader
		handler.ProgressUpdater
	}
	Roller   roll.Roller
	SubGames subgame.Service
	Scripts  handler.ScriptRegistry
	Bonuses  handler.BonusSetter
	Events   *sse.Hub // optional
	Limits   RateLimits
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance. Admin routes require apiKey when
// it is set.
func NewServer(port int, apiKey string, trustedProxies []string, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(apiKey, trustedProxies, deps),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewRouter builds the full route tree
func NewRouter(apiKey string, trustedProxies []string, deps Deps) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	monitor := NewActivityMonitor(deps.Limits)

	r.Use(SecurityHeadersMiddleware())
	r.Use(RequestSizeLimitMiddleware(maxBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DB))
	r.Get("/version", handler.HandleVersion(deps.Version))
	r.Handle("/metrics", promhttp.Handler())

	r.Route(apiPrefix, func(r chi.Router) {
		r.Use(RateLimitMiddleware(trustedProxies, monitor))

		r.Post("/players", handler.HandleCreatePlayer())
		r.Get("/state", handler.HandleGetState(deps.Progress))

		r.Post("/roll", handler.HandleRoll(deps.Roller))
		r.Post("/sell", handler.HandleSell(deps.Roller))
		r.Post("/sell/all", handler.HandleSellAll(deps.Roller))
		r.Put("/loot/lock", handler.HandleLockLoot(deps.Roller))

		if deps.Events != nil {
			r.Get("/events", sse.Handler(deps.Events))
		}

		r.Route("/subgames/{name}", func(r chi.Router) {
			r.Get("/", handler.HandleSubGameStatus(deps.SubGames))
			r.Post("/action", handler.HandleSubGameAction(deps.SubGames))
			r.Put("/auto", handler.HandleSetAuto(deps.SubGames))
			r.Put("/mute", handler.HandleSetMute(deps.SubGames))
			r.Put("/resources/lock", handler.HandleLockResource(deps.SubGames))
			r.Post("/resources/consume", handler.HandleConsumeResource(deps.SubGames))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(AuthMiddleware(apiKey, trustedProxies, monitor))

			r.Post("/script", handler.HandleSetScript(deps.Scripts))
			r.Get("/script", handler.HandleGetScript(deps.Scripts))
			r.Delete("/script", handler.HandleClearScript(deps.Scripts))
			r.Put("/levels", handler.HandleSetLevels(deps.Progress))
			r.Put("/bonus", handler.HandleSetBonus(deps.Bonuses, deps.SubGames))
		})
	})

	return r
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

// Flush keeps event streams working through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Probes and scrapes are too frequent to log
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

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
