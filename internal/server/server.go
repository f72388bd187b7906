package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/lingoloop/lingobot/internal/config"
	"github.com/lingoloop/lingobot/internal/handler"
	"github.com/lingoloop/lingobot/internal/handler/chat"
	"github.com/lingoloop/lingobot/internal/svc"
)

// ServerOptions holds optional dependencies for the server
type ServerOptions struct {
	SvcCtx *svc.ServiceContext // Pre-initialized service context (tests, embedded mode)
	Quiet  bool                // Suppress startup messages for clean CLI output
}

// Run starts the tutor server with the given configuration.
// It blocks until the context is cancelled or an error occurs.
func Run(ctx context.Context, c config.Config, opts ...ServerOptions) error {
	var o ServerOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	return run(ctx, c, o)
}

func run(ctx context.Context, c config.Config, opts ServerOptions) error {
	serverPort := c.Port

	if err := checkPortAvailable(serverPort); err != nil {
		return fmt.Errorf("port %d is already in use", serverPort)
	}

	if !opts.Quiet {
		fmt.Printf("Starting server on http://localhost:%d\n", serverPort)
	}

	svcCtx := opts.SvcCtx
	if svcCtx == nil {
		svcCtx = svc.NewServiceContext(c)
	}

	r := NewRouter(svcCtx, opts)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", serverPort),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * c.GeminiTimeout(),
		IdleTimeout:  120 * time.Second,
	}

	if !opts.Quiet {
		fmt.Printf("Server ready at http://localhost:%d\n", serverPort)
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("HTTP server error: %v\n", err)
		}
	}()

	<-ctx.Done()

	if !opts.Quiet {
		fmt.Println("\nShutting down server gracefully...")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	httpServer.Shutdown(shutdownCtx)
	return nil
}

// NewRouter builds the chi router with all routes mounted. Exposed
// separately so handler tests can drive it through httptest.
func NewRouter(svcCtx *svc.ServiceContext, opts ServerOptions) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if !opts.Quiet {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)

	r.Use(corsMiddleware())

	r.Get("/", handler.HelloHandler(svcCtx))
	r.Get("/health", handler.HealthCheckHandler(svcCtx))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/correct", chat.CorrectHandler(svcCtx))
		r.Post("/reset", chat.ResetHandler(svcCtx))
		r.Post("/whatsapp/webhook", chat.WebhookHandler(svcCtx))
	})

	return r
}

// corsMiddleware allows any origin. The API is consumed by a static
// web page and a messaging bridge, neither of which shares an origin
// with the server.
func corsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// checkPortAvailable checks if a port is available for binding
func checkPortAvailable(port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return err
	}
	ln.Close()
	return nil
}
