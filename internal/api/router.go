package api

import (
	"net/http"
	"time"

	// Registers the generated OpenAPI document with swag.
	_ "zai-proxy/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterOptions holds the switches that change which routes are mounted.
type RouterOptions struct {
	// Debug exposes the Swagger UI and includes error details in 5xx bodies.
	Debug bool
}

// NewRouter creates and configures a new chi router with all the
// application's routes. usageHandler may be nil, in which case the usage
// routes are not mounted.
func NewRouter(chatHandler *ChatHandler, modelHandler *ModelHandler, usageHandler *UsageHandler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	// These are applied to every request.
	r.Use(middleware.RequestID)  // Injects a unique request ID into the context.
	r.Use(middleware.RealIP)     // Sets the remote address to the real IP from proxy headers.
	r.Use(middleware.Logger)     // Logs the start and end of each request.
	r.Use(recoverer(opts.Debug)) // Turns panics into the JSON 500 body.

	// Any origin may call the API from a browser.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         600,
	}))

	// --- Public Routes ---

	// Swagger UI, only in debug mode.
	if opts.Debug {
		r.Get("/docs/*", httpSwagger.WrapHandler)
	}

	r.Get("/health", HandleHealth)

	// --- API v1 Routes ---
	r.Route("/v1", func(r chi.Router) {
		r.Get("/", HandleHealth)
		r.Get("/health", HandleHealth)

		// JSON routes get a request timeout.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Get("/models", modelHandler.HandleListModels)
			if usageHandler != nil {
				r.Get("/usage", usageHandler.HandleListUsage)
				r.Get("/usage/{id}", usageHandler.HandleGetRecord)
			}
		})

		// Completions may stream for minutes, so no timeout here.
		r.Group(func(r chi.Router) {
			// Preflights carrying CORS headers are answered by the cors
			// middleware; a bare OPTIONS lands here.
			r.Options("/chat/completions", chatHandler.HandleOptions)
			r.Post("/chat/completions", chatHandler.HandleChatCompletions)
		})
	})

	return r
}
