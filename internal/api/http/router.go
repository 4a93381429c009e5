package http

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	"github.com/nkotelnikov/url-shortener/internal/models"
)

// URLService defines the interface for the core URL shortening business logic.
type URLService interface {
	// ShortenURL creates a shortened version of the provided original URL.
	// It returns the stored URL details, service.ErrInvalidURL for a
	// malformed URL, or service.ErrMaxAttemptsExceeded when no unique
	// short code could be generated.
	ShortenURL(ctx context.Context, originalURL string) (*models.URL, error)

	// ResolveShortCode retrieves the original URL for a given short code,
	// counting the access as a click. It returns storage.ErrURLNotFound
	// if the short code is unknown.
	ResolveShortCode(ctx context.Context, shortCode string) (*models.URL, error)

	// GetURLStats retrieves the statistics of the URL associated with the
	// short code without counting a click.
	GetURLStats(ctx context.Context, shortCode string) (*models.URL, error)

	// DumpURLs returns a snapshot of every stored mapping.
	DumpURLs(ctx context.Context) (map[string]models.URL, error)
}

// getValidate initializes a new validator instance for validating incoming request payloads.
// It customizes tag name extraction from struct fields to match JSON tags.
func getValidate() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// NewRouter initializes and returns a new HTTP router with all routes and middleware configured.
func NewRouter(logger *httplog.Logger, urlSvc URLService, baseURL string) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"POST", "GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	validate := getValidate()

	r.Get("/", handleHealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handleAPIHealth)
		r.With(requireJSON).Post("/shorten", handleShortenURL(urlSvc, validate, baseURL))
		r.Get("/stats/{shortCode}", handleGetURLStats(urlSvc))
		r.Get("/debug/mappings", handleDumpURLs(urlSvc))
	})

	r.Get("/{shortCode}", handleRedirect(urlSvc))

	return r
}
