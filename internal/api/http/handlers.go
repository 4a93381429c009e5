package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/nkotelnikov/url-shortener/internal/models"
	"github.com/nkotelnikov/url-shortener/internal/service"
	"github.com/nkotelnikov/url-shortener/internal/storage"
	"github.com/nkotelnikov/url-shortener/pkg/response"
)

// handleHealthCheck handles liveness requests to ensure the service is running.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.ServiceHealthyResponse)
}

// handleAPIHealth handles liveness requests for the API itself.
func handleAPIHealth(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.APIHealthyResponse)
}

// shortenRequest represents the request payload for creating a shortened URL.
type shortenRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// shortenResponse represents the response payload for a successful shorten call.
type shortenResponse struct {
	ShortCode string `json:"short_code"`
	ShortURL  string `json:"short_url"`
}

// urlStatsResponse represents a single stored mapping as exposed by the
// stats and debug endpoints.
type urlStatsResponse struct {
	URL       string `json:"url"`
	Clicks    int64  `json:"clicks"`
	CreatedAt string `json:"created_at"`
}

// toURLStatsResponse converts a URL model from the business layer into a response payload.
func toURLStatsResponse(url *models.URL) urlStatsResponse {
	return urlStatsResponse{
		URL:       url.OriginalURL,
		Clicks:    url.Clicks,
		CreatedAt: url.CreatedAt.Format(time.RFC3339),
	}
}

// shortURLBase picks the prefix short URLs are built from: the configured
// base URL when present, otherwise the host the request arrived on.
func shortURLBase(baseURL string, r *http.Request) string {
	if baseURL != "" {
		return strings.TrimRight(baseURL, "/")
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	return scheme + "://" + r.Host
}

// handleShortenURL handles POST requests to shorten a URL.
//
// The request must contain a valid absolute URL. The handler validates the
// input, calls the URL shortening service, and returns the generated short
// code together with the full short URL.
func handleShortenURL(svc URLService, validate *validator.Validate, baseURL string) http.HandlerFunc {
	const op = "api.http.handleShortenURL"

	return func(w http.ResponseWriter, r *http.Request) {
		var req shortenRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.MissingURLParamResponse)
			return
		}

		if req.URL == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.MissingURLParamResponse)
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.InvalidURLResponse)
			return
		}

		url, err := svc.ShortenURL(r.Context(), req.URL)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidURL):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.InvalidURLResponse)
			case errors.Is(err, service.ErrMaxAttemptsExceeded):
				httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.CodeGenerationFailedResponse)
			default:
				httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.ServerErrorResponse)
			}
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, shortenResponse{
			ShortCode: url.ShortCode,
			ShortURL:  shortURLBase(baseURL, r) + "/" + url.ShortCode,
		})
	}
}

// handleRedirect handles GET requests on a short code, redirecting the
// visitor to the original URL and counting the access as a click.
func handleRedirect(svc URLService) http.HandlerFunc {
	const op = "api.http.handleRedirect"

	return func(w http.ResponseWriter, r *http.Request) {
		shortCode := chi.URLParam(r, "shortCode")

		url, err := svc.ResolveShortCode(r.Context(), shortCode)
		if err != nil {
			if errors.Is(err, storage.ErrURLNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.ShortCodeNotFoundResponse)
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		http.Redirect(w, r, url.OriginalURL, http.StatusFound)
	}
}

// handleGetURLStats handles GET requests to retrieve usage statistics for a
// shortened URL. Reading statistics never changes the click counter.
func handleGetURLStats(svc URLService) http.HandlerFunc {
	const op = "api.http.handleGetURLStats"

	return func(w http.ResponseWriter, r *http.Request) {
		shortCode := chi.URLParam(r, "shortCode")

		url, err := svc.GetURLStats(r.Context(), shortCode)
		if err != nil {
			if errors.Is(err, storage.ErrURLNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.ShortCodeNotFoundResponse)
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, toURLStatsResponse(url))
	}
}

// handleDumpURLs handles GET requests to dump the full mapping table for
// diagnostic consumption.
func handleDumpURLs(svc URLService) http.HandlerFunc {
	const op = "api.http.handleDumpURLs"

	return func(w http.ResponseWriter, r *http.Request) {
		urls, err := svc.DumpURLs(r.Context())
		if err != nil {
			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		mappings := make(map[string]urlStatsResponse, len(urls))
		for shortCode, url := range urls {
			mappings[shortCode] = toURLStatsResponse(&url)
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, mappings)
	}
}
