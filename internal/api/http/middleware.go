package http

import (
	"mime"
	"net/http"

	"github.com/go-chi/render"
	"github.com/nkotelnikov/url-shortener/pkg/response"
)

// requireJSON rejects requests whose Content-Type is not application/json.
// The error body is JSON so clients never see an HTML error page.
func requireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			render.Status(r, http.StatusUnsupportedMediaType)
			render.JSON(w, r, response.UnsupportedMediaTypeResponse)
			return
		}

		next.ServeHTTP(w, r)
	})
}
