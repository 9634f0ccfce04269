package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/cors"
)

var localFrontends = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

// AllowedOrigins derives the browser origins allowed to call the API. Only
// the scheme and host of the frontend URL matter. Local dev servers are
// added outside production.
func AllowedOrigins(frontendURL string, production bool) []string {
	var origins []string
	if u, err := url.Parse(strings.TrimSpace(frontendURL)); err == nil && u.Scheme != "" && u.Host != "" {
		origins = append(origins, u.Scheme+"://"+u.Host)
	}
	if production {
		return origins
	}
	for _, o := range localFrontends {
		if len(origins) == 0 || origins[0] != o {
			origins = append(origins, o)
		}
	}
	return origins
}

// CORS lets the frontend call the API with its bearer token. Payment
// webhooks are server to server and never depend on these headers.
func CORS(frontendURL string, production bool) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: AllowedOrigins(frontendURL, production),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader, "Location"},
		AllowCredentials: true,
		MaxAge:           600,
	})
}
