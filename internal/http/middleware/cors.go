package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS answers preflight requests and sets the Access-Control headers for
// the given origins. "*" allows every origin.
func CORS(allowedOrigins []string) Middleware {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes preflight cache
	})

	return c.Handler
}
