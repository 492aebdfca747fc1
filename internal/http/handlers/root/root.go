// Package root serves the welcome message at GET /.
package root

import (
	"net/http"

	"github.com/aanand-mishra/campus-api/internal/utils/response"
)

// Message is the greeting returned by GET /.
const Message = "Welcome to the Person/Address/Course/Assignment API. See /health for service status."

// New handles GET / (exactly; the router registers it as "GET /{$}").
func New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{"message": Message})
	}
}
