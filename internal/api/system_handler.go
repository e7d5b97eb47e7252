package api

import (
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
)

// Plain text bodies for the non-task routes.
const (
	testRouteBody = "Hello, test route!"
	notFoundBody  = "Sorry, can't find that!"
	healthBody    = "OK"
)

// TestRoute handles GET /test, a smoke check that the server is routing requests.
func TestRoute(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithText(w, r, http.StatusOK, testRouteBody)
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithText(w, r, http.StatusOK, healthBody)
}

// NotFound answers every unmatched route, including known paths requested
// with an unsupported method.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithText(w, r, http.StatusNotFound, notFoundBody)
}
