package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Flash keys shared by the handlers. Flashes are read-once; the page that
// renders one consumes it.
const (
	flashError   = "error"
	flashSuccess = "success"
	flashMessage = "message"
	flashEmail   = "email"
)

// renderErrorPage renders the fatal error page. Used when the upstream is
// unreachable or answers with something the flash-and-redirect path cannot
// absorb.
func renderErrorPage(c *gin.Context, message string) {
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{
		"Message": message,
	})
	c.Abort()
}

// NotFound renders the 404 page for unmatched routes.
func NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found.html", gin.H{})
}

// InternalError is the recovery handler: a panic anywhere in the chain ends
// on the generic error page instead of a blank response.
func InternalError(c *gin.Context, _ any) {
	renderErrorPage(c, "")
}
