package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/investflow-dev/investflow/internal/apperr"
)

// respondError maps a service error onto the wire. Taxonomy errors
// keep their message; anything unclassified is logged and hidden
// behind a generic 500.
func respondError(ctx *gin.Context, err error) {
	status := apperr.HTTPStatus(err)

	if status == http.StatusInternalServerError {
		log.Printf("Internal error on %s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
		ctx.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(status, gin.H{"error": err.Error()})
}
