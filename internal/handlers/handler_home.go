package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHealth godoc
// @Summary Liveness check
// @Tags root
// @Produce json
// @Success 200 {object} dto.OKResponse
// @Router /health [get]
func getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// getHome godoc
// @Summary Show the session of the caller.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router / [get]
func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Shop ledger API v1"})
}
