package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler responds with 200 and a JSON body indicating the server is up
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
