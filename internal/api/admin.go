package api

import (
	"net/http"                   // HTTP status codes
	"strconv"                    // String conversion
	"taskboard/internal/service" // Admin service

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListUsersHandler returns a page of users with their task counts
func ListUsersHandler(admin *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))                                            // Invalid values fall back in the service
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(service.DefaultPageSize))) // Page size
		resp, err := admin.ListUsers(c.Request.Context(), page, pageSize)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp) // Return the response
	}
}
