package api

import (
	"taskboard/internal/middleware" // Auth and logging middleware
	"taskboard/internal/service"    // Business services

	"github.com/gin-gonic/gin" // Gin web framework
)

// Services bundles what the router dispatches to
type Services struct {
	Auth  *service.AuthService
	Tasks *service.TaskService
	Admin *service.AdminService
}

// NewRouter builds the gin engine with every route of the API
func NewRouter(s Services) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		return nil, err
	}

	r.GET("/healthz", HealthHandler)

	apiGroup := r.Group("/api")
	requireAuth := middleware.JWTAuthMiddleware(s.Auth)

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/signup", SignupHandler(s.Auth))                              // Registration endpoint
	authGroup.POST("/login", LoginHandler(s.Auth))                                // Login endpoint
	authGroup.GET("/me", requireAuth, MeHandler(s.Auth))                          // Current user
	authGroup.PUT("/update-profile", requireAuth, UpdateProfileHandler(s.Auth))   // Partial profile update
	authGroup.PUT("/update-password", requireAuth, UpdatePasswordHandler(s.Auth)) // Password change

	// Task routes (protected by JWT)
	taskGroup := apiGroup.Group("/tasks")
	taskGroup.Use(requireAuth)
	taskGroup.GET("", ListTasksHandler(s.Tasks))                    // List tasks, optional date/month filter
	taskGroup.POST("", CreateTaskHandler(s.Tasks))                  // Create task
	taskGroup.GET("/stats", TaskStatsHandler(s.Tasks))              // Dashboard statistics
	taskGroup.GET("/:id", GetTaskHandler(s.Tasks))                  // Single task
	taskGroup.PATCH("/:id/toggle", ToggleTaskHandler(s.Tasks))      // Toggle completed
	taskGroup.DELETE("/delete-all", DeleteAllTasksHandler(s.Tasks)) // Delete every owned task
	taskGroup.DELETE("/:id", DeleteTaskHandler(s.Tasks))            // Delete task

	// Admin routes (protected, admin only)
	adminGroup := apiGroup.Group("/admin")
	adminGroup.Use(requireAuth, middleware.AdminOnlyMiddleware(s.Admin))
	adminGroup.GET("/users", ListUsersHandler(s.Admin)) // List users endpoint

	return r, nil
}
