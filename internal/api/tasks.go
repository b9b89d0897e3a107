package api

import (
	"net/http"                   // HTTP status codes
	"taskboard/internal/domain"  // Importing domain models
	"taskboard/internal/service" // Task service

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateTaskRequest is the body of POST /api/tasks
type CreateTaskRequest struct {
	Title    string  `json:"title"`    // Required, checked by the service
	DueDate  *string `json:"dueDate"`  // Optional YYYY-MM-DD
	Priority *string `json:"priority"` // Optional High, Medium or Low
	Category *string `json:"category"` // Optional free text
}

// ListTasksQuery holds the optional calendar filters of GET /api/tasks
type ListTasksQuery struct {
	Date  string `form:"date"`  // Single day, YYYY-MM-DD
	Month string `form:"month"` // Whole month, YYYY-MM
}

// ListTasksHandler returns the caller's tasks
func ListTasksHandler(tasks *service.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var q ListTasksQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			badRequest(c)
			return
		}
		list, err := tasks.List(c.Request.Context(), userID, domain.TaskFilter{Date: q.Date, Month: q.Month})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// CreateTaskHandler adds a task for the caller
func CreateTaskHandler(tasks *service.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req CreateTaskRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		task, err := tasks.Create(c.Request.Context(), userID, service.NewTask{
			Title:    req.Title,
			DueDate:  req.DueDate,
			Priority: req.Priority,
			Category: req.Category,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, task)
	}
}

// GetTaskHandler returns one of the caller's tasks
func GetTaskHandler(tasks *service.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		task, err := tasks.Get(c.Request.Context(), userID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, task)
	}
}

// ToggleTaskHandler flips the completed flag of one of the caller's tasks
func ToggleTaskHandler(tasks *service.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		task, err := tasks.Toggle(c.Request.Context(), userID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, task)
	}
}

// DeleteTaskHandler removes one of the caller's tasks
func DeleteTaskHandler(tasks *service.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		if err := tasks.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
	}
}

// DeleteAllTasksHandler removes every task the caller owns
func DeleteAllTasksHandler(tasks *service.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		n, err := tasks.DeleteAll(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "All tasks deleted", "deleted": n})
	}
}

// TaskStatsHandler returns dashboard figures for the caller
func TaskStatsHandler(tasks *service.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		stats, err := tasks.Stats(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
