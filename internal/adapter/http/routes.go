package http

import (
	"tasktracker/internal/adapter/http/handlers"
	"tasktracker/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, healthHandler *handlers.HealthHandler, taskHandler *handlers.TaskHandler) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)

		api.GET("/tasks", taskHandler.ListTasks)
		api.POST("/tasks", taskHandler.CreateTask)
		api.DELETE("/tasks", taskHandler.DeleteAllTasks)
		api.GET("/tasks/:id", taskHandler.GetTask)
		api.PUT("/tasks/:id", taskHandler.UpdateTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)

		api.GET("/epics", taskHandler.ListEpics)
		api.POST("/epics", taskHandler.CreateEpic)
		api.DELETE("/epics", taskHandler.DeleteAllEpics)
		api.GET("/epics/:id", taskHandler.GetEpic)
		api.PUT("/epics/:id", taskHandler.UpdateEpic)
		api.DELETE("/epics/:id", taskHandler.DeleteEpic)
		api.GET("/epics/:id/subtasks", taskHandler.ListEpicSubtasks)
		api.POST("/epics/:id/refresh", taskHandler.RefreshEpic)

		api.GET("/subtasks", taskHandler.ListSubtasks)
		api.POST("/subtasks", taskHandler.CreateSubtask)
		api.DELETE("/subtasks", taskHandler.DeleteAllSubtasks)
		api.GET("/subtasks/:id", taskHandler.GetSubtask)
		api.PUT("/subtasks/:id", taskHandler.UpdateSubtask)
		api.DELETE("/subtasks/:id", taskHandler.DeleteSubtask)

		api.GET("/history", taskHandler.History)
		api.GET("/prioritized", taskHandler.Prioritized)
		api.GET("/end-time/:id", taskHandler.EndTime)
	}
}
