package routes

import (
	"urbanmind-be/controllers"
	"urbanmind-be/middlewares"
	"urbanmind-be/models"

	"github.com/gin-gonic/gin"
)

// ContractorRoutes sets up the contractor task-board routes
func ContractorRoutes(r *gin.Engine) {
	contractor := r.Group("/api/contractor")
	contractor.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleContractor))
	{
		contractor.GET("/tasks", controllers.GetMyIssues)
		contractor.POST("/update", controllers.ContractorUpdateStatus)
	}
}
