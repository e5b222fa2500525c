package routes

import (
	"urbanmind-be/controllers"
	"urbanmind-be/middlewares"

	"github.com/gin-gonic/gin"
)

// DashboardRoutes sets up the dashboard aggregation routes
func DashboardRoutes(r *gin.Engine) {
	dashboard := r.Group("/api/dashboard")
	dashboard.Use(middlewares.AuthMiddleware())
	{
		dashboard.GET("/stats", controllers.GetStats)
		dashboard.GET("/my-issues", controllers.GetRecentIssues)
	}
}
