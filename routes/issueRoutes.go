package routes

import (
	"urbanmind-be/config"
	"urbanmind-be/controllers"
	"urbanmind-be/middlewares"
	"urbanmind-be/models"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue lifecycle routes
func IssueRoutes(r *gin.Engine) {
	issue := r.Group("/api/issue")
	issue.Use(middlewares.AuthMiddleware())
	{
		issue.POST("/create", middlewares.IssueRateLimiter(config.C.IssueReportLimit), controllers.CreateIssue)
		issue.GET("/all", middlewares.RequireRole(models.RoleAdmin), controllers.GetAllIssues)
		issue.GET("/my-issues", controllers.GetMyIssues)
		issue.POST("/request-funds", middlewares.RequireRole(models.RoleContractor), controllers.RequestFunds)
		issue.POST("/approve-funds", middlewares.RequireRole(models.RoleAdmin), controllers.ApproveFunds)
		issue.GET("/:id", controllers.GetIssue)
		issue.PATCH("/:id/status", middlewares.RequireRole(models.RoleAdmin, models.RoleContractor), controllers.UpdateIssueStatus)
		issue.POST("/:id/assign", middlewares.RequireRole(models.RoleAdmin), controllers.AssignIssue)
	}
}
