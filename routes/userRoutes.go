package routes

import (
	"urbanmind-be/controllers"
	"urbanmind-be/middlewares"
	"urbanmind-be/models"

	"github.com/gin-gonic/gin"
)

// UserRoutes sets up user directory routes
func UserRoutes(r *gin.Engine) {
	users := r.Group("/api/users")
	users.Use(middlewares.AuthMiddleware())
	{
		users.GET("/contractors", middlewares.RequireRole(models.RoleAdmin), controllers.GetContractors)
	}
}
