package routes

import (
	"urbanmind-be/controllers"
	"urbanmind-be/middlewares"
	"urbanmind-be/models"

	"github.com/gin-gonic/gin"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", controllers.RegisterUser)
		auth.POST("/login", controllers.LoginUser)
		auth.POST("/create-admin", middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleAdmin), controllers.CreateAdmin)
		auth.GET("/me", middlewares.AuthMiddleware(), controllers.GetMe)
		auth.PUT("/update-profile", middlewares.AuthMiddleware(), controllers.UpdateProfile)
		auth.POST("/logout", middlewares.AuthMiddleware(), controllers.LogoutUser)
	}
}
