package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"urbanmind-be/config"
	"urbanmind-be/controllers"
	"urbanmind-be/logger"
	"urbanmind-be/models"
	"urbanmind-be/routes"
	"urbanmind-be/session"
	authUtils "urbanmind-be/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.Env, cfg.LogLevel)
	authUtils.TokenTTL = time.Duration(cfg.TokenTTLHours) * time.Hour

	db := config.ConnectDB()
	if db == nil {
		log.Fatal("Failed to connect to MongoDB")
	}
	logger.Log.Info().Msg("MongoDB connection established")

	if err := models.EnsureUserIndex(config.GetCollection("users")); err != nil {
		log.Fatalf("Failed to create user email index: %v", err)
	}

	config.ConnectRedis()
	logger.Log.Info().Msg("Redis connection established")

	controllers.Sessions = session.NewRedisStore(config.RedisClient, authUtils.TokenTTL)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/uploads", cfg.UploadDir)

	routes.AuthRoutes(r)
	routes.IssueRoutes(r)
	routes.DashboardRoutes(r)
	routes.ContractorRoutes(r)
	routes.UserRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
