package controllers

import (
	"context"
	"net/http"
	"time"

	"urbanmind-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetContractors lists contractor accounts for the admin assignment view.
func GetContractors(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userCollection := getCollection("users")

	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := userCollection.Find(ctx, bson.M{"role": models.RoleContractor}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contractors"})
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode contractors"})
		return
	}

	profiles := make([]models.PublicProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Public())
	}

	c.JSON(http.StatusOK, profiles)
}
