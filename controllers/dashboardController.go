package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"urbanmind-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// statusesIn builds a status $in clause from a dashboard bucket.
func statusesIn(bucket models.StatusBucket) bson.M {
	statuses := models.StatusesInBucket(bucket)
	vals := make([]string, 0, len(statuses))
	for _, s := range statuses {
		vals = append(vals, string(s))
	}
	return bson.M{"$in": vals}
}

// GetStats returns the caller's issue counts by dashboard bucket. Counts
// run over the caller's scope: reported issues for citizens, assigned
// issues for contractors. Issues in the active bucket appear in total
// but in neither pending nor resolved.
func GetStats(c *gin.Context) {
	userObjID, ok := callerID(c)
	if !ok {
		return
	}
	role := callerRole(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issueCollection := getCollection("issues")
	scope := models.ResolveScopeFilter(role, userObjID)

	total, err := issueCollection.CountDocuments(ctx, scope)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count issues"})
		return
	}

	pendingFilter := bson.M{"status": statusesIn(models.BucketPending)}
	for k, v := range scope {
		pendingFilter[k] = v
	}
	pending, err := issueCollection.CountDocuments(ctx, pendingFilter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count issues"})
		return
	}

	resolvedFilter := bson.M{"status": statusesIn(models.BucketResolved)}
	for k, v := range scope {
		resolvedFilter[k] = v
	}
	resolved, err := issueCollection.CountDocuments(ctx, resolvedFilter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count issues"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":    total,
		"pending":  pending,
		"resolved": resolved,
	})
}

// GetRecentIssues returns the caller's newest issues under the same
// role-conditional scope as the issue list.
func GetRecentIssues(c *gin.Context) {
	userObjID, ok := callerID(c)
	if !ok {
		return
	}
	role := callerRole(c)

	limit := models.ScopeLimit(role)
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= models.MaxIssueLimit {
			limit = v
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := models.ResolveScopeFilter(role, userObjID)
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	issueCollection := getCollection("issues")
	cursor, err := issueCollection.Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}
	defer cursor.Close(ctx)

	issues := make([]models.Issue, 0)
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode issues"})
		return
	}

	c.JSON(http.StatusOK, issues)
}
