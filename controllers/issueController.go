package controllers

import (
	"context"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"urbanmind-be/config"
	"urbanmind-be/logger"
	"urbanmind-be/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Points awarded to the reporter when their issue is resolved.
const resolvedRewardPoints = 10

// callerID extracts the authenticated user's ObjectID from the context.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return primitive.NilObjectID, false
	}
	objID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return objID, true
}

// callerRole extracts the authenticated user's role from the context.
func callerRole(c *gin.Context) models.Role {
	roleVal, _ := c.Get("role")
	role, _ := roleVal.(string)
	return models.Role(role)
}

// parseFloatForm reads an optional float field, accepting either of the
// two field names the clients send (lat/latitude, lng/longitude).
func parseFloatForm(c *gin.Context, names ...string) *float64 {
	for _, name := range names {
		raw := strings.TrimSpace(c.PostForm(name))
		if raw == "" {
			continue
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return &v
		}
	}
	return nil
}

// CreateIssue handles a citizen's report: multipart form with the issue
// fields plus an optional image attachment.
func CreateIssue(c *gin.Context) {
	reporterID, ok := callerID(c)
	if !ok {
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))
	category := c.PostForm("category")
	address := strings.TrimSpace(c.PostForm("address"))
	city := strings.TrimSpace(c.PostForm("city"))

	if title == "" || len(title) > 200 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required and must be at most 200 characters"})
		return
	}
	if description == "" || len(description) > 1000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description is required and must be at most 1000 characters"})
		return
	}
	if !models.ValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	latitude := parseFloatForm(c, "latitude", "lat")
	longitude := parseFloatForm(c, "longitude", "lng")

	var imageURL *string
	if file, err := c.FormFile("image"); err == nil {
		name := uuid.NewString() + filepath.Ext(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(config.C.UploadDir, name)); err != nil {
			logger.Log.Error().Err(err).Msg("failed to store uploaded image")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
		url := "/uploads/" + name
		imageURL = &url
	}

	now := time.Now()
	issue := models.Issue{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: description,
		Category:    models.IssueCategory(category),
		Status:      models.StatusReported,
		Address:     address,
		City:        city,
		Latitude:    latitude,
		Longitude:   longitude,
		ImageURL:    imageURL,
		UserID:      reporterID,
		Updates: []models.IssueUpdate{
			{Status: models.StatusReported, Message: "issue reported", Date: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issueCollection := getCollection("issues")
	if _, err := issueCollection.InsertOne(ctx, issue); err != nil {
		logger.Log.Error().Err(err).Msg("failed to create issue")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// GetAllIssues handles the admin-facing global list with filtering,
// sorting and pagination.
func GetAllIssues(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	category := c.Query("category")
	status := c.Query("status")
	city := c.Query("city")
	sortOrder := c.DefaultQuery("sort", "newest")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > models.MaxIssueLimit {
		limit = 10
	}

	filter := bson.M{}

	if category != "" && category != "all" {
		if !models.ValidCategory(category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}
		filter["category"] = category
	}

	if status != "" && status != "all" {
		if !models.ValidStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		filter["status"] = status
	}

	if city != "" {
		filter["city"] = city
	}

	skip := (page - 1) * limit

	var sortOptions bson.D
	switch sortOrder {
	case "oldest":
		sortOptions = bson.D{{Key: "createdAt", Value: 1}}
	case "newest":
		fallthrough
	default:
		sortOptions = bson.D{{Key: "createdAt", Value: -1}}
	}

	issueCollection := getCollection("issues")

	totalCount, err := issueCollection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count issues"})
		return
	}

	findOptions := options.Find().
		SetSort(sortOptions).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

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

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))

	c.JSON(http.StatusOK, gin.H{
		"issues":      issues,
		"totalIssues": totalCount,
		"totalPages":  totalPages,
		"currentPage": page,
	})
}

// GetMyIssues returns the caller's issues under the role-conditional
// scope filter: contractors see issues assigned to them, everyone else
// sees issues they reported.
func GetMyIssues(c *gin.Context) {
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

// GetIssue retrieves an issue by its ID
func GetIssue(c *gin.Context) {
	idParam := c.Param("id")
	issueID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issueCollection := getCollection("issues")

	var issue models.Issue
	err = issueCollection.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	c.JSON(http.StatusOK, issue)
}

// applyStatusUpdate loads an issue, moves it to the new status and
// persists the change, awarding reporter points on resolution.
func applyStatusUpdate(c *gin.Context, issueID primitive.ObjectID, status models.IssueStatus, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issueCollection := getCollection("issues")

	var issue models.Issue
	err := issueCollection.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	wasResolved := issue.Status == models.StatusResolved
	issue.SetStatus(status, message, time.Now())

	update := bson.M{"$set": bson.M{
		"status":    issue.Status,
		"updates":   issue.Updates,
		"updatedAt": issue.UpdatedAt,
	}}
	if _, err := issueCollection.UpdateOne(ctx, bson.M{"_id": issueID}, update); err != nil {
		logger.Log.Error().Err(err).Msg("failed to update issue status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		return
	}

	if status == models.StatusResolved && !wasResolved {
		userCollection := getCollection("users")
		_, err := userCollection.UpdateOne(ctx,
			bson.M{"_id": issue.UserID},
			bson.M{"$inc": bson.M{"points": resolvedRewardPoints}})
		if err != nil {
			logger.Log.Warn().Err(err).Msg("failed to award reporter points")
		}
	}

	c.JSON(http.StatusOK, issue)
}

// UpdateIssueStatus handles PATCH /:id/status from admins and contractors.
func UpdateIssueStatus(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var input struct {
		Status  string `json:"status" binding:"required"`
		Message string `json:"message" binding:"max=500"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	applyStatusUpdate(c, issueID, models.IssueStatus(input.Status), input.Message)
}

// AssignIssue puts an issue in a contractor's hands.
func AssignIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var input struct {
		ContractorID string `json:"contractorId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contractorID, err := primitive.ObjectIDFromHex(input.ContractorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contractor ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userCollection := getCollection("users")
	count, err := userCollection.CountDocuments(ctx, bson.M{
		"_id":  contractorID,
		"role": models.RoleContractor,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify contractor"})
		return
	}
	if count == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Contractor not found"})
		return
	}

	issueCollection := getCollection("issues")

	var issue models.Issue
	err = issueCollection.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	issue.Assign(contractorID, time.Now())

	update := bson.M{"$set": bson.M{
		"contractorId": issue.ContractorID,
		"status":       issue.Status,
		"updates":      issue.Updates,
		"updatedAt":    issue.UpdatedAt,
	}}
	if _, err := issueCollection.UpdateOne(ctx, bson.M{"_id": issueID}, update); err != nil {
		logger.Log.Error().Err(err).Msg("failed to assign issue")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign issue"})
		return
	}

	c.JSON(http.StatusOK, issue)
}

// RequestFunds attaches a pending funds request to an issue.
func RequestFunds(c *gin.Context) {
	requesterID, ok := callerID(c)
	if !ok {
		return
	}

	var input struct {
		IssueID string  `json:"issueId" binding:"required"`
		Amount  float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issueID, err := primitive.ObjectIDFromHex(input.IssueID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issueCollection := getCollection("issues")

	var issue models.Issue
	err = issueCollection.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	if err := issue.RequestFunds(input.Amount, requesterID, time.Now()); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Issue already has a funds request"})
		return
	}

	update := bson.M{"$set": bson.M{
		"funds":     issue.Funds,
		"updates":   issue.Updates,
		"updatedAt": issue.UpdatedAt,
	}}
	if _, err := issueCollection.UpdateOne(ctx, bson.M{"_id": issueID}, update); err != nil {
		logger.Log.Error().Err(err).Msg("failed to save funds request")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save funds request"})
		return
	}

	c.JSON(http.StatusOK, issue)
}

// ApproveFunds marks an issue's funds request approved. Approving an
// already-approved request returns the current state unchanged.
func ApproveFunds(c *gin.Context) {
	approverID, ok := callerID(c)
	if !ok {
		return
	}

	var input struct {
		IssueID string `json:"issueId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issueID, err := primitive.ObjectIDFromHex(input.IssueID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issueCollection := getCollection("issues")

	var issue models.Issue
	err = issueCollection.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	if err := issue.ApproveFunds(approverID, time.Now()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Issue has no funds request"})
		return
	}

	update := bson.M{"$set": bson.M{
		"funds":     issue.Funds,
		"updates":   issue.Updates,
		"updatedAt": issue.UpdatedAt,
	}}
	if _, err := issueCollection.UpdateOne(ctx, bson.M{"_id": issueID}, update); err != nil {
		logger.Log.Error().Err(err).Msg("failed to save funds approval")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save funds approval"})
		return
	}

	c.JSON(http.StatusOK, issue)
}

// ContractorUpdateStatus is the contractor task-board variant of the
// status update: issue id in the body rather than the path.
func ContractorUpdateStatus(c *gin.Context) {
	var input struct {
		IssueID string `json:"issueId" binding:"required"`
		Status  string `json:"status" binding:"required"`
		Message string `json:"message" binding:"max=500"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issueID, err := primitive.ObjectIDFromHex(input.IssueID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}
	if !models.ValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	applyStatusUpdate(c, issueID, models.IssueStatus(input.Status), input.Message)
}
