package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"urbanmind-be/models"
)

type statsBody struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Resolved int64 `json:"resolved"`
}

func fetchStats(t *testing.T, r *gin.Engine) statsBody {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	var stats statsBody
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	return stats
}

func TestGetStatsBucketCounts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID, _ := primitive.ObjectIDFromHex(testUserID)

	now := time.Now()
	issue := &models.Issue{
		ID:          primitive.NewObjectID(),
		Title:       "Pothole on Elm Street",
		Description: "Deep pothole near the bus stop",
		Category:    models.Road,
		Status:      models.StatusReported,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	issues := &memIssueColl{issues: []*models.Issue{issue}}
	useCollections(t, map[string]collection{"issues": issues})

	r := gin.New()
	r.GET("/stats", asUser(testUserID, "citizen"), GetStats)

	// A freshly reported issue counts as pending.
	stats := fetchStats(t, r)
	if stats.Total != 1 || stats.Pending != 1 || stats.Resolved != 0 {
		t.Fatalf("reported issue: got %+v, want total=1 pending=1 resolved=0", stats)
	}

	// Once resolved it moves from pending to resolved.
	issue.Status = models.StatusResolved
	stats = fetchStats(t, r)
	if stats.Total != 1 || stats.Pending != 0 || stats.Resolved != 1 {
		t.Fatalf("resolved issue: got %+v, want total=1 pending=0 resolved=1", stats)
	}

	// In-progress work appears in the total but in neither bucket.
	issue.Status = models.StatusInProgress
	stats = fetchStats(t, r)
	if stats.Total != 1 || stats.Pending != 0 || stats.Resolved != 0 {
		t.Fatalf("in-progress issue: got %+v, want total=1 pending=0 resolved=0", stats)
	}
}

func TestGetStatsScopedToCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID, _ := primitive.ObjectIDFromHex(testUserID)
	otherID := primitive.NewObjectID()
	contractorID := primitive.NewObjectID()

	now := time.Now()
	mine := &models.Issue{
		ID: primitive.NewObjectID(), Title: "Leaking main", Category: models.Water,
		Status: models.StatusReported, UserID: userID, CreatedAt: now, UpdatedAt: now,
	}
	assigned := &models.Issue{
		ID: primitive.NewObjectID(), Title: "Dark alley", Category: models.Electricity,
		Status: models.StatusAssigned, UserID: otherID, ContractorID: &contractorID,
		CreatedAt: now, UpdatedAt: now,
	}
	issues := &memIssueColl{issues: []*models.Issue{mine, assigned}}
	useCollections(t, map[string]collection{"issues": issues})

	// The citizen only sees their own report.
	r := gin.New()
	r.GET("/stats", asUser(testUserID, "citizen"), GetStats)
	stats := fetchStats(t, r)
	if stats.Total != 1 || stats.Pending != 1 {
		t.Fatalf("citizen stats: got %+v, want total=1 pending=1", stats)
	}

	// The contractor counts over issues assigned to them.
	r = gin.New()
	r.GET("/stats", asUser(contractorID.Hex(), "contractor"), GetStats)
	stats = fetchStats(t, r)
	if stats.Total != 1 || stats.Pending != 1 || stats.Resolved != 0 {
		t.Fatalf("contractor stats: got %+v, want total=1 pending=1 resolved=0", stats)
	}
}

func TestGetRecentIssuesNewestFirst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID, _ := primitive.ObjectIDFromHex(testUserID)

	base := time.Now().Add(-time.Hour)
	var stored []*models.Issue
	for i := 0; i < 7; i++ {
		stored = append(stored, &models.Issue{
			ID:        primitive.NewObjectID(),
			Title:     "Report",
			Category:  models.Other,
			Status:    models.StatusReported,
			UserID:    userID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	useCollections(t, map[string]collection{"issues": &memIssueColl{issues: stored}})

	r := gin.New()
	r.GET("/my-issues", asUser(testUserID, "citizen"), GetRecentIssues)

	req := httptest.NewRequest(http.MethodGet, "/my-issues", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	var got []models.Issue
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode issues: %v", err)
	}
	// Citizens get the default page of five, newest first.
	if len(got) != models.DefaultIssueLimit {
		t.Fatalf("len = %d, want %d", len(got), models.DefaultIssueLimit)
	}
	if got[0].ID != stored[6].ID {
		t.Fatalf("first issue = %s, want the newest %s", got[0].ID.Hex(), stored[6].ID.Hex())
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Fatalf("issues not sorted newest first at index %d", i)
		}
	}
}
