package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueCategory enum
type IssueCategory string

const (
	Road        IssueCategory = "Road"
	Water       IssueCategory = "Water"
	Sanitation  IssueCategory = "Sanitation"
	Electricity IssueCategory = "Electricity"
	Other       IssueCategory = "Other"
)

// ValidCategory reports whether s is one of the known categories.
func ValidCategory(s string) bool {
	switch IssueCategory(s) {
	case Road, Water, Sanitation, Electricity, Other:
		return true
	}
	return false
}

// FundsStatus enum for the funds request sub-workflow
type FundsStatus string

const (
	FundsPending  FundsStatus = "pending"
	FundsApproved FundsStatus = "approved"
)

var (
	ErrNoFundsRequest        = errors.New("issue has no funds request")
	ErrFundsAlreadyRequested = errors.New("issue already has a funds request")
)

// FundsRequest is the budget sub-state attached to an issue once a
// contractor asks for funds.
type FundsRequest struct {
	Amount      float64             `bson:"amount" json:"amount"`
	Status      FundsStatus         `bson:"status" json:"status"`
	RequestedBy primitive.ObjectID  `bson:"requestedBy" json:"requestedBy"`
	RequestedAt time.Time           `bson:"requestedAt" json:"requestedAt"`
	ApprovedBy  *primitive.ObjectID `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt  *time.Time          `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
}

// IssueUpdate is one timeline entry on an issue.
type IssueUpdate struct {
	Status  IssueStatus `bson:"status" json:"status"`
	Message string      `bson:"message,omitempty" json:"message,omitempty"`
	Date    time.Time   `bson:"date" json:"date"`
}

// Issue represents a civic problem reported by a citizen
type Issue struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title        string              `bson:"title" json:"title"`
	Description  string              `bson:"description" json:"description"`
	Category     IssueCategory       `bson:"category" json:"category"`
	Status       IssueStatus         `bson:"status" json:"status"`
	Address      string              `bson:"address,omitempty" json:"address,omitempty"`
	City         string              `bson:"city,omitempty" json:"city,omitempty"`
	Latitude     *float64            `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude    *float64            `bson:"longitude,omitempty" json:"longitude,omitempty"`
	ImageURL     *string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	UserID       primitive.ObjectID  `bson:"userId" json:"userId"`
	ContractorID *primitive.ObjectID `bson:"contractorId,omitempty" json:"contractorId,omitempty"`
	Updates      []IssueUpdate       `bson:"updates,omitempty" json:"updates,omitempty"`
	Funds        *FundsRequest       `bson:"funds,omitempty" json:"funds,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// SetStatus moves the issue to a new status and appends a timeline entry.
func (i *Issue) SetStatus(status IssueStatus, message string, now time.Time) {
	i.Status = status
	i.Updates = append(i.Updates, IssueUpdate{Status: status, Message: message, Date: now})
	i.UpdatedAt = now
}

// Assign records the contractor working the issue and moves it to assigned.
func (i *Issue) Assign(contractorID primitive.ObjectID, now time.Time) {
	i.ContractorID = &contractorID
	i.SetStatus(StatusAssigned, "assigned to contractor", now)
}

// RequestFunds attaches a pending funds request. An issue carries at most
// one request; a second call fails with ErrFundsAlreadyRequested.
func (i *Issue) RequestFunds(amount float64, requesterID primitive.ObjectID, now time.Time) error {
	if i.Funds != nil {
		return ErrFundsAlreadyRequested
	}
	i.Funds = &FundsRequest{
		Amount:      amount,
		Status:      FundsPending,
		RequestedBy: requesterID,
		RequestedAt: now,
	}
	i.Updates = append(i.Updates, IssueUpdate{
		Status:  i.Status,
		Message: "funds requested",
		Date:    now,
	})
	i.UpdatedAt = now
	return nil
}

// ApproveFunds marks the pending funds request approved. Approving an
// already-approved request is a no-op so retried approvals stay safe.
func (i *Issue) ApproveFunds(approverID primitive.ObjectID, now time.Time) error {
	if i.Funds == nil {
		return ErrNoFundsRequest
	}
	if i.Funds.Status == FundsApproved {
		return nil
	}
	i.Funds.Status = FundsApproved
	i.Funds.ApprovedBy = &approverID
	i.Funds.ApprovedAt = &now
	i.Updates = append(i.Updates, IssueUpdate{
		Status:  i.Status,
		Message: "funds approved",
		Date:    now,
	})
	i.UpdatedAt = now
	return nil
}
