package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Default "my issues" page sizes. Contractor task lists show more rows
// than the citizen dashboard card.
const (
	DefaultIssueLimit    = 5
	ContractorIssueLimit = 20
	MaxIssueLimit        = 100
)

// ResolveScopeFilter returns the query predicate selecting the caller's
// issues. A contractor owns the issues assigned to them; every other role
// owns the issues they reported.
func ResolveScopeFilter(role Role, callerID primitive.ObjectID) bson.M {
	if role == RoleContractor {
		return bson.M{"contractorId": callerID}
	}
	return bson.M{"userId": callerID}
}

// ScopeLimit returns the default page size for the caller's role.
func ScopeLimit(role Role) int {
	if role == RoleContractor {
		return ContractorIssueLimit
	}
	return DefaultIssueLimit
}
