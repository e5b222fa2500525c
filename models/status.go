package models

// IssueStatus enum
type IssueStatus string

const (
	StatusReported   IssueStatus = "reported"
	StatusInReview   IssueStatus = "in_review"
	StatusAssigned   IssueStatus = "assigned"
	StatusInProgress IssueStatus = "in_progress"
	StatusResolved   IssueStatus = "resolved"
)

// StatusBucket is the dashboard counting bucket a status falls into.
// Active statuses are part of the total count but of neither the pending
// nor the resolved figure, matching the legacy dashboard numbers.
type StatusBucket int

const (
	BucketPending StatusBucket = iota
	BucketActive
	BucketResolved
)

// statusBuckets is the exhaustive status -> bucket table. Every status
// must have an entry; BucketFor panics on a status missing from it, and
// TestStatusBucketsExhaustive keeps the table in sync with the enum.
var statusBuckets = map[IssueStatus]StatusBucket{
	StatusReported:   BucketPending,
	StatusInReview:   BucketPending,
	StatusAssigned:   BucketPending,
	StatusInProgress: BucketActive,
	StatusResolved:   BucketResolved,
}

// AllStatuses lists every issue status in lifecycle order.
func AllStatuses() []IssueStatus {
	return []IssueStatus{
		StatusReported,
		StatusInReview,
		StatusAssigned,
		StatusInProgress,
		StatusResolved,
	}
}

// ValidStatus reports whether s is one of the known issue statuses.
func ValidStatus(s string) bool {
	_, ok := statusBuckets[IssueStatus(s)]
	return ok
}

// BucketFor returns the dashboard bucket for a status.
func BucketFor(s IssueStatus) StatusBucket {
	bucket, ok := statusBuckets[s]
	if !ok {
		panic("models: status missing from bucket table: " + string(s))
	}
	return bucket
}

// StatusesInBucket returns the statuses mapped to the given bucket, in
// lifecycle order. Dashboard count queries build their $in filters from it.
func StatusesInBucket(b StatusBucket) []IssueStatus {
	var out []IssueStatus
	for _, s := range AllStatuses() {
		if statusBuckets[s] == b {
			out = append(out, s)
		}
	}
	return out
}
