package domain

import "time"

// FetchWarning records a per-account fetch failure. The run continues
// without that account's contribution, but callers must be able to see
// that the intersection is missing it.
type FetchWarning struct {
	Account Account `json:"account"`
	Reason  string  `json:"reason"`
}

// Comparison is the outcome of a full run: the common games remaining
// after filtering, plus any accounts that contributed nothing.
type Comparison struct {
	Accounts []Account      `json:"accounts"`
	Games    []Game         `json:"games"`
	Warnings []FetchWarning `json:"warnings,omitempty"`
}

// JobState is the lifecycle of an asynchronous comparison.
type JobState string

const (
	JobPending   JobState = "pending"
	JobRunning   JobState = "running"
	JobDone      JobState = "done"
	JobCancelled JobState = "cancelled"
	JobFailed    JobState = "failed"
)

// ScanRecord is one audit entry for a web check of a game's detail
// payload. The keyword match is best-effort, so the history of what each
// scan actually found is kept for later inspection.
type ScanRecord struct {
	AppID     uint32       `json:"appId"`
	CheckedAt time.Time    `json:"checkedAt"`
	Matched   []FilterKind `json:"matched"`
}
