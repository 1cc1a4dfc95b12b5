package domain

import "time"

// Sync run statuses.
const (
	SyncStatusPending   = "pending"
	SyncStatusUpdated   = "updated"
	SyncStatusNoChanges = "no_changes"
	SyncStatusFailed    = "failed"
)

// SyncRun is the history record of one sync invocation.
type SyncRun struct {
	ID          string     `json:"id" db:"id"`
	ObservedIP  string     `json:"observedIp" db:"observed_ip"`
	Status      string     `json:"status" db:"status"`
	RuleCount   int        `json:"ruleCount" db:"rule_count"`
	Error       string     `json:"error,omitempty" db:"error"`
	StartedAt   time.Time  `json:"startedAt" db:"started_at"`
	CompletedAt *time.Time `json:"completedAt,omitempty" db:"completed_at"`
}

// SyncResponse is returned by the sync trigger endpoint.
type SyncResponse struct {
	RunID   string `json:"runId"`
	Status  string `json:"status"`
	IP      string `json:"ip,omitempty"`
	Message string `json:"message"`
}
