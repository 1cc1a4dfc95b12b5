package domain

import "time"

// DefaultRecordTag is the partition tag under which the public-IP observer
// files its records.
const DefaultRecordTag = "FirewallUpdate"

// IPRecord is one observed public IP address in the record store.
// Records are immutable once written; the sync only ever reads the newest one.
type IPRecord struct {
	ID        string    `json:"id" db:"id"`
	Tag       string    `json:"tag" db:"tag"`
	IP        string    `json:"ip" db:"ip"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ReportIPRequest is the request body for recording an observed IP.
// An empty IP asks the server to discover its own public address.
type ReportIPRequest struct {
	IP string `json:"ip,omitempty"`
}
