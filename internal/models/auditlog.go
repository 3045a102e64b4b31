// internal/models/auditlog.go
// AuditLogEntry — the Store's "log queue", backed by MongoDB in this repo
// (see internal/repositories/auditlog_repository.go), batched and flushed
// every config.LogBatchMinutes.

package models

import "time"

// AuditLogEntry is one line of the audit trail: adjustments, registration
// decisions, ritual timeouts, and similar TO-visible events.
type AuditLogEntry struct {
	ID        string    `json:"id" bson:"id"`
	EventID   string    `json:"event_id" bson:"event_id"`
	Kind      string    `json:"kind" bson:"kind"`
	Summary   string    `json:"summary" bson:"summary"`
	Detail    string    `json:"detail,omitempty" bson:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
