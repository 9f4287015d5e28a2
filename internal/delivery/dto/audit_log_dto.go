package dto

import "time"

// Response DTOs

// AuditLogResponse is one entry of the audit trail. OldValue is empty for
// creations and NewValue for deletions.
type AuditLogResponse struct {
	ID        int64       `json:"id"`
	RequestID string      `json:"requestId,omitempty"`
	Action    string      `json:"action"`
	Entity    string      `json:"entity"`
	EntityID  string      `json:"entityId"`
	OldValue  interface{} `json:"oldValue,omitempty"`
	NewValue  interface{} `json:"newValue,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
