package models

import "time"

// ActivityLog is an append-only record of a notable admin or manager action
// (user approval, role change, publish/recall, payment initiate/verify).
type ActivityLog struct {
	ID         string                 `json:"id,omitempty" firestore:"-"`
	Actor      string                 `json:"actor" firestore:"actor"` // email
	Action     string                 `json:"action" firestore:"action"`
	TargetType string                 `json:"targetType" firestore:"targetType"`
	TargetID   string                 `json:"targetId" firestore:"targetId"`
	Details    map[string]interface{} `json:"details,omitempty" firestore:"details,omitempty"`
	Timestamp  time.Time              `json:"timestamp" firestore:"timestamp,serverTimestamp"`
}
