package models

import "time"

// AuditLog is one entry of the admin activity trail: logins, logouts and
// every create or delete performed on the site content.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Actor     string    `gorm:"size:100;index:idx_audit_actor_created,priority:1" json:"actor"`
	Action    string    `gorm:"size:64;not null;index" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `gorm:"index:idx_audit_actor_created,priority:2" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// AuditFilter narrows an audit listing. Empty fields match everything.
type AuditFilter struct {
	Actor  string
	Action string
	Limit  int
}
