package models

import (
	"time"
)

// AuditLog represents a system audit entry
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Action    string    `gorm:"size:50;not null" json:"action"` // CREATE, PAYMENT, STATUS_OVERRIDE, LOGIN...
	Entity    string    `gorm:"size:50;not null" json:"entity"` // Bill, Client, Payment, etc.
	EntityID  uint      `json:"entityId"`
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ipAddress"`
	UserAgent string    `gorm:"size:255" json:"userAgent"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// UserAgentMaxLen is the width of the user_agent column.
const UserAgentMaxLen = 255

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit actions
const (
	AuditActionCreate         = "CREATE"
	AuditActionUpdate         = "UPDATE"
	AuditActionDelete         = "DELETE"
	AuditActionPayment        = "PAYMENT"
	AuditActionStatusOverride = "STATUS_OVERRIDE"
	AuditActionLogin          = "LOGIN"
	AuditActionSignup         = "SIGNUP"
)
