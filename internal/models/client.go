package models

import "time"

// Client is a customer of the print shop.
type Client struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null;index" json:"name"`
	Phone      *string   `json:"phone"`
	Address    *string   `json:"address"`
	AssignedTo *uint     `gorm:"index" json:"assignedTo"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Associations
	Projects []Project `gorm:"foreignKey:ClientID" json:"projects,omitempty"`
	Bills    []Bill    `gorm:"foreignKey:ClientID" json:"bills,omitempty"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "clients"
}
