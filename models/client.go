package models

import (
	"time"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client represents a contact record owned by a user. A client may carry a
// phone number, an email address, or both; recipient resolution picks the
// field the channel needs and drops records where it is empty.
type Client struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UUID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_clients_uuid" json:"uuid"`
	UserID uint      `gorm:"not null;index:idx_clients_user_id" json:"user_id"`
	Name   string    `gorm:"size:255;not null" json:"name"`
	Email  string    `gorm:"size:255" json:"email"`
	Phone  string    `gorm:"size:20" json:"phone"`

	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Relations
	User   *User         `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Groups []TargetGroup `gorm:"many2many:client_groups;" json:"groups,omitempty"`
}

func (Client) TableName() string {
	return "clients"
}

// BeforeCreate ensures UUID and creation timestamp are set
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = utils.UTCNow()
	}
	return nil
}

// ClientFilter represents filter criteria for client queries
type ClientFilter struct {
	ID            *uint      `json:"id,omitempty"`
	UUID          *uuid.UUID `json:"uuid,omitempty"`
	UserID        *uint      `json:"user_id,omitempty"`
	Name          *string    `json:"name,omitempty"`
	Email         *string    `json:"email,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	GroupID       *uint      `json:"group_id,omitempty"`
	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
}
