package models

import (
	"time"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TargetGroup is a saved collection of clients used to resolve campaign
// recipients.
type TargetGroup struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UUID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_target_groups_uuid" json:"uuid"`
	UserID      uint      `gorm:"not null;index:idx_target_groups_user_id" json:"user_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`

	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Relations
	User    *User    `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Clients []Client `gorm:"many2many:client_groups;" json:"clients,omitempty"`
}

func (TargetGroup) TableName() string {
	return "target_groups"
}

// BeforeCreate ensures UUID and creation timestamp are set
func (g *TargetGroup) BeforeCreate(tx *gorm.DB) error {
	if g.UUID == uuid.Nil {
		g.UUID = uuid.New()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = utils.UTCNow()
	}
	return nil
}

// TargetGroupFilter represents filter criteria for target group queries
type TargetGroupFilter struct {
	ID            *uint      `json:"id,omitempty"`
	UUID          *uuid.UUID `json:"uuid,omitempty"`
	UserID        *uint      `json:"user_id,omitempty"`
	Name          *string    `json:"name,omitempty"`
	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
}

// ClientGroup is the join table linking clients to target groups.
type ClientGroup struct {
	ClientID      uint      `gorm:"primaryKey" json:"client_id"`
	TargetGroupID uint      `gorm:"primaryKey" json:"target_group_id"`
	CreatedAt     time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

func (ClientGroup) TableName() string {
	return "client_groups"
}
