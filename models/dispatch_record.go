package models

import (
	"time"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/utils"
	"gorm.io/gorm"
)

const (
	DispatchStatusSent   = "sent"
	DispatchStatusQueued = "queued"
	DispatchStatusFailed = "failed"
)

// DispatchRecord is the audit row written for every recipient a campaign
// attempted to reach on a channel.
type DispatchRecord struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	CampaignID uint       `gorm:"not null;index:idx_dispatch_records_campaign_id" json:"campaign_id"`
	Channel    string     `gorm:"type:varchar(20);not null;index:idx_dispatch_records_channel" json:"channel"`
	Recipient  string     `gorm:"type:varchar(255);not null" json:"recipient"`
	Status     string     `gorm:"type:varchar(20);not null" json:"status"`
	Error      *string    `gorm:"type:text" json:"error,omitempty"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
	CreatedAt  time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	Campaign *Campaign `gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE" json:"campaign,omitempty"`
}

func (DispatchRecord) TableName() string { return "dispatch_records" }

// BeforeCreate ensures the creation timestamp is set
func (r *DispatchRecord) BeforeCreate(tx *gorm.DB) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = utils.UTCNow()
	}
	return nil
}

// DispatchRecordFilter represents filter criteria for dispatch record queries
type DispatchRecordFilter struct {
	ID            *uint      `json:"id,omitempty"`
	CampaignID    *uint      `json:"campaign_id,omitempty"`
	Channel       *string    `json:"channel,omitempty"`
	Status        *string    `json:"status,omitempty"`
	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
}
