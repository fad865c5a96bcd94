package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// CampaignStatus represents the lifecycle status of a marketing campaign
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusScheduled CampaignStatus = "scheduled"
	CampaignStatusSent      CampaignStatus = "sent"
	CampaignStatusFailed    CampaignStatus = "failed"
)

// String returns the string representation of the status
func (s CampaignStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusScheduled,
		CampaignStatusSent, CampaignStatusFailed:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for CampaignStatus
func (s *CampaignStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = CampaignStatus(v)
	case []byte:
		*s = CampaignStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into CampaignStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for CampaignStatus
func (s CampaignStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid CampaignStatus: %s", s)
	}
	return string(s), nil
}

// ChannelConfig is the free-form per-channel configuration record
// (e.g. email subject and from address, WhatsApp call-to-action link).
type ChannelConfig map[string]string

// CampaignData is the denormalized platform-specific configuration blob
// persisted alongside the campaign row.
type CampaignData struct {
	// Per-channel configuration keyed by channel identifier
	Channels map[string]ChannelConfig `json:"channels,omitempty"`

	// Target audience
	TargetGroupID *uint `json:"target_group_id,omitempty"`

	// Destinations entered by hand when no group is selected
	ManualRecipients []string `json:"manual_recipients,omitempty"`

	// Public URLs of attached media, existing entries first,
	// freshly uploaded entries appended after them
	Media []string `json:"media,omitempty"`
}

// Value implements the driver.Valuer interface for CampaignData
func (d CampaignData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements the sql.Scanner interface for CampaignData
func (d *CampaignData) Scan(value any) error {
	if value == nil {
		*d = CampaignData{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into CampaignData", value)
	}

	return json.Unmarshal(bytes, d)
}

// ChannelConfigFor returns the configuration for a channel, never nil.
func (d *CampaignData) ChannelConfigFor(channelID string) ChannelConfig {
	if d.Channels == nil {
		return ChannelConfig{}
	}
	cfg, ok := d.Channels[channelID]
	if !ok || cfg == nil {
		return ChannelConfig{}
	}
	return cfg
}

// Campaign represents a marketing campaign in the database
type Campaign struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UUID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uk_marketing_campaigns_uuid" json:"uuid"`
	UserID      uint           `gorm:"not null;index:idx_marketing_campaigns_user_id" json:"user_id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	Platforms   pq.StringArray `gorm:"type:text[];not null" json:"platforms"`
	Status      CampaignStatus `gorm:"type:varchar(20);not null;default:'draft';index:idx_marketing_campaigns_status" json:"status"`
	ScheduledAt *time.Time     `gorm:"index:idx_marketing_campaigns_scheduled_at" json:"scheduled_at,omitempty"`
	Data        CampaignData   `gorm:"type:jsonb;not null" json:"platform_data"`
	CreatedAt   time.Time      `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_marketing_campaigns_created_at" json:"created_at"`
	UpdatedAt   *time.Time     `json:"updated_at,omitempty"`

	// Relations
	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

// TableName returns the table name for the model
func (Campaign) TableName() string {
	return "marketing_campaigns"
}

// BeforeCreate is called before creating a new record
func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	if c.Status == "" {
		c.Status = CampaignStatusDraft
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (c *Campaign) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	c.UpdatedAt = &now
	return nil
}

// IsEditable checks if the campaign can still be edited
func (c *Campaign) IsEditable() bool {
	return c.Status == CampaignStatusDraft
}

// CanTransitionTo checks if the campaign can transition to the given status.
// Only drafts move; sent, scheduled and failed are terminal.
func (c *Campaign) CanTransitionTo(newStatus CampaignStatus) bool {
	switch c.Status {
	case CampaignStatusDraft:
		return newStatus == CampaignStatusSent ||
			newStatus == CampaignStatusScheduled ||
			newStatus == CampaignStatusFailed
	default:
		return false
	}
}

// HasPlatform reports whether the campaign targets the given channel
func (c *Campaign) HasPlatform(channelID string) bool {
	for _, p := range c.Platforms {
		if p == channelID {
			return true
		}
	}
	return false
}

// CampaignFilter represents filter criteria for campaigns
type CampaignFilter struct {
	ID              *uint           `json:"id,omitempty"`
	UUID            *uuid.UUID      `json:"uuid,omitempty"`
	UserID          *uint           `json:"user_id,omitempty"`
	Status          *CampaignStatus `json:"status,omitempty"`
	Title           *string         `json:"title,omitempty"`
	Platform        *string         `json:"platform,omitempty"`
	CreatedAfter    *time.Time      `json:"created_after,omitempty"`
	CreatedBefore   *time.Time      `json:"created_before,omitempty"`
	ScheduledAfter  *time.Time      `json:"scheduled_after,omitempty"`
	ScheduledBefore *time.Time      `json:"scheduled_before,omitempty"`
}

// GetStatusDisplayName returns a human-readable status name
func (c *Campaign) GetStatusDisplayName() string {
	switch c.Status {
	case CampaignStatusDraft:
		return "Draft"
	case CampaignStatusScheduled:
		return "Scheduled"
	case CampaignStatusSent:
		return "Sent"
	case CampaignStatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}
