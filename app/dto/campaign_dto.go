package dto

import (
	"time"
)

// MediaUploadDTO carries one uploaded file extracted from a multipart form
type MediaUploadDTO struct {
	Filename string
	MimeType string
	Content  []byte
}

// SaveCampaignRequest represents the request to create or update a campaign draft
type SaveCampaignRequest struct {
	UserID           uint                         `json:"-"`
	UUID             *string                      `json:"-"`
	Title            string                       `json:"title"`
	Content          string                       `json:"content"`
	Platforms        []string                     `json:"platforms" validate:"omitempty,dive,oneof=email whatsapp facebook instagram twitter linkedin"`
	Channels         map[string]map[string]string `json:"channels,omitempty"`
	TargetGroupID    *uint                        `json:"target_group_id,omitempty"`
	ManualRecipients []string                     `json:"manual_recipients,omitempty"`
	ExistingMedia    []string                     `json:"existing_media,omitempty"`
	NewMedia         []MediaUploadDTO             `json:"-"`
}

// SaveCampaignResponse represents the response to a campaign save
type SaveCampaignResponse struct {
	Message   string   `json:"message"`
	UUID      string   `json:"uuid"`
	Status    string   `json:"status"`
	Media     []string `json:"media,omitempty"`
	CreatedAt string   `json:"created_at"`
}

// SendCampaignRequest represents the request to dispatch a campaign immediately
type SendCampaignRequest struct {
	SaveCampaignRequest
}

// SendCampaignResponse represents the response to an immediate dispatch.
// Queue is set when the campaign includes the whatsapp channel; the campaign
// stays pending until the queue is walked to completion.
type SendCampaignResponse struct {
	Message string                 `json:"message"`
	UUID    string                 `json:"uuid"`
	Status  string                 `json:"status"`
	Sent    int                    `json:"sent"`
	Failed  int                    `json:"failed"`
	Queue   *DispatchQueueSnapshot `json:"queue,omitempty"`
}

// ScheduleCampaignRequest represents the request to schedule a campaign
type ScheduleCampaignRequest struct {
	SaveCampaignRequest
	ScheduledAt *time.Time `json:"scheduled_at" validate:"required"`
}

// ScheduleCampaignResponse represents the response to a campaign schedule
type ScheduleCampaignResponse struct {
	Message     string `json:"message"`
	UUID        string `json:"uuid"`
	Status      string `json:"status"`
	ScheduledAt string `json:"scheduled_at"`
}

// GetCampaignRequest represents the request to get an existing campaign
type GetCampaignRequest struct {
	UUID   string `json:"-"`
	UserID uint   `json:"-"`
}

// CampaignDTO represents a campaign in responses
type CampaignDTO struct {
	UUID          string                       `json:"uuid"`
	Title         string                       `json:"title"`
	Content       string                       `json:"content"`
	Platforms     []string                     `json:"platforms"`
	Channels      map[string]map[string]string `json:"channels,omitempty"`
	TargetGroupID *uint                        `json:"target_group_id,omitempty"`
	Media         []string                     `json:"media,omitempty"`
	Status        string                       `json:"status"`
	StatusDisplay string                       `json:"status_display"`
	ScheduledAt   *time.Time                   `json:"scheduled_at,omitempty"`
	CreatedAt     time.Time                    `json:"created_at"`
	UpdatedAt     *time.Time                   `json:"updated_at,omitempty"`
}

// ListCampaignsRequest represents filter criteria for listing campaigns
type ListCampaignsRequest struct {
	UserID   uint    `json:"-"`
	Page     int     `json:"page" validate:"omitempty,min=1"`
	PageSize int     `json:"page_size" validate:"omitempty,min=1,max=100"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=draft scheduled sent failed"`
}

// ListCampaignsResponse represents the paginated campaign listing
type ListCampaignsResponse struct {
	Message    string        `json:"message"`
	Items      []CampaignDTO `json:"items"`
	Pagination PaginationDTO `json:"pagination"`
}
