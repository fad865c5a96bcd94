// Package businessflow contains the business logic for the application.
package businessflow

import (
	"context"
	"time"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/dto"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/models"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/repository"
	"github.com/google/uuid"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds all client-related information for audit logging and session tracking
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	RequestID  string            `json:"request_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Additional: make(map[string]string),
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

func getUser(ctx context.Context, userRepo repository.UserRepository, userID uint) (models.User, error) {
	user, err := userRepo.ByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if user == nil {
		return models.User{}, ErrUserNotFound
	}
	if user.IsActive == nil || !*user.IsActive {
		return models.User{}, ErrAccountInactive
	}
	return *user, nil
}

func getCampaign(ctx context.Context, campaignRepo repository.CampaignRepository, campaignUUID string, userID uint) (models.Campaign, error) {
	if _, err := uuid.Parse(campaignUUID); err != nil {
		return models.Campaign{}, ErrCampaignNotFound
	}

	campaign, err := campaignRepo.ByUUID(ctx, campaignUUID)
	if err != nil {
		return models.Campaign{}, err
	}
	if campaign == nil {
		return models.Campaign{}, ErrCampaignNotFound
	}
	if campaign.UserID != userID {
		return models.Campaign{}, ErrCampaignAccessDenied
	}
	return *campaign, nil
}

// ToAuthUserDTO converts a user model to AuthUserDTO for authentication responses
func ToAuthUserDTO(user models.User) dto.AuthUserDTO {
	return dto.AuthUserDTO{
		ID:        user.ID,
		UUID:      user.UUID.String(),
		FullName:  user.FullName,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

// ToCampaignDTO converts a campaign model to CampaignDTO for responses
func ToCampaignDTO(campaign models.Campaign) dto.CampaignDTO {
	channels := make(map[string]map[string]string, len(campaign.Data.Channels))
	for id, cfg := range campaign.Data.Channels {
		channels[id] = map[string]string(cfg)
	}

	return dto.CampaignDTO{
		UUID:          campaign.UUID.String(),
		Title:         campaign.Title,
		Content:       campaign.Content,
		Platforms:     []string(campaign.Platforms),
		Channels:      channels,
		TargetGroupID: campaign.Data.TargetGroupID,
		Media:         campaign.Data.Media,
		Status:        string(campaign.Status),
		StatusDisplay: campaign.GetStatusDisplayName(),
		ScheduledAt:   campaign.ScheduledAt,
		CreatedAt:     campaign.CreatedAt,
		UpdatedAt:     campaign.UpdatedAt,
	}
}

// ToClientDTO converts a client model to ClientDTO for responses
func ToClientDTO(client models.Client) dto.ClientDTO {
	return dto.ClientDTO{
		UUID:      client.UUID.String(),
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		CreatedAt: client.CreatedAt.Format(time.RFC3339),
	}
}

// ToMediaAssetDTO converts a media asset model to MediaAssetDTO for responses
func ToMediaAssetDTO(asset models.MediaAsset) dto.MediaAssetDTO {
	return dto.MediaAssetDTO{
		UUID:         asset.UUID.String(),
		URL:          asset.PublicURL,
		ThumbnailURL: asset.ThumbnailURL,
		MediaType:    asset.MediaType,
		MimeType:     asset.MimeType,
		SizeBytes:    asset.SizeBytes,
		CreatedAt:    asset.CreatedAt.Format(time.RFC3339),
	}
}
