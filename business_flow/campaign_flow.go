// Package businessflow contains the core business logic and use cases for campaign workflows
package businessflow

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/dto"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/services"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/config"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/models"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/repository"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/utils"
	"gorm.io/gorm"
)

// CampaignFlow handles the campaign business logic
type CampaignFlow interface {
	SaveDraft(ctx context.Context, req *dto.SaveCampaignRequest, metadata *ClientMetadata) (*dto.SaveCampaignResponse, error)
	SendNow(ctx context.Context, req *dto.SendCampaignRequest, metadata *ClientMetadata) (*dto.SendCampaignResponse, error)
	Schedule(ctx context.Context, req *dto.ScheduleCampaignRequest, metadata *ClientMetadata) (*dto.ScheduleCampaignResponse, error)
	ListCampaigns(ctx context.Context, req *dto.ListCampaignsRequest, metadata *ClientMetadata) (*dto.ListCampaignsResponse, error)
	GetCampaign(ctx context.Context, req *dto.GetCampaignRequest, metadata *ClientMetadata) (*dto.CampaignDTO, error)

	// ExecuteScheduled dispatches one due scheduled campaign and flips its
	// status. Used by the background dispatcher.
	ExecuteScheduled(ctx context.Context, campaign *models.Campaign) error
}

// CampaignFlowImpl implements the campaign business flow
type CampaignFlowImpl struct {
	campaignRepo repository.CampaignRepository
	userRepo     repository.UserRepository
	dispatchRepo repository.DispatchRecordRepository
	resolver     *RecipientResolver
	mediaFlow    MediaFlow
	queueFlow    WhatsAppQueueFlow
	emailSender  services.EmailSender
	emailConfig  config.EmailConfig
	horizon      time.Duration
	db           *gorm.DB
}

// NewCampaignFlow creates a new campaign flow instance
func NewCampaignFlow(
	campaignRepo repository.CampaignRepository,
	userRepo repository.UserRepository,
	dispatchRepo repository.DispatchRecordRepository,
	resolver *RecipientResolver,
	mediaFlow MediaFlow,
	queueFlow WhatsAppQueueFlow,
	emailSender services.EmailSender,
	emailConfig config.EmailConfig,
	campaignConfig config.CampaignConfig,
	db *gorm.DB,
) CampaignFlow {
	horizon := campaignConfig.ScheduleHorizon
	if horizon == 0 {
		horizon = utils.ScheduleHorizon
	}
	return &CampaignFlowImpl{
		campaignRepo: campaignRepo,
		userRepo:     userRepo,
		dispatchRepo: dispatchRepo,
		resolver:     resolver,
		mediaFlow:    mediaFlow,
		queueFlow:    queueFlow,
		emailSender:  emailSender,
		emailConfig:  emailConfig,
		horizon:      horizon,
		db:           db,
	}
}

// SaveDraft creates or updates a campaign without dispatching anything
func (s *CampaignFlowImpl) SaveDraft(ctx context.Context, req *dto.SaveCampaignRequest, metadata *ClientMetadata) (*dto.SaveCampaignResponse, error) {
	if err := s.validateDetails(req); err != nil {
		return nil, NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign validation failed", err)
	}
	if len(req.Platforms) > 0 {
		if err := ValidateChannels(req.Platforms, toChannelConfigs(req.Channels)); err != nil {
			return nil, NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign validation failed", err)
		}
	}

	if _, err := getUser(ctx, s.userRepo, req.UserID); err != nil {
		return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to lookup user", err)
	}

	campaign, err := s.persistCampaign(ctx, req, models.CampaignStatusDraft, nil)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_SAVE_FAILED", "Campaign save failed", err)
	}

	return &dto.SaveCampaignResponse{
		Message:   "Campaign saved successfully",
		UUID:      campaign.UUID.String(),
		Status:    string(campaign.Status),
		Media:     campaign.Data.Media,
		CreatedAt: campaign.CreatedAt.Format(time.RFC3339),
	}, nil
}

// SendNow dispatches a campaign immediately. Email recipients each get one
// message; a selected whatsapp channel opens a manual dispatch session
// instead and the campaign stays pending until the session completes.
func (s *CampaignFlowImpl) SendNow(ctx context.Context, req *dto.SendCampaignRequest, metadata *ClientMetadata) (*dto.SendCampaignResponse, error) {
	if err := s.validateForDispatch(&req.SaveCampaignRequest); err != nil {
		return nil, err
	}

	if _, err := getUser(ctx, s.userRepo, req.UserID); err != nil {
		return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to lookup user", err)
	}

	// Resolve every channel's recipients before touching storage so that an
	// empty audience aborts with nothing persisted.
	var emailRecipients []string
	if SelectedKind(req.Platforms, KindEmail) {
		var err error
		emailRecipients, err = s.resolver.Resolve(ctx, req.TargetGroupID, req.ManualRecipients, FieldEmail)
		if err != nil {
			return nil, NewBusinessError("RECIPIENT_RESOLUTION_FAILED", "Failed to resolve recipients", err)
		}
	}
	if SelectedKind(req.Platforms, KindWhatsApp) {
		if _, err := s.resolver.Resolve(ctx, req.TargetGroupID, req.ManualRecipients, FieldPhone); err != nil {
			return nil, NewBusinessError("RECIPIENT_RESOLUTION_FAILED", "Failed to resolve recipients", err)
		}
	}

	campaign, err := s.persistCampaign(ctx, &req.SaveCampaignRequest, models.CampaignStatusDraft, nil)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_SAVE_FAILED", "Campaign save failed", err)
	}

	resp := &dto.SendCampaignResponse{
		UUID: campaign.UUID.String(),
	}

	if len(emailRecipients) > 0 {
		payload := BuildEmailPayload(
			campaign.Title,
			campaign.Content,
			campaign.Data.ChannelConfigFor("email"),
			req.ExistingMedia,
			req.NewMedia,
			s.emailConfig.FromAddress,
			utils.UTCNow(),
		)
		resp.Sent, resp.Failed = s.dispatchEmails(ctx, campaign, payload, emailRecipients)
	}

	switch {
	case SelectedKind(req.Platforms, KindWhatsApp):
		// The campaign is marked sent by the dispatch queue on completion.
		queueResp, err := s.queueFlow.Start(ctx, &dto.StartDispatchQueueRequest{
			UserID:       req.UserID,
			CampaignUUID: campaign.UUID.String(),
		}, metadata)
		if err != nil {
			return nil, err
		}
		resp.Status = string(campaign.Status)
		resp.Queue = &queueResp.Queue
		resp.Message = "Campaign dispatch started, walk the queue to finish"
	case len(emailRecipients) > 0 && resp.Sent == 0:
		if err := s.campaignRepo.UpdateStatus(ctx, campaign.ID, models.CampaignStatusFailed); err != nil {
			return nil, NewBusinessError("CAMPAIGN_STATUS_UPDATE_FAILED", "Failed to update campaign status", err)
		}
		resp.Status = string(models.CampaignStatusFailed)
		resp.Message = "Campaign dispatch failed"
	default:
		if err := s.campaignRepo.UpdateStatus(ctx, campaign.ID, models.CampaignStatusSent); err != nil {
			return nil, NewBusinessError("CAMPAIGN_STATUS_UPDATE_FAILED", "Failed to update campaign status", err)
		}
		resp.Status = string(models.CampaignStatusSent)
		resp.Message = "Campaign sent successfully"
	}

	return resp, nil
}

// Schedule stores the campaign for later dispatch by the background worker
func (s *CampaignFlowImpl) Schedule(ctx context.Context, req *dto.ScheduleCampaignRequest, metadata *ClientMetadata) (*dto.ScheduleCampaignResponse, error) {
	if err := s.validateForDispatch(&req.SaveCampaignRequest); err != nil {
		return nil, err
	}

	if req.ScheduledAt == nil || req.ScheduledAt.IsZero() {
		return nil, NewBusinessError("INVALID_SCHEDULE_TIME", "Schedule time is required", ErrScheduleTimeNotPresent)
	}
	scheduledAt := req.ScheduledAt.UTC()
	now := utils.UTCNow()
	if scheduledAt.Before(now) {
		return nil, NewBusinessError("INVALID_SCHEDULE_TIME", "Schedule time is in the past", ErrScheduleTimeInPast)
	}
	// The dispatch window only constrains email sends.
	if SelectedKind(req.Platforms, KindEmail) && scheduledAt.After(now.Add(s.horizon)) {
		return nil, NewBusinessError("INVALID_SCHEDULE_TIME",
			fmt.Sprintf("Schedule time must be within %s", s.horizon), ErrScheduleTimeBeyondWindow)
	}

	if _, err := getUser(ctx, s.userRepo, req.UserID); err != nil {
		return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to lookup user", err)
	}

	campaign, err := s.persistCampaign(ctx, &req.SaveCampaignRequest, models.CampaignStatusScheduled, &scheduledAt)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_SAVE_FAILED", "Campaign save failed", err)
	}

	return &dto.ScheduleCampaignResponse{
		Message:     "Campaign scheduled successfully",
		UUID:        campaign.UUID.String(),
		Status:      string(campaign.Status),
		ScheduledAt: scheduledAt.Format(time.RFC3339),
	}, nil
}

// ListCampaigns returns the paginated campaign history of a user
func (s *CampaignFlowImpl) ListCampaigns(ctx context.Context, req *dto.ListCampaignsRequest, metadata *ClientMetadata) (*dto.ListCampaignsResponse, error) {
	page, pageSize, err := normalizePage(req.Page, req.PageSize)
	if err != nil {
		return nil, NewBusinessError("INVALID_PAGINATION", "Invalid pagination parameters", err)
	}

	filter := models.CampaignFilter{UserID: &req.UserID}
	if req.Status != nil {
		status := models.CampaignStatus(*req.Status)
		filter.Status = &status
	}

	campaigns, err := s.campaignRepo.ByFilter(ctx, filter, "created_at DESC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LIST_FAILED", "Failed to list campaigns", err)
	}

	total, err := s.campaignRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_COUNT_FAILED", "Failed to count campaigns", err)
	}

	items := make([]dto.CampaignDTO, 0, len(campaigns))
	for _, c := range campaigns {
		items = append(items, ToCampaignDTO(*c))
	}

	return &dto.ListCampaignsResponse{
		Message:    "Campaigns listed successfully",
		Items:      items,
		Pagination: dto.PaginationDTO{Page: page, PageSize: pageSize, Total: total},
	}, nil
}

// GetCampaign returns one campaign owned by the user
func (s *CampaignFlowImpl) GetCampaign(ctx context.Context, req *dto.GetCampaignRequest, metadata *ClientMetadata) (*dto.CampaignDTO, error) {
	campaign, err := getCampaign(ctx, s.campaignRepo, req.UUID, req.UserID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	out := ToCampaignDTO(campaign)
	return &out, nil
}

// ExecuteScheduled dispatches one due campaign. Dispatch errors are recorded
// on the campaign status, not returned, so the worker keeps draining.
func (s *CampaignFlowImpl) ExecuteScheduled(ctx context.Context, campaign *models.Campaign) error {
	if campaign.Status != models.CampaignStatusScheduled {
		return ErrInvalidStatusTransition
	}

	if !SelectedKind(campaign.Platforms, KindEmail) {
		// WhatsApp dispatch stays manual and social is acknowledgment only,
		// so a due campaign without email has nothing left to execute.
		return s.campaignRepo.UpdateStatus(ctx, campaign.ID, models.CampaignStatusSent)
	}

	recipients, err := s.resolver.Resolve(ctx, campaign.Data.TargetGroupID, campaign.Data.ManualRecipients, FieldEmail)
	if err != nil {
		log.Printf("scheduled dispatch: campaign %s: %v", campaign.UUID, err)
		return s.campaignRepo.UpdateStatus(ctx, campaign.ID, models.CampaignStatusFailed)
	}

	payload := BuildEmailPayload(
		campaign.Title,
		campaign.Content,
		campaign.Data.ChannelConfigFor("email"),
		campaign.Data.Media,
		nil,
		s.emailConfig.FromAddress,
		utils.UTCNow(),
	)

	sent, _ := s.dispatchEmails(ctx, campaign, payload, recipients)
	status := models.CampaignStatusSent
	if sent == 0 {
		status = models.CampaignStatusFailed
	}
	return s.campaignRepo.UpdateStatus(ctx, campaign.ID, status)
}

func (s *CampaignFlowImpl) dispatchEmails(ctx context.Context, campaign *models.Campaign, payload EmailPayload, recipients []string) (sent, failed int) {
	for _, to := range recipients {
		msg := &services.EmailMessage{
			To:          to,
			From:        payload.From,
			Subject:     payload.Subject,
			HTML:        payload.HTML,
			Attachments: payload.Attachments,
		}

		record := &models.DispatchRecord{
			CampaignID: campaign.ID,
			Channel:    "email",
			Recipient:  to,
		}
		if err := s.emailSender.Send(ctx, msg); err != nil {
			failed++
			errMsg := err.Error()
			record.Status = models.DispatchStatusFailed
			record.Error = &errMsg
			log.Printf("email dispatch: campaign %s to %s: %v", campaign.UUID, to, err)
		} else {
			sent++
			record.Status = models.DispatchStatusSent
			record.SentAt = utils.UTCNowPtr()
		}
		if err := s.dispatchRepo.Save(ctx, record); err != nil {
			log.Printf("email dispatch: recording %s failed: %v", to, err)
		}
	}
	return sent, failed
}

func (s *CampaignFlowImpl) validateDetails(req *dto.SaveCampaignRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return ErrCampaignTitleRequired
	}
	if strings.TrimSpace(req.Content) == "" {
		return ErrCampaignContentRequired
	}
	return nil
}

func (s *CampaignFlowImpl) validateForDispatch(req *dto.SaveCampaignRequest) error {
	if err := s.validateDetails(req); err != nil {
		return NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign validation failed", err)
	}

	w := WizardState{Title: req.Title, Content: req.Content, Platforms: req.Platforms}
	if !w.StepComplete(StepPlatforms) {
		return NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign validation failed", ErrCampaignChannelRequired)
	}
	if err := ValidateChannels(req.Platforms, toChannelConfigs(req.Channels)); err != nil {
		return NewBusinessError("CAMPAIGN_VALIDATION_FAILED", "Campaign validation failed", err)
	}
	return nil
}

// persistCampaign uploads freshly attached files and writes the campaign
// row, either creating it or updating an editable draft in place. Existing
// media keeps its position, new uploads are appended after it.
func (s *CampaignFlowImpl) persistCampaign(ctx context.Context, req *dto.SaveCampaignRequest, status models.CampaignStatus, scheduledAt *time.Time) (*models.Campaign, error) {
	media := make([]string, 0, len(req.ExistingMedia)+len(req.NewMedia))
	media = append(media, req.ExistingMedia...)
	media = append(media, s.mediaFlow.UploadCampaignMedia(ctx, req.UserID, req.NewMedia)...)

	data := models.CampaignData{
		Channels:         toChannelConfigs(req.Channels),
		TargetGroupID:    req.TargetGroupID,
		ManualRecipients: req.ManualRecipients,
		Media:            media,
	}

	var campaign *models.Campaign
	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if req.UUID != nil && *req.UUID != "" {
			existing, err := getCampaign(txCtx, s.campaignRepo, *req.UUID, req.UserID)
			if err != nil {
				return err
			}
			if !existing.IsEditable() {
				return ErrCampaignNotEditable
			}
			existing.Title = req.Title
			existing.Content = req.Content
			existing.Platforms = req.Platforms
			existing.Status = status
			existing.ScheduledAt = scheduledAt
			existing.Data = data
			if err := s.campaignRepo.Update(txCtx, existing); err != nil {
				return err
			}
			campaign = &existing
			return nil
		}

		campaign = &models.Campaign{
			UserID:      req.UserID,
			Title:       req.Title,
			Content:     req.Content,
			Platforms:   req.Platforms,
			Status:      status,
			ScheduledAt: scheduledAt,
			Data:        data,
		}
		return s.campaignRepo.Save(txCtx, campaign)
	})
	if err != nil {
		return nil, err
	}
	return campaign, nil
}

func toChannelConfigs(in map[string]map[string]string) map[string]models.ChannelConfig {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]models.ChannelConfig, len(in))
	for id, cfg := range in {
		out[id] = models.ChannelConfig(cfg)
	}
	return out
}
