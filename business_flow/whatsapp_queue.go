package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/dto"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/services"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/models"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/repository"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/utils"
	"github.com/redis/go-redis/v9"
)

// QueueState names the lifecycle stage of a dispatch session
type QueueState string

const (
	QueueIdle     QueueState = "idle"
	QueueActive   QueueState = "active"
	QueueComplete QueueState = "complete"
)

const dispatchSessionTTL = 6 * time.Hour

// DispatchSession is the manual WhatsApp send walk. Each advance maps one
// operator click to one recipient link; the campaign is only marked sent
// after the cursor has passed the whole queue.
type DispatchSession struct {
	State        QueueState `json:"state"`
	CampaignUUID string     `json:"campaign_uuid"`
	Queue        []string   `json:"queue"`
	Cursor       int        `json:"cursor"`
	StartedAt    time.Time  `json:"started_at"`
}

// Begin activates the session with the resolved phone numbers
func (s *DispatchSession) Begin(numbers []string) error {
	if s.State == QueueActive {
		return ErrDispatchSessionActive
	}
	if len(numbers) == 0 {
		return ErrDispatchQueueEmpty
	}
	s.State = QueueActive
	s.Queue = numbers
	s.Cursor = 0
	return nil
}

// Step returns the next queued number, or done=true once the cursor has
// walked past the end of the queue
func (s *DispatchSession) Step() (number string, done bool, err error) {
	if s.State != QueueActive {
		return "", false, ErrDispatchSessionClosed
	}
	if s.Cursor >= len(s.Queue) {
		s.State = QueueComplete
		return "", true, nil
	}
	number = s.Queue[s.Cursor]
	s.Cursor++
	return number, false, nil
}

// WhatsAppQueueFlow handles manual WhatsApp dispatch sessions
type WhatsAppQueueFlow interface {
	Start(ctx context.Context, req *dto.StartDispatchQueueRequest, metadata *ClientMetadata) (*dto.DispatchQueueResponse, error)
	Advance(ctx context.Context, req *dto.AdvanceDispatchQueueRequest, metadata *ClientMetadata) (*dto.DispatchQueueResponse, error)
	Cancel(ctx context.Context, req *dto.CancelDispatchQueueRequest, metadata *ClientMetadata) (*dto.DispatchQueueResponse, error)
}

// WhatsAppQueueFlowImpl implements the manual dispatch queue on top of a
// redis-backed session store
type WhatsAppQueueFlowImpl struct {
	campaignRepo repository.CampaignRepository
	dispatchRepo repository.DispatchRecordRepository
	resolver     *RecipientResolver
	linkBuilder  services.WhatsAppLinkBuilder
	rc           *redis.Client
}

// NewWhatsAppQueueFlow creates a new manual dispatch queue flow
func NewWhatsAppQueueFlow(
	campaignRepo repository.CampaignRepository,
	dispatchRepo repository.DispatchRecordRepository,
	resolver *RecipientResolver,
	linkBuilder services.WhatsAppLinkBuilder,
	rc *redis.Client,
) WhatsAppQueueFlow {
	return &WhatsAppQueueFlowImpl{
		campaignRepo: campaignRepo,
		dispatchRepo: dispatchRepo,
		resolver:     resolver,
		linkBuilder:  linkBuilder,
		rc:           rc,
	}
}

func dispatchSessionKey(userID uint, campaignUUID string) string {
	return fmt.Sprintf("waqueue:%d:%s", userID, campaignUUID)
}

// sessionStoreReady rejects queue operations when the deployment runs
// without a cache, instead of dereferencing a nil client.
func (s *WhatsAppQueueFlowImpl) sessionStoreReady() error {
	if s.rc == nil {
		return NewBusinessError("DISPATCH_UNAVAILABLE", "Manual WhatsApp dispatch requires the cache to be enabled", ErrDispatchStoreUnavailable)
	}
	return nil
}

// Start resolves the campaign recipients and opens a dispatch session
func (s *WhatsAppQueueFlowImpl) Start(ctx context.Context, req *dto.StartDispatchQueueRequest, metadata *ClientMetadata) (*dto.DispatchQueueResponse, error) {
	if err := s.sessionStoreReady(); err != nil {
		return nil, err
	}

	campaign, err := getCampaign(ctx, s.campaignRepo, req.CampaignUUID, req.UserID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}

	if !campaign.HasPlatform("whatsapp") {
		return nil, NewBusinessError("CHANNEL_NOT_SELECTED", "Campaign does not include the whatsapp channel", ErrUnknownChannel)
	}

	key := dispatchSessionKey(req.UserID, req.CampaignUUID)
	if existing, err := s.loadSession(ctx, key); err == nil && existing.State == QueueActive {
		return nil, NewBusinessError("DISPATCH_SESSION_ACTIVE", "A dispatch session is already active for this campaign", ErrDispatchSessionActive)
	}

	numbers, err := s.resolver.Resolve(ctx, campaign.Data.TargetGroupID, campaign.Data.ManualRecipients, FieldPhone)
	if err != nil {
		return nil, NewBusinessError("RECIPIENT_RESOLUTION_FAILED", "Failed to resolve recipients", err)
	}

	session := &DispatchSession{State: QueueIdle, CampaignUUID: req.CampaignUUID, StartedAt: utils.UTCNow()}
	if err := session.Begin(numbers); err != nil {
		return nil, NewBusinessError("DISPATCH_START_FAILED", "Failed to start dispatch session", err)
	}

	if err := s.storeSession(ctx, key, session); err != nil {
		return nil, NewBusinessError("DISPATCH_SESSION_STORE_FAILED", "Failed to store dispatch session", err)
	}

	return &dto.DispatchQueueResponse{
		Message: "Dispatch session started",
		Queue:   snapshot(session, nil),
	}, nil
}

// Advance returns the deep link for the next recipient. Once the cursor has
// walked the whole queue the session completes and the campaign is persisted
// as sent.
func (s *WhatsAppQueueFlowImpl) Advance(ctx context.Context, req *dto.AdvanceDispatchQueueRequest, metadata *ClientMetadata) (*dto.DispatchQueueResponse, error) {
	if err := s.sessionStoreReady(); err != nil {
		return nil, err
	}

	campaign, err := getCampaign(ctx, s.campaignRepo, req.CampaignUUID, req.UserID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}

	key := dispatchSessionKey(req.UserID, req.CampaignUUID)
	session, err := s.loadSession(ctx, key)
	if err != nil {
		return nil, NewBusinessError("DISPATCH_SESSION_NOT_FOUND", "No dispatch session for this campaign", ErrDispatchSessionNotFound)
	}

	number, done, err := session.Step()
	if err != nil {
		return nil, NewBusinessError("DISPATCH_ADVANCE_FAILED", "Failed to advance dispatch session", err)
	}

	if done {
		if err := s.rc.Del(ctx, key).Err(); err != nil {
			return nil, NewBusinessError("DISPATCH_SESSION_CLEAR_FAILED", "Failed to clear dispatch session", err)
		}
		if campaign.CanTransitionTo(models.CampaignStatusSent) {
			if err := s.campaignRepo.UpdateStatus(ctx, campaign.ID, models.CampaignStatusSent); err != nil {
				return nil, NewBusinessError("CAMPAIGN_STATUS_UPDATE_FAILED", "Failed to mark campaign as sent", err)
			}
		}
		return &dto.DispatchQueueResponse{
			Message: "Dispatch complete",
			Queue:   snapshot(session, nil),
		}, nil
	}

	link, err := s.linkBuilder.BuildLink(number, campaign.Content)
	if err != nil {
		return nil, NewBusinessError("DISPATCH_LINK_FAILED", "Failed to build dispatch link", err)
	}

	if err := s.storeSession(ctx, key, session); err != nil {
		return nil, NewBusinessError("DISPATCH_SESSION_STORE_FAILED", "Failed to store dispatch session", err)
	}

	record := &models.DispatchRecord{
		CampaignID: campaign.ID,
		Channel:    "whatsapp",
		Recipient:  number,
		Status:     models.DispatchStatusQueued,
		SentAt:     utils.UTCNowPtr(),
	}
	_ = s.dispatchRepo.Save(ctx, record)

	return &dto.DispatchQueueResponse{
		Message: "Next recipient",
		Queue:   snapshot(session, &link),
	}, nil
}

// Cancel abandons the session without marking the campaign as sent
func (s *WhatsAppQueueFlowImpl) Cancel(ctx context.Context, req *dto.CancelDispatchQueueRequest, metadata *ClientMetadata) (*dto.DispatchQueueResponse, error) {
	if err := s.sessionStoreReady(); err != nil {
		return nil, err
	}

	if _, err := getCampaign(ctx, s.campaignRepo, req.CampaignUUID, req.UserID); err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}

	key := dispatchSessionKey(req.UserID, req.CampaignUUID)
	session, err := s.loadSession(ctx, key)
	if err != nil {
		return nil, NewBusinessError("DISPATCH_SESSION_NOT_FOUND", "No dispatch session for this campaign", ErrDispatchSessionNotFound)
	}

	if err := s.rc.Del(ctx, key).Err(); err != nil {
		return nil, NewBusinessError("DISPATCH_SESSION_CLEAR_FAILED", "Failed to clear dispatch session", err)
	}

	session.State = QueueIdle
	return &dto.DispatchQueueResponse{
		Message: "Dispatch session cancelled",
		Queue:   snapshot(session, nil),
	}, nil
}

func (s *WhatsAppQueueFlowImpl) loadSession(ctx context.Context, key string) (*DispatchSession, error) {
	raw, err := s.rc.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	var session DispatchSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *WhatsAppQueueFlowImpl) storeSession(ctx context.Context, key string, session *DispatchSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.rc.Set(ctx, key, raw, dispatchSessionTTL).Err()
}

func snapshot(session *DispatchSession, link *string) dto.DispatchQueueSnapshot {
	return dto.DispatchQueueSnapshot{
		State:    string(session.State),
		Position: session.Cursor,
		Total:    len(session.Queue),
		Link:     link,
	}
}
