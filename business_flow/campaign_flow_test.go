package businessflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/dto"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/services"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/config"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/models"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type campaignFixture struct {
	users      *memUserRepo
	campaigns  *memCampaignRepo
	clients    *memClientRepo
	groups     *memGroupRepo
	dispatches *memDispatchRepo
	emails     *services.MockEmailSender
	storage    *services.MockObjectStorage
	queue      *stubQueueFlow
	flow       CampaignFlow
}

func newCampaignFixture(t *testing.T) *campaignFixture {
	t.Helper()

	f := &campaignFixture{
		users:      newMemUserRepo(),
		campaigns:  newMemCampaignRepo(),
		clients:    newMemClientRepo(),
		groups:     newMemGroupRepo(),
		dispatches: newMemDispatchRepo(),
		emails:     services.NewMockEmailSender(),
		storage:    services.NewMockObjectStorage(),
		queue:      &stubQueueFlow{},
	}
	f.users.addActive(1, "owner@example.com")

	resolver := NewRecipientResolver(f.clients, f.groups)
	mediaFlow := NewMediaFlow(f.users, newMemMediaRepo(), f.storage)

	f.flow = NewCampaignFlow(
		f.campaigns,
		f.users,
		f.dispatches,
		resolver,
		mediaFlow,
		f.queue,
		f.emails,
		config.EmailConfig{FromAddress: "noreply@example.com"},
		config.CampaignConfig{ScheduleHorizon: 72 * time.Hour},
		nil,
	)
	return f
}

func saveRequest(userID uint, platforms ...string) *dto.SaveCampaignRequest {
	return &dto.SaveCampaignRequest{
		UserID:    userID,
		Title:     "Spring Sale",
		Content:   "Everything half price",
		Platforms: platforms,
	}
}

func TestSaveDraftRejectsMissingTitle(t *testing.T) {
	f := newCampaignFixture(t)
	req := saveRequest(1)
	req.Title = "   "

	_, err := f.flow.SaveDraft(context.Background(), req, NewClientMetadata("127.0.0.1", "test"))
	require.Error(t, err)
	assert.True(t, IsCampaignValidation(err))
	assert.Empty(t, f.campaigns.campaigns, "nothing should be persisted")
}

func TestSaveDraftPersistsDraft(t *testing.T) {
	f := newCampaignFixture(t)

	resp, err := f.flow.SaveDraft(context.Background(), saveRequest(1, "email"), NewClientMetadata("127.0.0.1", "test"))
	require.NoError(t, err)

	assert.Equal(t, string(models.CampaignStatusDraft), resp.Status)
	assert.NotEmpty(t, resp.UUID)
	require.Len(t, f.campaigns.campaigns, 1)
	assert.Equal(t, "Spring Sale", f.campaigns.campaigns[0].Title)
}

func TestSaveDraftRejectsUnknownChannel(t *testing.T) {
	f := newCampaignFixture(t)

	_, err := f.flow.SaveDraft(context.Background(), saveRequest(1, "carrier-pigeon"), NewClientMetadata("127.0.0.1", "test"))
	require.Error(t, err)
	assert.True(t, IsCampaignValidation(err))
}

func TestSaveDraftUpdateRefusesSentCampaign(t *testing.T) {
	f := newCampaignFixture(t)

	resp, err := f.flow.SaveDraft(context.Background(), saveRequest(1, "email"), NewClientMetadata("127.0.0.1", "test"))
	require.NoError(t, err)
	require.NoError(t, f.campaigns.UpdateStatus(context.Background(), f.campaigns.campaigns[0].ID, models.CampaignStatusSent))

	req := saveRequest(1, "email")
	req.UUID = &resp.UUID
	_, err = f.flow.SaveDraft(context.Background(), req, NewClientMetadata("127.0.0.1", "test"))
	require.Error(t, err)
	assert.True(t, IsCampaignNotEditable(err))
}

func TestSendNowDeliversOneEmailPerRecipient(t *testing.T) {
	f := newCampaignFixture(t)
	req := &dto.SendCampaignRequest{SaveCampaignRequest: *saveRequest(1, "email")}
	req.ManualRecipients = []string{"a@example.com", "b@example.com"}

	resp, err := f.flow.SendNow(context.Background(), req, NewClientMetadata("127.0.0.1", "test"))
	require.NoError(t, err)

	assert.Equal(t, string(models.CampaignStatusSent), resp.Status)
	assert.Equal(t, 2, resp.Sent)
	assert.Equal(t, 0, resp.Failed)

	sent := f.emails.GetSentMessages()
	require.Len(t, sent, 2)
	assert.Equal(t, "a@example.com", sent[0].To)
	assert.Equal(t, "Spring Sale", sent[0].Subject)
	assert.Contains(t, sent[0].HTML, "Everything half price")

	records, err := f.dispatches.ByCampaignID(context.Background(), f.campaigns.campaigns[0].ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, models.DispatchStatusSent, rec.Status)
		assert.Equal(t, "email", rec.Channel)
		assert.NotNil(t, rec.SentAt)
	}
}

func TestSendNowAllFailuresMarksCampaignFailed(t *testing.T) {
	f := newCampaignFixture(t)
	f.emails.FailWith = errors.New("smtp connection refused")

	req := &dto.SendCampaignRequest{SaveCampaignRequest: *saveRequest(1, "email")}
	req.ManualRecipients = []string{"a@example.com"}

	resp, err := f.flow.SendNow(context.Background(), req, NewClientMetadata("127.0.0.1", "test"))
	require.NoError(t, err)

	assert.Equal(t, string(models.CampaignStatusFailed), resp.Status)
	assert.Equal(t, 0, resp.Sent)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, models.CampaignStatusFailed, f.campaigns.campaigns[0].Status)

	records, _ := f.dispatches.ByCampaignID(context.Background(), f.campaigns.campaigns[0].ID)
	require.Len(t, records, 1)
	assert.Equal(t, models.DispatchStatusFailed, records[0].Status)
	require.NotNil(t, records[0].Error)
	assert.Contains(t, *records[0].Error, "smtp")
}

func TestSendNowEmptyAudiencePersistsNothing(t *testing.T) {
	f := newCampaignFixture(t)
	req := &dto.SendCampaignRequest{SaveCampaignRequest: *saveRequest(1, "email")}

	_, err := f.flow.SendNow(context.Background(), req, NewClientMetadata("127.0.0.1", "test"))
	require.Error(t, err)
	assert.True(t, IsNoRecipients(err))
	assert.Empty(t, f.campaigns.campaigns)
	assert.Empty(t, f.emails.GetSentMessages())
}

func TestSendNowWhatsAppOpensDispatchSession(t *testing.T) {
	f := newCampaignFixture(t)
	req := &dto.SendCampaignRequest{SaveCampaignRequest: *saveRequest(1, "whatsapp")}
	req.ManualRecipients = []string{"+15550001", "+15550002"}

	resp, err := f.flow.SendNow(context.Background(), req, NewClientMetadata("127.0.0.1", "test"))
	require.NoError(t, err)

	require.Len(t, f.queue.started, 1)
	assert.Equal(t, resp.UUID, f.queue.started[0])
	require.NotNil(t, resp.Queue)
	assert.Equal(t, string(QueueActive), resp.Queue.State)

	// the queue marks the campaign sent on completion, not SendNow
	assert.Equal(t, string(models.CampaignStatusDraft), resp.Status)
	assert.Equal(t, models.CampaignStatusDraft, f.campaigns.campaigns[0].Status)
}

func TestSendNowSocialOnlyMarksSent(t *testing.T) {
	f := newCampaignFixture(t)
	req := &dto.SendCampaignRequest{SaveCampaignRequest: *saveRequest(1, "facebook", "instagram")}

	resp, err := f.flow.SendNow(context.Background(), req, NewClientMetadata("127.0.0.1", "test"))
	require.NoError(t, err)

	assert.Equal(t, string(models.CampaignStatusSent), resp.Status)
	assert.Empty(t, f.emails.GetSentMessages())
	assert.Empty(t, f.queue.started)
}

func TestSendNowKeepsMediaOrder(t *testing.T) {
	f := newCampaignFixture(t)
	req := &dto.SendCampaignRequest{SaveCampaignRequest: *saveRequest(1, "email")}
	req.ManualRecipients = []string{"a@example.com"}
	req.ExistingMedia = []string{"https://storage.test/1/existing.png"}
	req.NewMedia = []dto.MediaUploadDTO{
		{Filename: "banner.png", MimeType: "image/png", Content: []byte{1}},
		{Filename: "report.pdf", MimeType: "application/pdf", Content: []byte{2}},
	}

	_, err := f.flow.SendNow(context.Background(), req, NewClientMetadata("127.0.0.1", "test"))
	require.NoError(t, err)

	media := f.campaigns.campaigns[0].Data.Media
	require.Len(t, media, 3)
	assert.Equal(t, "https://storage.test/1/existing.png", media[0])
	assert.Contains(t, media[1], "https://storage.test/1/")
	assert.Contains(t, media[2], "https://storage.test/1/")
}

func TestScheduleWithinWindow(t *testing.T) {
	f := newCampaignFixture(t)
	scheduledAt := utils.UTCNow().Add(24 * time.Hour)
	req := &dto.ScheduleCampaignRequest{
		SaveCampaignRequest: *saveRequest(1, "email"),
		ScheduledAt:         &scheduledAt,
	}
	req.ManualRecipients = []string{"a@example.com"}

	resp, err := f.flow.Schedule(context.Background(), req, NewClientMetadata("127.0.0.1", "test"))
	require.NoError(t, err)

	assert.Equal(t, string(models.CampaignStatusScheduled), resp.Status)
	require.Len(t, f.campaigns.campaigns, 1)
	require.NotNil(t, f.campaigns.campaigns[0].ScheduledAt)
	assert.Empty(t, f.emails.GetSentMessages(), "scheduling must not dispatch")
}

func TestScheduleEmailBeyondWindowRejected(t *testing.T) {
	f := newCampaignFixture(t)
	scheduledAt := utils.UTCNow().Add(100 * time.Hour)
	req := &dto.ScheduleCampaignRequest{
		SaveCampaignRequest: *saveRequest(1, "email"),
		ScheduledAt:         &scheduledAt,
	}

	_, err := f.flow.Schedule(context.Background(), req, NewClientMetadata("127.0.0.1", "test"))
	require.Error(t, err)
	assert.True(t, IsScheduleTimeInvalid(err))
	assert.Empty(t, f.campaigns.campaigns)
}

func TestScheduleWindowOnlyConstrainsEmail(t *testing.T) {
	f := newCampaignFixture(t)
	scheduledAt := utils.UTCNow().Add(100 * time.Hour)
	req := &dto.ScheduleCampaignRequest{
		SaveCampaignRequest: *saveRequest(1, "facebook"),
		ScheduledAt:         &scheduledAt,
	}

	resp, err := f.flow.Schedule(context.Background(), req, NewClientMetadata("127.0.0.1", "test"))
	require.NoError(t, err)
	assert.Equal(t, string(models.CampaignStatusScheduled), resp.Status)
}

func TestSchedulePastTimeRejected(t *testing.T) {
	f := newCampaignFixture(t)
	scheduledAt := utils.UTCNow().Add(-time.Hour)
	req := &dto.ScheduleCampaignRequest{
		SaveCampaignRequest: *saveRequest(1, "email"),
		ScheduledAt:         &scheduledAt,
	}

	_, err := f.flow.Schedule(context.Background(), req, NewClientMetadata("127.0.0.1", "test"))
	require.Error(t, err)
	assert.True(t, IsScheduleTimeInvalid(err))
}

func TestExecuteScheduledDispatchesEmail(t *testing.T) {
	f := newCampaignFixture(t)
	scheduledAt := utils.UTCNow().Add(time.Minute)
	req := &dto.ScheduleCampaignRequest{
		SaveCampaignRequest: *saveRequest(1, "email"),
		ScheduledAt:         &scheduledAt,
	}
	req.ManualRecipients = []string{"a@example.com"}
	_, err := f.flow.Schedule(context.Background(), req, NewClientMetadata("127.0.0.1", "test"))
	require.NoError(t, err)

	campaign := f.campaigns.campaigns[0]
	require.NoError(t, f.flow.ExecuteScheduled(context.Background(), campaign))

	assert.Equal(t, models.CampaignStatusSent, campaign.Status)
	assert.Len(t, f.emails.GetSentMessages(), 1)
}

func TestExecuteScheduledWithoutEmailJustFlipsStatus(t *testing.T) {
	f := newCampaignFixture(t)
	scheduledAt := utils.UTCNow().Add(time.Minute)
	req := &dto.ScheduleCampaignRequest{
		SaveCampaignRequest: *saveRequest(1, "twitter"),
		ScheduledAt:         &scheduledAt,
	}
	_, err := f.flow.Schedule(context.Background(), req, NewClientMetadata("127.0.0.1", "test"))
	require.NoError(t, err)

	campaign := f.campaigns.campaigns[0]
	require.NoError(t, f.flow.ExecuteScheduled(context.Background(), campaign))

	assert.Equal(t, models.CampaignStatusSent, campaign.Status)
	assert.Empty(t, f.emails.GetSentMessages())
}

func TestExecuteScheduledRejectsNonScheduledCampaign(t *testing.T) {
	f := newCampaignFixture(t)
	campaign := &models.Campaign{Status: models.CampaignStatusDraft}

	err := f.flow.ExecuteScheduled(context.Background(), campaign)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestListCampaignsFiltersByStatus(t *testing.T) {
	f := newCampaignFixture(t)
	meta := NewClientMetadata("127.0.0.1", "test")

	_, err := f.flow.SaveDraft(context.Background(), saveRequest(1, "email"), meta)
	require.NoError(t, err)
	sendReq := &dto.SendCampaignRequest{SaveCampaignRequest: *saveRequest(1, "email")}
	sendReq.ManualRecipients = []string{"a@example.com"}
	_, err = f.flow.SendNow(context.Background(), sendReq, meta)
	require.NoError(t, err)

	status := string(models.CampaignStatusSent)
	resp, err := f.flow.ListCampaigns(context.Background(), &dto.ListCampaignsRequest{
		UserID: 1,
		Status: &status,
	}, meta)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, status, resp.Items[0].Status)
	assert.EqualValues(t, 1, resp.Pagination.Total)
}

func TestGetCampaignUpdatedAtOnlySetAfterUpdate(t *testing.T) {
	f := newCampaignFixture(t)
	meta := NewClientMetadata("127.0.0.1", "test")

	saved, err := f.flow.SaveDraft(context.Background(), saveRequest(1, "email"), meta)
	require.NoError(t, err)

	fresh, err := f.flow.GetCampaign(context.Background(), &dto.GetCampaignRequest{UUID: saved.UUID, UserID: 1}, meta)
	require.NoError(t, err)
	assert.Nil(t, fresh.UpdatedAt)

	update := saveRequest(1, "email")
	update.UUID = &saved.UUID
	update.Title = "Spring Sale v2"
	_, err = f.flow.SaveDraft(context.Background(), update, meta)
	require.NoError(t, err)

	updated, err := f.flow.GetCampaign(context.Background(), &dto.GetCampaignRequest{UUID: saved.UUID, UserID: 1}, meta)
	require.NoError(t, err)
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, "Spring Sale v2", updated.Title)
}

func TestGetCampaignEnforcesOwnership(t *testing.T) {
	f := newCampaignFixture(t)
	f.users.addActive(2, "other@example.com")
	meta := NewClientMetadata("127.0.0.1", "test")

	saved, err := f.flow.SaveDraft(context.Background(), saveRequest(1, "email"), meta)
	require.NoError(t, err)

	_, err = f.flow.GetCampaign(context.Background(), &dto.GetCampaignRequest{UUID: saved.UUID, UserID: 2}, meta)
	require.Error(t, err)
	assert.True(t, IsCampaignAccessDenied(err))
}

func TestSendNowInactiveUserRejected(t *testing.T) {
	f := newCampaignFixture(t)
	f.users.users[1].IsActive = utils.ToPtr(false)
	req := &dto.SendCampaignRequest{SaveCampaignRequest: *saveRequest(1, "email")}
	req.ManualRecipients = []string{"a@example.com"}

	_, err := f.flow.SendNow(context.Background(), req, NewClientMetadata("127.0.0.1", "test"))
	require.Error(t, err)
	assert.True(t, IsAccountInactive(err))
}
