package businessflow

import (
	"context"
	"testing"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/dto"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/services"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type queueFixture struct {
	campaigns  *memCampaignRepo
	dispatches *memDispatchRepo
	flow       WhatsAppQueueFlow
	campaign   *models.Campaign
}

func newQueueFixture(t *testing.T, numbers ...string) *queueFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })

	f := &queueFixture{
		campaigns:  newMemCampaignRepo(),
		dispatches: newMemDispatchRepo(),
	}

	f.campaign = &models.Campaign{
		UserID:    1,
		Title:     "Flash Sale",
		Content:   "Today only",
		Platforms: []string{"whatsapp"},
		Status:    models.CampaignStatusDraft,
		Data:      models.CampaignData{ManualRecipients: numbers},
	}
	require.NoError(t, f.campaigns.Save(context.Background(), f.campaign))

	resolver := NewRecipientResolver(newMemClientRepo(), newMemGroupRepo())
	f.flow = NewWhatsAppQueueFlow(f.campaigns, f.dispatches, resolver, services.NewDeepLinkBuilder(), rc)
	return f
}

func (f *queueFixture) start(t *testing.T) *dto.DispatchQueueResponse {
	t.Helper()
	resp, err := f.flow.Start(context.Background(), &dto.StartDispatchQueueRequest{
		UserID:       1,
		CampaignUUID: f.campaign.UUID.String(),
	}, NewClientMetadata("127.0.0.1", "test"))
	require.NoError(t, err)
	return resp
}

func (f *queueFixture) advance(t *testing.T) (*dto.DispatchQueueResponse, error) {
	t.Helper()
	return f.flow.Advance(context.Background(), &dto.AdvanceDispatchQueueRequest{
		UserID:       1,
		CampaignUUID: f.campaign.UUID.String(),
	}, NewClientMetadata("127.0.0.1", "test"))
}

func TestQueueWalkMarksCampaignSentAfterLastAdvance(t *testing.T) {
	f := newQueueFixture(t, "+15550001", "+15550002", "+15550003")

	resp := f.start(t)
	assert.Equal(t, string(QueueActive), resp.Queue.State)
	assert.Equal(t, 3, resp.Queue.Total)

	for i := 0; i < 3; i++ {
		step, err := f.advance(t)
		require.NoError(t, err)
		require.NotNil(t, step.Queue.Link, "advance %d should carry a link", i)
		assert.Contains(t, *step.Queue.Link, "https://wa.me/1555000")
		assert.Contains(t, *step.Queue.Link, "Today+only")
		assert.Equal(t, models.CampaignStatusDraft, f.campaign.Status, "campaign stays pending mid-walk")
	}

	final, err := f.advance(t)
	require.NoError(t, err)
	assert.Equal(t, string(QueueComplete), final.Queue.State)
	assert.Nil(t, final.Queue.Link)
	assert.Equal(t, models.CampaignStatusSent, f.campaign.Status)

	records, err := f.dispatches.ByCampaignID(context.Background(), f.campaign.ID)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "whatsapp", records[0].Channel)
	assert.Equal(t, models.DispatchStatusQueued, records[0].Status)
}

func TestQueueRejectsOperationsWithoutCache(t *testing.T) {
	campaigns := newMemCampaignRepo()
	campaign := &models.Campaign{
		UserID:    1,
		Title:     "Flash Sale",
		Content:   "Today only",
		Platforms: []string{"whatsapp"},
		Status:    models.CampaignStatusDraft,
		Data:      models.CampaignData{ManualRecipients: []string{"+15550001"}},
	}
	require.NoError(t, campaigns.Save(context.Background(), campaign))

	resolver := NewRecipientResolver(newMemClientRepo(), newMemGroupRepo())
	flow := NewWhatsAppQueueFlow(campaigns, newMemDispatchRepo(), resolver, services.NewDeepLinkBuilder(), nil)
	meta := NewClientMetadata("127.0.0.1", "test")

	_, err := flow.Start(context.Background(), &dto.StartDispatchQueueRequest{UserID: 1, CampaignUUID: campaign.UUID.String()}, meta)
	require.Error(t, err)
	assert.True(t, IsDispatchStoreUnavailable(err))

	_, err = flow.Advance(context.Background(), &dto.AdvanceDispatchQueueRequest{UserID: 1, CampaignUUID: campaign.UUID.String()}, meta)
	require.Error(t, err)
	assert.True(t, IsDispatchStoreUnavailable(err))

	_, err = flow.Cancel(context.Background(), &dto.CancelDispatchQueueRequest{UserID: 1, CampaignUUID: campaign.UUID.String()}, meta)
	require.Error(t, err)
	assert.True(t, IsDispatchStoreUnavailable(err))
}

func TestQueueStartRejectsSecondSession(t *testing.T) {
	f := newQueueFixture(t, "+15550001")
	f.start(t)

	_, err := f.flow.Start(context.Background(), &dto.StartDispatchQueueRequest{
		UserID:       1,
		CampaignUUID: f.campaign.UUID.String(),
	}, NewClientMetadata("127.0.0.1", "test"))
	require.Error(t, err)
	assert.True(t, IsDispatchSessionActive(err))
}

func TestQueueStartRequiresWhatsAppChannel(t *testing.T) {
	f := newQueueFixture(t, "+15550001")
	f.campaign.Platforms = []string{"email"}

	_, err := f.flow.Start(context.Background(), &dto.StartDispatchQueueRequest{
		UserID:       1,
		CampaignUUID: f.campaign.UUID.String(),
	}, NewClientMetadata("127.0.0.1", "test"))
	assert.Error(t, err)
}

func TestQueueAdvanceWithoutSession(t *testing.T) {
	f := newQueueFixture(t, "+15550001")

	_, err := f.advance(t)
	require.Error(t, err)
	assert.True(t, IsDispatchSessionNotFound(err))
}

func TestQueueCancelLeavesCampaignPending(t *testing.T) {
	f := newQueueFixture(t, "+15550001", "+15550002")
	f.start(t)

	_, err := f.advance(t)
	require.NoError(t, err)

	resp, err := f.flow.Cancel(context.Background(), &dto.CancelDispatchQueueRequest{
		UserID:       1,
		CampaignUUID: f.campaign.UUID.String(),
	}, NewClientMetadata("127.0.0.1", "test"))
	require.NoError(t, err)
	assert.Equal(t, string(QueueIdle), resp.Queue.State)
	assert.Equal(t, models.CampaignStatusDraft, f.campaign.Status)

	// a new session can start over from the top
	restarted := f.start(t)
	assert.Equal(t, 0, restarted.Queue.Position)
	assert.Equal(t, 2, restarted.Queue.Total)
}
