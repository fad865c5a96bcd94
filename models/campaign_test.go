package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaignStatusValid(t *testing.T) {
	for _, s := range []CampaignStatus{CampaignStatusDraft, CampaignStatusScheduled, CampaignStatusSent, CampaignStatusFailed} {
		assert.True(t, s.Valid(), "status %s should be valid", s)
	}
	assert.False(t, CampaignStatus("archived").Valid())
	assert.False(t, CampaignStatus("").Valid())
}

func TestCampaignStatusValueRejectsInvalid(t *testing.T) {
	v, err := CampaignStatusSent.Value()
	require.NoError(t, err)
	assert.Equal(t, "sent", v)

	_, err = CampaignStatus("bogus").Value()
	assert.Error(t, err)
}

func TestCampaignIsEditable(t *testing.T) {
	c := &Campaign{Status: CampaignStatusDraft}
	assert.True(t, c.IsEditable())

	for _, s := range []CampaignStatus{CampaignStatusScheduled, CampaignStatusSent, CampaignStatusFailed} {
		c.Status = s
		assert.False(t, c.IsEditable(), "status %s should not be editable", s)
	}
}

func TestCampaignCanTransitionTo(t *testing.T) {
	draft := &Campaign{Status: CampaignStatusDraft}
	assert.True(t, draft.CanTransitionTo(CampaignStatusSent))
	assert.True(t, draft.CanTransitionTo(CampaignStatusScheduled))
	assert.True(t, draft.CanTransitionTo(CampaignStatusFailed))

	sent := &Campaign{Status: CampaignStatusSent}
	assert.False(t, sent.CanTransitionTo(CampaignStatusDraft))
	assert.False(t, sent.CanTransitionTo(CampaignStatusScheduled))
}

func TestCampaignHasPlatform(t *testing.T) {
	c := &Campaign{Platforms: []string{"email", "whatsapp"}}
	assert.True(t, c.HasPlatform("email"))
	assert.True(t, c.HasPlatform("whatsapp"))
	assert.False(t, c.HasPlatform("facebook"))
}

func TestCampaignDataRoundTrip(t *testing.T) {
	groupID := uint(3)
	data := CampaignData{
		Channels: map[string]ChannelConfig{
			"email": {"subject": "Hello", "from_address": "team@example.com"},
		},
		TargetGroupID:    &groupID,
		ManualRecipients: []string{"a@example.com"},
		Media:            []string{"https://cdn.example.com/a.png"},
	}

	v, err := data.Value()
	require.NoError(t, err)

	var decoded CampaignData
	require.NoError(t, decoded.Scan(v))
	assert.Equal(t, data, decoded)
}

func TestCampaignDataScanNil(t *testing.T) {
	d := CampaignData{Media: []string{"stale"}}
	require.NoError(t, d.Scan(nil))
	assert.Empty(t, d.Media)
}

func TestChannelConfigForNeverNil(t *testing.T) {
	var d CampaignData
	cfg := d.ChannelConfigFor("email")
	require.NotNil(t, cfg)
	assert.Empty(t, cfg["subject"])

	d.Channels = map[string]ChannelConfig{"email": {"subject": "Hi"}}
	assert.Equal(t, "Hi", d.ChannelConfigFor("email")["subject"])
	assert.NotNil(t, d.ChannelConfigFor("whatsapp"))
}
