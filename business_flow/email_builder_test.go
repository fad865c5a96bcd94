package businessflow

import (
	"fmt"
	"testing"
	"time"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/dto"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmailPayloadDefaults(t *testing.T) {
	payload := BuildEmailPayload("Spring Sale", "Hello\nWorld", nil, nil, nil, "noreply@example.com", time.Now())

	assert.Equal(t, "Spring Sale", payload.Subject)
	assert.Equal(t, "noreply@example.com", payload.From)
	assert.Contains(t, payload.HTML, "Hello<br>World")
	assert.Empty(t, payload.Attachments)
}

func TestBuildEmailPayloadChannelConfigOverrides(t *testing.T) {
	cfg := models.ChannelConfig{
		"subject":      "Custom Subject",
		"from_address": "sales@example.com",
		"from_name":    "Sales Team",
	}

	payload := BuildEmailPayload("Spring Sale", "body", cfg, nil, nil, "noreply@example.com", time.Now())

	assert.Equal(t, "Custom Subject", payload.Subject)
	assert.Equal(t, "Sales Team <sales@example.com>", payload.From)
}

func TestBuildEmailPayloadEscapesBody(t *testing.T) {
	payload := BuildEmailPayload("t", `<script>alert("x")</script>`, nil, nil, nil, "noreply@example.com", time.Now())

	assert.NotContains(t, payload.HTML, "<script>")
	assert.Contains(t, payload.HTML, "&lt;script&gt;")
}

func TestBuildEmailPayloadExistingMediaReferencedByURL(t *testing.T) {
	existing := []string{"https://cdn.example.com/a.png", "https://cdn.example.com/b.png"}

	payload := BuildEmailPayload("t", "body", nil, existing, nil, "noreply@example.com", time.Now())

	assert.Contains(t, payload.HTML, `<img src="https://cdn.example.com/a.png" alt="">`)
	assert.Contains(t, payload.HTML, `<img src="https://cdn.example.com/b.png" alt="">`)
	assert.Empty(t, payload.Attachments)
}

func TestBuildEmailPayloadNewUploadsBecomeInlineAttachments(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uploads := []dto.MediaUploadDTO{
		{Filename: "banner.png", MimeType: "image/png", Content: []byte{1, 2, 3}},
		{Filename: "logo.jpg", MimeType: "image/jpeg", Content: []byte{4, 5}},
	}

	payload := BuildEmailPayload("t", "body", nil, nil, uploads, "noreply@example.com", now)

	require.Len(t, payload.Attachments, 2)
	for i, att := range payload.Attachments {
		wantCID := fmt.Sprintf("new-%d-%d", now.Unix(), i)
		assert.Equal(t, wantCID, att.ContentID)
		assert.Contains(t, payload.HTML, fmt.Sprintf(`<img src="cid:%s" alt="">`, wantCID))
	}
	assert.Equal(t, "banner.png", payload.Attachments[0].Filename)
	assert.Equal(t, []byte{1, 2, 3}, payload.Attachments[0].Content)
}
