package businessflow

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/dto"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/services"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/models"
)

// EmailPayload is the rendered message shared by every recipient of one
// campaign. The sender loops recipients and issues one message each.
type EmailPayload struct {
	Subject     string
	From        string
	HTML        string
	Attachments []services.EmailAttachment
}

// BuildEmailPayload renders the campaign body into an HTML document. Freshly
// uploaded files are embedded as inline attachments addressed by generated
// content ids; media that already lives in storage is referenced by URL.
func BuildEmailPayload(title, body string, cfg models.ChannelConfig, existingMedia []string, newUploads []dto.MediaUploadDTO, defaultFrom string, now time.Time) EmailPayload {
	subject := cfg["subject"]
	if subject == "" {
		subject = title
	}
	from := cfg["from_address"]
	if from == "" {
		from = defaultFrom
	}
	if name := cfg["from_name"]; name != "" {
		from = fmt.Sprintf("%s <%s>", name, from)
	}

	var sb strings.Builder
	sb.WriteString("<html><body>")
	sb.WriteString("<div>")
	sb.WriteString(strings.ReplaceAll(html.EscapeString(body), "\n", "<br>"))
	sb.WriteString("</div>")

	for _, u := range existingMedia {
		sb.WriteString(fmt.Sprintf(`<img src="%s" alt="">`, html.EscapeString(u)))
	}

	attachments := make([]services.EmailAttachment, 0, len(newUploads))
	ts := now.Unix()
	for i, upload := range newUploads {
		cid := fmt.Sprintf("new-%d-%d", ts, i)
		attachments = append(attachments, services.EmailAttachment{
			Filename:  upload.Filename,
			ContentID: cid,
			MimeType:  upload.MimeType,
			Content:   upload.Content,
		})
		sb.WriteString(fmt.Sprintf(`<img src="cid:%s" alt="">`, cid))
	}

	sb.WriteString("</body></html>")

	return EmailPayload{
		Subject:     subject,
		From:        from,
		HTML:        sb.String(),
		Attachments: attachments,
	}
}
