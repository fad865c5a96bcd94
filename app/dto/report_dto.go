package dto

// CampaignReportRequest represents the request to export the campaign report
type CampaignReportRequest struct {
	UserID uint `json:"-"`
}

// CampaignReportRow represents one campaign row in the exported report
type CampaignReportRow struct {
	Title       string
	Status      string
	Platforms   []string
	Sent        int64
	Failed      int64
	ScheduledAt string
	CreatedAt   string
}
