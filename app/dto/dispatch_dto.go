package dto

// StartDispatchQueueRequest represents the request to start a manual WhatsApp dispatch session
type StartDispatchQueueRequest struct {
	UserID       uint   `json:"-"`
	CampaignUUID string `json:"-"`
}

// AdvanceDispatchQueueRequest represents the request to advance a dispatch session by one recipient
type AdvanceDispatchQueueRequest struct {
	UserID       uint   `json:"-"`
	CampaignUUID string `json:"-"`
}

// CancelDispatchQueueRequest represents the request to abandon a dispatch session
type CancelDispatchQueueRequest struct {
	UserID       uint   `json:"-"`
	CampaignUUID string `json:"-"`
}

// DispatchQueueSnapshot represents the observable state of a dispatch session
type DispatchQueueSnapshot struct {
	State    string  `json:"state"`
	Position int     `json:"position"`
	Total    int     `json:"total"`
	Link     *string `json:"link,omitempty"`
}

// DispatchQueueResponse represents the response to a dispatch queue operation
type DispatchQueueResponse struct {
	Message string                `json:"message"`
	Queue   DispatchQueueSnapshot `json:"queue"`
}
