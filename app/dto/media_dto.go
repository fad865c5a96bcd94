package dto

// UploadMediaRequest represents the request to upload a media asset
type UploadMediaRequest struct {
	UserID uint `json:"-"`
	File   MediaUploadDTO
}

// MediaAssetDTO represents a stored media asset in responses
type MediaAssetDTO struct {
	UUID         string `json:"uuid"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	MediaType    string `json:"media_type"`
	MimeType     string `json:"mime_type"`
	SizeBytes    int64  `json:"size_bytes"`
	CreatedAt    string `json:"created_at"`
}

// UploadMediaResponse represents the response to a media upload
type UploadMediaResponse struct {
	Message string        `json:"message"`
	Asset   MediaAssetDTO `json:"asset"`
}

// ListMediaRequest represents filter criteria for listing media assets
type ListMediaRequest struct {
	UserID    uint    `json:"-"`
	MediaType *string `json:"media_type,omitempty" validate:"omitempty,oneof=image video document"`
	Page      int     `json:"page" validate:"omitempty,min=1"`
	PageSize  int     `json:"page_size" validate:"omitempty,min=1,max=100"`
}

// ListMediaResponse represents the paginated media listing
type ListMediaResponse struct {
	Message    string          `json:"message"`
	Items      []MediaAssetDTO `json:"items"`
	Pagination PaginationDTO   `json:"pagination"`
}

// DeleteMediaRequest represents the request to delete a media asset
type DeleteMediaRequest struct {
	UserID uint   `json:"-"`
	UUID   string `json:"-"`
}
