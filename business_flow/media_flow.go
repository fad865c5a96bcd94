package businessflow

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/jpeg"
	"log"
	"mime"
	"path/filepath"
	"strings"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/dto"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/services"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/models"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/repository"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MediaFlow defines operations for the media library
type MediaFlow interface {
	UploadMedia(ctx context.Context, req *dto.UploadMediaRequest, metadata *ClientMetadata) (*dto.UploadMediaResponse, error)
	ListMedia(ctx context.Context, req *dto.ListMediaRequest, metadata *ClientMetadata) (*dto.ListMediaResponse, error)
	DeleteMedia(ctx context.Context, req *dto.DeleteMediaRequest, metadata *ClientMetadata) error

	// UploadCampaignMedia stores the freshly attached files of a campaign
	// save. Per-file failures are logged and skipped; the returned URLs keep
	// the upload order.
	UploadCampaignMedia(ctx context.Context, userID uint, uploads []dto.MediaUploadDTO) []string
}

// MediaFlowImpl implements the media library flow
type MediaFlowImpl struct {
	userRepo  repository.UserRepository
	mediaRepo repository.MediaAssetRepository
	storage   services.ObjectStorage
}

// NewMediaFlow creates a new media flow instance
func NewMediaFlow(userRepo repository.UserRepository, mediaRepo repository.MediaAssetRepository, storage services.ObjectStorage) MediaFlow {
	return &MediaFlowImpl{
		userRepo:  userRepo,
		mediaRepo: mediaRepo,
		storage:   storage,
	}
}

const (
	maxMediaSize = int64(25 * 1024 * 1024) // 25MB
	thumbMaxDim  = 512
)

var allowedMediaExts = map[string]string{
	".jpg":  "image",
	".jpeg": "image",
	".png":  "image",
	".gif":  "image",
	".webp": "image",
	".mp4":  "video",
	".webm": "video",
	".pdf":  "document",
}

func (f *MediaFlowImpl) UploadMedia(ctx context.Context, req *dto.UploadMediaRequest, metadata *ClientMetadata) (*dto.UploadMediaResponse, error) {
	if req == nil || len(req.File.Content) == 0 {
		return nil, NewBusinessError("INVALID_FILE", "file is required", ErrMediaEmpty)
	}

	user, err := getUser(ctx, f.userRepo, req.UserID)
	if err != nil {
		return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to lookup user", err)
	}

	asset, err := f.storeAsset(ctx, user.ID, req.File)
	if err != nil {
		return nil, err
	}

	return &dto.UploadMediaResponse{
		Message: "Media uploaded successfully",
		Asset:   ToMediaAssetDTO(*asset),
	}, nil
}

func (f *MediaFlowImpl) ListMedia(ctx context.Context, req *dto.ListMediaRequest, metadata *ClientMetadata) (*dto.ListMediaResponse, error) {
	page, pageSize, err := normalizePage(req.Page, req.PageSize)
	if err != nil {
		return nil, NewBusinessError("INVALID_PAGINATION", "Invalid pagination parameters", err)
	}

	filter := models.MediaAssetFilter{
		UserID:    &req.UserID,
		MediaType: req.MediaType,
	}

	assets, err := f.mediaRepo.ByFilter(ctx, filter, "created_at DESC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("MEDIA_LIST_FAILED", "Failed to list media", err)
	}

	total, err := f.mediaRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("MEDIA_COUNT_FAILED", "Failed to count media", err)
	}

	items := make([]dto.MediaAssetDTO, 0, len(assets))
	for _, a := range assets {
		items = append(items, ToMediaAssetDTO(*a))
	}

	return &dto.ListMediaResponse{
		Message:    "Media listed successfully",
		Items:      items,
		Pagination: dto.PaginationDTO{Page: page, PageSize: pageSize, Total: total},
	}, nil
}

func (f *MediaFlowImpl) DeleteMedia(ctx context.Context, req *dto.DeleteMediaRequest, metadata *ClientMetadata) error {
	asset, err := f.mediaRepo.ByUUID(ctx, req.UUID)
	if err != nil {
		return NewBusinessError("MEDIA_LOOKUP_FAILED", "Failed to lookup media", err)
	}
	if asset == nil {
		return NewBusinessError("MEDIA_NOT_FOUND", "Media not found", ErrMediaNotFound)
	}
	if asset.UserID != req.UserID {
		return NewBusinessError("FORBIDDEN", "Access denied", ErrMediaNotFound)
	}

	if err := f.storage.Delete(ctx, asset.StorageKey); err != nil {
		log.Printf("media delete: failed to remove object %s: %v", asset.StorageKey, err)
	}

	if err := f.mediaRepo.Delete(ctx, asset.ID); err != nil {
		return NewBusinessError("MEDIA_DELETE_FAILED", "Failed to delete media", err)
	}
	return nil
}

func (f *MediaFlowImpl) UploadCampaignMedia(ctx context.Context, userID uint, uploads []dto.MediaUploadDTO) []string {
	urls := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		asset, err := f.storeAsset(ctx, userID, upload)
		if err != nil {
			log.Printf("campaign media: skipping %s: %v", upload.Filename, err)
			continue
		}
		urls = append(urls, asset.PublicURL)
	}
	return urls
}

func (f *MediaFlowImpl) storeAsset(ctx context.Context, userID uint, upload dto.MediaUploadDTO) (*models.MediaAsset, error) {
	size := int64(len(upload.Content))
	if size == 0 {
		return nil, NewBusinessError("INVALID_FILE", "file is empty", ErrMediaEmpty)
	}
	if size > maxMediaSize {
		return nil, NewBusinessError("FILE_TOO_LARGE", "file size exceeds 25MB", ErrMediaTooLarge)
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	mediaType, ok := allowedMediaExts[ext]
	if !ok {
		return nil, NewBusinessError("INVALID_FILE_TYPE", fmt.Sprintf("file type %s is not supported", ext), ErrMediaTypeUnsupported)
	}

	mimeType := upload.MimeType
	if mimeType == "" {
		mimeType = mime.TypeByExtension(ext)
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	id := uuid.New()
	key := fmt.Sprintf("%d/%s%s", userID, id.String(), ext)
	url, err := f.storage.Upload(ctx, key, mimeType, upload.Content)
	if err != nil {
		return nil, NewBusinessError("MEDIA_UPLOAD_FAILED", "Failed to upload media", err)
	}

	asset := &models.MediaAsset{
		UUID:             id,
		UserID:           userID,
		OriginalFilename: upload.Filename,
		StorageKey:       key,
		PublicURL:        url,
		SizeBytes:        size,
		MimeType:         mimeType,
		MediaType:        mediaType,
		Extension:        ext,
	}

	if mediaType == "image" {
		if thumbURL, err := f.storeThumbnail(ctx, userID, id.String(), upload.Content); err != nil {
			log.Printf("media upload: thumbnail for %s failed: %v", upload.Filename, err)
		} else {
			asset.ThumbnailURL = thumbURL
		}
	}

	if err := f.mediaRepo.Save(ctx, asset); err != nil {
		if derr := f.storage.Delete(ctx, key); derr != nil {
			log.Printf("media upload: orphaned object %s: %v", key, derr)
		}
		return nil, NewBusinessError("MEDIA_SAVE_FAILED", "Failed to save media", err)
	}
	return asset, nil
}

func (f *MediaFlowImpl) storeThumbnail(ctx context.Context, userID uint, id string, content []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return "", err
	}

	thumb := resizeImage(img, thumbMaxDim)
	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, thumb, &jpeg.Options{Quality: 75}); err != nil {
		return "", err
	}

	key := fmt.Sprintf("%d/%s_thumb.jpg", userID, id)
	return f.storage.Upload(ctx, key, "image/jpeg", buf.Bytes())
}

func resizeImage(src image.Image, maxDim int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return src
	}

	var nw, nh int
	if w >= h {
		nw = maxDim
		nh = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		nh = maxDim
		nw = int(float64(w) * float64(maxDim) / float64(h))
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	imagedraw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, imagedraw.Src)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

func normalizePage(page, pageSize int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	if page < 1 {
		return 0, 0, ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return 0, 0, ErrInvalidPageSize
	}
	return page, pageSize, nil
}
