package handlers

import (
	"context"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/dto"
	businessflow "github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/business_flow"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/utils"
	"github.com/gofiber/fiber/v3"
)

// MediaHandlerInterface defines the contract for media library handlers
type MediaHandlerInterface interface {
	UploadMedia(c fiber.Ctx) error
	ListMedia(c fiber.Ctx) error
	DeleteMedia(c fiber.Ctx) error
}

// MediaHandler handles media library HTTP requests
type MediaHandler struct {
	mediaFlow businessflow.MediaFlow
}

// NewMediaHandler creates a new media library handler
func NewMediaHandler(mediaFlow businessflow.MediaFlow) *MediaHandler {
	return &MediaHandler{mediaFlow: mediaFlow}
}

func (h *MediaHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *MediaHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// UploadMedia stores one file from a multipart form into the media library
func (h *MediaHandler) UploadMedia(c fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User ID not found in context", "MISSING_USER_ID", nil)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Missing file field", "INVALID_REQUEST", err.Error())
	}

	file, err := fh.Open()
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Failed to read uploaded file", "INVALID_REQUEST", err.Error())
	}
	content, err := io.ReadAll(file)
	_ = file.Close()
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Failed to read uploaded file", "INVALID_REQUEST", err.Error())
	}

	req := &dto.UploadMediaRequest{
		UserID: userID,
		File: dto.MediaUploadDTO{
			Filename: fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Content:  content,
		},
	}
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.mediaFlow.UploadMedia(h.createRequestContext(c, "/api/v1/media"), req, metadata)
	if err != nil {
		return h.handleMediaError(c, err, "Failed to upload media", "MEDIA_UPLOAD_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Media uploaded successfully", result)
}

// ListMedia returns the authenticated user's media assets
func (h *MediaHandler) ListMedia(c fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User ID not found in context", "MISSING_USER_ID", nil)
	}

	req := &dto.ListMediaRequest{UserID: userID}
	if v, err := strconv.Atoi(c.Query("page", "1")); err == nil && v > 0 {
		req.Page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size", "20")); err == nil && v > 0 {
		req.PageSize = v
	}
	if mediaType := c.Query("media_type"); mediaType != "" {
		req.MediaType = &mediaType
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.mediaFlow.ListMedia(h.createRequestContext(c, "/api/v1/media"), req, metadata)
	if err != nil {
		return h.handleMediaError(c, err, "Failed to list media", "LIST_MEDIA_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Media retrieved successfully", result)
}

// DeleteMedia removes a media asset and its stored objects
func (h *MediaHandler) DeleteMedia(c fiber.Ctx) error {
	assetUUID := c.Params("uuid")
	if assetUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Media UUID is required", "MISSING_UUID", nil)
	}

	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User ID not found in context", "MISSING_USER_ID", nil)
	}

	req := &dto.DeleteMediaRequest{UserID: userID, UUID: assetUUID}
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	if err := h.mediaFlow.DeleteMedia(h.createRequestContext(c, "/api/v1/media/"+assetUUID), req, metadata); err != nil {
		return h.handleMediaError(c, err, "Failed to delete media", "MEDIA_DELETE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Media deleted successfully", nil)
}

func (h *MediaHandler) handleMediaError(c fiber.Ctx, err error, message, code string) error {
	switch {
	case businessflow.IsUserNotFound(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User not found", "USER_NOT_FOUND", nil)
	case businessflow.IsAccountInactive(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User account is inactive", "ACCOUNT_INACTIVE", nil)
	case businessflow.IsMediaNotFound(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, "Media not found", "MEDIA_NOT_FOUND", nil)
	case businessflow.IsMediaRejected(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "MEDIA_REJECTED", nil)
	}

	log.Println(message, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, message, code, nil)
}

func (h *MediaHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)

	return ctx
}
