// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/dto"
	businessflow "github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/business_flow"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// CampaignHandlerInterface defines the contract for campaign handlers
type CampaignHandlerInterface interface {
	SaveDraft(c fiber.Ctx) error
	UpdateDraft(c fiber.Ctx) error
	SendCampaign(c fiber.Ctx) error
	ScheduleCampaign(c fiber.Ctx) error
	ListCampaigns(c fiber.Ctx) error
	GetCampaign(c fiber.Ctx) error
}

// CampaignHandler handles campaign-related HTTP requests
type CampaignHandler struct {
	campaignFlow businessflow.CampaignFlow
	validator    *validator.Validate
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaignFlow businessflow.CampaignFlow) *CampaignHandler {
	return &CampaignHandler{
		campaignFlow: campaignFlow,
		validator:    validator.New(),
	}
}

func (h *CampaignHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *CampaignHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SaveDraft handles the campaign draft save process
func (h *CampaignHandler) SaveDraft(c fiber.Ctx) error {
	req, errResp := h.bindSaveRequest(c, nil)
	if errResp != nil {
		return errResp
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.campaignFlow.SaveDraft(h.createRequestContext(c, "/api/v1/campaigns"), req, metadata)
	if err != nil {
		return h.handleCampaignError(c, err, "Campaign save failed", "CAMPAIGN_SAVE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Campaign saved successfully", result)
}

// UpdateDraft handles the draft update process for an existing campaign
func (h *CampaignHandler) UpdateDraft(c fiber.Ctx) error {
	campaignUUID := c.Params("uuid")
	if campaignUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Campaign UUID is required", "MISSING_UUID", nil)
	}

	req, errResp := h.bindSaveRequest(c, &campaignUUID)
	if errResp != nil {
		return errResp
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.campaignFlow.SaveDraft(h.createRequestContext(c, "/api/v1/campaigns/"+campaignUUID), req, metadata)
	if err != nil {
		return h.handleCampaignError(c, err, "Campaign update failed", "CAMPAIGN_UPDATE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Campaign updated successfully", result)
}

// SendCampaign handles the immediate dispatch process
func (h *CampaignHandler) SendCampaign(c fiber.Ctx) error {
	saveReq, errResp := h.bindSaveRequest(c, nil)
	if errResp != nil {
		return errResp
	}
	req := &dto.SendCampaignRequest{SaveCampaignRequest: *saveReq}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.campaignFlow.SendNow(h.createRequestContextWithTimeout(c, "/api/v1/campaigns/send", 2*time.Minute), req, metadata)
	if err != nil {
		return h.handleCampaignError(c, err, "Campaign dispatch failed", "CAMPAIGN_DISPATCH_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// ScheduleCampaign handles the deferred dispatch process
func (h *CampaignHandler) ScheduleCampaign(c fiber.Ctx) error {
	saveReq, errResp := h.bindSaveRequest(c, nil)
	if errResp != nil {
		return errResp
	}

	scheduledAt, errResp := h.bindScheduledAt(c)
	if errResp != nil {
		return errResp
	}

	req := &dto.ScheduleCampaignRequest{
		SaveCampaignRequest: *saveReq,
		ScheduledAt:         scheduledAt,
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.campaignFlow.Schedule(h.createRequestContext(c, "/api/v1/campaigns/schedule"), req, metadata)
	if err != nil {
		return h.handleCampaignError(c, err, "Campaign scheduling failed", "CAMPAIGN_SCHEDULE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Campaign scheduled successfully", result)
}

// ListCampaigns returns the authenticated user's campaigns with pagination and status filter
func (h *CampaignHandler) ListCampaigns(c fiber.Ctx) error {
	page := 1
	if v, err := strconv.Atoi(c.Query("page", "1")); err == nil && v > 0 {
		page = v
	}
	pageSize := 10
	if v, err := strconv.Atoi(c.Query("page_size", "10")); err == nil && v > 0 {
		pageSize = v
	}
	if pageSize > 100 {
		pageSize = 100
	}

	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User ID not found in context", "MISSING_USER_ID", nil)
	}

	req := &dto.ListCampaignsRequest{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	}
	if status := c.Query("status"); status != "" {
		req.Status = &status
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.campaignFlow.ListCampaigns(h.createRequestContext(c, "/api/v1/campaigns"), req, metadata)
	if err != nil {
		return h.handleCampaignError(c, err, "Failed to list campaigns", "LIST_CAMPAIGNS_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Campaigns retrieved successfully", result)
}

// GetCampaign returns one campaign by UUID
func (h *CampaignHandler) GetCampaign(c fiber.Ctx) error {
	campaignUUID := c.Params("uuid")
	if campaignUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Campaign UUID is required", "MISSING_UUID", nil)
	}

	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User ID not found in context", "MISSING_USER_ID", nil)
	}

	req := &dto.GetCampaignRequest{UUID: campaignUUID, UserID: userID}
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.campaignFlow.GetCampaign(h.createRequestContext(c, "/api/v1/campaigns/"+campaignUUID), req, metadata)
	if err != nil {
		return h.handleCampaignError(c, err, "Failed to get campaign", "GET_CAMPAIGN_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Campaign retrieved successfully", result)
}

// bindSaveRequest parses the campaign form from either a JSON body or a
// multipart form carrying a "payload" JSON field plus "files" parts.
func (h *CampaignHandler) bindSaveRequest(c fiber.Ctx, campaignUUID *string) (*dto.SaveCampaignRequest, error) {
	var req dto.SaveCampaignRequest

	contentType := c.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid multipart form", "INVALID_REQUEST", err.Error())
		}

		payloads := form.Value["payload"]
		if len(payloads) == 0 {
			return nil, h.ErrorResponse(c, fiber.StatusBadRequest, "Missing payload field", "INVALID_REQUEST", nil)
		}
		if err := json.Unmarshal([]byte(payloads[0]), &req); err != nil {
			return nil, h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid payload JSON", "INVALID_REQUEST", err.Error())
		}

		uploads, err := readMultipartFiles(form.File["files"])
		if err != nil {
			return nil, h.ErrorResponse(c, fiber.StatusBadRequest, "Failed to read uploaded files", "INVALID_REQUEST", err.Error())
		}
		req.NewMedia = uploads
	} else {
		if err := c.Bind().JSON(&req); err != nil {
			return nil, h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
		}
	}

	if err := h.validator.Struct(&req); err != nil {
		return nil, h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return nil, h.ErrorResponse(c, fiber.StatusUnauthorized, "User ID not found in context", "MISSING_USER_ID", nil)
	}
	req.UserID = userID
	req.UUID = campaignUUID

	return &req, nil
}

// bindScheduledAt re-reads the schedule timestamp because bindSaveRequest
// only decodes the shared campaign fields
func (h *CampaignHandler) bindScheduledAt(c fiber.Ctx) (*time.Time, error) {
	var body struct {
		ScheduledAt *time.Time `json:"scheduled_at"`
	}

	contentType := c.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		form, err := c.MultipartForm()
		if err == nil {
			if payloads := form.Value["payload"]; len(payloads) > 0 {
				_ = json.Unmarshal([]byte(payloads[0]), &body)
			}
		}
	} else {
		_ = c.Bind().JSON(&body)
	}

	if body.ScheduledAt == nil {
		return nil, h.ErrorResponse(c, fiber.StatusBadRequest, "scheduled_at is required", "VALIDATION_ERROR", nil)
	}
	return body.ScheduledAt, nil
}

func (h *CampaignHandler) handleCampaignError(c fiber.Ctx, err error, message, code string) error {
	switch {
	case businessflow.IsUserNotFound(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User not found", "USER_NOT_FOUND", nil)
	case businessflow.IsAccountInactive(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User account is inactive", "ACCOUNT_INACTIVE", nil)
	case businessflow.IsCampaignNotFound(err), businessflow.IsCampaignAccessDenied(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
	case businessflow.IsCampaignNotEditable(err):
		return h.ErrorResponse(c, fiber.StatusConflict, "Campaign cannot be modified in current status", "CAMPAIGN_NOT_EDITABLE", nil)
	case businessflow.IsCampaignValidation(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "CAMPAIGN_VALIDATION_FAILED", nil)
	case businessflow.IsScheduleTimeInvalid(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "INVALID_SCHEDULE_TIME", nil)
	case businessflow.IsNoRecipients(err), businessflow.IsTargetGroupNotFound(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "RECIPIENT_RESOLUTION_FAILED", nil)
	case businessflow.IsDispatchSessionActive(err):
		return h.ErrorResponse(c, fiber.StatusConflict, "A dispatch session is already active", "DISPATCH_SESSION_ACTIVE", nil)
	case businessflow.IsDispatchStoreUnavailable(err):
		return h.ErrorResponse(c, fiber.StatusServiceUnavailable, "Manual dispatch is not available on this deployment", "DISPATCH_UNAVAILABLE", nil)
	}

	log.Println(message, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, message, code, nil)
}

// createRequestContext creates a context with request-scoped values for observability and timeout
func (h *CampaignHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *CampaignHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)

	return ctx
}

func readMultipartFiles(headers []*multipart.FileHeader) ([]dto.MediaUploadDTO, error) {
	uploads := make([]dto.MediaUploadDTO, 0, len(headers))
	for _, fh := range headers {
		file, err := fh.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, dto.MediaUploadDTO{
			Filename: fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Content:  content,
		})
	}
	return uploads, nil
}
