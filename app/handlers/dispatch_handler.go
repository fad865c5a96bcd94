package handlers

import (
	"context"
	"log"
	"time"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/dto"
	businessflow "github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/business_flow"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/utils"
	"github.com/gofiber/fiber/v3"
)

// DispatchHandlerInterface defines the contract for manual WhatsApp dispatch handlers
type DispatchHandlerInterface interface {
	StartQueue(c fiber.Ctx) error
	AdvanceQueue(c fiber.Ctx) error
	CancelQueue(c fiber.Ctx) error
}

// DispatchHandler handles manual WhatsApp dispatch queue HTTP requests
type DispatchHandler struct {
	queueFlow businessflow.WhatsAppQueueFlow
}

// NewDispatchHandler creates a new dispatch queue handler
func NewDispatchHandler(queueFlow businessflow.WhatsAppQueueFlow) *DispatchHandler {
	return &DispatchHandler{queueFlow: queueFlow}
}

func (h *DispatchHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *DispatchHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// StartQueue opens a dispatch session over the campaign's phone audience
func (h *DispatchHandler) StartQueue(c fiber.Ctx) error {
	userID, campaignUUID, errResp := h.bindQueueRequest(c)
	if errResp != nil {
		return errResp
	}

	req := &dto.StartDispatchQueueRequest{UserID: userID, CampaignUUID: campaignUUID}
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.queueFlow.Start(h.createRequestContext(c, "/api/v1/campaigns/"+campaignUUID+"/dispatch/start"), req, metadata)
	if err != nil {
		return h.handleQueueError(c, err, "Failed to start dispatch queue", "DISPATCH_START_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// AdvanceQueue hands out the next wa.me link, or completes the session
func (h *DispatchHandler) AdvanceQueue(c fiber.Ctx) error {
	userID, campaignUUID, errResp := h.bindQueueRequest(c)
	if errResp != nil {
		return errResp
	}

	req := &dto.AdvanceDispatchQueueRequest{UserID: userID, CampaignUUID: campaignUUID}
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.queueFlow.Advance(h.createRequestContext(c, "/api/v1/campaigns/"+campaignUUID+"/dispatch/advance"), req, metadata)
	if err != nil {
		return h.handleQueueError(c, err, "Failed to advance dispatch queue", "DISPATCH_ADVANCE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// CancelQueue abandons the current dispatch session
func (h *DispatchHandler) CancelQueue(c fiber.Ctx) error {
	userID, campaignUUID, errResp := h.bindQueueRequest(c)
	if errResp != nil {
		return errResp
	}

	req := &dto.CancelDispatchQueueRequest{UserID: userID, CampaignUUID: campaignUUID}
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.queueFlow.Cancel(h.createRequestContext(c, "/api/v1/campaigns/"+campaignUUID+"/dispatch/cancel"), req, metadata)
	if err != nil {
		return h.handleQueueError(c, err, "Failed to cancel dispatch queue", "DISPATCH_CANCEL_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

func (h *DispatchHandler) bindQueueRequest(c fiber.Ctx) (uint, string, error) {
	campaignUUID := c.Params("uuid")
	if campaignUUID == "" {
		return 0, "", h.ErrorResponse(c, fiber.StatusBadRequest, "Campaign UUID is required", "MISSING_UUID", nil)
	}

	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return 0, "", h.ErrorResponse(c, fiber.StatusUnauthorized, "User ID not found in context", "MISSING_USER_ID", nil)
	}

	return userID, campaignUUID, nil
}

func (h *DispatchHandler) handleQueueError(c fiber.Ctx, err error, message, code string) error {
	switch {
	case businessflow.IsUserNotFound(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User not found", "USER_NOT_FOUND", nil)
	case businessflow.IsAccountInactive(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User account is inactive", "ACCOUNT_INACTIVE", nil)
	case businessflow.IsCampaignNotFound(err), businessflow.IsCampaignAccessDenied(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
	case businessflow.IsDispatchSessionNotFound(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, "No dispatch session in progress", "DISPATCH_SESSION_NOT_FOUND", nil)
	case businessflow.IsDispatchSessionActive(err):
		return h.ErrorResponse(c, fiber.StatusConflict, "A dispatch session is already active", "DISPATCH_SESSION_ACTIVE", nil)
	case businessflow.IsDispatchStoreUnavailable(err):
		return h.ErrorResponse(c, fiber.StatusServiceUnavailable, "Manual dispatch is not available on this deployment", "DISPATCH_UNAVAILABLE", nil)
	case businessflow.IsNoRecipients(err), businessflow.IsTargetGroupNotFound(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "RECIPIENT_RESOLUTION_FAILED", nil)
	case businessflow.IsCampaignValidation(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "CAMPAIGN_VALIDATION_FAILED", nil)
	}

	log.Println(message, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, message, code, nil)
}

func (h *DispatchHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)

	return ctx
}
