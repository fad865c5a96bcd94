package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/dto"
	businessflow "github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/business_flow"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// ClientHandlerInterface defines the contract for contact handlers
type ClientHandlerInterface interface {
	CreateClient(c fiber.Ctx) error
	UpdateClient(c fiber.Ctx) error
	DeleteClient(c fiber.Ctx) error
	ListClients(c fiber.Ctx) error
}

// ClientHandler handles contact HTTP requests
type ClientHandler struct {
	clientFlow businessflow.ClientFlow
	validator  *validator.Validate
}

// NewClientHandler creates a new contact handler
func NewClientHandler(clientFlow businessflow.ClientFlow) *ClientHandler {
	return &ClientHandler{
		clientFlow: clientFlow,
		validator:  validator.New(),
	}
}

func (h *ClientHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ClientHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreateClient handles the contact creation process
func (h *ClientHandler) CreateClient(c fiber.Ctx) error {
	var req dto.CreateClientRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User ID not found in context", "MISSING_USER_ID", nil)
	}
	req.UserID = userID

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.clientFlow.CreateClient(h.createRequestContext(c, "/api/v1/clients"), &req, metadata)
	if err != nil {
		return h.handleClientError(c, err, "Failed to create contact", "CLIENT_CREATE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Contact created successfully", result)
}

// UpdateClient handles the contact update process
func (h *ClientHandler) UpdateClient(c fiber.Ctx) error {
	clientUUID := c.Params("uuid")
	if clientUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Client UUID is required", "MISSING_UUID", nil)
	}

	var req dto.UpdateClientRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User ID not found in context", "MISSING_USER_ID", nil)
	}
	req.UserID = userID
	req.UUID = clientUUID

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.clientFlow.UpdateClient(h.createRequestContext(c, "/api/v1/clients/"+clientUUID), &req, metadata)
	if err != nil {
		return h.handleClientError(c, err, "Failed to update contact", "CLIENT_UPDATE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Contact updated successfully", result)
}

// DeleteClient handles the contact deletion process
func (h *ClientHandler) DeleteClient(c fiber.Ctx) error {
	clientUUID := c.Params("uuid")
	if clientUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Client UUID is required", "MISSING_UUID", nil)
	}

	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User ID not found in context", "MISSING_USER_ID", nil)
	}

	req := &dto.DeleteClientRequest{UserID: userID, UUID: clientUUID}
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	if err := h.clientFlow.DeleteClient(h.createRequestContext(c, "/api/v1/clients/"+clientUUID), req, metadata); err != nil {
		return h.handleClientError(c, err, "Failed to delete contact", "CLIENT_DELETE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Contact deleted successfully", nil)
}

// ListClients returns the authenticated user's contacts with optional group filter
func (h *ClientHandler) ListClients(c fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User ID not found in context", "MISSING_USER_ID", nil)
	}

	req := &dto.ListClientsRequest{UserID: userID}
	if v, err := strconv.Atoi(c.Query("page", "1")); err == nil && v > 0 {
		req.Page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size", "20")); err == nil && v > 0 {
		req.PageSize = v
	}
	if raw := c.Query("group_id"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 64); err == nil {
			groupID := uint(v)
			req.GroupID = &groupID
		}
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.clientFlow.ListClients(h.createRequestContext(c, "/api/v1/clients"), req, metadata)
	if err != nil {
		return h.handleClientError(c, err, "Failed to list contacts", "LIST_CLIENTS_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Contacts retrieved successfully", result)
}

func (h *ClientHandler) handleClientError(c fiber.Ctx, err error, message, code string) error {
	switch {
	case businessflow.IsUserNotFound(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User not found", "USER_NOT_FOUND", nil)
	case businessflow.IsAccountInactive(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User account is inactive", "ACCOUNT_INACTIVE", nil)
	case businessflow.IsClientNotFound(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, "Contact not found", "CLIENT_NOT_FOUND", nil)
	}

	log.Println(message, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, message, code, nil)
}

func (h *ClientHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)

	return ctx
}
