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

// GroupHandlerInterface defines the contract for target group handlers
type GroupHandlerInterface interface {
	CreateGroup(c fiber.Ctx) error
	UpdateGroup(c fiber.Ctx) error
	DeleteGroup(c fiber.Ctx) error
	ListGroups(c fiber.Ctx) error
	AddMember(c fiber.Ctx) error
	RemoveMember(c fiber.Ctx) error
}

// GroupHandler handles target group HTTP requests
type GroupHandler struct {
	groupFlow businessflow.GroupFlow
	validator *validator.Validate
}

// NewGroupHandler creates a new target group handler
func NewGroupHandler(groupFlow businessflow.GroupFlow) *GroupHandler {
	return &GroupHandler{
		groupFlow: groupFlow,
		validator: validator.New(),
	}
}

func (h *GroupHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *GroupHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreateGroup handles the group creation process
func (h *GroupHandler) CreateGroup(c fiber.Ctx) error {
	var req dto.CreateGroupRequest
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

	result, err := h.groupFlow.CreateGroup(h.createRequestContext(c, "/api/v1/groups"), &req, metadata)
	if err != nil {
		return h.handleGroupError(c, err, "Failed to create group", "GROUP_CREATE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Group created successfully", result)
}

// UpdateGroup handles the group update process
func (h *GroupHandler) UpdateGroup(c fiber.Ctx) error {
	groupUUID := c.Params("uuid")
	if groupUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Group UUID is required", "MISSING_UUID", nil)
	}

	var req dto.UpdateGroupRequest
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
	req.UUID = groupUUID

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.groupFlow.UpdateGroup(h.createRequestContext(c, "/api/v1/groups/"+groupUUID), &req, metadata)
	if err != nil {
		return h.handleGroupError(c, err, "Failed to update group", "GROUP_UPDATE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Group updated successfully", result)
}

// DeleteGroup handles the group deletion process
func (h *GroupHandler) DeleteGroup(c fiber.Ctx) error {
	groupUUID := c.Params("uuid")
	if groupUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Group UUID is required", "MISSING_UUID", nil)
	}

	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User ID not found in context", "MISSING_USER_ID", nil)
	}

	req := &dto.DeleteGroupRequest{UserID: userID, UUID: groupUUID}
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	if err := h.groupFlow.DeleteGroup(h.createRequestContext(c, "/api/v1/groups/"+groupUUID), req, metadata); err != nil {
		return h.handleGroupError(c, err, "Failed to delete group", "GROUP_DELETE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Group deleted successfully", nil)
}

// ListGroups returns the authenticated user's target groups
func (h *GroupHandler) ListGroups(c fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User ID not found in context", "MISSING_USER_ID", nil)
	}

	req := &dto.ListGroupsRequest{UserID: userID}
	if v, err := strconv.Atoi(c.Query("page", "1")); err == nil && v > 0 {
		req.Page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size", "20")); err == nil && v > 0 {
		req.PageSize = v
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.groupFlow.ListGroups(h.createRequestContext(c, "/api/v1/groups"), req, metadata)
	if err != nil {
		return h.handleGroupError(c, err, "Failed to list groups", "LIST_GROUPS_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Groups retrieved successfully", result)
}

// AddMember attaches a contact to a group
func (h *GroupHandler) AddMember(c fiber.Ctx) error {
	req, errResp := h.bindMemberRequest(c)
	if errResp != nil {
		return errResp
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.groupFlow.AddMember(h.createRequestContext(c, "/api/v1/groups/"+req.GroupUUID+"/members"), req, metadata)
	if err != nil {
		return h.handleGroupError(c, err, "Failed to add group member", "GROUP_MEMBER_ADD_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Member added successfully", result)
}

// RemoveMember detaches a contact from a group
func (h *GroupHandler) RemoveMember(c fiber.Ctx) error {
	req, errResp := h.bindMemberRequest(c)
	if errResp != nil {
		return errResp
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.groupFlow.RemoveMember(h.createRequestContext(c, "/api/v1/groups/"+req.GroupUUID+"/members"), req, metadata)
	if err != nil {
		return h.handleGroupError(c, err, "Failed to remove group member", "GROUP_MEMBER_REMOVE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Member removed successfully", result)
}

func (h *GroupHandler) bindMemberRequest(c fiber.Ctx) (*dto.GroupMemberRequest, error) {
	groupUUID := c.Params("uuid")
	if groupUUID == "" {
		return nil, h.ErrorResponse(c, fiber.StatusBadRequest, "Group UUID is required", "MISSING_UUID", nil)
	}

	var req dto.GroupMemberRequest
	if err := c.Bind().JSON(&req); err != nil {
		return nil, h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return nil, h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return nil, h.ErrorResponse(c, fiber.StatusUnauthorized, "User ID not found in context", "MISSING_USER_ID", nil)
	}
	req.UserID = userID
	req.GroupUUID = groupUUID

	return &req, nil
}

func (h *GroupHandler) handleGroupError(c fiber.Ctx, err error, message, code string) error {
	switch {
	case businessflow.IsUserNotFound(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User not found", "USER_NOT_FOUND", nil)
	case businessflow.IsAccountInactive(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "User account is inactive", "ACCOUNT_INACTIVE", nil)
	case businessflow.IsTargetGroupNotFound(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, "Group not found", "GROUP_NOT_FOUND", nil)
	case businessflow.IsClientNotFound(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, "Contact not found", "CLIENT_NOT_FOUND", nil)
	}

	log.Println(message, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, message, code, nil)
}

func (h *GroupHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)

	return ctx
}
