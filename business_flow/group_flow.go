package businessflow

import (
	"context"
	"time"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/dto"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/models"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/repository"
)

// GroupFlow handles the target group business logic
type GroupFlow interface {
	CreateGroup(ctx context.Context, req *dto.CreateGroupRequest, metadata *ClientMetadata) (*dto.GroupResponse, error)
	UpdateGroup(ctx context.Context, req *dto.UpdateGroupRequest, metadata *ClientMetadata) (*dto.GroupResponse, error)
	DeleteGroup(ctx context.Context, req *dto.DeleteGroupRequest, metadata *ClientMetadata) error
	ListGroups(ctx context.Context, req *dto.ListGroupsRequest, metadata *ClientMetadata) (*dto.ListGroupsResponse, error)
	AddMember(ctx context.Context, req *dto.GroupMemberRequest, metadata *ClientMetadata) (*dto.GroupResponse, error)
	RemoveMember(ctx context.Context, req *dto.GroupMemberRequest, metadata *ClientMetadata) (*dto.GroupResponse, error)
}

// GroupFlowImpl implements the target group flow
type GroupFlowImpl struct {
	userRepo   repository.UserRepository
	groupRepo  repository.TargetGroupRepository
	clientRepo repository.ClientRepository
}

// NewGroupFlow creates a new group flow instance
func NewGroupFlow(userRepo repository.UserRepository, groupRepo repository.TargetGroupRepository, clientRepo repository.ClientRepository) GroupFlow {
	return &GroupFlowImpl{
		userRepo:   userRepo,
		groupRepo:  groupRepo,
		clientRepo: clientRepo,
	}
}

func (s *GroupFlowImpl) CreateGroup(ctx context.Context, req *dto.CreateGroupRequest, metadata *ClientMetadata) (*dto.GroupResponse, error) {
	user, err := getUser(ctx, s.userRepo, req.UserID)
	if err != nil {
		return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to lookup user", err)
	}

	group := &models.TargetGroup{
		UserID:      user.ID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, NewBusinessError("GROUP_SAVE_FAILED", "Failed to save group", err)
	}

	return &dto.GroupResponse{
		Message: "Group created successfully",
		Group:   s.toGroupDTO(ctx, *group),
	}, nil
}

func (s *GroupFlowImpl) UpdateGroup(ctx context.Context, req *dto.UpdateGroupRequest, metadata *ClientMetadata) (*dto.GroupResponse, error) {
	group, err := s.getOwnedGroup(ctx, req.UUID, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Description != nil {
		group.Description = *req.Description
	}

	if err := s.groupRepo.Update(ctx, *group); err != nil {
		return nil, NewBusinessError("GROUP_UPDATE_FAILED", "Failed to update group", err)
	}

	return &dto.GroupResponse{
		Message: "Group updated successfully",
		Group:   s.toGroupDTO(ctx, *group),
	}, nil
}

func (s *GroupFlowImpl) DeleteGroup(ctx context.Context, req *dto.DeleteGroupRequest, metadata *ClientMetadata) error {
	group, err := s.getOwnedGroup(ctx, req.UUID, req.UserID)
	if err != nil {
		return err
	}

	if err := s.groupRepo.Delete(ctx, group.ID); err != nil {
		return NewBusinessError("GROUP_DELETE_FAILED", "Failed to delete group", err)
	}
	return nil
}

func (s *GroupFlowImpl) ListGroups(ctx context.Context, req *dto.ListGroupsRequest, metadata *ClientMetadata) (*dto.ListGroupsResponse, error) {
	page, pageSize, err := normalizePage(req.Page, req.PageSize)
	if err != nil {
		return nil, NewBusinessError("INVALID_PAGINATION", "Invalid pagination parameters", err)
	}

	filter := models.TargetGroupFilter{UserID: &req.UserID}

	groups, err := s.groupRepo.ByFilter(ctx, filter, "name ASC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("GROUP_LIST_FAILED", "Failed to list groups", err)
	}

	total, err := s.groupRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("GROUP_COUNT_FAILED", "Failed to count groups", err)
	}

	items := make([]dto.GroupDTO, 0, len(groups))
	for _, g := range groups {
		items = append(items, s.toGroupDTO(ctx, *g))
	}

	return &dto.ListGroupsResponse{
		Message:    "Groups listed successfully",
		Items:      items,
		Pagination: dto.PaginationDTO{Page: page, PageSize: pageSize, Total: total},
	}, nil
}

func (s *GroupFlowImpl) AddMember(ctx context.Context, req *dto.GroupMemberRequest, metadata *ClientMetadata) (*dto.GroupResponse, error) {
	group, client, err := s.getGroupAndClient(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.groupRepo.AddClient(ctx, group.ID, client.ID); err != nil {
		return nil, NewBusinessError("GROUP_MEMBER_ADD_FAILED", "Failed to add group member", err)
	}

	return &dto.GroupResponse{
		Message: "Member added successfully",
		Group:   s.toGroupDTO(ctx, *group),
	}, nil
}

func (s *GroupFlowImpl) RemoveMember(ctx context.Context, req *dto.GroupMemberRequest, metadata *ClientMetadata) (*dto.GroupResponse, error) {
	group, client, err := s.getGroupAndClient(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.groupRepo.RemoveClient(ctx, group.ID, client.ID); err != nil {
		return nil, NewBusinessError("GROUP_MEMBER_REMOVE_FAILED", "Failed to remove group member", err)
	}

	return &dto.GroupResponse{
		Message: "Member removed successfully",
		Group:   s.toGroupDTO(ctx, *group),
	}, nil
}

func (s *GroupFlowImpl) getOwnedGroup(ctx context.Context, groupUUID string, userID uint) (*models.TargetGroup, error) {
	group, err := s.groupRepo.ByUUID(ctx, groupUUID)
	if err != nil {
		return nil, NewBusinessError("GROUP_LOOKUP_FAILED", "Failed to lookup group", err)
	}
	if group == nil {
		return nil, NewBusinessError("GROUP_NOT_FOUND", "Group not found", ErrTargetGroupNotFound)
	}
	if group.UserID != userID {
		return nil, NewBusinessError("FORBIDDEN", "Access denied", ErrTargetGroupNotFound)
	}
	return group, nil
}

func (s *GroupFlowImpl) getGroupAndClient(ctx context.Context, req *dto.GroupMemberRequest) (*models.TargetGroup, *models.Client, error) {
	group, err := s.getOwnedGroup(ctx, req.GroupUUID, req.UserID)
	if err != nil {
		return nil, nil, err
	}

	client, err := s.clientRepo.ByUUID(ctx, req.ClientUUID)
	if err != nil {
		return nil, nil, NewBusinessError("CLIENT_LOOKUP_FAILED", "Failed to lookup client", err)
	}
	if client == nil || client.UserID != req.UserID {
		return nil, nil, NewBusinessError("CLIENT_NOT_FOUND", "Client not found", ErrClientNotFound)
	}
	return group, client, nil
}

func (s *GroupFlowImpl) toGroupDTO(ctx context.Context, group models.TargetGroup) dto.GroupDTO {
	count, err := s.clientRepo.Count(ctx, models.ClientFilter{GroupID: &group.ID})
	if err != nil {
		count = 0
	}
	return dto.GroupDTO{
		UUID:        group.UUID.String(),
		Name:        group.Name,
		Description: group.Description,
		MemberCount: count,
		CreatedAt:   group.CreatedAt.Format(time.RFC3339),
	}
}
