package businessflow

import (
	"context"

	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/app/dto"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/models"
	"github.com/VerindraHernandaPutra/marketing-campaign-tools-sub000/repository"
)

// ClientFlow handles the contact book business logic
type ClientFlow interface {
	CreateClient(ctx context.Context, req *dto.CreateClientRequest, metadata *ClientMetadata) (*dto.ClientResponse, error)
	UpdateClient(ctx context.Context, req *dto.UpdateClientRequest, metadata *ClientMetadata) (*dto.ClientResponse, error)
	DeleteClient(ctx context.Context, req *dto.DeleteClientRequest, metadata *ClientMetadata) error
	ListClients(ctx context.Context, req *dto.ListClientsRequest, metadata *ClientMetadata) (*dto.ListClientsResponse, error)
}

// ClientFlowImpl implements the contact book flow
type ClientFlowImpl struct {
	userRepo   repository.UserRepository
	clientRepo repository.ClientRepository
}

// NewClientFlow creates a new client flow instance
func NewClientFlow(userRepo repository.UserRepository, clientRepo repository.ClientRepository) ClientFlow {
	return &ClientFlowImpl{
		userRepo:   userRepo,
		clientRepo: clientRepo,
	}
}

func (s *ClientFlowImpl) CreateClient(ctx context.Context, req *dto.CreateClientRequest, metadata *ClientMetadata) (*dto.ClientResponse, error) {
	user, err := getUser(ctx, s.userRepo, req.UserID)
	if err != nil {
		return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to lookup user", err)
	}

	client := &models.Client{
		UserID: user.ID,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
	}
	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, NewBusinessError("CLIENT_SAVE_FAILED", "Failed to save client", err)
	}

	return &dto.ClientResponse{
		Message: "Client created successfully",
		Client:  ToClientDTO(*client),
	}, nil
}

func (s *ClientFlowImpl) UpdateClient(ctx context.Context, req *dto.UpdateClientRequest, metadata *ClientMetadata) (*dto.ClientResponse, error) {
	client, err := s.getOwnedClient(ctx, req.UUID, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}

	if err := s.clientRepo.Update(ctx, *client); err != nil {
		return nil, NewBusinessError("CLIENT_UPDATE_FAILED", "Failed to update client", err)
	}

	return &dto.ClientResponse{
		Message: "Client updated successfully",
		Client:  ToClientDTO(*client),
	}, nil
}

func (s *ClientFlowImpl) DeleteClient(ctx context.Context, req *dto.DeleteClientRequest, metadata *ClientMetadata) error {
	client, err := s.getOwnedClient(ctx, req.UUID, req.UserID)
	if err != nil {
		return err
	}

	if err := s.clientRepo.Delete(ctx, client.ID); err != nil {
		return NewBusinessError("CLIENT_DELETE_FAILED", "Failed to delete client", err)
	}
	return nil
}

func (s *ClientFlowImpl) ListClients(ctx context.Context, req *dto.ListClientsRequest, metadata *ClientMetadata) (*dto.ListClientsResponse, error) {
	page, pageSize, err := normalizePage(req.Page, req.PageSize)
	if err != nil {
		return nil, NewBusinessError("INVALID_PAGINATION", "Invalid pagination parameters", err)
	}

	filter := models.ClientFilter{
		UserID:  &req.UserID,
		GroupID: req.GroupID,
	}

	clients, err := s.clientRepo.ByFilter(ctx, filter, "name ASC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("CLIENT_LIST_FAILED", "Failed to list clients", err)
	}

	total, err := s.clientRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("CLIENT_COUNT_FAILED", "Failed to count clients", err)
	}

	items := make([]dto.ClientDTO, 0, len(clients))
	for _, c := range clients {
		items = append(items, ToClientDTO(*c))
	}

	return &dto.ListClientsResponse{
		Message:    "Clients listed successfully",
		Items:      items,
		Pagination: dto.PaginationDTO{Page: page, PageSize: pageSize, Total: total},
	}, nil
}

func (s *ClientFlowImpl) getOwnedClient(ctx context.Context, clientUUID string, userID uint) (*models.Client, error) {
	client, err := s.clientRepo.ByUUID(ctx, clientUUID)
	if err != nil {
		return nil, NewBusinessError("CLIENT_LOOKUP_FAILED", "Failed to lookup client", err)
	}
	if client == nil {
		return nil, NewBusinessError("CLIENT_NOT_FOUND", "Client not found", ErrClientNotFound)
	}
	if client.UserID != userID {
		return nil, NewBusinessError("FORBIDDEN", "Access denied", ErrClientNotFound)
	}
	return client, nil
}
