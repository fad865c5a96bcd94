package dto

// CreateClientRequest represents the request to create a contact
type CreateClientRequest struct {
	UserID uint   `json:"-"`
	Name   string `json:"name" validate:"required,min=1,max=255"`
	Email  string `json:"email" validate:"omitempty,email,max=255"`
	Phone  string `json:"phone" validate:"omitempty,max=32"`
}

// UpdateClientRequest represents the request to update a contact
type UpdateClientRequest struct {
	UserID uint    `json:"-"`
	UUID   string  `json:"-"`
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone  *string `json:"phone,omitempty" validate:"omitempty,max=32"`
}

// DeleteClientRequest represents the request to delete a contact
type DeleteClientRequest struct {
	UserID uint   `json:"-"`
	UUID   string `json:"-"`
}

// ClientDTO represents a contact in responses
type ClientDTO struct {
	UUID      string `json:"uuid"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ClientResponse represents the response to a contact mutation
type ClientResponse struct {
	Message string    `json:"message"`
	Client  ClientDTO `json:"client"`
}

// ListClientsRequest represents filter criteria for listing contacts
type ListClientsRequest struct {
	UserID   uint  `json:"-"`
	GroupID  *uint `json:"group_id,omitempty"`
	Page     int   `json:"page" validate:"omitempty,min=1"`
	PageSize int   `json:"page_size" validate:"omitempty,min=1,max=100"`
}

// ListClientsResponse represents the paginated contact listing
type ListClientsResponse struct {
	Message    string        `json:"message"`
	Items      []ClientDTO   `json:"items"`
	Pagination PaginationDTO `json:"pagination"`
}
