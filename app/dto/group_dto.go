package dto

// CreateGroupRequest represents the request to create a target group
type CreateGroupRequest struct {
	UserID      uint   `json:"-"`
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"omitempty,max=1024"`
}

// UpdateGroupRequest represents the request to update a target group
type UpdateGroupRequest struct {
	UserID      uint    `json:"-"`
	UUID        string  `json:"-"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1024"`
}

// DeleteGroupRequest represents the request to delete a target group
type DeleteGroupRequest struct {
	UserID uint   `json:"-"`
	UUID   string `json:"-"`
}

// GroupMemberRequest represents the request to add or remove a group member
type GroupMemberRequest struct {
	UserID     uint   `json:"-"`
	GroupUUID  string `json:"-"`
	ClientUUID string `json:"client_uuid" validate:"required,uuid"`
}

// GroupDTO represents a target group in responses
type GroupDTO struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MemberCount int64  `json:"member_count"`
	CreatedAt   string `json:"created_at"`
}

// GroupResponse represents the response to a group mutation
type GroupResponse struct {
	Message string   `json:"message"`
	Group   GroupDTO `json:"group"`
}

// ListGroupsRequest represents filter criteria for listing target groups
type ListGroupsRequest struct {
	UserID   uint `json:"-"`
	Page     int  `json:"page" validate:"omitempty,min=1"`
	PageSize int  `json:"page_size" validate:"omitempty,min=1,max=100"`
}

// ListGroupsResponse represents the paginated group listing
type ListGroupsResponse struct {
	Message    string        `json:"message"`
	Items      []GroupDTO    `json:"items"`
	Pagination PaginationDTO `json:"pagination"`
}
