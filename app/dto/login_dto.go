package dto

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// AuthUserDTO represents user information in authentication responses
type AuthUserDTO struct {
	ID        uint   `json:"id"`
	UUID      string `json:"uuid"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	IsActive  *bool  `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// TokenDTO represents issued tokens in authentication responses
type TokenDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// LoginResponse represents the login response payload
type LoginResponse struct {
	Message string      `json:"message"`
	User    AuthUserDTO `json:"user"`
	Tokens  TokenDTO    `json:"tokens"`
}

// RefreshTokenRequest represents the token refresh request payload
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
