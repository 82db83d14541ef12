package dto

// SignupRequest represents the payload for user registration
type SignupRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// LoginRequest represents the payload for login. Credential is an email
// or a username.
type LoginRequest struct {
	Credential string `json:"credential"`
	Password   string `json:"password"`
}

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// PublicUserResponse is the reduced user shape exposed to other users
type PublicUserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// SessionResponse wraps the current user; User is null for anonymous callers
type SessionResponse struct {
	User *UserResponse `json:"user"`
}

// CSRFRestoreResponse carries the anti-forgery token that must be echoed
// in the XSRF-Token header on state-changing requests
type CSRFRestoreResponse struct {
	CSRFToken string `json:"csrf_token"`
}
