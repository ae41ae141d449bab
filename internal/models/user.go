package models

// User represents a registered user
// Token is the opaque per-user secret issued at registration and
// required together with the numeric ID to upload audio
type User struct {
	ID    int    `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Token string `json:"token" db:"token"`
}

// CreateUserRequest is the request body for user registration
type CreateUserRequest struct {
	Name string `json:"name"`
}

// CreateUserResponse is the response body for user registration
type CreateUserResponse struct {
	UserID int    `json:"userId"`
	Token  string `json:"token"`
}
