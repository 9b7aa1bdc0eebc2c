package schemas

import "time"

type CreateUserRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Avatar   *string `json:"avatar,omitempty"`
}

type UpdateUserRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Avatar   *string `json:"avatar,omitempty"`
}

type VerifyPasswordRequest struct {
	Password string `json:"password"`
}

type UserResponse struct {
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	Avatar    *string   `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateUserResponse struct {
	Message  string `json:"message"`
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

type VerifyPasswordResponse struct {
	Message  string `json:"message"`
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
