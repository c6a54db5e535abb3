package handler

import "github.com/freshcodes/identity-gateway/internal/core/domain"

type createUserRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Username    string   `json:"username,omitempty"`
	DisplayName string   `json:"display_name,omitempty"`
	Role        string   `json:"role,omitempty" validate:"omitempty,oneof=user admin moderator viewer"`
	Agents      []string `json:"agents,omitempty"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin moderator viewer"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}
