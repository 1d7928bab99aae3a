package auth

import "github.com/tagshop/core/internal/models"

type RegisterDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"required,min=1,max=120"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SessionPayload is what register and login hand back to the client.
type SessionPayload struct {
	Token string            `json:"token"`
	User  *models.UserModel `json:"user"`
}
