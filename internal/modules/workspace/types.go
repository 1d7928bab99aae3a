package workspace

import "github.com/tagshop/core/internal/models"

type CreateWorkspaceDTO struct {
	Name        string `json:"name" binding:"required,min=1,max=120"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Domain      string `json:"domain"`
	Theme       string `json:"theme"`
}

type UpdateWorkspaceDTO struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Domain      *string `json:"domain"`
	Theme       *string `json:"theme"`
	IsActive    *bool   `json:"is_active"`
}

type AddMemberDTO struct {
	Email string               `json:"email" binding:"required,email"`
	Role  models.WorkspaceRole `json:"role"  binding:"required"`
}

type UpdateMemberDTO struct {
	Role models.WorkspaceRole `json:"role" binding:"required"`
}

// WorkspaceWithRole is a workspace annotated with the caller's role in it.
type WorkspaceWithRole struct {
	models.WorkspaceModel
	Role models.WorkspaceRole `json:"role"`
}
