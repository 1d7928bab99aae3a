package workspace

import (
	"errors"

	"github.com/tagshop/core/internal/models"
	"github.com/tagshop/core/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Authorizer is the access check every workspace-scoped operation runs before
// touching a resource. Implemented by Service; consumers accept the interface.
type Authorizer interface {
	Authorize(userID, workspaceID string, required models.WorkspaceRole) (*models.MembershipModel, error)
}

// Authorize looks up the caller's membership in the workspace and compares
// its role rank against the required one. Absence of a membership and
// absence of the workspace are both reported as not-found, so callers cannot
// probe for other tenants' workspaces. Denial is deterministic and never
// retried.
func (s *Service) Authorize(userID, workspaceID string, required models.WorkspaceRole) (*models.MembershipModel, error) {
	if userID == "" {
		return nil, apperr.Unauthorized("authentication required")
	}

	var membership models.MembershipModel
	err := s.db.Where("user_id = ? AND workspace_id = ?", userID, workspaceID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("workspace not found")
		}
		return nil, apperr.Internal("database error", err)
	}

	// A membership can outlive a soft-deleted workspace.
	var alive int64
	if err := s.db.Model(&models.WorkspaceModel{}).Where("id = ?", workspaceID).Count(&alive).Error; err != nil {
		return nil, apperr.Internal("database error", err)
	}
	if alive == 0 {
		return nil, apperr.NotFound("workspace not found")
	}

	if !membership.Role.AtLeast(required) {
		return nil, apperr.Forbidden("insufficient role")
	}
	return &membership, nil
}
