package dashboard

import (
	"sort"

	"github.com/tagshop/core/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Resolution is the outcome of routing a user who asked for "my dashboard"
// without naming a workspace.
type Resolution struct {
	// Onboarding means the user has no workspace yet.
	Onboarding bool

	// Workspace is the routing target when Onboarding is false.
	Workspace *models.WorkspaceModel

	// FailedOpen means the membership lookup failed and the caller should
	// proceed to its requested destination unrouted.
	FailedOpen bool
}

// Service picks the workspace an authenticated user lands in.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Resolve routes the user: last-visited workspace if still a member, else
// the most recently updated one, else onboarding. A store failure never
// blocks navigation; the resolver fails open.
func (s *Service) Resolve(userID, lastWorkspaceID string) Resolution {
	var memberships []models.MembershipModel
	err := s.db.Preload("Workspace").Where("user_id = ?", userID).Find(&memberships).Error
	if err != nil {
		s.logger.Warn("dashboard resolution failed open",
			zap.String("user_id", userID),
			zap.Error(err))
		return Resolution{FailedOpen: true}
	}

	workspaces := make([]*models.WorkspaceModel, 0, len(memberships))
	for _, m := range memberships {
		// Preload leaves Workspace nil when the row is soft-deleted.
		if m.Workspace != nil {
			workspaces = append(workspaces, m.Workspace)
		}
	}
	if len(workspaces) == 0 {
		return Resolution{Onboarding: true}
	}

	if lastWorkspaceID != "" {
		for _, ws := range workspaces {
			if ws.ID == lastWorkspaceID {
				return Resolution{Workspace: ws}
			}
		}
	}

	sort.Slice(workspaces, func(i, j int) bool {
		return workspaces[i].UpdatedAt.After(workspaces[j].UpdatedAt)
	})
	return Resolution{Workspace: workspaces[0]}
}
