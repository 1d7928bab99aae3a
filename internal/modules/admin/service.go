package admin

import (
	"github.com/tagshop/core/internal/models"
	"github.com/tagshop/core/internal/pkg/apperr"
	"github.com/tagshop/core/internal/pkg/pagination"
	"github.com/tagshop/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Users lists every account on the platform, newest first.
func (s *Service) Users(search string, p pagination.Query) ([]models.UserModel, response.Pagination, error) {
	query := s.db.Model(&models.UserModel{})
	if search != "" {
		query = query.Where("email LIKE ? OR name LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	query = query.Order("created_at DESC")

	var users []models.UserModel
	pg, err := pagination.Paginate(query, p, &users)
	if err != nil {
		return nil, response.Pagination{}, apperr.Internal("failed to list users", err)
	}
	return users, pg, nil
}

// Workspaces lists every tenant, optionally including soft-deleted ones.
func (s *Service) Workspaces(includeDeleted bool, p pagination.Query) ([]models.WorkspaceModel, response.Pagination, error) {
	query := s.db.Model(&models.WorkspaceModel{})
	if includeDeleted {
		query = query.Unscoped()
	}
	query = query.Order("created_at DESC")

	var workspaces []models.WorkspaceModel
	pg, err := pagination.Paginate(query, p, &workspaces)
	if err != nil {
		return nil, response.Pagination{}, apperr.Internal("failed to list workspaces", err)
	}
	return workspaces, pg, nil
}
