package category

import (
	"errors"
	"fmt"

	"github.com/tagshop/core/internal/models"
	"github.com/tagshop/core/internal/modules/workspace"
	"github.com/tagshop/core/internal/pkg/apperr"
	"gorm.io/gorm"
)

type CreateCategoryDTO struct {
	Name        string `json:"name" binding:"required,min=1,max=120"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type UpdateCategoryDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// Service manages product categories. Categories are hard-deleted, never
// while products still reference them.
type Service struct {
	db    *gorm.DB
	authz workspace.Authorizer
}

func NewService(db *gorm.DB, authz workspace.Authorizer) *Service {
	return &Service{db: db, authz: authz}
}

// List returns the workspace's categories sorted by name.
func (s *Service) List(userID, workspaceID string) ([]models.CategoryModel, error) {
	if _, err := s.authz.Authorize(userID, workspaceID, models.RoleMember); err != nil {
		return nil, err
	}
	var categories []models.CategoryModel
	if err := s.db.Where("workspace_id = ?", workspaceID).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperr.Internal("failed to list categories", err)
	}
	return categories, nil
}

// Create stores a new category. Names are unique per workspace.
func (s *Service) Create(userID, workspaceID string, dto *CreateCategoryDTO) (*models.CategoryModel, error) {
	if _, err := s.authz.Authorize(userID, workspaceID, models.RoleMember); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.CategoryModel{}).
		Where("workspace_id = ? AND name = ?", workspaceID, dto.Name).
		Count(&count).Error; err != nil {
		return nil, apperr.Internal("failed to check category name", err)
	}
	if count > 0 {
		return nil, apperr.Conflict("category name already in use")
	}

	cat := models.CategoryModel{
		WorkspaceID: workspaceID,
		Name:        dto.Name,
		Description: dto.Description,
		Color:       dto.Color,
	}
	if err := s.db.Create(&cat).Error; err != nil {
		return nil, apperr.Internal("failed to create category", err)
	}
	return &cat, nil
}

// Update renames or restyles a category.
func (s *Service) Update(userID, workspaceID, categoryID string, dto *UpdateCategoryDTO) (*models.CategoryModel, error) {
	if _, err := s.authz.Authorize(userID, workspaceID, models.RoleMember); err != nil {
		return nil, err
	}

	cat, err := s.load(workspaceID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil && *dto.Name != cat.Name {
		var count int64
		if err := s.db.Model(&models.CategoryModel{}).
			Where("workspace_id = ? AND name = ? AND id <> ?", workspaceID, *dto.Name, categoryID).
			Count(&count).Error; err != nil {
			return nil, apperr.Internal("failed to check category name", err)
		}
		if count > 0 {
			return nil, apperr.Conflict("category name already in use")
		}
		updates["name"] = *dto.Name
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Color != nil {
		updates["color"] = *dto.Color
	}

	if len(updates) > 0 {
		if err := s.db.Model(cat).Updates(updates).Error; err != nil {
			return nil, apperr.Internal("failed to update category", err)
		}
	}
	return s.load(workspaceID, categoryID)
}

// Delete removes a category for good. Refused while any product still
// references it.
func (s *Service) Delete(userID, workspaceID, categoryID string) error {
	if _, err := s.authz.Authorize(userID, workspaceID, models.RoleMember); err != nil {
		return err
	}

	if _, err := s.load(workspaceID, categoryID); err != nil {
		return err
	}

	var referencing int64
	if err := s.db.Model(&models.ProductModel{}).
		Where("workspace_id = ? AND category_id = ?", workspaceID, categoryID).
		Count(&referencing).Error; err != nil {
		return apperr.Internal("failed to count products", err)
	}
	if referencing > 0 {
		return apperr.Conflict(fmt.Sprintf("category is still used by %d product(s)", referencing))
	}

	if err := s.db.Where("workspace_id = ?", workspaceID).
		Delete(&models.CategoryModel{}, "id = ?", categoryID).Error; err != nil {
		return apperr.Internal("failed to delete category", err)
	}
	return nil
}

func (s *Service) load(workspaceID, categoryID string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	err := s.db.Where("id = ? AND workspace_id = ?", categoryID, workspaceID).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("category not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to query category", err)
	}
	return &cat, nil
}
