package product

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tagshop/core/internal/models"
	"github.com/tagshop/core/internal/modules/workspace"
	"github.com/tagshop/core/internal/pkg/apperr"
	"github.com/tagshop/core/internal/pkg/pagination"
	"github.com/tagshop/core/internal/pkg/response"
	"gorm.io/gorm"
)

const defaultCurrency = "USD"

// Service manages the workspace product catalog.
type Service struct {
	db    *gorm.DB
	authz workspace.Authorizer
}

func NewService(db *gorm.DB, authz workspace.Authorizer) *Service {
	return &Service{db: db, authz: authz}
}

// List returns the workspace's products, optionally filtered by category or
// a name search.
func (s *Service) List(userID, workspaceID string, q *ListQuery, p pagination.Query) ([]models.ProductModel, response.Pagination, error) {
	if _, err := s.authz.Authorize(userID, workspaceID, models.RoleMember); err != nil {
		return nil, response.Pagination{}, err
	}

	query := s.db.Model(&models.ProductModel{}).Where("workspace_id = ?", workspaceID)
	if q.CategoryID != "" {
		query = query.Where("category_id = ?", q.CategoryID)
	}
	if q.Search != "" {
		query = query.Where("name LIKE ?", "%"+q.Search+"%")
	}
	query = query.Preload("Category").Preload("ActiveAffiliateLink").Order("created_at DESC")

	var products []models.ProductModel
	pg, err := pagination.Paginate(query, p, &products)
	if err != nil {
		return nil, response.Pagination{}, apperr.Internal("failed to list products", err)
	}
	return products, pg, nil
}

// Create stores a new product.
func (s *Service) Create(userID, workspaceID string, dto *CreateProductDTO) (*models.ProductModel, error) {
	if _, err := s.authz.Authorize(userID, workspaceID, models.RoleMember); err != nil {
		return nil, err
	}

	currency := strings.ToUpper(dto.Currency)
	if currency == "" {
		currency = defaultCurrency
	}
	if len(currency) != 3 {
		return nil, apperr.ValidationFields("invalid input", map[string]string{"currency": "must be a 3-letter code"})
	}

	categoryID, err := s.resolveCategory(workspaceID, dto.CategoryID)
	if err != nil {
		return nil, err
	}

	prod := models.ProductModel{
		WorkspaceID: workspaceID,
		CategoryID:  categoryID,
		Name:        dto.Name,
		Description: dto.Description,
		ImageURL:    dto.ImageURL,
		Price:       dto.Price,
		Currency:    currency,
	}
	if err := s.db.Create(&prod).Error; err != nil {
		return nil, apperr.Internal("failed to create product", err)
	}
	return s.load(workspaceID, prod.ID)
}

// Get fetches one product with its category and links.
func (s *Service) Get(userID, workspaceID, productID string) (*models.ProductModel, error) {
	if _, err := s.authz.Authorize(userID, workspaceID, models.RoleMember); err != nil {
		return nil, err
	}
	return s.load(workspaceID, productID)
}

// Update applies the provided fields.
func (s *Service) Update(userID, workspaceID, productID string, dto *UpdateProductDTO) (*models.ProductModel, error) {
	if _, err := s.authz.Authorize(userID, workspaceID, models.RoleMember); err != nil {
		return nil, err
	}

	if _, err := s.load(workspaceID, productID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.ImageURL != nil {
		updates["image_url"] = *dto.ImageURL
	}
	if dto.Price != nil {
		if *dto.Price < 0 {
			return nil, apperr.ValidationFields("invalid input", map[string]string{"price": "must not be negative"})
		}
		updates["price"] = *dto.Price
	}
	if dto.Currency != nil {
		currency := strings.ToUpper(*dto.Currency)
		if len(currency) != 3 {
			return nil, apperr.ValidationFields("invalid input", map[string]string{"currency": "must be a 3-letter code"})
		}
		updates["currency"] = currency
	}
	if dto.CategoryID != nil {
		if *dto.CategoryID == "" {
			updates["category_id"] = nil
		} else {
			categoryID, err := s.resolveCategory(workspaceID, dto.CategoryID)
			if err != nil {
				return nil, err
			}
			updates["category_id"] = categoryID
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.ProductModel{}).
			Where("id = ? AND workspace_id = ?", productID, workspaceID).
			Updates(updates).Error; err != nil {
			return nil, apperr.Internal("failed to update product", err)
		}
	}
	return s.load(workspaceID, productID)
}

// Delete removes a product for good. Refused while any post still tags it.
// The product's affiliate links go with it.
func (s *Service) Delete(userID, workspaceID, productID string) error {
	if _, err := s.authz.Authorize(userID, workspaceID, models.RoleMember); err != nil {
		return err
	}

	if _, err := s.load(workspaceID, productID); err != nil {
		return err
	}

	var referencing int64
	if err := s.db.Model(&models.PostProductModel{}).
		Where("product_id = ?", productID).
		Count(&referencing).Error; err != nil {
		return apperr.Internal("failed to count post tags", err)
	}
	if referencing > 0 {
		return apperr.Conflict(fmt.Sprintf("product is still tagged in %d post(s)", referencing))
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ? AND workspace_id = ?", productID, workspaceID).
			Delete(&models.AffiliateLinkModel{}).Error; err != nil {
			return apperr.Internal("failed to delete affiliate links", err)
		}
		if err := tx.Where("workspace_id = ?", workspaceID).
			Delete(&models.ProductModel{}, "id = ?", productID).Error; err != nil {
			return apperr.Internal("failed to delete product", err)
		}
		return nil
	})
}

func (s *Service) load(workspaceID, productID string) (*models.ProductModel, error) {
	var prod models.ProductModel
	err := s.db.Preload("Category").Preload("ActiveAffiliateLink").Preload("AffiliateLinks").
		Where("id = ? AND workspace_id = ?", productID, workspaceID).
		First(&prod).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("product not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to query product", err)
	}
	return &prod, nil
}

// resolveCategory verifies a category id (when present) belongs to the
// workspace.
func (s *Service) resolveCategory(workspaceID string, categoryID *string) (*string, error) {
	if categoryID == nil || *categoryID == "" {
		return nil, nil
	}
	var count int64
	if err := s.db.Model(&models.CategoryModel{}).
		Where("id = ? AND workspace_id = ?", *categoryID, workspaceID).
		Count(&count).Error; err != nil {
		return nil, apperr.Internal("failed to verify category", err)
	}
	if count == 0 {
		return nil, apperr.NotFound("category not found")
	}
	return categoryID, nil
}
