package affiliatelink

import (
	"errors"

	"github.com/tagshop/core/internal/models"
	"github.com/tagshop/core/internal/modules/workspace"
	"github.com/tagshop/core/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service manages affiliate links and the product's active-link reference.
type Service struct {
	db    *gorm.DB
	authz workspace.Authorizer
}

func NewService(db *gorm.DB, authz workspace.Authorizer) *Service {
	return &Service{db: db, authz: authz}
}

// List returns the workspace's links, optionally filtered to one product.
func (s *Service) List(userID, workspaceID string, q *ListQuery) ([]models.AffiliateLinkModel, error) {
	if _, err := s.authz.Authorize(userID, workspaceID, models.RoleMember); err != nil {
		return nil, err
	}

	query := s.db.Where("workspace_id = ?", workspaceID)
	if q.ProductID != "" {
		query = query.Where("product_id = ?", q.ProductID)
	}
	var links []models.AffiliateLinkModel
	if err := query.Order("created_at DESC").Find(&links).Error; err != nil {
		return nil, apperr.Internal("failed to list affiliate links", err)
	}
	return links, nil
}

// Create stores a new link for a product in the workspace.
func (s *Service) Create(userID, workspaceID string, dto *CreateLinkDTO) (*models.AffiliateLinkModel, error) {
	if _, err := s.authz.Authorize(userID, workspaceID, models.RoleMember); err != nil {
		return nil, err
	}

	var productCount int64
	if err := s.db.Model(&models.ProductModel{}).
		Where("id = ? AND workspace_id = ?", dto.ProductID, workspaceID).
		Count(&productCount).Error; err != nil {
		return nil, apperr.Internal("failed to verify product", err)
	}
	if productCount == 0 {
		return nil, apperr.NotFound("product not found")
	}

	commissionType := dto.CommissionType
	if commissionType == "" {
		commissionType = models.CommissionPercent
	}
	if !commissionType.Valid() {
		return nil, apperr.ValidationFields("invalid input", map[string]string{"commissionType": "must be PERCENT or FLAT"})
	}

	var dup int64
	if err := s.db.Model(&models.AffiliateLinkModel{}).
		Where("product_id = ? AND affiliate_url = ?", dto.ProductID, dto.AffiliateURL).
		Count(&dup).Error; err != nil {
		return nil, apperr.Internal("failed to check affiliate url", err)
	}
	if dup > 0 {
		return nil, apperr.Conflict("affiliate url already registered for this product")
	}

	link := models.AffiliateLinkModel{
		WorkspaceID:    workspaceID,
		ProductID:      dto.ProductID,
		Name:           dto.Name,
		OriginalURL:    dto.OriginalURL,
		AffiliateURL:   dto.AffiliateURL,
		Platform:       dto.Platform,
		Commission:     dto.Commission,
		CommissionType: commissionType,
		Tags:           dto.Tags,
	}
	if err := s.db.Create(&link).Error; err != nil {
		return nil, apperr.Internal("failed to create affiliate link", err)
	}
	return &link, nil
}

// Update applies the provided fields.
func (s *Service) Update(userID, workspaceID, linkID string, dto *UpdateLinkDTO) (*models.AffiliateLinkModel, error) {
	if _, err := s.authz.Authorize(userID, workspaceID, models.RoleMember); err != nil {
		return nil, err
	}

	link, err := s.load(workspaceID, linkID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.OriginalURL != nil {
		updates["original_url"] = *dto.OriginalURL
	}
	if dto.AffiliateURL != nil && *dto.AffiliateURL != link.AffiliateURL {
		var dup int64
		if err := s.db.Model(&models.AffiliateLinkModel{}).
			Where("product_id = ? AND affiliate_url = ? AND id <> ?", link.ProductID, *dto.AffiliateURL, linkID).
			Count(&dup).Error; err != nil {
			return nil, apperr.Internal("failed to check affiliate url", err)
		}
		if dup > 0 {
			return nil, apperr.Conflict("affiliate url already registered for this product")
		}
		updates["affiliate_url"] = *dto.AffiliateURL
	}
	if dto.Platform != nil {
		updates["platform"] = *dto.Platform
	}
	if dto.Commission != nil {
		if *dto.Commission < 0 {
			return nil, apperr.ValidationFields("invalid input", map[string]string{"commission": "must not be negative"})
		}
		updates["commission"] = *dto.Commission
	}
	if dto.CommissionType != nil {
		if !dto.CommissionType.Valid() {
			return nil, apperr.ValidationFields("invalid input", map[string]string{"commissionType": "must be PERCENT or FLAT"})
		}
		updates["commission_type"] = *dto.CommissionType
	}
	if dto.Tags != nil {
		updates["tags"] = models.StringArray(dto.Tags)
	}

	if len(updates) > 0 {
		if err := s.db.Model(link).Updates(updates).Error; err != nil {
			return nil, apperr.Internal("failed to update affiliate link", err)
		}
	}
	return s.load(workspaceID, linkID)
}

// Delete removes the link. If it is the product's active link the reference
// is cleared in the same transaction.
func (s *Service) Delete(userID, workspaceID, linkID string) error {
	if _, err := s.authz.Authorize(userID, workspaceID, models.RoleMember); err != nil {
		return err
	}

	link, err := s.load(workspaceID, linkID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProductModel{}).
			Where("id = ? AND active_affiliate_link_id = ?", link.ProductID, linkID).
			Update("active_affiliate_link_id", nil).Error; err != nil {
			return apperr.Internal("failed to clear active link", err)
		}
		if err := tx.Where("workspace_id = ?", workspaceID).
			Delete(&models.AffiliateLinkModel{}, "id = ?", linkID).Error; err != nil {
			return apperr.Internal("failed to delete affiliate link", err)
		}
		return nil
	})
}

// SetActive marks the link as its product's active link. Ownership checks
// and the write happen in one guarded update so a concurrent reassignment
// cannot slip between them.
func (s *Service) SetActive(userID, workspaceID, linkID string) (*models.ProductModel, error) {
	if _, err := s.authz.Authorize(userID, workspaceID, models.RoleMember); err != nil {
		return nil, err
	}

	link, err := s.load(workspaceID, linkID)
	if err != nil {
		return nil, err
	}

	res := s.db.Model(&models.ProductModel{}).
		Where("id = ? AND workspace_id = ?", link.ProductID, workspaceID).
		Where("EXISTS (SELECT 1 FROM affiliate_links WHERE affiliate_links.id = ? AND affiliate_links.product_id = products.id AND affiliate_links.workspace_id = ?)", linkID, workspaceID).
		Update("active_affiliate_link_id", linkID)
	if res.Error != nil {
		return nil, apperr.Internal("failed to set active link", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("product not found")
	}

	return s.loadProduct(workspaceID, link.ProductID)
}

// ClearActive drops the product's active reference, but only when it still
// points at this link. Calling it twice is a no-op.
func (s *Service) ClearActive(userID, workspaceID, linkID string) (*models.ProductModel, error) {
	if _, err := s.authz.Authorize(userID, workspaceID, models.RoleMember); err != nil {
		return nil, err
	}

	link, err := s.load(workspaceID, linkID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.ProductModel{}).
		Where("id = ? AND workspace_id = ? AND active_affiliate_link_id = ?", link.ProductID, workspaceID, linkID).
		Update("active_affiliate_link_id", nil).Error; err != nil {
		return nil, apperr.Internal("failed to clear active link", err)
	}

	return s.loadProduct(workspaceID, link.ProductID)
}

func (s *Service) load(workspaceID, linkID string) (*models.AffiliateLinkModel, error) {
	var link models.AffiliateLinkModel
	err := s.db.Where("id = ? AND workspace_id = ?", linkID, workspaceID).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("affiliate link not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to query affiliate link", err)
	}
	return &link, nil
}

func (s *Service) loadProduct(workspaceID, productID string) (*models.ProductModel, error) {
	var prod models.ProductModel
	err := s.db.Preload("ActiveAffiliateLink").
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
