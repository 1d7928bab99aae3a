package affiliatelink

import "github.com/tagshop/core/internal/models"

type CreateLinkDTO struct {
	ProductID      string                `json:"productId" binding:"required"`
	Name           string                `json:"name" binding:"required,min=1,max=200"`
	OriginalURL    string                `json:"originalUrl" binding:"omitempty,url"`
	AffiliateURL   string                `json:"affiliateUrl" binding:"required,url"`
	Platform       string                `json:"platform"`
	Commission     float64               `json:"commission" binding:"min=0"`
	CommissionType models.CommissionType `json:"commissionType"`
	Tags           []string              `json:"tags"`
}

type UpdateLinkDTO struct {
	Name           *string                `json:"name"`
	OriginalURL    *string                `json:"originalUrl"`
	AffiliateURL   *string                `json:"affiliateUrl"`
	Platform       *string                `json:"platform"`
	Commission     *float64               `json:"commission"`
	CommissionType *models.CommissionType `json:"commissionType"`
	Tags           []string               `json:"tags"`
}

type ListQuery struct {
	ProductID string
}
