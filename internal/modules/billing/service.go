package billing

import (
	"errors"
	"time"

	"github.com/tagshop/core/internal/models"
	"github.com/tagshop/core/internal/pkg/apperr"
	"gorm.io/gorm"
)

// WebhookDTO is the provider callback payload. The provider is the source
// of truth; we mirror whatever it reports.
type WebhookDTO struct {
	UserID                 string                    `json:"userId" binding:"required"`
	Plan                   models.SubscriptionPlan   `json:"plan" binding:"required"`
	Status                 models.SubscriptionStatus `json:"status" binding:"required"`
	CurrentPeriodStart     *time.Time                `json:"currentPeriodStart"`
	CurrentPeriodEnd       *time.Time                `json:"currentPeriodEnd"`
	CancelAtPeriodEnd      bool                      `json:"cancelAtPeriodEnd"`
	ProviderCustomerID     string                    `json:"providerCustomerId"`
	ProviderSubscriptionID string                    `json:"providerSubscriptionId"`
}

// Service exposes the caller's subscription state. Billing itself happens at
// the external provider; this only mirrors its webhooks.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Current returns the user's subscription. Users without a stored row are on
// the free plan; a synthetic record is returned rather than an error.
func (s *Service) Current(userID string) (*models.SubscriptionModel, error) {
	var sub models.SubscriptionModel
	err := s.db.Where("user_id = ?", userID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.SubscriptionModel{
			UserID: userID,
			Plan:   models.PlanFree,
			Status: models.SubscriptionActive,
		}, nil
	}
	if err != nil {
		return nil, apperr.Internal("failed to query subscription", err)
	}
	return &sub, nil
}

// ApplyWebhook upserts the subscription the provider reports.
func (s *Service) ApplyWebhook(dto *WebhookDTO) (*models.SubscriptionModel, error) {
	if !dto.Plan.Valid() {
		return nil, apperr.ValidationFields("invalid input", map[string]string{"plan": "unknown plan"})
	}
	if !dto.Status.Valid() {
		return nil, apperr.ValidationFields("invalid input", map[string]string{"status": "unknown status"})
	}

	var userCount int64
	if err := s.db.Model(&models.UserModel{}).Where("id = ?", dto.UserID).Count(&userCount).Error; err != nil {
		return nil, apperr.Internal("failed to verify user", err)
	}
	if userCount == 0 {
		return nil, apperr.NotFound("user not found")
	}

	var sub models.SubscriptionModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", dto.UserID).First(&sub).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Internal("failed to query subscription", err)
		}

		sub.UserID = dto.UserID
		sub.Plan = dto.Plan
		sub.Status = dto.Status
		sub.CurrentPeriodStart = dto.CurrentPeriodStart
		sub.CurrentPeriodEnd = dto.CurrentPeriodEnd
		sub.CancelAtPeriodEnd = dto.CancelAtPeriodEnd
		sub.ProviderCustomerID = dto.ProviderCustomerID
		sub.ProviderSubscriptionID = dto.ProviderSubscriptionID

		if err := tx.Save(&sub).Error; err != nil {
			return apperr.Internal("failed to store subscription", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
