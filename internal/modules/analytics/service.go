package analytics

import (
	"github.com/tagshop/core/internal/models"
	"github.com/tagshop/core/internal/modules/workspace"
	"github.com/tagshop/core/internal/pkg/apperr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RecordEventDTO struct {
	Kind      models.AnalyticsEventKind `json:"kind" binding:"required"`
	ProductID *string                   `json:"productId"`
}

// PostStats aggregates a post's event counts by kind.
type PostStats struct {
	Views         int64 `json:"views"`
	ProductClicks int64 `json:"productClicks"`
	Shares        int64 `json:"shares"`
	Likes         int64 `json:"likes"`
}

// Service records immutable analytics events and aggregates them. Events are
// append-only; nothing here updates or deletes.
type Service struct {
	db     *gorm.DB
	authz  workspace.Authorizer
	logger *zap.Logger
}

func NewService(db *gorm.DB, authz workspace.Authorizer, logger *zap.Logger) *Service {
	return &Service{db: db, authz: authz, logger: logger}
}

// Record appends one event for a published post. Public: no session needed,
// the post itself gates visibility.
func (s *Service) Record(workspaceID, postID string, dto *RecordEventDTO, ip, referer string) error {
	if !dto.Kind.Valid() || dto.Kind == models.EventView {
		return apperr.Validation("kind must be PRODUCT_CLICK, SHARE or LIKE")
	}

	var alive int64
	if err := s.db.Model(&models.WorkspaceModel{}).
		Where("id = ?", workspaceID).
		Count(&alive).Error; err != nil {
		return apperr.Internal("failed to query workspace", err)
	}
	if alive == 0 {
		return apperr.NotFound("post not found")
	}

	var visible int64
	if err := s.db.Model(&models.PostModel{}).
		Where("id = ? AND workspace_id = ? AND is_published = ?", postID, workspaceID, true).
		Count(&visible).Error; err != nil {
		return apperr.Internal("failed to query post", err)
	}
	if visible == 0 {
		return apperr.NotFound("post not found")
	}

	if dto.Kind == models.EventProductClick {
		if dto.ProductID == nil || *dto.ProductID == "" {
			return apperr.ValidationFields("invalid input", map[string]string{"productId": "required for PRODUCT_CLICK"})
		}
		var tagged int64
		if err := s.db.Model(&models.PostProductModel{}).
			Where("post_id = ? AND product_id = ?", postID, *dto.ProductID).
			Count(&tagged).Error; err != nil {
			return apperr.Internal("failed to verify product tag", err)
		}
		if tagged == 0 {
			return apperr.NotFound("product is not tagged in this post")
		}
	}

	event := models.AnalyticsEventModel{
		WorkspaceID: workspaceID,
		PostID:      postID,
		ProductID:   dto.ProductID,
		Kind:        dto.Kind,
		IP:          ip,
		Referer:     referer,
	}
	if err := s.db.Create(&event).Error; err != nil {
		return apperr.Internal("failed to record event", err)
	}
	return nil
}

// RecordView appends a VIEW event in the background as a side effect of a
// public post read. Failures are logged, never surfaced to the reader.
func (s *Service) RecordView(workspaceID, postID, ip, referer string) {
	go func() {
		event := models.AnalyticsEventModel{
			WorkspaceID: workspaceID,
			PostID:      postID,
			Kind:        models.EventView,
			IP:          ip,
			Referer:     referer,
		}
		if err := s.db.Create(&event).Error; err != nil {
			s.logger.Warn("failed to record view event",
				zap.String("post_id", postID),
				zap.Error(err))
		}
	}()
}

// Stats returns real per-kind counts for a post.
func (s *Service) Stats(userID, workspaceID, postID string) (*PostStats, error) {
	if _, err := s.authz.Authorize(userID, workspaceID, models.RoleMember); err != nil {
		return nil, err
	}

	var exists int64
	if err := s.db.Model(&models.PostModel{}).
		Where("id = ? AND workspace_id = ?", postID, workspaceID).
		Count(&exists).Error; err != nil {
		return nil, apperr.Internal("failed to query post", err)
	}
	if exists == 0 {
		return nil, apperr.NotFound("post not found")
	}

	rows := []struct {
		Kind  models.AnalyticsEventKind
		Total int64
	}{}
	if err := s.db.Model(&models.AnalyticsEventModel{}).
		Select("kind, COUNT(*) AS total").
		Where("workspace_id = ? AND post_id = ?", workspaceID, postID).
		Group("kind").
		Scan(&rows).Error; err != nil {
		return nil, apperr.Internal("failed to aggregate events", err)
	}

	stats := PostStats{}
	for _, row := range rows {
		switch row.Kind {
		case models.EventView:
			stats.Views = row.Total
		case models.EventProductClick:
			stats.ProductClicks = row.Total
		case models.EventShare:
			stats.Shares = row.Total
		case models.EventLike:
			stats.Likes = row.Total
		}
	}
	return &stats, nil
}
