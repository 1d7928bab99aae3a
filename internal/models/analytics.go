package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalyticsEventKind enumerates the recorded event types.
type AnalyticsEventKind string

const (
	EventView         AnalyticsEventKind = "VIEW"
	EventProductClick AnalyticsEventKind = "PRODUCT_CLICK"
	EventShare        AnalyticsEventKind = "SHARE"
	EventLike         AnalyticsEventKind = "LIKE"
)

// Valid reports whether k is a known event kind.
func (k AnalyticsEventKind) Valid() bool {
	switch k {
	case EventView, EventProductClick, EventShare, EventLike:
		return true
	}
	return false
}

// AnalyticsEventModel is an immutable append-only record tied to a post.
// Rows are never updated or deleted, so it does not embed Base.
type AnalyticsEventModel struct {
	ID          string             `json:"id"           gorm:"type:char(36);primaryKey"`
	WorkspaceID string             `json:"workspace_id" gorm:"index;not null"`
	PostID      string             `json:"post_id"      gorm:"index;not null"`
	ProductID   *string            `json:"product_id"   gorm:"index"`
	Kind        AnalyticsEventKind `json:"kind"         gorm:"type:varchar(16);index;not null"`
	IP          string             `json:"-"`
	Referer     string             `json:"referer"`
	CreatedAt   time.Time          `json:"created_at"   gorm:"index"`
}

func (e *AnalyticsEventModel) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

func (AnalyticsEventModel) TableName() string { return "analytics_events" }
