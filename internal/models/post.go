package models

import "time"

// PostModel is a published piece of content with an embedded video and tagged
// products. Slug is unique within the workspace, not globally. Posts are
// soft-deleted, never hard-deleted.
type PostModel struct {
	Base
	SoftDelete
	WorkspaceID   string     `json:"workspace_id"   gorm:"uniqueIndex:idx_posts_workspace_slug;index;not null"`
	Title         string     `json:"title"          gorm:"not null"`
	Content       string     `json:"content"        gorm:"type:longtext"`
	Slug          string     `json:"slug"           gorm:"uniqueIndex:idx_posts_workspace_slug;not null"`
	VideoURL      string     `json:"video_url"`
	VideoPlatform string     `json:"video_platform"`
	IsPublished   bool       `json:"is_published"   gorm:"default:false;index"`
	PublishedAt   *time.Time `json:"published_at"`

	Products []PostProductModel `json:"products,omitempty" gorm:"foreignKey:PostID"`
}

func (PostModel) TableName() string { return "posts" }

// PostProductModel associates a post with a tagged product. Timestamp is the
// optional second offset into the video for deep linking.
type PostProductModel struct {
	Base
	PostID    string `json:"post_id"    gorm:"uniqueIndex:idx_post_products_pair;index;not null"`
	ProductID string `json:"product_id" gorm:"uniqueIndex:idx_post_products_pair;index;not null"`
	Timestamp *int   `json:"timestamp"`
	Position  int    `json:"position"   gorm:"default:0"`

	Product *ProductModel `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (PostProductModel) TableName() string { return "post_products" }
