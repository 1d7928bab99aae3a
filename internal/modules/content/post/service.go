package post

import (
	"errors"
	"time"

	"github.com/tagshop/core/internal/models"
	"github.com/tagshop/core/internal/modules/workspace"
	"github.com/tagshop/core/internal/pkg/apperr"
	"github.com/tagshop/core/internal/pkg/pagination"
	"github.com/tagshop/core/internal/pkg/response"
	"github.com/tagshop/core/internal/pkg/slugify"
	"gorm.io/gorm"
)

// Service manages posts and their product tags within a workspace.
type Service struct {
	db    *gorm.DB
	authz workspace.Authorizer
}

func NewService(db *gorm.DB, authz workspace.Authorizer) *Service {
	return &Service{db: db, authz: authz}
}

// List returns the workspace's posts, newest first.
// include_deleted requires workspace ADMIN.
func (s *Service) List(userID, workspaceID string, q *ListQuery, p pagination.Query) ([]models.PostModel, response.Pagination, error) {
	required := models.RoleMember
	if q.IncludeDeleted {
		required = models.RoleAdmin
	}
	if _, err := s.authz.Authorize(userID, workspaceID, required); err != nil {
		return nil, response.Pagination{}, err
	}

	query := s.db.Model(&models.PostModel{})
	if q.IncludeDeleted {
		query = query.Unscoped()
	}
	query = query.Where("workspace_id = ?", workspaceID)
	if q.Published != nil {
		query = query.Where("is_published = ?", *q.Published)
	}
	query = query.Preload("Products").Order("created_at DESC")

	var posts []models.PostModel
	pg, err := pagination.Paginate(query, p, &posts)
	if err != nil {
		return nil, response.Pagination{}, apperr.Internal("failed to list posts", err)
	}
	return posts, pg, nil
}

// Create stores a new post. Slug collisions within the workspace get a
// random suffix instead of failing.
func (s *Service) Create(userID, workspaceID string, dto *CreatePostDTO) (*models.PostModel, error) {
	if _, err := s.authz.Authorize(userID, workspaceID, models.RoleMember); err != nil {
		return nil, err
	}

	desired := dto.Slug
	if desired == "" {
		desired = dto.Title
	}
	desired = slugify.Make(desired)
	if desired == "" {
		return nil, apperr.Validation("slug cannot be empty")
	}

	p := models.PostModel{
		WorkspaceID:   workspaceID,
		Title:         dto.Title,
		Content:       dto.Content,
		VideoURL:      dto.VideoURL,
		VideoPlatform: dto.VideoPlatform,
		IsPublished:   dto.IsPublished,
	}
	if dto.IsPublished {
		now := time.Now()
		p.PublishedAt = &now
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		slug, err := s.resolvePostSlug(tx, workspaceID, desired, "")
		if err != nil {
			return err
		}
		p.Slug = slug
		if err := tx.Create(&p).Error; err != nil {
			return apperr.Internal("failed to create post", err)
		}
		if len(dto.Products) > 0 {
			return s.replaceProducts(tx, workspaceID, p.ID, dto.Products)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.load(workspaceID, p.ID)
}

// Get fetches one post with its product tags.
func (s *Service) Get(userID, workspaceID, postID string) (*models.PostModel, error) {
	if _, err := s.authz.Authorize(userID, workspaceID, models.RoleMember); err != nil {
		return nil, err
	}
	return s.load(workspaceID, postID)
}

// GetPublished fetches a published post without authentication. Used by the
// public render surface.
func (s *Service) GetPublished(workspaceID, postID string) (*models.PostModel, error) {
	var alive int64
	if err := s.db.Model(&models.WorkspaceModel{}).Where("id = ?", workspaceID).Count(&alive).Error; err != nil {
		return nil, apperr.Internal("failed to query workspace", err)
	}
	if alive == 0 {
		return nil, apperr.NotFound("post not found")
	}

	var p models.PostModel
	err := s.db.Preload("Products").
		Where("id = ? AND workspace_id = ? AND is_published = ?", postID, workspaceID, true).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("post not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to query post", err)
	}
	return &p, nil
}

// Update applies the provided fields. A nil Products field leaves the tag set
// untouched; a non-nil one replaces it wholesale inside the same transaction.
func (s *Service) Update(userID, workspaceID, postID string, dto *UpdatePostDTO) (*models.PostModel, error) {
	if _, err := s.authz.Authorize(userID, workspaceID, models.RoleMember); err != nil {
		return nil, err
	}

	existing, err := s.load(workspaceID, postID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.VideoURL != nil {
		updates["video_url"] = *dto.VideoURL
	}
	if dto.VideoPlatform != nil {
		updates["video_platform"] = *dto.VideoPlatform
	}
	if dto.IsPublished != nil {
		updates["is_published"] = *dto.IsPublished
		if *dto.IsPublished && existing.PublishedAt == nil {
			updates["published_at"] = time.Now()
		}
	}

	var desiredSlug string
	switch {
	case dto.Slug != nil && *dto.Slug != "":
		desiredSlug = slugify.Make(*dto.Slug)
	case dto.Title != nil && dto.Slug == nil:
		desiredSlug = slugify.Make(*dto.Title)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if desiredSlug != "" && desiredSlug != existing.Slug {
			slug, err := s.resolvePostSlug(tx, workspaceID, desiredSlug, postID)
			if err != nil {
				return err
			}
			updates["slug"] = slug
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.PostModel{}).
				Where("id = ? AND workspace_id = ?", postID, workspaceID).
				Updates(updates).Error; err != nil {
				return apperr.Internal("failed to update post", err)
			}
		}
		if dto.Products != nil {
			return s.replaceProducts(tx, workspaceID, postID, dto.Products)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.load(workspaceID, postID)
}

// Delete soft-deletes the post. Its product tags stay in place so a restore
// keeps them.
func (s *Service) Delete(userID, workspaceID, postID string) error {
	if _, err := s.authz.Authorize(userID, workspaceID, models.RoleMember); err != nil {
		return err
	}
	res := s.db.Where("workspace_id = ?", workspaceID).Delete(&models.PostModel{}, "id = ?", postID)
	if res.Error != nil {
		return apperr.Internal("failed to delete post", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("post not found")
	}
	return nil
}

func (s *Service) load(workspaceID, postID string) (*models.PostModel, error) {
	var p models.PostModel
	err := s.db.Preload("Products").
		Where("id = ? AND workspace_id = ?", postID, workspaceID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("post not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to query post", err)
	}
	return &p, nil
}

// replaceProducts swaps the post's whole tag set. Every referenced product
// must belong to the same workspace or the transaction aborts untouched.
func (s *Service) replaceProducts(tx *gorm.DB, workspaceID, postID string, tags []ProductTagInput) error {
	ids := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if seen[t.ProductID] {
			return apperr.Validation("duplicate product in tag set")
		}
		seen[t.ProductID] = true
		ids = append(ids, t.ProductID)
	}

	if len(ids) > 0 {
		var count int64
		if err := tx.Model(&models.ProductModel{}).
			Where("id IN ? AND workspace_id = ?", ids, workspaceID).
			Count(&count).Error; err != nil {
			return apperr.Internal("failed to verify products", err)
		}
		if count != int64(len(ids)) {
			return apperr.Validation("one or more products do not belong to this workspace")
		}
	}

	if err := tx.Where("post_id = ?", postID).Delete(&models.PostProductModel{}).Error; err != nil {
		return apperr.Internal("failed to clear product tags", err)
	}
	for _, t := range tags {
		pp := models.PostProductModel{
			PostID:    postID,
			ProductID: t.ProductID,
			Timestamp: t.Timestamp,
			Position:  t.Position,
		}
		if err := tx.Create(&pp).Error; err != nil {
			return apperr.Internal("failed to attach product", err)
		}
	}
	return nil
}

// resolvePostSlug appends a random suffix when the desired slug is already
// taken inside the workspace. Soft-deleted posts still hold their slug.
func (s *Service) resolvePostSlug(tx *gorm.DB, workspaceID, desired, excludeID string) (string, error) {
	query := tx.Unscoped().Model(&models.PostModel{}).
		Where("workspace_id = ? AND slug = ?", workspaceID, desired)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return "", apperr.Internal("failed to check slug", err)
	}
	if count == 0 {
		return desired, nil
	}
	return slugify.WithSuffix(desired), nil
}
