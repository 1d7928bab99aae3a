package workspace

import (
	"errors"
	"sort"

	"github.com/tagshop/core/internal/models"
	"github.com/tagshop/core/internal/pkg/apperr"
	"github.com/tagshop/core/internal/pkg/slugify"
	"gorm.io/gorm"
)

// Service is the tenant directory: workspaces and their memberships.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListForUser returns every live workspace the user belongs to, most recently
// updated first, annotated with the caller's role.
func (s *Service) ListForUser(userID string) ([]WorkspaceWithRole, error) {
	var memberships []models.MembershipModel
	err := s.db.Preload("Workspace").
		Where("user_id = ?", userID).
		Find(&memberships).Error
	if err != nil {
		return nil, apperr.Internal("database error", err)
	}

	out := make([]WorkspaceWithRole, 0, len(memberships))
	for _, m := range memberships {
		if m.Workspace == nil {
			continue // workspace soft-deleted; Preload uses the default scope
		}
		out = append(out, WorkspaceWithRole{WorkspaceModel: *m.Workspace, Role: m.Role})
	}
	sortByUpdatedDesc(out)
	return out, nil
}

// Create makes a new workspace with the caller as OWNER. Slug collisions are
// never rejected; a random suffix disambiguates.
func (s *Service) Create(userID string, dto *CreateWorkspaceDTO) (*models.WorkspaceModel, error) {
	desired := dto.Slug
	if desired == "" {
		desired = slugify.Make(dto.Name)
	} else {
		desired = slugify.Make(desired)
	}
	if desired == "" {
		return nil, apperr.Validation("name must contain at least one alphanumeric character")
	}

	ws := models.WorkspaceModel{
		Name:        dto.Name,
		Description: dto.Description,
		Domain:      dto.Domain,
		Theme:       dto.Theme,
		IsActive:    true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		slug, err := resolveWorkspaceSlug(tx, desired, "")
		if err != nil {
			return err
		}
		ws.Slug = slug
		if err := tx.Create(&ws).Error; err != nil {
			return apperr.Internal("database error", err)
		}
		membership := models.MembershipModel{
			UserID:      userID,
			WorkspaceID: ws.ID,
			Role:        models.RoleOwner,
		}
		if err := tx.Create(&membership).Error; err != nil {
			return apperr.Internal("database error", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

// Get returns the workspace if the caller is at least a MEMBER of it.
func (s *Service) Get(userID, workspaceID string) (*WorkspaceWithRole, error) {
	membership, err := s.Authorize(userID, workspaceID, models.RoleMember)
	if err != nil {
		return nil, err
	}
	var ws models.WorkspaceModel
	if err := s.db.First(&ws, "id = ?", workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("workspace not found")
		}
		return nil, apperr.Internal("database error", err)
	}
	return &WorkspaceWithRole{WorkspaceModel: ws, Role: membership.Role}, nil
}

// GetBySlug resolves a slug to a workspace, scoped to the caller's membership.
func (s *Service) GetBySlug(userID, slug string) (*WorkspaceWithRole, error) {
	var ws models.WorkspaceModel
	if err := s.db.First(&ws, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("workspace not found")
		}
		return nil, apperr.Internal("database error", err)
	}
	membership, err := s.Authorize(userID, ws.ID, models.RoleMember)
	if err != nil {
		return nil, err
	}
	return &WorkspaceWithRole{WorkspaceModel: ws, Role: membership.Role}, nil
}

// Update patches workspace attributes. Requires ADMIN. Renaming without an
// explicit slug regenerates the slug and re-runs collision resolution.
func (s *Service) Update(userID, workspaceID string, dto *UpdateWorkspaceDTO) (*models.WorkspaceModel, error) {
	if _, err := s.Authorize(userID, workspaceID, models.RoleAdmin); err != nil {
		return nil, err
	}

	var ws models.WorkspaceModel
	if err := s.db.First(&ws, "id = ?", workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("workspace not found")
		}
		return nil, apperr.Internal("database error", err)
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Domain != nil {
		updates["domain"] = *dto.Domain
	}
	if dto.Theme != nil {
		updates["theme"] = *dto.Theme
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}

	if dto.Slug != nil && slugify.Make(*dto.Slug) == "" {
		return nil, apperr.Validation("slug must contain at least one alphanumeric character")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		switch {
		case dto.Slug != nil && slugify.Make(*dto.Slug) != ws.Slug:
			slug, err := resolveWorkspaceSlug(tx, slugify.Make(*dto.Slug), ws.ID)
			if err != nil {
				return err
			}
			updates["slug"] = slug
		case dto.Name != nil && dto.Slug == nil:
			desired := slugify.Make(*dto.Name)
			if desired != "" && desired != ws.Slug {
				slug, err := resolveWorkspaceSlug(tx, desired, ws.ID)
				if err != nil {
					return err
				}
				updates["slug"] = slug
			}
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&ws).Updates(updates).Error; err != nil {
			return apperr.Internal("database error", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

// Delete soft-deletes the workspace. OWNER only.
func (s *Service) Delete(userID, workspaceID string) error {
	if _, err := s.Authorize(userID, workspaceID, models.RoleOwner); err != nil {
		return err
	}
	if err := s.db.Delete(&models.WorkspaceModel{}, "id = ?", workspaceID).Error; err != nil {
		return apperr.Internal("database error", err)
	}
	return nil
}

// Members lists the workspace's memberships with user details.
func (s *Service) Members(userID, workspaceID string) ([]models.MembershipModel, error) {
	if _, err := s.Authorize(userID, workspaceID, models.RoleMember); err != nil {
		return nil, err
	}
	var memberships []models.MembershipModel
	err := s.db.Preload("User").
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&memberships).Error
	if err != nil {
		return nil, apperr.Internal("database error", err)
	}
	return memberships, nil
}

// AddMember grants an existing user a role in the workspace. OWNER only.
func (s *Service) AddMember(userID, workspaceID string, dto *AddMemberDTO) (*models.MembershipModel, error) {
	if _, err := s.Authorize(userID, workspaceID, models.RoleOwner); err != nil {
		return nil, err
	}
	if !dto.Role.Valid() {
		return nil, apperr.Validation("unknown role")
	}

	var user models.UserModel
	if err := s.db.First(&user, "email = ?", dto.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("database error", err)
	}

	var count int64
	err := s.db.Model(&models.MembershipModel{}).
		Where("user_id = ? AND workspace_id = ?", user.ID, workspaceID).
		Count(&count).Error
	if err != nil {
		return nil, apperr.Internal("database error", err)
	}
	if count > 0 {
		return nil, apperr.Conflict("user is already a member")
	}

	membership := models.MembershipModel{
		UserID:      user.ID,
		WorkspaceID: workspaceID,
		Role:        dto.Role,
	}
	if err := s.db.Create(&membership).Error; err != nil {
		return nil, apperr.Internal("database error", err)
	}
	membership.User = &user
	return &membership, nil
}

// UpdateMemberRole changes a member's role. OWNER only; the workspace must
// keep at least one OWNER.
func (s *Service) UpdateMemberRole(userID, workspaceID, memberUserID string, dto *UpdateMemberDTO) (*models.MembershipModel, error) {
	if _, err := s.Authorize(userID, workspaceID, models.RoleOwner); err != nil {
		return nil, err
	}
	if !dto.Role.Valid() {
		return nil, apperr.Validation("unknown role")
	}

	var membership models.MembershipModel
	err := s.db.Where("user_id = ? AND workspace_id = ?", memberUserID, workspaceID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("member not found")
		}
		return nil, apperr.Internal("database error", err)
	}

	if membership.Role == models.RoleOwner && dto.Role != models.RoleOwner {
		if err := s.ensureAnotherOwner(workspaceID, memberUserID); err != nil {
			return nil, err
		}
	}

	if err := s.db.Model(&membership).Update("role", dto.Role).Error; err != nil {
		return nil, apperr.Internal("database error", err)
	}
	return &membership, nil
}

// RemoveMember deletes a membership. OWNER only; the last OWNER cannot leave.
func (s *Service) RemoveMember(userID, workspaceID, memberUserID string) error {
	if _, err := s.Authorize(userID, workspaceID, models.RoleOwner); err != nil {
		return err
	}

	var membership models.MembershipModel
	err := s.db.Where("user_id = ? AND workspace_id = ?", memberUserID, workspaceID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("member not found")
		}
		return apperr.Internal("database error", err)
	}

	if membership.Role == models.RoleOwner {
		if err := s.ensureAnotherOwner(workspaceID, memberUserID); err != nil {
			return err
		}
	}

	if err := s.db.Delete(&membership).Error; err != nil {
		return apperr.Internal("database error", err)
	}
	return nil
}

func (s *Service) ensureAnotherOwner(workspaceID, excludeUserID string) error {
	var owners int64
	err := s.db.Model(&models.MembershipModel{}).
		Where("workspace_id = ? AND role = ? AND user_id <> ?", workspaceID, models.RoleOwner, excludeUserID).
		Count(&owners).Error
	if err != nil {
		return apperr.Internal("database error", err)
	}
	if owners == 0 {
		return apperr.Conflict("workspace must keep at least one owner")
	}
	return nil
}

// resolveWorkspaceSlug returns desired if no workspace other than excludeID
// holds it, otherwise desired plus a random suffix. Soft-deleted rows still
// occupy the unique index, so the count runs unscoped.
func resolveWorkspaceSlug(tx *gorm.DB, desired, excludeID string) (string, error) {
	q := tx.Unscoped().Model(&models.WorkspaceModel{}).Where("slug = ?", desired)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return "", apperr.Internal("database error", err)
	}
	if count == 0 {
		return desired, nil
	}
	return slugify.WithSuffix(desired), nil
}

func sortByUpdatedDesc(ws []WorkspaceWithRole) {
	sort.Slice(ws, func(i, j int) bool {
		return ws[i].UpdatedAt.After(ws[j].UpdatedAt)
	})
}
