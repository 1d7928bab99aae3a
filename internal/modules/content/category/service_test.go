package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tagshop/core/internal/models"
	"github.com/tagshop/core/internal/modules/workspace"
	"github.com/tagshop/core/internal/pkg/apperr"
	"github.com/tagshop/core/internal/testutil"
	"gorm.io/gorm"
)

func newFixture(t *testing.T) (*gorm.DB, *Service, string, string) {
	t.Helper()
	db := testutil.NewDB(t)
	wsSvc := workspace.NewService(db)

	owner := models.UserModel{Email: "owner@test.co", Name: "Owner"}
	require.NoError(t, db.Create(&owner).Error)
	ws, err := wsSvc.Create(owner.ID, &workspace.CreateWorkspaceDTO{Name: "Odecor"})
	require.NoError(t, err)

	return db, NewService(db, wsSvc), owner.ID, ws.ID
}

func TestCreateCategory(t *testing.T) {
	_, svc, ownerID, wsID := newFixture(t)

	cat, err := svc.Create(ownerID, wsID, &CreateCategoryDTO{Name: "Lighting", Color: "#ffcc00"})
	require.NoError(t, err)
	assert.Equal(t, "Lighting", cat.Name)

	// Duplicate names are rejected outright, not auto-suffixed like slugs.
	_, err = svc.Create(ownerID, wsID, &CreateCategoryDTO{Name: "Lighting"})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestUpdateCategoryNameCollision(t *testing.T) {
	_, svc, ownerID, wsID := newFixture(t)

	_, err := svc.Create(ownerID, wsID, &CreateCategoryDTO{Name: "Lighting"})
	require.NoError(t, err)
	other, err := svc.Create(ownerID, wsID, &CreateCategoryDTO{Name: "Decor"})
	require.NoError(t, err)

	taken := "Lighting"
	_, err = svc.Update(ownerID, wsID, other.ID, &UpdateCategoryDTO{Name: &taken})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	free := "Furniture"
	updated, err := svc.Update(ownerID, wsID, other.ID, &UpdateCategoryDTO{Name: &free})
	require.NoError(t, err)
	assert.Equal(t, "Furniture", updated.Name)
}

func TestDeleteCategoryPrecondition(t *testing.T) {
	db, svc, ownerID, wsID := newFixture(t)

	cat, err := svc.Create(ownerID, wsID, &CreateCategoryDTO{Name: "Lighting"})
	require.NoError(t, err)

	prod := models.ProductModel{WorkspaceID: wsID, CategoryID: &cat.ID, Name: "Lamp X", Currency: "USD"}
	require.NoError(t, db.Create(&prod).Error)

	err = svc.Delete(ownerID, wsID, cat.ID)
	require.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.Contains(t, err.Error(), "1 product")

	// Category and product both survive the refused delete.
	categories, err := svc.List(ownerID, wsID)
	require.NoError(t, err)
	assert.Len(t, categories, 1)

	var prodCount int64
	require.NoError(t, db.Model(&models.ProductModel{}).Where("id = ?", prod.ID).Count(&prodCount).Error)
	assert.Equal(t, int64(1), prodCount)

	// Detach the product; now the delete goes through.
	require.NoError(t, db.Model(&prod).Update("category_id", nil).Error)
	require.NoError(t, svc.Delete(ownerID, wsID, cat.ID))

	categories, err = svc.List(ownerID, wsID)
	require.NoError(t, err)
	assert.Len(t, categories, 0)
}

func TestCategoryNamesScopedPerWorkspace(t *testing.T) {
	db, svc, ownerID, wsID := newFixture(t)

	wsSvc := workspace.NewService(db)
	other, err := wsSvc.Create(ownerID, &workspace.CreateWorkspaceDTO{Name: "Other"})
	require.NoError(t, err)

	_, err = svc.Create(ownerID, wsID, &CreateCategoryDTO{Name: "Lighting"})
	require.NoError(t, err)

	// The same name is free in another workspace.
	_, err = svc.Create(ownerID, other.ID, &CreateCategoryDTO{Name: "Lighting"})
	assert.NoError(t, err)
}
