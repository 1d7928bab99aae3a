package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tagshop/core/internal/models"
	"github.com/tagshop/core/internal/modules/workspace"
	"github.com/tagshop/core/internal/pkg/apperr"
	"github.com/tagshop/core/internal/pkg/pagination"
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

func TestCreateProduct(t *testing.T) {
	db, svc, ownerID, wsID := newFixture(t)

	cat := models.CategoryModel{WorkspaceID: wsID, Name: "Lighting"}
	require.NoError(t, db.Create(&cat).Error)

	prod, err := svc.Create(ownerID, wsID, &CreateProductDTO{
		Name:       "Lamp X",
		Price:      49.9,
		Currency:   "eur",
		CategoryID: &cat.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", prod.Currency)
	require.NotNil(t, prod.CategoryID)
	assert.Equal(t, cat.ID, *prod.CategoryID)

	// Defaults.
	plain, err := svc.Create(ownerID, wsID, &CreateProductDTO{Name: "Plain"})
	require.NoError(t, err)
	assert.Equal(t, "USD", plain.Currency)
	assert.Nil(t, plain.CategoryID)
}

func TestCreateProductForeignCategory(t *testing.T) {
	db, svc, ownerID, wsID := newFixture(t)

	otherWs, err := workspace.NewService(db).Create(ownerID, &workspace.CreateWorkspaceDTO{Name: "Other"})
	require.NoError(t, err)
	foreignCat := models.CategoryModel{WorkspaceID: otherWs.ID, Name: "Foreign"}
	require.NoError(t, db.Create(&foreignCat).Error)

	_, err = svc.Create(ownerID, wsID, &CreateProductDTO{Name: "Lamp X", CategoryID: &foreignCat.ID})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateProductCategoryDetach(t *testing.T) {
	db, svc, ownerID, wsID := newFixture(t)

	cat := models.CategoryModel{WorkspaceID: wsID, Name: "Lighting"}
	require.NoError(t, db.Create(&cat).Error)

	prod, err := svc.Create(ownerID, wsID, &CreateProductDTO{Name: "Lamp X", CategoryID: &cat.ID})
	require.NoError(t, err)

	empty := ""
	prod, err = svc.Update(ownerID, wsID, prod.ID, &UpdateProductDTO{CategoryID: &empty})
	require.NoError(t, err)
	assert.Nil(t, prod.CategoryID)
}

func TestDeleteProductPrecondition(t *testing.T) {
	db, svc, ownerID, wsID := newFixture(t)

	prod, err := svc.Create(ownerID, wsID, &CreateProductDTO{Name: "Lamp X"})
	require.NoError(t, err)

	post := models.PostModel{WorkspaceID: wsID, Title: "Tagged", Slug: "tagged"}
	require.NoError(t, db.Create(&post).Error)
	tag := models.PostProductModel{PostID: post.ID, ProductID: prod.ID}
	require.NoError(t, db.Create(&tag).Error)

	err = svc.Delete(ownerID, wsID, prod.ID)
	require.True(t, apperr.IsKind(err, apperr.KindConflict))

	// Untag, then the delete goes through and takes the links along.
	require.NoError(t, db.Delete(&tag).Error)

	link := models.AffiliateLinkModel{
		WorkspaceID:  wsID,
		ProductID:    prod.ID,
		Name:         "Shopee",
		AffiliateURL: "https://shopee.vn/lamp-x",
	}
	require.NoError(t, db.Create(&link).Error)

	require.NoError(t, svc.Delete(ownerID, wsID, prod.ID))

	var linkCount int64
	require.NoError(t, db.Model(&models.AffiliateLinkModel{}).Where("product_id = ?", prod.ID).Count(&linkCount).Error)
	assert.Equal(t, int64(0), linkCount)

	_, err = svc.Get(ownerID, wsID, prod.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListProductsFilters(t *testing.T) {
	db, svc, ownerID, wsID := newFixture(t)

	cat := models.CategoryModel{WorkspaceID: wsID, Name: "Lighting"}
	require.NoError(t, db.Create(&cat).Error)

	_, err := svc.Create(ownerID, wsID, &CreateProductDTO{Name: "Lamp X", CategoryID: &cat.ID})
	require.NoError(t, err)
	_, err = svc.Create(ownerID, wsID, &CreateProductDTO{Name: "Sofa"})
	require.NoError(t, err)

	page := pagination.Query{Page: 1, Size: 20}

	all, pg, err := svc.List(ownerID, wsID, &ListQuery{}, page)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, int64(2), pg.Total)

	byCat, _, err := svc.List(ownerID, wsID, &ListQuery{CategoryID: cat.ID}, page)
	require.NoError(t, err)
	require.Len(t, byCat, 1)
	assert.Equal(t, "Lamp X", byCat[0].Name)

	bySearch, _, err := svc.List(ownerID, wsID, &ListQuery{Search: "sof"}, page)
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Sofa", bySearch[0].Name)
}
