package post

import (
	"regexp"
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

type fixture struct {
	db    *gorm.DB
	svc   *Service
	wsSvc *workspace.Service
	owner *models.UserModel
	ws    *models.WorkspaceModel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	wsSvc := workspace.NewService(db)

	owner := models.UserModel{Email: "owner@test.co", Name: "Owner"}
	require.NoError(t, db.Create(&owner).Error)

	ws, err := wsSvc.Create(owner.ID, &workspace.CreateWorkspaceDTO{Name: "Odecor"})
	require.NoError(t, err)

	return &fixture{
		db:    db,
		svc:   NewService(db, wsSvc),
		wsSvc: wsSvc,
		owner: &owner,
		ws:    ws,
	}
}

func (f *fixture) seedProduct(t *testing.T, workspaceID, name string) *models.ProductModel {
	t.Helper()
	prod := models.ProductModel{WorkspaceID: workspaceID, Name: name, Currency: "USD"}
	require.NoError(t, f.db.Create(&prod).Error)
	return &prod
}

func defaultPage() pagination.Query {
	return pagination.Query{Page: 1, Size: 20}
}

func TestCreatePost(t *testing.T) {
	f := newFixture(t)

	prod := f.seedProduct(t, f.ws.ID, "Lamp X")
	ts := 42
	p, err := f.svc.Create(f.owner.ID, f.ws.ID, &CreatePostDTO{
		Title:    "My Cozy Room",
		Content:  "# Hello",
		VideoURL: "https://youtu.be/abc",
		Products: []ProductTagInput{{ProductID: prod.ID, Timestamp: &ts, Position: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "my-cozy-room", p.Slug)
	assert.False(t, p.IsPublished)
	assert.Nil(t, p.PublishedAt)
	require.Len(t, p.Products, 1)
	assert.Equal(t, prod.ID, p.Products[0].ProductID)
	require.NotNil(t, p.Products[0].Timestamp)
	assert.Equal(t, 42, *p.Products[0].Timestamp)
}

func TestCreatePostSlugScopedToWorkspace(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.Create(f.owner.ID, f.ws.ID, &CreatePostDTO{Title: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", first.Slug)

	// Same title again in the same workspace gets a suffix.
	second, err := f.svc.Create(f.owner.ID, f.ws.ID, &CreatePostDTO{Title: "Hello"})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^hello-[a-z0-9]{6}$`), second.Slug)

	// The same slug is free in another workspace.
	other, err := f.wsSvc.Create(f.owner.ID, &workspace.CreateWorkspaceDTO{Name: "Other"})
	require.NoError(t, err)
	third, err := f.svc.Create(f.owner.ID, other.ID, &CreatePostDTO{Title: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", third.Slug)
}

func TestPublishSetsTimestampOnce(t *testing.T) {
	f := newFixture(t)

	p, err := f.svc.Create(f.owner.ID, f.ws.ID, &CreatePostDTO{Title: "Draft"})
	require.NoError(t, err)

	published := true
	p, err = f.svc.Update(f.owner.ID, f.ws.ID, p.ID, &UpdatePostDTO{IsPublished: &published})
	require.NoError(t, err)
	require.NotNil(t, p.PublishedAt)
	firstPublish := *p.PublishedAt

	// Unpublish and republish; the original timestamp stays.
	unpublished := false
	_, err = f.svc.Update(f.owner.ID, f.ws.ID, p.ID, &UpdatePostDTO{IsPublished: &unpublished})
	require.NoError(t, err)
	p, err = f.svc.Update(f.owner.ID, f.ws.ID, p.ID, &UpdatePostDTO{IsPublished: &published})
	require.NoError(t, err)
	require.NotNil(t, p.PublishedAt)
	assert.Equal(t, firstPublish.Unix(), p.PublishedAt.Unix())
}

func TestUpdateRenameRegeneratesSlug(t *testing.T) {
	f := newFixture(t)

	p, err := f.svc.Create(f.owner.ID, f.ws.ID, &CreatePostDTO{Title: "Old Title"})
	require.NoError(t, err)
	assert.Equal(t, "old-title", p.Slug)

	title := "New Title"
	p, err = f.svc.Update(f.owner.ID, f.ws.ID, p.ID, &UpdatePostDTO{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "new-title", p.Slug)

	// An explicit slug wins over the title-derived one.
	title2 := "Another Title"
	slug := "keep-this"
	p, err = f.svc.Update(f.owner.ID, f.ws.ID, p.ID, &UpdatePostDTO{Title: &title2, Slug: &slug})
	require.NoError(t, err)
	assert.Equal(t, "keep-this", p.Slug)
}

func TestReplaceProductsAtomicity(t *testing.T) {
	f := newFixture(t)

	mine := f.seedProduct(t, f.ws.ID, "Lamp X")

	foreignWs, err := f.wsSvc.Create(f.owner.ID, &workspace.CreateWorkspaceDTO{Name: "Foreign"})
	require.NoError(t, err)
	foreign := f.seedProduct(t, foreignWs.ID, "Foreign Lamp")

	p, err := f.svc.Create(f.owner.ID, f.ws.ID, &CreatePostDTO{
		Title:    "Tagged",
		Products: []ProductTagInput{{ProductID: mine.ID}},
	})
	require.NoError(t, err)
	require.Len(t, p.Products, 1)

	// One foreign id poisons the whole replacement; nothing changes.
	_, err = f.svc.Update(f.owner.ID, f.ws.ID, p.ID, &UpdatePostDTO{
		Products: []ProductTagInput{{ProductID: mine.ID}, {ProductID: foreign.ID}},
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	p, err = f.svc.Get(f.owner.ID, f.ws.ID, p.ID)
	require.NoError(t, err)
	require.Len(t, p.Products, 1)
	assert.Equal(t, mine.ID, p.Products[0].ProductID)

	// An empty set clears all tags.
	p, err = f.svc.Update(f.owner.ID, f.ws.ID, p.ID, &UpdatePostDTO{
		Products: []ProductTagInput{},
	})
	require.NoError(t, err)
	assert.Len(t, p.Products, 0)
}

func TestReplaceProductsRejectsDuplicates(t *testing.T) {
	f := newFixture(t)
	prod := f.seedProduct(t, f.ws.ID, "Lamp X")

	_, err := f.svc.Create(f.owner.ID, f.ws.ID, &CreatePostDTO{
		Title:    "Dup",
		Products: []ProductTagInput{{ProductID: prod.ID}, {ProductID: prod.ID}},
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestWorkspaceIsolation(t *testing.T) {
	f := newFixture(t)

	otherWs, err := f.wsSvc.Create(f.owner.ID, &workspace.CreateWorkspaceDTO{Name: "Other"})
	require.NoError(t, err)

	p, err := f.svc.Create(f.owner.ID, f.ws.ID, &CreatePostDTO{Title: "In A"})
	require.NoError(t, err)

	// Listing B never returns A's posts, even for a member of both.
	posts, _, err := f.svc.List(f.owner.ID, otherWs.ID, &ListQuery{}, defaultPage())
	require.NoError(t, err)
	assert.Len(t, posts, 0)

	// Reading A's post through B's scope is indistinguishable from absence.
	_, err = f.svc.Get(f.owner.ID, otherWs.ID, p.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestSoftDeleteExclusion(t *testing.T) {
	f := newFixture(t)

	member := models.UserModel{Email: "member@test.co", Name: "Member"}
	require.NoError(t, f.db.Create(&member).Error)
	_, err := f.wsSvc.AddMember(f.owner.ID, f.ws.ID, &workspace.AddMemberDTO{Email: member.Email, Role: models.RoleMember})
	require.NoError(t, err)

	p, err := f.svc.Create(f.owner.ID, f.ws.ID, &CreatePostDTO{Title: "Doomed"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(f.owner.ID, f.ws.ID, p.ID))

	// Default reads exclude the deleted post.
	posts, _, err := f.svc.List(f.owner.ID, f.ws.ID, &ListQuery{}, defaultPage())
	require.NoError(t, err)
	assert.Len(t, posts, 0)

	_, err = f.svc.Get(f.owner.ID, f.ws.ID, p.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// include_deleted is an admin knob; plain members are refused.
	_, _, err = f.svc.List(member.ID, f.ws.ID, &ListQuery{IncludeDeleted: true}, defaultPage())
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	posts, _, err = f.svc.List(f.owner.ID, f.ws.ID, &ListQuery{IncludeDeleted: true}, defaultPage())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, p.ID, posts[0].ID)
}

func TestGetPublished(t *testing.T) {
	f := newFixture(t)

	draft, err := f.svc.Create(f.owner.ID, f.ws.ID, &CreatePostDTO{Title: "Draft"})
	require.NoError(t, err)
	live, err := f.svc.Create(f.owner.ID, f.ws.ID, &CreatePostDTO{Title: "Live", IsPublished: true})
	require.NoError(t, err)

	got, err := f.svc.GetPublished(f.ws.ID, live.ID)
	require.NoError(t, err)
	assert.Equal(t, live.ID, got.ID)
	assert.NotNil(t, got.PublishedAt)

	_, err = f.svc.GetPublished(f.ws.ID, draft.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// A soft-deleted workspace takes its published posts with it.
	require.NoError(t, f.wsSvc.Delete(f.owner.ID, f.ws.ID))
	_, err = f.svc.GetPublished(f.ws.ID, live.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
