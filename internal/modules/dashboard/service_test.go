package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tagshop/core/internal/models"
	"github.com/tagshop/core/internal/modules/workspace"
	"github.com/tagshop/core/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newFixture(t *testing.T) (*gorm.DB, *workspace.Service, *Service, string) {
	t.Helper()
	db := testutil.NewDB(t)
	wsSvc := workspace.NewService(db)

	user := models.UserModel{Email: "creator@test.co", Name: "Creator"}
	require.NoError(t, db.Create(&user).Error)

	return db, wsSvc, NewService(db, zap.NewNop()), user.ID
}

func TestResolveOnboarding(t *testing.T) {
	_, _, svc, userID := newFixture(t)

	res := svc.Resolve(userID, "")
	assert.True(t, res.Onboarding)
	assert.False(t, res.FailedOpen)
	assert.Nil(t, res.Workspace)
}

func TestResolvePrefersLastWorkspace(t *testing.T) {
	_, wsSvc, svc, userID := newFixture(t)

	first, err := wsSvc.Create(userID, &workspace.CreateWorkspaceDTO{Name: "First"})
	require.NoError(t, err)
	second, err := wsSvc.Create(userID, &workspace.CreateWorkspaceDTO{Name: "Second"})
	require.NoError(t, err)

	res := svc.Resolve(userID, first.ID)
	require.NotNil(t, res.Workspace)
	assert.Equal(t, first.ID, res.Workspace.ID)

	// A stale token pointing outside the user's memberships is ignored.
	res = svc.Resolve(userID, "no-such-workspace")
	require.NotNil(t, res.Workspace)
	assert.Contains(t, []string{first.ID, second.ID}, res.Workspace.ID)
}

func TestResolveFallsBackToMostRecentlyUpdated(t *testing.T) {
	db, wsSvc, svc, userID := newFixture(t)

	older, err := wsSvc.Create(userID, &workspace.CreateWorkspaceDTO{Name: "Older"})
	require.NoError(t, err)
	newer, err := wsSvc.Create(userID, &workspace.CreateWorkspaceDTO{Name: "Newer"})
	require.NoError(t, err)

	// Push the updated_at timestamps apart explicitly.
	require.NoError(t, db.Model(&models.WorkspaceModel{}).Where("id = ?", older.ID).
		Update("updated_at", time.Now().Add(-time.Hour)).Error)
	require.NoError(t, db.Model(&models.WorkspaceModel{}).Where("id = ?", newer.ID).
		Update("updated_at", time.Now()).Error)

	res := svc.Resolve(userID, "")
	require.NotNil(t, res.Workspace)
	assert.Equal(t, newer.ID, res.Workspace.ID)
}

func TestResolveSkipsDeletedWorkspaces(t *testing.T) {
	_, wsSvc, svc, userID := newFixture(t)

	doomed, err := wsSvc.Create(userID, &workspace.CreateWorkspaceDTO{Name: "Doomed"})
	require.NoError(t, err)
	require.NoError(t, wsSvc.Delete(userID, doomed.ID))

	// The membership row survives but the workspace is gone.
	res := svc.Resolve(userID, doomed.ID)
	assert.True(t, res.Onboarding)
}

func TestResolveFailsOpen(t *testing.T) {
	db, _, svc, userID := newFixture(t)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	res := svc.Resolve(userID, "")
	assert.True(t, res.FailedOpen)
	assert.False(t, res.Onboarding)
	assert.Nil(t, res.Workspace)
}
