package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tagshop/core/internal/models"
	"github.com/tagshop/core/internal/pkg/apperr"
	"github.com/tagshop/core/internal/testutil"
)

func TestCurrentSynthesizesFreePlan(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db)

	user := models.UserModel{Email: "creator@test.co", Name: "Creator"}
	require.NoError(t, db.Create(&user).Error)

	sub, err := svc.Current(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, sub.Plan)
	assert.Equal(t, models.SubscriptionActive, sub.Status)
	assert.Empty(t, sub.ID)

	// Nothing gets persisted by the read.
	var count int64
	require.NoError(t, db.Model(&models.SubscriptionModel{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestApplyWebhookUpsert(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db)

	user := models.UserModel{Email: "creator@test.co", Name: "Creator"}
	require.NoError(t, db.Create(&user).Error)

	start := time.Now()
	end := start.AddDate(0, 1, 0)

	sub, err := svc.ApplyWebhook(&WebhookDTO{
		UserID:                 user.ID,
		Plan:                   models.PlanCreator,
		Status:                 models.SubscriptionActive,
		CurrentPeriodStart:     &start,
		CurrentPeriodEnd:       &end,
		ProviderCustomerID:     "cus_123",
		ProviderSubscriptionID: "sub_123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PlanCreator, sub.Plan)

	got, err := svc.Current(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PlanCreator, got.Plan)

	// A second webhook updates the same row.
	_, err = svc.ApplyWebhook(&WebhookDTO{
		UserID: user.ID,
		Plan:   models.PlanCreator,
		Status: models.SubscriptionPastDue,
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.SubscriptionModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err = svc.Current(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionPastDue, got.Status)
}

func TestApplyWebhookValidation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewService(db)

	user := models.UserModel{Email: "creator@test.co", Name: "Creator"}
	require.NoError(t, db.Create(&user).Error)

	_, err := svc.ApplyWebhook(&WebhookDTO{UserID: user.ID, Plan: "GOLD", Status: models.SubscriptionActive})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.ApplyWebhook(&WebhookDTO{UserID: user.ID, Plan: models.PlanFree, Status: "PAUSED"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.ApplyWebhook(&WebhookDTO{UserID: "no-such-user", Plan: models.PlanFree, Status: models.SubscriptionActive})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
