package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/house_help/internal/config"
	"github.com/Skotchmaster/house_help/internal/models"
)

func newTestRepo(t *testing.T) GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return GormRepo{DB: db}
}

func TestCreateUnlock_DuplicatePairConflicts(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	first := models.Unlock{UserID: 1, WorkerID: 2, PaymentID: "pay_001", Amount: 99}
	require.NoError(t, r.CreateUnlock(ctx, &first))

	// Straight to the insert, the way the losing side of a concurrent
	// duplicate request reaches it.
	second := models.Unlock{UserID: 1, WorkerID: 2, PaymentID: "pay_002", Amount: 99}
	err := r.CreateUnlock(ctx, &second)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnlockDuplicate)

	var rows []models.Unlock
	require.NoError(t, r.DB.Where("user_id = ? AND worker_id = ?", 1, 2).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "pay_001", rows[0].PaymentID)
}

func TestCreateUnlock_DistinctPairsDoNotConflict(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.CreateUnlock(ctx, &models.Unlock{UserID: 1, WorkerID: 2, PaymentID: "a", Amount: 99}))
	require.NoError(t, r.CreateUnlock(ctx, &models.Unlock{UserID: 1, WorkerID: 3, PaymentID: "b", Amount: 99}))
	require.NoError(t, r.CreateUnlock(ctx, &models.Unlock{UserID: 2, WorkerID: 2, PaymentID: "c", Amount: 99}))
}

func TestCreateWorker_DuplicatePhoneConflicts(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	first := models.Worker{Name: "Lakshmi", Phone: "9876543210", Category: "cook", City: "Bengaluru", ExpectedSalary: 12000}
	require.NoError(t, r.CreateWorker(ctx, &first))

	second := models.Worker{Name: "Other", Phone: "9876543210", Category: "maid", City: "Bengaluru", ExpectedSalary: 10000}
	err := r.CreateWorker(ctx, &second)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWorkerDuplicate)
}
