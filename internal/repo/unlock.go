package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/house_help/internal/models"
)

var (
	ErrUnlockNotFound  = errors.New("unlock not found")
	ErrUnlockDuplicate = errors.New("unlock already recorded")
)

func (r *GormRepo) FindUnlock(ctx context.Context, userID, workerID uint) (*models.Unlock, error) {
	var u models.Unlock
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND worker_id = ?", userID, workerID).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnlockNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreateUnlock relies on the (user_id, worker_id) unique index: a concurrent
// duplicate insert surfaces as ErrUnlockDuplicate, which callers treat the
// same as an existing row.
func (r *GormRepo) CreateUnlock(ctx context.Context, u *models.Unlock) error {
	if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUnlockDuplicate
		}
		return err
	}
	return nil
}

func (r *GormRepo) UnlocksForUser(ctx context.Context, userID uint) ([]models.Unlock, error) {
	var unlocks []models.Unlock
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&unlocks).Error
	return unlocks, err
}

func (r *GormRepo) UnlocksForWorker(ctx context.Context, workerID uint) ([]models.Unlock, error) {
	var unlocks []models.Unlock
	err := r.DB.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Find(&unlocks).Error
	return unlocks, err
}
