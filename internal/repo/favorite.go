package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/house_help/internal/models"
)

var ErrFavoriteNotFound = errors.New("favorite not found")

func (r *GormRepo) FindFavorite(ctx context.Context, userID, workerID uint) (*models.Favorite, error) {
	var f models.Favorite
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND worker_id = ?", userID, workerID).
		First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFavoriteNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *GormRepo) CreateFavorite(ctx context.Context, f *models.Favorite) error {
	return r.DB.WithContext(ctx).Create(f).Error
}

func (r *GormRepo) DeleteFavorite(ctx context.Context, userID, workerID uint) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND worker_id = ?", userID, workerID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *GormRepo) FavoritesForUser(ctx context.Context, userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}
