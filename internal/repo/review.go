package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/house_help/internal/models"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrReviewDuplicate = errors.New("review already exists")
)

func (r *GormRepo) FindReview(ctx context.Context, userID, workerID uint) (*models.Review, error) {
	var rev models.Review
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND worker_id = ?", userID, workerID).
		First(&rev).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &rev, nil
}

func (r *GormRepo) CreateReview(ctx context.Context, rev *models.Review) error {
	if err := r.DB.WithContext(ctx).Create(rev).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrReviewDuplicate
		}
		return err
	}
	return nil
}

// RatingAggregate recomputes the average and count from the full review set,
// never incrementally, so the denormalized worker columns cannot drift.
func (r *GormRepo) RatingAggregate(ctx context.Context, workerID uint) (float64, int, error) {
	var agg struct {
		Avg   float64
		Count int
	}
	err := r.DB.WithContext(ctx).Model(&models.Review{}).
		Select("AVG(rating) AS avg, COUNT(*) AS count").
		Where("worker_id = ?", workerID).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, err
	}
	return agg.Avg, agg.Count, nil
}

func (r *GormRepo) ReviewsForWorker(ctx context.Context, workerID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.DB.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}
