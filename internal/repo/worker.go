package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/house_help/internal/models"
)

var (
	ErrWorkerNotFound  = errors.New("worker not found")
	ErrWorkerDuplicate = errors.New("worker already exists")
)

type WorkerFilter struct {
	City         string
	Category     string
	MaxSalary    int
	VerifiedOnly bool
}

func (r *GormRepo) FindWorkerByID(ctx context.Context, id uint) (*models.Worker, error) {
	var w models.Worker
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *GormRepo) FindWorkerByPhone(ctx context.Context, phone string) (*models.Worker, error) {
	var w models.Worker
	if err := r.DB.WithContext(ctx).Where("phone = ?", phone).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}
	return &w, nil
}

// CreateWorker relies on the unique phone index: a concurrent duplicate
// registration surfaces as ErrWorkerDuplicate instead of a raw driver error.
func (r *GormRepo) CreateWorker(ctx context.Context, w *models.Worker) error {
	if err := r.DB.WithContext(ctx).Create(w).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrWorkerDuplicate
		}
		return err
	}
	return nil
}

func (r *GormRepo) SaveWorker(ctx context.Context, w *models.Worker) error {
	return r.DB.WithContext(ctx).Save(w).Error
}

func (r *GormRepo) ListWorkers(ctx context.Context, f WorkerFilter) ([]models.Worker, error) {
	q := r.DB.WithContext(ctx).Model(&models.Worker{}).
		Where("city = ? AND is_active = ?", f.City, true)

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.MaxSalary > 0 {
		q = q.Where("expected_salary <= ?", f.MaxSalary)
	}
	if f.VerifiedOnly {
		q = q.Where("is_verified = ?", true)
	}

	var workers []models.Worker
	if err := q.Order("rating_avg DESC").Find(&workers).Error; err != nil {
		return nil, err
	}
	return workers, nil
}

func (r *GormRepo) UpdateWorkerRating(ctx context.Context, workerID uint, avg float64, count int) error {
	return r.DB.WithContext(ctx).Model(&models.Worker{}).
		Where("id = ?", workerID).
		Updates(map[string]any{"rating_avg": avg, "rating_count": count}).Error
}
