package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/house_help/internal/models"
)

var ErrNoActiveCode = errors.New("no active code")

func (r *GormRepo) CountRecentCodes(ctx context.Context, phone string, since time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.OTPCode{}).
		Where("phone = ? AND created_at >= ?", phone, since).
		Count(&count).Error
	return count, err
}

// LatestActiveCode returns the most recently created unexpired, unverified
// code row for phone. Verified rows are excluded here, which is what makes a
// code single-use.
func (r *GormRepo) LatestActiveCode(ctx context.Context, phone string, now time.Time) (*models.OTPCode, error) {
	var code models.OTPCode
	err := r.DB.WithContext(ctx).
		Where("phone = ? AND expires_at > ? AND verified = ?", phone, now, false).
		Order("created_at DESC").
		First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveCode
		}
		return nil, err
	}
	return &code, nil
}

func (r *GormRepo) CreateCode(ctx context.Context, c *models.OTPCode) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) SaveCode(ctx context.Context, c *models.OTPCode) error {
	return r.DB.WithContext(ctx).Save(c).Error
}
