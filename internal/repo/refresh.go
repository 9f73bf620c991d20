package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/house_help/internal/models"
)

var ErrRefreshRevoked = errors.New("refresh token expired or revoked")

func (r *GormRepo) AddRefresh(ctx context.Context, t *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormRepo) refreshExpiredOrRevoked(db *gorm.DB, jti string) (bool, error) {
	var refresh models.RefreshToken
	if err := db.Where("jti = ?", jti).First(&refresh).Error; err != nil {
		return false, err
	}
	if refresh.ExpiresAt < time.Now().Unix() || refresh.Revoked {
		return true, nil
	}
	return false, nil
}

func (r *GormRepo) markRevoked(db *gorm.DB, jti string) error {
	return db.Model(&models.RefreshToken{}).
		Where("jti = ?", jti).
		Update("revoked", true).Error
}

// RotateRefresh revokes the old token and stores its successor in one
// transaction, so a rotated-away refresh token can never be replayed.
func (r *GormRepo) RotateRefresh(ctx context.Context, oldJTI string, next *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		expired, err := r.refreshExpiredOrRevoked(tx, oldJTI)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRefreshRevoked
			}
			return err
		}
		if expired {
			return ErrRefreshRevoked
		}

		if err := r.markRevoked(tx, oldJTI); err != nil {
			return err
		}

		return tx.Create(next).Error
	})
}

func (r *GormRepo) RevokeRefreshByDigest(ctx context.Context, digest string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", digest).
		Update("revoked", true).Error
}
