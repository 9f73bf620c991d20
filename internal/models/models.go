package models

import (
	"time"
)

// LockedPhone replaces a worker's real phone everywhere except the unlock
// flow and post-unlock listings.
const LockedPhone = "locked - pay to unlock"

type User struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Phone       string    `gorm:"uniqueIndex;not null"     json:"phone"`
	ExternalUID *string   `gorm:"uniqueIndex"              json:"external_uid,omitempty"`
	Name        *string   `json:"name"`
	City        *string   `json:"city"`
	Role        string    `gorm:"not null;default:employer" json:"role"`
	IsWorker    bool      `gorm:"not null;default:false"   json:"is_worker"`
	WorkerID    *uint     `gorm:"index"                    json:"worker_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type Worker struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"not null"                 json:"name"`
	Phone           string    `gorm:"uniqueIndex;not null"     json:"phone"`
	Category        string    `gorm:"index;not null"           json:"category"`
	City            string    `gorm:"index;not null"           json:"city"`
	Locality        *string   `json:"locality"`
	ExpectedSalary  int       `gorm:"not null"                 json:"expected_salary"`
	ExperienceYears *int      `json:"experience_years"`
	Languages       *string   `json:"languages"`
	IsVerified      bool      `gorm:"not null;default:false"   json:"is_verified"`
	BioVideoURL     *string   `json:"bio_video_url"`
	PhotoURL        *string   `json:"photo_url"`
	RatingAvg       float64   `gorm:"not null;default:0"       json:"rating_avg"`
	RatingCount     int       `gorm:"not null;default:0"       json:"rating_count"`
	IsActive        bool      `gorm:"not null;default:true"    json:"is_active"`
	IsAvailable     bool      `gorm:"not null;default:true"    json:"is_available"`
	AvailableFrom   *string   `json:"available_from"`
	AvailableTo     *string   `json:"available_to"`
	CreatedAt       time.Time `json:"created_at"`
}

// OTPCode rows are never deleted; expiry is time based and verified rows are
// excluded from the verify lookup, so a row is usable at most once.
type OTPCode struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Phone     string    `gorm:"index;not null"           json:"phone"`
	CodeHash  string    `gorm:"not null"                 json:"-"`
	ExpiresAt time.Time `gorm:"not null"                 json:"expires_at"`
	Verified  bool      `gorm:"not null;default:false"   json:"verified"`
	Attempts  int       `gorm:"not null;default:0"       json:"attempts"`
	CreatedAt time.Time `json:"created_at"`
}

// Unlock is the revenue ledger. The (user_id, worker_id) unique index is the
// exactly-once mechanism under concurrent duplicate requests.
type Unlock struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                  json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_unlock_pair"      json:"user_id"`
	WorkerID  uint      `gorm:"not null;uniqueIndex:idx_unlock_pair"      json:"worker_id"`
	PaymentID string    `gorm:"not null"                                  json:"payment_id"`
	Amount    int       `gorm:"not null"                                  json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                  json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_pair"      json:"user_id"`
	WorkerID  uint      `gorm:"not null;uniqueIndex:idx_review_pair"      json:"worker_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   *string   `json:"comment"`
	Tags      *string   `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

type Favorite struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"             json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_fav_pair"    json:"user_id"`
	WorkerID  uint      `gorm:"not null;uniqueIndex:idx_fav_pair"    json:"worker_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RefreshToken stores the sha256 digest of an issued refresh token. A rotated
// or logged-out token is marked revoked instead of deleted.
type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"            json:"id"`
	Token     string `gorm:"unique;not null"       json:"token"`
	UserID    uint   `gorm:"index;not null"        json:"user_id"`
	JTI       string `gorm:"uniqueIndex;not null"  json:"jti"`
	ExpiresAt int64  `gorm:"not null"              json:"expires_at"`
	Revoked   bool   `gorm:"default:false"         json:"revoked"`
}
