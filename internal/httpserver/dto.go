package httpserver

import (
	"github.com/Skotchmaster/house_help/internal/models"
)

type SendOTPRequest struct {
	Phone string `json:"phone"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type FederatedSignInRequest struct {
	IDToken string `json:"id_token"`
}

type UserUpdateRequest struct {
	Name *string `json:"name"`
	City *string `json:"city"`
}

type WorkerRegistrationRequest struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	City            string  `json:"city"`
	Locality        *string `json:"locality"`
	ExpectedSalary  int     `json:"expected_salary"`
	ExperienceYears *int    `json:"experience_years"`
	Languages       *string `json:"languages"`
	BioVideoURL     *string `json:"bio_video_url"`
	PhotoURL        *string `json:"photo_url"`
}

type WorkerUpdateRequest struct {
	Name            *string `json:"name"`
	Category        *string `json:"category"`
	City            *string `json:"city"`
	Locality        *string `json:"locality"`
	ExpectedSalary  *int    `json:"expected_salary"`
	ExperienceYears *int    `json:"experience_years"`
	Languages       *string `json:"languages"`
	BioVideoURL     *string `json:"bio_video_url"`
	PhotoURL        *string `json:"photo_url"`
}

type WorkerAvailabilityRequest struct {
	IsAvailable   bool    `json:"is_available"`
	AvailableFrom *string `json:"available_from"`
	AvailableTo   *string `json:"available_to"`
}

type UnlockRequest struct {
	WorkerID  uint   `json:"worker_id"`
	PaymentID string `json:"payment_id"`
}

type ReviewCreateRequest struct {
	WorkerID uint    `json:"worker_id"`
	Rating   int     `json:"rating"`
	Comment  *string `json:"comment"`
	Tags     *string `json:"tags"`
}

// WorkerPublic is the directory view of a worker. Phone always carries the
// locked placeholder; the real number only leaves through the unlock flow.
type WorkerPublic struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Phone           string  `json:"phone"`
	Category        string  `json:"category"`
	City            string  `json:"city"`
	Locality        *string `json:"locality"`
	ExpectedSalary  int     `json:"expected_salary"`
	ExperienceYears *int    `json:"experience_years"`
	Languages       *string `json:"languages"`
	IsVerified      bool    `json:"is_verified"`
	BioVideoURL     *string `json:"bio_video_url"`
	PhotoURL        *string `json:"photo_url"`
	RatingAvg       float64 `json:"rating_avg"`
	RatingCount     int     `json:"rating_count"`
}

func maskWorker(w *models.Worker) WorkerPublic {
	return WorkerPublic{
		ID:              w.ID,
		Name:            w.Name,
		Phone:           models.LockedPhone,
		Category:        w.Category,
		City:            w.City,
		Locality:        w.Locality,
		ExpectedSalary:  w.ExpectedSalary,
		ExperienceYears: w.ExperienceYears,
		Languages:       w.Languages,
		IsVerified:      w.IsVerified,
		BioVideoURL:     w.BioVideoURL,
		PhotoURL:        w.PhotoURL,
		RatingAvg:       w.RatingAvg,
		RatingCount:     w.RatingCount,
	}
}
