package service

import (
	"context"
	"errors"
	"math"

	"github.com/Skotchmaster/house_help/internal/logging"
	"github.com/Skotchmaster/house_help/internal/models"
	"github.com/Skotchmaster/house_help/internal/repo"
)

type ReviewService struct {
	Repo repo.GormRepo
}

// Submit records a rating for a worker the user has unlocked, then recomputes
// the worker's denormalized aggregate from the full review set.
func (s *ReviewService) Submit(ctx context.Context, userID, workerID uint, rating int, comment, tags *string) (*models.Review, error) {
	l := logging.FromContext(ctx).With("svc", "review", "user_id", userID, "worker_id", workerID)

	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.Repo.FindUnlock(ctx, userID, workerID); err != nil {
		if errors.Is(err, repo.ErrUnlockNotFound) {
			return nil, ErrNotUnlocked
		}
		return nil, err
	}

	if _, err := s.Repo.FindReview(ctx, userID, workerID); err == nil {
		return nil, ErrDuplicateReview
	} else if !errors.Is(err, repo.ErrReviewNotFound) {
		return nil, err
	}

	review := models.Review{
		UserID:   userID,
		WorkerID: workerID,
		Rating:   rating,
		Comment:  comment,
		Tags:     tags,
	}
	if err := s.Repo.CreateReview(ctx, &review); err != nil {
		if errors.Is(err, repo.ErrReviewDuplicate) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	avg, count, err := s.Repo.RatingAggregate(ctx, workerID)
	if err != nil {
		return nil, err
	}
	rounded := math.Round(avg*10) / 10
	if err := s.Repo.UpdateWorkerRating(ctx, workerID, rounded, count); err != nil {
		return nil, err
	}

	l.Info("review_recorded", "rating", rating, "rating_avg", rounded, "rating_count", count)
	return &review, nil
}

func (s *ReviewService) ListForWorker(ctx context.Context, workerID uint) ([]models.Review, error) {
	return s.Repo.ReviewsForWorker(ctx, workerID)
}
