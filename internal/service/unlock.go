package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/house_help/internal/logging"
	"github.com/Skotchmaster/house_help/internal/models"
	"github.com/Skotchmaster/house_help/internal/repo"
)

const (
	UnlockStatusSuccess  = "success"
	UnlockStatusRepeated = "already_unlocked"
)

type UnlockService struct {
	Repo   repo.GormRepo
	Tariff int
}

type UnlockResult struct {
	Status string
	Worker *models.Worker
}

// Unlock records a paid disclosure for (userID, workerID) at most once and
// returns the worker's real phone. Payment capture itself is verified
// upstream by the payment collaborator; paymentID is kept for the audit
// trail. Safe under concurrent duplicates: a losing insert takes the
// already-unlocked branch.
func (s *UnlockService) Unlock(ctx context.Context, userID, workerID uint, paymentID string) (*UnlockResult, error) {
	l := logging.FromContext(ctx).With("svc", "unlock", "user_id", userID, "worker_id", workerID)

	worker, err := s.Repo.FindWorkerByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, repo.ErrWorkerNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}

	if _, err := s.Repo.FindUnlock(ctx, userID, workerID); err == nil {
		return &UnlockResult{Status: UnlockStatusRepeated, Worker: worker}, nil
	} else if !errors.Is(err, repo.ErrUnlockNotFound) {
		return nil, err
	}

	row := models.Unlock{
		UserID:    userID,
		WorkerID:  workerID,
		PaymentID: paymentID,
		Amount:    s.Tariff,
	}
	if err := s.Repo.CreateUnlock(ctx, &row); err != nil {
		if errors.Is(err, repo.ErrUnlockDuplicate) {
			// Lost the race to a concurrent request for the same pair; no
			// second charge row exists.
			return &UnlockResult{Status: UnlockStatusRepeated, Worker: worker}, nil
		}
		return nil, err
	}

	l.Info("unlock_recorded", "amount", s.Tariff)
	return &UnlockResult{Status: UnlockStatusSuccess, Worker: worker}, nil
}

func (s *UnlockService) ListForUser(ctx context.Context, userID uint) ([]models.Unlock, error) {
	return s.Repo.UnlocksForUser(ctx, userID)
}

func (s *UnlockService) ListForWorker(ctx context.Context, workerID uint) ([]models.Unlock, error) {
	return s.Repo.UnlocksForWorker(ctx, workerID)
}
