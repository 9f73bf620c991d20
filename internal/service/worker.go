package service

import (
	"context"
	"errors"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/house_help/internal/logging"
	"github.com/Skotchmaster/house_help/internal/models"
	"github.com/Skotchmaster/house_help/internal/repo"
	"github.com/Skotchmaster/house_help/internal/service/search"
)

type WorkerService struct {
	Repo repo.GormRepo
	ES   *elasticsearch.Client
}

type WorkerInput struct {
	Name            string
	Category        string
	City            string
	Locality        *string
	ExpectedSalary  int
	ExperienceYears *int
	Languages       *string
	BioVideoURL     *string
	PhotoURL        *string
}

func (s *WorkerService) index(ctx context.Context, w *models.Worker) {
	if s.ES == nil {
		return
	}
	if err := search.IndexWorker(ctx, s.ES, w); err != nil {
		logging.FromContext(ctx).Error("worker_index_failed", "worker_id", w.ID, "error", err)
	}
}

// Register creates a worker profile for user with the user's own verified
// phone and links it back to the user record.
func (s *WorkerService) Register(ctx context.Context, user *models.User, in WorkerInput) (*models.Worker, error) {
	l := logging.FromContext(ctx).With("svc", "worker.register", "user_id", user.ID)

	if user.IsWorker && user.WorkerID != nil {
		return nil, ErrAlreadyRegistered
	}
	if _, err := s.Repo.FindWorkerByPhone(ctx, user.Phone); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, repo.ErrWorkerNotFound) {
		return nil, err
	}

	worker := models.Worker{
		Name:            in.Name,
		Phone:           user.Phone,
		Category:        in.Category,
		City:            in.City,
		Locality:        in.Locality,
		ExpectedSalary:  in.ExpectedSalary,
		ExperienceYears: in.ExperienceYears,
		Languages:       in.Languages,
		BioVideoURL:     in.BioVideoURL,
		PhotoURL:        in.PhotoURL,
	}
	if err := s.Repo.CreateWorker(ctx, &worker); err != nil {
		// Lost a race with a concurrent registration for the same phone.
		if errors.Is(err, repo.ErrWorkerDuplicate) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}

	user.IsWorker = true
	user.WorkerID = &worker.ID
	user.Role = "worker"
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.index(ctx, &worker)
	l.Info("worker_registered", "worker_id", worker.ID)
	return &worker, nil
}

func (s *WorkerService) ProfileFor(ctx context.Context, user *models.User) (*models.Worker, error) {
	if !user.IsWorker || user.WorkerID == nil {
		return nil, ErrWorkerNotFound
	}
	w, err := s.Repo.FindWorkerByID(ctx, *user.WorkerID)
	if err != nil {
		if errors.Is(err, repo.ErrWorkerNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}
	return w, nil
}

type WorkerUpdate struct {
	Name            *string
	Category        *string
	City            *string
	Locality        *string
	ExpectedSalary  *int
	ExperienceYears *int
	Languages       *string
	BioVideoURL     *string
	PhotoURL        *string
}

func (s *WorkerService) Update(ctx context.Context, user *models.User, up WorkerUpdate) (*models.Worker, error) {
	w, err := s.ProfileFor(ctx, user)
	if err != nil {
		return nil, err
	}

	if up.Name != nil {
		w.Name = *up.Name
	}
	if up.Category != nil {
		w.Category = *up.Category
	}
	if up.City != nil {
		w.City = *up.City
	}
	if up.Locality != nil {
		w.Locality = up.Locality
	}
	if up.ExpectedSalary != nil {
		w.ExpectedSalary = *up.ExpectedSalary
	}
	if up.ExperienceYears != nil {
		w.ExperienceYears = up.ExperienceYears
	}
	if up.Languages != nil {
		w.Languages = up.Languages
	}
	if up.BioVideoURL != nil {
		w.BioVideoURL = up.BioVideoURL
	}
	if up.PhotoURL != nil {
		w.PhotoURL = up.PhotoURL
	}

	if err := s.Repo.SaveWorker(ctx, w); err != nil {
		return nil, err
	}
	s.index(ctx, w)
	return w, nil
}

func (s *WorkerService) SetAvailability(ctx context.Context, user *models.User, available bool, from, to *string) (*models.Worker, error) {
	w, err := s.ProfileFor(ctx, user)
	if err != nil {
		return nil, err
	}

	w.IsAvailable = available
	if from != nil {
		w.AvailableFrom = from
	}
	if to != nil {
		w.AvailableTo = to
	}

	if err := s.Repo.SaveWorker(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WorkerService) List(ctx context.Context, f repo.WorkerFilter) ([]models.Worker, error) {
	return s.Repo.ListWorkers(ctx, f)
}

func (s *WorkerService) Get(ctx context.Context, id uint) (*models.Worker, error) {
	w, err := s.Repo.FindWorkerByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrWorkerNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}
	return w, nil
}
