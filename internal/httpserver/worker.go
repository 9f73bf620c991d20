package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/house_help/internal/logging"
	"github.com/Skotchmaster/house_help/internal/middleware"
	"github.com/Skotchmaster/house_help/internal/models"
	"github.com/Skotchmaster/house_help/internal/mykafka"
	"github.com/Skotchmaster/house_help/internal/repo"
	"github.com/Skotchmaster/house_help/internal/service"
	"github.com/Skotchmaster/house_help/internal/service/search"
	"github.com/Skotchmaster/house_help/internal/util"
)

type WorkerHTTP struct {
	Svc      *service.WorkerService
	Unlocks  *service.UnlockService
	Reviews  *service.ReviewService
	Repo     repo.GormRepo
	ES       *elasticsearch.Client
	Producer *mykafka.Producer
}

func workerIDParam(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid worker id")
	}
	return uint(id), nil
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *WorkerHTTP) loadUser(c echo.Context) (*models.User, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	user, err := h.Repo.FindUserByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "user not found, log in again")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return user, nil
}

func (h *WorkerHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "worker_register")

	user, err := h.loadUser(c)
	if err != nil {
		return err
	}

	var req WorkerRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Category == "" || req.City == "" || req.ExpectedSalary <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "name, category, city and expected_salary are required")
	}

	worker, err := h.Svc.Register(ctx, user, service.WorkerInput{
		Name:            req.Name,
		Category:        req.Category,
		City:            req.City,
		Locality:        req.Locality,
		ExpectedSalary:  req.ExpectedSalary,
		ExperienceYears: req.ExperienceYears,
		Languages:       req.Languages,
		BioVideoURL:     req.BioVideoURL,
		PhotoURL:        req.PhotoURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrAlreadyRegistered) {
			return echo.NewHTTPError(http.StatusConflict, "already registered as a worker")
		}
		l.Error("worker_register_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(pubCtx, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":      "worker_registered",
		"user_id":   user.ID,
		"worker_id": worker.ID,
	}); err != nil {
		l.Error("kafka_publish_failed", "error", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status":    "success",
		"worker_id": worker.ID,
	})
}

func (h *WorkerHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	city := c.QueryParam("city")
	if city == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "city is required")
	}

	filter := repo.WorkerFilter{
		City:         city,
		Category:     c.QueryParam("category"),
		MaxSalary:    parseIntDefault(c.QueryParam("max_salary"), 0),
		VerifiedOnly: c.QueryParam("verified_only") == "true",
	}

	workers, err := h.Svc.List(ctx, filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	out := make([]WorkerPublic, len(workers))
	for i := range workers {
		out[i] = maskWorker(&workers[i])
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WorkerHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := workerIDParam(c)
	if err != nil {
		return err
	}

	worker, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrWorkerNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "worker not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, maskWorker(worker))
}

func (h *WorkerHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()

	if h.ES == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not available")
	}

	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, hits, err := search.Search(ctx, h.ES, query, from, limit)
	if err != nil {
		logging.FromContext(ctx).Error("worker_search_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total": total,
		"page":  page,
		"size":  limit,
		"data":  hits,
	})
}

func (h *WorkerHTTP) MyProfile(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.loadUser(c)
	if err != nil {
		return err
	}

	worker, err := h.Svc.ProfileFor(ctx, user)
	if err != nil {
		if errors.Is(err, service.ErrWorkerNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "not registered as a worker")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	// The worker sees their own real phone.
	return c.JSON(http.StatusOK, worker)
}

func (h *WorkerHTTP) UpdateMyProfile(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.loadUser(c)
	if err != nil {
		return err
	}

	var req WorkerUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	worker, err := h.Svc.Update(ctx, user, service.WorkerUpdate{
		Name:            req.Name,
		Category:        req.Category,
		City:            req.City,
		Locality:        req.Locality,
		ExpectedSalary:  req.ExpectedSalary,
		ExperienceYears: req.ExperienceYears,
		Languages:       req.Languages,
		BioVideoURL:     req.BioVideoURL,
		PhotoURL:        req.PhotoURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrWorkerNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "not registered as a worker")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, worker)
}

func (h *WorkerHTTP) SetAvailability(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.loadUser(c)
	if err != nil {
		return err
	}

	var req WorkerAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	worker, err := h.Svc.SetAvailability(ctx, user, req.IsAvailable, req.AvailableFrom, req.AvailableTo)
	if err != nil {
		if errors.Is(err, service.ErrWorkerNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "not registered as a worker")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":       "success",
		"is_available": worker.IsAvailable,
	})
}

// MyLeads lists employers who unlocked this worker's contact.
func (h *WorkerHTTP) MyLeads(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.loadUser(c)
	if err != nil {
		return err
	}
	if !user.IsWorker || user.WorkerID == nil {
		return echo.NewHTTPError(http.StatusNotFound, "not registered as a worker")
	}

	unlocks, err := h.Unlocks.ListForWorker(ctx, *user.WorkerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	leads := make([]echo.Map, 0, len(unlocks))
	for _, u := range unlocks {
		employer, err := h.Repo.FindUserByID(ctx, u.UserID)
		if err != nil {
			continue
		}
		name := "House Help User"
		if employer.Name != nil {
			name = *employer.Name
		}
		leads = append(leads, echo.Map{
			"id":            u.ID,
			"employer_name": name,
			"employer_city": employer.City,
			"unlocked_at":   u.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(leads),
		"leads": leads,
	})
}

func (h *WorkerHTTP) MyReviews(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.loadUser(c)
	if err != nil {
		return err
	}
	if !user.IsWorker || user.WorkerID == nil {
		return echo.NewHTTPError(http.StatusNotFound, "not registered as a worker")
	}

	reviews, err := h.Reviews.ListForWorker(ctx, *user.WorkerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	worker, err := h.Repo.FindWorkerByID(ctx, *user.WorkerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":          len(reviews),
		"average_rating": worker.RatingAvg,
		"reviews":        reviews,
	})
}
