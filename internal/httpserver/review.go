package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/house_help/internal/logging"
	"github.com/Skotchmaster/house_help/internal/middleware"
	"github.com/Skotchmaster/house_help/internal/mykafka"
	"github.com/Skotchmaster/house_help/internal/service"
)

type ReviewHTTP struct {
	Svc      *service.ReviewService
	Producer *mykafka.Producer
}

func (h *ReviewHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review_create")

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req ReviewCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.WorkerID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "worker_id is required")
	}

	review, err := h.Svc.Submit(ctx, userID, req.WorkerID, req.Rating, req.Comment, req.Tags)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			return echo.NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
		case errors.Is(err, service.ErrNotUnlocked):
			return echo.NewHTTPError(http.StatusForbidden, "unlock this worker's contact before reviewing")
		case errors.Is(err, service.ErrDuplicateReview):
			return echo.NewHTTPError(http.StatusConflict, "you have already reviewed this worker")
		}
		l.Error("review_create_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(pubCtx, "review_events", fmt.Sprint(req.WorkerID), map[string]any{
		"type":      "review_created",
		"user_id":   userID,
		"worker_id": req.WorkerID,
		"rating":    req.Rating,
	}); err != nil {
		l.Error("kafka_publish_failed", "error", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status": "success",
		"review": review,
	})
}

// ForWorker is the public review listing for a worker profile.
func (h *ReviewHTTP) ForWorker(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := workerIDParam(c)
	if err != nil {
		return err
	}

	reviews, err := h.Svc.ListForWorker(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":   len(reviews),
		"reviews": reviews,
	})
}
