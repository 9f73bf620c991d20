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
	"github.com/Skotchmaster/house_help/internal/repo"
	"github.com/Skotchmaster/house_help/internal/service"
)

type UnlockHTTP struct {
	Svc      *service.UnlockService
	Repo     repo.GormRepo
	Producer *mykafka.Producer
}

// Unlock discloses a worker's real phone to the calling user. The user is
// taken from the access token only; a user_id in the body is ignored.
func (h *UnlockHTTP) Unlock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "unlock")

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req UnlockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.WorkerID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "worker_id is required")
	}

	res, err := h.Svc.Unlock(ctx, userID, req.WorkerID, req.PaymentID)
	if err != nil {
		if errors.Is(err, service.ErrWorkerNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "worker not found")
		}
		l.Error("unlock_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if res.Status == service.UnlockStatusSuccess {
		pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := h.Producer.PublishEvent(pubCtx, "unlock_events", fmt.Sprint(userID), map[string]any{
			"type":      "contact_unlocked",
			"user_id":   userID,
			"worker_id": req.WorkerID,
			"amount":    h.Svc.Tariff,
		}); err != nil {
			l.Error("kafka_publish_failed", "error", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":            res.Status,
		"worker_name":       res.Worker.Name,
		"real_phone_number": res.Worker.Phone,
	})
}

type unlockedWorker struct {
	WorkerPublic
	UnlockedAt time.Time `json:"unlocked_at"`
}

// MyUnlocks lists the calling user's unlocked workers with real phones.
func (h *UnlockHTTP) MyUnlocks(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	unlocks, err := h.Svc.ListForUser(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	out := make([]unlockedWorker, 0, len(unlocks))
	for _, u := range unlocks {
		worker, err := h.Repo.FindWorkerByID(ctx, u.WorkerID)
		if err != nil {
			continue
		}
		item := unlockedWorker{WorkerPublic: maskWorker(worker), UnlockedAt: u.CreatedAt}
		item.Phone = worker.Phone
		out = append(out, item)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(out),
		"data":  out,
	})
}
