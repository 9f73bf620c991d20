package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/house_help/internal/middleware"
	"github.com/Skotchmaster/house_help/internal/models"
	"github.com/Skotchmaster/house_help/internal/repo"
)

type UserHTTP struct {
	Repo repo.GormRepo
}

func (h *UserHTTP) ListFavorites(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	favorites, err := h.Repo.FavoritesForUser(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	out := make([]WorkerPublic, 0, len(favorites))
	for _, f := range favorites {
		worker, err := h.Repo.FindWorkerByID(ctx, f.WorkerID)
		if err != nil {
			continue
		}
		out = append(out, maskWorker(worker))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(out),
		"data":  out,
	})
}

func (h *UserHTTP) AddFavorite(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := workerIDParam(c)
	if err != nil {
		return err
	}

	if _, err := h.Repo.FindWorkerByID(ctx, id); err != nil {
		if errors.Is(err, repo.ErrWorkerNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "worker not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if _, err := h.Repo.FindFavorite(ctx, userID, id); err == nil {
		return c.JSON(http.StatusOK, echo.Map{"status": "already_favorited"})
	} else if !errors.Is(err, repo.ErrFavoriteNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if err := h.Repo.CreateFavorite(ctx, &models.Favorite{UserID: userID, WorkerID: id}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusCreated, echo.Map{"status": "success"})
}

func (h *UserHTTP) RemoveFavorite(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := workerIDParam(c)
	if err != nil {
		return err
	}

	if err := h.Repo.DeleteFavorite(ctx, userID, id); err != nil {
		if errors.Is(err, repo.ErrFavoriteNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "favorite not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success"})
}
