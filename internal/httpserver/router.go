package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/house_help/internal/middleware"
)

type Deps struct {
	Auth      *AuthHTTP
	Workers   *WorkerHTTP
	Unlocks   *UnlockHTTP
	Reviews   *ReviewHTTP
	Users     *UserHTTP
	JWTSecret []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMw := middleware.NewBearerAuth(d.JWTSecret)

	api := e.Group("/api")

	api.POST("/auth/send-otp", d.Auth.SendOTP)
	api.POST("/auth/verify-otp", d.Auth.VerifyOTP)
	api.POST("/auth/refresh", d.Auth.Refresh)
	api.POST("/auth/federated-signin", d.Auth.FederatedSignIn)
	api.POST("/auth/logout", d.Auth.Logout)

	api.GET("/workers", d.Workers.List)
	api.GET("/workers/search", d.Workers.Search)
	api.GET("/workers/:id", d.Workers.Get)
	api.GET("/workers/:id/reviews", d.Reviews.ForWorker)

	private := api.Group("")
	private.Use(authMw.RequireAuth)

	private.GET("/auth/me", d.Auth.Me)
	private.PUT("/auth/me", d.Auth.UpdateMe)
	private.POST("/auth/register-worker", d.Workers.Register)

	private.GET("/workers/me", d.Workers.MyProfile)
	private.PUT("/workers/me", d.Workers.UpdateMyProfile)
	private.PATCH("/workers/me/availability", d.Workers.SetAvailability)
	private.GET("/workers/me/leads", d.Workers.MyLeads)
	private.GET("/workers/me/reviews", d.Workers.MyReviews)

	private.POST("/unlocks", d.Unlocks.Unlock)
	private.GET("/users/me/unlocks", d.Unlocks.MyUnlocks)

	private.POST("/reviews", d.Reviews.Create)

	private.GET("/users/me/favorites", d.Users.ListFavorites)
	private.POST("/users/me/favorites/:id", d.Users.AddFavorite)
	private.DELETE("/users/me/favorites/:id", d.Users.RemoveFavorite)
}
