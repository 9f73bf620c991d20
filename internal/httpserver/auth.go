package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/house_help/internal/idp"
	"github.com/Skotchmaster/house_help/internal/logging"
	"github.com/Skotchmaster/house_help/internal/middleware"
	"github.com/Skotchmaster/house_help/internal/mykafka"
	"github.com/Skotchmaster/house_help/internal/phone"
	"github.com/Skotchmaster/house_help/internal/repo"
	"github.com/Skotchmaster/house_help/internal/service"
)

type AuthHTTP struct {
	OTP      *service.OTPService
	Identity *service.IdentityService
	Tokens   *service.TokenService
	Repo     repo.GormRepo
	Producer *mykafka.Producer
}

func (h *AuthHTTP) publish(c echo.Context, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_failed", "topic", topic, "error", err)
	}
}

func (h *AuthHTTP) SendOTP(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_send_otp")

	var req SendOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	normalized, err := h.OTP.Send(ctx, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, phone.ErrInvalidPhone):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid phone number, enter a 10-digit Indian mobile number")
		case errors.Is(err, service.ErrRateLimited):
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many code requests, wait before retrying")
		case errors.Is(err, service.ErrDeliveryFailed):
			return echo.NewHTTPError(http.StatusBadGateway, "failed to send the code, please try again")
		}
		l.Error("send_otp_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"phone":  normalized,
	})
}

func (h *AuthHTTP) VerifyOTP(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_verify_otp")

	var req VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	normalized, err := h.OTP.Verify(ctx, req.Phone, req.Code)
	if err != nil {
		if errors.Is(err, phone.ErrInvalidPhone) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid phone number")
		}
		if errors.Is(err, service.ErrCodeNotFound) ||
			errors.Is(err, service.ErrIncorrectCode) ||
			errors.Is(err, service.ErrTooManyAttempts) {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		l.Error("verify_otp_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user, isNew, err := h.Identity.GetOrCreate(ctx, normalized)
	if err != nil {
		l.Error("get_or_create_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	pair, err := h.Tokens.IssuePair(ctx, user)
	if err != nil {
		l.Error("issue_pair_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if isNew {
		h.publish(c, "user_events", fmt.Sprint(user.ID), map[string]any{
			"type":    "user_registered",
			"user_id": user.ID,
		})
	}

	l.Info("login_successful", "user_id", user.ID, "is_new_user", isNew)
	return c.JSON(http.StatusOK, echo.Map{
		"status":        "success",
		"is_new_user":   isNew,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    pair.TokenType,
		"expires_in":    pair.ExpiresIn,
		"user":          pair.User,
	})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pair, err := h.Tokens.Refresh(ctx, req.RefreshToken)
	if err != nil {
		l.Warn("refresh_failed", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired refresh token, log in again")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":        "success",
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    pair.TokenType,
		"expires_in":    pair.ExpiresIn,
		"user":          pair.User,
	})
}

func (h *AuthHTTP) FederatedSignIn(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_federated")

	var req FederatedSignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, isNew, err := h.Identity.ResolveFederated(ctx, req.IDToken)
	if err != nil {
		switch {
		case errors.Is(err, idp.ErrAssertionInvalid):
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired provider token")
		case errors.Is(err, service.ErrMissingPhoneClaim):
			return echo.NewHTTPError(http.StatusBadRequest, "phone number not found in provider token")
		case errors.Is(err, phone.ErrInvalidPhone):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid phone number")
		}
		l.Error("federated_signin_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	pair, err := h.Tokens.IssuePair(ctx, user)
	if err != nil {
		l.Error("issue_pair_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if isNew {
		h.publish(c, "user_events", fmt.Sprint(user.ID), map[string]any{
			"type":    "user_registered",
			"user_id": user.ID,
			"channel": "federated",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":        "success",
		"is_new_user":   isNew,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    pair.TokenType,
		"expires_in":    pair.ExpiresIn,
		"user":          pair.User,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Tokens.Logout(ctx, req.RefreshToken); err != nil {
		logging.FromContext(ctx).Error("logout_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHTTP) currentUser(c echo.Context) (uint, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return id, nil
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := h.currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.Repo.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "user not found, log in again")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, user)
}

func (h *AuthHTTP) UpdateMe(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var req UserUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Repo.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "user not found, log in again")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if req.Name != nil {
		user.Name = req.Name
	}
	if req.City != nil {
		user.City = req.City
	}
	if err := h.Repo.SaveUser(ctx, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, user)
}
