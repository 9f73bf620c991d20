package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/Skotchmaster/house_help/internal/hash"
	"github.com/Skotchmaster/house_help/internal/logging"
	"github.com/Skotchmaster/house_help/internal/models"
	"github.com/Skotchmaster/house_help/internal/phone"
	"github.com/Skotchmaster/house_help/internal/repo"
	"github.com/Skotchmaster/house_help/internal/sms"
)

const maxCodeAttempts = 3

type OTPService struct {
	Repo       repo.GormRepo
	Sender     sms.Sender
	TTL        time.Duration
	RateWindow time.Duration
	RateMax    int
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Send generates a fresh code for rawPhone and dispatches it through the
// configured channel. The code itself is never returned to the caller.
func (s *OTPService) Send(ctx context.Context, rawPhone string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "otp.send")

	p, err := phone.Normalize(rawPhone)
	if err != nil {
		return "", err
	}

	since := time.Now().Add(-s.RateWindow)
	count, err := s.Repo.CountRecentCodes(ctx, p, since)
	if err != nil {
		return "", err
	}
	if count >= int64(s.RateMax) {
		l.Warn("otp_rate_limited", "phone", p)
		return "", ErrRateLimited
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}
	codeHash, err := hash.HashCode(code)
	if err != nil {
		return "", err
	}

	row := models.OTPCode{
		Phone:     p,
		CodeHash:  codeHash,
		ExpiresAt: time.Now().Add(s.TTL),
	}
	if err := s.Repo.CreateCode(ctx, &row); err != nil {
		return "", err
	}

	message := fmt.Sprintf(
		"Your House Help verification code is: %s. Valid for %d minutes. Do not share this code.",
		code, int(s.TTL.Minutes()),
	)

	// The stored row stays valid even when delivery fails, so a retry with
	// the same code can still succeed until natural expiry.
	if err := s.Sender.Send(ctx, p, message); err != nil {
		l.Error("otp_send_failed", "phone", p, "error", err)
		return "", ErrDeliveryFailed
	}

	l.Info("otp_sent", "phone", p)
	return p, nil
}

// Verify checks code against the most recently issued active code for
// rawPhone. "Expired" and "never sent" are indistinguishable on purpose.
func (s *OTPService) Verify(ctx context.Context, rawPhone, code string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "otp.verify")

	p, err := phone.Normalize(rawPhone)
	if err != nil {
		return "", err
	}

	row, err := s.Repo.LatestActiveCode(ctx, p, time.Now())
	if err != nil {
		if errors.Is(err, repo.ErrNoActiveCode) {
			return "", ErrCodeNotFound
		}
		return "", err
	}

	if row.Attempts >= maxCodeAttempts {
		l.Warn("otp_locked_out", "phone", p)
		return "", ErrTooManyAttempts
	}

	if !hash.CheckCode(row.CodeHash, code) {
		row.Attempts++
		if err := s.Repo.SaveCode(ctx, row); err != nil {
			return "", err
		}
		remaining := maxCodeAttempts - row.Attempts
		return "", fmt.Errorf("%w, %d attempts remaining", ErrIncorrectCode, remaining)
	}

	row.Verified = true
	if err := s.Repo.SaveCode(ctx, row); err != nil {
		return "", err
	}

	l.Info("otp_verified", "phone", p)
	return p, nil
}
