package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/house_help/internal/phone"
)

func newTestOTPService(t *testing.T) (*OTPService, *fakeSender) {
	t.Helper()

	sender := &fakeSender{}
	svc := &OTPService{
		Repo:       newTestRepo(t),
		Sender:     sender,
		TTL:        5 * time.Minute,
		RateWindow: 10 * time.Minute,
		RateMax:    3,
	}
	return svc, sender
}

func TestOTPService_Send_NormalizesPhone(t *testing.T) {
	svc, sender := newTestOTPService(t)
	ctx := context.Background()

	normalized, err := svc.Send(ctx, "+91 98765-43210")
	require.NoError(t, err)
	assert.Equal(t, "9876543210", normalized)
	assert.Len(t, sender.lastCode(t), 6)
}

func TestOTPService_Send_RejectsInvalidPhone(t *testing.T) {
	svc, _ := newTestOTPService(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, "12345")
	require.Error(t, err)
	assert.ErrorIs(t, err, phone.ErrInvalidPhone)
}

func TestOTPService_Send_RateLimit(t *testing.T) {
	svc, _ := newTestOTPService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Send(ctx, "9876543210")
		require.NoError(t, err)
	}

	_, err := svc.Send(ctx, "9876543210")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)

	// Another phone is unaffected.
	_, err = svc.Send(ctx, "9123456789")
	require.NoError(t, err)
}

func TestOTPService_Send_DeliveryFailure(t *testing.T) {
	svc, sender := newTestOTPService(t)
	ctx := context.Background()

	sender.fail = true
	_, err := svc.Send(ctx, "9876543210")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDeliveryFailed)
}

func TestOTPService_Verify_Success(t *testing.T) {
	svc, sender := newTestOTPService(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, "9876543210")
	require.NoError(t, err)

	normalized, err := svc.Verify(ctx, "+919876543210", sender.lastCode(t))
	require.NoError(t, err)
	assert.Equal(t, "9876543210", normalized)
}

func TestOTPService_Verify_CodeIsSingleUse(t *testing.T) {
	svc, sender := newTestOTPService(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, "9876543210")
	require.NoError(t, err)
	code := sender.lastCode(t)

	_, err = svc.Verify(ctx, "9876543210", code)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, "9876543210", code)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestOTPService_Verify_NoCodeSent(t *testing.T) {
	svc, _ := newTestOTPService(t)
	ctx := context.Background()

	_, err := svc.Verify(ctx, "9876543210", "123456")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestOTPService_Verify_WrongCodeCountsAttempts(t *testing.T) {
	svc, sender := newTestOTPService(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, "9876543210")
	require.NoError(t, err)

	wrong := "000000"
	if sender.lastCode(t) == wrong {
		wrong = "000001"
	}

	_, err = svc.Verify(ctx, "9876543210", wrong)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncorrectCode)
	assert.Contains(t, err.Error(), "2 attempts remaining")
}

func TestOTPService_Verify_LockoutAfterThreeWrongAttempts(t *testing.T) {
	svc, sender := newTestOTPService(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, "9876543210")
	require.NoError(t, err)
	code := sender.lastCode(t)

	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}

	for i := 0; i < 3; i++ {
		_, err = svc.Verify(ctx, "9876543210", wrong)
		require.ErrorIs(t, err, ErrIncorrectCode)
	}

	// Even the correct code is refused once the row is locked out.
	_, err = svc.Verify(ctx, "9876543210", code)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestOTPService_Verify_UsesLatestCode(t *testing.T) {
	svc, sender := newTestOTPService(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, "9876543210")
	require.NoError(t, err)
	first := sender.lastCode(t)

	_, err = svc.Send(ctx, "9876543210")
	require.NoError(t, err)
	second := sender.lastCode(t)

	if first == second {
		t.Skip("generated codes collided")
	}

	_, err = svc.Verify(ctx, "9876543210", first)
	require.ErrorIs(t, err, ErrIncorrectCode)

	_, err = svc.Verify(ctx, "9876543210", second)
	require.NoError(t, err)
}
