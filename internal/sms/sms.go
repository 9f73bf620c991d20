package sms

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/house_help/internal/logging"
)

// Sender is the outbound delivery channel for one-time codes. phone is the
// canonical 10-digit form; the country prefix is added by the provider.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// ConsoleSender logs the message instead of sending it. Development only:
// this is the one place a generated code is ever printed.
type ConsoleSender struct{}

func (ConsoleSender) Send(ctx context.Context, phone, message string) error {
	logging.FromContext(ctx).Info("sms_console_delivery", "phone", phone, "message", message)
	fmt.Printf("[DEV SMS] to %s: %s\n", phone, message)
	return nil
}
