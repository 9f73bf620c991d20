package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/Skotchmaster/house_help/internal/config"
	"github.com/Skotchmaster/house_help/internal/models"
	"github.com/Skotchmaster/house_help/internal/repo"
)

func newTestRepo(t *testing.T) repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return repo.GormRepo{DB: db}
}

var codeRe = regexp.MustCompile(`\d{6}`)

// fakeSender records every message and exposes the last delivered code.
type fakeSender struct {
	fail  bool
	codes []string
}

func (f *fakeSender) Send(_ context.Context, _, message string) error {
	if f.fail {
		return errDeliveryDown
	}
	f.codes = append(f.codes, codeRe.FindString(message))
	return nil
}

func (f *fakeSender) lastCode(t *testing.T) string {
	t.Helper()
	if len(f.codes) == 0 {
		t.Fatal("no code was delivered")
	}
	return f.codes[len(f.codes)-1]
}

var errDeliveryDown = errTest("sms gateway down")

type errTest string

func (e errTest) Error() string { return string(e) }

func seedWorker(t *testing.T, r repo.GormRepo, phone string) *models.Worker {
	t.Helper()

	w := &models.Worker{
		Name:           "Lakshmi",
		Phone:          phone,
		Category:       "cook",
		City:           "Bengaluru",
		ExpectedSalary: 12000,
	}
	if err := r.CreateWorker(context.Background(), w); err != nil {
		t.Fatalf("failed to seed worker: %v", err)
	}
	return w
}

func seedUser(t *testing.T, r repo.GormRepo, phone string) *models.User {
	t.Helper()

	u := &models.User{Phone: phone, Role: "employer"}
	if err := r.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}
