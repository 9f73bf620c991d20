package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/house_help/internal/idp"
	"github.com/Skotchmaster/house_help/internal/logging"
	"github.com/Skotchmaster/house_help/internal/models"
	"github.com/Skotchmaster/house_help/internal/phone"
	"github.com/Skotchmaster/house_help/internal/repo"
)

type IdentityService struct {
	Repo repo.GormRepo
	IDP  idp.Client
}

// GetOrCreate maps a verified canonical phone to a durable user record,
// creating one with the default employer role on first contact.
func (s *IdentityService) GetOrCreate(ctx context.Context, canonicalPhone string) (*models.User, bool, error) {
	user, err := s.Repo.FindUserByPhone(ctx, canonicalPhone)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, repo.ErrUserNotFound) {
		return nil, false, err
	}

	user = &models.User{Phone: canonicalPhone, Role: "employer"}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, false, err
	}
	logging.FromContext(ctx).Info("user_created", "user_id", user.ID)
	return user, true, nil
}

// ResolveFederated exchanges a provider-verified assertion for a user record.
// Lookup order is by external subject id, then by phone (linking the external
// id to the existing account), then create. The order is what lets a user who
// started on OTP auth move to the federated channel without a duplicate
// account.
func (s *IdentityService) ResolveFederated(ctx context.Context, idToken string) (*models.User, bool, error) {
	ident, err := s.IDP.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, false, err
	}
	if ident.Phone == "" {
		return nil, false, ErrMissingPhoneClaim
	}

	p, err := phone.Normalize(ident.Phone)
	if err != nil {
		return nil, false, err
	}

	if user, err := s.Repo.FindUserByExternalUID(ctx, ident.Subject); err == nil {
		return user, false, nil
	} else if !errors.Is(err, repo.ErrUserNotFound) {
		return nil, false, err
	}

	if user, err := s.Repo.FindUserByPhone(ctx, p); err == nil {
		uid := ident.Subject
		user.ExternalUID = &uid
		if err := s.Repo.SaveUser(ctx, user); err != nil {
			return nil, false, err
		}
		logging.FromContext(ctx).Info("user_linked_external", "user_id", user.ID)
		return user, false, nil
	} else if !errors.Is(err, repo.ErrUserNotFound) {
		return nil, false, err
	}

	uid := ident.Subject
	user := &models.User{Phone: p, ExternalUID: &uid, Role: "employer"}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, false, err
	}
	logging.FromContext(ctx).Info("user_created_federated", "user_id", user.ID)
	return user, true, nil
}
