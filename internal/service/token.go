package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Skotchmaster/house_help/internal/logging"
	"github.com/Skotchmaster/house_help/internal/models"
	"github.com/Skotchmaster/house_help/internal/repo"
	"github.com/Skotchmaster/house_help/internal/tokens"
)

type TokenService struct {
	Repo       repo.GormRepo
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type UserSummary struct {
	ID       uint    `json:"id"`
	Phone    string  `json:"phone"`
	Name     *string `json:"name"`
	City     *string `json:"city"`
	Role     string  `json:"role"`
	IsWorker bool    `json:"is_worker"`
	WorkerID *uint   `json:"worker_id"`
}

type TokenPair struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int         `json:"expires_in"`
	User         UserSummary `json:"user"`
}

func summarize(user *models.User) UserSummary {
	return UserSummary{
		ID:       user.ID,
		Phone:    user.Phone,
		Name:     user.Name,
		City:     user.City,
		Role:     user.Role,
		IsWorker: user.IsWorker,
		WorkerID: user.WorkerID,
	}
}

func (s *TokenService) CreateAccessToken(user *models.User, exp time.Time) (string, error) {
	claims := tokens.AccessClaims{
		Phone:    user.Phone,
		Role:     user.Role,
		IsWorker: user.IsWorker,
		Kind:     tokens.KindAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tkn.SignedString(s.Secret)
}

func (s *TokenService) CreateRefreshToken(user *models.User, exp time.Time) (string, string, error) {
	jti := tokens.NewJTI()
	claims := tokens.RefreshClaims{
		Phone: user.Phone,
		Kind:  tokens.KindRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        jti,
		},
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tkn.SignedString(s.Secret)
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// IssuePair creates an access+refresh pair for user and records the refresh
// token digest for later rotation/revocation.
func (s *TokenService) IssuePair(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessExp := time.Now().Add(s.AccessTTL)
	accessToken, err := s.CreateAccessToken(user, accessExp)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(s.RefreshTTL)
	refreshToken, jti, err := s.CreateRefreshToken(user, refreshExp)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.AddRefresh(ctx, &models.RefreshToken{
		Token:     tokens.Sha256Hex(refreshToken),
		UserID:    user.ID,
		JTI:       jti,
		ExpiresAt: refreshExp.Unix(),
	}); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(s.AccessTTL.Seconds()),
		User:         summarize(user),
	}, nil
}

func (s *TokenService) ValidateRefresh(tokenStr string) (*tokens.RefreshClaims, error) {
	return tokens.RefreshClaimsFromToken(tokenStr, s.Secret)
}

// Refresh exchanges a valid refresh token for a fresh pair. The old token is
// revoked and the new one stored inside one transaction, so a rotated-away
// token cannot be replayed.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "token.refresh")

	claims, err := s.ValidateRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, tokens.ErrTokenInvalid
	}

	user, err := s.Repo.FindUserByID(ctx, uint(userID))
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	accessExp := time.Now().Add(s.AccessTTL)
	accessToken, err := s.CreateAccessToken(user, accessExp)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(s.RefreshTTL)
	nextRefresh, jti, err := s.CreateRefreshToken(user, refreshExp)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.RotateRefresh(ctx, claims.ID, &models.RefreshToken{
		Token:     tokens.Sha256Hex(nextRefresh),
		UserID:    user.ID,
		JTI:       jti,
		ExpiresAt: refreshExp.Unix(),
	}); err != nil {
		l.Warn("refresh_rotation_failed", "error", err)
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: nextRefresh,
		TokenType:    "bearer",
		ExpiresIn:    int(s.AccessTTL.Seconds()),
		User:         summarize(user),
	}, nil
}

func (s *TokenService) Logout(ctx context.Context, refreshToken string) error {
	return s.Repo.RevokeRefreshByDigest(ctx, tokens.Sha256Hex(refreshToken))
}
