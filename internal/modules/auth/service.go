package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"taskhub/internal/domain"
	jwtsvc "taskhub/internal/pkg/jwt"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	refreshTokenBytes = 36
	// Expiry for blacklist rows when the access token's own exp claim
	// cannot be read.
	blacklistFallbackTTL = 15 * time.Minute
)

type tokenSigner interface {
	Sign(userID, email string) (string, error)
	DecodeUnsafe(token string) (*jwtsvc.Claims, error)
}

// RequestMeta is the per-request client metadata stored with each refresh
// token. Both fields are best-effort and may be empty.
type RequestMeta struct {
	DeviceName string
	IPAddress  string
}

// Service contains all business logic for authentication and the session
// lifecycle: registration, login, refresh rotation, logout, blacklisting
// and password change.
type Service struct {
	users         UserRepositoryInterface
	refreshTokens RefreshTokenRepositoryInterface
	blacklist     TokenBlacklistRepositoryInterface
	signer        tokenSigner
	passwordCost  int
	refreshTTL    time.Duration
}

func NewService(
	users UserRepositoryInterface,
	refreshTokens RefreshTokenRepositoryInterface,
	blacklist TokenBlacklistRepositoryInterface,
	signer tokenSigner,
	passwordCost int,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		users:         users,
		refreshTokens: refreshTokens,
		blacklist:     blacklist,
		signer:        signer,
		passwordCost:  passwordCost,
		refreshTTL:    refreshTTL,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest, meta RequestMeta) (*TokenResponse, error) {
	if req.Password != req.PasswordConfirmation {
		return nil, ErrPasswordMismatch
	}

	email := strings.TrimSpace(req.Email)
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.passwordCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The existence check races with concurrent registrations; the
		// unique index has the final word.
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return s.generateTokens(ctx, user, meta)
}

func (s *Service) Login(ctx context.Context, req LoginRequest, meta RequestMeta) (*TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same error as a wrong password: never reveal whether the
			// email is registered.
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokens(ctx, user, meta)
}

// RefreshAccessToken exchanges a refresh token for a fresh pair. Each token
// is single-use: the consumed one is tombstoned before the new pair is
// issued, so replaying it always fails closed.
func (s *Service) RefreshAccessToken(ctx context.Context, refreshToken string, meta RequestMeta) (*TokenResponse, error) {
	now := time.Now()

	token, err := s.refreshTokens.Consume(ctx, refreshToken, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	return s.generateTokens(ctx, user, meta)
}

// Logout blacklists the presented access token and revokes one session:
// the oldest still-active refresh token of the user. Nothing binds an
// access token to a specific refresh token, so "this session" is
// approximated by the least-recently-issued one. With no active tokens the
// revocation step is a no-op; the blacklist insert still happens.
func (s *Service) Logout(ctx context.Context, userID, accessToken string) error {
	if err := s.blacklistAccessToken(ctx, userID, accessToken); err != nil {
		return err
	}
	return s.refreshTokens.RevokeOldestActive(ctx, userID, time.Now())
}

// LogoutAll blacklists the presented access token and revokes every active
// refresh token of the user in one bulk update.
func (s *Service) LogoutAll(ctx context.Context, userID, accessToken string) error {
	if err := s.blacklistAccessToken(ctx, userID, accessToken); err != nil {
		return err
	}
	return s.refreshTokens.RevokeAllForUser(ctx, userID, time.Now())
}

// ChangePassword verifies the old password, rejects a new one identical to
// it, stores the new hash and revokes all standing sessions: a credential
// change forces re-login on every device.
func (s *Service) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	if req.NewPassword != req.PasswordConfirmation {
		return ErrPasswordMismatch
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrOldPasswordIncorrect
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.NewPassword)); err == nil {
		return ErrSamePassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.passwordCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	return s.refreshTokens.RevokeAllForUser(ctx, userID, time.Now())
}

// GetUserByID returns nil without error when the user does not exist; the
// caller decides whether that is a failure.
func (s *Service) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	return s.blacklist.Exists(ctx, token)
}

// blacklistAccessToken reads the token expiry without trusting the
// signature: even a malformed token gets a blacklist row, with a fallback
// expiry when the exp claim is unreadable.
func (s *Service) blacklistAccessToken(ctx context.Context, userID, accessToken string) error {
	expiresAt := time.Now().Add(blacklistFallbackTTL)
	if claims, err := s.signer.DecodeUnsafe(accessToken); err == nil && claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return s.blacklist.Create(ctx, &domain.BlacklistedToken{
		Token:     accessToken,
		UserID:    userID,
		ExpiresAt: expiresAt,
	})
}

func (s *Service) generateTokens(ctx context.Context, user *domain.User, meta RequestMeta) (*TokenResponse, error) {
	accessToken, err := s.signer.Sign(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := generateOpaqueToken(refreshTokenBytes)
	if err != nil {
		return nil, err
	}

	if err := s.refreshTokens.Create(ctx, &domain.RefreshToken{
		UserID:     user.ID,
		TokenHash:  refreshToken,
		DeviceName: meta.DeviceName,
		IPAddress:  meta.IPAddress,
		ExpiresAt:  time.Now().Add(s.refreshTTL),
	}); err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserPublic{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
	}, nil
}

// generateOpaqueToken returns n bytes of randomness as base64url. At 36
// bytes a collision is negligible; the unique index treats one as a fatal
// error rather than retrying silently.
func generateOpaqueToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// modernc sqlite reports constraint violations by message only.
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
