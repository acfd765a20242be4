package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskhub/internal/database"
	"taskhub/internal/domain"
	jwtsvc "taskhub/internal/pkg/jwt"
	"taskhub/internal/repository"
)

func setupService(t *testing.T) (*Service, *gorm.DB, *jwtsvc.Service) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	signer := jwtsvc.New("test-secret-123", 15*time.Minute)
	svc := NewService(
		repository.NewUserRepository(db),
		repository.NewRefreshTokenRepository(db),
		repository.NewTokenBlacklistRepository(db),
		signer,
		bcrypt.MinCost,
		30*24*time.Hour,
	)
	return svc, db, signer
}

func registerReq(email string) RegisterRequest {
	return RegisterRequest{
		Name:                 "Test User",
		Email:                email,
		Password:             "password123",
		PasswordConfirmation: "password123",
	}
}

var testMeta = RequestMeta{DeviceName: "go-test", IPAddress: "127.0.0.1"}

func TestRegister_Success(t *testing.T) {
	svc, _, signer := setupService(t)
	ctx := context.Background()

	tokens, err := svc.Register(ctx, registerReq("new@example.com"), testMeta)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "new@example.com", tokens.User.Email)
	assert.NotEmpty(t, tokens.User.ID)

	claims, err := signer.Verify(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tokens.User.ID, claims.Subject)
	assert.Equal(t, "new@example.com", claims.Email)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	svc, _, _ := setupService(t)

	req := registerReq("mismatch@example.com")
	req.PasswordConfirmation = "different123"

	_, err := svc.Register(context.Background(), req, testMeta)
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("dup@example.com"), testMeta)
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerReq("dup@example.com"), testMeta)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestLogin_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("who@example.com"), testMeta)
	require.NoError(t, err)

	_, errUnknown := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "password123"}, testMeta)
	_, errWrongPw := svc.Login(ctx, LoginRequest{Email: "who@example.com", Password: "wrongpass123"}, testMeta)

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("login@example.com"), testMeta)
	require.NoError(t, err)

	tokens, err := svc.Login(ctx, LoginRequest{Email: "login@example.com", Password: "password123"}, testMeta)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestRefresh_RotatesAndRejectsReplay(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	initial, err := svc.Register(ctx, registerReq("rotate@example.com"), testMeta)
	require.NoError(t, err)

	rotated, err := svc.RefreshAccessToken(ctx, initial.RefreshToken, testMeta)
	require.NoError(t, err)
	assert.NotEqual(t, initial.RefreshToken, rotated.RefreshToken)

	// The consumed token is single-use.
	_, err = svc.RefreshAccessToken(ctx, initial.RefreshToken, testMeta)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	// The rotated one still works.
	_, err = svc.RefreshAccessToken(ctx, rotated.RefreshToken, testMeta)
	assert.NoError(t, err)
}

func TestRefresh_UnknownToken(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.RefreshAccessToken(context.Background(), "never-issued", testMeta)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	svc, db, _ := setupService(t)
	ctx := context.Background()

	tokens, err := svc.Register(ctx, registerReq("expired@example.com"), testMeta)
	require.NoError(t, err)

	err = db.Model(&domain.RefreshToken{}).
		Where("token_hash = ?", tokens.RefreshToken).
		Update("expires_at", time.Now().Add(-time.Hour)).Error
	require.NoError(t, err)

	_, err = svc.RefreshAccessToken(ctx, tokens.RefreshToken, testMeta)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLogout_BlacklistsAndRevokesOldest(t *testing.T) {
	svc, db, _ := setupService(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, registerReq("logout@example.com"), testMeta)
	require.NoError(t, err)
	userID := first.User.ID

	// Nudge created_at apart so ordering is deterministic.
	err = db.Model(&domain.RefreshToken{}).
		Where("token_hash = ?", first.RefreshToken).
		Update("created_at", time.Now().Add(-time.Minute)).Error
	require.NoError(t, err)

	second, err := svc.Login(ctx, LoginRequest{Email: "logout@example.com", Password: "password123"}, testMeta)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, userID, second.AccessToken))

	blacklisted, err := svc.IsTokenBlacklisted(ctx, second.AccessToken)
	require.NoError(t, err)
	assert.True(t, blacklisted)

	// Oldest session (the register one) is gone, the newer one survives.
	_, err = svc.RefreshAccessToken(ctx, first.RefreshToken, testMeta)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = svc.RefreshAccessToken(ctx, second.RefreshToken, testMeta)
	assert.NoError(t, err)
}

func TestLogout_NoActiveSessionsStillBlacklists(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	tokens, err := svc.Register(ctx, registerReq("empty@example.com"), testMeta)
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(ctx, tokens.User.ID, tokens.AccessToken))

	// Every refresh token is already revoked; logout must not fail.
	second, err := svc.Login(ctx, LoginRequest{Email: "empty@example.com", Password: "password123"}, testMeta)
	require.NoError(t, err)
	require.NoError(t, svc.LogoutAll(ctx, tokens.User.ID, second.AccessToken))

	err = svc.Logout(ctx, tokens.User.ID, "some-other-access-token")
	assert.NoError(t, err)

	blacklisted, err := svc.IsTokenBlacklisted(ctx, "some-other-access-token")
	require.NoError(t, err)
	assert.True(t, blacklisted)
}

func TestLogoutAll_RevokesEverySession(t *testing.T) {
	svc, db, _ := setupService(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, registerReq("all@example.com"), testMeta)
	require.NoError(t, err)
	second, err := svc.Login(ctx, LoginRequest{Email: "all@example.com", Password: "password123"}, testMeta)
	require.NoError(t, err)

	refreshRepo := repository.NewRefreshTokenRepository(db)
	active, err := refreshRepo.CountActiveForUser(ctx, first.User.ID, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 2, active)

	require.NoError(t, svc.LogoutAll(ctx, first.User.ID, first.AccessToken))

	active, err = refreshRepo.CountActiveForUser(ctx, first.User.ID, time.Now())
	require.NoError(t, err)
	assert.Zero(t, active)

	_, err = svc.RefreshAccessToken(ctx, first.RefreshToken, testMeta)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	_, err = svc.RefreshAccessToken(ctx, second.RefreshToken, testMeta)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	tokens, err := svc.Register(ctx, registerReq("change@example.com"), testMeta)
	require.NoError(t, err)
	userID := tokens.User.ID

	err = svc.ChangePassword(ctx, userID, ChangePasswordRequest{
		OldPassword:          "wrongold123",
		NewPassword:          "brandnew123",
		PasswordConfirmation: "brandnew123",
	})
	assert.ErrorIs(t, err, ErrOldPasswordIncorrect)

	err = svc.ChangePassword(ctx, userID, ChangePasswordRequest{
		OldPassword:          "password123",
		NewPassword:          "password123",
		PasswordConfirmation: "password123",
	})
	assert.ErrorIs(t, err, ErrSamePassword)

	err = svc.ChangePassword(ctx, userID, ChangePasswordRequest{
		OldPassword:          "password123",
		NewPassword:          "brandnew123",
		PasswordConfirmation: "nope",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	err = svc.ChangePassword(ctx, userID, ChangePasswordRequest{
		OldPassword:          "password123",
		NewPassword:          "brandnew123",
		PasswordConfirmation: "brandnew123",
	})
	require.NoError(t, err)

	// Standing sessions are dead, the old password no longer works, the
	// new one does.
	_, err = svc.RefreshAccessToken(ctx, tokens.RefreshToken, testMeta)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = svc.Login(ctx, LoginRequest{Email: "change@example.com", Password: "password123"}, testMeta)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Email: "change@example.com", Password: "brandnew123"}, testMeta)
	assert.NoError(t, err)
}

func TestChangePassword_UnknownUser(t *testing.T) {
	svc, _, _ := setupService(t)

	err := svc.ChangePassword(context.Background(), "missing-user-id", ChangePasswordRequest{
		OldPassword:          "password123",
		NewPassword:          "brandnew123",
		PasswordConfirmation: "brandnew123",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserByID_AbsentReturnsNil(t *testing.T) {
	svc, _, _ := setupService(t)

	user, err := svc.GetUserByID(context.Background(), "does-not-exist")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestRefreshTokenMetadataStored(t *testing.T) {
	svc, db, _ := setupService(t)
	ctx := context.Background()

	meta := RequestMeta{DeviceName: "Mozilla/5.0 test", IPAddress: "10.0.0.7"}
	tokens, err := svc.Register(ctx, registerReq("meta@example.com"), meta)
	require.NoError(t, err)

	var row domain.RefreshToken
	require.NoError(t, db.Where("token_hash = ?", tokens.RefreshToken).First(&row).Error)
	assert.Equal(t, "Mozilla/5.0 test", row.DeviceName)
	assert.Equal(t, "10.0.0.7", row.IPAddress)
	assert.True(t, row.ExpiresAt.After(time.Now().Add(29*24*time.Hour)))
}
