package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"meeting_tracker/internal/logging"
	"meeting_tracker/internal/model"
	"meeting_tracker/internal/repository"
	"meeting_tracker/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(repo repository.UserRepository) (AuthService, *utils.JWTUtil) {
	jwtUtil := utils.NewJWTUtil("test-secret", 24*time.Hour)
	return NewAuthService(repo, jwtUtil, logging.Discard()), jwtUtil
}

func TestSignup_StoresHashedPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestAuthService(repo)

	user, err := svc.Signup(context.Background(), model.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "s3cret"})

	require.NoError(t, err)
	assert.True(t, repository.IsValidID(user.ID))
	assert.Equal(t, "Alice", user.Name)

	stored, _ := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("s3cret", stored.PasswordHash))
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(newFakeUserRepo())
	req := model.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "s3cret"}

	_, err := svc.Signup(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

// A concurrent signup can pass the pre-check; the store constraint still yields a conflict.
func TestSignup_StoreRejectsDuplicate(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErr = repository.ErrDuplicateEmail
	svc, _ := newTestAuthService(repo)

	_, err := svc.Signup(context.Background(), model.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestSignup_MissingFields(t *testing.T) {
	svc, _ := newTestAuthService(newFakeUserRepo())

	for _, req := range []model.SignupRequest{
		{Email: "alice@example.com", Password: "s3cret"},
		{Name: "Alice", Password: "s3cret"},
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "  ", Email: "alice@example.com", Password: "s3cret"},
	} {
		_, err := svc.Signup(context.Background(), req)
		assert.ErrorIs(t, err, ErrValidation, "request %+v", req)
	}
}

func TestSignup_StoreFailure(t *testing.T) {
	repo := newFakeUserRepo()
	repo.findErr = errStoreDown
	svc, _ := newTestAuthService(repo)

	_, err := svc.Signup(context.Background(), model.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestLogin(t *testing.T) {
	svc, jwtUtil := newTestAuthService(newFakeUserRepo())
	_, err := svc.Signup(context.Background(), model.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "s3cret"})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), model.LoginRequest{Email: "alice@example.com", Password: "s3cret"})
		require.NoError(t, err)
		assert.Equal(t, "bearer", resp.TokenType)

		claims, err := jwtUtil.ValidateToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", claims.Subject)
		assert.Equal(t, "Alice", claims.Name)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), model.LoginRequest{Email: "alice@example.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), model.LoginRequest{Email: "bob@example.com", Password: "s3cret"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("password is required", func(t *testing.T) {
		_, err := svc.Login(context.Background(), model.LoginRequest{Email: "alice@example.com"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("email is required", func(t *testing.T) {
		_, err := svc.Login(context.Background(), model.LoginRequest{Password: "s3cret"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestLogin_LegacyDigest(t *testing.T) {
	repo := newFakeUserRepo()
	sum := sha256.Sum256([]byte("old-password"))
	require.NoError(t, repo.Create(context.Background(), &model.User{
		Name: "Legacy", Email: "legacy@example.com", PasswordHash: hex.EncodeToString(sum[:]),
	}))
	svc, _ := newTestAuthService(repo)

	resp, err := svc.Login(context.Background(), model.LoginRequest{Email: "legacy@example.com", Password: "old-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(context.Background(), model.LoginRequest{Email: "legacy@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc, jwtUtil := newTestAuthService(repo)
	created, err := svc.Signup(context.Background(), model.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "s3cret"})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		token, err := jwtUtil.GenerateToken("alice@example.com", "Alice")
		require.NoError(t, err)

		user, err := svc.Authenticate(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("unknown user", func(t *testing.T) {
		token, err := jwtUtil.GenerateToken("ghost@example.com", "Ghost")
		require.NoError(t, err)

		_, err = svc.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, utils.ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "garbage")
		assert.ErrorIs(t, err, utils.ErrInvalidToken)
	})
}
