package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/justsurfingit/HireNest/internal/apperr"
	"github.com/justsurfingit/HireNest/internal/auth"
	"github.com/justsurfingit/HireNest/internal/dtos"
	"github.com/justsurfingit/HireNest/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(t *testing.T) *AuthService {
	return NewAuthService(newTestDB(t), auth.NewTokenIssuer("test-secret", 10*time.Minute), zap.NewNop())
}

func validSignup() dtos.SignupRequest {
	return dtos.SignupRequest{
		Name:     "  Asha Rao ",
		Email:    "Asha.Rao@Example.com",
		Password: "hunter22",
		Role:     models.RoleJobSeeker,
		Location: " Pune ",
	}
}

func TestSignup(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", user.Name)
	assert.Equal(t, "asha.rao@example.com", user.Email)
	assert.Equal(t, "Pune", user.Location)
	assert.True(t, auth.CheckPassword(user.Password, "hunter22"))

	_, err = svc.Signup(ctx, validSignup())
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	assert.Equal(t, "Email already registered", apperr.MessageOf(err))
}

func TestSignupValidation(t *testing.T) {
	svc := newAuthService(t)

	tests := []struct {
		name   string
		mutate func(*dtos.SignupRequest)
		want   string
	}{
		{"missing name", func(r *dtos.SignupRequest) { r.Name = " " }, "All fields are required"},
		{"missing location", func(r *dtos.SignupRequest) { r.Location = "" }, "All fields are required"},
		{"bad email", func(r *dtos.SignupRequest) { r.Email = "asha@" }, "Please enter a valid email address"},
		{"short password", func(r *dtos.SignupRequest) { r.Password = "abc" }, "Password must be at least 6 characters long"},
		{"bad role", func(r *dtos.SignupRequest) { r.Role = "admin" }, "Invalid role selected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignup()
			tt.mutate(&req)
			_, err := svc.Signup(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
			assert.Equal(t, tt.want, apperr.MessageOf(err))
		})
	}
}

func TestLoginAndLogout(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	_, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, dtos.LoginRequest{Email: "ASHA.RAO@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "Login successful", resp.Message)
	assert.Equal(t, "asha.rao@example.com", resp.User.Email)
	assert.Equal(t, models.RoleJobSeeker, resp.User.Role)

	claims, err := svc.Tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	got, err := svc.Logout("Bearer " + resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, got.UserID)

	_, err = svc.Logout("")
	assert.Equal(t, "No token provided", apperr.MessageOf(err))
	_, err = svc.Logout("Bearer junk")
	assert.Equal(t, "Invalid token", apperr.MessageOf(err))
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestLoginFailures(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	_, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	_, err = svc.Login(ctx, dtos.LoginRequest{Email: "asha.rao@example.com"})
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	assert.Equal(t, "Email and password are required", apperr.MessageOf(err))

	_, err = svc.Login(ctx, dtos.LoginRequest{Email: "asha.rao@example.com", Password: "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, apperr.StatusOf(err))
	assert.Equal(t, "Invalid email or password", apperr.MessageOf(err))

	_, err = svc.Login(ctx, dtos.LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	assert.Equal(t, http.StatusUnauthorized, apperr.StatusOf(err))
}
