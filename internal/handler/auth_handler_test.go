package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "archives/internal/errors"
	"archives/internal/model"
)

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("duplicate email", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("Signup", mock.Anything, "Clerk", "user1@example.com", "password1").Return(nil, apperrors.ErrUserAlreadyExists)

		rec := perform(NewAuthHandler(svc, zap.NewNop()).Signup, request{
			method: http.MethodPost,
			target: "/api/auth/signup",
			body:   `{"name":"Clerk","email":"user1@example.com","password":"password1"}`,
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("short password", func(t *testing.T) {
		rec := perform(NewAuthHandler(new(MockAuthService), zap.NewNop()).Signup, request{
			method: http.MethodPost,
			target: "/api/auth/signup",
			body:   `{"name":"Clerk","email":"clerk@example.com","password":"123"}`,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Login", mock.Anything, "admin@example.com", "admin123").Return("access", "refresh", &model.User{
		ID:           1,
		Name:         "Administrator",
		Email:        "admin@example.com",
		PasswordHash: "$2a$10$secret",
		Role:         model.RoleAdmin,
	}, nil)
	svc.On("Login", mock.Anything, "admin@example.com", "wrong").Return("", "", nil, apperrors.ErrInvalidCredentials)
	h := NewAuthHandler(svc, zap.NewNop())

	rec := perform(h.Login, request{method: http.MethodPost, target: "/api/auth/login", body: `{"email":"admin@example.com","password":"admin123"}`})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "access", resp.AccessToken)
	assert.Equal(t, "refresh", resp.RefreshToken)
	assert.Equal(t, &UserSummary{ID: 1, Name: "Administrator", Email: "admin@example.com", Role: model.RoleAdmin}, resp.User)
	assert.NotContains(t, rec.Body.String(), "secret")

	rec = perform(h.Login, request{method: http.MethodPost, target: "/api/auth/login", body: `{"email":"admin@example.com","password":"wrong"}`})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
}

func TestAuthHandler_Profile(t *testing.T) {
	lastLogin := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	user2 := &model.User{Name: "User Two", Email: "user2@example.com", Role: model.RoleUser, LoginCount: 5, LastLogin: &lastLogin}

	tests := []struct {
		name       string
		email      string
		asAdmin    bool
		setupMock  func(*MockAuthService)
		wantStatus int
	}{
		{
			name:  "own profile",
			email: "user1@example.com",
			setupMock: func(m *MockAuthService) {
				m.On("Profile", mock.Anything, "user1@example.com").Return(&model.User{Email: "user1@example.com"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "someone else's profile",
			email:      "user2@example.com",
			setupMock:  func(m *MockAuthService) {},
			wantStatus: http.StatusForbidden,
		},
		{
			name:    "admin reads any profile",
			email:   "user2@example.com",
			asAdmin: true,
			setupMock: func(m *MockAuthService) {
				m.On("Profile", mock.Anything, "user2@example.com").Return(user2, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "unknown user",
			email:   "ghost@example.com",
			asAdmin: true,
			setupMock: func(m *MockAuthService) {
				m.On("Profile", mock.Anything, "ghost@example.com").Return(nil, apperrors.ErrUserNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAuthService)
			tt.setupMock(svc)

			session := userSession
			if tt.asAdmin {
				session = adminSession
			}
			rec := perform(NewAuthHandler(svc, zap.NewNop()).Profile, request{
				method:  http.MethodPost,
				target:  "/api/auth/profile",
				body:    `{"email":"` + tt.email + `"}`,
				session: session,
			})

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_ProfileShape(t *testing.T) {
	lastLogin := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	svc := new(MockAuthService)
	svc.On("Profile", mock.Anything, "user1@example.com").Return(&model.User{
		Name:       "User One",
		Email:      "user1@example.com",
		Role:       model.RoleUser,
		LoginCount: 3,
		LastLogin:  &lastLogin,
	}, nil)

	rec := perform(NewAuthHandler(svc, zap.NewNop()).Profile, request{
		method:  http.MethodPost,
		target:  "/api/auth/profile",
		body:    `{"email":"user1@example.com"}`,
		session: userSession,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "User One", resp["name"])
	assert.Equal(t, float64(3), resp["loginCount"])
	assert.Equal(t, "2024-03-01T08:00:00Z", resp["lastLogin"])
	assert.Contains(t, resp, "createdAt")
	assert.NotContains(t, resp, "password")
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	t.Run("only own account", func(t *testing.T) {
		rec := perform(NewAuthHandler(new(MockAuthService), zap.NewNop()).ChangePassword, request{
			method:  http.MethodPost,
			target:  "/api/auth/change-password",
			body:    `{"email":"user2@example.com","oldPassword":"user1234","newPassword":"newpass1"}`,
			session: adminSession,
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("wrong old password", func(t *testing.T) {
		svc := new(MockAuthService)
		svc.On("ChangePassword", mock.Anything, "user1@example.com", "guess", "newpass1").Return(apperrors.ErrIncorrectPassword)

		rec := perform(NewAuthHandler(svc, zap.NewNop()).ChangePassword, request{
			method:  http.MethodPost,
			target:  "/api/auth/change-password",
			body:    `{"email":"user1@example.com","oldPassword":"guess","newPassword":"newpass1"}`,
			session: userSession,
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "INCORRECT_PASSWORD")
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Logout", mock.Anything, "refresh-token", userSession).Return(nil)

	rec := perform(NewAuthHandler(svc, zap.NewNop()).Logout, request{
		method:  http.MethodPost,
		target:  "/api/auth/logout",
		body:    `{"refreshToken":"refresh-token"}`,
		session: userSession,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)

	rec = perform(NewAuthHandler(svc, zap.NewNop()).Logout, request{
		method: http.MethodPost,
		target: "/api/auth/logout",
		body:   `{"refreshToken":"refresh-token"}`,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
