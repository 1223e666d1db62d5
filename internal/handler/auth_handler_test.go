package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"atelier-backoffice-api/internal/dto"
	"atelier-backoffice-api/internal/response"
)

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	LoginFunc func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	MeFunc    func(ctx context.Context, userID uuid.UUID) (*dto.StaffResponse, error)
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.StaffResponse, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx, userID)
	}
	return nil, nil
}

func TestAuthHandler_Login(t *testing.T) {
	staffID := uuid.New()

	tests := []struct {
		name           string
		requestBody    interface{}
		mockService    func(*MockAuthService)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "valid credentials",
			requestBody: dto.LoginRequest{Email: "awa.ndiaye@atelier.sn", Password: "s3cret"},
			mockService: func(m *MockAuthService) {
				m.LoginFunc = func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
					return &dto.LoginResponse{
						Token:     "signed.jwt.token",
						ExpiresAt: time.Now().Add(24 * time.Hour),
						Profile:   dto.StaffResponse{ID: staffID, Email: req.Email, Role: "expert"},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp response.SuccessResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("Failed to unmarshal response: %v", err)
				}
				dataBytes, _ := json.Marshal(resp.Data)
				var login dto.LoginResponse
				if err := json.Unmarshal(dataBytes, &login); err != nil {
					t.Fatalf("Failed to unmarshal data: %v", err)
				}
				if login.Token == "" {
					t.Error("expected a token in the response")
				}
				if login.Profile.ID != staffID {
					t.Errorf("profile ID = %v, want %v", login.Profile.ID, staffID)
				}
			},
		},
		{
			name:        "wrong password",
			requestBody: dto.LoginRequest{Email: "awa.ndiaye@atelier.sn", Password: "wrong"},
			mockService: func(m *MockAuthService) {
				m.LoginFunc = func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
					return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid email or password", "")
				}
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing email rejected by binding",
			requestBody:    map[string]string{"password": "s3cret"},
			mockService:    func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed email rejected by binding",
			requestBody:    map[string]string{"email": "not-an-email", "password": "s3cret"},
			mockService:    func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockAuthService{}
			tt.mockService(mockService)
			h := NewAuthHandler(mockService)

			router := setupTestRouter()
			router.POST("/api/v1/auth/login", h.Login)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Login() status = %v, want %v", w.Code, tt.expectedStatus)
			}

			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}
