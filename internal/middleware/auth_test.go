package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"atelier-backoffice-api/internal/domain"
)

const testSecret = "unit-test-secret"

// mockProfileRepository is a func-field mock of repository.ProfileRepository
type mockProfileRepository struct {
	FindByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.StaffProfile, error)
}

func (m *mockProfileRepository) Create(ctx context.Context, profile *domain.StaffProfile) error {
	return nil
}

func (m *mockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.StaffProfile, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepository) FindByEmail(ctx context.Context, email string) (*domain.StaffProfile, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepository) FindAll(ctx context.Context) ([]*domain.StaffProfile, error) {
	return nil, nil
}

func (m *mockProfileRepository) FindByRole(ctx context.Context, role domain.StaffRole) ([]*domain.StaffProfile, error) {
	return nil, nil
}

func (m *mockProfileRepository) Update(ctx context.Context, profile *domain.StaffProfile) error {
	return nil
}

func (m *mockProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func signToken(t *testing.T, secret string, userID uuid.UUID, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}

func authTestRouter(repo *mockProfileRepository, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{Auth(testSecret, repo)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.GET("/protected", handlers...)
	return router
}

func TestAuth(t *testing.T) {
	staffID := uuid.New()
	profile := &domain.StaffProfile{
		BaseModel: domain.BaseModel{ID: staffID},
		Name:      "Awa Ndiaye",
		Email:     "awa.ndiaye@atelier.sn",
		Role:      domain.RoleExpert,
	}

	repo := &mockProfileRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.StaffProfile, error) {
			if id == staffID {
				return profile, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer " + signToken(t, testSecret, staffID, time.Now().Add(time.Hour)),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "not a bearer token",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong signing key",
			authHeader:     "Bearer " + signToken(t, "other-secret", staffID, time.Now().Add(time.Hour)),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer " + signToken(t, testSecret, staffID, time.Now().Add(-time.Hour)),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "token for a removed profile",
			authHeader:     "Bearer " + signToken(t, testSecret, uuid.New(), time.Now().Add(time.Hour)),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := authTestRouter(repo)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Auth() status = %v, want %v", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestAuth_ContextPopulated(t *testing.T) {
	staffID := uuid.New()
	repo := &mockProfileRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.StaffProfile, error) {
			return &domain.StaffProfile{
				BaseModel: domain.BaseModel{ID: staffID},
				Role:      domain.RoleDirection,
			}, nil
		},
	}

	var gotID uuid.UUID
	var gotRole domain.StaffRole
	router := authTestRouter(repo, func(c *gin.Context) {
		gotID, _ = UserID(c)
		gotRole, _ = Role(c)
		c.Next()
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, staffID, time.Now().Add(time.Hour)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v, want %v", w.Code, http.StatusOK)
	}
	if gotID != staffID {
		t.Errorf("context user ID = %v, want %v", gotID, staffID)
	}
	if gotRole != domain.RoleDirection {
		t.Errorf("context role = %v, want %v", gotRole, domain.RoleDirection)
	}
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name           string
		role           domain.StaffRole
		allowed        []domain.StaffRole
		expectedStatus int
	}{
		{
			name:           "role in the allowed set",
			role:           domain.RoleDirection,
			allowed:        []domain.StaffRole{domain.RoleDirection, domain.RoleAssistance},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "role outside the allowed set",
			role:           domain.RoleExpert,
			allowed:        []domain.StaffRole{domain.RoleDirection},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.GET("/restricted",
				func(c *gin.Context) {
					c.Set(ContextRole, tt.role)
					c.Next()
				},
				RequireRoles(tt.allowed...),
				func(c *gin.Context) {
					c.JSON(http.StatusOK, gin.H{"ok": true})
				},
			)

			req := httptest.NewRequest(http.MethodGet, "/restricted", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("RequireRoles() status = %v, want %v", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestRequireRoles_NoAuthContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/restricted", RequireRoles(domain.RoleDirection), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/restricted", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("RequireRoles() status = %v, want %v", w.Code, http.StatusUnauthorized)
	}
}
