package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "khata/internal/errors"
	"khata/internal/middleware"
	"khata/internal/models"
	"khata/internal/services"
	"khata/internal/validator"
)

// --- mock services ---

type mockAuthService struct {
	signUpFn          func(ctx context.Context, name, email, password string, role models.Role) (*models.Profile, error)
	signInFn          func(ctx context.Context, email, password string) (*models.Credential, error)
	startSessionFn    func(ctx context.Context, credentialID string) (*models.Session, error)
	endSessionFn      func(ctx context.Context, sessionID string) error
	sessionIdentityFn func(ctx context.Context, sessionID string) (string, error)
}

func (m *mockAuthService) SignUp(ctx context.Context, name, email, password string, role models.Role) (*models.Profile, error) {
	if m.signUpFn != nil {
		return m.signUpFn(ctx, name, email, password, role)
	}
	return &models.Profile{ID: "user-1", Name: name, Email: email, Role: role}, nil
}

func (m *mockAuthService) SignIn(ctx context.Context, email, password string) (*models.Credential, error) {
	if m.signInFn != nil {
		return m.signInFn(ctx, email, password)
	}
	return &models.Credential{Base: models.Base{ID: "user-1"}, Email: email}, nil
}

func (m *mockAuthService) StartSession(ctx context.Context, credentialID string) (*models.Session, error) {
	if m.startSessionFn != nil {
		return m.startSessionFn(ctx, credentialID)
	}
	return &models.Session{ID: "session-1", CredentialID: credentialID, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (m *mockAuthService) EndSession(ctx context.Context, sessionID string) error {
	if m.endSessionFn != nil {
		return m.endSessionFn(ctx, sessionID)
	}
	return nil
}

func (m *mockAuthService) SessionIdentity(ctx context.Context, sessionID string) (string, error) {
	if m.sessionIdentityFn != nil {
		return m.sessionIdentityFn(ctx, sessionID)
	}
	return "user-1", nil
}

var _ services.AuthServicer = (*mockAuthService)(nil)

type mockProfileService struct {
	getProfileFn func(ctx context.Context, id string) (*models.Profile, error)
}

func (m *mockProfileService) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	if m.getProfileFn != nil {
		return m.getProfileFn(ctx, id)
	}
	return &models.Profile{ID: id, Name: "Test User", Email: "test@example.com", Role: models.RoleViewer}, nil
}

var _ services.ProfileServicer = (*mockProfileService)(nil)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/signup", handler.SignUp)
	r.POST("/auth/login", handler.Login)
	auth := r.Group("", injectSession("user-1", models.RoleAdmin))
	auth.POST("/auth/logout", handler.Logout)
	auth.GET("/session", handler.GetSession)
	auth.GET("/profile", handler.GetProfile)
	return r
}

// injectSession stands in for AuthMiddleware with a resolved profile.
func injectSession(identity string, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetSession(c, &middleware.Session{
			Authenticated: true,
			Identity:      identity,
			Email:         identity + "@example.com",
			SessionID:     "session-" + identity,
			Profile:       &models.Profile{ID: identity, Name: "Test User", Email: identity + "@example.com", Role: role},
		})
		c.Next()
	}
}

// injectPendingSession stands in for AuthMiddleware when the profile has not arrived.
func injectPendingSession(identity string) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetSession(c, &middleware.Session{
			Authenticated: true,
			Identity:      identity,
			Email:         identity + "@token.example.com",
			SessionID:     "session-" + identity,
		})
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestAuthHandler_SignUp(t *testing.T) {
	t.Run("returns 201 with token and profile", func(t *testing.T) {
		var gotRole models.Role
		authSvc := &mockAuthService{
			signUpFn: func(_ context.Context, name, email, _ string, role models.Role) (*models.Profile, error) {
				gotRole = role
				return &models.Profile{ID: "user-9", Name: name, Email: email, Role: models.RoleAdmin}, nil
			},
		}
		handler := NewAuthHandler(authSvc, &mockProfileService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/signup",
			`{"name":"Muhammad Raiz","email":"raiz@example.com","password":"secret1","role":"admin"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotRole != models.RoleAdmin {
			t.Errorf("expected role admin passed to service, got %q", gotRole)
		}
		result := parseJSON(t, rec)
		token, _ := result["token"].(string)
		if token == "" {
			t.Fatal("expected non-empty token")
		}
		claims, err := middleware.ParseSessionToken(token)
		if err != nil {
			t.Fatalf("token did not parse: %v", err)
		}
		if claims.Subject != "user-9" || claims.ID != "session-1" {
			t.Errorf("unexpected claims: subject=%s id=%s", claims.Subject, claims.ID)
		}
		profile := result["profile"].(map[string]interface{})
		if profile["email"] != "raiz@example.com" {
			t.Errorf("expected profile email raiz@example.com, got %v", profile["email"])
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		handler := NewAuthHandler(&mockAuthService{}, &mockProfileService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/signup", `{"email":"a@example.com","password":"secret1"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on short password", func(t *testing.T) {
		handler := NewAuthHandler(&mockAuthService{}, &mockProfileService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/signup", `{"name":"A","email":"a@example.com","password":"12345"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unknown role", func(t *testing.T) {
		handler := NewAuthHandler(&mockAuthService{}, &mockProfileService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/signup", `{"name":"A","email":"a@example.com","password":"secret1","role":"owner"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 409 on duplicate email", func(t *testing.T) {
		authSvc := &mockAuthService{
			signUpFn: func(context.Context, string, string, string, models.Role) (*models.Profile, error) {
				return nil, apperrors.ErrDuplicateEmail
			},
		}
		handler := NewAuthHandler(authSvc, &mockProfileService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/signup", `{"name":"A","email":"a@example.com","password":"secret1"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_EMAIL")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 with token and profile", func(t *testing.T) {
		handler := NewAuthHandler(&mockAuthService{}, &mockProfileService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"email":"test@example.com","password":"secret1"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["token"] == "" || result["token"] == nil {
			t.Error("expected non-empty token")
		}
		if result["expires_at"] == nil {
			t.Error("expected expires_at")
		}
		profile := result["profile"].(map[string]interface{})
		if profile["role"] != "viewer" {
			t.Errorf("expected role viewer, got %v", profile["role"])
		}
	})

	t.Run("returns null profile when it cannot be read", func(t *testing.T) {
		profileSvc := &mockProfileService{
			getProfileFn: func(context.Context, string) (*models.Profile, error) {
				return nil, apperrors.ErrProfileNotFound
			},
		}
		handler := NewAuthHandler(&mockAuthService{}, profileSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"email":"test@example.com","password":"secret1"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["profile"] != nil {
			t.Errorf("expected null profile, got %v", result["profile"])
		}
	})

	t.Run("returns 401 on invalid credentials", func(t *testing.T) {
		authSvc := &mockAuthService{
			signInFn: func(context.Context, string, string) (*models.Credential, error) {
				return nil, apperrors.ErrInvalidCredentials
			},
		}
		handler := NewAuthHandler(authSvc, &mockProfileService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"email":"test@example.com","password":"wrong"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})

	t.Run("returns 400 on missing password", func(t *testing.T) {
		handler := NewAuthHandler(&mockAuthService{}, &mockProfileService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"email":"test@example.com"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	var ended string
	authSvc := &mockAuthService{
		endSessionFn: func(_ context.Context, sessionID string) error {
			ended = sessionID
			return nil
		},
	}
	handler := NewAuthHandler(authSvc, &mockProfileService{})
	r := setupAuthRouter(handler)

	rec := doRequest(r, "POST", "/auth/logout", "")

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if ended != "session-user-1" {
		t.Errorf("expected session-user-1 to be ended, got %q", ended)
	}
}

func TestAuthHandler_GetSession(t *testing.T) {
	handler := NewAuthHandler(&mockAuthService{}, &mockProfileService{})

	t.Run("resolved profile", func(t *testing.T) {
		r := setupAuthRouter(handler)
		rec := doRequest(r, "GET", "/session", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["authenticated"] != true || result["loading"] != false {
			t.Errorf("unexpected session flags: %v", result)
		}
		profile := result["profile"].(map[string]interface{})
		if profile["role"] != "admin" {
			t.Errorf("expected admin role, got %v", profile["role"])
		}
	})

	t.Run("pending profile", func(t *testing.T) {
		r := gin.New()
		r.GET("/session", injectPendingSession("user-2"), handler.GetSession)

		rec := doRequest(r, "GET", "/session", "")

		result := parseJSON(t, rec)
		if result["profile"] != nil {
			t.Errorf("expected null profile, got %v", result["profile"])
		}
		if result["loading"] != false {
			t.Errorf("expected loading false, got %v", result["loading"])
		}
	})
}

func TestAuthHandler_GetProfile(t *testing.T) {
	t.Run("returns profile", func(t *testing.T) {
		handler := NewAuthHandler(&mockAuthService{}, &mockProfileService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "GET", "/profile", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		profile := parseJSON(t, rec)["profile"].(map[string]interface{})
		if profile["id"] != "user-1" {
			t.Errorf("expected id user-1, got %v", profile["id"])
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		profileSvc := &mockProfileService{
			getProfileFn: func(context.Context, string) (*models.Profile, error) {
				return nil, apperrors.ErrProfileNotFound
			},
		}
		handler := NewAuthHandler(&mockAuthService{}, profileSvc)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "GET", "/profile", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PROFILE_NOT_FOUND")
	})

	t.Run("returns 401 without session", func(t *testing.T) {
		handler := NewAuthHandler(&mockAuthService{}, &mockProfileService{})
		r := gin.New()
		r.GET("/profile", handler.GetProfile)

		rec := doRequest(r, "GET", "/profile", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
