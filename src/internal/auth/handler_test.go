package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"gatepass-portal-svc/src/clients"
	"gatepass-portal-svc/src/internal/config"
	"gatepass-portal-svc/src/internal/models"
)

type fakeService struct {
	loginCalls  int
	signupCalls int
	result      *LoginResult
	err         error
}

func (f *fakeService) Login(ctx context.Context, req *LoginRequest, meta Meta) (*LoginResult, error) {
	f.loginCalls++
	return f.result, f.err
}

func (f *fakeService) Signup(ctx context.Context, req *SignupRequest) error {
	f.signupCalls++
	return f.err
}

func (f *fakeService) Logout(ctx context.Context, sessionID string, meta Meta) error {
	return nil
}

func handlerConfig() *config.Configuration {
	return &config.Configuration{
		App:     config.Application{Timeout: 5},
		Session: config.SessionSettings{CookieName: "gatepass_session", ExpirationMinutes: 30},
	}
}

func authRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(handlerConfig(), svc)
	r := gin.New()
	r.POST("/login", h.Login)
	r.POST("/signup", h.Signup)
	r.POST("/logout", h.Logout)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginHandlerRejectsEmptyFieldsLocally(t *testing.T) {
	bodies := []string{
		`{"email":"","password":"x"}`,
		`{"email":"a@b.com","password":""}`,
		`{}`,
	}

	for _, body := range bodies {
		svc := &fakeService{}
		w := postJSON(authRouter(svc), "/login", body)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code, "body %s", body)
		require.Contains(t, w.Body.String(), "required")
		// Validation failures never reach the backend.
		require.Zero(t, svc.loginCalls, "body %s", body)
	}
}

func TestLoginHandlerSetsCookieAndRedirect(t *testing.T) {
	svc := &fakeService{
		result: &LoginResult{
			SessionID: "sid-1",
			Session: models.Session{
				Name: "Jane", Email: "a@b.com", Role: models.RoleAdmin, Token: "t1",
			},
			RedirectTo: AdminDashboardPath,
		},
	}

	w := postJSON(authRouter(svc), "/login", `{"email":"a@b.com","password":"x"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, svc.loginCalls)
	require.Contains(t, w.Body.String(), AdminDashboardPath)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "gatepass_session", cookies[0].Name)
	require.Equal(t, "sid-1", cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)
}

func TestLoginHandlerSurfacesUnknownRole(t *testing.T) {
	svc := &fakeService{err: models.ErrUnknownRole}

	w := postJSON(authRouter(svc), "/login", `{"email":"a@b.com","password":"x"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "Unrecognized role")
}

func TestLoginHandlerSurfacesCredentialRejection(t *testing.T) {
	svc := &fakeService{
		err: &clients.HTTPError{StatusCode: http.StatusUnauthorized, Message: "Invalid email or password"},
	}

	w := postJSON(authRouter(svc), "/login", `{"email":"a@b.com","password":"wrong"}`)

	// The backend's own message comes through with its status; a bad
	// password is not a session expiry and never redirects to login.
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid email or password")
	require.Empty(t, w.Header().Get("Location"))
}

func TestSignupHandlerRejectsUnknownRoleLocally(t *testing.T) {
	svc := &fakeService{}

	w := postJSON(authRouter(svc), "/signup",
		`{"name":"Jane","email":"a@b.com","password":"x","role":"superuser"}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Zero(t, svc.signupCalls)
}

func TestSignupHandlerRedirectsToLogin(t *testing.T) {
	svc := &fakeService{}

	w := postJSON(authRouter(svc), "/signup",
		`{"name":"Jane","email":"a@b.com","password":"x","role":"gatekeeper"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, svc.signupCalls)
	require.Contains(t, w.Body.String(), LoginPagePath)
}

func TestLogoutHandlerExpiresCookie(t *testing.T) {
	r := authRouter(&fakeService{})

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "gatepass_session", Value: "sid-1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "gatepass_session", cookies[0].Name)
	require.Empty(t, cookies[0].Value)
	require.Negative(t, cookies[0].MaxAge)
}
