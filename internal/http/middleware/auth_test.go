package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/assetdesk-backend/internal/domain/auth"
	"github.com/yungbote/assetdesk-backend/internal/platform/apierr"
	"github.com/yungbote/assetdesk-backend/internal/platform/ctxutil"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
	"github.com/yungbote/assetdesk-backend/internal/services"
)

type fakeAuthService struct {
	services.AuthService
	tokens map[string]uuid.UUID
}

func (f *fakeAuthService) SetContextFromToken(ctx context.Context, token string) (context.Context, error) {
	id, ok := f.tokens[token]
	if !ok {
		return ctx, errors.New("bad token")
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{TokenString: token, UserID: id}), nil
}

type fakeAuthorizer struct {
	allowed map[uuid.UUID]bool
}

func (f *fakeAuthorizer) Authorize(_ context.Context, userID uuid.UUID, _ auth.Permission) error {
	if f.allowed[userID] {
		return nil
	}
	return apierr.Forbidden("permission_denied", "nope")
}

func TestRequireAuthAndPermission(t *testing.T) {
	gin.SetMode(gin.TestMode)
	allowed, denied := uuid.New(), uuid.New()
	am := NewAuthMiddleware(logger.Nop(),
		&fakeAuthService{tokens: map[string]uuid.UUID{"good": allowed, "weak": denied}},
		&fakeAuthorizer{allowed: map[uuid.UUID]bool{allowed: true}},
	)

	r := gin.New()
	r.GET("/assets", am.RequireAuth(), am.RequirePermission(auth.PermViewAsset), func(c *gin.Context) {
		c.String(http.StatusOK, ctxutil.UserID(c.Request.Context()).String())
	})

	cases := []struct {
		name   string
		setup  func(*http.Request)
		status int
	}{
		{"no token", func(*http.Request) {}, http.StatusUnauthorized},
		{"bad token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"no permission", func(r *http.Request) { r.Header.Set("Authorization", "Bearer weak") }, http.StatusForbidden},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "bearer good") }, http.StatusOK},
		{"query", func(r *http.Request) { r.URL.RawQuery = "token=good" }, http.StatusOK},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "good"}) }, http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/assets", nil)
		tc.setup(req)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != tc.status {
			t.Fatalf("%s: want=%d got=%d body=%s", tc.name, tc.status, rec.Code, rec.Body.String())
		}
		if tc.status == http.StatusOK && rec.Body.String() != allowed.String() {
			t.Fatalf("%s: user id not propagated: %s", tc.name, rec.Body.String())
		}
	}
}

func TestAttachRequestContextKeepsWellFormedIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachRequestContext())
	var seen *ctxutil.TraceData
	r.GET("/", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerRequestID, "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if seen == nil || seen.RequestID != "req-123" || seen.TraceID == "" {
		t.Fatalf("trace data: %+v", seen)
	}
	if rec.Header().Get(headerRequestID) != "req-123" {
		t.Fatalf("request id not echoed: %q", rec.Header().Get(headerRequestID))
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerRequestID, "bad id\nwith newline")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get(headerRequestID); got == "" || got == "bad id\nwith newline" {
		t.Fatalf("malformed request id should be replaced: %q", got)
	}
}
