package services

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/assetdesk-backend/internal/domain/auth"
	"github.com/yungbote/assetdesk-backend/internal/forms"
	"github.com/yungbote/assetdesk-backend/internal/platform/ctxutil"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTokens(t *testing.T, h *harness) TokenService {
	t.Helper()
	ts, err := NewTokenService(h.log, testSecret, "assetdesk-test", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

func TestTokenServiceRoundTripAndExpiry(t *testing.T) {
	h := newHarness(t)
	if _, err := NewTokenService(h.log, "short", "", 0); err == nil {
		t.Fatal("expected short secret to be rejected")
	}

	ts := newTokens(t, h).(*tokenService)
	user := &auth.User{ID: uuid.New(), Role: "viewer"}
	tok, expiresAt, err := ts.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if d := time.Until(expiresAt); d < 59*time.Minute || d > time.Hour {
		t.Fatalf("expiry: %v", d)
	}
	got, err := ts.Parse(tok)
	if err != nil || got != user.ID {
		t.Fatalf("Parse: got=%s err=%v", got, err)
	}

	ts.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := ts.Parse(tok); err == nil {
		t.Fatal("expected expired token to be rejected")
	}

	other, err := NewTokenService(h.log, "ffffffffffffffffffffffffffffffff", "assetdesk-test", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	if _, err := other.Parse(tok); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestAuthServiceLoginAndContext(t *testing.T) {
	h := newHarness(t)
	tokens := newTokens(t, h)
	svc := NewAuthService(h.log, h.userRepo, tokens)

	user, err := svc.CreateUser(h.ctx, " Editor@Example.com ", "s3cret-pass", "editor", false)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Email != "editor@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if _, err := svc.CreateUser(h.ctx, "editor@example.com", "another", "viewer", false); err == nil {
		t.Fatal("expected duplicate email to be rejected")
	}

	_, err = svc.Login(h.ctx, forms.LoginInput{Email: "editor@example.com", Password: "wrong"})
	wantAPIError(t, err, http.StatusUnauthorized, "invalid_credentials")
	_, err = svc.Login(h.ctx, forms.LoginInput{Email: "nobody@example.com", Password: "s3cret-pass"})
	wantAPIError(t, err, http.StatusUnauthorized, "invalid_credentials")
	_, err = svc.Login(h.ctx, forms.LoginInput{Email: "not-an-email"})
	wantAPIError(t, err, http.StatusBadRequest, "invalid_request")

	res, err := svc.Login(h.ctx, forms.LoginInput{Email: "EDITOR@example.com", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	ctx, err := svc.SetContextFromToken(h.ctx, res.AccessToken)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	if ctxutil.UserID(ctx) != user.ID {
		t.Fatalf("context user: %s", ctxutil.UserID(ctx))
	}
	if _, err := svc.SetContextFromToken(h.ctx, "garbage"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}

func TestAuthorizerRolesAndSuperuser(t *testing.T) {
	h := newHarness(t)
	policy, err := LoadPolicy("")
	if err != nil {
		t.Fatalf("LoadPolicy: %v", err)
	}
	authz := NewAuthorizer(h.log, h.userRepo, policy)
	svc := NewAuthService(h.log, h.userRepo, newTokens(t, h))

	viewer, _ := svc.CreateUser(h.ctx, "viewer@example.com", "pw-viewer", "viewer", false)
	editor, _ := svc.CreateUser(h.ctx, "editor@example.com", "pw-editor", "editor", false)
	root, _ := svc.CreateUser(h.ctx, "root@example.com", "pw-root", "", true)

	if err := authz.Authorize(h.ctx, viewer.ID, auth.PermViewAsset); err != nil {
		t.Fatalf("viewer view: %v", err)
	}
	wantAPIError(t, authz.Authorize(h.ctx, viewer.ID, auth.PermChangeAsset), http.StatusForbidden, "permission_denied")
	if err := authz.Authorize(h.ctx, editor.ID, auth.PermAddAsset); err != nil {
		t.Fatalf("editor add: %v", err)
	}
	if err := authz.Authorize(h.ctx, root.ID, auth.PermChangeAsset); err != nil {
		t.Fatalf("superuser: %v", err)
	}
	wantAPIError(t, authz.Authorize(h.ctx, uuid.Nil, auth.PermViewAsset), http.StatusUnauthorized, "unauthorized")
	wantAPIError(t, authz.Authorize(h.ctx, uuid.New(), auth.PermViewAsset), http.StatusUnauthorized, "unauthorized")
}

func TestLoadPolicyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte("roles:\n  auditor: [app.view_asset]\n"), 0o600); err != nil {
		t.Fatalf("write policy: %v", err)
	}
	p, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("LoadPolicy: %v", err)
	}
	if !p.Grants("auditor", auth.PermViewAsset) || p.Grants("auditor", auth.PermAddAsset) {
		t.Fatalf("unexpected grants: %+v", p.Roles)
	}
	if _, err := ParsePolicy([]byte("roles: {}")); err == nil {
		t.Fatal("expected empty policy to be rejected")
	}
}
