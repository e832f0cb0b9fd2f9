package auth

import (
	"context"
	"testing"

	"github.com/yungbote/assetdesk-backend/internal/data/repos/testutil"
	domain "github.com/yungbote/assetdesk-backend/internal/domain/auth"
	"github.com/yungbote/assetdesk-backend/internal/platform/dbctx"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewUserRepo(db, testutil.Logger(t))

	u, err := repo.Create(dbc, &domain.User{Email: "  Editor@Example.com ", PasswordHash: "h", Role: "editor"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Email != "editor@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}

	got, err := repo.GetByEmail(dbc, "EDITOR@example.com")
	if err != nil || got == nil || got.ID != u.ID {
		t.Fatalf("GetByEmail: got=%v err=%v", got, err)
	}
	exists, err := repo.EmailExists(dbc, "editor@example.com")
	if err != nil || !exists {
		t.Fatalf("EmailExists: %v err=%v", exists, err)
	}

	if err := repo.UpdateRole(dbc, u.ID, "viewer", true); err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	got, err = repo.GetByID(dbc, u.ID)
	if err != nil || got == nil || got.Role != "viewer" || !got.IsSuperuser {
		t.Fatalf("GetByID after UpdateRole: got=%+v err=%v", got, err)
	}

	if missing, err := repo.GetByEmail(dbc, "nobody@example.com"); err != nil || missing != nil {
		t.Fatalf("GetByEmail missing: got=%v err=%v", missing, err)
	}
}
