package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/assetdesk-backend/internal/data/repos"
	"github.com/yungbote/assetdesk-backend/internal/domain/auth"
	"github.com/yungbote/assetdesk-backend/internal/forms"
	"github.com/yungbote/assetdesk-backend/internal/platform/apierr"
	"github.com/yungbote/assetdesk-backend/internal/platform/ctxutil"
	"github.com/yungbote/assetdesk-backend/internal/platform/dbctx"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *auth.User
}

type AuthService interface {
	Login(ctx context.Context, in forms.LoginInput) (*LoginResult, error)
	CreateUser(ctx context.Context, email, password, role string, superuser bool) (*auth.User, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
	tokens   TokenService
}

func NewAuthService(log *logger.Logger, userRepo repos.UserRepo, tokens TokenService) AuthService {
	return &authService{
		log:      log.With("service", "AuthService"),
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (as *authService) Login(ctx context.Context, in forms.LoginInput) (*LoginResult, error) {
	ferrs, err := forms.CleanLogin(in)
	if err != nil {
		return nil, err
	}
	if len(ferrs) > 0 {
		return nil, apierr.Invalid("invalid_request", ferrs.ByField())
	}
	user, err := as.userRepo.GetByEmail(dbctx.Context{Ctx: ctx}, in.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}
	if user == nil {
		return nil, apierr.New(http.StatusUnauthorized, "invalid_credentials", ErrInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apierr.New(http.StatusUnauthorized, "invalid_credentials", ErrInvalidCredentials)
	}
	tok, expiresAt, err := as.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	as.log.Info("User logged in", "user_id", user.ID)
	return &LoginResult{AccessToken: tok, ExpiresAt: expiresAt, User: user}, nil
}

func (as *authService) CreateUser(ctx context.Context, email, password, role string, superuser bool) (*auth.User, error) {
	email = auth.NormalizeEmail(email)
	if ferrs, err := forms.CleanLogin(forms.LoginInput{Email: email, Password: password}); err != nil {
		return nil, err
	} else if len(ferrs) > 0 {
		return nil, ferrs
	}
	dbc := dbctx.Context{Ctx: ctx}
	exists, err := as.userRepo.EmailExists(dbc, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("user %q already exists", email)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := as.userRepo.Create(dbc, &auth.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsSuperuser:  superuser,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// SetContextFromToken validates the token and attaches the caller to ctx.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	userID, err := as.tokens.Parse(tokenString)
	if err != nil {
		return ctx, err
	}
	user, err := as.userRepo.GetByID(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return ctx, fmt.Errorf("lookup token user: %w", err)
	}
	if user == nil {
		return ctx, errors.New("token user no longer exists")
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      user.ID,
	}), nil
}
