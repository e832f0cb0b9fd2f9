package cli

import (
	"github.com/yungbote/assetdesk-backend/internal/app"
	"github.com/yungbote/assetdesk-backend/internal/data/db"
	"github.com/yungbote/assetdesk-backend/internal/data/repos"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
	"github.com/yungbote/assetdesk-backend/internal/services"
)

// authSession is the slice of the app the user and token commands need.
type authSession struct {
	log    *logger.Logger
	dbSvc  *db.Service
	users  repos.UserRepo
	tokens services.TokenService
	auth   services.AuthService
}

func openAuthSession(st *rootState) (*authSession, error) {
	cfg, err := st.config()
	if err != nil {
		return nil, err
	}
	log, err := app.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	dbSvc, err := app.OpenDB(log, cfg.DB, cfg.Migrate)
	if err != nil {
		return nil, err
	}
	tokens, err := services.NewTokenService(log, cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.AccessTTL)
	if err != nil {
		_ = dbSvc.Close()
		return nil, err
	}
	users := repos.NewUserRepo(dbSvc.DB(), log)
	return &authSession{
		log:    log,
		dbSvc:  dbSvc,
		users:  users,
		tokens: tokens,
		auth:   services.NewAuthService(log, users, tokens),
	}, nil
}

func (s *authSession) Close() {
	_ = s.dbSvc.Close()
	s.log.Sync()
}
