package auth

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/yungbote/assetdesk-backend/internal/domain/auth"
	"github.com/yungbote/assetdesk-backend/internal/platform/dbctx"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, row *domain.User) (*domain.User, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(dbc dbctx.Context, email string) (*domain.User, error)
	EmailExists(dbc dbctx.Context, email string) (bool, error)
	UpdateRole(dbc dbctx.Context, id uuid.UUID, role string, superuser bool) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) Create(dbc dbctx.Context, row *domain.User) (*domain.User, error) {
	if err := dbc.Conn(r.db).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *userRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.User, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*domain.User
	if err := dbc.Conn(r.db).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *userRepo) GetByEmail(dbc dbctx.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, nil
	}
	var out []*domain.User
	if err := dbc.Conn(r.db).Where("email = ?", email).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *userRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	var count int64
	if err := dbc.Conn(r.db).
		Model(&domain.User{}).
		Where("email = ?", domain.NormalizeEmail(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) UpdateRole(dbc dbctx.Context, id uuid.UUID, role string, superuser bool) error {
	return dbc.Conn(r.db).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"role":         role,
			"is_superuser": superuser,
		}).Error
}
