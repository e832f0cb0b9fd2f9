package services

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/assetdesk-backend/internal/data/repos"
	"github.com/yungbote/assetdesk-backend/internal/domain/auth"
	"github.com/yungbote/assetdesk-backend/internal/platform/apierr"
	"github.com/yungbote/assetdesk-backend/internal/platform/dbctx"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
)

//go:embed policy/default_policy.yaml
var defaultPolicyYAML []byte

// Policy maps role names to granted permissions.
type Policy struct {
	Roles map[string][]string `yaml:"roles"`
}

func ParsePolicy(raw []byte) (*Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse permission policy: %w", err)
	}
	if len(p.Roles) == 0 {
		return nil, fmt.Errorf("permission policy defines no roles")
	}
	return &p, nil
}

// LoadPolicy reads a policy file, or the built-in policy when path is empty.
func LoadPolicy(path string) (*Policy, error) {
	if strings.TrimSpace(path) == "" {
		return ParsePolicy(defaultPolicyYAML)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read permission policy %q: %w", path, err)
	}
	return ParsePolicy(raw)
}

func (p *Policy) Grants(role string, perm auth.Permission) bool {
	if p == nil {
		return false
	}
	for _, granted := range p.Roles[role] {
		if granted == "*" || granted == string(perm) {
			return true
		}
	}
	return false
}

type Authorizer interface {
	Authorize(ctx context.Context, userID uuid.UUID, perm auth.Permission) error
}

type policyAuthorizer struct {
	log      *logger.Logger
	userRepo repos.UserRepo
	policy   *Policy
}

func NewAuthorizer(log *logger.Logger, userRepo repos.UserRepo, policy *Policy) Authorizer {
	return &policyAuthorizer{
		log:      log.With("service", "Authorizer"),
		userRepo: userRepo,
		policy:   policy,
	}
}

func (a *policyAuthorizer) Authorize(ctx context.Context, userID uuid.UUID, perm auth.Permission) error {
	if userID == uuid.Nil {
		return apierr.Unauthorized("unauthorized", "authentication required")
	}
	user, err := a.userRepo.GetByID(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return fmt.Errorf("load user for authorization: %w", err)
	}
	if user == nil {
		return apierr.Unauthorized("unauthorized", "authentication required")
	}
	if user.IsSuperuser || a.policy.Grants(user.Role, perm) {
		return nil
	}
	a.log.Debug("Permission denied", "user_id", userID, "permission", perm, "role", user.Role)
	return apierr.Forbidden("permission_denied", "missing permission %s", perm)
}
