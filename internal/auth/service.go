// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/carterperez-dev/cantina-core/internal/core"
	"github.com/carterperez-dev/cantina-core/internal/user"
)

type UserProvider interface {
	GetByLogin(ctx context.Context, login string) (*user.User, error)
}

type builtinAccount struct {
	password string
	role     string
}

// Built-in accounts are process-wide bootstrap policy, checked before any
// store access so an operator can always get in with an empty or broken
// database.
var builtinAccounts = map[string]builtinAccount{
	"admin": {password: "admin", role: user.RoleAdmin},
	"staff": {password: "staff", role: user.RoleStaff},
}

type Service struct {
	users   UserProvider
	limiter *LoginLimiter
}

// NewService builds the authentication entry point. limiter may be nil,
// in which case attempts are never throttled.
func NewService(users UserProvider, limiter *LoginLimiter) *Service {
	return &Service{
		users:   users,
		limiter: limiter,
	}
}

// Authenticate resolves a username/password pair against the built-in
// table first and the user repository second. Lookup failures, missing
// records, malformed secrets and wrong passwords all produce the same
// zero Result.
func (s *Service) Authenticate(
	ctx context.Context,
	username, password string,
) Result {
	username = strings.TrimSpace(username)

	if s.limiter != nil && !s.limiter.Allow(username) {
		return Result{}
	}

	if builtin, ok := builtinAccounts[username]; ok {
		match := subtle.ConstantTimeCompare(
			[]byte(password),
			[]byte(builtin.password),
		) == 1
		if match {
			role := builtin.role
			return Result{
				OK:   true,
				Role: builtin.role,
				User: &user.User{Login: username, Role: &role},
			}
		}
	}

	record, err := s.users.GetByLogin(ctx, username)
	if err != nil || record == nil {
		core.VerifyPasswordTimingSafe(password, nil)
		return Result{}
	}

	if !core.VerifyPasswordTimingSafe(password, &record.PasswordHash) {
		return Result{}
	}

	return Result{
		OK:   true,
		Role: record.RoleName(),
		User: record,
	}
}
