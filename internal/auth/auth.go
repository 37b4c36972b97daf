package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	userDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/user"
)

// Roles known to the platform. Staff operations accept employee and admin,
// administration is admin only.
const (
	RoleUser     = "user"
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

var StaffRoles = []string{RoleEmployee, RoleAdmin}

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleEmployee || role == RoleAdmin
}

type ServiceAPI interface {
	Register(dto RegisterDTO) (int64, error)
	Authenticate(dto LoginDTO) (LoginResult, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
}

type RepositoryAPI interface {
	Create(u *userDatamodel.User) error
	GetByEmail(email string) (*userDatamodel.User, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID int64, username, role string) (string, error)
	GenerateRefreshToken(userID int64, username, role string) (string, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

// Principal is the identity extracted from a verified token. It is trusted
// as-is; no per-request reload from the store.
type Principal struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (p *Principal) HasRole(roles ...string) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

func (p *Principal) IsStaff() bool {
	return p.HasRole(StaffRoles...)
}

func (p *Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResult bundles the issued tokens with the identity echoed back to the
// client on login.
type LoginResult struct {
	Tokens   AuthTokens
	Username string
	Role     string
}

type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

type principalCtxKey struct{}

func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(*Principal)
	return p, ok
}
