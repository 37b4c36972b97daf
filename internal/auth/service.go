package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/levkatan/lending-management/internal"
	userDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/user"
)

// Service handles registration, login and token lifecycle.
type Service struct {
	repo       RepositoryAPI
	tokenGen   TokenGeneratorAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		tokenGen:   tokenGen,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	if accessTTL == 0 {
		accessTTL = 24 * time.Hour
	}
	if refreshTTL == 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

// Register creates a new account with the user role and returns its id.
func (s *Service) Register(dto RegisterDTO) (int64, error) {
	if err := dto.Validate(); err != nil {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return 0, internal.NewInternalError("failed to hash password", err)
	}

	u := &userDatamodel.User{
		FullName:     dto.FullName,
		Username:     dto.Username,
		PhoneNumber:  dto.Phone,
		Email:        dto.Email,
		PasswordHash: string(hash),
		Role:         RoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.repo.Create(u); err != nil {
		if errors.Is(err, internal.ErrDuplicateIdentity) {
			return 0, internal.ErrDuplicateIdentity
		}
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return 0, err
	}

	s.logger.Info("user registered", "user_id", u.ID, "username", u.Username)
	return u.ID, nil
}

// Authenticate validates credentials and returns tokens plus the identity
// echoed back to the client. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Authenticate(dto LoginDTO) (LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return LoginResult{}, err
	}

	u, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		return LoginResult{}, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		return LoginResult{}, internal.ErrInvalidCredentials
	}

	accessToken, err := s.tokenGen.GenerateAccessToken(u.ID, u.Username, u.Role)
	if err != nil {
		return LoginResult{}, err
	}

	refreshToken, err := s.tokenGen.GenerateRefreshToken(u.ID, u.Username, u.Role)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Tokens:   AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken},
		Username: u.Username,
		Role:     u.Role,
	}, nil
}

// RefreshTokens validates a refresh token and rotates the pair.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGen.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	accessToken, err := s.tokenGen.GenerateAccessToken(claims.UserID, claims.Username, claims.Role)
	if err != nil {
		return AuthTokens{}, err
	}

	newRefreshToken, err := s.tokenGen.GenerateRefreshToken(claims.UserID, claims.Username, claims.Role)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGen.ValidateAccessToken(tokenString)
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID int64, username, role string) (string, error) {
	return j.generate(userID, username, role, j.AccessTokenSecret, j.AccessTokenTTL)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(userID int64, username, role string) (string, error) {
	return j.generate(userID, username, role, j.RefreshTokenSecret, j.RefreshTokenTTL)
}

func (j *JWTTokenGenerator) generate(userID int64, username, role string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (j *JWTTokenGenerator) ValidateAccessToken(tokenString string) (*Claims, error) {
	return j.validate(tokenString, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return j.validate(tokenString, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) validate(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}
