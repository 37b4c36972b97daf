package auth_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/levkatan/lending-management/internal"
	userDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/user"
	"github.com/levkatan/lending-management/internal/auth"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

type mockUserRepository struct {
	usersByEmail map[string]*userDatamodel.User
	createError  error
	nextID       int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		usersByEmail: make(map[string]*userDatamodel.User),
		nextID:       1,
	}
}

func (m *mockUserRepository) Create(u *userDatamodel.User) error {
	if m.createError != nil {
		return m.createError
	}
	for _, existing := range m.usersByEmail {
		if existing.Email == u.Email || existing.Username == u.Username {
			return internal.ErrDuplicateIdentity
		}
	}
	u.ID = m.nextID
	m.nextID++
	m.usersByEmail[u.Email] = u
	return nil
}

func (m *mockUserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	u, exists := m.usersByEmail[email]
	if !exists {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

var _ = Describe("AuthService", func() {
	var (
		service  *auth.Service
		mockRepo *mockUserRepository
		tokenGen *auth.JWTTokenGenerator
		logger   *slog.Logger
	)

	registerDTO := func() auth.RegisterDTO {
		return auth.RegisterDTO{
			FullName: "Noa Levi",
			Username: "noa",
			Phone:    "0501234567",
			Email:    "noa@example.com",
			Password: "secret12345",
		}
	}

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen = auth.NewJWTTokenGenerator(
			"test-access-secret-0123456789abcdef",
			"test-refresh-secret-0123456789abcdef",
			time.Hour,
			24*time.Hour,
		)
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = auth.NewService(mockRepo, tokenGen, bcrypt.MinCost, logger)
	})

	Describe("Register", func() {
		It("should create a user with the user role and a hashed password", func() {
			userID, err := service.Register(registerDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(userID).To(BeNumerically(">", 0))

			stored := mockRepo.usersByEmail["noa@example.com"]
			Expect(stored).ToNot(BeNil())
			Expect(stored.Role).To(Equal(auth.RoleUser))
			Expect(stored.PasswordHash).ToNot(Equal("secret12345"))
			Expect(bcrypt.CompareHashAndPassword(
				[]byte(stored.PasswordHash), []byte("secret12345"),
			)).To(Succeed())
		})

		It("should reject a duplicate email", func() {
			_, err := service.Register(registerDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Register(registerDTO())
			Expect(err).To(Equal(internal.ErrDuplicateIdentity))
		})

		It("should reject an incomplete payload", func() {
			dto := registerDTO()
			dto.Email = ""

			_, err := service.Register(dto)
			Expect(err).To(HaveOccurred())
			Expect(mockRepo.usersByEmail).To(BeEmpty())
		})
	})

	Describe("Authenticate", func() {
		BeforeEach(func() {
			_, err := service.Register(registerDTO())
			Expect(err).ToNot(HaveOccurred())
		})

		It("should return tokens and identity for valid credentials", func() {
			result, err := service.Authenticate(auth.LoginDTO{
				Email:    "noa@example.com",
				Password: "secret12345",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Username).To(Equal("noa"))
			Expect(result.Role).To(Equal(auth.RoleUser))
			Expect(result.Tokens.AccessToken).ToNot(BeEmpty())
			Expect(result.Tokens.RefreshToken).ToNot(BeEmpty())
		})

		It("should reject a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "noa@example.com",
				Password: "wrong-password",
			})

			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("should reject an unknown email with the same error", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "nobody@example.com",
				Password: "secret12345",
			})

			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})
	})

	Describe("Token lifecycle", func() {
		var tokens auth.AuthTokens

		BeforeEach(func() {
			_, err := service.Register(registerDTO())
			Expect(err).ToNot(HaveOccurred())

			result, err := service.Authenticate(auth.LoginDTO{
				Email:    "noa@example.com",
				Password: "secret12345",
			})
			Expect(err).ToNot(HaveOccurred())
			tokens = result.Tokens
		})

		It("should validate an issued access token and return its claims", func() {
			claims, err := service.ValidateAccessToken(tokens.AccessToken)

			Expect(err).ToNot(HaveOccurred())
			Expect(claims.Username).To(Equal("noa"))
			Expect(claims.Role).To(Equal(auth.RoleUser))
			Expect(claims.UserID).To(BeNumerically(">", 0))
		})

		It("should reject a garbage token", func() {
			_, err := service.ValidateAccessToken("not-a-token")
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("should not accept a refresh token as an access token", func() {
			_, err := service.ValidateAccessToken(tokens.RefreshToken)
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("should rotate the pair on refresh", func() {
			rotated, err := service.RefreshTokens(tokens.RefreshToken)

			Expect(err).ToNot(HaveOccurred())
			Expect(rotated.AccessToken).ToNot(BeEmpty())
			Expect(rotated.RefreshToken).ToNot(BeEmpty())

			claims, err := service.ValidateAccessToken(rotated.AccessToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.Username).To(Equal("noa"))
		})

		It("should reject an expired token", func() {
			expiredGen := auth.NewJWTTokenGenerator(
				"test-access-secret-0123456789abcdef",
				"test-refresh-secret-0123456789abcdef",
				-time.Minute,
				-time.Minute,
			)
			token, err := expiredGen.GenerateAccessToken(1, "noa", auth.RoleUser)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.ValidateAccessToken(token)
			Expect(err).To(Equal(internal.ErrTokenExpired))
		})
	})
})
