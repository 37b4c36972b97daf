package user_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/levkatan/lending-management/internal"
	"github.com/levkatan/lending-management/internal/auth"
	userDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/user"
	"github.com/levkatan/lending-management/internal/user"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

type mockUserRepository struct {
	users  map[int64]*userDatamodel.User
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[int64]*userDatamodel.User),
		nextID: 1,
	}
}

func (m *mockUserRepository) add(username, role string) *userDatamodel.User {
	u := &userDatamodel.User{
		ID:       m.nextID,
		FullName: "Test " + username,
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	m.nextID++
	m.users[u.ID] = u
	return u
}

func (m *mockUserRepository) List() ([]*userDatamodel.User, error) {
	var rows []*userDatamodel.User
	for _, u := range m.users {
		rows = append(rows, u)
	}
	return rows, nil
}

func (m *mockUserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	u, exists := m.users[id]
	if !exists {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) Update(u *userDatamodel.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) Delete(id int64) error {
	delete(m.users, id)
	return nil
}

var _ = Describe("UserService", func() {
	var (
		service  *user.Service
		mockRepo *mockUserRepository
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(mockRepo, logger)
	})

	Describe("List", func() {
		It("should return every account without credential hashes", func() {
			mockRepo.add("noa", auth.RoleUser)
			mockRepo.add("dana", auth.RoleEmployee)

			users, err := service.List()

			Expect(err).ToNot(HaveOccurred())
			Expect(users).To(HaveLen(2))
		})
	})

	Describe("UpdateRole", func() {
		It("should promote a user to employee", func() {
			u := mockRepo.add("noa", auth.RoleUser)

			updated, err := service.UpdateRole(u.ID, user.UpdateRoleDTO{Role: auth.RoleEmployee})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Role).To(Equal(auth.RoleEmployee))
			Expect(mockRepo.users[u.ID].Role).To(Equal(auth.RoleEmployee))
		})

		It("should reject an unknown role", func() {
			u := mockRepo.add("noa", auth.RoleUser)

			_, err := service.UpdateRole(u.ID, user.UpdateRoleDTO{Role: "superuser"})

			Expect(err).To(HaveOccurred())
			Expect(mockRepo.users[u.ID].Role).To(Equal(auth.RoleUser))
		})

		It("should report a missing account", func() {
			_, err := service.UpdateRole(9999, user.UpdateRoleDTO{Role: auth.RoleAdmin})
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})

	Describe("Delete", func() {
		It("should remove an existing account", func() {
			u := mockRepo.add("noa", auth.RoleUser)

			Expect(service.Delete(u.ID)).To(Succeed())
			Expect(mockRepo.users).To(BeEmpty())
		})

		It("should report a missing account", func() {
			err := service.Delete(9999)
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})
})
