package settings_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/levkatan/lending-management/internal/settings"
)

func TestSettingsService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Settings Service Suite")
}

type mockSettingsRepository struct {
	values   map[string]string
	getError error
	setError error
}

func newMockSettingsRepository() *mockSettingsRepository {
	return &mockSettingsRepository{values: make(map[string]string)}
}

func (m *mockSettingsRepository) Get(key string) (string, bool, error) {
	if m.getError != nil {
		return "", false, m.getError
	}
	v, found := m.values[key]
	return v, found, nil
}

func (m *mockSettingsRepository) Set(key, value string) error {
	if m.setError != nil {
		return m.setError
	}
	m.values[key] = value
	return nil
}

var _ = Describe("SettingsService", func() {
	var (
		service  *settings.Service
		mockRepo *mockSettingsRepository
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockSettingsRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = settings.NewService(mockRepo, logger)
	})

	Describe("BorrowPolicy", func() {
		It("should fall back to defaults when keys are absent", func() {
			policy, err := service.BorrowPolicy()

			Expect(err).ToNot(HaveOccurred())
			Expect(policy.MaxBorrowDays).To(Equal(settings.DefaultMaxBorrowDays))
			Expect(policy.MaxBorrowItems).To(Equal(settings.DefaultMaxBorrowItems))
		})

		It("should return stored values", func() {
			mockRepo.values[settings.KeyMaxBorrowDays] = "21"
			mockRepo.values[settings.KeyMaxBorrowItems] = "5"

			policy, err := service.BorrowPolicy()

			Expect(err).ToNot(HaveOccurred())
			Expect(policy.MaxBorrowDays).To(Equal(21))
			Expect(policy.MaxBorrowItems).To(Equal(5))
		})

		It("should fall back to the default on a malformed value", func() {
			mockRepo.values[settings.KeyMaxBorrowDays] = "three weeks"

			policy, err := service.BorrowPolicy()

			Expect(err).ToNot(HaveOccurred())
			Expect(policy.MaxBorrowDays).To(Equal(settings.DefaultMaxBorrowDays))
		})

		It("should fall back to the default on a non-positive value", func() {
			mockRepo.values[settings.KeyMaxBorrowItems] = "0"

			policy, err := service.BorrowPolicy()

			Expect(err).ToNot(HaveOccurred())
			Expect(policy.MaxBorrowItems).To(Equal(settings.DefaultMaxBorrowItems))
		})

		It("should reflect an update on the very next read", func() {
			before, err := service.BorrowPolicy()
			Expect(err).ToNot(HaveOccurred())
			Expect(before.MaxBorrowDays).To(Equal(settings.DefaultMaxBorrowDays))

			err = service.Update(settings.UpdateSettingDTO{Key: settings.KeyMaxBorrowDays, Value: 7})
			Expect(err).ToNot(HaveOccurred())

			after, err := service.BorrowPolicy()
			Expect(err).ToNot(HaveOccurred())
			Expect(after.MaxBorrowDays).To(Equal(7))
		})

		It("should propagate store failures", func() {
			mockRepo.getError = errors.New("connection refused")

			_, err := service.BorrowPolicy()
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update", func() {
		It("should reject an unknown key", func() {
			err := service.Update(settings.UpdateSettingDTO{Key: "max_borrow_weight", Value: 3})

			Expect(err).To(HaveOccurred())
			Expect(mockRepo.values).To(BeEmpty())
		})

		It("should reject a non-positive value", func() {
			err := service.Update(settings.UpdateSettingDTO{Key: settings.KeyMaxBorrowItems, Value: 0})

			Expect(err).To(HaveOccurred())
			Expect(mockRepo.values).To(BeEmpty())
		})

		It("should persist a valid update", func() {
			err := service.Update(settings.UpdateSettingDTO{Key: settings.KeyMaxBorrowItems, Value: 5})

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.values[settings.KeyMaxBorrowItems]).To(Equal("5"))
		})
	})
})
