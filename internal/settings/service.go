package settings

import (
	"log/slog"
	"strconv"
)

// Service reads and writes system settings. BorrowPolicy is consulted at the
// start of every borrow/extension validation and is deliberately never
// cached, so tests and admins can change limits between calls.
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// BorrowPolicy returns the effective limits, falling back to defaults when a
// key is absent or not an integer.
func (s *Service) BorrowPolicy() (BorrowPolicy, error) {
	days, err := s.intSetting(KeyMaxBorrowDays, DefaultMaxBorrowDays)
	if err != nil {
		return BorrowPolicy{}, err
	}

	items, err := s.intSetting(KeyMaxBorrowItems, DefaultMaxBorrowItems)
	if err != nil {
		return BorrowPolicy{}, err
	}

	return BorrowPolicy{MaxBorrowDays: days, MaxBorrowItems: items}, nil
}

func (s *Service) intSetting(key string, fallback int) (int, error) {
	raw, found, err := s.repo.Get(key)
	if err != nil {
		return 0, err
	}
	if !found {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		s.logger.Warn("malformed setting value, using default", "key", key, "value", raw)
		return fallback, nil
	}
	return v, nil
}

// Update validates and persists a single setting.
func (s *Service) Update(dto UpdateSettingDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if err := s.repo.Set(dto.Key, strconv.Itoa(dto.Value)); err != nil {
		s.logger.Error("failed to update setting", "error", err, "key", dto.Key)
		return err
	}

	s.logger.Info("setting updated", "key", dto.Key, "value", dto.Value)
	return nil
}
