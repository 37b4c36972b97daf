package loan

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/levkatan/lending-management/internal"
	loanDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/loan"
	"github.com/levkatan/lending-management/internal/settings"
)

// RepositoryAPI is the transactional boundary of the lifecycle engine. Every
// transition method runs read-check-write inside a single transaction so that
// concurrent attempts on the same product or request cannot both succeed.
type RepositoryAPI interface {
	CreateBorrow(req *loanDatamodel.BorrowRequest, maxItems int) error
	GetBorrowByID(id int64) (*loanDatamodel.BorrowRequest, error)
	ListByUser(userID int64) ([]*loanDatamodel.BorrowRequest, error)
	ListByStatus(status string) ([]*loanDatamodel.BorrowRequest, error)
	ApproveBorrow(id int64) (*loanDatamodel.BorrowRequest, error)
	RejectBorrow(id int64) (*loanDatamodel.BorrowRequest, error)
	ReturnBorrow(id int64, returnedDate time.Time) (*loanDatamodel.BorrowRequest, error)

	CreateExtension(ext *loanDatamodel.ExtensionRequest) error
	ListExtensionsByStatus(status string) ([]*loanDatamodel.ExtensionRequest, error)
	ApproveExtension(id int64) (*loanDatamodel.ExtensionRequest, error)
	RejectExtension(id int64) (*loanDatamodel.ExtensionRequest, error)
}

// PolicyProvider yields the current borrowing limits. It is read at the start
// of every validation rather than cached, so an admin change takes effect on
// the next request.
type PolicyProvider interface {
	BorrowPolicy() (settings.BorrowPolicy, error)
}

type Service struct {
	repo   RepositoryAPI
	policy PolicyProvider
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, policy PolicyProvider, logger *slog.Logger) *Service {
	return &Service{repo: repo, policy: policy, logger: logger}
}

// Borrow validates quota and date window, then atomically creates the request
// and flips the product out of the catalog. Validation failures leave the
// store untouched.
func (s *Service) Borrow(userID int64, dto CreateBorrowDTO) (*BorrowRequest, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	policy, err := s.policy.BorrowPolicy()
	if err != nil {
		s.logger.Error("failed to read borrow policy", "error", err)
		return nil, internal.NewInternalError("failed to read borrow policy", err)
	}

	returnDate := dto.ParsedDate()
	if err := validateReturnDate(returnDate, policy.MaxBorrowDays); err != nil {
		return nil, err
	}

	now := time.Now()
	row := &loanDatamodel.BorrowRequest{
		UserID:       userID,
		ProductID:    dto.ProductID,
		ReturnedDate: &returnDate,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateBorrow(row, policy.MaxBorrowItems); err != nil {
		s.logger.Warn("borrow attempt rejected",
			"error", err,
			"user_id", userID,
			"product_id", dto.ProductID,
		)
		return nil, err
	}

	s.logger.Info("borrow request created",
		"request_id", row.ID,
		"user_id", userID,
		"product_id", dto.ProductID,
		"returned_date", returnDate.Format(dateLayout),
	)
	return FromDataModel(row), nil
}

func (s *Service) ListMine(userID int64) ([]*BorrowRequest, error) {
	rows, err := s.repo.ListByUser(userID)
	if err != nil {
		s.logger.Error("failed to list borrow requests", "error", err, "user_id", userID)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) ListPending() ([]*BorrowRequest, error) {
	rows, err := s.repo.ListByStatus(StatusPending)
	if err != nil {
		s.logger.Error("failed to list pending requests", "error", err)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

// Approve moves a pending request to approved and the product to borrowed.
func (s *Service) Approve(id int64) (*BorrowRequest, error) {
	row, err := s.repo.ApproveBorrow(id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("borrow request approved", "request_id", id, "product_id", row.ProductID)
	return FromDataModel(row), nil
}

// Reject moves a pending request to rejected, clears its return date and
// releases the product back to the catalog.
func (s *Service) Reject(id int64) (*BorrowRequest, error) {
	row, err := s.repo.RejectBorrow(id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("borrow request rejected", "request_id", id, "product_id", row.ProductID)
	return FromDataModel(row), nil
}

// Return closes an approved loan. The borrower may return their own loan;
// staff may return any loan.
func (s *Service) Return(id int64, requesterID int64, isStaff bool) (*BorrowRequest, error) {
	existing, err := s.repo.GetBorrowByID(id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != requesterID && !isStaff {
		return nil, internal.ErrForbiddenRole
	}

	today := dateOnly(time.Now())
	row, err := s.repo.ReturnBorrow(id, today)
	if err != nil {
		return nil, err
	}

	s.logger.Info("loan returned", "request_id", id, "product_id", row.ProductID)
	return FromDataModel(row), nil
}

// RequestExtension creates an extension_pending record on the borrower's own
// approved loan. At most one pending extension may exist per loan.
func (s *Service) RequestExtension(borrowID int64, requesterID int64, dto ExtensionDTO) (*ExtensionRequest, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	parent, err := s.repo.GetBorrowByID(borrowID)
	if err != nil {
		return nil, err
	}
	if parent.UserID != requesterID {
		return nil, internal.ErrForbiddenRole
	}
	if parent.Status != StatusApproved {
		return nil, internal.ErrInvalidStatus
	}

	policy, err := s.policy.BorrowPolicy()
	if err != nil {
		s.logger.Error("failed to read borrow policy", "error", err)
		return nil, internal.NewInternalError("failed to read borrow policy", err)
	}

	newDate := dto.ParsedDate()
	if err := validateReturnDate(newDate, policy.MaxBorrowDays); err != nil {
		return nil, err
	}

	now := time.Now()
	row := &loanDatamodel.ExtensionRequest{
		BorrowRequestID: borrowID,
		NewReturnedDate: newDate,
		Status:          ExtensionStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.CreateExtension(row); err != nil {
		s.logger.Warn("extension attempt rejected", "error", err, "request_id", borrowID)
		return nil, err
	}

	s.logger.Info("extension request created",
		"extension_id", row.ID,
		"request_id", borrowID,
		"new_returned_date", newDate.Format(dateLayout),
	)
	return ExtensionFromDataModel(row), nil
}

func (s *Service) ListPendingExtensions() ([]*ExtensionRequest, error) {
	rows, err := s.repo.ListExtensionsByStatus(ExtensionStatusPending)
	if err != nil {
		s.logger.Error("failed to list pending extensions", "error", err)
		return nil, err
	}
	return ExtensionFromDataModelSlice(rows), nil
}

// ApproveExtension applies the proposed date to the parent loan.
func (s *Service) ApproveExtension(id int64) (*ExtensionRequest, error) {
	row, err := s.repo.ApproveExtension(id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("extension approved", "extension_id", id, "request_id", row.BorrowRequestID)
	return ExtensionFromDataModel(row), nil
}

// RejectExtension closes the extension without touching the parent loan.
func (s *Service) RejectExtension(id int64) (*ExtensionRequest, error) {
	row, err := s.repo.RejectExtension(id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("extension rejected", "extension_id", id, "request_id", row.BorrowRequestID)
	return ExtensionFromDataModel(row), nil
}

// validateReturnDate enforces the loan window: today < date <= today+maxDays,
// at date granularity.
func validateReturnDate(date time.Time, maxDays int) error {
	today := dateOnly(time.Now())
	target := dateOnly(date)

	if !target.After(today) {
		return internal.NewValidationError("return date must be after today", internal.ErrCodeInvalidDate)
	}
	if target.After(today.AddDate(0, 0, maxDays)) {
		msg := fmt.Sprintf("return date may be at most %d days from today", maxDays)
		return internal.NewValidationError(msg, internal.ErrCodeInvalidDate)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
