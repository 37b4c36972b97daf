package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/levkatan/lending-management/internal"
	loanDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/loan"
	productDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/product"
	"github.com/levkatan/lending-management/internal/loan"
	"github.com/levkatan/lending-management/internal/product"
)

// LoanRepository implements loan.RepositoryAPI. Every lifecycle transition
// runs inside a transaction and uses status-guarded updates (WHERE status = ?
// plus a RowsAffected check) so that of two racing transitions only one can
// observe the precondition state; the loser sees zero affected rows and the
// whole transaction rolls back.
type LoanRepository struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) loan.RepositoryAPI {
	return &LoanRepository{db: db}
}

// CreateBorrow checks the quota, flips the product out of the catalog and
// inserts the request as one atomic unit.
func (r *LoanRepository) CreateBorrow(req *loanDatamodel.BorrowRequest, maxItems int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Lock the borrower's user row for the rest of the transaction.
		// Without it two concurrent requests for different products could
		// both count under the cap and both insert.
		lock := tx.Exec("UPDATE users SET id = id WHERE id = ?", req.UserID)
		if lock.Error != nil {
			return lock.Error
		}
		if lock.RowsAffected == 0 {
			return internal.ErrUserNotFound
		}

		var active int64
		err := tx.Model(&loanDatamodel.BorrowRequest{}).
			Where("user_id = ? AND status IN ?", req.UserID, loan.ActiveStatuses).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active >= int64(maxItems) {
			return internal.ErrQuotaExceeded
		}

		res := tx.Model(&productDatamodel.Product{}).
			Where("id = ? AND status = ?", req.ProductID, product.StatusAvailable).
			Update("status", product.StatusConfirmationPending)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var p productDatamodel.Product
			if err := tx.Where("id = ?", req.ProductID).First(&p).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return internal.ErrProductNotFound
				}
				return err
			}
			return internal.ErrProductUnavailable
		}

		return tx.Create(req).Error
	})
}

func (r *LoanRepository) GetBorrowByID(id int64) (*loanDatamodel.BorrowRequest, error) {
	var row loanDatamodel.BorrowRequest
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRequestNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *LoanRepository) ListByUser(userID int64) ([]*loanDatamodel.BorrowRequest, error) {
	var rows []*loanDatamodel.BorrowRequest
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *LoanRepository) ListByStatus(status string) ([]*loanDatamodel.BorrowRequest, error) {
	var rows []*loanDatamodel.BorrowRequest
	err := r.db.Where("status = ?", status).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

// ApproveBorrow moves pending -> approved and the product to borrowed.
func (r *LoanRepository) ApproveBorrow(id int64) (*loanDatamodel.BorrowRequest, error) {
	var row loanDatamodel.BorrowRequest
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := fetchBorrow(tx, id, &row); err != nil {
			return err
		}

		res := tx.Model(&loanDatamodel.BorrowRequest{}).
			Where("id = ? AND status = ?", id, loan.StatusPending).
			Update("status", loan.StatusApproved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrInvalidStatus
		}

		err := tx.Model(&productDatamodel.Product{}).
			Where("id = ?", row.ProductID).
			Update("status", product.StatusBorrowed).Error
		if err != nil {
			return err
		}

		row.Status = loan.StatusApproved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// RejectBorrow moves pending -> rejected, clears the return date and releases
// the product.
func (r *LoanRepository) RejectBorrow(id int64) (*loanDatamodel.BorrowRequest, error) {
	var row loanDatamodel.BorrowRequest
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := fetchBorrow(tx, id, &row); err != nil {
			return err
		}

		res := tx.Model(&loanDatamodel.BorrowRequest{}).
			Where("id = ? AND status = ?", id, loan.StatusPending).
			Updates(map[string]interface{}{
				"status":        loan.StatusRejected,
				"returned_date": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrInvalidStatus
		}

		err := tx.Model(&productDatamodel.Product{}).
			Where("id = ?", row.ProductID).
			Update("status", product.StatusAvailable).Error
		if err != nil {
			return err
		}

		row.Status = loan.StatusRejected
		row.ReturnedDate = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ReturnBorrow moves approved -> returned, stamps the actual return date and
// releases the product.
func (r *LoanRepository) ReturnBorrow(id int64, returnedDate time.Time) (*loanDatamodel.BorrowRequest, error) {
	var row loanDatamodel.BorrowRequest
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := fetchBorrow(tx, id, &row); err != nil {
			return err
		}

		res := tx.Model(&loanDatamodel.BorrowRequest{}).
			Where("id = ? AND status = ?", id, loan.StatusApproved).
			Updates(map[string]interface{}{
				"status":        loan.StatusReturned,
				"returned_date": returnedDate,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrInvalidStatus
		}

		err := tx.Model(&productDatamodel.Product{}).
			Where("id = ?", row.ProductID).
			Update("status", product.StatusAvailable).Error
		if err != nil {
			return err
		}

		row.Status = loan.StatusReturned
		row.ReturnedDate = &returnedDate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// CreateExtension inserts a pending extension, rejecting the insert when one
// is already pending for the same loan.
func (r *LoanRepository) CreateExtension(ext *loanDatamodel.ExtensionRequest) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var pending int64
		err := tx.Model(&loanDatamodel.ExtensionRequest{}).
			Where("borrow_request_id = ? AND status = ?", ext.BorrowRequestID, loan.ExtensionStatusPending).
			Count(&pending).Error
		if err != nil {
			return err
		}
		if pending > 0 {
			return internal.ErrExtensionPending
		}

		return tx.Create(ext).Error
	})
}

func (r *LoanRepository) ListExtensionsByStatus(status string) ([]*loanDatamodel.ExtensionRequest, error) {
	var rows []*loanDatamodel.ExtensionRequest
	err := r.db.Where("status = ?", status).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

// ApproveExtension applies the proposed date to the parent loan and closes
// the extension.
func (r *LoanRepository) ApproveExtension(id int64) (*loanDatamodel.ExtensionRequest, error) {
	var row loanDatamodel.ExtensionRequest
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := fetchExtension(tx, id, &row); err != nil {
			return err
		}

		res := tx.Model(&loanDatamodel.ExtensionRequest{}).
			Where("id = ? AND status = ?", id, loan.ExtensionStatusPending).
			Update("status", loan.ExtensionStatusApproved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrInvalidStatus
		}

		err := tx.Model(&loanDatamodel.BorrowRequest{}).
			Where("id = ?", row.BorrowRequestID).
			Update("returned_date", row.NewReturnedDate).Error
		if err != nil {
			return err
		}

		row.Status = loan.ExtensionStatusApproved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// RejectExtension closes the extension; the parent loan keeps its date.
func (r *LoanRepository) RejectExtension(id int64) (*loanDatamodel.ExtensionRequest, error) {
	var row loanDatamodel.ExtensionRequest
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := fetchExtension(tx, id, &row); err != nil {
			return err
		}

		res := tx.Model(&loanDatamodel.ExtensionRequest{}).
			Where("id = ? AND status = ?", id, loan.ExtensionStatusPending).
			Update("status", loan.ExtensionStatusRejected)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrInvalidStatus
		}

		row.Status = loan.ExtensionStatusRejected
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func fetchBorrow(tx *gorm.DB, id int64, dst *loanDatamodel.BorrowRequest) error {
	err := tx.Where("id = ?", id).First(dst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return internal.ErrRequestNotFound
	}
	return err
}

func fetchExtension(tx *gorm.DB, id int64, dst *loanDatamodel.ExtensionRequest) error {
	err := tx.Where("id = ?", id).First(dst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return internal.ErrExtensionNotFound
	}
	return err
}
