package settings

// System-wide borrowing limits live in the settings table as strings and are
// parsed on every read. Defaults apply whenever a key is absent or malformed.
const (
	KeyMaxBorrowDays  = "max_borrow_days"
	KeyMaxBorrowItems = "max_borrow_items"

	DefaultMaxBorrowDays  = 14
	DefaultMaxBorrowItems = 3
)

// BorrowPolicy is the effective limit pair read by every borrow/extension
// validation.
type BorrowPolicy struct {
	MaxBorrowDays  int `json:"max_borrow_days"`
	MaxBorrowItems int `json:"max_borrow_items"`
}

type RepositoryAPI interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

func KnownKey(key string) bool {
	return key == KeyMaxBorrowDays || key == KeyMaxBorrowItems
}
