package repository

// RecentLimit bounds the default retrieval path for withdrawals.
const RecentLimit = 50

// Factory describes access to different domain repositories. A factory is
// selected once at process start and every repository it returns shares the
// same backend.
type Factory interface {
	Users() UserRepository
	Withdrawals() WithdrawalRepository
	Receipts() ReceiptStore
	Close()
}
