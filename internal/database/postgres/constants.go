package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeCheckViolation is the PostgreSQL error code for check constraint violations
	PgErrorCodeCheckViolation = "23514"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Collection Item Operations
const (
	ErrMsgFailedToInsertItem    = "failed to insert collection item"
	ErrMsgFailedToGetItem       = "failed to get collection item"
	ErrMsgFailedToListItems     = "failed to list collection items"
	ErrMsgFailedToCountItems    = "failed to count collection items"
	ErrMsgFailedToUpdateItem    = "failed to update collection item"
	ErrMsgFailedToDeleteItem    = "failed to delete collection item"
	ErrMsgDuplicateCardtraderID = "cardtrader id already present"
	ErrMsgQuantityConstraint    = "quantity constraint violated"
)
