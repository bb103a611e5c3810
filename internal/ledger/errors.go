package ledger

// Error codes returned by the host. These travel inside error envelopes,
// never as transport-level failures.
const (
	CodeBadRequest                = "BAD_REQUEST"
	CodeNoCard                    = "NO_CARD"
	CodeNoPIN                     = "NO_PIN"
	CodeInvalidCard               = "INVALID_CARD"
	CodeCardLocked                = "CARD_LOCKED"
	CodeNoSession                 = "NO_SESSION"
	CodeInvalidSession            = "INVALID_SESSION"
	CodeSessionExpired            = "SESSION_EXPIRED"
	CodeInvalidType               = "INVALID_TYPE"
	CodeInvalidOperation          = "INVALID_OPERATION"
	CodeInvalidAccount            = "INVALID_ACCOUNT"
	CodeInvalidSourceAccount      = "INVALID_SOURCE_ACCOUNT"
	CodeInvalidDestinationAccount = "INVALID_DESTINATION_ACCOUNT"
	CodeInvalidAmount             = "INVALID_AMOUNT"
	CodeInvalidLock               = "INVALID_LOCK"
	CodeInsufficientAvailable     = "INSUFFICIENT_AVAILABLE"
	CodeLimitExceeded             = "LIMIT_EXCEEDED"
	CodeDailyLimitExceeded        = "DAILY_LIMIT_EXCEEDED"
	CodeNoLocks                   = "NO_LOCKS"
	CodeLockNotFound              = "LOCK_NOT_FOUND"
	CodeInvalidCall               = "INVALID_CALL"
)

// Error is a structured domain error carrying a stable code alongside a
// human-readable message. Business-rule failures leave ledger state unchanged.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// NewError creates a domain error with the given code and message.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

var (
	ErrInsufficientAvailable = NewError(CodeInsufficientAvailable, "requested amount exceeds available funds")
	ErrLimitExceeded         = NewError(CodeLimitExceeded, "requested amount exceeds the per-transaction limit")
	ErrNoLocks               = NewError(CodeNoLocks, "the account has no outstanding locks")
	ErrLockNotFound          = NewError(CodeLockNotFound, "the specified lock does not exist")
	ErrDailyLimitExceeded    = NewError(CodeDailyLimitExceeded, "the member has already performed the maximum number of transactions today")
	ErrCardLocked            = NewError(CodeCardLocked, "the card has been locked after too many failed PIN attempts")
	ErrInvalidAmount         = NewError(CodeInvalidAmount, "amount must be greater than 0")
)
