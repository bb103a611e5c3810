package host

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/kiosk-host/internal/ledger"
)

// Result values carried in response payloads. A PIN mismatch is a "fail"
// result inside a success envelope, since retry is expected; protocol and
// business-rule failures are "error" envelopes.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultFail    = "fail"
)

// System identifies the terminal interaction a request belongs to.
type System struct {
	SessionID  string `json:"session_id,omitempty"`
	RequestID  int64  `json:"request_id"`
	TerminalID int64  `json:"terminal_id,omitempty"`
}

// Request is the call envelope consumed by the host. It exists only for the
// duration of one call.
type Request struct {
	System  System      `json:"system"`
	Request RequestBody `json:"request"`
}

// RequestBody carries the call name plus the union of call-specific fields.
type RequestBody struct {
	Call          string          `json:"call"`
	CardNumber    string          `json:"card_number,omitempty"`
	PIN           string          `json:"pin,omitempty"`
	Type          string          `json:"type,omitempty"`
	Operation     string          `json:"operation,omitempty"`
	AccountID     string          `json:"account_id,omitempty"`
	SourceID      string          `json:"source_id,omitempty"`
	DestinationID string          `json:"destination_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	LockID        int64           `json:"lock_id,omitempty"`
}

// ResponseSystem echoes the session and request identifiers of the call.
type ResponseSystem struct {
	SessionID string `json:"session_id"`
	RequestID int64  `json:"request_id"`
}

// Response is the envelope returned for every call, success or error.
type Response struct {
	System   ResponseSystem `json:"system"`
	Response Payload        `json:"response"`
}

// Payload is the union of response fields across the call catalogue.
type Payload struct {
	Result       string           `json:"result"`
	ErrorCode    string           `json:"error_code,omitempty"`
	Error        string           `json:"error,omitempty"`
	ValidTo      *time.Time       `json:"valid_to,omitempty"`
	Name         string           `json:"name,omitempty"`
	FirstName    string           `json:"firstName,omitempty"`
	FailureCount int              `json:"failure_count,omitempty"`
	Accounts     []AccountSummary `json:"accounts,omitempty"`
	Balance      *Balance         `json:"balance,omitempty"`
	LockID       int64            `json:"lock_id,omitempty"`
	ReceiptNo    int64            `json:"receipt_no,omitempty"`
	Source       *AccountBalance  `json:"source,omitempty"`
	Destination  *AccountBalance  `json:"destination,omitempty"`
}

// Balance is the wire form of a balance snapshot. Amounts are decimal
// strings, never binary floats.
type Balance struct {
	Total     string `json:"total"`
	Locked    string `json:"locked"`
	Available string `json:"available"`
	Limit     string `json:"limit"`
	Pending   string `json:"pending"`
}

// AccountBalance wraps a Balance for the transfer response, which reports
// both sides.
type AccountBalance struct {
	Balance Balance `json:"balance"`
}

// AccountSummary is the projection of an account used by the list calls.
type AccountSummary struct {
	AccountID string `json:"account_id"`
	Type      string `json:"type"`
	Name      string `json:"name"`
	Balance   string `json:"balance"`
	Available string `json:"available"`
	Limit     string `json:"limit"`
	HasRedraw bool   `json:"hasRedraw"`
}

func balanceFrom(s ledger.BalanceSnapshot) *Balance {
	return &Balance{
		Total:     s.Total.String(),
		Locked:    s.Locked.String(),
		Available: s.Available.String(),
		Limit:     s.Limit.String(),
		Pending:   s.Pending.String(),
	}
}

func summarize(a *ledger.Account) AccountSummary {
	b := a.Balance()
	return AccountSummary{
		AccountID: a.ID(),
		Type:      a.Type().String(),
		Name:      a.Name(),
		Balance:   b.Total.String(),
		Available: b.Available.String(),
		Limit:     b.Limit.String(),
		HasRedraw: a.HasRedraw(),
	}
}
