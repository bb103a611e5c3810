package host

import (
	"github.com/carson-networks/kiosk-host/internal/ledger"
)

// depositFunds credits an account with inserted cash. A deposit is a single
// atomic mutation; the note reader has already counted the cash by the time
// this call is made. The daily-cap slot is claimed up front and returned on
// any validation failure.
func (h *Host) depositFunds(req *Request, member *ledger.Member) *Response {
	receiptNo := h.nextReceipt()

	if err := member.BeginTransaction(); err != nil {
		return h.failErr(req, err)
	}
	if req.Request.AccountID == "" {
		member.AbortTransaction()
		return h.fail(req, ledger.CodeInvalidAccount, "No account specified")
	}
	acct, ok := member.Account(req.Request.AccountID)
	if !ok {
		member.AbortTransaction()
		return h.fail(req, ledger.CodeInvalidAccount, "The specified account does not exist or is not accessible to the member")
	}
	if !req.Request.Amount.IsPositive() {
		member.AbortTransaction()
		return h.fail(req, ledger.CodeInvalidAmount, "Deposit amount must be greater than 0")
	}

	acct.Deposit(req.Request.Amount)
	member.RecordTransaction(ledger.Transaction{
		Kind:    ledger.TransactionDeposit,
		Account: acct.ID(),
		Amount:  req.Request.Amount,
		Receipt: receiptNo,
	})
	return h.respond(req, Payload{
		Result:    ResultSuccess,
		Balance:   balanceFrom(acct.Balance()),
		ReceiptNo: receiptNo,
	})
}
