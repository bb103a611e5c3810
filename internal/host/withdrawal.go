package host

import (
	"github.com/carson-networks/kiosk-host/internal/ledger"
)

// authorizeWithdrawal is the first half of the two-phase withdrawal: funds
// are reserved and become unavailable immediately, but the balance is not
// touched until the dispenser reports success and applywithdrawal commits.
func (h *Host) authorizeWithdrawal(req *Request, member *ledger.Member) *Response {
	if err := member.CanTransact(); err != nil {
		return h.failErr(req, err)
	}
	if req.Request.AccountID == "" {
		return h.fail(req, ledger.CodeInvalidAccount, "No account specified")
	}
	acct, ok := member.Account(req.Request.AccountID)
	if !ok {
		return h.fail(req, ledger.CodeInvalidAccount, "The specified account does not exist or is not accessible to the member")
	}
	if !req.Request.Amount.IsPositive() {
		return h.fail(req, ledger.CodeInvalidAmount, "Authorize amount must be greater than 0")
	}

	lockID, err := acct.Reserve(req.Request.Amount)
	if err != nil {
		return h.failErr(req, err)
	}
	return h.respond(req, Payload{
		Result:  ResultSuccess,
		LockID:  lockID,
		Balance: balanceFrom(acct.Balance()),
	})
}

// applyWithdrawal commits a reservation after the cash has definitely been
// dispensed, and logs the transaction against the member's daily cap. The
// cap slot is claimed before the commit so concurrent applies cannot
// overshoot it.
func (h *Host) applyWithdrawal(req *Request, member *ledger.Member) *Response {
	receiptNo := h.nextReceipt()

	if err := member.BeginTransaction(); err != nil {
		return h.failErr(req, err)
	}
	if req.Request.LockID <= 0 {
		member.AbortTransaction()
		return h.fail(req, ledger.CodeInvalidLock, "A lock to apply was not specified")
	}
	acct, ok := member.AccountWithLock(req.Request.LockID)
	if !ok {
		member.AbortTransaction()
		return h.fail(req, ledger.CodeInvalidLock, "The specified lock does not exist")
	}

	amount, err := acct.Commit(req.Request.LockID)
	if err != nil {
		member.AbortTransaction()
		return h.failErr(req, err)
	}
	member.RecordTransaction(ledger.Transaction{
		Kind:    ledger.TransactionWithdrawal,
		Account: acct.ID(),
		Amount:  amount,
		Receipt: receiptNo,
	})
	return h.respond(req, Payload{
		Result:    ResultSuccess,
		Balance:   balanceFrom(acct.Balance()),
		ReceiptNo: receiptNo,
	})
}

// releaseWithdrawal abandons a reservation after a downstream failure (e.g.
// the dispenser jammed), restoring availability without touching the total.
func (h *Host) releaseWithdrawal(req *Request, member *ledger.Member) *Response {
	if req.Request.LockID <= 0 {
		return h.fail(req, ledger.CodeInvalidLock, "A lock to release was not specified")
	}
	acct, ok := member.AccountWithLock(req.Request.LockID)
	if !ok {
		return h.fail(req, ledger.CodeInvalidLock, "The specified lock does not exist")
	}

	if err := acct.Release(req.Request.LockID); err != nil {
		return h.failErr(req, err)
	}
	return h.respond(req, Payload{
		Result:  ResultSuccess,
		Balance: balanceFrom(acct.Balance()),
	})
}
