package host

import (
	"github.com/carson-networks/kiosk-host/internal/ledger"
)

// transferFunds moves money between two of the member's accounts as a single
// atomic ledger mutation. There is no reservation step: transfers have no
// external hardware side effect that can partially fail. The daily-cap slot
// is claimed up front and returned on any failure.
func (h *Host) transferFunds(req *Request, member *ledger.Member) *Response {
	receiptNo := h.nextReceipt()

	if err := member.BeginTransaction(); err != nil {
		return h.failErr(req, err)
	}
	source, ok := member.Account(req.Request.SourceID)
	if !ok {
		member.AbortTransaction()
		return h.fail(req, ledger.CodeInvalidSourceAccount, "The specified source account does not exist or is not accessible to the member")
	}
	if source.Type() == ledger.AccountTypeLoan && !source.HasRedraw() {
		member.AbortTransaction()
		return h.fail(req, ledger.CodeInvalidSourceAccount, "Cannot transfer from loan accounts without redraw facilities")
	}
	destination, ok := member.Account(req.Request.DestinationID)
	if !ok {
		member.AbortTransaction()
		return h.fail(req, ledger.CodeInvalidDestinationAccount, "The specified destination account does not exist or is not accessible to the member")
	}
	if destination.ID() == source.ID() {
		member.AbortTransaction()
		return h.fail(req, ledger.CodeInvalidDestinationAccount, "Cannot transfer an account to itself")
	}
	if !req.Request.Amount.IsPositive() {
		member.AbortTransaction()
		return h.fail(req, ledger.CodeInvalidAmount, "Transfer amount must be greater than 0")
	}

	if err := ledger.Transfer(source, destination, req.Request.Amount); err != nil {
		member.AbortTransaction()
		return h.failErr(req, err)
	}
	member.RecordTransaction(ledger.Transaction{
		Kind:        ledger.TransactionTransfer,
		Account:     source.ID(),
		Destination: destination.ID(),
		Amount:      req.Request.Amount,
		Receipt:     receiptNo,
	})
	return h.respond(req, Payload{
		Result:      ResultSuccess,
		Source:      &AccountBalance{Balance: *balanceFrom(source.Balance())},
		Destination: &AccountBalance{Balance: *balanceFrom(destination.Balance())},
		ReceiptNo:   receiptNo,
	})
}
