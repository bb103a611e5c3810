package host

import (
	"github.com/carson-networks/kiosk-host/internal/ledger"
)

func (h *Host) listAccountsByType(req *Request, member *ledger.Member) *Response {
	filter := req.Request.Type
	if filter != "ALL" {
		if _, ok := ledger.ParseAccountType(filter); !ok {
			return h.fail(req, ledger.CodeInvalidType, "The specified account type is invalid")
		}
	}

	accounts := make([]AccountSummary, 0)
	for _, a := range member.Accounts() {
		if filter == "ALL" || a.Type().String() == filter {
			accounts = append(accounts, summarize(a))
		}
	}
	return h.respond(req, Payload{Result: ResultSuccess, Accounts: accounts})
}

func (h *Host) listAccountsForOperation(req *Request, member *ledger.Member) *Response {
	if req.Request.Operation == "" {
		return h.fail(req, ledger.CodeInvalidOperation, "An operation was not specified")
	}
	op, ok := ParseOperation(req.Request.Operation)
	if !ok {
		return h.fail(req, ledger.CodeInvalidOperation, "The specified operation is not valid")
	}

	accounts := make([]AccountSummary, 0)
	switch op {
	case OperationTransfer:
		source, ok := member.Account(req.Request.SourceID)
		if !ok {
			return h.fail(req, ledger.CodeInvalidSourceAccount, "The specified source account does not exist or is not accessible to the member")
		}
		if source.Type() == ledger.AccountTypeLoan && !source.HasRedraw() {
			return h.fail(req, ledger.CodeInvalidSourceAccount, "Cannot transfer from loan accounts without redraw facilities")
		}
		for _, a := range member.Accounts() {
			if a.ID() != source.ID() && canReceive(a) {
				accounts = append(accounts, summarize(a))
			}
		}
	case OperationDeposit:
		for _, a := range member.Accounts() {
			if canReceive(a) {
				accounts = append(accounts, summarize(a))
			}
		}
	case OperationWithdraw:
		for _, a := range member.Accounts() {
			if a.Balance().Available.IsPositive() {
				accounts = append(accounts, summarize(a))
			}
		}
	}
	return h.respond(req, Payload{Result: ResultSuccess, Accounts: accounts})
}

// canReceive reports whether an account is eligible as the receiving side of
// a transfer or deposit: paid-off loans and fully drawn credit accounts are
// excluded.
func canReceive(a *ledger.Account) bool {
	b := a.Balance()
	if a.Type() == ledger.AccountTypeLoan && b.Total.IsZero() {
		return false
	}
	if a.Type() == ledger.AccountTypeCredit && b.Total.Equal(b.Limit) {
		return false
	}
	return true
}

func (h *Host) accountBalance(req *Request, member *ledger.Member) *Response {
	if req.Request.AccountID == "" {
		return h.fail(req, ledger.CodeInvalidAccount, "No account specified")
	}
	acct, ok := member.Account(req.Request.AccountID)
	if !ok {
		return h.fail(req, ledger.CodeInvalidAccount, "The specified account does not exist or is not accessible to the member")
	}
	return h.respond(req, Payload{
		Result:  ResultSuccess,
		Balance: balanceFrom(acct.Balance()),
	})
}
