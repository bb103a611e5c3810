package host

import "strings"

// Call is the closed set of host API calls. The call string is parsed once
// at the dispatch boundary; everything downstream switches on the enum.
type Call int8

const (
	CallAuthenticateByCard Call = iota
	CallListAccountsByType
	CallListAccountsForOperation
	CallAccountBalance
	CallAuthorizeWithdrawal
	CallApplyWithdrawal
	CallReleaseWithdrawal
	CallTransferFunds
	CallDepositFunds
	CallTeardownSession
)

// ParseCall maps a request call string (case-insensitive) to a Call.
func ParseCall(s string) (Call, bool) {
	switch strings.ToLower(s) {
	case "authenticatebycard":
		return CallAuthenticateByCard, true
	case "listaccountsbytype":
		return CallListAccountsByType, true
	case "listaccountsforoperation":
		return CallListAccountsForOperation, true
	case "accountbalance":
		return CallAccountBalance, true
	case "authorizewithdrawal":
		return CallAuthorizeWithdrawal, true
	case "applywithdrawal":
		return CallApplyWithdrawal, true
	case "releasewithdrawal":
		return CallReleaseWithdrawal, true
	case "transferfunds":
		return CallTransferFunds, true
	case "depositfunds":
		return CallDepositFunds, true
	case "teardownsession":
		return CallTeardownSession, true
	}
	return 0, false
}

// Operation is the closed set of counterparty-listing operations.
type Operation int8

const (
	OperationTransfer Operation = iota
	OperationDeposit
	OperationWithdraw
)

// ParseOperation maps an operation string (case-insensitive) to an Operation.
func ParseOperation(s string) (Operation, bool) {
	switch strings.ToLower(s) {
	case "transfer":
		return OperationTransfer, true
	case "deposit":
		return OperationDeposit, true
	case "withdraw":
		return OperationWithdraw, true
	}
	return 0, false
}
