package host

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/kiosk-host/internal/ledger"
)

// -- Transfer tests --

func TestTransferFunds(t *testing.T) {
	h, member := newTestHost(t, ledger.SystemClock, 5)
	sessionID := authenticate(t, h)

	resp := doCall(h, sessionID, RequestBody{
		Call:          "transferfunds",
		SourceID:      "S1",
		DestinationID: "S2",
		Amount:        decimal.RequireFromString("250.00"),
	})
	assert.Equal(t, ResultSuccess, resp.Response.Result)
	assert.Equal(t, "750", resp.Response.Source.Balance.Total)
	assert.Equal(t, "270", resp.Response.Destination.Balance.Total)
	assert.Positive(t, resp.Response.ReceiptNo)

	txs := member.Transactions()
	assert.Len(t, txs, 1)
	assert.Equal(t, ledger.TransactionTransfer, txs[0].Kind)
	assert.Equal(t, "S1", txs[0].Account)
	assert.Equal(t, "S2", txs[0].Destination)
}

func TestTransferFundsIntoLoanRedraw(t *testing.T) {
	h, _ := newTestHost(t, ledger.SystemClock, 5)
	sessionID := authenticate(t, h)

	// Paying 100 into the home loan shrinks the debt and grows redraw room.
	resp := doCall(h, sessionID, RequestBody{
		Call:          "transferfunds",
		SourceID:      "S1",
		DestinationID: "L1",
		Amount:        decimal.RequireFromString("100.00"),
	})
	assert.Equal(t, ResultSuccess, resp.Response.Result)
	assert.Equal(t, "-100", resp.Response.Destination.Balance.Total)
	assert.Equal(t, "900", resp.Response.Destination.Balance.Available)
}

func TestTransferFundsValidation(t *testing.T) {
	h, _ := newTestHost(t, ledger.SystemClock, 5)
	sessionID := authenticate(t, h)
	amount := decimal.RequireFromString("10.00")

	resp := doCall(h, sessionID, RequestBody{Call: "transferfunds", SourceID: "S9", DestinationID: "S2", Amount: amount})
	assertError(t, resp, ledger.CodeInvalidSourceAccount)

	// Loan without a redraw facility cannot be a transfer source.
	resp = doCall(h, sessionID, RequestBody{Call: "transferfunds", SourceID: "L2", DestinationID: "S2", Amount: amount})
	assertError(t, resp, ledger.CodeInvalidSourceAccount)

	resp = doCall(h, sessionID, RequestBody{Call: "transferfunds", SourceID: "S1", DestinationID: "S9", Amount: amount})
	assertError(t, resp, ledger.CodeInvalidDestinationAccount)

	resp = doCall(h, sessionID, RequestBody{Call: "transferfunds", SourceID: "S1", DestinationID: "S1", Amount: amount})
	assertError(t, resp, ledger.CodeInvalidDestinationAccount)

	resp = doCall(h, sessionID, RequestBody{Call: "transferfunds", SourceID: "S1", DestinationID: "S2"})
	assertError(t, resp, ledger.CodeInvalidAmount)
}

func TestTransferFundsFailureLeavesBalancesUnchanged(t *testing.T) {
	h, member := newTestHost(t, ledger.SystemClock, 5)
	sessionID := authenticate(t, h)

	resp := doCall(h, sessionID, RequestBody{
		Call:          "transferfunds",
		SourceID:      "S2",
		DestinationID: "S1",
		Amount:        decimal.RequireFromString("25.00"),
	})
	assertError(t, resp, ledger.CodeInsufficientAvailable)

	// Over the per-transaction ceiling: refused under the strict reading.
	resp = doCall(h, sessionID, RequestBody{
		Call:          "transferfunds",
		SourceID:      "S1",
		DestinationID: "S2",
		Amount:        decimal.RequireFromString("600.00"),
	})
	assertError(t, resp, ledger.CodeLimitExceeded)

	resp = doCall(h, sessionID, RequestBody{Call: "accountbalance", AccountID: "S1"})
	assert.Equal(t, "1000", resp.Response.Balance.Total)
	resp = doCall(h, sessionID, RequestBody{Call: "accountbalance", AccountID: "S2"})
	assert.Equal(t, "20", resp.Response.Balance.Total)
	assert.Empty(t, member.Transactions())
}

// -- Deposit tests --

func TestDepositFunds(t *testing.T) {
	h, member := newTestHost(t, ledger.SystemClock, 5)
	sessionID := authenticate(t, h)

	resp := doCall(h, sessionID, RequestBody{
		Call:      "depositfunds",
		AccountID: "S2",
		Amount:    decimal.RequireFromString("35.50"),
	})
	assert.Equal(t, ResultSuccess, resp.Response.Result)
	assert.Equal(t, "55.5", resp.Response.Balance.Total)
	assert.Positive(t, resp.Response.ReceiptNo)

	txs := member.Transactions()
	assert.Len(t, txs, 1)
	assert.Equal(t, ledger.TransactionDeposit, txs[0].Kind)
}

func TestDepositFundsConcurrentCallsHonourDailyCap(t *testing.T) {
	h, member := newTestHost(t, ledger.SystemClock, 1)
	sessionID := authenticate(t, h)

	results := make(chan *Response, 8)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- doCall(h, sessionID, RequestBody{
				Call:      "depositfunds",
				AccountID: "S1",
				Amount:    decimal.RequireFromString("10.00"),
			})
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for resp := range results {
		if resp.Response.Result == ResultSuccess {
			succeeded++
			continue
		}
		assertError(t, resp, ledger.CodeDailyLimitExceeded)
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, member.Transactions(), 1, "exactly one deposit is logged under a cap of one")
}

func TestDepositFundsValidation(t *testing.T) {
	h, _ := newTestHost(t, ledger.SystemClock, 5)
	sessionID := authenticate(t, h)

	resp := doCall(h, sessionID, RequestBody{Call: "depositfunds", Amount: decimal.New(10, 0)})
	assertError(t, resp, ledger.CodeInvalidAccount)

	resp = doCall(h, sessionID, RequestBody{Call: "depositfunds", AccountID: "S9", Amount: decimal.New(10, 0)})
	assertError(t, resp, ledger.CodeInvalidAccount)

	resp = doCall(h, sessionID, RequestBody{Call: "depositfunds", AccountID: "S2"})
	assertError(t, resp, ledger.CodeInvalidAmount)
}
