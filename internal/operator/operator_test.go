package operator

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/kiosk-host/internal/host"
	"github.com/carson-networks/kiosk-host/internal/ledger"
	"github.com/carson-networks/kiosk-host/internal/session"
)

func newTestHost(t *testing.T) *host.Host {
	t.Helper()

	member := ledger.NewMember(ledger.MemberConfig{
		ID:         1,
		Title:      "Ms",
		FirstName:  "Dana",
		LastName:   "Reeve",
		CardNumber: "4505123456780008",
		PIN:        "1234",
		Accounts: []*ledger.Account{
			ledger.NewAccount(ledger.AccountConfig{
				ID:            "S1",
				Name:          "Everyday Saver",
				Type:          ledger.AccountTypeSavings,
				Total:         decimal.RequireFromString("1000"),
				MaxWithdrawal: decimal.RequireFromString("500"),
			}),
		},
	}, nil)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	sessions := session.NewRegistry(time.Hour, nil)
	return host.New([]*ledger.Member{member}, sessions, logger)
}

func authRequest() *host.Request {
	return &host.Request{
		System: host.System{RequestID: 1, TerminalID: 9},
		Request: host.RequestBody{
			Call:       "authenticatebycard",
			CardNumber: "4505123456780008",
			PIN:        "1234",
		},
	}
}

// -- Delegator tests --

func TestDelegatorProcess(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	d := NewDelegator(newTestHost(t), logger, 2)
	d.Start()
	defer d.Stop()

	resp, err := d.Process(context.Background(), authRequest())
	assert.NoError(t, err)
	assert.Equal(t, host.ResultSuccess, resp.Response.Result)
	assert.NotEmpty(t, resp.System.SessionID)
}

func TestDelegatorProcessConcurrent(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	d := NewDelegator(newTestHost(t), logger, 4)
	d.Start()
	defer d.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := d.Process(context.Background(), authRequest())
			assert.NoError(t, err)
			assert.Equal(t, host.ResultSuccess, resp.Response.Result)
		}()
	}
	wg.Wait()
}

func TestDelegatorProcessCancelledContext(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	// No workers started, so the item sits in the queue until the caller
	// gives up.
	d := NewDelegator(newTestHost(t), logger, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Process(ctx, authRequest())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDelegatorStopIsIdempotent(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	d := NewDelegator(newTestHost(t), logger, 1)
	d.Start()
	d.Stop()
	d.Stop()
}
