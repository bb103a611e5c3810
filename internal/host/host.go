// Package host implements the financial host API surface: envelope
// validation, card authentication, session resolution and dispatch to the
// ledger operations. The host is stateless between calls except for the
// member, account and session data it owns.
package host

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/kiosk-host/internal/ledger"
	"github.com/carson-networks/kiosk-host/internal/session"
)

const badRequestMessage = "Invalid request submitted, ensure system terminal_id and request payload are included and payload includes api call"

// Host is the financial host. Every call is handled synchronously; no
// operation blocks on I/O once dispatched.
type Host struct {
	logger   *logrus.Logger
	members  []*ledger.Member
	byCard   map[string]*ledger.Member
	byID     map[int64]*ledger.Member
	sessions *session.Registry

	receiptNo atomic.Int64
}

// New creates a Host over the loaded member set. Receipt numbers are seeded
// from the wall clock so they remain distinguishable across restarts.
func New(members []*ledger.Member, sessions *session.Registry, logger *logrus.Logger) *Host {
	h := &Host{
		logger:   logger,
		members:  members,
		byCard:   make(map[string]*ledger.Member, len(members)),
		byID:     make(map[int64]*ledger.Member, len(members)),
		sessions: sessions,
	}
	for _, m := range members {
		h.byCard[m.CardNumber()] = m
		h.byID[m.ID()] = m
	}
	h.receiptNo.Store(time.Now().UnixMilli())
	return h
}

// nextReceipt mints a process-unique receipt number. Minted at the start of
// any call that may commit; the same value reaches the receipt printer.
func (h *Host) nextReceipt() int64 {
	return h.receiptNo.Add(1)
}

// Handle processes one call envelope and always returns a response envelope.
// Errors never cross this boundary as Go errors.
func (h *Host) Handle(ctx context.Context, req *Request) *Response {
	if req == nil || req.System.TerminalID == 0 || req.Request.Call == "" {
		return h.fail(req, ledger.CodeBadRequest, badRequestMessage)
	}

	call, ok := ParseCall(req.Request.Call)
	if !ok {
		return h.fail(req, ledger.CodeInvalidCall, "The requested API function is invalid")
	}

	h.logger.WithFields(logrus.Fields{
		"call":        req.Request.Call,
		"terminal_id": req.System.TerminalID,
		"request_id":  req.System.RequestID,
	}).Debug("Host.Handle")

	if call == CallAuthenticateByCard {
		return h.authenticateByCard(req)
	}

	if req.System.SessionID == "" {
		return h.fail(req, ledger.CodeNoSession, "No session exists for the specified session id")
	}
	memberID, err := h.sessions.Resolve(req.System.SessionID)
	if err != nil {
		return h.failErr(req, err)
	}
	member, ok := h.byID[memberID]
	if !ok {
		return h.fail(req, ledger.CodeInvalidSession, "The session references a non-existent member")
	}

	switch call {
	case CallListAccountsByType:
		return h.listAccountsByType(req, member)
	case CallListAccountsForOperation:
		return h.listAccountsForOperation(req, member)
	case CallAccountBalance:
		return h.accountBalance(req, member)
	case CallAuthorizeWithdrawal:
		return h.authorizeWithdrawal(req, member)
	case CallApplyWithdrawal:
		return h.applyWithdrawal(req, member)
	case CallReleaseWithdrawal:
		return h.releaseWithdrawal(req, member)
	case CallTransferFunds:
		return h.transferFunds(req, member)
	case CallDepositFunds:
		return h.depositFunds(req, member)
	case CallTeardownSession:
		return h.teardownSession(req)
	case CallAuthenticateByCard:
		// handled above
	}
	return h.fail(req, ledger.CodeInvalidCall, "The requested API function is invalid")
}

func (h *Host) teardownSession(req *Request) *Response {
	h.sessions.Destroy(req.System.SessionID)
	return h.respond(req, Payload{Result: ResultSuccess})
}

// respond builds a success-side envelope echoing the caller's identifiers.
func (h *Host) respond(req *Request, payload Payload) *Response {
	return &Response{
		System: ResponseSystem{
			SessionID: req.System.SessionID,
			RequestID: req.System.RequestID,
		},
		Response: payload,
	}
}

// fail builds an error envelope. The request may be nil or malformed, so
// identifiers are echoed best-effort.
func (h *Host) fail(req *Request, code, message string) *Response {
	resp := &Response{
		Response: Payload{
			Result:    ResultError,
			ErrorCode: code,
			Error:     message,
		},
	}
	if req != nil {
		resp.System.SessionID = req.System.SessionID
		resp.System.RequestID = req.System.RequestID
	}
	h.logger.WithFields(logrus.Fields{
		"error_code": code,
		"request_id": resp.System.RequestID,
	}).Info("Host.Handle.error")
	return resp
}

// failErr maps a domain error onto an error envelope.
func (h *Host) failErr(req *Request, err error) *Response {
	var lerr *ledger.Error
	if errors.As(err, &lerr) {
		return h.fail(req, lerr.Code, lerr.Message)
	}
	return h.fail(req, ledger.CodeBadRequest, err.Error())
}
