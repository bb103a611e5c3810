// Package kiosk exposes the host call envelope over HTTP. Terminals submit
// every call through the one endpoint; the call name inside the envelope
// selects the operation.
package kiosk

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/kiosk-host/internal/host"
	"github.com/carson-networks/kiosk-host/internal/ledger"
	"github.com/carson-networks/kiosk-host/internal/logging"
)

// SystemBody is the system block of the call envelope.
type SystemBody struct {
	SessionID  string `json:"session_id,omitempty" doc:"Session id from authenticatebycard, empty for authentication"`
	RequestID  int64  `json:"request_id" doc:"Caller-chosen id echoed back in the response"`
	TerminalID int64  `json:"terminal_id" doc:"Identifier of the submitting terminal"`
}

// CallBody is the request block: the call name plus the union of
// call-specific fields. Amounts travel as decimal strings.
type CallBody struct {
	Call          string `json:"call" minLength:"1" doc:"API call name, e.g. accountbalance"`
	CardNumber    string `json:"card_number,omitempty" doc:"Member card number (authenticatebycard)"`
	PIN           string `json:"pin,omitempty" doc:"Member PIN (authenticatebycard)"`
	Type          string `json:"type,omitempty" doc:"Account type filter (listaccountsbytype)"`
	Operation     string `json:"operation,omitempty" doc:"Operation filter (listaccountsforoperation)"`
	AccountID     string `json:"account_id,omitempty" doc:"Target account id"`
	SourceID      string `json:"source_id,omitempty" doc:"Transfer source account id"`
	DestinationID string `json:"destination_id,omitempty" doc:"Transfer destination account id"`
	Amount        string `json:"amount,omitempty" doc:"Amount as a decimal string (e.g. '123.45')"`
	LockID        int64  `json:"lock_id,omitempty" doc:"Withdrawal lock id (applywithdrawal, releasewithdrawal)"`
}

// KioskBody is the full call envelope.
type KioskBody struct {
	System  SystemBody `json:"system"`
	Request CallBody   `json:"request"`
}

// KioskInput is the Huma input for a kiosk call.
type KioskInput struct {
	Body KioskBody
}

// KioskOutput is the response for a kiosk call. The host reports failures
// inside the envelope, so the HTTP status is 200 either way.
type KioskOutput struct {
	Status int
	Body   host.Response
}

// callProcessor is the interface for dispatching call envelopes.
type callProcessor interface {
	Process(ctx context.Context, req *host.Request) (*host.Response, error)
}

// Handler handles POST /v1/kiosk.
type Handler struct {
	Processor callProcessor
}

// NewHandler creates a new kiosk Handler.
func NewHandler(p callProcessor) *Handler {
	return &Handler{Processor: p}
}

// Register registers the kiosk call endpoint with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "kiosk-call",
		Method:      http.MethodPost,
		Path:        "/v1/kiosk",
		Summary:     "Submit a kiosk call",
		Description: "Submits one call envelope to the financial host and returns its response envelope.",
		Tags:        []string{"Kiosk"},
	}, h.handle)
}

func parseKioskInput(input *KioskInput) (*host.Request, error) {
	amount := decimal.Zero
	if input.Body.Request.Amount != "" {
		var err error
		amount, err = decimal.NewFromString(input.Body.Request.Amount)
		if err != nil {
			return nil, ledger.NewError(ledger.CodeInvalidAmount, "The amount is not a valid decimal number")
		}
	}

	return &host.Request{
		System: host.System{
			SessionID:  input.Body.System.SessionID,
			RequestID:  input.Body.System.RequestID,
			TerminalID: input.Body.System.TerminalID,
		},
		Request: host.RequestBody{
			Call:          input.Body.Request.Call,
			CardNumber:    input.Body.Request.CardNumber,
			PIN:           input.Body.Request.PIN,
			Type:          input.Body.Request.Type,
			Operation:     input.Body.Request.Operation,
			AccountID:     input.Body.Request.AccountID,
			SourceID:      input.Body.Request.SourceID,
			DestinationID: input.Body.Request.DestinationID,
			Amount:        amount,
			LockID:        input.Body.Request.LockID,
		},
	}, nil
}

func (h *Handler) handle(ctx context.Context, input *KioskInput) (*KioskOutput, error) {
	logData := logging.GetLogData(ctx)

	req, err := parseKioskInput(input)
	if err != nil {
		var lerr *ledger.Error
		if !errors.As(err, &lerr) {
			return nil, huma.NewError(http.StatusBadRequest, "invalid request", err)
		}
		return &KioskOutput{
			Status: http.StatusOK,
			Body: host.Response{
				System: host.ResponseSystem{
					SessionID: input.Body.System.SessionID,
					RequestID: input.Body.System.RequestID,
				},
				Response: host.Payload{
					Result:    host.ResultError,
					ErrorCode: lerr.Code,
					Error:     lerr.Message,
				},
			},
		}, nil
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("processCallMs")
	}
	resp, err := h.Processor.Process(ctx, req)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to process call", err)
	}

	if logData != nil {
		logData.AddData("call", req.Request.Call)
		logData.AddData("result", resp.Response.Result)
	}

	return &KioskOutput{
		Status: http.StatusOK,
		Body:   *resp,
	}, nil
}
