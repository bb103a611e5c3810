package host

import (
	"strconv"
	"strings"

	"github.com/theplant/luhn"

	"github.com/carson-networks/kiosk-host/internal/ledger"
)

func (h *Host) authenticateByCard(req *Request) *Response {
	if req.Request.CardNumber == "" {
		return h.fail(req, ledger.CodeNoCard, "A card number was not provided")
	}
	if req.Request.PIN == "" {
		return h.fail(req, ledger.CodeNoPIN, "A PIN was not provided")
	}
	if !validCardNumber(req.Request.CardNumber) {
		return h.fail(req, ledger.CodeInvalidCard, "The card number failed checksum validation")
	}

	member, ok := h.byCard[normalizeCardNumber(req.Request.CardNumber)]
	if !ok {
		return h.fail(req, ledger.CodeInvalidCard, "This card does not belong to a member of DSC Bank Daytona")
	}

	ok, failures, err := member.Authenticate(req.Request.PIN)
	if err != nil {
		return h.failErr(req, err)
	}
	if !ok {
		// Mismatch is an expected-retry outcome, not a protocol error.
		return h.respond(req, Payload{
			Result:       ResultFail,
			FailureCount: failures,
		})
	}

	sessionID, validTo := h.sessions.Create(member.ID())
	resp := h.respond(req, Payload{
		Result:    ResultSuccess,
		ValidTo:   &validTo,
		Name:      member.FullName(),
		FirstName: member.FirstName(),
	})
	resp.System.SessionID = sessionID
	return resp
}

func normalizeCardNumber(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

// validCardNumber runs a Luhn checksum over the card digits, letting the
// host refuse mistyped numbers before the member lookup. luhn.Valid takes an
// int, so an 18-digit card number needs a 64-bit build; on a 32-bit build
// strconv.Atoi overflows for anything past nine digits and the card is
// rejected outright rather than checked against a truncated number.
func validCardNumber(s string) bool {
	digits := normalizeCardNumber(s)
	if len(digits) < 8 || len(digits) > 18 {
		return false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return false
	}
	return luhn.Valid(n)
}
