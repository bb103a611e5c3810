// Package dataset loads the static member/account dataset the host consumes
// at start-up. The host only requires the record shape; where the records
// come from (file, embedded asset, network) is the caller's concern.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/kiosk-host/internal/ledger"
)

// BalanceRecord is the stored balance pair of an account record.
type BalanceRecord struct {
	Total decimal.Decimal `json:"total"`
	Limit decimal.Decimal `json:"limit"`
}

// AccountRecord is one account entry of a member record.
type AccountRecord struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Balance       BalanceRecord   `json:"balance"`
	HasRedraw     bool            `json:"hasRedraw"`
	MaxWithdrawal decimal.Decimal `json:"maxWithdrawal"`
}

// MemberRecord is one member entry of the dataset.
type MemberRecord struct {
	ID                    int64           `json:"id"`
	Title                 string          `json:"title"`
	FirstName             string          `json:"firstName"`
	LastName              string          `json:"lastName"`
	CardNumber            string          `json:"cardNumber"`
	PIN                   string          `json:"pin"`
	MaxTransactionsPerDay int             `json:"maxTransactionsPerDay"`
	FailedAttempts        int             `json:"failedAttempts"`
	Accounts              []AccountRecord `json:"accounts"`
}

// Load reads and decodes a member dataset file.
func Load(path string) ([]MemberRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	var records []MemberRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("dataset: decode %s: %w", path, err)
	}
	return records, nil
}

// Build validates the records and constructs the ledger members.
func Build(records []MemberRecord, clock ledger.Clock) ([]*ledger.Member, error) {
	members := make([]*ledger.Member, 0, len(records))
	seenCards := make(map[string]int64, len(records))

	for _, rec := range records {
		if rec.CardNumber == "" || rec.PIN == "" {
			return nil, fmt.Errorf("dataset: member %d is missing card number or PIN", rec.ID)
		}
		if other, dup := seenCards[rec.CardNumber]; dup {
			return nil, fmt.Errorf("dataset: card number of member %d already belongs to member %d", rec.ID, other)
		}
		seenCards[rec.CardNumber] = rec.ID

		accounts := make([]*ledger.Account, 0, len(rec.Accounts))
		for _, a := range rec.Accounts {
			typ, ok := ledger.ParseAccountType(a.Type)
			if !ok {
				return nil, fmt.Errorf("dataset: member %d account %s has unknown type %q", rec.ID, a.ID, a.Type)
			}
			accounts = append(accounts, ledger.NewAccount(ledger.AccountConfig{
				ID:            a.ID,
				Name:          a.Name,
				Type:          typ,
				Total:         a.Balance.Total,
				Limit:         a.Balance.Limit,
				HasRedraw:     a.HasRedraw,
				MaxWithdrawal: a.MaxWithdrawal,
			}))
		}

		members = append(members, ledger.NewMember(ledger.MemberConfig{
			ID:                    rec.ID,
			Title:                 rec.Title,
			FirstName:             rec.FirstName,
			LastName:              rec.LastName,
			CardNumber:            rec.CardNumber,
			PIN:                   rec.PIN,
			MaxTransactionsPerDay: rec.MaxTransactionsPerDay,
			FailedAttempts:        rec.FailedAttempts,
			Accounts:              accounts,
		}, clock))
	}
	return members, nil
}
