package ledger

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// maxFailedAttempts is the number of consecutive PIN failures after which a
// card is refused until it is reissued (i.e. the dataset is reloaded).
const maxFailedAttempts = 3

// TransactionKind tags committed ledger movements in a member's daily log.
type TransactionKind string

const (
	TransactionWithdrawal TransactionKind = "WITHDRAWAL"
	TransactionTransfer   TransactionKind = "TRANSFER"
	TransactionDeposit    TransactionKind = "DEPOSIT"
)

// Transaction is one committed movement. Reservations are never logged;
// only applied withdrawals, transfers and deposits count toward the cap.
type Transaction struct {
	Timestamp   time.Time
	Kind        TransactionKind
	Account     string
	Destination string
	Amount      decimal.Decimal
	Receipt     int64
}

// MemberConfig is the input for constructing a Member from a dataset record.
type MemberConfig struct {
	ID                    int64
	Title                 string
	FirstName             string
	LastName              string
	CardNumber            string
	PIN                   string
	MaxTransactionsPerDay int
	FailedAttempts        int
	Accounts              []*Account
}

// Member owns an identity, an ordered set of accounts and the same-day
// transaction log used to enforce the daily cap. Accounts are created at
// load time and never added or removed afterwards.
type Member struct {
	mu sync.Mutex

	id         int64
	title      string
	firstName  string
	lastName   string
	cardNumber string
	pin        string

	maxPerDay      int
	failedAttempts int

	accounts     []*Account
	transactions []Transaction
	pending      int
	clock        Clock
}

// NewMember creates a Member. A nil clock defaults to SystemClock.
func NewMember(cfg MemberConfig, clock Clock) *Member {
	if clock == nil {
		clock = SystemClock
	}
	return &Member{
		id:             cfg.ID,
		title:          cfg.Title,
		firstName:      cfg.FirstName,
		lastName:       cfg.LastName,
		cardNumber:     cfg.CardNumber,
		pin:            cfg.PIN,
		maxPerDay:      cfg.MaxTransactionsPerDay,
		failedAttempts: cfg.FailedAttempts,
		accounts:       cfg.Accounts,
		clock:          clock,
	}
}

func (m *Member) ID() int64          { return m.id }
func (m *Member) CardNumber() string { return m.cardNumber }
func (m *Member) FirstName() string  { return m.firstName }

// FullName returns the display name printed on welcome screens and receipts.
func (m *Member) FullName() string {
	return m.title + " " + m.firstName + " " + m.lastName
}

// Accounts returns the member's accounts in dataset order.
func (m *Member) Accounts() []*Account {
	out := make([]*Account, len(m.accounts))
	copy(out, m.accounts)
	return out
}

// Account finds an account of this member by id.
func (m *Member) Account(id string) (*Account, bool) {
	for _, a := range m.accounts {
		if a.ID() == id {
			return a, true
		}
	}
	return nil, false
}

// AccountWithLock finds the member account holding the given reservation.
func (m *Member) AccountWithLock(lockID int64) (*Account, bool) {
	for _, a := range m.accounts {
		if a.HasLock(lockID) {
			return a, true
		}
	}
	return nil, false
}

// Authenticate compares the PIN. On mismatch the consecutive failure counter
// is incremented and returned; on match it resets. Once the counter reaches
// maxFailedAttempts further attempts fail with CARD_LOCKED regardless of
// the PIN supplied.
func (m *Member) Authenticate(pin string) (ok bool, failures int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failedAttempts >= maxFailedAttempts {
		return false, m.failedAttempts, ErrCardLocked
	}
	if pin != m.pin {
		m.failedAttempts++
		return false, m.failedAttempts, nil
	}
	m.failedAttempts = 0
	return true, 0, nil
}

// CanTransact checks the daily cap without claiming a slot. Suitable for
// advisory checks (authorizing a withdrawal); committing calls must use
// BeginTransaction instead. Returns nil or DAILY_LIMIT_EXCEEDED.
func (m *Member) CanTransact() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.canTransactLocked()
}

// BeginTransaction claims a slot against the daily cap before any account is
// mutated. Concurrent committing calls contend here, so the cap holds under
// the multi-worker operator. Every claim must be settled with either
// RecordTransaction or AbortTransaction.
func (m *Member) BeginTransaction() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.canTransactLocked(); err != nil {
		return err
	}
	m.pending++
	return nil
}

// AbortTransaction returns a claimed slot after the operation failed before
// committing.
func (m *Member) AbortTransaction() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending > 0 {
		m.pending--
	}
}

// canTransactLocked evaluates the cap over logged plus in-flight
// transactions. Entries older than the current calendar day disqualify the
// whole log: it is cleared and the member may transact again.
func (m *Member) canTransactLocked() error {
	if len(m.transactions) > 0 && !sameDay(m.transactions[len(m.transactions)-1].Timestamp, m.clock.Now()) {
		m.transactions = m.transactions[:0]
	}
	used := len(m.transactions) + m.pending
	if used == 0 || used < m.maxPerDay {
		return nil
	}
	return ErrDailyLimitExceeded
}

// RecordTransaction settles a claimed slot by appending the committed
// movement to the daily log. Called only after a withdrawal commit, a
// transfer or a deposit succeeds, never after a mere reservation.
func (m *Member) RecordTransaction(tx Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending > 0 {
		m.pending--
	}
	tx.Timestamp = m.clock.Now()
	m.transactions = append(m.transactions, tx)
}

// Transactions returns a copy of the member's same-day transaction log.
func (m *Member) Transactions() []Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Transaction, len(m.transactions))
	copy(out, m.transactions)
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
