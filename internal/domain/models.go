package domain

import (
	"strings"
	"time"

	"github.com/SharkFourSix/momo/pkg/textutil"
)

// Kind discriminates the concrete transaction record behind the
// Transaction interface.
type Kind string

const (
	KindCashIn  Kind = "CASH_IN"
	KindCashOut Kind = "CASH_OUT"
	KindCredit  Kind = "CREDIT"
	KindDebit   Kind = "DEBIT"
	KindDeposit Kind = "DEPOSIT"

	// KindAny disables the kind check on extraction calls.
	KindAny Kind = ""
)

// ValidKind reports whether k names a known transaction kind.
func ValidKind(k Kind) bool {
	switch k {
	case KindCashIn, KindCashOut, KindCredit, KindDebit, KindDeposit:
		return true
	}
	return false
}

// Transaction is the common surface of every extracted record. The
// transaction id is the provider's reference code and the identity key;
// the timestamp is nil when the source message carries none.
type Transaction interface {
	Kind() Kind
	TransactionID() string
	Time() *time.Time
}

// Ref holds the fields shared by all transaction records and is embedded
// by each concrete one.
type Ref struct {
	ID        string     `json:"transaction_id"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

func (r Ref) TransactionID() string { return r.ID }

func (r Ref) Time() *time.Time { return r.Timestamp }

func (r Ref) String() string {
	if r.Timestamp != nil {
		return r.ID + " - " + textutil.FormatTime(*r.Timestamp)
	}
	return r.ID
}

// SameTransaction reports whether two transactions carry the same id,
// compared case-insensitively. A transaction without an id is never equal
// to anything, itself included.
func SameTransaction(a, b Transaction) bool {
	if a == nil || b == nil {
		return false
	}
	if a.TransactionID() == "" {
		return false
	}
	return strings.EqualFold(a.TransactionID(), b.TransactionID())
}

// Agent is the counterparty terminal or merchant in cash-in and cash-out
// flows, identified by a code (phone or merchant number) and a display name.
type Agent struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (a Agent) String() string {
	return a.Code + " - " + a.Name
}

// CashIn is money received through an agent.
type CashIn struct {
	Ref
	Agent   Agent   `json:"agent"`
	Amount  float64 `json:"amount"`
	Fee     float64 `json:"fee"`
	Balance float64 `json:"balance"`
}

func (CashIn) Kind() Kind { return KindCashIn }

// CashOut is money withdrawn through an agent.
type CashOut struct {
	Ref
	Agent   Agent   `json:"agent"`
	Amount  float64 `json:"amount"`
	Fee     float64 `json:"fee"`
	Balance float64 `json:"balance"`
}

func (CashOut) Kind() Kind { return KindCashOut }

// Credit is money sent by the account holder. RecipientName is empty when
// the message names no recipient.
type Credit struct {
	Ref
	RecipientPhone string  `json:"recipient_phone"`
	RecipientName  string  `json:"recipient_name,omitempty"`
	Amount         float64 `json:"amount"`
	Fee            float64 `json:"fee"`
	Balance        float64 `json:"balance"`
}

func (Credit) Kind() Kind { return KindCredit }

// Debit is money received by the account holder.
type Debit struct {
	Ref
	SenderPhone string  `json:"sender_phone"`
	SenderName  string  `json:"sender_name,omitempty"`
	Amount      float64 `json:"amount"`
	Balance     float64 `json:"balance"`
}

func (Debit) Kind() Kind { return KindDebit }

// Deposit is money loaded from an external source such as a bank.
type Deposit struct {
	Ref
	Source  string  `json:"source"`
	Amount  float64 `json:"amount"`
	Fee     float64 `json:"fee"`
	Balance float64 `json:"balance"`
}

func (Deposit) Kind() Kind { return KindDeposit }

type BatchStatus string

const (
	BatchStatusProcessing BatchStatus = "processing"
	BatchStatusCompleted  BatchStatus = "completed"
	BatchStatusFailed     BatchStatus = "failed"
)

// Batch tracks an asynchronous multi-message extraction request.
type Batch struct {
	ID             string      `json:"id"`
	Provider       string      `json:"provider"`
	Status         BatchStatus `json:"status"`
	ProcessedCount int         `json:"processed_count"`
	TotalCount     int         `json:"total_count"`
	CreatedAt      time.Time   `json:"created_at"`
	CompletedAt    *time.Time  `json:"completed_at,omitempty"`
}

// ExtractionResult is the outcome of extracting a single message of a batch.
// Transaction is nil when the message matched no known template.
type ExtractionResult struct {
	Index       int         `json:"index"`
	Matched     bool        `json:"matched"`
	Kind        Kind        `json:"kind,omitempty"`
	Transaction Transaction `json:"transaction,omitempty"`
}
