package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the direction of a balance-changing event.
type TransactionKind string

const (
	KindDeposit  TransactionKind = "DEPOSIT"
	KindWithdraw TransactionKind = "WITHDRAW"
)

// ParseTransactionKind maps the persisted kind name to a TransactionKind.
// Matching is exact; ok is false for anything else.
func ParseTransactionKind(s string) (TransactionKind, bool) {
	switch TransactionKind(s) {
	case KindDeposit:
		return KindDeposit, true
	case KindWithdraw:
		return KindWithdraw, true
	}
	return "", false
}

// Transaction is an immutable record of one deposit or withdrawal.
type Transaction struct {
	Kind      TransactionKind `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}

func NewTransaction(kind TransactionKind, amount decimal.Decimal, at time.Time) Transaction {
	return Transaction{Kind: kind, Amount: amount, Timestamp: at}
}

func (t Transaction) String() string {
	return t.Timestamp.Format("2006-01-02 15:04:05") + " - " + string(t.Kind) + " - " + t.Amount.StringFixed(2)
}
