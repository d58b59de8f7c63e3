package model

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNegativeAmount    = errors.New("amount cannot be negative")
)

// InsufficientFundsError reports a rejected withdrawal. It matches
// ErrInsufficientFunds under errors.Is.
type InsufficientFundsError struct {
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: requested %s, available %s", e.Requested, e.Available)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// AccountType is fixed when the account is opened.
type AccountType string

const (
	Savings  AccountType = "SAVINGS"
	Checking AccountType = "CHECKING"
)

// ParseAccountType accepts the literal enum names only.
func ParseAccountType(s string) (AccountType, bool) {
	switch AccountType(s) {
	case Savings:
		return Savings, true
	case Checking:
		return Checking, true
	}
	return "", false
}

// DigestLength is the length of a hex encoded SHA-256 sum.
const DigestLength = sha256.Size * 2

// HashPIN returns the hex SHA-256 digest of pin. The empty PIN hashes to ""
// so that it can never satisfy VerifyCredential.
func HashPIN(pin string) string {
	if pin == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

// IsDigest reports whether s has the shape of a HashPIN result, in either case.
func IsDigest(s string) bool {
	if len(s) != DigestLength {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// Account holds one customer's balance and its append-only history. Balance
// and history only change through Deposit and Withdraw.
type Account struct {
	number         string
	holderName     string
	credentialHash string
	balance        decimal.Decimal
	accountType    AccountType
	history        []Transaction
}

// NewAccount opens an account with the given starting balance. The starting
// balance is not recorded as a transaction; callers that want a history entry
// should open at zero and Deposit.
func NewAccount(number, holderName, pin string, accountType AccountType, initialBalance decimal.Decimal) (*Account, error) {
	if initialBalance.IsNegative() {
		return nil, ErrNegativeAmount
	}
	return &Account{
		number:         number,
		holderName:     holderName,
		credentialHash: HashPIN(pin),
		balance:        initialBalance,
		accountType:    accountType,
	}, nil
}

// RestoreAccount rebuilds an account from stored state. credentialHash is kept
// verbatim and history is taken as already applied to balance.
func RestoreAccount(number, holderName, credentialHash string, balance decimal.Decimal, accountType AccountType, history []Transaction) *Account {
	h := make([]Transaction, len(history))
	copy(h, history)
	return &Account{
		number:         number,
		holderName:     holderName,
		credentialHash: credentialHash,
		balance:        balance,
		accountType:    accountType,
		history:        h,
	}
}

func (a *Account) Number() string            { return a.number }
func (a *Account) HolderName() string        { return a.holderName }
func (a *Account) SetHolderName(name string) { a.holderName = name }
func (a *Account) CredentialHash() string    { return a.credentialHash }
func (a *Account) Balance() decimal.Decimal  { return a.balance }
func (a *Account) Type() AccountType         { return a.accountType }
func (a *Account) HistoryLen() int           { return len(a.history) }

// History returns a copy of the transactions in chronological order.
func (a *Account) History() []Transaction {
	out := make([]Transaction, len(a.history))
	copy(out, a.history)
	return out
}

// Clone returns a deep copy that shares no state with a.
func (a *Account) Clone() *Account {
	return RestoreAccount(a.number, a.holderName, a.credentialHash, a.balance, a.accountType, a.history)
}

// VerifyCredential hashes pin and compares it with the stored digest.
func (a *Account) VerifyCredential(pin string) bool {
	if strings.TrimSpace(pin) == "" || a.credentialHash == "" {
		return false
	}
	return strings.EqualFold(HashPIN(pin), a.credentialHash)
}

// Deposit adds amount to the balance and records it. Non-positive amounts are
// ignored; the return value reports whether anything changed.
func (a *Account) Deposit(amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		return false
	}
	a.balance = a.balance.Add(amount)
	a.history = append(a.history, NewTransaction(KindDeposit, amount, time.Now()))
	return true
}

// Withdraw removes amount from the balance and records it. Non-positive
// amounts are ignored. An overdraft returns *InsufficientFundsError and
// leaves the account untouched.
func (a *Account) Withdraw(amount decimal.Decimal) (bool, error) {
	if !amount.IsPositive() {
		return false, nil
	}
	if amount.GreaterThan(a.balance) {
		return false, &InsufficientFundsError{Requested: amount, Available: a.balance}
	}
	a.balance = a.balance.Sub(amount)
	a.history = append(a.history, NewTransaction(KindWithdraw, amount, time.Now()))
	return true, nil
}
