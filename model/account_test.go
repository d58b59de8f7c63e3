package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPIN(t *testing.T) {
	h := HashPIN("1234")

	assert.Equal(t, "03ac674216f3e15c761ee1a5e255f067953623c8b388b4459e13f978d7c846f4", h)
	assert.Len(t, h, DigestLength)
	assert.True(t, IsDigest(h))
	assert.True(t, IsDigest(strings.ToUpper(h)))
	assert.Equal(t, "", HashPIN(""))
}

func TestIsDigest(t *testing.T) {
	assert.False(t, IsDigest("1234"))
	assert.False(t, IsDigest(strings.Repeat("g", DigestLength)))
	assert.False(t, IsDigest(strings.Repeat("a", DigestLength-1)))
	assert.True(t, IsDigest(strings.Repeat("aB", DigestLength/2)))
}

func TestNewAccount(t *testing.T) {
	a, err := NewAccount("N1", "Alice", "1234", Checking, decimal.NewFromInt(25))
	require.NoError(t, err)

	assert.Equal(t, "N1", a.Number())
	assert.Equal(t, "Alice", a.HolderName())
	assert.Equal(t, Checking, a.Type())
	assert.True(t, a.Balance().Equal(decimal.NewFromInt(25)))
	assert.Equal(t, 0, a.HistoryLen(), "the opening balance is not a transaction")
	assert.NotContains(t, a.CredentialHash(), "1234")

	_, err = NewAccount("N2", "Bob", "1234", Savings, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestAccount_VerifyCredential(t *testing.T) {
	a, _ := NewAccount("N1", "Alice", "1234", Savings, decimal.Zero)

	assert.True(t, a.VerifyCredential("1234"))
	assert.False(t, a.VerifyCredential("1235"))
	assert.False(t, a.VerifyCredential(""))
	assert.False(t, a.VerifyCredential("  "))

	noPIN, _ := NewAccount("N2", "Bob", "", Savings, decimal.Zero)
	assert.False(t, noPIN.VerifyCredential(""))
}

func TestAccount_DepositWithdraw(t *testing.T) {
	a, _ := NewAccount("N1", "Alice", "1234", Savings, decimal.Zero)

	assert.True(t, a.Deposit(decimal.RequireFromString("100.10")))
	assert.False(t, a.Deposit(decimal.Zero))
	assert.False(t, a.Deposit(decimal.NewFromInt(-3)))

	applied, err := a.Withdraw(decimal.RequireFromString("0.10"))
	assert.NoError(t, err)
	assert.True(t, applied)

	applied, err = a.Withdraw(decimal.NewFromInt(-1))
	assert.NoError(t, err)
	assert.False(t, applied)

	assert.Equal(t, "100", a.Balance().String())
	require.Equal(t, 2, a.HistoryLen())
	h := a.History()
	assert.Equal(t, KindDeposit, h[0].Kind)
	assert.Equal(t, KindWithdraw, h[1].Kind)
	assert.False(t, h[1].Timestamp.Before(h[0].Timestamp))
}

func TestAccount_WithdrawOverdraft(t *testing.T) {
	a, _ := NewAccount("N1", "Alice", "1234", Savings, decimal.Zero)
	a.Deposit(decimal.NewFromInt(10))

	applied, err := a.Withdraw(decimal.RequireFromString("10.01"))

	assert.False(t, applied)
	assert.True(t, errors.Is(err, ErrInsufficientFunds))
	var ife *InsufficientFundsError
	require.True(t, errors.As(err, &ife))
	assert.Equal(t, "10.01", ife.Requested.String())
	assert.Contains(t, err.Error(), "available 10")
	assert.Equal(t, "10", a.Balance().String())
	assert.Equal(t, 1, a.HistoryLen())
}

func TestAccount_HistoryIsACopy(t *testing.T) {
	a, _ := NewAccount("N1", "Alice", "1234", Savings, decimal.Zero)
	a.Deposit(decimal.NewFromInt(1))

	h := a.History()
	h[0].Amount = decimal.NewFromInt(999)

	assert.Equal(t, "1", a.History()[0].Amount.String())
}

func TestParseEnums(t *testing.T) {
	at, ok := ParseAccountType("CHECKING")
	assert.True(t, ok)
	assert.Equal(t, Checking, at)
	_, ok = ParseAccountType("checking")
	assert.False(t, ok)

	k, ok := ParseTransactionKind("WITHDRAW")
	assert.True(t, ok)
	assert.Equal(t, KindWithdraw, k)
	_, ok = ParseTransactionKind("TRANSFER")
	assert.False(t, ok)
}

func TestLedger(t *testing.T) {
	l := NewLedger()
	b, _ := NewAccount("B", "Bob", "1", Savings, decimal.Zero)
	a, _ := NewAccount("A", "Alice", "1", Savings, decimal.Zero)
	a2, _ := NewAccount("A", "Alice Two", "2", Checking, decimal.Zero)

	l.Put(b)
	l.Put(a)
	l.Put(a2)

	assert.Equal(t, 2, l.Len())
	got, ok := l.Get("A")
	require.True(t, ok)
	assert.Equal(t, "Alice Two", got.HolderName())

	accounts := l.Accounts()
	require.Len(t, accounts, 2)
	assert.Equal(t, "A", accounts[0].Number())
	assert.Equal(t, "B", accounts[1].Number())

	l.Delete("A")
	l.Delete("A")
	assert.False(t, l.Has("A"))
	assert.Equal(t, 1, l.Len())
}
