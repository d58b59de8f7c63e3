// file: service/account_service.go

package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go-ledger/logger"
	"go-ledger/model"
	"go-ledger/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	accountNumberLength   = 8
	maxAccountNumberRolls = 16
)

var ErrAccountNumberExhausted = errors.New("could not generate a unique account number")

// LedgerService owns the in-memory ledger and runs every operation on it
// under a single lock.
type LedgerService struct {
	mu     sync.Mutex
	repo   repository.ILedgerRepository
	ledger *model.Ledger

	// newNumber is swapped in tests to force collisions.
	newNumber func() string
}

// NewLedgerService loads the ledger from repo. A load warning is logged and the
// service starts from whatever the repository returned.
func NewLedgerService(repo repository.ILedgerRepository) *LedgerService {
	ledger, err := repo.Load()
	if err != nil {
		logger.Log.WithError(err).Warn("Ledger could not be loaded, continuing with an empty ledger")
	}
	if ledger == nil {
		ledger = model.NewLedger()
	}
	return &LedgerService{
		repo:      repo,
		ledger:    ledger,
		newNumber: randomAccountNumber,
	}
}

// randomAccountNumber returns the first eight hex digits of a random UUID in
// upper case, giving 32 bits of entropy.
func randomAccountNumber() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:accountNumberLength])
}

// CreateAccount opens an account under a fresh number. A positive initial
// deposit is applied through Deposit so it appears in the history.
func (s *LedgerService) CreateAccount(name, pin string, accountType model.AccountType, initialDeposit decimal.Decimal) (*model.Account, error) {
	if initialDeposit.IsNegative() {
		return nil, model.ErrNegativeAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	number, err := s.uniqueNumber()
	if err != nil {
		return nil, err
	}

	account, err := model.NewAccount(number, name, pin, accountType, decimal.Zero)
	if err != nil {
		return nil, err
	}
	if initialDeposit.IsPositive() {
		account.Deposit(initialDeposit)
	}
	s.ledger.Put(account)

	logger.Log.WithFields(logrus.Fields{
		"account_number": number,
		"account_type":   accountType,
		"initial":        initialDeposit.String(),
	}).Info("Account created")

	return account.Clone(), nil
}

func (s *LedgerService) uniqueNumber() (string, error) {
	for i := 0; i < maxAccountNumberRolls; i++ {
		n := s.newNumber()
		if !s.ledger.Has(n) {
			return n, nil
		}
		logger.Log.WithField("account_number", n).Debug("Account number collision, rolling again")
	}
	return "", ErrAccountNumberExhausted
}

// GetAccount returns a snapshot of the account. Changes to the result do not
// reach the ledger.
func (s *LedgerService) GetAccount(accountNumber string) (*model.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.ledger.Get(accountNumber)
	if !ok {
		return nil, false
	}
	return a.Clone(), true
}

// Len reports how many accounts the ledger holds.
func (s *LedgerService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Len()
}

// CloseAccount removes the account. Closing an unknown number is not an error.
func (s *LedgerService) CloseAccount(accountNumber string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ledger.Has(accountNumber) {
		logger.Log.WithField("account_number", accountNumber).Info("Account closed")
	}
	s.ledger.Delete(accountNumber)
}

// Persist writes the whole ledger through the repository.
func (s *LedgerService) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(s.ledger); err != nil {
		return fmt.Errorf("could not persist ledger: %w", err)
	}
	return nil
}
