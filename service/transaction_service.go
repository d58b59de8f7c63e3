package service

import (
	"go-ledger/logger"
	"go-ledger/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrInsufficientFunds = model.ErrInsufficientFunds
	ErrNegativeAmount    = model.ErrNegativeAmount
)

// InsufficientFundsError is returned by Withdraw on overdraft.
type InsufficientFundsError = model.InsufficientFundsError

// Deposit credits the account. Unknown accounts and non-positive amounts are
// ignored.
func (s *LedgerService) Deposit(accountNumber string, amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.ledger.Get(accountNumber)
	if !ok {
		return
	}
	if a.Deposit(amount) {
		logger.Log.WithFields(logrus.Fields{
			"account_number": accountNumber,
			"amount":         amount.String(),
		}).Info("Deposit applied")
	}
}

// Withdraw debits the account. Unknown accounts and non-positive amounts are
// ignored. An overdraft returns *InsufficientFundsError and changes nothing.
func (s *LedgerService) Withdraw(accountNumber string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.ledger.Get(accountNumber)
	if !ok {
		return nil
	}

	log := logger.Log.WithFields(logrus.Fields{
		"account_number": accountNumber,
		"amount":         amount.String(),
	})
	applied, err := a.Withdraw(amount)
	if err != nil {
		log.Warn("Withdrawal rejected: insufficient funds")
		return err
	}
	if applied {
		log.Info("Withdrawal applied")
	}
	return nil
}
