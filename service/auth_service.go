package service

import "go-ledger/logger"

// Authenticate reports whether pin unlocks the account. An unknown account and
// a wrong PIN are indistinguishable to the caller.
func (s *LedgerService) Authenticate(accountNumber, pin string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.ledger.Get(accountNumber)
	if !ok || !a.VerifyCredential(pin) {
		logger.Log.WithField("account_number", accountNumber).Warn("Authentication failed")
		return false
	}
	return true
}
