package model

import "sort"

// Ledger is the in-memory set of accounts keyed by account number. It is not
// safe for concurrent use; LedgerService serialises access to it.
type Ledger struct {
	accounts map[string]*Account
}

func NewLedger() *Ledger {
	return &Ledger{accounts: make(map[string]*Account)}
}

func (l *Ledger) Get(number string) (*Account, bool) {
	a, ok := l.accounts[number]
	return a, ok
}

func (l *Ledger) Has(number string) bool {
	_, ok := l.accounts[number]
	return ok
}

// Put stores a under its number, replacing any account already there.
func (l *Ledger) Put(a *Account) {
	l.accounts[a.Number()] = a
}

// Delete removes number. Removing an absent number is a no-op.
func (l *Ledger) Delete(number string) {
	delete(l.accounts, number)
}

func (l *Ledger) Len() int { return len(l.accounts) }

// Accounts returns every account ordered by account number.
func (l *Ledger) Accounts() []*Account {
	out := make([]*Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number() < out[j].Number() })
	return out
}
