package repository

import (
	"errors"

	"go-ledger/codec"
	"go-ledger/logger"
	"go-ledger/model"

	"github.com/sirupsen/logrus"
)

// ErrStoreUnavailable wraps failures to read or write the backing store.
var ErrStoreUnavailable = errors.New("ledger store unavailable")

// ILedgerRepository defines the persistence boundary of the ledger.
//
// Load always returns a usable ledger. A non-nil error alongside it is a
// warning (typically wrapping ErrStoreUnavailable) and the ledger is then empty.
// Save replaces the whole stored ledger in one operation.
type ILedgerRepository interface {
	Load() (*model.Ledger, error)
	Save(ledger *model.Ledger) error
}

// decodeRecords turns stored record lines into a ledger. Unparsable lines are
// skipped and a later record with the same number replaces an earlier one.
func decodeRecords(source string, records []string) *model.Ledger {
	log := logger.Log.WithField("source", source)
	ledger := model.NewLedger()
	for i, line := range records {
		acc, err := codec.Decode(line)
		if err != nil {
			if !errors.Is(err, codec.ErrBlankRecord) {
				log.WithFields(logrus.Fields{
					"record": i + 1,
					"error":  err.Error(),
				}).Warn("Skipping malformed record")
			}
			continue
		}
		if ledger.Has(acc.Number()) {
			log.WithField("account_number", acc.Number()).Warn("Duplicate account number, later record wins")
		}
		ledger.Put(acc)
	}
	return ledger
}

// encodeRecords renders the ledger in account-number order.
func encodeRecords(ledger *model.Ledger) []string {
	accounts := ledger.Accounts()
	out := make([]string, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, codec.Encode(a))
	}
	return out
}
