package repository

import (
	"database/sql"
	"fmt"

	"go-ledger/codec"
	"go-ledger/logger"
	"go-ledger/model"

	"github.com/sirupsen/logrus"
)

// PostgresLedgerRepository keeps one encoded record per row of ledger_records.
type PostgresLedgerRepository struct {
	DB *sql.DB
}

func NewPostgresLedgerRepository(db *sql.DB) *PostgresLedgerRepository {
	return &PostgresLedgerRepository{DB: db}
}

// Load retrieves every stored record ordered by account number.
func (r *PostgresLedgerRepository) Load() (*model.Ledger, error) {
	log := logger.Log.WithField("table", "ledger_records")
	log.Info("Executing query to load ledger records")

	query := `SELECT record FROM ledger_records ORDER BY account_number`
	rows, err := r.DB.Query(query)
	if err != nil {
		log.WithError(err).Warn("Failed to execute query for ledger records, starting with an empty ledger")
		return model.NewLedger(), fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var records []string
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			log.WithError(err).Warn("Failed to scan ledger record row, starting with an empty ledger")
			return model.NewLedger(), fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		log.WithError(err).Warn("Failed to iterate ledger record rows, starting with an empty ledger")
		return model.NewLedger(), fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	ledger := decodeRecords("postgres", records)
	log.WithField("accounts", ledger.Len()).Info("Ledger loaded")
	return ledger, nil
}

// Save replaces all rows inside one transaction.
func (r *PostgresLedgerRepository) Save(ledger *model.Ledger) error {
	log := logger.Log.WithFields(logrus.Fields{
		"table":    "ledger_records",
		"accounts": ledger.Len(),
	})
	log.Info("Executing queries to replace ledger records")

	tx, err := r.DB.Begin()
	if err != nil {
		log.WithError(err).Error("Could not begin transaction")
		return fmt.Errorf("%w: could not begin transaction: %v", ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM ledger_records`); err != nil {
		log.WithError(err).Error("Failed to clear ledger records")
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	query := `INSERT INTO ledger_records (account_number, record) VALUES ($1, $2)`
	for _, a := range ledger.Accounts() {
		if _, err := tx.Exec(query, a.Number(), codec.Encode(a)); err != nil {
			log.WithError(err).WithField("account_number", a.Number()).Error("Failed to insert ledger record")
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.WithError(err).Error("Could not commit transaction")
		return fmt.Errorf("%w: could not commit transaction: %v", ErrStoreUnavailable, err)
	}
	return nil
}
