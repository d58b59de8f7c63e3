package repository

import (
	"fmt"
	"path/filepath"
	"strings"

	"go-ledger/logger"
	"go-ledger/model"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// FileLedgerRepository keeps the ledger in one text file, one record per line.
type FileLedgerRepository struct {
	fs   afero.Fs
	path string
}

// NewFileLedgerRepository stores the ledger at path on the OS filesystem.
func NewFileLedgerRepository(path string) *FileLedgerRepository {
	return NewFileLedgerRepositoryFs(afero.NewOsFs(), path)
}

func NewFileLedgerRepositoryFs(fs afero.Fs, path string) *FileLedgerRepository {
	return &FileLedgerRepository{fs: fs, path: path}
}

// Load reads every record from the file. A missing file is created empty.
func (r *FileLedgerRepository) Load() (*model.Ledger, error) {
	log := logger.Log.WithField("path", r.path)

	exists, err := afero.Exists(r.fs, r.path)
	if err != nil {
		log.WithError(err).Warn("Could not stat ledger file, starting with an empty ledger")
		return model.NewLedger(), fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !exists {
		if err := r.create(); err != nil {
			log.WithError(err).Warn("Could not create ledger file")
			return model.NewLedger(), fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		log.Info("Created empty ledger file")
		return model.NewLedger(), nil
	}

	data, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		log.WithError(err).Warn("Could not read ledger file, starting with an empty ledger")
		return model.NewLedger(), fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	ledger := decodeRecords(r.path, strings.Split(string(data), "\n"))
	log.WithField("accounts", ledger.Len()).Info("Ledger loaded")
	return ledger, nil
}

func (r *FileLedgerRepository) create() error {
	if err := r.fs.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(r.fs, r.path, nil, 0o644)
}

// Save rewrites the file with the whole ledger. The content is written to a
// sibling temporary file first and renamed over the original, so a failed
// save leaves the previous file in place.
func (r *FileLedgerRepository) Save(ledger *model.Ledger) error {
	log := logger.Log.WithFields(logrus.Fields{
		"path":     r.path,
		"accounts": ledger.Len(),
	})

	if err := r.fs.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		log.WithError(err).Error("Failed to create ledger directory")
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var sb strings.Builder
	for _, line := range encodeRecords(ledger) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	tmp := r.path + ".tmp"
	if err := afero.WriteFile(r.fs, tmp, []byte(sb.String()), 0o644); err != nil {
		_ = r.fs.Remove(tmp)
		log.WithError(err).Error("Failed to write ledger file")
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := r.fs.Rename(tmp, r.path); err != nil {
		_ = r.fs.Remove(tmp)
		log.WithError(err).Error("Failed to replace ledger file")
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	log.Info("Ledger saved")
	return nil
}
