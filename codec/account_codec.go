// Package codec converts accounts to and from the single-line record format
// used by the ledger stores:
//
//	number;holder;digest;balance;TYPE;KIND|amount|timestamp^KIND|amount|timestamp^
//
// Decoding is tolerant: bad numbers and unknown account types fall back to
// safe defaults, and broken transaction segments are dropped one at a time.
package codec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-ledger/logger"
	"go-ledger/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	FieldSeparator   = ";"
	SegmentSeparator = "^"
	SubFieldSep      = "|"

	// TimestampLayout carries the zone offset so a record names the same
	// instant wherever it is read.
	TimestampLayout = time.RFC3339Nano

	// Older records hold zone-less local wall-clock time, some only to the
	// minute.
	legacyLayout = "2006-01-02T15:04:05.999999999"
	minuteLayout = "2006-01-02T15:04"

	recordFields  = 6
	minimumFields = 5
)

var (
	ErrBlankRecord     = errors.New("blank record")
	ErrMalformedRecord = errors.New("malformed record")
)

// DefaultAccountType is used when a record carries an unknown type.
const DefaultAccountType = model.Savings

// Encode renders a as one record line without a trailing newline. Separators
// inside the holder name become commas and line breaks become spaces; this is
// not undone by Decode.
func Encode(a *model.Account) string {
	var sb strings.Builder
	sb.WriteString(a.Number())
	sb.WriteString(FieldSeparator)
	sb.WriteString(escapeName(a.HolderName()))
	sb.WriteString(FieldSeparator)
	sb.WriteString(a.CredentialHash())
	sb.WriteString(FieldSeparator)
	sb.WriteString(a.Balance().String())
	sb.WriteString(FieldSeparator)
	sb.WriteString(string(a.Type()))
	sb.WriteString(FieldSeparator)
	for _, t := range a.History() {
		sb.WriteString(string(t.Kind))
		sb.WriteString(SubFieldSep)
		sb.WriteString(t.Amount.String())
		sb.WriteString(SubFieldSep)
		sb.WriteString(FormatTimestamp(t.Timestamp))
		sb.WriteString(SegmentSeparator)
	}
	return sb.String()
}

var nameEscaper = strings.NewReplacer(
	FieldSeparator, ",",
	"\r", " ",
	"\n", " ",
)

func escapeName(name string) string {
	return nameEscaper.Replace(name)
}

// Decode parses one record line. It returns ErrBlankRecord for empty lines and
// ErrMalformedRecord when fewer than five fields are present; every other
// defect is repaired or skipped.
func Decode(line string) (*model.Account, error) {
	if strings.TrimSpace(line) == "" {
		return nil, ErrBlankRecord
	}
	line = strings.TrimRight(line, "\r\n")

	parts := strings.SplitN(line, FieldSeparator, recordFields)
	if len(parts) < minimumFields {
		return nil, fmt.Errorf("%w: %d fields, want at least %d", ErrMalformedRecord, len(parts), minimumFields)
	}
	number, holder, credential := parts[0], parts[1], parts[2]

	log := logger.Log.WithField("account_number", number)

	balance, err := decimal.NewFromString(strings.TrimSpace(parts[3]))
	if err != nil {
		log.WithField("balance", parts[3]).Warn("Unparsable balance, defaulting to zero")
		balance = decimal.Zero
	}
	if balance.IsNegative() {
		log.WithField("balance", parts[3]).Warn("Negative stored balance, clamping to zero")
		balance = decimal.Zero
	}

	accountType, ok := model.ParseAccountType(strings.TrimSpace(parts[4]))
	if !ok {
		log.WithField("account_type", parts[4]).Warn("Unknown account type, defaulting to SAVINGS")
		accountType = DefaultAccountType
	}

	// A stored digest is kept as is; anything else is a legacy plaintext PIN.
	hash := credential
	if !model.IsDigest(credential) {
		hash = model.HashPIN(credential)
	}

	var history []model.Transaction
	if len(parts) == recordFields && parts[5] != "" {
		history = decodeHistory(parts[5], log)
	}

	return model.RestoreAccount(number, holder, hash, balance, accountType, history), nil
}

func decodeHistory(block string, log *logrus.Entry) []model.Transaction {
	var history []model.Transaction
	for i, seg := range strings.Split(block, SegmentSeparator) {
		if strings.TrimSpace(seg) == "" {
			continue
		}
		t, err := decodeSegment(seg)
		if err != nil {
			log.WithFields(logrus.Fields{
				"segment": i,
				"error":   err.Error(),
			}).Warn("Skipping malformed transaction segment")
			continue
		}
		history = append(history, t)
	}
	return history
}

func decodeSegment(seg string) (model.Transaction, error) {
	sub := strings.Split(seg, SubFieldSep)
	if len(sub) < 3 {
		return model.Transaction{}, fmt.Errorf("%w: %d sub-fields, want 3", ErrMalformedRecord, len(sub))
	}
	kind, ok := model.ParseTransactionKind(strings.TrimSpace(sub[0]))
	if !ok {
		return model.Transaction{}, fmt.Errorf("%w: unknown transaction kind %q", ErrMalformedRecord, sub[0])
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(sub[1]))
	if err != nil {
		amount = decimal.Zero
	}
	at, err := ParseTimestamp(strings.TrimSpace(sub[2]))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return model.NewTransaction(kind, amount, at), nil
}

// FormatTimestamp renders t in TimestampLayout with t's own offset.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp reads a TimestampLayout value. Zone-less legacy values, with
// or without seconds, are read in the local zone.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err == nil {
		return t, nil
	}
	for _, layout := range []string{legacyLayout, minuteLayout} {
		if t, err2 := time.ParseInLocation(layout, s, time.Local); err2 == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
