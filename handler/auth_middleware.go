package handler

import (
	"strings"

	"go-ledger/common"
	"go-ledger/model"

	"github.com/google/subcommands"
)

// authenticate validates the credentials and checks them against the ledger.
// Every failure after validation reads the same so callers cannot tell a
// missing account from a wrong PIN.
func (h *AccountHandler) authenticate(req *model.CredentialsRequest) *common.AppError {
	req.AccountNumber = strings.TrimSpace(req.AccountNumber)
	req.PIN = strings.TrimSpace(req.PIN)

	if err := common.Validate(req); err != nil {
		return common.NewAppError(subcommands.ExitUsageError, err.Error(), nil)
	}
	if !h.service.Authenticate(req.AccountNumber, req.PIN) {
		return common.NewAppError(subcommands.ExitFailure, "Authentication failed", nil)
	}
	return nil
}
