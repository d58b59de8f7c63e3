package handler

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"go-ledger/common"
	"go-ledger/logger"
	"go-ledger/model"
	"go-ledger/service"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type AccountHandler struct {
	service *service.LedgerService
	out     io.Writer
}

func NewAccountHandler(service *service.LedgerService, out io.Writer) *AccountHandler {
	return &AccountHandler{service: service, out: out}
}

// Commands lists every ledger command served by the handler.
func (h *AccountHandler) Commands() []subcommands.Command {
	return []subcommands.Command{
		&createCmd{h: h},
		&depositCmd{h: h},
		&withdrawCmd{h: h},
		&balanceCmd{h: h},
		&historyCmd{h: h},
		&closeCmd{h: h},
	}
}

// persist saves the ledger after a successful change.
func (h *AccountHandler) persist() *common.AppError {
	if err := h.service.Persist(); err != nil {
		return common.NewAppError(subcommands.ExitFailure, "Changes could not be saved", err)
	}
	return nil
}

// parseAmount turns a validated numeric string into a strictly positive amount.
func parseAmount(s string) (decimal.Decimal, *common.AppError) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, common.NewAppError(subcommands.ExitUsageError, "Invalid number", nil)
	}
	if !amount.IsPositive() {
		return decimal.Zero, common.NewAppError(subcommands.ExitUsageError, "Amount must be positive", nil)
	}
	return amount, nil
}

func credentialFlags(f *flag.FlagSet, req *model.CredentialsRequest) {
	f.StringVar(&req.AccountNumber, "account", "", "Account number.")
	f.StringVar(&req.PIN, "pin", "", "4-digit PIN.")
}

type createCmd struct {
	h   *AccountHandler
	req model.CreateAccountRequest
}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "open a new account" }
func (*createCmd) Usage() string {
	return `create -name <holder> -pin <nnnn> -type <SAVINGS|CHECKING> [-deposit <amount>]

  Opens an account and prints its generated number.
`
}

func (c *createCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.req.Name, "name", "", "Account holder name.")
	f.StringVar(&c.req.PIN, "pin", "", "4-digit PIN.")
	f.StringVar(&c.req.Type, "type", string(model.Savings), "Account type: SAVINGS or CHECKING.")
	f.StringVar(&c.req.InitialDeposit, "deposit", "", "Initial deposit.")
}

func (c *createCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return ErrorHandlingMiddleware(c.h.out, c.run)(ctx, f)
}

func (c *createCmd) run(_ context.Context, _ *flag.FlagSet) *common.AppError {
	req := c.req
	req.Name = strings.TrimSpace(req.Name)
	req.PIN = strings.TrimSpace(req.PIN)
	req.Type = strings.ToUpper(strings.TrimSpace(req.Type))
	req.InitialDeposit = strings.TrimSpace(req.InitialDeposit)

	if err := common.Validate(req); err != nil {
		return common.NewAppError(subcommands.ExitUsageError, err.Error(), nil)
	}

	accountType, _ := model.ParseAccountType(req.Type)
	initial := decimal.Zero
	if req.InitialDeposit != "" {
		var err error
		if initial, err = decimal.NewFromString(req.InitialDeposit); err != nil {
			return common.NewAppError(subcommands.ExitUsageError, "Invalid number", nil)
		}
		if initial.IsNegative() {
			return common.NewAppError(subcommands.ExitUsageError, "Initial deposit cannot be negative", nil)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"account_type": accountType,
		"initial":      initial.String(),
	}).Info("Create account request received")

	account, err := c.h.service.CreateAccount(req.Name, req.PIN, accountType, initial)
	if err != nil {
		return common.NewAppError(subcommands.ExitFailure, "Could not create account", err)
	}
	if appErr := c.h.persist(); appErr != nil {
		return appErr
	}

	fmt.Fprintf(c.h.out, "Created account: %s\n", account.Number())
	return nil
}

type balanceCmd struct {
	h   *AccountHandler
	req model.CredentialsRequest
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "show an account balance" }
func (*balanceCmd) Usage() string {
	return `balance -account <number> -pin <nnnn>
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) { credentialFlags(f, &c.req) }

func (c *balanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return ErrorHandlingMiddleware(c.h.out, c.run)(ctx, f)
}

func (c *balanceCmd) run(_ context.Context, _ *flag.FlagSet) *common.AppError {
	req := c.req
	if appErr := c.h.authenticate(&req); appErr != nil {
		return appErr
	}
	account, ok := c.h.service.GetAccount(req.AccountNumber)
	if !ok {
		return common.NewAppError(subcommands.ExitFailure, "Account not found", nil)
	}

	fmt.Fprintf(c.h.out, "Balance: %s\n", account.Balance().StringFixed(2))
	return nil
}

type historyCmd struct {
	h   *AccountHandler
	req model.CredentialsRequest
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list an account's transactions" }
func (*historyCmd) Usage() string {
	return `history -account <number> -pin <nnnn>

  Lists deposits and withdrawals oldest first.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) { credentialFlags(f, &c.req) }

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return ErrorHandlingMiddleware(c.h.out, c.run)(ctx, f)
}

func (c *historyCmd) run(_ context.Context, _ *flag.FlagSet) *common.AppError {
	req := c.req
	if appErr := c.h.authenticate(&req); appErr != nil {
		return appErr
	}
	account, ok := c.h.service.GetAccount(req.AccountNumber)
	if !ok {
		return common.NewAppError(subcommands.ExitFailure, "Account not found", nil)
	}

	history := account.History()
	if len(history) == 0 {
		fmt.Fprintln(c.h.out, "No transactions")
		return nil
	}
	fmt.Fprintln(c.h.out, "Transactions:")
	for _, tx := range history {
		fmt.Fprintln(c.h.out, tx.String())
	}
	return nil
}

type closeCmd struct {
	h   *AccountHandler
	req model.CredentialsRequest
}

func (*closeCmd) Name() string     { return "close" }
func (*closeCmd) Synopsis() string { return "close an account" }
func (*closeCmd) Usage() string {
	return `close -account <number> -pin <nnnn>

  Removes the account and its history from the ledger.
`
}

func (c *closeCmd) SetFlags(f *flag.FlagSet) { credentialFlags(f, &c.req) }

func (c *closeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return ErrorHandlingMiddleware(c.h.out, c.run)(ctx, f)
}

func (c *closeCmd) run(_ context.Context, _ *flag.FlagSet) *common.AppError {
	req := c.req
	if appErr := c.h.authenticate(&req); appErr != nil {
		return appErr
	}
	c.h.service.CloseAccount(req.AccountNumber)
	if appErr := c.h.persist(); appErr != nil {
		return appErr
	}

	fmt.Fprintln(c.h.out, "Account closed")
	return nil
}
