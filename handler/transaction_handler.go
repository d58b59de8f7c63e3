package handler

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"go-ledger/common"
	"go-ledger/model"
	"go-ledger/service"

	"github.com/google/subcommands"
)

type depositCmd struct {
	h   *AccountHandler
	req model.AmountRequest
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "deposit money into an account" }
func (*depositCmd) Usage() string {
	return `deposit -account <number> -pin <nnnn> -amount <amount>
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	credentialFlags(f, &c.req.CredentialsRequest)
	f.StringVar(&c.req.Amount, "amount", "", "Amount to deposit.")
}

func (c *depositCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return ErrorHandlingMiddleware(c.h.out, c.run)(ctx, f)
}

func (c *depositCmd) run(_ context.Context, _ *flag.FlagSet) *common.AppError {
	req := c.req
	if appErr := c.h.authenticate(&req.CredentialsRequest); appErr != nil {
		return appErr
	}
	if err := common.Validate(req); err != nil {
		return common.NewAppError(subcommands.ExitUsageError, err.Error(), nil)
	}
	amount, appErr := parseAmount(req.Amount)
	if appErr != nil {
		return appErr
	}

	c.h.service.Deposit(req.AccountNumber, amount)
	if appErr := c.h.persist(); appErr != nil {
		return appErr
	}

	account, ok := c.h.service.GetAccount(req.AccountNumber)
	if !ok {
		return common.NewAppError(subcommands.ExitFailure, "Account not found", nil)
	}
	fmt.Fprintf(c.h.out, "Deposit successful. Balance: %s\n", account.Balance().StringFixed(2))
	return nil
}

type withdrawCmd struct {
	h   *AccountHandler
	req model.AmountRequest
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "withdraw money from an account" }
func (*withdrawCmd) Usage() string {
	return `withdraw -account <number> -pin <nnnn> -amount <amount>

  Fails without changing the account when the amount exceeds the balance.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	credentialFlags(f, &c.req.CredentialsRequest)
	f.StringVar(&c.req.Amount, "amount", "", "Amount to withdraw.")
}

func (c *withdrawCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return ErrorHandlingMiddleware(c.h.out, c.run)(ctx, f)
}

func (c *withdrawCmd) run(_ context.Context, _ *flag.FlagSet) *common.AppError {
	req := c.req
	if appErr := c.h.authenticate(&req.CredentialsRequest); appErr != nil {
		return appErr
	}
	if err := common.Validate(req); err != nil {
		return common.NewAppError(subcommands.ExitUsageError, err.Error(), nil)
	}
	amount, appErr := parseAmount(req.Amount)
	if appErr != nil {
		return appErr
	}

	if err := c.h.service.Withdraw(req.AccountNumber, amount); err != nil {
		var insufficient *service.InsufficientFundsError
		if errors.As(err, &insufficient) {
			return common.NewAppError(subcommands.ExitFailure,
				fmt.Sprintf("Insufficient funds: balance is %s", insufficient.Available.StringFixed(2)), nil)
		}
		return common.NewAppError(subcommands.ExitFailure, "Withdrawal failed", err)
	}
	if appErr := c.h.persist(); appErr != nil {
		return appErr
	}

	account, ok := c.h.service.GetAccount(req.AccountNumber)
	if !ok {
		return common.NewAppError(subcommands.ExitFailure, "Account not found", nil)
	}
	fmt.Fprintf(c.h.out, "Withdrawn. Balance: %s\n", account.Balance().StringFixed(2))
	return nil
}
