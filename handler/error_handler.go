package handler

import (
	"context"
	"flag"
	"io"

	"go-ledger/common"

	"github.com/google/subcommands"
)

// ErrorHandlingMiddleware runs next and converts its *common.AppError into an
// exit status, printing the user-facing message to w.
func ErrorHandlingMiddleware(w io.Writer, next func(context.Context, *flag.FlagSet) *common.AppError) func(context.Context, *flag.FlagSet) subcommands.ExitStatus {
	return func(ctx context.Context, f *flag.FlagSet) subcommands.ExitStatus {
		if err := next(ctx, f); err != nil {
			return err.Send(w)
		}
		return subcommands.ExitSuccess
	}
}
