package router

import (
	"flag"

	"go-ledger/handler"

	"github.com/google/subcommands"
)

const ledgerGroup = "ledger"

// NewRouter builds a commander over f with the built-in help commands and
// every ledger command of h.
func NewRouter(h *handler.AccountHandler, f *flag.FlagSet, name string) *subcommands.Commander {
	cdr := subcommands.NewCommander(f, name)
	cdr.Register(cdr.HelpCommand(), "")
	cdr.Register(cdr.FlagsCommand(), "")
	cdr.Register(cdr.CommandsCommand(), "")

	for _, cmd := range h.Commands() {
		cdr.Register(cmd, ledgerGroup)
	}
	return cdr
}
