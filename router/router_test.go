package router_test

import (
	"bytes"
	"flag"
	"sort"
	"testing"

	"go-ledger/handler"
	"go-ledger/logger"
	"go-ledger/repository"
	"go-ledger/router"
	"go-ledger/service"

	"github.com/google/subcommands"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestNewRouter_RegistersCommands(t *testing.T) {
	logger.Init()
	repo := repository.NewFileLedgerRepositoryFs(afero.NewMemMapFs(), "accounts.csv")
	h := handler.NewAccountHandler(service.NewLedgerService(repo), &bytes.Buffer{})

	cdr := router.NewRouter(h, flag.NewFlagSet("ledger", flag.ContinueOnError), "ledger")

	groups := map[string][]string{}
	cdr.VisitCommands(func(g *subcommands.CommandGroup, c subcommands.Command) {
		groups[g.Name()] = append(groups[g.Name()], c.Name())
	})
	for _, names := range groups {
		sort.Strings(names)
	}

	assert.Equal(t, []string{"balance", "close", "create", "deposit", "history", "withdraw"}, groups["ledger"])
	assert.ElementsMatch(t, []string{"commands", "flags", "help"}, groups[""])
}
