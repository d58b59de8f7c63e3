package app

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-ledger/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/subcommands"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o644))
	return dir
}

func execute(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var out bytes.Buffer
	code := Execute(context.Background(), args, &out)
	return code, out.String()
}

func createdNumber(t *testing.T, out string) string {
	t.Helper()
	require.True(t, strings.HasPrefix(out, "Created account: "), out)
	return strings.TrimSpace(strings.TrimPrefix(out, "Created account: "))
}

func TestExecute_FileBackend(t *testing.T) {
	ledgerFile := filepath.Join(t.TempDir(), "ledger", "accounts.csv")
	dir := writeConfig(t, fmt.Sprintf("store:\n  backend: file\n  path: %s\nlog:\n  level: error\n", ledgerFile))

	code, out := execute(t, "-config", dir, "create", "-name", "Alice", "-pin", "1234", "-deposit", "100")
	require.Equal(t, 0, code, out)
	number := createdNumber(t, out)

	code, out = execute(t, "-config", dir, "withdraw", "-account", number, "-pin", "1234", "-amount", "40")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Withdrawn. Balance: 60.00\n", out)

	code, out = execute(t, "-config", dir, "withdraw", "-account", number, "-pin", "1234", "-amount", "61")
	assert.Equal(t, 1, code)
	assert.Equal(t, "Error: Insufficient funds: balance is 60.00\n", out)

	content, err := os.ReadFile(ledgerFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), number+";Alice;")
}

func TestExecute_RedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := writeConfig(t, fmt.Sprintf("store:\n  backend: redis\nredis:\n  addr: %s\n  key: test:ledger\nlog:\n  level: error\n", mr.Addr()))

	code, out := execute(t, "-config", dir, "create", "-name", "Bob", "-pin", "4321", "-type", "CHECKING")
	require.Equal(t, 0, code, out)
	number := createdNumber(t, out)

	record := mr.HGet("test:ledger", number)
	assert.True(t, strings.HasPrefix(record, number+";Bob;"), record)

	code, out = execute(t, "-config", dir, "balance", "-account", number, "-pin", "4321")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Balance: 0.00\n", out)
}

func TestExecute_Failures(t *testing.T) {
	t.Run("no command", func(t *testing.T) {
		dir := writeConfig(t, "log:\n  level: error\n")
		code, _ := execute(t, "-config", dir)
		assert.Equal(t, int(subcommands.ExitUsageError), code)
	})

	t.Run("unknown flag", func(t *testing.T) {
		code, _ := execute(t, "-bogus")
		assert.Equal(t, int(subcommands.ExitUsageError), code)
	})

	t.Run("unknown backend", func(t *testing.T) {
		dir := writeConfig(t, "store:\n  backend: tape\n")
		code, _ := execute(t, "-config", dir, "balance")
		assert.Equal(t, int(subcommands.ExitFailure), code)
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()
		dir := writeConfig(t, fmt.Sprintf("store:\n  backend: redis\nredis:\n  addr: %s\nlog:\n  level: error\n", addr))

		code, _ := execute(t, "-config", dir, "balance", "-account", "AB12CD34", "-pin", "1234")
		assert.Equal(t, int(subcommands.ExitFailure), code)
	})
}

func TestNew_WiresCommands(t *testing.T) {
	var out bytes.Buffer
	flags := flag.NewFlagSet("ledger", flag.ContinueOnError)
	repo := repository.NewFileLedgerRepositoryFs(afero.NewMemMapFs(), "accounts.csv")

	a := New(repo, flags, &out)
	require.NoError(t, flags.Parse([]string{"create", "-name", "Carol", "-pin", "1111"}))

	status := a.Commander.Execute(context.Background())

	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, 1, a.Service.Len())
	assert.True(t, strings.HasPrefix(out.String(), "Created account: "))
}
