package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micaelyMelo/OficinaMecanica/internal/config"
	"github.com/micaelyMelo/OficinaMecanica/internal/schema"
	"github.com/micaelyMelo/OficinaMecanica/internal/shop"
)

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes the command tree once with fresh flag values.
func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// in runs a one-shot command against dir, without colors.
func in(t *testing.T, dir string, args ...string) result {
	t.Helper()
	return run(t, "", append([]string{"--data-dir", dir, "--no-color"}, args...)...)
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	res := in(t, dir, args...)
	require.NoError(t, res.err, "oficina %s\nstderr: %s", strings.Join(args, " "), res.stderr)
	return res.stdout
}

func readData(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func seedShop(t *testing.T, dir string) {
	t.Helper()
	mustRun(t, dir, "client", "add", "--tax-id", "111.111.111-11", "--name", "Ana Silva", "--phone", "(11) 99999-0000")
	mustRun(t, dir, "vehicle", "add", "--plate", "ABC1234", "--model", "Gol", "--year", "2015", "--owner", "111.111.111-11")
	mustRun(t, dir, "order", "open", "--plate", "ABC1234", "--date", "10/05/2024", "--description", "barulho no freio")
}

func TestRecordLifecycle(t *testing.T) {
	dir := t.TempDir()
	seedShop(t, dir)

	assert.Equal(t, "Ana Silva;111.111.111-11;(11) 99999-0000\n", readData(t, dir, schema.ClientsFile))
	assert.Equal(t, "ABC1234;Gol;2015;111.111.111-11\n", readData(t, dir, schema.VehiclesFile))
	assert.Equal(t, "1;ABC1234;10/05/2024;barulho no freio;1\n", readData(t, dir, schema.OrdersFile))

	out := mustRun(t, dir, "order", "status", "1", "in-repair")
	assert.Contains(t, out, "Order 1 is now Em Reparo")

	out = mustRun(t, dir, "vehicle", "delete", "ABC1234")
	assert.Contains(t, out, "Deleted vehicle ABC1234")
	assert.Contains(t, out, "1 order(s) left without vehicle")
	assert.Equal(t, "1;;10/05/2024;barulho no freio;2\n", readData(t, dir, schema.OrdersFile))

	out = mustRun(t, dir, "order", "list")
	assert.Contains(t, out, "Desconhecido")
	assert.Contains(t, out, "barulho no freio")

	out = mustRun(t, dir, "client", "delete", "111.111.111-11")
	assert.Contains(t, out, "Deleted client 111.111.111-11")
	assert.NotContains(t, out, "left without owner")
	assert.Empty(t, readData(t, dir, schema.ClientsFile))
}

func TestClientCommands(t *testing.T) {
	dir := t.TempDir()
	seedShop(t, dir)

	res := in(t, dir, "client", "add", "--tax-id", "111.111.111-11", "--name", "Outra Pessoa")
	assert.ErrorIs(t, res.err, shop.ErrDuplicateKey)

	res = in(t, dir, "client", "add", "--tax-id", "abc", "--name", "Bruno")
	assert.ErrorIs(t, res.err, shop.ErrInvalidField)

	res = in(t, dir, "client", "update", "999", "--name", "Ninguém")
	assert.ErrorIs(t, res.err, shop.ErrNotFound)

	out := mustRun(t, dir, "client", "update", "111.111.111-11", "--phone", "(11) 3333-4444")
	assert.Contains(t, out, "Updated client 111.111.111-11 (Ana Silva)")
	assert.Equal(t, "Ana Silva;111.111.111-11;(11) 3333-4444\n", readData(t, dir, schema.ClientsFile))

	out = mustRun(t, dir, "client", "delete", "111.111.111-11")
	assert.Contains(t, out, "1 vehicle(s) left without owner")
	assert.Equal(t, "ABC1234;Gol;2015;\n", readData(t, dir, schema.VehiclesFile))

	out = mustRun(t, dir, "vehicle", "list")
	assert.Contains(t, out, "Desconhecido")
}

func TestVehicleCommands(t *testing.T) {
	dir := t.TempDir()
	seedShop(t, dir)

	res := in(t, dir, "vehicle", "add", "--plate", "DEF5678", "--model", "Uno", "--year", "2010", "--owner", "999")
	assert.ErrorIs(t, res.err, shop.ErrOwnerNotFound)
	assert.Equal(t, "ABC1234;Gol;2015;111.111.111-11\n", readData(t, dir, schema.VehiclesFile))

	res = in(t, dir, "vehicle", "add", "--plate", "ABC1234", "--model", "Uno", "--year", "2010", "--owner", "111.111.111-11")
	assert.ErrorIs(t, res.err, shop.ErrDuplicateKey)

	out := mustRun(t, dir, "vehicle", "update", "ABC1234", "--year", "2016")
	assert.Contains(t, out, "Updated vehicle ABC1234 (Gol 2016)")

	res = in(t, dir, "vehicle", "update", "ZZZ0000", "--model", "Fusca")
	assert.ErrorIs(t, res.err, shop.ErrNotFound)

	out = mustRun(t, dir, "vehicle", "list", "--owner", "111.111.111-11")
	assert.Contains(t, out, "ABC1234")
	assert.Contains(t, out, "Ana Silva")

	out = mustRun(t, dir, "vehicle", "list", "--owner", "999")
	assert.Contains(t, out, "Nenhum veículo cadastrado.")
}

func TestOrderCommands(t *testing.T) {
	dir := t.TempDir()
	seedShop(t, dir)

	now = func() time.Time { return time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = time.Now })

	res := in(t, dir, "order", "open", "--plate", "NOPE", "--date", "10/05/2024")
	assert.ErrorIs(t, res.err, shop.ErrVehicleNotFound)

	res = in(t, dir, "order", "open", "--plate", "ABC1234", "--date", "31/04/2020")
	assert.ErrorIs(t, res.err, shop.ErrInvalidDate)

	out := mustRun(t, dir, "order", "open", "--plate", "ABC1234", "--date", "today", "--description", "revisão")
	assert.Contains(t, out, "Opened order 2 for ABC1234 on 03/06/2024")

	res = in(t, dir, "order", "update", "1", "--status", "quebrado")
	assert.ErrorIs(t, res.err, shop.ErrInvalidStatus)

	out = mustRun(t, dir, "order", "update", "1", "--status", "3", "--description", "freio trocado")
	assert.Contains(t, out, "Updated order 1: Finalizado")

	res = in(t, dir, "order", "update", "9", "--status", "2")
	assert.ErrorIs(t, res.err, shop.ErrNotFound)

	res = in(t, dir, "order", "status", "x", "2")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), `invalid order id "x"`)

	out = mustRun(t, dir, "order", "list", "--status", "Finalizado")
	assert.Contains(t, out, "freio trocado")
	assert.NotContains(t, out, "revisão")

	out = mustRun(t, dir, "order", "delete", "1")
	assert.Contains(t, out, "Deleted order 1")
	assert.Equal(t, "2;ABC1234;03/06/2024;revisão;1\n", readData(t, dir, schema.OrdersFile))
}

func TestSummaryCommand(t *testing.T) {
	dir := t.TempDir()
	seedShop(t, dir)

	out := mustRun(t, dir, "summary")
	assert.Contains(t, out, "Clientes: 1")
	assert.Contains(t, out, "Veículos: 1")
	assert.Contains(t, out, "Aguardando Avaliação")
	assert.Contains(t, out, "Total")
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	seedShop(t, dir)

	out := mustRun(t, dir, "export", "yaml")
	assert.Contains(t, out, "plate: ABC1234")
	assert.Contains(t, out, "status: AwaitingEvaluation")

	dbPath := filepath.Join(t.TempDir(), "oficina.db")
	out = mustRun(t, dir, "export", "sqlite", dbPath)
	assert.Contains(t, out, "Exported 1 clients, 1 vehicles, 1 orders to "+dbPath)
	assert.FileExists(t, dbPath)

	xlsxPath := filepath.Join(t.TempDir(), "oficina.xlsx")
	mustRun(t, dir, "export", "xlsx", xlsxPath)
	assert.FileExists(t, xlsxPath)

	res := in(t, dir, "export", "sqlite")
	assert.ErrorContains(t, res.err, "needs an output file")

	res = in(t, dir, "export", "csv", filepath.Join(t.TempDir(), "x.csv"))
	assert.ErrorContains(t, res.err, "unknown export format")
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oficina.toml")

	res := run(t, "", "config", "init", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Wrote "+path)

	res = run(t, "", "config", "init", path)
	assert.ErrorIs(t, res.err, config.ErrExists)

	res = run(t, "", "--data-dir", "/srv/oficina", "config", "init", "--force", path)
	require.NoError(t, res.err)

	res = run(t, "", "--config", path, "config", "show")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `data_dir = "/srv/oficina"`)
	assert.Contains(t, res.stdout, `level = "warn"`)

	res = run(t, "", "--config", path, "--log-level", "loud", "config", "show")
	assert.ErrorIs(t, res.err, config.ErrInvalid)
}

func TestLoadWarnings(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, schema.VehiclesFile), []byte("XYZ9876;Fusca;1970;555\n"), 0644))

	res := in(t, dir, "vehicle", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Warning: vehicle XYZ9876 has no registered owner")
	assert.Contains(t, res.stdout, "XYZ9876")
}

func TestShellCommand(t *testing.T) {
	dir := t.TempDir()
	seedShop(t, dir)

	res := run(t, "4\n0\n", "--data-dir", dir, "--no-color", "shell")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "OFICINA MECÂNICA")
	assert.Contains(t, res.stdout, "Ana Silva")
	assert.Contains(t, res.stdout, "Encerrando...")

	// Without a subcommand the menu opens too.
	res = run(t, "0\n", "--data-dir", dir, "--no-color")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Encerrando...")
}

func TestShellCommandWatch(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "novo")

	res := run(t, "1\n222\nBruno Souza\n(21) 5555-0000\n0\n", "--data-dir", dir, "--no-color", "shell", "--watch")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Cliente cadastrado!")
	assert.NotContains(t, res.stdout, "recarregados")
	assert.Equal(t, "Bruno Souza;222;(21) 5555-0000\n", readData(t, dir, schema.ClientsFile))
}
