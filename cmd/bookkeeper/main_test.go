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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alwaysmad/bookkeeper/internal/cli"
	"github.com/alwaysmad/bookkeeper/internal/common"
	"github.com/alwaysmad/bookkeeper/internal/config"
	"github.com/alwaysmad/bookkeeper/internal/controller"
	"github.com/alwaysmad/bookkeeper/internal/model"
	"github.com/alwaysmad/bookkeeper/internal/storage"
)

const statementOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240128120000[0:GMT]
<TRNAMT>1500.00
<FITID>2024012801
<NAME>PAYROLL
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

// useTempConfig points appConfig at a fresh database for the duration of the test.
func useTempConfig(t *testing.T) config.Config {
	t.Helper()
	prev := appConfig
	t.Cleanup(func() { appConfig = prev })

	appConfig = config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "bookkeeper.db")},
		Logging:  config.LoggingConfig{Level: "error", Format: "console"},
		Defaults: config.DefaultsConfig{
			Categories:  []string{"Groceries", "Home"},
			DayBudget:   100,
			WeekBudget:  700,
			MonthBudget: 3000,
		},
	}
	return appConfig
}

// runCmd executes cmd with args and returns what it printed.
func runCmd(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func expensesIn(t *testing.T, cfg config.Config) []model.Expense {
	t.Helper()
	ctx := context.Background()
	a, err := openApp(ctx, cfg)
	require.NoError(t, err)
	defer a.Close()

	expenses, err := a.repos.Expenses.GetAll(ctx, nil)
	require.NoError(t, err)
	return expenses
}

func TestRootCommand(t *testing.T) {
	for _, name := range []string{"summary", "categories", "import", "backup", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	for _, flag := range []string{"config", "log-level", "log-format", "db"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), "missing --%s", flag)
	}
	assert.NotNil(t, rootCmd.Flags().Lookup("plain"))
}

func TestVersionCmd(t *testing.T) {
	out, err := runCmd(t, versionCmd())
	require.NoError(t, err)
	assert.Equal(t, "bookkeeper dev\n", out)
}

func TestSeedFrom(t *testing.T) {
	seed := seedFrom(config.DefaultsConfig{
		Categories:  []string{"Food"},
		DayBudget:   1,
		WeekBudget:  2,
		MonthBudget: 3,
	})

	assert.Equal(t, []string{"Food"}, seed.Categories)
	require.Len(t, seed.Budgets, 3)
	assert.Equal(t, model.NewBudget(1, model.PeriodDay), seed.Budgets[0])
	assert.Equal(t, model.NewBudget(2, model.PeriodWeek), seed.Budgets[1])
	assert.Equal(t, model.NewBudget(3, model.PeriodMonth), seed.Budgets[2])
}

func TestSummaryCmd_SeedsFreshDatabase(t *testing.T) {
	useTempConfig(t)

	out, err := runCmd(t, summaryCmd())
	require.NoError(t, err)

	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "Home")
	assert.Contains(t, out, "Today")
}

func TestCategoriesCmd(t *testing.T) {
	cmd := categoriesCmd()
	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"list", "add", "delete"}, names)
}

func TestCategoriesLifecycle(t *testing.T) {
	useTempConfig(t)

	out, err := runCmd(t, categoriesCmd(), "add", "Travel")
	require.NoError(t, err)
	assert.Contains(t, out, `Created category "Travel"`)

	_, err = runCmd(t, categoriesCmd(), "add", "Travel")
	require.ErrorIs(t, err, cli.ErrDuplicateCategory)
	assert.Equal(t, `Category "Travel" already exists`, common.UserMessage(err))

	out, err = runCmd(t, categoriesCmd(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Travel")

	out, err = runCmd(t, categoriesCmd(), "delete", "Travel")
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted category "Travel"`)

	_, err = runCmd(t, categoriesCmd(), "delete", "Travel")
	require.ErrorIs(t, err, controller.ErrCategoryNotFound)

	out, err = runCmd(t, categoriesCmd(), "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Travel")
}

func TestCategoryDelete_DetachesExpenses(t *testing.T) {
	cfg := useTempConfig(t)
	ctx := context.Background()

	// Seed, then record an expense against Home.
	a, err := openApp(ctx, cfg)
	require.NoError(t, err)
	_, err = a.startHeadless(ctx)
	require.NoError(t, err)
	home, err := controller.ResolveCategory(ctx, a.repos.Categories, "Home")
	require.NoError(t, err)
	_, err = a.repos.Expenses.Add(ctx, model.NewExpense(12, home.PK, time.Now()))
	require.NoError(t, err)
	require.NoError(t, a.Close())

	_, err = runCmd(t, categoriesCmd(), "delete", "Home")
	require.NoError(t, err)

	expenses := expensesIn(t, cfg)
	require.Len(t, expenses, 1)
	assert.Equal(t, model.NoCategory, expenses[0].Category)
	assert.Equal(t, 12.0, expenses[0].Amount)
}

func TestRunImport(t *testing.T) {
	cfg := useTempConfig(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "statement.ofx")
	require.NoError(t, os.WriteFile(path, []byte(statementOFX), 0600))

	t.Run("dry run saves nothing", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runImport(ctx, cfg, &out, path, "Groceries", true))
		assert.Contains(t, out.String(), "STARBUCKS STORE #1234")
		assert.Contains(t, out.String(), "Dry run: 1 expenses found")
		assert.Empty(t, expensesIn(t, cfg))
	})

	t.Run("imports debits into category", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runImport(ctx, cfg, &out, path, "Groceries", false))
		assert.Contains(t, out.String(), "Imported 1 expenses, skipped 0")

		expenses := expensesIn(t, cfg)
		require.Len(t, expenses, 1)
		assert.Equal(t, 25.50, expenses[0].Amount)
		assert.Equal(t, "STARBUCKS STORE #1234", expenses[0].Comment)
		assert.NotEqual(t, model.NoCategory, expenses[0].Category)
	})

	t.Run("second import skips duplicates", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runImport(ctx, cfg, &out, path, "Groceries", false))
		assert.Contains(t, out.String(), "Imported 0 expenses, skipped 1")
		assert.Len(t, expensesIn(t, cfg), 1)
	})

	t.Run("unknown category", func(t *testing.T) {
		err := runImport(ctx, cfg, &bytes.Buffer{}, path, "Nope", false)
		assert.ErrorIs(t, err, controller.ErrCategoryNotFound)
	})

	t.Run("missing file", func(t *testing.T) {
		err := runImport(ctx, cfg, &bytes.Buffer{}, filepath.Join(t.TempDir(), "missing.ofx"), "", false)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestRunBackup(t *testing.T) {
	cfg := useTempConfig(t)
	ctx := context.Background()
	now := time.Date(2024, time.June, 10, 15, 4, 5, 0, time.Local)

	var out bytes.Buffer
	require.NoError(t, runBackup(ctx, cfg, &out, "", now))

	dest := cfg.Database.Path + ".backup-20240610-150405"
	assert.Equal(t, dest, backupPath(cfg.Database.Path, now))
	assert.FileExists(t, dest)
	assert.Contains(t, out.String(), dest)

	err := runBackup(ctx, cfg, &bytes.Buffer{}, "", now)
	assert.ErrorIs(t, err, storage.ErrBackupExists)

	// The copy is a usable database.
	store, err := storage.Open(dest)
	require.NoError(t, err)
	defer store.Close()
	_, err = storage.OpenRepositories(ctx, store)
	require.NoError(t, err)
}

func TestRunInteractive_Plain(t *testing.T) {
	cfg := useTempConfig(t)

	var out bytes.Buffer
	in := strings.NewReader("add 42 Groceries\nquit\n")
	require.NoError(t, runInteractive(context.Background(), cfg, true, in, &out))

	assert.Contains(t, out.String(), "Added")
	expenses := expensesIn(t, cfg)
	require.Len(t, expenses, 1)
	assert.Equal(t, 42.0, expenses[0].Amount)
}

func TestOpenApp_Fails(t *testing.T) {
	cfg := useTempConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))
	cfg.Database.Path = filepath.Join(blocker, "bookkeeper.db")

	_, err := openApp(context.Background(), cfg)
	assert.Error(t, err)
}
