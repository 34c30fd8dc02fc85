package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/anoushkasinn/Spend.Sense/internal/common"
	"github.com/anoushkasinn/Spend.Sense/internal/ledger"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv runs commands against a private database with a fixed clock and
// predictable ids: the nth record created gets short id 0000000n.
type testEnv struct {
	t   *testing.T
	dir string
	db  string
	now time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)

	env := &testEnv{
		t:   t,
		dir: dir,
		db:  filepath.Join(dir, "spend.db"),
		now: time.Date(2024, time.March, 15, 10, 0, 0, 0, time.Local),
	}

	var n int
	ledgerOptions = []ledger.Option{
		ledger.WithClock(func() time.Time { return env.now }),
		ledger.WithIDFunc(func() string {
			n++
			return fmt.Sprintf("0190b2c4-0000-7000-8000-%012d", n)
		}),
	}
	t.Cleanup(func() {
		ledgerOptions = nil
		viper.Reset()
	})
	return env
}

// run executes the root command with stdin and returns everything written.
func (e *testEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()
	viper.Reset()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db", e.db}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run("", args...)
	require.NoError(e.t, err, out)
	return out
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	assert.Contains(t, env.mustRun("version"), "spend version dev")
}

func TestExpenseLifecycle(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("expense", "add", "--amount", "250", "--category", "food", "--note", "Lunch")
	assert.Contains(t, out, "Added ₹250")
	assert.Contains(t, out, "Food & Dining")
	assert.Contains(t, out, "15 Mar 2024")
	assert.Contains(t, out, "(00000001)")

	out = env.mustRun("expense", "add", "-a", "₹40", "-n", "chai", "-d", "2024-03-14")
	assert.Contains(t, out, "Micro-spend")

	out = env.mustRun("expense", "list")
	assert.Contains(t, out, "Lunch")
	assert.Contains(t, out, "chai")
	assert.Contains(t, out, "₹40 •")
	assert.Contains(t, out, "2 of 2 expenses")
	assert.Less(t, strings.Index(out, "chai"), strings.Index(out, "Lunch"), "newest first")

	out = env.mustRun("expense", "update", "00000001", "--amount", "300", "--note", "Team lunch")
	assert.Contains(t, out, "Updated 00000001: ₹300")

	out = env.mustRun("expense", "list", "--category", "food")
	assert.Contains(t, out, "Team lunch")
	assert.Contains(t, out, "1 of 2 expenses")

	out = env.mustRun("expense", "delete", "1")
	assert.Contains(t, out, "Deleted")

	out = env.mustRun("expense", "list")
	assert.NotContains(t, out, "Team lunch")
	assert.Contains(t, out, "1 of 1 expenses")
}

func TestExpenseAddGuessesCategoryFromNote(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("expense", "add", "--amount", "320", "--note", "Uber to airport")
	assert.Contains(t, out, "Transport")
}

func TestExpenseErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{"amount not a number", []string{"expense", "add", "--amount", "lots"}, `"lots" is not an amount`},
		{"zero amount", []string{"expense", "add", "--amount", "0"}, "amount must be greater than zero"},
		{"bad date", []string{"expense", "add", "--amount", "10", "--date", "15/03/2024"}, "dates look like 2024-03-05"},
		{"unknown id", []string{"expense", "delete", "ffff"}, `no entry with id "ffff"`},
		{"empty update", []string{"expense", "update", "00000001"}, "pass at least one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.mustRun("expense", "add", "--amount", "100", "--note", "seed")

			_, err := env.run("", tt.args...)
			require.Error(t, err)
			assert.Contains(t, common.UserMessage(err), tt.message)
		})
	}
}

func TestBudget(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("budget", "show")
	assert.Contains(t, out, "₹10,000")

	out = env.mustRun("budget", "set", "20,000")
	assert.Contains(t, out, "Monthly budget set to ₹20,000")

	env.mustRun("expense", "add", "--amount", "5000", "--category", "shopping")
	out = env.mustRun("budget", "show")
	assert.Contains(t, out, "₹20,000")
	assert.Contains(t, out, "₹15,000")

	_, err := env.run("", "budget", "set", "0")
	require.Error(t, err)
	assert.Equal(t, "budget must be greater than zero", common.UserMessage(err))
}

func TestGoals(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("goal", "list")
	assert.Contains(t, out, "No savings goals yet")

	out = env.mustRun("goal", "add", "New laptop", "--target", "60000", "--icon", "laptop", "--deadline", "2024-04-14")
	assert.Contains(t, out, "💻")
	assert.Contains(t, out, "₹60,000")

	out = env.mustRun("goal", "contribute", "00000001", "15000")
	assert.Contains(t, out, "Added ₹15,000")
	assert.Contains(t, out, "25%")

	out = env.mustRun("goal", "list")
	assert.Contains(t, out, "New laptop")
	assert.Contains(t, out, "₹15,000 / ₹60,000")
	assert.Contains(t, out, "₹45,000")
	assert.Contains(t, out, "30 days")

	out = env.mustRun("goal", "contribute", "1", "50000")
	assert.Contains(t, out, "Goal reached!")

	_, err := env.run("", "goal", "contribute", "1", "0")
	require.Error(t, err)
	assert.Equal(t, "amount must be greater than zero", common.UserMessage(err))

	_, err = env.run("", "goal", "add", "Trip")
	require.Error(t, err, "target is required")

	out = env.mustRun("goal", "delete", "1")
	assert.Contains(t, out, "Deleted goal 💻 New laptop")
	assert.Contains(t, env.mustRun("goal", "list"), "No savings goals yet")
}

func TestInsightsAndTrend(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("trend")
	assert.Contains(t, out, "Add some expenses to see your spending trends")

	env.mustRun("expense", "add", "--amount", "400", "--category", "food", "--date", "2024-03-14")
	env.mustRun("expense", "add", "--amount", "60", "--category", "transport")

	out = env.mustRun("trend", "--days", "3")
	assert.Contains(t, out, "Last 3 Days")
	assert.Contains(t, out, "14 Mar")
	assert.Contains(t, out, "₹400")

	out = env.mustRun("insights")
	assert.Contains(t, out, "Monthly Budget")
	assert.Contains(t, out, "Food & Dining")
	assert.Contains(t, out, "Last 7 Days")
}

func TestAsk(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("expense", "add", "--amount", "2500", "--category", "food")

	out := env.mustRun("ask", "where", "did", "my", "money", "go?")
	assert.Contains(t, out, "🤖")
	assert.Contains(t, out, "Food & Dining at ₹2,500")
}

func TestSettings(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("settings")
	assert.Contains(t, out, "Dark mode")
	assert.Contains(t, out, env.db)

	assert.Contains(t, env.mustRun("settings", "dark-mode", "on"), "Dark mode on")
	assert.Contains(t, env.mustRun("settings", "dark-mode", "on"), "Dark mode on")
	assert.Contains(t, env.mustRun("settings", "dark-mode"), "Dark mode off")

	_, err := env.run("", "settings", "dark-mode", "maybe")
	require.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestSettingsResetNeedsTwoConfirmations(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("expense", "add", "--amount", "100")
	env.mustRun("budget", "set", "5000")

	out, err := env.run("y\nn\n", "settings", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "This will delete 1 expenses and 0 savings goals.")
	assert.Contains(t, out, "Reset canceled.")
	assert.Contains(t, env.mustRun("expense", "list"), "1 of 1 expenses")

	out, err = env.run("y\nyes\n", "settings", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "All data cleared")
	assert.Contains(t, env.mustRun("expense", "list"), "No expenses yet")
	assert.Contains(t, env.mustRun("budget", "show"), "₹10,000")
}

func TestSettingsResetForce(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("goal", "add", "Trip", "--target", "20000")

	assert.Contains(t, env.mustRun("settings", "reset", "--force"), "All data cleared")
	assert.Contains(t, env.mustRun("goal", "list"), "No savings goals yet")
}

func TestBackup(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("expense", "add", "--amount", "100")

	dest := filepath.Join(env.dir, "backups", "spend-copy.db")
	assert.Contains(t, env.mustRun("backup", dest), "Backed up to")

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = env.run("", "backup", dest)
	require.Error(t, err)
	assert.Contains(t, common.UserMessage(err), "already exists")
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"250", "250"},
		{"₹1,250.50", "1250.5"},
		{"Rs. 99.999", "100"},
		{"Rs 40", "40"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	_, err := parseAmount("abc")
	assert.Error(t, err)
}

func TestResolveID(t *testing.T) {
	ids := []string{"0190b2c4-aaaa-7000-8000-00000000001a", "0190b2c4-aaaa-7000-8000-00000000002b"}

	got, err := resolveID("1A", ids)
	require.NoError(t, err)
	assert.Equal(t, ids[0], got)

	got, err = resolveID(ids[1], ids)
	require.NoError(t, err)
	assert.Equal(t, ids[1], got)

	_, err = resolveID("b2c4", ids)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = resolveID("0", []string{"0190b2c4-aaaa-7000-8000-000000000010", "0190b2c4-aaaa-7000-8000-000000000020"})
	assert.ErrorIs(t, err, errAmbiguousID)

	_, err = resolveID("", ids)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
