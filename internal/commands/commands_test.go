package commands_test

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/commands"
	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/gitops"
	"github.com/tally-dev/tally/internal/settlelog"
)

func runTally(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// newGroup initializes an unversioned group with three members.
func newGroup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := runTally(t, "init", dir, "--name", "Ski Trip", "--no-git")
	require.NoError(t, err)

	for _, m := range [][]string{{"1", "Alice"}, {"2", "Bob"}, {"3", "Carol"}} {
		out, err := runTally(t, "member", "add", m[0], m[1], "--repo", dir)
		require.NoError(t, err, out)
	}
	return dir
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	out, err := runTally(t, "init", dir, "--name", "Flat 4B", "--currency", "GBP", "--no-git")
	require.NoError(t, err)
	assert.Contains(t, out, `Initialized group "Flat 4B"`)

	for _, f := range []string{config.FileName, "members.csv", "payments.csv", filepath.Join("logs", ".gitkeep")} {
		_, err := os.Stat(filepath.Join(dir, f))
		require.NoError(t, err, "%s should exist", f)
	}

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "Flat 4B", cfg.Group.Name)
	assert.Equal(t, "GBP", cfg.Group.Currency)
	assert.False(t, cfg.Git.AutoCommit)
}

func TestInit_RequiresName(t *testing.T) {
	_, err := runTally(t, "init", t.TempDir(), "--no-git")
	require.Error(t, err, "init without --name should fail")
}

func TestInit_RefusesExistingGroup(t *testing.T) {
	dir := newGroup(t)
	_, err := runTally(t, "init", dir, "--name", "Again", "--no-git")
	require.Error(t, err)
}

func TestInit_GitRepo(t *testing.T) {
	if !gitops.Available() {
		t.Skip("git not available, skipping")
	}
	dir := t.TempDir()
	_, err := runTally(t, "init", dir, "--name", "Versioned")
	require.NoError(t, err)
	assert.True(t, gitops.IsRepo(dir))

	_, err = runTally(t, "member", "add", "1", "Alice", "--repo", dir)
	require.NoError(t, err)

	log := exec.Command("git", "log", "--format=%s")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "init: Versioned")
	assert.Contains(t, string(out), "member: add Alice")
}

func TestMember_AddAndList(t *testing.T) {
	dir := newGroup(t)

	out, err := runTally(t, "member", "list", "--repo", dir)
	require.NoError(t, err)
	assert.Equal(t, "1\tAlice\n2\tBob\n3\tCarol\n", out)

	_, err = runTally(t, "member", "add", "2", "Bobby", "--repo", dir)
	require.Error(t, err, "duplicate id should fail")
}

func TestPay_RejectsUnknownDebtor(t *testing.T) {
	dir := newGroup(t)
	_, err := runTally(t, "pay", "--payer", "1", "--amount", "10", "--debtors", "2,9", "--repo", dir)
	require.Error(t, err)
}

func TestPay_RejectsSubCentAmount(t *testing.T) {
	dir := newGroup(t)
	_, err := runTally(t, "pay", "--payer", "1", "--amount", "10.001", "--all", "--repo", dir)
	require.Error(t, err)
}

func TestPay_RequiresDebtors(t *testing.T) {
	dir := newGroup(t)
	_, err := runTally(t, "pay", "--payer", "1", "--amount", "10", "--repo", dir)
	require.Error(t, err)
}

func TestBalancesAndSettle(t *testing.T) {
	dir := newGroup(t)

	out, err := runTally(t, "pay", "--payer", "1", "--amount", "60", "--all", "--description", "Lift passes", "--date", "2025-02-01", "--repo", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Recorded P0001: Alice paid 60.00 EUR")

	_, err = runTally(t, "pay", "--payer", "2", "--amount", "30", "--debtors", "1,2,3", "--repo", dir)
	require.NoError(t, err)

	out, err = runTally(t, "balances", "--repo", dir)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Alice")
	assert.Contains(t, lines[0], "30.00")
	assert.Contains(t, lines[1], "0.00")
	assert.Contains(t, lines[2], "-30.00")
	assert.NotContains(t, out, "imbalance")

	out, err = runTally(t, "settle", "--strict", "--repo", dir)
	require.NoError(t, err)
	assert.Equal(t, "Carol owes Alice 30.00 EUR\n", out)

	runs, err := settlelog.Read(dir)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Len(t, runs[0].Suggestions, 1)
	assert.Equal(t, int64(1), runs[0].Suggestions[0].PayerUserID)
	assert.Equal(t, int64(3), runs[0].Suggestions[0].DebtorUserID)
}

func TestSettle_NothingToDo(t *testing.T) {
	dir := newGroup(t)
	out, err := runTally(t, "settle", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "settled up")

	runs, err := settlelog.Read(dir)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSettle_LogsAtInfo(t *testing.T) {
	dir := newGroup(t)
	_, err := runTally(t, "pay", "--payer", "3", "--amount", "9", "--all", "--repo", dir)
	require.NoError(t, err)

	out, err := runTally(t, "settle", "--log-level", "info", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "settlement computed")
	assert.Contains(t, out, "Alice owes Carol 3.00 EUR")
	assert.Contains(t, out, "Bob owes Carol 3.00 EUR")
}

func TestSettle_MissingGroup(t *testing.T) {
	_, err := runTally(t, "settle", "--repo", t.TempDir())
	require.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	dir := newGroup(t)
	_, err := runTally(t, "balances", "--log-level", "loud", "--repo", dir)
	require.Error(t, err)
}

func TestPayments_FilterByMember(t *testing.T) {
	dir := newGroup(t)
	_, err := runTally(t, "pay", "--payer", "1", "--amount", "20", "--debtors", "1,2", "--description", "Taxi", "--repo", dir)
	require.NoError(t, err)
	_, err = runTally(t, "pay", "--payer", "3", "--amount", "12", "--debtors", "3", "--description", "Snacks", "--repo", dir)
	require.NoError(t, err)

	out, err := runTally(t, "payments", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Taxi")
	assert.Contains(t, out, "Snacks")

	out, err = runTally(t, "payments", "--member", "2", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "P0001")
	assert.Contains(t, out, "for Alice, Bob")
	assert.NotContains(t, out, "Snacks")
}

func TestPay_RejectsDuplicateDebtor(t *testing.T) {
	dir := newGroup(t)
	_, err := runTally(t, "pay", "--payer", "1", "--amount", "30", "--debtors", "2,2", "--repo", dir)
	require.Error(t, err)

	out, err := runTally(t, "payments", "--repo", dir)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPay_DebtorsAndAllExclusive(t *testing.T) {
	dir := newGroup(t)
	_, err := runTally(t, "pay", "--payer", "1", "--amount", "30", "--debtors", "2", "--all", "--repo", dir)
	require.Error(t, err)
}
