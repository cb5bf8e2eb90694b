package commands_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KyussCaesar/pfr/internal/buildinfo"
	"github.com/KyussCaesar/pfr/internal/commands"
	"github.com/KyussCaesar/pfr/internal/config"
	"github.com/KyussCaesar/pfr/internal/history"
)

func runPfr(t *testing.T, dir string, args ...string) (string, int) {
	t.Helper()
	var out bytes.Buffer
	code := commands.Run(append([]string{"--dir", dir}, args...), &out)
	return out.String(), code
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, code := runPfr(t, dir, args...)
	require.Equal(t, 0, code, "pfr %s failed: %s", strings.Join(args, " "), out)
	return out
}

func initDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "ledger")
	mustRun(t, dir, "init")
	return dir
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestInit_CreatesStorage(t *testing.T) {
	dir := initDir(t)

	assert.JSONEq(t, "{}", string(readFile(t, filepath.Join(dir, "current.json"))))
	_, err := os.Stat(filepath.Join(dir, config.FileName))
	assert.NoError(t, err, "config.yaml should exist")
}

func TestInit_ResetsCurrent(t *testing.T) {
	dir := initDir(t)
	mustRun(t, dir, "add", "expense", "monthly", "rent", "1500")

	mustRun(t, dir, "init")

	assert.Empty(t, mustRun(t, dir, "list"))
}

func TestAdd_ThenList(t *testing.T) {
	dir := initDir(t)
	mustRun(t, dir, "add", "expense", "monthly", "rent", "1500", "-c", "housing")
	mustRun(t, dir, "add", "income", "weekly", "pay", "800.50")

	out := mustRun(t, dir, "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"weekly", "income", "pay", "800.50"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"monthly", "expense", "rent", "1500.00"}, strings.Fields(lines[1]))
}

func TestAdd_DuplicateLeavesFileUntouched(t *testing.T) {
	dir := initDir(t)
	mustRun(t, dir, "add", "expense", "monthly", "rent", "1500")
	before := readFile(t, filepath.Join(dir, "current.json"))

	out, code := runPfr(t, dir, "add", "income", "yearly", "rent", "1")

	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(out, "error: "), "got %q", out)
	assert.Contains(t, out, `"rent" is already present`)
	assert.Equal(t, before, readFile(t, filepath.Join(dir, "current.json")))
}

func TestAdd_RejectsBadInput(t *testing.T) {
	dir := initDir(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"kind", []string{"add", "transfer", "monthly", "x", "1"}, "unknown kind"},
		{"frequency", []string{"add", "expense", "fortnightly", "x", "1"}, "unknown frequency"},
		{"amount", []string{"add", "expense", "monthly", "x", "abc"}, "in the input"},
		{"negative", []string{"add", "expense", "monthly", "x", "--", "-5"}, "is negative"},
		{"args", []string{"add", "expense", "monthly"}, "accepts 4 arg(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, code := runPfr(t, dir, tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, out, tt.want)
			assert.Equal(t, 1, strings.Count(out, "\n"), "diagnostic is one line: %q", out)
		})
	}

	assert.Empty(t, mustRun(t, dir, "list"))
}

func TestRm_Idempotent(t *testing.T) {
	dir := initDir(t)
	mustRun(t, dir, "add", "expense", "monthly", "rent", "1500")

	assert.Contains(t, mustRun(t, dir, "rm", "rent"), `Removed "rent"`)
	assert.Contains(t, mustRun(t, dir, "rm", "rent"), "nothing removed")
	assert.Empty(t, mustRun(t, dir, "list"))
}

func TestMissingCurrent(t *testing.T) {
	dir := t.TempDir()

	out, code := runPfr(t, dir, "list")

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "while attempting to open the ledger")
}

func TestMalformedCurrent(t *testing.T) {
	dir := initDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "current.json"), []byte("{not json"), 0o644))

	out, code := runPfr(t, dir, "report")

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "while attempting to load from the data file")
}

func TestReport_Text(t *testing.T) {
	dir := initDir(t)
	mustRun(t, dir, "add", "income", "monthly", "salary", "3000", "-a", "bank")
	mustRun(t, dir, "add", "expense", "yearly", "insurance", "1200", "-c", "cover", "-a", "bank")

	out := mustRun(t, dir, "report")

	assert.Contains(t, out, "(100.00)")
	assert.Contains(t, out, "2900.00")
	assert.Contains(t, out, "BREAKDOWN")
	assert.Contains(t, out, "COVERAGE")
}

func TestReport_JSON(t *testing.T) {
	dir := initDir(t)
	mustRun(t, dir, "add", "income", "monthly", "salary", "3000")
	mustRun(t, dir, "add", "expense", "yearly", "insurance", "1200", "-c", "cover")

	out := mustRun(t, dir, "report", "--format", "json")

	var got struct {
		Rows []struct {
			Name  string `json:"name"`
			Cents int64  `json:"monthly_cents"`
		} `json:"rows"`
		Cents int64 `json:"total_cents"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "insurance", got.Rows[0].Name)
	assert.Equal(t, int64(-10000), got.Rows[0].Cents)
	assert.Equal(t, int64(290000), got.Cents)
}

func TestReport_FormatFromConfig(t *testing.T) {
	dir := initDir(t)
	cfg := config.Default()
	cfg.Report.Format = "json"
	require.NoError(t, config.Save(filepath.Join(dir, config.FileName), cfg))

	out := mustRun(t, dir, "report")
	assert.True(t, json.Valid([]byte(out)), "got %q", out)

	out, code := runPfr(t, dir, "report", "--format", "xml")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "unknown report format")
}

func TestBackupRestore(t *testing.T) {
	dir := initDir(t)
	mustRun(t, dir, "add", "expense", "monthly", "rent", "1500")
	mustRun(t, dir, "backup")
	backedUp := readFile(t, filepath.Join(dir, "current.json"))

	mustRun(t, dir, "rm", "rent")
	mustRun(t, dir, "add", "expense", "daily", "coffee", "4")
	mustRun(t, dir, "restore")

	assert.Equal(t, backedUp, readFile(t, filepath.Join(dir, "current.json")))
}

func TestRestore_WithoutBackup(t *testing.T) {
	dir := initDir(t)
	mustRun(t, dir, "add", "expense", "monthly", "rent", "1500")
	before := readFile(t, filepath.Join(dir, "current.json"))

	_, code := runPfr(t, dir, "restore")

	assert.Equal(t, 1, code)
	assert.Equal(t, before, readFile(t, filepath.Join(dir, "current.json")))
}

func TestSaveLoadSnapshots(t *testing.T) {
	dir := initDir(t)
	mustRun(t, dir, "add", "expense", "monthly", "rent", "1500")
	mustRun(t, dir, "save", "plan-a")
	mustRun(t, dir, "rm", "rent")

	mustRun(t, dir, "load", "plan-a")
	assert.Contains(t, mustRun(t, dir, "list"), "rent")

	assert.Equal(t, "current (reserved)\nplan-a\n", mustRun(t, dir, "saves"))

	mustRun(t, dir, "drop", "plan-a")
	_, code := runPfr(t, dir, "load", "plan-a")
	assert.Equal(t, 1, code)
}

func TestSnapshotNames(t *testing.T) {
	dir := initDir(t)

	for _, args := range [][]string{
		{"save", "current"},
		{"save", "backup"},
		{"load", "backup"},
		{"save", "../escape"},
		{"drop", "current"},
	} {
		out, code := runPfr(t, dir, args...)
		assert.Equal(t, 1, code, "pfr %v", args)
		assert.Contains(t, out, "with the snapshot name", "pfr %v", args)
	}
}

func TestExportImport(t *testing.T) {
	src := initDir(t)
	mustRun(t, src, "add", "expense", "monthly", "rent", "1500", "-c", "housing")
	mustRun(t, src, "add", "income", "workdays", "contract", "420.25", "-a", "business")

	csvPath := filepath.Join(t.TempDir(), "ledger.csv")
	mustRun(t, src, "export", csvPath)
	assert.Equal(t, string(readFile(t, csvPath)), mustRun(t, src, "export"))

	dst := initDir(t)
	assert.Contains(t, mustRun(t, dst, "import", csvPath), "Imported 2 transactions")
	assert.Equal(t, mustRun(t, src, "report"), mustRun(t, dst, "report"))

	// A second import collides on every name and changes nothing.
	before := readFile(t, filepath.Join(dst, "current.json"))
	out, code := runPfr(t, dst, "import", csvPath)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "already present")
	assert.Equal(t, before, readFile(t, filepath.Join(dst, "current.json")))
}

func TestImport_BadFile(t *testing.T) {
	dir := initDir(t)
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,amount\nrent,1\n"), 0o644))

	out, code := runPfr(t, dir, "import", path)

	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(out, "error: "))
}

func TestHistory(t *testing.T) {
	dir := initDir(t)
	mustRun(t, dir, "add", "expense", "monthly", "rent", "1500")
	mustRun(t, dir, "rm", "rent")
	mustRun(t, dir, "rm", "rent")
	mustRun(t, dir, "list")

	entries, err := history.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3, "init, add and the removal that removed something")
	assert.Equal(t, "add", entries[1].Command)
	assert.Equal(t, "rent", entries[1].Name)
	assert.Equal(t, "rm", entries[2].Command)

	out := mustRun(t, dir, "history", "--limit", "1")
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "rm")
}

func TestHistory_Disabled(t *testing.T) {
	dir := initDir(t)
	cfg := config.Default()
	cfg.History.Enabled = false
	require.NoError(t, config.Save(filepath.Join(dir, config.FileName), cfg))
	require.NoError(t, os.Remove(filepath.Join(dir, history.FileName)))

	mustRun(t, dir, "add", "expense", "monthly", "rent", "1500")

	_, err := os.Stat(filepath.Join(dir, history.FileName))
	assert.True(t, os.IsNotExist(err))
}

func TestInit_Git(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := filepath.Join(t.TempDir(), "ledger")
	mustRun(t, dir, "init", "--git")
	mustRun(t, dir, "add", "expense", "monthly", "rent", "1500")

	cfg, err := config.LoadOrDefault(dir)
	require.NoError(t, err)
	assert.True(t, cfg.Git.AutoCommit)

	gitLog := exec.Command("git", "log", "--format=%s")
	gitLog.Dir = dir
	out, err := gitLog.Output()
	require.NoError(t, err)
	subjects := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, subjects, 2)
	assert.Equal(t, "add: current rent expense monthly 1500.00", subjects[0])
	assert.Equal(t, "init: current", subjects[1])
}

func TestStorageFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvHome, dir)

	var out bytes.Buffer
	require.Equal(t, 0, commands.Run([]string{"init"}, &out), out.String())

	_, err := os.Stat(filepath.Join(dir, "current.json"))
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	require.Equal(t, 0, commands.Run([]string{"--version"}, &out))
	assert.Contains(t, out.String(), buildinfo.Version)
}

func TestDescribe(t *testing.T) {
	err := errors.Join(errors.New("first problem"), errors.New("second problem"))
	assert.Equal(t, "error: an error occurred: first problem; second problem", commands.Describe(err))
}
