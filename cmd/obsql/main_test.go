package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlc-dev/obsql/internal/logger"
)

// run executes the root command with args and stdin, returning stdout and
// stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestParseSQLOutput(t *testing.T) {
	out, _, err := run(t, "select a from t where b=1;\n", "parse", "-d", "mysql", "-o", "sql")
	require.NoError(t, err)
	require.Equal(t, "SELECT a FROM t WHERE b = 1\n", out)
}

func TestParseTreeOutput(t *testing.T) {
	out, _, err := run(t, "SELECT 1", "parse", "-o", "tree")
	require.NoError(t, err)
	require.Equal(t, "SelectStatement (children 1)\n SimpleQuery (children 1)\n  SelectList (children 1)\n   Literal Integer 1\n", out)
}

func TestParseJSONOutput(t *testing.T) {
	out, _, err := run(t, "UPDATE t SET a = ? WHERE b = 1", "parse")
	require.NoError(t, err)

	var doc struct {
		Dialect   string         `json:"dialect"`
		Kind      string         `json:"kind"`
		Statement map[string]any `json:"statement"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Equal(t, "oceanbase", doc.Dialect)
	require.Equal(t, "UpdateStatement", doc.Kind)
	require.Contains(t, doc.Statement, "set_list")
}

func TestParseYAMLOutput(t *testing.T) {
	out, _, err := run(t, "SELECT a FROM t", "parse", "-o", "yaml")
	require.NoError(t, err)
	require.Contains(t, out, "kind: SelectStatement\n")
	require.Contains(t, out, "dialect: oceanbase\n")
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.sql")
	bad := filepath.Join(dir, "bad.sql")
	require.NoError(t, os.WriteFile(good, []byte("SELECT 1 /* note */"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("SELECT a FROM"), 0o644))

	out, stderr, err := run(t, "", "parse", "-o", "sql", good, bad)
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 of 2 inputs failed to parse")
	require.Equal(t, "SELECT 1\n", out)
	require.Contains(t, stderr, "bad.sql: line 1")
	require.Contains(t, stderr, "syntax error")
}

func TestParseFailureLogged(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "obsql.log")
	t.Setenv("OBSQL_LOG_FILE", logFile)

	_, _, err := run(t, "SELECT a\n\t  FROM", "parse", "--normalize=false")
	require.Error(t, err)
	_ = logger.L().Sync()

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(content), "parse failed")
	require.Contains(t, string(content), "SELECT a FROM")
}

func TestParseMissingFile(t *testing.T) {
	_, _, err := run(t, "", "parse", filepath.Join(t.TempDir(), "missing.sql"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read")
}

func TestParseDialectDifference(t *testing.T) {
	const sql = "SELECT a FROM t FORCE INDEX (i)"
	_, _, err := run(t, sql, "parse", "-d", "oceanbase")
	require.NoError(t, err)
	_, _, err = run(t, sql, "parse", "-d", "mysql")
	require.Error(t, err)
}

func TestUnknownDialect(t *testing.T) {
	_, _, err := run(t, "SELECT 1", "parse", "-d", "postgres")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown dialect")
}

func TestTokenize(t *testing.T) {
	out, _, err := run(t, "SELECT /*+ parallel(2) */ a", "tokenize", "-o", "tree")
	require.NoError(t, err)
	require.Contains(t, out, "1:1\tSELECT\tSELECT\n")
	require.Contains(t, out, "\tHINT\t")

	out, _, err = run(t, "SELECT a", "tokenize")
	require.NoError(t, err)
	var tokens []tokenInfo
	require.NoError(t, json.Unmarshal([]byte(out), &tokens))
	require.GreaterOrEqual(t, len(tokens), 2)
	require.Equal(t, tokenInfo{Token: "SELECT", Value: "SELECT", Line: 1, Column: 1}, tokens[0])
}

func TestKeywords(t *testing.T) {
	out, _, err := run(t, "", "keywords", "-d", "oceanbase")
	require.NoError(t, err)
	words := strings.Split(strings.TrimSpace(out), "\n")
	require.Contains(t, words, "NOWAIT")
	require.Contains(t, words, "SELECT")

	out, _, err = run(t, "", "keywords", "-d", "mysql")
	require.NoError(t, err)
	require.NotContains(t, strings.Split(strings.TrimSpace(out), "\n"), "NOWAIT")

	out, _, err = run(t, "", "keywords", "-d", "mysql", "--identifiers")
	require.NoError(t, err)
	words = strings.Split(strings.TrimSpace(out), "\n")
	require.Contains(t, words, "GROUP")
	require.NotContains(t, words, "SELECT")
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	require.Equal(t, "obsql "+version+" (built "+buildDate+")\n", out)
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "obsql.yaml")
	out, _, err := run(t, "", "init-config", path)
	require.NoError(t, err)
	require.Equal(t, "Created config file: "+path+"\n", out)

	out, _, err = run(t, "select 1", "parse", "-c", path, "-o", "sql")
	require.NoError(t, err)
	require.Equal(t, "SELECT 1\n", out)
}
