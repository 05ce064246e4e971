// regenerate-explain rewrites the explain.txt golden files under
// parser/testdata from the current parser.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sqlc-dev/obsql/mysql"
	"github.com/sqlc-dev/obsql/oceanbase"
	"github.com/sqlc-dev/obsql/parser"
)

type testMetadata struct {
	Dialect    string `json:"dialect,omitempty"`
	ParseError bool   `json:"parse_error,omitempty"`
	Skip       bool   `json:"skip,omitempty"`
}

func main() {
	testName := flag.String("test", "", "Single test directory name to process (if empty, process all)")
	create := flag.Bool("create", false, "Also write explain.txt for cases that do not have one")
	dryRun := flag.Bool("dry-run", false, "Print the trees without writing them")
	flag.Parse()

	testdataDir := "parser/testdata"

	if *testName != "" {
		if _, err := processTest(filepath.Join(testdataDir, *testName), true, *dryRun); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", *testName, err)
			os.Exit(1)
		}
		return
	}

	entries, err := os.ReadDir(testdataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading testdata: %v\n", err)
		os.Exit(1)
	}

	var errs []string
	var written, skipped int
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ok, err := processTest(filepath.Join(testdataDir, entry.Name()), *create, *dryRun)
		switch {
		case err != nil:
			errs = append(errs, fmt.Sprintf("%s: %v", entry.Name(), err))
		case ok:
			written++
		default:
			skipped++
		}
	}

	fmt.Printf("\nWritten: %d, Skipped: %d, Errors: %d\n", written, skipped, len(errs))
	if len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "\nErrors:\n")
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		os.Exit(1)
	}
}

// processTest writes explain.txt for one case. It reports false for cases
// that are skipped, expected to fail, or have no explain.txt when create is
// not set.
func processTest(testDir string, create, dryRun bool) (bool, error) {
	var metadata testMetadata
	if data, err := os.ReadFile(filepath.Join(testDir, "metadata.json")); err == nil {
		if err := json.Unmarshal(data, &metadata); err != nil {
			return false, fmt.Errorf("reading metadata.json: %w", err)
		}
	}
	if metadata.Skip || metadata.ParseError {
		return false, nil
	}

	explainPath := filepath.Join(testDir, "explain.txt")
	if _, err := os.Stat(explainPath); os.IsNotExist(err) && !create {
		return false, nil
	}

	query, err := os.ReadFile(filepath.Join(testDir, "query.sql"))
	if err != nil {
		return false, fmt.Errorf("reading query.sql: %w", err)
	}

	d := oceanbase.Dialect
	if metadata.Dialect == "mysql" {
		d = mysql.Dialect
	}
	stmt, err := parser.Parse(d, strings.TrimSpace(string(query)))
	if err != nil {
		return false, err
	}
	tree := parser.Explain(stmt)

	if dryRun {
		fmt.Printf("== %s (%s)\n%s", filepath.Base(testDir), d.Name, tree)
		return true, nil
	}
	if err := os.WriteFile(explainPath, []byte(tree), 0644); err != nil {
		return false, fmt.Errorf("writing %s: %w", explainPath, err)
	}
	fmt.Printf("%s -> %s\n", filepath.Base(testDir), filepath.Base(explainPath))
	return true, nil
}
