// testcase adds a case to parser/testdata from a statement read on stdin.
//
//	echo "SELECT a FROM t FOR UPDATE WAIT 6" | go run ./cmd/testcase -name for_update_wait
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sqlc-dev/obsql/mysql"
	"github.com/sqlc-dev/obsql/oceanbase"
	"github.com/sqlc-dev/obsql/parser"
)

type testMetadata struct {
	Dialect    string `json:"dialect"`
	ParseError bool   `json:"parse_error,omitempty"`
}

func main() {
	name := flag.String("name", "", "Test directory name (required)")
	dialect := flag.String("dialect", "oceanbase", "Dialect to parse with: mysql or oceanbase")
	flag.Parse()

	if *name == "" {
		fmt.Fprintf(os.Stderr, "Usage: go run ./cmd/testcase -name <case> [-dialect mysql] < query.sql\n")
		os.Exit(1)
	}

	d := oceanbase.Dialect
	switch *dialect {
	case "oceanbase":
	case "mysql":
		d = mysql.Dialect
	default:
		fmt.Fprintf(os.Stderr, "Unknown dialect %q\n", *dialect)
		os.Exit(1)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
		os.Exit(1)
	}
	query := strings.TrimSpace(string(data))
	if query == "" {
		fmt.Fprintf(os.Stderr, "No statement on stdin\n")
		os.Exit(1)
	}

	testDir := filepath.Join("parser/testdata", *name)
	if _, err := os.Stat(testDir); err == nil {
		fmt.Fprintf(os.Stderr, "%s already exists\n", testDir)
		os.Exit(1)
	}
	if err := os.MkdirAll(testDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", testDir, err)
		os.Exit(1)
	}

	metadata := testMetadata{Dialect: d.Name}
	stmt, parseErr := parser.Parse(d, query)
	if parseErr != nil {
		metadata.ParseError = true
	}

	files := map[string]string{"query.sql": query + "\n"}
	meta, _ := json.Marshal(metadata)
	files["metadata.json"] = string(meta) + "\n"
	if parseErr == nil {
		files["explain.txt"] = parser.Explain(stmt)
	}

	for file, content := range files {
		if err := os.WriteFile(filepath.Join(testDir, file), []byte(content), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", file, err)
			os.Exit(1)
		}
	}

	if parseErr != nil {
		fmt.Printf("Created %s (parse_error: %v)\n", testDir, parseErr)
		return
	}
	fmt.Printf("Created %s\n", testDir)
}
