package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pingcap/errors"
	"gopkg.in/yaml.v3"

	"github.com/sqlc-dev/obsql/ast"
	"github.com/sqlc-dev/obsql/lexer"
	"github.com/sqlc-dev/obsql/parser"
)

// document is the JSON and YAML envelope of a parsed statement.
type document struct {
	Dialect   string        `json:"dialect"`
	Kind      string        `json:"kind"`
	Statement ast.Statement `json:"statement"`
}

func statementKind(stmt ast.Statement) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", stmt), "*ast.")
}

func writeStatement(w io.Writer, output, dialect string, stmt ast.Statement) error {
	switch output {
	case "sql":
		_, err := fmt.Fprintln(w, parser.Format(stmt))
		return errors.Trace(err)
	case "tree":
		_, err := io.WriteString(w, parser.Explain(stmt))
		return errors.Trace(err)
	}
	return encode(w, output, document{Dialect: dialect, Kind: statementKind(stmt), Statement: stmt})
}

// tokenInfo is the JSON and YAML form of a lexer item.
type tokenInfo struct {
	Token  string `json:"token"`
	Value  string `json:"value,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func writeTokens(w io.Writer, output string, items []lexer.Item) error {
	switch output {
	case "json", "yaml":
		list := make([]tokenInfo, 0, len(items))
		for _, it := range items {
			list = append(list, tokenInfo{Token: it.Token.String(), Value: it.Value, Line: it.Pos.Line, Column: it.Pos.Column})
		}
		return encode(w, output, list)
	}
	for _, it := range items {
		if _, err := fmt.Fprintf(w, "%d:%d\t%s\t%s\n", it.Pos.Line, it.Pos.Column, it.Token, it.Raw); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// encode writes v as indented JSON, or as YAML built from its JSON form so
// both formats share the json tags of the AST.
func encode(w io.Writer, output string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Trace(err)
	}
	if output == "json" {
		_, err = fmt.Fprintln(w, string(data))
		return errors.Trace(err)
	}

	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return errors.Trace(err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tree); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(enc.Close())
}
