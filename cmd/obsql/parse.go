package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sqlc-dev/obsql/internal/logger"
	"github.com/sqlc-dev/obsql/internal/normalize"
	"github.com/sqlc-dev/obsql/lexer"
	"github.com/sqlc-dev/obsql/mysql"
	"github.com/sqlc-dev/obsql/oceanbase"
	"github.com/sqlc-dev/obsql/parser"
)

var dialects = map[string]*parser.Dialect{
	"mysql":     mysql.Dialect,
	"oceanbase": oceanbase.Dialect,
}

func (a *app) dialect() (*parser.Dialect, error) {
	d, ok := dialects[a.cfg.Dialect]
	if !ok {
		return nil, errors.Errorf("unknown dialect %q", a.cfg.Dialect)
	}
	return d, nil
}

// input is one SQL text to process.
type input struct {
	name string
	sql  string
}

// readInputs returns the contents of each named file, or stdin when no file
// is given.
func readInputs(cmd *cobra.Command, args []string) ([]input, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, errors.Annotate(err, "failed to read stdin")
		}
		return []input{{name: "<stdin>", sql: string(data)}}, nil
	}
	inputs := make([]input, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Annotatef(err, "failed to read %s", path)
		}
		inputs = append(inputs, input{name: path, sql: string(data)})
	}
	return inputs, nil
}

func (a *app) prepare(sql string) string {
	if a.cfg.Normalize {
		return normalize.SQL(sql)
	}
	return sql
}

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [files...]",
		Short: "Parse one statement per input and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dialect()
			if err != nil {
				return err
			}
			inputs, err := readInputs(cmd, args)
			if err != nil {
				return err
			}

			failed := 0
			for _, in := range inputs {
				start := time.Now()
				stmt, err := parser.Parse(d, a.prepare(in.sql))
				if err != nil {
					failed++
					logger.L().Error("parse failed",
						zap.String("input", in.name),
						zap.String("dialect", d.Name),
						zap.String("sql", normalize.Whitespace(in.sql)),
						zap.Error(errors.Cause(err)),
					)
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", in.name, errors.Cause(err))
					continue
				}
				logger.L().Debug("parsed statement",
					zap.String("input", in.name),
					zap.String("dialect", d.Name),
					zap.Int("bytes", len(in.sql)),
					zap.String("kind", statementKind(stmt)),
					zap.Duration("duration", time.Since(start)),
				)
				if err := writeStatement(cmd.OutOrStdout(), a.cfg.Output, d.Name, stmt); err != nil {
					return err
				}
			}
			if failed > 0 {
				return errors.Errorf("%d of %d inputs failed to parse", failed, len(inputs))
			}
			return nil
		},
	}
}

func newTokenizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize [files...]",
		Short: "Print the tokens of each input",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dialect()
			if err != nil {
				return err
			}
			inputs, err := readInputs(cmd, args)
			if err != nil {
				return err
			}
			for _, in := range inputs {
				items, err := lexer.Tokenize(a.prepare(in.sql), d.Lexer)
				if err != nil {
					logger.L().Error("tokenize failed",
						zap.String("input", in.name),
						zap.String("sql", normalize.Whitespace(in.sql)),
						zap.Error(err),
					)
					return errors.Annotatef(err, "%s", in.name)
				}
				if err := writeTokens(cmd.OutOrStdout(), a.cfg.Output, items); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newKeywordsCmd(a *app) *cobra.Command {
	var identifiers bool
	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "List the reserved words of the dialect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dialect()
			if err != nil {
				return err
			}
			words := d.Keywords().Words()
			if identifiers {
				words = d.Keywords().Identifiers()
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(words, "\n"))
			return errors.Trace(err)
		},
	}
	cmd.Flags().BoolVar(&identifiers, "identifiers", false, "list only reserved words usable as names")
	return cmd
}
