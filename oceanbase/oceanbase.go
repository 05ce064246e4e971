// Package oceanbase is the OceanBase dialect. It is the MySQL dialect plus
// optimizer hint comments, FORCE INDEX and the NOWAIT and WAIT options of
// FOR UPDATE.
package oceanbase

import (
	"github.com/pingcap/errors"

	"github.com/sqlc-dev/obsql/ast"
	"github.com/sqlc-dev/obsql/lexer"
	"github.com/sqlc-dev/obsql/mysql"
	"github.com/sqlc-dev/obsql/parser"
	"github.com/sqlc-dev/obsql/token"
)

var extensionWords = []string{"FORCE", "NOWAIT", "WAIT"}

// Keywords is the OceanBase reserved word table: the MySQL table plus
// FORCE, NOWAIT and WAIT, all of which stay usable as names.
var Keywords = mysql.Keywords.Extend("oceanbase", extensionWords, extensionWords)

// Grammar is the MySQL grammar with the OceanBase rules appended.
var Grammar = mysql.Grammar.MustExtend(parser.Grammar{
	Hints: true,
	TableSuffixes: []parser.TableSuffix{
		{Name: "force-index", Parse: parseForceIndex},
	},
	LockOptions: []parser.LockOption{
		{Name: "nowait", Parse: parseNowait},
		{Name: "wait", Parse: parseWait},
	},
})

// Dialect is the OceanBase dialect. It is safe for concurrent use.
var Dialect = &parser.Dialect{
	Name:    "oceanbase",
	Lexer:   lexer.Config{Keywords: Keywords, HintComments: true},
	Grammar: Grammar,
}

// Parse parses a single OceanBase statement.
func Parse(sql string) (ast.Statement, error) {
	return parser.Parse(Dialect, sql)
}

// ParseTokens parses a single statement from tokens returned by Tokenize.
func ParseTokens(items []lexer.Item) (ast.Statement, error) {
	return parser.ParseTokens(Dialect, items)
}

// ParseExpr parses a standalone OceanBase expression.
func ParseExpr(sql string) (ast.Expression, error) {
	return parser.ParseExpr(Dialect, sql)
}

// Tokenize splits sql into OceanBase tokens, hint comments included. The
// result ends with token.EOF.
func Tokenize(sql string) ([]lexer.Item, error) {
	items, err := lexer.Tokenize(sql, Dialect.Lexer)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return items, nil
}

// parseForceIndex parses FORCE {INDEX|KEY} (name [, name ...]).
func parseForceIndex(p *parser.Parser, t *ast.TableName) (bool, error) {
	if !p.Is(token.FORCE) {
		return false, nil
	}
	p.Next()
	if !p.Accept(token.INDEX) && !p.Accept(token.KEY) {
		return false, p.Unexpected("INDEX", "KEY")
	}
	if _, err := p.Expect(token.LPAREN); err != nil {
		return false, err
	}
	for {
		name, err := p.ParseName()
		if err != nil {
			return false, err
		}
		t.ForceIndex = append(t.ForceIndex, name)
		if !p.Accept(token.COMMA) {
			break
		}
	}
	if _, err := p.Expect(token.RPAREN); err != nil {
		return false, err
	}
	return true, nil
}

func parseNowait(p *parser.Parser, l *ast.LockClause) (bool, error) {
	if !p.Accept(token.NOWAIT) {
		return false, nil
	}
	l.NowaitOrWait = true
	return true, nil
}

// parseWait parses WAIT seconds.
func parseWait(p *parser.Parser, l *ast.LockClause) (bool, error) {
	if !p.Accept(token.WAIT) {
		return false, nil
	}
	n, err := p.ParseInteger()
	if err != nil {
		return false, err
	}
	l.NowaitOrWait = true
	l.WaitSeconds = &n
	return true, nil
}
