// Package mysql is the MySQL dialect: the shared grammar core with MySQL's
// reserved words and the LOCK IN SHARE MODE locking clause.
package mysql

import (
	"github.com/pingcap/errors"

	"github.com/sqlc-dev/obsql/ast"
	"github.com/sqlc-dev/obsql/lexer"
	"github.com/sqlc-dev/obsql/parser"
	"github.com/sqlc-dev/obsql/token"
)

// reservedWords lists the keywords MySQL reserves. Any other word lexes as a
// plain identifier.
var reservedWords = []string{
	"ALL", "AND", "AS", "ASC", "BETWEEN", "BINARY", "BY", "CASE", "CAST",
	"CROSS", "CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP", "DEFAULT",
	"DELAYED", "DESC", "DISTINCT", "DISTINCTROW", "DIV", "DUPLICATE", "ELSE",
	"END", "ESCAPE", "EXISTS", "FALSE", "FOR", "FROM", "GROUP", "HAVING",
	"HIGH_PRIORITY", "IF", "IGNORE", "IN", "INDEX", "INNER", "INSERT",
	"INTERVAL", "INTO", "IS", "JOIN", "KEY", "LEFT", "LIKE", "LIMIT", "LOCK",
	"LOW_PRIORITY", "MOD", "MODE", "NATURAL", "NOT", "NULL", "OFFSET", "ON",
	"OR", "ORDER", "OUTER", "REGEXP", "REPLACE", "RIGHT", "RLIKE", "ROLLUP",
	"SELECT", "SET", "SHARE", "SQL_CALC_FOUND_ROWS", "STRAIGHT_JOIN", "THEN",
	"TRUE", "UNION", "UNKNOWN", "UPDATE", "USE", "USING", "VALUE", "VALUES",
	"WHEN", "WHERE", "WITH", "XOR",
}

// identifierWords are words the grammar can still read as column, table or
// alias names. ID and ENGINE are not reserved here and are listed so the
// table documents every word known to be usable as a name.
var identifierWords = []string{
	"CAST", "DUPLICATE", "END", "ENGINE", "ESCAPE", "FOR", "FROM", "GROUP",
	"ID", "IF", "IN", "INTO", "IS", "MODE", "OFFSET", "ON", "OR", "ROLLUP",
	"SHARE", "UNKNOWN", "USE", "VALUE", "WITH",
}

// Keywords is the MySQL reserved word table.
var Keywords = token.NewTable("mysql", reservedWords, identifierWords)

// Grammar is the MySQL grammar extension.
var Grammar = parser.Grammar{
	LockRules: []parser.LockRule{
		{Name: "lock-in-share-mode", Parse: parseLockInShareMode},
	},
}

// Dialect is the MySQL dialect. It is safe for concurrent use.
var Dialect = &parser.Dialect{
	Name:    "mysql",
	Lexer:   lexer.Config{Keywords: Keywords},
	Grammar: Grammar,
}

// Parse parses a single MySQL statement.
func Parse(sql string) (ast.Statement, error) {
	return parser.Parse(Dialect, sql)
}

// ParseTokens parses a single statement from tokens returned by Tokenize.
func ParseTokens(items []lexer.Item) (ast.Statement, error) {
	return parser.ParseTokens(Dialect, items)
}

// ParseExpr parses a standalone MySQL expression.
func ParseExpr(sql string) (ast.Expression, error) {
	return parser.ParseExpr(Dialect, sql)
}

// Tokenize splits sql into MySQL tokens. The result ends with token.EOF.
func Tokenize(sql string) ([]lexer.Item, error) {
	items, err := lexer.Tokenize(sql, Dialect.Lexer)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return items, nil
}

func parseLockInShareMode(p *parser.Parser) (*ast.LockClause, bool, error) {
	if !p.Is(token.LOCK) || p.Peek(1).Token != token.IN {
		return nil, false, nil
	}
	l := &ast.LockClause{Position: p.Current().Pos, InShareMode: true}
	p.Next() // LOCK
	p.Next() // IN
	if _, err := p.Expect(token.SHARE); err != nil {
		return nil, false, err
	}
	if _, err := p.Expect(token.MODE); err != nil {
		return nil, false, err
	}
	return l, true, nil
}
