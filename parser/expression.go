package parser

import (
	"strings"

	"github.com/sqlc-dev/obsql/ast"
	"github.com/sqlc-dev/obsql/lexer"
	"github.com/sqlc-dev/obsql/token"
)

// Operator precedence levels
const (
	LOWEST   = iota
	OR_PREC  // OR, ||
	XOR_PREC // XOR
	AND_PREC // AND, &&
	NOT_PREC // NOT
	COMPARE  // =, <>, <, >, <=, >=, <=>, LIKE, REGEXP, IN, BETWEEN, IS
	ADD_PREC // +, -, &, |, ^, <<, >>
	MUL_PREC // *, /, %, DIV, MOD
	UNARY    // -x, ~x, !x, BINARY x
	HIGHEST
)

var intervalUnits = map[string]bool{
	"MICROSECOND":        true,
	"SECOND":             true,
	"MINUTE":             true,
	"HOUR":               true,
	"DAY":                true,
	"WEEK":               true,
	"MONTH":              true,
	"QUARTER":            true,
	"YEAR":               true,
	"SECOND_MICROSECOND": true,
	"MINUTE_MICROSECOND": true,
	"MINUTE_SECOND":      true,
	"HOUR_MICROSECOND":   true,
	"HOUR_SECOND":        true,
	"HOUR_MINUTE":        true,
	"DAY_MICROSECOND":    true,
	"DAY_SECOND":         true,
	"DAY_MINUTE":         true,
	"DAY_HOUR":           true,
	"YEAR_MONTH":         true,
}

func (p *Parser) precedence(tok token.Token) int {
	switch tok {
	case token.OR, token.LOGICAL_OR:
		return OR_PREC
	case token.XOR:
		return XOR_PREC
	case token.AND, token.LOGICAL_AND:
		return AND_PREC
	case token.EQ, token.NEQ, token.LT, token.GT, token.LTE, token.GTE, token.NULL_SAFE_EQ,
		token.LIKE, token.REGEXP, token.RLIKE, token.IN, token.BETWEEN, token.IS:
		return COMPARE
	case token.PLUS, token.MINUS, token.AMPERSAND, token.PIPE, token.CARET, token.SHL, token.SHR:
		return ADD_PREC
	case token.ASTERISK, token.SLASH, token.PERCENT, token.DIV, token.MOD:
		return MUL_PREC
	default:
		return LOWEST
	}
}

// precedenceForCurrent returns the precedence for the current token. NOT
// only continues an expression as NOT LIKE, NOT IN, NOT BETWEEN or
// NOT REGEXP.
func (p *Parser) precedenceForCurrent() int {
	if p.currentIs(token.NOT) {
		switch p.Peek(1).Token {
		case token.LIKE, token.IN, token.BETWEEN, token.REGEXP, token.RLIKE:
			return COMPARE
		}
		return LOWEST
	}
	return p.precedence(p.Current().Token)
}

func (p *Parser) parseExpression(precedence int) (ast.Expression, error) {
	left, err := p.parsePrefixExpression()
	if err != nil {
		return nil, err
	}

	for !p.currentIs(token.EOF) && precedence < p.precedenceForCurrent() {
		left, err = p.parseInfixExpression(left)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

func (p *Parser) parseExpressionList() ([]ast.Expression, error) {
	var exprs []ast.Expression
	for {
		expr, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		if !p.Accept(token.COMMA) {
			return exprs, nil
		}
	}
}

func (p *Parser) parsePrefixExpression() (ast.Expression, error) {
	it := p.Current()
	switch it.Token {
	case token.IDENT, token.QUOTED_IDENT:
		return p.parseIdentifierOrFunction()
	case token.INTEGER, token.DECIMAL, token.FLOAT, token.HEX, token.BIT, token.STRING:
		return p.parseLiteral(), nil
	case token.TRUE, token.FALSE:
		p.Next()
		return &ast.Literal{Position: it.Pos, Kind: ast.LiteralBoolean, Value: it.Token.String()}, nil
	case token.NULL:
		p.Next()
		return &ast.Literal{Position: it.Pos, Kind: ast.LiteralNull, Value: "NULL"}, nil
	case token.PARAM:
		p.Next()
		return &ast.Placeholder{Position: it.Pos, Index: p.nextParam()}, nil
	case token.VARIABLE:
		p.Next()
		return &ast.Variable{Position: it.Pos, Name: it.Value}, nil
	case token.MINUS, token.PLUS, token.TILDE, token.BANG, token.BINARY:
		return p.parseUnary()
	case token.NOT:
		return p.parseNot()
	case token.LPAREN:
		return p.parseGroupedOrRow()
	case token.CASE:
		return p.parseCase()
	case token.EXISTS:
		return p.parseExists()
	case token.INTERVAL:
		return p.parseInterval()
	case token.DEFAULT:
		if p.peekIs(token.LPAREN) {
			p.Next()
			return p.parseFunctionCall(it)
		}
		p.Next()
		return &ast.DefaultExpr{Position: it.Pos}, nil
	case token.CURRENT_DATE, token.CURRENT_TIME, token.CURRENT_TIMESTAMP:
		return p.parseCurrentTime()
	case token.CAST:
		if p.peekIs(token.LPAREN) {
			return p.parseCast()
		}
	case token.IF, token.LEFT, token.RIGHT, token.REPLACE, token.INSERT, token.MOD, token.VALUES:
		if p.peekIs(token.LPAREN) {
			p.Next()
			return p.parseFunctionCall(it)
		}
	}
	if it.Token.IsKeyword() && p.IsName(it) {
		return p.parseIdentifierOrFunction()
	}
	return nil, p.Unexpected("expression")
}

func (p *Parser) parseInfixExpression(left ast.Expression) (ast.Expression, error) {
	it := p.Current()
	switch it.Token {
	case token.OR, token.LOGICAL_OR:
		return p.parseLogical(left, "OR", OR_PREC)
	case token.XOR:
		return p.parseLogical(left, "XOR", XOR_PREC)
	case token.AND, token.LOGICAL_AND:
		return p.parseLogical(left, "AND", AND_PREC)
	case token.EQ, token.NEQ, token.LT, token.GT, token.LTE, token.GTE, token.NULL_SAFE_EQ:
		p.Next()
		right, err := p.parseExpression(COMPARE)
		if err != nil {
			return nil, err
		}
		return &ast.ComparisonExpr{Position: it.Pos, Op: it.Raw, Left: left, Right: right}, nil
	case token.NOT:
		p.Next()
		return p.parseNegatable(left, it, true)
	case token.LIKE, token.IN, token.BETWEEN, token.REGEXP, token.RLIKE:
		return p.parseNegatable(left, it, false)
	case token.IS:
		return p.parseIsExpression(left)
	default:
		return p.parseArithmetic(left)
	}
}

func (p *Parser) parseLogical(left ast.Expression, op string, prec int) (ast.Expression, error) {
	pos := p.Current().Pos
	p.Next()
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	return &ast.LogicalExpr{Position: pos, Op: op, Left: left, Right: right}, nil
}

func (p *Parser) parseArithmetic(left ast.Expression) (ast.Expression, error) {
	it := p.Current()
	prec := p.precedence(it.Token)
	p.Next()
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	op := it.Raw
	if it.Token.IsKeyword() {
		op = it.Token.String()
	}
	return &ast.ArithmeticExpr{Position: it.Pos, Op: op, Left: left, Right: right}, nil
}

// parseNegatable parses the operators that may follow NOT. start is the
// first token of the operator, NOT itself when not is set.
func (p *Parser) parseNegatable(left ast.Expression, start lexer.Item, not bool) (ast.Expression, error) {
	switch p.Current().Token {
	case token.LIKE:
		return p.parseLikeExpression(left, start.Pos, not)
	case token.IN:
		return p.parseInExpression(left, start.Pos, not)
	case token.BETWEEN:
		return p.parseBetweenExpression(left, start.Pos, not)
	default:
		return p.parseRegexpExpression(left, start.Pos, not)
	}
}

func (p *Parser) parseLikeExpression(left ast.Expression, pos token.Position, not bool) (ast.Expression, error) {
	p.Next() // LIKE
	pattern, err := p.parseExpression(COMPARE)
	if err != nil {
		return nil, err
	}
	expr := &ast.LikeExpr{Position: pos, Expr: left, Not: not, Pattern: pattern}
	if p.Accept(token.ESCAPE) {
		if expr.Escape, err = p.parseExpression(COMPARE); err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *Parser) parseRegexpExpression(left ast.Expression, pos token.Position, not bool) (ast.Expression, error) {
	op := p.Current().Token.String()
	p.Next() // REGEXP or RLIKE
	pattern, err := p.parseExpression(COMPARE)
	if err != nil {
		return nil, err
	}
	return &ast.RegexpExpr{Position: pos, Op: op, Expr: left, Not: not, Pattern: pattern}, nil
}

func (p *Parser) parseInExpression(left ast.Expression, pos token.Position, not bool) (ast.Expression, error) {
	p.Next() // IN
	if _, err := p.Expect(token.LPAREN); err != nil {
		return nil, err
	}
	expr := &ast.InExpr{Position: pos, Expr: left, Not: not}
	var err error
	if p.currentIs(token.SELECT) {
		expr.Query, err = p.parseQueryExpression()
	} else {
		expr.List, err = p.parseExpressionList()
	}
	if err != nil {
		return nil, err
	}
	if len(expr.List) == 1 {
		if sub, ok := p.subqueryContinues(expr.List[0]); ok {
			if expr.Query, err = p.continueSubquery(sub); err != nil {
				return nil, err
			}
			expr.List = nil
		}
	}
	if _, err := p.Expect(token.RPAREN); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseBetweenExpression binds both bounds at comparison level, so the AND
// that separates them is never taken as a logical operator.
func (p *Parser) parseBetweenExpression(left ast.Expression, pos token.Position, not bool) (ast.Expression, error) {
	p.Next() // BETWEEN
	low, err := p.parseExpression(COMPARE)
	if err != nil {
		return nil, err
	}
	if _, err := p.Expect(token.AND); err != nil {
		return nil, err
	}
	high, err := p.parseExpression(COMPARE)
	if err != nil {
		return nil, err
	}
	return &ast.BetweenExpr{Position: pos, Expr: left, Not: not, Low: low, High: high}, nil
}

func (p *Parser) parseIsExpression(left ast.Expression) (ast.Expression, error) {
	expr := &ast.IsExpr{Position: p.Current().Pos, Expr: left}
	p.Next() // IS
	expr.Not = p.Accept(token.NOT)
	switch tok := p.Current().Token; tok {
	case token.NULL, token.TRUE, token.FALSE, token.UNKNOWN:
		expr.Value = tok.String()
		p.Next()
		return expr, nil
	}
	return nil, p.Unexpected("NULL", "TRUE", "FALSE", "UNKNOWN")
}

func (p *Parser) parseLiteral() ast.Expression {
	it := p.Current()
	p.Next()
	lit := &ast.Literal{Position: it.Pos, Value: it.Value}
	switch it.Token {
	case token.INTEGER:
		lit.Kind = ast.LiteralInteger
	case token.DECIMAL:
		lit.Kind = ast.LiteralDecimal
	case token.FLOAT:
		lit.Kind = ast.LiteralFloat
	case token.HEX:
		lit.Kind = ast.LiteralHex
	case token.BIT:
		lit.Kind = ast.LiteralBit
	case token.STRING:
		lit.Kind = ast.LiteralString
		lit.Quote = string(it.Quote)
	}
	return lit
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	it := p.Current()
	p.Next()
	operand, err := p.parseExpression(UNARY)
	if err != nil {
		return nil, err
	}
	op := it.Raw
	if it.Token == token.BINARY {
		op = "BINARY"
	}
	return &ast.UnaryExpr{Position: it.Pos, Op: op, Expr: operand}, nil
}

func (p *Parser) parseNot() (ast.Expression, error) {
	pos := p.Current().Pos
	p.Next()
	operand, err := p.parseExpression(NOT_PREC)
	if err != nil {
		return nil, err
	}
	return &ast.NotExpr{Position: pos, Expr: operand}, nil
}

// subqueryContinues reports whether expr is a parenthesized subquery that
// the next token extends into a larger query, as in (SELECT 1) UNION ...
func (p *Parser) subqueryContinues(expr ast.Expression) (*ast.SubqueryExpr, bool) {
	sub, ok := expr.(*ast.SubqueryExpr)
	if !ok {
		return nil, false
	}
	return sub, p.currentIs(token.UNION) || p.currentIs(token.ORDER) || p.currentIs(token.LIMIT)
}

func (p *Parser) continueSubquery(sub *ast.SubqueryExpr) (ast.QueryBody, error) {
	setParens(sub.Query)
	return p.continueQuery(sub.Query)
}

// parseGroupedOrRow parses a parenthesized expression, a row constructor or
// a scalar subquery. A parenthesized subquery followed by UNION continues as
// a union, as in ((SELECT 1) UNION (SELECT 2)).
func (p *Parser) parseGroupedOrRow() (ast.Expression, error) {
	pos := p.Current().Pos
	p.Next() // (

	if p.currentIs(token.SELECT) {
		query, err := p.parseQueryExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.Expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ast.SubqueryExpr{Position: pos, Query: query}, nil
	}

	first, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if sub, ok := p.subqueryContinues(first); ok {
		query, err := p.continueSubquery(sub)
		if err != nil {
			return nil, err
		}
		if _, err := p.Expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ast.SubqueryExpr{Position: pos, Query: query}, nil
	}

	if !p.currentIs(token.COMMA) {
		if _, err := p.Expect(token.RPAREN); err != nil {
			return nil, err
		}
		return first, nil
	}

	row := &ast.RowExpr{Position: pos, Items: []ast.Expression{first}}
	for p.Accept(token.COMMA) {
		expr, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		row.Items = append(row.Items, expr)
	}
	if _, err := p.Expect(token.RPAREN); err != nil {
		return nil, err
	}
	return row, nil
}

func (p *Parser) parseCase() (ast.Expression, error) {
	expr := &ast.CaseExpr{Position: p.Current().Pos}
	p.Next() // CASE

	var err error
	if !p.currentIs(token.WHEN) {
		if expr.Operand, err = p.parseExpression(LOWEST); err != nil {
			return nil, err
		}
	}

	for p.currentIs(token.WHEN) {
		when := &ast.WhenClause{Position: p.Current().Pos}
		p.Next()
		if when.Condition, err = p.parseExpression(LOWEST); err != nil {
			return nil, err
		}
		if _, err := p.Expect(token.THEN); err != nil {
			return nil, err
		}
		if when.Result, err = p.parseExpression(LOWEST); err != nil {
			return nil, err
		}
		expr.Whens = append(expr.Whens, when)
	}
	if len(expr.Whens) == 0 {
		return nil, p.Unexpected("WHEN")
	}

	if p.Accept(token.ELSE) {
		if expr.Else, err = p.parseExpression(LOWEST); err != nil {
			return nil, err
		}
	}
	if _, err := p.Expect(token.END); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseExists() (ast.Expression, error) {
	pos := p.Current().Pos
	p.Next() // EXISTS
	if _, err := p.Expect(token.LPAREN); err != nil {
		return nil, err
	}
	query, err := p.parseQueryExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.Expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.ExistsExpr{Position: pos, Query: query}, nil
}

// parseInterval parses INTERVAL value unit. The value stops before any
// comparison, so INTERVAL -1 DAY and INTERVAL ? DAY both work.
func (p *Parser) parseInterval() (ast.Expression, error) {
	pos := p.Current().Pos
	p.Next() // INTERVAL
	value, err := p.parseExpression(COMPARE)
	if err != nil {
		return nil, err
	}
	unit := p.Current()
	if unit.Token != token.IDENT || !intervalUnits[strings.ToUpper(unit.Value)] {
		return nil, p.Unexpected("interval unit")
	}
	p.Next()
	return &ast.IntervalExpr{Position: pos, Value: value, Unit: strings.ToUpper(unit.Value)}, nil
}

// parseCurrentTime parses CURRENT_DATE, CURRENT_TIME and CURRENT_TIMESTAMP
// with or without an argument list.
func (p *Parser) parseCurrentTime() (ast.Expression, error) {
	it := p.Current()
	if p.peekIs(token.LPAREN) {
		p.Next()
		return p.parseFunctionCall(it)
	}
	p.Next()
	return &ast.FunctionCall{Position: it.Pos, Name: it.Value, NoParens: true}, nil
}

// parseCast parses CAST(expr AS type). The type is kept as text, such as
// DECIMAL(10,2) or UNSIGNED INTEGER.
func (p *Parser) parseCast() (ast.Expression, error) {
	pos := p.Current().Pos
	p.Next() // CAST
	p.Next() // (
	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.Expect(token.AS); err != nil {
		return nil, err
	}

	var sb strings.Builder
	depth := 0
	word := false
	for {
		it := p.Current()
		switch it.Token {
		case token.EOF:
			return nil, p.Unexpected(")")
		case token.LPAREN:
			depth++
		case token.RPAREN:
			if depth == 0 {
				if sb.Len() == 0 {
					return nil, p.Unexpected("type")
				}
				p.Next()
				return &ast.CastExpr{Position: pos, Expr: expr, Type: sb.String()}, nil
			}
			depth--
		}
		isWord := it.Token == token.IDENT || it.Token.IsKeyword()
		if isWord && word {
			sb.WriteByte(' ')
		}
		if isWord {
			sb.WriteString(strings.ToUpper(it.Value))
		} else {
			sb.WriteString(it.Raw)
		}
		word = isWord
		p.Next()
	}
}

// parseIdentifierOrFunction parses a column reference, a qualified
// wildcard such as t.*, or a function call. Any keyword is a plain name after
// a dot.
func (p *Parser) parseIdentifierOrFunction() (ast.Expression, error) {
	it := p.Current()
	p.Next()

	if it.Token == token.IDENT && p.currentIs(token.LPAREN) {
		return p.parseFunctionCall(it)
	}

	parts := []string{it.Value}
	for p.currentIs(token.DOT) {
		p.Next()
		if p.currentIs(token.ASTERISK) {
			p.Next()
			return &ast.Asterisk{Position: it.Pos, Table: parts}, nil
		}
		name, err := p.parseQualifiedPart()
		if err != nil {
			return nil, err
		}
		parts = append(parts, name)
	}
	return &ast.Identifier{Position: it.Pos, Parts: parts}, nil
}

// parseFunctionCall parses the argument list of a call to name. The current
// token is the opening parenthesis.
func (p *Parser) parseFunctionCall(name lexer.Item) (ast.Expression, error) {
	fn := &ast.FunctionCall{Position: name.Pos, Name: name.Value}
	p.Next() // (

	if p.Accept(token.DISTINCT) {
		fn.Distinct = true
	} else {
		p.Accept(token.ALL)
	}

	switch {
	case p.currentIs(token.ASTERISK) && p.peekIs(token.RPAREN):
		fn.Args = []ast.Expression{&ast.Asterisk{Position: p.Current().Pos}}
		p.Next()
	case !p.currentIs(token.RPAREN):
		args, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		fn.Args = args
	}
	if _, err := p.Expect(token.RPAREN); err != nil {
		return nil, err
	}
	return fn, nil
}
