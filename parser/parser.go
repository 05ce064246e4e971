// Package parser implements a parser for MySQL and OceanBase DML.
//
// The grammar core is shared by every dialect. A Dialect adds productions at
// fixed extension points (see Grammar) and never replaces a core rule.
package parser

import (
	"strconv"

	"github.com/pingcap/errors"

	"github.com/sqlc-dev/obsql/ast"
	"github.com/sqlc-dev/obsql/lexer"
	"github.com/sqlc-dev/obsql/token"
)

// Parser parses one statement from a token stream.
type Parser struct {
	dialect *Dialect
	items   []lexer.Item
	hints   map[int][]lexer.Item // hint comments in front of items[i]
	pos     int
	params  int
}

// New creates a Parser over items. Hint comments are taken out of the stream
// and remembered by the position of the token they precede. A missing EOF
// item is added.
func New(d *Dialect, items []lexer.Item) *Parser {
	p := &Parser{dialect: d, hints: make(map[int][]lexer.Item)}
	for _, it := range items {
		if it.Token == token.HINT {
			p.hints[len(p.items)] = append(p.hints[len(p.items)], it)
			continue
		}
		p.items = append(p.items, it)
		if it.Token == token.EOF {
			break
		}
	}
	if n := len(p.items); n == 0 || p.items[n-1].Token != token.EOF {
		var end token.Position
		if n > 0 {
			end = p.items[n-1].End
		}
		p.items = append(p.items, lexer.Item{Token: token.EOF, Pos: end, End: end})
	}
	return p
}

// Parse tokenizes sql with the dialect's lexer configuration and parses a
// single statement. A trailing semicolon is allowed.
func Parse(d *Dialect, sql string) (ast.Statement, error) {
	items, err := lexer.Tokenize(sql, d.Lexer)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return ParseTokens(d, items)
}

// ParseTokens parses a single statement from tokens produced by a lexer
// configured like d.Lexer.
func ParseTokens(d *Dialect, items []lexer.Item) (ast.Statement, error) {
	p := New(d, items)
	stmt, err := p.ParseStatement()
	if err != nil {
		return nil, errors.Trace(err)
	}
	return stmt, nil
}

// ParseExpr parses a standalone expression.
func ParseExpr(d *Dialect, sql string) (ast.Expression, error) {
	items, err := lexer.Tokenize(sql, d.Lexer)
	if err != nil {
		return nil, errors.Trace(err)
	}
	p := New(d, items)
	expr, err := p.parseExpression(LOWEST)
	if err == nil {
		err = p.finish()
	}
	if err != nil {
		return nil, errors.Trace(err)
	}
	return expr, nil
}

// -----------------------------------------------------------------------------
// Token cursor. Dialect extension rules use these methods to read tokens.

// Dialect returns the dialect being parsed.
func (p *Parser) Dialect() *Dialect {
	return p.dialect
}

// Current returns the current token.
func (p *Parser) Current() lexer.Item {
	return p.items[p.pos]
}

// Peek returns the token n positions after the current one. Looking past the
// end yields the EOF token.
func (p *Parser) Peek(n int) lexer.Item {
	if i := p.pos + n; i < len(p.items) {
		return p.items[i]
	}
	return p.items[len(p.items)-1]
}

// Next advances to the next token. It stays on EOF.
func (p *Parser) Next() {
	if p.pos < len(p.items)-1 {
		p.pos++
	}
}

// Is reports whether the current token is tok.
func (p *Parser) Is(tok token.Token) bool {
	return p.items[p.pos].Token == tok
}

// Accept consumes the current token if it is tok.
func (p *Parser) Accept(tok token.Token) bool {
	if p.Is(tok) {
		p.Next()
		return true
	}
	return false
}

// Expect consumes and returns the current token if it is tok, and returns a
// SyntaxError otherwise.
func (p *Parser) Expect(tok token.Token) (lexer.Item, error) {
	it := p.Current()
	if it.Token != tok {
		return it, p.Unexpected(tok.String())
	}
	p.Next()
	return it, nil
}

// Unexpected returns a SyntaxError at the current token.
func (p *Parser) Unexpected(expected ...string) error {
	it := p.Current()
	return &SyntaxError{Pos: it.Pos, Expected: expected, Found: describe(it)}
}

// IsName reports whether it can be read as a plain name: an identifier, a
// quoted identifier, or a keyword the dialect allows as an identifier.
func (p *Parser) IsName(it lexer.Item) bool {
	switch {
	case it.Token == token.IDENT, it.Token == token.QUOTED_IDENT:
		return true
	case it.Token.IsKeyword():
		return p.dialect.Keywords().AllowsAsIdentifier(it.Value)
	}
	return false
}

// ParseName consumes a name (see IsName) and returns its text.
func (p *Parser) ParseName() (string, error) {
	it := p.Current()
	if !p.IsName(it) {
		return "", p.Unexpected("identifier")
	}
	p.Next()
	return it.Value, nil
}

// ParseInteger consumes an integer literal.
func (p *Parser) ParseInteger() (int64, error) {
	it := p.Current()
	if it.Token != token.INTEGER {
		return 0, p.Unexpected("integer")
	}
	n, err := strconv.ParseInt(it.Value, 10, 64)
	if err != nil {
		return 0, &SyntaxError{Pos: it.Pos, Expected: []string{"64-bit integer"}, Found: it.Raw}
	}
	p.Next()
	return n, nil
}

// ParseUnsigned is ParseInteger for values up to the unsigned 64-bit
// maximum, such as LIMIT 18446744073709551615.
func (p *Parser) ParseUnsigned() (uint64, error) {
	it := p.Current()
	if it.Token != token.INTEGER {
		return 0, p.Unexpected("integer")
	}
	n, err := strconv.ParseUint(it.Value, 10, 64)
	if err != nil {
		return 0, &SyntaxError{Pos: it.Pos, Expected: []string{"unsigned 64-bit integer"}, Found: it.Raw}
	}
	p.Next()
	return n, nil
}

func (p *Parser) currentIs(tok token.Token) bool {
	return p.Is(tok)
}

func (p *Parser) peekIs(tok token.Token) bool {
	return p.Peek(1).Token == tok
}

// takeHints returns the hint comments in front of the current token and
// marks them attached.
func (p *Parser) takeHints() []*ast.Hint {
	if !p.dialect.Grammar.Hints {
		return nil
	}
	items := p.hints[p.pos]
	if len(items) == 0 {
		return nil
	}
	delete(p.hints, p.pos)
	hints := make([]*ast.Hint, len(items))
	for i, it := range items {
		hints[i] = parseHint(it)
	}
	return hints
}

// finish checks that the whole input was consumed and that no hint comment
// was left unattached.
func (p *Parser) finish() error {
	if !p.currentIs(token.EOF) {
		return p.Unexpected("end of input")
	}
	if len(p.hints) == 0 {
		return nil
	}
	first := -1
	for i := range p.hints {
		if first == -1 || i < first {
			first = i
		}
	}
	it := p.hints[first][0]
	return &SyntaxError{Pos: it.Pos, Found: describe(it)}
}

// -----------------------------------------------------------------------------
// Statements

// ParseStatement parses one statement followed by an optional semicolon and
// the end of input.
func (p *Parser) ParseStatement() (ast.Statement, error) {
	var (
		stmt ast.Statement
		err  error
	)
	switch p.Current().Token {
	case token.SELECT, token.LPAREN:
		stmt, err = p.parseSelectStatement()
	case token.INSERT, token.REPLACE:
		stmt, err = p.parseInsert()
	case token.UPDATE:
		stmt, err = p.parseUpdate()
	default:
		return nil, p.Unexpected("SELECT", "INSERT", "REPLACE", "UPDATE")
	}
	if err != nil {
		return nil, err
	}
	p.Accept(token.SEMICOLON)
	if err := p.finish(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseSelectStatement() (*ast.SelectStatement, error) {
	pos := p.Current().Pos
	body, err := p.parseQueryExpression()
	if err != nil {
		return nil, err
	}
	return &ast.SelectStatement{Position: pos, QueryBody: body}, nil
}

// parseQueryExpression parses a query primary, any UNION chain that follows
// it, and the trailing ORDER BY, LIMIT and locking clauses.
func (p *Parser) parseQueryExpression() (ast.QueryBody, error) {
	body, err := p.parseQueryPrimary()
	if err != nil {
		return nil, err
	}
	return p.continueQuery(body)
}

// parseQueryPrimary parses a bare SELECT block or a parenthesized query
// expression. Bare blocks stop before ORDER BY so that the clause can be
// given to the union it ends.
func (p *Parser) parseQueryPrimary() (ast.QueryBody, error) {
	switch p.Current().Token {
	case token.SELECT:
		return p.parseSimpleQuery()
	case token.LPAREN:
		p.Next()
		body, err := p.parseQueryExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.Expect(token.RPAREN); err != nil {
			return nil, err
		}
		setParens(body)
		return body, nil
	}
	return nil, p.Unexpected("SELECT", "(")
}

func setParens(body ast.QueryBody) {
	switch b := body.(type) {
	case *ast.SimpleQuery:
		b.Parens = true
	case *ast.Union:
		b.Parens = true
	}
}

func (p *Parser) continueQuery(body ast.QueryBody) (ast.QueryBody, error) {
	for p.currentIs(token.UNION) {
		u := &ast.Union{Position: p.Current().Pos, Left: body}
		p.Next()
		if p.Accept(token.ALL) {
			u.All = true
		} else {
			p.Accept(token.DISTINCT)
		}
		right, err := p.parseQueryPrimary()
		if err != nil {
			return nil, err
		}
		u.Right = right
		body = u
	}
	return p.parseQueryTail(body)
}

// parseQueryTail attaches trailing ORDER BY, LIMIT and locking clauses. A
// parenthesized body keeps the clauses written inside its parentheses; a
// clause may not be given twice.
func (p *Parser) parseQueryTail(body ast.QueryBody) (ast.QueryBody, error) {
	var (
		orderBy []*ast.OrderByItem
		limit   *ast.Limit
		err     error
	)
	orderPos := p.Current()
	if p.currentIs(token.ORDER) {
		if orderBy, err = p.parseOrderBy(); err != nil {
			return nil, err
		}
	}
	limitPos := p.Current()
	if p.currentIs(token.LIMIT) {
		if limit, err = p.parseLimit(); err != nil {
			return nil, err
		}
	}
	lockPos := p.Current()
	lock, err := p.parseLockClause()
	if err != nil {
		return nil, err
	}

	duplicate := func(it lexer.Item) error {
		return &SyntaxError{Pos: it.Pos, Expected: []string{"end of query"}, Found: describe(it)}
	}

	switch b := body.(type) {
	case *ast.SimpleQuery:
		if orderBy != nil {
			if b.OrderBy != nil {
				return nil, duplicate(orderPos)
			}
			b.OrderBy = orderBy
		}
		if limit != nil {
			if b.Limit != nil {
				return nil, duplicate(limitPos)
			}
			b.Limit = limit
		}
		if lock != nil {
			if b.Lock != nil {
				return nil, duplicate(lockPos)
			}
			b.Lock = lock
		}
	case *ast.Union:
		if lock != nil {
			return nil, duplicate(lockPos)
		}
		if orderBy != nil {
			if b.OrderBy != nil {
				return nil, duplicate(orderPos)
			}
			b.OrderBy = orderBy
		}
		if limit != nil {
			if b.Limit != nil {
				return nil, duplicate(limitPos)
			}
			b.Limit = limit
		}
	}
	return body, nil
}

func (p *Parser) parseSimpleQuery() (*ast.SimpleQuery, error) {
	q := &ast.SimpleQuery{Position: p.Current().Pos}
	q.Hints = p.takeHints()
	p.Next() // SELECT
	q.Hints = append(q.Hints, p.takeHints()...)

options:
	for {
		switch p.Current().Token {
		case token.ALL:
		case token.DISTINCT, token.DISTINCTROW:
			q.Distinct = true
		case token.HIGH_PRIORITY, token.STRAIGHT_JOIN, token.SQL_CALC_FOUND_ROWS:
			q.Options = append(q.Options, p.Current().Token.String())
		default:
			break options
		}
		p.Next()
		q.Hints = append(q.Hints, p.takeHints()...)
	}

	for {
		item, err := p.parseSelectItem()
		if err != nil {
			return nil, err
		}
		q.SelectList = append(q.SelectList, item)
		if !p.Accept(token.COMMA) {
			break
		}
	}

	var err error
	if p.Accept(token.FROM) {
		if q.From, err = p.parseTableReferences(); err != nil {
			return nil, err
		}
	}
	if p.Accept(token.WHERE) {
		if q.Where, err = p.parseExpression(LOWEST); err != nil {
			return nil, err
		}
	}
	if p.currentIs(token.GROUP) && p.peekIs(token.BY) {
		p.Next()
		p.Next()
		if q.GroupBy, err = p.parseExpressionList(); err != nil {
			return nil, err
		}
		if p.currentIs(token.WITH) && p.peekIs(token.ROLLUP) {
			p.Next()
			p.Next()
			q.WithRollup = true
		}
	}
	if p.Accept(token.HAVING) {
		if q.Having, err = p.parseExpression(LOWEST); err != nil {
			return nil, err
		}
	}
	return q, nil
}

func (p *Parser) parseSelectItem() (*ast.SelectItem, error) {
	item := &ast.SelectItem{Position: p.Current().Pos}
	if p.currentIs(token.ASTERISK) {
		item.Expr = &ast.Asterisk{Position: p.Current().Pos}
		p.Next()
		return item, nil
	}
	// FROM names a column only when it cannot be the start of the FROM
	// clause: SELECT from FROM t, never SELECT FROM t.
	if p.currentIs(token.FROM) && !p.peekIs(token.FROM) && !p.peekIs(token.COMMA) && !p.peekIs(token.AS) {
		return nil, p.Unexpected("expression")
	}
	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	item.Expr = expr
	if item.Alias, err = p.parseAlias(true); err != nil {
		return nil, err
	}
	return item, nil
}

// parseAlias parses [AS] alias. Without AS only a non-keyword identifier is
// taken, so a following clause keyword is never swallowed.
func (p *Parser) parseAlias(allowString bool) (string, error) {
	it := p.Current()
	if p.Accept(token.AS) {
		it = p.Current()
		if allowString && it.Token == token.STRING {
			p.Next()
			return it.Value, nil
		}
		return p.ParseName()
	}
	switch {
	case it.Token == token.IDENT, it.Token == token.QUOTED_IDENT,
		allowString && it.Token == token.STRING:
		p.Next()
		return it.Value, nil
	}
	return "", nil
}

func (p *Parser) parseOrderBy() ([]*ast.OrderByItem, error) {
	p.Next() // ORDER
	if _, err := p.Expect(token.BY); err != nil {
		return nil, err
	}
	var items []*ast.OrderByItem
	for {
		item := &ast.OrderByItem{Position: p.Current().Pos}
		expr, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		item.Expr = expr
		if p.Accept(token.ASC) {
			item.Direction = ast.OrderAsc
		} else if p.Accept(token.DESC) {
			item.Direction = ast.OrderDesc
		}
		items = append(items, item)
		if !p.Accept(token.COMMA) {
			return items, nil
		}
	}
}

// parseLimit parses LIMIT count, LIMIT offset, count and
// LIMIT count OFFSET offset.
func (p *Parser) parseLimit() (*ast.Limit, error) {
	l := &ast.Limit{Position: p.Current().Pos}
	p.Next() // LIMIT
	first, err := p.parseLimitValue()
	if err != nil {
		return nil, err
	}
	switch {
	case p.Accept(token.COMMA):
		l.Offset = first
		l.Count, err = p.parseLimitValue()
	case p.Accept(token.OFFSET):
		l.Count = first
		l.OffsetKeyword = true
		l.Offset, err = p.parseLimitValue()
	default:
		l.Count = first
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// parseLimitValue accepts ?, an integer, or a minus sign followed by an
// integer. Negative values are kept; rejecting them is left to consumers.
func (p *Parser) parseLimitValue() (*ast.LimitValue, error) {
	v := &ast.LimitValue{Position: p.Current().Pos}
	if p.Accept(token.PARAM) {
		v.Placeholder = true
		v.Index = p.nextParam()
		return v, nil
	}
	v.Negative = p.Accept(token.MINUS)
	if !p.currentIs(token.INTEGER) {
		return nil, p.Unexpected("integer", "?")
	}
	n, err := p.ParseUnsigned()
	if err != nil {
		return nil, err
	}
	v.Value = n
	return v, nil
}

func (p *Parser) nextParam() int {
	n := p.params
	p.params++
	return n
}

// parseLockClause parses FOR UPDATE with the dialect's options, or one of the
// dialect's other locking clauses. It returns nil when none is present.
func (p *Parser) parseLockClause() (*ast.LockClause, error) {
	if p.currentIs(token.FOR) && p.peekIs(token.UPDATE) {
		l := &ast.LockClause{Position: p.Current().Pos, ForUpdate: true}
		p.Next()
		p.Next()
		for _, opt := range p.dialect.Grammar.LockOptions {
			ok, err := opt.Parse(p, l)
			if err != nil {
				return nil, err
			}
			if ok {
				break
			}
		}
		return l, nil
	}
	for _, rule := range p.dialect.Grammar.LockRules {
		l, ok, err := rule.Parse(p)
		if err != nil {
			return nil, err
		}
		if ok {
			return l, nil
		}
	}
	return nil, nil
}

func (p *Parser) parseInsert() (*ast.InsertStatement, error) {
	s := &ast.InsertStatement{Position: p.Current().Pos, Replace: p.currentIs(token.REPLACE)}
	s.Hints = p.takeHints()
	p.Next() // INSERT or REPLACE
	s.Hints = append(s.Hints, p.takeHints()...)

options:
	for {
		switch tok := p.Current().Token; {
		case s.Priority == "" && (tok == token.LOW_PRIORITY || tok == token.DELAYED || tok == token.HIGH_PRIORITY):
			s.Priority = tok.String()
		case !s.Replace && !s.Ignore && tok == token.IGNORE:
			s.Ignore = true
		default:
			break options
		}
		p.Next()
		s.Hints = append(s.Hints, p.takeHints()...)
	}

	p.Accept(token.INTO)
	table, err := p.parseTableName()
	if err != nil {
		return nil, err
	}
	s.Table = table

	if p.currentIs(token.LPAREN) && !p.queryAhead() {
		p.Next()
		for !p.currentIs(token.RPAREN) {
			col, err := p.parseColumnName()
			if err != nil {
				return nil, err
			}
			s.Columns = append(s.Columns, col)
			if !p.Accept(token.COMMA) {
				break
			}
		}
		if _, err := p.Expect(token.RPAREN); err != nil {
			return nil, err
		}
	}

	switch p.Current().Token {
	case token.VALUES, token.VALUE:
		p.Next()
		if s.Values, err = p.parseValueRows(); err != nil {
			return nil, err
		}
	case token.SET:
		p.Next()
		if s.SetList, err = p.parseAssignmentList(); err != nil {
			return nil, err
		}
	case token.SELECT, token.LPAREN:
		if s.Select, err = p.parseQueryExpression(); err != nil {
			return nil, err
		}
	default:
		return nil, p.Unexpected("VALUES", "SET", "SELECT")
	}

	if !s.Replace && p.currentIs(token.ON) && p.peekIs(token.DUPLICATE) {
		p.Next()
		p.Next()
		if _, err := p.Expect(token.KEY); err != nil {
			return nil, err
		}
		if _, err := p.Expect(token.UPDATE); err != nil {
			return nil, err
		}
		if s.OnDuplicate, err = p.parseAssignmentList(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (p *Parser) parseValueRows() ([][]ast.Expression, error) {
	var rows [][]ast.Expression
	for {
		if _, err := p.Expect(token.LPAREN); err != nil {
			return nil, err
		}
		row := []ast.Expression{}
		for !p.currentIs(token.RPAREN) {
			v, err := p.parseAssignmentValue()
			if err != nil {
				return nil, err
			}
			row = append(row, v)
			if !p.Accept(token.COMMA) {
				break
			}
		}
		if _, err := p.Expect(token.RPAREN); err != nil {
			return nil, err
		}
		rows = append(rows, row)
		if !p.Accept(token.COMMA) {
			return rows, nil
		}
	}
}

func (p *Parser) parseUpdate() (*ast.UpdateStatement, error) {
	s := &ast.UpdateStatement{Position: p.Current().Pos}
	s.Hints = p.takeHints()
	p.Next() // UPDATE
	s.Hints = append(s.Hints, p.takeHints()...)
	for {
		if p.Accept(token.LOW_PRIORITY) {
			s.LowPriority = true
		} else if p.Accept(token.IGNORE) {
			s.Ignore = true
		} else {
			break
		}
		s.Hints = append(s.Hints, p.takeHints()...)
	}

	var err error
	if s.Table, err = p.parseTableReferences(); err != nil {
		return nil, err
	}
	if _, err := p.Expect(token.SET); err != nil {
		return nil, err
	}
	if s.SetList, err = p.parseAssignmentList(); err != nil {
		return nil, err
	}
	if p.Accept(token.WHERE) {
		if s.Where, err = p.parseExpression(LOWEST); err != nil {
			return nil, err
		}
	}
	if p.currentIs(token.ORDER) {
		if s.OrderBy, err = p.parseOrderBy(); err != nil {
			return nil, err
		}
	}
	if p.currentIs(token.LIMIT) {
		l := &ast.Limit{Position: p.Current().Pos}
		p.Next()
		if l.Count, err = p.parseLimitValue(); err != nil {
			return nil, err
		}
		s.Limit = l
	}
	return s, nil
}

// parseAssignmentList parses the SET list of UPDATE, INSERT ... SET and
// ON DUPLICATE KEY UPDATE. Only a top-level comma ends an assignment: an AND
// after a value belongs to that value, so a = 1 AND b = 2 is one assignment
// of the expression 1 AND (b = 2).
func (p *Parser) parseAssignmentList() ([]*ast.Assignment, error) {
	var list []*ast.Assignment
	for {
		a, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		list = append(list, a)
		if !p.Accept(token.COMMA) {
			return list, nil
		}
	}
}

func (p *Parser) parseAssignment() (*ast.Assignment, error) {
	a := &ast.Assignment{Position: p.Current().Pos}
	col, err := p.parseColumnName()
	if err != nil {
		return nil, err
	}
	a.Column = col
	if !p.Accept(token.EQ) && !p.Accept(token.ASSIGN) {
		return nil, p.Unexpected("=")
	}
	if a.Value, err = p.parseAssignmentValue(); err != nil {
		return nil, err
	}
	return a, nil
}

// parseAssignmentValue parses the right-hand side of an assignment or a
// VALUES entry, where a bare DEFAULT is allowed.
func (p *Parser) parseAssignmentValue() (ast.Expression, error) {
	if p.currentIs(token.DEFAULT) && !p.peekIs(token.LPAREN) {
		d := &ast.DefaultExpr{Position: p.Current().Pos}
		p.Next()
		return d, nil
	}
	return p.parseExpression(LOWEST)
}

// parseColumnName parses a possibly qualified column name.
func (p *Parser) parseColumnName() (*ast.Identifier, error) {
	id := &ast.Identifier{Position: p.Current().Pos}
	name, err := p.ParseName()
	if err != nil {
		return nil, err
	}
	id.Parts = append(id.Parts, name)
	for p.Accept(token.DOT) {
		if name, err = p.parseQualifiedPart(); err != nil {
			return nil, err
		}
		id.Parts = append(id.Parts, name)
	}
	return id, nil
}

// parseQualifiedPart reads the name after a dot, where any keyword is a
// plain name (t.order, t.from).
func (p *Parser) parseQualifiedPart() (string, error) {
	it := p.Current()
	if it.Token == token.IDENT || it.Token == token.QUOTED_IDENT || it.Token.IsKeyword() {
		p.Next()
		return it.Value, nil
	}
	return "", p.Unexpected("identifier")
}

// queryAhead reports whether the current run of opening parentheses is
// followed by SELECT.
func (p *Parser) queryAhead() bool {
	for i := 0; ; i++ {
		switch p.Peek(i).Token {
		case token.LPAREN:
			continue
		case token.SELECT:
			return true
		default:
			return false
		}
	}
}
