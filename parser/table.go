package parser

import (
	"github.com/sqlc-dev/obsql/ast"
	"github.com/sqlc-dev/obsql/token"
)

// parseTableReferences parses a comma separated FROM or UPDATE target list.
func (p *Parser) parseTableReferences() ([]ast.TableReference, error) {
	var refs []ast.TableReference
	for {
		ref, err := p.parseTableReference()
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
		if !p.Accept(token.COMMA) {
			return refs, nil
		}
	}
}

// parseTableReference parses a table factor followed by any number of
// joins. Joins are left-associative.
func (p *Parser) parseTableReference() (ast.TableReference, error) {
	left, err := p.parseTableFactor()
	if err != nil {
		return nil, err
	}
	for {
		join, ok, err := p.parseJoin(left)
		if err != nil {
			return nil, err
		}
		if !ok {
			return left, nil
		}
		left = join
	}
}

func (p *Parser) parseJoin(left ast.TableReference) (*ast.Join, bool, error) {
	j := &ast.Join{Position: p.Current().Pos, Left: left}

	if p.Accept(token.NATURAL) {
		j.Natural = true
	}
	switch p.Current().Token {
	case token.JOIN:
		j.Kind = ast.JoinInner
	case token.INNER:
		j.Kind = ast.JoinInner
		p.Next()
	case token.CROSS:
		if j.Natural {
			return nil, false, p.Unexpected("LEFT", "RIGHT", "JOIN")
		}
		j.Kind = ast.JoinCross
		p.Next()
	case token.STRAIGHT_JOIN:
		if j.Natural {
			return nil, false, p.Unexpected("LEFT", "RIGHT", "JOIN")
		}
		j.Kind = ast.JoinStraight
	case token.LEFT, token.RIGHT:
		j.Kind = ast.JoinLeft
		if p.currentIs(token.RIGHT) {
			j.Kind = ast.JoinRight
		}
		p.Next()
		p.Accept(token.OUTER)
	default:
		if j.Natural {
			return nil, false, p.Unexpected("JOIN")
		}
		return nil, false, nil
	}
	if j.Kind == ast.JoinStraight {
		p.Next()
	} else if _, err := p.Expect(token.JOIN); err != nil {
		return nil, false, err
	}

	right, err := p.parseTableFactor()
	if err != nil {
		return nil, false, err
	}
	j.Right = right

	if j.Natural {
		return j, true, nil
	}
	switch {
	case p.Accept(token.ON):
		if j.On, err = p.parseExpression(LOWEST); err != nil {
			return nil, false, err
		}
	case p.Accept(token.USING):
		if _, err := p.Expect(token.LPAREN); err != nil {
			return nil, false, err
		}
		for {
			name, err := p.ParseName()
			if err != nil {
				return nil, false, err
			}
			j.Using = append(j.Using, name)
			if !p.Accept(token.COMMA) {
				break
			}
		}
		if _, err := p.Expect(token.RPAREN); err != nil {
			return nil, false, err
		}
	case j.Kind == ast.JoinLeft || j.Kind == ast.JoinRight:
		return nil, false, p.Unexpected("ON", "USING")
	}
	return j, true, nil
}

// parseTableFactor parses a named table, a derived table or a parenthesized
// table reference.
func (p *Parser) parseTableFactor() (ast.TableReference, error) {
	if !p.currentIs(token.LPAREN) {
		return p.parseTableName()
	}
	hints := p.takeHints()

	if p.queryAhead() {
		pos := p.Current().Pos
		p.Next() // (
		query, err := p.parseQueryExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.Expect(token.RPAREN); err != nil {
			return nil, err
		}
		alias, err := p.parseAlias(false)
		if err != nil {
			return nil, err
		}
		if alias == "" {
			return nil, p.Unexpected("alias")
		}
		return &ast.DerivedTable{Position: pos, Hints: hints, Subquery: query, Alias: alias}, nil
	}

	p.Next() // (
	ref, err := p.parseTableReference()
	if err != nil {
		return nil, err
	}
	if _, err := p.Expect(token.RPAREN); err != nil {
		return nil, err
	}
	if len(hints) > 0 {
		attachHints(ref, hints)
	}
	return ref, nil
}

// attachHints gives hints written before a parenthesized join to its
// leftmost table, ahead of any hints that table already carries.
func attachHints(ref ast.TableReference, hints []*ast.Hint) {
	for {
		switch t := ref.(type) {
		case *ast.Join:
			ref = t.Left
			continue
		case *ast.TableName:
			t.Hints = append(hints, t.Hints...)
		case *ast.DerivedTable:
			t.Hints = append(hints, t.Hints...)
		}
		return
	}
}

// parseTableName parses [schema.]name [[AS] alias] followed by the
// dialect's table suffixes.
func (p *Parser) parseTableName() (*ast.TableName, error) {
	t := &ast.TableName{Position: p.Current().Pos}
	t.Hints = p.takeHints()

	name, err := p.ParseName()
	if err != nil {
		return nil, err
	}
	t.Name = name
	if p.Accept(token.DOT) {
		t.Schema = t.Name
		if t.Name, err = p.parseQualifiedPart(); err != nil {
			return nil, err
		}
	}
	if t.Alias, err = p.parseAlias(false); err != nil {
		return nil, err
	}

	for _, suffix := range p.dialect.Grammar.TableSuffixes {
		if _, err := suffix.Parse(p, t); err != nil {
			return nil, err
		}
	}
	return t, nil
}
