package parser

import (
	"github.com/pingcap/errors"

	"github.com/sqlc-dev/obsql/ast"
	"github.com/sqlc-dev/obsql/lexer"
	"github.com/sqlc-dev/obsql/token"
)

// Dialect binds a lexer configuration and a grammar into one parse target.
// Dialects are built once at package init and never mutated, so one value can
// be shared by any number of concurrent Parse calls.
type Dialect struct {
	Name    string
	Lexer   lexer.Config
	Grammar Grammar
}

// Keywords returns the dialect's reserved word table.
func (d *Dialect) Keywords() *token.Table {
	return d.Lexer.Keywords
}

// Grammar is the set of productions a dialect adds to the shared core at its
// extension points. Rules are tried in registration order.
type Grammar struct {
	// Hints enables attaching hint comments to SELECT, UPDATE, INSERT and
	// table references.
	Hints bool

	// TableSuffixes run after a named table and its alias.
	TableSuffixes []TableSuffix

	// LockRules offer alternative locking clauses at the end of a query.
	LockRules []LockRule

	// LockOptions run after FOR UPDATE.
	LockOptions []LockOption
}

// TableSuffix parses an optional suffix of a named table reference, such as
// FORCE INDEX (...). It reports whether it consumed anything.
type TableSuffix struct {
	Name  string
	Parse func(p *Parser, t *ast.TableName) (bool, error)
}

// LockRule parses a locking clause other than FOR UPDATE. It returns a nil
// clause and false when the current token does not start its clause.
type LockRule struct {
	Name  string
	Parse func(p *Parser) (*ast.LockClause, bool, error)
}

// LockOption parses a modifier that follows FOR UPDATE.
type LockOption struct {
	Name  string
	Parse func(p *Parser, l *ast.LockClause) (bool, error)
}

// Extend returns a grammar holding every rule of g followed by the rules of
// ext. A rule name that g already defines is rejected, so an extension can
// add alternatives but never replace a shared production.
func (g Grammar) Extend(ext Grammar) (Grammar, error) {
	seen := make(map[string]bool)
	for _, name := range g.RuleNames() {
		seen[name] = true
	}
	for _, name := range ext.RuleNames() {
		if seen[name] {
			return Grammar{}, errors.Errorf("grammar rule %q is already defined", name)
		}
		seen[name] = true
	}

	out := Grammar{Hints: g.Hints || ext.Hints}
	out.TableSuffixes = append(append([]TableSuffix(nil), g.TableSuffixes...), ext.TableSuffixes...)
	out.LockRules = append(append([]LockRule(nil), g.LockRules...), ext.LockRules...)
	out.LockOptions = append(append([]LockOption(nil), g.LockOptions...), ext.LockOptions...)
	return out, nil
}

// MustExtend is like Extend but panics on error. It is meant for
// package-level dialect construction.
func (g Grammar) MustExtend(ext Grammar) Grammar {
	out, err := g.Extend(ext)
	if err != nil {
		panic(err)
	}
	return out
}

// RuleNames returns the names of all rules in registration order.
func (g Grammar) RuleNames() []string {
	var names []string
	for _, r := range g.TableSuffixes {
		names = append(names, "table:"+r.Name)
	}
	for _, r := range g.LockRules {
		names = append(names, "lock:"+r.Name)
	}
	for _, r := range g.LockOptions {
		names = append(names, "lock-option:"+r.Name)
	}
	return names
}

// Includes reports whether every rule of other is also part of g, in the
// same relative order, and g enables hints whenever other does.
func (g Grammar) Includes(other Grammar) bool {
	if other.Hints && !g.Hints {
		return false
	}
	have := g.RuleNames()
	i := 0
	for _, name := range other.RuleNames() {
		for i < len(have) && have[i] != name {
			i++
		}
		if i == len(have) {
			return false
		}
		i++
	}
	return true
}
