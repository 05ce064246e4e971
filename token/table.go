package token

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Table is a dialect's reserved word table. It maps uppercase spellings to
// keyword tokens and records which of those keywords the grammar may still
// read as a bare identifier.
//
// A Table is immutable once built and safe for concurrent use.
type Table struct {
	name        string
	words       map[string]Token
	identifiers map[string]struct{}
}

// NewTable builds a table from keyword spellings and an identifier allow-list.
// It panics if a word is not a known keyword; tables are built at init time
// from literal lists.
func NewTable(name string, words, identifiers []string) *Table {
	t := &Table{
		name:        name,
		words:       make(map[string]Token, len(words)),
		identifiers: make(map[string]struct{}, len(identifiers)),
	}
	t.add(words, identifiers)
	return t
}

// Extend returns a new table holding every entry of t plus the given words
// and identifiers. t itself is left unchanged.
func (t *Table) Extend(name string, words, identifiers []string) *Table {
	ext := &Table{
		name:        name,
		words:       maps.Clone(t.words),
		identifiers: maps.Clone(t.identifiers),
	}
	ext.add(words, identifiers)
	return ext
}

func (t *Table) add(words, identifiers []string) {
	for _, w := range words {
		w = strings.ToUpper(w)
		tok, ok := Keyword(w)
		if !ok {
			panic(fmt.Sprintf("token: %q is not a keyword", w))
		}
		t.words[w] = tok
	}
	for _, w := range identifiers {
		t.identifiers[strings.ToUpper(w)] = struct{}{}
	}
}

// Name returns the dialect name the table was built for.
func (t *Table) Name() string {
	return t.name
}

// Lookup returns the keyword token for word if the dialect reserves it.
// The comparison is case-insensitive.
func (t *Table) Lookup(word string) (Token, bool) {
	tok, ok := t.words[strings.ToUpper(word)]
	return tok, ok
}

// AllowsAsIdentifier reports whether word may be used as a column, table or
// alias name. Words the dialect does not reserve are always allowed.
func (t *Table) AllowsAsIdentifier(word string) bool {
	w := strings.ToUpper(word)
	if _, ok := t.words[w]; !ok {
		return true
	}
	_, ok := t.identifiers[w]
	return ok
}

// Words returns the reserved spellings in sorted order.
func (t *Table) Words() []string {
	words := maps.Keys(t.words)
	slices.Sort(words)
	return words
}

// Identifiers returns the allow-listed spellings in sorted order.
func (t *Table) Identifiers() []string {
	words := maps.Keys(t.identifiers)
	slices.Sort(words)
	return words
}

// Contains reports whether every entry of other is also present in t.
func (t *Table) Contains(other *Table) bool {
	for w, tok := range other.words {
		if t.words[w] != tok {
			return false
		}
	}
	for w := range other.identifiers {
		if _, ok := t.identifiers[w]; !ok {
			return false
		}
	}
	return true
}
