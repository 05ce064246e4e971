package ast

import "github.com/sqlc-dev/obsql/token"

// TableReference is a table source in FROM or UPDATE: a TableName, a Join or
// a DerivedTable.
type TableReference interface {
	Node
	tableReferenceNode()
}

// TableName is a named table, optionally qualified by a schema.
type TableName struct {
	Position   token.Position `json:"-" deep:"-"`
	Hints      []*Hint        `json:"hints,omitempty"`
	Schema     string         `json:"schema,omitempty"`
	Name       string         `json:"name"`
	Alias      string         `json:"alias,omitempty"`
	ForceIndex []string       `json:"force_index,omitempty"`
}

func (t *TableName) Pos() token.Position { return t.Position }
func (t *TableName) End() token.Position { return t.Position }
func (t *TableName) tableReferenceNode() {}

// JoinKind is the kind of a JOIN.
type JoinKind string

const (
	JoinInner    JoinKind = "INNER"
	JoinCross    JoinKind = "CROSS"
	JoinLeft     JoinKind = "LEFT"
	JoinRight    JoinKind = "RIGHT"
	JoinStraight JoinKind = "STRAIGHT_JOIN"
)

// Join joins two table references. Chains are left-recursive:
// a JOIN b JOIN c is Join{Join{a, b}, c}.
type Join struct {
	Position token.Position `json:"-" deep:"-"`
	Kind     JoinKind       `json:"kind"`
	Natural  bool           `json:"natural,omitempty"`
	Left     TableReference `json:"left"`
	Right    TableReference `json:"right"`
	On       Expression     `json:"on,omitempty"`
	Using    []string       `json:"using,omitempty"`
}

func (j *Join) Pos() token.Position { return j.Position }
func (j *Join) End() token.Position { return j.Position }
func (j *Join) tableReferenceNode() {}

// DerivedTable is a subquery used as a table. The alias is mandatory.
type DerivedTable struct {
	Position token.Position `json:"-" deep:"-"`
	Hints    []*Hint        `json:"hints,omitempty"`
	Subquery QueryBody      `json:"subquery"`
	Alias    string         `json:"alias"`
}

func (d *DerivedTable) Pos() token.Position { return d.Position }
func (d *DerivedTable) End() token.Position { return d.Position }
func (d *DerivedTable) tableReferenceNode() {}
