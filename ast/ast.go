// Package ast defines the abstract syntax tree for MySQL and OceanBase DML.
//
// Every node set is closed: Statement, QueryBody, TableReference and
// Expression can only be implemented by the types in this package, so
// consumers may switch over them exhaustively.
package ast

import (
	"strconv"

	"github.com/sqlc-dev/obsql/token"
)

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() token.Position
	End() token.Position
}

// Statement is the interface implemented by all statement nodes.
type Statement interface {
	Node
	statementNode()
}

// QueryBody is the query-producing part of a SELECT: a SimpleQuery or a Union.
type QueryBody interface {
	Node
	queryBodyNode()
}

// -----------------------------------------------------------------------------
// Statements

// SelectStatement represents a SELECT statement.
type SelectStatement struct {
	Position  token.Position `json:"-" deep:"-"`
	QueryBody QueryBody      `json:"query_body"`
}

func (s *SelectStatement) Pos() token.Position { return s.Position }
func (s *SelectStatement) End() token.Position { return s.Position }
func (s *SelectStatement) statementNode()      {}

// InsertStatement represents INSERT and REPLACE statements. Exactly one of
// Values, Select and SetList is set.
type InsertStatement struct {
	Position    token.Position `json:"-" deep:"-"`
	Hints       []*Hint        `json:"hints,omitempty"`
	Replace     bool           `json:"replace,omitempty"`
	Priority    string         `json:"priority,omitempty"` // LOW_PRIORITY, DELAYED or HIGH_PRIORITY
	Ignore      bool           `json:"ignore,omitempty"`
	Table       *TableName     `json:"table"`
	Columns     []*Identifier  `json:"columns,omitempty"`
	Values      [][]Expression `json:"values,omitempty"`
	Select      QueryBody      `json:"select,omitempty"`
	SetList     []*Assignment  `json:"set_list,omitempty"`
	OnDuplicate []*Assignment  `json:"on_duplicate,omitempty"`
}

func (s *InsertStatement) Pos() token.Position { return s.Position }
func (s *InsertStatement) End() token.Position { return s.Position }
func (s *InsertStatement) statementNode()      {}

// UpdateStatement represents an UPDATE statement.
type UpdateStatement struct {
	Position    token.Position   `json:"-" deep:"-"`
	Hints       []*Hint          `json:"hints,omitempty"`
	LowPriority bool             `json:"low_priority,omitempty"`
	Ignore      bool             `json:"ignore,omitempty"`
	Table       []TableReference `json:"table"`
	SetList     []*Assignment    `json:"set_list"`
	Where       Expression       `json:"where,omitempty"`
	OrderBy     []*OrderByItem   `json:"order_by,omitempty"`
	Limit       *Limit           `json:"limit,omitempty"`
}

func (s *UpdateStatement) Pos() token.Position { return s.Position }
func (s *UpdateStatement) End() token.Position { return s.Position }
func (s *UpdateStatement) statementNode()      {}

// -----------------------------------------------------------------------------
// Query bodies

// SimpleQuery is a single SELECT block.
type SimpleQuery struct {
	Position   token.Position   `json:"-" deep:"-"`
	Hints      []*Hint          `json:"hints,omitempty"`
	Distinct   bool             `json:"distinct,omitempty"`
	Options    []string         `json:"options,omitempty"` // HIGH_PRIORITY, STRAIGHT_JOIN, SQL_CALC_FOUND_ROWS
	SelectList []*SelectItem    `json:"select_list"`
	From       []TableReference `json:"from,omitempty"`
	Where      Expression       `json:"where,omitempty"`
	GroupBy    []Expression     `json:"group_by,omitempty"`
	WithRollup bool             `json:"with_rollup,omitempty"`
	Having     Expression       `json:"having,omitempty"`
	OrderBy    []*OrderByItem   `json:"order_by,omitempty"`
	Limit      *Limit           `json:"limit,omitempty"`
	Lock       *LockClause      `json:"lock,omitempty"`
	Parens     bool             `json:"parens,omitempty"`
}

func (q *SimpleQuery) Pos() token.Position { return q.Position }
func (q *SimpleQuery) End() token.Position { return q.Position }
func (q *SimpleQuery) queryBodyNode()      {}

// Union combines two query bodies. Chains are left-associative: a UNION b
// UNION c is Union{Union{a, b}, c}. OrderBy and Limit hold the clauses that
// follow the last branch and apply to the whole union.
type Union struct {
	Position token.Position `json:"-" deep:"-"`
	Left     QueryBody      `json:"left"`
	Right    QueryBody      `json:"right"`
	All      bool           `json:"all"`
	OrderBy  []*OrderByItem `json:"order_by,omitempty"`
	Limit    *Limit         `json:"limit,omitempty"`
	Parens   bool           `json:"parens,omitempty"`
}

func (u *Union) Pos() token.Position { return u.Position }
func (u *Union) End() token.Position { return u.Position }
func (u *Union) queryBodyNode()      {}

// -----------------------------------------------------------------------------
// Clauses

// SelectItem is one entry of a select list.
type SelectItem struct {
	Position token.Position `json:"-" deep:"-"`
	Expr     Expression     `json:"expr"`
	Alias    string         `json:"alias,omitempty"`
}

func (s *SelectItem) Pos() token.Position { return s.Position }
func (s *SelectItem) End() token.Position { return s.Position }

// OrderDirection is the explicit direction of an ORDER BY item.
type OrderDirection string

const (
	OrderDefault OrderDirection = ""
	OrderAsc     OrderDirection = "ASC"
	OrderDesc    OrderDirection = "DESC"
)

// OrderByItem is one entry of an ORDER BY list.
type OrderByItem struct {
	Position  token.Position `json:"-" deep:"-"`
	Expr      Expression     `json:"expr"`
	Direction OrderDirection `json:"direction,omitempty"`
}

func (o *OrderByItem) Pos() token.Position { return o.Position }
func (o *OrderByItem) End() token.Position { return o.Position }

// Limit represents LIMIT count, LIMIT offset, count and LIMIT count OFFSET
// offset. Offset is nil when absent.
type Limit struct {
	Position      token.Position `json:"-" deep:"-"`
	Offset        *LimitValue    `json:"offset,omitempty"`
	Count         *LimitValue    `json:"count"`
	OffsetKeyword bool           `json:"offset_keyword,omitempty"`
}

func (l *Limit) Pos() token.Position { return l.Position }
func (l *Limit) End() token.Position { return l.Position }

// LimitValue is a literal integer or a ? placeholder. Value holds the
// magnitude, which covers the full unsigned 64-bit range; a leading minus
// sign is kept in Negative.
type LimitValue struct {
	Position    token.Position `json:"-" deep:"-"`
	Value       uint64         `json:"value,omitempty"`
	Negative    bool           `json:"negative,omitempty"`
	Placeholder bool           `json:"placeholder,omitempty"`
	Index       int            `json:"index,omitempty"` // placeholder ordinal
}

func (v *LimitValue) Pos() token.Position { return v.Position }
func (v *LimitValue) End() token.Position { return v.Position }

// String returns the value as SQL text: "?" for placeholders.
func (v *LimitValue) String() string {
	if v.Placeholder {
		return "?"
	}
	if v.Negative {
		return "-" + strconv.FormatUint(v.Value, 10)
	}
	return strconv.FormatUint(v.Value, 10)
}

// LockClause is a trailing locking clause of a simple query.
//
//	FOR UPDATE            ForUpdate
//	FOR UPDATE NOWAIT     ForUpdate, NowaitOrWait
//	FOR UPDATE WAIT n     ForUpdate, NowaitOrWait, WaitSeconds = n
//	LOCK IN SHARE MODE    InShareMode
type LockClause struct {
	Position     token.Position `json:"-" deep:"-"`
	ForUpdate    bool           `json:"for_update,omitempty"`
	NowaitOrWait bool           `json:"nowait_or_wait,omitempty"`
	WaitSeconds  *int64         `json:"wait_seconds,omitempty"`
	InShareMode  bool           `json:"in_share_mode,omitempty"`
}

func (l *LockClause) Pos() token.Position { return l.Position }
func (l *LockClause) End() token.Position { return l.Position }

// Assignment is one column = value entry of a SET list.
type Assignment struct {
	Position token.Position `json:"-" deep:"-"`
	Column   *Identifier    `json:"column"`
	Value    Expression     `json:"value"`
}

func (a *Assignment) Pos() token.Position { return a.Position }
func (a *Assignment) End() token.Position { return a.Position }

// Hint is an optimizer hint comment. Text is the comment body; Items is its
// parsed form and is nil when the body is not a plain list of name(args).
type Hint struct {
	Position token.Position `json:"-" deep:"-"`
	Text     string         `json:"text"`
	Items    []*HintItem    `json:"items,omitempty"`
}

func (h *Hint) Pos() token.Position { return h.Position }
func (h *Hint) End() token.Position { return h.Position }

// HintItem is a single directive inside a hint, such as index(t idx).
type HintItem struct {
	Name string   `json:"name"`
	Args []string `json:"args,omitempty"`
}
