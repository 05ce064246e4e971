package ast

import (
	"strings"

	"github.com/sqlc-dev/obsql/token"
)

// Expression is the interface implemented by all expression nodes.
type Expression interface {
	Node
	expressionNode()
}

// LiteralKind is the kind of a literal.
type LiteralKind string

const (
	LiteralString  LiteralKind = "String"
	LiteralInteger LiteralKind = "Integer"
	LiteralDecimal LiteralKind = "Decimal"
	LiteralFloat   LiteralKind = "Float"
	LiteralHex     LiteralKind = "Hex"
	LiteralBit     LiteralKind = "Bit"
	LiteralBoolean LiteralKind = "Boolean"
	LiteralNull    LiteralKind = "Null"
)

// Literal is a constant. Value holds the decoded string content for strings
// and the exact source text for numbers, so numbers round-trip unchanged.
type Literal struct {
	Position token.Position `json:"-" deep:"-"`
	Kind     LiteralKind    `json:"kind"`
	Value    string         `json:"value"`
	Quote    string         `json:"quote,omitempty"` // ' or " for strings
}

func (l *Literal) Pos() token.Position { return l.Position }
func (l *Literal) End() token.Position { return l.Position }
func (l *Literal) expressionNode()     {}

// Identifier is a possibly qualified name such as db.t.c.
type Identifier struct {
	Position token.Position `json:"-" deep:"-"`
	Parts    []string       `json:"parts"`
}

func (i *Identifier) Pos() token.Position { return i.Position }
func (i *Identifier) End() token.Position { return i.Position }
func (i *Identifier) expressionNode()     {}

// Name returns the dotted name.
func (i *Identifier) Name() string {
	return strings.Join(i.Parts, ".")
}

// Placeholder is a ? parameter marker. Index counts placeholders from zero in
// source order.
type Placeholder struct {
	Position token.Position `json:"-" deep:"-"`
	Index    int            `json:"index"`
}

func (p *Placeholder) Pos() token.Position { return p.Position }
func (p *Placeholder) End() token.Position { return p.Position }
func (p *Placeholder) expressionNode()     {}

// Variable is a @user or @@system variable reference.
type Variable struct {
	Position token.Position `json:"-" deep:"-"`
	Name     string         `json:"name"`
}

func (v *Variable) Pos() token.Position { return v.Position }
func (v *Variable) End() token.Position { return v.Position }
func (v *Variable) expressionNode()     {}

// Asterisk is * or t.*.
type Asterisk struct {
	Position token.Position `json:"-" deep:"-"`
	Table    []string       `json:"table,omitempty"`
}

func (a *Asterisk) Pos() token.Position { return a.Position }
func (a *Asterisk) End() token.Position { return a.Position }
func (a *Asterisk) expressionNode()     {}

// DefaultExpr is the DEFAULT keyword in a VALUES row or SET value.
type DefaultExpr struct {
	Position token.Position `json:"-" deep:"-"`
}

func (d *DefaultExpr) Pos() token.Position { return d.Position }
func (d *DefaultExpr) End() token.Position { return d.Position }
func (d *DefaultExpr) expressionNode()     {}

// FunctionCall is a function call. NoParens is set for niladic keyword
// functions written without parentheses, like CURRENT_TIMESTAMP.
type FunctionCall struct {
	Position token.Position `json:"-" deep:"-"`
	Name     string         `json:"name"`
	Distinct bool           `json:"distinct,omitempty"`
	Args     []Expression   `json:"args,omitempty"`
	NoParens bool           `json:"no_parens,omitempty"`
}

func (f *FunctionCall) Pos() token.Position { return f.Position }
func (f *FunctionCall) End() token.Position { return f.Position }
func (f *FunctionCall) expressionNode()     {}

// CastExpr is CAST(expr AS type).
type CastExpr struct {
	Position token.Position `json:"-" deep:"-"`
	Expr     Expression     `json:"expr"`
	Type     string         `json:"type"`
}

func (c *CastExpr) Pos() token.Position { return c.Position }
func (c *CastExpr) End() token.Position { return c.Position }
func (c *CastExpr) expressionNode()     {}

// ComparisonExpr is a binary comparison: = <> != < > <= >= <=>.
type ComparisonExpr struct {
	Position token.Position `json:"-" deep:"-"`
	Op       string         `json:"op"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func (c *ComparisonExpr) Pos() token.Position { return c.Position }
func (c *ComparisonExpr) End() token.Position { return c.Position }
func (c *ComparisonExpr) expressionNode()     {}

// LogicalExpr is AND, OR or XOR. && and || are stored as AND and OR.
type LogicalExpr struct {
	Position token.Position `json:"-" deep:"-"`
	Op       string         `json:"op"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func (l *LogicalExpr) Pos() token.Position { return l.Position }
func (l *LogicalExpr) End() token.Position { return l.Position }
func (l *LogicalExpr) expressionNode()     {}

// ArithmeticExpr is an arithmetic or bitwise binary operation:
// + - * / % DIV MOD & | ^ << >>.
type ArithmeticExpr struct {
	Position token.Position `json:"-" deep:"-"`
	Op       string         `json:"op"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func (a *ArithmeticExpr) Pos() token.Position { return a.Position }
func (a *ArithmeticExpr) End() token.Position { return a.Position }
func (a *ArithmeticExpr) expressionNode()     {}

// UnaryExpr is a prefix operator: - + ~ ! BINARY.
type UnaryExpr struct {
	Position token.Position `json:"-" deep:"-"`
	Op       string         `json:"op"`
	Expr     Expression     `json:"expr"`
}

func (u *UnaryExpr) Pos() token.Position { return u.Position }
func (u *UnaryExpr) End() token.Position { return u.Position }
func (u *UnaryExpr) expressionNode()     {}

// NotExpr is NOT expr.
type NotExpr struct {
	Position token.Position `json:"-" deep:"-"`
	Expr     Expression     `json:"expr"`
}

func (n *NotExpr) Pos() token.Position { return n.Position }
func (n *NotExpr) End() token.Position { return n.Position }
func (n *NotExpr) expressionNode()     {}

// BetweenExpr is expr [NOT] BETWEEN low AND high.
type BetweenExpr struct {
	Position token.Position `json:"-" deep:"-"`
	Expr     Expression     `json:"expr"`
	Not      bool           `json:"not,omitempty"`
	Low      Expression     `json:"low"`
	High     Expression     `json:"high"`
}

func (b *BetweenExpr) Pos() token.Position { return b.Position }
func (b *BetweenExpr) End() token.Position { return b.Position }
func (b *BetweenExpr) expressionNode()     {}

// InExpr is expr [NOT] IN (list) or expr [NOT] IN (subquery).
type InExpr struct {
	Position token.Position `json:"-" deep:"-"`
	Expr     Expression     `json:"expr"`
	Not      bool           `json:"not,omitempty"`
	List     []Expression   `json:"list,omitempty"`
	Query    QueryBody      `json:"query,omitempty"`
}

func (i *InExpr) Pos() token.Position { return i.Position }
func (i *InExpr) End() token.Position { return i.Position }
func (i *InExpr) expressionNode()     {}

// LikeExpr is expr [NOT] LIKE pattern [ESCAPE escape].
type LikeExpr struct {
	Position token.Position `json:"-" deep:"-"`
	Expr     Expression     `json:"expr"`
	Not      bool           `json:"not,omitempty"`
	Pattern  Expression     `json:"pattern"`
	Escape   Expression     `json:"escape,omitempty"`
}

func (l *LikeExpr) Pos() token.Position { return l.Position }
func (l *LikeExpr) End() token.Position { return l.Position }
func (l *LikeExpr) expressionNode()     {}

// RegexpExpr is expr [NOT] REGEXP pattern; Op keeps REGEXP or RLIKE.
type RegexpExpr struct {
	Position token.Position `json:"-" deep:"-"`
	Op       string         `json:"op"`
	Expr     Expression     `json:"expr"`
	Not      bool           `json:"not,omitempty"`
	Pattern  Expression     `json:"pattern"`
}

func (r *RegexpExpr) Pos() token.Position { return r.Position }
func (r *RegexpExpr) End() token.Position { return r.Position }
func (r *RegexpExpr) expressionNode()     {}

// IsExpr is expr IS [NOT] NULL|TRUE|FALSE|UNKNOWN.
type IsExpr struct {
	Position token.Position `json:"-" deep:"-"`
	Expr     Expression     `json:"expr"`
	Not      bool           `json:"not,omitempty"`
	Value    string         `json:"value"`
}

func (i *IsExpr) Pos() token.Position { return i.Position }
func (i *IsExpr) End() token.Position { return i.Position }
func (i *IsExpr) expressionNode()     {}

// IntervalExpr is INTERVAL value unit. Unit is upper-cased.
type IntervalExpr struct {
	Position token.Position `json:"-" deep:"-"`
	Value    Expression     `json:"value"`
	Unit     string         `json:"unit"`
}

func (i *IntervalExpr) Pos() token.Position { return i.Position }
func (i *IntervalExpr) End() token.Position { return i.Position }
func (i *IntervalExpr) expressionNode()     {}

// CaseExpr is CASE [operand] WHEN ... THEN ... [ELSE ...] END.
type CaseExpr struct {
	Position token.Position `json:"-" deep:"-"`
	Operand  Expression     `json:"operand,omitempty"`
	Whens    []*WhenClause  `json:"whens"`
	Else     Expression     `json:"else,omitempty"`
}

func (c *CaseExpr) Pos() token.Position { return c.Position }
func (c *CaseExpr) End() token.Position { return c.Position }
func (c *CaseExpr) expressionNode()     {}

// WhenClause is a WHEN ... THEN ... branch of a CASE expression.
type WhenClause struct {
	Position  token.Position `json:"-" deep:"-"`
	Condition Expression     `json:"condition"`
	Result    Expression     `json:"result"`
}

func (w *WhenClause) Pos() token.Position { return w.Position }
func (w *WhenClause) End() token.Position { return w.Position }

// ExistsExpr is EXISTS (subquery).
type ExistsExpr struct {
	Position token.Position `json:"-" deep:"-"`
	Query    QueryBody      `json:"query"`
}

func (e *ExistsExpr) Pos() token.Position { return e.Position }
func (e *ExistsExpr) End() token.Position { return e.Position }
func (e *ExistsExpr) expressionNode()     {}

// SubqueryExpr is a scalar subquery.
type SubqueryExpr struct {
	Position token.Position `json:"-" deep:"-"`
	Query    QueryBody      `json:"query"`
}

func (s *SubqueryExpr) Pos() token.Position { return s.Position }
func (s *SubqueryExpr) End() token.Position { return s.Position }
func (s *SubqueryExpr) expressionNode()     {}

// RowExpr is a row constructor (a, b, ...).
type RowExpr struct {
	Position token.Position `json:"-" deep:"-"`
	Items    []Expression   `json:"items"`
}

func (r *RowExpr) Pos() token.Position { return r.Position }
func (r *RowExpr) End() token.Position { return r.Position }
func (r *RowExpr) expressionNode()     {}
