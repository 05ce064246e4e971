package ast

import "fmt"

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children of
// node with w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first, source order.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *SelectStatement:
		walkQuery(v, n.QueryBody)

	case *InsertStatement:
		walkHints(v, n.Hints)
		if n.Table != nil {
			Walk(v, n.Table)
		}
		for _, c := range n.Columns {
			Walk(v, c)
		}
		for _, row := range n.Values {
			walkExprs(v, row)
		}
		walkQuery(v, n.Select)
		walkAssignments(v, n.SetList)
		walkAssignments(v, n.OnDuplicate)

	case *UpdateStatement:
		walkHints(v, n.Hints)
		walkTables(v, n.Table)
		walkAssignments(v, n.SetList)
		walkExpr(v, n.Where)
		walkOrderBy(v, n.OrderBy)
		if n.Limit != nil {
			Walk(v, n.Limit)
		}

	case *SimpleQuery:
		walkHints(v, n.Hints)
		for _, item := range n.SelectList {
			Walk(v, item)
		}
		walkTables(v, n.From)
		walkExpr(v, n.Where)
		walkExprs(v, n.GroupBy)
		walkExpr(v, n.Having)
		walkOrderBy(v, n.OrderBy)
		if n.Limit != nil {
			Walk(v, n.Limit)
		}
		if n.Lock != nil {
			Walk(v, n.Lock)
		}

	case *Union:
		Walk(v, n.Left)
		Walk(v, n.Right)
		walkOrderBy(v, n.OrderBy)
		if n.Limit != nil {
			Walk(v, n.Limit)
		}

	case *SelectItem:
		Walk(v, n.Expr)
	case *OrderByItem:
		Walk(v, n.Expr)
	case *Limit:
		if n.Offset != nil {
			Walk(v, n.Offset)
		}
		Walk(v, n.Count)
	case *Assignment:
		Walk(v, n.Column)
		Walk(v, n.Value)

	case *TableName:
		walkHints(v, n.Hints)
	case *Join:
		Walk(v, n.Left)
		Walk(v, n.Right)
		walkExpr(v, n.On)
	case *DerivedTable:
		walkHints(v, n.Hints)
		Walk(v, n.Subquery)

	case *FunctionCall:
		walkExprs(v, n.Args)
	case *CastExpr:
		Walk(v, n.Expr)
	case *ComparisonExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *LogicalExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *ArithmeticExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *UnaryExpr:
		Walk(v, n.Expr)
	case *NotExpr:
		Walk(v, n.Expr)
	case *BetweenExpr:
		Walk(v, n.Expr)
		Walk(v, n.Low)
		Walk(v, n.High)
	case *InExpr:
		Walk(v, n.Expr)
		walkExprs(v, n.List)
		walkQuery(v, n.Query)
	case *LikeExpr:
		Walk(v, n.Expr)
		Walk(v, n.Pattern)
		walkExpr(v, n.Escape)
	case *RegexpExpr:
		Walk(v, n.Expr)
		Walk(v, n.Pattern)
	case *IsExpr:
		Walk(v, n.Expr)
	case *IntervalExpr:
		Walk(v, n.Value)
	case *CaseExpr:
		walkExpr(v, n.Operand)
		for _, w := range n.Whens {
			Walk(v, w)
		}
		walkExpr(v, n.Else)
	case *WhenClause:
		Walk(v, n.Condition)
		Walk(v, n.Result)
	case *ExistsExpr:
		Walk(v, n.Query)
	case *SubqueryExpr:
		Walk(v, n.Query)
	case *RowExpr:
		walkExprs(v, n.Items)

	case *Literal, *Identifier, *Placeholder, *Variable, *Asterisk, *DefaultExpr,
		*LimitValue, *LockClause, *Hint:
		// leaves

	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node type %T", n))
	}

	v.Visit(nil)
}

func walkQuery(v Visitor, q QueryBody) {
	if q != nil {
		Walk(v, q)
	}
}

func walkExpr(v Visitor, e Expression) {
	if e != nil {
		Walk(v, e)
	}
}

func walkExprs(v Visitor, list []Expression) {
	for _, e := range list {
		Walk(v, e)
	}
}

func walkTables(v Visitor, list []TableReference) {
	for _, t := range list {
		Walk(v, t)
	}
}

func walkOrderBy(v Visitor, list []*OrderByItem) {
	for _, o := range list {
		Walk(v, o)
	}
}

func walkAssignments(v Visitor, list []*Assignment) {
	for _, a := range list {
		Walk(v, a)
	}
}

func walkHints(v Visitor, list []*Hint) {
	for _, h := range list {
		Walk(v, h)
	}
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses an AST in depth-first order: it starts by calling
// f(node); if f returns true, Inspect invokes f recursively for each of the
// non-nil children of node, followed by a call of f(nil).
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}
