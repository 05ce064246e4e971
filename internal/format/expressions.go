package format

import (
	"strconv"
	"strings"

	"github.com/sqlc-dev/obsql/ast"
)

// Binding strength of expressions, weakest first. Kept in step with the
// parser's precedence table so printed operands regroup the same way.
const (
	precLowest = iota
	precOr
	precXor
	precAnd
	precNot
	precCompare
	precAdd
	precMul
	precUnary
	precPrimary
)

func strconvInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

func precedence(expr ast.Expression) int {
	switch e := expr.(type) {
	case *ast.LogicalExpr:
		switch e.Op {
		case "OR":
			return precOr
		case "XOR":
			return precXor
		}
		return precAnd
	case *ast.NotExpr:
		return precNot
	case *ast.ComparisonExpr, *ast.BetweenExpr, *ast.InExpr, *ast.LikeExpr, *ast.RegexpExpr, *ast.IsExpr:
		return precCompare
	case *ast.ArithmeticExpr:
		switch e.Op {
		case "*", "/", "%", "DIV", "MOD":
			return precMul
		}
		return precAdd
	case *ast.UnaryExpr:
		return precUnary
	case *ast.IntervalExpr:
		// INTERVAL reads its value greedily, so it only stands alone safely
		// where an operand is expected at the highest level.
		return precUnary
	}
	return precPrimary
}

// operand writes expr, parenthesized when it binds weaker than min.
func operand(sb *strings.Builder, expr ast.Expression, min int) {
	if precedence(expr) < min {
		sb.WriteString("(")
		Expression(sb, expr)
		sb.WriteString(")")
		return
	}
	Expression(sb, expr)
}

// Expression formats an expression.
func Expression(sb *strings.Builder, expr ast.Expression) {
	if expr == nil {
		return
	}

	switch e := expr.(type) {
	case *ast.Literal:
		formatLiteral(sb, e)
	case *ast.Identifier:
		formatIdentifier(sb, e)
	case *ast.Placeholder:
		sb.WriteString("?")
	case *ast.Variable:
		sb.WriteString(e.Name)
	case *ast.Asterisk:
		for _, t := range e.Table {
			Name(sb, t)
			sb.WriteString(".")
		}
		sb.WriteString("*")
	case *ast.DefaultExpr:
		sb.WriteString("DEFAULT")
	case *ast.FunctionCall:
		formatFunctionCall(sb, e)
	case *ast.CastExpr:
		sb.WriteString("CAST(")
		Expression(sb, e.Expr)
		sb.WriteString(" AS ")
		sb.WriteString(e.Type)
		sb.WriteString(")")
	case *ast.ComparisonExpr:
		formatBinary(sb, e.Left, e.Op, e.Right, precCompare)
	case *ast.LogicalExpr:
		formatBinary(sb, e.Left, e.Op, e.Right, precedence(e))
	case *ast.ArithmeticExpr:
		formatBinary(sb, e.Left, e.Op, e.Right, precedence(e))
	case *ast.UnaryExpr:
		sb.WriteString(e.Op)
		if e.Op == "BINARY" {
			sb.WriteString(" ")
		}
		operand(sb, e.Expr, precPrimary)
	case *ast.NotExpr:
		sb.WriteString("NOT ")
		operand(sb, e.Expr, precNot)
	case *ast.BetweenExpr:
		operand(sb, e.Expr, precCompare)
		sb.WriteString(not(e.Not, " BETWEEN "))
		operand(sb, e.Low, precCompare+1)
		sb.WriteString(" AND ")
		operand(sb, e.High, precCompare+1)
	case *ast.InExpr:
		operand(sb, e.Expr, precCompare)
		sb.WriteString(not(e.Not, " IN ("))
		if e.Query != nil {
			QueryBody(sb, e.Query)
		} else {
			formatExpressionList(sb, e.List)
		}
		sb.WriteString(")")
	case *ast.LikeExpr:
		operand(sb, e.Expr, precCompare)
		sb.WriteString(not(e.Not, " LIKE "))
		operand(sb, e.Pattern, precCompare+1)
		if e.Escape != nil {
			sb.WriteString(" ESCAPE ")
			operand(sb, e.Escape, precCompare+1)
		}
	case *ast.RegexpExpr:
		operand(sb, e.Expr, precCompare)
		sb.WriteString(not(e.Not, " "+e.Op+" "))
		operand(sb, e.Pattern, precCompare+1)
	case *ast.IsExpr:
		operand(sb, e.Expr, precCompare)
		sb.WriteString(" IS ")
		if e.Not {
			sb.WriteString("NOT ")
		}
		sb.WriteString(e.Value)
	case *ast.IntervalExpr:
		sb.WriteString("INTERVAL ")
		operand(sb, e.Value, precCompare+1)
		sb.WriteString(" ")
		sb.WriteString(e.Unit)
	case *ast.CaseExpr:
		formatCase(sb, e)
	case *ast.ExistsExpr:
		sb.WriteString("EXISTS (")
		QueryBody(sb, e.Query)
		sb.WriteString(")")
	case *ast.SubqueryExpr:
		sb.WriteString("(")
		QueryBody(sb, e.Query)
		sb.WriteString(")")
	case *ast.RowExpr:
		sb.WriteString("(")
		formatExpressionList(sb, e.Items)
		sb.WriteString(")")
	}
}

// not writes op with NOT in front of its keyword: " IN (" becomes
// " NOT IN (".
func not(negated bool, op string) string {
	if !negated {
		return op
	}
	return " NOT" + op
}

// formatBinary writes a left-associative binary operator.
func formatBinary(sb *strings.Builder, left ast.Expression, op string, right ast.Expression, prec int) {
	operand(sb, left, prec)
	sb.WriteString(" ")
	sb.WriteString(op)
	sb.WriteString(" ")
	operand(sb, right, prec+1)
}

func formatLiteral(sb *strings.Builder, lit *ast.Literal) {
	switch lit.Kind {
	case ast.LiteralString:
		quote := lit.Quote
		if quote == "" {
			quote = "'"
		}
		s := strings.ReplaceAll(lit.Value, `\`, `\\`)
		s = strings.ReplaceAll(s, quote, quote+quote)
		sb.WriteString(quote)
		sb.WriteString(s)
		sb.WriteString(quote)
	case ast.LiteralHex:
		sb.WriteString("X'")
		sb.WriteString(lit.Value)
		sb.WriteString("'")
	case ast.LiteralBit:
		sb.WriteString("B'")
		sb.WriteString(lit.Value)
		sb.WriteString("'")
	default:
		sb.WriteString(lit.Value)
	}
}

func formatIdentifier(sb *strings.Builder, id *ast.Identifier) {
	formatNames(sb, id.Parts, ".")
}

func formatFunctionCall(sb *strings.Builder, fn *ast.FunctionCall) {
	sb.WriteString(fn.Name)
	if fn.NoParens {
		return
	}
	sb.WriteString("(")
	if fn.Distinct {
		sb.WriteString("DISTINCT ")
	}
	formatExpressionList(sb, fn.Args)
	sb.WriteString(")")
}

func formatCase(sb *strings.Builder, c *ast.CaseExpr) {
	sb.WriteString("CASE")
	if c.Operand != nil {
		sb.WriteString(" ")
		Expression(sb, c.Operand)
	}
	for _, w := range c.Whens {
		sb.WriteString(" WHEN ")
		Expression(sb, w.Condition)
		sb.WriteString(" THEN ")
		Expression(sb, w.Result)
	}
	if c.Else != nil {
		sb.WriteString(" ELSE ")
		Expression(sb, c.Else)
	}
	sb.WriteString(" END")
}

func formatExpressionList(sb *strings.Builder, exprs []ast.Expression) {
	for i, e := range exprs {
		if i > 0 {
			sb.WriteString(", ")
		}
		Expression(sb, e)
	}
}
