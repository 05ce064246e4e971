package explain

import (
	"fmt"
	"strings"

	"github.com/sqlc-dev/obsql/ast"
)

func explainExpression(sb *strings.Builder, expr ast.Expression, indent string, depth int) {
	switch e := expr.(type) {
	case *ast.Literal:
		fmt.Fprintf(sb, "%sLiteral %s %s\n", indent, e.Kind, FormatLiteral(e))
	case *ast.Identifier:
		fmt.Fprintf(sb, "%sIdentifier %s\n", indent, strings.Join(e.Parts, "."))
	case *ast.Placeholder:
		fmt.Fprintf(sb, "%sPlaceholder %d\n", indent, e.Index)
	case *ast.Variable:
		fmt.Fprintf(sb, "%sVariable %s\n", indent, e.Name)
	case *ast.Asterisk:
		if len(e.Table) > 0 {
			fmt.Fprintf(sb, "%sAsterisk %s\n", indent, strings.Join(e.Table, "."))
		} else {
			fmt.Fprintf(sb, "%sAsterisk\n", indent)
		}
	case *ast.DefaultExpr:
		fmt.Fprintf(sb, "%sDefault\n", indent)
	case *ast.FunctionCall:
		explainFunctionCall(sb, e, indent, depth)
	case *ast.CastExpr:
		fmt.Fprintf(sb, "%sCast %s (children 1)\n", indent, e.Type)
		Node(sb, e.Expr, depth+1)
	case *ast.ComparisonExpr:
		explainBinary(sb, "Comparison", e.Op, e.Left, e.Right, indent, depth)
	case *ast.LogicalExpr:
		explainBinary(sb, "Logical", e.Op, e.Left, e.Right, indent, depth)
	case *ast.ArithmeticExpr:
		explainBinary(sb, "Arithmetic", e.Op, e.Left, e.Right, indent, depth)
	case *ast.UnaryExpr:
		fmt.Fprintf(sb, "%sUnary %s (children 1)\n", indent, e.Op)
		Node(sb, e.Expr, depth+1)
	case *ast.NotExpr:
		fmt.Fprintf(sb, "%sNot (children 1)\n", indent)
		Node(sb, e.Expr, depth+1)
	case *ast.BetweenExpr:
		fmt.Fprintf(sb, "%s%s (children 3)\n", indent, not(e.Not, "Between"))
		Node(sb, e.Expr, depth+1)
		Node(sb, e.Low, depth+1)
		Node(sb, e.High, depth+1)
	case *ast.InExpr:
		explainIn(sb, e, indent, depth)
	case *ast.LikeExpr:
		fmt.Fprintf(sb, "%s%s (children %d)\n", indent, not(e.Not, "Like"), 2+count(e.Escape != nil))
		Node(sb, e.Expr, depth+1)
		Node(sb, e.Pattern, depth+1)
		wrap(sb, "Escape", e.Escape, depth+1)
	case *ast.RegexpExpr:
		fmt.Fprintf(sb, "%sRegexp %s (children 2)\n", indent, not(e.Not, e.Op))
		Node(sb, e.Expr, depth+1)
		Node(sb, e.Pattern, depth+1)
	case *ast.IsExpr:
		fmt.Fprintf(sb, "%sIs %s (children 1)\n", indent, not(e.Not, e.Value))
		Node(sb, e.Expr, depth+1)
	case *ast.IntervalExpr:
		fmt.Fprintf(sb, "%sInterval %s (children 1)\n", indent, e.Unit)
		Node(sb, e.Value, depth+1)
	case *ast.CaseExpr:
		explainCase(sb, e, indent, depth)
	case *ast.ExistsExpr:
		fmt.Fprintf(sb, "%sExists (children 1)\n", indent)
		Node(sb, e.Query, depth+1)
	case *ast.SubqueryExpr:
		fmt.Fprintf(sb, "%sSubquery (children 1)\n", indent)
		Node(sb, e.Query, depth+1)
	case *ast.RowExpr:
		header(sb, indent, "Row", len(e.Items))
		for _, item := range e.Items {
			Node(sb, item, depth+1)
		}
	default:
		fmt.Fprintf(sb, "%s%T\n", indent, expr)
	}
}

func explainBinary(sb *strings.Builder, kind, op string, left, right ast.Expression, indent string, depth int) {
	fmt.Fprintf(sb, "%s%s %s (children 2)\n", indent, kind, op)
	Node(sb, left, depth+1)
	Node(sb, right, depth+1)
}

func explainFunctionCall(sb *strings.Builder, fn *ast.FunctionCall, indent string, depth int) {
	name := "Function " + fn.Name
	if fn.Distinct {
		name += " DISTINCT"
	}
	header(sb, indent, name, len(fn.Args))
	for _, arg := range fn.Args {
		Node(sb, arg, depth+1)
	}
}

func explainIn(sb *strings.Builder, e *ast.InExpr, indent string, depth int) {
	fmt.Fprintf(sb, "%s%s (children 2)\n", indent, not(e.Not, "In"))
	Node(sb, e.Expr, depth+1)
	if e.Query != nil {
		Node(sb, e.Query, depth+1)
		return
	}
	list(sb, "List", e.List, depth+1)
}

func explainCase(sb *strings.Builder, e *ast.CaseExpr, indent string, depth int) {
	header(sb, indent, "Case", count(e.Operand != nil, e.Else != nil)+len(e.Whens))
	wrap(sb, "Operand", e.Operand, depth+1)
	child := strings.Repeat(" ", depth+1)
	for _, w := range e.Whens {
		fmt.Fprintf(sb, "%sWhen (children 2)\n", child)
		Node(sb, w.Condition, depth+2)
		Node(sb, w.Result, depth+2)
	}
	wrap(sb, "Else", e.Else, depth+1)
}
