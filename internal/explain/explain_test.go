package explain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sqlc-dev/obsql/ast"
)

func ident(parts ...string) *ast.Identifier {
	return &ast.Identifier{Parts: parts}
}

func lit(kind ast.LiteralKind, v string) *ast.Literal {
	return &ast.Literal{Kind: kind, Value: v}
}

// tree joins lines into the expected output.
func tree(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestExplainStatements(t *testing.T) {
	tests := []struct {
		name string
		stmt ast.Statement
		want string
	}{
		{
			name: "select",
			stmt: &ast.SelectStatement{QueryBody: &ast.SimpleQuery{
				Hints:      []*ast.Hint{{Text: "parallel(2)"}},
				SelectList: []*ast.SelectItem{{Expr: ident("a"), Alias: "x"}},
				From:       []ast.TableReference{&ast.TableName{Name: "t1", Alias: "u", ForceIndex: []string{"i"}}},
				Where:      &ast.IsExpr{Not: true, Expr: ident("b"), Value: "NULL"},
				OrderBy:    []*ast.OrderByItem{{Expr: ident("a"), Direction: ast.OrderDesc}},
				Limit:      &ast.Limit{Offset: &ast.LimitValue{Value: 1}, Count: &ast.LimitValue{Placeholder: true}},
				Lock:       &ast.LockClause{ForUpdate: true, NowaitOrWait: true},
			}},
			want: tree(
				"SelectStatement (children 1)",
				" SimpleQuery (children 7)",
				"  Hints (children 1)",
				`   Hint "parallel(2)"`,
				"  SelectList (children 1)",
				"   Alias x (children 1)",
				"    Identifier a",
				"  From (children 1)",
				"   TableName t1 (alias u) FORCE INDEX (i)",
				"  Where (children 1)",
				"   Is NOT NULL (children 1)",
				"    Identifier b",
				"  OrderBy (children 1)",
				"   OrderByItem DESC (children 1)",
				"    Identifier a",
				"  Limit offset 1 count ?",
				"  Lock FOR UPDATE NOWAIT",
			),
		},
		{
			name: "union",
			stmt: &ast.SelectStatement{QueryBody: &ast.Union{
				All:   true,
				Left:  &ast.SimpleQuery{Distinct: true, Parens: true, SelectList: []*ast.SelectItem{{Expr: lit(ast.LiteralInteger, "1")}}},
				Right: &ast.SimpleQuery{SelectList: []*ast.SelectItem{{Expr: lit(ast.LiteralInteger, "2")}}},
				Limit: &ast.Limit{Count: &ast.LimitValue{Value: 3}},
			}},
			want: tree(
				"SelectStatement (children 1)",
				" Union ALL (children 3)",
				"  SimpleQuery DISTINCT parens (children 1)",
				"   SelectList (children 1)",
				"    Literal Integer 1",
				"  SimpleQuery (children 1)",
				"   SelectList (children 1)",
				"    Literal Integer 2",
				"  Limit count 3",
			),
		},
		{
			name: "insert values",
			stmt: &ast.InsertStatement{
				Ignore:  true,
				Table:   &ast.TableName{Name: "t"},
				Columns: []*ast.Identifier{ident("a")},
				Values:  [][]ast.Expression{{lit(ast.LiteralInteger, "1")}, {&ast.Placeholder{}}},
			},
			want: tree(
				"InsertStatement IGNORE (children 3)",
				" TableName t",
				" Columns (children 1)",
				"  Identifier a",
				" Values (children 2)",
				"  Row (children 1)",
				"   Literal Integer 1",
				"  Row (children 1)",
				"   Placeholder 0",
			),
		},
		{
			name: "replace set",
			stmt: &ast.InsertStatement{
				Replace: true,
				Table:   &ast.TableName{Schema: "s", Name: "t"},
				SetList: []*ast.Assignment{{Column: ident("a"), Value: lit(ast.LiteralInteger, "1")}},
			},
			want: tree(
				"ReplaceStatement (children 2)",
				" TableName s.t",
				" SetList (children 1)",
				"  Assignment a (children 1)",
				"   Literal Integer 1",
			),
		},
		{
			name: "update",
			stmt: &ast.UpdateStatement{
				Table:   []ast.TableReference{&ast.TableName{Name: "t"}},
				SetList: []*ast.Assignment{{Column: ident("a"), Value: lit(ast.LiteralString, "x")}},
				Where:   &ast.ComparisonExpr{Op: "=", Left: ident("b"), Right: lit(ast.LiteralInteger, "2")},
			},
			want: tree(
				"UpdateStatement (children 3)",
				" Tables (children 1)",
				"  TableName t",
				" SetList (children 1)",
				`  Assignment a (children 1)`,
				`   Literal String "x"`,
				" Where (children 1)",
				"  Comparison = (children 2)",
				"   Identifier b",
				"   Literal Integer 2",
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Explain(tt.stmt))
		})
	}
}

func TestExplainNodes(t *testing.T) {
	wait := int64(6)
	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{
			name: "join using",
			node: &ast.Join{Kind: ast.JoinLeft, Left: &ast.TableName{Name: "a"}, Right: &ast.TableName{Name: "b"}, Using: []string{"id"}},
			want: tree(
				"Join LEFT (children 3)",
				" TableName a",
				" TableName b",
				" Using id",
			),
		},
		{
			name: "natural join",
			node: &ast.Join{Kind: ast.JoinInner, Natural: true, Left: &ast.TableName{Name: "a"}, Right: &ast.TableName{Name: "b"}},
			want: tree(
				"Join NATURAL INNER (children 2)",
				" TableName a",
				" TableName b",
			),
		},
		{
			name: "derived table",
			node: &ast.DerivedTable{Alias: "d", Subquery: &ast.SimpleQuery{SelectList: []*ast.SelectItem{{Expr: &ast.Asterisk{}}}}},
			want: tree(
				"DerivedTable d (children 1)",
				" SimpleQuery (children 1)",
				"  SelectList (children 1)",
				"   Asterisk",
			),
		},
		{
			name: "hinted derived table",
			node: &ast.DerivedTable{
				Hints:    []*ast.Hint{{Text: "no_merge"}},
				Alias:    "d",
				Subquery: &ast.SimpleQuery{SelectList: []*ast.SelectItem{{Expr: &ast.Asterisk{}}}},
			},
			want: tree(
				"DerivedTable d (children 2)",
				" Hints (children 1)",
				"  Hint \"no_merge\"",
				" SimpleQuery (children 1)",
				"  SelectList (children 1)",
				"   Asterisk",
			),
		},
		{
			name: "case",
			node: &ast.CaseExpr{
				Operand: ident("a"),
				Whens:   []*ast.WhenClause{{Condition: lit(ast.LiteralInteger, "1"), Result: lit(ast.LiteralString, "one")}},
				Else:    lit(ast.LiteralNull, "NULL"),
			},
			want: tree(
				"Case (children 3)",
				" Operand (children 1)",
				"  Identifier a",
				" When (children 2)",
				"  Literal Integer 1",
				`  Literal String "one"`,
				" Else (children 1)",
				"  Literal Null NULL",
			),
		},
		{
			name: "not in",
			node: &ast.InExpr{Not: true, Expr: ident("a"), List: []ast.Expression{lit(ast.LiteralInteger, "1"), &ast.Placeholder{}}},
			want: tree(
				"NOT In (children 2)",
				" Identifier a",
				" List (children 2)",
				"  Literal Integer 1",
				"  Placeholder 0",
			),
		},
		{
			name: "functions",
			node: &ast.ArithmeticExpr{Op: "-",
				Left:  &ast.FunctionCall{Name: "now"},
				Right: &ast.IntervalExpr{Value: &ast.Placeholder{Index: 2}, Unit: "DAY"}},
			want: tree(
				"Arithmetic - (children 2)",
				" Function now",
				" Interval DAY (children 1)",
				"  Placeholder 2",
			),
		},
		{
			name: "count distinct",
			node: &ast.FunctionCall{Name: "count", Distinct: true, Args: []ast.Expression{ident("t", "a")}},
			want: tree(
				"Function count DISTINCT (children 1)",
				" Identifier t.a",
			),
		},
		{
			name: "hex literal",
			node: lit(ast.LiteralHex, "0F"),
			want: tree("Literal Hex X'0F'"),
		},
		{
			name: "wait lock",
			node: &ast.LockClause{ForUpdate: true, NowaitOrWait: true, WaitSeconds: &wait},
			want: tree("Lock FOR UPDATE WAIT 6"),
		},
		{
			name: "share lock",
			node: &ast.LockClause{InShareMode: true},
			want: tree("Lock LOCK IN SHARE MODE"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			Node(&sb, tt.node, 0)
			assert.Equal(t, tt.want, sb.String())
		})
	}
}
