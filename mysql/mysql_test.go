package mysql_test

import (
	"testing"

	"github.com/pingcap/errors"
	"github.com/stretchr/testify/require"

	"github.com/sqlc-dev/obsql/ast"
	"github.com/sqlc-dev/obsql/internal/normalize"
	"github.com/sqlc-dev/obsql/mysql"
	"github.com/sqlc-dev/obsql/parser"
	"github.com/sqlc-dev/obsql/token"
)

func parseSelect(t *testing.T, sql string) *ast.SimpleQuery {
	t.Helper()
	stmt, err := mysql.Parse(normalize.SQL(sql))
	require.NoError(t, err, sql)
	sel, ok := stmt.(*ast.SelectStatement)
	require.True(t, ok, "got %T", stmt)
	q, ok := sel.QueryBody.(*ast.SimpleQuery)
	require.True(t, ok, "got %T", sel.QueryBody)
	return q
}

func TestReservedWordsAsColumns(t *testing.T) {
	words := []string{
		"FROM", "cast", "end", "escape", "for", "group", "if", "in", "id",
		"into", "is", "on", "or", "use", "with", "engine",
	}
	for _, w := range words {
		t.Run(w, func(t *testing.T) {
			q := parseSelect(t, "SELECT "+w+" FROM t")
			require.Len(t, q.SelectList, 1)
			id, ok := q.SelectList[0].Expr.(*ast.Identifier)
			require.True(t, ok, "got %T", q.SelectList[0].Expr)
			require.Equal(t, []string{w}, id.Parts)
			require.Len(t, q.From, 1)
		})
	}
}

func TestReservedWordRejected(t *testing.T) {
	for _, sql := range []string{
		"SELECT select FROM t",
		"SELECT a FROM where",
		"SELECT 1 AS limit",
		"SELECT FROM t",
		"SELECT a, FROM t",
		"SELECT FROM t WHERE a = 1",
	} {
		_, err := mysql.Parse(sql)
		require.Error(t, err, sql)
		require.IsType(t, &parser.SyntaxError{}, errors.Cause(err), sql)
	}
}

func TestRegexpOperators(t *testing.T) {
	for _, op := range []string{"RLIKE", "REGEXP"} {
		q := parseSelect(t, "SELECT * FROM t WHERE a "+op+" 'hello|world'")
		re, ok := q.Where.(*ast.RegexpExpr)
		require.True(t, ok, "got %T", q.Where)
		require.Equal(t, op, re.Op)
		require.False(t, re.Not)
		require.Equal(t, "hello|world", re.Pattern.(*ast.Literal).Value)
	}
}

func TestLockInShareMode(t *testing.T) {
	sql := "INSERT IGNORE INTO ilimitcenter05.tp_48246_ogt_fc_lc_day (`id`, `tnt_inst_id`, `amount`, `version`) " +
		"SELECT `id`, `tnt_inst_id`, `amount`, `version` FROM ilimitcenter05.fc_lc_day " +
		"WHERE `id` > ? AND (`id` < ? OR `id` = ?) LOCK IN SHARE MODE"
	stmt, err := mysql.Parse(normalize.SQL(sql))
	require.NoError(t, err)

	ins, ok := stmt.(*ast.InsertStatement)
	require.True(t, ok, "got %T", stmt)
	require.True(t, ins.Ignore)
	require.Equal(t, "ilimitcenter05", ins.Table.Schema)
	require.Equal(t, "tp_48246_ogt_fc_lc_day", ins.Table.Name)
	require.Len(t, ins.Columns, 4)

	q, ok := ins.Select.(*ast.SimpleQuery)
	require.True(t, ok, "got %T", ins.Select)
	require.NotNil(t, q.Lock)
	require.True(t, q.Lock.InShareMode)
	require.False(t, q.Lock.ForUpdate)
}

func TestForceIndexIsOceanBaseOnly(t *testing.T) {
	_, err := mysql.Parse("SELECT a FROM t FORCE INDEX (idx)")
	require.Error(t, err)
	require.IsType(t, &parser.SyntaxError{}, errors.Cause(err))

	// FORCE is a plain name here.
	q := parseSelect(t, "SELECT force FROM t force")
	require.Equal(t, "force", q.From[0].(*ast.TableName).Alias)
}

func TestForUpdateOptionsRejected(t *testing.T) {
	q := parseSelect(t, "SELECT a FROM t FOR UPDATE")
	require.True(t, q.Lock.ForUpdate)

	_, err := mysql.Parse("SELECT a FROM t FOR UPDATE NOWAIT")
	require.Error(t, err)
}

func TestQuotedStrings(t *testing.T) {
	for _, sql := range []string{
		"SELECT Original_artist FROM table_15383430_1 WHERE Theme = 'year'",
		`SELECT Original_artist FROM table_15383430_1 WHERE Theme = "year"`,
	} {
		q := parseSelect(t, sql)
		cmp := q.Where.(*ast.ComparisonExpr)
		require.Equal(t, "year", cmp.Right.(*ast.Literal).Value)
	}
}

func TestHintCommentsDiscarded(t *testing.T) {
	items, err := mysql.Tokenize("SELECT /*+ index(t i) */ a FROM t")
	require.NoError(t, err)
	for _, it := range items {
		require.NotEqual(t, token.HINT, it.Token)
	}
	require.Equal(t, token.EOF, items[len(items)-1].Token)

	stmt, err := mysql.ParseTokens(items)
	require.NoError(t, err)
	require.IsType(t, &ast.SelectStatement{}, stmt)
}

func TestParseExpr(t *testing.T) {
	expr, err := mysql.ParseExpr("a NOT RLIKE ?")
	require.NoError(t, err)
	re, ok := expr.(*ast.RegexpExpr)
	require.True(t, ok, "got %T", expr)
	require.True(t, re.Not)
	require.Equal(t, "RLIKE", re.Op)
}

func TestDefaultFunction(t *testing.T) {
	stmt, err := mysql.Parse("UPDATE t SET b = DEFAULT(b), c = DEFAULT")
	require.NoError(t, err)
	upd := stmt.(*ast.UpdateStatement)
	fn, ok := upd.SetList[0].Value.(*ast.FunctionCall)
	require.True(t, ok, "got %T", upd.SetList[0].Value)
	require.Equal(t, "DEFAULT", fn.Name)
	require.Equal(t, []string{"b"}, fn.Args[0].(*ast.Identifier).Parts)
	require.IsType(t, &ast.DefaultExpr{}, upd.SetList[1].Value)
	require.Equal(t, "UPDATE t SET b = DEFAULT(b), c = DEFAULT", parser.Format(stmt))
}

func TestInUnionOfSubqueries(t *testing.T) {
	q := parseSelect(t, "SELECT a FROM t WHERE a IN ((SELECT 1) UNION (SELECT 2))")
	in, ok := q.Where.(*ast.InExpr)
	require.True(t, ok, "got %T", q.Where)
	require.Nil(t, in.List)
	u, ok := in.Query.(*ast.Union)
	require.True(t, ok, "got %T", in.Query)
	require.True(t, u.Left.(*ast.SimpleQuery).Parens)
	require.True(t, u.Right.(*ast.SimpleQuery).Parens)

	// A lone parenthesized subquery stays a one-item list.
	q = parseSelect(t, "SELECT a FROM t WHERE a IN ((SELECT 1))")
	require.Len(t, q.Where.(*ast.InExpr).List, 1)
}

func TestKeywordTable(t *testing.T) {
	require.Equal(t, "mysql", mysql.Keywords.Name())
	require.Same(t, mysql.Keywords, mysql.Dialect.Keywords())

	tok, ok := mysql.Keywords.Lookup("select")
	require.True(t, ok)
	require.Equal(t, token.SELECT, tok)

	_, ok = mysql.Keywords.Lookup("force")
	require.False(t, ok)
	_, ok = mysql.Keywords.Lookup("nowait")
	require.False(t, ok)

	require.True(t, mysql.Keywords.AllowsAsIdentifier("from"))
	require.True(t, mysql.Keywords.AllowsAsIdentifier("anything_else"))
	require.False(t, mysql.Keywords.AllowsAsIdentifier("select"))
}
