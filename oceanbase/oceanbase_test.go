package oceanbase_test

import (
	"strings"
	"testing"

	"github.com/pingcap/errors"
	"github.com/stretchr/testify/require"

	"github.com/sqlc-dev/obsql/ast"
	"github.com/sqlc-dev/obsql/internal/normalize"
	"github.com/sqlc-dev/obsql/oceanbase"
	"github.com/sqlc-dev/obsql/parser"
	"github.com/sqlc-dev/obsql/token"
)

func parse(t *testing.T, sql string) ast.Statement {
	t.Helper()
	stmt, err := oceanbase.Parse(normalize.SQL(sql))
	require.NoError(t, err, sql)
	return stmt
}

func simpleQuery(t *testing.T, stmt ast.Statement) *ast.SimpleQuery {
	t.Helper()
	sel, ok := stmt.(*ast.SelectStatement)
	require.True(t, ok, "got %T", stmt)
	q, ok := sel.QueryBody.(*ast.SimpleQuery)
	require.True(t, ok, "got %T", sel.QueryBody)
	return q
}

// TestStatements parses statements taken from production workloads.
func TestStatements(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{
			name: "update with cjk string",
			sql: `update jss_alarm_def  set  scope_id = 5,
            alarm_name = 'sparkmeta-jss同步刷新任务告警',
            create_operator = '0005292026',
            is_delete = 0,gmt_modify = '2019-08-13 17:11:56.979'
            WHERE alarm_id = 2000003`,
		},
		{
			name: "subquery with limit",
			sql:  "SELECT COUNT(*) FROM ( SELECT * FROM customs_script_match_history LIMIT ? ) a",
		},
		{
			name: "current_timestamp call",
			sql: "SELECT device_id, msg_id, short_msg_key, third_msg_id, mission_id , payload, template_code, business , " +
				"ruleset_id, strategy, principal_id, tag, priority , expire_time, gmt_create, status FROM pushcore_msg " +
				"WHERE device_id = ? AND principal_id = ? AND status = ? AND expire_time > current_timestamp()",
		},
		{
			name: "interval placeholder",
			sql:  "SELECT biz_id, operator, MAX(gmt_create) AS gmt_create FROM log WHERE type = ? AND gmt_create > date_sub(now(), INTERVAL ? DAY) GROUP BY biz_id",
		},
		{
			name: "insert values",
			sql:  "insert into t1 values(?,?,?)",
		},
		{
			name: "insert column list",
			sql:  "insert into t1(c1,c2,c3) values(?,?,?)",
		},
		{
			name: "insert select",
			sql:  "insert into t1 SELECT * FROM t2",
		},
		{
			name: "derived tables and group_concat",
			sql: "SELECT h.site, h.ip, h.sm_name, h.pre_group, h.nodegroup , host_name, mount, used_pct, size, used , free, m.node " +
				"FROM ( SELECT host_name, mount, MAX(used_pct) AS used_pct, MAX(size) AS size, MAX(used) AS used , MIN(free) AS free, " +
				"MAX(check_time) AS check_time FROM host_disk_used h FORCE INDEX (idx_ct_up_m) WHERE check_time > now() - INTERVAL ? HOUR " +
				"AND mount IN (?) AND host_name NOT LIKE ? AND host_name NOT LIKE ? AND host_name NOT LIKE ? " +
				"GROUP BY host_name, mount ORDER BY MAX(used) ) i, mt_armory_host h, " +
				"( SELECT ip, GROUP_CONCAT(node) AS node FROM mt_mysql_meta WHERE ip IS NOT NULL AND gmt_alive > now() - INTERVAL ? HOUR GROUP BY ip ) m " +
				"WHERE i.host_name = h.hostname AND h.pre_group = ? AND m.ip = h.ip ORDER BY used",
		},
		{
			name: "regexp placeholder",
			sql:  "SELECT * FROM file_moving_serial WHERE serial_no REGEXP ?",
		},
		{
			name: "insert now",
			sql:  "INSERT IGNORE INTO bumonitor_risk_process_context (gmt_create, gmt_modified, rowkey, context) VALUES (now(), now(), ?, ?)",
		},
		{
			name: "quoted backtick cjk",
			sql:  "SELECT `净值` FROM FundTable WHERE `销售状态` = \"正常申购\"",
		},
		{
			name: "bare cjk",
			sql:  "SELECT 净值 FROM FundTable WHERE 销售状态 = \"正常申购\"",
		},
		{
			name: "mixed cjk and latin",
			sql:  "SELECT 赎回状态a FROM FundTable WHERE 重b仓 like \"北部湾港%\"",
		},
		{
			name: "current_date minus interval",
			sql:  "select t1,t2 from foo where t1 > (CURRENT_DATE() - INTERVAL 30 day)+'0'",
		},
		{
			name: "double literal",
			sql:  `SELECT Winner FROM table_11621915_1 WHERE Purse > 964017.2297960471 AND Date_ds = "may 28"`,
		},
		{
			name: "parenthesized expression in order by",
			sql: "SELECT channel_code , contact_number FROM customer_contact_channels WHERE active_to_date - active_from_date = " +
				"(SELECT active_to_date - active_from_date FROM customer_contact_channels ORDER BY (active_to_date - active_from_date) DESC LIMIT 1)",
		},
		{
			name: "boolean select item",
			sql: "SELECT T1.list_followers, T2.user_subscriber = 1 FROM lists AS T1 INNER JOIN lists_users AS T2 " +
				"ON T1.user_id = T2.user_id AND T2.list_id = T2.list_id WHERE T2.user_id = 4208563 ORDER BY T1.list_followers DESC LIMIT 1",
		},
		{
			name: "negative interval",
			sql:  "select date_format(date_format(date_add(biz_date, interval -1 day), '%y%m%d'), '%y%m%d') from t",
		},
		{
			name: "nested aliases",
			sql: "select t2.biz_date as biz_date, f1.calculate_field / t2.calculate_field1 as d_remain_rate from " +
				"( select t1.biz_date as biz_date , count(DISTINCT if(t1.biz_date_is_visit = '1', t1.user_id, null)) as calculate_field1 " +
				"from ( select * from pets_user_miaowa_galileo_visit_user_di ) t1 where t1.appname in ('AppPetWXSS', 'HelloPet') " +
				"and t1.biz_date between date_format(date_sub(date_format(date_sub(curdate(), interval 1 day), '%Y%m%d'), interval 1 day), '%Y%m%d') " +
				"and date_format(date_sub(curdate(), interval 1 day), '%Y%m%d') group by t1.biz_date ) t2 left join " +
				"( select date_format(date_format(date_add(t1.biz_date, interval -1 day), '%Y%m%d'), '%Y%m%d') as biz_date , " +
				"count(DISTINCT if(datediff(t1.biz_date, t1.last_visit_date) = 1 and t1.biz_date_is_visit = '1', t1.user_id, null)) as calculate_field " +
				"from ( select * from pets_user_miaowa_galileo_visit_user_di ) t1 where t1.appname in ('AppPetWXSS', 'HelloPet') " +
				"group by date_format(date_format(date_add(t1.biz_date, interval -1 day), '%Y%m%d'), '%Y%m%d') ) f1 " +
				"on t2.biz_date = f1.biz_date order by biz_date asc limit 0, 1000",
		},
		{
			name: "bitwise and",
			sql: "select count(1) from train_order_info where occupy_type in ( ? ) and order_serial_no = ? and merchant_id = '' " +
				"and passenger_info like concat('%',concat( ?,'%')) and createtime >= ? and createtime <= ? " +
				"and inquire_type in ( ? ) and ability_require & ? = ?",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stmt := parse(t, tc.sql)
			again, err := oceanbase.Parse(parser.Format(stmt))
			require.NoError(t, err, parser.Format(stmt))
			require.Equal(t, parser.Explain(stmt), parser.Explain(again))
		})
	}
}

func TestAndInUpdate(t *testing.T) {
	stmt := parse(t, "update foo set t1 = '1' and t2 = '2' where t3 = '3'")
	upd, ok := stmt.(*ast.UpdateStatement)
	require.True(t, ok, "got %T", stmt)
	require.Len(t, upd.SetList, 1)
	require.Equal(t, []string{"t1"}, upd.SetList[0].Column.Parts)

	and, ok := upd.SetList[0].Value.(*ast.LogicalExpr)
	require.True(t, ok, "got %T", upd.SetList[0].Value)
	require.Equal(t, "AND", and.Op)
	require.Equal(t, "1", and.Left.(*ast.Literal).Value)
	require.IsType(t, &ast.ComparisonExpr{}, and.Right)
	require.IsType(t, &ast.ComparisonExpr{}, upd.Where)
}

func TestUnionAndUnionAll(t *testing.T) {
	for _, tc := range []struct {
		sql string
		all bool
	}{
		{"select a from b union select a from b", false},
		{"select a from b union distinct select a from b", false},
		{"select a from b union all select a from b", true},
	} {
		stmt := parse(t, tc.sql)
		u, ok := stmt.(*ast.SelectStatement).QueryBody.(*ast.Union)
		require.True(t, ok, tc.sql)
		require.Equal(t, tc.all, u.All, tc.sql)
	}
}

func TestUpdateSet(t *testing.T) {
	stmt := parse(t, "UPDATE t set a = 1, b = 2 WHERE c = 3")
	upd := stmt.(*ast.UpdateStatement)
	require.Len(t, upd.SetList, 2)
	require.Len(t, upd.Table, 1)
	require.Equal(t, "t", upd.Table[0].(*ast.TableName).Name)
	require.IsType(t, &ast.ComparisonExpr{}, upd.Where)
}

func TestLimitPlaceholder(t *testing.T) {
	q := simpleQuery(t, parse(t, "SELECT * FROM `antinvoice93`.einv_base_info WHERE einv_source = ? ORDER BY gmt_create DESC LIMIT ?"))
	require.Equal(t, "?", q.Limit.Count.String())
	require.True(t, q.Limit.Count.Placeholder)
	require.Equal(t, 1, q.Limit.Count.Index)
	require.Nil(t, q.Limit.Offset)
	require.Equal(t, "antinvoice93", q.From[0].(*ast.TableName).Schema)
	require.Equal(t, ast.OrderDesc, q.OrderBy[0].Direction)
}

func TestNegativeLimit(t *testing.T) {
	q := simpleQuery(t, parse(t, "select * from foo limit 10,-10"))
	require.Equal(t, uint64(10), q.Limit.Offset.Value)
	require.False(t, q.Limit.Offset.Negative)
	require.Equal(t, uint64(10), q.Limit.Count.Value)
	require.True(t, q.Limit.Count.Negative)
	require.Equal(t, "SELECT * FROM foo LIMIT 10, -10", parser.Format(&ast.SelectStatement{QueryBody: q}))
}

func TestUnsignedLimit(t *testing.T) {
	q := simpleQuery(t, parse(t, "SELECT a FROM t LIMIT 5, 18446744073709551615"))
	require.Equal(t, uint64(18446744073709551615), q.Limit.Count.Value)
	require.Equal(t, "18446744073709551615", q.Limit.Count.String())
	require.Equal(t, "SELECT a FROM t LIMIT 5, 18446744073709551615", parser.Format(&ast.SelectStatement{QueryBody: q}))

	_, err := oceanbase.Parse("SELECT a FROM t LIMIT 18446744073709551616")
	synErr, ok := errors.Cause(err).(*parser.SyntaxError)
	require.True(t, ok, "got %T", errors.Cause(err))
	require.Equal(t, "18446744073709551616", synErr.Found)
}

func TestSelectForUpdate(t *testing.T) {
	const base = "SELECT id, gmt_create, match_id, user_id FROM sports_user_match_record WHERE match_record_id IN (?)"

	q := simpleQuery(t, parse(t, base+" FOR UPDATE"))
	require.True(t, q.Lock.ForUpdate)
	require.False(t, q.Lock.NowaitOrWait)
	require.Nil(t, q.Lock.WaitSeconds)

	q = simpleQuery(t, parse(t, base+" FOR UPDATE NOWAIT"))
	require.True(t, q.Lock.ForUpdate)
	require.True(t, q.Lock.NowaitOrWait)
	require.Nil(t, q.Lock.WaitSeconds)

	q = simpleQuery(t, parse(t, base+" FOR UPDATE WAIT 6"))
	require.True(t, q.Lock.ForUpdate)
	require.True(t, q.Lock.NowaitOrWait)
	require.NotNil(t, q.Lock.WaitSeconds)
	require.Equal(t, int64(6), *q.Lock.WaitSeconds)

	_, err := oceanbase.Parse(base + " FOR UPDATE WAIT")
	require.Error(t, err)
	require.IsType(t, &parser.SyntaxError{}, errors.Cause(err))
}

func TestForceIndexWithHint(t *testing.T) {
	sql := `
        SELECT /*+read_consistency(weak) index(fund_trade_order_01 n_apply_order)*/
        t1.convert_out_product_id, t1.convert_out_apply_share
        FROM fund_trade_order T1 INNER JOIN
        (
        SELECT order_id, inst_apply_order_id FROM fund_trade_order FORCE INDEX (n_apply_order)
        WHERE order_status IN (?) AND switch_flag = ? AND ta_code = ? AND scene_type <> ?
        AND
        (
            order_type IN (?) AND transaction_date = ? AND product_id IN (?) OR order_type = ? AND transaction_date = ? AND product_id IN (?)
        )
        ORDER BY inst_apply_order_id LIMIT ?, ? ) T2 WHERE t1.order_id = t2.order_id`
	q := simpleQuery(t, parse(t, sql))

	require.Len(t, q.Hints, 1)
	require.Equal(t, []*ast.HintItem{
		{Name: "read_consistency", Args: []string{"weak"}},
		{Name: "index", Args: []string{"fund_trade_order_01", "n_apply_order"}},
	}, q.Hints[0].Items)

	join, ok := q.From[0].(*ast.Join)
	require.True(t, ok, "got %T", q.From[0])
	require.Equal(t, ast.JoinInner, join.Kind)
	require.Equal(t, "T1", join.Left.(*ast.TableName).Alias)

	derived, ok := join.Right.(*ast.DerivedTable)
	require.True(t, ok, "got %T", join.Right)
	require.Equal(t, "T2", derived.Alias)

	inner := derived.Subquery.(*ast.SimpleQuery)
	require.Equal(t, []string{"n_apply_order"}, inner.From[0].(*ast.TableName).ForceIndex)
	require.True(t, inner.Limit.Offset.Placeholder)
	require.True(t, inner.Limit.Count.Placeholder)
	require.Equal(t, 10, inner.Limit.Offset.Index)
	require.Equal(t, 11, inner.Limit.Count.Index)
	require.Nil(t, join.On)
}

func TestLockInShareModeWithForceIndex(t *testing.T) {
	sql := "INSERT IGNORE INTO ilimitcenter05.tp_48246_ogt_fc_lc_day (`id`, `tnt_inst_id`, `principal_id`, `version`) " +
		"SELECT `id`, `tnt_inst_id`, `principal_id`, `version` FROM ilimitcenter05.fc_lc_day FORCE INDEX (`PRIMARY`) " +
		"WHERE `id` > ? AND (`id` < ? OR `id` = ?) LOCK IN SHARE MODE"
	ins := parse(t, sql).(*ast.InsertStatement)
	q := ins.Select.(*ast.SimpleQuery)
	require.Equal(t, []string{"PRIMARY"}, q.From[0].(*ast.TableName).ForceIndex)
	require.True(t, q.Lock.InShareMode)
}

func TestDistinctWithTraceComment(t *testing.T) {
	sql := `
            /* trace_id=0b7cad2e168016361004041132631,rpc_id=0.5c88b07f.9.1 */                      SELECT /*+ index(midas_record_value idx_tenant_time) */                 DISTINCT(trace_id)             FROM                 midas_record_value where tenant='fascore' and is_expired=0  order by gmt_modified asc limit 500
            `
	q := simpleQuery(t, parse(t, sql))
	require.True(t, q.Distinct)
	require.Len(t, q.Hints, 1)
	require.Equal(t, "index(midas_record_value idx_tenant_time)", q.Hints[0].Text)
	require.Equal(t, []string{"trace_id"}, q.SelectList[0].Expr.(*ast.Identifier).Parts)
	require.Equal(t, uint64(500), q.Limit.Count.Value)
}

func TestSingleQuoteEscape(t *testing.T) {
	for _, tc := range []struct {
		sql  string
		want string
	}{
		{"SELECT director_id FROM movies WHERE movie_title = 'It''s Winter'", "It's Winter"},
		{`SELECT director_id FROM movies WHERE movie_title = "It''s Winter"`, "It''s Winter"},
	} {
		q := simpleQuery(t, parse(t, tc.sql))
		lit := q.Where.(*ast.ComparisonExpr).Right.(*ast.Literal)
		require.Equal(t, tc.want, lit.Value)
	}
}

func TestUnionWithOrderedBranches(t *testing.T) {
	stmt := parse(t, "( select 球员id from 球员夺冠次数 order by 冠军次数 asc limit 3 ) union ( select 球员id from 球员夺冠次数 order by 亚军次数 desc limit 5 )")
	u := stmt.(*ast.SelectStatement).QueryBody.(*ast.Union)
	left := u.Left.(*ast.SimpleQuery)
	right := u.Right.(*ast.SimpleQuery)
	require.True(t, left.Parens)
	require.True(t, right.Parens)
	require.Equal(t, uint64(3), left.Limit.Count.Value)
	require.Equal(t, uint64(5), right.Limit.Count.Value)
	require.Nil(t, u.OrderBy)
	require.Nil(t, u.Limit)
}

func TestLockAfterUnionRejected(t *testing.T) {
	_, err := oceanbase.Parse("SELECT a FROM t1 UNION SELECT a FROM t2 FOR UPDATE")
	require.Error(t, err)
	require.IsType(t, &parser.SyntaxError{}, errors.Cause(err))
}

func TestUnattachedHintRejected(t *testing.T) {
	_, err := oceanbase.Parse("SELECT a FROM t WHERE a = /*+ index(t i) */ 1")
	require.Error(t, err)
	synErr, ok := errors.Cause(err).(*parser.SyntaxError)
	require.True(t, ok, "got %T", errors.Cause(err))
	require.Equal(t, "hint comment", synErr.Found)
}

func TestHintPlacement(t *testing.T) {
	upd := parse(t, "UPDATE /*+ query_timeout(100) */ t SET a = 1").(*ast.UpdateStatement)
	require.Len(t, upd.Hints, 1)

	ins := parse(t, "INSERT /*+ enable_parallel_dml */ INTO t VALUES (1)").(*ast.InsertStatement)
	require.Len(t, ins.Hints, 1)
	require.Equal(t, "enable_parallel_dml", ins.Hints[0].Items[0].Name)
}

func TestHintBeforeParenthesizedTable(t *testing.T) {
	stmt := parse(t, "SELECT a FROM /*+ x */ (SELECT 1) d")
	derived := simpleQuery(t, stmt).From[0].(*ast.DerivedTable)
	require.Len(t, derived.Hints, 1)
	require.Equal(t, "x", derived.Hints[0].Text)
	require.Equal(t, "SELECT a FROM /*+ x */ (SELECT 1) AS d", parser.Format(stmt))
	require.Equal(t, []string{
		"SelectStatement (children 1)",
		" SimpleQuery (children 2)",
		"  SelectList (children 1)",
		"   Identifier a",
		"  From (children 1)",
		"   DerivedTable d (children 2)",
		"    Hints (children 1)",
		"     Hint \"x\"",
		"    SimpleQuery (children 1)",
		"     SelectList (children 1)",
		"      Literal Integer 1",
	}, strings.Split(strings.TrimSpace(parser.Explain(stmt)), "\n"))

	// A hint before a parenthesized join goes to its leftmost table.
	join := simpleQuery(t, parse(t, "SELECT a FROM /*+ leading(t2) */ (t1 JOIN /*+ y */ t2 ON t1.id = t2.id)")).From[0].(*ast.Join)
	left := join.Left.(*ast.TableName)
	require.Len(t, left.Hints, 1)
	require.Equal(t, "leading(t2)", left.Hints[0].Text)
	require.Len(t, join.Right.(*ast.TableName).Hints, 1)
}

func TestReservedWordsAsNames(t *testing.T) {
	for _, w := range []string{"force", "nowait", "wait", "from", "group"} {
		q := simpleQuery(t, parse(t, "SELECT "+w+" FROM t"))
		require.Equal(t, []string{w}, q.SelectList[0].Expr.(*ast.Identifier).Parts)
	}
}

func TestKeywords(t *testing.T) {
	require.Equal(t, "oceanbase", oceanbase.Keywords.Name())
	for _, w := range []string{"FORCE", "NOWAIT", "WAIT"} {
		_, ok := oceanbase.Keywords.Lookup(w)
		require.True(t, ok, w)
		require.True(t, oceanbase.Keywords.AllowsAsIdentifier(w), w)
	}

	items, err := oceanbase.Tokenize("SELECT /*+ parallel(2) */ 1")
	require.NoError(t, err)
	require.Equal(t, token.SELECT, items[0].Token)
	require.Equal(t, token.HINT, items[1].Token)
	require.Equal(t, "parallel(2)", items[1].Value)

	stmt, err := oceanbase.ParseTokens(items)
	require.NoError(t, err)
	require.Len(t, simpleQuery(t, stmt).Hints, 1)
}

func TestParseExpr(t *testing.T) {
	expr, err := oceanbase.ParseExpr("CURRENT_DATE() - INTERVAL 30 day")
	require.NoError(t, err)
	arith := expr.(*ast.ArithmeticExpr)
	require.Equal(t, "-", arith.Op)
	interval := arith.Right.(*ast.IntervalExpr)
	require.Equal(t, "DAY", interval.Unit)
}
