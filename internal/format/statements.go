package format

import (
	"strings"

	"github.com/sqlc-dev/obsql/ast"
)

// QueryBody formats a simple query or a union.
func QueryBody(sb *strings.Builder, body ast.QueryBody) {
	switch q := body.(type) {
	case *ast.SimpleQuery:
		formatSimpleQuery(sb, q)
	case *ast.Union:
		formatUnion(sb, q)
	}
}

func formatSimpleQuery(sb *strings.Builder, q *ast.SimpleQuery) {
	if q.Parens {
		sb.WriteString("(")
	}
	sb.WriteString("SELECT ")
	formatHints(sb, q.Hints)
	if q.Distinct {
		sb.WriteString("DISTINCT ")
	}
	for _, opt := range q.Options {
		sb.WriteString(opt)
		sb.WriteString(" ")
	}
	for i, item := range q.SelectList {
		if i > 0 {
			sb.WriteString(", ")
		}
		Expression(sb, item.Expr)
		if item.Alias != "" {
			sb.WriteString(" AS ")
			Name(sb, item.Alias)
		}
	}
	if len(q.From) > 0 {
		sb.WriteString(" FROM ")
		formatTableReferences(sb, q.From)
	}
	if q.Where != nil {
		sb.WriteString(" WHERE ")
		Expression(sb, q.Where)
	}
	if len(q.GroupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		formatExpressionList(sb, q.GroupBy)
		if q.WithRollup {
			sb.WriteString(" WITH ROLLUP")
		}
	}
	if q.Having != nil {
		sb.WriteString(" HAVING ")
		Expression(sb, q.Having)
	}
	formatOrderBy(sb, q.OrderBy)
	formatLimit(sb, q.Limit)
	formatLock(sb, q.Lock)
	if q.Parens {
		sb.WriteString(")")
	}
}

func formatUnion(sb *strings.Builder, u *ast.Union) {
	if u.Parens {
		sb.WriteString("(")
	}
	QueryBody(sb, u.Left)
	sb.WriteString(" UNION ")
	if u.All {
		sb.WriteString("ALL ")
	}
	QueryBody(sb, u.Right)
	formatOrderBy(sb, u.OrderBy)
	formatLimit(sb, u.Limit)
	if u.Parens {
		sb.WriteString(")")
	}
}

func formatOrderBy(sb *strings.Builder, items []*ast.OrderByItem) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(" ORDER BY ")
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		Expression(sb, item.Expr)
		if item.Direction != ast.OrderDefault {
			sb.WriteString(" ")
			sb.WriteString(string(item.Direction))
		}
	}
}

func formatLimit(sb *strings.Builder, l *ast.Limit) {
	if l == nil {
		return
	}
	sb.WriteString(" LIMIT ")
	switch {
	case l.Offset == nil:
		sb.WriteString(l.Count.String())
	case l.OffsetKeyword:
		sb.WriteString(l.Count.String())
		sb.WriteString(" OFFSET ")
		sb.WriteString(l.Offset.String())
	default:
		sb.WriteString(l.Offset.String())
		sb.WriteString(", ")
		sb.WriteString(l.Count.String())
	}
}

func formatLock(sb *strings.Builder, l *ast.LockClause) {
	if l == nil {
		return
	}
	switch {
	case l.ForUpdate:
		sb.WriteString(" FOR UPDATE")
		switch {
		case l.WaitSeconds != nil:
			sb.WriteString(" WAIT ")
			sb.WriteString(strconvInt(*l.WaitSeconds))
		case l.NowaitOrWait:
			sb.WriteString(" NOWAIT")
		}
	case l.InShareMode:
		sb.WriteString(" LOCK IN SHARE MODE")
	}
}

func formatInsert(sb *strings.Builder, s *ast.InsertStatement) {
	if s.Replace {
		sb.WriteString("REPLACE ")
	} else {
		sb.WriteString("INSERT ")
	}
	formatHints(sb, s.Hints)
	if s.Priority != "" {
		sb.WriteString(s.Priority)
		sb.WriteString(" ")
	}
	if s.Ignore {
		sb.WriteString("IGNORE ")
	}
	sb.WriteString("INTO ")
	formatTableName(sb, s.Table)
	if len(s.Columns) > 0 {
		sb.WriteString(" (")
		for i, col := range s.Columns {
			if i > 0 {
				sb.WriteString(", ")
			}
			formatIdentifier(sb, col)
		}
		sb.WriteString(")")
	}

	switch {
	case s.Values != nil:
		sb.WriteString(" VALUES ")
		for i, row := range s.Values {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("(")
			formatExpressionList(sb, row)
			sb.WriteString(")")
		}
	case s.SetList != nil:
		sb.WriteString(" SET ")
		formatAssignments(sb, s.SetList)
	case s.Select != nil:
		sb.WriteString(" ")
		QueryBody(sb, s.Select)
	}

	if len(s.OnDuplicate) > 0 {
		sb.WriteString(" ON DUPLICATE KEY UPDATE ")
		formatAssignments(sb, s.OnDuplicate)
	}
}

func formatUpdate(sb *strings.Builder, s *ast.UpdateStatement) {
	sb.WriteString("UPDATE ")
	formatHints(sb, s.Hints)
	if s.LowPriority {
		sb.WriteString("LOW_PRIORITY ")
	}
	if s.Ignore {
		sb.WriteString("IGNORE ")
	}
	formatTableReferences(sb, s.Table)
	sb.WriteString(" SET ")
	formatAssignments(sb, s.SetList)
	if s.Where != nil {
		sb.WriteString(" WHERE ")
		Expression(sb, s.Where)
	}
	formatOrderBy(sb, s.OrderBy)
	formatLimit(sb, s.Limit)
}

func formatAssignments(sb *strings.Builder, list []*ast.Assignment) {
	for i, a := range list {
		if i > 0 {
			sb.WriteString(", ")
		}
		formatIdentifier(sb, a.Column)
		sb.WriteString(" = ")
		Expression(sb, a.Value)
	}
}

func formatTableReferences(sb *strings.Builder, refs []ast.TableReference) {
	for i, ref := range refs {
		if i > 0 {
			sb.WriteString(", ")
		}
		TableReference(sb, ref)
	}
}

// TableReference formats a named table, a join or a derived table.
func TableReference(sb *strings.Builder, ref ast.TableReference) {
	switch t := ref.(type) {
	case *ast.TableName:
		formatTableName(sb, t)
	case *ast.Join:
		formatJoin(sb, t)
	case *ast.DerivedTable:
		formatHints(sb, t.Hints)
		sb.WriteString("(")
		QueryBody(sb, t.Subquery)
		sb.WriteString(") AS ")
		Name(sb, t.Alias)
	}
}

func formatTableName(sb *strings.Builder, t *ast.TableName) {
	formatHints(sb, t.Hints)
	if t.Schema != "" {
		Name(sb, t.Schema)
		sb.WriteString(".")
	}
	Name(sb, t.Name)
	if t.Alias != "" {
		sb.WriteString(" AS ")
		Name(sb, t.Alias)
	}
	if len(t.ForceIndex) > 0 {
		sb.WriteString(" FORCE INDEX (")
		formatNames(sb, t.ForceIndex, ", ")
		sb.WriteString(")")
	}
}

func formatJoin(sb *strings.Builder, j *ast.Join) {
	TableReference(sb, j.Left)
	sb.WriteString(" ")
	if j.Natural {
		sb.WriteString("NATURAL ")
	}
	switch j.Kind {
	case ast.JoinInner:
		if !j.Natural {
			sb.WriteString("INNER ")
		}
		sb.WriteString("JOIN ")
	case ast.JoinStraight:
		sb.WriteString("STRAIGHT_JOIN ")
	default:
		sb.WriteString(string(j.Kind))
		sb.WriteString(" JOIN ")
	}

	// The right side of a join is a single factor; a nested join needs
	// parentheses to stay on that side.
	if _, ok := j.Right.(*ast.Join); ok {
		sb.WriteString("(")
		TableReference(sb, j.Right)
		sb.WriteString(")")
	} else {
		TableReference(sb, j.Right)
	}

	switch {
	case j.On != nil:
		sb.WriteString(" ON ")
		Expression(sb, j.On)
	case len(j.Using) > 0:
		sb.WriteString(" USING (")
		formatNames(sb, j.Using, ", ")
		sb.WriteString(")")
	}
}
