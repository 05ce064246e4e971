// Package token defines constants representing the lexical tokens of MySQL
// and OceanBase SQL.
package token

// Token represents a lexical token.
type Token int

const (
	// Special tokens
	ILLEGAL Token = iota
	EOF
	HINT // optimizer hint comment /*+ ... */

	// Literals
	IDENT        // identifiers
	QUOTED_IDENT // `identifiers`
	STRING       // 'string' or "string"
	INTEGER      // 123
	DECIMAL      // 1.5
	FLOAT        // 1e10
	HEX          // 0x1F or X'1F'
	BIT          // 0b01 or B'01'
	PARAM        // ? placeholder
	VARIABLE     // @name or @@name

	// Operators
	PLUS         // +
	MINUS        // -
	ASTERISK     // *
	SLASH        // /
	PERCENT      // %
	EQ           // =
	NEQ          // != or <>
	LT           // <
	GT           // >
	LTE          // <=
	GTE          // >=
	NULL_SAFE_EQ // <=>
	AMPERSAND    // &
	PIPE         // |
	CARET        // ^
	TILDE        // ~
	BANG         // !
	SHL          // <<
	SHR          // >>
	LOGICAL_AND  // &&
	LOGICAL_OR   // ||
	ASSIGN       // :=

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	COMMA     // ,
	DOT       // .
	SEMICOLON // ;

	// Keywords
	keyword_beg
	ALL
	AND
	AS
	ASC
	BETWEEN
	BINARY
	BY
	CASE
	CAST
	CROSS
	CURRENT_DATE
	CURRENT_TIME
	CURRENT_TIMESTAMP
	DEFAULT
	DELAYED
	DESC
	DISTINCT
	DISTINCTROW
	DIV
	DUPLICATE
	ELSE
	END
	ESCAPE
	EXISTS
	FALSE
	FOR
	FORCE
	FROM
	GROUP
	HAVING
	HIGH_PRIORITY
	IF
	IGNORE
	IN
	INDEX
	INNER
	INSERT
	INTERVAL
	INTO
	IS
	JOIN
	KEY
	LEFT
	LIKE
	LIMIT
	LOCK
	LOW_PRIORITY
	MOD
	MODE
	NATURAL
	NOT
	NOWAIT
	NULL
	OFFSET
	ON
	OR
	ORDER
	OUTER
	REGEXP
	REPLACE
	RIGHT
	RLIKE
	ROLLUP
	SELECT
	SET
	SHARE
	SQL_CALC_FOUND_ROWS
	STRAIGHT_JOIN
	THEN
	TRUE
	UNION
	UNKNOWN
	UPDATE
	USE
	USING
	VALUE
	VALUES
	WAIT
	WHEN
	WHERE
	WITH
	XOR
	keyword_end
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	HINT:    "HINT",

	IDENT:        "IDENT",
	QUOTED_IDENT: "QUOTED_IDENT",
	STRING:       "STRING",
	INTEGER:      "INTEGER",
	DECIMAL:      "DECIMAL",
	FLOAT:        "FLOAT",
	HEX:          "HEX",
	BIT:          "BIT",
	PARAM:        "?",
	VARIABLE:     "VARIABLE",

	PLUS:         "+",
	MINUS:        "-",
	ASTERISK:     "*",
	SLASH:        "/",
	PERCENT:      "%",
	EQ:           "=",
	NEQ:          "!=",
	LT:           "<",
	GT:           ">",
	LTE:          "<=",
	GTE:          ">=",
	NULL_SAFE_EQ: "<=>",
	AMPERSAND:    "&",
	PIPE:         "|",
	CARET:        "^",
	TILDE:        "~",
	BANG:         "!",
	SHL:          "<<",
	SHR:          ">>",
	LOGICAL_AND:  "&&",
	LOGICAL_OR:   "||",
	ASSIGN:       ":=",

	LPAREN:    "(",
	RPAREN:    ")",
	COMMA:     ",",
	DOT:       ".",
	SEMICOLON: ";",

	ALL:                 "ALL",
	AND:                 "AND",
	AS:                  "AS",
	ASC:                 "ASC",
	BETWEEN:             "BETWEEN",
	BINARY:              "BINARY",
	BY:                  "BY",
	CASE:                "CASE",
	CAST:                "CAST",
	CROSS:               "CROSS",
	CURRENT_DATE:        "CURRENT_DATE",
	CURRENT_TIME:        "CURRENT_TIME",
	CURRENT_TIMESTAMP:   "CURRENT_TIMESTAMP",
	DEFAULT:             "DEFAULT",
	DELAYED:             "DELAYED",
	DESC:                "DESC",
	DISTINCT:            "DISTINCT",
	DISTINCTROW:         "DISTINCTROW",
	DIV:                 "DIV",
	DUPLICATE:           "DUPLICATE",
	ELSE:                "ELSE",
	END:                 "END",
	ESCAPE:              "ESCAPE",
	EXISTS:              "EXISTS",
	FALSE:               "FALSE",
	FOR:                 "FOR",
	FORCE:               "FORCE",
	FROM:                "FROM",
	GROUP:               "GROUP",
	HAVING:              "HAVING",
	HIGH_PRIORITY:       "HIGH_PRIORITY",
	IF:                  "IF",
	IGNORE:              "IGNORE",
	IN:                  "IN",
	INDEX:               "INDEX",
	INNER:               "INNER",
	INSERT:              "INSERT",
	INTERVAL:            "INTERVAL",
	INTO:                "INTO",
	IS:                  "IS",
	JOIN:                "JOIN",
	KEY:                 "KEY",
	LEFT:                "LEFT",
	LIKE:                "LIKE",
	LIMIT:               "LIMIT",
	LOCK:                "LOCK",
	LOW_PRIORITY:        "LOW_PRIORITY",
	MOD:                 "MOD",
	MODE:                "MODE",
	NATURAL:             "NATURAL",
	NOT:                 "NOT",
	NOWAIT:              "NOWAIT",
	NULL:                "NULL",
	OFFSET:              "OFFSET",
	ON:                  "ON",
	OR:                  "OR",
	ORDER:               "ORDER",
	OUTER:               "OUTER",
	REGEXP:              "REGEXP",
	REPLACE:             "REPLACE",
	RIGHT:               "RIGHT",
	RLIKE:               "RLIKE",
	ROLLUP:              "ROLLUP",
	SELECT:              "SELECT",
	SET:                 "SET",
	SHARE:               "SHARE",
	SQL_CALC_FOUND_ROWS: "SQL_CALC_FOUND_ROWS",
	STRAIGHT_JOIN:       "STRAIGHT_JOIN",
	THEN:                "THEN",
	TRUE:                "TRUE",
	UNION:               "UNION",
	UNKNOWN:             "UNKNOWN",
	UPDATE:              "UPDATE",
	USE:                 "USE",
	USING:               "USING",
	VALUE:               "VALUE",
	VALUES:              "VALUES",
	WAIT:                "WAIT",
	WHEN:                "WHEN",
	WHERE:               "WHERE",
	WITH:                "WITH",
	XOR:                 "XOR",
}

func (tok Token) String() string {
	if tok >= 0 && int(tok) < len(tokens) {
		return tokens[tok]
	}
	return ""
}

// keywords maps every keyword spelling either dialect knows to its token.
// Which of them a dialect actually reserves is decided by its Table.
var keywords map[string]Token

func init() {
	keywords = make(map[string]Token)
	for i := keyword_beg + 1; i < keyword_end; i++ {
		keywords[tokens[i]] = i
	}
}

// Keyword returns the keyword token spelled by the uppercase word.
func Keyword(word string) (Token, bool) {
	tok, ok := keywords[word]
	return tok, ok
}

// IsKeyword returns true if the token is a keyword.
func (tok Token) IsKeyword() bool {
	return tok > keyword_beg && tok < keyword_end
}

// IsLiteral returns true for tokens that carry a literal value.
func (tok Token) IsLiteral() bool {
	return tok >= STRING && tok <= BIT
}

// Position represents a source position.
type Position struct {
	Offset int // byte offset
	Line   int // line number (1-based)
	Column int // column number (1-based)
}

// IsValid reports whether the position was set by the lexer.
func (p Position) IsValid() bool {
	return p.Line > 0
}
