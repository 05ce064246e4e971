// Package lexer implements a lexer for MySQL-compatible SQL.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sqlc-dev/obsql/token"
)

// Config selects the dialect-specific behavior of a Lexer.
type Config struct {
	// Keywords classifies identifier-shaped words. A nil table makes every
	// word an identifier.
	Keywords *token.Table

	// HintComments makes /*+ ... */ comments come out as token.HINT items
	// instead of being discarded.
	HintComments bool
}

// Item represents a lexical token with its value and position.
type Item struct {
	Token token.Token
	Value string // decoded text: identifier name, unescaped string, hint body
	Raw   string // exact source text
	Pos   token.Position
	End   token.Position
	Quote rune // quote character for strings and quoted identifiers
}

// Lexer tokenizes SQL input. It is lazy: each call to NextToken scans one
// more token.
type Lexer struct {
	src  string
	cfg  Config
	ch   rune // current character
	size int  // width of ch in bytes, 0 at end of input
	pos  token.Position
	last token.Token
}

// New creates a new Lexer over src.
func New(src string, cfg Config) *Lexer {
	l := &Lexer{src: src, cfg: cfg}
	l.Reset()
	return l
}

// Reset rewinds the lexer to the start of its input.
func (l *Lexer) Reset() {
	l.pos = token.Position{Offset: 0, Line: 1, Column: 1}
	l.last = token.ILLEGAL
	l.decode()
}

func (l *Lexer) decode() {
	if l.pos.Offset >= len(l.src) {
		l.ch, l.size = 0, 0
		return
	}
	l.ch, l.size = utf8.DecodeRuneInString(l.src[l.pos.Offset:])
}

func (l *Lexer) readChar() {
	if l.size == 0 {
		return
	}
	if l.ch == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	l.pos.Offset += l.size
	l.decode()
}

// text returns the source bytes of the current character. Bytes that are
// not valid UTF-8 come back unchanged.
func (l *Lexer) text() string {
	return l.src[l.pos.Offset : l.pos.Offset+l.size]
}

func (l *Lexer) eof() bool {
	return l.size == 0
}

// peekAt returns the character n positions after the current one.
func (l *Lexer) peekAt(n int) rune {
	off, size := l.pos.Offset, l.size
	var r rune
	for i := 0; i < n; i++ {
		off += size
		if off >= len(l.src) {
			return 0
		}
		r, size = utf8.DecodeRuneInString(l.src[off:])
	}
	return r
}

func (l *Lexer) peekChar() rune {
	return l.peekAt(1)
}

func (l *Lexer) skipWhitespace() {
	// Skip whitespace and BOM (byte order mark U+FEFF)
	for !l.eof() && (unicode.IsSpace(l.ch) || l.ch == '\uFEFF') {
		l.readChar()
	}
}

func (l *Lexer) item(tok token.Token, pos token.Position) Item {
	raw := l.src[pos.Offset:l.pos.Offset]
	return Item{Token: tok, Value: raw, Raw: raw, Pos: pos, End: l.pos}
}

func (l *Lexer) emit(it Item) (Item, error) {
	l.last = it.Token
	return it, nil
}

// NextToken returns the next token from the input. Once the input is
// exhausted it keeps returning token.EOF.
func (l *Lexer) NextToken() (Item, error) {
	for {
		l.skipWhitespace()
		if l.eof() {
			return l.emit(Item{Token: token.EOF, Pos: l.pos, End: l.pos})
		}

		// MySQL only treats -- as a comment when followed by whitespace.
		if l.ch == '-' && l.peekChar() == '-' && isCommentSpace(l.peekAt(2)) {
			l.skipLineComment()
			continue
		}
		if l.ch == '#' {
			l.skipLineComment()
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			it, keep, err := l.readBlockComment()
			if err != nil {
				return Item{}, err
			}
			if !keep {
				continue
			}
			return l.emit(it)
		}

		it, err := l.readToken()
		if err != nil {
			return Item{}, err
		}
		return l.emit(it)
	}
}

func (l *Lexer) readToken() (Item, error) {
	pos := l.pos
	ch := l.ch

	switch {
	case ch == '\'' || ch == '"':
		return l.readString(ch)
	case ch == '`':
		return l.readBacktickIdentifier()
	case (ch == 'x' || ch == 'X') && l.peekChar() == '\'':
		return l.readQuotedNumber(token.HEX, isHexDigit)
	case (ch == 'b' || ch == 'B') && l.peekChar() == '\'':
		return l.readQuotedNumber(token.BIT, isBitDigit)
	case isDigit(ch):
		return l.readNumberOrIdent(), nil
	case ch == '.' && isDigit(l.peekChar()) && !l.afterName():
		return l.readNumber(pos), nil
	case isIdentStart(ch):
		return l.readIdentifier(), nil
	case ch == '@':
		return l.readVariable()
	}

	l.readChar()
	switch ch {
	case '?':
		return l.item(token.PARAM, pos), nil
	case '+':
		return l.item(token.PLUS, pos), nil
	case '-':
		return l.item(token.MINUS, pos), nil
	case '*':
		return l.item(token.ASTERISK, pos), nil
	case '/':
		return l.item(token.SLASH, pos), nil
	case '%':
		return l.item(token.PERCENT, pos), nil
	case '^':
		return l.item(token.CARET, pos), nil
	case '~':
		return l.item(token.TILDE, pos), nil
	case '(':
		return l.item(token.LPAREN, pos), nil
	case ')':
		return l.item(token.RPAREN, pos), nil
	case ',':
		return l.item(token.COMMA, pos), nil
	case '.':
		return l.item(token.DOT, pos), nil
	case ';':
		return l.item(token.SEMICOLON, pos), nil
	case '=':
		return l.item(token.EQ, pos), nil
	case '!':
		if l.ch == '=' {
			l.readChar()
			return l.item(token.NEQ, pos), nil
		}
		return l.item(token.BANG, pos), nil
	case '<':
		switch {
		case l.ch == '=' && l.peekChar() == '>':
			l.readChar()
			l.readChar()
			return l.item(token.NULL_SAFE_EQ, pos), nil
		case l.ch == '=':
			l.readChar()
			return l.item(token.LTE, pos), nil
		case l.ch == '>':
			l.readChar()
			return l.item(token.NEQ, pos), nil
		case l.ch == '<':
			l.readChar()
			return l.item(token.SHL, pos), nil
		}
		return l.item(token.LT, pos), nil
	case '>':
		switch l.ch {
		case '=':
			l.readChar()
			return l.item(token.GTE, pos), nil
		case '>':
			l.readChar()
			return l.item(token.SHR, pos), nil
		}
		return l.item(token.GT, pos), nil
	case '&':
		if l.ch == '&' {
			l.readChar()
			return l.item(token.LOGICAL_AND, pos), nil
		}
		return l.item(token.AMPERSAND, pos), nil
	case '|':
		if l.ch == '|' {
			l.readChar()
			return l.item(token.LOGICAL_OR, pos), nil
		}
		return l.item(token.PIPE, pos), nil
	case ':':
		if l.ch == '=' {
			l.readChar()
			return l.item(token.ASSIGN, pos), nil
		}
	}
	return Item{}, &Error{Pos: pos, Char: ch}
}

// afterName reports whether the previous token can be followed by a
// qualifying dot, in which case ".5" is not a number.
func (l *Lexer) afterName() bool {
	return l.last == token.IDENT || l.last == token.QUOTED_IDENT || l.last == token.RPAREN
}

func isCommentSpace(ch rune) bool {
	return ch == 0 || unicode.IsSpace(ch)
}

func (l *Lexer) skipLineComment() {
	for !l.eof() && l.ch != '\n' {
		l.readChar()
	}
}

// readBlockComment scans /* ... */. It reports keep=true only for hint
// comments when the config asks for them.
func (l *Lexer) readBlockComment() (it Item, keep bool, err error) {
	pos := l.pos
	l.readChar() // /
	l.readChar() // *
	hint := l.cfg.HintComments && l.ch == '+'
	bodyStart := l.pos.Offset
	if hint {
		l.readChar()
		bodyStart = l.pos.Offset
	}
	for {
		if l.eof() {
			return Item{}, false, &Error{Pos: pos, Char: '/', Msg: "unterminated comment"}
		}
		if l.ch == '*' && l.peekChar() == '/' {
			bodyEnd := l.pos.Offset
			l.readChar()
			l.readChar()
			if !hint {
				return Item{}, false, nil
			}
			it = l.item(token.HINT, pos)
			it.Value = strings.TrimSpace(l.src[bodyStart:bodyEnd])
			return it, true, nil
		}
		l.readChar()
	}
}

// readString scans a single- or double-quoted string. A doubled quote of the
// delimiting kind stands for one quote; backslash escapes follow MySQL.
func (l *Lexer) readString(quote rune) (Item, error) {
	pos := l.pos
	l.readChar() // opening quote
	var sb strings.Builder
	for {
		if l.eof() {
			return Item{}, &Error{Pos: pos, Char: quote, Msg: "unterminated string"}
		}
		switch l.ch {
		case quote:
			if l.peekChar() == quote {
				sb.WriteRune(quote)
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			it := l.item(token.STRING, pos)
			it.Value = sb.String()
			it.Quote = quote
			return it, nil
		case '\\':
			l.readChar()
			if l.eof() {
				return Item{}, &Error{Pos: pos, Char: quote, Msg: "unterminated string"}
			}
			if esc, ok := unescape(l.ch); ok {
				sb.WriteString(esc)
			} else {
				sb.WriteString(l.text())
			}
			l.readChar()
		default:
			sb.WriteString(l.text())
			l.readChar()
		}
	}
}

// unescape maps the character after a backslash. ok is false when the
// character stands for itself.
func unescape(ch rune) (s string, ok bool) {
	switch ch {
	case '0':
		return "\x00", true
	case 'b':
		return "\b", true
	case 'n':
		return "\n", true
	case 'r':
		return "\r", true
	case 't':
		return "\t", true
	case 'Z':
		return "\x1a", true
	case '%', '_':
		// kept escaped so LIKE patterns still see them
		return "\\" + string(ch), true
	}
	return "", false
}

func (l *Lexer) readBacktickIdentifier() (Item, error) {
	pos := l.pos
	l.readChar() // opening `
	var sb strings.Builder
	for {
		if l.eof() {
			return Item{}, &Error{Pos: pos, Char: '`', Msg: "unterminated quoted identifier"}
		}
		if l.ch == '`' {
			if l.peekChar() == '`' {
				sb.WriteRune('`')
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			it := l.item(token.QUOTED_IDENT, pos)
			it.Value = sb.String()
			it.Quote = '`'
			return it, nil
		}
		sb.WriteString(l.text())
		l.readChar()
	}
}

// readQuotedNumber scans X'..' and B'..' literals.
func (l *Lexer) readQuotedNumber(tok token.Token, valid func(rune) bool) (Item, error) {
	pos := l.pos
	l.readChar() // X or B
	l.readChar() // '
	start := l.pos.Offset
	for !l.eof() && valid(l.ch) {
		l.readChar()
	}
	if l.ch != '\'' {
		return Item{}, &Error{Pos: l.pos, Char: l.ch, Msg: "malformed " + strings.ToLower(tok.String()) + " literal"}
	}
	digits := l.src[start:l.pos.Offset]
	l.readChar()
	it := l.item(tok, pos)
	it.Value = digits
	return it, nil
}

// readNumberOrIdent scans a numeric literal. MySQL allows identifiers that
// start with digits, so 1abc is an identifier.
func (l *Lexer) readNumberOrIdent() Item {
	pos := l.pos
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'b') {
		prefix := l.peekChar()
		valid := isHexDigit
		tok := token.HEX
		if prefix == 'b' {
			valid, tok = isBitDigit, token.BIT
		}
		if valid(l.peekAt(2)) {
			l.readChar()
			l.readChar()
			for !l.eof() && valid(l.ch) {
				l.readChar()
			}
			if !isIdentChar(l.ch) {
				it := l.item(tok, pos)
				it.Value = l.src[pos.Offset+2 : l.pos.Offset]
				return it
			}
			return l.finishIdentifier(pos)
		}
	}

	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' || l.isExponent() {
		return l.readNumber(pos)
	}
	if isIdentChar(l.ch) {
		return l.finishIdentifier(pos)
	}
	return l.item(token.INTEGER, pos)
}

// readNumber continues a number at a '.' or an exponent.
func (l *Lexer) readNumber(pos token.Position) Item {
	tok := token.INTEGER
	if l.ch == '.' {
		tok = token.DECIMAL
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.isExponent() {
		tok = token.FLOAT
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.item(tok, pos)
}

func (l *Lexer) isExponent() bool {
	if l.ch != 'e' && l.ch != 'E' {
		return false
	}
	next := l.peekChar()
	if next == '+' || next == '-' {
		return isDigit(l.peekAt(2))
	}
	return isDigit(next)
}

func (l *Lexer) readIdentifier() Item {
	return l.finishIdentifier(l.pos)
}

func (l *Lexer) finishIdentifier(pos token.Position) Item {
	for !l.eof() && isIdentChar(l.ch) {
		l.readChar()
	}
	it := l.item(token.IDENT, pos)
	if l.cfg.Keywords != nil {
		if tok, ok := l.cfg.Keywords.Lookup(it.Value); ok {
			it.Token = tok
		}
	}
	return it
}

// readVariable scans @user_var and @@system_var references.
func (l *Lexer) readVariable() (Item, error) {
	pos := l.pos
	l.readChar()
	system := l.ch == '@'
	if system {
		l.readChar()
	}
	start := l.pos.Offset
	for !l.eof() && (isIdentChar(l.ch) || (system && l.ch == '.')) {
		l.readChar()
	}
	if l.pos.Offset == start {
		return Item{}, &Error{Pos: l.pos, Char: l.ch, Msg: "missing variable name"}
	}
	return l.item(token.VARIABLE, pos), nil
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isBitDigit(ch rune) bool {
	return ch == '0' || ch == '1'
}

// Letters cover CJK and other scripts, so unquoted identifiers such as
// 净值 are accepted.
func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_' || ch == '$'
}

func isIdentChar(ch rune) bool {
	return isIdentStart(ch) || unicode.IsDigit(ch)
}

// Tokenize returns all tokens from src, ending with token.EOF.
func Tokenize(src string, cfg Config) ([]Item, error) {
	l := New(src, cfg)
	var items []Item
	for {
		it, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
		if it.Token == token.EOF {
			return items, nil
		}
	}
}
