package parser

import (
	"github.com/sqlc-dev/obsql/ast"
	"github.com/sqlc-dev/obsql/lexer"
	"github.com/sqlc-dev/obsql/token"
)

// parseHint turns a hint comment into an ast.Hint. The body is scanned
// again without keywords and read as a list of name or name(args) items,
// optionally separated by commas. Bodies of any other shape keep only their
// text.
func parseHint(it lexer.Item) *ast.Hint {
	h := &ast.Hint{Position: it.Pos, Text: it.Value}
	items, err := lexer.Tokenize(it.Value, lexer.Config{})
	if err != nil {
		return h
	}
	h.Items = parseHintItems(items)
	return h
}

func parseHintItems(items []lexer.Item) []*ast.HintItem {
	var out []*ast.HintItem
	i := 0
	for items[i].Token != token.EOF {
		if items[i].Token == token.COMMA {
			i++
			continue
		}
		if items[i].Token != token.IDENT {
			return nil
		}
		hi := &ast.HintItem{Name: items[i].Value}
		i++
		if items[i].Token == token.LPAREN {
			i++
			for items[i].Token != token.RPAREN {
				switch items[i].Token {
				case token.EOF, token.LPAREN:
					return nil
				case token.COMMA:
				default:
					hi.Args = append(hi.Args, items[i].Value)
				}
				i++
			}
			i++
		}
		out = append(out, hi)
	}
	return out
}
