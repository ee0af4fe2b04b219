package jit

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// tableParser walks the lexer token stream looking for `.name(:pseudo)* {body}`.
// One token of lookahead is enough: a rule that fails to match hands its
// offending token back so it can start the next candidate.
type tableParser struct {
	lexer *css.Lexer
	table StyleTable

	peeked    bool
	peekType  css.TokenType
	peekBytes []byte
}

// ParseStyleTable indexes every `.class{...}` rule in css by its bare,
// unescaped class name. Pseudo-class suffixes on the selector are skipped,
// malformed rules are ignored and later duplicates overwrite earlier ones.
// It never fails: garbage input simply yields a smaller (or empty) table.
func ParseStyleTable(content string) StyleTable {
	p := &tableParser{
		lexer: css.NewLexer(parse.NewInputString(content)),
		table: make(StyleTable),
	}

	for {
		tt, text := p.next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal
			break
		}

		switch {
		case tt == css.DelimToken && len(text) > 0 && text[0] == '.':
			nt, name := p.next()
			if nt != css.IdentToken {
				p.unread(nt, name)
				continue
			}
			p.handleRule(string(name))

		case (tt == css.NumberToken || tt == css.DimensionToken) && len(text) > 1 && text[0] == '.':
			// ".2xl" lexes as a dimension; the class name is everything after the dot
			p.handleRule(string(text[1:]))
		}
	}

	return p.table
}

func (p *tableParser) next() (css.TokenType, []byte) {
	if p.peeked {
		p.peeked = false
		return p.peekType, p.peekBytes
	}
	return p.lexer.Next()
}

func (p *tableParser) unread(tt css.TokenType, text []byte) {
	p.peeked = true
	p.peekType = tt
	p.peekBytes = text
}

// handleRule consumes the rest of a selector after its class name and,
// when a declaration block follows, records it
func (p *tableParser) handleRule(rawName string) {
	for {
		tt, text := p.next()

		switch tt {
		case css.ColonToken:
			// Pseudo-class suffix (":hover"), ignored for indexing
			nt, ntext := p.next()
			if nt != css.IdentToken {
				p.unread(nt, ntext)
				return
			}

		case css.WhitespaceToken:
			// Whitespace is only allowed right before the opening brace
			nt, ntext := p.next()
			if nt != css.LeftBraceToken {
				p.unread(nt, ntext)
				return
			}
			p.handleBody(rawName)
			return

		case css.LeftBraceToken:
			p.handleBody(rawName)
			return

		default:
			p.unread(tt, text)
			return
		}
	}
}

// handleBody collects the raw declaration text up to the first closing brace
func (p *tableParser) handleBody(rawName string) {
	var body strings.Builder

	for {
		tt, text := p.next()
		if tt == css.ErrorToken {
			// Unterminated block
			return
		}
		if tt == css.RightBraceToken {
			break
		}
		body.Write(text)
	}

	if body.Len() == 0 {
		return
	}

	p.table[UnescapeClassName(rawName)] = body.String()
}
