// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sqltoken

import (
	"strings"
	"unicode"

	"github.com/foskdb/fosk/errs"
)

// Tokenize splits sql into a token sequence, failing with errs.LexError on
// an unterminated string or an unrecognized character (§4.1).
func Tokenize(sql string) ([]Token, error) {
	l := &lexer{src: sql}
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOFToken {
			return tokens, nil
		}
	}
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) next() (Token, error) {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.src) {
		return Token{Type: EOFToken, Offset: start}, nil
	}

	c := l.src[l.pos]
	switch {
	case c == '(':
		l.pos++
		return Token{Type: LParenToken, Value: "(", Offset: start}, nil
	case c == ')':
		l.pos++
		return Token{Type: RParenToken, Value: ")", Offset: start}, nil
	case c == ',':
		l.pos++
		return Token{Type: CommaToken, Value: ",", Offset: start}, nil
	case c == '.':
		// A dot between two digits is a decimal point, handled by
		// lexNumber; a bare dot is the qualified-identifier separator.
		l.pos++
		return Token{Type: DotToken, Value: ".", Offset: start}, nil
	case c == '?':
		l.pos++
		return Token{Type: ParamToken, Value: "?", Offset: start}, nil
	case c == '\'':
		return l.lexString(start)
	case unicode.IsDigit(rune(c)):
		return l.lexNumber(start)
	case isIdentStart(c):
		return l.lexIdentOrKeyword(start)
	case isOpChar(c):
		return l.lexOp(start)
	default:
		return Token{}, errs.LexError.New(start, "unrecognized character "+string(c))
	}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) && unicode.IsSpace(rune(l.src[l.pos])) {
		l.pos++
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c))
}

func isIdentPart(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))
}

func isOpChar(c byte) bool {
	switch c {
	case '=', '<', '>', '!', '+', '-', '*', '/', '%':
		return true
	default:
		return false
	}
}

func (l *lexer) lexIdentOrKeyword(start int) (Token, error) {
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	word := l.src[start:l.pos]
	if Keywords[strings.ToUpper(word)] {
		return Token{Type: KeywordToken, Value: strings.ToUpper(word), Offset: start}, nil
	}
	return Token{Type: IdentToken, Value: word, Offset: start}, nil
}

func (l *lexer) lexNumber(start int) (Token, error) {
	for l.pos < len(l.src) && unicode.IsDigit(rune(l.src[l.pos])) {
		l.pos++
	}
	isFloat := false
	if l.pos < len(l.src) && l.src[l.pos] == '.' && l.pos+1 < len(l.src) && unicode.IsDigit(rune(l.src[l.pos+1])) {
		isFloat = true
		l.pos++
		for l.pos < len(l.src) && unicode.IsDigit(rune(l.src[l.pos])) {
			l.pos++
		}
	}
	val := l.src[start:l.pos]
	if isFloat {
		return Token{Type: FloatToken, Value: val, Offset: start}, nil
	}
	return Token{Type: IntToken, Value: val, Offset: start}, nil
}

func (l *lexer) lexString(start int) (Token, error) {
	l.pos++ // consume opening quote
	var sb strings.Builder
	for {
		if l.pos >= len(l.src) {
			return Token{}, errs.LexError.New(start, "unterminated string literal")
		}
		c := l.src[l.pos]
		if c == '\'' {
			// '' escapes to a literal single quote.
			if l.pos+1 < len(l.src) && l.src[l.pos+1] == '\'' {
				sb.WriteByte('\'')
				l.pos += 2
				continue
			}
			l.pos++
			return Token{Type: StringToken, Value: sb.String(), Offset: start}, nil
		}
		sb.WriteByte(c)
		l.pos++
	}
}

func (l *lexer) lexOp(start int) (Token, error) {
	two := ""
	if l.pos+1 < len(l.src) {
		two = l.src[l.pos : l.pos+2]
	}
	switch two {
	case "<>", "!=", "<=", ">=":
		l.pos += 2
		return Token{Type: OpToken, Value: two, Offset: start}, nil
	}
	c := l.src[l.pos]
	l.pos++
	return Token{Type: OpToken, Value: string(c), Offset: start}, nil
}
