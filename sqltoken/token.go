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

// Package sqltoken implements the tokenizer of §4.1: it splits SQL text
// into a sequence of tagged lexemes with source offsets. Token type names
// follow the vocabulary used by the teacher pack's own SQL lexer tests
// (KeywordToken, IdentToken, IntToken, FloatToken, StringToken,
// OpToken, DotToken, CommaToken, EOFToken, ErrorToken).
package sqltoken

// TokenType tags one lexeme class.
type TokenType int

const (
	EOFToken TokenType = iota
	ErrorToken
	KeywordToken
	IdentToken
	IntToken
	FloatToken
	StringToken
	OpToken
	LParenToken
	RParenToken
	CommaToken
	DotToken
	ParamToken
)

func (t TokenType) String() string {
	switch t {
	case EOFToken:
		return "EOF"
	case ErrorToken:
		return "ERROR"
	case KeywordToken:
		return "KEYWORD"
	case IdentToken:
		return "IDENT"
	case IntToken:
		return "INT"
	case FloatToken:
		return "FLOAT"
	case StringToken:
		return "STRING"
	case OpToken:
		return "OP"
	case LParenToken:
		return "LPAREN"
	case RParenToken:
		return "RPAREN"
	case CommaToken:
		return "COMMA"
	case DotToken:
		return "DOT"
	case ParamToken:
		return "PARAM"
	default:
		return "UNKNOWN"
	}
}

// Token is one lexeme: its class, literal text, and source byte offset.
type Token struct {
	Type   TokenType
	Value  string
	Offset int
}

// Keywords is the case-insensitive keyword vocabulary of §4.1.
var Keywords = map[string]bool{
	"SELECT": true, "FROM": true, "WHERE": true, "GROUP": true, "BY": true,
	"HAVING": true, "ORDER": true, "ASC": true, "DESC": true, "LIMIT": true,
	"OFFSET": true, "JOIN": true, "INNER": true, "LEFT": true, "RIGHT": true,
	"FULL": true, "OUTER": true, "ON": true, "AS": true, "AND": true,
	"OR": true, "NOT": true, "IN": true, "IS": true, "NULL": true,
	"TRUE": true, "FALSE": true, "DISTINCT": true, "COUNT": true,
	"SUM": true, "AVG": true, "MIN": true, "MAX": true,
}
