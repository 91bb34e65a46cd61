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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foskdb/fosk/errs"
)

func toks(t *testing.T, sql string) []Token {
	tokens, err := Tokenize(sql)
	require.NoError(t, err)
	return tokens
}

func TestTokenizeKeywordsAndIdents(t *testing.T) {
	tokens := toks(t, "SELECT id, city FROM People WHERE age > 30")
	var types []TokenType
	for _, tk := range tokens {
		types = append(types, tk.Type)
	}
	require.Equal(t, []TokenType{
		KeywordToken, IdentToken, CommaToken, IdentToken, KeywordToken,
		IdentToken, KeywordToken, IdentToken, OpToken, IntToken, EOFToken,
	}, types)
}

func TestTokenizeQualifiedIdentifier(t *testing.T) {
	tokens := toks(t, "o.id")
	require.Equal(t, []Token{
		{IdentToken, "o", 0},
		{DotToken, ".", 1},
		{IdentToken, "id", 2},
		{EOFToken, "", 4},
	}, tokens)
}

func TestTokenizeStringLiteralWithEscape(t *testing.T) {
	tokens := toks(t, "'it''s'")
	require.Equal(t, StringToken, tokens[0].Type)
	require.Equal(t, "it's", tokens[0].Value)
}

func TestTokenizeUnterminatedStringFails(t *testing.T) {
	_, err := Tokenize("'oops")
	require.Error(t, err)
	require.True(t, errs.LexError.Is(err))
}

func TestTokenizeNumbers(t *testing.T) {
	tokens := toks(t, "12 12.45 .5")
	require.Equal(t, IntToken, tokens[0].Type)
	require.Equal(t, FloatToken, tokens[1].Type)
	// A bare leading dot is the field-access separator, not a number.
	require.Equal(t, DotToken, tokens[2].Type)
}

func TestTokenizeOperators(t *testing.T) {
	tokens := toks(t, "= <> != < <= > >= + - * / %")
	var vals []string
	for _, tk := range tokens {
		if tk.Type == OpToken {
			vals = append(vals, tk.Value)
		}
	}
	require.Equal(t, []string{"=", "<>", "!=", "<", "<=", ">", ">=", "+", "-", "*", "/", "%"}, vals)
}

func TestTokenizeParamPlaceholder(t *testing.T) {
	tokens := toks(t, "WHERE city IN (?)")
	require.Equal(t, ParamToken, tokens[len(tokens)-3].Type)
}

func TestTokenizeUnrecognizedCharacter(t *testing.T) {
	_, err := Tokenize("SELECT $")
	require.Error(t, err)
	require.True(t, errs.LexError.Is(err))
}
