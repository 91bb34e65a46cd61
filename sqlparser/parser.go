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

// Package sqlparser implements the recursive-descent parser of §4.2: it
// consumes the token stream produced by sqltoken into a sqlast.Select.
// Function names (parsePrimary, parseUnary, parseMul, ...) and the overall
// precedence-climbing shape follow the style observed in the pack's own
// recursive-descent SQL parsers.
package sqlparser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/foskdb/fosk/errs"
	"github.com/foskdb/fosk/sqlast"
	"github.com/foskdb/fosk/sqltoken"
)

// Parse tokenizes and parses sql as a single SELECT statement.
func Parse(sql string) (*sqlast.Select, error) {
	tokens, err := sqltoken.Tokenize(sql)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	stmt, err := p.parseSelect()
	if err != nil {
		return nil, err
	}
	if !p.at(sqltoken.EOFToken) {
		return nil, p.errorf("unexpected trailing input %q", p.cur().Value)
	}
	return stmt, nil
}

type parser struct {
	tokens  []sqltoken.Token
	pos     int
	nParams int
}

func (p *parser) cur() sqltoken.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *parser) at(t sqltoken.TokenType) bool {
	return p.cur().Type == t
}

func (p *parser) atKeyword(kw string) bool {
	return p.cur().Type == sqltoken.KeywordToken && p.cur().Value == kw
}

func (p *parser) advance() sqltoken.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return errs.ParseError.New(p.cur().Offset, fmt.Sprintf(format, args...))
}

func (p *parser) expectKeyword(kw string) error {
	if !p.atKeyword(kw) {
		return p.errorf("expected %s, found %q", kw, p.cur().Value)
	}
	p.advance()
	return nil
}

func (p *parser) expect(t sqltoken.TokenType) (sqltoken.Token, error) {
	if !p.at(t) {
		return sqltoken.Token{}, p.errorf("expected %s, found %q", t, p.cur().Value)
	}
	return p.advance(), nil
}

func (p *parser) tryKeyword(kw string) bool {
	if p.atKeyword(kw) {
		p.advance()
		return true
	}
	return false
}

// parseSelect implements the `select` production of §4.2's grammar.
func (p *parser) parseSelect() (*sqlast.Select, error) {
	if err := p.expectKeyword("SELECT"); err != nil {
		return nil, err
	}

	stmt := &sqlast.Select{}
	if p.tryKeyword("DISTINCT") {
		stmt.Distinct = true
	}

	projections, err := p.parseProjectionList()
	if err != nil {
		return nil, err
	}
	stmt.Projections = projections

	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	from, err := p.parseFromItem()
	if err != nil {
		return nil, err
	}
	stmt.From = from

	joins, err := p.parseJoinChain()
	if err != nil {
		return nil, err
	}
	stmt.Joins = joins

	if p.tryKeyword("WHERE") {
		where, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}

	if p.atKeyword("GROUP") {
		p.advance()
		if err := p.expectKeyword("BY"); err != nil {
			return nil, err
		}
		groupBy, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		stmt.GroupBy = groupBy
	}

	if p.tryKeyword("HAVING") {
		having, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Having = having
	}

	if p.atKeyword("ORDER") {
		p.advance()
		if err := p.expectKeyword("BY"); err != nil {
			return nil, err
		}
		orderBy, err := p.parseOrderList()
		if err != nil {
			return nil, err
		}
		stmt.OrderBy = orderBy
	}

	if p.tryKeyword("LIMIT") {
		n, err := p.parseIntLiteralValue()
		if err != nil {
			return nil, err
		}
		stmt.Limit = &n
	}

	if p.tryKeyword("OFFSET") {
		n, err := p.parseIntLiteralValue()
		if err != nil {
			return nil, err
		}
		stmt.Offset = &n
	}

	return stmt, nil
}

func (p *parser) parseIntLiteralValue() (int64, error) {
	tok, err := p.expect(sqltoken.IntToken)
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.ParseInt(tok.Value, 10, 64)
	if convErr != nil {
		return 0, p.errorf("invalid integer literal %q", tok.Value)
	}
	return n, nil
}

// parseProjectionList implements `proj_list := proj (',' proj)*`.
func (p *parser) parseProjectionList() ([]sqlast.Projection, error) {
	var projections []sqlast.Projection
	for {
		proj, err := p.parseProjection()
		if err != nil {
			return nil, err
		}
		projections = append(projections, proj)
		if p.at(sqltoken.CommaToken) {
			p.advance()
			continue
		}
		break
	}
	return projections, nil
}

// parseProjection implements `proj := expr [AS ident] | '*' | ident '.' '*'`.
func (p *parser) parseProjection() (sqlast.Projection, error) {
	if p.at(sqltoken.OpToken) && p.cur().Value == "*" {
		p.advance()
		return sqlast.Projection{Star: true}, nil
	}

	if p.at(sqltoken.IdentToken) && p.peekIsDotStar() {
		alias := p.advance().Value // identifier
		p.advance()                // dot
		p.advance()                // star
		return sqlast.Projection{Star: true, StarAlias: alias}, nil
	}

	expr, err := p.parseExpr()
	if err != nil {
		return sqlast.Projection{}, err
	}

	proj := sqlast.Projection{Expr: expr}
	if p.tryKeyword("AS") {
		name, err := p.expect(sqltoken.IdentToken)
		if err != nil {
			return sqlast.Projection{}, err
		}
		proj.OutputName = name.Value
	}
	return proj, nil
}

// peekIsDotStar reports whether the upcoming tokens are IDENT '.' '*',
// without consuming them.
func (p *parser) peekIsDotStar() bool {
	if p.pos+2 >= len(p.tokens) {
		return false
	}
	dot := p.tokens[p.pos+1]
	star := p.tokens[p.pos+2]
	return dot.Type == sqltoken.DotToken && star.Type == sqltoken.OpToken && star.Value == "*"
}

// parseFromItem implements `from_item := collection_name [[AS] alias]`.
func (p *parser) parseFromItem() (sqlast.FromItem, error) {
	name, err := p.expect(sqltoken.IdentToken)
	if err != nil {
		return sqlast.FromItem{}, err
	}
	item := sqlast.FromItem{Collection: name.Value, Alias: name.Value}

	if p.tryKeyword("AS") {
		alias, err := p.expect(sqltoken.IdentToken)
		if err != nil {
			return sqlast.FromItem{}, err
		}
		item.Alias = alias.Value
		return item, nil
	}
	// A bare trailing identifier (not a reserved keyword that starts a
	// later clause) is an implicit alias.
	if p.at(sqltoken.IdentToken) {
		alias := p.advance()
		item.Alias = alias.Value
	}
	return item, nil
}

// parseJoinChain implements `from_chain := from_item (join_clause)*`.
func (p *parser) parseJoinChain() ([]sqlast.Join, error) {
	var joins []sqlast.Join
	for {
		kind, ok, err := p.tryJoinKind()
		if err != nil {
			return nil, err
		}
		if !ok {
			return joins, nil
		}
		if err := p.expectKeyword("JOIN"); err != nil {
			return nil, err
		}
		right, err := p.parseFromItem()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("ON"); err != nil {
			return nil, err
		}
		on, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		joins = append(joins, sqlast.Join{Kind: kind, Right: right, On: on})
	}
}

// tryJoinKind implements the optional join-mode prefix of `join_clause`.
func (p *parser) tryJoinKind() (sqlast.JoinKind, bool, error) {
	switch {
	case p.atKeyword("JOIN"):
		return sqlast.InnerJoin, true, nil
	case p.atKeyword("INNER"):
		p.advance()
		return sqlast.InnerJoin, true, nil
	case p.atKeyword("LEFT"):
		p.advance()
		p.tryKeyword("OUTER")
		return sqlast.LeftJoin, true, nil
	case p.atKeyword("RIGHT"):
		p.advance()
		p.tryKeyword("OUTER")
		return sqlast.RightJoin, true, nil
	case p.atKeyword("FULL"):
		p.advance()
		p.tryKeyword("OUTER")
		return sqlast.FullJoin, true, nil
	default:
		return 0, false, nil
	}
}

func (p *parser) parseExprList() ([]sqlast.Expr, error) {
	var exprs []sqlast.Expr
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if p.at(sqltoken.CommaToken) {
			p.advance()
			continue
		}
		return exprs, nil
	}
}

// parseOrderList implements `order_list := order_item (',' order_item)*`.
func (p *parser) parseOrderList() ([]sqlast.OrderKey, error) {
	var keys []sqlast.OrderKey
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		key := sqlast.OrderKey{Expr: e}
		if p.tryKeyword("DESC") {
			key.Desc = true
		} else {
			p.tryKeyword("ASC")
		}
		keys = append(keys, key)
		if p.at(sqltoken.CommaToken) {
			p.advance()
			continue
		}
		return keys, nil
	}
}

// --- expr := or_expr ---

func (p *parser) parseExpr() (sqlast.Expr, error) {
	return p.parseOr()
}

// or_expr := and_expr (OR and_expr)*
func (p *parser) parseOr() (sqlast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.atKeyword("OR") {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &sqlast.BinaryExpr{Op: "OR", Left: left, Right: right}
	}
	return left, nil
}

// and_expr := not_expr (AND not_expr)*
func (p *parser) parseAnd() (sqlast.Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.atKeyword("AND") {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &sqlast.BinaryExpr{Op: "AND", Left: left, Right: right}
	}
	return left, nil
}

// not_expr := [NOT] cmp
func (p *parser) parseNot() (sqlast.Expr, error) {
	if p.tryKeyword("NOT") {
		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &sqlast.UnaryExpr{Op: "NOT", Expr: inner}, nil
	}
	return p.parseComparison()
}

// cmp := add (('=' | '<>' | '!=' | '<' | '<=' | '>' | '>=' | IN '(' expr_list ')' | IS [NOT] NULL) add?)?
func (p *parser) parseComparison() (sqlast.Expr, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}

	switch {
	case p.at(sqltoken.OpToken) && isCmpOp(p.cur().Value):
		op := p.advance().Value
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		return &sqlast.BinaryExpr{Op: op, Left: left, Right: right}, nil

	case p.atKeyword("IN"):
		p.advance()
		if _, err := p.expect(sqltoken.LParenToken); err != nil {
			return nil, err
		}
		list, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(sqltoken.RParenToken); err != nil {
			return nil, err
		}
		return &sqlast.InExpr{Expr: left, List: list}, nil

	case p.atKeyword("IS"):
		p.advance()
		not := p.tryKeyword("NOT")
		if err := p.expectKeyword("NULL"); err != nil {
			return nil, err
		}
		return &sqlast.IsNullExpr{Expr: left, Not: not}, nil
	}

	return left, nil
}

func isCmpOp(op string) bool {
	switch op {
	case "=", "<>", "!=", "<", "<=", ">", ">=":
		return true
	default:
		return false
	}
}

// add := mul (('+' | '-') mul)*
func (p *parser) parseAdd() (sqlast.Expr, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.at(sqltoken.OpToken) && (p.cur().Value == "+" || p.cur().Value == "-") {
		op := p.advance().Value
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = &sqlast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// mul := unary (('*' | '/' | '%') unary)*
func (p *parser) parseMul() (sqlast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(sqltoken.OpToken) && (p.cur().Value == "*" || p.cur().Value == "/" || p.cur().Value == "%") {
		op := p.advance().Value
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &sqlast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// unary := ['-'] primary
func (p *parser) parseUnary() (sqlast.Expr, error) {
	if p.at(sqltoken.OpToken) && p.cur().Value == "-" {
		p.advance()
		inner, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &sqlast.UnaryExpr{Op: "-", Expr: inner}, nil
	}
	return p.parsePrimary()
}

// primary := literal | '?' | ident ['(' [DISTINCT] expr_list ')'] | '(' expr ')'
func (p *parser) parsePrimary() (sqlast.Expr, error) {
	tok := p.cur()
	switch tok.Type {
	case sqltoken.IntToken:
		p.advance()
		n, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, p.errorf("invalid integer literal %q", tok.Value)
		}
		return &sqlast.Literal{Value: n}, nil

	case sqltoken.FloatToken:
		p.advance()
		f, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, p.errorf("invalid float literal %q", tok.Value)
		}
		return &sqlast.Literal{Value: f}, nil

	case sqltoken.StringToken:
		p.advance()
		return &sqlast.Literal{Value: tok.Value}, nil

	case sqltoken.ParamToken:
		p.advance()
		idx := p.nParams
		p.nParams++
		return &sqlast.Param{Index: idx}, nil

	case sqltoken.LParenToken:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(sqltoken.RParenToken); err != nil {
			return nil, err
		}
		return inner, nil

	case sqltoken.KeywordToken:
		switch tok.Value {
		case "TRUE":
			p.advance()
			return &sqlast.Literal{Value: true}, nil
		case "FALSE":
			p.advance()
			return &sqlast.Literal{Value: false}, nil
		case "NULL":
			p.advance()
			return &sqlast.Literal{Value: nil}, nil
		case "COUNT", "SUM", "AVG", "MIN", "MAX":
			return p.parseAggregate()
		}
		return nil, p.errorf("unexpected keyword %q", tok.Value)

	case sqltoken.IdentToken:
		return p.parseIdentifierOrCall()

	default:
		return nil, p.errorf("unexpected token %q", tok.Value)
	}
}

func (p *parser) parseAggregate() (sqlast.Expr, error) {
	fn := strings.ToUpper(p.advance().Value)
	if _, err := p.expect(sqltoken.LParenToken); err != nil {
		return nil, err
	}

	agg := &sqlast.AggExpr{Func: fn}
	if p.tryKeyword("DISTINCT") {
		agg.Distinct = true
	}
	if fn == "COUNT" && p.at(sqltoken.OpToken) && p.cur().Value == "*" {
		p.advance()
		agg.Star = true
	} else {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		agg.Arg = arg
	}
	if _, err := p.expect(sqltoken.RParenToken); err != nil {
		return nil, err
	}
	return agg, nil
}

// parseIdentifierOrCall parses a bare or dotted identifier. A '(' after the
// identifier is not consumed here, so a non-aggregate call such as f(x)
// fails with a ParseError at that token.
func (p *parser) parseIdentifierOrCall() (sqlast.Expr, error) {
	name := p.advance().Value
	if p.at(sqltoken.DotToken) {
		p.advance()
		field, err := p.expect(sqltoken.IdentToken)
		if err != nil {
			return nil, err
		}
		return &sqlast.Identifier{Qualifier: name, Name: field.Value}, nil
	}
	return &sqlast.Identifier{Name: name}, nil
}
