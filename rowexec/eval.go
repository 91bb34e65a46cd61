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

package rowexec

import (
	"github.com/pkg/errors"

	"github.com/foskdb/fosk/errs"
	"github.com/foskdb/fosk/sqlast"
	"github.com/foskdb/fosk/value"
)

// Env is the evaluation context for one expression: the current row,
// positional query parameters, and — only while evaluating a projection,
// HAVING clause, or ORDER BY key downstream of a GROUP BY — the full set of
// member rows for the group Row belongs to, so that an AggExpr encountered
// anywhere in the tree can be computed on the spot (§4.5).
type Env struct {
	Row       Row
	Params    []interface{}
	GroupRows []Row
}

// Eval computes expr's scalar value against env.
func Eval(expr sqlast.Expr, env *Env) (interface{}, error) {
	switch e := expr.(type) {
	case *sqlast.Literal:
		return e.Value, nil

	case *sqlast.Param:
		if e.Index < 0 || e.Index >= len(env.Params) {
			return nil, errs.RuntimeError.New("missing value for parameter ?")
		}
		return env.Params[e.Index], nil

	case *sqlast.Identifier:
		return env.Row.Get(e.Qualifier, e.Name), nil

	case *sqlast.UnaryExpr:
		return evalUnary(e, env)

	case *sqlast.BinaryExpr:
		return evalBinary(e, env)

	case *sqlast.InExpr:
		return evalIn(e, env)

	case *sqlast.IsNullExpr:
		v, err := Eval(e.Expr, env)
		if err != nil {
			return nil, err
		}
		isNull := value.IsNull(v)
		if e.Not {
			return !isNull, nil
		}
		return isNull, nil

	case *sqlast.AggExpr:
		if env.GroupRows == nil {
			return nil, errs.RuntimeError.New("aggregate function used outside of a grouped context")
		}
		return computeAggregate(e, env.GroupRows, env.Params)

	default:
		return nil, errors.Errorf("rowexec: unsupported expression node %T", expr)
	}
}

func evalUnary(e *sqlast.UnaryExpr, env *Env) (interface{}, error) {
	switch e.Op {
	case "NOT":
		v, err := Eval(e.Expr, env)
		if err != nil {
			return nil, err
		}
		return triToInterface(toTribool(v).Not()), nil
	case "-":
		v, err := Eval(e.Expr, env)
		if err != nil {
			return nil, err
		}
		return value.Sub(int64(0), v)
	default:
		return nil, errors.Errorf("rowexec: unsupported unary operator %q", e.Op)
	}
}

func evalBinary(e *sqlast.BinaryExpr, env *Env) (interface{}, error) {
	switch e.Op {
	case "AND":
		l, err := Eval(e.Left, env)
		if err != nil {
			return nil, err
		}
		r, err := Eval(e.Right, env)
		if err != nil {
			return nil, err
		}
		return triToInterface(value.And(toTribool(l), toTribool(r))), nil

	case "OR":
		l, err := Eval(e.Left, env)
		if err != nil {
			return nil, err
		}
		r, err := Eval(e.Right, env)
		if err != nil {
			return nil, err
		}
		return triToInterface(value.Or(toTribool(l), toTribool(r))), nil
	}

	left, err := Eval(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := Eval(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case "+":
		return value.Add(left, right)
	case "-":
		return value.Sub(left, right)
	case "*":
		return value.Mul(left, right)
	case "/":
		return value.Div(left, right)
	case "%":
		return value.Mod(left, right)
	case "=":
		if value.IsNull(left) || value.IsNull(right) {
			return nil, nil
		}
		return value.Equal(left, right), nil
	case "<>", "!=":
		if value.IsNull(left) || value.IsNull(right) {
			return nil, nil
		}
		return !value.Equal(left, right), nil
	case "<":
		if value.IsNull(left) || value.IsNull(right) {
			return nil, nil
		}
		return value.Compare(left, right) < 0, nil
	case "<=":
		if value.IsNull(left) || value.IsNull(right) {
			return nil, nil
		}
		return value.Compare(left, right) <= 0, nil
	case ">":
		if value.IsNull(left) || value.IsNull(right) {
			return nil, nil
		}
		return value.Compare(left, right) > 0, nil
	case ">=":
		if value.IsNull(left) || value.IsNull(right) {
			return nil, nil
		}
		return value.Compare(left, right) >= 0, nil
	default:
		return nil, errors.Errorf("rowexec: unsupported binary operator %q", e.Op)
	}
}

func evalIn(e *sqlast.InExpr, env *Env) (interface{}, error) {
	left, err := Eval(e.Expr, env)
	if err != nil {
		return nil, err
	}
	if value.IsNull(left) {
		return nil, nil
	}

	candidates, err := evalInList(e.List, env)
	if err != nil {
		return nil, err
	}

	sawNull := false
	for _, v := range candidates {
		if value.IsNull(v) {
			sawNull = true
			continue
		}
		if value.Equal(left, v) {
			return true, nil
		}
	}
	if sawNull {
		return nil, nil
	}
	return false, nil
}

// evalInList evaluates the IN (...) list. A single '?' placeholder bound to
// a JSON array expands into that array's elements, so `city IN (?)` with
// arg `["Porto","Lisboa"]` behaves like `city IN ('Porto','Lisboa')`; any
// other shape evaluates each list item as its own scalar candidate.
func evalInList(list []sqlast.Expr, env *Env) ([]interface{}, error) {
	if len(list) == 1 {
		if _, ok := list[0].(*sqlast.Param); ok {
			v, err := Eval(list[0], env)
			if err != nil {
				return nil, err
			}
			if arr, ok := v.([]interface{}); ok {
				return arr, nil
			}
			return []interface{}{v}, nil
		}
	}

	values := make([]interface{}, 0, len(list))
	for _, item := range list {
		v, err := Eval(item, env)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// toTribool interprets an evaluated predicate value: untyped nil is
// Unknown, otherwise it must be a bool (the only shape Eval ever produces
// for a comparison/logical subexpression).
func toTribool(v interface{}) value.Tribool {
	if v == nil {
		return value.Unknown
	}
	if b, ok := v.(bool); ok {
		return value.FromBool(b)
	}
	return value.Unknown
}

func triToInterface(t value.Tribool) interface{} {
	switch t {
	case value.True:
		return true
	case value.False:
		return false
	default:
		return nil
	}
}

// EvalPredicate evaluates expr as a three-valued predicate (WHERE, JOIN ON,
// HAVING).
func EvalPredicate(expr sqlast.Expr, env *Env) (value.Tribool, error) {
	if expr == nil {
		return value.True, nil
	}
	v, err := Eval(expr, env)
	if err != nil {
		return value.Unknown, err
	}
	return toTribool(v), nil
}
