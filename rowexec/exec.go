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
	"fmt"

	"github.com/foskdb/fosk/analyzer"
	"github.com/foskdb/fosk/catalog"
	"github.com/foskdb/fosk/document"
	"github.com/foskdb/fosk/errs"
	"github.com/foskdb/fosk/sqlast"
)

// Exec runs a bound plan end to end: Scan, Join, Filter (WHERE), Group +
// Aggregate, Filter (HAVING), Project, Sort, Offset/Limit — the pipeline of
// §4.5. params supplies values for any '?' placeholders the plan contains.
func Exec(cat *catalog.Catalog, plan *analyzer.BoundSelect, params []interface{}) ([]map[string]interface{}, error) {
	if len(params) != plan.NumParams {
		return nil, errs.BindError.New(fmt.Sprintf("expected %d parameter(s), got %d", plan.NumParams, len(params)))
	}

	rows, err := scanFrom(cat, plan.From)
	if err != nil {
		return nil, err
	}

	for _, join := range plan.Joins {
		rightRows, err := scanFrom(cat, join.From)
		if err != nil {
			return nil, err
		}
		rows, err = Join(join.Kind, rows, rightRows, join.On, params)
		if err != nil {
			return nil, err
		}
	}

	rows, err = Filter(rows, plan.Where, params)
	if err != nil {
		return nil, err
	}

	needsGrouping := len(plan.GroupBy) > 0 || projectionsHaveAggregate(plan.Projections) || exprHasAggregate(plan.Having)

	var ordered []OrderedRow
	if needsGrouping {
		ordered, err = execGrouped(rows, plan, params)
	} else {
		ordered, err = execFlat(rows, plan, params)
	}
	if err != nil {
		return nil, err
	}

	if plan.Distinct {
		ordered = dedupeOrdered(ordered)
	}

	Sort(ordered, plan.OrderBy)

	out := make([]map[string]interface{}, len(ordered))
	for i, o := range ordered {
		out[i] = o.Output
	}
	return LimitOffset(out, plan.Limit, plan.Offset), nil
}

func scanFrom(cat *catalog.Catalog, from analyzer.BoundFrom) ([]Row, error) {
	coll, ok := cat.Lookup(from.Collection)
	if !ok {
		return nil, document.ErrUnknownCollection.New(from.Collection)
	}
	return Scan(from.Alias, coll)
}

func execGrouped(rows []Row, plan *analyzer.BoundSelect, params []interface{}) ([]OrderedRow, error) {
	groups, err := GroupBy(rows, plan.GroupBy, params)
	if err != nil {
		return nil, err
	}

	var ordered []OrderedRow
	for _, g := range groups {
		env := &Env{Row: g.Row, Params: params, GroupRows: g.Members}

		tb, err := EvalPredicate(plan.Having, env)
		if err != nil {
			return nil, err
		}
		if !tb.IsTrue() {
			continue
		}

		output, err := Project(plan.Projections, g.Row, g.Members, params)
		if err != nil {
			return nil, err
		}
		sortKeys, err := evalOrderKeys(plan.OrderBy, env)
		if err != nil {
			return nil, err
		}
		ordered = append(ordered, OrderedRow{Output: output, SortKeys: sortKeys})
	}
	return ordered, nil
}

func execFlat(rows []Row, plan *analyzer.BoundSelect, params []interface{}) ([]OrderedRow, error) {
	ordered := make([]OrderedRow, 0, len(rows))
	for _, row := range rows {
		env := &Env{Row: row, Params: params}
		output, err := Project(plan.Projections, row, nil, params)
		if err != nil {
			return nil, err
		}
		sortKeys, err := evalOrderKeys(plan.OrderBy, env)
		if err != nil {
			return nil, err
		}
		ordered = append(ordered, OrderedRow{Output: output, SortKeys: sortKeys})
	}
	return ordered, nil
}

func evalOrderKeys(keys []sqlast.OrderKey, env *Env) ([]interface{}, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	vals := make([]interface{}, len(keys))
	for i, k := range keys {
		v, err := Eval(k.Expr, env)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func dedupeOrdered(rows []OrderedRow) []OrderedRow {
	var out []OrderedRow
	for _, row := range rows {
		dup := false
		for _, existing := range out {
			if rowsEqual(row.Output, existing.Output) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, row)
		}
	}
	return out
}

func projectionsHaveAggregate(projections []analyzer.BoundProjection) bool {
	for _, p := range projections {
		if !p.Star && exprHasAggregate(p.Expr) {
			return true
		}
	}
	return false
}

func exprHasAggregate(expr sqlast.Expr) bool {
	switch e := expr.(type) {
	case nil:
		return false
	case *sqlast.AggExpr:
		return true
	case *sqlast.BinaryExpr:
		return exprHasAggregate(e.Left) || exprHasAggregate(e.Right)
	case *sqlast.UnaryExpr:
		return exprHasAggregate(e.Expr)
	case *sqlast.InExpr:
		if exprHasAggregate(e.Expr) {
			return true
		}
		for _, item := range e.List {
			if exprHasAggregate(item) {
				return true
			}
		}
		return false
	case *sqlast.IsNullExpr:
		return exprHasAggregate(e.Expr)
	default:
		return false
	}
}
