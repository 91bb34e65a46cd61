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
	"github.com/foskdb/fosk/errs"
	"github.com/foskdb/fosk/sqlast"
	"github.com/foskdb/fosk/value"
)

// computeAggregate evaluates one aggregate function over every row of a
// group (§4.5). Aggregates ignore null argument values (COUNT(*) is the
// only form that doesn't inspect an argument at all); DISTINCT dedupes by
// value equality before the aggregate is applied.
func computeAggregate(agg *sqlast.AggExpr, rows []Row, params []interface{}) (interface{}, error) {
	if agg.Func == "COUNT" && agg.Star {
		return int64(len(rows)), nil
	}

	var values []interface{}
	for _, row := range rows {
		v, err := Eval(agg.Arg, &Env{Row: row, Params: params})
		if err != nil {
			return nil, err
		}
		if value.IsNull(v) {
			continue
		}
		values = append(values, v)
	}

	if agg.Distinct {
		values = dedupe(values)
	}

	switch agg.Func {
	case "COUNT":
		return int64(len(values)), nil
	case "SUM":
		if len(values) == 0 {
			return nil, nil
		}
		return sumValues(values)
	case "AVG":
		if len(values) == 0 {
			return nil, nil
		}
		sum, err := sumValues(values)
		if err != nil {
			return nil, err
		}
		sumF, _ := value.AsFloat64(sum)
		return sumF / float64(len(values)), nil
	case "MIN":
		if len(values) == 0 {
			return nil, nil
		}
		return extremum(values, -1), nil
	case "MAX":
		if len(values) == 0 {
			return nil, nil
		}
		return extremum(values, 1), nil
	default:
		return nil, errs.RuntimeError.New("unknown aggregate function " + agg.Func)
	}
}

func dedupe(values []interface{}) []interface{} {
	var out []interface{}
	for _, v := range values {
		seen := false
		for _, existing := range out {
			if value.Equal(v, existing) {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, v)
		}
	}
	return out
}

func sumValues(values []interface{}) (interface{}, error) {
	var acc interface{} = int64(0)
	for _, v := range values {
		next, err := value.Add(acc, v)
		if err != nil {
			return nil, err
		}
		acc = next
	}
	return acc, nil
}

// extremum returns the min (sign < 0) or max (sign > 0) of values under
// §4.6's total order.
func extremum(values []interface{}, sign int) interface{} {
	best := values[0]
	for _, v := range values[1:] {
		if sign*value.Compare(v, best) > 0 {
			best = v
		}
	}
	return best
}
