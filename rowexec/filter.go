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

import "github.com/foskdb/fosk/sqlast"

// Filter keeps only the rows for which expr evaluates to True; Unknown and
// False are both dropped (§4.5/§4.6 — a three-valued predicate only
// "passes" a filter boundary when it is definitely true).
func Filter(rows []Row, expr sqlast.Expr, params []interface{}) ([]Row, error) {
	if expr == nil {
		return rows, nil
	}
	var out []Row
	for _, row := range rows {
		tb, err := EvalPredicate(expr, &Env{Row: row, Params: params})
		if err != nil {
			return nil, err
		}
		if tb.IsTrue() {
			out = append(out, row)
		}
	}
	return out, nil
}
