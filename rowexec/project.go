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
	"sort"
	"strings"

	"github.com/foskdb/fosk/analyzer"
)

// Project builds one output document from a bound projection list (§4.4).
// groupRows is non-nil only downstream of a GROUP BY / aggregate query, and
// lets any AggExpr inside a projection compute itself against the current
// group's members.
func Project(projections []analyzer.BoundProjection, row Row, groupRows []Row, params []interface{}) (map[string]interface{}, error) {
	env := &Env{Row: row, Params: params, GroupRows: groupRows}
	out := make(map[string]interface{})

	for _, proj := range projections {
		if proj.Star {
			for name, v := range expandStar(row, proj.StarAlias) {
				out[name] = v
			}
			continue
		}
		v, err := Eval(proj.Expr, env)
		if err != nil {
			return nil, err
		}
		out[proj.OutputName] = v
	}
	return out, nil
}

// expandStar enumerates the fields visible in row, scoped to alias when
// non-empty, producing bare field names — unless the same field name is
// contributed by more than one alias, in which case it falls back to the
// qualified "alias.field" form to avoid silently dropping a column (the
// same disambiguation rule §4.4 uses for explicit projections).
func expandStar(row Row, alias string) map[string]interface{} {
	type cell struct {
		alias, field string
		value        interface{}
	}
	var cells []cell
	for key, v := range row {
		parts := strings.SplitN(key, ".", 2)
		if len(parts) != 2 {
			continue
		}
		if alias != "" && parts[0] != alias {
			continue
		}
		cells = append(cells, cell{alias: parts[0], field: parts[1], value: v})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].alias != cells[j].alias {
			return cells[i].alias < cells[j].alias
		}
		return cells[i].field < cells[j].field
	})

	fieldCount := make(map[string]int, len(cells))
	for _, c := range cells {
		fieldCount[c.field]++
	}

	out := make(map[string]interface{}, len(cells))
	for _, c := range cells {
		name := c.field
		if fieldCount[name] > 1 {
			name = c.alias + "." + c.field
		}
		out[name] = c.value
	}
	return out
}
