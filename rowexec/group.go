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
	"github.com/foskdb/fosk/sqlast"
	"github.com/foskdb/fosk/value"
)

// Group is one GROUP BY bucket: Row is a representative member (used to
// evaluate the group's own GROUP BY key expressions and any other
// non-aggregated, grouped-by projection); Members is every row that fell
// into the bucket, consulted whenever an AggExpr needs to be computed
// (§4.5).
type Group struct {
	Row     Row
	Members []Row

	keyVals []interface{}
}

// GroupRows implements the aggregate computation's row source.
func (g Group) GroupRows() []Row { return g.Members }

// GroupBy partitions rows into buckets by the GROUP BY key expressions, in
// first-seen order (§4.5 grouping is stable). With no keys, every row (or
// none, if there are no rows) collapses into a single implicit group, so
// that a plain aggregate query still produces exactly one output row.
func GroupBy(rows []Row, keys []sqlast.Expr, params []interface{}) ([]Group, error) {
	if len(keys) == 0 {
		members := rows
		if members == nil {
			members = []Row{}
		}
		return []Group{{Row: Row{}, Members: members}}, nil
	}

	var groups []Group
	for _, row := range rows {
		keyVals := make([]interface{}, len(keys))
		for i, k := range keys {
			v, err := Eval(k, &Env{Row: row, Params: params})
			if err != nil {
				return nil, err
			}
			keyVals[i] = v
		}

		matched := false
		for gi := range groups {
			if keyTupleEqual(groups[gi].keyVals, keyVals) {
				groups[gi].Members = append(groups[gi].Members, row)
				matched = true
				break
			}
		}
		if !matched {
			groups = append(groups, Group{Row: row, Members: []Row{row}, keyVals: keyVals})
		}
	}
	return groups, nil
}

func keyTupleEqual(a, b []interface{}) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !value.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
