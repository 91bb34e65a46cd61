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

	"github.com/foskdb/fosk/sqlast"
	"github.com/foskdb/fosk/value"
)

// OrderedRow pairs one already-projected output document with the sort-key
// values computed for it, so ORDER BY can reference columns or aggregates
// that were available before projection but aren't necessarily part of the
// final output (§4.2's order_list accepts any expr, not just output
// aliases).
type OrderedRow struct {
	Output   map[string]interface{}
	SortKeys []interface{}
}

// Sort performs a stable multi-key ORDER BY (§4.5: nulls sort last for ASC,
// first for DESC — the opposite of §4.6's total order, which is overridden
// for null placement specifically, per key, independent of how non-null
// values within that key compare).
func Sort(rows []OrderedRow, keys []sqlast.OrderKey) {
	sort.SliceStable(rows, func(i, j int) bool {
		for k, key := range keys {
			cmp := compareKey(rows[i].SortKeys[k], rows[j].SortKeys[k], key.Desc)
			if cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
}

// compareKey orders one sort key, placing null last for an ASC key and
// first for a DESC key; non-null values fall back to §4.6's total order,
// reversed for DESC.
func compareKey(a, b interface{}, desc bool) int {
	aNull, bNull := value.IsNull(a), value.IsNull(b)
	switch {
	case aNull && bNull:
		return 0
	case aNull:
		if desc {
			return -1
		}
		return 1
	case bNull:
		if desc {
			return 1
		}
		return -1
	}
	cmp := value.Compare(a, b)
	if desc {
		cmp = -cmp
	}
	return cmp
}
