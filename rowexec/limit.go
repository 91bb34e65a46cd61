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

import "github.com/foskdb/fosk/value"

// LimitOffset applies OFFSET then LIMIT to an already-ordered row slice
// (§4.5). A nil bound means "unrestricted"; an offset beyond the end of
// the slice yields zero rows rather than an error.
func LimitOffset(rows []map[string]interface{}, limit, offset *int64) []map[string]interface{} {
	start := 0
	if offset != nil {
		start = int(*offset)
	}
	if start < 0 {
		start = 0
	}
	if start > len(rows) {
		start = len(rows)
	}
	rows = rows[start:]

	if limit == nil {
		return rows
	}
	n := int(*limit)
	if n < 0 {
		n = 0
	}
	if n > len(rows) {
		n = len(rows)
	}
	return rows[:n]
}

// rowsEqual reports whether two already-projected output rows are equal for
// SELECT DISTINCT purposes (§4.5): they must share the same set of keys, and
// every value must compare equal under §4.6's value-equality rules (a
// numeric 1 and 1.0 count as the same value). Exec's dedupeOrdered is the
// live caller; it runs this before output rows are stripped of their sort
// keys.
func rowsEqual(a, b map[string]interface{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok {
			return false
		}
		if !valuesEqualForDistinct(av, bv) {
			return false
		}
	}
	return true
}

func valuesEqualForDistinct(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return value.Equal(a, b)
}
