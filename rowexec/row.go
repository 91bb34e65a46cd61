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

// Package rowexec is the execution pipeline of §4.5: Scan, Join, Filter,
// Group+Aggregate, Having, Project, Sort, and Limit/Offset stages composed by
// Exec into one query result. The stages are eager, not pull-based: each one
// materializes its whole row slice before the next stage runs.
package rowexec

import "github.com/foskdb/fosk/document"

// Row is one pipeline tuple: every cell is keyed by "alias.field" so that
// joins can merge rows from distinct sources without collision. Row values
// are never mutated in place once built (§3 "rows are immutable within a
// pipeline stage").
type Row map[string]interface{}

// Get looks up a qualified field by alias and name. A missing field
// (either because the alias doesn't occur in this row's side of a JOIN, or
// because the source document never had the field) reads back as untyped
// nil — the same representation used for JSON null (§4.6's null
// propagation rules make the two indistinguishable, which matches how a
// missing field and an explicit null behave identically elsewhere).
func (r Row) Get(qualifier, name string) interface{} {
	return r[qualifier+"."+name]
}

// set stores a qualified cell.
func (r Row) set(qualifier, name string, v interface{}) {
	r[qualifier+"."+name] = v
}

// fromDocument builds the row contributed by one alias's document.
func fromDocument(alias string, doc document.Document) Row {
	row := make(Row, len(doc))
	for field, v := range doc {
		row.set(alias, field, v)
	}
	return row
}

// merge combines two rows from different aliases into one wider row. It is
// the executor's join-tuple constructor; nil right-hand rows (unmatched
// outer-join rows) contribute no keys, which is indistinguishable from
// every field of that alias reading back as null (§4.5 outer join
// null-padding).
func merge(left, right Row) Row {
	out := make(Row, len(left)+len(right))
	for k, v := range left {
		out[k] = v
	}
	for k, v := range right {
		out[k] = v
	}
	return out
}
