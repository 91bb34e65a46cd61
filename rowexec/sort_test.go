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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foskdb/fosk/catalog"
	"github.com/foskdb/fosk/document"
)

func seedPeopleWithNulls(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.New(document.IDInt, "id")
	people := cat.Collection("People")
	_, err := people.AddBatch([]document.Document{
		{"name": "Ada", "age": int64(30)},
		{"name": "Lin", "age": nil},
		{"name": "Max", "age": int64(20)},
		{"name": "Zed", "age": int64(30)},
	})
	require.NoError(t, err)
	return cat
}

func TestSortAscendingPutsNullsLast(t *testing.T) {
	cat := seedPeopleWithNulls(t)
	out := run(t, cat, `SELECT name FROM People ORDER BY age ASC`)
	require.Equal(t, "Lin", out[len(out)-1]["name"])
}

func TestSortDescendingPutsNullsFirst(t *testing.T) {
	cat := seedPeopleWithNulls(t)
	out := run(t, cat, `SELECT name FROM People ORDER BY age DESC`)
	require.Equal(t, "Lin", out[0]["name"])
}

func TestSortIsStableOnTies(t *testing.T) {
	cat := seedPeopleWithNulls(t)
	out := run(t, cat, `SELECT name FROM People ORDER BY age ASC`)
	// Ada and Zed both have age 30 and were inserted Ada-before-Zed.
	var names []string
	for _, row := range out {
		if row["name"] == "Ada" || row["name"] == "Zed" {
			names = append(names, row["name"].(string))
		}
	}
	require.Equal(t, []string{"Ada", "Zed"}, names)
}

func TestSortMultiKey(t *testing.T) {
	cat := seedPeopleOrders(t)
	out := run(t, cat, `SELECT p.name, o.total FROM People p JOIN Orders o ON o.personId = p.id
		ORDER BY p.name ASC, o.total DESC`)
	require.Equal(t, int64(100), out[0]["total"])
	require.Equal(t, int64(50), out[1]["total"])
}
