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

	"github.com/foskdb/fosk/analyzer"
	"github.com/foskdb/fosk/catalog"
	"github.com/foskdb/fosk/document"
	"github.com/foskdb/fosk/sqlparser"
)

func run(t *testing.T, cat *catalog.Catalog, sql string, params ...interface{}) []map[string]interface{} {
	t.Helper()
	stmt, err := sqlparser.Parse(sql)
	require.NoError(t, err)
	plan, err := analyzer.Bind(cat, stmt, 0)
	require.NoError(t, err)
	out, err := Exec(cat, plan, params)
	require.NoError(t, err)
	return out
}

func seedPeopleOrders(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.New(document.IDInt, "id")

	people := cat.Collection("People")
	_, err := people.AddBatch([]document.Document{
		{"name": "Ada", "city": "Austin"},
		{"name": "Lin", "city": "Boston"},
		{"name": "Max", "city": "Austin"},
	})
	require.NoError(t, err)

	orders := cat.Collection("Orders")
	_, err = orders.AddBatch([]document.Document{
		{"personId": int64(1), "total": int64(100)},
		{"personId": int64(1), "total": int64(50)},
		{"personId": int64(2), "total": int64(75)},
	})
	require.NoError(t, err)

	return cat
}
