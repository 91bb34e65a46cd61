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

package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foskdb/fosk/catalog"
	"github.com/foskdb/fosk/document"
	"github.com/foskdb/fosk/errs"
	"github.com/foskdb/fosk/sqlast"
	"github.com/foskdb/fosk/sqlparser"
)

func seedCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.New(document.IDInt, "id")

	people := cat.Collection("People")
	_, err := people.AddBatch([]document.Document{
		{"name": "Ada", "city": "Austin", "age": int64(30)},
		{"name": "Lin", "city": "Boston", "age": int64(41)},
	})
	require.NoError(t, err)

	orders := cat.Collection("Orders")
	_, err = orders.AddBatch([]document.Document{
		{"personId": int64(1), "total": int64(100)},
	})
	require.NoError(t, err)

	return cat
}

func bind(t *testing.T, cat *catalog.Catalog, sql string) (*BoundSelect, error) {
	t.Helper()
	stmt, err := sqlparser.Parse(sql)
	require.NoError(t, err)
	return Bind(cat, stmt, 0)
}

func TestBindSimpleSelectResolvesBareIdentifier(t *testing.T) {
	cat := seedCatalog(t)
	plan, err := bind(t, cat, "SELECT name, city FROM People")
	require.NoError(t, err)
	require.Equal(t, "name", plan.Projections[0].OutputName)

	ident := plan.Projections[0].Expr.(*sqlast.Identifier)
	require.Equal(t, "People", ident.Qualifier)
}

func TestBindUnknownCollectionFails(t *testing.T) {
	cat := seedCatalog(t)
	_, err := bind(t, cat, "SELECT id FROM Ghosts")
	require.Error(t, err)
	require.True(t, errs.BindError.Is(err))
}

func TestBindAmbiguousFieldAcrossJoinFails(t *testing.T) {
	cat := seedCatalog(t)
	cat.Collection("Orders").AddBatch([]document.Document{{"personId": int64(1), "name": "dup"}})
	_, err := bind(t, cat, "SELECT name FROM People p JOIN Orders o ON o.personId = p.id")
	require.Error(t, err)
	require.True(t, errs.BindError.Is(err))
}

func TestBindDuplicateAliasFails(t *testing.T) {
	cat := seedCatalog(t)
	_, err := bind(t, cat, "SELECT 1 FROM People p JOIN Orders p ON p.personId = p.id")
	require.Error(t, err)
	require.True(t, errs.BindError.Is(err))
}

func TestBindUnqualifiedJoinColumnResolves(t *testing.T) {
	cat := seedCatalog(t)
	plan, err := bind(t, cat, "SELECT total FROM People p JOIN Orders o ON o.personId = p.id")
	require.NoError(t, err)
	ident := plan.Projections[0].Expr.(*sqlast.Identifier)
	require.Equal(t, "o", ident.Qualifier)
}

func TestBindAggregateInWhereFails(t *testing.T) {
	cat := seedCatalog(t)
	_, err := bind(t, cat, "SELECT name FROM People WHERE COUNT(*) > 1")
	require.Error(t, err)
	require.True(t, errs.BindError.Is(err))
}

func TestBindNonGroupedProjectionFails(t *testing.T) {
	cat := seedCatalog(t)
	_, err := bind(t, cat, "SELECT name, COUNT(*) FROM People GROUP BY city")
	require.Error(t, err)
	require.True(t, errs.BindError.Is(err))
}

func TestBindGroupedProjectionSucceeds(t *testing.T) {
	cat := seedCatalog(t)
	plan, err := bind(t, cat, "SELECT city, COUNT(*) AS n FROM People GROUP BY city")
	require.NoError(t, err)
	require.Equal(t, "n", plan.Projections[1].OutputName)
}

func TestBindOutputNameCollisionRewritesToQualified(t *testing.T) {
	cat := seedCatalog(t)
	cat.Collection("Orders").AddBatch([]document.Document{{"personId": int64(2), "city": "X"}})
	plan, err := bind(t, cat, "SELECT p.city, o.city FROM People p JOIN Orders o ON o.personId = p.id")
	require.NoError(t, err)
	require.Equal(t, "p.city", plan.Projections[0].OutputName)
	require.Equal(t, "o.city", plan.Projections[1].OutputName)
}

func TestBindSynthesizedExprName(t *testing.T) {
	cat := seedCatalog(t)
	plan, err := bind(t, cat, "SELECT age + 1 FROM People")
	require.NoError(t, err)
	require.Equal(t, "expr_1", plan.Projections[0].OutputName)
}

func TestBindCountsParams(t *testing.T) {
	cat := seedCatalog(t)
	plan, err := bind(t, cat, "SELECT id FROM People WHERE city IN (?, ?)")
	require.NoError(t, err)
	require.Equal(t, 2, plan.NumParams)
}

func TestBindStarWithAggregateFails(t *testing.T) {
	cat := seedCatalog(t)
	_, err := bind(t, cat, "SELECT *, COUNT(*) FROM People")
	require.Error(t, err)
	require.True(t, errs.BindError.Is(err))
}
