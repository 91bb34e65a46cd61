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

// Package analyzer binds a parsed sqlast.Select against a catalog: it
// resolves identifiers to their owning alias, validates aggregate/GROUP BY
// placement, and computes the output column names of §4.4. The bound plan
// it produces is what rowexec walks to execute the query.
package analyzer

import (
	"github.com/foskdb/fosk/catalog"
	"github.com/foskdb/fosk/sqlast"
)

// BoundFrom is one resolved FROM/JOIN source.
type BoundFrom struct {
	Alias      string
	Collection string
	Fields     map[string]bool // inferred field names, for bare-identifier resolution
}

// BoundJoin is one resolved JOIN clause.
type BoundJoin struct {
	Kind  sqlast.JoinKind
	From  BoundFrom
	On    sqlast.Expr
}

// BoundProjection is one resolved output column.
type BoundProjection struct {
	// Star/StarAlias mirror sqlast.Projection: Star means "expand all
	// fields visible at this point in the FROM/JOIN chain", scoped to
	// StarAlias when non-empty.
	Star      bool
	StarAlias string

	Expr       sqlast.Expr
	OutputName string // final, disambiguated output column name
}

// BoundSelect is a sqlast.Select that has passed name resolution.
type BoundSelect struct {
	Distinct    bool
	Projections []BoundProjection
	From        BoundFrom
	Joins       []BoundJoin
	Where       sqlast.Expr
	GroupBy     []sqlast.Expr
	Having      sqlast.Expr
	OrderBy     []sqlast.OrderKey
	Limit       *int64
	Offset      *int64

	// NumParams is the number of '?' placeholders found during binding,
	// used to validate argument-count calls at execution time (§4.2).
	NumParams int

	// Aliases lists every FROM/JOIN alias in left-to-right order.
	Aliases []string
}

// Bind resolves stmt against cat, producing an executable plan.
func Bind(cat *catalog.Catalog, stmt *sqlast.Select, sampleCap int) (*BoundSelect, error) {
	b := &binder{cat: cat, sampleCap: sampleCap}
	return b.bindSelect(stmt)
}
