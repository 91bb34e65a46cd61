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
	"fmt"

	"github.com/foskdb/fosk/catalog"
	"github.com/foskdb/fosk/errs"
	"github.com/foskdb/fosk/sqlast"
)

// defaultSampleCap is used when the caller does not request a specific
// schema-inference sample size for identifier resolution (§4.3).
const defaultSampleCap = 200

type binder struct {
	cat       *catalog.Catalog
	sampleCap int
	froms     []BoundFrom
	numParams int
}

func (b *binder) bindSelect(stmt *sqlast.Select) (*BoundSelect, error) {
	if b.sampleCap <= 0 {
		b.sampleCap = defaultSampleCap
	}

	from, err := b.resolveFrom(stmt.From)
	if err != nil {
		return nil, err
	}
	b.froms = append(b.froms, from)

	var joins []BoundJoin
	for _, j := range stmt.Joins {
		rightFrom, err := b.resolveFrom(j.Right)
		if err != nil {
			return nil, err
		}
		if err := b.checkDuplicateAlias(rightFrom.Alias); err != nil {
			return nil, err
		}
		b.froms = append(b.froms, rightFrom)
		if err := b.resolveExpr(j.On); err != nil {
			return nil, err
		}
		joins = append(joins, BoundJoin{Kind: j.Kind, From: rightFrom, On: j.On})
	}

	if stmt.Where != nil {
		if containsAggregate(stmt.Where) {
			return nil, errs.BindError.New("aggregate functions are not allowed in WHERE")
		}
		if err := b.resolveExpr(stmt.Where); err != nil {
			return nil, err
		}
	}

	for _, g := range stmt.GroupBy {
		if containsAggregate(g) {
			return nil, errs.BindError.New("aggregate functions are not allowed in GROUP BY")
		}
		if err := b.resolveExpr(g); err != nil {
			return nil, err
		}
	}

	if stmt.Having != nil {
		if err := b.resolveExpr(stmt.Having); err != nil {
			return nil, err
		}
	}

	for _, ob := range stmt.OrderBy {
		if err := b.resolveExpr(ob.Expr); err != nil {
			return nil, err
		}
	}

	hasGrouping := len(stmt.GroupBy) > 0
	hasAggregate := false
	for _, proj := range stmt.Projections {
		if proj.Expr != nil && containsAggregate(proj.Expr) {
			hasAggregate = true
		}
	}

	boundProjections := make([]BoundProjection, 0, len(stmt.Projections))
	for _, proj := range stmt.Projections {
		if proj.Star {
			if hasGrouping || hasAggregate {
				return nil, errs.BindError.New("'*' is not allowed with GROUP BY or aggregate projections")
			}
			if proj.StarAlias != "" {
				if !b.isKnownAlias(proj.StarAlias) {
					return nil, errs.BindError.New(fmt.Sprintf("unknown alias %q in projection", proj.StarAlias))
				}
			}
			boundProjections = append(boundProjections, BoundProjection{Star: true, StarAlias: proj.StarAlias})
			continue
		}

		if err := b.resolveExpr(proj.Expr); err != nil {
			return nil, err
		}
		if (hasGrouping || hasAggregate) && !containsAggregate(proj.Expr) {
			if !exprIsGroupedBy(proj.Expr, stmt.GroupBy) {
				return nil, errs.BindError.New("projection is neither aggregated nor listed in GROUP BY")
			}
		}
		boundProjections = append(boundProjections, BoundProjection{Expr: proj.Expr, OutputName: proj.OutputName})
	}

	assignOutputNames(boundProjections, b.fieldAliasCounts())

	aliases := make([]string, len(b.froms))
	for i, f := range b.froms {
		aliases[i] = f.Alias
	}

	return &BoundSelect{
		Distinct:    stmt.Distinct,
		Projections: boundProjections,
		From:        from,
		Joins:       joins,
		Where:       stmt.Where,
		GroupBy:     stmt.GroupBy,
		Having:      stmt.Having,
		OrderBy:     stmt.OrderBy,
		Limit:       stmt.Limit,
		Offset:      stmt.Offset,
		NumParams:   b.numParams,
		Aliases:     aliases,
	}, nil
}

func (b *binder) resolveFrom(item sqlast.FromItem) (BoundFrom, error) {
	coll, ok := b.cat.Lookup(item.Collection)
	if !ok {
		return BoundFrom{}, errs.BindError.New(fmt.Sprintf("unknown collection: %s", item.Collection))
	}
	schema, err := coll.InferSchema(b.sampleCap)
	if err != nil {
		return BoundFrom{}, err
	}
	fields := make(map[string]bool, len(schema))
	for field := range schema {
		fields[field] = true
	}
	return BoundFrom{Alias: item.Alias, Collection: item.Collection, Fields: fields}, nil
}

func (b *binder) checkDuplicateAlias(alias string) error {
	for _, f := range b.froms {
		if f.Alias == alias {
			return errs.BindError.New(fmt.Sprintf("duplicate alias: %s", alias))
		}
	}
	return nil
}

// fieldAliasCounts reports, for every field name known to appear in any
// FROM/JOIN alias's inferred schema, how many distinct aliases contribute
// it. A field owned by more than one alias is ambiguous as a bare output
// name, even when the projection that selects it was written with an
// explicit qualifier (§4.4).
func (b *binder) fieldAliasCounts() map[string]int {
	counts := make(map[string]int)
	for _, f := range b.froms {
		for field := range f.Fields {
			counts[field]++
		}
	}
	return counts
}

func (b *binder) isKnownAlias(alias string) bool {
	for _, f := range b.froms {
		if f.Alias == alias {
			return true
		}
	}
	return false
}

// resolveExpr walks expr resolving identifiers against the known FROM/JOIN
// aliases and counting parameter placeholders. It mutates Identifier nodes
// in place, filling in Qualifier when it can be determined unambiguously.
func (b *binder) resolveExpr(expr sqlast.Expr) error {
	switch e := expr.(type) {
	case *sqlast.Literal:
		return nil
	case *sqlast.Param:
		b.numParams++
		return nil
	case *sqlast.Identifier:
		return b.resolveIdentifier(e)
	case *sqlast.BinaryExpr:
		if err := b.resolveExpr(e.Left); err != nil {
			return err
		}
		return b.resolveExpr(e.Right)
	case *sqlast.UnaryExpr:
		return b.resolveExpr(e.Expr)
	case *sqlast.InExpr:
		if err := b.resolveExpr(e.Expr); err != nil {
			return err
		}
		for _, item := range e.List {
			if err := b.resolveExpr(item); err != nil {
				return err
			}
		}
		return nil
	case *sqlast.IsNullExpr:
		return b.resolveExpr(e.Expr)
	case *sqlast.AggExpr:
		if e.Arg != nil {
			return b.resolveExpr(e.Arg)
		}
		return nil
	default:
		return errs.BindError.New(fmt.Sprintf("unsupported expression node %T", expr))
	}
}

func (b *binder) resolveIdentifier(id *sqlast.Identifier) error {
	if id.Qualifier != "" {
		if !b.isKnownAlias(id.Qualifier) {
			return errs.BindError.New(fmt.Sprintf("unknown alias %q in %q.%q", id.Qualifier, id.Qualifier, id.Name))
		}
		return nil
	}

	if len(b.froms) == 1 {
		id.Qualifier = b.froms[0].Alias
		return nil
	}

	var owners []string
	for _, f := range b.froms {
		if f.Fields[id.Name] {
			owners = append(owners, f.Alias)
		}
	}
	switch len(owners) {
	case 0:
		return errs.BindError.New(fmt.Sprintf("unknown field %q", id.Name))
	case 1:
		id.Qualifier = owners[0]
		return nil
	default:
		return errs.BindError.New(fmt.Sprintf("ambiguous field %q (present in %v)", id.Name, owners))
	}
}

// containsAggregate reports whether expr contains an AggExpr anywhere in
// its tree (aggregates do not nest, but may appear inside arithmetic, e.g.
// `SUM(x) + 1`).
func containsAggregate(expr sqlast.Expr) bool {
	switch e := expr.(type) {
	case *sqlast.AggExpr:
		return true
	case *sqlast.BinaryExpr:
		return containsAggregate(e.Left) || containsAggregate(e.Right)
	case *sqlast.UnaryExpr:
		return containsAggregate(e.Expr)
	case *sqlast.InExpr:
		if containsAggregate(e.Expr) {
			return true
		}
		for _, item := range e.List {
			if containsAggregate(item) {
				return true
			}
		}
		return false
	case *sqlast.IsNullExpr:
		return containsAggregate(e.Expr)
	default:
		return false
	}
}

// exprIsGroupedBy reports whether expr is syntactically identical to one of
// the GROUP BY keys (§4.4's grouping-key validation).
func exprIsGroupedBy(expr sqlast.Expr, groupBy []sqlast.Expr) bool {
	for _, g := range groupBy {
		if exprEqual(expr, g) {
			return true
		}
	}
	return false
}

func exprEqual(a, b sqlast.Expr) bool {
	switch av := a.(type) {
	case *sqlast.Identifier:
		bv, ok := b.(*sqlast.Identifier)
		return ok && av.Qualifier == bv.Qualifier && av.Name == bv.Name
	case *sqlast.Literal:
		bv, ok := b.(*sqlast.Literal)
		return ok && av.Value == bv.Value
	default:
		return false
	}
}

// assignOutputNames implements §4.4's output-column-naming rule: explicit
// AS wins; otherwise a bare identifier's field name is used, unless that
// field name is contributed by more than one alias across the FROM/JOIN
// chain, in which case it is qualified as "alias.field" regardless of
// whether the projection itself was written qualified; every other
// expression gets a synthesized expr_N. Any name two projections still
// land on in common after that (e.g. two explicit AS collide) is left
// alone — the spec does not define a further tiebreak.
func assignOutputNames(projections []BoundProjection, fieldAliasCounts map[string]int) {
	for i, proj := range projections {
		if proj.Star {
			continue
		}
		if proj.OutputName != "" {
			continue
		}
		if ident, ok := proj.Expr.(*sqlast.Identifier); ok {
			name := ident.Name
			if fieldAliasCounts[ident.Name] > 1 {
				name = ident.Qualifier + "." + ident.Name
			}
			projections[i].OutputName = name
			continue
		}
		projections[i].OutputName = fmt.Sprintf("expr_%d", i+1)
	}
}
