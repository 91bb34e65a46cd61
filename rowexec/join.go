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

import "github.com/foskdb/fosk/sqlast"

// Join evaluates one JOIN clause via a nested-loop re-scan of left against
// right, left-deep (§4.5): each JOIN folds the running left side against
// the next FROM item, in the order they were written. A row's half that
// has no counterpart (LEFT/RIGHT/FULL, unmatched) is simply omitted from
// the merged row, which leaves every field of that side reading back as
// null through Row.Get's ordinary missing-key behavior — no separate
// null-padding step is needed.
func Join(kind sqlast.JoinKind, left, right []Row, on sqlast.Expr, params []interface{}) ([]Row, error) {
	switch kind {
	case sqlast.InnerJoin:
		return innerJoin(left, right, on, params)
	case sqlast.LeftJoin:
		return leftJoin(left, right, on, params)
	case sqlast.RightJoin:
		return rightJoin(left, right, on, params)
	case sqlast.FullJoin:
		return fullJoin(left, right, on, params)
	default:
		return nil, nil
	}
}

func matches(l, r Row, on sqlast.Expr, params []interface{}) (bool, error) {
	merged := merge(l, r)
	tb, err := EvalPredicate(on, &Env{Row: merged, Params: params})
	if err != nil {
		return false, err
	}
	return tb.IsTrue(), nil
}

func innerJoin(left, right []Row, on sqlast.Expr, params []interface{}) ([]Row, error) {
	var out []Row
	for _, l := range left {
		for _, r := range right {
			ok, err := matches(l, r, on, params)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, merge(l, r))
			}
		}
	}
	return out, nil
}

func leftJoin(left, right []Row, on sqlast.Expr, params []interface{}) ([]Row, error) {
	var out []Row
	for _, l := range left {
		matched := false
		for _, r := range right {
			ok, err := matches(l, r, on, params)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, merge(l, r))
				matched = true
			}
		}
		if !matched {
			out = append(out, merge(l, Row{}))
		}
	}
	return out, nil
}

func rightJoin(left, right []Row, on sqlast.Expr, params []interface{}) ([]Row, error) {
	var out []Row
	for _, r := range right {
		matched := false
		for _, l := range left {
			ok, err := matches(l, r, on, params)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, merge(l, r))
				matched = true
			}
		}
		if !matched {
			out = append(out, merge(Row{}, r))
		}
	}
	return out, nil
}

func fullJoin(left, right []Row, on sqlast.Expr, params []interface{}) ([]Row, error) {
	var out []Row
	rightMatched := make([]bool, len(right))
	for _, l := range left {
		matched := false
		for i, r := range right {
			ok, err := matches(l, r, on, params)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, merge(l, r))
				matched = true
				rightMatched[i] = true
			}
		}
		if !matched {
			out = append(out, merge(l, Row{}))
		}
	}
	for i, r := range right {
		if !rightMatched[i] {
			out = append(out, merge(Row{}, r))
		}
	}
	return out, nil
}
