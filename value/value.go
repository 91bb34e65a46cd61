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

// Package value implements the JSON value model shared by the collection
// store and the SQL executor: the type tags of §3/§4.3, the total order and
// coercion rules of §4.6, and three-valued logic.
//
// A document field, a literal, or a row cell is always represented as a
// plain Go value produced by (or compatible with) encoding/json: nil, bool,
// int64, float64, string, []interface{}, or map[string]interface{}. There is
// no wrapper struct — keeping values as bare interface{} is what lets the
// executor pass rows straight through to encoding/json at the Project stage
// without a translation pass.
package value

import (
	"fmt"
	"sort"
)

// Kind is the type tag vocabulary of §3's Schema (inferred) section.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
	KindMixed
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// KindOf returns the type tag of a runtime JSON value.
func KindOf(v interface{}) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case int, int64, int32:
		return KindInt
	case float32, float64:
		return KindFloat
	case string:
		return KindString
	case []interface{}:
		return KindArray
	case map[string]interface{}:
		return KindObject
	default:
		return KindMixed
	}
}

// orderClass gives the total order rank of §4.6: null < bool < number <
// string < array < object.
func orderClass(v interface{}) int {
	switch KindOf(v) {
	case KindNull:
		return 0
	case KindBool:
		return 1
	case KindInt, KindFloat:
		return 2
	case KindString:
		return 3
	case KindArray:
		return 4
	case KindObject:
		return 5
	default:
		return 6
	}
}

// AsFloat64 reports whether v is a JSON number (int or float) and its
// magnitude, promoting integers the way §4.6 requires for numeric compare.
func AsFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// AsInt64 reports whether v is an integral JSON number, without losing
// precision by round-tripping through float64.
func AsInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

// IsNumeric reports whether v is an int or float value.
func IsNumeric(v interface{}) bool {
	k := KindOf(v)
	return k == KindInt || k == KindFloat
}

// Compare implements the total order of §4.6. It is only meaningful when at
// least one side is comparable under that order; ties within a class are
// broken structurally.
func Compare(a, b interface{}) int {
	ca, cb := orderClass(a), orderClass(b)
	if ca != cb {
		if ca < cb {
			return -1
		}
		return 1
	}
	switch ca {
	case 0: // null
		return 0
	case 1: // bool
		ab, bb := a.(bool), b.(bool)
		if ab == bb {
			return 0
		}
		if !ab && bb {
			return -1
		}
		return 1
	case 2: // number
		af, _ := AsFloat64(a)
		bf, _ := AsFloat64(b)
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	case 3: // string
		as, bs := a.(string), b.(string)
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		default:
			return 0
		}
	case 4: // array
		aa, ba := a.([]interface{}), b.([]interface{})
		n := len(aa)
		if len(ba) < n {
			n = len(ba)
		}
		for i := 0; i < n; i++ {
			if c := Compare(aa[i], ba[i]); c != 0 {
				return c
			}
		}
		switch {
		case len(aa) < len(ba):
			return -1
		case len(aa) > len(ba):
			return 1
		default:
			return 0
		}
	case 5: // object
		return compareObjects(a.(map[string]interface{}), b.(map[string]interface{}))
	default:
		return 0
	}
}

func compareObjects(a, b map[string]interface{}) int {
	ak := sortedKeys(a)
	bk := sortedKeys(b)
	n := len(ak)
	if len(bk) < n {
		n = len(bk)
	}
	for i := 0; i < n; i++ {
		if ak[i] != bk[i] {
			if ak[i] < bk[i] {
				return -1
			}
			return 1
		}
		if c := Compare(a[ak[i]], b[bk[i]]); c != 0 {
			return c
		}
	}
	switch {
	case len(ak) < len(bk):
		return -1
	case len(ak) > len(bk):
		return 1
	default:
		return 0
	}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal implements `=` (§4.6): value equality with numeric cross-type
// equivalence (1 equals 1.0); mismatched top-level types are not equal, not
// an error.
func Equal(a, b interface{}) bool {
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}
	if IsNumeric(a) && IsNumeric(b) {
		af, _ := AsFloat64(a)
		bf, _ := AsFloat64(b)
		return af == bf
	}
	if KindOf(a) != KindOf(b) {
		return false
	}
	switch KindOf(a) {
	case KindBool:
		return a.(bool) == b.(bool)
	case KindString:
		return a.(string) == b.(string)
	case KindArray, KindObject:
		return Compare(a, b) == 0
	default:
		return false
	}
}

// IsNull reports whether v is JSON null or a missing field (represented as
// a Go nil interface).
func IsNull(v interface{}) bool {
	return v == nil
}

// Arithmetic implements §4.6: int⊕int -> int (overflow promotes to float)
// for + - * %, while '/' always yields a float; any float operand -> float; a non-numeric operand propagates null;
// division/modulo by zero yields null.
func Add(a, b interface{}) (interface{}, error) { return arith(a, b, '+') }
func Sub(a, b interface{}) (interface{}, error) { return arith(a, b, '-') }
func Mul(a, b interface{}) (interface{}, error) { return arith(a, b, '*') }
func Div(a, b interface{}) (interface{}, error) { return arith(a, b, '/') }
func Mod(a, b interface{}) (interface{}, error) { return arith(a, b, '%') }

func arith(a, b interface{}, op byte) (interface{}, error) {
	if IsNull(a) || IsNull(b) || !IsNumeric(a) || !IsNumeric(b) {
		return nil, nil
	}

	ai, aIsInt := AsInt64(a)
	bi, bIsInt := AsInt64(b)
	if aIsInt && bIsInt && op != '/' {
		switch op {
		case '+':
			r := ai + bi
			if overflowsAdd(ai, bi, r) {
				af, _ := AsFloat64(a)
				bf, _ := AsFloat64(b)
				return af + bf, nil
			}
			return r, nil
		case '-':
			r := ai - bi
			if overflowsSub(ai, bi, r) {
				af, _ := AsFloat64(a)
				bf, _ := AsFloat64(b)
				return af - bf, nil
			}
			return r, nil
		case '*':
			if ai == 0 || bi == 0 {
				return int64(0), nil
			}
			r := ai * bi
			if r/ai != bi {
				af, _ := AsFloat64(a)
				bf, _ := AsFloat64(b)
				return af * bf, nil
			}
			return r, nil
		case '%':
			if bi == 0 {
				return nil, nil
			}
			return ai % bi, nil
		}
	}

	af, _ := AsFloat64(a)
	bf, _ := AsFloat64(b)
	switch op {
	case '+':
		return af + bf, nil
	case '-':
		return af - bf, nil
	case '*':
		return af * bf, nil
	case '/':
		if bf == 0 {
			return nil, nil
		}
		return af / bf, nil
	case '%':
		if bf == 0 {
			return nil, nil
		}
		return float64(int64(af) % int64(bf)), nil
	}
	return nil, fmt.Errorf("unreachable arithmetic op %q", op)
}

func overflowsAdd(a, b, r int64) bool {
	return (b > 0 && r < a) || (b < 0 && r > a)
}

func overflowsSub(a, b, r int64) bool {
	return (b < 0 && r < a) || (b > 0 && r > a)
}

// Tribool is the three-valued logic domain of §4.5/§4.6.
type Tribool int

const (
	Unknown Tribool = iota
	False
	True
)

// FromBool lifts a hard boolean into the three-valued domain.
func FromBool(b bool) Tribool {
	if b {
		return True
	}
	return False
}

// FromValue interprets a JSON value as a predicate result: true/false are
// direct, null and any other runtime type are Unknown.
func FromValue(v interface{}) Tribool {
	if b, ok := v.(bool); ok {
		return FromBool(b)
	}
	return Unknown
}

func (t Tribool) Not() Tribool {
	switch t {
	case True:
		return False
	case False:
		return True
	default:
		return Unknown
	}
}

func And(a, b Tribool) Tribool {
	if a == False || b == False {
		return False
	}
	if a == Unknown || b == Unknown {
		return Unknown
	}
	return True
}

func Or(a, b Tribool) Tribool {
	if a == True || b == True {
		return True
	}
	if a == Unknown || b == Unknown {
		return Unknown
	}
	return False
}

// IsTrue reports whether t evaluates to true at a final predicate boundary
// (WHERE/HAVING/JOIN ON); Unknown is treated as non-matching there, never
// collapsed into False earlier in the pipeline.
func (t Tribool) IsTrue() bool {
	return t == True
}
