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

package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	require.Equal(t, KindNull, KindOf(nil))
	require.Equal(t, KindBool, KindOf(true))
	require.Equal(t, KindInt, KindOf(int64(3)))
	require.Equal(t, KindFloat, KindOf(3.5))
	require.Equal(t, KindString, KindOf("s"))
	require.Equal(t, KindArray, KindOf([]interface{}{1}))
	require.Equal(t, KindObject, KindOf(map[string]interface{}{"a": 1}))
}

func TestEqualNumericCrossType(t *testing.T) {
	require.True(t, Equal(int64(1), 1.0))
	require.True(t, Equal(1.0, int64(1)))
	require.False(t, Equal(int64(1), "1"))
	require.True(t, Equal(nil, nil))
	require.False(t, Equal(nil, false))
}

func TestTotalOrder(t *testing.T) {
	require.True(t, Compare(nil, false) < 0)
	require.True(t, Compare(false, true) < 0)
	require.True(t, Compare(true, int64(0)) < 0)
	require.True(t, Compare(int64(1), "a") < 0)
	require.True(t, Compare("a", []interface{}{}) < 0)
	require.True(t, Compare([]interface{}{}, map[string]interface{}{}) < 0)
	require.Equal(t, 0, Compare(int64(2), 2.0))
}

func TestArithmeticOverflowPromotesToFloat(t *testing.T) {
	r, err := Add(int64(9223372036854775807), int64(1))
	require.NoError(t, err)
	_, isFloat := r.(float64)
	require.True(t, isFloat)
}

func TestArithmeticNullPropagation(t *testing.T) {
	r, err := Add(nil, int64(1))
	require.NoError(t, err)
	require.Nil(t, r)

	r, err = Add("x", int64(1))
	require.NoError(t, err)
	require.Nil(t, r)
}

func TestDivisionByZeroYieldsNull(t *testing.T) {
	r, err := Div(int64(4), int64(0))
	require.NoError(t, err)
	require.Nil(t, r)

	r, err = Mod(int64(4), int64(0))
	require.NoError(t, err)
	require.Nil(t, r)
}

func TestTriboolLogic(t *testing.T) {
	require.Equal(t, Unknown, Unknown.Not())
	require.Equal(t, Unknown, And(True, Unknown))
	require.Equal(t, False, And(False, Unknown))
	require.Equal(t, True, Or(True, Unknown))
	require.Equal(t, Unknown, Or(False, Unknown))
}
