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

package document

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foskdb/fosk/value"
)

func TestAddAssignsIntID(t *testing.T) {
	c := NewCollection("People", IDInt, "id")
	d1, err := c.Add(Document{"city": "Porto"})
	require.NoError(t, err)
	require.EqualValues(t, 1, d1["id"])

	d2, err := c.Add(Document{"city": "Lisboa"})
	require.NoError(t, err)
	require.EqualValues(t, 2, d2["id"])
}

func TestAddAssignsUuid(t *testing.T) {
	c := NewCollection("People", IDUuid, "id")
	d, err := c.Add(Document{"city": "Porto"})
	require.NoError(t, err)
	require.IsType(t, "", d["id"])
	require.NotEmpty(t, d["id"])
}

func TestAddRespectsExplicitID(t *testing.T) {
	c := NewCollection("People", IDInt, "id")
	d, err := c.Add(Document{"id": int64(42), "city": "Braga"})
	require.NoError(t, err)
	require.EqualValues(t, 42, d["id"])
}

func TestAddDuplicateIDFails(t *testing.T) {
	c := NewCollection("People", IDInt, "id")
	_, err := c.Add(Document{"id": int64(1)})
	require.NoError(t, err)
	_, err = c.Add(Document{"id": int64(1)})
	require.Error(t, err)
	require.True(t, ErrDuplicateID.Is(err))
}

func TestUpdateFullAndPartial(t *testing.T) {
	c := NewCollection("People", IDInt, "id")
	d, _ := c.Add(Document{"city": "Porto", "age": int64(29)})
	id := d["id"]

	full, err := c.UpdateFull(id, Document{"city": "Lisboa"})
	require.NoError(t, err)
	require.Equal(t, "Lisboa", full["city"])
	_, hasAge := full["age"]
	require.False(t, hasAge)

	partial, err := c.UpdatePartial(id, Document{"age": int64(30)})
	require.NoError(t, err)
	require.Equal(t, "Lisboa", partial["city"])
	require.EqualValues(t, 30, partial["age"])
}

func TestDeleteGetExistsCount(t *testing.T) {
	c := NewCollection("People", IDInt, "id")
	d1, _ := c.Add(Document{"city": "Porto"})
	_, _ = c.Add(Document{"city": "Lisboa"})

	n, err := c.Count()
	require.NoError(t, err)
	require.Equal(t, 2, n)

	ok, err := c.Exists(d1["id"])
	require.NoError(t, err)
	require.True(t, ok)

	existed, err := c.Delete(d1["id"])
	require.NoError(t, err)
	require.True(t, existed)

	_, ok, err = c.Get(d1["id"])
	require.NoError(t, err)
	require.False(t, ok)

	n, _ = c.Count()
	require.Equal(t, 1, n)
}

func TestScanPreservesInsertionOrder(t *testing.T) {
	c := NewCollection("People", IDInt, "id")
	_, _ = c.Add(Document{"city": "Porto"})
	_, _ = c.Add(Document{"city": "Lisboa"})
	_, _ = c.Add(Document{"city": "Braga"})

	docs, err := c.Scan()
	require.NoError(t, err)
	require.Equal(t, []interface{}{"Porto", "Lisboa", "Braga"}, cities(docs))
}

func TestScanPage(t *testing.T) {
	c := NewCollection("People", IDInt, "id")
	for i := 0; i < 5; i++ {
		_, _ = c.Add(Document{"n": int64(i)})
	}
	page, err := c.ScanPage(2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.EqualValues(t, 2, page[0]["n"])
	require.EqualValues(t, 3, page[1]["n"])
}

func TestClear(t *testing.T) {
	c := NewCollection("People", IDInt, "id")
	_, _ = c.Add(Document{"city": "Porto"})
	require.NoError(t, c.Clear())
	n, _ := c.Count()
	require.Equal(t, 0, n)
	d, _ := c.Add(Document{"city": "Lisboa"})
	require.EqualValues(t, 1, d["id"])
}

func cities(docs []Document) []interface{} {
	out := make([]interface{}, len(docs))
	for i, d := range docs {
		out[i] = d["city"]
	}
	return out
}

func TestInferSchemaMixedAndNull(t *testing.T) {
	c := NewCollection("T", IDNone, "")
	_, _ = c.Add(Document{"a": int64(1), "b": "x", "c": nil})
	_, _ = c.Add(Document{"a": "now a string", "b": "y"})

	schema, err := c.InferSchema(64)
	require.NoError(t, err)
	require.Equal(t, value.KindMixed, schema["a"])
	require.Equal(t, value.KindString, schema["b"])
	require.Equal(t, value.KindNull, schema["c"])
}
