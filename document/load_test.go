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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFromJSONArray(t *testing.T) {
	c := NewCollection("People", IDInt, "id")
	err := c.LoadFromJSON([]interface{}{
		map[string]interface{}{"city": "Porto"},
		map[string]interface{}{"city": "Lisboa"},
	})
	require.NoError(t, err)
	n, _ := c.Count()
	require.Equal(t, 2, n)
}

func TestWriteAndLoadFile(t *testing.T) {
	c := NewCollection("People", IDInt, "id")
	_, _ = c.Add(Document{"city": "Porto"})
	_, _ = c.Add(Document{"city": "Braga"})

	path := filepath.Join(t.TempDir(), "people.json")
	require.NoError(t, c.WriteToFile(path))

	c2 := NewCollection("People", IDInt, "id")
	require.NoError(t, c2.LoadFromFile(path))
	n, _ := c2.Count()
	require.Equal(t, 2, n)
}
