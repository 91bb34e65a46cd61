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

import "github.com/foskdb/fosk/value"

// minSampleCap is the floor of §4.3: "sample_cap ≥ 64 documents or the full
// collection, whichever is smaller".
const minSampleCap = 64

// InferSchema samples up to sampleCap documents (or the whole collection,
// whichever is smaller; a sampleCap below 64 is raised to 64) and returns a field -> type-tag map. A field's tag is the unique
// observed tag, Mixed when two distinct non-null tags appear, or the
// non-null tag when the only other observation is null (§4.3).
func (c *Collection) InferSchema(sampleCap int) (map[string]value.Kind, error) {
	if sampleCap < minSampleCap {
		sampleCap = minSampleCap
	}

	var sample []Document
	err := c.g.WithRead(func() error {
		n := len(c.docs)
		if n > sampleCap {
			n = sampleCap
		}
		sample = make([]Document, n)
		for i := 0; i < n; i++ {
			sample[i] = c.docs[i].Clone()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	seenKinds := make(map[string]map[value.Kind]bool)
	sawNull := make(map[string]bool)
	order := make([]string, 0)

	for _, doc := range sample {
		for field, v := range doc {
			if _, ok := seenKinds[field]; !ok {
				seenKinds[field] = make(map[value.Kind]bool)
				order = append(order, field)
			}
			k := value.KindOf(v)
			if k == value.KindNull {
				sawNull[field] = true
				continue
			}
			seenKinds[field][k] = true
		}
	}

	schema := make(map[string]value.Kind, len(order))
	for _, field := range order {
		kinds := seenKinds[field]
		switch len(kinds) {
		case 0:
			schema[field] = value.KindNull
		case 1:
			for k := range kinds {
				schema[field] = k
			}
		default:
			schema[field] = value.KindMixed
		}
	}
	return schema, nil
}
