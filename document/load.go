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
	"encoding/json"
	"fmt"
	"os"

	pkgerrors "github.com/pkg/errors"
)

// LoadFromJSON bulk-loads documents from a decoded JSON value (§6.2 "Load
// from/write to JSON value or file"): a JSON array loads one document per
// element; a single JSON object loads one document.
func (c *Collection) LoadFromJSON(v interface{}) error {
	docs, err := toDocuments(v)
	if err != nil {
		return err
	}
	_, err = c.AddBatch(docs)
	return err
}

// LoadFromFile reads a JSON file from disk and loads its documents, the way
// dolthub/go-mysql-server's auth.loadNativeFile reads its user file: read
// the whole file, then json.Unmarshal into a generic value.
func (c *Collection) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return pkgerrors.Wrapf(err, "document: reading %s", path)
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return pkgerrors.Wrapf(err, "document: parsing %s", path)
	}
	return c.LoadFromJSON(v)
}

// WriteToJSON returns the collection's documents as a JSON-marshalable
// value: an array of objects, in insertion order.
func (c *Collection) WriteToJSON() (interface{}, error) {
	docs, err := c.Scan()
	if err != nil {
		return nil, err
	}
	out := make([]map[string]interface{}, len(docs))
	for i, d := range docs {
		out[i] = map[string]interface{}(d)
	}
	return out, nil
}

// WriteToFile serializes the collection to a JSON file on disk.
func (c *Collection) WriteToFile(path string) error {
	v, err := c.WriteToJSON()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return pkgerrors.Wrap(err, "document: marshaling collection")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return pkgerrors.Wrapf(err, "document: writing %s", path)
	}
	return nil
}

func toDocuments(v interface{}) ([]Document, error) {
	switch val := v.(type) {
	case []interface{}:
		docs := make([]Document, 0, len(val))
		for _, item := range val {
			obj, ok := item.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("document: array element is not a JSON object")
			}
			docs = append(docs, Document(obj))
		}
		return docs, nil
	case map[string]interface{}:
		return []Document{Document(val)}, nil
	default:
		return nil, fmt.Errorf("document: expected a JSON object or array of objects")
	}
}
