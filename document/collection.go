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
	"fmt"

	"github.com/google/uuid"

	"github.com/foskdb/fosk/guard"
)

// Collection is a named, ordered sequence of documents with unique
// identifiers (§3). Order of insertion is preserved for deterministic scans.
// Every exported method acquires the appropriate guard.Permission for its
// duration, giving the reader/writer exclusion of §5.
type Collection struct {
	name   string
	idKey  string
	idType IDType

	g *guard.Guard

	docs    []Document
	byID    map[interface{}]int // id -> index into docs
	nextInt int64
}

// NewCollection creates an empty collection. idKey is the document field
// used as identifier; idType selects how missing ids are assigned (§6.1).
func NewCollection(name string, idType IDType, idKey string) *Collection {
	return &Collection{
		name:    name,
		idKey:   idKey,
		idType:  idType,
		g:       guard.New(),
		byID:    make(map[interface{}]int),
		nextInt: 1,
	}
}

// Name returns the collection's name.
func (c *Collection) Name() string { return c.name }

// assignID mutates doc in place with a generated id if its id field is
// absent, per the strategy configured for this collection. Caller must hold
// the write guard.
func (c *Collection) assignID(doc Document) (interface{}, error) {
	if c.idKey == "" {
		return nil, nil
	}
	if existing, ok := doc[c.idKey]; ok && existing != nil {
		return existing, nil
	}
	switch c.idType {
	case IDInt:
		id := c.nextInt
		c.nextInt++
		doc[c.idKey] = id
		return id, nil
	case IDUuid:
		id := uuid.New().String()
		doc[c.idKey] = id
		return id, nil
	default:
		return nil, nil
	}
}

// Add inserts a single document, assigning an id if the collection's
// strategy calls for one. Returns the stored document (with id populated).
func (c *Collection) Add(doc Document) (Document, error) {
	var stored Document
	err := c.g.WithWrite(func() error {
		d := doc.Clone()
		id, err := c.assignID(d)
		if err != nil {
			return err
		}
		if id != nil {
			if _, exists := c.byID[id]; exists {
				return ErrDuplicateID.New(id)
			}
		}
		c.docs = append(c.docs, d)
		if id != nil {
			c.byID[id] = len(c.docs) - 1
		}
		stored = d
		return nil
	})
	return stored, err
}

// AddBatch inserts multiple documents atomically with respect to other
// writers; either all succeed or none are applied.
func (c *Collection) AddBatch(docs []Document) ([]Document, error) {
	var stored []Document
	err := c.g.WithWrite(func() error {
		startLen := len(c.docs)
		clones := make([]Document, 0, len(docs))
		seen := make(map[interface{}]bool, len(docs))
		for _, doc := range docs {
			d := doc.Clone()
			id, err := c.assignID(d)
			if err != nil {
				return err
			}
			if id != nil {
				if _, exists := c.byID[id]; exists {
					return ErrDuplicateID.New(id)
				}
				if seen[id] {
					return ErrDuplicateID.New(id)
				}
				seen[id] = true
			}
			clones = append(clones, d)
		}
		for _, d := range clones {
			c.docs = append(c.docs, d)
			if c.idKey != "" {
				if id, ok := d[c.idKey]; ok && id != nil {
					c.byID[id] = len(c.docs) - 1
				}
			}
		}
		stored = c.docs[startLen:]
		return nil
	})
	return stored, err
}

// UpdateFull replaces the document with the given id entirely, keeping the
// id field itself stable.
func (c *Collection) UpdateFull(id interface{}, doc Document) (Document, error) {
	var stored Document
	err := c.g.WithWrite(func() error {
		idx, ok := c.byID[id]
		if !ok {
			return ErrNotFound.New(id)
		}
		d := doc.Clone()
		if c.idKey != "" {
			d[c.idKey] = id
		}
		c.docs[idx] = d
		stored = d
		return nil
	})
	return stored, err
}

// UpdatePartial merges patch's fields into the existing document, leaving
// unmentioned fields untouched.
func (c *Collection) UpdatePartial(id interface{}, patch Document) (Document, error) {
	var stored Document
	err := c.g.WithWrite(func() error {
		idx, ok := c.byID[id]
		if !ok {
			return ErrNotFound.New(id)
		}
		d := c.docs[idx].Clone()
		for k, v := range patch {
			if c.idKey != "" && k == c.idKey {
				continue
			}
			d[k] = v
		}
		c.docs[idx] = d
		stored = d
		return nil
	})
	return stored, err
}

// Delete removes the document with the given id. Returns whether it existed.
func (c *Collection) Delete(id interface{}) (bool, error) {
	var existed bool
	err := c.g.WithWrite(func() error {
		idx, ok := c.byID[id]
		if !ok {
			return nil
		}
		existed = true
		c.docs = append(c.docs[:idx], c.docs[idx+1:]...)
		delete(c.byID, id)
		for otherID, otherIdx := range c.byID {
			if otherIdx > idx {
				c.byID[otherID] = otherIdx - 1
			}
		}
		return nil
	})
	return existed, err
}

// Get returns the document with the given id.
func (c *Collection) Get(id interface{}) (Document, bool, error) {
	var found Document
	var ok bool
	err := c.g.WithRead(func() error {
		idx, exists := c.byID[id]
		if exists {
			found = c.docs[idx].Clone()
			ok = true
		}
		return nil
	})
	return found, ok, err
}

// Exists reports whether a document with the given id is present.
func (c *Collection) Exists(id interface{}) (bool, error) {
	var ok bool
	err := c.g.WithRead(func() error {
		_, ok = c.byID[id]
		return nil
	})
	return ok, err
}

// Count returns the number of documents in the collection.
func (c *Collection) Count() (int, error) {
	var n int
	err := c.g.WithRead(func() error {
		n = len(c.docs)
		return nil
	})
	return n, err
}

// Clear removes every document from the collection.
func (c *Collection) Clear() error {
	return c.g.WithWrite(func() error {
		c.docs = nil
		c.byID = make(map[interface{}]int)
		c.nextInt = 1
		return nil
	})
}

// Scan returns a snapshot of every document, in insertion order. The read
// guard is held only for the duration of the copy (§5: "Implementations are
// free to snapshot rows eagerly to shorten guard hold time").
func (c *Collection) Scan() ([]Document, error) {
	var out []Document
	err := c.g.WithRead(func() error {
		out = make([]Document, len(c.docs))
		for i, d := range c.docs {
			out[i] = d.Clone()
		}
		return nil
	})
	return out, err
}

// ScanPage returns up to limit documents starting at offset, in insertion
// order (§6.2 paginated scan).
func (c *Collection) ScanPage(offset, limit int) ([]Document, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("document: negative offset/limit")
	}
	all, err := c.Scan()
	if err != nil {
		return nil, err
	}
	if offset >= len(all) {
		return []Document{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
