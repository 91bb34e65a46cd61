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

// Package catalog is the thin lookup surface the analyzer and executor use
// to resolve collection names to document.Collection handles and their
// inferred schemas (§4.3 list_collections/describe). It owns no storage of
// its own; it wraps a map of collections the way engine.go's Catalog wraps
// its database map.
package catalog

import (
	"sort"
	"sync"

	"github.com/foskdb/fosk/document"
)

// Catalog resolves collection names to document.Collection handles.
type Catalog struct {
	mu          sync.RWMutex
	collections map[string]*document.Collection
	idType      document.IDType
	idKey       string
}

// New creates an empty Catalog. idType/idKey configure newly created
// collections (§6.1 Config).
func New(idType document.IDType, idKey string) *Catalog {
	return &Catalog{
		collections: make(map[string]*document.Collection),
		idType:      idType,
		idKey:       idKey,
	}
}

// Collection returns the named collection, creating it on first reference.
func (cat *Catalog) Collection(name string) *document.Collection {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	c, ok := cat.collections[name]
	if !ok {
		c = document.NewCollection(name, cat.idType, cat.idKey)
		cat.collections[name] = c
	}
	return c
}

// Lookup returns the named collection without creating it.
func (cat *Catalog) Lookup(name string) (*document.Collection, bool) {
	cat.mu.RLock()
	defer cat.mu.RUnlock()
	c, ok := cat.collections[name]
	return c, ok
}

// Drop removes a collection entirely. Reports whether it existed.
func (cat *Catalog) Drop(name string) bool {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	_, ok := cat.collections[name]
	delete(cat.collections, name)
	return ok
}

// List returns every known collection name, sorted.
func (cat *Catalog) List() []string {
	cat.mu.RLock()
	defer cat.mu.RUnlock()
	names := make([]string, 0, len(cat.collections))
	for name := range cat.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear drops every collection.
func (cat *Catalog) Clear() {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	cat.collections = make(map[string]*document.Collection)
}
