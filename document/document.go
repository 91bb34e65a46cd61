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

// Package document implements the collection store: the external
// collaborator of §4.3/§6.2 that the SQL executor's Scan stage depends on.
// It is responsible for insert/update/delete/iterate of JSON documents
// inside named collections, identifier assignment under one of three
// strategies, and the reader/writer exclusion of §5 — everything spec.md
// treats as "out of scope" for the query pipeline itself, specified here
// only by the contract the pipeline consumes.
package document

import (
	"gopkg.in/src-d/go-errors.v1"
)

// Document is an unordered mapping from string keys to JSON values (§3).
type Document map[string]interface{}

// Clone returns a shallow copy of d. Nested arrays/objects are shared, which
// is safe because the executor and callers treat documents as immutable
// once they leave the store (§3 "Rows are immutable within a pipeline
// stage").
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// IDType selects the identifier assignment strategy for a database (§6.1
// Config).
type IDType int

const (
	// IDInt assigns a monotonically increasing int64, starting at 1.
	IDInt IDType = iota
	// IDUuid assigns a randomly generated UUID string.
	IDUuid
	// IDNone performs no assignment; the caller is responsible for the id
	// field, and uniqueness is enforced only when it is present.
	IDNone
)

var (
	// ErrDuplicateID is raised when Add/AddBatch is given a document whose
	// id already exists in the collection.
	ErrDuplicateID = errors.NewKind("duplicate id: %v")
	// ErrNotFound is raised when an operation addresses a document id that
	// does not exist in the collection.
	ErrNotFound = errors.NewKind("document not found: %v")
	// ErrUnknownCollection is raised by the executor's scan when a bound
	// collection is no longer present in the catalog.
	ErrUnknownCollection = errors.NewKind("unknown collection: %s")
)
