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

// Package guard implements the reader/writer exclusion primitive of §5: each
// collection is protected by one Guard. Scans acquire a read permit for the
// duration of the scan; mutations acquire a write permit. Multiple queries
// may scan a collection concurrently; a writer excludes readers and vice
// versa.
package guard

import (
	"strings"
	"sync"
)

// Permission identifies which side of the reader/writer exclusion a caller
// is asking for.
type Permission int

const (
	// ReadPermission is requested by a Scan for the duration of its pass
	// over one collection.
	ReadPermission Permission = 1 << iota
	// WritePermission is requested by insert/update/delete/clear.
	WritePermission
)

// String names the permission, the way dolthub/go-mysql-server's
// auth.Permission does for its read/write bits.
func (p Permission) String() string {
	var parts []string
	if p&ReadPermission != 0 {
		parts = append(parts, "read")
	}
	if p&WritePermission != 0 {
		parts = append(parts, "write")
	}
	return strings.Join(parts, ", ")
}

// Guard is the reader/writer exclusion primitive for one collection. It is
// a thin, intention-revealing wrapper around sync.RWMutex: Acquire(Read)
// maps to RLock, Acquire(Write) maps to Lock. A guard held across a Scan's
// iteration must be released as soon as the scan has materialized its rows
// into the join working set (§5); it must never be held across a stage
// boundary beyond that.
type Guard struct {
	mu sync.RWMutex
}

// New returns an unlocked Guard.
func New() *Guard {
	return &Guard{}
}

// Acquire blocks until permission is granted, and returns a Release func
// the caller must invoke exactly once to give it back.
func (g *Guard) Acquire(p Permission) (release func()) {
	switch p {
	case WritePermission:
		g.mu.Lock()
		return g.mu.Unlock
	default:
		g.mu.RLock()
		return g.mu.RUnlock
	}
}

// WithRead runs fn while holding a read permit, and releases it before
// returning, even if fn panics.
func (g *Guard) WithRead(fn func() error) error {
	release := g.Acquire(ReadPermission)
	defer release()
	return fn()
}

// WithWrite runs fn while holding a write permit, and releases it before
// returning, even if fn panics.
func (g *Guard) WithWrite(fn func() error) error {
	release := g.Acquire(WritePermission)
	defer release()
	return fn()
}
