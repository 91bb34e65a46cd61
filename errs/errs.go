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

// Package errs defines the error kinds surfaced by query execution (§7).
package errs

import "gopkg.in/src-d/go-errors.v1"

var (
	// LexError is raised by the tokenizer on an unterminated string or an
	// unrecognized character.
	LexError = errors.NewKind("lex error at offset %d: %s")

	// ParseError is raised by the parser on a grammar violation, carrying
	// the offending token's offset.
	ParseError = errors.NewKind("parse error at offset %d: %s")

	// BindError is raised by the analyzer (unknown collection, unknown
	// field, ambiguous field, aggregate misuse, a non-grouped projection)
	// and by rowexec.Exec on a parameter-arity mismatch.
	BindError = errors.NewKind("bind error: %s")

	// TypeError is raised only where coercion is not defined; most type
	// disagreements silently produce null instead (§4.6).
	TypeError = errors.NewKind("type error: %s")

	// RuntimeError signals an internal invariant violation.
	RuntimeError = errors.NewKind("runtime error: %s")
)
