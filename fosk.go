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

// Package fosk is an embeddable, in-process JSON document database with a
// SQL-like query engine (§1). Database wires the tokenizer, parser,
// analyzer, and executor into one Query/QueryWithArgs call, the way
// engine.go wires go-mysql-server's planbuilder and rowexec packages
// behind Engine.Query.
package fosk

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/foskdb/fosk/analyzer"
	"github.com/foskdb/fosk/catalog"
	"github.com/foskdb/fosk/document"
	"github.com/foskdb/fosk/rowexec"
	"github.com/foskdb/fosk/sqlparser"
)

// Config configures a Database (§6.1).
type Config struct {
	// IDType selects how a collection assigns an id to a document that
	// doesn't already carry one.
	IDType document.IDType
	// IDKey names the document field treated as the identifier. Defaults
	// to "id" when empty.
	IDKey string
	// SchemaSampleCap bounds how many documents InferSchema and the
	// analyzer's identifier resolution sample per collection (§4.3).
	// Defaults to 200 when zero; the floor of 64 is enforced regardless.
	SchemaSampleCap int
	// Logger receives one structured entry per executed query. Defaults
	// to logrus.StandardLogger() when nil.
	Logger *logrus.Logger
}

// Database is an embeddable collection store with a SQL query surface.
type Database struct {
	cat       *catalog.Catalog
	sampleCap int
	log       *logrus.Entry
}

// NewDatabase creates an empty Database per cfg.
func NewDatabase(cfg Config) *Database {
	idKey := cfg.IDKey
	if idKey == "" {
		idKey = "id"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Database{
		cat:       catalog.New(cfg.IDType, idKey),
		sampleCap: cfg.SchemaSampleCap,
		log:       logger.WithField("system", "fosk"),
	}
}

// Collection returns the named collection, creating it on first reference.
func (db *Database) Collection(name string) *document.Collection {
	return db.cat.Collection(name)
}

// DropCollection removes a collection entirely. Reports whether it
// existed.
func (db *Database) DropCollection(name string) bool {
	return db.cat.Drop(name)
}

// ListCollections returns every known collection name, sorted (§4.3
// list_collections).
func (db *Database) ListCollections() []string {
	return db.cat.List()
}

// Clear drops every collection.
func (db *Database) Clear() {
	db.cat.Clear()
}

// Query runs a parameterless SELECT statement.
func (db *Database) Query(sql string) ([]map[string]interface{}, error) {
	return db.QueryWithArgs(sql, nil)
}

// QueryWithArgs runs a SELECT statement, substituting args left-to-right
// for its '?' placeholders (§4.2). Each call is audited with the query
// text, its outcome, and its duration, in the style of auth/audit.go's
// AuditLog.
func (db *Database) QueryWithArgs(sql string, args []interface{}) (result []map[string]interface{}, err error) {
	start := time.Now()
	defer func() {
		db.auditQuery(sql, time.Since(start), len(result), err)
	}()

	stmt, err := sqlparser.Parse(sql)
	if err != nil {
		return nil, errors.Wrap(err, "fosk: parse")
	}

	plan, err := analyzer.Bind(db.cat, stmt, db.sampleCap)
	if err != nil {
		return nil, errors.Wrap(err, "fosk: bind")
	}

	result, err = rowexec.Exec(db.cat, plan, args)
	if err != nil {
		return nil, errors.Wrap(err, "fosk: exec")
	}
	return result, nil
}

func (db *Database) auditQuery(sql string, d time.Duration, rows int, err error) {
	fields := logrus.Fields{
		"query":    sql,
		"duration": d,
		"rows":     rows,
		"success":  true,
	}
	if err != nil {
		fields["success"] = false
		fields["err"] = err
	}
	db.log.WithFields(fields).Info("query executed")
}
