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

package rowexec

import "github.com/foskdb/fosk/document"

// Scan materializes every row contributed by one FROM/JOIN alias. The
// collection's read guard is released as soon as the snapshot copy
// returns (§5), well before any downstream stage runs.
func Scan(alias string, coll *document.Collection) ([]Row, error) {
	docs, err := coll.Scan()
	if err != nil {
		return nil, err
	}
	rows := make([]Row, len(docs))
	for i, doc := range docs {
		rows[i] = fromDocument(alias, doc)
	}
	return rows, nil
}
