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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCrossJoinViaAlwaysTrueCondition(t *testing.T) {
	cat := seedPeopleOrders(t)
	out := run(t, cat, `SELECT p.name, o.total FROM People p JOIN Orders o ON TRUE`)
	require.Len(t, out, 9) // 3 people x 3 orders
}
