/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package strategy

import (
	"sort"

	"dirpx.dev/jbridge/apis"
)

// NewDescriptorStrategy creates an apis.KeyStrategy that numbers the
// overloads of a name by the lexicographic order of their descriptors.
// Equal descriptors keep their encounter order. Names that occur once keep
// their bare name, as with NewOrdinalStrategy.
//
// Keys produced this way do not depend on the order in which the runtime
// reports members.
func NewDescriptorStrategy() apis.KeyStrategy {
	return descriptorStrategy{}
}

type descriptorStrategy struct{}

// Ensure descriptorStrategy implements apis.KeyStrategy.
var _ apis.KeyStrategy = descriptorStrategy{}

// Keys assigns one key per name. A missing descriptor sorts as "".
// Overload groups are numbered in name order and skip keys already taken,
// as Assign does.
func (descriptorStrategy) Keys(names, descriptors []string) []string {
	counts := Occurrences(names)
	keys := make([]string, len(names))

	groups := make(map[string][]int, len(counts))
	for i, n := range names {
		if counts[n] <= 1 {
			keys[i] = n
			continue
		}
		groups[n] = append(groups[n], i)
	}

	desc := func(i int) string {
		if i < len(descriptors) {
			return descriptors[i]
		}
		return ""
	}

	groupNames := make([]string, 0, len(groups))
	for n := range groups {
		groupNames = append(groupNames, n)
	}
	sort.Strings(groupNames)

	taken := Reserved(names, counts)
	next := make(map[string]int, len(groups))
	for _, n := range groupNames {
		idx := groups[n]
		sort.SliceStable(idx, func(a, b int) bool {
			return desc(idx[a]) < desc(idx[b])
		})
		for _, i := range idx {
			keys[i] = claim(taken, next, n)
		}
	}
	return keys
}
