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
	"strconv"

	"dirpx.dev/jbridge/apis"
)

// NewOrdinalStrategy creates an apis.KeyStrategy that keeps a name as its
// key when it occurs once and suffixes "_<n>" (1-based, in encounter order)
// to every occurrence of a name that occurs more than once.
//
//	["f", "g", "f", "f"] -> ["f_1", "g", "f_2", "f_3"]
func NewOrdinalStrategy() apis.KeyStrategy {
	return ordinalStrategy{}
}

// ordinalStrategy ties overloads by position only; descriptors are ignored.
type ordinalStrategy struct{}

// Ensure ordinalStrategy implements apis.KeyStrategy.
var _ apis.KeyStrategy = ordinalStrategy{}

// Keys assigns one key per name.
func (ordinalStrategy) Keys(names, _ []string) []string {
	return Assign(names, Occurrences(names))
}

// Occurrences counts how many times each name occurs in names.
func Occurrences(names []string) map[string]int {
	counts := make(map[string]int, len(names))
	for _, n := range names {
		counts[n]++
	}
	return counts
}

// Assign walks names in order and returns the bare name for names that
// occur once, and name_<k> for the k-th occurrence of an overloaded name.
// A generated key never repeats a bare name or an earlier key; the ordinal
// skips ahead instead, so ["f", "f", "f_1"] yields ["f_2", "f_3", "f_1"].
func Assign(names []string, counts map[string]int) []string {
	keys := make([]string, len(names))
	taken := Reserved(names, counts)
	next := make(map[string]int, len(counts))
	for i, n := range names {
		if counts[n] <= 1 {
			keys[i] = n
			continue
		}
		keys[i] = claim(taken, next, n)
	}
	return keys
}

// Reserved returns the set of names that occur once and therefore keep
// their bare name as key.
func Reserved(names []string, counts map[string]int) map[string]bool {
	taken := make(map[string]bool, len(names))
	for _, n := range names {
		if counts[n] <= 1 {
			taken[n] = true
		}
	}
	return taken
}

// claim returns the first free name_<k> past next[name] and marks it taken.
func claim(taken map[string]bool, next map[string]int, name string) string {
	for {
		next[name]++
		key := Suffixed(name, next[name])
		if !taken[key] {
			taken[key] = true
			return key
		}
	}
}

// Suffixed returns the overload key for the k-th occurrence of name.
func Suffixed(name string, k int) string {
	return name + "_" + strconv.Itoa(k)
}
