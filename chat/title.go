// Copyright 2025 Variant Lab
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

package chat

import "strings"

// greetings is the stop-set of bare salutations that must never trigger
// title generation on their own.
var greetings = map[string]struct{}{
	"hi":             {},
	"hello":          {},
	"greetings":      {},
	"hey":            {},
	"good morning":   {},
	"good evening":   {},
	"good afternoon": {},
	"yo":             {},
	"sup":            {},
	"hola":           {},
}

// isGreeting reports whether the input, case and whitespace normalized,
// is a bare greeting.
func isGreeting(input string) bool {
	_, ok := greetings[strings.ToLower(strings.TrimSpace(input))]
	return ok
}

// cleanTitle normalizes a generated title: trims whitespace and drops
// quote characters the model tends to wrap titles in.
func cleanTitle(title string) string {
	title = strings.TrimSpace(title)
	title = strings.ReplaceAll(title, `"`, "")
	return strings.TrimSpace(title)
}
