// Copyright © 2026, Docsift Authors.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package outline

// repairHierarchy forbids level jumps deeper than one step: an H3 directly
// after an H1 is promoted to H2. Single forward pass over the list in its
// final emission order, last level seeded at H1.
func repairHierarchy(headings []Heading) []Heading {
	last := H1
	for i := range headings {
		if headings[i].Level > last+1 {
			headings[i].Level = last + 1
		}
		last = headings[i].Level
	}
	return headings
}
