// Copyright © 2026, Docsift Authors.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package outline

import "regexp"

// Ordered level pattern tables, checked deepest level first so "1.2.3" is
// not swallowed by the "1." rule. Textual numbering always beats the font
// fallback.
var (
	h3Patterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d+\.\d+\.\d+\s`),
	}
	h2Patterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d+\.\d+\s`),
		regexp.MustCompile(`(?i)^section\s+\d+`),
	}
	h1Patterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d+\.\s`),
		regexp.MustCompile(`(?i)^chapter\s+\d+`),
		regexp.MustCompile(`(?i)^(acknowledgements?|references|bibliography|appendix(\s+[A-Z])?|abstract|introduction|conclusions?|summary|glossary|index)\b`),
	}
)

// classifyLevel assigns H1/H2/H3 to a surviving candidate. It is a pure
// function of the text, font size and weight; no cross-candidate state.
func classifyLevel(text string, fontSize float64, bold bool) Level {
	for _, re := range h3Patterns {
		if re.MatchString(text) {
			return H3
		}
	}
	for _, re := range h2Patterns {
		if re.MatchString(text) {
			return H2
		}
	}
	for _, re := range h1Patterns {
		if re.MatchString(text) {
			return H1
		}
	}
	if isAllCaps(text) && len(text) > 10 {
		return H1
	}

	// Font fallback when nothing textual matched.
	switch {
	case fontSize > 16 || (fontSize > 14 && bold):
		return H1
	case fontSize > 12 || bold:
		return H2
	default:
		return H3
	}
}
