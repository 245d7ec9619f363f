// Copyright © 2026, Docsift Authors.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package outline

import (
	"path/filepath"
	"strings"
	"unicode"
)

// titleHintWords is the fixed vocabulary a document title is expected to
// borrow from. The list skews toward technical and report-style documents.
var titleHintWords = map[string]bool{
	"overview":      true,
	"guide":         true,
	"introduction":  true,
	"foundation":    true,
	"foundations":   true,
	"manual":        true,
	"handbook":      true,
	"report":        true,
	"study":         true,
	"analysis":      true,
	"tutorial":      true,
	"reference":     true,
	"specification": true,
	"documentation": true,
	"proposal":      true,
	"plan":          true,
	"review":        true,
	"summary":       true,
	"whitepaper":    true,
	"notes":         true,
}

// allowed non-alphanumeric characters inside a title-shaped line.
const titlePunctuation = " ,.:;'\"-&()/?!"

// extractTitle scans the first lines of the document for a title-shaped
// string. It prefers a well-shaped line containing a vocabulary hint, then
// any reasonable line containing a hint, and finally synthesizes a title
// from the source filename.
func extractTitle(lines []string, filename string, scanLimit int) string {
	if scanLimit <= 0 {
		scanLimit = 100
	}
	if len(lines) > scanLimit {
		lines = lines[:scanLimit]
	}

	for _, line := range lines {
		if isBoilerplateLine(line) {
			continue
		}
		if isTitleShaped(line) && containsHintWord(line) {
			return line
		}
	}

	for _, line := range lines {
		if isBoilerplateLine(line) {
			continue
		}
		if len(line) >= 10 && len(line) <= 100 && containsHintWord(line) {
			return line
		}
	}

	return fallbackTitle(filename)
}

// fallbackTitle derives a title from the source filename, extension
// stripped.
func fallbackTitle(filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if stem == "" || stem == "." {
		stem = "document"
	}
	return "Document from " + stem
}

// isTitleShaped accepts lines of 10-80 chars that start with a capital
// letter and contain only letters, digits and allowed punctuation.
func isTitleShaped(line string) bool {
	if len(line) < 10 || len(line) > 80 {
		return false
	}
	runes := []rune(line)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		if !strings.ContainsRune(titlePunctuation, r) {
			return false
		}
	}
	return true
}

// containsHintWord reports whether any word of the line is in the title
// vocabulary.
func containsHintWord(line string) bool {
	for w := range wordSet(line) {
		if titleHintWords[w] {
			return true
		}
	}
	return false
}

// isBoilerplateLine suppresses known non-title lines during the title scan.
func isBoilerplateLine(line string) bool {
	key := normalizeKey(line)
	if boilerplatePhrases[key] {
		return true
	}
	if pageNumberRE.MatchString(key) {
		return true
	}
	return pageMarkerRE.MatchString(strings.TrimSpace(line))
}
