// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package naming

import (
	"strings"
	"unicode"
)

// Capitalize returns name with the first letter uppercased.
// Returns empty string for empty input.
func Capitalize(name string) string {
	if name == "" {
		return ""
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// ExportName returns a Go exported identifier for a registry member or
// parameter name ("sType" -> "SType", "pNext" -> "PNext").
// Names that do not start with a letter are prefixed with DigitMarker.
func ExportName(name string) string {
	if name == "" {
		return ""
	}
	if r := []rune(name)[0]; !unicode.IsLetter(r) {
		return DigitMarker + strings.TrimLeft(name, "_")
	}
	return Capitalize(name)
}

// Words splits a CamelCase identifier into words. A new word starts at
// every upper-case letter and at every run of digits, so
// "PipelineStageFlags2" splits into [Pipeline Stage Flags 2].
func Words(name string) []string {
	var words []string
	start := -1
	prevDigit := false
	for i, r := range name {
		isDigit := unicode.IsDigit(r)
		boundary := unicode.IsUpper(r) || (isDigit && !prevDigit)
		if boundary || start < 0 {
			if start >= 0 {
				words = append(words, name[start:i])
			}
			start = i
		}
		prevDigit = isDigit
	}
	if start >= 0 {
		words = append(words, name[start:])
	}
	return words
}
