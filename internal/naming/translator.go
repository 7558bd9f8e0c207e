// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package naming translates Vulkan registry identifiers into idiomatic Go
// names: type names lose the Vk prefix and any extension tag, FlagBits
// collapses into Flags, and SCREAMING_SNAKE enum values become PascalCase
// without the repeated enum name.
package naming

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// TypePrefix starts every registry type name.
	TypePrefix = "Vk"

	// CommandPrefix starts every registry command name.
	CommandPrefix = "vk"

	// ValuePrefix is the first token of enum values and constants.
	ValuePrefix = "VK"

	// FlagBitsMarker names the bit enumeration of a bitmask pair.
	FlagBitsMarker = "FlagBits"

	// FlagsToken replaces FlagBitsMarker in translated names.
	FlagsToken = "Flags"

	// BitMarker is the trailing token of a single bitmask value.
	BitMarker = "BIT"

	// DigitMarker is prepended to names that would start with a digit.
	DigitMarker = "X"
)

// ErrMalformedName is returned when an identifier cannot be translated.
var ErrMalformedName = errors.New("malformed name")

// Translator converts registry identifiers using a fixed set of extension
// suffixes. It holds no mutable state after New returns and is safe for
// concurrent use.
type Translator struct {
	suffixes []string
	policies map[string]EnumPolicy
}

// New returns a Translator over the given extension suffixes ("KHR", "EXT",
// ...). Empty and repeated suffixes are dropped. Options apply in order.
func New(suffixes []string, opts ...Option) *Translator {
	t := &Translator{policies: DefaultPolicies()}
	for _, s := range suffixes {
		if s == "" || slices.Contains(t.suffixes, s) {
			continue
		}
		t.suffixes = append(t.suffixes, s)
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Suffixes returns the registered extension suffixes in registration order.
func (t *Translator) Suffixes() []string {
	return slices.Clone(t.suffixes)
}

// Policy returns the override policy for a translated enum name.
func (t *Translator) Policy(enumName string) EnumPolicy {
	return t.policies[enumName]
}

// IsSuffix reports whether s is a registered extension suffix.
func (t *Translator) IsSuffix(s string) bool {
	return slices.Contains(t.suffixes, s)
}

// MatchSuffix returns the longest registered suffix that ends name.
// Ties keep the suffix registered first.
func (t *Translator) MatchSuffix(name string) string {
	best := ""
	for _, s := range t.suffixes {
		if len(s) > len(best) && strings.HasSuffix(name, s) {
			best = s
		}
	}
	return best
}

// ConvertTypeName translates a registry type name. It returns the base name
// and the extension tag ("" when none). ok is false when raw does not carry
// the Vk prefix or nothing remains after stripping; such names are not
// registry types and should be passed through unchanged.
func (t *Translator) ConvertTypeName(raw string) (base, ext string, ok bool) {
	if !strings.HasPrefix(raw, TypePrefix) {
		return "", "", false
	}
	ext = t.MatchSuffix(raw)
	end := len(raw) - len(ext)
	if end < len(TypePrefix) {
		return "", "", false
	}
	base = collapseFlagBits(raw[len(TypePrefix):end])
	if base == "" {
		return "", "", false
	}
	return base, ext, true
}

// collapseFlagBits rewrites a trailing FlagBits marker, optionally followed
// by a version digit run, into Flags ("AccessFlagBits2" -> "AccessFlags2").
func collapseFlagBits(name string) string {
	digits := len(name)
	for digits > 0 && unicode.IsDigit(rune(name[digits-1])) {
		digits--
	}
	head, version := name[:digits], name[digits:]
	if !strings.HasSuffix(head, FlagBitsMarker) {
		return name
	}
	return strings.TrimSuffix(head, FlagBitsMarker) + FlagsToken + version
}

// isFlagsName reports whether a translated enum name ends in the unified
// Flags token, optionally followed by digits.
func isFlagsName(name string) bool {
	return strings.HasSuffix(strings.TrimRightFunc(name, unicode.IsDigit), FlagsToken)
}

// PrefixWords returns how many leading value words repeat enumName: one per
// capital letter, less the Flags token, plus one for a version digit run
// after Flags, which the registry spells as its own token
// (PipelineStageFlags2 values start VK_PIPELINE_STAGE_2_). Digits inside a
// word do not count (H264 in VideoEncodeH264CapabilityFlags is one token).
func (t *Translator) PrefixWords(enumName string) int {
	if t.policies[enumName].ZeroPrefix {
		return 0
	}
	words := Words(enumName)
	n := 0
	for _, w := range words {
		if unicode.IsUpper(rune(w[0])) {
			n++
		}
	}
	if isFlagsName(enumName) {
		n--
		if last := words[len(words)-1]; unicode.IsDigit(rune(last[0])) {
			n++
		}
	}
	return n
}

// ConvertEnumValueName translates a SCREAMING_SNAKE enum value, given the
// translated base name of its enclosing enum (no extension tag).
//
//	ConvertEnumValueName("VK_SHADER_STAGE_VERTEX_BIT", "ShaderStageFlags") == "Vertex"
func (t *Translator) ConvertEnumValueName(raw, enumName string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("enum %q: empty value: %w", enumName, ErrMalformedName)
	}
	policy := t.policies[enumName]
	if !policy.ZeroPrefix && !strings.ContainsFunc(enumName, unicode.IsUpper) {
		return "", fmt.Errorf("value %q: enum name %q has no capitalized words: %w", raw, enumName, ErrMalformedName)
	}

	tokens := valueTokens(raw)
	end := len(tokens)
	if !policy.KeepExtension && end > 0 && t.IsSuffix(tokens[end-1]) {
		end--
	}
	if end > 0 && tokens[end-1] == BitMarker {
		end--
	}
	start := t.PrefixWords(enumName)
	if start >= end {
		return "", fmt.Errorf("value %q of enum %q: nothing left after prefix: %w", raw, enumName, ErrMalformedName)
	}
	return joinWords(tokens[start:end]), nil
}

// ConvertConstantName translates an API constant such as
// VK_MAX_EXTENSION_NAME_SIZE into MaxExtensionNameSize.
func (t *Translator) ConvertConstantName(raw string) (string, error) {
	tokens := valueTokens(raw)
	if len(tokens) == 0 {
		return "", fmt.Errorf("constant %q: %w", raw, ErrMalformedName)
	}
	return joinWords(tokens), nil
}

// ConvertCommandName strips the vk prefix from a command name. The
// extension tag is kept so promoted aliases stay distinct.
func (t *Translator) ConvertCommandName(raw string) (string, bool) {
	if !strings.HasPrefix(raw, CommandPrefix) || len(raw) == len(CommandPrefix) {
		return "", false
	}
	return raw[len(CommandPrefix):], true
}

// valueTokens splits a raw value name on underscores and drops the VK token
// and empty tokens.
func valueTokens(raw string) []string {
	parts := strings.Split(raw, "_")
	tokens := make([]string, 0, len(parts))
	for i, p := range parts {
		if p == "" || (i == 0 && p == ValuePrefix) {
			continue
		}
		tokens = append(tokens, p)
	}
	return tokens
}

// joinWords title-cases each token and concatenates them, prefixing the
// result with DigitMarker when it starts with a digit.
func joinWords(tokens []string) string {
	caser := cases.Title(language.Und)
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(titleToken(caser, tok))
	}
	name := b.String()
	if name != "" && unicode.IsDigit(rune(name[0])) {
		return DigitMarker + name
	}
	return name
}

// titleToken title-cases a single raw token. Alphabetic tokens go through
// the Unicode title caser ("SRGB" -> "Srgb"). Tokens that start with a
// digit keep their letters upper case ("1D"). Other alphanumeric tokens get
// an upper-case first letter and lower-case rest ("R8G8" -> "R8g8").
func titleToken(caser cases.Caser, tok string) string {
	if tok == "" {
		return ""
	}
	first := rune(tok[0])
	switch {
	case unicode.IsDigit(first):
		return strings.ToUpper(tok)
	case isAlpha(tok):
		return caser.String(tok)
	default:
		return string(unicode.ToUpper(first)) + strings.ToLower(tok[1:])
	}
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
