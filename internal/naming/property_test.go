// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package naming

import (
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// wordGen generates PascalCase words that are neither the bit marker nor a
// registered suffix once upper-cased.
func wordGen(tr *Translator) gopter.Gen {
	return gen.RegexMatch("[A-Z][a-z]{2,7}").SuchThat(func(w string) bool {
		up := strings.ToUpper(w)
		return up != BitMarker && !tr.IsSuffix(up) && w != FlagsToken
	})
}

// rawValue rebuilds the registry spelling of a value from its parts.
func rawValue(enumWords, valueWords []string, flags bool, ext string) string {
	parts := []string{ValuePrefix}
	for _, w := range slices.Concat(enumWords, valueWords) {
		parts = append(parts, strings.ToUpper(w))
	}
	if flags {
		parts = append(parts, BitMarker)
	}
	if ext != "" {
		parts = append(parts, ext)
	}
	return strings.Join(parts, "_")
}

func TestConvertEnumValueName_RoundTrip(t *testing.T) {
	tr := New(testSuffixes)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("value name survives a rebuild of its raw form", prop.ForAll(
		func(enumWords, valueWords []string, flags bool, ext string) bool {
			enumName := strings.Join(enumWords, "")
			if flags {
				enumName += FlagsToken
			}
			want := strings.Join(valueWords, "")
			got, err := tr.ConvertEnumValueName(rawValue(enumWords, valueWords, flags, ext), enumName)
			if err != nil || got != want {
				return false
			}
			// Translating again from the translated name is stable.
			again, err := tr.ConvertEnumValueName(rawValue(enumWords, Words(got), flags, ext), enumName)
			return err == nil && again == got
		},
		gen.SliceOfN(2, wordGen(tr)),
		gen.SliceOfN(2, wordGen(tr)),
		gen.Bool(),
		gen.OneConstOf("", "KHR", "EXT", "NV"),
	))

	properties.TestingRun(t)
}

func TestConvertEnumValueName_DigitMarker(t *testing.T) {
	tr := New(testSuffixes)

	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("digit-led values get the marker", prop.ForAll(
		func(n int) bool {
			got, err := tr.ConvertEnumValueName("VK_SAMPLE_COUNT_"+strconv.Itoa(n)+"_BIT", "SampleCountFlags")
			return err == nil && got == DigitMarker+strconv.Itoa(n)
		},
		gen.IntRange(0, 1<<16),
	))

	properties.Property("letter-led values never get the marker", prop.ForAll(
		func(w string) bool {
			got, err := tr.ConvertEnumValueName("VK_SAMPLE_COUNT_"+strings.ToUpper(w)+"_BIT", "SampleCountFlags")
			return err == nil && got == w
		},
		wordGen(tr),
	))

	properties.TestingRun(t)
}

func TestConvertTypeName_Properties(t *testing.T) {
	tr := New(testSuffixes)

	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("unsuffixed names only lose the prefix", prop.ForAll(
		func(words []string) bool {
			name := strings.Join(words, "")
			base, ext, ok := tr.ConvertTypeName(TypePrefix + name)
			return ok && base == name && ext == ""
		},
		gen.SliceOfN(3, wordGen(tr)),
	))

	properties.Property("registered suffixes are split off", prop.ForAll(
		func(words []string, ext string) bool {
			name := strings.Join(words, "")
			base, gotExt, ok := tr.ConvertTypeName(TypePrefix + name + ext)
			return ok && base == name && gotExt == ext
		},
		gen.SliceOfN(2, wordGen(tr)),
		gen.OneConstOf("KHR", "EXT", "NV", "NVX", "ANDROID"),
	))

	properties.Property("FlagBits never survives translation", prop.ForAll(
		func(words []string, ext string) bool {
			name := strings.Join(words, "")
			base, _, ok := tr.ConvertTypeName(TypePrefix + name + FlagBitsMarker + ext)
			return ok && base == name+FlagsToken && !strings.Contains(base, FlagBitsMarker)
		},
		gen.SliceOfN(2, wordGen(tr)),
		gen.OneConstOf("", "KHR", "EXT"),
	))

	properties.TestingRun(t)
}
