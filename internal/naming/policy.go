// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package naming

import "maps"

// EnumPolicy overrides how values of one enum are translated.
type EnumPolicy struct {
	// ZeroPrefix means values do not repeat the enum name
	// (VK_SUCCESS rather than VK_RESULT_SUCCESS).
	ZeroPrefix bool

	// KeepExtension disables trailing extension-tag stripping.
	KeepExtension bool
}

// defaultPolicies is keyed by translated enum base name.
var defaultPolicies = map[string]EnumPolicy{
	"Result":   {ZeroPrefix: true},
	"VendorId": {KeepExtension: true},
}

// DefaultPolicies returns a copy of the built-in enum overrides.
func DefaultPolicies() map[string]EnumPolicy {
	return maps.Clone(defaultPolicies)
}

// Option configures a Translator.
type Option func(*Translator)

// WithPolicy adds or replaces the policy for one enum.
func WithPolicy(enumName string, p EnumPolicy) Option {
	return func(t *Translator) {
		t.policies[enumName] = p
	}
}

// WithoutDefaultPolicies starts from an empty policy table.
func WithoutDefaultPolicies() Option {
	return func(t *Translator) {
		clear(t.policies)
	}
}
