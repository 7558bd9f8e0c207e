// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package codegen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/albertocavalcante/vkgen/internal/registry"
)

// renderHandles emits one named type per handle. Dispatchable handles are
// pointers in C and map to uintptr; non-dispatchable handles are 64-bit on
// every platform and map to uint64.
func (g *Generator) renderHandles() ([]byte, error) {
	var buf bytes.Buffer
	for _, t := range g.selectedTypes(registry.CategoryHandle) {
		name := g.goName(t.Name)
		if t.Alias != "" {
			target := g.goName(t.Alias)
			fmt.Fprintf(&buf, "// %s is an alias of %s.\ntype %s = %s\n\n", name, target, name, target)
			continue
		}

		desc, base := "non-dispatchable", "uint64"
		if t.Dispatchable {
			desc, base = "dispatchable", "uintptr"
		}
		fmt.Fprintf(&buf, "// %s is the %s handle %s.\n", name, desc, t.Name)
		if t.Parent != "" {
			parents := strings.Split(t.Parent, ",")
			for i, p := range parents {
				parents[i] = g.goName(p)
			}
			fmt.Fprintf(&buf, "// Parent: %s.\n", strings.Join(parents, ", "))
		}
		fmt.Fprintf(&buf, "type %s %s\n\n", name, base)
		fmt.Fprintf(&buf, "// IsNull reports whether h is VK_NULL_HANDLE.\nfunc (h %s) IsNull() bool {\n\treturn h == 0\n}\n\n", name)
	}
	return buf.Bytes(), nil
}
