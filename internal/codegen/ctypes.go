// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package codegen

// C scalar type names used by the registry.
const (
	CVoid   = "void"
	CChar   = "char"
	CFloat  = "float"
	CDouble = "double"
	CSizeT  = "size_t"
	CInt    = "int"
)

// cScalar describes how a C scalar maps to Go.
type cScalar struct {
	goName string
	size   int
	float  bool
}

// cScalars is the set of C types with a fixed Go equivalent.
var cScalars = map[string]cScalar{
	CChar:      {goName: "byte", size: 1},
	"int8_t":   {goName: "int8", size: 1},
	"uint8_t":  {goName: "uint8", size: 1},
	"int16_t":  {goName: "int16", size: 2},
	"uint16_t": {goName: "uint16", size: 2},
	"int32_t":  {goName: "int32", size: 4},
	"uint32_t": {goName: "uint32", size: 4},
	CInt:       {goName: "int32", size: 4},
	"int64_t":  {goName: "int64", size: 8},
	"uint64_t": {goName: "uint64", size: 8},
	CSizeT:     {goName: "uintptr", size: 8},
	CFloat:     {goName: "float32", size: 4, float: true},
	CDouble:    {goName: "float64", size: 8, float: true},
}

// IsCScalar reports whether name is a C scalar type with a Go equivalent.
func IsCScalar(name string) bool {
	_, ok := cScalars[name]
	return ok
}

// CScalarGo returns the Go type for a C scalar, or "" when name is not one.
func CScalarGo(name string) string {
	return cScalars[name].goName
}

// IsFloat reports whether the C scalar is a floating point type.
func IsFloat(name string) bool {
	return cScalars[name].float
}

// pointerSize is the size and alignment of pointers and dispatchable
// handles on every 64-bit target Vulkan supports.
const pointerSize = 8
