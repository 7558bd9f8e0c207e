// Package registry defines the data structures for parsing the Vulkan XML
// API registry (vk.xml).
//
// The registry describes every type, enum, command, core feature level, and
// extension of the API. This package maps the XML onto Go types and resolves
// the parts later stages need: extension enum numbering, handle
// dispatchability, and member declarations split out of their C text.
package registry

import (
	"slices"
	"strings"
)

// Registry is a parsed vk.xml.
type Registry struct {
	// Comment is the leading <comment> of the file (copyright and license).
	Comment string

	// Tags lists the registered author/vendor tags, in file order.
	// Each tag is also an extension suffix (KHR, EXT, NV, ...).
	Tags []Tag

	// Types lists every <type> that applies to the vulkan API.
	Types []*Type

	// Enums lists every <enums> group, including "API Constants".
	Enums []*Enums

	// Commands lists every <command>, aliases included.
	Commands []*Command

	// Features lists the core API versions (VK_VERSION_1_0, ...).
	Features []*Feature

	// Extensions lists every <extension>, supported or not.
	Extensions []*Extension

	types    map[string]*Type
	enums    map[string]*Enums
	commands map[string]*Command
}

// Tag is a registered author tag.
type Tag struct {
	Name    string `xml:"name,attr"`
	Author  string `xml:"author,attr"`
	Contact string `xml:"contact,attr"`
}

// Type categories used by vk.xml.
const (
	CategoryBaseType    = "basetype"
	CategoryBitmask     = "bitmask"
	CategoryHandle      = "handle"
	CategoryEnum        = "enum"
	CategoryFuncPointer = "funcpointer"
	CategoryStruct      = "struct"
	CategoryUnion       = "union"
	CategoryDefine      = "define"
	CategoryInclude     = "include"
)

// Type is a <type> element.
type Type struct {
	Name     string
	Category string

	// Alias names the type this one aliases, if any.
	Alias string

	// Parent is the parent handle (handles only), e.g. "VkDevice".
	Parent string

	// Requires names a header or, for bitmasks, the FlagBits enum.
	Requires string

	// BitValues names the FlagBits enum of a bitmask (newer files).
	BitValues string

	// API lists the APIs this definition applies to ("" means all).
	API string

	// ReturnedOnly marks structs only ever written by the implementation.
	ReturnedOnly bool

	// StructExtends lists the structs this one can chain onto via pNext.
	StructExtends []string

	// Dispatchable is set for handles declared with VK_DEFINE_HANDLE.
	Dispatchable bool

	// Underlying is the first nested <type> of basetypes and bitmasks
	// (uint32_t, VkFlags, VkFlags64) and the macro of handles.
	Underlying string

	// Members lists struct and union members in declaration order.
	Members []*Decl

	// Value is the text following the name of a define, up to the end of
	// its line ("330" for VK_HEADER_VERSION).
	Value string

	// Comment is the comment attribute.
	Comment string
}

// FlagBits returns the name of the bit enumeration behind a bitmask type.
func (t *Type) FlagBits() string {
	if t.BitValues != "" {
		return t.BitValues
	}
	if t.Category == CategoryBitmask && strings.Contains(t.Requires, "FlagBits") {
		return t.Requires
	}
	return ""
}

// Decl is a C declaration: a struct member, command parameter, or command
// prototype.
type Decl struct {
	Name string

	// Type is the bare type name, e.g. "VkExtent2D" or "uint32_t".
	Type string

	// Const is set when the pointee (or value) is const-qualified.
	Const bool

	// Pointers counts '*' in the declaration.
	Pointers int

	// Arrays holds fixed array dimensions, outermost first. A dimension is
	// either a literal ("4") or an API constant name.
	Arrays []string

	// Bits is the bitfield width, zero for ordinary members.
	Bits int

	// Len is the len attribute describing dynamic array lengths.
	Len string

	// Optional is the raw optional attribute ("true", "false,true").
	Optional string

	// Values is the fixed value attribute, used by sType members.
	Values string

	// API lists the APIs this declaration applies to.
	API string

	Comment string
}

// IsOptional reports whether the outermost level may be null or zero.
func (d *Decl) IsOptional() bool {
	first, _, _ := strings.Cut(d.Optional, ",")
	return first == "true"
}

// Enums group kinds.
const (
	EnumsEnum      = "enum"
	EnumsBitmask   = "bitmask"
	EnumsConstants = "constants"
)

// APIConstants is the name of the group holding API constants.
const APIConstants = "API Constants"

// Enums is an <enums> group.
type Enums struct {
	Name     string       `xml:"name,attr"`
	Type     string       `xml:"type,attr"`
	BitWidth int          `xml:"bitwidth,attr"`
	Comment  string       `xml:"comment,attr"`
	Values   []*EnumValue `xml:"enum"`
}

// IsConstants reports whether the group holds API constants.
func (e *Enums) IsConstants() bool {
	return e.Type == EnumsConstants || e.Name == APIConstants
}

// IsBitmask reports whether the group holds flag bits.
func (e *Enums) IsBitmask() bool {
	return e.Type == EnumsBitmask
}

// EnumValue is an <enum> inside <enums>, <feature>, or <extension>.
type EnumValue struct {
	Name       string `xml:"name,attr"`
	Value      string `xml:"value,attr"`
	BitPos     string `xml:"bitpos,attr"`
	Alias      string `xml:"alias,attr"`
	Type       string `xml:"type,attr"`
	Comment    string `xml:"comment,attr"`
	Deprecated string `xml:"deprecated,attr"`
	API        string `xml:"api,attr"`

	// Extends names the enum group an extension value is added to.
	Extends   string `xml:"extends,attr"`
	Offset    string `xml:"offset,attr"`
	Dir       string `xml:"dir,attr"`
	ExtNumber string `xml:"extnumber,attr"`

	// Providers names the features and extensions that add this value to
	// its group. Values declared in the group itself have none.
	Providers []string `xml:"-"`
}

// IsCore reports whether the value is declared by its group rather than
// added by a feature or extension.
func (v *EnumValue) IsCore() bool {
	return len(v.Providers) == 0
}

// Command is a <command> element.
type Command struct {
	Name       string
	Alias      string
	ReturnType string

	// ReturnPointers counts '*' on the return type.
	ReturnPointers int

	Params       []*Decl
	SuccessCodes []string
	ErrorCodes   []string
	API          string
}

// Ref names a type or command inside a <require> block.
type Ref struct {
	Name string `xml:"name,attr"`
}

// Require is a <require> block of a feature or extension.
type Require struct {
	Comment  string       `xml:"comment,attr"`
	Depends  string       `xml:"depends,attr"`
	API      string       `xml:"api,attr"`
	Types    []Ref        `xml:"type"`
	Commands []Ref        `xml:"command"`
	Enums    []*EnumValue `xml:"enum"`
}

// Feature is a core API version.
type Feature struct {
	API      string     `xml:"api,attr"`
	Name     string     `xml:"name,attr"`
	Number   string     `xml:"number,attr"`
	Requires []*Require `xml:"require"`
}

// Extension is an <extension> element.
type Extension struct {
	Name       string     `xml:"name,attr"`
	Number     int        `xml:"number,attr"`
	Type       string     `xml:"type,attr"`
	Supported  string     `xml:"supported,attr"`
	Author     string     `xml:"author,attr"`
	Platform   string     `xml:"platform,attr"`
	PromotedTo string     `xml:"promotedto,attr"`
	Depends    string     `xml:"depends,attr"`
	Requires   []*Require `xml:"require"`
}

// IsSupported reports whether the extension is supported by the vulkan API.
func (e *Extension) IsSupported() bool {
	return e.Supported != "" && includesVulkan(e.Supported)
}

// ExtensionSuffixes returns every tag name, in file order. They populate
// the name translator before any translation happens.
func (r *Registry) ExtensionSuffixes() []string {
	out := make([]string, 0, len(r.Tags))
	for _, t := range r.Tags {
		out = append(out, t.Name)
	}
	return out
}

// Type returns the type with the given name.
func (r *Registry) Type(name string) (*Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// EnumGroup returns the <enums> group with the given name.
func (r *Registry) EnumGroup(name string) (*Enums, bool) {
	e, ok := r.enums[name]
	return e, ok
}

// Command returns the command with the given name.
func (r *Registry) Command(name string) (*Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// HeaderVersion returns the VK_HEADER_VERSION patch number, or "" when the
// registry does not define it.
func (r *Registry) HeaderVersion() string {
	if t, ok := r.types["VK_HEADER_VERSION"]; ok {
		return t.Value
	}
	return ""
}

// Constants returns the API constants group, or nil.
func (r *Registry) Constants() *Enums {
	for _, e := range r.Enums {
		if e.IsConstants() {
			return e
		}
	}
	return nil
}

// ResolveAlias follows type aliases until a non-alias type is reached.
// Alias cycles stop at the first repeated name.
func (r *Registry) ResolveAlias(name string) (*Type, bool) {
	var seen []string
	for {
		t, ok := r.types[name]
		if !ok {
			return nil, false
		}
		if t.Alias == "" || slices.Contains(seen, name) {
			return t, true
		}
		seen = append(seen, name)
		name = t.Alias
	}
}

// ResolveCommand follows command aliases to the defining command.
func (r *Registry) ResolveCommand(name string) (*Command, bool) {
	var seen []string
	for {
		c, ok := r.commands[name]
		if !ok {
			return nil, false
		}
		if c.Alias == "" || slices.Contains(seen, name) {
			return c, true
		}
		seen = append(seen, name)
		name = c.Alias
	}
}

// reindex rebuilds the lookup maps. The first definition of a name wins.
func (r *Registry) reindex() {
	r.types = make(map[string]*Type, len(r.Types))
	for _, t := range r.Types {
		if _, dup := r.types[t.Name]; !dup {
			r.types[t.Name] = t
		}
	}
	r.enums = make(map[string]*Enums, len(r.Enums))
	for _, e := range r.Enums {
		r.enums[e.Name] = e
	}
	r.commands = make(map[string]*Command, len(r.Commands))
	for _, c := range r.Commands {
		if _, dup := r.commands[c.Name]; !dup {
			r.commands[c.Name] = c
		}
	}
}

// includesVulkan reports whether a comma separated api/supported list
// applies to the vulkan API. An empty list applies to every API.
func includesVulkan(list string) bool {
	if list == "" {
		return true
	}
	return slices.Contains(strings.Split(list, ","), "vulkan")
}
