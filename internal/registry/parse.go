package registry

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// registryXML mirrors the top level of vk.xml.
type registryXML struct {
	Comments   []string     `xml:"comment"`
	Tags       []Tag        `xml:"tags>tag"`
	Types      []*Type      `xml:"types>type"`
	Enums      []*Enums     `xml:"enums"`
	Commands   []*Command   `xml:"commands>command"`
	Features   []*Feature   `xml:"feature"`
	Extensions []*Extension `xml:"extensions>extension"`
}

// Parse reads a vk.xml document. Definitions whose api attribute excludes
// vulkan are dropped, and enum values required by supported features and
// extensions are merged into the groups they extend.
func Parse(r io.Reader) (*Registry, error) {
	var raw registryXML
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}

	reg := &Registry{Tags: raw.Tags}
	if len(raw.Comments) > 0 {
		reg.Comment = strings.TrimSpace(raw.Comments[0])
	}
	for _, t := range raw.Types {
		if !includesVulkan(t.API) {
			continue
		}
		t.Members = filterDecls(t.Members)
		reg.Types = append(reg.Types, t)
	}
	for _, e := range raw.Enums {
		e.Values = filterValues(e.Values)
		reg.Enums = append(reg.Enums, e)
	}
	for _, c := range raw.Commands {
		if !includesVulkan(c.API) {
			continue
		}
		c.Params = filterDecls(c.Params)
		reg.Commands = append(reg.Commands, c)
	}
	for _, f := range raw.Features {
		if !includesVulkan(f.API) {
			continue
		}
		f.Requires = filterRequires(f.Requires)
		reg.Features = append(reg.Features, f)
	}
	for _, ext := range raw.Extensions {
		ext.Requires = filterRequires(ext.Requires)
		reg.Extensions = append(reg.Extensions, ext)
	}
	reg.reindex()

	for _, f := range reg.Features {
		if err := reg.mergeValues(f.Name, 0, f.Requires); err != nil {
			return nil, err
		}
	}
	for _, ext := range reg.Extensions {
		if !ext.IsSupported() {
			continue
		}
		if err := reg.mergeValues(ext.Name, ext.Number, ext.Requires); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// ParseBytes parses an in-memory vk.xml document.
func ParseBytes(data []byte) (*Registry, error) {
	return Parse(bytes.NewReader(data))
}

// mergeValues appends the values a feature or extension adds to existing
// enum groups. A value required by several providers is stored once and
// records every provider.
func (r *Registry) mergeValues(provider string, extNumber int, requires []*Require) error {
	for _, req := range requires {
		for _, v := range req.Enums {
			if v.Extends == "" {
				continue
			}
			group, ok := r.enums[v.Extends]
			if !ok {
				return fmt.Errorf("%s: value %s extends unknown enum %s", provider, v.Name, v.Extends)
			}
			if existing := group.Value(v.Name); existing != nil {
				existing.Providers = append(existing.Providers, provider)
				continue
			}
			merged := *v
			if merged.Offset != "" && merged.ExtNumber == "" {
				if extNumber == 0 {
					return fmt.Errorf("%s: value %s has an offset but no extension number", provider, v.Name)
				}
				merged.ExtNumber = strconv.Itoa(extNumber)
			}
			merged.Providers = []string{provider}
			group.Values = append(group.Values, &merged)
		}
	}
	return nil
}

func filterDecls(decls []*Decl) []*Decl {
	out := decls[:0]
	for _, d := range decls {
		if includesVulkan(d.API) {
			out = append(out, d)
		}
	}
	return out
}

func filterValues(values []*EnumValue) []*EnumValue {
	out := values[:0]
	for _, v := range values {
		if includesVulkan(v.API) {
			out = append(out, v)
		}
	}
	return out
}

func filterRequires(requires []*Require) []*Require {
	out := requires[:0]
	for _, req := range requires {
		if !includesVulkan(req.API) {
			continue
		}
		req.Enums = filterValues(req.Enums)
		out = append(out, req)
	}
	return out
}

// UnmarshalXML decodes a <type> element. Several attributes are spelled as
// child elements in older registry revisions, so both forms are accepted.
func (t *Type) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "name":
			t.Name = a.Value
		case "category":
			t.Category = a.Value
		case "alias":
			t.Alias = a.Value
		case "parent":
			t.Parent = a.Value
		case "requires":
			t.Requires = a.Value
		case "bitvalues":
			t.BitValues = a.Value
		case "api":
			t.API = a.Value
		case "returnedonly":
			t.ReturnedOnly = a.Value == "true"
		case "structextends":
			t.StructExtends = splitList(a.Value)
		case "comment":
			t.Comment = a.Value
		}
	}

	var tail strings.Builder
	named := false
	for {
		tok, err := d.Token()
		if err != nil {
			return fmt.Errorf("type %q: %w", t.Name, err)
		}
		switch tok := tok.(type) {
		case xml.CharData:
			if named {
				tail.Write(tok)
			}
		case xml.StartElement:
			switch tok.Name.Local {
			case "member":
				m, err := decodeDecl(d, tok)
				if err != nil {
					return fmt.Errorf("type %q: member: %w", t.Name, err)
				}
				t.Members = append(t.Members, m)
			case "type":
				s, err := elementText(d)
				if err != nil {
					return fmt.Errorf("type %q: %w", t.Name, err)
				}
				if t.Underlying == "" {
					t.Underlying = s
				}
			case "name":
				s, err := elementText(d)
				if err != nil {
					return fmt.Errorf("type %q: %w", t.Name, err)
				}
				if t.Name == "" {
					t.Name = s
				}
				named = true
			default:
				if err := d.Skip(); err != nil {
					return fmt.Errorf("type %q: %w", t.Name, err)
				}
			}
		case xml.EndElement:
			t.Dispatchable = t.Category == CategoryHandle && t.Underlying == "VK_DEFINE_HANDLE"
			if t.Category == CategoryDefine {
				line, _, _ := strings.Cut(strings.TrimSpace(tail.String()), "\n")
				t.Value = strings.TrimSpace(line)
			}
			return nil
		}
	}
}

// UnmarshalXML decodes a <command> element, either a full definition with
// <proto> and <param> children or an alias.
func (c *Command) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "name":
			c.Name = a.Value
		case "alias":
			c.Alias = a.Value
		case "api":
			c.API = a.Value
		case "successcodes":
			c.SuccessCodes = splitList(a.Value)
		case "errorcodes":
			c.ErrorCodes = splitList(a.Value)
		}
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return fmt.Errorf("command %q: %w", c.Name, err)
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			switch tok.Name.Local {
			case "proto":
				p, err := decodeDecl(d, tok)
				if err != nil {
					return fmt.Errorf("command %q: proto: %w", c.Name, err)
				}
				c.Name = p.Name
				c.ReturnType = p.Type
				c.ReturnPointers = p.Pointers
			case "param":
				p, err := decodeDecl(d, tok)
				if err != nil {
					return fmt.Errorf("command %q: param: %w", c.Name, err)
				}
				c.Params = append(c.Params, p)
			default:
				if err := d.Skip(); err != nil {
					return fmt.Errorf("command %q: %w", c.Name, err)
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// decodeDecl decodes the mixed content of a <member>, <param>, or <proto>:
//
//	const <type>char</type>* const* <name>ppEnabledLayerNames</name>
//	<type>uint8_t</type> <name>deviceUUID</name>[<enum>VK_UUID_SIZE</enum>]
//	<type>uint32_t</type> <name>instanceCustomIndex</name>:24
func decodeDecl(d *xml.Decoder, start xml.StartElement) (*Decl, error) {
	decl := &Decl{}
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "len":
			decl.Len = a.Value
		case "optional":
			decl.Optional = a.Value
		case "values":
			decl.Values = a.Value
		case "api":
			decl.API = a.Value
		}
	}

	var before, after strings.Builder
	named := false
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch tok := tok.(type) {
		case xml.CharData:
			if named {
				after.Write(tok)
			} else {
				before.Write(tok)
			}
		case xml.StartElement:
			s, err := elementText(d)
			if err != nil {
				return nil, err
			}
			switch tok.Name.Local {
			case "type":
				decl.Type = s
			case "name":
				decl.Name = s
				named = true
			case "enum":
				after.WriteString(s)
			case "comment":
				decl.Comment = s
			}
		case xml.EndElement:
			prefix := before.String()
			decl.Const = strings.Contains(prefix, "const")
			decl.Pointers = strings.Count(prefix, "*")
			arrays, bits, err := parseSuffix(after.String())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", decl.Name, err)
			}
			decl.Arrays, decl.Bits = arrays, bits
			return decl, nil
		}
	}
}

// parseSuffix reads the declarator text after a name: array dimensions
// ("[4]", "[VK_UUID_SIZE]", "[2][3]") and bitfield widths (":8").
func parseSuffix(s string) (arrays []string, bits int, err error) {
	s = strings.TrimSpace(s)
	for s != "" {
		switch s[0] {
		case '[':
			end := strings.IndexByte(s, ']')
			if end < 0 {
				return nil, 0, fmt.Errorf("unterminated array dimension %q", s)
			}
			arrays = append(arrays, strings.TrimSpace(s[1:end]))
			s = strings.TrimSpace(s[end+1:])
		case ':':
			bits, err = strconv.Atoi(strings.TrimSpace(s[1:]))
			if err != nil {
				return nil, 0, fmt.Errorf("bitfield width: %w", err)
			}
			s = ""
		default:
			// Trailing punctuation such as ';' carries no declarator data.
			s = strings.TrimSpace(s[1:])
		}
	}
	return arrays, bits, nil
}

// elementText returns the character data of the element whose start tag was
// just read, including nested elements, and consumes its end tag.
func elementText(d *xml.Decoder) (string, error) {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return "", err
		}
		switch tok := tok.(type) {
		case xml.CharData:
			b.Write(tok)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return strings.TrimSpace(b.String()), nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
