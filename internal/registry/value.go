package registry

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// ExtensionEnumBase is the first value reserved for extension enums.
	ExtensionEnumBase = 1000000000

	// ExtensionEnumBlock is the number of values reserved per extension.
	ExtensionEnumBlock = 1000
)

var (
	// ErrNotInteger is returned for values that have no integer form, such
	// as float or string constants.
	ErrNotInteger = errors.New("value is not an integer")

	// ErrUnresolvedAlias is returned when an alias names no known value.
	ErrUnresolvedAlias = errors.New("unresolved alias")
)

// Int returns the numeric value of a non-alias enum value: a bit position,
// an extension offset, or a literal.
func (v *EnumValue) Int() (int64, error) {
	switch {
	case v.BitPos != "":
		pos, err := strconv.Atoi(v.BitPos)
		if err != nil || pos < 0 || pos > 63 {
			return 0, fmt.Errorf("%s: bitpos %q: %w", v.Name, v.BitPos, ErrNotInteger)
		}
		return int64(uint64(1) << pos), nil
	case v.Offset != "":
		ext, err := strconv.Atoi(v.ExtNumber)
		if err != nil {
			return 0, fmt.Errorf("%s: extnumber %q: %w", v.Name, v.ExtNumber, ErrNotInteger)
		}
		off, err := strconv.Atoi(v.Offset)
		if err != nil {
			return 0, fmt.Errorf("%s: offset %q: %w", v.Name, v.Offset, ErrNotInteger)
		}
		n := int64(ExtensionEnumBase + (ext-1)*ExtensionEnumBlock + off)
		if v.Dir == "-" {
			n = -n
		}
		return n, nil
	case v.Value != "":
		n, err := strconv.ParseInt(v.Value, 0, 64)
		if err != nil {
			u, uerr := strconv.ParseUint(v.Value, 0, 64)
			if uerr != nil {
				return 0, fmt.Errorf("%s: value %q: %w", v.Name, v.Value, ErrNotInteger)
			}
			n = int64(u)
		}
		return n, nil
	}
	return 0, fmt.Errorf("%s: %w", v.Name, ErrNotInteger)
}

// Value returns the value with the given raw name, or nil.
func (e *Enums) Value(name string) *EnumValue {
	for _, v := range e.Values {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Resolve returns the numeric value of v, following aliases within the
// group.
func (e *Enums) Resolve(v *EnumValue) (int64, error) {
	seen := map[string]bool{}
	for v.Alias != "" {
		if seen[v.Name] {
			return 0, fmt.Errorf("%s: alias cycle: %w", v.Name, ErrUnresolvedAlias)
		}
		seen[v.Name] = true
		target := e.Value(v.Alias)
		if target == nil {
			return 0, fmt.Errorf("%s -> %s: %w", v.Name, v.Alias, ErrUnresolvedAlias)
		}
		v = target
	}
	return v.Int()
}
