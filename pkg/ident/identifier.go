package ident

import "strings"

// Identifier names a host-resolvable reference with up to three dotted
// components: a collection name, an object name, and a property name. At
// least the innermost (rightmost-present) component is always set; outer
// components are empty when absent.
//
// Examples: "[Forms]![MyForm]![MyControl]" -> Collection="Forms",
// Object="MyForm", Property="MyControl". A bare "[Total]" -> only
// Property set.
type Identifier struct {
	Collection string
	Object     string
	Property   string
}

// NewIdentifier builds an Identifier from up to three segments given in
// source order (outermost first), the order the parser accumulates them
// in while reading a chain of '.'/'!' separated names.
func NewIdentifier(segments ...string) Identifier {
	var id Identifier
	switch len(segments) {
	case 1:
		id.Property = segments[0]
	case 2:
		id.Object, id.Property = segments[0], segments[1]
	case 3:
		id.Collection, id.Object, id.Property = segments[0], segments[1], segments[2]
	}
	return id
}

// String renders the identifier in bracketed dotted form.
func (id Identifier) String() string {
	var parts []string
	if id.Collection != "" {
		parts = append(parts, id.Collection)
	}
	if id.Object != "" {
		parts = append(parts, id.Object)
	}
	parts = append(parts, id.Property)
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteByte('[')
		b.WriteString(p)
		b.WriteByte(']')
	}
	return b.String()
}

// Equal reports whether id and other name the same identifier,
// case-insensitively component by component.
func (id Identifier) Equal(other Identifier) bool {
	return Equal(id.Collection, other.Collection) &&
		Equal(id.Object, other.Object) &&
		Equal(id.Property, other.Property)
}
