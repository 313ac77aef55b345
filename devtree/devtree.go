// Package devtree provides the small set of hardware-description queries the
// PMIC framework needs, on top of u-root's flattened device tree nodes.
//
// Nodes are parsed elsewhere (dt.ReadFDT); everything here is a read-only view.
package devtree

import (
	"bytes"
	"io"
	"strings"

	"github.com/u-root/u-root/pkg/dt"
)

// Property names used by the PMIC bindings.
const (
	PropCompatible = "compatible"
	PropReg        = "reg"
	PropStatus     = "status"
)

// Load parses a DTB and returns its root node.
func Load(r io.ReadSeeker) (*dt.Node, error) {
	fdt, err := dt.ReadFDT(r)
	if err != nil {
		return nil, err
	}
	return fdt.RootNode, nil
}

// BaseName strips a unit address ("pmic@5a" -> "pmic").
func BaseName(name string) string {
	if i := strings.IndexByte(name, '@'); i >= 0 {
		return name[:i]
	}
	return name
}

// Subnode returns the immediate child called name. A name without a unit
// address also matches children that carry one.
func Subnode(n *dt.Node, name string) (*dt.Node, bool) {
	if n == nil {
		return nil, false
	}
	withUnit := strings.IndexByte(name, '@') >= 0
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		if c.Name == name || (!withUnit && BaseName(c.Name) == name) {
			return c, true
		}
	}
	return nil, false
}

// Bool reports whether a boolean (presence-only) property is set.
func Bool(n *dt.Node, prop string) bool {
	if n == nil {
		return false
	}
	_, ok := n.LookProperty(prop)
	return ok
}

// U32 reads the first cell of a property.
func U32(n *dt.Node, prop string) (uint32, bool) {
	if n == nil {
		return 0, false
	}
	p, ok := n.LookProperty(prop)
	if !ok {
		return 0, false
	}
	v, err := p.AsU32()
	if err != nil {
		// multi-cell property: take the first cell
		if len(p.Value) < 4 {
			return 0, false
		}
		return uint32(p.Value[0])<<24 | uint32(p.Value[1])<<16 | uint32(p.Value[2])<<8 | uint32(p.Value[3]), true
	}
	return v, true
}

// Compatible returns the node's compatible string list in declaration order.
func Compatible(n *dt.Node) []string {
	if n == nil {
		return nil
	}
	p, ok := n.LookProperty(PropCompatible)
	if !ok {
		return nil
	}
	var out []string
	for _, s := range bytes.Split(p.Value, []byte{0}) {
		if len(s) > 0 {
			out = append(out, string(s))
		}
	}
	return out
}

// Enabled reports whether the node is usable ("status" absent, "okay" or "ok").
func Enabled(n *dt.Node) bool {
	if n == nil {
		return false
	}
	p, ok := n.LookProperty(PropStatus)
	if !ok {
		return true
	}
	s := string(bytes.TrimRight(p.Value, "\x00"))
	return s == "okay" || s == "ok"
}

// ---- construction helpers (fixtures, tooling) ----

// StringProp builds a NUL-terminated string list property.
func StringProp(name string, vals ...string) dt.Property {
	var b []byte
	for _, v := range vals {
		b = append(b, v...)
		b = append(b, 0)
	}
	return dt.Property{Name: name, Value: b}
}

// U32Prop builds a single-cell property.
func U32Prop(name string, v uint32) dt.Property {
	return dt.Property{Name: name, Value: []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}}
}

// BoolProp builds an empty (presence-only) property.
func BoolProp(name string) dt.Property {
	return dt.Property{Name: name, Value: []byte{}}
}

// fdtMagic and fdtVersion describe the blobs Encode emits.
const (
	fdtMagic       = 0xd00dfeed
	fdtVersion     = 17
	fdtLastCompVer = 16
)

// Encode serialises root as a DTB.
func Encode(w io.Writer, root *dt.Node) error {
	fdt := &dt.FDT{
		Header: dt.Header{
			Magic:           fdtMagic,
			Version:         fdtVersion,
			LastCompVersion: fdtLastCompVer,
		},
		RootNode: root,
	}
	_, err := fdt.Write(w)
	return err
}

// NewNode builds a node with properties and children.
func NewNode(name string, props []dt.Property, children ...*dt.Node) *dt.Node {
	return &dt.Node{Name: name, Properties: props, Children: children}
}
