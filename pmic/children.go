package pmic

import (
	"strings"

	"github.com/u-root/u-root/pkg/dt"
)

// ChildInfo maps a child node name prefix to the driver bound to it.
type ChildInfo struct {
	Prefix string
	Driver string
}

// BindChildren creates one child device per immediate child of node whose
// name starts with a known prefix, in description order. Children matching
// no prefix are skipped. It returns the number of children bound.
func BindChildren(parent *Device, node *dt.Node, infos []ChildInfo) int {
	if node == nil {
		return 0
	}
	n := 0
	for _, c := range node.Children {
		if c == nil {
			continue
		}
		for _, info := range infos {
			if info.Prefix == "" || !strings.HasPrefix(c.Name, info.Prefix) {
				continue
			}
			parent.Children = append(parent.Children, &Device{
				Name:   c.Name,
				Driver: info.Driver,
				Node:   c,
				Addr:   parent.Addr,
				Parent: parent,
			})
			n++
			break
		}
	}
	return n
}
