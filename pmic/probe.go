package pmic

import (
	"errors"
	"fmt"

	"github.com/u-root/u-root/pkg/dt"
	"tinygo.org/x/drivers"

	"pmic-go/devtree"
	"pmic-go/errcode"
)

// Logf receives framework diagnostics. Replace in tests.
var Logf = func(format string, args ...any) {
	println("[pmic]", fmt.Sprintf(format, args...))
}

// Probe instantiates the node with the driver registered for one of its
// compatible strings. Matching is exact.
func Probe(node *dt.Node, bus drivers.I2C) (*Device, error) {
	if node == nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "probe", Reg: -1, Msg: "nil node"}
	}
	e, compat, ok := match(devtree.Compatible(node))
	if !ok {
		return nil, &errcode.E{C: errcode.NoDriver, Op: "probe", Dev: node.Name, Reg: -1}
	}

	dev := &Device{Name: node.Name, Driver: e.Name, Node: node}
	if a, ok := devtree.U32(node, devtree.PropReg); ok {
		dev.Addr = uint16(a)
	}

	plat, err := e.Driver.ParseConfig(node)
	if err != nil {
		return nil, wrapStage("ofdata", dev.Name, err)
	}
	dev.Plat = plat

	if err := e.Driver.Bind(dev, node); err != nil {
		dev.Children = nil
		return nil, wrapStage("bind", dev.Name, err)
	}

	ops, err := e.Driver.Open(dev, bus)
	if err != nil {
		return nil, wrapStage("open", dev.Name, err)
	}
	dev.ops = ops

	Logf("%s: bound %q via %s (%d children)", dev.Name, e.Name, compat, len(dev.Children))
	return dev, nil
}

// Scan probes every enabled node below root whose compatible list has a
// registered driver. Devices come back in walk order; failed probes are
// skipped and reported in the joined error.
func Scan(root *dt.Node, bus drivers.I2C) ([]*Device, error) {
	var (
		devs []*Device
		errs []error
	)
	err := root.Walk(func(n *dt.Node) error {
		if !devtree.Enabled(n) {
			return nil
		}
		if _, _, ok := match(devtree.Compatible(n)); !ok {
			return nil
		}
		d, err := Probe(n, bus)
		if err != nil {
			Logf("%s: probe failed: %v", n.Name, err)
			errs = append(errs, err)
			return nil
		}
		devs = append(devs, d)
		return nil
	})
	if err != nil {
		errs = append(errs, err)
	}
	return devs, errors.Join(errs...)
}

func wrapStage(op, dev string, err error) error {
	var e *errcode.E
	if errors.As(err, &e) {
		return err
	}
	return &errcode.E{C: errcode.Of(err), Op: op, Dev: dev, Reg: -1, Err: err}
}
