// Package pmic is the device-model slice that turns hardware-description
// nodes into live PMIC devices.
//
// A chip binding registers a Driver under its compatible strings. Probe then
// runs, in order: configuration parsing, child binding, operation table.
package pmic

import (
	"github.com/u-root/u-root/pkg/dt"

	"pmic-go/errcode"
)

// PMIC is the operation table every PMIC variant exposes.
type PMIC interface {
	RegCount() int
	Read(reg uint, buf []byte) error
	Write(reg uint, buf []byte) error
	// PowerOff does not return when it succeeds.
	PowerOff() error
}

// Device is one instantiated node: a PMIC or one of its child regulators.
// The framework owns it; drivers only fill Plat and Children during probe.
type Device struct {
	Name     string // node name, e.g. "pmic@5a" or "REG1"
	Driver   string // bound driver name
	Node     *dt.Node
	Addr     uint16 // bus address from "reg", 0 if absent
	Parent   *Device
	Children []*Device
	Plat     any // configuration snapshot owned by the device

	ops PMIC
}

// Ops returns the operation table, nil for child devices.
func (d *Device) Ops() PMIC { return d.ops }

func (d *Device) unsupported(op string) error {
	return &errcode.E{C: errcode.Unsupported, Op: op, Dev: d.Name, Reg: -1}
}

// RegCount returns the variant's register count, 0 without an operation table.
func (d *Device) RegCount() int {
	if d.ops == nil {
		return 0
	}
	return d.ops.RegCount()
}

// Read fills buf from consecutive registers starting at reg.
func (d *Device) Read(reg uint, buf []byte) error {
	if d.ops == nil {
		return d.unsupported("read")
	}
	return d.ops.Read(reg, buf)
}

// Write stores buf into consecutive registers starting at reg.
func (d *Device) Write(reg uint, buf []byte) error {
	if d.ops == nil {
		return d.unsupported("write")
	}
	return d.ops.Write(reg, buf)
}

// PowerOff cuts system power; it does not return when it succeeds.
func (d *Device) PowerOff() error {
	if d.ops == nil {
		return d.unsupported("poweroff")
	}
	return d.ops.PowerOff()
}

// RegRead reads a single register.
func (d *Device) RegRead(reg uint) (byte, error) {
	var b [1]byte
	if err := d.Read(reg, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// RegWrite writes a single register.
func (d *Device) RegWrite(reg uint, val byte) error {
	b := [1]byte{val}
	return d.Write(reg, b[:])
}

// ClrSetBits performs read-modify-write on one register.
func (d *Device) ClrSetBits(reg uint, clr, set byte) error {
	v, err := d.RegRead(reg)
	if err != nil {
		return err
	}
	return d.RegWrite(reg, (v&^clr)|set)
}
