// Package act8846 is a driver for the Active-Semi ACT8846 PMIC.
//
// The chip is reached through a tinygo drivers.I2C bus. Registers use 8-bit
// offsets; a read is a register-address write followed by a repeated-start
// read, a write is the address followed by the payload in one transaction.
//
// Power-off is sequenced through GLB_OFF_CTRL and is only permitted when the
// device was configured as the system power controller.
package act8846

import (
	"fmt"
	"time"

	"tinygo.org/x/drivers"
)

// Config controls construction. Zero fields take defaults in New.
type Config struct {
	// Address defaults to 0x5a if zero.
	Address uint16
	// Name identifies the device in diagnostics and errors.
	Name string
	// SystemPowerController gates PowerOff.
	SystemPowerController bool
	// OffDelay is the wait after asserting OFFSYS. Default 10 ms.
	OffDelay time.Duration
	// OffRetries bounds the power-off loop. 0 retries forever.
	OffRetries int
	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)
	// Logf receives diagnostics. Defaults to println.
	Logf func(format string, args ...any)
}

// DefaultConfig returns production settings.
func DefaultConfig() Config {
	return Config{
		Address:  AddressDefault,
		Name:     "act8846",
		OffDelay: 10 * time.Millisecond,
	}
}

// Device wraps an I2C connection to an ACT8846.
type Device struct {
	bus  drivers.I2C
	addr uint16
	name string

	spc        bool
	offDelay   time.Duration
	offRetries int
	sleep      func(time.Duration)
	logf       func(format string, args ...any)

	// Fixed buffers to avoid per-call heap allocations.
	a [1]byte
	w [1 + 2*NumOfRegs]byte
}

// New constructs a Device. It does not touch the bus.
func New(bus drivers.I2C, cfg Config) *Device {
	d := &Device{
		bus:        bus,
		addr:       cfg.Address,
		name:       cfg.Name,
		spc:        cfg.SystemPowerController,
		offDelay:   cfg.OffDelay,
		offRetries: cfg.OffRetries,
		sleep:      cfg.Sleep,
		logf:       cfg.Logf,
	}
	if d.addr == 0 {
		d.addr = AddressDefault
	}
	if d.name == "" {
		d.name = "act8846"
	}
	if d.offDelay <= 0 {
		d.offDelay = 10 * time.Millisecond
	}
	if d.offRetries < 0 {
		d.offRetries = 0
	}
	if d.sleep == nil {
		d.sleep = time.Sleep
	}
	if d.logf == nil {
		d.logf = printlnf
	}
	return d
}

func printlnf(format string, args ...any) {
	println("[act8846]", fmt.Sprintf(format, args...))
}

// Introspection.
func (d *Device) Address() uint16             { return d.addr }
func (d *Device) Name() string                { return d.name }
func (d *Device) SystemPowerController() bool { return d.spc }

// RegCount returns the fixed regulator count.
func (d *Device) RegCount() int { return NumOfRegs }
