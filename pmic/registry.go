package pmic

import (
	"fmt"
	"sync"

	"github.com/u-root/u-root/pkg/dt"
	"tinygo.org/x/drivers"
)

// Driver binds one PMIC variant to the framework.
type Driver interface {
	// ParseConfig derives the configuration snapshot from the node.
	ParseConfig(node *dt.Node) (any, error)
	// Bind attaches child devices under dev. An error aborts construction.
	Bind(dev *Device, node *dt.Node) error
	// Open returns the operation table for a configured, bound device.
	Open(dev *Device, bus drivers.I2C) (PMIC, error)
}

// Entry is a registered driver.
type Entry struct {
	Name       string
	Compatible []string
	Driver     Driver
}

var (
	regMu    sync.RWMutex
	byCompat = map[string]*Entry{}
)

// Register adds a driver under each of its compatible strings.
func Register(name string, compatible []string, d Driver) {
	regMu.Lock()
	defer regMu.Unlock()
	e := &Entry{Name: name, Compatible: compatible, Driver: d}
	for _, c := range compatible {
		if _, exists := byCompat[c]; exists {
			panic(fmt.Sprintf("duplicate pmic driver for compatible: %s", c))
		}
	}
	for _, c := range compatible {
		byCompat[c] = e
	}
}

// Lookup finds the driver registered for an exact compatible string.
func Lookup(compatible string) (*Entry, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	e, ok := byCompat[compatible]
	return e, ok
}

// match returns the first registered entry for the node's compatible list.
func match(compat []string) (*Entry, string, bool) {
	for _, c := range compat {
		if e, ok := Lookup(c); ok {
			return e, c, true
		}
	}
	return nil, "", false
}
