package act8846dev

import (
	"fmt"
	"time"

	"github.com/u-root/u-root/pkg/dt"
	"tinygo.org/x/drivers"

	"pmic-go/devtree"
	"pmic-go/drivers/act8846"
	"pmic-go/errcode"
	"pmic-go/pmic"
)

const (
	DriverName    = "act8846 pmic"
	Compatible    = "active-semi,act8846"
	RegulatorNode = "regulators"
	PropSPC       = "system-power-controller"
)

// Children is the static child descriptor table.
var Children = []pmic.ChildInfo{
	{Prefix: "REG", Driver: "act8846_reg"},
}

// PlatData is the configuration snapshot parsed from the node.
type PlatData struct {
	SystemPowerController bool
}

// Binding attaches the ACT8846 driver to the framework. Power-off policy
// fields are read at Open; zero values keep production behaviour.
type Binding struct {
	OffDelay   time.Duration
	OffRetries int
	Sleep      func(time.Duration)
	Logf       func(format string, args ...any)
}

// Default is the registered binding. It is shared by every probe; callers
// wanting a different power-off policy for one device build their own
// Binding and call Open on the probed device instead of changing Default.
var Default = &Binding{}

func init() { pmic.Register(DriverName, []string{Compatible}, Default) }

func (b *Binding) logf(format string, args ...any) {
	if b.Logf != nil {
		b.Logf(format, args...)
		return
	}
	println("[act8846]", fmt.Sprintf(format, args...))
}

// ParseConfig reads the system-power-controller flag (default false).
func (b *Binding) ParseConfig(node *dt.Node) (any, error) {
	return PlatData{SystemPowerController: devtree.Bool(node, PropSPC)}, nil
}

// Bind attaches one child per regulator node. A missing regulators node
// fails the bind; an empty one does not.
func (b *Binding) Bind(dev *pmic.Device, node *dt.Node) error {
	regs, ok := devtree.Subnode(node, RegulatorNode)
	if !ok {
		b.logf("%s: regulators subnode not found!", dev.Name)
		return &errcode.E{C: errcode.MissingSection, Op: "bind", Dev: dev.Name, Reg: -1, Msg: RegulatorNode}
	}
	b.logf("%s: found regulators subnode", dev.Name)

	if n := pmic.BindChildren(dev, regs, Children); n == 0 {
		b.logf("%s: no child found", dev.Name)
	}
	return nil
}

// Open builds the chip driver from the parsed configuration.
func (b *Binding) Open(dev *pmic.Device, bus drivers.I2C) (pmic.PMIC, error) {
	plat, ok := dev.Plat.(PlatData)
	if !ok {
		if pp, ok2 := dev.Plat.(*PlatData); ok2 && pp != nil {
			plat = *pp
		} else {
			return nil, errcode.InvalidParams
		}
	}
	if bus == nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "open", Dev: dev.Name, Reg: -1, Msg: "nil bus"}
	}
	cfg := act8846.DefaultConfig()
	if dev.Addr != 0 {
		cfg.Address = dev.Addr
	}
	cfg.Name = dev.Name
	cfg.SystemPowerController = plat.SystemPowerController
	if b.OffDelay > 0 {
		cfg.OffDelay = b.OffDelay
	}
	cfg.OffRetries = b.OffRetries
	cfg.Sleep = b.Sleep
	cfg.Logf = b.Logf
	return act8846.New(bus, cfg), nil
}
