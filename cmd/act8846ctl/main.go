// act8846ctl probes ACT8846 PMICs described in a DTB and drives them over a
// Linux I2C bus.
//
//	act8846ctl --dtb board.dtb --bus /dev/i2c-0 read 0xc3
//	act8846ctl --dtb board.dtb tree
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"

	"pmic-go/devtree"
	"pmic-go/pmic"
	act8846dev "pmic-go/pmic/devices/act8846"
)

var (
	dtbPath  string
	busName  string
	nodeName string
	retries  int
	delay    time.Duration
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "act8846ctl",
		Short:        "Inspect and control ACT8846 PMICs",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dtbPath, "dtb", "", "flattened device tree blob")
	root.PersistentFlags().StringVar(&busName, "bus", "", "I2C bus name or number (empty: first bus)")
	root.PersistentFlags().StringVar(&nodeName, "node", "", "PMIC node name (empty: first match)")
	_ = root.MarkPersistentFlagRequired("dtb")

	root.AddCommand(treeCmd(), regCountCmd(), readCmd(), writeCmd(), powerOffCmd())
	return root
}

// offline rejects every transfer; used when no bus is needed.
type offline struct{}

func (offline) Tx(uint16, []byte, []byte) error { return errors.New("no bus opened") }

func loadDevices(bus drivers.I2C) ([]*pmic.Device, error) {
	f, err := os.Open(dtbPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	root, err := devtree.Load(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", dtbPath, err)
	}
	devs, err := pmic.Scan(root, bus)
	if len(devs) == 0 && err == nil {
		err = errors.New("no compatible PMIC in device tree")
	}
	return devs, err
}

// selectDevice picks the --node device, or the first one when unset.
// scanErr is reported when nothing was selected.
func selectDevice(devs []*pmic.Device, scanErr error) (*pmic.Device, error) {
	for _, d := range devs {
		if nodeName == "" || d.Name == nodeName {
			return d, nil
		}
	}
	if scanErr != nil {
		return nil, scanErr
	}
	return nil, fmt.Errorf("node %q not found", nodeName)
}

// withDevice opens the bus, probes the tree and runs fn on the selected PMIC
// with the bus it was probed on.
func withDevice(fn func(*pmic.Device, drivers.I2C) error) error {
	if _, err := host.Init(); err != nil {
		return err
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return err
	}
	defer bus.Close()

	d, err := selectDevice(loadDevices(bus))
	if err != nil {
		return err
	}
	return fn(d, bus)
}

func treeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "List probed PMICs and their regulators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			devs, scanErr := loadDevices(offline{})
			if nodeName != "" {
				d, err := selectDevice(devs, scanErr)
				if err != nil {
					return err
				}
				devs = []*pmic.Device{d}
			}
			out := cmd.OutOrStdout()
			for _, d := range devs {
				spc := false
				if p, ok := d.Plat.(act8846dev.PlatData); ok {
					spc = p.SystemPowerController
				}
				fmt.Fprintf(out, "%s addr=%#x driver=%q system-power-controller=%v\n", d.Name, d.Addr, d.Driver, spc)
				for _, c := range d.Children {
					fmt.Fprintf(out, "  %s driver=%q\n", c.Name, c.Driver)
				}
			}
			return scanErr
		},
	}
}

func regCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regcount",
		Short: "Print the regulator count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := selectDevice(loadDevices(offline{}))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.RegCount())
			return nil
		},
	}
}

func readCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <reg> [len]",
		Short: "Read consecutive registers",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := strconv.ParseUint(args[0], 0, 8)
			if err != nil {
				return err
			}
			n := uint64(1)
			if len(args) == 2 {
				if n, err = strconv.ParseUint(args[1], 0, 8); err != nil {
					return err
				}
			}
			return withDevice(func(d *pmic.Device, _ drivers.I2C) error {
				buf := make([]byte, n)
				if err := d.Read(uint(reg), buf); err != nil {
					return err
				}
				for i, b := range buf {
					fmt.Fprintf(cmd.OutOrStdout(), "%#04x: %#04x\n", reg+uint64(i), b)
				}
				return nil
			})
		},
	}
}

func writeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write <reg> <byte>...",
		Short: "Write consecutive registers",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			reg, err := strconv.ParseUint(args[0], 0, 8)
			if err != nil {
				return err
			}
			buf := make([]byte, 0, len(args)-1)
			for _, a := range args[1:] {
				v, err := strconv.ParseUint(a, 0, 8)
				if err != nil {
					return err
				}
				buf = append(buf, byte(v))
			}
			return withDevice(func(d *pmic.Device, _ drivers.I2C) error { return d.Write(uint(reg), buf) })
		},
	}
}

func powerOffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poweroff",
		Short: "Cut system power (requires system-power-controller)",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withDevice(func(d *pmic.Device, bus drivers.I2C) error {
				ops, err := powerOffBinding().Open(d, bus)
				if err != nil {
					return err
				}
				return ops.PowerOff()
			})
		},
	}
	cmd.Flags().IntVar(&retries, "retries", 0, "give up after this many attempts (0: never)")
	cmd.Flags().DurationVar(&delay, "delay", 10*time.Millisecond, "wait after asserting OFFSYS")
	return cmd
}

// powerOffBinding carries the command-line power-off policy. The registered
// binding is left untouched.
func powerOffBinding() *act8846dev.Binding {
	return &act8846dev.Binding{OffRetries: retries, OffDelay: delay}
}
