package act8846

import "pmic-go/errcode"

// PowerOff cuts system power through GLB_OFF_CTRL.
//
// On success the call does not return: power is lost during the delay. Each
// iteration writes OFFSYSCLR, then OFFSYSCLR|OFFSYS, then waits. A failed
// write ends the sequence with its error. With OffRetries unset the loop runs
// until power is lost.
func (d *Device) PowerOff() error {
	if !d.spc {
		return &errcode.E{C: errcode.NotAuthorized, Op: "poweroff", Dev: d.name, Reg: -1,
			Msg: "not the system power controller"}
	}
	for attempt := 1; ; attempt++ {
		if err := d.WriteReg(RegGlbOffCtrl, OffSysClr); err != nil {
			return err
		}
		if err := d.WriteReg(RegGlbOffCtrl, OffSysClr|OffSys); err != nil {
			return err
		}
		d.sleep(d.offDelay)
		d.logf("poweroff: powerdown failed! (attempt %d)", attempt)

		if d.offRetries > 0 && attempt >= d.offRetries {
			return &errcode.E{C: errcode.PowerOffFailed, Op: "poweroff", Dev: d.name, Reg: RegGlbOffCtrl}
		}
	}
}
