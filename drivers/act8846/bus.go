package act8846

import "pmic-go/errcode"

// Read fills buf from consecutive registers starting at reg.
func (d *Device) Read(reg uint, buf []byte) error {
	if reg > 0xff {
		return d.badReg("read", reg)
	}
	d.a[0] = byte(reg)
	if err := d.bus.Tx(d.addr, d.a[:], buf); err != nil {
		d.logf("read error from device: %s register: %#x!", d.name, reg)
		return d.ioErr("read", reg, err)
	}
	return nil
}

// Write stores buf into consecutive registers starting at reg.
func (d *Device) Write(reg uint, buf []byte) error {
	if reg > 0xff {
		return d.badReg("write", reg)
	}
	var w []byte
	if 1+len(buf) <= len(d.w) {
		w = d.w[:1+len(buf)]
	} else {
		w = make([]byte, 1+len(buf))
	}
	w[0] = byte(reg)
	copy(w[1:], buf)
	if err := d.bus.Tx(d.addr, w, nil); err != nil {
		d.logf("write error to device: %s register: %#x!", d.name, reg)
		return d.ioErr("write", reg, err)
	}
	return nil
}

// ReadReg reads one register.
func (d *Device) ReadReg(reg uint) (byte, error) {
	var b [1]byte
	if err := d.Read(reg, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// WriteReg writes one register.
func (d *Device) WriteReg(reg uint, val byte) error {
	b := [1]byte{val}
	return d.Write(reg, b[:])
}

func (d *Device) ioErr(op string, reg uint, err error) error {
	return &errcode.E{C: errcode.IO, Op: op, Dev: d.name, Reg: int(reg), Err: err}
}

func (d *Device) badReg(op string, reg uint) error {
	return &errcode.E{C: errcode.InvalidParams, Op: op, Dev: d.name, Reg: int(reg), Msg: "register offset exceeds 8 bits"}
}
