package act8846

import (
	"errors"
	"sync"
	"time"

	"tinygo.org/x/drivers"
)

// Compile-time check.
var _ drivers.I2C = (*fakeI2C)(nil)

var errNack = errors.New("i2c: nack")

type txRec struct {
	addr uint16
	w    []byte
	rn   int
}

// In-memory register file with write recording and failure injection.
type fakeI2C struct {
	mu      sync.Mutex
	regs    [256]byte
	txs     []txRec
	writes  int
	failAt  int // fail the n-th write (1-based); 0 = never
	failAll bool
	failErr error // returned instead of errNack when set
}

func (f *fakeI2C) fail() error {
	if f.failErr != nil {
		return f.failErr
	}
	return errNack
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txs = append(f.txs, txRec{addr: addr, w: append([]byte(nil), w...), rn: len(r)})
	if f.failAll {
		return f.fail()
	}
	if len(w) == 0 {
		return nil
	}
	reg := int(w[0])
	if len(r) > 0 {
		for i := range r {
			r[i] = f.regs[(reg+i)&0xff]
		}
		return nil
	}
	f.writes++
	if f.failAt > 0 && f.writes == f.failAt {
		return f.fail()
	}
	for i, b := range w[1:] {
		f.regs[(reg+i)&0xff] = b
	}
	return nil
}

// writeLog returns (register, value) pairs of single-byte writes.
func (f *fakeI2C) writeLog() [][2]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out [][2]byte
	for _, t := range f.txs {
		if t.rn == 0 && len(t.w) == 2 {
			out = append(out, [2]byte{t.w[0], t.w[1]})
		}
	}
	return out
}

type sleepRec struct {
	calls []time.Duration
}

func (s *sleepRec) sleep(d time.Duration) { s.calls = append(s.calls, d) }

type logRec struct {
	lines []string
}

func (l *logRec) logf(format string, args ...any) { l.lines = append(l.lines, format) }
