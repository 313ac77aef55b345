package errcode

import "strconv"

// Code is a stable, caller-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK             Code = "ok"
	IO             Code = "io_error"
	NotAuthorized  Code = "not_authorized"
	MissingSection Code = "missing_section"
	NoDriver       Code = "no_driver"
	InvalidParams  Code = "invalid_params"
	Unsupported    Code = "unsupported"
	PowerOffFailed Code = "poweroff_failed"

	Error Code = "error" // generic fallback
)

// E keeps a Code together with the device/register context and the cause.
type E struct {
	C   Code
	Op  string // "read", "write", "bind", ...
	Dev string // device identity
	Reg int    // register address, -1 when not applicable
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Dev != "" {
		s += " dev=" + e.Dev
	}
	if e.Reg >= 0 {
		s += " reg=0x" + strconv.FormatUint(uint64(e.Reg), 16)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is lets errors.Is(err, errcode.IO) match a wrapped E.
func (e *E) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.C
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

// MapDriverErr maps a bus transport error to a driver-level Code.
// Every transport failure is an I/O failure from the driver's point of view,
// whatever code the transport attached.
func MapDriverErr(err error) Code {
	if err == nil {
		return OK
	}
	return IO
}
