package glprog

import "strconv"

// ProtocolError reports a bind/unbind nesting mistake by the caller, such as
// unbinding a program that is not the most recently bound one.
type ProtocolError struct {
	Op string
	// Program is the handle of the program the operation was called on.
	Program uint32
	// Active is the handle of the program at the top of the active stack, 0 if empty.
	Active uint32
}

func (e *ProtocolError) Error() string {
	msg := "glprog: " + e.Op + " program " + strconv.FormatUint(uint64(e.Program), 10)
	if e.Active == 0 {
		return msg + " with no active program"
	}
	return msg + " while program " + strconv.FormatUint(uint64(e.Active), 10) + " is active"
}
