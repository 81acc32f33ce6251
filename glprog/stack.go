package glprog

// activeStack tracks nested binds. The most recently bound program is last.
// Its methods do not issue GL calls, they report which call is needed to keep
// the GL active program equal to the top of the stack.
type activeStack struct {
	progs []*Program
}

func (s *activeStack) top() *Program {
	if len(s.progs) == 0 {
		return nil
	}
	return s.progs[len(s.progs)-1]
}

func (s *activeStack) depth() int { return len(s.progs) }

func (s *activeStack) contains(p *Program) bool {
	for _, sp := range s.progs {
		if sp == p {
			return true
		}
	}
	return false
}

// push places p on top of the stack. use is true when p must be made active.
func (s *activeStack) push(p *Program) (use bool) {
	use = s.top() != p
	s.progs = append(s.progs, p)
	return use
}

// pop removes p from the top of the stack. use is true when next must be made
// active, next being nil when the stack was emptied. ok is false and the
// stack unchanged when p is not the top.
func (s *activeStack) pop(p *Program) (next *Program, use, ok bool) {
	if s.top() != p || p == nil {
		return nil, false, false
	}
	s.progs[len(s.progs)-1] = nil
	s.progs = s.progs[:len(s.progs)-1]
	next = s.top()
	return next, useNeeded(p, next), true
}

func (s *activeStack) clear() {
	clear(s.progs)
	s.progs = s.progs[:0]
}

// useNeeded reports whether a UseProgram call is needed to go from the active
// program prev to next. A nil next always requires deactivating.
func useNeeded(prev, next *Program) bool {
	return next == nil || next != prev
}
