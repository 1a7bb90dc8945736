package vm

// fetchU8 reads one byte at t.PC and advances it, or reports
// EndOfProgram if the program is exhausted.
func (m *Machine) fetchU8(tid uint8, t *ThreadState) (uint8, error) {
	if int(t.PC) >= len(m.program) {
		return 0, programError(ErrEndOfProgram, tid, t.PC, "read past the end of a %d-byte program", len(m.program))
	}
	b := m.program[t.PC]
	t.PC++
	return b, nil
}

// fetchU16 reads a big-endian 16-bit word at t.PC and advances it.
func (m *Machine) fetchU16(tid uint8, t *ThreadState) (uint16, error) {
	hi, err := m.fetchU8(tid, t)
	if err != nil {
		return 0, err
	}
	lo, err := m.fetchU8(tid, t)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (m *Machine) fetchI16(tid uint8, t *ThreadState) (int16, error) {
	v, err := m.fetchU16(tid, t)
	return int16(v), err
}

// validAddress reports whether addr lies within the current program,
// as required of every jump, call, and thread-activation target.
func (m *Machine) validAddress(addr uint16) bool {
	return int(addr) < len(m.program)
}
