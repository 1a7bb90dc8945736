package vm

// Opcode identifies one of the 27 dedicated one-byte instructions.
// Opcode bytes with the high bit set (0x80-0xFF) never appear here —
// they're the compact polygon/animation draw fast paths handled
// separately in step.
type Opcode uint8

const (
	OpSetRegister Opcode = iota
	OpCopyRegister
	OpAddToRegister
	OpAddConstToRegister
	OpCall
	OpReturn
	OpYield
	OpJump
	OpActivateThread
	OpJumpIfNotZero
	OpConditionalJump
	OpSelectPalette
	OpControlThreads
	OpSelectVideoBuffer
	OpFillVideoBuffer
	OpCopyVideoBuffer
	OpRenderVideoBuffer
	OpKillThread
	OpDrawString
	OpSubFromRegister
	OpAndRegister
	OpOrRegister
	OpShiftLeft
	OpShiftRight
	OpPlaySound
	OpControlResources
	OpControlMusic
	opcodeCount
)

// maxCallDepth bounds a thread's call stack; exceeding it is almost
// always a runaway recursive program rather than legitimate nesting.
const maxCallDepth = 64

// Thread-control operations for ControlThreads, matching the op byte
// that follows the tid_start/tid_end pair.
const (
	ThreadOpResume = iota
	ThreadOpPause
	ThreadOpDeactivate
)

// defaultPolygonScale is the fixed-point scale value meaning 1.0x (64
// sixty-fourths), used when a compact draw instruction's scale byte
// is zero.
const defaultPolygonScale = 64

// scaleFromRegister is the sentinel scale byte value meaning "read
// the scale from RegPolygonScale instead of using the byte itself".
const scaleFromRegister = 0xFF

// RegPolygonScale is the reserved register a compact draw instruction
// reads its scale from when its scale byte is scaleFromRegister.
const RegPolygonScale = 248

// step executes exactly one instruction for thread tid and reports
// whether the thread should stop running for the remainder of this
// tic (a yield point was hit) alongside any ProgramError.
func (m *Machine) step(tid uint8) (suspend bool, err error) {
	t := &m.threads[tid]
	opcodeByte, err := m.fetchU8(tid, t)
	if err != nil {
		return false, err
	}

	if opcodeByte&0x80 != 0 {
		return false, m.execDrawCompact(tid, t)
	}
	if opcodeByte >= uint8(opcodeCount) {
		return false, programError(ErrInvalidOpcode, tid, t.PC-1, "opcode byte 0x%02X does not name a dedicated instruction", opcodeByte)
	}

	switch Opcode(opcodeByte) {
	case OpSetRegister:
		return false, m.execSetRegister(tid, t)
	case OpCopyRegister:
		return false, m.execCopyRegister(tid, t)
	case OpAddToRegister:
		return false, m.execAddToRegister(tid, t)
	case OpAddConstToRegister:
		return false, m.execAddConstToRegister(tid, t)
	case OpCall:
		return false, m.execCall(tid, t)
	case OpReturn:
		return false, m.execReturn(tid, t)
	case OpYield:
		return true, nil
	case OpJump:
		return false, m.execJump(tid, t)
	case OpActivateThread:
		return false, m.execActivateThread(tid, t)
	case OpJumpIfNotZero:
		return false, m.execJumpIfNotZero(tid, t)
	case OpConditionalJump:
		return false, m.execConditionalJump(tid, t)
	case OpSelectPalette:
		return false, m.execSelectPalette(tid, t)
	case OpControlThreads:
		return false, m.execControlThreads(tid, t)
	case OpSelectVideoBuffer:
		return false, m.execSelectVideoBuffer(tid, t)
	case OpFillVideoBuffer:
		return false, m.execFillVideoBuffer(tid, t)
	case OpCopyVideoBuffer:
		return false, m.execCopyVideoBuffer(tid, t)
	case OpRenderVideoBuffer:
		err := m.execRenderVideoBuffer(tid, t)
		return err == nil, err
	case OpKillThread:
		t.Active = false
		return true, nil
	case OpDrawString:
		return false, m.execDrawString(tid, t)
	case OpSubFromRegister:
		return false, m.execSubFromRegister(tid, t)
	case OpAndRegister:
		return false, m.execAndRegister(tid, t)
	case OpOrRegister:
		return false, m.execOrRegister(tid, t)
	case OpShiftLeft:
		return false, m.execShiftLeft(tid, t)
	case OpShiftRight:
		return false, m.execShiftRight(tid, t)
	case OpPlaySound:
		return false, m.execPlaySound(tid, t)
	case OpControlResources:
		return false, m.execControlResources(tid, t)
	case OpControlMusic:
		return false, m.execControlMusic(tid, t)
	default:
		return false, programError(ErrInvalidOpcode, tid, t.PC-1, "opcode byte 0x%02X does not name a dedicated instruction", opcodeByte)
	}
}

func (m *Machine) execSetRegister(tid uint8, t *ThreadState) error {
	reg, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	value, err := m.fetchI16(tid, t)
	if err != nil {
		return err
	}
	m.Registers[reg] = value
	return nil
}

func (m *Machine) execCopyRegister(tid uint8, t *ThreadState) error {
	dst, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	src, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	m.Registers[dst] = m.Registers[src]
	return nil
}

func (m *Machine) execAddToRegister(tid uint8, t *ThreadState) error {
	dst, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	src, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	m.Registers[dst] += m.Registers[src]
	return nil
}

func (m *Machine) execAddConstToRegister(tid uint8, t *ThreadState) error {
	reg, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	value, err := m.fetchI16(tid, t)
	if err != nil {
		return err
	}
	m.Registers[reg] += value
	return nil
}

func (m *Machine) execCall(tid uint8, t *ThreadState) error {
	addr, err := m.fetchU16(tid, t)
	if err != nil {
		return err
	}
	if !m.validAddress(addr) {
		return programError(ErrInvalidAddress, tid, t.PC-2, "call target 0x%04X lies outside the %d-byte program", addr, len(m.program))
	}
	if len(t.stack) >= maxCallDepth {
		return programError(ErrStackOverflow, tid, t.PC-2, "call stack depth exceeded %d — likely unterminated recursion", maxCallDepth)
	}
	t.stack = append(t.stack, t.PC)
	t.PC = addr
	return nil
}

func (m *Machine) execReturn(tid uint8, t *ThreadState) error {
	if len(t.stack) == 0 {
		return programError(ErrStackUnderflow, tid, t.PC-1, "returned with an empty call stack")
	}
	t.PC = t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	return nil
}

func (m *Machine) execJump(tid uint8, t *ThreadState) error {
	addr, err := m.fetchU16(tid, t)
	if err != nil {
		return err
	}
	if !m.validAddress(addr) {
		return programError(ErrInvalidAddress, tid, t.PC-2, "jump target 0x%04X lies outside the %d-byte program", addr, len(m.program))
	}
	t.PC = addr
	return nil
}

func (m *Machine) execActivateThread(tid uint8, t *ThreadState) error {
	target, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	addr, err := m.fetchU16(tid, t)
	if err != nil {
		return err
	}
	if int(target) >= ThreadCount {
		return programError(ErrInvalidThreadID, tid, t.PC-3, "thread id %d is outside the valid range [0,%d)", target, ThreadCount)
	}
	if !m.validAddress(addr) {
		return programError(ErrInvalidAddress, tid, t.PC-3, "activation target 0x%04X lies outside the %d-byte program", addr, len(m.program))
	}
	m.pending[target].hasActivation = true
	m.pending[target].active = true
	m.pending[target].pc = addr
	return nil
}

func (m *Machine) execJumpIfNotZero(tid uint8, t *ThreadState) error {
	reg, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	addr, err := m.fetchU16(tid, t)
	if err != nil {
		return err
	}
	m.Registers[reg]--
	if m.Registers[reg] != 0 {
		if !m.validAddress(addr) {
			return programError(ErrInvalidAddress, tid, t.PC-3, "jump target 0x%04X lies outside the %d-byte program", addr, len(m.program))
		}
		t.PC = addr
	}
	return nil
}

// Conditional-jump comparison kinds, packed into the low 3 bits of the
// op byte.
const (
	cmpEqual = iota
	cmpNotEqual
	cmpGreater
	cmpGreaterOrEqual
	cmpLess
	cmpLessOrEqual
)

func (m *Machine) execConditionalJump(tid uint8, t *ThreadState) error {
	opByte, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	lhsReg, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}

	var rhs int16
	if opByte&0x80 != 0 {
		rhs, err = m.fetchI16(tid, t)
	} else {
		var rhsReg uint8
		rhsReg, err = m.fetchU8(tid, t)
		if err == nil {
			rhs = m.Registers[rhsReg]
		}
	}
	if err != nil {
		return err
	}

	addr, err := m.fetchU16(tid, t)
	if err != nil {
		return err
	}

	lhs := m.Registers[lhsReg]
	signed := opByte&0x08 != 0
	kind := opByte & 0x07

	var result bool
	if signed {
		switch kind {
		case cmpEqual:
			result = lhs == rhs
		case cmpNotEqual:
			result = lhs != rhs
		case cmpGreater:
			result = lhs > rhs
		case cmpGreaterOrEqual:
			result = lhs >= rhs
		case cmpLess:
			result = lhs < rhs
		case cmpLessOrEqual:
			result = lhs <= rhs
		default:
			return programError(ErrInvalidOpcode, tid, t.PC-1, "conditional jump comparison kind %d is not one of the 6 defined kinds", kind)
		}
	} else {
		lu, ru := uint16(lhs), uint16(rhs)
		switch kind {
		case cmpEqual:
			result = lu == ru
		case cmpNotEqual:
			result = lu != ru
		case cmpGreater:
			result = lu > ru
		case cmpGreaterOrEqual:
			result = lu >= ru
		case cmpLess:
			result = lu < ru
		case cmpLessOrEqual:
			result = lu <= ru
		default:
			return programError(ErrInvalidOpcode, tid, t.PC-1, "conditional jump comparison kind %d is not one of the 6 defined kinds", kind)
		}
	}

	if result {
		if !m.validAddress(addr) {
			return programError(ErrInvalidAddress, tid, t.PC-2, "conditional jump target 0x%04X lies outside the %d-byte program", addr, len(m.program))
		}
		t.PC = addr
	}
	return nil
}

func (m *Machine) execSelectPalette(tid uint8, t *ThreadState) error {
	id, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	m.activePalette = id
	m.palletteSelected = true
	if m.video != nil {
		return m.video.SelectPalette(id)
	}
	return nil
}

func (m *Machine) execControlThreads(tid uint8, t *ThreadState) error {
	start, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	end, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	op, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	if end < start {
		return programError(ErrInvalidThreadRange, tid, t.PC-3, "thread range [%d,%d] has end before start", start, end)
	}
	if int(end) >= ThreadCount {
		return programError(ErrInvalidThreadID, tid, t.PC-3, "thread range end %d is outside the valid range [0,%d)", end, ThreadCount)
	}

	for id := start; id <= end; id++ {
		switch op {
		case ThreadOpResume:
			m.pending[id].hasPause = true
			m.pending[id].paused = false
		case ThreadOpPause:
			m.pending[id].hasPause = true
			m.pending[id].paused = true
		case ThreadOpDeactivate:
			m.pending[id].hasActivation = true
			m.pending[id].active = false
		default:
			return programError(ErrInvalidThreadOperation, tid, t.PC-1, "thread control op %d is not resume(0)/pause(1)/deactivate(2)", op)
		}
		if id == end {
			break // avoid wrapping past 255 when end == 255
		}
	}
	return nil
}

func (m *Machine) execSelectVideoBuffer(tid uint8, t *ThreadState) error {
	id, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	if m.video != nil {
		return m.video.SelectDrawTarget(id)
	}
	return nil
}

func (m *Machine) execFillVideoBuffer(tid uint8, t *ThreadState) error {
	id, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	color, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	if m.video != nil {
		return m.video.FillBuffer(id, color)
	}
	return nil
}

func (m *Machine) execCopyVideoBuffer(tid uint8, t *ThreadState) error {
	src, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	dst, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	flag, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	var offset int16
	if flag != 0 {
		regIdx, err := m.fetchU8(tid, t)
		if err != nil {
			return err
		}
		offset = m.Registers[regIdx]
	}
	if m.video != nil {
		return m.video.CopyBuffer(src, dst, offset)
	}
	return nil
}

func (m *Machine) execRenderVideoBuffer(tid uint8, t *ThreadState) error {
	id, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	delayMs := uint32(m.Registers[RegPauseSlice]) * m.TicMilliseconds
	if m.video == nil {
		return nil
	}
	return m.video.Present(id, delayMs)
}

func (m *Machine) execDrawString(tid uint8, t *ThreadState) error {
	stringID, err := m.fetchU16(tid, t)
	if err != nil {
		return err
	}
	x, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	y, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	color, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	if m.video != nil {
		return m.video.DrawString(stringID, x, y, color)
	}
	return nil
}

func (m *Machine) execSubFromRegister(tid uint8, t *ThreadState) error {
	dst, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	src, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	m.Registers[dst] -= m.Registers[src]
	return nil
}

func (m *Machine) execAndRegister(tid uint8, t *ThreadState) error {
	reg, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	value, err := m.fetchU16(tid, t)
	if err != nil {
		return err
	}
	m.Registers[reg] = int16(uint16(m.Registers[reg]) & value)
	return nil
}

func (m *Machine) execOrRegister(tid uint8, t *ThreadState) error {
	reg, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	value, err := m.fetchU16(tid, t)
	if err != nil {
		return err
	}
	m.Registers[reg] = int16(uint16(m.Registers[reg]) | value)
	return nil
}

func (m *Machine) execShiftLeft(tid uint8, t *ThreadState) error {
	reg, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	n, err := m.fetchU16(tid, t)
	if err != nil {
		return err
	}
	m.Registers[reg] = int16(uint16(m.Registers[reg]) << n)
	return nil
}

func (m *Machine) execShiftRight(tid uint8, t *ThreadState) error {
	reg, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	n, err := m.fetchU16(tid, t)
	if err != nil {
		return err
	}
	m.Registers[reg] = int16(uint16(m.Registers[reg]) >> n)
	return nil
}

func (m *Machine) execPlaySound(tid uint8, t *ThreadState) error {
	res, err := m.fetchU16(tid, t)
	if err != nil {
		return err
	}
	freq, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	vol, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	chan_, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	if m.audio != nil {
		return m.audio.PlaySound(res, freq, vol, chan_)
	}
	return nil
}

// firstResourceID is the smallest resource id ControlResources treats
// as an ordinary resource load; ids below it (and above 0, which
// means "unload everything") select one of the game's fixed parts.
const firstResourceID = 16

func (m *Machine) execControlResources(tid uint8, t *ThreadState) error {
	res, err := m.fetchU16(tid, t)
	if err != nil {
		return err
	}
	switch {
	case res == 0:
		if m.resources != nil {
			m.resources.UnloadAll()
		}
	case res < firstResourceID:
		m.pendingPartSwitch = true
		m.pendingPartSwitchID = res
	default:
		if m.resources != nil {
			return m.resources.LoadResource(res)
		}
	}
	return nil
}

func (m *Machine) execControlMusic(tid uint8, t *ThreadState) error {
	res, err := m.fetchU16(tid, t)
	if err != nil {
		return err
	}
	delay, err := m.fetchU16(tid, t)
	if err != nil {
		return err
	}
	position, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	if m.audio == nil {
		return nil
	}
	switch {
	case res == 0:
		return m.audio.StopMusic()
	case res == 0xFFFF:
		return m.audio.SetMusicDelay(delay)
	default:
		return m.audio.PlayMusic(res, delay, position)
	}
}

// execDrawCompact decodes and executes one of the two compact
// polygon-draw fast paths. Bit 7 of the opcode byte is always set to
// reach here; bit 6 selects the polygon bank (0) or the animation
// bank (1), and the remaining 6 bits are the high bits of a 14-bit
// word-aligned bank offset, continued in the byte that follows.
func (m *Machine) execDrawCompact(tid uint8, t *ThreadState) error {
	opcodeByte := m.program[t.PC-1]
	bank := BankPolygons
	if opcodeByte&0x40 != 0 {
		bank = BankAnimations
	}

	lo, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	addr := (uint16(opcodeByte&0x3F)<<8 | uint16(lo)) << 1

	xByte, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	yByte, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}
	scaleByte, err := m.fetchU8(tid, t)
	if err != nil {
		return err
	}

	scale := uint16(defaultPolygonScale)
	switch scaleByte {
	case 0:
		scale = defaultPolygonScale
	case scaleFromRegister:
		scale = uint16(m.Registers[RegPolygonScale])
	default:
		scale = uint16(scaleByte)
	}

	if m.video == nil {
		return nil
	}
	return m.video.DrawPolygon(bank, addr, int16(xByte), int16(yByte), scale)
}
