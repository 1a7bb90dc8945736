package vm

// RunTic advances the machine by one tic: it stamps the reserved
// input registers from input, runs every active, unpaused thread in
// ascending thread-id order up to InstructionBudget instructions each,
// then applies every pending activation/pause transition scheduled
// during the tic atomically. A pending game-part switch, if any, is
// performed last and ends the tic immediately.
func (m *Machine) RunTic(input InputState) error {
	m.stampInputRegisters(input)
	m.tic++

	for tid := uint8(0); tid < ThreadCount; tid++ {
		t := &m.threads[tid]
		if !t.Active || t.Paused {
			continue
		}
		if err := m.runThread(tid, t); err != nil {
			return err
		}
	}

	m.applyPendingTransitions()

	if m.pendingPartSwitch {
		return m.performPartSwitch()
	}
	return nil
}

func (m *Machine) stampInputRegisters(input InputState) {
	m.Registers[RegInputLeft] = boolToRegister(input.Left)
	m.Registers[RegInputRight] = boolToRegister(input.Right)
	m.Registers[RegInputUp] = boolToRegister(input.Up)
	m.Registers[RegInputDown] = boolToRegister(input.Down)
	m.Registers[RegInputAction] = boolToRegister(input.Action)
	if input.LastCharacter == 0 {
		m.Registers[RegInputLastChar] = noLastCharacter
	} else {
		m.Registers[RegInputLastChar] = input.LastCharacter
	}
}

func boolToRegister(b bool) int16 {
	if b {
		return 1
	}
	return 0
}

// runThread executes t's instructions until it hits a suspension
// point (Yield, a successful Present, KillThread) or exhausts its
// per-tic instruction budget.
func (m *Machine) runThread(tid uint8, t *ThreadState) error {
	for count := 0; count < InstructionBudget; count++ {
		suspend, err := m.step(tid)
		if err != nil {
			return err
		}
		if suspend {
			return nil
		}
	}
	return programError(ErrInstructionBudget, tid, t.PC, "exceeded %d instructions in a single tic without yielding", InstructionBudget)
}

// applyPendingTransitions commits every ActivateThread/ControlThreads
// request scheduled during the tic just run, then clears the pending
// table for the next one.
func (m *Machine) applyPendingTransitions() {
	for tid := range m.pending {
		p := &m.pending[tid]
		t := &m.threads[tid]
		if p.hasActivation {
			t.Active = p.active
			if p.active {
				t.PC = p.pc
				t.stack = t.stack[:0]
			}
		}
		if p.hasPause {
			t.Paused = p.paused
		}
		*p = pendingTransition{}
	}
}

// performPartSwitch asks the resource directory to switch to the
// pending part, records the new part index, and clears the request.
// The caller returns immediately afterward, per the requirement that a
// part switch ends its tic early.
func (m *Machine) performPartSwitch() error {
	id := m.pendingPartSwitchID
	m.pendingPartSwitch = false
	m.pendingPartSwitchID = 0
	if m.resources != nil {
		if err := m.resources.SwitchPart(id); err != nil {
			return err
		}
	}
	m.gamePart = int(id)
	return nil
}
