package telemetry

import (
	"fmt"
	"os"
	"sync"
)

// ThreadStateReader exposes just enough of a VM thread for the tic
// logger to snapshot it, avoiding an import cycle with internal/vm.
type ThreadStateReader interface {
	ThreadSnapshot(tid int) (pc uint16, active bool, paused bool, stackDepth int)
}

// MachineStateReader exposes the machine registers and scheduling
// state the tic logger records alongside each thread snapshot.
type MachineStateReader interface {
	Register(id int) int16
	ActivePalette() uint8
	GamePart() int
}

// TicSnapshot is the per-thread state captured for one logged tic.
type TicSnapshot struct {
	Tic     uint64
	Threads [64]struct {
		PC         uint16
		Active     bool
		Paused     bool
		StackDepth int
	}
}

// TicLogger writes one line per tic with the active palette, the game
// part, the number of active threads, and thread 0's program counter,
// for reconstructing a run's control flow after the fact.
type TicLogger struct {
	file       *os.File
	maxTics    uint64
	startTic   uint64
	currentTic uint64
	totalTics  uint64
	enabled    bool
	mu         sync.Mutex

	threads MachineStateReader
}

// NewTicLogger creates a tic logger writing to filename. maxTics == 0
// logs without limit; startTic defers logging until that many tics
// have elapsed (both are offsets from this logger's own creation, not
// the machine's lifetime tic count).
func NewTicLogger(filename string, maxTics uint64, startTic uint64, machine MachineStateReader) (*TicLogger, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("telemetry: failed to create tic log file %q: %w", filename, err)
	}

	logger := &TicLogger{
		file:     file,
		maxTics:  maxTics,
		startTic: startTic,
		enabled:  true,
		threads:  machine,
	}

	fmt.Fprintf(file, "Tic-by-Tic Debug Log\n")
	fmt.Fprintf(file, "====================\n\n")
	if startTic > 0 {
		fmt.Fprintf(file, "Start tic offset: %d\n", startTic)
	}
	if maxTics > 0 {
		fmt.Fprintf(file, "Max tics to log: %d\n", maxTics)
	}
	fmt.Fprintf(file, "\nFormat: Tic | ActivePalette | GamePart | active thread count | pc of thread 0\n\n")

	return logger, nil
}

// LogTic records one tic's summary line.
func (t *TicLogger) LogTic(threads ThreadStateReader) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.enabled {
		return
	}

	t.totalTics++
	if t.totalTics < t.startTic {
		return
	}
	if t.maxTics > 0 && t.currentTic >= t.maxTics {
		t.enabled = false
		return
	}
	t.currentTic++

	activeCount := 0
	var pc0 uint16
	if threads != nil {
		for tid := 0; tid < 64; tid++ {
			pc, active, _, _ := threads.ThreadSnapshot(tid)
			if active {
				activeCount++
			}
			if tid == 0 {
				pc0 = pc
			}
		}
	}

	palette := uint8(0)
	part := 0
	if t.threads != nil {
		palette = t.threads.ActivePalette()
		part = t.threads.GamePart()
	}

	fmt.Fprintf(t.file, "Tic %8d | Palette:%02X | Part:%d | Active:%2d | pc0:%04X\n",
		t.totalTics, palette, part, activeCount, pc0)
}

// SetEnabled enables or disables logging.
func (t *TicLogger) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = enabled
}

// Close flushes a trailer line and closes the backing file.
func (t *TicLogger) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.enabled = false
	if t.file != nil {
		fmt.Fprintf(t.file, "\n\nLog complete. Total tics logged: %d\n", t.currentTic)
		err := t.file.Close()
		t.file = nil
		return err
	}
	return nil
}

// IsEnabled reports whether the logger will still accept entries.
func (t *TicLogger) IsEnabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled && (t.maxTics == 0 || t.currentTic < t.maxTics)
}
