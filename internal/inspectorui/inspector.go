// Package inspectorui is a read-only Fyne window for watching a
// running Machine: a paged register grid, a thread table, and the
// active palette's swatches, all refreshed from an immutable per-tic
// snapshot rather than reaching into the machine directly.
package inspectorui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// registersPerPage bounds how many of the 256 registers one page of
// the grid shows at a time.
const registersPerPage = 32

// ThreadRow is one thread's state for the thread table.
type ThreadRow struct {
	ID         uint8
	PC         uint16
	Active     bool
	Paused     bool
	StackDepth int
}

// Snapshot is an immutable copy of everything the inspector displays
// for one tic. The engine publishes a new Snapshot each tic; the
// inspector never reads Machine fields directly, so a paused
// inspector can't race a running VM.
type Snapshot struct {
	Tic           uint64
	Registers     [256]int16
	Threads       [64]ThreadRow
	ActivePalette uint8
	Palette       [16]color.RGBA
	GamePart      int
}

// Window is the inspector's Fyne window and its live widgets.
type Window struct {
	win fyne.Window

	page         int
	registerText *widget.Entry
	threadText   *widget.Entry
	partLabel    *widget.Label
	ticLabel     *widget.Label
	swatches     [16]*canvas.Rectangle

	latest Snapshot
}

// New builds the inspector window inside app. Call Update(snapshot)
// each tic to refresh it; the window only repaints when Update is
// called, so a paused simulation simply stops refreshing rather than
// needing its own pause state.
func New(app fyne.App) *Window {
	win := app.NewWindow("anotherengine inspector")

	w := &Window{win: win}

	w.registerText = widget.NewMultiLineEntry()
	w.registerText.Wrapping = fyne.TextWrapOff
	w.registerText.Disable()
	registerScroll := container.NewScroll(w.registerText)
	registerScroll.SetMinSize(fyne.NewSize(320, 300))

	prevBtn := widget.NewButton("< Page", func() { w.changePage(-1) })
	nextBtn := widget.NewButton("Page >", func() { w.changePage(1) })

	w.threadText = widget.NewMultiLineEntry()
	w.threadText.Wrapping = fyne.TextWrapOff
	w.threadText.Disable()
	threadScroll := container.NewScroll(w.threadText)
	threadScroll.SetMinSize(fyne.NewSize(320, 300))

	swatchRow := container.NewHBox()
	for i := range w.swatches {
		rect := canvas.NewRectangle(color.Black)
		rect.SetMinSize(fyne.NewSize(16, 16))
		w.swatches[i] = rect
		swatchRow.Add(rect)
	}

	w.partLabel = widget.NewLabel("part: -")
	w.ticLabel = widget.NewLabel("tic: -")

	content := container.NewVBox(
		container.NewHBox(w.ticLabel, w.partLabel),
		container.NewHBox(prevBtn, nextBtn),
		container.NewHSplit(registerScroll, threadScroll),
		widget.NewLabel("Active palette"),
		swatchRow,
	)
	win.SetContent(content)
	win.Resize(fyne.NewSize(700, 450))
	return w
}

// Show displays the inspector window without blocking.
func (w *Window) Show() {
	w.win.Show()
}

func (w *Window) changePage(delta int) {
	pages := 256 / registersPerPage
	w.page = (w.page + delta + pages) % pages
	w.render()
}

// Update publishes a new snapshot and repaints every widget.
func (w *Window) Update(snapshot Snapshot) {
	w.latest = snapshot
	w.render()
}

func (w *Window) render() {
	w.ticLabel.SetText(fmt.Sprintf("tic: %d", w.latest.Tic))
	w.partLabel.SetText(fmt.Sprintf("part: %d", w.latest.GamePart))

	start := w.page * registersPerPage
	text := fmt.Sprintf("Registers %d-%d\n\n", start, start+registersPerPage-1)
	for i := start; i < start+registersPerPage; i++ {
		text += fmt.Sprintf("R%03d: %6d (0x%04X)\n", i, w.latest.Registers[i], uint16(w.latest.Registers[i]))
	}
	w.registerText.SetText(text)

	threads := "tid  pc     active paused depth\n"
	for _, t := range w.latest.Threads {
		if !t.Active && t.StackDepth == 0 && t.PC == 0 {
			continue
		}
		threads += fmt.Sprintf("%3d  %04X  %-6v %-6v %d\n", t.ID, t.PC, t.Active, t.Paused, t.StackDepth)
	}
	w.threadText.SetText(threads)

	for i, c := range w.latest.Palette {
		w.swatches[i].FillColor = c
		w.swatches[i].Refresh()
	}
}

// SnapshotFromMachine builds a Snapshot from anything exposing the
// same read-only accessors as *vm.Machine, avoiding an
// inspectorui -> vm import for a single struct literal.
func SnapshotFromMachine(tic uint64, registers func(id int) int16, threadSnapshot func(tid int) (pc uint16, active bool, paused bool, stackDepth int), activePalette uint8, palette [16]color.RGBA, gamePart int) Snapshot {
	var snap Snapshot
	snap.Tic = tic
	snap.ActivePalette = activePalette
	snap.Palette = palette
	snap.GamePart = gamePart
	for i := 0; i < 256; i++ {
		snap.Registers[i] = registers(i)
	}
	for tid := 0; tid < 64; tid++ {
		pc, active, paused, depth := threadSnapshot(tid)
		snap.Threads[tid] = ThreadRow{ID: uint8(tid), PC: pc, Active: active, Paused: paused, StackDepth: depth}
	}
	return snap
}
