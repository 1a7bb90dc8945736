package video

import (
	"fmt"

	"anotherengine/internal/resource"
	"anotherengine/internal/vm"
)

// Buffer id sentinels bytecode can pass instead of a literal 0-3
// buffer index. These values aren't recoverable from any source in
// the retrieval pack (see DESIGN.md); this package defines its own,
// consistent scheme: the three highest byte values name the rotating
// "working", "front" (currently presented) and "all buffers" targets,
// leaving the full 0-3 range free for direct buffer selection.
const (
	BufferWorking uint8 = 0xFF // the buffer draw/fill instructions are currently targeting
	BufferFront   uint8 = 0xFE // the buffer last handed to Present
	BufferAll     uint8 = 0xFD // every buffer at once (FillBuffer only)
)

const bufferCount = 4

// System owns the four indexed-color framebuffers and the active
// palette bank, and is the concrete implementation of vm.VideoPort:
// instructions dispatched by internal/vm land here.
type System struct {
	buffers [bufferCount]Buffer

	palettes      Bank
	hasPalette    bool
	activePalette uint8

	drawTarget uint8 // 0-3; 0 until the first SelectDrawTarget
	frontIndex uint8 // which of buffers[0:4] was last presented

	polygons   []byte
	animations []byte

	strings map[uint16]string

	present func(surface []byte, delayMs uint32) error
}

// NewSystem builds a System with no palette loaded yet and buffer 0
// as both the initial draw target and front buffer. present is called
// by Present once a frame has been converted to an ABGR surface;
// passing the host's PresentSurface wires real frame delivery.
func NewSystem(present func(surface []byte, delayMs uint32) error) *System {
	return &System{
		drawTarget: 0,
		frontIndex: 0,
		strings:    make(map[uint16]string),
		present:    present,
	}
}

// LoadPalettes decodes and installs a palette bank, replacing
// whatever part's palette was active before.
func (s *System) LoadPalettes(raw []byte) error {
	bank, err := DecodeBank(raw)
	if err != nil {
		return err
	}
	s.palettes = bank
	s.hasPalette = true
	s.activePalette = 0
	return nil
}

// LoadPolygons installs the polygon bank raw bytes used by
// vm.BankPolygons draw instructions.
func (s *System) LoadPolygons(raw []byte) {
	s.polygons = raw
}

// LoadAnimations installs the polygon bank raw bytes used by
// vm.BankAnimations draw instructions.
func (s *System) LoadAnimations(raw []byte) {
	s.animations = raw
}

// SetStrings installs the id -> text table DrawString's stringID
// operand looks up, sourced from the game part's string table
// resource.
func (s *System) SetStrings(strings map[uint16]string) {
	s.strings = strings
}

func (s *System) resolveBuffer(id uint8) *Buffer {
	switch id {
	case BufferWorking:
		return &s.buffers[s.drawTarget]
	case BufferFront:
		return &s.buffers[s.frontIndex]
	default:
		return &s.buffers[id%bufferCount]
	}
}

// SelectPalette activates one of the 32 palettes in the currently
// loaded bank.
func (s *System) SelectPalette(id uint8) error {
	if !s.hasPalette {
		return renderError(ErrPaletteNotSelected, "SelectPalette(%d) called before any palette bank was loaded", id)
	}
	s.activePalette = id % PaletteCount
	return nil
}

// SelectDrawTarget makes buffer id the target of subsequent Fill,
// Copy, DrawPolygon, and DrawString calls that reference
// BufferWorking.
func (s *System) SelectDrawTarget(id uint8) error {
	if id == BufferWorking || id == BufferFront || id == BufferAll {
		return renderError(ErrInvalidColorID, "SelectDrawTarget requires a literal buffer index 0-%d, got sentinel 0x%02X", bufferCount-1, id)
	}
	s.drawTarget = id % bufferCount
	return nil
}

// FillBuffer sets every pixel of the named buffer (or all four, for
// BufferAll) to color.
func (s *System) FillBuffer(id uint8, color uint8) error {
	if id == BufferAll {
		for i := range s.buffers {
			s.buffers[i].Fill(color)
		}
		return nil
	}
	s.resolveBuffer(id).Fill(color)
	return nil
}

// CopyBuffer copies src into dst shifted vertically by yOffset rows.
func (s *System) CopyBuffer(src, dst uint8, yOffset int16) error {
	if src == dst {
		return nil
	}
	s.resolveBuffer(dst).CopyFrom(s.resolveBuffer(src), int(yOffset))
	return nil
}

// Present converts buffer id through the active palette and hands the
// resulting ABGR surface to the host. A missing palette is reported
// as the recoverable ErrPaletteNotSelected so callers can drop the
// frame instead of aborting the tic.
func (s *System) Present(id uint8, delayMs uint32) error {
	if !s.hasPalette {
		return renderError(ErrPaletteNotSelected, "Present(%d) called before any palette was selected", id)
	}
	buf := s.resolveBuffer(id)
	if id != BufferWorking && id != BufferFront {
		s.frontIndex = id % bufferCount
	}
	surface := ApplyPalette(buf, s.palettes[s.activePalette])
	if s.present == nil {
		return nil
	}
	return s.present(surface, delayMs)
}

// ActivePaletteRGBA returns the 16 RGB entries of the currently active
// palette, or false if no palette bank has been loaded yet.
func (s *System) ActivePaletteRGBA() (Palette, bool) {
	if !s.hasPalette {
		return Palette{}, false
	}
	return s.palettes[s.activePalette], true
}

// DrawString blits the text registered under stringID onto the
// current draw target.
func (s *System) DrawString(stringID uint16, x, y uint8, color uint8) error {
	text, ok := s.strings[stringID]
	if !ok {
		return renderError(ErrInvalidCharacter, "no string is registered under id %d", stringID)
	}
	return DrawString(s.resolveBuffer(BufferWorking), text, int(x), int(y), color)
}

// DrawPolygon decodes and rasterizes the polygon (or animation) at
// address onto the current draw target.
func (s *System) DrawPolygon(bank vm.PolygonBank, address uint16, x, y int16, scale uint16) error {
	source := s.polygons
	if bank == vm.BankAnimations {
		source = s.animations
	}
	if source == nil {
		return renderError(ErrInvalidColorID, "DrawPolygon requested the %s bank but none is loaded", bank)
	}

	p, err := DecodePolygon(source, address)
	if err != nil {
		return err
	}
	DrawPolygon(s.resolveBuffer(BufferWorking), nil, p, int(x), int(y), scale)
	return nil
}

// resourcePort adapts a resource.Directory (indexed by uint16 part
// ids via a lookup table) to vm.ResourcePort, and pushes a switched
// part's palette/polygon/animation bytes into a System.
type resourcePort struct {
	directory *resource.Directory
	parts     []resource.GamePart
	video     *System

	onPartLoaded func(loaded resource.Loaded) error
}

// NewResourcePort builds a vm.ResourcePort that looks up bytecode's
// uint16 part id in parts (positionally: bytecode part id N selects
// parts[N]), switches the resource directory to it, and pushes the
// resulting palette/polygon/animation bytes into video. onPartLoaded
// is called with the loaded bytecode/resources so the caller (the
// engine orchestrator) can rebuild the VM program.
func NewResourcePort(directory *resource.Directory, parts []resource.GamePart, video *System, onPartLoaded func(resource.Loaded) error) vm.ResourcePort {
	return &resourcePort{directory: directory, parts: parts, video: video, onPartLoaded: onPartLoaded}
}

func (r *resourcePort) UnloadAll() {
	r.directory.UnloadAll()
}

func (r *resourcePort) SwitchPart(id uint16) error {
	if int(id) >= len(r.parts) {
		return fmt.Errorf("video: SwitchPart requested part %d but only %d parts are known", id, len(r.parts))
	}
	loaded, err := r.directory.SwitchPart(r.parts[id])
	if err != nil {
		return err
	}
	if err := r.video.LoadPalettes(loaded.Palette); err != nil {
		return err
	}
	r.video.LoadPolygons(loaded.Polygons)
	r.video.LoadAnimations(loaded.Animations)
	if r.onPartLoaded != nil {
		return r.onPartLoaded(loaded)
	}
	return nil
}

func (r *resourcePort) LoadResource(id uint16) error {
	_, err := r.directory.Load(resource.ID(id))
	return err
}
