package engine

import (
	"testing"

	"anotherengine/internal/resource"
	"anotherengine/internal/rom"
	"anotherengine/internal/vm"

	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	banks       map[uint8][]byte
	descriptors []byte
	input       vm.InputState
	presented   [][]byte
	delays      []uint32
}

func (f *fakeHost) PollInput() (vm.InputState, error) { return f.input, nil }
func (f *fakeHost) PresentSurface(surface []byte, delayMs uint32) error {
	f.presented = append(f.presented, surface)
	f.delays = append(f.delays, delayMs)
	return nil
}
func (f *fakeHost) LoadBank(bankNumber uint8) ([]byte, error) { return f.banks[bankNumber], nil }
func (f *fakeHost) LoadResourceDescriptors() ([]byte, error)  { return f.descriptors, nil }
func (f *fakeHost) PlaySound(sample []byte, channel uint8, volume uint8, frequencyHz uint32) error {
	return nil
}
func (f *fakeHost) StopChannel(channel uint8) error { return nil }
func (f *fakeHost) PlayMusic(sample []byte, delayMs uint32, position uint8) error { return nil }
func (f *fakeHost) StopMusic() error                                             { return nil }
func (f *fakeHost) SetMusicDelay(delayMs uint32) error                           { return nil }

func newFakeHostWithOnePart(t *testing.T) *fakeHost {
	t.Helper()
	palette := buildPaletteResource()
	bytecode := []byte{0x06} // OpYield: thread 0 suspends immediately
	polygons := []byte{0xC1, 2, 2, 2, 0, 1}

	banks := rom.NewBankBuilder()
	paletteOff := banks.Append(0, palette)
	bytecodeOff := banks.Append(0, bytecode)
	polygonsOff := banks.Append(0, polygons)

	index := rom.NewIndexBuilder()
	index.Add(resource.Descriptor{Kind: resource.KindPalette, BankNumber: 0, BankOffset: paletteOff, PackedSize: uint32(len(palette)), UnpackedSize: uint32(len(palette))})
	index.Add(resource.Descriptor{Kind: resource.KindBytecode, BankNumber: 0, BankOffset: bytecodeOff, PackedSize: uint32(len(bytecode)), UnpackedSize: uint32(len(bytecode))})
	index.Add(resource.Descriptor{Kind: resource.KindPolygonAnim, BankNumber: 0, BankOffset: polygonsOff, PackedSize: uint32(len(polygons)), UnpackedSize: uint32(len(polygons))})

	return &fakeHost{
		banks:       map[uint8][]byte{0: banks.Bank(0)},
		descriptors: index.Bytes(),
	}
}

func buildPaletteResource() []byte {
	return make([]byte, 32*16*3)
}

func TestNewEngineLoadsStartPart(t *testing.T) {
	h := newFakeHostWithOnePart(t)
	cfg := DefaultConfig()
	cfg.Engine.StartPart = 0

	parts := []resource.GamePart{{Name: "part0", Palette: 0, Bytecode: 1, Polygons: 2, HasAnims: false}}

	e, err := New(h, parts, cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, e.Machine())
}

func TestEngineRunTicAdvancesWithoutError(t *testing.T) {
	h := newFakeHostWithOnePart(t)
	cfg := DefaultConfig()
	parts := []resource.GamePart{{Name: "part0", Palette: 0, Bytecode: 1, Polygons: 2, HasAnims: false}}

	e, err := New(h, parts, cfg, nil)
	require.NoError(t, err)

	require.NoError(t, e.RunTic())
	require.NoError(t, e.Close())
}

func TestNewEngineRejectsUnknownStartPart(t *testing.T) {
	h := newFakeHostWithOnePart(t)
	cfg := DefaultConfig()
	cfg.Engine.StartPart = 5

	_, err := New(h, nil, cfg, nil)
	require.Error(t, err)
}
