package vm

type polygonCall struct {
	bank  PolygonBank
	addr  uint16
	x, y  int16
	scale uint16
}

// fakeVideo records every VideoPort call it receives instead of
// touching real pixel buffers, so opcode tests can assert on intent
// rather than rendered output.
type fakeVideo struct {
	selectedPalette uint8
	drawTarget      uint8
	filled          []uint8
	presented       []uint8
	presentDelays   []uint32
	strings         []uint16
	polygons        []polygonCall
}

func (f *fakeVideo) SelectPalette(id uint8) error {
	f.selectedPalette = id
	return nil
}

func (f *fakeVideo) SelectDrawTarget(id uint8) error {
	f.drawTarget = id
	return nil
}

func (f *fakeVideo) FillBuffer(id uint8, color uint8) error {
	f.filled = append(f.filled, id)
	return nil
}

func (f *fakeVideo) CopyBuffer(src, dst uint8, yOffset int16) error {
	return nil
}

func (f *fakeVideo) Present(id uint8, delayMs uint32) error {
	f.presented = append(f.presented, id)
	f.presentDelays = append(f.presentDelays, delayMs)
	return nil
}

func (f *fakeVideo) DrawString(stringID uint16, x, y uint8, color uint8) error {
	f.strings = append(f.strings, stringID)
	return nil
}

func (f *fakeVideo) DrawPolygon(bank PolygonBank, address uint16, x, y int16, scale uint16) error {
	f.polygons = append(f.polygons, polygonCall{bank, address, x, y, scale})
	return nil
}

// fakeAudio records AudioPort calls.
type fakeAudio struct {
	sounds      []uint16
	stopped     bool
	musicPlayed []uint16
	musicDelays []uint16
}

func (f *fakeAudio) PlaySound(resourceID uint16, frequency, volume, channel uint8) error {
	f.sounds = append(f.sounds, resourceID)
	return nil
}

func (f *fakeAudio) StopChannel(channel uint8) error { return nil }

func (f *fakeAudio) PlayMusic(resourceID uint16, delay uint16, position uint8) error {
	f.musicPlayed = append(f.musicPlayed, resourceID)
	return nil
}

func (f *fakeAudio) StopMusic() error {
	f.stopped = true
	return nil
}

func (f *fakeAudio) SetMusicDelay(delay uint16) error {
	f.musicDelays = append(f.musicDelays, delay)
	return nil
}

// fakeResources records ResourcePort calls.
type fakeResources struct {
	unloadedAll bool
	switchedTo  []uint16
	loaded      []uint16
}

func (f *fakeResources) UnloadAll() { f.unloadedAll = true }

func (f *fakeResources) SwitchPart(id uint16) error {
	f.switchedTo = append(f.switchedTo, id)
	return nil
}

func (f *fakeResources) LoadResource(id uint16) error {
	f.loaded = append(f.loaded, id)
	return nil
}

// newTestMachine builds a Machine over program with fake ports, for
// tests that only care about VM-internal state transitions.
func newTestMachine(program []byte) (*Machine, *fakeVideo, *fakeAudio, *fakeResources) {
	video := &fakeVideo{}
	audio := &fakeAudio{}
	resources := &fakeResources{}
	m := NewMachine(program, video, audio, resources, nil)
	return m, video, audio, resources
}
