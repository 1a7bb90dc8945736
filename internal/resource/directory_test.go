package resource

import "testing"

type fakeLoader struct {
	banks map[uint8][]byte
	calls int
}

func (f *fakeLoader) LoadBank(bankNumber uint8) ([]byte, error) {
	f.calls++
	return f.banks[bankNumber], nil
}

func TestDirectoryLoadVerbatim(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5}
	loader := &fakeLoader{banks: map[uint8][]byte{0: payload}}
	descriptors := []Descriptor{
		{Kind: KindBytecode, BankNumber: 0, BankOffset: 0, PackedSize: 5, UnpackedSize: 5},
	}
	dir := NewDirectory(descriptors, loader, nil)

	got, err := dir.Load(0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i, b := range payload {
		if got[i] != b {
			t.Fatalf("byte %d = %d, want %d", i, got[i], b)
		}
	}

	// Second load must hit the cache, not the loader again.
	if _, err := dir.Load(0); err != nil {
		t.Fatalf("Load (cached): %v", err)
	}
	if loader.calls != 1 {
		t.Errorf("loader called %d times, want 1 (cache miss)", loader.calls)
	}
}

func TestDirectoryLoadUnknownID(t *testing.T) {
	dir := NewDirectory(nil, &fakeLoader{}, nil)
	if _, err := dir.Load(0); err == nil {
		t.Fatal("expected an error for an out-of-range resource id")
	}
}

func TestDirectoryLoadOffsetOutOfRange(t *testing.T) {
	loader := &fakeLoader{banks: map[uint8][]byte{0: {1, 2, 3}}}
	descriptors := []Descriptor{
		{Kind: KindPalette, BankNumber: 0, BankOffset: 0, PackedSize: 10, UnpackedSize: 10},
	}
	dir := NewDirectory(descriptors, loader, nil)
	if _, err := dir.Load(0); err == nil {
		t.Fatal("expected an error when the descriptor claims more bytes than the bank holds")
	}
}

func TestDirectoryUnloadAllClearsCache(t *testing.T) {
	loader := &fakeLoader{banks: map[uint8][]byte{0: {9, 9}}}
	descriptors := []Descriptor{
		{Kind: KindPalette, BankNumber: 0, BankOffset: 0, PackedSize: 2, UnpackedSize: 2},
	}
	dir := NewDirectory(descriptors, loader, nil)

	if _, err := dir.Load(0); err != nil {
		t.Fatalf("Load: %v", err)
	}
	dir.UnloadAll()
	if _, err := dir.Load(0); err != nil {
		t.Fatalf("Load after UnloadAll: %v", err)
	}
	if loader.calls != 2 {
		t.Errorf("loader called %d times, want 2 (reload after unload)", loader.calls)
	}
}

func TestSwitchPartLoadsAllFourResources(t *testing.T) {
	loader := &fakeLoader{banks: map[uint8][]byte{
		0: {1, 1}, // palette
		1: {2, 2}, // bytecode
		2: {3, 3}, // polygons
		3: {4, 4}, // animations
	}}
	descriptors := []Descriptor{
		{Kind: KindPalette, BankNumber: 0, BankOffset: 0, PackedSize: 2, UnpackedSize: 2},
		{Kind: KindBytecode, BankNumber: 1, BankOffset: 0, PackedSize: 2, UnpackedSize: 2},
		{Kind: KindPolygonCinematic, BankNumber: 2, BankOffset: 0, PackedSize: 2, UnpackedSize: 2},
		{Kind: KindPolygonAnim, BankNumber: 3, BankOffset: 0, PackedSize: 2, UnpackedSize: 2},
	}
	dir := NewDirectory(descriptors, loader, nil)

	part := GamePart{Name: "intro", Palette: 0, Bytecode: 1, Polygons: 2, Animations: 3, HasAnims: true}
	loaded, err := dir.SwitchPart(part)
	if err != nil {
		t.Fatalf("SwitchPart: %v", err)
	}
	if loaded.Palette[0] != 1 || loaded.Bytecode[0] != 2 || loaded.Polygons[0] != 3 || loaded.Animations[0] != 4 {
		t.Errorf("unexpected loaded bytes: %+v", loaded)
	}
}

func TestSwitchPartWithoutAnimations(t *testing.T) {
	loader := &fakeLoader{banks: map[uint8][]byte{0: {1}, 1: {2}, 2: {3}}}
	descriptors := []Descriptor{
		{Kind: KindPalette, BankNumber: 0, PackedSize: 1, UnpackedSize: 1},
		{Kind: KindBytecode, BankNumber: 1, PackedSize: 1, UnpackedSize: 1},
		{Kind: KindPolygonCinematic, BankNumber: 2, PackedSize: 1, UnpackedSize: 1},
	}
	dir := NewDirectory(descriptors, loader, nil)

	loaded, err := dir.SwitchPart(GamePart{Name: "no-anims", Palette: 0, Bytecode: 1, Polygons: 2})
	if err != nil {
		t.Fatalf("SwitchPart: %v", err)
	}
	if loaded.Animations != nil {
		t.Errorf("Animations = %v, want nil", loaded.Animations)
	}
}
