package resource

import "fmt"

// GamePart names the four resources that make up one scene: a
// palette, a bytecode program, a polygon bank, and (optionally) an
// animation bank shared across scenes.
type GamePart struct {
	Name       string
	Palette    ID
	Bytecode   ID
	Polygons   ID
	Animations ID
	HasAnims   bool
}

// Loaded is the decompressed byte set a part switch hands to the
// engine: enough to rebuild the VM program and prime the video
// package's polygon/animation sources.
type Loaded struct {
	Palette    []byte
	Bytecode   []byte
	Polygons   []byte
	Animations []byte // nil if the part has no animation bank
}

// SwitchPart unloads every previously loaded transient resource and
// loads the four (or three) resources that make up part. The
// directory's cache is empty on return except for part's own
// resources, so a second switch to the same part re-reads from the
// bank loader rather than trusting stale state.
func (d *Directory) SwitchPart(part GamePart) (Loaded, error) {
	d.UnloadAll()

	palette, err := d.Load(part.Palette)
	if err != nil {
		return Loaded{}, fmt.Errorf("resource: switching to part %q: loading palette: %w", part.Name, err)
	}
	bytecode, err := d.Load(part.Bytecode)
	if err != nil {
		return Loaded{}, fmt.Errorf("resource: switching to part %q: loading bytecode: %w", part.Name, err)
	}
	polygons, err := d.Load(part.Polygons)
	if err != nil {
		return Loaded{}, fmt.Errorf("resource: switching to part %q: loading polygons: %w", part.Name, err)
	}

	loaded := Loaded{Palette: palette, Bytecode: bytecode, Polygons: polygons}
	if part.HasAnims {
		animations, err := d.Load(part.Animations)
		if err != nil {
			return Loaded{}, fmt.Errorf("resource: switching to part %q: loading animations: %w", part.Name, err)
		}
		loaded.Animations = animations
	}
	return loaded, nil
}
