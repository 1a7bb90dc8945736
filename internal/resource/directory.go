package resource

import (
	"fmt"

	"anotherengine/internal/rle"
	"anotherengine/internal/telemetry"
)

// BankLoader fetches a whole bank file's bytes by number. Concrete
// implementations live on the host side (filesystem, embedded asset
// pack, network fetch); this package only consumes the interface.
type BankLoader interface {
	LoadBank(bankNumber uint8) ([]byte, error)
}

// ID identifies a resource by its position in the bank index.
type ID uint16

// Directory holds a parsed bank index and loads resources from it on
// demand, caching the decompressed bytes until Unload or UnloadAll is
// called (a game-part switch calls UnloadAll before loading the next
// part's resources).
type Directory struct {
	descriptors []Descriptor
	loader      BankLoader
	logger      *telemetry.Logger

	loaded map[ID][]byte
}

// NewDirectory builds a Directory over an already-parsed bank index.
func NewDirectory(descriptors []Descriptor, loader BankLoader, logger *telemetry.Logger) *Directory {
	return &Directory{
		descriptors: descriptors,
		loader:      loader,
		logger:      logger,
		loaded:      make(map[ID][]byte),
	}
}

// Descriptor returns the bank-index entry for id.
func (d *Directory) Descriptor(id ID) (Descriptor, error) {
	if int(id) >= len(d.descriptors) {
		return Descriptor{}, fmt.Errorf("resource: unknown resource id %d (directory holds %d entries)", id, len(d.descriptors))
	}
	return d.descriptors[id], nil
}

// Load fetches and, if necessary, decompresses the resource at id,
// returning the cached copy on repeat calls.
func (d *Directory) Load(id ID) ([]byte, error) {
	if buf, ok := d.loaded[id]; ok {
		return buf, nil
	}

	desc, err := d.Descriptor(id)
	if err != nil {
		return nil, err
	}

	bank, err := d.loader.LoadBank(desc.BankNumber)
	if err != nil {
		return nil, fmt.Errorf("resource: loading bank %d for resource %d (%s): %w", desc.BankNumber, id, desc.Kind, err)
	}

	end := uint64(desc.BankOffset) + uint64(desc.PackedSize)
	if end > uint64(len(bank)) {
		return nil, fmt.Errorf("resource: resource %d (%s) claims bytes [%d, %d) of bank %d, which is only %d bytes — "+
			"the bank index or bank file is corrupt or mismatched", id, desc.Kind, desc.BankOffset, end, desc.BankNumber, len(bank))
	}
	packed := bank[desc.BankOffset:end]

	var out []byte
	if !desc.Packed() {
		out = make([]byte, desc.UnpackedSize)
		copy(out, packed)
	} else {
		// In-place decode: the packed bytes occupy the start of a
		// buffer sized for the unpacked result; source and
		// destination alias the same backing array, mirroring the
		// original bank-loading trick the RLE format was designed for.
		out = make([]byte, desc.UnpackedSize)
		copy(out, packed)
		if err := rle.Decode(out[:desc.PackedSize], out); err != nil {
			return nil, fmt.Errorf("resource: decompressing resource %d (%s) from bank %d offset %d: %w",
				id, desc.Kind, desc.BankNumber, desc.BankOffset, err)
		}
	}

	if d.logger != nil {
		d.logger.LogResourcef(telemetry.LogLevelDebug, "loaded resource %d kind=%s bank=%d size=%d", id, desc.Kind, desc.BankNumber, len(out))
	}

	d.loaded[id] = out
	return out, nil
}

// Unload drops the cached bytes for a single resource, if loaded.
func (d *Directory) Unload(id ID) {
	delete(d.loaded, id)
}

// UnloadAll drops every cached resource, as happens on a game-part
// switch or an explicit ControlResources(0) instruction.
func (d *Directory) UnloadAll() {
	d.loaded = make(map[ID][]byte)
	if d.logger != nil {
		d.logger.LogResource(telemetry.LogLevelInfo, "unloaded all resources", nil)
	}
}

// Descriptors returns the full parsed bank index, for tooling (e.g.
// cmd/dumpbitmap) that needs to enumerate resources by kind.
func (d *Directory) Descriptors() []Descriptor {
	return d.descriptors
}
