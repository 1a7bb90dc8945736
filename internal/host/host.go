// Package host defines the boundary between the engine core and the
// windowing/input/storage/audio-output layer a concrete front end
// (internal/hostsdl, or a test double) provides.
package host

import "anotherengine/internal/vm"

// SurfaceWidth, SurfaceHeight are the fixed dimensions of the RGBA
// surface PresentSurface receives, matching the rasterizer's output.
const (
	SurfaceWidth  = 320
	SurfaceHeight = 200
	SurfaceBytes  = SurfaceWidth * SurfaceHeight * 4
)

// Host is everything the engine needs from the outside world: input
// sampling, frame presentation, resource bank/index bytes, and raw
// sample playback. A concrete Host owns no engine state; it is called
// synchronously once per tic.
type Host interface {
	// PollInput samples the current input state. Called once at the
	// start of every tic.
	PollInput() (vm.InputState, error)

	// PresentSurface displays a 320x200 4-byte-per-pixel little-endian
	// ABGR surface and then sleeps delayMs before returning.
	PresentSurface(surface []byte, delayMs uint32) error

	// LoadBank fetches the raw bytes of bank file bankNumber, also
	// satisfying resource.BankLoader.
	LoadBank(bankNumber uint8) ([]byte, error)

	// LoadResourceDescriptors fetches the raw bank index bytes; the
	// caller parses them with resource.ParseDescriptors. The host
	// stays a dumb byte source so the wire format lives in one place.
	LoadResourceDescriptors() ([]byte, error)

	// PlaySound queues sample for playback on channel at volume
	// (0..63) and frequencyHz.
	PlaySound(sample []byte, channel uint8, volume uint8, frequencyHz uint32) error
	StopChannel(channel uint8) error

	// PlayMusic queues a music resource's sample data to start after
	// delayMs, from row position.
	PlayMusic(sample []byte, delayMs uint32, position uint8) error
	StopMusic() error
	SetMusicDelay(delayMs uint32) error
}
