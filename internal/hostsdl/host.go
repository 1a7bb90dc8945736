// Package hostsdl implements host.Host on top of SDL2: a window and
// streaming texture for PresentSurface, sdl.GetKeyboardState for
// PollInput, and sdl.QueueAudio for raw PCM playback. It performs no
// resampling or synthesis — PlayMusic queues sample bytes verbatim and
// PlaySound only scales them by volume, both onto a single audio device.
package hostsdl

import (
	"fmt"
	"os"
	"path/filepath"

	"anotherengine/internal/host"
	"anotherengine/internal/resource"
	"anotherengine/internal/vm"

	"github.com/veandco/go-sdl2/sdl"
)

// KeyBindings names the SDL2 scancode (by SDL's own name string, e.g.
// "Up", "W", "Space") each logical input maps to.
type KeyBindings struct {
	Up, Down, Left, Right, Action string
}

// Host is an SDL2-backed host.Host. It also implements
// resource.BankLoader directly off the game directory, so it can be
// handed straight to resource.NewDirectory and internal/engine.New.
type Host struct {
	gameDir string

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	scale    int

	audioDev sdl.AudioDeviceID

	bindings   KeyBindings
	scancodes  map[string]sdl.Scancode
	lastChar   int16
	showPwScr  bool
}

// Open initializes SDL2 video, input, and audio, and creates a window
// sized for scale integer pixel doubling. gameDir is where bank*.dat
// and the resource index live.
func Open(gameDir string, scale int, bindings KeyBindings) (*Host, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("hostsdl: sdl.Init: %w", err)
	}
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "0")

	width := int32(320 * scale)
	height := int32(200 * scale)

	window, err := sdl.CreateWindow("anotherengine", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("hostsdl: creating window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("hostsdl: creating renderer: %w", err)
	}

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, 320, 200)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("hostsdl: creating texture: %w", err)
	}

	audioSpec := sdl.AudioSpec{Freq: 22050, Format: sdl.AUDIO_U8, Channels: 1, Samples: 2048}
	audioDev, err := sdl.OpenAudioDevice("", false, &audioSpec, nil, 0)
	if err != nil {
		audioDev = 0
	} else {
		sdl.PauseAudioDevice(audioDev, false)
	}

	h := &Host{
		gameDir:   gameDir,
		window:    window,
		renderer:  renderer,
		texture:   texture,
		scale:     scale,
		audioDev:  audioDev,
		bindings:  bindings,
		scancodes: make(map[string]sdl.Scancode),
	}
	for _, name := range []string{bindings.Up, bindings.Down, bindings.Left, bindings.Right, bindings.Action} {
		if name == "" {
			continue
		}
		h.scancodes[name] = sdl.GetScancodeFromName(name)
	}
	return h, nil
}

// Close tears down SDL2 resources in reverse acquisition order.
func (h *Host) Close() {
	if h.audioDev != 0 {
		sdl.CloseAudioDevice(h.audioDev)
	}
	h.texture.Destroy()
	h.renderer.Destroy()
	h.window.Destroy()
	sdl.Quit()
}

// PollInput drains the SDL event queue for quit/text events, then
// samples the live keyboard state for directional/action input.
func (h *Host) PollInput() (vm.InputState, error) {
	var state vm.InputState
	h.lastChar = 0

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			state.Exited = true
		case *sdl.TextInputEvent:
			if len(e.Text) > 0 && e.Text[0] != 0 {
				h.lastChar = int16(e.Text[0])
			}
		}
	}

	keys := sdl.GetKeyboardState()
	pressed := func(name string) bool {
		code, ok := h.scancodes[name]
		return ok && keys[code] != 0
	}
	state.Up = pressed(h.bindings.Up)
	state.Down = pressed(h.bindings.Down)
	state.Left = pressed(h.bindings.Left)
	state.Right = pressed(h.bindings.Right)
	state.Action = pressed(h.bindings.Action)
	state.LastCharacter = h.lastChar
	state.ShowPasswordScreen = h.showPwScr
	return state, nil
}

// PresentSurface uploads an ABGR8888 surface to the streaming texture,
// blits it scaled to the window, presents, and sleeps delayMs.
func (h *Host) PresentSurface(surface []byte, delayMs uint32) error {
	if err := h.texture.Update(nil, surface, 320*4); err != nil {
		return fmt.Errorf("hostsdl: updating texture: %w", err)
	}
	if err := h.renderer.Clear(); err != nil {
		return fmt.Errorf("hostsdl: clearing renderer: %w", err)
	}
	if err := h.renderer.Copy(h.texture, nil, nil); err != nil {
		return fmt.Errorf("hostsdl: copying texture: %w", err)
	}
	h.renderer.Present()
	sdl.Delay(delayMs)
	return nil
}

// LoadBank reads bank<NN>.dat from the game directory.
func (h *Host) LoadBank(bankNumber uint8) ([]byte, error) {
	path := filepath.Join(h.gameDir, fmt.Sprintf("bank%02X.dat", bankNumber))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hostsdl: reading %s: %w", path, err)
	}
	return data, nil
}

// LoadResourceDescriptors reads the game directory's bank index.
func (h *Host) LoadResourceDescriptors() ([]byte, error) {
	path := filepath.Join(h.gameDir, "memlist.bin")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hostsdl: reading %s: %w", path, err)
	}
	return data, nil
}

// PlaySound queues sample directly onto the shared audio device; SDL2
// mixes concurrently queued channels itself.
func (h *Host) PlaySound(sample []byte, channel uint8, volume uint8, frequencyHz uint32) error {
	if h.audioDev == 0 {
		return nil
	}
	scaled := scaleVolume(sample, volume)
	return sdl.QueueAudio(h.audioDev, scaled)
}

// StopChannel clears every currently queued sample. The control
// surface addresses four logical channels but this adapter mixes them
// onto one SDL device, so a per-channel stop clears the whole queue
// rather than being tracked separately.
func (h *Host) StopChannel(channel uint8) error {
	if h.audioDev == 0 {
		return nil
	}
	sdl.ClearQueuedAudio(h.audioDev)
	return nil
}

// PlayMusic queues a music sample after waiting delayMs.
func (h *Host) PlayMusic(sample []byte, delayMs uint32, position uint8) error {
	if h.audioDev == 0 {
		return nil
	}
	if delayMs > 0 {
		sdl.Delay(delayMs)
	}
	return sdl.QueueAudio(h.audioDev, sample)
}

// StopMusic clears the audio queue.
func (h *Host) StopMusic() error {
	if h.audioDev == 0 {
		return nil
	}
	sdl.ClearQueuedAudio(h.audioDev)
	return nil
}

// SetMusicDelay is a no-op at the host level: internal/audio tracks
// the pending delay and passes it explicitly to the next PlayMusic.
func (h *Host) SetMusicDelay(delayMs uint32) error {
	return nil
}

func scaleVolume(sample []byte, volume uint8) []byte {
	if volume >= 63 {
		return sample
	}
	out := make([]byte, len(sample))
	for i, b := range sample {
		out[i] = byte(int(b) * int(volume) / 63)
	}
	return out
}

var (
	_ resource.BankLoader = (*Host)(nil)
	_ host.Host           = (*Host)(nil)
)
