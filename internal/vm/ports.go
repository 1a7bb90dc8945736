package vm

// InputState is the per-tic snapshot the host samples before calling
// RunTic; the machine copies it into the reserved input registers
// rather than exposing it to bytecode directly.
type InputState struct {
	Left, Right, Up, Down, Action bool
	LastCharacter                 int16 // 0 if no key is pending (stamped as noLastCharacter)
	ShowPasswordScreen            bool
	Exited                        bool
}

// VideoPort is the subset of rasterizer operations bytecode
// instructions can trigger directly. Implementations live in
// internal/video, wired together by internal/engine.
type VideoPort interface {
	SelectPalette(id uint8) error
	SelectDrawTarget(id uint8) error
	FillBuffer(id uint8, color uint8) error
	CopyBuffer(src, dst uint8, yOffset int16) error
	Present(id uint8, delayMs uint32) error
	DrawString(stringID uint16, x, y uint8, color uint8) error
	DrawPolygon(bank PolygonBank, address uint16, x, y int16, scale uint16) error
}

// AudioPort is the control-surface subset of the audio pipeline
// bytecode instructions can drive.
type AudioPort interface {
	PlaySound(resourceID uint16, frequency uint8, volume uint8, channel uint8) error
	StopChannel(channel uint8) error
	PlayMusic(resourceID uint16, delay uint16, position uint8) error
	StopMusic() error
	SetMusicDelay(delay uint16) error
}

// ResourcePort is the subset of resource-directory operations
// ControlResources can trigger: unload everything, switch to a new
// game part, or load a single resource ahead of use.
type ResourcePort interface {
	UnloadAll()
	SwitchPart(id uint16) error
	LoadResource(id uint16) error
}
