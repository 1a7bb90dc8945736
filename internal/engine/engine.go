// Package engine wires the resource directory, the bytecode machine,
// the rasterizer, and the audio control surface to a host.Host,
// driving the per-tic loop a concrete front end calls into.
package engine

import (
	"fmt"

	"anotherengine/internal/audio"
	"anotherengine/internal/host"
	"anotherengine/internal/resource"
	"anotherengine/internal/telemetry"
	"anotherengine/internal/video"
	"anotherengine/internal/vm"
)

// Engine owns every subsystem a running game needs and advances them
// one tic at a time.
type Engine struct {
	host      host.Host
	directory *resource.Directory
	video     *video.System
	audio     *audio.System
	machine   *vm.Machine
	logger    *telemetry.Logger
	ticLogger *telemetry.TicLogger

	tic uint64

	config Config
}

// directoryResourceLoader adapts *resource.Directory's ID-typed Load
// to audio.ResourceLoader's plain uint16, since internal/audio doesn't
// import internal/resource.
type directoryResourceLoader struct {
	directory *resource.Directory
}

func (d directoryResourceLoader) Load(id uint16) ([]byte, error) {
	return d.directory.Load(resource.ID(id))
}

// New builds an Engine: it loads the bank index from h, switches to
// parts[config.Engine.StartPart], and constructs a machine ready to
// run. parts is the uint16 part-id -> resource.GamePart table bytecode
// addresses through ControlResources.
func New(h host.Host, parts []resource.GamePart, config Config, logger *telemetry.Logger) (*Engine, error) {
	if logger == nil {
		logger = telemetry.NewLogger(10000)
	}
	for _, name := range config.Engine.LogComponents {
		logger.SetComponentEnabled(telemetry.Component(name), true)
	}

	rawIndex, err := h.LoadResourceDescriptors()
	if err != nil {
		return nil, fmt.Errorf("engine: loading resource descriptors: %w", err)
	}
	descriptors, err := resource.ParseDescriptors(rawIndex)
	if err != nil {
		return nil, fmt.Errorf("engine: parsing resource descriptors: %w", err)
	}
	directory := resource.NewDirectory(descriptors, h, logger)

	if config.Engine.StartPart < 0 || config.Engine.StartPart >= len(parts) {
		return nil, fmt.Errorf("engine: start_part %d is outside the known part table (%d parts)", config.Engine.StartPart, len(parts))
	}

	videoSystem := video.NewSystem(h.PresentSurface)
	audioSystem := audio.NewSystem(directoryResourceLoader{directory}, h)

	loaded, err := directory.SwitchPart(parts[config.Engine.StartPart])
	if err != nil {
		return nil, fmt.Errorf("engine: loading start part %d: %w", config.Engine.StartPart, err)
	}
	if err := videoSystem.LoadPalettes(loaded.Palette); err != nil {
		return nil, fmt.Errorf("engine: applying start part palette: %w", err)
	}
	videoSystem.LoadPolygons(loaded.Polygons)
	videoSystem.LoadAnimations(loaded.Animations)

	e := &Engine{
		host:      h,
		directory: directory,
		video:     videoSystem,
		audio:     audioSystem,
		logger:    logger,
		config:    config,
	}

	resourcePort := video.NewResourcePort(directory, parts, videoSystem, func(loaded resource.Loaded) error {
		e.machine.LoadProgram(loaded.Bytecode)
		return nil
	})

	e.machine = vm.NewMachine(loaded.Bytecode, videoSystem, audioSystem, resourcePort, logger)
	e.machine.TicMilliseconds = config.TimingStandard().TicMilliseconds()
	e.machine.SetGamePart(config.Engine.StartPart)
	return e, nil
}

// EnableTicLog opens a tic-by-tic trace file; the engine closes it
// when Close is called.
func (e *Engine) EnableTicLog(filename string, maxTics, startTic uint64) error {
	ticLogger, err := telemetry.NewTicLogger(filename, maxTics, startTic, e.machine)
	if err != nil {
		return err
	}
	e.ticLogger = ticLogger
	return nil
}

// Machine exposes the underlying VM, for tooling (the inspector UI)
// that needs read-only access to registers and thread state.
func (e *Engine) Machine() *vm.Machine {
	return e.machine
}

// ActivePaletteRGBA exposes the video system's currently active
// palette, for tooling that needs to render swatches without
// depending on internal/video directly.
func (e *Engine) ActivePaletteRGBA() (video.Palette, bool) {
	return e.video.ActivePaletteRGBA()
}

// Tic returns the number of tics RunTic has completed so far.
func (e *Engine) Tic() uint64 {
	return e.tic
}

// RunTic polls input, advances the machine by one tic, and logs the
// result if a tic logger is enabled.
func (e *Engine) RunTic() error {
	input, err := e.host.PollInput()
	if err != nil {
		return fmt.Errorf("engine: polling input: %w", err)
	}

	err = e.machine.RunTic(input)
	e.tic++
	if e.ticLogger != nil {
		e.ticLogger.LogTic(e.machine)
	}
	if video.IsPaletteNotSelected(err) {
		// A part's script tried to present before selecting a
		// palette; drop the frame instead of treating it as a fatal
		// program error.
		e.logger.LogEnginef(telemetry.LogLevelWarning, "dropped frame: %v", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("engine: running tic: %w", err)
	}
	return nil
}

// Close releases resources owned by the engine (the tic log file, if
// any, and the shared logger's drain goroutine).
func (e *Engine) Close() error {
	if e.ticLogger != nil {
		if err := e.ticLogger.Close(); err != nil {
			return err
		}
	}
	e.logger.Shutdown()
	return nil
}
