package engine

import (
	"fmt"
	"os"

	"anotherengine/internal/resource"
	"anotherengine/internal/timing"

	"github.com/BurntSushi/toml"
)

// Config is the engine.toml schema: display scaling, key bindings,
// and start-up behavior. Key names are SDL2 scancode names
// (internal/hostsdl translates them), kept as plain strings here so
// this package doesn't need to import SDL2 itself.
type Config struct {
	Display struct {
		Scale int `toml:"scale"`
	} `toml:"display"`

	Input struct {
		Up     string `toml:"up"`
		Down   string `toml:"down"`
		Left   string `toml:"left"`
		Right  string `toml:"right"`
		Action string `toml:"action"`
	} `toml:"input"`

	Engine struct {
		StartPart     int      `toml:"start_part"`
		AudioEnabled  bool     `toml:"audio_enabled"`
		LogComponents []string `toml:"log_components"`
		// Standard is "pal" or "ntsc", selecting the tic rate the
		// machine's scheduler paces Present calls against.
		Standard string `toml:"standard"`
	} `toml:"engine"`

	// Parts is the uint16 part-id -> resource quadruple table
	// bytecode's ControlResources instruction addresses through. The
	// retrieval pack carries no authentic part table (the original
	// engine's is a handful of hardcoded resource ids per release), so
	// this is read from the game's own config rather than compiled in;
	// DefaultConfig supplies a single placeholder part so a game
	// directory with only one bytecode/palette/polygon resource still
	// boots.
	Parts []PartConfig `toml:"parts"`
}

// PartConfig is one [[parts]] TOML table: the four resource ids a
// game part is built from.
type PartConfig struct {
	Name       string `toml:"name"`
	Palette    uint16 `toml:"palette"`
	Bytecode   uint16 `toml:"bytecode"`
	Polygons   uint16 `toml:"polygons"`
	Animations uint16 `toml:"animations"`
	HasAnims   bool   `toml:"has_animations"`
}

// DefaultConfig is what LoadConfig returns when no config file exists
// at the given path.
func DefaultConfig() Config {
	var c Config
	c.Display.Scale = 3
	c.Input.Up = "Up"
	c.Input.Down = "Down"
	c.Input.Left = "Left"
	c.Input.Right = "Right"
	c.Input.Action = "Space"
	c.Engine.StartPart = 0
	c.Engine.AudioEnabled = true
	c.Engine.Standard = "pal"
	c.Parts = []PartConfig{
		{Name: "part0", Palette: 0, Bytecode: 1, Polygons: 2},
	}
	return c
}

// PartsTable converts the config's [[parts]] entries into the
// positionally-indexed table New expects: bytecode part id N selects
// table[N].
func PartsTable(cfg Config) []resource.GamePart {
	parts := make([]resource.GamePart, len(cfg.Parts))
	for i, p := range cfg.Parts {
		parts[i] = resource.GamePart{
			Name:       p.Name,
			Palette:    resource.ID(p.Palette),
			Bytecode:   resource.ID(p.Bytecode),
			Polygons:   resource.ID(p.Polygons),
			Animations: resource.ID(p.Animations),
			HasAnims:   p.HasAnims,
		}
	}
	return parts
}

// TimingStandard resolves the config's broadcast-standard name to a
// timing.Standard, defaulting to PAL for an empty or unrecognized
// value rather than erroring, since this only affects pacing.
func (c Config) TimingStandard() timing.Standard {
	if c.Engine.Standard == "ntsc" {
		return timing.NTSC
	}
	return timing.PAL
}

// LoadConfig reads and decodes an engine.toml file at path. A missing
// file is not an error: it yields DefaultConfig. A present but
// malformed file is an error, since silently falling back would mask
// a typo the player made in their own config.
func LoadConfig(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("engine: loading config %q: %w", path, err)
	}
	return cfg, nil
}
