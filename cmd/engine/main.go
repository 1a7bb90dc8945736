package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"anotherengine/internal/engine"
	"anotherengine/internal/hostsdl"
	"anotherengine/internal/inspectorui"
	"anotherengine/internal/telemetry"

	"fyne.io/fyne/v2/app"
)

func main() {
	gameDir := flag.String("game", "", "Path to the game directory (bank*.dat + memlist.bin)")
	configPath := flag.String("config", "engine.toml", "Path to the engine config file")
	scaleOverride := flag.Int("scale", 0, "Display scale override (0 = use config)")
	logFile := flag.String("log", "", "If set, write a per-tic trace log to this file")
	showInspector := flag.Bool("inspector", false, "Open the Fyne register/thread/palette inspector window")
	flag.Parse()

	if *gameDir == "" {
		fmt.Println("Usage: engine -game <path-to-game-dir> [-config engine.toml] [-scale N] [-log trace.txt] [-inspector]")
		os.Exit(1)
	}

	cfg, err := engine.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *scaleOverride > 0 {
		cfg.Display.Scale = *scaleOverride
	}

	h, err := hostsdl.Open(*gameDir, cfg.Display.Scale, hostsdl.KeyBindings{
		Up:     cfg.Input.Up,
		Down:   cfg.Input.Down,
		Left:   cfg.Input.Left,
		Right:  cfg.Input.Right,
		Action: cfg.Input.Action,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening display: %v\n", err)
		os.Exit(1)
	}
	defer h.Close()

	logger := telemetry.NewLogger(20000)
	for _, name := range cfg.Engine.LogComponents {
		logger.SetComponentEnabled(telemetry.Component(name), true)
	}

	eng, err := engine.New(h, engine.PartsTable(cfg), cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting engine: %v\n", err)
		os.Exit(1)
	}
	defer eng.Close()

	if *logFile != "" {
		if err := eng.EnableTicLog(*logFile, 0, 0); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening tic log: %v\n", err)
			os.Exit(1)
		}
	}

	var inspectorWindow *inspectorui.Window
	if *showInspector {
		fyneApp := app.New()
		inspectorWindow = inspectorui.New(fyneApp)
		inspectorWindow.Show()
	}

	for {
		if err := eng.RunTic(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running tic: %v\n", err)
			os.Exit(1)
		}
		if inspectorWindow != nil {
			inspectorWindow.Update(snapshotFromEngine(eng))
		}
	}
}

func snapshotFromEngine(eng *engine.Engine) inspectorui.Snapshot {
	machine := eng.Machine()
	var palette [16]color.RGBA
	if p, ok := eng.ActivePaletteRGBA(); ok {
		for i, c := range p {
			palette[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
		}
	}
	return inspectorui.SnapshotFromMachine(
		eng.Tic(),
		machine.Register,
		machine.ThreadSnapshot,
		machine.ActivePalette(),
		palette,
		machine.GamePart(),
	)
}
