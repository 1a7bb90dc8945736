package main

import (
	"flag"
	"fmt"
	"os"

	"anotherengine/internal/engine"
	"anotherengine/internal/host"
	"anotherengine/internal/telemetry"
	"anotherengine/internal/vm"
)

func main() {
	gameDir := flag.String("game", "", "Path to the game directory (bank*.dat + memlist.bin)")
	configPath := flag.String("config", "engine.toml", "Path to the engine config file")
	logFile := flag.String("out", "logs.txt", "Output log file")
	maxTics := flag.Int("tics", 60, "Run for N tics then dump logs")
	component := flag.String("component", "vm", "Which telemetry component to dump (vm, rle, resource, video, audio, host, engine)")
	flag.Parse()

	if *gameDir == "" {
		fmt.Println("Usage: dump_logs -game <game-dir> [-config engine.toml] [-out <file>] [-tics <N>] [-component <name>]")
		os.Exit(1)
	}

	cfg, err := engine.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(50000)
	logger.SetAllComponentsEnabled(true)
	logger.SetMinLevel(telemetry.LogLevelDebug)

	h := &headlessHost{FilesystemBanks: *host.NewFilesystemBanks(*gameDir)}

	eng, err := engine.New(h, engine.PartsTable(cfg), cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting engine: %v\n", err)
		os.Exit(1)
	}
	defer eng.Close()

	fmt.Printf("Running %q for %d tics...\n", *gameDir, *maxTics)
	for i := 0; i < *maxTics; i++ {
		if err := eng.RunTic(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running tic %d: %v\n", i, err)
			break
		}
	}

	wantComponent := telemetry.Component(*component)
	entries := logger.GetEntries()
	var matched []telemetry.LogEntry
	for _, entry := range entries {
		if entry.Component == wantComponent {
			matched = append(matched, entry)
		}
	}

	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	fmt.Fprintf(file, "%s logs from %s (%d entries)\n", wantComponent, *gameDir, len(matched))
	fmt.Fprintf(file, "===========================================\n\n")
	for _, entry := range matched {
		fmt.Fprintf(file, "%s\n", entry.Format())
	}

	fmt.Printf("Dumped %d %s log entries to %s\n", len(matched), wantComponent, *logFile)
}

// headlessHost runs the engine without a display or audio device: it
// reports no input, drops presented frames, and discards sample
// playback, so dump_logs can drive tics purely to capture telemetry.
type headlessHost struct {
	host.FilesystemBanks
}

func (h *headlessHost) PollInput() (vm.InputState, error) { return vm.InputState{}, nil }
func (h *headlessHost) PresentSurface(surface []byte, delayMs uint32) error { return nil }
func (h *headlessHost) PlaySound(sample []byte, channel uint8, volume uint8, frequencyHz uint32) error {
	return nil
}
func (h *headlessHost) StopChannel(channel uint8) error                        { return nil }
func (h *headlessHost) PlayMusic(sample []byte, delayMs uint32, position uint8) error { return nil }
func (h *headlessHost) StopMusic() error                                       { return nil }
func (h *headlessHost) SetMusicDelay(delayMs uint32) error                     { return nil }

var _ host.Host = (*headlessHost)(nil)
