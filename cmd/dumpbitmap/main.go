// Command dumpbitmap decodes a single bitmap resource through the
// game's active palette and writes it out as a .bmp file, for
// inspecting resource packs without running the full engine.
package main

import (
	"flag"
	"fmt"
	"os"

	"anotherengine/internal/host"
	"anotherengine/internal/resource"
	"anotherengine/internal/telemetry"
	"anotherengine/internal/video"

	"github.com/jsummers/gobmp"
	"github.com/nfnt/resize"
)

func main() {
	gameDir := flag.String("game", "", "Path to the game's resource directory (required)")
	bitmapID := flag.Int("id", -1, "Resource id of the bitmap to dump (required)")
	paletteID := flag.Int("palette-id", -1, "Resource id of the palette bank to render through (required)")
	paletteIndex := flag.Int("palette-index", 0, "Which of the 32 palettes in the bank to use")
	out := flag.String("out", "out.bmp", "Output .bmp path")
	scale := flag.Int("scale", 1, "Integer upscale factor applied with nearest-neighbor resampling")
	flag.Parse()

	if *gameDir == "" || *bitmapID < 0 || *paletteID < 0 {
		fmt.Fprintln(os.Stderr, "Usage: dumpbitmap -game <dir> -id <bitmap-resource-id> -palette-id <palette-resource-id> [-palette-index N] [-out path.bmp] [-scale N]")
		os.Exit(1)
	}

	banks := host.NewFilesystemBanks(*gameDir)

	rawIndex, err := banks.LoadResourceDescriptors()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dumpbitmap: %v\n", err)
		os.Exit(1)
	}
	descriptors, err := resource.ParseDescriptors(rawIndex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dumpbitmap: %v\n", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(100)
	directory := resource.NewDirectory(descriptors, banks, logger)

	paletteRaw, err := directory.Load(resource.ID(*paletteID))
	if err != nil {
		fmt.Fprintf(os.Stderr, "dumpbitmap: loading palette resource %d: %v\n", *paletteID, err)
		os.Exit(1)
	}
	bank, err := video.DecodeBank(paletteRaw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dumpbitmap: decoding palette bank: %v\n", err)
		os.Exit(1)
	}
	if *paletteIndex < 0 || *paletteIndex >= video.PaletteCount {
		fmt.Fprintf(os.Stderr, "dumpbitmap: palette-index must be in [0,%d)\n", video.PaletteCount)
		os.Exit(1)
	}

	bitmapRaw, err := directory.Load(resource.ID(*bitmapID))
	if err != nil {
		fmt.Fprintf(os.Stderr, "dumpbitmap: loading bitmap resource %d: %v\n", *bitmapID, err)
		os.Exit(1)
	}

	buf, err := decodeBitmapBuffer(bitmapRaw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dumpbitmap: %v\n", err)
		os.Exit(1)
	}

	surface := video.ApplyPalette(buf, bank[*paletteIndex])
	img := surfaceToImage(surface)

	if *scale > 1 {
		img = resize.Resize(uint(video.Width**scale), uint(video.Height**scale), img, resize.NearestNeighbor)
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dumpbitmap: creating %s: %v\n", *out, err)
		os.Exit(1)
	}
	defer f.Close()

	if err := gobmp.Encode(f, img); err != nil {
		fmt.Fprintf(os.Stderr, "dumpbitmap: encoding bmp: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s (%dx%d)\n", *out, img.Bounds().Dx(), img.Bounds().Dy())
}
