package host

import (
	"fmt"
	"os"
	"path/filepath"
)

// FilesystemBanks implements the bank/index-loading half of Host by
// reading numbered bank files and a single index file out of a game
// directory on disk. Concrete Host implementations (internal/hostsdl,
// or a future alternative front end) embed this rather than
// reimplementing file I/O themselves.
type FilesystemBanks struct {
	GameDir   string
	IndexFile string // relative to GameDir; defaults to "memlist.bin"
}

// NewFilesystemBanks builds a FilesystemBanks rooted at gameDir with
// the default index file name.
func NewFilesystemBanks(gameDir string) *FilesystemBanks {
	return &FilesystemBanks{GameDir: gameDir, IndexFile: "memlist.bin"}
}

// LoadBank reads bank<NN>.dat from the game directory.
func (f *FilesystemBanks) LoadBank(bankNumber uint8) ([]byte, error) {
	path := filepath.Join(f.GameDir, fmt.Sprintf("bank%02X.dat", bankNumber))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("host: reading bank file %s: %w", path, err)
	}
	return data, nil
}

// LoadResourceDescriptors reads the bank index file from the game
// directory.
func (f *FilesystemBanks) LoadResourceDescriptors() ([]byte, error) {
	name := f.IndexFile
	if name == "" {
		name = "memlist.bin"
	}
	path := filepath.Join(f.GameDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("host: reading resource index %s: %w", path, err)
	}
	return data, nil
}
