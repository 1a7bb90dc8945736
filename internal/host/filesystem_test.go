package host

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilesystemBanksLoadsBankAndIndex(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bank00.dat"), []byte{1, 2, 3, 4}, 0o644); err != nil {
		t.Fatalf("writing fixture bank file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "memlist.bin"), []byte{5, 6, 7, 8}, 0o644); err != nil {
		t.Fatalf("writing fixture index file: %v", err)
	}

	fs := NewFilesystemBanks(dir)

	bank, err := fs.LoadBank(0)
	if err != nil {
		t.Fatalf("LoadBank: %v", err)
	}
	if string(bank) != "\x01\x02\x03\x04" {
		t.Fatalf("LoadBank returned %v, want [1 2 3 4]", bank)
	}

	index, err := fs.LoadResourceDescriptors()
	if err != nil {
		t.Fatalf("LoadResourceDescriptors: %v", err)
	}
	if string(index) != "\x05\x06\x07\x08" {
		t.Fatalf("LoadResourceDescriptors returned %v, want [5 6 7 8]", index)
	}
}

func TestFilesystemBanksMissingBankIsAnError(t *testing.T) {
	fs := NewFilesystemBanks(t.TempDir())
	if _, err := fs.LoadBank(9); err == nil {
		t.Fatalf("expected an error for a missing bank file")
	}
}
