package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mewmew/blockview/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	if cfg.BytesChunkWidth != config.DefaultBytesChunkWidth {
		t.Errorf("BytesChunkWidth = %d, want %d", cfg.BytesChunkWidth, config.DefaultBytesChunkWidth)
	}
	if cfg.BytesMaxLines != config.DefaultBytesMaxLines {
		t.Errorf("BytesMaxLines = %d, want %d", cfg.BytesMaxLines, config.DefaultBytesMaxLines)
	}
	if cfg.AddressColumnWidth != config.DefaultAddressColumnWidth {
		t.Errorf("AddressColumnWidth = %d, want %d", cfg.AddressColumnWidth, config.DefaultAddressColumnWidth)
	}
	if cfg.HexTruncateWidth != 0 {
		t.Errorf("HexTruncateWidth = %d, want 0 before Derive", cfg.HexTruncateWidth)
	}
}

func TestDerive(t *testing.T) {
	cfg := config.Default().Derive(15)
	want := 15*3 + 1
	if cfg.HexTruncateWidth != want {
		t.Errorf("HexTruncateWidth = %d, want %d", cfg.HexTruncateWidth, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("Load of a missing file = %+v, want %+v", cfg, config.Default())
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockview.json")
	const body = `{"bytes_chunk_width": 16, "bytes_max_lines": 50, "address_column_width": 8}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BytesChunkWidth != 16 {
		t.Errorf("BytesChunkWidth = %d, want 16", cfg.BytesChunkWidth)
	}
	if cfg.BytesMaxLines != 50 {
		t.Errorf("BytesMaxLines = %d, want 50", cfg.BytesMaxLines)
	}
	if cfg.AddressColumnWidth != 8 {
		t.Errorf("AddressColumnWidth = %d, want 8", cfg.AddressColumnWidth)
	}
}
