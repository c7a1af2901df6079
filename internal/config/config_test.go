package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	want := Defaults()
	if cfg != want {
		t.Fatalf("Load(\"\") = %+v, want %+v", cfg, want)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "detection:\n  min_area: 750\ngeoref:\n  dpi: 600\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) error: %v", path, err)
	}
	if cfg.Detection.MinArea != 750 {
		t.Fatalf("MinArea = %v, want 750", cfg.Detection.MinArea)
	}
	if cfg.Georef.DPI != 600 {
		t.Fatalf("DPI = %v, want 600", cfg.Georef.DPI)
	}
	// Untouched fields keep their default values.
	if cfg.Detection.DedupIoU != Defaults().Detection.DedupIoU {
		t.Fatalf("DedupIoU = %v, want default", cfg.Detection.DedupIoU)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}
