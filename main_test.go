package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		meshPath    string
		expectError bool
	}{
		{"default scene", "default", "data/LowPolyTree1.obj", false},
		{"default scene without mesh", "default", "", false},
		{"sphere scene", "sphere", "", false},
		{"spheregrid scene", "spheregrid", "", false},

		{"missing mesh", "default", "data/nonexistent.obj", true},
		{"unknown scene", "nonexistent", "", true},
		{"empty scene name", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := createScene(tt.sceneType, tt.meshPath)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if len(scene.Objects) == 0 {
				t.Error("Scene should have objects")
			}
			if len(scene.Lights) == 0 {
				t.Error("Scene should have lights")
			}
		})
	}
}

func TestLoadRenderConfig_Overrides(t *testing.T) {
	opts, err := parseOptions([]string{"-workers", "3", "-width", "320", "-no-denoise", "-no-adaptive"})
	if err != nil {
		t.Fatalf("parseOptions failed: %v", err)
	}

	config, err := loadRenderConfig(opts)
	if err != nil {
		t.Fatalf("loadRenderConfig failed: %v", err)
	}
	if config.Workers != 3 {
		t.Errorf("Expected 3 workers, got %d", config.Workers)
	}
	if config.Width != 320 || config.Height != 180 {
		t.Errorf("Expected 320x180, got %dx%d", config.Width, config.Height)
	}
	if config.Denoise || config.AdaptiveSampling {
		t.Errorf("Expected denoising and adaptive sampling disabled, got %+v", config)
	}
}

func TestLoadRenderConfig_FileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.json")
	if err := os.WriteFile(path, []byte(`{"workers": 2, "max_bounces": 5}`), 0644); err != nil {
		t.Fatalf("Writing config failed: %v", err)
	}

	opts, err := parseOptions([]string{"-config", path, "-workers", "6"})
	if err != nil {
		t.Fatalf("parseOptions failed: %v", err)
	}
	config, err := loadRenderConfig(opts)
	if err != nil {
		t.Fatalf("loadRenderConfig failed: %v", err)
	}

	if config.MaxBounces != 5 {
		t.Errorf("Expected file value for max bounces, got %d", config.MaxBounces)
	}
	if config.Workers != 6 {
		t.Errorf("Expected flag to override workers, got %d", config.Workers)
	}
}

func TestRun_RendersToFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "small.json")
	config := `{"width": 8, "height": 6, "samples_per_batch": 2, "max_iterations": 2, "max_bounces": 3}`
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatalf("Writing config failed: %v", err)
	}

	output := filepath.Join(dir, "out.ppm")
	opts, err := parseOptions([]string{"-scene", "sphere", "-config", configPath, "-output", output})
	if err != nil {
		t.Fatalf("parseOptions failed: %v", err)
	}
	if err := run(opts); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Expected output file: %v", err)
	}
	if len(data) < 3 || string(data[:3]) != "P3\n" {
		t.Errorf("Expected PPM output, got %q", data[:min(len(data), 16)])
	}
}
