package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	cfg := &Config{
		Portals: []Portal{
			{URL: "https://portal.example.com", Alias: "production"},
			{URL: "https://staging.example.com", Alias: "staging"},
		},
	}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(loaded.Portals) != 2 {
		t.Fatalf("expected 2 portals, got %d", len(loaded.Portals))
	}
	if loaded.Portals[0].Alias != "production" {
		t.Errorf("expected alias production, got %q", loaded.Portals[0].Alias)
	}
}

func TestLoad_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no portals", `{"portals":[]}`},
		{"missing url", `{"portals":[{"alias":"production"}]}`},
		{"bad url", `{"portals":[{"alias":"production","url":"not a url"}]}`},
		{"missing alias", `{"portals":[{"url":"https://portal.example.com"}]}`},
		{"not json", `{{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigFileName)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			if _, err := Load(path); err == nil {
				t.Error("expected Load to reject invalid config")
			}
		})
	}
}

func TestFindConfigFile_SearchesParents(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("failed to create dirs: %v", err)
	}

	configPath := filepath.Join(root, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(`{"portals":[{"url":"https://p.example.com","alias":"p"}]}`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	t.Cleanup(func() { os.Chdir(originalDir) })

	if err := os.Chdir(nested); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}

	found, err := FindConfigFile()
	if err != nil {
		t.Fatalf("FindConfigFile failed: %v", err)
	}

	// Resolve symlinks, macOS temp dirs are symlinked
	wantResolved, _ := filepath.EvalSymlinks(configPath)
	gotResolved, _ := filepath.EvalSymlinks(found)
	if gotResolved != wantResolved {
		t.Errorf("expected %s, got %s", wantResolved, gotResolved)
	}
}

func TestGetPortalByAlias(t *testing.T) {
	cfg := &Config{
		Portals: []Portal{
			{URL: "https://portal.example.com", Alias: "production"},
		},
	}

	portal, err := cfg.GetPortalByAlias("production")
	if err != nil {
		t.Fatalf("GetPortalByAlias failed: %v", err)
	}
	if portal.URL != "https://portal.example.com" {
		t.Errorf("unexpected portal: %+v", portal)
	}

	if _, err := cfg.GetPortalByAlias("nope"); err == nil {
		t.Error("expected error for unknown alias")
	}
}
