package commands

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSelectColumns(t *testing.T) {
	header := []string{"sku", "name", "category", "price"}
	rows := [][]string{
		{"SK-1", "Espresso Beans", "coffee", "12.50"},
		{"SK-2", "Filter Paper", "supplies", "3.25"},
	}

	gotHeader, gotRows, err := selectColumns(header, rows, []string{"name", "price"})
	if err != nil {
		t.Fatalf("selectColumns failed: %v", err)
	}

	if !reflect.DeepEqual(gotHeader, []string{"name", "price"}) {
		t.Errorf("unexpected header: %v", gotHeader)
	}
	want := [][]string{
		{"Espresso Beans", "12.50"},
		{"Filter Paper", "3.25"},
	}
	if !reflect.DeepEqual(gotRows, want) {
		t.Errorf("unexpected rows: %v", gotRows)
	}
}

func TestSelectColumns_UnknownColumn(t *testing.T) {
	header := []string{"sku", "name"}

	_, _, err := selectColumns(header, nil, []string{"price"})
	if err == nil {
		t.Fatal("expected error for unknown column")
	}
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := "columns:\n  - name\n  - price\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write profile: %v", err)
	}

	profile, err := loadProfile(path)
	if err != nil {
		t.Fatalf("loadProfile failed: %v", err)
	}
	if !reflect.DeepEqual(profile.Columns, []string{"name", "price"}) {
		t.Errorf("unexpected columns: %v", profile.Columns)
	}
}

func TestLoadProfile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte("columns: []\n"), 0644); err != nil {
		t.Fatalf("failed to write profile: %v", err)
	}

	if _, err := loadProfile(path); err == nil {
		t.Error("expected error for profile with no columns")
	}
}
