package bongocat

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseManifestKeepsDocumentOrder(t *testing.T) {
	doc := `
zbody:
  bbox: [0, 0, 354, 612]
  path: body.png
mouse:
  bbox: [100, 150, 200, 260]
  path: mouse.png
arm:
  bbox: [10, 20, 30, 40]
  path: arm.png
`
	entries, err := ParseManifest([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"zbody", "mouse", "arm"}
	if len(entries) != len(want) {
		t.Fatalf("len = %d, want %d", len(entries), len(want))
	}
	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i].Name, name)
		}
	}
	if entries[1].Box != (BBox{100, 150, 200, 260}) {
		t.Errorf("mouse box = %v", entries[1].Box)
	}
}

func TestParseManifestModeFlag(t *testing.T) {
	doc := `
a: {bbox: [0, 0, 1, 1], path: a.png, mode: 1}
b: {bbox: [0, 0, 1, 1], path: b.png, mode: 0}
c: {bbox: [0, 0, 1, 1], path: c.png, mode: true}
d: {bbox: [0, 0, 1, 1], path: d.png}
`
	entries, err := ParseManifest([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	want := []bool{true, false, true, false}
	for i, e := range entries {
		if e.Mode != want[i] {
			t.Errorf("%s.Mode = %v, want %v", e.Name, e.Mode, want[i])
		}
	}
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"bbox arity", "a: {bbox: [0, 0, 1], path: a.png}", "a.bbox"},
		{"no path", "a: {bbox: [0, 0, 1, 1]}", "a.path"},
		{"bad mode", "a: {bbox: [0, 0, 1, 1], path: a.png, mode: maybe}", "a"},
		{"not a mapping", "- a\n- b\n", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.doc))
			var pe *ConfigParseError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %v, want *ConfigParseError", err)
			}
			if pe.Field != tt.field {
				t.Errorf("Field = %q, want %q", pe.Field, tt.field)
			}
		})
	}
}

func TestLoadManifestResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "init.yaml")
	doc := "a: {bbox: [0, 0, 1, 1], path: img/a.png}\nb: {bbox: [0, 0, 1, 1], path: /abs/b.png}\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	entries, err := LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := entries[0].Path, filepath.Join(dir, "img", "a.png"); got != want {
		t.Errorf("relative path = %q, want %q", got, want)
	}
	if got := entries[1].Path; got != "/abs/b.png" {
		t.Errorf("absolute path = %q", got)
	}
}
