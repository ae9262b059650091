package bongocat

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleConfig = `
bezier_start: [240, 60]
bezier_finish: [170, 280]
draw_constant: [5, -7, 3]
test_point: [200, 100]
move_up: [40]
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BezierStart != (Vec2{240, 60}) || cfg.BezierFinish != (Vec2{170, 280}) {
		t.Errorf("anchors = %v, %v", cfg.BezierStart, cfg.BezierFinish)
	}
	if cfg.DrawOffset != (Vec2{5, -7}) || cfg.LineWidth != 3 {
		t.Errorf("draw constant = %v, %v", cfg.DrawOffset, cfg.LineWidth)
	}
	if cfg.TestPoint != (Vec2{200, 100}) || cfg.MoveUp != 40 {
		t.Errorf("test point = %v, move up = %v", cfg.TestPoint, cfg.MoveUp)
	}
}

func TestParseConfigFieldErrors(t *testing.T) {
	tests := []struct {
		name  string
		from  string
		to    string
		field string
	}{
		{"missing", "move_up: [40]\n", "", "move_up"},
		{"short", "draw_constant: [5, -7, 3]", "draw_constant: [5, -7]", "draw_constant"},
		{"short vec", "bezier_start: [240, 60]", "bezier_start: [240]", "bezier_start"},
		{"empty", "test_point: [200, 100]", "test_point: []", "test_point"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := strings.Replace(sampleConfig, tt.from, tt.to, 1)
			_, err := ParseConfig([]byte(doc))
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

func TestParseConfigMalformed(t *testing.T) {
	_, err := ParseConfig([]byte("bezier_start: [1, 2\n"))
	var pe *ConfigParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *ConfigParseError", err)
	}
	if pe.Field != "" {
		t.Errorf("Field = %q, want empty", pe.Field)
	}
	if !strings.Contains(err.Error(), "<memory>") {
		t.Errorf("message %q does not name the source", err.Error())
	}
}

func TestParseConfigWrongType(t *testing.T) {
	doc := strings.Replace(sampleConfig, "move_up: [40]", "move_up: high", 1)
	if _, err := ParseConfig([]byte(doc)); err == nil {
		t.Error("expected error for scalar move_up")
	}
}

func TestLoadConfigSetsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.yaml")
	if err := os.WriteFile(path, []byte("bezier_start: [1, 2]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadConfig(path)
	var pe *ConfigParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *ConfigParseError", err)
	}
	if pe.Path != path {
		t.Errorf("Path = %q, want %q", pe.Path, path)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}
