package bongocat

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is one immutable snapshot of the hot-reloadable tunables. A new
// snapshot replaces the old one on every successful reload; snapshots are
// never mutated after publication.
type Config struct {
	BezierStart  Vec2    // shoulder anchor of the paw stroke
	BezierFinish Vec2    // body anchor of the paw stroke
	DrawOffset   Vec2    // constant offset added to the paw sprite
	LineWidth    float64 // stroke width of the paw outline, in pixels
	TestPoint    Vec2    // debug marker drawn in debug mode
	MoveUp       float64 // distance of the window above the screen bottom
}

// configFile mirrors the YAML document. Slices stay nil when a key is absent.
type configFile struct {
	BezierStart  []float64 `yaml:"bezier_start"`
	BezierFinish []float64 `yaml:"bezier_finish"`
	DrawConstant []float64 `yaml:"draw_constant"`
	TestPoint    []float64 `yaml:"test_point"`
	MoveUp       []float64 `yaml:"move_up"`
}

// ConfigParseError reports a config or manifest document that could not be
// turned into a snapshot. Field is empty when the document itself is
// malformed.
type ConfigParseError struct {
	Path  string
	Field string
	Err   error
}

func (e *ConfigParseError) Error() string {
	src := e.Path
	if src == "" {
		src = "<memory>"
	}
	if e.Field == "" {
		return fmt.Sprintf("bongocat: parse %s: %v", src, e.Err)
	}
	return fmt.Sprintf("bongocat: parse %s: field %q: %v", src, e.Field, e.Err)
}

func (e *ConfigParseError) Unwrap() error { return e.Err }

// LoadConfig reads and parses the config file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bongocat: read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		setErrorPath(err, path)
		return nil, err
	}
	return cfg, nil
}

// ParseConfig parses a config document. Every field is required and must
// have the documented arity.
func ParseConfig(data []byte) (*Config, error) {
	var f configFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &ConfigParseError{Err: err}
	}

	start, err := fieldVec2("bezier_start", f.BezierStart)
	if err != nil {
		return nil, err
	}
	finish, err := fieldVec2("bezier_finish", f.BezierFinish)
	if err != nil {
		return nil, err
	}
	if err := fieldArity("draw_constant", f.DrawConstant, 3); err != nil {
		return nil, err
	}
	test, err := fieldVec2("test_point", f.TestPoint)
	if err != nil {
		return nil, err
	}
	if err := fieldArity("move_up", f.MoveUp, 1); err != nil {
		return nil, err
	}

	return &Config{
		BezierStart:  start,
		BezierFinish: finish,
		DrawOffset:   Vec2{f.DrawConstant[0], f.DrawConstant[1]},
		LineWidth:    f.DrawConstant[2],
		TestPoint:    test,
		MoveUp:       f.MoveUp[0],
	}, nil
}

func fieldVec2(name string, v []float64) (Vec2, error) {
	if err := fieldArity(name, v, 2); err != nil {
		return Vec2{}, err
	}
	return Vec2{v[0], v[1]}, nil
}

// fieldArity accepts lists at least n long; extra trailing values are ignored.
func fieldArity(name string, v []float64, n int) error {
	if v == nil {
		return &ConfigParseError{Field: name, Err: errors.New("missing")}
	}
	if len(v) < n {
		return &ConfigParseError{Field: name, Err: fmt.Errorf("want %d values, got %d", n, len(v))}
	}
	return nil
}
