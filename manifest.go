package bongocat

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestEntry is one sprite of a layer or key manifest.
type ManifestEntry struct {
	Name string
	Box  BBox
	Path string // image file, resolved against the manifest's directory
	Mode bool   // key manifests only: initial pressed flag
}

type manifestItem struct {
	BBox []float64 `yaml:"bbox"`
	Path string    `yaml:"path"`
	Mode modeFlag  `yaml:"mode"`
}

// modeFlag decodes YAML booleans as well as the 0/1 integers older manifests use.
type modeFlag bool

func (f *modeFlag) UnmarshalYAML(n *yaml.Node) error {
	var b bool
	if err := n.Decode(&b); err == nil {
		*f = modeFlag(b)
		return nil
	}
	var i int
	if err := n.Decode(&i); err != nil {
		return fmt.Errorf("mode %q is neither a bool nor an integer", n.Value)
	}
	*f = i != 0
	return nil
}

// LoadManifest reads a layer or key manifest. Relative image paths are
// resolved against the manifest's directory.
func LoadManifest(path string) ([]ManifestEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bongocat: read manifest: %w", err)
	}
	entries, err := ParseManifest(data)
	if err != nil {
		setErrorPath(err, path)
		return nil, err
	}
	dir := filepath.Dir(path)
	for i := range entries {
		if entries[i].Path != "" && !filepath.IsAbs(entries[i].Path) {
			entries[i].Path = filepath.Join(dir, entries[i].Path)
		}
	}
	return entries, nil
}

// ParseManifest parses a mapping of name -> {bbox, path, mode}. Entries are
// returned in document order, which is also the draw order.
func ParseManifest(data []byte) ([]ManifestEntry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigParseError{Err: err}
	}
	if len(doc.Content) == 0 {
		return nil, &ConfigParseError{Err: errors.New("empty manifest")}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ConfigParseError{Err: fmt.Errorf("line %d: manifest must be a mapping", root.Line)}
	}

	entries := make([]ManifestEntry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		var item manifestItem
		if err := root.Content[i+1].Decode(&item); err != nil {
			return nil, &ConfigParseError{Field: name, Err: err}
		}
		if len(item.BBox) != 4 {
			return nil, &ConfigParseError{Field: name + ".bbox", Err: fmt.Errorf("want 4 values, got %d", len(item.BBox))}
		}
		if item.Path == "" {
			return nil, &ConfigParseError{Field: name + ".path", Err: errors.New("missing")}
		}
		entries = append(entries, ManifestEntry{
			Name: name,
			Box:  BBox{item.BBox[0], item.BBox[1], item.BBox[2], item.BBox[3]},
			Path: item.Path,
			Mode: bool(item.Mode),
		})
	}
	return entries, nil
}
