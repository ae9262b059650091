package bongocat

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// Texture is a sprite image uploaded into a square power-of-two backing
// store. The sprite occupies the top-left rows x cols pixels.
type Texture struct {
	Image *ebiten.Image
	Side  int
}

// AssetTable holds every decoded sprite of the rig. Images are decoded and
// uploaded once at startup; frames only recompute geometry.
type AssetTable struct {
	Layers      []Layer
	Keys        []KeySprite
	InitialKeys []string // keys whose manifest mode starts them held

	layerTex map[string]Texture
	keyTex   map[string]Texture
}

// LoadAssets reads the layer manifest and the optional key manifest
// (keyPath may be empty) and uploads every referenced image.
func LoadAssets(layerPath, keyPath string) (*AssetTable, error) {
	layers, err := LoadManifest(layerPath)
	if err != nil {
		return nil, err
	}
	var keys []ManifestEntry
	if keyPath != "" {
		if keys, err = LoadManifest(keyPath); err != nil {
			return nil, err
		}
	}

	t := &AssetTable{
		layerTex: make(map[string]Texture, len(layers)),
		keyTex:   make(map[string]Texture, len(keys)),
	}
	for _, e := range layers {
		tex, extent, err := loadTexture(e.Path)
		if err != nil {
			return nil, fmt.Errorf("bongocat: layer %q: %w", e.Name, err)
		}
		t.layerTex[e.Name] = tex
		t.Layers = append(t.Layers, Layer{Name: e.Name, Box: e.Box, Extent: extent})
	}
	for _, e := range keys {
		tex, extent, err := loadTexture(e.Path)
		if err != nil {
			return nil, fmt.Errorf("bongocat: key %q: %w", e.Name, err)
		}
		t.keyTex[e.Name] = tex
		t.Keys = append(t.Keys, KeySprite{ID: e.Name, Box: e.Box, Extent: extent})
		if e.Mode {
			t.InitialKeys = append(t.InitialKeys, e.Name)
		}
	}
	return t, nil
}

// LayerTexture returns the texture of a layer.
func (t *AssetTable) LayerTexture(name string) (Texture, bool) {
	tex, ok := t.layerTex[name]
	return tex, ok
}

// KeyTexture returns the texture of a key sprite.
func (t *AssetTable) KeyTexture(id string) (Texture, bool) {
	tex, ok := t.keyTex[id]
	return tex, ok
}

// KeyIDs returns the identifiers of all key sprites in manifest order.
func (t *AssetTable) KeyIDs() []string {
	ids := make([]string, len(t.Keys))
	for i, k := range t.Keys {
		ids[i] = k.ID
	}
	return ids
}

func loadTexture(path string) (Texture, Vec2, error) {
	img, err := decodeImage(path)
	if err != nil {
		return Texture{}, Vec2{}, err
	}
	padded := padImage(img)
	b := img.Bounds()
	return Texture{
		Image: ebiten.NewImageFromImage(padded),
		Side:  padded.Bounds().Dx(),
	}, TextureExtent(b.Dy(), b.Dx()), nil
}

// LoadImage decodes a PNG file.
func LoadImage(path string) (image.Image, error) {
	return decodeImage(path)
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// padImage copies img into the top-left corner of a square power-of-two
// canvas. Padding is transparent white.
func padImage(img image.Image) *image.NRGBA {
	b := img.Bounds()
	side := PaddedSize(b.Dy(), b.Dx())
	dst := image.NewNRGBA(image.Rect(0, 0, side, side))
	// Written directly: drawing a uniform would premultiply the white away.
	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2] = 255, 255, 255
	}
	draw.Draw(dst, image.Rect(0, 0, b.Dx(), b.Dy()), img, b.Min, draw.Src)
	return dst
}
