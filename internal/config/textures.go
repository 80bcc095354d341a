package config

// TextureConfig is the texture palette file: display properties per
// texture name.
type TextureConfig struct {
	TextureData map[string]TextureData `yaml:"textures"`
}

// TextureData holds the display properties of one wall texture.
type TextureData struct {
	Name      string `yaml:"name"`
	WallColor [3]int `yaml:"wall_color"`
}
