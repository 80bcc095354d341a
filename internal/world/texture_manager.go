package world

import (
	"fmt"
	"os"
	"strings"

	"bspview/internal/config"

	"gopkg.in/yaml.v3"
)

// TextureManager holds the texture palette: fixed display colours for
// known texture names.
type TextureManager struct {
	textureData map[string]*config.TextureData
}

// NewTextureManager creates an empty texture manager
func NewTextureManager() *TextureManager {
	return &TextureManager{
		textureData: make(map[string]*config.TextureData),
	}
}

// LoadTextureConfig loads the texture palette from a YAML file. Names are
// matched case-insensitively, like lump names.
func (tm *TextureManager) LoadTextureConfig(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read texture config file: %w", err)
	}

	var textureConfig config.TextureConfig
	err = yaml.Unmarshal(data, &textureConfig)
	if err != nil {
		return fmt.Errorf("failed to parse texture config: %w", err)
	}

	tm.textureData = make(map[string]*config.TextureData, len(textureConfig.TextureData))
	for key, textureData := range textureConfig.TextureData {
		for i, c := range textureData.WallColor {
			if c < 0 || c > 255 {
				return fmt.Errorf("texture %s: wall colour component %d out of range: %d", key, i, c)
			}
		}
		textureCopy := textureData
		tm.textureData[strings.ToUpper(key)] = &textureCopy
	}
	return nil
}

// GetTextureData returns the data for a texture, or nil when unknown
func (tm *TextureManager) GetTextureData(name string) *config.TextureData {
	return tm.textureData[strings.ToUpper(name)]
}

// GetWallColor returns the configured wall colour for a texture.
func (tm *TextureManager) GetWallColor(name string) ([3]int, bool) {
	data := tm.GetTextureData(name)
	if data == nil {
		return [3]int{}, false
	}
	return data.WallColor, true
}

// Len returns the number of configured textures
func (tm *TextureManager) Len() int {
	return len(tm.textureData)
}
