package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all viewer configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	View     ViewConfig     `yaml:"view"`
	Player   PlayerConfig   `yaml:"player"`
	Level    LevelConfig    `yaml:"level"`
	Render   RenderConfig   `yaml:"render"`
	Server   ServerConfig   `yaml:"server"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	// Scale is the window size multiplier over the logical screen.
	Scale int `yaml:"scale"`
}

type ViewConfig struct {
	FieldOfView  float64 `yaml:"field_of_view"` // degrees
	ShowAutoMap  bool    `yaml:"show_automap"`
	ShowStats    bool    `yaml:"show_stats"`
	AutoMapWidth int     `yaml:"automap_width"`
}

type PlayerConfig struct {
	// StartX/StartY override the level's player start when UseStart is set.
	UseStart      bool    `yaml:"use_start"`
	StartX        float64 `yaml:"start_x"`
	StartY        float64 `yaml:"start_y"`
	StartAngle    float64 `yaml:"start_angle"`
	EyeHeight     float64 `yaml:"eye_height"`
	MoveSpeed     float64 `yaml:"move_speed"`     // map units per tick
	RotationSpeed float64 `yaml:"rotation_speed"` // degrees per tick
}

type LevelConfig struct {
	// WadPath is empty for the built-in demo level.
	WadPath      string   `yaml:"wad_path"`
	Maps         []string `yaml:"maps"`
	RebuildNodes bool     `yaml:"rebuild_nodes"`
}

type RenderConfig struct {
	// ColorSeed seeds the wall colour generator; 0 hashes texture names
	// instead so every session agrees on colours.
	ColorSeed int64   `yaml:"color_seed"`
	LineWidth float64 `yaml:"line_width"`
	Antialias bool    `yaml:"antialias"`
	// TexturesPath names a texture palette with fixed colours; textures
	// it does not list use the generated colours.
	TexturesPath string `yaml:"textures_path"`
}

type ServerConfig struct {
	Address      string `yaml:"address"`
	HostKeyPath  string `yaml:"host_key_path"`
	TickRate     int    `yaml:"tick_rate"` // frames per second
	CanvasWidth  int    `yaml:"canvas_width"`
	CanvasHeight int    `yaml:"canvas_height"`
	MaxSessions  int    `yaml:"max_sessions"`
}

type SnapshotConfig struct {
	OutputDir string    `yaml:"output_dir"`
	Headings  []float64 `yaml:"headings"`
	Workers   int       `yaml:"workers"`
	ShowHUD   bool      `yaml:"show_hud"`
}

var GlobalConfig *Config

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  320,
			ScreenHeight: 200,
			WindowTitle:  "BSP View",
			Resizable:    true,
			Scale:        3,
		},
		View: ViewConfig{
			FieldOfView:  90,
			ShowStats:    true,
			AutoMapWidth: 320,
		},
		Player: PlayerConfig{
			EyeHeight:     41,
			MoveSpeed:     6,
			RotationSpeed: 3,
		},
		Level: LevelConfig{
			Maps: []string{"E1M1"},
		},
		Render: RenderConfig{
			LineWidth: 1,
			Antialias: true,
		},
		Server: ServerConfig{
			Address:      ":2222",
			HostKeyPath:  "ssh_host_ed25519",
			TickRate:     15,
			CanvasWidth:  160,
			CanvasHeight: 96,
			MaxSessions:  16,
		},
		Snapshot: SnapshotConfig{
			OutputDir: "snapshots",
			Headings:  []float64{0, 45, 90, 135, 180, 225, 270, 315},
			Workers:   4,
		},
	}
}

// LoadConfig loads the configuration from a YAML file. Values missing from
// the file keep their defaults.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Set global config for easy access
	GlobalConfig = config

	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate rejects values the renderer cannot work with.
func (c *Config) Validate() error {
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		return fmt.Errorf("invalid screen size %dx%d", c.Display.ScreenWidth, c.Display.ScreenHeight)
	}
	if c.View.FieldOfView <= 0 || c.View.FieldOfView >= 180 {
		return fmt.Errorf("field of view must be in (0, 180), got %v", c.View.FieldOfView)
	}
	if c.Server.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %d", c.Server.TickRate)
	}
	if c.Server.CanvasWidth <= 0 || c.Server.CanvasHeight <= 0 {
		return fmt.Errorf("invalid server canvas %dx%d", c.Server.CanvasWidth, c.Server.CanvasHeight)
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetFOV() float64 {
	return c.View.FieldOfView
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Player.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Player.RotationSpeed
}

func (c *Config) GetEyeHeight() float64 {
	return c.Player.EyeHeight
}

// GetTickInterval converts the server tick rate to a ticker period.
func (c *Config) GetTickInterval() time.Duration {
	return time.Second / time.Duration(c.Server.TickRate)
}

// UsesDemoLevel reports whether no WAD is configured.
func (c *Config) UsesDemoLevel() bool {
	return c.Level.WadPath == ""
}
